package middleware

import (
	"net/http"

	"picshare/app/auth"
)

// TokenValidator resolves a session token to a user id.
type TokenValidator interface {
	Validate(token string) (int, error)
}

// RequireAuth rejects requests without a valid bearer token and stores the
// token's user id in the request context otherwise.
func RequireAuth(tokens TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := auth.ExtractBearerToken(r.Header.Get("Authorization"))
			if token == "" {
				writeMessage(w, http.StatusUnauthorized, "Not authorized, token missing")
				return
			}
			userID, err := tokens.Validate(token)
			if err != nil {
				writeMessage(w, http.StatusUnauthorized, "Not authorized, token invalid")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), userID)))
		})
	}
}
