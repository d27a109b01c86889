package controllers

import (
	"net/http"

	"picshare/app/services"
)

// AuthController handles signup and login
type AuthController struct {
	accounts *services.AccountService
}

func NewAuthController(accounts *services.AccountService) *AuthController {
	return &AuthController{accounts: accounts}
}

type sessionResponse struct {
	Message string               `json:"message"`
	User    services.AccountView `json:"user"`
	Token   string               `json:"token"`
}

// Signup registers a new account
func (ac *AuthController) Signup(w http.ResponseWriter, r *http.Request) {
	var in services.SignupInput
	err := decodeBody(r, &in, func(get func(string) string) {
		in = services.SignupInput{
			Username: get("username"),
			Email:    get("email"),
			Password: get("password"),
			FullName: get("fullName"),
		}
	})
	if err != nil {
		sendMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	session, err := ac.accounts.Signup(in)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusCreated, sessionResponse{
		Message: "User registered successfully",
		User:    session.User,
		Token:   session.Token,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a token
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	err := decodeBody(r, &in, func(get func(string) string) {
		in = loginRequest{Email: get("email"), Password: get("password")}
	})
	if err != nil {
		sendMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	session, err := ac.accounts.Login(in.Email, in.Password)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, sessionResponse{
		Message: "Login successful",
		User:    session.User,
		Token:   session.Token,
	})
}
