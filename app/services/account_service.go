package services

import (
	"errors"
	"strings"

	"picshare/app/auth"
	"picshare/app/models"
	"picshare/app/repositories"

	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer signs a session token for a user id.
type TokenIssuer interface {
	Issue(userID int) (string, error)
}

// SignupInput is the signup form.
type SignupInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

// Session is returned after a successful signup or login.
type Session struct {
	User  AccountView `json:"user"`
	Token string      `json:"token"`
}

// AccountService registers users and logs them in
type AccountService struct {
	userRepo repositories.UserRepository
	tokens   TokenIssuer
}

func NewAccountService(userRepo repositories.UserRepository, tokens TokenIssuer) *AccountService {
	return &AccountService{userRepo: userRepo, tokens: tokens}
}

// Signup creates an account and opens a session for it
func (s *AccountService) Signup(in SignupInput) (*Session, error) {
	if strings.TrimSpace(in.Username) == "" || strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return nil, validationError("Please provide all fields")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, validationError("Password is too long")
		}
		return nil, storeError("Error signing up", err)
	}

	user := &models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		FullName:     in.FullName,
	}
	user.BeforeCreate()
	if err := user.Validate(); err != nil {
		return nil, &Error{Kind: ErrValidation, Message: "Invalid account details", Cause: err}
	}

	if err := s.userRepo.Create(user); err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicateEmail):
			return nil, validationError("Email already exists")
		case errors.Is(err, repositories.ErrDuplicateUsername):
			return nil, validationError("Username already exists")
		}
		return nil, storeError("Error signing up", err)
	}

	return s.session(user, "Error signing up")
}

// Login checks the credentials and opens a session. Unknown emails and
// wrong passwords fail the same way.
func (s *AccountService) Login(email, password string) (*Session, error) {
	user, err := s.userRepo.GetByEmail(email)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, validationError("Invalid email or password")
	}
	if err != nil {
		return nil, storeError("Error logging in", err)
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, validationError("Invalid email or password")
	}

	return s.session(user, "Error logging in")
}

func (s *AccountService) session(user *models.User, failed string) (*Session, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, storeError(failed, err)
	}
	return &Session{User: accountOf(user), Token: token}, nil
}
