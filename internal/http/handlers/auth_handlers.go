package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/terminalhome/ims-backend/internal/auth"
	"github.com/terminalhome/ims-backend/internal/models"
	"github.com/terminalhome/ims-backend/internal/repo"
)

// LoginHandler verifies credentials and issues a short-lived JWT.
//
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials  body      CredentialsRequest  true  "Credentials"
// @Success      200          {object}  LoginResult
// @Failure      401          {string}  string  "invalid credentials"
// @Router       /login [post]
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request payload", http.StatusBadRequest)
		return
	}

	user, err := userRepo.GetByUsername(req.Username)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		log.Printf("❌ failed to fetch user %q: %v", req.Username, err)
		http.Error(w, "failed to log in", http.StatusInternalServerError)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := auth.GenerateToken(user)
	if err != nil {
		log.Printf("❌ failed to generate token: %v", err)
		http.Error(w, "failed to log in", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, LoginResult{Token: token})
}

// RegisterHandler creates a user and issues a token for it.
//
// @Summary      Register
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials  body      CredentialsRequest  true  "Credentials"
// @Success      201          {object}  RegisterResult
// @Failure      409          {string}  string  "username already taken"
// @Router       /register [post]
func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request payload", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Username) == "" || len(req.Password) < 8 {
		http.Error(w, "username is required and password must be at least 8 characters", http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("❌ failed to hash password: %v", err)
		http.Error(w, "failed to register", http.StatusInternalServerError)
		return
	}

	user, err := userRepo.CreateUser(models.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         "staff",
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			http.Error(w, "username already taken", http.StatusConflict)
			return
		}
		log.Printf("❌ failed to create user: %v", err)
		http.Error(w, "failed to register", http.StatusInternalServerError)
		return
	}

	token, err := auth.GenerateToken(user)
	if err != nil {
		log.Printf("❌ failed to generate token: %v", err)
		http.Error(w, "failed to register", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, RegisterResult{Message: "user created", Token: token})
}
