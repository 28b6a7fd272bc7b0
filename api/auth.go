package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/gigbid/server/internal/models"
	"github.com/gigbid/server/internal/prompt"
	"github.com/gigbid/server/pkg/repository"
)

type AuthHandler struct {
	accountRepo   repository.AccountRepo
	profileRepo   repository.ProfileRepo
	settingsRepo  repository.SettingsRepo
	jwtSecret     string
	tokenDuration time.Duration
}

// NewAuthHandler creates a new AuthHandler with required dependencies.
func NewAuthHandler(ar repository.AccountRepo, pr repository.ProfileRepo, sr repository.SettingsRepo, jwtSecret string, tokenDuration time.Duration) *AuthHandler {
	return &AuthHandler{accountRepo: ar, profileRepo: pr, settingsRepo: sr, jwtSecret: jwtSecret, tokenDuration: tokenDuration}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string `json:"token"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(w, "Missing fields", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	if existing, err := h.accountRepo.GetByEmail(ctx, req.Email); err == nil && existing != nil {
		writeError(w, "Email already registered", http.StatusConflict)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, "Error hashing password", http.StatusInternalServerError)
		return
	}

	account := models.Account{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
	}

	accountID, err := h.accountRepo.CreateAccount(ctx, &account)
	if err != nil {
		writeError(w, "Error creating account", http.StatusInternalServerError)
		return
	}

	// Seed the profile and AI settings so the settings endpoints always have
	// a row to return.
	if _, err := h.profileRepo.CreateProfile(ctx, defaultProfile(accountID, req.Name)); err != nil {
		writeError(w, "Error creating profile", http.StatusInternalServerError)
		return
	}
	if _, err := h.settingsRepo.CreateSettings(ctx, defaultSettings(accountID)); err != nil {
		writeError(w, "Error creating settings", http.StatusInternalServerError)
		return
	}

	tokenStr, err := h.issueToken(accountID, req.Email)
	if err != nil {
		writeError(w, "Error signing token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, authResponse{Token: tokenStr}, http.StatusCreated)
}

func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req signinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, "Missing fields", http.StatusBadRequest)
		return
	}

	account, err := h.accountRepo.GetByEmail(r.Context(), req.Email)
	if err != nil || account == nil {
		writeError(w, "Credentials not found", http.StatusUnauthorized)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)) != nil {
		writeError(w, "Credentials not found", http.StatusUnauthorized)
		return
	}

	tokenStr, err := h.issueToken(account.ID, account.Email)
	if err != nil {
		writeError(w, "Error signing token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, authResponse{Token: tokenStr}, http.StatusOK)
}

func (h *AuthHandler) Signout(w http.ResponseWriter, r *http.Request) {
	// For stateless JWT, signout is client-side (just delete token)
	writeJSON(w, map[string]string{"message": "signed out"}, http.StatusOK)
}

func (h *AuthHandler) issueToken(accountID int64, email string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"account_id": accountID,
		"email":      email,
		"exp":        time.Now().Add(h.tokenDuration).Unix(),
	})
	return token.SignedString([]byte(h.jwtSecret))
}

func defaultProfile(accountID int64, name string) *models.Profile {
	return &models.Profile{
		AccountID: accountID,
		Name:      name,
		Skills:    []string{},
		Portfolio: []string{},
	}
}

func defaultSettings(accountID int64) *models.AISettings {
	return &models.AISettings{
		AccountID:    accountID,
		Provider:     models.ProviderOpenAI,
		Model:        "gpt-4o",
		Temperature:  0.7,
		MaxTokens:    1000,
		SystemPrompt: prompt.DefaultSettingsSystemPrompt,
	}
}
