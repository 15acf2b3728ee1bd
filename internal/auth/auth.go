package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/konnecta/weekend-api/internal/config"
	"github.com/konnecta/weekend-api/internal/models"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"
)

const GoogleUserInfoAPI = "https://www.googleapis.com/oauth2/v2/userinfo"

const TokenDuration = 24 * time.Hour

type AuthHandler struct {
	oauthConfig *oauth2.Config
	db          *gorm.DB
	cfg         *config.Config
}

func NewAuthHandler(cfg *config.Config, db *gorm.DB) *AuthHandler {
	return &AuthHandler{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		db:  db,
		cfg: cfg,
	}
}

// AuthInput carries the raw Cookie header into huma operations so they can
// call Authorize themselves.
type AuthInput struct {
	Cookie string `header:"Cookie"`
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	url := h.oauthConfig.AuthCodeURL("state", oauth2.AccessTypeOnline)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

func (h *AuthHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "Code not found", http.StatusBadRequest)
		return
	}

	token, err := h.oauthConfig.Exchange(r.Context(), code)
	if err != nil {
		http.Error(w, "Failed to exchange token", http.StatusInternalServerError)
		return
	}

	client := h.oauthConfig.Client(r.Context(), token)

	resp, err := client.Get(GoogleUserInfoAPI)
	if err != nil {
		http.Error(w, "Failed to get user info", http.StatusInternalServerError)
		return
	}
	defer resp.Body.Close()

	var googleUser struct {
		ID      string `json:"id"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&googleUser); err != nil {
		http.Error(w, "Failed to decode user info", http.StatusInternalServerError)
		return
	}

	// The roster is a closed friend group: only allow-listed emails get in.
	if !h.emailAllowed(googleUser.Email) {
		http.Error(w, "Access denied: you are not part of this group.", http.StatusForbidden)
		return
	}

	var profile models.Profile
	if err := h.db.FirstOrInit(&profile, models.Profile{Email: googleUser.Email}).Error; err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	if profile.FullName == "" {
		profile.FullName = googleUser.Name
	}
	if profile.AvatarURL == "" {
		profile.AvatarURL = googleUser.Picture
	}

	if err := h.db.Save(&profile).Error; err != nil {
		http.Error(w, "Failed to save profile", http.StatusInternalServerError)
		return
	}

	jwtToken, err := h.GenerateToken(profile.ID)
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    jwtToken,
		Expires:  time.Now().Add(TokenDuration),
		HttpOnly: true,
		Path:     "/",
	})

	http.Redirect(w, r, h.cfg.AppURL, http.StatusTemporaryRedirect)
}

func (h *AuthHandler) emailAllowed(email string) bool {
	if len(h.cfg.AllowedEmails) == 0 {
		return true
	}
	for _, allowed := range h.cfg.AllowedEmails {
		if allowed == email {
			return true
		}
	}
	return false
}

func (h *AuthHandler) GenerateToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(TokenDuration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.JWTSecret))
}

// Authorize returns the authenticated user id. When the request came
// through AuthMiddleware the id is already on the context; otherwise the
// auth_token cookie is validated from the raw Cookie header.
func (h *AuthHandler) Authorize(ctx context.Context, cookieHeader string) (string, error) {
	if userID, ok := ctx.Value(UserIDKey).(string); ok && userID != "" {
		return userID, nil
	}

	tokenString := cookieValue(cookieHeader, "auth_token")
	if tokenString == "" {
		return "", huma.Error401Unauthorized("Unauthorized: No token found")
	}

	userID, _, err := h.parseToken(tokenString)
	if err != nil {
		return "", huma.Error401Unauthorized("Unauthorized: Invalid token")
	}
	return userID, nil
}

func (h *AuthHandler) parseToken(tokenString string) (string, jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(h.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", nil, fmt.Errorf("invalid token claims")
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", nil, fmt.Errorf("invalid token claims")
	}
	return userID, claims, nil
}

func cookieValue(cookieHeader, name string) string {
	header := http.Header{}
	header.Add("Cookie", cookieHeader)
	request := http.Request{Header: header}
	cookie, err := request.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
