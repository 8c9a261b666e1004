package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"gorm.io/gorm"

	"review-system-api/config"
	"review-system-api/internal/database"
	"review-system-api/internal/middleware"
	"review-system-api/internal/models"
)

type AuthHandler struct {
	cfg         *config.Config
	oauthConfig *oauth2.Config
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	oauthConfig := &oauth2.Config{
		ClientID:     cfg.ChanneliClientID,
		ClientSecret: cfg.ChanneliClientSecret,
		RedirectURL:  cfg.ChanneliRedirectURL,
		Endpoint: oauth2.Endpoint{
			AuthURL: cfg.ChanneliAuthURL,
		},
	}

	return &AuthHandler{
		cfg:         cfg,
		oauthConfig: oauthConfig,
	}
}

type SignUpRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

func (h *AuthHandler) SignUp(c echo.Context) error {
	var req SignUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	var existing models.User
	err := database.DB.Where("username = ?", req.Username).First(&existing).Error
	if err == nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "User already exists"})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dbError(err, "user")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to hash password")
	}

	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hash),
		IsActive: true,
	}

	// The unique index still backs the pre-check above, so a racing
	// duplicate insert surfaces here instead of slipping through.
	if err := database.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "User already exists"})
		}
		return dbError(err, "user")
	}

	return c.JSON(http.StatusCreated, map[string]string{"message": "User created successfully"})
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	var user models.User
	if err := database.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid username or password"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid username or password"})
	}

	claims := &middleware.JWTClaims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}

	jwtToken := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := jwtToken.SignedString([]byte(h.cfg.JWTSecret))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to generate token")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Login successful",
		"token":   tokenString,
	})
}

// ChanneliLogin sends the client to the channeli authorization page.
// Only the redirect leg exists; the callback/token exchange is not
// implemented.
func (h *AuthHandler) ChanneliLogin(c echo.Context) error {
	url := h.oauthConfig.AuthCodeURL(h.cfg.ChanneliState)
	return c.Redirect(http.StatusFound, url)
}

func (h *AuthHandler) Home(c echo.Context) error {
	return c.String(http.StatusOK, "Hello, world!")
}

func (h *AuthHandler) Me(c echo.Context) error {
	userID := c.Get("user_id").(uint)

	var user models.User
	if err := database.DB.Preload("Roles").First(&user, userID).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	}

	return c.JSON(http.StatusOK, user)
}
