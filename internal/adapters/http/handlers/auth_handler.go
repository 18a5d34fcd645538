package handlers

import (
	"errors"
	"strings"
	"time"

	"garagehub/internal/adapters/http/middleware"
	"garagehub/internal/adapters/persistence/models"
	"garagehub/internal/config"
	"garagehub/internal/core/domain"
	"garagehub/internal/core/services"
	"garagehub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService    *services.AuthService
	sessionService *services.SessionService
	cfg            *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, sessionService *services.SessionService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		sessionService: sessionService,
		cfg:            cfg,
	}
}

// LoginRequest represents login request body
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest represents registration request body
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Login handles user login
// @Summary Login user
// @Description Authenticate user and issue a session cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.Message
// @Failure 401 {object} response.Message
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Validate required fields
	if req.Username == "" {
		return response.BadRequest(c, "Username is required")
	}
	if req.Password == "" {
		return response.BadRequest(c, "Password is required")
	}

	// Login
	input := &services.LoginInput{
		Username:  strings.TrimSpace(req.Username),
		Password:  req.Password,
		UserAgent: c.Get("User-Agent"),
		IPAddress: c.IP(),
	}

	user, session, err := h.authService.Login(c.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return response.Unauthorized(c, "Invalid username or password")
		}
		return response.InternalServerError(c, "Failed to login")
	}

	// Set session cookie
	h.setSessionCookie(c, session.Token)

	return response.OK(c, fiber.Map{
		"user":         user.ToResponse(),
		"sessionToken": session.Token,
	})
}

// Register handles user registration
// @Summary Register new user
// @Description Register a new mechanic or admin account
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Registration data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} response.Message
// @Failure 409 {object} response.Message
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Validate required fields
	if req.Username == "" {
		return response.BadRequest(c, "Username is required")
	}
	if req.Password == "" {
		return response.BadRequest(c, "Password is required")
	}
	if len(req.Password) < 6 {
		return response.BadRequest(c, "Password must be at least 6 characters")
	}

	// Register user
	input := &services.RegisterInput{
		Username: strings.TrimSpace(req.Username),
		Password: req.Password,
		Role:     strings.TrimSpace(req.Role),
	}

	user, err := h.authService.Register(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserAlreadyExists):
			return response.Conflict(c, "Username already exists")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid role")
		default:
			return response.InternalServerError(c, "Failed to register user")
		}
	}

	return response.Created(c, fiber.Map{
		"user": user.ToResponse(),
	})
}

// Logout handles user logout
// @Summary Logout user
// @Description Invalidate the current session and clear the cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} response.Message
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	// Invalidate whatever session the cookie points at; unknown tokens
	// are fine, logout always succeeds
	token := c.Cookies(middleware.SessionCookie)
	if token != "" {
		_ = h.authService.Logout(c.Context(), token)
	}

	// Clear cookie
	h.clearSessionCookie(c)

	return response.OK(c, response.Message{Message: "Logged out successfully"})
}

// Session returns the state of the current session
// @Summary Get current session
// @Description Check whether the request carries a valid session
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /auth/session [get]
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	token := c.Cookies(middleware.SessionCookie)
	if token == "" {
		return h.unauthenticated(c)
	}

	session, err := h.sessionService.Validate(c.Context(), token)
	if err != nil {
		return response.InternalServerError(c, "Session validation failed")
	}
	if session == nil {
		h.clearSessionCookie(c)
		return h.unauthenticated(c)
	}

	return response.OK(c, fiber.Map{
		"authenticated": true,
		"user":          session.User.ToResponse(),
		"session":       session.ToResponse(),
	})
}

// Sessions lists the active sessions of the authenticated user
// @Summary List active sessions
// @Description List the authenticated user's unexpired sessions
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} response.Message
// @Router /auth/sessions [get]
func (h *AuthHandler) Sessions(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	sessions, err := h.sessionService.ActiveSessions(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list sessions")
	}

	items := make([]*models.SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		items = append(items, s.ToResponse())
	}

	return response.OK(c, fiber.Map{
		"sessions": items,
	})
}

// LogoutAll handles logout from all devices
// @Summary Logout from all devices
// @Description Invalidate every session of the authenticated user
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} response.Message
// @Failure 401 {object} response.Message
// @Router /auth/logout-all [post]
func (h *AuthHandler) LogoutAll(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	if err := h.authService.LogoutAll(c.Context(), userID); err != nil {
		return response.InternalServerError(c, "Failed to logout from all devices")
	}

	// Clear cookie
	h.clearSessionCookie(c)

	return response.OK(c, response.Message{Message: "Logged out from all devices"})
}

func (h *AuthHandler) unauthenticated(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"authenticated": false,
		"user":          nil,
	})
}

// setSessionCookie sets the session cookie, valid as long as the session
func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(services.SessionDuration.Seconds()),
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})
}

// clearSessionCookie clears the session cookie
func (h *AuthHandler) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-1 * time.Hour),
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})
}
