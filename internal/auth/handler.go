package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/societyhub/backend/internal/models"
	"github.com/societyhub/backend/pkg/response"
	"github.com/societyhub/backend/pkg/utils"
)

// SignupRequest is the body for POST /api/auth/signup and /api/auth/admin-signup.
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name" binding:"required"`
	Phone    string `json:"phone"`
}

// LoginRequest is the body for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse is the auth response with JWT.
type TokenResponse struct {
	Token string            `json:"token"`
	User  models.UserPublic `json:"user"`
}

// Handler handles auth HTTP endpoints.
type Handler struct {
	repo   *Repository
	jwt    *JWTService
	logger *zap.Logger
}

// NewHandler creates an auth handler.
func NewHandler(repo *Repository, jwt *JWTService, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, jwt: jwt, logger: logger}
}

// Signup handles POST /api/auth/signup. New accounts are tenants.
func (h *Handler) Signup(c *gin.Context) {
	h.signup(c, models.RoleTenant)
}

// AdminSignup handles POST /api/auth/admin-signup.
func (h *Handler) AdminSignup(c *gin.Context) {
	h.signup(c, models.RoleAdmin)
}

func (h *Handler) signup(c *gin.Context, role models.Role) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		response.Internal(c, "failed to hash password")
		return
	}

	user, err := h.repo.Create(c.Request.Context(), req.Email, hash, req.FullName, req.Phone, role)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateEmail) {
			response.BadRequest(c, models.ErrDuplicateEmail.Error())
			return
		}
		h.logger.Error("create user", zap.Error(err))
		response.Internal(c, "failed to create account")
		return
	}

	token, err := h.jwt.Generate(user.ID, user.Email, string(user.Role), user.SocietyID)
	if err != nil {
		response.Internal(c, "failed to generate token")
		return
	}

	response.Created(c, TokenResponse{Token: token, User: user.ToPublic()})
}

// Login handles POST /api/auth/login. Unknown email and wrong password
// return the same message so accounts cannot be enumerated.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	user, err := h.repo.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		response.Unauthorized(c, models.ErrInvalidCredentials.Error())
		return
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		response.Unauthorized(c, models.ErrInvalidCredentials.Error())
		return
	}

	token, err := h.jwt.Generate(user.ID, user.Email, string(user.Role), user.SocietyID)
	if err != nil {
		response.Internal(c, "failed to generate token")
		return
	}

	c.JSON(http.StatusOK, response.Body{Success: true, Data: TokenResponse{Token: token, User: user.ToPublic()}})
}

// Me handles GET /api/auth/me. Returns the user record linked to the
// current session claims.
func (h *Handler) Me(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)
	user, err := h.repo.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			response.NotFound(c, "account no longer exists")
			return
		}
		response.Internal(c, "failed to load account")
		return
	}
	response.OK(c, user.ToPublic())
}

// UpdateMe handles PATCH /api/auth/me for profile edits.
func (h *Handler) UpdateMe(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)
	var req struct {
		FullName string `json:"full_name"`
		Phone    string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request")
		return
	}
	if err := h.repo.UpdateProfile(c.Request.Context(), userID, req.FullName, req.Phone); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			response.NotFound(c, "account no longer exists")
			return
		}
		response.Internal(c, "failed to update profile")
		return
	}
	user, err := h.repo.GetByID(c.Request.Context(), userID)
	if err != nil {
		response.Internal(c, "failed to load account")
		return
	}
	response.OK(c, user.ToPublic())
}

// List handles GET /api/users (admin only).
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context())
	if err != nil {
		response.Internal(c, "failed to list users")
		return
	}
	response.OK(c, list)
}
