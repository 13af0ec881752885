package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"user-service/internal/usecase/user"
	apperrors "user-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	uc  user.Usecase
	log *zap.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(uc user.Usecase, log *zap.Logger) *UserHandler {
	return &UserHandler{
		uc:  uc,
		log: log,
	}
}

// CreateUserRequest represents the HTTP request body for creating a user.
// Both fields must be present; emptiness is checked by the usecase.
type CreateUserRequest struct {
	Name  *string `json:"name" binding:"required"`
	Email *string `json:"email" binding:"required"`
}

// UpdateUserRequest represents the HTTP request body for updating a user
type UpdateUserRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

// ListUsersQuery represents the query string accepted by the list endpoint
type ListUsersQuery struct {
	Limit  *uint32 `form:"limit"`
	Offset *uint32 `form:"offset"`
}

// UserResponse represents the HTTP response for user data
type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// Health handles GET /health
func Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// CreateUser handles POST /api/users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.uc.CreateUser(c.Request.Context(), user.CreateUserRequest{
		Name:  *req.Name,
		Email: *req.Email,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponse(resp.User))
}

// GetUser handles GET /api/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	resp, err := h.uc.GetUser(c.Request.Context(), user.GetUserRequest{ID: id})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponse(resp.User))
}

// UpdateUser handles PUT /api/users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.uc.UpdateUser(c.Request.Context(), user.UpdateUserRequest{
		ID:    id,
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponse(resp.User))
}

// DeleteUser handles DELETE /api/users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if _, err := h.uc.DeleteUser(c.Request.Context(), user.DeleteUserRequest{ID: id}); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListUsers handles GET /api/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	var query ListUsersQuery
	if !singleValued(c.Request.URL.Query(), "limit", "offset") {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		h.log.Debug("invalid list query", zap.String("query", c.Request.URL.RawQuery), zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	resp, err := h.uc.ListUsers(c.Request.Context(), user.ListUsersRequest{
		Limit:  query.Limit,
		Offset: query.Offset,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	users := make([]UserResponse, len(resp.Users))
	for i, u := range resp.Users {
		users[i] = toResponse(u)
	}

	c.JSON(http.StatusOK, users)
}

// singleValued reports whether each present key appears once with a non-empty value.
// Form binding would otherwise read "" as 0 and drop repeats.
func singleValued(values url.Values, keys ...string) bool {
	for _, k := range keys {
		v, ok := values[k]
		if ok && (len(v) != 1 || v[0] == "") {
			return false
		}
	}
	return true
}

// parseID reads the :id path parameter, writing a 400 when it is not a UUID
func (h *UserHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		h.log.Debug("invalid user id", zap.String("id", idStr), zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid user ID"})
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON decodes the request body into obj.
// Wrong content type is 415, malformed JSON is 400, missing or mistyped fields are 422.
func (h *UserHandler) bindJSON(c *gin.Context, obj any) bool {
	if c.ContentType() != binding.MIMEJSON {
		c.JSON(http.StatusUnsupportedMediaType, ErrorResponse{
			Error: "Expected request with `Content-Type: application/json`",
		})
		return false
	}

	body, err := c.GetRawData()
	if err != nil || !json.Valid(body) {
		h.log.Debug("malformed request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid JSON body"})
		return false
	}

	err = binding.JSON.BindBody(body, obj)
	if err == nil {
		return true
	}

	h.log.Debug("invalid request body", zap.Error(err))

	var validationErrors validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &validationErrors):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: fmt.Sprintf("missing field `%s`", strings.ToLower(validationErrors[0].Field())),
		})
	case errors.As(err, &typeErr) && typeErr.Field == "":
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: fmt.Sprintf("invalid type for request body: expected object, got %s", typeErr.Value),
		})
	case errors.As(err, &typeErr):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: fmt.Sprintf("invalid type for field `%s`", typeErr.Field),
		})
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid JSON body"})
	}
	return false
}

// handleError converts usecase errors to appropriate HTTP responses
func (h *UserHandler) handleError(c *gin.Context, err error) {
	_ = c.Error(err)

	appErr, ok := apperrors.As(err)
	if !ok {
		h.log.Error("unexpected error", zap.Error(err))
		appErr = apperrors.ErrInternal
	}

	h.log.Debug("request failed",
		zap.Stringer("kind", appErr.Kind),
		zap.Int("status", appErr.HTTPStatus()),
		zap.Error(err),
	)

	c.JSON(appErr.HTTPStatus(), ErrorResponse{Error: appErr.Message})
}

func toResponse(u user.User) UserResponse {
	return UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}
