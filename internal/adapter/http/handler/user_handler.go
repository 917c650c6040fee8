package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"accounts/internal/adapter/http/helper"
	"accounts/internal/adapter/http/validation"
	"accounts/internal/core/domain"
	"accounts/internal/core/model/request"
	"accounts/internal/core/model/response"
	"accounts/internal/core/port"
	"accounts/internal/shared"
	"accounts/pkg/tracing"
)

type UserHandler struct {
	svc     port.UserService
	logger  *shared.AppLogger
	metrics *shared.AppMetrics
}

func NewUserHandler(svc port.UserService, logger *shared.AppLogger, metrics *shared.AppMetrics) *UserHandler {
	return &UserHandler{
		svc:     svc,
		logger:  logger,
		metrics: metrics,
	}
}

// CreateUser handles POST /users.
func (h *UserHandler) CreateUser(c *gin.Context) {
	ctx, span := tracing.CreateChildSpan(c.Request.Context(), "handler.user.CreateUser", []attribute.KeyValue{
		attribute.String("handler.operation", "CreateUser"),
		attribute.String("handler.method", c.Request.Method),
		attribute.String("handler.path", c.FullPath()),
	})
	defer span.End()

	var params request.CreateUserRequest

	if err := c.ShouldBindJSON(&params); err != nil {
		helper.SendBadRequestError(c, "request", "Invalid request body")
		return
	}

	if err := validation.Validator.Struct(params); err != nil {
		helper.SendValidationError(c, err)
		return
	}

	user, err := h.svc.Create(ctx, domain.CreateUser{
		FullName: params.FullName,
		Email:    params.Email,
		Password: params.Password,
	})

	if h.metrics != nil {
		h.metrics.RecordUserOperation("create", err)
	}

	if err != nil {
		tracing.AddSpanError(span, err)

		if errors.Is(err, domain.ErrEmailTaken) {
			helper.SendConflictError(c, "email", "Email is already in use")
			return
		}

		var hashErr *domain.HashingError

		if errors.As(err, &hashErr) {
			h.logger.Error(ctx, "Failed to hash password", zap.Error(err))
			helper.SendInternalError(c, "Could not create user")
			return
		}

		h.logger.Error(ctx, "Failed to create user", zap.Error(err))
		helper.SendInternalError(c, "Could not create user")
		return
	}

	helper.SendSuccess(c, http.StatusCreated, toUserResponse(user))
}

// GetUserByEmail handles GET /users/:email.
func (h *UserHandler) GetUserByEmail(c *gin.Context) {
	ctx, span := tracing.CreateChildSpan(c.Request.Context(), "handler.user.GetUserByEmail", []attribute.KeyValue{
		attribute.String("handler.operation", "GetUserByEmail"),
		attribute.String("handler.method", c.Request.Method),
		attribute.String("handler.path", c.FullPath()),
	})
	defer span.End()

	email := c.Param("email")

	user, err := h.svc.GetByEmail(ctx, email)

	if h.metrics != nil {
		h.metrics.RecordUserOperation("get_by_email", err)
	}

	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helper.SendNotFoundError(c, "User not found")
			return
		}

		tracing.AddSpanError(span, err)
		h.logger.Error(ctx, "Failed to get user", zap.Error(err), zap.String("email", email))
		helper.SendInternalError(c, "Could not get user")
		return
	}

	helper.SendSuccess(c, http.StatusOK, toUserResponse(user))
}

// DeleteUserByEmail handles DELETE /users/:email, echoing back the email of
// the removed account.
func (h *UserHandler) DeleteUserByEmail(c *gin.Context) {
	ctx, span := tracing.CreateChildSpan(c.Request.Context(), "handler.user.DeleteUserByEmail", []attribute.KeyValue{
		attribute.String("handler.operation", "DeleteUserByEmail"),
		attribute.String("handler.method", c.Request.Method),
		attribute.String("handler.path", c.FullPath()),
	})
	defer span.End()

	email := c.Param("email")

	deleted, err := h.svc.DeleteByEmail(ctx, email)

	if h.metrics != nil {
		h.metrics.RecordUserOperation("delete_by_email", err)
	}

	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helper.SendNotFoundError(c, "User not found")
			return
		}

		tracing.AddSpanError(span, err)
		h.logger.Error(ctx, "Failed to delete user", zap.Error(err), zap.String("email", email))
		helper.SendInternalError(c, "Could not delete user")
		return
	}

	helper.SendSuccess(c, http.StatusOK, response.DeletedUserResponse{Email: deleted})
}

func toUserResponse(user domain.User) response.UserResponse {
	return response.UserResponse{
		ID:        user.ID.String(),
		FullName:  user.FullName,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
