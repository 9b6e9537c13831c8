package util

import (
	"errors"
	"net/http"

	"schoolhub_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Response is the envelope returned by every endpoint.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// PageResponse wraps paginated list payloads.
type PageResponse struct {
	List       interface{} `json:"list"`
	Count      int64       `json:"count"`
	Page       int         `json:"page"`
	Size       int         `json:"size"`
	TotalPages int         `json:"totalPages,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Resource not found")
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error", zap.Error(err))
	InternalServerError(c)
}

// HandleServiceError maps the service error taxonomy onto HTTP statuses.
// Anything outside the taxonomy is logged and surfaced as a 500.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrSchoolNotFound),
		errors.Is(err, ErrAdminNotFound),
		errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrSchoolAdminNotFound),
		errors.Is(err, ErrAssessmentNotFound),
		errors.Is(err, ErrTakerNotFound),
		errors.Is(err, ErrQuestionNotFound),
		errors.Is(err, ErrQuestionNotAttached),
		errors.Is(err, gorm.ErrRecordNotFound):
		Error(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrEmailRegistered),
		errors.Is(err, ErrNoQuestions),
		errors.Is(err, ErrNotGradable),
		errors.Is(err, ErrInvalidPassMark),
		errors.Is(err, ErrInvalidDuration),
		errors.Is(err, ErrInvalidOptionCount),
		errors.Is(err, ErrAnswerNotAnOption),
		errors.Is(err, ErrTakerAlreadyGraded),
		errors.Is(err, ErrTakerCompleted),
		errors.Is(err, ErrInvalidOTP):
		Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidCredentials):
		Error(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrPermissionDenied),
		errors.Is(err, ErrNotSchoolAdmin),
		errors.Is(err, ErrNotAssigned),
		errors.Is(err, ErrSuperAdminOnly):
		Error(c, http.StatusForbidden, err.Error())
	default:
		LogInternalError(c, err)
	}
}
