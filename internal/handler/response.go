package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/medlaunch/onboard-api/internal/repository"
	"github.com/medlaunch/onboard-api/internal/validation"
	apperrors "github.com/medlaunch/onboard-api/pkg/errors"
)

// Arabic user-facing messages. These are the strings the dashboard and the
// onboarding form display verbatim.
const (
	MsgSubmissionCreated = "تم إرسال النموذج بنجاح"
	MsgStatusUpdated     = "تم تحديث الحالة بنجاح"
	MsgValidationFailed  = "خطأ في البيانات المدخلة"
	MsgNotFound          = "الطلب غير موجود"
	MsgServerError       = "خطأ في الخادم"
	MsgUnauthorized      = "يجب تسجيل الدخول"
	MsgBadCredentials    = "بيانات الدخول غير صحيحة"
)

// Response is the uniform API envelope.
type Response struct {
	Success bool                    `json:"success"`
	Message string                  `json:"message,omitempty"`
	Data    interface{}             `json:"data,omitempty"`
	Errors  []validation.FieldError `json:"errors,omitempty"`
	// Detail carries the raw error string outside production only.
	Detail string `json:"error,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{Success: true, Data: data}
}

func NewMessageResponse(message string, data interface{}) *Response {
	return &Response{Success: true, Message: message, Data: data}
}

func NewErrorResponse(message string) *Response {
	return &Response{Success: false, Message: message}
}

func NewValidationResponse(errs []validation.FieldError) *Response {
	return &Response{Success: false, Message: MsgValidationFailed, Errors: errs}
}

// RespondError maps application errors onto the envelope. Infrastructure
// failures are logged and surfaced as a generic message; the raw error string
// is attached only when production is false.
func RespondError(c *gin.Context, err error, production bool) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, NewValidationResponse(verrs))
		return
	}

	var ferr validation.FieldError
	if errors.As(err, &ferr) {
		c.JSON(http.StatusBadRequest, NewValidationResponse([]validation.FieldError{ferr}))
		return
	}

	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, NewErrorResponse(MsgNotFound))
		return
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		resp := NewErrorResponse(appErr.Message)
		if !production && appErr.Err != nil {
			resp.Detail = appErr.Err.Error()
		}
		c.JSON(appErr.StatusCode(), resp)
		return
	}

	log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("unhandled request error")
	resp := NewErrorResponse(MsgServerError)
	if !production {
		resp.Detail = err.Error()
	}
	c.JSON(http.StatusInternalServerError, resp)
}
