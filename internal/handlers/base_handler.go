package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"workbridge/internal/middleware"
	"workbridge/internal/validator"
	"workbridge/pkg/apperrors"
)

// BaseHandler carries the shared request plumbing every handler needs.
type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	return &BaseHandler{validator: v}
}

// BindAndValidate decodes the JSON body into req and runs struct
// validation, writing the error response itself on failure.
func (h *BaseHandler) BindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body"))
		return false
	}
	if err := h.validator.Validate(req); err != nil {
		if ve, ok := err.(*validator.ValidationError); ok {
			apperrors.HandleError(c, apperrors.ValidationError(ve.Errors))
		} else {
			apperrors.HandleError(c, apperrors.NewBadRequestError(err.Error()))
		}
		return false
	}
	return true
}

// CurrentUserID pulls the authenticated caller's id, failing the
// request when the auth middleware did not run.
func (h *BaseHandler) CurrentUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authentication required"))
		return "", false
	}
	return userID, true
}

func (h *BaseHandler) JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

func (h *BaseHandler) OK(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, payload)
}

func (h *BaseHandler) Created(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusCreated, payload)
}
