package handlers

import (
	"github.com/gin-gonic/gin"

	"workbridge/internal/middleware"
	"workbridge/internal/services"
	"workbridge/internal/services/dto"
	"workbridge/pkg/apperrors"
)

type RatingHandler struct {
	*BaseHandler
	ratingService *services.RatingService
}

func NewRatingHandler(base *BaseHandler, ratingService *services.RatingService) *RatingHandler {
	return &RatingHandler{BaseHandler: base, ratingService: ratingService}
}

func (h *RatingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/ratings", middleware.AuthMiddleware(), h.Submit)
	rg.GET("/jobs/:id/ratings", h.ListForJob)
	rg.GET("/jobs/:id/rating-deadline", h.GetDeadline)
	rg.GET("/users/:id/rating-stats", h.GetUserStats)
}

func (h *RatingHandler) Submit(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitRatingRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	resp, err := h.ratingService.SubmitRating(userID, &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

func (h *RatingHandler) ListForJob(c *gin.Context) {
	resp, err := h.ratingService.GetJobRatings(c.Param("id"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, gin.H{"ratings": resp})
}

func (h *RatingHandler) GetDeadline(c *gin.Context) {
	resp, err := h.ratingService.GetRatingDeadline(c.Param("id"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

func (h *RatingHandler) GetUserStats(c *gin.Context) {
	resp, err := h.ratingService.GetUserRatingStats(c.Param("id"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}
