package handlers

import (
	"github.com/gin-gonic/gin"

	"workbridge/internal/middleware"
	"workbridge/internal/models"
	"workbridge/internal/services"
	"workbridge/internal/services/dto"
	"workbridge/pkg/apperrors"
)

type BidHandler struct {
	*BaseHandler
	bidService *services.BidService
}

func NewBidHandler(base *BaseHandler, bidService *services.BidService) *BidHandler {
	return &BidHandler{BaseHandler: base, bidService: bidService}
}

func (h *BidHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/jobs/:id/bids", h.List)

	authed := rg.Group("", middleware.AuthMiddleware())
	{
		authed.POST("/jobs/:id/bids",
			middleware.RequireRoles(models.UserRoleFreelancer), h.Place)
		authed.POST("/jobs/:id/bids/choose",
			middleware.RequireRoles(models.UserRoleClient), h.Choose)
	}
}

func (h *BidHandler) Place(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req dto.PlaceBidRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	resp, err := h.bidService.PlaceBid(c.Param("id"), userID, req.Amount)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

func (h *BidHandler) List(c *gin.Context) {
	resp, err := h.bidService.GetBids(c.Param("id"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, gin.H{"bids": resp})
}

func (h *BidHandler) Choose(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req dto.ChooseBidRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	if err := h.bidService.ChooseBid(c.Param("id"), userID, req.FreelancerID); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, gin.H{"message": "Bid accepted"})
}
