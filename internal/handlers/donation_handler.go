package handlers

import (
	"net/http"

	"giftlist_backend/internal/middleware"
	"giftlist_backend/internal/services"
	"giftlist_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type DonationHandler struct {
	*BaseHandler
	donationService services.DonationService
}

func NewDonationHandler(base *BaseHandler, donationService services.DonationService) *DonationHandler {
	return &DonationHandler{
		BaseHandler:     base,
		donationService: donationService,
	}
}

func (h *DonationHandler) RegisterRoutes(r *gin.RouterGroup) {
	donations := r.Group("/gifts/:giftId/donation")
	donations.Use(middleware.AuthMiddleware())
	{
		donations.GET("", h.GetDonation)
		donations.POST("/contribute", h.Contribute)
		donations.DELETE("", h.Withdraw)
	}
}

func (h *DonationHandler) GetDonation(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	donation, err := h.donationService.GetDonation(userID, c.Param("giftId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, donation)
}

func (h *DonationHandler) Contribute(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ContributeRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	result, err := h.donationService.Contribute(userID, c.Param("giftId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *DonationHandler) Withdraw(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.donationService.Withdraw(userID, c.Param("giftId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Donation withdrawn successfully"})
}
