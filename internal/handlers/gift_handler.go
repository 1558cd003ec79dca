package handlers

import (
	"net/http"

	"giftlist_backend/internal/middleware"
	"giftlist_backend/internal/services"
	"giftlist_backend/internal/services/dto"
	"giftlist_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type GiftHandler struct {
	*BaseHandler
	giftService services.GiftService
}

func NewGiftHandler(base *BaseHandler, giftService services.GiftService) *GiftHandler {
	return &GiftHandler{
		BaseHandler: base,
		giftService: giftService,
	}
}

func (h *GiftHandler) RegisterRoutes(r *gin.RouterGroup) {
	gifts := r.Group("/gifts")
	gifts.Use(middleware.AuthMiddleware())
	{
		gifts.POST("", h.CreateGift)
		gifts.GET("/:giftId", h.GetGift)
		gifts.PUT("/:giftId", h.UpdateGift)
		gifts.DELETE("/:giftId", h.DeleteGift)
		gifts.PUT("/:giftId/viewers", h.SetGiftViewers)

		gifts.POST("/:giftId/reserve", h.ToggleReserve)
		gifts.POST("/:giftId/given", h.ToggleGiven)
		gifts.POST("/:giftId/thank", h.Thank)
		gifts.POST("/thank-all", h.ThankAll)
	}

	wishlists := r.Group("/wishlists")
	wishlists.Use(middleware.AuthMiddleware())
	{
		wishlists.GET("/:telegramId", h.ListUserGifts)
	}
}

func (h *GiftHandler) CreateGift(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateGiftRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	gift, err := h.giftService.CreateGift(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gift)
}

func (h *GiftHandler) GetGift(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	gift, err := h.giftService.GetGift(userID, c.Param("giftId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gift)
}

func (h *GiftHandler) ListUserGifts(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	telegramID, err := ParseParamInt64(c, "telegramId")
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	gifts, err := h.giftService.ListUserGifts(userID, telegramID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gifts)
}

func (h *GiftHandler) UpdateGift(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateGiftRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	gift, err := h.giftService.UpdateGift(userID, c.Param("giftId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gift)
}

func (h *GiftHandler) DeleteGift(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.giftService.DeleteGift(userID, c.Param("giftId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Gift deleted successfully"})
}

func (h *GiftHandler) SetGiftViewers(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateViewersRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.giftService.SetGiftViewers(userID, c.Param("giftId"), req.ViewerIDs); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Gift viewers updated successfully"})
}

func (h *GiftHandler) ToggleReserve(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	gift, err := h.giftService.ToggleReserve(userID, c.Param("giftId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gift)
}

func (h *GiftHandler) ToggleGiven(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	gift, err := h.giftService.ToggleGiven(userID, c.Param("giftId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gift)
}

func (h *GiftHandler) Thank(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	gift, err := h.giftService.Thank(userID, c.Param("giftId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gift)
}

func (h *GiftHandler) ThankAll(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	thanked, err := h.giftService.ThankAll(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"thanked": thanked})
}
