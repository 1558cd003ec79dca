package handlers

import (
	"net/http"

	"giftlist_backend/internal/services"
	"giftlist_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewAuthHandler(base *BaseHandler, userService services.UserService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		userService: userService,
	}
}

func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/telegram", h.TelegramLogin)
	}
}

// TelegramLogin обменивает подписанный initData из Mini App на JWT.
func (h *AuthHandler) TelegramLogin(c *gin.Context) {
	var req dto.TelegramLoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.userService.TelegramLogin(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
