package handlers

import (
	"net/http"

	"giftlist_backend/internal/middleware"
	"giftlist_backend/internal/services"
	"giftlist_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type FriendHandler struct {
	*BaseHandler
	friendService services.FriendService
}

func NewFriendHandler(base *BaseHandler, friendService services.FriendService) *FriendHandler {
	return &FriendHandler{
		BaseHandler:   base,
		friendService: friendService,
	}
}

func (h *FriendHandler) RegisterRoutes(r *gin.RouterGroup) {
	friends := r.Group("/friends")
	friends.Use(middleware.AuthMiddleware())
	{
		friends.GET("", h.ListFriends)
		friends.DELETE("/:friendId", h.RemoveFriend)

		friends.POST("/requests", h.SendRequest)
		friends.GET("/requests/incoming", h.ListIncoming)
		friends.GET("/requests/outgoing", h.ListOutgoing)
		friends.POST("/requests/:requestId/respond", h.Respond)
		friends.DELETE("/requests/:requestId", h.CancelRequest)

		friends.POST("/block/:userId", h.Block)
		friends.DELETE("/block/:userId", h.Unblock)
	}
}

func (h *FriendHandler) SendRequest(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SendFriendRequestRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	request, err := h.friendService.SendRequest(userID, req.RecipientID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, request)
}

func (h *FriendHandler) CancelRequest(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.friendService.CancelRequest(userID, c.Param("requestId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Friend request cancelled"})
}

func (h *FriendHandler) Respond(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.RespondFriendRequestRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.friendService.Respond(userID, c.Param("requestId"), req.Action); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Friend request processed", "action": req.Action})
}

func (h *FriendHandler) RemoveFriend(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.friendService.RemoveFriend(userID, c.Param("friendId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Friend removed"})
}

func (h *FriendHandler) Block(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.friendService.Block(userID, c.Param("userId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User blocked"})
}

func (h *FriendHandler) Unblock(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.friendService.Unblock(userID, c.Param("userId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User unblocked"})
}

func (h *FriendHandler) ListFriends(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	friends, err := h.friendService.ListFriends(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, friends)
}

func (h *FriendHandler) ListIncoming(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	requests, err := h.friendService.ListIncoming(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

func (h *FriendHandler) ListOutgoing(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	requests, err := h.friendService.ListOutgoing(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}
