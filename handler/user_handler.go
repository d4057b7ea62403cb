package handler

import (
	"net/http"

	"filmgraph/model"
	"filmgraph/service"
	"filmgraph/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userSvc *service.UserService
	recSvc  *service.RecommendationService
	feedSvc *service.FeedService
}

func NewUserHandler(userSvc *service.UserService, recSvc *service.RecommendationService, feedSvc *service.FeedService) *UserHandler {
	return &UserHandler{userSvc: userSvc, recSvc: recSvc, feedSvc: feedSvc}
}

// GetUsers 全部用户
func (h *UserHandler) GetUsers(c *gin.Context) {
	users, err := h.userSvc.GetUsers()
	if err != nil {
		answerError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"users": users})
}

// GetUser 按 id 查询用户
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.userSvc.GetUserByID(id)
	if err != nil {
		answerError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"user": user})
}

// CreateUser 创建用户
func (h *UserHandler) CreateUser(c *gin.Context) {
	var user model.User
	if err := c.ShouldBindJSON(&user); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	created, err := h.userSvc.CreateUser(&user)
	if err != nil {
		answerError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"user": created})
}

// UpdateUser 更新用户
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var user model.User
	if err := c.ShouldBindJSON(&user); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	updated, err := h.userSvc.UpdateUser(&user)
	if err != nil {
		answerError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"user": updated})
}

// DeleteUser 删除用户
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.userSvc.DeleteUserByID(id); err != nil {
		answerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddFriend 添加好友（有向）
func (h *UserHandler) AddFriend(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	friendID, ok := parseIDParam(c, "friendId")
	if !ok {
		return
	}

	if err := h.userSvc.AddFriend(userID, friendID); err != nil {
		answerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoveFriend 删除好友（有向）
func (h *UserHandler) RemoveFriend(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	friendID, ok := parseIDParam(c, "friendId")
	if !ok {
		return
	}

	if err := h.userSvc.RemoveFriend(userID, friendID); err != nil {
		answerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetFriends 好友列表
func (h *UserHandler) GetFriends(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	friends, err := h.userSvc.Friends(userID)
	if err != nil {
		answerError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"friends": friends})
}

// GetCommonFriends 共同好友
func (h *UserHandler) GetCommonFriends(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	otherID, ok := parseIDParam(c, "otherId")
	if !ok {
		return
	}

	friends, err := h.userSvc.CommonFriends(userID, otherID)
	if err != nil {
		answerError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"friends": friends})
}

// GetRecommendations 电影推荐
func (h *UserHandler) GetRecommendations(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	films, err := h.recSvc.Recommend(userID)
	if err != nil {
		answerError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"films": films})
}

// GetFeed 用户事件流
func (h *UserHandler) GetFeed(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	events, err := h.feedSvc.Feed(userID)
	if err != nil {
		answerError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"events": events})
}
