package handler

import (
	"net/http"
	"strconv"

	"filmgraph/model"
	"filmgraph/service"
	"filmgraph/utils"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewSvc *service.ReviewService
}

func NewReviewHandler(reviewSvc *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewSvc: reviewSvc}
}

// CreateReview 创建评论
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var review model.Review
	if err := c.ShouldBindJSON(&review); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	created, err := h.reviewSvc.CreateReview(&review)
	if err != nil {
		answerError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"review": created})
}

// UpdateReview 更新评论
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	var review model.Review
	if err := c.ShouldBindJSON(&review); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	updated, err := h.reviewSvc.UpdateReview(&review)
	if err != nil {
		answerError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"review": updated})
}

// DeleteReview 删除评论
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.reviewSvc.DeleteReview(id); err != nil {
		answerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetReview 按 id 查询评论
func (h *ReviewHandler) GetReview(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	review, err := h.reviewSvc.GetReviewByID(id)
	if err != nil {
		answerError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"review": review})
}

// GetReviews 评论列表，按 useful 降序
func (h *ReviewHandler) GetReviews(c *gin.Context) {
	filmID, _ := strconv.ParseInt(c.DefaultQuery("filmId", "0"), 10, 64)
	count, _ := strconv.Atoi(c.DefaultQuery("count", "0"))

	reviews, err := h.reviewSvc.GetReviews(filmID, count)
	if err != nil {
		answerError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"reviews": reviews})
}

// AddLike 给评论点赞
func (h *ReviewHandler) AddLike(c *gin.Context) {
	h.vote(c, h.reviewSvc.AddLike)
}

// AddDislike 给评论点踩
func (h *ReviewHandler) AddDislike(c *gin.Context) {
	h.vote(c, h.reviewSvc.AddDislike)
}

// RemoveLike 撤销点赞
func (h *ReviewHandler) RemoveLike(c *gin.Context) {
	h.vote(c, h.reviewSvc.RemoveLike)
}

// RemoveDislike 撤销点踩
func (h *ReviewHandler) RemoveDislike(c *gin.Context) {
	h.vote(c, h.reviewSvc.RemoveDislike)
}

func (h *ReviewHandler) vote(c *gin.Context, fn func(reviewID, userID int64) error) {
	reviewID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	if err := fn(reviewID, userID); err != nil {
		answerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
