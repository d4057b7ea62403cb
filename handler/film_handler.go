package handler

import (
	"net/http"
	"strconv"

	"filmgraph/model"
	"filmgraph/service"
	"filmgraph/utils"

	"github.com/gin-gonic/gin"
)

type FilmHandler struct {
	filmSvc *service.FilmService
}

func NewFilmHandler(filmSvc *service.FilmService) *FilmHandler {
	return &FilmHandler{filmSvc: filmSvc}
}

// GetFilms 全部电影
func (h *FilmHandler) GetFilms(c *gin.Context) {
	films, err := h.filmSvc.GetFilms()
	if err != nil {
		answerError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"films": films})
}

// GetFilm 按 id 查询电影
func (h *FilmHandler) GetFilm(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	film, err := h.filmSvc.GetFilmByID(id)
	if err != nil {
		answerError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"film": film})
}

// CreateFilm 创建电影
func (h *FilmHandler) CreateFilm(c *gin.Context) {
	var film model.Film
	if err := c.ShouldBindJSON(&film); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	created, err := h.filmSvc.AddFilm(&film)
	if err != nil {
		answerError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"film": created})
}

// UpdateFilm 更新电影
func (h *FilmHandler) UpdateFilm(c *gin.Context) {
	var film model.Film
	if err := c.ShouldBindJSON(&film); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	updated, err := h.filmSvc.UpdateFilm(&film)
	if err != nil {
		answerError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"film": updated})
}

// DeleteFilm 删除电影
func (h *FilmHandler) DeleteFilm(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.filmSvc.DeleteFilmByID(id); err != nil {
		answerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddLike 用户给电影点赞
func (h *FilmHandler) AddLike(c *gin.Context) {
	filmID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	if err := h.filmSvc.AddLike(filmID, userID); err != nil {
		answerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoveLike 取消点赞
func (h *FilmHandler) RemoveLike(c *gin.Context) {
	filmID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	if err := h.filmSvc.RemoveLike(filmID, userID); err != nil {
		answerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetPopular 热门电影，支持 count/genreId/year 参数
func (h *FilmHandler) GetPopular(c *gin.Context) {
	count, err := strconv.Atoi(c.DefaultQuery("count", "10"))
	if err != nil {
		utils.BadRequest(c, "invalid count")
		return
	}
	genreID, _ := strconv.ParseInt(c.DefaultQuery("genreId", "0"), 10, 64)
	year, _ := strconv.Atoi(c.DefaultQuery("year", "0"))

	films, svcErr := h.filmSvc.GetPopular(count, genreID, year)
	if svcErr != nil {
		answerError(c, svcErr)
		return
	}
	utils.SuccessResponse(c, gin.H{"films": films})
}

// GetCommonFilms 两个用户共同点赞的电影
func (h *FilmHandler) GetCommonFilms(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Query("userId"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "invalid userId")
		return
	}
	friendID, err := strconv.ParseInt(c.Query("friendId"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "invalid friendId")
		return
	}

	films, svcErr := h.filmSvc.CommonFilms(userID, friendID)
	if svcErr != nil {
		answerError(c, svcErr)
		return
	}
	utils.SuccessResponse(c, gin.H{"films": films})
}

// GetLikedFilms 用户点赞过的电影
func (h *FilmHandler) GetLikedFilms(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	films, err := h.filmSvc.FilmsLikedBy(userID)
	if err != nil {
		answerError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"films": films})
}

// SearchFilms 按片名/导演搜索
func (h *FilmHandler) SearchFilms(c *gin.Context) {
	query := c.Query("query")
	by := c.DefaultQuery("by", "title,director")

	films, err := h.filmSvc.Search(query, by)
	if err != nil {
		answerError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"films": films})
}
