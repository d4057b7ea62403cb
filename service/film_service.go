package service

import (
	"sort"
	"strings"
	"time"

	"filmgraph/model"
	"filmgraph/storage"
	"filmgraph/utils"
)

// 电影发行日期下限：1895-12-28（电影诞生日）
var earliestReleaseDate = time.Date(1895, time.December, 28, 0, 0, 0, 0, time.UTC)

// FilmService 电影业务逻辑：点赞、热门排行、共同电影、搜索
type FilmService struct {
	films storage.FilmStore
	users storage.UserStore
	graph storage.GraphStore
	feed  *FeedService
}

func NewFilmService(films storage.FilmStore, users storage.UserStore, graph storage.GraphStore, feed *FeedService) *FilmService {
	return &FilmService{films: films, users: users, graph: graph, feed: feed}
}

// AddFilm 创建电影
func (s *FilmService) AddFilm(film *model.Film) (*model.Film, error) {
	if err := validateFilm(film); err != nil {
		return nil, err
	}
	if err := s.films.Create(film); err != nil {
		return nil, err
	}
	return film, nil
}

// UpdateFilm 更新电影；发行日期缺失或早于下限时保留原值
func (s *FilmService) UpdateFilm(film *model.Film) (*model.Film, error) {
	current, err := s.films.GetByID(film.ID)
	if err != nil {
		return nil, err
	}

	if film.ReleaseDate.IsZero() || film.ReleaseDate.Before(earliestReleaseDate) {
		film.ReleaseDate = current.ReleaseDate
	}
	if err := validateFilm(film); err != nil {
		return nil, err
	}

	if err := s.films.Update(film); err != nil {
		return nil, err
	}
	return film, nil
}

func (s *FilmService) GetFilms() ([]model.Film, error) {
	return s.films.GetAll()
}

func (s *FilmService) GetFilmByID(id int64) (*model.Film, error) {
	return s.films.GetByID(id)
}

func (s *FilmService) DeleteFilmByID(id int64) error {
	return s.films.Delete(id)
}

// AddLike 用户给电影点赞。重复点赞幂等；用户或电影不存在时返回 ErrNotFound
// （存储层的错误原样向上传播，不吞掉）
func (s *FilmService) AddLike(filmID, userID int64) error {
	if err := s.checkExistence(filmID, userID); err != nil {
		return err
	}
	if err := s.graph.AddLike(userID, filmID); err != nil {
		return err
	}
	return s.feed.Record(userID, model.EventTypeLike, model.OperationAdd, filmID)
}

// RemoveLike 取消点赞，幂等；REMOVE 事件照常记录
func (s *FilmService) RemoveLike(filmID, userID int64) error {
	if err := s.checkExistence(filmID, userID); err != nil {
		return err
	}
	if err := s.graph.RemoveLike(userID, filmID); err != nil {
		return err
	}
	return s.feed.Record(userID, model.EventTypeLike, model.OperationRemove, filmID)
}

// GetPopular 热门电影：按点赞数降序，同分按发行日期降序。
// genreID/year 为 0 表示不过滤。
func (s *FilmService) GetPopular(count int, genreID int64, year int) ([]model.Film, error) {
	if count <= 0 {
		return nil, utils.InvalidArgumentf("count must be positive, got %d", count)
	}

	films, err := s.films.Filtered(genreID, year)
	if err != nil {
		return nil, err
	}

	ranked, err := s.rankByPopularity(films)
	if err != nil {
		return nil, err
	}

	if len(ranked) > count {
		ranked = ranked[:count]
	}
	return ranked, nil
}

// CommonFilms 两个用户共同点赞的电影，按热度排序
func (s *FilmService) CommonFilms(userID, friendID int64) ([]model.Film, error) {
	if _, err := s.users.GetByID(userID); err != nil {
		return nil, err
	}
	if _, err := s.users.GetByID(friendID); err != nil {
		return nil, err
	}

	userFilms, err := s.graph.LikedFilms(userID)
	if err != nil {
		return nil, err
	}
	friendFilms, err := s.graph.LikedFilms(friendID)
	if err != nil {
		return nil, err
	}

	commonIDs := utils.Intersect(userFilms, friendFilms)
	films, err := s.films.GetByIDs(commonIDs)
	if err != nil {
		return nil, err
	}
	return s.rankByPopularity(films)
}

// FilmsLikedBy 用户点赞过的电影
func (s *FilmService) FilmsLikedBy(userID int64) ([]model.Film, error) {
	if _, err := s.users.GetByID(userID); err != nil {
		return nil, err
	}

	filmIDs, err := s.graph.LikedFilms(userID)
	if err != nil {
		return nil, err
	}
	return s.films.GetByIDs(filmIDs)
}

// Search 按片名和/或导演名做大小写不敏感的子串匹配，结果按热度排序。
// by 是逗号分隔的字段列表，只允许 title 和 director。
func (s *FilmService) Search(query, by string) ([]model.Film, error) {
	fields, err := parseSearchFields(by)
	if err != nil {
		return nil, err
	}

	films, err := s.films.GetAll()
	if err != nil {
		return nil, err
	}

	lowerQuery := strings.ToLower(query)
	matched := make([]model.Film, 0)
	for _, film := range films {
		if matchesSearch(film, lowerQuery, fields) {
			matched = append(matched, film)
		}
	}
	return s.rankByPopularity(matched)
}

// rankByPopularity 点赞数降序，同分按发行日期降序（新片在前）；稳定排序。
// 点赞数单条批量查询；缺失或异常的负值一律按 0 处理。
func (s *FilmService) rankByPopularity(films []model.Film) ([]model.Film, error) {
	if len(films) == 0 {
		return films, nil
	}

	filmIDs := make([]int64, len(films))
	for i, film := range films {
		filmIDs[i] = film.ID
	}

	counts, err := s.graph.LikeCounts(filmIDs)
	if err != nil {
		return nil, err
	}

	likesOf := func(filmID int64) int {
		if count := counts[filmID]; count > 0 {
			return count
		}
		return 0
	}

	sort.SliceStable(films, func(i, j int) bool {
		likesI, likesJ := likesOf(films[i].ID), likesOf(films[j].ID)
		if likesI != likesJ {
			return likesI > likesJ
		}
		return films[i].ReleaseDate.After(films[j].ReleaseDate)
	})
	return films, nil
}

func (s *FilmService) checkExistence(filmID, userID int64) error {
	exists, err := s.films.Exists(filmID)
	if err != nil {
		return err
	}
	if !exists {
		return utils.NotFoundf("film %d not found", filmID)
	}

	exists, err = s.users.Exists(userID)
	if err != nil {
		return err
	}
	if !exists {
		return utils.NotFoundf("user %d not found", userID)
	}
	return nil
}

func validateFilm(film *model.Film) error {
	if strings.TrimSpace(film.Name) == "" {
		return utils.InvalidArgumentf("film name must not be blank")
	}
	if len(film.Description) > 200 {
		return utils.InvalidArgumentf("film description must be at most 200 characters")
	}
	if film.ReleaseDate.Before(earliestReleaseDate) {
		return utils.InvalidArgumentf("release date must not be before 1895-12-28")
	}
	if film.Duration <= 0 {
		return utils.InvalidArgumentf("film duration must be positive")
	}
	return nil
}

// parseSearchFields 解析搜索字段参数；空串或非法字段一律拒绝
func parseSearchFields(by string) ([]string, error) {
	fields := make([]string, 0, 2)
	for _, token := range strings.Split(by, ",") {
		field := strings.TrimSpace(token)
		if field == "" {
			continue
		}
		if field != "title" && field != "director" {
			return nil, utils.InvalidArgumentf("invalid search field %q, allowed values: title, director", field)
		}
		fields = append(fields, field)
	}
	if len(fields) == 0 {
		return nil, utils.InvalidArgumentf("search fields must not be empty")
	}
	return fields, nil
}

// matchesSearch 任意一个请求字段命中即算匹配
func matchesSearch(film model.Film, lowerQuery string, fields []string) bool {
	for _, field := range fields {
		if field == "title" && strings.Contains(strings.ToLower(film.Name), lowerQuery) {
			return true
		}
		if field == "director" {
			for _, director := range film.Directors {
				if strings.Contains(strings.ToLower(director.Name), lowerQuery) {
					return true
				}
			}
		}
	}
	return false
}
