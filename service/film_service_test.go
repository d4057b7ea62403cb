package service

import (
	"testing"

	"filmgraph/model"
	"filmgraph/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddLikeRecordsEvent(t *testing.T) {
	env := newTestEnv(false)
	env.addUser(t, 1)
	env.addFilm(t, 10, "Matrix", 1999)

	require.NoError(t, env.filmSvc.AddLike(10, 1))

	events, err := env.feedSvc.Feed(1)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, model.EventTypeLike, events[0].EventType)
	assert.Equal(t, model.OperationAdd, events[0].Operation)
	assert.Equal(t, int64(10), events[0].EntityID)
}

func TestAddLikeIdempotentState(t *testing.T) {
	env := newTestEnv(false)
	env.addUser(t, 1)
	env.addFilm(t, 10, "Matrix", 1999)

	require.NoError(t, env.filmSvc.AddLike(10, 1))
	require.NoError(t, env.filmSvc.AddLike(10, 1))

	count, err := env.graph.LikeCount(10)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "重复点赞后的状态应与点一次相同")
}

func TestAddLikeUnknownFilm(t *testing.T) {
	env := newTestEnv(false)
	env.addUser(t, 1)

	err := env.filmSvc.AddLike(999, 1)
	assert.ErrorIs(t, err, utils.ErrNotFound, "电影不存在应返回 NotFound，而不是吞掉错误")
}

func TestAddLikeUnknownUser(t *testing.T) {
	env := newTestEnv(false)
	env.addFilm(t, 10, "Matrix", 1999)

	err := env.filmSvc.AddLike(10, 999)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestGetPopularOrdersByLikes(t *testing.T) {
	env := newTestEnv(false)
	for id := int64(1); id <= 3; id++ {
		env.addUser(t, id)
	}
	env.addFilm(t, 10, "One Like", 2020)
	env.addFilm(t, 20, "Three Likes", 2018)
	env.addFilm(t, 30, "Zero Likes", 2022)

	env.like(t, 1, 10)
	env.like(t, 1, 20)
	env.like(t, 2, 20)
	env.like(t, 3, 20)

	films, err := env.filmSvc.GetPopular(10, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []int64{20, 10, 30}, filmIDs(films), "应按点赞数降序")
}

func TestGetPopularTieBrokenByReleaseDate(t *testing.T) {
	env := newTestEnv(false)
	env.addUser(t, 1)
	env.addUser(t, 2)
	// X: 2020 年，Y: 2018 年，点赞数相同
	env.addFilm(t, 10, "Y", 2018)
	env.addFilm(t, 20, "X", 2020)
	for _, userID := range []int64{1, 2} {
		env.like(t, userID, 10)
		env.like(t, userID, 20)
	}

	films, err := env.filmSvc.GetPopular(2, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []int64{20, 10}, filmIDs(films), "同分时新片应排在前面")
}

func TestGetPopularIsStableForEqualFilms(t *testing.T) {
	env := newTestEnv(false)
	// 三部电影点赞数和发行日期完全相同，应保持输入（id 升序）顺序
	env.addFilm(t, 10, "A", 2020)
	env.addFilm(t, 20, "B", 2020)
	env.addFilm(t, 30, "C", 2020)

	films, err := env.filmSvc.GetPopular(10, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 20, 30}, filmIDs(films), "完全同分的电影应保持原有相对顺序")
}

func TestGetPopularIsPermutationOfInput(t *testing.T) {
	env := newTestEnv(false)
	env.addUser(t, 1)
	env.addFilm(t, 10, "A", 2019)
	env.addFilm(t, 20, "B", 2021)
	env.like(t, 1, 10)

	films, err := env.filmSvc.GetPopular(10, 0, 0)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{10, 20}, filmIDs(films), "排序结果应是输入的一个排列")
}

func TestGetPopularRejectsNonPositiveCount(t *testing.T) {
	env := newTestEnv(false)

	_, err := env.filmSvc.GetPopular(0, 0, 0)
	assert.ErrorIs(t, err, utils.ErrInvalidArgument)

	_, err = env.filmSvc.GetPopular(-1, 0, 0)
	assert.ErrorIs(t, err, utils.ErrInvalidArgument)
}

func TestGetPopularFiltersByGenreAndYear(t *testing.T) {
	env := newTestEnv(false)
	comedy := model.Genre{ID: 1, Name: "Comedy"}

	film := &model.Film{ID: 10, Name: "Old Comedy", ReleaseDate: date(2018), Duration: 90, Genres: []model.Genre{comedy}}
	require.NoError(t, env.films.Create(film))
	film = &model.Film{ID: 20, Name: "New Comedy", ReleaseDate: date(2020), Duration: 90, Genres: []model.Genre{comedy}}
	require.NoError(t, env.films.Create(film))
	film = &model.Film{ID: 30, Name: "New Drama", ReleaseDate: date(2020), Duration: 90, Genres: []model.Genre{{ID: 2, Name: "Drama"}}}
	require.NoError(t, env.films.Create(film))

	films, err := env.filmSvc.GetPopular(10, 1, 2020)
	require.NoError(t, err)
	assert.Equal(t, []int64{20}, filmIDs(films), "应同时按类型和年份过滤")
}

func TestCommonFilmsRankedByPopularity(t *testing.T) {
	env := newTestEnv(false)
	for id := int64(1); id <= 3; id++ {
		env.addUser(t, id)
	}
	env.addFilm(t, 10, "A", 2019)
	env.addFilm(t, 20, "B", 2020)
	env.addFilm(t, 30, "C", 2021)

	// 用户 1 和 2 共同喜欢 10、20；20 被三个人喜欢，应排前面
	env.like(t, 1, 10)
	env.like(t, 1, 20)
	env.like(t, 2, 10)
	env.like(t, 2, 20)
	env.like(t, 3, 20)
	env.like(t, 1, 30)

	films, err := env.filmSvc.CommonFilms(1, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{20, 10}, filmIDs(films))
}

func TestCommonFilmsUnknownUser(t *testing.T) {
	env := newTestEnv(false)
	env.addUser(t, 1)

	_, err := env.filmSvc.CommonFilms(1, 999)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestSearchByTitle(t *testing.T) {
	env := newTestEnv(false)
	env.addFilm(t, 10, "The Matrix", 1999)
	env.addFilm(t, 20, "Matrix Reloaded", 2003)
	env.addFilm(t, 30, "Inception", 2010)

	films, err := env.filmSvc.Search("matrix", "title")
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{10, 20}, filmIDs(films), "片名匹配应大小写不敏感")
}

func TestSearchByDirector(t *testing.T) {
	env := newTestEnv(false)
	env.addFilm(t, 10, "Inception", 2010, "Christopher Nolan")
	env.addFilm(t, 20, "Alien", 1979, "Ridley Scott")

	films, err := env.filmSvc.Search("nolan", "director")
	require.NoError(t, err)
	assert.Equal(t, []int64{10}, filmIDs(films))
}

func TestSearchByTitleAndDirector(t *testing.T) {
	env := newTestEnv(false)
	env.addFilm(t, 10, "Nolan's Dream", 2015)
	env.addFilm(t, 20, "Inception", 2010, "Christopher Nolan")
	env.addFilm(t, 30, "Alien", 1979, "Ridley Scott")

	films, err := env.filmSvc.Search("nolan", "title,director")
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{10, 20}, filmIDs(films), "命中任一字段即算匹配")
}

func TestSearchRejectsInvalidField(t *testing.T) {
	env := newTestEnv(false)

	_, err := env.filmSvc.Search("matrix", "invalid")
	assert.ErrorIs(t, err, utils.ErrInvalidArgument)
}

func TestSearchRejectsEmptyFields(t *testing.T) {
	env := newTestEnv(false)

	_, err := env.filmSvc.Search("matrix", "")
	assert.ErrorIs(t, err, utils.ErrInvalidArgument, "空字段列表应拒绝，而不是匹配所有字段")

	_, err = env.filmSvc.Search("matrix", " , ")
	assert.ErrorIs(t, err, utils.ErrInvalidArgument)
}

func TestAddFilmValidation(t *testing.T) {
	env := newTestEnv(false)

	_, err := env.filmSvc.AddFilm(&model.Film{Name: "", ReleaseDate: date(2000), Duration: 90})
	assert.ErrorIs(t, err, utils.ErrInvalidArgument, "片名为空应拒绝")

	_, err = env.filmSvc.AddFilm(&model.Film{Name: "Too Early", ReleaseDate: date(1800), Duration: 90})
	assert.ErrorIs(t, err, utils.ErrInvalidArgument, "早于 1895-12-28 应拒绝")

	_, err = env.filmSvc.AddFilm(&model.Film{Name: "No Duration", ReleaseDate: date(2000), Duration: 0})
	assert.ErrorIs(t, err, utils.ErrInvalidArgument)
}

func TestUpdateFilmKeepsReleaseDateWhenInvalid(t *testing.T) {
	env := newTestEnv(false)
	env.addFilm(t, 10, "Matrix", 1999)

	updated, err := env.filmSvc.UpdateFilm(&model.Film{ID: 10, Name: "Matrix", Duration: 130})
	require.NoError(t, err)
	assert.Equal(t, 1999, updated.ReleaseDate.Year(), "发行日期缺失时应保留原值")
}
