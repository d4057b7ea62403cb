package service

import (
	"fmt"
	"testing"
	"time"

	"filmgraph/model"
	"filmgraph/storage"

	"github.com/stretchr/testify/require"
)

// testEnv 基于内存后端搭起完整的服务依赖
type testEnv struct {
	users   *storage.MemoryUserStore
	films   *storage.MemoryFilmStore
	graph   *storage.MemoryGraphStore
	events  *storage.MemoryEventStore
	reviews *storage.MemoryReviewStore

	feedSvc   *FeedService
	filmSvc   *FilmService
	userSvc   *UserService
	recSvc    *RecommendationService
	reviewSvc *ReviewService
}

func newTestEnv(includeFriends bool) *testEnv {
	env := &testEnv{
		users:   storage.NewMemoryUserStore(),
		films:   storage.NewMemoryFilmStore(),
		graph:   storage.NewMemoryGraphStore(),
		events:  storage.NewMemoryEventStore(),
		reviews: storage.NewMemoryReviewStore(),
	}
	env.feedSvc = NewFeedService(env.events, env.users, env.graph, includeFriends)
	env.filmSvc = NewFilmService(env.films, env.users, env.graph, env.feedSvc)
	env.userSvc = NewUserService(env.users, env.graph, env.feedSvc)
	env.recSvc = NewRecommendationService(env.users, env.films, env.graph)
	env.reviewSvc = NewReviewService(env.reviews, env.users, env.films, env.feedSvc)
	return env
}

// addUser 直接写入存储层，id 由调用方指定
func (env *testEnv) addUser(t *testing.T, id int64) {
	t.Helper()
	err := env.users.Create(&model.User{
		ID:       id,
		Email:    fmt.Sprintf("user%d@example.com", id),
		Login:    fmt.Sprintf("user%d", id),
		Name:     fmt.Sprintf("User %d", id),
		Birthday: time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
}

// addFilm 直接写入存储层
func (env *testEnv) addFilm(t *testing.T, id int64, name string, year int, directors ...string) {
	t.Helper()
	film := &model.Film{
		ID:          id,
		Name:        name,
		Description: "test film",
		ReleaseDate: time.Date(year, time.June, 1, 0, 0, 0, 0, time.UTC),
		Duration:    120,
		Mpa:         model.Mpa{ID: 1, Name: "G"},
	}
	for i, director := range directors {
		film.Directors = append(film.Directors, model.Director{ID: int64(i + 1), Name: director})
	}
	require.NoError(t, env.films.Create(film))
}

// like 直接写点赞边
func (env *testEnv) like(t *testing.T, userID, filmID int64) {
	t.Helper()
	require.NoError(t, env.graph.AddLike(userID, filmID))
}

func filmIDs(films []model.Film) []int64 {
	ids := make([]int64, len(films))
	for i, film := range films {
		ids[i] = film.ID
	}
	return ids
}

func boolPtr(v bool) *bool {
	return &v
}

func date(year int) time.Time {
	return time.Date(year, time.June, 1, 0, 0, 0, 0, time.UTC)
}
