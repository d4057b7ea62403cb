package service

import (
	"testing"

	"filmgraph/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendPicksBestOverlappingPeer(t *testing.T) {
	env := newTestEnv(false)
	for id := int64(1); id <= 3; id++ {
		env.addUser(t, id)
	}
	for id := int64(1); id <= 4; id++ {
		env.addFilm(t, id, "Film", 2000+int(id))
	}

	// A(1) 喜欢 {1,2,3}；B(2) 喜欢 {2,3,4}；C(3) 喜欢 {3}
	env.like(t, 1, 1)
	env.like(t, 1, 2)
	env.like(t, 1, 3)
	env.like(t, 2, 2)
	env.like(t, 2, 3)
	env.like(t, 2, 4)
	env.like(t, 3, 3)

	films, err := env.recSvc.Recommend(1)
	require.NoError(t, err)
	// B 的交集是 2 > C 的 1，推荐 B 喜欢而 A 没看过的 {4}
	assert.Equal(t, []int64{4}, filmIDs(films))
}

func TestRecommendEmptyForUserWithoutLikes(t *testing.T) {
	env := newTestEnv(false)
	env.addUser(t, 1)
	env.addUser(t, 2)
	env.addFilm(t, 1, "Film", 2000)
	env.like(t, 2, 1)

	films, err := env.recSvc.Recommend(1)
	require.NoError(t, err)
	assert.Empty(t, films, "没有点赞记录的用户无法匹配，应返回空")
}

func TestRecommendEmptyWhenPeerLikesIdenticalSet(t *testing.T) {
	env := newTestEnv(false)
	env.addUser(t, 1)
	env.addUser(t, 2)
	env.addFilm(t, 1, "Film A", 2000)
	env.addFilm(t, 2, "Film B", 2001)

	// 唯一的邻居喜欢的电影和目标完全相同，差集为空
	for _, userID := range []int64{1, 2} {
		env.like(t, userID, 1)
		env.like(t, userID, 2)
	}

	films, err := env.recSvc.Recommend(1)
	require.NoError(t, err)
	assert.Empty(t, films)
}

func TestRecommendEmptyWithoutOverlap(t *testing.T) {
	env := newTestEnv(false)
	env.addUser(t, 1)
	env.addUser(t, 2)
	env.addFilm(t, 1, "Film A", 2000)
	env.addFilm(t, 2, "Film B", 2001)

	env.like(t, 1, 1)
	env.like(t, 2, 2)

	films, err := env.recSvc.Recommend(1)
	require.NoError(t, err)
	assert.Empty(t, films, "没有任何重叠邻居时应返回空")
}

func TestRecommendUnknownUser(t *testing.T) {
	env := newTestEnv(false)

	_, err := env.recSvc.Recommend(999)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestRecommendTieBreakIsDeterministic(t *testing.T) {
	env := newTestEnv(false)
	for id := int64(1); id <= 3; id++ {
		env.addUser(t, id)
	}
	for id := int64(1); id <= 4; id++ {
		env.addFilm(t, id, "Film", 2000+int(id))
	}

	// 用户 2 和 3 与目标的交集都是 1，按用户 id 升序应选 2
	env.like(t, 1, 1)
	env.like(t, 2, 1)
	env.like(t, 2, 2)
	env.like(t, 3, 1)
	env.like(t, 3, 3)

	for i := 0; i < 5; i++ {
		films, err := env.recSvc.Recommend(1)
		require.NoError(t, err)
		assert.Equal(t, []int64{2}, filmIDs(films), "同分邻居的选择应在多次调用间保持一致")
	}
}
