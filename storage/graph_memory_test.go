package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddLikeIdempotent(t *testing.T) {
	store := NewMemoryGraphStore()

	require.NoError(t, store.AddLike(1, 100))
	require.NoError(t, store.AddLike(1, 100))

	count, err := store.LikeCount(100)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "重复点赞不应增加计数")
}

func TestRemoveLikeIdempotent(t *testing.T) {
	store := NewMemoryGraphStore()

	require.NoError(t, store.AddLike(1, 100))
	require.NoError(t, store.RemoveLike(1, 100))
	require.NoError(t, store.RemoveLike(1, 100), "删除不存在的点赞应是空操作")

	count, err := store.LikeCount(100)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestLikeCountNeverNegative(t *testing.T) {
	store := NewMemoryGraphStore()

	count, err := store.LikeCount(999)
	require.NoError(t, err)
	assert.Equal(t, 0, count, "没有点赞记录的电影计数应为 0")
}

func TestLikeCountEqualsDistinctUsers(t *testing.T) {
	store := NewMemoryGraphStore()

	require.NoError(t, store.AddLike(1, 100))
	require.NoError(t, store.AddLike(2, 100))
	require.NoError(t, store.AddLike(3, 100))
	require.NoError(t, store.AddLike(3, 100))

	count, err := store.LikeCount(100)
	require.NoError(t, err)
	assert.Equal(t, 3, count, "计数应等于点过赞的不同用户数")
}

func TestLikedFilmsAndSnapshot(t *testing.T) {
	store := NewMemoryGraphStore()

	require.NoError(t, store.AddLike(1, 100))
	require.NoError(t, store.AddLike(1, 200))
	require.NoError(t, store.AddLike(2, 200))

	films, err := store.LikedFilms(1)
	require.NoError(t, err)
	assert.Equal(t, []int64{100, 200}, films)

	snapshot, err := store.AllLikes()
	require.NoError(t, err)
	assert.Len(t, snapshot, 2)
	assert.Contains(t, snapshot[2], int64(200))
}

func TestFriendEdgesAreDirectional(t *testing.T) {
	store := NewMemoryGraphStore()

	require.NoError(t, store.AddFriend(1, 2))

	mutual, err := store.IsMutual(1, 2)
	require.NoError(t, err)
	assert.False(t, mutual, "单向边不应算互为好友")

	friends, err := store.FriendsOf(1)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, friends)

	friends, err = store.FriendsOf(2)
	require.NoError(t, err)
	assert.Empty(t, friends, "反向边不应自动产生")
}

func TestIsMutualAfterReciprocalAdd(t *testing.T) {
	store := NewMemoryGraphStore()

	require.NoError(t, store.AddFriend(1, 2))
	require.NoError(t, store.AddFriend(2, 1))

	mutual, err := store.IsMutual(1, 2)
	require.NoError(t, err)
	assert.True(t, mutual, "双向边都存在时应互为好友")

	// 好友列表是有向的，与互为好友的状态无关
	friends, _ := store.FriendsOf(1)
	assert.Equal(t, []int64{2}, friends)
	friends, _ = store.FriendsOf(2)
	assert.Equal(t, []int64{1}, friends)
}

func TestRemoveFriendKeepsReverseEdge(t *testing.T) {
	store := NewMemoryGraphStore()

	require.NoError(t, store.AddFriend(1, 2))
	require.NoError(t, store.AddFriend(2, 1))
	require.NoError(t, store.RemoveFriend(1, 2))

	friends, _ := store.FriendsOf(1)
	assert.Empty(t, friends)

	friends, _ = store.FriendsOf(2)
	assert.Equal(t, []int64{1}, friends, "删除有向边不应联动删除反向边")

	mutual, _ := store.IsMutual(1, 2)
	assert.False(t, mutual)
}
