package service

import (
	"testing"
	"time"

	"filmgraph/model"
	"filmgraph/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userIDs(users []model.User) []int64 {
	ids := make([]int64, len(users))
	for i, user := range users {
		ids[i] = user.ID
	}
	return ids
}

func TestAddFriendIsDirectional(t *testing.T) {
	env := newTestEnv(false)
	env.addUser(t, 1)
	env.addUser(t, 2)

	require.NoError(t, env.userSvc.AddFriend(1, 2))

	friends, err := env.userSvc.Friends(1)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, userIDs(friends))

	friends, err = env.userSvc.Friends(2)
	require.NoError(t, err)
	assert.Empty(t, friends, "加好友不应自动产生反向边")
}

func TestAddFriendRecordsEvent(t *testing.T) {
	env := newTestEnv(false)
	env.addUser(t, 1)
	env.addUser(t, 2)

	require.NoError(t, env.userSvc.AddFriend(1, 2))
	require.NoError(t, env.userSvc.RemoveFriend(1, 2))

	events, err := env.feedSvc.Feed(1)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, model.EventTypeFriend, events[0].EventType)
	assert.Equal(t, model.OperationAdd, events[0].Operation)
	assert.Equal(t, int64(2), events[0].EntityID)
	assert.Equal(t, model.OperationRemove, events[1].Operation)
}

func TestAddFriendUnknownUser(t *testing.T) {
	env := newTestEnv(false)
	env.addUser(t, 1)

	err := env.userSvc.AddFriend(1, 999)
	assert.ErrorIs(t, err, utils.ErrNotFound)

	err = env.userSvc.AddFriend(999, 1)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestRemoveFriendKeepsReciprocal(t *testing.T) {
	env := newTestEnv(false)
	env.addUser(t, 1)
	env.addUser(t, 2)

	require.NoError(t, env.userSvc.AddFriend(1, 2))
	require.NoError(t, env.userSvc.AddFriend(2, 1))
	require.NoError(t, env.userSvc.RemoveFriend(1, 2))

	friends, err := env.userSvc.Friends(2)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, userIDs(friends), "删除有向边不应影响对方的好友列表")
}

func TestCommonFriends(t *testing.T) {
	env := newTestEnv(false)
	for id := int64(1); id <= 4; id++ {
		env.addUser(t, id)
	}

	require.NoError(t, env.userSvc.AddFriend(1, 3))
	require.NoError(t, env.userSvc.AddFriend(1, 4))
	require.NoError(t, env.userSvc.AddFriend(2, 3))

	common, err := env.userSvc.CommonFriends(1, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, userIDs(common))
}

func TestCommonFriendsEmpty(t *testing.T) {
	env := newTestEnv(false)
	env.addUser(t, 1)
	env.addUser(t, 2)

	common, err := env.userSvc.CommonFriends(1, 2)
	require.NoError(t, err)
	assert.Empty(t, common)
}

func TestCreateUserDefaultsNameToLogin(t *testing.T) {
	env := newTestEnv(false)

	user, err := env.userSvc.CreateUser(&model.User{
		Email:    "neo@example.com",
		Login:    "neo",
		Birthday: time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, "neo", user.Name, "名字为空时应回填登录名")
}

func TestCreateUserValidation(t *testing.T) {
	env := newTestEnv(false)
	birthday := time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC)

	_, err := env.userSvc.CreateUser(&model.User{Email: "no-at-sign", Login: "neo", Birthday: birthday})
	assert.ErrorIs(t, err, utils.ErrInvalidArgument, "邮箱必须含 @")

	_, err = env.userSvc.CreateUser(&model.User{Email: "neo@example.com", Login: "has space", Birthday: birthday})
	assert.ErrorIs(t, err, utils.ErrInvalidArgument, "登录名不能含空格")

	_, err = env.userSvc.CreateUser(&model.User{Email: "neo@example.com", Login: "neo", Birthday: time.Now().Add(24 * time.Hour)})
	assert.ErrorIs(t, err, utils.ErrInvalidArgument, "生日不能在未来")
}
