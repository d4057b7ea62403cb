package service

import (
	"testing"

	"filmgraph/model"
	"filmgraph/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedOrderedByEventID(t *testing.T) {
	env := newTestEnv(false)
	env.addUser(t, 1)
	env.addUser(t, 2)
	env.addFilm(t, 10, "Matrix", 1999)

	require.NoError(t, env.filmSvc.AddLike(10, 1))
	require.NoError(t, env.userSvc.AddFriend(1, 2))
	require.NoError(t, env.filmSvc.RemoveLike(10, 1))

	events, err := env.feedSvc.Feed(1)
	require.NoError(t, err)
	require.Len(t, events, 3)
	for i := 1; i < len(events); i++ {
		assert.LessOrEqual(t, events[i-1].EventID, events[i].EventID, "事件应按 eventId 非降序返回")
	}
	assert.Equal(t, model.OperationAdd, events[0].Operation)
	assert.Equal(t, model.EventTypeFriend, events[1].EventType)
	assert.Equal(t, model.OperationRemove, events[2].Operation)
}

func TestFeedKeepsRemoveEventAfterEdgeDeleted(t *testing.T) {
	env := newTestEnv(false)
	env.addUser(t, 1)
	env.addFilm(t, 10, "Matrix", 1999)

	require.NoError(t, env.filmSvc.AddLike(10, 1))
	require.NoError(t, env.filmSvc.RemoveLike(10, 1))

	// 点赞边已删除
	count, _ := env.graph.LikeCount(10)
	assert.Equal(t, 0, count)

	// 但 ADD 和 REMOVE 事件都还在
	events, err := env.feedSvc.Feed(1)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, model.OperationAdd, events[0].Operation)
	assert.Equal(t, model.OperationRemove, events[1].Operation)
}

func TestFeedOnlyOwnEventsByDefault(t *testing.T) {
	env := newTestEnv(false)
	env.addUser(t, 1)
	env.addUser(t, 2)
	env.addFilm(t, 10, "Matrix", 1999)

	require.NoError(t, env.userSvc.AddFriend(1, 2))
	require.NoError(t, env.filmSvc.AddLike(10, 2))

	events, err := env.feedSvc.Feed(1)
	require.NoError(t, err)
	require.Len(t, events, 1, "默认只包含用户自己的事件")
	assert.Equal(t, int64(1), events[0].UserID)
}

func TestFeedIncludesFriendEventsWhenEnabled(t *testing.T) {
	env := newTestEnv(true)
	env.addUser(t, 1)
	env.addUser(t, 2)
	env.addFilm(t, 10, "Matrix", 1999)

	require.NoError(t, env.userSvc.AddFriend(1, 2))
	require.NoError(t, env.filmSvc.AddLike(10, 2))

	events, err := env.feedSvc.Feed(1)
	require.NoError(t, err)
	require.Len(t, events, 2, "开启开关后应包含好友的事件")
	assert.Equal(t, int64(2), events[1].UserID)
}

func TestFeedUnknownUser(t *testing.T) {
	env := newTestEnv(false)

	_, err := env.feedSvc.Feed(999)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

// publisherSpy 记录推送过的事件
type publisherSpy struct {
	events []*model.Event
}

func (p *publisherSpy) PublishEvent(event *model.Event) {
	p.events = append(p.events, event)
}

func TestRecordPushesToPublisher(t *testing.T) {
	env := newTestEnv(false)
	env.addUser(t, 1)
	env.addFilm(t, 10, "Matrix", 1999)

	spy := &publisherSpy{}
	env.feedSvc.SetEventPublisher(spy)

	require.NoError(t, env.filmSvc.AddLike(10, 1))

	require.Len(t, spy.events, 1)
	assert.Equal(t, model.EventTypeLike, spy.events[0].EventType)
	assert.Equal(t, int64(1), spy.events[0].UserID)
}
