package service

import (
	"fmt"

	"filmgraph/model"
	"filmgraph/storage"
)

// EventPublisher 新事件的实时推送出口（WebSocket Hub 实现）
type EventPublisher interface {
	PublishEvent(event *model.Event)
}

// FeedService 用户事件流
// 事件只追加：点赞/好友/评论被删除后，对应的历史事件仍然保留。
type FeedService struct {
	events storage.EventStore
	users  storage.UserStore
	graph  storage.GraphStore

	// 是否把好友的事件也合入用户的事件流
	includeFriends bool

	publisher EventPublisher
}

func NewFeedService(events storage.EventStore, users storage.UserStore, graph storage.GraphStore, includeFriends bool) *FeedService {
	return &FeedService{
		events:         events,
		users:          users,
		graph:          graph,
		includeFriends: includeFriends,
	}
}

// SetEventPublisher 注入实时推送器（用于 WebSocket 推送）
func (s *FeedService) SetEventPublisher(publisher EventPublisher) {
	s.publisher = publisher
}

// Record 追加一条事件并推送给在线客户端
func (s *FeedService) Record(userID int64, eventType, operation string, entityID int64) error {
	event, err := s.events.Append(userID, eventType, operation, entityID)
	if err != nil {
		return fmt.Errorf("failed to record event: %w", err)
	}

	// 事件已落库，推送失败只影响实时性，由 Hub 自行记日志
	if s.publisher != nil {
		s.publisher.PublishEvent(event)
	}
	return nil
}

// Feed 按 eventId 升序返回用户的事件流
func (s *FeedService) Feed(userID int64) ([]model.Event, error) {
	if _, err := s.users.GetByID(userID); err != nil {
		return nil, err
	}

	userIDs := []int64{userID}
	if s.includeFriends {
		friendIDs, err := s.graph.FriendsOf(userID)
		if err != nil {
			return nil, err
		}
		userIDs = append(userIDs, friendIDs...)
	}

	return s.events.FeedFor(userIDs)
}
