package storage

import (
	"sync"
	"time"

	"filmgraph/model"
)

// MemoryEventStore 内存版事件日志，测试用
type MemoryEventStore struct {
	mu     sync.Mutex
	events []model.Event
	nextID int64
}

func NewMemoryEventStore() *MemoryEventStore {
	return &MemoryEventStore{nextID: 1}
}

func (s *MemoryEventStore) Append(userID int64, eventType, operation string, entityID int64) (*model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event := model.Event{
		EventID:   s.nextID,
		Timestamp: time.Now().UnixMilli(),
		UserID:    userID,
		EventType: eventType,
		Operation: operation,
		EntityID:  entityID,
	}
	s.nextID++
	s.events = append(s.events, event)
	return &event, nil
}

func (s *MemoryEventStore) FeedFor(userIDs []int64) ([]model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wanted := make(map[int64]struct{}, len(userIDs))
	for _, id := range userIDs {
		wanted[id] = struct{}{}
	}

	// events 本身按 EventID 追加，天然有序
	result := make([]model.Event, 0)
	for _, event := range s.events {
		if _, ok := wanted[event.UserID]; ok {
			result = append(result, event)
		}
	}
	return result, nil
}
