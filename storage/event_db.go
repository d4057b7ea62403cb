package storage

import (
	"fmt"
	"time"

	"filmgraph/model"

	"gorm.io/gorm"
)

// DBEventStore 基于 Postgres 的事件日志，只追加
type DBEventStore struct {
	db *gorm.DB
}

func NewDBEventStore(db *gorm.DB) *DBEventStore {
	return &DBEventStore{db: db}
}

// Append 写入一条事件，event_id 由自增主键保证单调递增
func (s *DBEventStore) Append(userID int64, eventType, operation string, entityID int64) (*model.Event, error) {
	event := &model.Event{
		Timestamp: time.Now().UnixMilli(),
		UserID:    userID,
		EventType: eventType,
		Operation: operation,
		EntityID:  entityID,
	}
	if err := s.db.Create(event).Error; err != nil {
		return nil, fmt.Errorf("failed to append event: %w", err)
	}
	return event, nil
}

func (s *DBEventStore) FeedFor(userIDs []int64) ([]model.Event, error) {
	events := make([]model.Event, 0)
	if len(userIDs) == 0 {
		return events, nil
	}

	err := s.db.Where("user_id IN ?", userIDs).
		Order("event_id ASC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query feed: %w", err)
	}
	return events, nil
}
