package model

// 事件类型
const (
	EventTypeLike   = "LIKE"
	EventTypeReview = "REVIEW"
	EventTypeFriend = "FRIEND"
)

// 操作类型
const (
	OperationAdd    = "ADD"
	OperationRemove = "REMOVE"
	OperationUpdate = "UPDATE"
)

// Event 用户事件表（只追加，从不更新或删除）
// 事件是历史记录：即使对应的点赞/好友/评论之后被删除，事件仍然保留。
type Event struct {
	EventID   int64  `json:"eventId" gorm:"primaryKey;autoIncrement"`
	Timestamp int64  `json:"timestamp" gorm:"not null"` // 毫秒时间戳
	UserID    int64  `json:"userId" gorm:"not null;index"`
	EventType string `json:"eventType" gorm:"type:varchar(10);not null"`
	Operation string `json:"operation" gorm:"type:varchar(10);not null"`
	EntityID  int64  `json:"entityId" gorm:"not null"`
}

func (Event) TableName() string {
	return "events"
}
