package model

import "time"

// Friend 好友关系表（有向边）
// from→to 表示 UserID 把 FriendID 加为好友；
// 双向互为好友时才算确认的好友关系，确认状态由读取时推导，不落库。
type Friend struct {
	UserID    int64     `json:"userId" gorm:"primaryKey;autoIncrement:false"`
	FriendID  int64     `json:"friendId" gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

func (Friend) TableName() string {
	return "friends"
}
