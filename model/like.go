package model

import "time"

// Like 点赞表（用户→电影）
// 每对 (user, film) 至多一条记录，重复点赞是幂等的空操作。
type Like struct {
	UserID    int64     `json:"userId" gorm:"primaryKey;autoIncrement:false"`
	FilmID    int64     `json:"filmId" gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

func (Like) TableName() string {
	return "likes"
}
