package model

import "time"

// User 用户表
type User struct {
	ID       int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Email    string    `json:"email" gorm:"type:varchar(255);not null;uniqueIndex"`
	Login    string    `json:"login" gorm:"type:varchar(64);not null"`
	Name     string    `json:"name" gorm:"type:varchar(128)"`
	Birthday time.Time `json:"birthday"`
}

func (User) TableName() string {
	return "users"
}
