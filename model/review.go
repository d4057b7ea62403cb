package model

// Review 电影评论表
// Useful 为派生字段：点赞数减踩数，每次投票变化后重新计算。
type Review struct {
	ReviewID   int64  `json:"reviewId" gorm:"primaryKey;autoIncrement"`
	Content    string `json:"content" gorm:"type:text;not null"`
	IsPositive *bool  `json:"isPositive" gorm:"not null"`
	UserID     int64  `json:"userId" gorm:"not null;index"`
	FilmID     int64  `json:"filmId" gorm:"not null;index"`
	Useful     int    `json:"useful" gorm:"not null;default:0"`
}

func (Review) TableName() string {
	return "reviews"
}

// ReviewVote 评论的点赞/踩记录
type ReviewVote struct {
	ReviewID int64 `json:"reviewId" gorm:"primaryKey;autoIncrement:false"`
	UserID   int64 `json:"userId" gorm:"primaryKey;autoIncrement:false"`
	IsLike   bool  `json:"isLike" gorm:"not null"`
}

func (ReviewVote) TableName() string {
	return "review_votes"
}
