package model

import "time"

// Film 电影表
type Film struct {
	ID          int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string     `json:"name" gorm:"type:varchar(255);not null;index"`
	Description string     `json:"description" gorm:"type:varchar(200)"`
	ReleaseDate time.Time  `json:"releaseDate"`
	Duration    int        `json:"duration"`
	MpaID       int64      `json:"-" gorm:"index"`
	Mpa         Mpa        `json:"mpa" gorm:"foreignKey:MpaID"`
	Genres      []Genre    `json:"genres" gorm:"many2many:film_genres"`
	Directors   []Director `json:"directors" gorm:"many2many:film_directors"`
}

func (Film) TableName() string {
	return "films"
}

// Mpa 电影的 MPA 分级（G/PG/PG-13/R/NC-17）
type Mpa struct {
	ID   int64  `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"type:varchar(10);not null"`
}

func (Mpa) TableName() string {
	return "mpa_ratings"
}

// Genre 电影类型
type Genre struct {
	ID   int64  `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"type:varchar(64);not null"`
}

func (Genre) TableName() string {
	return "genres"
}

// Director 导演
type Director struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"type:varchar(128);not null"`
}

func (Director) TableName() string {
	return "directors"
}
