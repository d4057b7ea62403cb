package storage

import (
	"filmgraph/model"

	"gorm.io/gorm"
)

// GraphStore 点赞图（用户→电影）和好友图（用户→用户，有向边）的存储。
// 存在性校验在服务层做，这里只负责边的增删查。
type GraphStore interface {
	// AddLike 幂等：重复点赞是空操作
	AddLike(userID, filmID int64) error
	// RemoveLike 幂等：删除不存在的点赞是空操作
	RemoveLike(userID, filmID int64) error
	// LikeCount 电影的点赞数，无记录时返回 0
	LikeCount(filmID int64) (int, error)
	// LikeCounts 批量查询点赞数（单条 GROUP BY，不做 N+1）
	LikeCounts(filmIDs []int64) (map[int64]int, error)
	// LikedFilms 用户点赞过的电影 id
	LikedFilms(userID int64) ([]int64, error)
	// AllLikes 完整点赞快照 map[userID]电影集合（单次扫描）
	AllLikes() (map[int64]map[int64]struct{}, error)

	// AddFriend 插入有向好友边 from→to；反向边已存在时不需要额外状态变更
	AddFriend(userID, friendID int64) error
	// RemoveFriend 幂等删除有向边，不会联动删除反向边
	RemoveFriend(userID, friendID int64) error
	// IsMutual 双向边都存在时为 true
	IsMutual(userID, otherID int64) (bool, error)
	// FriendsOf 用户加过的好友（有向，不管对方是否确认）
	FriendsOf(userID int64) ([]int64, error)
}

// EventStore 事件日志存储，只追加
type EventStore interface {
	Append(userID int64, eventType, operation string, entityID int64) (*model.Event, error)
	// FeedFor 按 event_id 升序返回指定用户的全部事件
	FeedFor(userIDs []int64) ([]model.Event, error)
}

// FilmStore 电影存储
type FilmStore interface {
	Create(film *model.Film) error
	Update(film *model.Film) error
	Delete(id int64) error
	GetByID(id int64) (*model.Film, error)
	// GetByIDs 批量查询（单条 IN 查询），按 id 升序返回
	GetByIDs(ids []int64) ([]model.Film, error)
	GetAll() ([]model.Film, error)
	// Filtered 按类型/年份过滤；genreID/year 为 0 表示不过滤
	Filtered(genreID int64, year int) ([]model.Film, error)
	Exists(id int64) (bool, error)
}

// UserStore 用户存储
type UserStore interface {
	Create(user *model.User) error
	Update(user *model.User) error
	Delete(id int64) error
	GetByID(id int64) (*model.User, error)
	GetByIDs(ids []int64) ([]model.User, error)
	GetAll() ([]model.User, error)
	Exists(id int64) (bool, error)
}

// ReviewStore 评论存储，Useful 字段随投票变化重算
type ReviewStore interface {
	Create(review *model.Review) error
	Update(review *model.Review) error
	Delete(id int64) error
	GetByID(id int64) (*model.Review, error)
	// ForFilm 指定电影的评论，按 useful 降序，最多 count 条
	ForFilm(filmID int64, count int) ([]model.Review, error)
	All(count int) ([]model.Review, error)
	// SetVote 记录一次点赞（isLike=true）或踩（isLike=false），覆盖旧投票
	SetVote(reviewID, userID int64, isLike bool) error
	// RemoveVote 撤销投票；不存在对应投票时是空操作
	RemoveVote(reviewID, userID int64, isLike bool) error
}

// Migrate 建表并写入 MPA 分级和电影类型的种子数据
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.Mpa{},
		&model.Genre{},
		&model.Director{},
		&model.Film{},
		&model.Like{},
		&model.Friend{},
		&model.Event{},
		&model.Review{},
		&model.ReviewVote{},
	); err != nil {
		return err
	}

	mpaRatings := []model.Mpa{
		{ID: 1, Name: "G"},
		{ID: 2, Name: "PG"},
		{ID: 3, Name: "PG-13"},
		{ID: 4, Name: "R"},
		{ID: 5, Name: "NC-17"},
	}
	for _, mpa := range mpaRatings {
		if err := db.FirstOrCreate(&model.Mpa{}, mpa).Error; err != nil {
			return err
		}
	}

	genres := []model.Genre{
		{ID: 1, Name: "Comedy"},
		{ID: 2, Name: "Drama"},
		{ID: 3, Name: "Animation"},
		{ID: 4, Name: "Thriller"},
		{ID: 5, Name: "Documentary"},
		{ID: 6, Name: "Action"},
	}
	for _, genre := range genres {
		if err := db.FirstOrCreate(&model.Genre{}, genre).Error; err != nil {
			return err
		}
	}

	return nil
}
