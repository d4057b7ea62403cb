package storage

import (
	"fmt"

	"filmgraph/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DBGraphStore 基于 Postgres 的图存储
type DBGraphStore struct {
	db *gorm.DB
}

func NewDBGraphStore(db *gorm.DB) *DBGraphStore {
	return &DBGraphStore{db: db}
}

// AddLike 插入点赞边，主键冲突时忽略（幂等，并发安全由唯一约束保证）
func (s *DBGraphStore) AddLike(userID, filmID int64) error {
	like := &model.Like{UserID: userID, FilmID: filmID}
	err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(like).Error
	if err != nil {
		return fmt.Errorf("failed to add like: %w", err)
	}
	return nil
}

// RemoveLike 删除点赞边，不存在时是空操作
func (s *DBGraphStore) RemoveLike(userID, filmID int64) error {
	err := s.db.Where("user_id = ? AND film_id = ?", userID, filmID).
		Delete(&model.Like{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove like: %w", err)
	}
	return nil
}

func (s *DBGraphStore) LikeCount(filmID int64) (int, error) {
	var count int64
	err := s.db.Model(&model.Like{}).Where("film_id = ?", filmID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return int(count), nil
}

// LikeCounts 单条 GROUP BY 查询批量获取点赞数；没有记录的电影不在结果里
func (s *DBGraphStore) LikeCounts(filmIDs []int64) (map[int64]int, error) {
	counts := make(map[int64]int, len(filmIDs))
	if len(filmIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		FilmID int64
		Cnt    int
	}
	err := s.db.Model(&model.Like{}).
		Select("film_id, COUNT(user_id) AS cnt").
		Where("film_id IN ?", filmIDs).
		Group("film_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count likes: %w", err)
	}

	for _, row := range rows {
		counts[row.FilmID] = row.Cnt
	}
	return counts, nil
}

func (s *DBGraphStore) LikedFilms(userID int64) ([]int64, error) {
	var filmIDs []int64
	err := s.db.Model(&model.Like{}).
		Where("user_id = ?", userID).
		Order("film_id ASC").
		Pluck("film_id", &filmIDs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query liked films: %w", err)
	}
	return filmIDs, nil
}

// AllLikes 单次扫描 likes 表构建完整快照，推荐算法用
func (s *DBGraphStore) AllLikes() (map[int64]map[int64]struct{}, error) {
	var likes []model.Like
	if err := s.db.Find(&likes).Error; err != nil {
		return nil, fmt.Errorf("failed to load likes snapshot: %w", err)
	}

	snapshot := make(map[int64]map[int64]struct{})
	for _, like := range likes {
		if snapshot[like.UserID] == nil {
			snapshot[like.UserID] = make(map[int64]struct{})
		}
		snapshot[like.UserID][like.FilmID] = struct{}{}
	}
	return snapshot, nil
}

// AddFriend 插入有向好友边；反向边的存在与否不影响写入
func (s *DBGraphStore) AddFriend(userID, friendID int64) error {
	friend := &model.Friend{UserID: userID, FriendID: friendID}
	err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(friend).Error
	if err != nil {
		return fmt.Errorf("failed to add friend: %w", err)
	}
	return nil
}

// RemoveFriend 删除有向边，不联动删除反向边
func (s *DBGraphStore) RemoveFriend(userID, friendID int64) error {
	err := s.db.Where("user_id = ? AND friend_id = ?", userID, friendID).
		Delete(&model.Friend{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove friend: %w", err)
	}
	return nil
}

// IsMutual 双向边都存在才算确认的好友关系
func (s *DBGraphStore) IsMutual(userID, otherID int64) (bool, error) {
	var count int64
	err := s.db.Model(&model.Friend{}).
		Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
			userID, otherID, otherID, userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check friendship: %w", err)
	}
	return count == 2, nil
}

func (s *DBGraphStore) FriendsOf(userID int64) ([]int64, error) {
	var friendIDs []int64
	err := s.db.Model(&model.Friend{}).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Pluck("friend_id", &friendIDs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query friends: %w", err)
	}
	return friendIDs, nil
}
