package storage

import (
	"errors"
	"fmt"

	"filmgraph/model"
	"filmgraph/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DBReviewStore 基于 Postgres 的评论存储
type DBReviewStore struct {
	db *gorm.DB
}

func NewDBReviewStore(db *gorm.DB) *DBReviewStore {
	return &DBReviewStore{db: db}
}

func (s *DBReviewStore) Create(review *model.Review) error {
	review.Useful = 0
	if err := s.db.Create(review).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// Update 只允许修改内容和正负面标记，作者和电影不可变
func (s *DBReviewStore) Update(review *model.Review) error {
	result := s.db.Model(&model.Review{ReviewID: review.ReviewID}).
		Select("Content", "IsPositive").
		Updates(review)
	if result.Error != nil {
		return fmt.Errorf("failed to update review: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.NotFoundf("review %d not found", review.ReviewID)
	}
	return s.db.First(review, review.ReviewID).Error
}

func (s *DBReviewStore) Delete(id int64) error {
	if err := s.db.Where("review_id = ?", id).Delete(&model.ReviewVote{}).Error; err != nil {
		return fmt.Errorf("failed to delete review votes: %w", err)
	}
	if err := s.db.Delete(&model.Review{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	return nil
}

func (s *DBReviewStore) GetByID(id int64) (*model.Review, error) {
	var review model.Review
	err := s.db.First(&review, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NotFoundf("review %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query review: %w", err)
	}
	return &review, nil
}

func (s *DBReviewStore) ForFilm(filmID int64, count int) ([]model.Review, error) {
	reviews := make([]model.Review, 0)
	err := s.db.Where("film_id = ?", filmID).
		Order("useful DESC, review_id ASC").
		Limit(count).
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	return reviews, nil
}

func (s *DBReviewStore) All(count int) ([]model.Review, error) {
	reviews := make([]model.Review, 0)
	err := s.db.Order("useful DESC, review_id ASC").
		Limit(count).
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	return reviews, nil
}

// SetVote 记录投票（同一用户重复投票覆盖旧值），然后重算 useful
func (s *DBReviewStore) SetVote(reviewID, userID int64, isLike bool) error {
	vote := &model.ReviewVote{ReviewID: reviewID, UserID: userID, IsLike: isLike}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "review_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_like"}),
	}).Create(vote).Error
	if err != nil {
		return fmt.Errorf("failed to save review vote: %w", err)
	}
	return s.recomputeUseful(reviewID)
}

// RemoveVote 撤销投票；没有匹配的投票时是空操作
func (s *DBReviewStore) RemoveVote(reviewID, userID int64, isLike bool) error {
	err := s.db.Where("review_id = ? AND user_id = ? AND is_like = ?", reviewID, userID, isLike).
		Delete(&model.ReviewVote{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove review vote: %w", err)
	}
	return s.recomputeUseful(reviewID)
}

// recomputeUseful useful = 点赞数 - 踩数
func (s *DBReviewStore) recomputeUseful(reviewID int64) error {
	var likes, dislikes int64
	if err := s.db.Model(&model.ReviewVote{}).
		Where("review_id = ? AND is_like = ?", reviewID, true).
		Count(&likes).Error; err != nil {
		return fmt.Errorf("failed to count review likes: %w", err)
	}
	if err := s.db.Model(&model.ReviewVote{}).
		Where("review_id = ? AND is_like = ?", reviewID, false).
		Count(&dislikes).Error; err != nil {
		return fmt.Errorf("failed to count review dislikes: %w", err)
	}

	err := s.db.Model(&model.Review{}).
		Where("review_id = ?", reviewID).
		Update("useful", likes-dislikes).Error
	if err != nil {
		return fmt.Errorf("failed to update review usefulness: %w", err)
	}
	return nil
}
