package storage

import (
	"errors"
	"fmt"

	"filmgraph/model"
	"filmgraph/utils"

	"gorm.io/gorm"
)

// DBUserStore 基于 Postgres 的用户存储
type DBUserStore struct {
	db *gorm.DB
}

func NewDBUserStore(db *gorm.DB) *DBUserStore {
	return &DBUserStore{db: db}
}

func (s *DBUserStore) Create(user *model.User) error {
	if err := s.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (s *DBUserStore) Update(user *model.User) error {
	result := s.db.Model(&model.User{ID: user.ID}).
		Select("Email", "Login", "Name", "Birthday").
		Updates(user)
	if result.Error != nil {
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.NotFoundf("user %d not found", user.ID)
	}
	return nil
}

func (s *DBUserStore) Delete(id int64) error {
	if err := s.db.Delete(&model.User{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func (s *DBUserStore) GetByID(id int64) (*model.User, error) {
	var user model.User
	err := s.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NotFoundf("user %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &user, nil
}

func (s *DBUserStore) GetByIDs(ids []int64) ([]model.User, error) {
	users := make([]model.User, 0, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	err := s.db.Where("id IN ?", ids).Order("id ASC").Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	return users, nil
}

func (s *DBUserStore) GetAll() ([]model.User, error) {
	var users []model.User
	if err := s.db.Order("id ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	return users, nil
}

func (s *DBUserStore) Exists(id int64) (bool, error) {
	var count int64
	err := s.db.Model(&model.User{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return count > 0, nil
}
