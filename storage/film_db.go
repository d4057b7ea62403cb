package storage

import (
	"errors"
	"fmt"

	"filmgraph/model"
	"filmgraph/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DBFilmStore 基于 Postgres 的电影存储
// 类型/导演/MPA 通过 Preload 批量加载，避免逐条回表
type DBFilmStore struct {
	db *gorm.DB
}

func NewDBFilmStore(db *gorm.DB) *DBFilmStore {
	return &DBFilmStore{db: db}
}

func (s *DBFilmStore) withDetails() *gorm.DB {
	return s.db.Preload("Mpa").Preload("Genres").Preload("Directors")
}

func (s *DBFilmStore) Create(film *model.Film) error {
	film.MpaID = film.Mpa.ID

	if err := s.db.Omit(clause.Associations).Create(film).Error; err != nil {
		return fmt.Errorf("failed to create film: %w", err)
	}
	if err := s.replaceAssociations(film); err != nil {
		return err
	}
	return s.reload(film)
}

func (s *DBFilmStore) Update(film *model.Film) error {
	film.MpaID = film.Mpa.ID

	result := s.db.Model(&model.Film{ID: film.ID}).Omit(clause.Associations).
		Select("Name", "Description", "ReleaseDate", "Duration", "MpaID").
		Updates(film)
	if result.Error != nil {
		return fmt.Errorf("failed to update film: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.NotFoundf("film %d not found", film.ID)
	}

	if err := s.replaceAssociations(film); err != nil {
		return err
	}
	return s.reload(film)
}

func (s *DBFilmStore) Delete(id int64) error {
	if err := s.db.Delete(&model.Film{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete film: %w", err)
	}
	return nil
}

func (s *DBFilmStore) GetByID(id int64) (*model.Film, error) {
	var film model.Film
	err := s.withDetails().First(&film, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NotFoundf("film %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query film: %w", err)
	}
	return &film, nil
}

func (s *DBFilmStore) GetByIDs(ids []int64) ([]model.Film, error) {
	films := make([]model.Film, 0, len(ids))
	if len(ids) == 0 {
		return films, nil
	}

	err := s.withDetails().Where("id IN ?", ids).Order("id ASC").Find(&films).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query films: %w", err)
	}
	return films, nil
}

func (s *DBFilmStore) GetAll() ([]model.Film, error) {
	var films []model.Film
	err := s.withDetails().Order("id ASC").Find(&films).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query films: %w", err)
	}
	return films, nil
}

// Filtered 按类型/年份过滤；genreID/year 为 0 表示不过滤
func (s *DBFilmStore) Filtered(genreID int64, year int) ([]model.Film, error) {
	query := s.withDetails()
	if genreID != 0 {
		query = query.
			Joins("JOIN film_genres ON film_genres.film_id = films.id").
			Where("film_genres.genre_id = ?", genreID)
	}
	if year != 0 {
		query = query.Where("EXTRACT(YEAR FROM release_date) = ?", year)
	}

	var films []model.Film
	if err := query.Order("films.id ASC").Find(&films).Error; err != nil {
		return nil, fmt.Errorf("failed to filter films: %w", err)
	}
	return films, nil
}

func (s *DBFilmStore) Exists(id int64) (bool, error) {
	var count int64
	err := s.db.Model(&model.Film{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check film existence: %w", err)
	}
	return count > 0, nil
}

func (s *DBFilmStore) replaceAssociations(film *model.Film) error {
	if err := s.db.Model(film).Association("Genres").Replace(film.Genres); err != nil {
		return fmt.Errorf("failed to save film genres: %w", err)
	}
	if err := s.db.Model(film).Association("Directors").Replace(film.Directors); err != nil {
		return fmt.Errorf("failed to save film directors: %w", err)
	}
	return nil
}

func (s *DBFilmStore) reload(film *model.Film) error {
	return s.withDetails().First(film, film.ID).Error
}
