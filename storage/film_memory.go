package storage

import (
	"sort"
	"sync"

	"filmgraph/model"
	"filmgraph/utils"
)

// MemoryFilmStore 内存版电影存储，测试用
type MemoryFilmStore struct {
	mu     sync.RWMutex
	films  map[int64]model.Film
	nextID int64
}

func NewMemoryFilmStore() *MemoryFilmStore {
	return &MemoryFilmStore{
		films:  make(map[int64]model.Film),
		nextID: 1,
	}
}

func (s *MemoryFilmStore) Create(film *model.Film) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if film.ID == 0 {
		film.ID = s.nextID
	}
	if film.ID >= s.nextID {
		s.nextID = film.ID + 1
	}
	film.MpaID = film.Mpa.ID
	s.films[film.ID] = *film
	return nil
}

func (s *MemoryFilmStore) Update(film *model.Film) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.films[film.ID]; !ok {
		return utils.NotFoundf("film %d not found", film.ID)
	}
	film.MpaID = film.Mpa.ID
	s.films[film.ID] = *film
	return nil
}

func (s *MemoryFilmStore) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.films, id)
	return nil
}

func (s *MemoryFilmStore) GetByID(id int64) (*model.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	film, ok := s.films[id]
	if !ok {
		return nil, utils.NotFoundf("film %d not found", id)
	}
	return &film, nil
}

func (s *MemoryFilmStore) GetByIDs(ids []int64) ([]model.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sorted := make([]int64, len(ids))
	copy(sorted, ids)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	films := make([]model.Film, 0, len(sorted))
	for _, id := range sorted {
		if film, ok := s.films[id]; ok {
			films = append(films, film)
		}
	}
	return films, nil
}

func (s *MemoryFilmStore) GetAll() ([]model.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0, len(s.films))
	for id := range s.films {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	films := make([]model.Film, 0, len(ids))
	for _, id := range ids {
		films = append(films, s.films[id])
	}
	return films, nil
}

func (s *MemoryFilmStore) Filtered(genreID int64, year int) ([]model.Film, error) {
	films, _ := s.GetAll()

	filtered := make([]model.Film, 0, len(films))
	for _, film := range films {
		if genreID != 0 && !hasGenre(film, genreID) {
			continue
		}
		if year != 0 && film.ReleaseDate.Year() != year {
			continue
		}
		filtered = append(filtered, film)
	}
	return filtered, nil
}

func (s *MemoryFilmStore) Exists(id int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.films[id]
	return ok, nil
}

func hasGenre(film model.Film, genreID int64) bool {
	for _, genre := range film.Genres {
		if genre.ID == genreID {
			return true
		}
	}
	return false
}
