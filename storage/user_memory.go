package storage

import (
	"sort"
	"sync"

	"filmgraph/model"
	"filmgraph/utils"
)

// MemoryUserStore 内存版用户存储，测试用
type MemoryUserStore struct {
	mu     sync.RWMutex
	users  map[int64]model.User
	nextID int64
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		users:  make(map[int64]model.User),
		nextID: 1,
	}
}

func (s *MemoryUserStore) Create(user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.ID == 0 {
		user.ID = s.nextID
	}
	if user.ID >= s.nextID {
		s.nextID = user.ID + 1
	}
	s.users[user.ID] = *user
	return nil
}

func (s *MemoryUserStore) Update(user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return utils.NotFoundf("user %d not found", user.ID)
	}
	s.users[user.ID] = *user
	return nil
}

func (s *MemoryUserStore) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.users, id)
	return nil
}

func (s *MemoryUserStore) GetByID(id int64) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, utils.NotFoundf("user %d not found", id)
	}
	return &user, nil
}

func (s *MemoryUserStore) GetByIDs(ids []int64) ([]model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sorted := make([]int64, len(ids))
	copy(sorted, ids)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	users := make([]model.User, 0, len(sorted))
	for _, id := range sorted {
		if user, ok := s.users[id]; ok {
			users = append(users, user)
		}
	}
	return users, nil
}

func (s *MemoryUserStore) GetAll() ([]model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	users := make([]model.User, 0, len(ids))
	for _, id := range ids {
		users = append(users, s.users[id])
	}
	return users, nil
}

func (s *MemoryUserStore) Exists(id int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.users[id]
	return ok, nil
}
