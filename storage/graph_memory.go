package storage

import (
	"sort"
	"sync"
)

// MemoryGraphStore 内存版图存储，测试用
type MemoryGraphStore struct {
	mu sync.RWMutex
	// likes map[userID]电影集合
	likes map[int64]map[int64]struct{}
	// friends map[userID]好友 id 列表（保持插入顺序）
	friends map[int64][]int64
}

func NewMemoryGraphStore() *MemoryGraphStore {
	return &MemoryGraphStore{
		likes:   make(map[int64]map[int64]struct{}),
		friends: make(map[int64][]int64),
	}
}

func (s *MemoryGraphStore) AddLike(userID, filmID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.likes[userID] == nil {
		s.likes[userID] = make(map[int64]struct{})
	}
	s.likes[userID][filmID] = struct{}{}
	return nil
}

func (s *MemoryGraphStore) RemoveLike(userID, filmID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.likes[userID], filmID)
	return nil
}

func (s *MemoryGraphStore) LikeCount(filmID int64) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, films := range s.likes {
		if _, ok := films[filmID]; ok {
			count++
		}
	}
	return count, nil
}

func (s *MemoryGraphStore) LikeCounts(filmIDs []int64) (map[int64]int, error) {
	counts := make(map[int64]int, len(filmIDs))
	for _, filmID := range filmIDs {
		count, _ := s.LikeCount(filmID)
		if count > 0 {
			counts[filmID] = count
		}
	}
	return counts, nil
}

func (s *MemoryGraphStore) LikedFilms(userID int64) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filmIDs := make([]int64, 0, len(s.likes[userID]))
	for filmID := range s.likes[userID] {
		filmIDs = append(filmIDs, filmID)
	}
	sort.Slice(filmIDs, func(i, j int) bool { return filmIDs[i] < filmIDs[j] })
	return filmIDs, nil
}

func (s *MemoryGraphStore) AllLikes() (map[int64]map[int64]struct{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make(map[int64]map[int64]struct{}, len(s.likes))
	for userID, films := range s.likes {
		copied := make(map[int64]struct{}, len(films))
		for filmID := range films {
			copied[filmID] = struct{}{}
		}
		snapshot[userID] = copied
	}
	return snapshot, nil
}

func (s *MemoryGraphStore) AddFriend(userID, friendID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.friends[userID] {
		if id == friendID {
			return nil
		}
	}
	s.friends[userID] = append(s.friends[userID], friendID)
	return nil
}

func (s *MemoryGraphStore) RemoveFriend(userID, friendID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	friends := s.friends[userID]
	for i, id := range friends {
		if id == friendID {
			s.friends[userID] = append(friends[:i], friends[i+1:]...)
			break
		}
	}
	return nil
}

func (s *MemoryGraphStore) IsMutual(userID, otherID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.hasEdge(userID, otherID) && s.hasEdge(otherID, userID), nil
}

func (s *MemoryGraphStore) FriendsOf(userID int64) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	friendIDs := make([]int64, len(s.friends[userID]))
	copy(friendIDs, s.friends[userID])
	return friendIDs, nil
}

func (s *MemoryGraphStore) hasEdge(userID, friendID int64) bool {
	for _, id := range s.friends[userID] {
		if id == friendID {
			return true
		}
	}
	return false
}
