package storage

import (
	"sort"
	"sync"

	"filmgraph/model"
	"filmgraph/utils"
)

// MemoryReviewStore 内存版评论存储，测试用
type MemoryReviewStore struct {
	mu      sync.Mutex
	reviews map[int64]model.Review
	// votes map[reviewID]map[userID]isLike
	votes  map[int64]map[int64]bool
	nextID int64
}

func NewMemoryReviewStore() *MemoryReviewStore {
	return &MemoryReviewStore{
		reviews: make(map[int64]model.Review),
		votes:   make(map[int64]map[int64]bool),
		nextID:  1,
	}
}

func (s *MemoryReviewStore) Create(review *model.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	review.ReviewID = s.nextID
	review.Useful = 0
	s.nextID++
	s.reviews[review.ReviewID] = *review
	return nil
}

func (s *MemoryReviewStore) Update(review *model.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.reviews[review.ReviewID]
	if !ok {
		return utils.NotFoundf("review %d not found", review.ReviewID)
	}
	stored.Content = review.Content
	stored.IsPositive = review.IsPositive
	s.reviews[review.ReviewID] = stored
	*review = stored
	return nil
}

func (s *MemoryReviewStore) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.reviews, id)
	delete(s.votes, id)
	return nil
}

func (s *MemoryReviewStore) GetByID(id int64) (*model.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	review, ok := s.reviews[id]
	if !ok {
		return nil, utils.NotFoundf("review %d not found", id)
	}
	return &review, nil
}

func (s *MemoryReviewStore) ForFilm(filmID int64, count int) ([]model.Review, error) {
	return s.collect(count, func(r model.Review) bool { return r.FilmID == filmID })
}

func (s *MemoryReviewStore) All(count int) ([]model.Review, error) {
	return s.collect(count, func(model.Review) bool { return true })
}

func (s *MemoryReviewStore) SetVote(reviewID, userID int64, isLike bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.votes[reviewID] == nil {
		s.votes[reviewID] = make(map[int64]bool)
	}
	s.votes[reviewID][userID] = isLike
	s.recomputeUseful(reviewID)
	return nil
}

func (s *MemoryReviewStore) RemoveVote(reviewID, userID int64, isLike bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if stored, ok := s.votes[reviewID][userID]; ok && stored == isLike {
		delete(s.votes[reviewID], userID)
		s.recomputeUseful(reviewID)
	}
	return nil
}

func (s *MemoryReviewStore) recomputeUseful(reviewID int64) {
	review, ok := s.reviews[reviewID]
	if !ok {
		return
	}

	useful := 0
	for _, isLike := range s.votes[reviewID] {
		if isLike {
			useful++
		} else {
			useful--
		}
	}
	review.Useful = useful
	s.reviews[reviewID] = review
}

func (s *MemoryReviewStore) collect(count int, match func(model.Review) bool) ([]model.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reviews := make([]model.Review, 0)
	for _, review := range s.reviews {
		if match(review) {
			reviews = append(reviews, review)
		}
	}
	sort.Slice(reviews, func(i, j int) bool {
		if reviews[i].Useful != reviews[j].Useful {
			return reviews[i].Useful > reviews[j].Useful
		}
		return reviews[i].ReviewID < reviews[j].ReviewID
	})
	if count > 0 && len(reviews) > count {
		reviews = reviews[:count]
	}
	return reviews, nil
}
