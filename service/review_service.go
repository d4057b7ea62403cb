package service

import (
	"strings"

	"filmgraph/model"
	"filmgraph/storage"
	"filmgraph/utils"
)

// 评论列表默认返回条数
const defaultReviewCount = 10

// ReviewService 评论业务逻辑。
// useful = 点赞数 - 踩数，每次投票变化后由存储层重算。
type ReviewService struct {
	reviews storage.ReviewStore
	users   storage.UserStore
	films   storage.FilmStore
	feed    *FeedService
}

func NewReviewService(reviews storage.ReviewStore, users storage.UserStore, films storage.FilmStore, feed *FeedService) *ReviewService {
	return &ReviewService{reviews: reviews, users: users, films: films, feed: feed}
}

// CreateReview 创建评论并记录 REVIEW/ADD 事件
func (s *ReviewService) CreateReview(review *model.Review) (*model.Review, error) {
	if err := validateReview(review); err != nil {
		return nil, err
	}
	if _, err := s.users.GetByID(review.UserID); err != nil {
		return nil, err
	}
	if _, err := s.films.GetByID(review.FilmID); err != nil {
		return nil, err
	}

	if err := s.reviews.Create(review); err != nil {
		return nil, err
	}
	if err := s.feed.Record(review.UserID, model.EventTypeReview, model.OperationAdd, review.ReviewID); err != nil {
		return nil, err
	}
	return review, nil
}

// UpdateReview 更新评论内容/正负面标记，事件记在评论作者名下
func (s *ReviewService) UpdateReview(review *model.Review) (*model.Review, error) {
	if err := validateReview(review); err != nil {
		return nil, err
	}

	existing, err := s.reviews.GetByID(review.ReviewID)
	if err != nil {
		return nil, err
	}

	if err := s.reviews.Update(review); err != nil {
		return nil, err
	}
	if err := s.feed.Record(existing.UserID, model.EventTypeReview, model.OperationUpdate, review.ReviewID); err != nil {
		return nil, err
	}
	return review, nil
}

// DeleteReview 删除评论；REMOVE 事件保留在事件流里
func (s *ReviewService) DeleteReview(id int64) error {
	existing, err := s.reviews.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.reviews.Delete(id); err != nil {
		return err
	}
	return s.feed.Record(existing.UserID, model.EventTypeReview, model.OperationRemove, id)
}

func (s *ReviewService) GetReviewByID(id int64) (*model.Review, error) {
	return s.reviews.GetByID(id)
}

// GetReviews 评论列表，按 useful 降序。
// filmID 为 0 时返回全部电影的评论；count 不传用默认值。
func (s *ReviewService) GetReviews(filmID int64, count int) ([]model.Review, error) {
	if count <= 0 {
		count = defaultReviewCount
	}
	if filmID == 0 {
		return s.reviews.All(count)
	}

	if _, err := s.films.GetByID(filmID); err != nil {
		return nil, err
	}
	return s.reviews.ForFilm(filmID, count)
}

// AddLike 给评论点赞
func (s *ReviewService) AddLike(reviewID, userID int64) error {
	return s.vote(reviewID, userID, true)
}

// AddDislike 给评论点踩
func (s *ReviewService) AddDislike(reviewID, userID int64) error {
	return s.vote(reviewID, userID, false)
}

// RemoveLike 撤销点赞
func (s *ReviewService) RemoveLike(reviewID, userID int64) error {
	return s.unvote(reviewID, userID, true)
}

// RemoveDislike 撤销点踩
func (s *ReviewService) RemoveDislike(reviewID, userID int64) error {
	return s.unvote(reviewID, userID, false)
}

func (s *ReviewService) vote(reviewID, userID int64, isLike bool) error {
	if err := s.checkVote(reviewID, userID); err != nil {
		return err
	}
	return s.reviews.SetVote(reviewID, userID, isLike)
}

func (s *ReviewService) unvote(reviewID, userID int64, isLike bool) error {
	if err := s.checkVote(reviewID, userID); err != nil {
		return err
	}
	return s.reviews.RemoveVote(reviewID, userID, isLike)
}

func (s *ReviewService) checkVote(reviewID, userID int64) error {
	if _, err := s.users.GetByID(userID); err != nil {
		return err
	}
	if _, err := s.reviews.GetByID(reviewID); err != nil {
		return err
	}
	return nil
}

func validateReview(review *model.Review) error {
	if strings.TrimSpace(review.Content) == "" {
		return utils.InvalidArgumentf("review content must not be blank")
	}
	if review.IsPositive == nil {
		return utils.InvalidArgumentf("review isPositive must not be null")
	}
	if review.UserID <= 0 {
		return utils.InvalidArgumentf("review userId must be positive")
	}
	if review.FilmID <= 0 {
		return utils.InvalidArgumentf("review filmId must be positive")
	}
	return nil
}
