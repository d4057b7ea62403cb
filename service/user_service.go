package service

import (
	"strings"
	"time"

	"filmgraph/model"
	"filmgraph/storage"
	"filmgraph/utils"
)

// UserService 用户业务逻辑：好友图的增删查和共同好友
type UserService struct {
	users storage.UserStore
	graph storage.GraphStore
	feed  *FeedService
}

func NewUserService(users storage.UserStore, graph storage.GraphStore, feed *FeedService) *UserService {
	return &UserService{users: users, graph: graph, feed: feed}
}

// CreateUser 创建用户；名字为空时用登录名
func (s *UserService) CreateUser(user *model.User) (*model.User, error) {
	if err := validateUser(user); err != nil {
		return nil, err
	}
	if strings.TrimSpace(user.Name) == "" {
		user.Name = user.Login
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUser 更新用户信息
func (s *UserService) UpdateUser(user *model.User) (*model.User, error) {
	if err := validateUser(user); err != nil {
		return nil, err
	}
	if strings.TrimSpace(user.Name) == "" {
		user.Name = user.Login
	}
	if err := s.users.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetUsers() ([]model.User, error) {
	return s.users.GetAll()
}

func (s *UserService) GetUserByID(id int64) (*model.User, error) {
	return s.users.GetByID(id)
}

func (s *UserService) DeleteUserByID(id int64) error {
	return s.users.Delete(id)
}

// AddFriend 添加有向好友边 userID→friendID。
// 对方是否回加不影响本次写入，互为好友的状态由读取时推导。
func (s *UserService) AddFriend(userID, friendID int64) error {
	if err := s.checkUsers(userID, friendID); err != nil {
		return err
	}
	if err := s.graph.AddFriend(userID, friendID); err != nil {
		return err
	}
	return s.feed.Record(userID, model.EventTypeFriend, model.OperationAdd, friendID)
}

// RemoveFriend 删除有向好友边，不联动删除反向边
func (s *UserService) RemoveFriend(userID, friendID int64) error {
	if err := s.checkUsers(userID, friendID); err != nil {
		return err
	}
	if err := s.graph.RemoveFriend(userID, friendID); err != nil {
		return err
	}
	return s.feed.Record(userID, model.EventTypeFriend, model.OperationRemove, friendID)
}

// Friends 用户加过的好友列表（有向，不要求对方确认）
func (s *UserService) Friends(userID int64) ([]model.User, error) {
	if _, err := s.users.GetByID(userID); err != nil {
		return nil, err
	}

	friendIDs, err := s.graph.FriendsOf(userID)
	if err != nil {
		return nil, err
	}
	return s.users.GetByIDs(friendIDs)
}

// CommonFriends 两个用户的共同好友
func (s *UserService) CommonFriends(userID, otherID int64) ([]model.User, error) {
	if err := s.checkUsers(userID, otherID); err != nil {
		return nil, err
	}

	userFriends, err := s.graph.FriendsOf(userID)
	if err != nil {
		return nil, err
	}
	otherFriends, err := s.graph.FriendsOf(otherID)
	if err != nil {
		return nil, err
	}

	commonIDs := utils.Intersect(userFriends, otherFriends)
	return s.users.GetByIDs(commonIDs)
}

func (s *UserService) checkUsers(userID, friendID int64) error {
	for _, id := range []int64{userID, friendID} {
		exists, err := s.users.Exists(id)
		if err != nil {
			return err
		}
		if !exists {
			return utils.NotFoundf("user %d not found", id)
		}
	}
	return nil
}

func validateUser(user *model.User) error {
	if !strings.Contains(user.Email, "@") {
		return utils.InvalidArgumentf("email must contain @")
	}
	if user.Login == "" || strings.Contains(user.Login, " ") {
		return utils.InvalidArgumentf("login must not be blank or contain spaces")
	}
	if user.Birthday.After(time.Now()) {
		return utils.InvalidArgumentf("birthday must not be in the future")
	}
	return nil
}
