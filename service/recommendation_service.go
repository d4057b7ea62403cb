package service

import (
	"sort"

	"filmgraph/model"
	"filmgraph/storage"
)

// RecommendationService 协同过滤推荐：
// 找到与目标用户点赞交集最大的邻居，推荐邻居喜欢而目标没看过的电影。
type RecommendationService struct {
	users storage.UserStore
	films storage.FilmStore
	graph storage.GraphStore
}

func NewRecommendationService(users storage.UserStore, films storage.FilmStore, graph storage.GraphStore) *RecommendationService {
	return &RecommendationService{users: users, films: films, graph: graph}
}

// Recommend 给用户推荐电影。
// 没有点赞记录或没有任何重叠邻居时返回空列表。
// 交集同分的邻居按用户 id 升序取第一个（顺序对外不承诺）。
// 候选电影按插入顺序（id 升序）返回，这一步有意不做热度排序。
func (s *RecommendationService) Recommend(userID int64) ([]model.Film, error) {
	if _, err := s.users.GetByID(userID); err != nil {
		return nil, err
	}

	// 单次快照，不做 N+1 查询
	allLikes, err := s.graph.AllLikes()
	if err != nil {
		return nil, err
	}

	targetLikes := allLikes[userID]
	if len(targetLikes) == 0 {
		// 没有任何信号，无法匹配
		return []model.Film{}, nil
	}

	peerIDs := make([]int64, 0, len(allLikes))
	for peerID := range allLikes {
		if peerID != userID {
			peerIDs = append(peerIDs, peerID)
		}
	}
	sort.Slice(peerIDs, func(i, j int) bool { return peerIDs[i] < peerIDs[j] })

	var bestPeer int64
	bestOverlap := 0
	for _, peerID := range peerIDs {
		overlap := 0
		for filmID := range allLikes[peerID] {
			if _, ok := targetLikes[filmID]; ok {
				overlap++
			}
		}
		if overlap > bestOverlap {
			bestOverlap = overlap
			bestPeer = peerID
		}
	}

	if bestOverlap == 0 {
		return []model.Film{}, nil
	}

	// 候选集：邻居喜欢的减去目标已经喜欢的
	candidateIDs := make([]int64, 0)
	for filmID := range allLikes[bestPeer] {
		if _, ok := targetLikes[filmID]; !ok {
			candidateIDs = append(candidateIDs, filmID)
		}
	}
	sort.Slice(candidateIDs, func(i, j int) bool { return candidateIDs[i] < candidateIDs[j] })

	// 单条批量查询补全 MPA/类型/导演
	return s.films.GetByIDs(candidateIDs)
}
