package services

import (
	"sort"
	"strings"
	"sync"

	"netapedia/internal/db"
	"netapedia/internal/logging"
	"netapedia/internal/models"
)

// 混合推荐的权重：协同过滤为主，内容相似为辅
const (
	blendCollaborative = 0.6
	blendContent       = 0.4
)

// 内容相似度的维度权重
const (
	simWeightParty    = 0.35
	simWeightState    = 0.25
	simWeightPosition = 0.25
	simWeightTopics   = 0.15
)

// RecommendService 基于收藏共现和档案相似度的推荐
type RecommendService struct{}

var (
	recommendService *RecommendService
	recommendOnce    sync.Once
)

// GetRecommendService 获取推荐服务单例
func GetRecommendService() *RecommendService {
	recommendOnce.Do(func() {
		recommendService = &RecommendService{}
	})
	return recommendService
}

// Scored 推荐结果项
type Scored struct {
	Politician models.Politician `json:"politician"`
	Score      float64           `json:"score"`
	Reason     string            `json:"reason"`
}

// Similarity 两个政客档案的内容相似度 [0,1]
// 维度：政党、邦、职位、立场议题重合度
func Similarity(a, b *models.Politician, topicsA, topicsB []string) float64 {
	var score float64

	if a.PartyID != 0 && a.PartyID == b.PartyID {
		score += simWeightParty
	}
	if a.State != "" && strings.EqualFold(a.State, b.State) {
		score += simWeightState
	}
	if a.Position != "" && strings.EqualFold(a.Position, b.Position) {
		score += simWeightPosition
	}

	if len(topicsA) > 0 && len(topicsB) > 0 {
		set := make(map[string]bool, len(topicsA))
		for _, t := range topicsA {
			set[strings.ToLower(t)] = true
		}
		shared := 0
		for _, t := range topicsB {
			if set[strings.ToLower(t)] {
				shared++
			}
		}
		denom := len(topicsA)
		if len(topicsB) > denom {
			denom = len(topicsB)
		}
		score += simWeightTopics * float64(shared) / float64(denom)
	}

	return score
}

func stanceTopics(politicianID uint) []string {
	var topics []string
	db.DB.Model(&models.PolicyStance{}).
		Where("politician_id = ?", politicianID).
		Pluck("topic", &topics)
	return topics
}

// Related 内容相似的政客，供详情页"相关人物"使用
func (s *RecommendService) Related(politicianID uint, limit int) []Scored {
	var base models.Politician
	if err := db.DB.First(&base, politicianID).Error; err != nil {
		return nil
	}
	baseTopics := stanceTopics(base.ID)

	// 候选集：同党、同邦或同职位的活跃政客
	var candidates []models.Politician
	db.DB.Preload("Party").
		Where("id <> ? AND active = ?", base.ID, true).
		Where("party_id = ? OR state = ? OR position = ?", base.PartyID, base.State, base.Position).
		Limit(200).
		Find(&candidates)

	scored := make([]Scored, 0, len(candidates))
	for i := range candidates {
		sim := Similarity(&base, &candidates[i], baseTopics, stanceTopics(candidates[i].ID))
		if sim <= 0 {
			continue
		}
		scored = append(scored, Scored{Politician: candidates[i], Score: sim, Reason: "similar profile"})
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

// ForUser 给登录用户的混合推荐
// 协同：和我收藏重合的用户还收藏了谁；内容：与我已收藏档案相似的人
// 没有收藏时退化为纯内容推荐（基于最近浏览）
func (s *RecommendService) ForUser(userID uint, limit int) []Scored {
	var favoriteIDs []uint
	db.DB.Model(&models.Favorite{}).
		Where("user_id = ?", userID).
		Pluck("politician_id", &favoriteIDs)

	if len(favoriteIDs) == 0 {
		return s.fromRecentViews(userID, limit)
	}

	exclude := make(map[uint]bool, len(favoriteIDs))
	for _, id := range favoriteIDs {
		exclude[id] = true
	}

	// 协同过滤：收藏共现计数
	type coCount struct {
		PoliticianID uint
		Cnt          int64
	}
	var rows []coCount
	db.DB.Model(&models.Favorite{}).
		Select("politician_id, COUNT(*) as cnt").
		Where("user_id IN (?)",
			db.DB.Model(&models.Favorite{}).
				Select("user_id").
				Where("politician_id IN ? AND user_id <> ?", favoriteIDs, userID),
		).
		Where("politician_id NOT IN ?", favoriteIDs).
		Group("politician_id").
		Order("cnt DESC").
		Limit(100).
		Scan(&rows)

	var maxCo int64 = 1
	for _, r := range rows {
		if r.Cnt > maxCo {
			maxCo = r.Cnt
		}
	}

	collaborative := make(map[uint]float64, len(rows))
	for _, r := range rows {
		collaborative[r.PoliticianID] = float64(r.Cnt) / float64(maxCo)
	}

	// 内容相似：以收藏的档案为基准打分
	var favorites []models.Politician
	db.DB.Find(&favorites, favoriteIDs)
	favTopics := make([][]string, len(favorites))
	for i := range favorites {
		favTopics[i] = stanceTopics(favorites[i].ID)
	}

	// 候选池：协同命中的 + 热度靠前的活跃政客
	candidateIDs := make([]uint, 0, len(collaborative))
	for id := range collaborative {
		candidateIDs = append(candidateIDs, id)
	}
	var hot []models.Politician
	db.DB.Where("active = ?", true).Order("score DESC").Limit(50).Find(&hot)
	for _, p := range hot {
		if !exclude[p.ID] {
			candidateIDs = append(candidateIDs, p.ID)
		}
	}

	candidatePool := uniqueIDs(candidateIDs, len(candidateIDs))
	if len(candidatePool) == 0 {
		return nil
	}
	var candidates []models.Politician
	db.DB.Preload("Party").Find(&candidates, candidatePool)

	scored := make([]Scored, 0, len(candidates))
	for i := range candidates {
		candidate := &candidates[i]
		candidateTopics := stanceTopics(candidate.ID)

		var bestSim float64
		for j := range favorites {
			if sim := Similarity(&favorites[j], candidate, favTopics[j], candidateTopics); sim > bestSim {
				bestSim = sim
			}
		}

		total := blendCollaborative*collaborative[candidate.ID] + blendContent*bestSim
		if total <= 0 {
			continue
		}

		reason := "similar profile"
		if collaborative[candidate.ID] > 0 {
			reason = "favorited by similar users"
		}
		scored = append(scored, Scored{Politician: *candidate, Score: total, Reason: reason})
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

// fromRecentViews 冷启动：按用户最近浏览的档案找相似人物
// 按时间倒序取最近 50 条浏览，再在内存里去重保序（DISTINCT 配 ORDER BY 在 Postgres 下不成立）
func (s *RecommendService) fromRecentViews(userID uint, limit int) []Scored {
	var recentIDs []uint
	err := db.DB.Model(&models.Interaction{}).
		Where("user_id = ? AND type = ? AND politician_id IS NOT NULL", userID, models.InteractionView).
		Order("created_at DESC").
		Limit(50).
		Pluck("politician_id", &recentIDs).Error
	if err != nil {
		logging.Get().Error().Err(err).Uint("user_id", userID).Msg("failed to load recent views")
		return nil
	}

	viewedIDs := uniqueIDs(recentIDs, 5)
	if len(viewedIDs) == 0 {
		return nil
	}

	merged := make(map[uint]Scored)
	for _, id := range viewedIDs {
		for _, rec := range s.Related(id, limit) {
			if existing, ok := merged[rec.Politician.ID]; !ok || rec.Score > existing.Score {
				merged[rec.Politician.ID] = rec
			}
		}
	}

	scored := make([]Scored, 0, len(merged))
	for _, rec := range merged {
		scored = append(scored, rec)
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

// uniqueIDs 去重并保留首次出现的顺序，最多返回 limit 个
func uniqueIDs(ids []uint, limit int) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, limit)
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
		if len(out) == limit {
			break
		}
	}
	return out
}
