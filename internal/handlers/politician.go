package handlers

import (
	"fmt"
	"math"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"netapedia/internal/apperrors"
	"netapedia/internal/db"
	"netapedia/internal/middleware"
	"netapedia/internal/models"
	"netapedia/internal/nlp"
	"netapedia/internal/services"
	"netapedia/internal/utils"
)

type PoliticianHandler struct{}

func NewPoliticianHandler() *PoliticianHandler {
	return &PoliticianHandler{}
}

// fillFavoriteCounts 批量填充政客的收藏数量
func fillFavoriteCounts(politicians []models.Politician) {
	if len(politicians) == 0 {
		return
	}

	ids := make([]uint, len(politicians))
	for i, p := range politicians {
		ids[i] = p.ID
	}

	type CountResult struct {
		PoliticianID uint
		Count        int
	}
	var results []CountResult
	db.DB.Model(&models.Favorite{}).
		Select("politician_id, COUNT(*) as count").
		Where("politician_id IN ?", ids).
		Group("politician_id").
		Scan(&results)

	countMap := make(map[uint]int)
	for _, r := range results {
		countMap[r.PoliticianID] = r.Count
	}

	for i := range politicians {
		politicians[i].FavoriteCount = countMap[politicians[i].ID]
	}
}

// applyFilters 把查询参数转成 GORM 条件
func applyFilters(c *gin.Context, query *gorm.DB) *gorm.DB {
	if party := c.Query("party"); party != "" {
		query = query.Joins("JOIN political_parties ON political_parties.id = politicians.party_id").
			Where("LOWER(political_parties.abbreviation) = LOWER(?) OR LOWER(political_parties.name) = LOWER(?)", party, party)
	}
	if state := c.Query("state"); state != "" {
		query = query.Where("LOWER(politicians.state) = LOWER(?)", state)
	}
	if position := c.Query("position"); position != "" {
		query = query.Where("LOWER(politicians.position) LIKE LOWER(?)", "%"+position+"%")
	}
	if gender := c.Query("gender"); gender != "" {
		query = query.Where("LOWER(politicians.gender) = LOWER(?)", gender)
	}
	if c.Query("active") != "" {
		query = query.Where("politicians.active = ?", c.Query("active") == "true")
	}

	minAge, maxAge := 0, 0
	if v := c.Query("min_age"); v != "" {
		if n, err := parsePositive(v); err == nil {
			minAge = n
		}
	}
	if v := c.Query("max_age"); v != "" {
		if n, err := parsePositive(v); err == nil {
			maxAge = n
		}
	}
	if minAge > 0 || maxAge > 0 {
		earliest, latest := birthDateRange(minAge, maxAge, time.Now())
		if latest != "" {
			query = query.Where("politicians.birth_date <> '' AND politicians.birth_date <= ?", latest)
		}
		if earliest != "" {
			query = query.Where("politicians.birth_date >= ?", earliest)
		}
	}
	return query
}

// birthDateRange 把年龄上下限换算为出生日期闭区间 [earliest, latest]
// 零值表示该侧不设限，返回空串
func birthDateRange(minAge, maxAge int, now time.Time) (earliest, latest string) {
	if minAge > 0 {
		latest = now.AddDate(-minAge, 0, 0).Format("2006-01-02")
	}
	if maxAge > 0 {
		// 满 maxAge+1 周岁的前一天仍算 maxAge 岁
		earliest = now.AddDate(-maxAge-1, 0, 0).AddDate(0, 0, 1).Format("2006-01-02")
	}
	return
}

// List 政客列表，支持筛选、排序与分页
func (h *PoliticianHandler) List(c *gin.Context) {
	page, perPage, offset := parsePage(c)
	sortBy := c.DefaultQuery("sort", "trending")

	// 无筛选的默认首页走缓存
	cacheable := len(c.Request.URL.Query()) == 0 ||
		(sortBy == "trending" && c.Query("party") == "" && c.Query("state") == "" &&
			c.Query("position") == "" && c.Query("gender") == "" && c.Query("active") == "" &&
			c.Query("min_age") == "" && c.Query("max_age") == "")
	cacheKey := fmt.Sprintf("politician:list:%s:page:%d:%d", sortBy, page, perPage)
	if cacheable {
		if cached := utils.GetCache().Get(cacheKey); cached != nil {
			if data, ok := cached.(gin.H); ok {
				OK(c, data)
				return
			}
		}
	}

	base := applyFilters(c, db.DB.Model(&models.Politician{}))

	var total int64
	base.Count(&total)

	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	if totalPages == 0 {
		totalPages = 1
	}

	order := "politicians.score DESC, politicians.created_at DESC"
	switch sortBy {
	case "name":
		order = "politicians.name ASC"
	case "newest":
		order = "politicians.created_at DESC"
	}

	var politicians []models.Politician
	applyFilters(c, db.DB.Preload("Party")).
		Order(order).
		Limit(perPage).
		Offset(offset).
		Find(&politicians)

	fillFavoriteCounts(politicians)

	data := gin.H{
		"politicians": politicians,
		"page":        page,
		"total_pages": totalPages,
		"total":       total,
	}

	if cacheable {
		// 写入缓存，有效期 1 分钟
		utils.GetCache().Set(cacheKey, data, 1*time.Minute)
	}
	OK(c, data)
}

// Detail 政客详情：档案 + 选举记录 + 政策立场 + 收藏数
func (h *PoliticianHandler) Detail(c *gin.Context) {
	pid := c.Param("pid")

	var politician models.Politician
	if err := db.DB.Preload("Party").Where("pid = ?", pid).First(&politician).Error; err != nil {
		Fail(c, wrapDBError(err, "politician not found"))
		return
	}

	// 记录浏览事件（含 views 累加），异步触发热度重算
	politicianID := politician.ID
	services.RecordInteractionAsync(models.Interaction{
		UserID:       currentUserID(c),
		SessionKey:   middleware.SessionKey(c),
		PoliticianID: &politicianID,
		Type:         models.InteractionView,
	})

	var records []models.ElectoralRecord
	db.DB.Where("politician_id = ?", politician.ID).Order("year DESC").Find(&records)

	var stances []models.PolicyStance
	db.DB.Where("politician_id = ?", politician.ID).Order("topic ASC").Find(&stances)

	var favoriteCount int64
	db.DB.Model(&models.Favorite{}).Where("politician_id = ?", politician.ID).Count(&favoriteCount)
	politician.FavoriteCount = int(favoriteCount)

	// 当前用户是否已收藏
	isFavorited := false
	if userID := currentUserID(c); userID != nil {
		var fav models.Favorite
		if err := db.DB.Where("user_id = ? AND politician_id = ?", *userID, politician.ID).First(&fav).Error; err == nil {
			isFavorited = true
		}
	}

	OK(c, gin.H{
		"politician":        politician,
		"bio_html":          utils.RenderMarkdown(politician.Bio),
		"electoral_records": records,
		"policy_stances":    stances,
		"is_favorited":      isFavorited,
	})
}

// Related 详情页"相关人物"
func (h *PoliticianHandler) Related(c *gin.Context) {
	pid := c.Param("pid")

	var politician models.Politician
	if err := db.DB.Select("id").Where("pid = ?", pid).First(&politician).Error; err != nil {
		Fail(c, wrapDBError(err, "politician not found"))
		return
	}

	related := services.GetRecommendService().Related(politician.ID, 10)
	OK(c, gin.H{"related": related})
}

// Search 自由文本搜索：先做实体抽取，命中的实体转为结构化过滤条件
func (h *PoliticianHandler) Search(c *gin.Context) {
	queryText := c.Query("q")
	if queryText == "" {
		FailValidation(c, "query parameter q is required")
		return
	}

	extraction := nlp.Extract(queryText)

	query := db.DB.Preload("Party").Model(&models.Politician{}).Where("politicians.active = ?", true)

	joined := false
	if party := extraction.Entity(nlp.EntityParty); party != "" {
		query = query.Joins("JOIN political_parties ON political_parties.id = politicians.party_id").
			Where("LOWER(political_parties.abbreviation) = ? OR LOWER(political_parties.name) LIKE ?", party, "%"+party+"%")
		joined = true
	}
	if location := extraction.Entity(nlp.EntityLocation); location != "" {
		query = query.Where("LOWER(politicians.state) = ? OR LOWER(politicians.constituency) LIKE ?", location, "%"+location+"%")
	}
	if position := extraction.Entity(nlp.EntityPosition); position != "" {
		query = query.Where("LOWER(politicians.position) LIKE ?", "%"+position+"%")
	}
	if topic := extraction.Entity(nlp.EntityTopic); topic != "" {
		query = query.Joins("JOIN policy_stances ON policy_stances.politician_id = politicians.id").
			Where("LOWER(policy_stances.topic) LIKE ?", "%"+topic+"%")
		joined = true
	}
	if person := extraction.Entity(nlp.EntityPerson); person != "" {
		query = query.Where("LOWER(politicians.name) LIKE ?", "%"+person+"%")
	}

	// 抽取置信度太低时退回全文模糊匹配
	if extraction.Confidence < 0.3 {
		pattern := "%" + queryText + "%"
		query = db.DB.Preload("Party").Model(&models.Politician{}).
			Where("politicians.active = ?", true).
			Where("politicians.name ILIKE ? OR politicians.bio ILIKE ? OR politicians.constituency ILIKE ?", pattern, pattern, pattern)
		joined = false
	}

	var politicians []models.Politician
	q := query.Order("politicians.score DESC").Limit(50)
	if joined {
		q = q.Distinct("politicians.*")
	}
	q.Find(&politicians)

	fillFavoriteCounts(politicians)

	// 搜索事件入日志；命中的第一个结果归因到该政客
	event := models.Interaction{
		UserID:     currentUserID(c),
		SessionKey: middleware.SessionKey(c),
		Type:       models.InteractionSearch,
		Query:      utils.Excerpt(queryText, 200),
	}
	if len(politicians) > 0 {
		id := politicians[0].ID
		event.PoliticianID = &id
	}
	services.RecordInteractionAsync(event)

	OK(c, gin.H{
		"politicians": politicians,
		"extraction":  extraction,
	})
}

type politicianRequest struct {
	Name         string `json:"name" binding:"required"`
	PartyID      uint   `json:"party_id"`
	Position     string `json:"position"`
	Constituency string `json:"constituency"`
	State        string `json:"state"`
	Gender       string `json:"gender"`
	BirthDate    string `json:"birth_date"`
	Education    string `json:"education"`
	Bio          string `json:"bio"`
	PhotoURL     string `json:"photo_url"`
	Website      string `json:"website"`
	Twitter      string `json:"twitter"`
	Active       *bool  `json:"active"`
}

// Create 后台新建政客档案
func (h *PoliticianHandler) Create(c *gin.Context) {
	var req politicianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailValidation(c, "name is required")
		return
	}

	if req.PartyID != 0 {
		var party models.PoliticalParty
		if err := db.DB.First(&party, req.PartyID).Error; err != nil {
			Fail(c, apperrors.Validation("party does not exist"))
			return
		}
	}

	politician := models.Politician{
		Pid:          utils.RandStringBytesMaskImpr(8),
		Name:         req.Name,
		PartyID:      req.PartyID,
		Position:     req.Position,
		Constituency: req.Constituency,
		State:        req.State,
		Gender:       req.Gender,
		BirthDate:    utils.NormalizeDate(req.BirthDate),
		Education:    req.Education,
		Bio:          req.Bio,
		PhotoURL:     req.PhotoURL,
		Website:      req.Website,
		Twitter:      req.Twitter,
		Active:       true,
	}
	if req.Active != nil {
		politician.Active = *req.Active
	}

	if err := db.DB.Create(&politician).Error; err != nil {
		Fail(c, apperrors.Database(err, "failed to create politician"))
		return
	}

	invalidateListCaches()
	OK(c, gin.H{"politician": politician})
}

// Update 后台更新政客档案
func (h *PoliticianHandler) Update(c *gin.Context) {
	pid := c.Param("pid")

	var politician models.Politician
	if err := db.DB.Where("pid = ?", pid).First(&politician).Error; err != nil {
		Fail(c, wrapDBError(err, "politician not found"))
		return
	}

	var req politicianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailValidation(c, "name is required")
		return
	}

	politician.Name = req.Name
	politician.PartyID = req.PartyID
	politician.Position = req.Position
	politician.Constituency = req.Constituency
	politician.State = req.State
	politician.Gender = req.Gender
	politician.BirthDate = utils.NormalizeDate(req.BirthDate)
	politician.Education = req.Education
	politician.Bio = req.Bio
	politician.PhotoURL = req.PhotoURL
	politician.Website = req.Website
	politician.Twitter = req.Twitter
	if req.Active != nil {
		politician.Active = *req.Active
	}

	if err := db.DB.Save(&politician).Error; err != nil {
		Fail(c, apperrors.Database(err, "failed to update politician"))
		return
	}

	invalidateListCaches()
	OK(c, gin.H{"politician": politician})
}

// Delete 后台删除政客档案（硬删除，收藏和选举记录级联）
func (h *PoliticianHandler) Delete(c *gin.Context) {
	pid := c.Param("pid")

	var politician models.Politician
	if err := db.DB.Where("pid = ?", pid).First(&politician).Error; err != nil {
		Fail(c, wrapDBError(err, "politician not found"))
		return
	}

	if err := db.DB.Unscoped().Delete(&politician).Error; err != nil {
		Fail(c, apperrors.Database(err, "failed to delete politician"))
		return
	}

	invalidateListCaches()
	OK(c, nil)
}

type importRequest struct {
	URL string `json:"url" binding:"required"`
}

// Import 后台从外部 URL 抓取简介正文（readability 提取 + HTML 净化）
// 返回预览，由管理员确认后再写入档案
func (h *PoliticianHandler) Import(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailValidation(c, "url is required")
		return
	}

	bio, err := services.GetImporterService().FetchBiography(c.Request.Context(), req.URL)
	if err != nil {
		Fail(c, err)
		return
	}

	OK(c, gin.H{"import": bio})
}

type electoralRecordRequest struct {
	Year         int     `json:"year" binding:"required"`
	Election     string  `json:"election" binding:"required"`
	Constituency string  `json:"constituency"`
	Result       string  `json:"result"`
	VoteShare    float64 `json:"vote_share"`
}

// AddElectoralRecord 后台新增参选记录
func (h *PoliticianHandler) AddElectoralRecord(c *gin.Context) {
	pid := c.Param("pid")

	var politician models.Politician
	if err := db.DB.Where("pid = ?", pid).First(&politician).Error; err != nil {
		Fail(c, wrapDBError(err, "politician not found"))
		return
	}

	var req electoralRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailValidation(c, "year and election are required")
		return
	}

	record := models.ElectoralRecord{
		PoliticianID: politician.ID,
		Year:         req.Year,
		Election:     req.Election,
		Constituency: req.Constituency,
		Result:       req.Result,
		VoteShare:    req.VoteShare,
	}
	if err := db.DB.Create(&record).Error; err != nil {
		Fail(c, apperrors.Database(err, "failed to create electoral record"))
		return
	}
	OK(c, gin.H{"record": record})
}

// DeleteElectoralRecord 后台删除参选记录
func (h *PoliticianHandler) DeleteElectoralRecord(c *gin.Context) {
	if err := db.DB.Delete(&models.ElectoralRecord{}, c.Param("id")).Error; err != nil {
		Fail(c, apperrors.Database(err, "failed to delete electoral record"))
		return
	}
	OK(c, nil)
}

type stanceRequest struct {
	Topic    string `json:"topic" binding:"required"`
	Position string `json:"position"`
	StatedOn string `json:"stated_on"`
}

// AddStance 后台新增政策立场
func (h *PoliticianHandler) AddStance(c *gin.Context) {
	pid := c.Param("pid")

	var politician models.Politician
	if err := db.DB.Where("pid = ?", pid).First(&politician).Error; err != nil {
		Fail(c, wrapDBError(err, "politician not found"))
		return
	}

	var req stanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailValidation(c, "topic is required")
		return
	}

	stance := models.PolicyStance{
		PoliticianID: politician.ID,
		Topic:        req.Topic,
		Position:     req.Position,
		StatedOn:     utils.NormalizeDate(req.StatedOn),
	}
	if err := db.DB.Create(&stance).Error; err != nil {
		Fail(c, apperrors.Database(err, "failed to create policy stance"))
		return
	}
	OK(c, gin.H{"stance": stance})
}

// DeleteStance 后台删除政策立场
func (h *PoliticianHandler) DeleteStance(c *gin.Context) {
	if err := db.DB.Delete(&models.PolicyStance{}, c.Param("id")).Error; err != nil {
		Fail(c, apperrors.Database(err, "failed to delete policy stance"))
		return
	}
	OK(c, nil)
}

// invalidateListCaches 写操作后主动失效列表缓存的前几页
func invalidateListCaches() {
	for page := 1; page <= 3; page++ {
		utils.GetCache().Delete(fmt.Sprintf("politician:list:trending:page:%d:30", page))
	}
	utils.GetCache().Delete("trending:top")
}
