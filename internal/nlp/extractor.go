package nlp

import (
	"sort"
	"strings"
)

// Intent 查询意图分类
type Intent string

const (
	IntentSearch     Intent = "search"
	IntentFilter     Intent = "filter"
	IntentLocation   Intent = "location"
	IntentComparison Intent = "comparison"
)

// EntityType 实体类型
type EntityType string

const (
	EntityPerson   EntityType = "person"
	EntityParty    EntityType = "party"
	EntityLocation EntityType = "location"
	EntityPosition EntityType = "position"
	EntityTopic    EntityType = "topic"
)

// Entity 从查询中识别出的实体
type Entity struct {
	Type       EntityType `json:"type"`
	Value      string     `json:"value"`
	Confidence float64    `json:"confidence"`
}

// Extraction 查询解析结果
type Extraction struct {
	Query      string   `json:"query"`
	Intent     Intent   `json:"intent"`
	Entities   []Entity `json:"entities"`
	Confidence float64  `json:"confidence"`
}

// Entity 按类型取第一个匹配值，没有则返回空串
func (e *Extraction) Entity(t EntityType) string {
	for _, entity := range e.Entities {
		if entity.Type == t {
			return entity.Value
		}
	}
	return ""
}

// Extract 对自由文本查询做一次确定性的查表打分
// 置信度 = 0.6 * 词覆盖率 + 0.4 * 平均匹配置信度
func Extract(query string) Extraction {
	normalized := " " + strings.Join(strings.Fields(strings.ToLower(query)), " ") + " "
	result := Extraction{Query: query, Intent: IntentSearch}

	if strings.TrimSpace(normalized) == "" {
		return result
	}

	// 先把别名替换为规范名，再统一匹配
	for alias, canonical := range partyAliases {
		normalized = strings.ReplaceAll(normalized, alias, canonical)
	}

	matchedWords := 0
	matchTable := []struct {
		entityType EntityType
		terms      map[string]float64
	}{
		{EntityPerson, personTerms},
		{EntityParty, partyTerms},
		{EntityPosition, positionTerms},
		{EntityLocation, locationTerms},
		{EntityTopic, topicTerms},
	}

	consumed := normalized
	for _, table := range matchTable {
		// 长词优先，避免 "prime minister" 被 "minister" 抢先吃掉
		terms := make([]string, 0, len(table.terms))
		for term := range table.terms {
			terms = append(terms, term)
		}
		sort.Slice(terms, func(i, j int) bool { return len(terms[i]) > len(terms[j]) })

		for _, term := range terms {
			padded := " " + term + " "
			if !strings.Contains(consumed, padded) {
				continue
			}
			result.Entities = append(result.Entities, Entity{
				Type:       table.entityType,
				Value:      term,
				Confidence: table.terms[term],
			})
			matchedWords += len(strings.Fields(term))
			// 同一段文本只允许匹配一次
			consumed = strings.Replace(consumed, padded, " ", 1)
		}
	}

	result.Intent = classifyIntent(normalized, result.Entities)
	result.Confidence = scoreConfidence(normalized, matchedWords, result.Entities)
	return result
}

func classifyIntent(normalized string, entities []Entity) Intent {
	for _, marker := range comparisonMarkers {
		if strings.Contains(normalized, marker) {
			return IntentComparison
		}
	}

	hasLocation := false
	hasOther := false
	for _, e := range entities {
		if e.Type == EntityLocation {
			hasLocation = true
		} else {
			hasOther = true
		}
	}

	if hasLocation && !hasOther {
		return IntentLocation
	}

	if len(entities) > 0 {
		for _, marker := range filterMarkers {
			if strings.Contains(normalized, marker) {
				return IntentFilter
			}
		}
	}

	return IntentSearch
}

func scoreConfidence(normalized string, matchedWords int, entities []Entity) float64 {
	if len(entities) == 0 {
		return 0
	}

	totalWords := len(strings.Fields(normalized))
	coverage := float64(matchedWords) / float64(totalWords)
	if coverage > 1 {
		coverage = 1
	}

	var sum float64
	for _, e := range entities {
		sum += e.Confidence
	}
	avg := sum / float64(len(entities))

	return 0.6*coverage + 0.4*avg
}
