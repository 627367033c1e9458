package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"netapedia/internal/models"
)

func TestSimilarityIdenticalProfile(t *testing.T) {
	a := &models.Politician{PartyID: 1, State: "Delhi", Position: "MLA"}
	b := &models.Politician{PartyID: 1, State: "Delhi", Position: "MLA"}

	sim := Similarity(a, b, []string{"education"}, []string{"education"})
	assert.InDelta(t, 1.0, sim, 1e-9)
}

func TestSimilarityDisjointProfile(t *testing.T) {
	a := &models.Politician{PartyID: 1, State: "Delhi", Position: "MLA"}
	b := &models.Politician{PartyID: 2, State: "Kerala", Position: "MP"}

	sim := Similarity(a, b, []string{"education"}, []string{"defence"})
	assert.Equal(t, 0.0, sim)
}

func TestSimilarityPartyDominatesTopics(t *testing.T) {
	base := &models.Politician{PartyID: 1, State: "Delhi", Position: "MLA"}
	sameParty := &models.Politician{PartyID: 1, State: "Kerala", Position: "MP"}
	sameTopics := &models.Politician{PartyID: 2, State: "Kerala", Position: "MP"}

	topics := []string{"education", "healthcare"}
	assert.Greater(t,
		Similarity(base, sameParty, topics, nil),
		Similarity(base, sameTopics, topics, topics))
}

func TestSimilarityTopicOverlapIsFractional(t *testing.T) {
	a := &models.Politician{PartyID: 1}
	b := &models.Politician{PartyID: 2}

	half := Similarity(a, b, []string{"education", "defence"}, []string{"education", "economy"})
	full := Similarity(a, b, []string{"education"}, []string{"education"})

	assert.InDelta(t, 0.15*0.5, half, 1e-9)
	assert.InDelta(t, 0.15, full, 1e-9)
}

func TestSimilarityStateCaseInsensitive(t *testing.T) {
	a := &models.Politician{State: "delhi"}
	b := &models.Politician{State: "Delhi"}
	assert.InDelta(t, 0.25, Similarity(a, b, nil, nil), 1e-9)
}

func TestSimilarityEmptyFieldsDoNotMatch(t *testing.T) {
	// 两个都没填 State 不应算作"同邦"
	a := &models.Politician{}
	b := &models.Politician{}
	assert.Equal(t, 0.0, Similarity(a, b, nil, nil))
}

func TestUniqueIDsKeepsRecencyOrder(t *testing.T) {
	got := uniqueIDs([]uint{7, 3, 7, 9, 3, 1, 5}, 3)
	assert.Equal(t, []uint{7, 3, 9}, got)
}

func TestUniqueIDsShortInput(t *testing.T) {
	got := uniqueIDs([]uint{4, 4}, 5)
	assert.Equal(t, []uint{4}, got)

	assert.Empty(t, uniqueIDs(nil, 5))
}
