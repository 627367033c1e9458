package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPartyPositionLocation(t *testing.T) {
	got := Extract("BJP minister from Delhi")

	assert.Equal(t, "bjp", got.Entity(EntityParty))
	assert.Equal(t, "minister", got.Entity(EntityPosition))
	assert.Equal(t, "delhi", got.Entity(EntityLocation))
	assert.Greater(t, got.Confidence, 0.3)
	assert.Equal(t, IntentFilter, got.Intent)
}

func TestExtractLongestTermWins(t *testing.T) {
	got := Extract("who is the chief minister of west bengal")

	assert.Equal(t, "chief minister", got.Entity(EntityPosition))
	assert.Equal(t, "west bengal", got.Entity(EntityLocation))
}

func TestExtractPartyAlias(t *testing.T) {
	got := Extract("aam aadmi party candidates")
	assert.Equal(t, "aap", got.Entity(EntityParty))
}

func TestExtractComparisonIntent(t *testing.T) {
	got := Extract("modi vs rahul gandhi")

	assert.Equal(t, IntentComparison, got.Intent)

	people := make([]string, 0)
	for _, e := range got.Entities {
		if e.Type == EntityPerson {
			people = append(people, e.Value)
		}
	}
	assert.ElementsMatch(t, []string{"modi", "rahul gandhi"}, people)
}

func TestExtractLocationOnlyIntent(t *testing.T) {
	got := Extract("delhi")
	assert.Equal(t, IntentLocation, got.Intent)
	assert.Equal(t, "delhi", got.Entity(EntityLocation))
}

func TestExtractTopic(t *testing.T) {
	got := Extract("politicians who talk about farmers and agriculture")

	topics := make([]string, 0)
	for _, e := range got.Entities {
		if e.Type == EntityTopic {
			topics = append(topics, e.Value)
		}
	}
	assert.ElementsMatch(t, []string{"farmers", "agriculture"}, topics)
}

func TestExtractNoMatches(t *testing.T) {
	got := Extract("completely unrelated gibberish xyzzy")

	assert.Empty(t, got.Entities)
	assert.Equal(t, 0.0, got.Confidence)
	assert.Equal(t, IntentSearch, got.Intent)
}

func TestExtractEmptyQuery(t *testing.T) {
	got := Extract("   ")
	assert.Empty(t, got.Entities)
	assert.Equal(t, IntentSearch, got.Intent)
}

func TestExtractCaseInsensitive(t *testing.T) {
	got := Extract("CONGRESS leader in KERALA")
	assert.Equal(t, "congress", got.Entity(EntityParty))
	assert.Equal(t, "kerala", got.Entity(EntityLocation))
}
