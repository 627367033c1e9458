package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func pageContext(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/politicians?"+query, nil)
	return c
}

func TestParsePageDefaults(t *testing.T) {
	page, perPage, offset := parsePage(pageContext(""))
	assert.Equal(t, 1, page)
	assert.Equal(t, 30, perPage)
	assert.Equal(t, 0, offset)
}

func TestParsePageOffset(t *testing.T) {
	page, perPage, offset := parsePage(pageContext("page=3&per_page=10"))
	assert.Equal(t, 3, page)
	assert.Equal(t, 10, perPage)
	assert.Equal(t, 20, offset)
}

func TestParsePageCapsPerPage(t *testing.T) {
	_, perPage, _ := parsePage(pageContext("per_page=500"))
	assert.Equal(t, 30, perPage)
}

func TestParsePageIgnoresGarbage(t *testing.T) {
	page, _, _ := parsePage(pageContext("page=-1"))
	assert.Equal(t, 1, page)

	page, _, _ = parsePage(pageContext("page=abc"))
	assert.Equal(t, 1, page)
}

func TestParsePositive(t *testing.T) {
	n, err := parsePositive("42")
	assert.NoError(t, err)
	assert.Equal(t, 42, n)

	_, err = parsePositive("0")
	assert.Error(t, err)

	_, err = parsePositive("12x")
	assert.Error(t, err)
}
