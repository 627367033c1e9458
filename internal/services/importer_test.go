package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netapedia/internal/apperrors"
)

const articleHTML = `<!DOCTYPE html>
<html><head><title>Profile: Test Minister</title></head>
<body>
<article>
<h1>Profile: Test Minister</h1>
<p>The minister has served three terms in the state assembly and led the education portfolio since 2019. Colleagues describe a focus on rural school infrastructure.</p>
<p>Before entering politics the minister practised law in the high court for over a decade.</p>
<script>alert("xss")</script>
</article>
</body></html>`

func newTestImporter() *ImporterService {
	s := NewImporterService()
	s.retryCfg.BaseDelay = time.Millisecond
	s.retryCfg.JitterFactor = 0
	return s
}

func TestFetchBiographySanitizes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET request, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(articleHTML))
	}))
	defer server.Close()

	bio, err := newTestImporter().FetchBiography(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Contains(t, bio.Content, "rural school infrastructure")
	assert.NotContains(t, bio.Content, "<script")
	assert.NotContains(t, bio.Content, "alert")
}

func TestFetchBiographyRetriesServerErrors(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if hits <= 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(articleHTML))
	}))
	defer server.Close()

	bio, err := newTestImporter().FetchBiography(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, 3, hits)
	assert.NotEmpty(t, bio.Content)
}

func TestFetchBiographyNotFoundFailsFast(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newTestImporter().FetchBiography(context.Background(), server.URL)
	require.Error(t, err)
	// 4xx 不可重试，只打一次
	assert.Equal(t, 1, hits)
	assert.Equal(t, apperrors.CategoryValidation, apperrors.CategoryOf(err))
}

func TestGetImporterServiceSingleton(t *testing.T) {
	var wg sync.WaitGroup
	results := make([]*ImporterService, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = GetImporterService()
		}(i)
	}
	wg.Wait()

	for _, s := range results[1:] {
		assert.Same(t, results[0], s)
	}
}

func TestGetPushServiceSingleton(t *testing.T) {
	var wg sync.WaitGroup
	results := make([]*PushService, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = GetPushService()
		}(i)
	}
	wg.Wait()

	for _, s := range results[1:] {
		assert.Same(t, results[0], s)
	}
}
