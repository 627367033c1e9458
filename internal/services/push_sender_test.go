package services

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netapedia/internal/models"
)

func testVAPIDKeyPEM(t *testing.T) string {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	der, err := x509.MarshalECPrivateKey(key)
	require.NoError(t, err)
	return string(pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: der}))
}

func newTestPushService(t *testing.T) *PushService {
	t.Helper()
	t.Setenv("VAPID_PRIVATE_KEY", testVAPIDKeyPEM(t))
	t.Setenv("VAPID_SUBJECT", "mailto:ops@netapedia.in")
	s := NewPushService()
	require.True(t, s.Enabled)
	s.client = &http.Client{Timeout: 5 * time.Second}
	return s
}

// 模拟浏览器侧的订阅密钥对
func testSubscription(t *testing.T, endpoint string) *models.PushSubscription {
	t.Helper()
	browserKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	auth := make([]byte, 16)
	_, err = rand.Read(auth)
	require.NoError(t, err)

	return &models.PushSubscription{
		Endpoint: endpoint,
		P256dh: base64.RawURLEncoding.EncodeToString(
			elliptic.Marshal(elliptic.P256(), browserKey.PublicKey.X, browserKey.PublicKey.Y)),
		Auth: base64.RawURLEncoding.EncodeToString(auth),
	}
}

func TestSendEncryptsPayload(t *testing.T) {
	var gotBody []byte
	var gotHeader http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotHeader = r.Header.Clone()
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	s := newTestPushService(t)
	sub := testSubscription(t, server.URL)

	gone, err := s.Send(context.Background(), sub, PushMessage{Title: "New profile", Body: "Arvind Kejriwal updated"})
	require.NoError(t, err)
	assert.False(t, gone)

	// 负载必须是 aes128gcm 密文，不能出现明文 JSON
	assert.Equal(t, "aes128gcm", gotHeader.Get("Content-Encoding"))
	assert.NotEmpty(t, gotBody)
	assert.NotContains(t, string(gotBody), "New profile")
	assert.True(t, strings.HasPrefix(gotHeader.Get("Authorization"), "vapid "))
}

func TestSendDetectsGoneSubscription(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusGone)
	}))
	defer server.Close()

	s := newTestPushService(t)
	sub := testSubscription(t, server.URL)

	gone, err := s.Send(context.Background(), sub, PushMessage{Title: "t", Body: "b"})
	require.NoError(t, err)
	assert.True(t, gone)
	assert.Equal(t, 1, hits) // 失效订阅不可重试
}

func TestSendDisabledServiceIsNoop(t *testing.T) {
	s := &PushService{}
	gone, err := s.Send(context.Background(), &models.PushSubscription{}, PushMessage{})
	assert.NoError(t, err)
	assert.False(t, gone)
}
