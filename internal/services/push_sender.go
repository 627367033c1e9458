package services

import (
	"context"
	"crypto/elliptic"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"os"
	"sync"
	"time"

	webpush "github.com/SherClockHolmes/webpush-go"

	"netapedia/internal/apperrors"
	"netapedia/internal/db"
	"netapedia/internal/logging"
	"netapedia/internal/models"
	"netapedia/internal/retry"
)

// PushService Web Push 推送服务
// VAPID 私钥缺失时服务自动降级为禁用，不影响其它功能
type PushService struct {
	client     *http.Client
	privateKey string // base64url 私钥标量，VAPID 签名用
	publicKey  string // base64url 未压缩公钥点
	subject    string // mailto: 联系地址
	Enabled    bool
}

var (
	pushService *PushService
	pushOnce    sync.Once
)

// GetPushService 获取推送服务单例
func GetPushService() *PushService {
	pushOnce.Do(func() {
		pushService = NewPushService()
	})
	return pushService
}

// NewPushService 从环境变量装配推送服务
// VAPID_PRIVATE_KEY 为 PEM 编码的 EC P-256 私钥，VAPID_SUBJECT 为 mailto 地址
func NewPushService() *PushService {
	s := &PushService{
		client:  &http.Client{Timeout: 15 * time.Second},
		subject: os.Getenv("VAPID_SUBJECT"),
	}
	if s.subject == "" {
		s.subject = "mailto:admin@netapedia.in"
	}

	pemKey := os.Getenv("VAPID_PRIVATE_KEY")
	if pemKey == "" {
		logging.Get().Warn().Msg("push service disabled: VAPID_PRIVATE_KEY not set")
		return s
	}

	block, _ := pem.Decode([]byte(pemKey))
	if block == nil {
		logging.Get().Error().Msg("push service disabled: VAPID_PRIVATE_KEY is not valid PEM")
		return s
	}
	key, err := x509.ParseECPrivateKey(block.Bytes)
	if err != nil {
		logging.Get().Error().Err(err).Msg("push service disabled: cannot parse VAPID key")
		return s
	}

	s.privateKey = base64.RawURLEncoding.EncodeToString(key.D.FillBytes(make([]byte, 32)))
	s.publicKey = base64.RawURLEncoding.EncodeToString(
		elliptic.Marshal(elliptic.P256(), key.PublicKey.X, key.PublicKey.Y))
	s.Enabled = true
	return s
}

// PushMessage 推送的通知内容，序列化后作为消息负载
type PushMessage struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url"`
}

// Send 向单个订阅投递一条推送，网络错误按退避策略重试
// 负载用订阅自带的 p256dh/auth 密钥做 aes128gcm 加密，VAPID 签名由库完成
// 返回 gone=true 表示订阅已失效，调用方应删除该记录
func (s *PushService) Send(ctx context.Context, sub *models.PushSubscription, msg PushMessage) (gone bool, err error) {
	if !s.Enabled {
		return false, nil
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return false, apperrors.Wrap(err, apperrors.CategoryInternal, apperrors.SeverityMedium, "failed to marshal push payload")
	}

	target := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}
	options := &webpush.Options{
		HTTPClient:      s.client,
		Subscriber:      s.subject,
		VAPIDPublicKey:  s.publicKey,
		VAPIDPrivateKey: s.privateKey,
		TTL:             86400,
	}

	cfg := retry.DefaultConfig()
	err = retry.Do(ctx, cfg, func() error {
		resp, doErr := webpush.SendNotificationWithContext(ctx, payload, target, options)
		if doErr != nil {
			return apperrors.Wrap(doErr, apperrors.CategoryNetwork, apperrors.SeverityMedium, "push delivery failed")
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
			gone = true
			return nil
		case resp.StatusCode >= 500:
			return apperrors.New(apperrors.CategoryExternalAPI, apperrors.SeverityMedium, "push service returned "+resp.Status)
		case resp.StatusCode >= 400:
			return apperrors.New(apperrors.CategoryValidation, apperrors.SeverityLow, "push service rejected: "+resp.Status)
		}
		return nil
	})
	return gone, err
}

// Broadcast 异步向所有订阅广播通知，失效订阅顺手清理
func (s *PushService) Broadcast(msg PushMessage) {
	if !s.Enabled {
		return
	}

	go func() {
		log := logging.Get()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		var subs []models.PushSubscription
		db.DB.Find(&subs)

		sent, failed, removed := 0, 0, 0
		for i := range subs {
			gone, err := s.Send(ctx, &subs[i], msg)
			switch {
			case gone:
				db.DB.Delete(&subs[i])
				removed++
			case err != nil:
				apperrors.GetAlertMonitor().Record(err)
				failed++
			default:
				sent++
			}
		}
		log.Info().Int("sent", sent).Int("failed", failed).Int("removed", removed).Msg("push broadcast finished")
	}()
}
