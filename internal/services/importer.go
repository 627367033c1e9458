package services

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	readability "github.com/go-shiori/go-readability"
	"github.com/microcosm-cc/bluemonday"

	"netapedia/internal/apperrors"
	"netapedia/internal/retry"
)

// ImporterService 后台从外部 URL 导入政客简介
type ImporterService struct {
	client    *http.Client
	sanitizer *bluemonday.Policy
	retryCfg  retry.Config
}

// NewImporterService 创建导入服务实例
func NewImporterService() *ImporterService {
	return &ImporterService{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		sanitizer: bluemonday.UGCPolicy(), // 允许用户生成内容的安全策略
		retryCfg:  retry.DefaultConfig(),
	}
}

// 全局单例
var (
	importerService *ImporterService
	importerOnce    sync.Once
)

// GetImporterService 获取导入服务单例
func GetImporterService() *ImporterService {
	importerOnce.Do(func() {
		importerService = NewImporterService()
	})
	return importerService
}

// ImportedBio 导入结果
type ImportedBio struct {
	Title   string `json:"title"`
	Content string `json:"content"` // 净化后的 HTML
	Excerpt string `json:"excerpt"`
}

// FetchBiography 从 URL 抓取正文并净化，网络类错误会按退避策略重试
func (s *ImporterService) FetchBiography(ctx context.Context, url string) (*ImportedBio, error) {
	var result *ImportedBio

	err := retry.Do(ctx, s.retryCfg, func() error {
		bio, err := s.fetchOnce(ctx, url)
		if err != nil {
			return err
		}
		result = bio
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *ImporterService) fetchOnce(ctx context.Context, url string) (*ImportedBio, error) {
	// 1. 发送 HTTP 请求获取 HTML
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.Validation("invalid import url")
	}

	// 设置 User-Agent 模拟浏览器
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CategoryNetwork, apperrors.SeverityMedium, "import request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return nil, apperrors.New(apperrors.CategoryExternalAPI, apperrors.SeverityMedium, "source returned "+resp.Status)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.New(apperrors.CategoryValidation, apperrors.SeverityLow, "source returned "+resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CategoryNetwork, apperrors.SeverityMedium, "failed to read source body")
	}

	// 2. 使用 go-readability 提取正文
	article, err := readability.FromReader(strings.NewReader(string(body)), nil)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CategoryExternalAPI, apperrors.SeverityLow, "failed to extract article")
	}

	// 3. 使用 bluemonday 清洗 HTML（移除潜在的恶意内容）
	cleanContent := s.sanitizer.Sanitize(article.Content)

	return &ImportedBio{
		Title:   article.Title,
		Content: cleanContent,
		Excerpt: article.Excerpt,
	}, nil
}
