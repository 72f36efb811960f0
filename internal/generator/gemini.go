package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/config"
	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/domain"
	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/metrics"
	"golang.org/x/time/rate"
)

const promptTemplate = `
为 %s 平台创作一条社交媒体帖子，主题是："%s"。
语气专业且有吸引力。
同时给出 5 个相关的话题标签。
以合法的 JSON 对象返回，包含 "content"（字符串）和 "hashtags"（字符串数组）两个键。
不要包含 markdown 代码块。
`

var errRequestCanceled = errors.New("生成请求已取消")

type GeminiClient struct {
	apiKey   string
	model    string
	endpoint string

	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	limiter    *rate.Limiter
	cache      Cache
	metrics    *metrics.Metrics
}

// NewGeminiClient 创建生成客户端，cache 可以为 nil
func NewGeminiClient(cfg *config.Config, cache Cache, m *metrics.Metrics) *GeminiClient {
	st := gobreaker.Settings{
		Name:     "gemini",
		Interval: 60 * time.Second,
		Timeout:  30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		// 请求被新的生成请求取代或者调用方放弃时不算接口故障
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, errRequestCanceled)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			slog.Warn("熔断器状态变化", "name", name, "from", from.String(), "to", to.String())
		},
	}

	return &GeminiClient{
		apiKey:   cfg.Gemini.APIKey,
		model:    cfg.Gemini.Model,
		endpoint: strings.TrimRight(cfg.Gemini.Endpoint, "/"),

		httpClient: &http.Client{Timeout: time.Duration(cfg.Gemini.Timeout) * time.Second},
		breaker:    gobreaker.NewCircuitBreaker(st),
		limiter:    rate.NewLimiter(rate.Limit(cfg.Gemini.RateLimit), cfg.Gemini.RateBurst),
		cache:      cache,
		metrics:    m,
	}
}

func (g *GeminiClient) Generate(ctx context.Context, topic string, platform domain.Platform) Content {
	if g.apiKey == "" {
		slog.Error("未配置 Gemini API Key")
		g.metrics.Generations.WithLabelValues("missing_key").Inc()
		return fallback(MissingKeyContent)
	}

	if g.cache != nil {
		content, err := g.cache.Get(ctx, topic, platform)
		switch {
		case err == nil:
			g.metrics.Generations.WithLabelValues("cached").Inc()
			return content
		case errors.Is(err, ErrCacheMiss):
		default:
			// 缓存不可用时直接调用接口
			slog.Warn("读取生成缓存失败", "error", err)
		}
	}

	if err := g.limiter.Wait(ctx); err != nil {
		if ctx.Err() != nil {
			g.metrics.Generations.WithLabelValues("canceled").Inc()
			return fallback(FailedContent)
		}
		slog.Error("等待生成配额失败", "error", err)
		g.metrics.Generations.WithLabelValues("failed").Inc()
		return fallback(FailedContent)
	}

	result, err := g.breaker.Execute(func() (any, error) {
		content, err := g.call(ctx, topic, platform)
		if err != nil && ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", errRequestCanceled, err)
		}
		return content, err
	})
	if err != nil {
		if ctx.Err() != nil {
			slog.Info("生成请求已取消", "topic", topic, "platform", platform)
			g.metrics.Generations.WithLabelValues("canceled").Inc()
			return fallback(FailedContent)
		}
		slog.Error("Gemini 接口调用失败", "topic", topic, "platform", platform, "error", err)
		g.metrics.Generations.WithLabelValues("failed").Inc()
		return fallback(FailedContent)
	}

	content := result.(Content)
	g.metrics.Generations.WithLabelValues("generated").Inc()

	if g.cache != nil {
		if err := g.cache.Set(ctx, topic, platform, content); err != nil {
			slog.Warn("写入生成缓存失败", "error", err)
		}
	}

	return content
}

type generateRequest struct {
	Contents         []requestContent `json:"contents"`
	GenerationConfig struct {
		ResponseMimeType string `json:"responseMimeType"`
	} `json:"generationConfig"`
}

type requestContent struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (g *GeminiClient) call(ctx context.Context, topic string, platform domain.Platform) (Content, error) {
	reqBody := generateRequest{
		Contents: []requestContent{{Parts: []part{{Text: fmt.Sprintf(promptTemplate, platform, topic)}}}},
	}
	reqBody.GenerationConfig.ResponseMimeType = "application/json"

	body, err := json.Marshal(reqBody)
	if err != nil {
		return Content{}, err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", g.endpoint, g.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Content{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return Content{}, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Content{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return Content{}, fmt.Errorf("Gemini 返回状态码 %d: %s", resp.StatusCode, string(respBody))
	}

	parsed := generateResponse{}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return Content{}, err
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return Content{}, errors.New("Gemini 没有返回内容")
	}

	text := parsed.Candidates[0].Content.Parts[0].Text
	if strings.TrimSpace(text) == "" {
		return Content{}, errors.New("Gemini 没有返回内容")
	}

	var out struct {
		Content  string   `json:"content"`
		Hashtags []string `json:"hashtags"`
	}
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return Content{}, fmt.Errorf("无法解析生成结果: %w", err)
	}

	if out.Hashtags == nil {
		out.Hashtags = []string{}
	}

	return Content{
		Content:  out.Content,
		Hashtags: out.Hashtags,
	}, nil
}
