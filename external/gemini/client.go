package gemini

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/season-engine/internal/domain/commentary"
	"github.com/riskibarqy/season-engine/internal/platform/logging"
	"github.com/riskibarqy/season-engine/internal/platform/resilience"
	"github.com/riskibarqy/season-engine/internal/usecase"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-2.5-flash"
)

var errGeminiTransient = crerr.New("gemini transient failure")
var errEmptyCandidate = crerr.New("gemini returned no text")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Model          string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the generateContent endpoint and implements
// commentary.Generator.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	maxRetries int
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
}

var _ commentary.Generator = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 30 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}
	breakerCfg := cfg.CircuitBreaker
	if breakerCfg.Name == "" {
		breakerCfg.Name = "gemini"
	}
	breaker := resilience.NewCircuitBreaker(breakerCfg, func(from, to resilience.CircuitState) {
		logger.Warn("circuit breaker state changed", "breaker", breakerCfg.Name, "from", from, "to", to)
	})

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		model:      model,
		maxRetries: max(cfg.MaxRetries, 0),
		logger:     logger,
		breaker:    breaker,
	}
}

func (c *Client) MatchCommentary(ctx context.Context, summary commentary.MatchSummary) (string, error) {
	return c.generate(ctx, matchPrompt(summary))
}

func (c *Client) ScoutReport(ctx context.Context, playerProfile string) (string, error) {
	if strings.TrimSpace(playerProfile) == "" {
		return "", fmt.Errorf("%w: player profile is required", usecase.ErrInvalidInput)
	}
	return c.generate(ctx, scoutPrompt(playerProfile))
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", commentary.ErrNotConfigured
	}
	body, err := sonic.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("encode generate request: %w", err)
	}

	var raw []byte
	err = c.breaker.Call(func() error {
		var reqErr error
		raw, reqErr = c.executeRequest(ctx, c.baseURL+"/models/"+c.model+":generateContent", body)
		return reqErr
	}, isGeminiCircuitFailure)
	if stderrors.Is(err, resilience.ErrCircuitOpen) {
		c.logger.WarnContext(ctx, "gemini circuit breaker rejected request", "state", c.breaker.State())
		return "", fmt.Errorf("%w: commentary provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}
	if err != nil {
		return "", err
	}

	var resp generateResponse
	if err := sonic.Unmarshal(raw, &resp); err != nil {
		return "", fmt.Errorf("decode generate response: %w", err)
	}
	text := resp.text()
	if text == "" {
		return "", crerr.Wrapf(errEmptyCandidate, "model=%s", c.model)
	}
	return text, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string, body []byte) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, fullURL, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("content-type", "application/json")
		req.Header.Set("accept", "application/json")
		req.Header.Set("x-goog-api-key", c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errGeminiTransient, sanitizeSensitiveText(err.Error(), c.apiKey))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errGeminiTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errGeminiTransient, resp.StatusCode, abbreviateBody(raw))
			} else {
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * 500 * time.Millisecond
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "gemini request failed", "model", c.model, "error", lastErr)
	return nil, lastErr
}

func isGeminiCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errGeminiTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func sanitizeSensitiveText(value, apiKey string) string {
	value = strings.TrimSpace(value)
	if value == "" || apiKey == "" {
		return value
	}
	return strings.ReplaceAll(value, apiKey, "REDACTED")
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
