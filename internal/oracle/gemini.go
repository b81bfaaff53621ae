package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"venue-intelligence/internal/common/config"
	commonhttp "venue-intelligence/internal/common/http"
	"venue-intelligence/internal/common/logger"
)

const (
	DefaultBaseURL         = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel           = "gemini-pro"
	DefaultMaxOutputTokens = 1000
	DefaultTemperature     = 0.1
)

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	MaxOutputTokens int     `json:"maxOutputTokens"`
	Temperature     float64 `json:"temperature"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// GeminiClient calls the generateContent endpoint.
type GeminiClient struct {
	http    *commonhttp.Client
	baseURL string
	model   string
	apiKey  string
	logger  logger.Logger
}

func NewGeminiClient(cfg config.OracleConfig, httpClient *commonhttp.Client, log logger.Logger) *GeminiClient {
	if httpClient == nil {
		httpClient = commonhttp.NewClient(config.GetDuration(cfg.Timeout))
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &GeminiClient{
		http:    httpClient,
		baseURL: baseURL,
		model:   model,
		apiKey:  cfg.APIKey,
		logger:  log.WithFields(map[string]interface{}{"component": "oracle", "model": model}),
	}
}

func (c *GeminiClient) endpoint() string {
	return fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, url.PathEscape(c.model), url.QueryEscape(c.apiKey))
}

func (c *GeminiClient) Generate(ctx context.Context, req Request) (string, error) {
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}

	maxTokens := req.MaxOutputTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxOutputTokens
	}
	temperature := DefaultTemperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}

	payload := generateRequest{
		Contents:         []content{{Parts: []part{{Text: req.Prompt}}}},
		GenerationConfig: generationConfig{MaxOutputTokens: maxTokens, Temperature: temperature},
	}

	start := time.Now()
	resp, err := c.http.PostJSON(ctx, c.endpoint(), payload)
	if err != nil {
		return "", fmt.Errorf("oracle request: %w", err)
	}
	if !resp.OK() {
		c.logger.Warn("oracle returned non-2xx", map[string]interface{}{
			"status":     resp.StatusCode,
			"durationMs": time.Since(start).Milliseconds(),
		})
		return "", &StatusError{StatusCode: resp.StatusCode, Body: truncate(string(resp.Body), 512)}
	}

	var decoded generateResponse
	if err := json.Unmarshal(resp.Body, &decoded); err != nil {
		return "", fmt.Errorf("decode oracle response: %w", err)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}

	c.logger.Debug("oracle call completed", map[string]interface{}{
		"durationMs": time.Since(start).Milliseconds(),
	})
	return decoded.Candidates[0].Content.Parts[0].Text, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
