package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/eduhub/backend/domain"
	"github.com/eduhub/backend/internal/config"
)

// Client talks to the Generative Language REST API. It implements
// advisor.Gateway.
type Client struct {
	http     *fasthttp.Client
	endpoint string
	model    string
	apiKey   string
	timeout  time.Duration
	logger   *zap.Logger
}

func NewClient(cfg config.AdvisorConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		http: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		model:    cfg.Model,
		apiKey:   cfg.APIKey,
		timeout:  timeout,
		logger:   logger,
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
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
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", domain.NewError(domain.ErrCodeUnavailable, "advisor API key is not configured")
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", domain.WrapError(domain.ErrCodeInternal, "failed to encode advisor request", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fmt.Sprintf("%s/models/%s:generateContent", c.endpoint, c.model))
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)
	req.SetBody(body)

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if timeout <= 0 {
		return "", domain.WrapError(domain.ErrCodeUnavailable, "advisor request deadline exceeded", ctx.Err())
	}

	if err := c.http.DoTimeout(req, resp, timeout); err != nil {
		return "", domain.WrapError(domain.ErrCodeUnavailable, "advisor request failed", err)
	}

	var parsed generateResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return "", domain.WrapError(domain.ErrCodeUnavailable, "advisor returned malformed response", err)
	}
	if status := resp.StatusCode(); status != fasthttp.StatusOK {
		message := fmt.Sprintf("advisor returned status %d", status)
		if parsed.Error != nil && parsed.Error.Message != "" {
			message = fmt.Sprintf("%s: %s", message, parsed.Error.Message)
		}
		c.logger.Warn("advisor request rejected", zap.Int("status", status))
		return "", domain.NewError(domain.ErrCodeUnavailable, message)
	}

	text := extractText(parsed)
	if text == "" {
		return "", domain.NewError(domain.ErrCodeUnavailable, "advisor returned no text candidates")
	}
	return text, nil
}

func extractText(resp generateResponse) string {
	var b strings.Builder
	for _, cand := range resp.Candidates {
		for _, p := range cand.Content.Parts {
			b.WriteString(p.Text)
		}
		if b.Len() > 0 {
			break
		}
	}
	return strings.TrimSpace(b.String())
}
