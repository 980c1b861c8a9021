// internal/assistant/llm/client.go

// Package llm wraps the OpenAI chat completions endpoint. One request per
// call: retries are the user's decision, never automatic.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"social-support-portal/internal/common/config"
	"social-support-portal/internal/common/errors"
	"social-support-portal/internal/common/logger"
)

type Client struct {
	cfg    config.OpenAIConfig
	client *http.Client
	logger logger.Logger
}

func NewClient(cfg config.OpenAIConfig, log logger.Logger) *Client {
	return &Client{
		cfg: cfg,
		client: &http.Client{
			// No client timeout; the per-call context bounds the request.
		},
		logger: log.WithFields(map[string]interface{}{"component": "llm-client"}),
	}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type providerError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends ordered system messages followed by user messages and
// returns the first choice's text. The call is bounded by the configured
// timeout; hitting it yields LLM_TIMEOUT, retryable by the caller only.
func (c *Client) Complete(ctx context.Context, systemMessages, userMessages []string) (string, error) {
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return "", errors.NewMissingCredentialError("OPENAI_API_KEY")
	}

	msgs := make([]message, 0, len(systemMessages)+len(userMessages))
	for _, m := range systemMessages {
		msgs = append(msgs, message{Role: "system", Content: m})
	}
	for _, m := range userMessages {
		msgs = append(msgs, message{Role: "user", Content: m})
	}

	body, err := json.Marshal(completionRequest{
		Model:       c.cfg.Model,
		Messages:    msgs,
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
	})
	if err != nil {
		return "", errors.NewLLMRequestFailedError("")
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.Timeout)*time.Millisecond)
	defer cancel()

	started := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", errors.NewLLMRequestFailedError("")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			c.logger.Warn("completion timed out", map[string]interface{}{
				"elapsedMs": time.Since(started).Milliseconds(),
			})
			return "", errors.NewLLMTimeoutError()
		}
		return "", errors.NewLLMRequestFailedError("")
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.NewLLMRequestFailedError("")
	}

	if resp.StatusCode != http.StatusOK {
		// Prefer the provider's own message when the body carries one.
		var provErr providerError
		if jsonErr := json.Unmarshal(payload, &provErr); jsonErr == nil && provErr.Error.Message != "" {
			c.logger.Warn("provider rejected completion", map[string]interface{}{
				"status":  resp.StatusCode,
				"message": provErr.Error.Message,
			})
			return "", errors.NewLLMRequestFailedError(provErr.Error.Message)
		}
		return "", errors.NewLLMRequestFailedError(fmt.Sprintf("AI request failed with status %d", resp.StatusCode))
	}

	var decoded completionResponse
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return "", errors.NewLLMRequestFailedError("")
	}
	if len(decoded.Choices) == 0 {
		return "", nil
	}

	c.logger.Debug("completion finished", map[string]interface{}{
		"elapsedMs": time.Since(started).Milliseconds(),
	})
	return strings.TrimSpace(decoded.Choices[0].Message.Content), nil
}
