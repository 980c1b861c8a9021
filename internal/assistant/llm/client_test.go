// internal/assistant/llm/client_test.go
package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"social-support-portal/internal/common/config"
	stderrors "social-support-portal/internal/common/errors"
	"social-support-portal/internal/common/logger"
)

func testConfig(baseURL string) config.OpenAIConfig {
	return config.OpenAIConfig{
		APIKey:      "test-key",
		Model:       "gpt-3.5-turbo",
		BaseURL:     baseURL,
		MaxTokens:   450,
		Temperature: 0.3,
		Timeout:     2000,
	}
}

func TestClient_Complete_Success(t *testing.T) {
	var captured completionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "  Here is your answer.  "}},
			},
		})
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), logger.NewTestLogger(t))
	out, err := client.Complete(context.Background(),
		[]string{"system one", "system two"},
		[]string{"user prompt"})

	require.NoError(t, err)
	assert.Equal(t, "Here is your answer.", out)

	// Message ordering: systems first, then users.
	require.Len(t, captured.Messages, 3)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Equal(t, "system", captured.Messages[1].Role)
	assert.Equal(t, "user", captured.Messages[2].Role)
	assert.Equal(t, 0.3, captured.Temperature)
	assert.Equal(t, 450, captured.MaxTokens)
}

func TestClient_Complete_MissingAPIKey(t *testing.T) {
	cfg := testConfig("http://localhost:1")
	cfg.APIKey = ""
	client := NewClient(cfg, logger.NewTestLogger(t))

	_, err := client.Complete(context.Background(), nil, []string{"hi"})

	var stdErr *stderrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, stderrors.ErrCodeMissingCredential, stdErr.Code)
}

func TestClient_Complete_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.Timeout = 20
	client := NewClient(cfg, logger.NewTestLogger(t))

	_, err := client.Complete(context.Background(), nil, []string{"hi"})

	var stdErr *stderrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, stderrors.ErrCodeLLMTimeout, stdErr.Code)
	assert.Equal(t, "Request timed out.", stdErr.Message)
}

func TestClient_Complete_ProviderErrorPreferred(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"Rate limit reached for requests"}}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), logger.NewTestLogger(t))
	_, err := client.Complete(context.Background(), nil, []string{"hi"})

	var stdErr *stderrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, stderrors.ErrCodeLLMRequestFailed, stdErr.Code)
	assert.Equal(t, "Rate limit reached for requests", stdErr.Message)
}

func TestClient_Complete_GenericFailureWithoutProviderMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`oops`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), logger.NewTestLogger(t))
	_, err := client.Complete(context.Background(), nil, []string{"hi"})

	var stdErr *stderrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, stderrors.ErrCodeLLMRequestFailed, stdErr.Code)
	assert.Contains(t, stdErr.Message, "AI request failed")
}

func TestClient_Complete_NoAutomaticRetry(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), logger.NewTestLogger(t))
	_, err := client.Complete(context.Background(), nil, []string{"hi"})

	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestClient_Complete_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), logger.NewTestLogger(t))
	out, err := client.Complete(context.Background(), nil, []string{"hi"})

	require.NoError(t, err)
	assert.Empty(t, out)
}
