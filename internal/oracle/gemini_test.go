package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venue-intelligence/internal/common/config"
	"venue-intelligence/internal/common/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *GeminiClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewGeminiClient(config.OracleConfig{
		BaseURL: srv.URL,
		Model:   "gemini-pro",
		APIKey:  "test-key",
		Timeout: 5000,
	}, nil, logger.NewTestLogger(t))
}

func TestGeminiClient_Generate(t *testing.T) {
	var got generateRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/models/gemini-pro:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"{\"overallScore\":88}"}]}}]}`))
	})

	temperature := 0.1
	text, err := client.Generate(context.Background(), Request{Prompt: "analyse", Temperature: &temperature, MaxOutputTokens: 1000})
	require.NoError(t, err)

	assert.Equal(t, `{"overallScore":88}`, text)
	require.Len(t, got.Contents, 1)
	assert.Equal(t, "analyse", got.Contents[0].Parts[0].Text)
	assert.Equal(t, 1000, got.GenerationConfig.MaxOutputTokens)
	assert.Equal(t, 0.1, got.GenerationConfig.Temperature)
}

func TestGeminiClient_DefaultGenerationConfig(t *testing.T) {
	var got generateRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`))
	})

	_, err := client.Generate(context.Background(), Request{Prompt: "p"})
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxOutputTokens, got.GenerationConfig.MaxOutputTokens)
	assert.Equal(t, DefaultTemperature, got.GenerationConfig.Temperature)
}

func TestGeminiClient_ZeroTemperatureIsSent(t *testing.T) {
	var got map[string]map[string]interface{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`))
	})

	zero := 0.0
	_, err := client.Generate(context.Background(), Request{Prompt: "p", Temperature: &zero})
	require.NoError(t, err)
	assert.Equal(t, 0.0, got["generationConfig"]["temperature"])
}

func TestGeminiClient_StatusErrors(t *testing.T) {
	tests := []struct {
		status      int
		clientError bool
	}{
		{http.StatusBadRequest, true},
		{http.StatusTooManyRequests, true},
		{http.StatusInternalServerError, false},
		{http.StatusServiceUnavailable, false},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"error":"nope"}`))
			})

			_, err := client.Generate(context.Background(), Request{Prompt: "p"})
			require.Error(t, err)

			var se *StatusError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.status, se.StatusCode)
			assert.Equal(t, tt.clientError, IsClientError(err))
		})
	}
}

func TestGeminiClient_EmptyCandidates(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	})

	_, err := client.Generate(context.Background(), Request{Prompt: "p"})
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestGeminiClient_UndecodableBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>gateway</html>`))
	})

	_, err := client.Generate(context.Background(), Request{Prompt: "p"})
	require.Error(t, err)
	assert.False(t, IsClientError(err))
}

func TestGeminiClient_RespectsContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.Generate(ctx, Request{Prompt: "p"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGeminiClient_WithoutKey(t *testing.T) {
	client := NewGeminiClient(config.OracleConfig{}, nil, logger.NewNoOpLogger())
	_, err := client.Generate(context.Background(), Request{Prompt: "p"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestStub_ReplaysScript(t *testing.T) {
	boom := errors.New("boom")
	s := NewStub(Reply{Err: boom}, Reply{Text: "second"})

	_, err := s.Generate(context.Background(), Request{Prompt: "a"})
	assert.ErrorIs(t, err, boom)

	text, err := s.Generate(context.Background(), Request{Prompt: "b"})
	require.NoError(t, err)
	assert.Equal(t, "second", text)

	text, err = s.Generate(context.Background(), Request{Prompt: "c"})
	require.NoError(t, err)
	assert.Equal(t, "second", text)

	assert.Equal(t, 3, s.Calls())
	assert.Equal(t, "c", s.Requests()[2].Prompt)
}
