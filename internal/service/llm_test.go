package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func completionBody(content string) string {
	body, _ := json.Marshal(map[string]interface{}{
		"choices": []interface{}{
			map[string]interface{}{"message": map[string]interface{}{"role": "assistant", "content": content}},
		},
	})
	return string(body)
}

func newTestClient(url string) *LLMClient {
	return NewLLMClient(LLMConfig{APIKey: "test-key", APIURL: url, Model: "test-model", Timeout: 5 * time.Second}, zap.NewNop())
}

func TestDecodeCompletion(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		kind    CompletionKind
		content string
		message string
	}{
		{name: "well formed", body: completionBody("hello"), kind: WellFormed, content: "hello"},
		{name: "null content", body: `{"choices":[{"message":{"content":null}}]}`, kind: WellFormed},
		{name: "error object", body: `{"error":{"message":"invalid api key","type":"auth"}}`, kind: ServiceError, message: "invalid api key"},
		{name: "error string", body: `{"error":"overloaded"}`, kind: ServiceError, message: "overloaded"},
		{name: "error without message", body: `{"error":{"code":500}}`, kind: ServiceError, message: "completion service error"},
		{name: "null error", body: `{"error":null,"choices":[{"message":{"content":"x"}}]}`, kind: WellFormed, content: "x"},
		{name: "no choices", body: `{"choices":[]}`, kind: MalformedEnvelope},
		{name: "no message", body: `{"choices":[{"index":0}]}`, kind: MalformedEnvelope},
		{name: "message without content", body: `{"choices":[{"message":{"role":"assistant"}}]}`, kind: MalformedEnvelope},
		{name: "content not a string", body: `{"choices":[{"message":{"content":{"text":"x"}}}]}`, kind: MalformedEnvelope},
		{name: "not json", body: `<html>bad gateway</html>`, kind: MalformedEnvelope},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, _ := decodeCompletion([]byte(tt.body))
			require.NotNil(t, raw)
			assert.Equal(t, tt.kind, raw.Kind)
			assert.Equal(t, tt.content, raw.Content)
			assert.Equal(t, tt.message, raw.ErrorMessage)
		})
	}
}

func TestDecodeCompletion_MissingContentIsNotEmptyContent(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		reason string
	}{
		{name: "absent", body: `{"choices":[{"message":{"role":"assistant"}}]}`, reason: ReasonMissingContentPath},
		{name: "null", body: `{"choices":[{"message":{"content":null}}]}`, reason: ReasonEmptyContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, _ := decodeCompletion([]byte(tt.body))
			_, err := ExtractJSON(raw)
			var extractionErr *ExtractionError
			require.ErrorAs(t, err, &extractionErr)
			assert.Equal(t, tt.reason, extractionErr.Reason)
		})
	}
}

func TestLLMClient_Complete(t *testing.T) {
	var got Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionBody(`{"name":"Soupe"}`)))
	}))
	defer server.Close()

	raw, err := newTestClient(server.URL).Complete(context.Background(), "the prompt", "the persona")
	require.NoError(t, err)

	assert.Equal(t, WellFormed, raw.Kind)
	assert.Equal(t, `{"name":"Soupe"}`, raw.Content)

	assert.Equal(t, "test-model", got.Model)
	assert.Equal(t, 0.7, got.Temperature)
	assert.Equal(t, 1000, got.MaxTokens)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, Message{Role: "system", Content: "the persona"}, got.Messages[0])
	assert.Equal(t, Message{Role: "user", Content: "the prompt"}, got.Messages[1])
}

func TestLLMClient_ServiceErrorOnNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limit reached"}}`))
	}))
	defer server.Close()

	raw, err := newTestClient(server.URL).Complete(context.Background(), "p", "s")
	require.NoError(t, err)
	assert.Equal(t, ServiceError, raw.Kind)
	assert.Equal(t, "rate limit reached", raw.ErrorMessage)
}

func TestLLMClient_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream unavailable"))
	}))
	defer server.Close()

	raw, err := newTestClient(server.URL).Complete(context.Background(), "p", "s")
	assert.Nil(t, raw)

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, http.StatusBadGateway, transportErr.StatusCode)
	assert.Equal(t, "upstream unavailable", transportErr.Message)
}

func TestLLMClient_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := newTestClient(url).Complete(context.Background(), "p", "s")

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Zero(t, transportErr.StatusCode)
}

func TestLLMClient_CircuitOpensAfterConsecutiveFailures(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	for i := 0; i < 5; i++ {
		_, err := client.Complete(context.Background(), "p", "s")
		require.Error(t, err)
	}

	_, err := client.Complete(context.Background(), "p", "s")
	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, "circuit open", transportErr.Message)
	assert.Equal(t, int32(5), atomic.LoadInt32(&calls))
}

func TestTransportError_Error(t *testing.T) {
	err := &TransportError{StatusCode: 503, Message: "unavailable"}
	assert.Equal(t, "completion transport (status 503): unavailable", err.Error())

	cause := errors.New("dial tcp: refused")
	wrapped := &TransportError{Message: "failed to send request", Err: cause}
	assert.ErrorIs(t, wrapped, cause)
}
