package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const (
	DefaultLLMAPIURL = "https://api.groq.com/openai/v1/chat/completions"
	DefaultLLMModel  = "llama3-8b-8192"

	completionTemperature = 0.7
	completionMaxTokens   = 1000
)

// CompletionClient sends one prompt to the completion service
type CompletionClient interface {
	Complete(ctx context.Context, prompt, system string) (*RawCompletion, error)
}

// CompletionKind tags the shape of a decoded completion response
type CompletionKind int

const (
	// WellFormed responses carry choices[0].message; Content may still be empty
	WellFormed CompletionKind = iota
	// ServiceError responses carry an error field reported by the service
	ServiceError
	// MalformedEnvelope responses lack the choices/message path or are not JSON
	MalformedEnvelope
)

func (k CompletionKind) String() string {
	switch k {
	case WellFormed:
		return "well_formed"
	case ServiceError:
		return "service_error"
	default:
		return "malformed_envelope"
	}
}

// RawCompletion is a decoded completion response. Content is only meaningful
// for WellFormed, ErrorMessage only for ServiceError.
type RawCompletion struct {
	Kind         CompletionKind
	Content      string
	ErrorMessage string
}

// Err returns the service-reported error as a TransportError, or nil
func (r *RawCompletion) Err() error {
	if r == nil || r.Kind != ServiceError {
		return nil
	}
	return &TransportError{Message: r.ErrorMessage}
}

// TransportError reports a network failure, a non-2xx status, an open circuit
// or an error reported by the completion service itself.
type TransportError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *TransportError) Error() string {
	var b strings.Builder
	b.WriteString("completion transport")
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	if e.Message != "" {
		b.WriteString(": " + e.Message)
	}
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request represents a chat completion request
type Request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type completionEnvelope struct {
	Choices []struct {
		Message *struct {
			Content json.RawMessage `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error json.RawMessage `json:"error"`
}

// LLMConfig configures the completion client
type LLMConfig struct {
	APIKey  string
	APIURL  string
	Model   string
	Timeout time.Duration
}

// LLMClient talks to an OpenAI-compatible chat completion endpoint
type LLMClient struct {
	apiKey  string
	apiURL  string
	model   string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

var errServiceReported = errors.New("service reported an error")

// NewLLMClient creates a new LLMClient. A zero Timeout leaves requests
// bounded only by the caller's context.
func NewLLMClient(cfg LLMConfig, logger *zap.Logger) *LLMClient {
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultLLMAPIURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultLLMModel
	}

	c := &LLMClient{
		apiKey: cfg.APIKey,
		apiURL: cfg.APIURL,
		model:  cfg.Model,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "completion",
		MaxRequests: 1,
		Interval:    30 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})
	return c
}

// Complete sends the prompt with the given system instructions. A service
// reported error comes back as a ServiceError completion, not as err.
func (c *LLMClient) Complete(ctx context.Context, prompt, system string) (*RawCompletion, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		raw, err := c.send(ctx, prompt, system)
		if err != nil {
			return nil, err
		}
		if raw.Kind == ServiceError {
			return raw, errServiceReported
		}
		return raw, nil
	})

	switch {
	case errors.Is(err, errServiceReported):
		return result.(*RawCompletion), nil
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return nil, &TransportError{Message: "circuit open", Err: err}
	case err != nil:
		return nil, err
	}
	return result.(*RawCompletion), nil
}

func (c *LLMClient) send(ctx context.Context, prompt, system string) (*RawCompletion, error) {
	reqBody := Request{
		Model: c.model,
		Messages: []Message{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		Temperature: completionTemperature,
		MaxTokens:   completionMaxTokens,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, &TransportError{Message: "failed to marshal request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, &TransportError{Message: "failed to create request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Message: "failed to send request", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{StatusCode: resp.StatusCode, Message: "failed to read response", Err: err}
	}

	c.logger.Debug("completion response received",
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)))

	raw, decodeErr := decodeCompletion(body)
	if raw != nil && raw.Kind == ServiceError {
		return raw, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TransportError{StatusCode: resp.StatusCode, Message: truncate(string(body), 200)}
	}
	if decodeErr != nil {
		c.logger.Warn("completion envelope could not be decoded", zap.Error(decodeErr))
	}
	return raw, nil
}

// decodeCompletion classifies a response body. It always returns a completion;
// the error only explains a MalformedEnvelope.
func decodeCompletion(body []byte) (*RawCompletion, error) {
	var env completionEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return &RawCompletion{Kind: MalformedEnvelope}, err
	}

	if msg, ok := serviceErrorMessage(env.Error); ok {
		return &RawCompletion{Kind: ServiceError, ErrorMessage: msg}, nil
	}

	if len(env.Choices) == 0 || env.Choices[0].Message == nil {
		return &RawCompletion{Kind: MalformedEnvelope}, nil
	}

	// an absent content key is a broken envelope, a null one is empty content
	content := env.Choices[0].Message.Content
	if len(content) == 0 {
		return &RawCompletion{Kind: MalformedEnvelope}, nil
	}
	raw := &RawCompletion{Kind: WellFormed}
	if bytes.Equal(content, []byte("null")) {
		return raw, nil
	}
	if err := json.Unmarshal(content, &raw.Content); err != nil {
		return &RawCompletion{Kind: MalformedEnvelope}, err
	}
	return raw, nil
}

// serviceErrorMessage reads the error field, which services send either as an
// object with a message or as a plain string.
func serviceErrorMessage(field json.RawMessage) (string, bool) {
	trimmed := bytes.TrimSpace(field)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", false
	}

	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(trimmed, &obj); err == nil && obj.Message != "" {
		return obj.Message, true
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil && s != "" {
		return s, true
	}

	return "completion service error", true
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
