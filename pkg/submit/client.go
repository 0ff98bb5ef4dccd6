package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxErrorBody = 4 << 10

// ClientOption configures the HTTP collaborators.
type ClientOption func(*clientConfig)

type clientConfig struct {
	httpClient *http.Client
	logger     *zap.Logger
	headers    map[string]string
	newKey     func() string
}

// WithHTTPClient overrides the HTTP client used for requests.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(cfg *clientConfig) {
		if client != nil {
			cfg.httpClient = client
		}
	}
}

// WithTimeout sets the timeout on a fresh HTTP client.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(cfg *clientConfig) {
		if timeout > 0 {
			cfg.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// WithClientLogger attaches a logger.
func WithClientLogger(logger *zap.Logger) ClientOption {
	return func(cfg *clientConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithHeader adds a static request header (for example a CSRF token).
func WithHeader(name, value string) ClientOption {
	return func(cfg *clientConfig) {
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		if cfg.headers == nil {
			cfg.headers = make(map[string]string)
		}
		cfg.headers[name] = value
	}
}

// WithIdempotencyKeys overrides the generator used for Idempotency-Key headers.
func WithIdempotencyKeys(fn func() string) ClientOption {
	return func(cfg *clientConfig) {
		if fn != nil {
			cfg.newKey = fn
		}
	}
}

func newClientConfig(options []ClientOption) clientConfig {
	cfg := clientConfig{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     zap.NewNop(),
		newKey:     uuid.NewString,
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

func (cfg clientConfig) postJSON(ctx context.Context, endpoint string, payload any, headers map[string]string) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("submit: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("submit: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for name, value := range cfg.headers {
		req.Header.Set(name, value)
	}
	for name, value := range headers {
		req.Header.Set(name, value)
	}

	resp, err := cfg.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	return resp, nil
}

// AuthClient is an Authenticator backed by a JSON credentials endpoint.
type AuthClient struct {
	endpoint string
	cfg      clientConfig
}

var _ Authenticator = (*AuthClient)(nil)

// NewAuthClient builds a client posting credentials to endpoint.
func NewAuthClient(endpoint string, options ...ClientOption) (*AuthClient, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, ErrEndpointRequired
	}
	return &AuthClient{endpoint: endpoint, cfg: newClientConfig(options)}, nil
}

type signInResponse struct {
	Error string `json:"error,omitempty"`
	Token string `json:"token,omitempty"`
}

// SignIn posts the credentials. 401/403 and bodies carrying an error field
// are rejections. Any other 4xx or 5xx status, an unreachable host or an
// unreadable body is an error.
func (c *AuthClient) SignIn(ctx context.Context, creds Credentials) (SignInResult, error) {
	resp, err := c.cfg.postJSON(ctx, c.endpoint, creds, nil)
	if err != nil {
		return SignInResult{}, err
	}
	defer resp.Body.Close()

	c.cfg.logger.Debug("credential check response", zap.Int("status", resp.StatusCode))

	if resp.StatusCode >= http.StatusInternalServerError {
		return SignInResult{}, fmt.Errorf("%w: %w", ErrTransport, statusError(resp))
	}

	var payload signInResponse
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return SignInResult{}, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	rejected := resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, &payload); err != nil {
			switch {
			case rejected:
				return SignInResult{Error: DefaultCredentialsError}, nil
			case resp.StatusCode >= http.StatusBadRequest:
				return SignInResult{}, fmt.Errorf("%w: %w", ErrTransport, bodyStatusError(resp.StatusCode, data))
			}
			return SignInResult{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
	}

	if payload.Error != "" {
		return SignInResult{Error: payload.Error}, nil
	}
	if rejected {
		return SignInResult{Error: DefaultCredentialsError}, nil
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return SignInResult{}, fmt.Errorf("%w: %w", ErrTransport, bodyStatusError(resp.StatusCode, data))
	}
	return SignInResult{Session: ParseSession(payload.Token)}, nil
}

// Record is a created resource as echoed by the server.
type Record struct {
	ID     string
	Values map[string]string
}

// Creator is the external record-creation endpoint.
type Creator interface {
	Create(ctx context.Context, values map[string]string) (Record, error)
}

// CreatorFunc adapts a function into a Creator.
type CreatorFunc func(ctx context.Context, values map[string]string) (Record, error)

// Create calls the underlying function.
func (fn CreatorFunc) Create(ctx context.Context, values map[string]string) (Record, error) {
	return fn(ctx, values)
}

// RecordClient is a Creator posting JSON documents to a collection endpoint.
type RecordClient struct {
	endpoint string
	cfg      clientConfig
}

var _ Creator = (*RecordClient)(nil)

// NewRecordClient builds a client posting to endpoint.
func NewRecordClient(endpoint string, options ...ClientOption) (*RecordClient, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, ErrEndpointRequired
	}
	return &RecordClient{endpoint: endpoint, cfg: newClientConfig(options)}, nil
}

type rejectionBody struct {
	Message string              `json:"message,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// Create posts values with a fresh Idempotency-Key. 400/422 responses become
// a *RejectedError, other non-2xx statuses a *StatusError.
func (c *RecordClient) Create(ctx context.Context, values map[string]string) (Record, error) {
	key := c.cfg.newKey()
	resp, err := c.cfg.postJSON(ctx, c.endpoint, values, map[string]string{"Idempotency-Key": key})
	if err != nil {
		return Record{}, err
	}
	defer resp.Body.Close()

	c.cfg.logger.Debug("record create response",
		zap.Int("status", resp.StatusCode),
		zap.String("idempotency_key", key),
	)

	switch {
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		var body rejectionBody
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		_ = json.Unmarshal(data, &body)
		rejected := &RejectedError{Status: resp.StatusCode, Fields: body.Errors}
		if msg := strings.TrimSpace(body.Message); msg != "" {
			rejected.Messages = []string{msg}
		}
		return Record{}, rejected
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return Record{}, statusError(resp)
	}

	var raw map[string]any
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, &raw); err != nil {
			return Record{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
	}
	return recordFromPayload(raw, values, key), nil
}

func recordFromPayload(raw map[string]any, sent map[string]string, fallbackID string) Record {
	record := Record{ID: fallbackID, Values: make(map[string]string, len(sent))}
	for key, value := range sent {
		record.Values[key] = value
	}
	for key, value := range raw {
		if value == nil {
			continue
		}
		if key == "id" {
			if id := strings.TrimSpace(fmt.Sprint(value)); id != "" {
				record.ID = id
			}
			continue
		}
		switch typed := value.(type) {
		case string:
			record.Values[key] = typed
		case float64, bool:
			record.Values[key] = fmt.Sprint(typed)
		}
	}
	return record
}

func statusError(resp *http.Response) *StatusError {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return bodyStatusError(resp.StatusCode, data)
}

func bodyStatusError(status int, data []byte) *StatusError {
	if len(data) > maxErrorBody {
		data = data[:maxErrorBody]
	}
	return &StatusError{Status: status, Body: strings.TrimSpace(string(data))}
}
