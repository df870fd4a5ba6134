package api

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/oklog/ulid/v2"

	"github.com/TrailGuard-io/mobile-app/internal/infra/buildinfo"
	"github.com/TrailGuard-io/mobile-app/internal/telemetry/logger"
	"github.com/TrailGuard-io/mobile-app/internal/telemetry/metric"
)

// Defaults.
const (
	DefaultBaseURL  = "http://localhost:3001/api"
	DefaultTimeout  = 10 * time.Second
	RequestIDHeader = "X-Request-ID"
)

// Session is what the client needs from the session store: a point-in-time
// token read and a clear for rejected credentials. *session.Store satisfies it.
type Session interface {
	Token() (string, bool)
	Clear(ctx context.Context) error
}

// Config configures the client.
type Config struct {
	// BaseURL is the API root, including the /api prefix.
	BaseURL string
	// Timeout is the per-request ceiling.
	Timeout time.Duration
	// UserAgent overrides the default "trailguard-cli/<version>".
	UserAgent string
	// TLSConfig is used for https base URLs. Nil means system defaults.
	TLSConfig *tls.Config
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Timeout: DefaultTimeout,
	}
}

// Exchange is one completed HTTP exchange as seen by response stages.
type Exchange struct {
	Method    string
	Path      string
	Status    int
	Duration  time.Duration
	RequestID string
	Body      []byte
}

// ResponseStage inspects a response. Returning an error skips the remaining
// stages and the error is returned to the caller unchanged, except for a 401:
// the session is cleared and *AuthExpiredError is returned whatever the
// stages decided.
type ResponseStage func(ctx context.Context, ex *Exchange) error

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the client logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics records request metrics into m.
func WithMetrics(m *metric.Registry) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithResponseStage appends a stage that runs after the built-in observer
// and before the status check. A stage cannot suppress the 401 clear.
func WithResponseStage(s ResponseStage) Option {
	return func(c *Client) {
		c.stages = append(c.stages, s)
	}
}

// Client calls the TrailGuard backend on behalf of one session.
type Client struct {
	cfg      Config
	http     *resty.Client
	session  Session
	logger   logger.Logger
	metrics  *metric.Registry
	stages   []ResponseStage
	pipeline []ResponseStage
}

type pathKey struct{}

// New builds a client bound to session.
func New(cfg Config, session Session, opts ...Option) (*Client, error) {
	if session == nil {
		return nil, errors.New("api: session is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = buildinfo.UserAgent()
	}

	u, err := url.Parse(cfg.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("api: invalid base URL %q", cfg.BaseURL)
	}

	c := &Client{
		cfg:     cfg,
		session: session,
		logger:  logger.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "api")

	c.pipeline = make([]ResponseStage, 0, len(c.stages)+1)
	c.pipeline = append(c.pipeline, c.observe)
	c.pipeline = append(c.pipeline, c.stages...)

	c.http = resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", cfg.UserAgent).
		SetLogger(&restyLogger{logger: c.logger}).
		OnBeforeRequest(c.decorate).
		OnAfterResponse(c.inspect)
	if cfg.TLSConfig != nil {
		c.http.SetTLSClientConfig(cfg.TLSConfig)
	}

	return c, nil
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.cfg.BaseURL
}

// Timeout returns the per-request ceiling.
func (c *Client) Timeout() time.Duration {
	return c.cfg.Timeout
}

// decorate attaches the bearer credential. The token is read once, at
// dispatch, and never re-read for the same request.
func (c *Client) decorate(_ *resty.Client, req *resty.Request) error {
	if tok, ok := c.session.Token(); ok {
		req.SetAuthToken(tok)
	}
	return nil
}

// inspect runs every response through the stage pipeline and then through
// checkStatus, which always runs.
func (c *Client) inspect(_ *resty.Client, resp *resty.Response) error {
	ctx := resp.Request.Context()
	path, _ := ctx.Value(pathKey{}).(string)

	ex := &Exchange{
		Method:    resp.Request.Method,
		Path:      path,
		Status:    resp.StatusCode(),
		Duration:  resp.Time(),
		RequestID: resp.Request.Header.Get(RequestIDHeader),
		Body:      resp.Body(),
	}
	var stageErr error
	for _, stage := range c.pipeline {
		if stageErr = stage(ctx, ex); stageErr != nil {
			break
		}
	}

	statusErr := c.checkStatus(ctx, ex)
	var authErr *AuthExpiredError
	switch {
	case errors.As(statusErr, &authErr):
		return &stageError{err: statusErr}
	case stageErr != nil:
		return &stageError{err: stageErr}
	case statusErr != nil:
		return &stageError{err: statusErr}
	}
	return nil
}

func (c *Client) observe(ctx context.Context, ex *Exchange) error {
	c.metrics.ObserveRequest(ex.Method, ex.Status, ex.Duration)
	logger.ForRequest(ctx, c.logger).Debug("api response",
		"method", ex.Method,
		"path", ex.Path,
		"status", ex.Status,
		"duration", ex.Duration)
	return nil
}

// checkStatus is the terminal stage. A 401 clears the session before the
// error is returned, exactly once per response.
func (c *Client) checkStatus(ctx context.Context, ex *Exchange) error {
	if ex.Status >= 200 && ex.Status < 300 {
		return nil
	}

	se := &ServerError{
		Method: ex.Method,
		Path:   ex.Path,
		Status: ex.Status,
		Raw:    ex.Body,
	}
	// Non-JSON error bodies leave Body empty; Message falls back to the status text.
	_ = json.Unmarshal(ex.Body, &se.Body)

	if ex.Status != http.StatusUnauthorized {
		return se
	}

	log := logger.ForRequest(ctx, c.logger)
	if err := c.session.Clear(context.WithoutCancel(ctx)); err != nil {
		log.Warn("clearing rejected session failed", "error", err)
	}
	c.metrics.IncSessionClear("expired")
	log.Warn("credential rejected, session cleared",
		"method", ex.Method,
		"path", ex.Path)

	return &AuthExpiredError{Server: se}
}

// do sends one request and decodes a 2xx JSON body into out (if non-nil).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if ctx == nil {
		ctx = context.Background()
	}

	reqID := ulid.Make().String()
	ctx = context.WithValue(ctx, pathKey{}, path)
	ctx = logger.WithRequestID(ctx, reqID)

	req := c.http.R().
		SetContext(ctx).
		SetHeader(RequestIDHeader, reqID)
	if len(query) > 0 {
		req.SetQueryParamsFromValues(query)
	}
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		err = classifyTransport(method, path, err)
		kind := ErrorKind(err)
		c.metrics.IncError(kind)
		if kind == KindNetwork || kind == KindTimeout {
			logger.ForRequest(ctx, c.logger).Debug("api request failed", "method", method, "path", path, "kind", kind, "error", err)
		}
		return err
	}

	if out == nil || len(resp.Body()) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		c.metrics.IncError(KindDecode)
		return &DecodeError{Method: method, Path: path, Err: err}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

// restyLogger adapts logger.Logger to resty's Logger interface.
type restyLogger struct {
	logger logger.Logger
}

func (l *restyLogger) Errorf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

func (l *restyLogger) Warnf(format string, v ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, v...))
}

func (l *restyLogger) Debugf(format string, v ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, v...))
}
