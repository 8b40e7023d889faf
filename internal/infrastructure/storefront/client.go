// Package storefront is the HTTP client for the remote e-commerce REST API.
//
// Every call is a single round trip: no retries, no backoff. Failures of any
// kind come back as *domain.APIError. A 401 additionally invokes the one
// UnauthorizedHandler installed at construction time.
package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/99minutos/storefront-console/internal/core/domain"
	"github.com/99minutos/storefront-console/internal/core/ports"
	"github.com/99minutos/storefront-console/internal/metrics"
)

const (
	defaultTimeout  = 15 * time.Second
	maxErrorBody    = 64 << 10
	headerRequestID = "X-Request-ID"
)

// Client talks to the remote storefront API.
type Client struct {
	baseURL        *url.URL
	httpClient     *http.Client
	log            zerolog.Logger
	onUnauthorized ports.UnauthorizedHandler
	limiter        *rate.Limiter
}

var _ ports.StorefrontAPI = (*Client)(nil)

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithUnauthorizedHandler installs the application-wide reaction to a 401.
func WithUnauthorizedHandler(h ports.UnauthorizedHandler) Option {
	return func(c *Client) { c.onUnauthorized = h }
}

// WithRateLimit caps outbound requests at rps with the given burst.
// A non-positive rps leaves the client unlimited.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// New builds a client for the API rooted at baseURL (e.g. http://localhost:5000/api).
func New(baseURL string, timeout time.Duration, log zerolog.Logger, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid api base url %q", baseURL)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type requestIDKey struct{}

// ContextWithRequestID makes outbound calls reuse the inbound request ID.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}

// call describes one round trip.
type call struct {
	op         string
	method     string
	path       string
	query      url.Values
	body       any
	form       *multipartForm
	credential string
	fallback   string
}

type multipartForm struct {
	fields map[string]string
	files  map[string]domain.ImageUpload
}

// errorBody is the error envelope of the remote API. Either field may be set.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (c *Client) do(ctx context.Context, r call, out any) error {
	start := time.Now()
	defer func() {
		metrics.UpstreamRequestDuration.WithLabelValues(r.op).Observe(time.Since(start).Seconds())
	}()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			metrics.UpstreamRequestsTotal.WithLabelValues(r.op, "throttled").Inc()
			return &domain.APIError{Op: r.op, Message: r.fallback, Err: fmt.Errorf("%w: %v", domain.ErrTransport, err)}
		}
	}

	req, err := c.newRequest(ctx, r)
	if err != nil {
		return &domain.APIError{Op: r.op, Message: r.fallback, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(r.op, "transport").Inc()
		c.log.Error().Err(err).Str("op", r.op).Str("path", r.path).Msg("remote api unreachable")
		return &domain.APIError{Op: r.op, Message: r.fallback, Err: fmt.Errorf("%w: %v", domain.ErrTransport, err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.failure(ctx, r, resp)
	}
	metrics.UpstreamRequestsTotal.WithLabelValues(r.op, "ok").Inc()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		c.log.Error().Err(err).Str("op", r.op).Msg("failed to decode remote api response")
		return &domain.APIError{Op: r.op, Status: resp.StatusCode, Message: r.fallback, Err: err}
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, r call) (*http.Request, error) {
	// r.path arrives with its segments already escaped. RawPath keeps them
	// that way; Path holds the decoded form url.URL expects.
	u := *c.baseURL
	u.RawPath = c.baseURL.EscapedPath() + r.path
	decoded, err := url.PathUnescape(u.RawPath)
	if err != nil {
		return nil, fmt.Errorf("build path: %w", err)
	}
	u.Path = decoded
	if len(r.query) > 0 {
		u.RawQuery = r.query.Encode()
	}

	var (
		body        io.Reader
		contentType string
	)
	switch {
	case r.form != nil:
		buf, ct, err := encodeMultipart(r.form)
		if err != nil {
			return nil, fmt.Errorf("encode multipart: %w", err)
		}
		body, contentType = buf, ct
	case r.body != nil:
		raw, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		body, contentType = bytes.NewReader(raw), "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerRequestID, requestIDFrom(ctx))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if r.credential != "" {
		req.Header.Set("Authorization", "Bearer "+r.credential)
	}
	return req, nil
}

func (c *Client) failure(ctx context.Context, r call, resp *http.Response) error {
	apiErr := &domain.APIError{Op: r.op, Status: resp.StatusCode, Message: r.fallback}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var eb errorBody
	if json.Unmarshal(raw, &eb) == nil {
		switch {
		case eb.Message != "":
			apiErr.Message = eb.Message
		case eb.Error != "":
			apiErr.Message = eb.Error
		}
	}

	outcome := "client_error"
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		outcome = "unauthorized"
	case resp.StatusCode >= 500:
		outcome = "server_error"
	}
	metrics.UpstreamRequestsTotal.WithLabelValues(r.op, outcome).Inc()

	c.log.Warn().
		Str("op", r.op).
		Str("path", r.path).
		Int("status", resp.StatusCode).
		Str("message", apiErr.Message).
		Msg("remote api request failed")

	// Calls made without a credential (e.g. a wrong password at login) are
	// not session failures.
	if resp.StatusCode == http.StatusUnauthorized && r.credential != "" && c.onUnauthorized != nil {
		c.onUnauthorized(ctx, r.credential)
	}
	return apiErr
}

func encodeMultipart(f *multipartForm) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for k, v := range f.fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", err
		}
	}
	for field, file := range f.files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, file.Filename))
		ct := file.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(file.Data); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

// escape makes a caller-supplied id safe to embed in a path.
func escape(id string) string {
	return url.PathEscape(id)
}
