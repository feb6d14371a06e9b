// Package backend is the authenticated access layer for the lending
// backend's REST API. Every call attaches the session's bearer token,
// classifies the response and funnels authentication failures through
// a single-flight expiry protocol.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/sbenmansour/cessiondesk/internal/app/i18n"
	"github.com/sbenmansour/cessiondesk/internal/app/notify"
	"github.com/sbenmansour/cessiondesk/internal/app/observability/metrics"
	"github.com/sbenmansour/cessiondesk/internal/app/session"
	"github.com/sbenmansour/cessiondesk/internal/pkg/config"
)

// Client talks to the lending backend on behalf of the signed-in
// operator. List endpoints are cached for a short TTL and deduplicated
// with singleflight; any mutation flushes the cache.
type Client struct {
	baseURL  string
	http     *http.Client
	session  *session.Manager
	notifier *notify.Notifier
	i18n     *i18n.Translator
	logger   *zap.Logger
	cache    *gocache.Cache
	group    singleflight.Group
	guard    expiryGuard
	tracer   trace.Tracer

	// onExpiry is invoked once per expiry round so the web layer can
	// steer the next page load to the login screen.
	onExpiry func()
}

// NewClient wires the access layer. The translator localizes the
// expiry notification; onExpiry may be nil.
func NewClient(
	cfg config.BackendConfig,
	sess *session.Manager,
	notifier *notify.Notifier,
	translator *i18n.Translator,
	logger *zap.Logger,
	onExpiry func(),
) *Client {
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		http:     &http.Client{Timeout: cfg.RequestTimeout},
		session:  sess,
		notifier: notifier,
		i18n:     translator,
		logger:   logger.With(zap.String("component", "backend")),
		cache:    gocache.New(cfg.ListCacheTTL, 2*cfg.ListCacheTTL),
		guard:    expiryGuard{cooldown: expiryCooldown},
		tracer:   otel.Tracer("cessiondesk/backend"),
		onExpiry: onExpiry,
	}
}

// Session exposes the session manager to the web layer.
func (c *Client) Session() *session.Manager { return c.session }

// Notifier exposes the notifier to the web layer.
func (c *Client) Notifier() *notify.Notifier { return c.notifier }

// request describes one backend call before it is executed.
type request struct {
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string

	// public endpoints are called without a bearer token.
	public bool
}

func (c *Client) endpoint(r request) string {
	u := c.baseURL + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}
	return u
}

// do executes a request and returns the response body and its content
// type. Authentication failures trigger the expiry protocol and come
// back as ErrAuthentication; other non-2xx responses come back as
// *APIError carrying the backend's message when it sent one.
func (c *Client) do(ctx context.Context, r request) ([]byte, string, error) {
	ctx, span := c.tracer.Start(ctx, r.method+" "+r.path,
		trace.WithAttributes(
			attribute.String("http.method", r.method),
			attribute.String("http.route", r.path),
		))
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, r.method, c.endpoint(r), r.body)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, "", err
	}
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}

	if !r.public {
		token := c.session.Token()
		if token == "" {
			span.SetStatus(codes.Error, ErrNoToken.Error())
			return nil, "", ErrNoToken
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	m := metrics.Get()
	attrs := metric.WithAttributes(
		attribute.String("method", r.method),
		attribute.String("path", r.path),
	)
	m.BackendRequestsTotal.Add(ctx, 1, attrs)

	start := time.Now()
	resp, err := c.http.Do(req)
	m.BackendRequestDuration.Record(ctx, time.Since(start).Seconds(), attrs)
	if err != nil {
		m.BackendErrorsTotal.Add(ctx, 1, attrs)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Error("Backend request failed",
			zap.String("method", r.method),
			zap.String("path", r.path),
			zap.Error(err))
		return nil, "", err
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	switch {
	case resp.StatusCode == http.StatusNoContent:
		return nil, "", nil

	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, "", err
		}
		return body, resp.Header.Get("Content-Type"), nil

	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		m.BackendErrorsTotal.Add(ctx, 1, attrs)
		span.SetStatus(codes.Error, "authentication rejected")
		c.expireSession(ctx)
		return nil, "", ErrAuthentication

	default:
		m.BackendErrorsTotal.Add(ctx, 1, attrs)
		body, _ := io.ReadAll(resp.Body)
		apiErr := &APIError{Status: resp.StatusCode}

		var envelope struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(body, &envelope); err == nil && envelope.Message != "" {
			apiErr.Message = envelope.Message
		} else if text := strings.TrimSpace(string(body)); text != "" {
			apiErr.Message = text
		}

		span.SetStatus(codes.Error, apiErr.Error())
		c.logger.Warn("Backend returned error",
			zap.String("method", r.method),
			zap.String("path", r.path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Message))
		return nil, "", apiErr
	}
}

// expireSession runs the expiry side effects once per failure burst:
// notify the operator, drop the stored credentials, flush cached
// listings, then ask the web layer to redirect to login.
func (c *Client) expireSession(ctx context.Context) {
	if !c.guard.begin() {
		return
	}

	c.logger.Warn("Session expired, clearing credentials")
	metrics.Get().SessionExpiriesTotal.Add(ctx, 1)

	c.notifier.Error(c.i18n.T("auth.sessionExpired", nil))
	c.session.Clear()
	c.cache.Flush()
	if c.onExpiry != nil {
		c.onExpiry()
	}
}

// decodeInto maps a response body onto out. JSON bodies are decoded;
// plain-text bodies are only accepted into a *string.
func decodeInto(out any, body []byte, contentType string) error {
	if out == nil || len(body) == 0 {
		return nil
	}
	if s, ok := out.(*string); ok && !strings.Contains(contentType, "application/json") {
		*s = string(body)
		return nil
	}
	return json.Unmarshal(body, out)
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	body, contentType, err := c.do(ctx, request{method: http.MethodGet, path: path, query: query})
	if err != nil {
		return err
	}
	return decodeInto(out, body, contentType)
}

// getJSONCached serves list endpoints from the short-lived cache and
// collapses concurrent misses into one backend call.
func (c *Client) getJSONCached(ctx context.Context, path string, query url.Values, out any) error {
	key := path
	if len(query) > 0 {
		key += "?" + query.Encode()
	}

	if raw, found := c.cache.Get(key); found {
		return decodeInto(out, raw.([]byte), "application/json")
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		body, _, err := c.do(ctx, request{method: http.MethodGet, path: path, query: query})
		if err != nil {
			return nil, err
		}
		c.cache.SetDefault(key, body)
		return body, nil
	})
	if err != nil {
		return err
	}
	return decodeInto(out, v.([]byte), "application/json")
}

func (c *Client) sendJSON(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	respBody, contentType, err := c.do(ctx, request{
		method:      method,
		path:        path,
		body:        body,
		contentType: "application/json",
	})
	if err != nil {
		return err
	}
	c.cache.Flush()
	return decodeInto(out, respBody, contentType)
}

func (c *Client) postJSON(ctx context.Context, path string, payload, out any) error {
	return c.sendJSON(ctx, http.MethodPost, path, payload, out)
}

func (c *Client) putJSON(ctx context.Context, path string, payload, out any) error {
	return c.sendJSON(ctx, http.MethodPut, path, payload, out)
}

func (c *Client) deleteJSON(ctx context.Context, path string, out any) error {
	return c.sendJSON(ctx, http.MethodDelete, path, nil, out)
}

// postForm submits an application/x-www-form-urlencoded body; some
// backend endpoints only bind form fields.
func (c *Client) postForm(ctx context.Context, path string, form url.Values, out any) error {
	body, contentType, err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        path,
		body:        strings.NewReader(form.Encode()),
		contentType: "application/x-www-form-urlencoded",
	})
	if err != nil {
		return err
	}
	c.cache.Flush()
	return decodeInto(out, body, contentType)
}

// postPublicJSON is for the sign-in and sign-up endpoints which are
// called without a bearer token.
func (c *Client) postPublicJSON(ctx context.Context, path string, payload, out any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	body, contentType, err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        path,
		body:        bytes.NewReader(raw),
		contentType: "application/json",
		public:      true,
	})
	if err != nil {
		return err
	}
	return decodeInto(out, body, contentType)
}

// upload sends a multipart form with one file part plus extra fields.
// The content type carries the part boundary chosen by the writer.
func (c *Client) upload(ctx context.Context, path string, fields map[string]string, fileField, fileName string, file io.Reader, out any) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return err
		}
	}
	part, err := writer.CreateFormFile(fileField, fileName)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, file); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}

	body, contentType, err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        path,
		body:        &buf,
		contentType: writer.FormDataContentType(),
	})
	if err != nil {
		return err
	}
	c.cache.Flush()
	return decodeInto(out, body, contentType)
}

// getRaw fetches a binary resource, returning the bytes and the
// content type for passthrough to the browser.
func (c *Client) getRaw(ctx context.Context, path string) ([]byte, string, error) {
	return c.do(ctx, request{method: http.MethodGet, path: path})
}
