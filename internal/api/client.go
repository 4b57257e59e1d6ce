// Package api is the HTTP client for the community backend. Each exported
// method is one named operation; all of them take a context, return typed
// records and fail with *Error.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"communityboard/internal/jsonutil"
	"communityboard/internal/model"
	"communityboard/internal/telemetry"
)

// DefaultBaseURL is the backend used when none is configured.
const DefaultBaseURL = "http://localhost:5000"

// RequestIDHeader carries a per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// maxBodySize caps how much of a response is read.
const maxBodySize = 4 << 20

// Client talks to the community API.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	tracer  oteltrace.Tracer
	logger  *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithTracer sets the tracer used for client spans.
func WithTracer(t oteltrace.Tracer) Option {
	return func(c *Client) { c.tracer = t }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for baseURL (scheme and host required).
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base URL %q must include scheme and host", baseURL)
	}
	c := &Client{
		baseURL: u,
		http:    &http.Client{Timeout: 15 * time.Second},
		tracer:  telemetry.Tracer(),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the configured backend URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// GetAdminStats fetches the demographics snapshot.
func (c *Client) GetAdminStats(ctx context.Context) (model.AdminStats, error) {
	var stats model.AdminStats
	err := c.do(ctx, "getAdminStats", http.MethodGet, "/admin/stats", nil, &stats)
	return stats, err
}

// GetAnnouncements fetches all announcements in server order.
func (c *Client) GetAnnouncements(ctx context.Context) ([]model.Announcement, error) {
	var raw json.RawMessage
	if err := c.do(ctx, "getAnnouncements", http.MethodGet, "/announcements", nil, &raw); err != nil {
		return nil, err
	}
	list, err := jsonutil.UnmarshalArrayAllowEmpty[model.Announcement](raw, "decode announcements")
	if err != nil {
		return nil, &Error{Kind: KindServer, Op: "getAnnouncements", Err: err}
	}
	return list, nil
}

// PostAnnouncement creates an announcement. Title and content are trimmed;
// an empty title fails with KindValidation before any request is made.
func (c *Client) PostAnnouncement(ctx context.Context, in model.NewAnnouncement) (model.Announcement, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
	if in.Title == "" {
		return model.Announcement{}, &Error{Kind: KindValidation, Op: "postAnnouncement", Message: "title is required"}
	}
	var created model.Announcement
	err := c.do(ctx, "postAnnouncement", http.MethodPost, "/announcements", in, &created)
	return created, err
}

// GetProfile fetches the profile of user id.
func (c *Client) GetProfile(ctx context.Context, id string) (model.ProfileRecord, error) {
	var rec model.ProfileRecord
	if strings.TrimSpace(id) == "" {
		return rec, &Error{Kind: KindUnauthenticated, Op: "getProfile", Message: "missing identity token"}
	}
	err := c.do(ctx, "getProfile", http.MethodGet, "/user/profile/"+url.PathEscape(id), nil, &rec)
	return rec, err
}

// UpdateProfile replaces the profile of user id and returns the stored record.
func (c *Client) UpdateProfile(ctx context.Context, id string, rec model.ProfileRecord) (model.ProfileRecord, error) {
	var out model.ProfileRecord
	if strings.TrimSpace(id) == "" {
		return out, &Error{Kind: KindUnauthenticated, Op: "updateProfile", Message: "missing identity token"}
	}
	if rec.FamilyMembers == nil {
		rec.FamilyMembers = []string{}
	}
	err := c.do(ctx, "updateProfile", http.MethodPut, "/user/profile/"+url.PathEscape(id), rec, &out)
	return out, err
}

// do runs one request inside a client span. body, when non-nil, is sent as
// JSON; a 2xx response is decoded into out.
func (c *Client) do(ctx context.Context, op, method, path string, body, out interface{}) (err error) {
	ctx, span := c.tracer.Start(ctx, op, oteltrace.WithSpanKind(oteltrace.SpanKindClient))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	requestID := uuid.NewString()
	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("http.route", path),
		attribute.String("communityboard.request_id", requestID),
	)

	var reader io.Reader
	if body != nil {
		data, mErr := json.Marshal(body)
		if mErr != nil {
			return &Error{Kind: KindValidation, Op: op, Err: fmt.Errorf("encode request: %w", mErr)}
		}
		reader = bytes.NewReader(data)
	}

	req, rErr := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reader)
	if rErr != nil {
		return &Error{Kind: KindNetwork, Op: op, Err: rErr}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, hErr := c.http.Do(req)
	if hErr != nil {
		c.logger.Warn("request failed",
			zap.String("op", op),
			zap.String("request_id", requestID),
			zap.Error(hErr))
		return &Error{Kind: KindNetwork, Op: op, Err: hErr}
	}
	defer resp.Body.Close()

	data, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	c.logger.Debug("request completed",
		zap.String("op", op),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", requestID),
		zap.Duration("duration", time.Since(start)))
	if readErr != nil {
		return &Error{Kind: KindNetwork, Op: op, Status: resp.StatusCode, Err: readErr}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{
			Kind:    kindForStatus(resp.StatusCode),
			Op:      op,
			Status:  resp.StatusCode,
			Message: jsonutil.ErrorMessage(data),
		}
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if uErr := jsonutil.UnmarshalWithContext(data, out, "decode "+op+" response"); uErr != nil {
		return &Error{Kind: KindServer, Op: op, Status: resp.StatusCode, Err: uErr}
	}
	return nil
}

// IsKind reports whether err is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == k
}
