// Package fcm sends push notifications through the Firebase Cloud Messaging
// HTTP v1 API.
package fcm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/beginvegan/backend/internal/observability"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/time/rate"
)

const (
	endpointFormat = "https://fcm.googleapis.com/v1/projects/%s/messages:send"
	Scope          = "https://www.googleapis.com/auth/cloud-platform"
)

// Message is a notification addressed to one device token.
type Message struct {
	Token string
	Title string
	Body  string
	Data  map[string]string
}

type notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type wireMessage struct {
	Token        string            `json:"token"`
	Notification notification      `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
}

type sendRequest struct {
	ValidateOnly bool        `json:"validate_only"`
	Message      wireMessage `json:"message"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// SendError is returned when FCM answers with a non-2xx status.
type SendError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *SendError) Error() string {
	return fmt.Sprintf("fcm send failed: %d %s: %s", e.StatusCode, e.Status, e.Message)
}

// IsUnregistered reports whether err means the device token is no longer valid.
func IsUnregistered(err error) bool {
	var se *SendError
	if !errors.As(err, &se) {
		return false
	}
	return se.Status == "UNREGISTERED" || se.StatusCode == http.StatusNotFound
}

type Client struct {
	httpClient *http.Client
	url        string
	limiter    *rate.Limiter
}

type Option func(*Client)

// WithEndpoint overrides the send URL.
func WithEndpoint(url string) Option {
	return func(c *Client) { c.url = url }
}

// WithRateLimit caps outbound sends per second.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), int(perSecond)+1)
		}
	}
}

// NewClient builds a client around an already-authenticated http.Client.
func NewClient(projectID string, httpClient *http.Client, opts ...Option) *Client {
	c := &Client{
		httpClient: httpClient,
		url:        fmt.Sprintf(endpointFormat, projectID),
		limiter:    rate.NewLimiter(rate.Inf, 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewFromCredentialsFile authenticates with a service-account key file. An
// empty projectID falls back to the project in the key.
func NewFromCredentialsFile(ctx context.Context, projectID, path string, opts ...Option) (*Client, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fcm credentials: %w", err)
	}
	creds, err := google.CredentialsFromJSON(ctx, data, Scope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fcm credentials: %w", err)
	}
	if projectID == "" {
		projectID = creds.ProjectID
	}
	if projectID == "" {
		return nil, errors.New("fcm project id is not configured")
	}

	httpClient := oauth2.NewClient(ctx, creds.TokenSource)
	httpClient.Timeout = 10 * time.Second
	return NewClient(projectID, httpClient, opts...), nil
}

// Send delivers msg. It does not retry.
func (c *Client) Send(ctx context.Context, msg Message) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("fcm rate limit wait: %w", err)
	}

	payload, err := json.Marshal(sendRequest{Message: wireMessage{
		Token:        msg.Token,
		Notification: notification{Title: msg.Title, Body: msg.Body},
		Data:         msg.Data,
	}})
	if err != nil {
		return fmt.Errorf("failed to encode fcm message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build fcm request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	observability.ObserveExternal("fcm", "messages:send", time.Since(start))
	if err != nil {
		return fmt.Errorf("fcm request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	se := &SendError{StatusCode: resp.StatusCode, Message: string(body)}
	var er errorResponse
	if json.Unmarshal(body, &er) == nil && er.Error.Status != "" {
		se.Status = er.Error.Status
		se.Message = er.Error.Message
	}
	return se
}
