// Package client talks to the remote mission API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gdg-garage/mission-registration/internal/models"
)

var ErrNotFound = errors.New("mission not found")

// APIError is a non-2xx answer from the mission API.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("mission API returned %d", e.Status)
	}
	return e.Message
}

func (e *APIError) ErrorCode() string { return e.Code }

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default client, e.g. with an oauth2 client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithAPIKey sends key in the X-API-KEY header of every request.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) GetMission(ctx context.Context, id int64) (models.MissionEvent, error) {
	var m models.MissionEvent
	url := c.baseURL + "/api/missions/" + strconv.FormatInt(id, 10) + "/public/"
	err := c.do(ctx, http.MethodGet, url, nil, &m)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return models.MissionEvent{}, ErrNotFound
	}
	if err != nil {
		return models.MissionEvent{}, fmt.Errorf("client.GetMission: %w", err)
	}
	return m, nil
}

func (c *Client) CreateParticipant(ctx context.Context, p models.ApiRegistrationPayload) (*models.ParticipantAck, error) {
	var ack models.ParticipantAck
	err := c.do(ctx, http.MethodPost, c.baseURL+"/api/missions/participants/create/", p, &ack)
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		// the message is shown to the registrant as is
		return nil, apiErr
	}
	if err != nil {
		return nil, fmt.Errorf("client.CreateParticipant: %w", err)
	}
	return &ack, nil
}

func (c *Client) do(ctx context.Context, method, url string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-KEY", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, raw)
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, out)
}

// errorBody covers the error shapes the mission API has returned: huma
// problem documents, Django style {"detail"} and {"message"} bodies.
type errorBody struct {
	Code    string `json:"code"`
	Detail  string `json:"detail"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func decodeError(status int, raw []byte) *APIError {
	e := &APIError{Status: status, Message: strings.TrimSpace(string(raw))}
	if e.Message == "" {
		e.Message = fmt.Sprintf("mission API returned %d", status)
		return e
	}
	var body errorBody
	if json.Unmarshal(raw, &body) != nil {
		return e
	}
	e.Code = body.Code
	for _, msg := range []string{body.Detail, body.Message, body.Error} {
		if msg != "" {
			e.Message = msg
			break
		}
	}
	return e
}
