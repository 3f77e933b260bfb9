package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"notetaker/internal/shared"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// Client talks to the notes HTTP API.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// APIError is a non-200 answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

func New(cfg *shared.ClientConfig) *Client {
	return &Client{
		BaseURL: strings.TrimRight(cfg.ServerURL, "/"),
		HTTP:    &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
	}
}

// List returns the raw JSON array served by GET /api/notes.
func (c *Client) List(ctx context.Context) (json.RawMessage, error) {
	b, err := c.do(ctx, http.MethodGet, "/api/notes", nil)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(b) || !gjson.ParseBytes(b).IsArray() {
		return nil, errors.New("list: response is not a JSON array")
	}
	return json.RawMessage(b), nil
}

func (c *Client) Create(ctx context.Context, fields map[string]any) (shared.Note, error) {
	body, err := shared.MarshalCompact(fields)
	if err != nil {
		return shared.Note{}, err
	}
	b, err := c.do(ctx, http.MethodPost, "/api/notes", body)
	if err != nil {
		return shared.Note{}, err
	}
	note, err := shared.DecodeNote(b)
	if err != nil {
		return shared.Note{}, errors.Wrap(err, "create: bad response")
	}
	return note, nil
}

// Delete returns the server's confirmation message.
func (c *Client) Delete(ctx context.Context, id string) (string, error) {
	b, err := c.do(ctx, http.MethodDelete, "/api/notes/"+url.PathEscape(id), nil)
	if err != nil {
		return "", err
	}
	var resp shared.MessageResponse
	if err := json.Unmarshal(b, &resp); err != nil {
		return "", errors.Wrap(err, "delete: bad response")
	}
	return resp.Message, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, r)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		msg := gjson.GetBytes(b, "error").String()
		if msg == "" {
			msg = strings.TrimSpace(string(b))
		}
		return nil, &APIError{Status: resp.StatusCode, Message: msg}
	}
	return b, nil
}

// Column pulls one field out of every note of a List result, in order.
// Notes without the field yield "".
func Column(list json.RawMessage, field string) []string {
	var out []string
	for _, n := range gjson.ParseBytes(list).Array() {
		out = append(out, n.Get(gjson.Escape(field)).String())
	}
	return out
}
