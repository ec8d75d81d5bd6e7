// Package client gọi REST API của backend CINEME. Mọi lỗi mạng/HTTP đều
// được quy về model.BookingError trước khi rời khỏi package.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/MPIO1002/CINEME-sub001/model"
)

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// WithToken gắn access token cho các request tới backend
func (c *Client) WithToken(token string) *Client {
	c.token = token
	return c
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("backend trả về status %d", resp.StatusCode)
	}

	var envelope model.BackendResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("không đọc được response: %w", err)
	}
	if out != nil && envelope.Data != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("không đọc được data: %w", err)
		}
	}
	return nil
}

// postJSON gửi body JSON, trả về envelope và HTTP status.
// Mỗi request mang một X-Request-Id riêng để backend có thể dedupe.
func (c *Client) postJSON(ctx context.Context, path string, body any) (*model.BackendResponse, int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, 0, err
	}
	c.setHeaders(req)
	req.Header.Set("X-Request-Id", uuid.New().String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	var envelope model.BackendResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("không đọc được response: %w", err)
	}
	return &envelope, resp.StatusCode, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}
