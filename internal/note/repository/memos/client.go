package memos

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	StateNormal   = "NORMAL"
	StateArchived = "ARCHIVED"

	VisibilityPrivate = "PRIVATE"
)

// Client is the HTTP wrapper for the Memos REST API.
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
	limiter     *rate.Limiter
}

// NewClient creates a new Memos HTTP client. ratePerSec <= 0 disables throttling.
func NewClient(baseURL, accessToken string, ratePerSec float64) *Client {
	limit := rate.Inf
	if ratePerSec > 0 {
		limit = rate.Limit(ratePerSec)
	}
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		limiter:     rate.NewLimiter(limit, 1),
	}
}

// CreateMemo creates a new memo via POST /api/v1/memos.
func (c *Client) CreateMemo(ctx context.Context, req CreateMemoRequest) (*Memo, error) {
	var memo Memo
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/api/v1/memos", req, &memo); err != nil {
		return nil, fmt.Errorf("memos create: %w", err)
	}
	return &memo, nil
}

// GetMemo fetches a single memo by its name ("memos/{id}") or bare ID.
func (c *Client) GetMemo(ctx context.Context, id string) (*Memo, error) {
	var memo Memo
	if err := c.do(ctx, http.MethodGet, c.memoURL(id), nil, &memo); err != nil {
		return nil, fmt.Errorf("memos get: %w", err)
	}
	return &memo, nil
}

// ListMemos lists one page of memos with an optional tag filter.
func (c *Client) ListMemos(ctx context.Context, req ListMemosRequest) (*ListMemosResponse, error) {
	q := url.Values{}
	q.Set("pageSize", strconv.Itoa(req.PageSize))
	if req.PageToken != "" {
		q.Set("pageToken", req.PageToken)
	}
	if req.State != "" {
		q.Set("state", req.State)
	}
	if req.Tag != "" {
		q.Set("filter", fmt.Sprintf("tag in [%q]", req.Tag))
	}

	var resp ListMemosResponse
	if err := c.do(ctx, http.MethodGet, c.baseURL+"/api/v1/memos?"+q.Encode(), nil, &resp); err != nil {
		return nil, fmt.Errorf("memos list: %w", err)
	}
	return &resp, nil
}

// UpdateMemo patches the fields named in req.UpdateMask.
func (c *Client) UpdateMemo(ctx context.Context, id string, req UpdateMemoRequest) (*Memo, error) {
	target := c.memoURL(id)
	if len(req.UpdateMask) > 0 {
		target += "?updateMask=" + url.QueryEscape(strings.Join(req.UpdateMask, ","))
	}

	var memo Memo
	if err := c.do(ctx, http.MethodPatch, target, req, &memo); err != nil {
		return nil, fmt.Errorf("memos update: %w", err)
	}
	return &memo, nil
}

// DeleteMemo removes a memo.
func (c *Client) DeleteMemo(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, c.memoURL(id), nil, nil); err != nil {
		return fmt.Errorf("memos delete: %w", err)
	}
	return nil
}

func (c *Client) memoURL(id string) string {
	name := id
	if !strings.HasPrefix(name, "memos/") {
		name = "memos/" + name
	}
	return c.baseURL + "/api/v1/" + name
}

func (c *Client) do(ctx context.Context, method, target string, in, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if in != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.accessToken))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to call memos API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrMemoNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, math.MaxUint16))
		return fmt.Errorf("memos API error %d: %s", resp.StatusCode, string(raw))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode memos response: %w", err)
	}
	return nil
}
