// Package upstream implements the read-only HTTP+XML client for the
// practice-management API. The API is keyed by entity UUIDs and
// authenticated with a bearer token plus an account id header. This
// package only fetches and decodes; mapping into store records is the
// sync package's job.
package upstream

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client is a thin wrapper over net/http carrying the credentials and
// base URL for the upstream API.
type Client struct {
	http    *http.Client
	baseURL string
	token   string
	account string
}

// New returns a Client for the given base URL and credentials.
func New(baseURL, accessToken, accountID string) *Client {
	return &Client{
		http:    &http.Client{Timeout: 30 * time.Second},
		baseURL: baseURL,
		token:   accessToken,
		account: accountID,
	}
}

// get performs one GET request against the API and decodes the XML body
// into dst. Every fetch method in this package funnels through here.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, dst any) error {
	u := c.baseURL + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("account_id", c.account)
	req.Header.Set("Content-Type", "application/xml")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("upstream: %s: %w", endpoint, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("upstream: %s: unexpected status %d: %s", endpoint, resp.StatusCode, body)
	}
	if err := xml.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("upstream: %s: decode: %w", endpoint, err)
	}
	return nil
}

// apiDate is the YYYYMMDD format used by the time range endpoints.
const apiDate = "20060102"

// parseAPITime parses the upstream timestamp layout
// (2006-01-02T15:04:05); an empty string yields a nil time.
func parseAPITime(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.ParseInLocation("2006-01-02T15:04:05", s, time.UTC)
	if err != nil {
		return nil
	}
	return &t
}
