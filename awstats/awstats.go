// Package awstats fetches monthly AWStats host reports ("urldetail" pages)
// and extracts the bandwidth attributable to private addresses.
package awstats

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client fetches monthly report pages from one AWStats installation.
type Client struct {
	BaseURL    string
	Config     string
	UserAgent  string
	HTTPClient *http.Client
}

// NewClient builds a client for the given awstats.pl endpoint and site config.
func NewClient(baseURL, configName, userAgent string, timeout time.Duration) *Client {
	client := &http.Client{}
	if timeout > 0 {
		client.Timeout = timeout
	}
	return &Client{
		BaseURL:    strings.TrimSpace(baseURL),
		Config:     strings.TrimSpace(configName),
		UserAgent:  strings.TrimSpace(userAgent),
		HTTPClient: client,
	}
}

// Purpose: Build the report URL for one month.
// Key aspects: Zero-pads the month and pins the urldetail frame parameters
// AWStats expects for the per-host breakdown.
// Upstream: Client.FetchMonthly and tooling.
// Downstream: None.
func MonthlyURL(baseURL, configName string, year, month int) string {
	return fmt.Sprintf("%s?databasebreak=month&month=%02d&year=%d&config=%s&framename=mainright&output=urldetail",
		baseURL, month, year, configName)
}

// Purpose: Download and parse the host table for one month.
// Key aspects: Transport failures and non-2xx statuses are errors; a page
// without the bordered table is not (returns a nil table for the caller to
// warn about).
// Upstream: report.Generate period workers.
// Downstream: http.Client.Do, ParseHostTable.
func (c *Client) FetchMonthly(ctx context.Context, year, month int) (*HostTable, error) {
	if c == nil || c.BaseURL == "" {
		return nil, fmt.Errorf("awstats: base URL is empty")
	}
	url := MonthlyURL(c.BaseURL, c.Config, year, month)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("awstats: build request: %w", err)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("awstats: fetch %04d-%02d: %w", year, month, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("awstats: fetch %04d-%02d: status %s", year, month, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("awstats: read %04d-%02d: %w", year, month, err)
	}
	table, ok := ParseHostTable(bytes.NewReader(body))
	if !ok {
		return nil, nil
	}
	return table, nil
}
