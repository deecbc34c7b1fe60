package socrata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// pageSize is the per-request row count; Socrata caps pages at 50000.
const pageSize = 50000

// Client fetches rows from a Socrata Open Data API domain. There is no retry
// policy: a connectivity error aborts the download and the caller exits
// non-zero.
type Client struct {
	Domain   string
	AppToken string
	HTTP     *http.Client
}

// NewClient creates a client for a domain such as data.ny.gov.
func NewClient(domain, appToken string) *Client {
	return &Client{Domain: domain, AppToken: appToken, HTTP: &http.Client{}}
}

// Fetch pages through a dataset until rowLimit rows are collected or the
// server returns a short page. Rows come back as string maps ready for
// schema.NormalizeMaps; non-scalar cells (georeference objects) are skipped.
func (c *Client) Fetch(ctx context.Context, dataset string, rowLimit int) ([]map[string]string, error) {
	if dataset == "" {
		return nil, fmt.Errorf("socrata: dataset id required")
	}
	httpc := c.HTTP
	if httpc == nil {
		httpc = &http.Client{}
	}

	var rows []map[string]string
	for offset := 0; rowLimit <= 0 || offset < rowLimit; offset += pageSize {
		limit := pageSize
		if rowLimit > 0 && rowLimit-offset < limit {
			limit = rowLimit - offset
		}
		page, err := c.fetchPage(ctx, httpc, dataset, limit, offset)
		if err != nil {
			return nil, err
		}
		rows = append(rows, page...)
		if len(page) < limit {
			break
		}
	}
	return rows, nil
}

func (c *Client) fetchPage(ctx context.Context, httpc *http.Client, dataset string, limit, offset int) ([]map[string]string, error) {
	u := url.URL{
		Scheme: "https",
		Host:   c.Domain,
		Path:   "/resource/" + dataset + ".json",
	}
	q := u.Query()
	q.Set("$limit", strconv.Itoa(limit))
	q.Set("$offset", strconv.Itoa(offset))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	if c.AppToken != "" {
		req.Header.Set("X-App-Token", c.AppToken)
	}

	resp, err := httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("socrata: fetch %s: %w", dataset, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("socrata: HTTP %d from %s", resp.StatusCode, u.Host)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var raw []map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("socrata: decode %s: %w", dataset, err)
	}

	rows := make([]map[string]string, 0, len(raw))
	for _, r := range raw {
		row := make(map[string]string, len(r))
		for k, v := range r {
			switch t := v.(type) {
			case string:
				row[k] = t
			case float64:
				row[k] = strconv.FormatFloat(t, 'f', -1, 64)
			case bool:
				row[k] = strconv.FormatBool(t)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
