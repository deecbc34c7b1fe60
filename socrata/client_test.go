package socrata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
)

// fakeSocrata serves totalRows synthetic violation records with paging.
func fakeSocrata(t *testing.T, totalRows int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("$limit"))
		offset, _ := strconv.Atoi(r.URL.Query().Get("$offset"))
		var page []map[string]any
		for i := offset; i < offset+limit && i < totalRows; i++ {
			page = append(page, map[string]any{
				"bus_route_id":     "M15",
				"violation_id":     float64(i),
				"first_occurrence": "2025-02-01T08:00:00.000",
			})
		}
		if page == nil {
			page = []map[string]any{}
		}
		_ = json.NewEncoder(w).Encode(page)
	}))
}

// testClient points a Client at the fake server by rewriting the request URL
// host and scheme.
func testClient(srv *httptest.Server) *Client {
	u, _ := url.Parse(srv.URL)
	c := NewClient(u.Host, "")
	c.HTTP = &http.Client{Transport: rewriteTransport{host: u.Host}}
	return c
}

type rewriteTransport struct {
	host string
}

func (rt rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.URL.Scheme = "http"
	req.URL.Host = rt.host
	return http.DefaultTransport.RoundTrip(req)
}

func TestFetch_RowLimit(t *testing.T) {
	srv := fakeSocrata(t, 1000)
	defer srv.Close()

	rows, err := testClient(srv).Fetch(context.Background(), "kh8p-hcbm", 250)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 250 {
		t.Fatalf("expected 250 rows, got %d", len(rows))
	}
	if rows[0]["bus_route_id"] != "M15" {
		t.Errorf("row content = %v", rows[0])
	}
	if rows[0]["violation_id"] != "0" {
		t.Errorf("numeric cell should be stringified, got %q", rows[0]["violation_id"])
	}
}

func TestFetch_ShortPageStops(t *testing.T) {
	srv := fakeSocrata(t, 30)
	defer srv.Close()

	rows, err := testClient(srv).Fetch(context.Background(), "kh8p-hcbm", 100000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 30 {
		t.Fatalf("expected all 30 rows, got %d", len(rows))
	}
}

func TestFetch_HTTPErrorFailsFast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := testClient(srv).Fetch(context.Background(), "kh8p-hcbm", 10)
	if err == nil {
		t.Fatal("expected an error on HTTP 403")
	}
	if want := fmt.Sprintf("HTTP %d", http.StatusForbidden); !strings.Contains(err.Error(), want) {
		t.Errorf("error %q should mention %q", err, want)
	}
}

func TestFetch_MissingDataset(t *testing.T) {
	c := NewClient("data.ny.gov", "")
	if _, err := c.Fetch(context.Background(), "", 10); err == nil {
		t.Fatal("expected an error for a missing dataset id")
	}
}
