package mifosx

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"
)

func loanServer(t *testing.T, total int, hits *int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(hits, 1)

		user, pass, ok := r.BasicAuth()
		if !ok || user != "mifos" || pass != "password" {
			t.Errorf("bad basic auth: %q %q", user, pass)
		}
		if got := r.Header.Get("Fineract-Platform-TenantId"); got != "default" {
			t.Errorf("tenant header = %q", got)
		}

		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		page := loanPage{TotalFilteredRecords: total}
		for i := offset; i < total && i < offset+limit; i++ {
			it := loanItem{
				ID:         int64(i + 1),
				AccountNo:  fmt.Sprintf("%06d", i+1),
				ClientName: "Client " + strconv.Itoa(i+1),
				Principal:  1000,
			}
			it.Status.Value = "Active"
			it.Summary.TotalOutstanding = 400
			it.Summary.TotalRepayment = 600
			page.PageItems = append(page.PageItems, it)
		}
		json.NewEncoder(w).Encode(page)
	}))
}

func TestFetchLoans_PagesThroughAllRecords(t *testing.T) {
	var hits int64
	srv := loanServer(t, 450, &hits)
	defer srv.Close()

	c := NewClient(srv.URL, "mifos", "password", "default", 0)
	loans, err := c.FetchLoans(context.Background())
	if err != nil {
		t.Fatalf("FetchLoans: %v", err)
	}
	if len(loans) != 450 {
		t.Fatalf("got %d loans, want 450", len(loans))
	}
	// 450 records at 200 per page is three requests
	if hits != 3 {
		t.Fatalf("server hit %d times, want 3", hits)
	}

	first := loans[0]
	if first.ID != 1 || first.AccountNo != "000001" || first.Status != "Active" {
		t.Fatalf("first loan = %+v", first)
	}
	if first.TotalOutstanding != 400 || first.TotalRepaid != 600 {
		t.Fatalf("summary mapped wrong: %+v", first)
	}
}

func TestFetchLoans_CacheServesRepeatReads(t *testing.T) {
	var hits int64
	srv := loanServer(t, 5, &hits)
	defer srv.Close()

	c := NewClient(srv.URL, "mifos", "password", "default", time.Minute)
	ctx := context.Background()

	if _, err := c.FetchLoans(ctx); err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	if _, err := c.FetchLoans(ctx); err != nil {
		t.Fatalf("second fetch: %v", err)
	}
	if hits != 1 {
		t.Fatalf("server hit %d times, want 1", hits)
	}
}

func TestFetchLoans_CacheExpires(t *testing.T) {
	var hits int64
	srv := loanServer(t, 1, &hits)
	defer srv.Close()

	c := NewClient(srv.URL, "mifos", "password", "default", time.Nanosecond)
	ctx := context.Background()

	c.FetchLoans(ctx)
	time.Sleep(time.Millisecond)
	c.FetchLoans(ctx)
	if hits != 2 {
		t.Fatalf("server hit %d times, want 2", hits)
	}
}

func TestGet_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "mifos", "password", "default", time.Minute)
	if _, err := c.FetchLoans(context.Background()); err == nil {
		t.Fatal("want error for 403")
	}
	// failures must not poison the cache
	if len(c.cache) != 0 {
		t.Fatalf("cache has %d entries after failure", len(c.cache))
	}
}

func TestBasicAuthHeaderShape(t *testing.T) {
	want := "Basic " + base64.StdEncoding.EncodeToString([]byte("mifos:password"))
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(loanPage{})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "mifos", "password", "default", 0)
	if _, err := c.FetchLoans(context.Background()); err != nil {
		t.Fatalf("FetchLoans: %v", err)
	}
	if got != want {
		t.Fatalf("Authorization = %q, want %q", got, want)
	}
}
