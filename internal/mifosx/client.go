// Package mifosx is a thin REST client for the MifosX platform API,
// with a small in-memory TTL cache so repeated reads inside one sync
// window do not hammer the upstream.
package mifosx

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"
)

const (
	defaultTimeout = 15 * time.Second
	pageSize       = 200
)

// LoanRecord is the subset of the MifosX loan payload the sync keeps.
type LoanRecord struct {
	ID               int64
	AccountNo        string
	ClientName       string
	Principal        float64
	TotalOutstanding float64
	TotalRepaid      float64
	Status           string
}

type Client struct {
	baseURL  string
	username string
	password string
	tenant   string
	http     *http.Client

	cacheTTL time.Duration
	mu       sync.Mutex
	cache    map[string]cacheEntry
}

type cacheEntry struct {
	body      []byte
	expiresAt time.Time
}

func NewClient(baseURL, username, password, tenant string, cacheTTL time.Duration) *Client {
	return &Client{
		baseURL:  baseURL,
		username: username,
		password: password,
		tenant:   tenant,
		http:     &http.Client{Timeout: defaultTimeout},
		cacheTTL: cacheTTL,
		cache:    make(map[string]cacheEntry),
	}
}

// Mifos wire types. Only the fields we read.
type loanPage struct {
	TotalFilteredRecords int        `json:"totalFilteredRecords"`
	PageItems            []loanItem `json:"pageItems"`
}

type loanItem struct {
	ID         int64   `json:"id"`
	AccountNo  string  `json:"accountNo"`
	ClientName string  `json:"clientName"`
	Principal  float64 `json:"principal"`
	Status     struct {
		Value string `json:"value"`
	} `json:"status"`
	Summary struct {
		TotalOutstanding float64 `json:"totalOutstanding"`
		TotalRepayment   float64 `json:"totalRepayment"`
	} `json:"summary"`
}

// FetchLoans pages through /loans until the filtered total is reached.
func (c *Client) FetchLoans(ctx context.Context) ([]LoanRecord, error) {
	var out []LoanRecord
	offset := 0
	for {
		q := url.Values{}
		q.Set("offset", strconv.Itoa(offset))
		q.Set("limit", strconv.Itoa(pageSize))
		body, err := c.get(ctx, "/loans?"+q.Encode())
		if err != nil {
			return nil, err
		}
		var page loanPage
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("mifosx: decode loans page: %w", err)
		}
		for _, it := range page.PageItems {
			out = append(out, LoanRecord{
				ID:               it.ID,
				AccountNo:        it.AccountNo,
				ClientName:       it.ClientName,
				Principal:        it.Principal,
				TotalOutstanding: it.Summary.TotalOutstanding,
				TotalRepaid:      it.Summary.TotalRepayment,
				Status:           it.Status.Value,
			})
		}
		offset += len(page.PageItems)
		if len(page.PageItems) == 0 || offset >= page.TotalFilteredRecords {
			return out, nil
		}
	}
}

// get serves from the TTL cache when fresh, otherwise does an
// authenticated GET and caches the body.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	if c.cacheTTL > 0 {
		c.mu.Lock()
		if e, ok := c.cache[path]; ok && time.Now().Before(e.expiresAt) {
			body := e.body
			c.mu.Unlock()
			return body, nil
		}
		c.mu.Unlock()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Fineract-Platform-TenantId", c.tenant)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mifosx: GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mifosx: GET %s: unexpected status %d", path, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("mifosx: read %s: %w", path, err)
	}

	if c.cacheTTL > 0 {
		c.mu.Lock()
		c.cache[path] = cacheEntry{body: body, expiresAt: time.Now().Add(c.cacheTTL)}
		c.mu.Unlock()
	}
	return body, nil
}
