package scraper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pfrederiksen/event-roster/internal/page"
)

const (
	UserAgent = "event-roster-cli/1.0 (github.com/pfrederiksen/event-roster)"
	Timeout   = 30 * time.Second

	// MaxPageSize caps how much of a response body is read.
	MaxPageSize = 5 << 20
)

var (
	// ErrNotSignupPage is returned when the fetched page lacks the form fields.
	ErrNotSignupPage = errors.New("page has no #event and #name fields")

	// ErrPageTooLarge is returned when the body is longer than MaxPageSize.
	ErrPageTooLarge = fmt.Errorf("page exceeds %d bytes", MaxPageSize)
)

// Scraper fetches sign-up pages
type Scraper struct {
	client *http.Client
	url    string
}

// New creates a Scraper for url
func New(url string) *Scraper {
	return &Scraper{
		client: &http.Client{
			Timeout: Timeout,
		},
		url: url,
	}
}

// FetchPage downloads and parses the page.
func (s *Scraper) FetchPage(ctx context.Context) (*page.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	// one byte past the cap tells a full page from a truncated one
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxPageSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading page: %w", err)
	}
	if len(body) > MaxPageSize {
		return nil, ErrPageTooLarge
	}

	return parsePage(bytes.NewReader(body))
}

func parsePage(r io.Reader) (*page.Document, error) {
	doc, err := page.Parse(r)
	if err != nil {
		return nil, err
	}
	if !doc.HasForm() {
		return nil, ErrNotSignupPage
	}
	return doc, nil
}
