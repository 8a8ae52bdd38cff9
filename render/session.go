// Package render supplies already-rendered pages to the crawlers. A Session
// owns the HTTP client, a throwaway per-run profile directory, and the
// settle delay applied after each navigation; Page and Item expose the
// first-match locator-candidate lookup the extractors are written against.
package render

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultUserAgent matches a desktop browser; the crawled sites serve the
// mobile listing markup to unknown agents.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Session fetches and renders pages for one crawl run. The profile directory
// is scoped to the session and removed unconditionally by Close, success or
// fault.
type Session struct {
	client     *http.Client
	profileDir string
	userAgent  string
	settle     time.Duration
}

// Option configures a Session.
type Option func(*Session)

// WithSettle overrides the delay applied after each navigation. The sites
// finish rendering asynchronously; rather than polling for readiness the
// session waits a fixed interval, as the reference pipeline does. Tests pass
// zero.
func WithSettle(d time.Duration) Option {
	return func(s *Session) { s.settle = d }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(s *Session) { s.userAgent = ua }
}

// WithHTTPClient overrides the HTTP client, for tests.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Session) { s.client = c }
}

// NewSession creates a session with a fresh profile directory.
func NewSession(opts ...Option) (*Session, error) {
	dir, err := os.MkdirTemp("", "nukewire_")
	if err != nil {
		return nil, fmt.Errorf("failed to create profile directory: %w", err)
	}

	s := &Session{
		client:     &http.Client{Timeout: 30 * time.Second},
		profileDir: dir,
		userAgent:  DefaultUserAgent,
		settle:     5 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ProfileDir returns the session's scratch directory.
func (s *Session) ProfileDir() string {
	return s.profileDir
}

// Close releases the session's profile directory. Safe to call on every exit
// path.
func (s *Session) Close() error {
	if s.profileDir == "" {
		return nil
	}
	err := os.RemoveAll(s.profileDir)
	s.profileDir = ""
	return err
}

// Fetch navigates to url, waits the session's settle delay, and returns the
// rendered page.
func (s *Session) Fetch(url string) (*Page, error) {
	return s.FetchWithSettle(url, s.settle)
}

// FetchWithSettle is Fetch with an explicit settle delay. The bulletin
// crawler uses shorter waits on detail and back navigations.
func (s *Session) FetchWithSettle(url string, settle time.Duration) (*Page, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	if settle > 0 {
		time.Sleep(settle)
	}

	return &Page{doc: doc, URL: url}, nil
}
