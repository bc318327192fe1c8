// Package web provides a crawler adapter that fetches pages over HTTP.
// It performs a breadth-first crawl from the seed URLs, staying on the
// seeds' hosts, and extracts plain text from the HTML it fetches.
package web

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/sitechat/internal/core/domain"
	"github.com/custodia-labs/sitechat/internal/core/ports/driven"
	"github.com/custodia-labs/sitechat/internal/logger"
)

// Ensure Crawler implements the interface.
var _ driven.Crawler = (*Crawler)(nil)

// Default configuration values.
const (
	DefaultUserAgent = "sitechat/0.1"
	DefaultTimeout   = 30 * time.Second
	DefaultRate      = 4 // requests per second

	// maxBodyBytes caps how much of a response body is read.
	maxBodyBytes = 4 << 20
)

// Config holds configuration for the web crawler.
type Config struct {
	// UserAgent identifies the crawler (default: sitechat/0.1).
	UserAgent string

	// Timeout is the per-request timeout (default: 30s).
	Timeout time.Duration

	// RequestsPerSecond limits the fetch rate (default: 4).
	RequestsPerSecond float64
}

// Crawler fetches and extracts same-host pages breadth first.
type Crawler struct {
	client    *http.Client
	limiter   *rate.Limiter
	userAgent string
}

// New creates a new web crawler.
func New(cfg Config) *Crawler {
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultRate
	}
	return &Crawler{
		client:    &http.Client{Timeout: cfg.Timeout},
		limiter:   rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		userAgent: cfg.UserAgent,
	}
}

// queueItem is one pending fetch.
type queueItem struct {
	url   string
	depth int
}

// Crawl visits up to maxPages pages reachable from the seeds within
// maxDepth link hops. Fetch failures are logged and skipped.
func (c *Crawler) Crawl(ctx context.Context, seeds []string, maxPages, maxDepth int) ([]domain.Page, error) {
	logger.Section("Crawl")
	logger.Debug("Seeds: %v, maxPages=%d, maxDepth=%d", seeds, maxPages, maxDepth)

	queue := make([]queueItem, 0, len(seeds))
	seen := make(map[string]bool, len(seeds))
	for _, seed := range seeds {
		if !seen[seed] {
			seen[seed] = true
			queue = append(queue, queueItem{url: seed})
		}
	}

	var pages []domain.Page
	for len(queue) > 0 && len(pages) < maxPages {
		item := queue[0]
		queue = queue[1:]

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}

		body, err := c.fetch(ctx, item.url)
		if err != nil {
			logger.Warn("Failed to fetch %s: %v", item.url, err)
			continue
		}

		pages = append(pages, domain.Page{
			URL:   item.url,
			Title: extractTitle(body),
			Text:  stripHTML(body),
		})
		logger.Debug("Fetched %s (depth %d)", item.url, item.depth)

		if item.depth >= maxDepth {
			continue
		}
		for _, link := range extractLinks(item.url, body) {
			if !seen[link] {
				seen[link] = true
				queue = append(queue, queueItem{url: link, depth: item.depth + 1})
			}
		}
	}

	logger.Info("Crawled %d pages", len(pages))
	return pages, nil
}

// fetch retrieves one HTML page. Non-HTML responses are rejected.
func (c *Crawler) fetch(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType != "" && !strings.Contains(contentType, "text/html") {
		return "", fmt.Errorf("unsupported content type %q", contentType)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	return string(body), nil
}

// Pre-compiled regular expressions for HTML parsing performance.
var (
	titleTag      = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	scriptTag     = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleTag      = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	noscriptTag   = regexp.MustCompile(`(?is)<noscript[^>]*>.*?</noscript>`)
	headTag       = regexp.MustCompile(`(?is)<head[^>]*>.*?</head>`)
	svgTag        = regexp.MustCompile(`(?is)<svg[^>]*>.*?</svg>`)
	htmlComments  = regexp.MustCompile(`(?s)<!--.*?-->`)
	blockElements = regexp.MustCompile(`(?i)</?(p|div|br|hr|h[1-6]|li|tr|blockquote|pre|table|section|article)[^>]*>`)
	allTags       = regexp.MustCompile(`<[^>]+>`)
	multiSpaces   = regexp.MustCompile(`[ \t]+`)
	multiNewlines = regexp.MustCompile(`\n{3,}`)
	hrefAttr      = regexp.MustCompile(`(?i)<a[^>]+href\s*=\s*["']([^"'#]+)["']`)
)

// extractTitle extracts the <title> content, entity-decoded.
func extractTitle(content string) string {
	matches := titleTag.FindStringSubmatch(content)
	if len(matches) < 2 {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(matches[1]))
}

// stripHTML removes tags and extracts readable text content.
func stripHTML(content string) string {
	content = scriptTag.ReplaceAllString(content, "")
	content = styleTag.ReplaceAllString(content, "")
	content = noscriptTag.ReplaceAllString(content, "")
	content = headTag.ReplaceAllString(content, "")
	content = svgTag.ReplaceAllString(content, "")
	content = htmlComments.ReplaceAllString(content, "")

	// Block boundaries become newlines so text keeps its shape.
	content = blockElements.ReplaceAllString(content, "\n")
	content = allTags.ReplaceAllString(content, " ")

	content = html.UnescapeString(content)
	content = multiSpaces.ReplaceAllString(content, " ")
	content = multiNewlines.ReplaceAllString(content, "\n\n")

	return strings.TrimSpace(content)
}

// extractLinks resolves the page's anchors to absolute same-host URLs
// with fragments and queries stripped.
func extractLinks(pageURL, content string) []string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}

	var links []string
	for _, match := range hrefAttr.FindAllStringSubmatch(content, -1) {
		ref, err := url.Parse(strings.TrimSpace(match[1]))
		if err != nil {
			continue
		}
		resolved := base.ResolveReference(ref)
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			continue
		}
		if !strings.EqualFold(resolved.Host, base.Host) {
			continue
		}
		resolved.Fragment = ""
		resolved.RawQuery = ""
		links = append(links, resolved.String())
	}
	return links
}
