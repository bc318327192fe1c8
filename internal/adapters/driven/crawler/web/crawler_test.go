package web

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><head><title>Home &amp; Start</title></head>
<body><p>Welcome to the docs.</p>
<a href="/guide">Guide</a>
<a href="/guide#section">Guide anchor</a>
<a href="https://elsewhere.example/off-host">Off host</a>
<a href="mailto:hi@example.com">Mail</a>
</body></html>`)
	})
	mux.HandleFunc("/guide", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><head><title>Guide</title></head>
<body><h1>Guide</h1><p>Deep content here.</p><a href="/deep">Deeper</a></body></html>`)
	})
	mux.HandleFunc("/deep", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><head><title>Deep</title></head><body>Very deep.</body></html>`)
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/binary", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Write([]byte{0x00, 0x01}) //nolint:errcheck
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestCrawler() *Crawler {
	return New(Config{RequestsPerSecond: 1000})
}

func TestCrawl_FollowsSameHostLinks(t *testing.T) {
	srv := testServer(t)
	c := newTestCrawler()

	pages, err := c.Crawl(context.Background(), []string{srv.URL + "/"}, 10, 2)

	require.NoError(t, err)
	require.Len(t, pages, 3)
	assert.Equal(t, srv.URL+"/", pages[0].URL)
	assert.Equal(t, "Home & Start", pages[0].Title)
	assert.Contains(t, pages[0].Text, "Welcome to the docs.")
	assert.Equal(t, srv.URL+"/guide", pages[1].URL)
	assert.Equal(t, srv.URL+"/deep", pages[2].URL)
}

func TestCrawl_RespectsMaxDepth(t *testing.T) {
	srv := testServer(t)
	c := newTestCrawler()

	pages, err := c.Crawl(context.Background(), []string{srv.URL + "/"}, 10, 1)

	require.NoError(t, err)
	// Depth 1 reaches /guide but not /deep.
	require.Len(t, pages, 2)
	assert.Equal(t, srv.URL+"/guide", pages[1].URL)
}

func TestCrawl_RespectsMaxPages(t *testing.T) {
	srv := testServer(t)
	c := newTestCrawler()

	pages, err := c.Crawl(context.Background(), []string{srv.URL + "/"}, 1, 5)

	require.NoError(t, err)
	assert.Len(t, pages, 1)
}

func TestCrawl_SkipsFailedFetches(t *testing.T) {
	srv := testServer(t)
	c := newTestCrawler()

	pages, err := c.Crawl(context.Background(),
		[]string{srv.URL + "/missing", srv.URL + "/binary", srv.URL + "/deep"}, 10, 0)

	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, srv.URL+"/deep", pages[0].URL)
}

func TestCrawl_DeduplicatesURLs(t *testing.T) {
	srv := testServer(t)
	c := newTestCrawler()

	pages, err := c.Crawl(context.Background(),
		[]string{srv.URL + "/deep", srv.URL + "/deep"}, 10, 0)

	require.NoError(t, err)
	assert.Len(t, pages, 1)
}

func TestStripHTML_RemovesScriptAndStyle(t *testing.T) {
	text := stripHTML(`<html><head><style>p{color:red}</style></head>
<body><script>alert(1)</script><p>Visible &amp; decoded</p></body></html>`)

	assert.Contains(t, text, "Visible & decoded")
	assert.NotContains(t, text, "alert")
	assert.NotContains(t, text, "color:red")
}

func TestExtractTitle_MissingTitle(t *testing.T) {
	assert.Equal(t, "", extractTitle("<html><body>No title</body></html>"))
}

func TestExtractLinks_StripsQueryAndFragment(t *testing.T) {
	links := extractLinks("https://a.example/page",
		`<a href="/next?page=2">next</a><a href="/other#frag">other</a>`)

	assert.Equal(t, []string{"https://a.example/next", "https://a.example/other"}, links)
}
