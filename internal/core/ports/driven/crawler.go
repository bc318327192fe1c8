package driven

import (
	"context"

	"github.com/custodia-labs/sitechat/internal/core/domain"
)

// Crawler fetches pages starting from a set of seed URLs.
// Implementations stay within the seeds' hosts and respect the
// page and depth caps.
type Crawler interface {
	// Crawl visits up to maxPages pages reachable from the seeds within
	// maxDepth link hops and returns their extracted text. Individual
	// fetch failures are skipped, not fatal.
	Crawl(ctx context.Context, seeds []string, maxPages, maxDepth int) ([]domain.Page, error)
}
