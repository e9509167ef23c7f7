package platforms

import (
	"hash/fnv"

	"TrendPoster/internal/domain"
)

// demoAnalytics fabricates bounded engagement counters when a platform is
// not configured. Derived from the post id so repeated calls agree.
func demoAnalytics(platformPostID string) domain.PostAnalytics {
	h := fnv.New32a()
	_, _ = h.Write([]byte(platformPostID))
	seed := h.Sum32()

	return domain.PostAnalytics{
		Likes:    int(seed % 100),
		Comments: int(seed / 100 % 20),
		Shares:   int(seed / 2000 % 10),
		Views:    int(seed % 1000),
	}
}
