package categorize

import (
	"context"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/mkrall/pennywise/backend/internal/cache"
)

// Categorizer memoizes client suggestions keyed by normalized description,
// so the same subscription spelled slightly differently still costs one
// API call.
type Categorizer struct {
	client Client
	cache  *cache.LRUCache[string]
}

// NewCategorizer wraps a client with a bounded suggestion cache.
func NewCategorizer(client Client, cacheSize int) *Categorizer {
	return &Categorizer{
		client: client,
		cache:  cache.NewLRUCache[string](cacheSize, 0),
	}
}

// Suggest returns a category for the description. Blank descriptions fall
// through to "other" without touching the API.
func (c *Categorizer) Suggest(ctx context.Context, description string) (string, error) {
	key := normalizeKey(description)
	if key == "" {
		return "other", nil
	}

	if category, ok := c.cache.Get(key); ok {
		return category, nil
	}

	suggestion, err := c.client.SuggestCategory(ctx, description)
	if err != nil {
		return "", err
	}

	category := canonicalCategory(suggestion.Category)
	c.cache.Set(key, category)
	return category, nil
}

// CacheStats exposes the underlying cache counters.
func (c *Categorizer) CacheStats() cache.Stats {
	return c.cache.Stats()
}

// stripMarks removes combining marks left behind by NFKD decomposition.
var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeKey folds case, diacritics and repeated whitespace so that
// "Café  MILK bar" and "cafe milk bar" share a cache entry.
func normalizeKey(s string) string {
	folded, _, err := transform.String(stripMarks, s)
	if err != nil {
		folded = s
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}

func canonicalCategory(s string) string {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for _, known := range Categories {
		if normalized == known {
			return known
		}
	}
	return "other"
}
