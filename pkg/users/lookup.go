package users

import (
	"context"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/pods-community/pods-cli/pkg/models"
)

// Searcher is anything that can search users by partial text
type Searcher interface {
	SearchUsers(ctx context.Context, query string) ([]models.CandidateUser, error)
}

// SearchFunc adapts a function to Searcher
type SearchFunc func(ctx context.Context, query string) ([]models.CandidateUser, error)

func (f SearchFunc) SearchUsers(ctx context.Context, query string) ([]models.CandidateUser, error) {
	return f(ctx, query)
}

// DefaultCacheSize is used when NewCachedLookup is given a non-positive size
const DefaultCacheSize = 64

// CachedLookup remembers recent results and collapses identical concurrent
// queries into one call to the wrapped Searcher. Failed searches are not
// cached. Safe for concurrent use.
type CachedLookup struct {
	next  Searcher
	group singleflight.Group
	cache *lru.Cache[string, []models.CandidateUser]
}

// NewCachedLookup wraps next with a least recently used cache holding up to
// size queries
func NewCachedLookup(next Searcher, size int) *CachedLookup {
	if size <= 0 {
		size = DefaultCacheSize
	}
	// lru.New only fails for a non-positive size
	cache, _ := lru.New[string, []models.CandidateUser](size)
	return &CachedLookup{
		next:  next,
		cache: cache,
	}
}

func (c *CachedLookup) SearchUsers(ctx context.Context, query string) ([]models.CandidateUser, error) {
	key := strings.ToLower(query)

	if users, ok := c.cache.Get(key); ok {
		return cloneUsers(users), nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		return c.next.SearchUsers(ctx, query)
	})
	if err != nil {
		return nil, err
	}

	users := v.([]models.CandidateUser)
	c.cache.ContainsOrAdd(key, cloneUsers(users))
	return cloneUsers(users), nil
}

// Invalidate drops every cached result
func (c *CachedLookup) Invalidate() {
	c.cache.Purge()
}

// Len returns the number of cached queries
func (c *CachedLookup) Len() int {
	return c.cache.Len()
}

func cloneUsers(users []models.CandidateUser) []models.CandidateUser {
	if users == nil {
		return nil
	}
	out := make([]models.CandidateUser, len(users))
	copy(out, users)
	return out
}

type timeoutLookup struct {
	next    Searcher
	timeout time.Duration
}

// WithTimeout bounds every search made through next. A non-positive timeout
// returns next unchanged.
func WithTimeout(next Searcher, timeout time.Duration) Searcher {
	if timeout <= 0 {
		return next
	}
	return &timeoutLookup{next: next, timeout: timeout}
}

func (t *timeoutLookup) SearchUsers(ctx context.Context, query string) ([]models.CandidateUser, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.SearchUsers(ctx, query)
}
