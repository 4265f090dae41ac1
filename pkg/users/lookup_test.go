package users

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/pods-community/pods-cli/pkg/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func countingSearcher(calls *int32, users []models.CandidateUser, err error) SearchFunc {
	return func(ctx context.Context, query string) ([]models.CandidateUser, error) {
		atomic.AddInt32(calls, 1)
		return users, err
	}
}

func TestCachedLookup_CachesByLowercasedQuery(t *testing.T) {
	var calls int32
	lookup := NewCachedLookup(countingSearcher(&calls, community[:2], nil), 8)

	first, err := lookup.SearchUsers(context.Background(), "Al")
	require.NoError(t, err)
	second, err := lookup.SearchUsers(context.Background(), "al")
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, first, second)
	assert.Equal(t, 1, lookup.Len())
}

func TestCachedLookup_ResultsAreCopies(t *testing.T) {
	var calls int32
	lookup := NewCachedLookup(countingSearcher(&calls, community[:2], nil), 8)

	first, _ := lookup.SearchUsers(context.Background(), "a")
	first[0].Username = "mutated"

	second, _ := lookup.SearchUsers(context.Background(), "a")
	assert.Equal(t, "alice", second[0].Username)
}

func TestCachedLookup_ErrorsAreNotCached(t *testing.T) {
	var calls int32
	boom := errors.New("directory offline")
	lookup := NewCachedLookup(countingSearcher(&calls, nil, boom), 8)

	_, err := lookup.SearchUsers(context.Background(), "al")
	assert.ErrorIs(t, err, boom)
	_, err = lookup.SearchUsers(context.Background(), "al")
	assert.ErrorIs(t, err, boom)

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.Equal(t, 0, lookup.Len())
}

func TestCachedLookup_EvictsLeastRecentlyUsed(t *testing.T) {
	var calls int32
	lookup := NewCachedLookup(countingSearcher(&calls, community[:1], nil), 2)

	// "a" is read again before "c" arrives, so "b" is the one evicted
	for _, q := range []string{"a", "b", "a", "c"} {
		_, err := lookup.SearchUsers(context.Background(), q)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.Equal(t, 2, lookup.Len())

	lookup.SearchUsers(context.Background(), "a")
	lookup.SearchUsers(context.Background(), "c")
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	lookup.SearchUsers(context.Background(), "b")
	assert.Equal(t, int32(4), atomic.LoadInt32(&calls))

	lookup.Invalidate()
	assert.Equal(t, 0, lookup.Len())
}

func TestCachedLookup_CollapsesConcurrentQueries(t *testing.T) {
	var calls int32
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once

	slow := SearchFunc(func(ctx context.Context, query string) ([]models.CandidateUser, error) {
		atomic.AddInt32(&calls, 1)
		once.Do(func() { close(started) })
		<-release
		return community[:1], nil
	})
	lookup := NewCachedLookup(slow, 8)

	var wg sync.WaitGroup
	results := make([][]models.CandidateUser, 4)
	search := func(i int) {
		defer wg.Done()
		results[i], _ = lookup.SearchUsers(context.Background(), "al")
	}

	wg.Add(1)
	go search(0)
	<-started

	for i := 1; i < len(results); i++ {
		wg.Add(1)
		go search(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	for _, r := range results {
		assert.Equal(t, community[:1], r)
	}
}

func TestWithTimeout(t *testing.T) {
	blocking := SearchFunc(func(ctx context.Context, query string) ([]models.CandidateUser, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	_, err := WithTimeout(blocking, 10*time.Millisecond).SearchUsers(context.Background(), "al")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	var calls int32
	plain := countingSearcher(&calls, nil, nil)
	assert.NotNil(t, WithTimeout(plain, 0))
	_, err = WithTimeout(plain, 0).SearchUsers(context.Background(), "al")
	assert.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
