package cache

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/d4zhu/portfolio/internal/logging"
	"github.com/d4zhu/portfolio/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "cache", "portfolio.db"), logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_SetGet(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Set("profiles", "k", map[string]int{"a": 1}, 0))

	var got map[string]int
	ok, err := s.Get("profiles", "k", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, got["a"])

	ok, err = s.Get("profiles", "missing", &got)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Delete("profiles", "k"))
	ok, err = s.Get("profiles", "k", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_TTL(t *testing.T) {
	s := openTestStore(t)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	p := &models.Profile{Login: "d4zhu", PublicRepos: 7}
	require.NoError(t, s.SetProfile(p, time.Hour))

	got, ok := s.GetProfile("d4zhu")
	require.True(t, ok)
	assert.Equal(t, 7, got.PublicRepos)

	now = now.Add(time.Hour)
	_, ok = s.GetProfile("d4zhu")
	assert.False(t, ok)
}

func TestStore_Schemes(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	scheme, err := s.GetScheme(ctx, "visitor-1")
	require.NoError(t, err)
	assert.Equal(t, "", scheme)

	require.NoError(t, s.SetScheme(ctx, "visitor-1", "dark"))
	scheme, err = s.GetScheme(ctx, "visitor-1")
	require.NoError(t, err)
	assert.Equal(t, "dark", scheme)

	scheme, err = s.GetScheme(ctx, "visitor-2")
	require.NoError(t, err)
	assert.Equal(t, "", scheme)
}

func TestMemory_GetOrLoad(t *testing.T) {
	m := NewMemory(time.Minute, logging.Discard())

	var calls int32
	load := func() (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		time.Sleep(10 * time.Millisecond)
		return "dataset", nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := m.GetOrLoad("meta", load)
			assert.NoError(t, err)
			assert.Equal(t, "dataset", v)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	m.Flush()
	_, err := m.GetOrLoad("meta", load)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestMemory_ErrorsAreNotCached(t *testing.T) {
	m := NewMemory(time.Minute, logging.Discard())

	_, err := m.GetOrLoad("meta", func() (interface{}, error) { return nil, errors.New("boom") })
	require.Error(t, err)

	v, err := m.GetOrLoad("meta", func() (interface{}, error) { return 42, nil })
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}
