package github

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/d4zhu/portfolio/internal/errors"
	"github.com/d4zhu/portfolio/internal/logging"
	"github.com/d4zhu/portfolio/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryCache struct {
	profiles map[string]*models.Profile
}

func (m *memoryCache) GetProfile(login string) (*models.Profile, bool) {
	p, ok := m.profiles[login]
	return p, ok
}

func (m *memoryCache) SetProfile(p *models.Profile, ttl time.Duration) error {
	m.profiles[p.Login] = p
	return nil
}

func newTestServer(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		if r.URL.Path != "/users/d4zhu" {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"message":"Not Found"}`)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"login":"d4zhu","public_repos":12,"public_gists":2,"followers":30,"following":4}`)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchProfile(t *testing.T) {
	var hits int32
	srv := newTestServer(t, &hits)

	c, err := NewClient("", 0, logging.Discard()).WithBaseURL(srv.URL)
	require.NoError(t, err)

	p, err := c.FetchProfile(context.Background(), "d4zhu")
	require.NoError(t, err)
	assert.Equal(t, "d4zhu", p.Login)
	assert.Equal(t, 12, p.PublicRepos)
	assert.Equal(t, 2, p.PublicGists)
	assert.Equal(t, 30, p.Followers)
	assert.Equal(t, 4, p.Following)
}

func TestFetchProfile_NotFound(t *testing.T) {
	var hits int32
	srv := newTestServer(t, &hits)

	c, err := NewClient("token", 10, logging.Discard()).WithBaseURL(srv.URL)
	require.NoError(t, err)

	_, err = c.FetchProfile(context.Background(), "nobody")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeExternal))
}

func TestFetchProfile_Unreachable(t *testing.T) {
	var hits int32
	srv := newTestServer(t, &hits)
	base := srv.URL
	srv.Close()

	c, err := NewClient("", 0, logging.Discard()).WithBaseURL(base)
	require.NoError(t, err)

	_, err = c.FetchProfile(context.Background(), "d4zhu")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeNetwork))
}

func TestFetchProfile_EmptyUsername(t *testing.T) {
	c := NewClient("", 0, logging.Discard())
	_, err := c.FetchProfile(context.Background(), "")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}

func TestFetchProfile_Cached(t *testing.T) {
	var hits int32
	srv := newTestServer(t, &hits)

	c, err := NewClient("", 0, logging.Discard()).WithBaseURL(srv.URL)
	require.NoError(t, err)
	c.WithCache(&memoryCache{profiles: map[string]*models.Profile{}}, time.Hour)

	for i := 0; i < 3; i++ {
		p, err := c.FetchProfile(context.Background(), "d4zhu")
		require.NoError(t, err)
		assert.Equal(t, 12, p.PublicRepos)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestFetchProfile_CanceledContext(t *testing.T) {
	var hits int32
	srv := newTestServer(t, &hits)

	c, err := NewClient("", 1, logging.Discard()).WithBaseURL(srv.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = c.FetchProfile(ctx, "d4zhu")
	require.Error(t, err)
}
