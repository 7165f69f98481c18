package github

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/d4zhu/portfolio/internal/errors"
	"github.com/d4zhu/portfolio/internal/models"
	"github.com/google/go-github/v57/github"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// ProfileCache stores fetched profiles between requests.
type ProfileCache interface {
	GetProfile(login string) (*models.Profile, bool)
	SetProfile(p *models.Profile, ttl time.Duration) error
}

// Client wraps the GitHub API client with rate limiting and caching
type Client struct {
	client      *github.Client
	rateLimiter *rate.Limiter
	cache       ProfileCache
	cacheTTL    time.Duration
	logger      *logrus.Logger
	now         func() time.Time
}

// NewClient creates a new GitHub client with rate limiting. An empty
// token makes unauthenticated requests; a rateLimit of zero disables
// limiting.
func NewClient(token string, rateLimit int, logger *logrus.Logger) *Client {
	client := github.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}

	limit := rate.Inf
	if rateLimit > 0 {
		limit = rate.Limit(rateLimit)
	}

	return &Client{
		client:      client,
		rateLimiter: rate.NewLimiter(limit, 1),
		logger:      logger,
		now:         time.Now,
	}
}

// WithCache makes the client serve profiles from cache for ttl.
func (c *Client) WithCache(cache ProfileCache, ttl time.Duration) *Client {
	c.cache = cache
	c.cacheTTL = ttl
	return c
}

// WithBaseURL points the client at another API endpoint, such as GitHub
// Enterprise or a test server.
func (c *Client) WithBaseURL(base string) (*Client, error) {
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, errors.ConfigErrorf("invalid GitHub base URL %q: %v", base, err)
	}
	c.client.BaseURL = u
	return c, nil
}

// FetchProfile returns the public counters of a GitHub user.
func (c *Client) FetchProfile(ctx context.Context, username string) (*models.Profile, error) {
	if username == "" {
		return nil, errors.ConfigError("GitHub username is empty")
	}

	if c.cache != nil {
		if p, ok := c.cache.GetProfile(username); ok {
			c.logger.WithField("login", username).Debug("profile served from cache")
			return p, nil
		}
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, errors.NetworkError(fmt.Errorf("rate limiter: %w", err), "fetch profile")
	}

	user, _, err := c.client.Users.Get(ctx, username)
	if err != nil {
		// the API answered: unknown user, bad token, rate limited
		var apiErr *github.ErrorResponse
		if stderrors.As(err, &apiErr) {
			return nil, errors.ExternalErrorf(err, "fetch profile %s", username)
		}
		return nil, errors.NetworkErrorf(err, "fetch profile %s", username)
	}

	p := &models.Profile{
		Login:       user.GetLogin(),
		PublicRepos: user.GetPublicRepos(),
		PublicGists: user.GetPublicGists(),
		Followers:   user.GetFollowers(),
		Following:   user.GetFollowing(),
		FetchedAt:   c.now(),
	}
	if p.Login == "" {
		p.Login = username
	}

	if c.cache != nil {
		if err := c.cache.SetProfile(p, c.cacheTTL); err != nil {
			c.logger.WithError(err).Warn("failed to cache profile")
		}
	}

	c.logger.WithFields(logrus.Fields{
		"login": p.Login,
		"repos": p.PublicRepos,
	}).Debug("profile fetched")

	return p, nil
}
