package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/d4zhu/portfolio/internal/errors"
	"github.com/d4zhu/portfolio/internal/models"
	"github.com/sirupsen/logrus"
	bolt "go.etcd.io/bbolt"
)

const (
	profilesBucket    = "profiles"
	preferencesBucket = "preferences"
)

// entry is the on-disk envelope. A zero ExpiresAt never expires.
type entry struct {
	Value     json.RawMessage `json:"value"`
	ExpiresAt time.Time       `json:"expires_at,omitempty"`
}

// Store is a bbolt-backed key/value cache for GitHub profiles and
// visitor preferences.
type Store struct {
	db     *bolt.DB
	logger *logrus.Logger
	now    func() time.Time
}

// Open opens or creates the cache database at path.
func Open(path string, logger *logrus.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.FileSystemErrorf(err, "create cache directory for %s", path)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.StorageErrorf(err, "open cache %s", path)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{profilesBucket, preferencesBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, errors.StorageError(err, "create cache buckets")
	}

	logger.WithField("path", path).Debug("cache opened")
	return &Store{db: db, logger: logger, now: time.Now}, nil
}

// Close releases the database file.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get decodes the value under key into dst. It reports false when the key
// is missing or expired.
func (s *Store) Get(bucket, key string, dst interface{}) (bool, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return bolt.ErrBucketNotFound
		}
		if v := b.Get([]byte(key)); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return false, errors.StorageErrorf(err, "read %s/%s", bucket, key)
	}
	if data == nil {
		return false, nil
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return false, errors.StorageErrorf(err, "decode %s/%s", bucket, key)
	}
	if !e.ExpiresAt.IsZero() && !s.now().Before(e.ExpiresAt) {
		return false, nil
	}
	if err := json.Unmarshal(e.Value, dst); err != nil {
		return false, errors.StorageErrorf(err, "decode %s/%s", bucket, key)
	}
	return true, nil
}

// Set stores value under key. A ttl of zero keeps it forever.
func (s *Store) Set(bucket, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return errors.StorageErrorf(err, "encode %s/%s", bucket, key)
	}
	e := entry{Value: raw}
	if ttl > 0 {
		e.ExpiresAt = s.now().Add(ttl)
	}
	data, err := json.Marshal(e)
	if err != nil {
		return errors.StorageErrorf(err, "encode %s/%s", bucket, key)
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucket))
		if err != nil {
			return err
		}
		return b.Put([]byte(key), data)
	})
	if err != nil {
		return errors.StorageErrorf(err, "write %s/%s", bucket, key)
	}
	return nil
}

// Delete removes key from bucket.
func (s *Store) Delete(bucket, key string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return nil
		}
		return b.Delete([]byte(key))
	})
	if err != nil {
		return errors.StorageErrorf(err, "delete %s/%s", bucket, key)
	}
	return nil
}

// GetProfile returns the cached profile for login, if still fresh.
func (s *Store) GetProfile(login string) (*models.Profile, bool) {
	var p models.Profile
	ok, err := s.Get(profilesBucket, login, &p)
	if err != nil {
		s.logger.WithError(err).WithField("login", login).Warn("profile cache read failed")
		return nil, false
	}
	if !ok {
		return nil, false
	}
	return &p, true
}

// SetProfile caches a profile for ttl.
func (s *Store) SetProfile(p *models.Profile, ttl time.Duration) error {
	return s.Set(profilesBucket, p.Login, p, ttl)
}

// GetScheme returns the visitor's stored color scheme or "" when none.
func (s *Store) GetScheme(ctx context.Context, visitor string) (string, error) {
	var scheme string
	if _, err := s.Get(preferencesBucket, visitor, &scheme); err != nil {
		return "", err
	}
	return scheme, nil
}

// SetScheme stores the visitor's color scheme.
func (s *Store) SetScheme(ctx context.Context, visitor, scheme string) error {
	return s.Set(preferencesBucket, visitor, scheme, 0)
}
