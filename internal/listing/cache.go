package listing

import (
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Snapshots holds recently fetched collections so repeated list requests
// within the freshness window reuse the same in-memory copy instead of
// hitting the database. A refresh=true request always bypasses it.
type Snapshots struct {
	c *gocache.Cache
}

func NewSnapshots() *Snapshots {
	return &Snapshots{
		c: gocache.New(5*time.Minute, 10*time.Minute),
	}
}

// Key builds a snapshot key from an endpoint name and the tenant scope.
func Key(endpoint string, scope int) string {
	return fmt.Sprintf("%s:%d", endpoint, scope)
}

func (s *Snapshots) Get(key string) (any, bool) {
	return s.c.Get(key)
}

func (s *Snapshots) Set(key string, value any, ttl time.Duration) {
	s.c.Set(key, value, ttl)
}

func (s *Snapshots) Invalidate(key string) {
	s.c.Delete(key)
}

// Fetch returns the cached snapshot for key, or loads and caches one.
func Fetch[T any](s *Snapshots, key string, refresh bool, ttl time.Duration, load func() ([]T, error)) ([]T, error) {
	if !refresh {
		if cached, ok := s.Get(key); ok {
			if items, ok := cached.([]T); ok {
				return items, nil
			}
		}
	}

	items, err := load()
	if err != nil {
		return nil, err
	}

	s.Set(key, items, ttl)
	return items, nil
}
