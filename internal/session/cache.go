// Package session caches initialized segmentation model sessions so the
// expensive model load happens at most once per model for the lifetime of
// the process (or until the cache is cleared).
package session

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/pixelcut/rembg-mcp/internal/models"
)

// Cache holds at most one Session per model identifier. Creation is
// single-flight per key: concurrent requests for the same uninitialized
// model trigger exactly one backend load, and a failed load leaves no entry
// behind, so the next request retries.
type Cache struct {
	backend     Backend
	log         *zap.Logger
	idleTimeout time.Duration

	group singleflight.Group

	mu       sync.Mutex
	sessions map[string]Session
	lastUse  time.Time

	janitor *cron.Cron
}

// Status is a point-in-time snapshot of the cache for introspection tools.
type Status struct {
	LoadedModels       []string `json:"loaded_models"`
	ModelsCount        int      `json:"models_count"`
	IdleTimeoutSeconds float64  `json:"idle_timeout_seconds"`
	AutoUnloadEnabled  bool     `json:"auto_unload_enabled"`
	LastUsageUnix      int64    `json:"last_usage_unix"`
	SecondsUntilUnload *float64 `json:"seconds_until_unload,omitempty"`
}

// NewCache creates a cache backed by backend. When idleTimeout is positive,
// a background sweep unloads all sessions once the cache has been unused for
// that long; zero disables auto-unload.
func NewCache(backend Backend, idleTimeout time.Duration, log *zap.Logger) *Cache {
	c := &Cache{
		backend:     backend,
		log:         log,
		idleTimeout: idleTimeout,
		sessions:    make(map[string]Session),
	}
	if idleTimeout > 0 {
		// Sweep at a quarter of the timeout so an idle cache is
		// reclaimed within ~1.25x the configured window.
		every := idleTimeout / 4
		if every < time.Second {
			every = time.Second
		}
		c.janitor = cron.New()
		c.janitor.Schedule(cron.Every(every), cron.FuncJob(c.sweep))
		c.janitor.Start()
	}
	return c
}

// GetOrCreate returns the session for model, loading it through the backend
// on first use. The model identifier is validated before any expensive work.
func (c *Cache) GetOrCreate(ctx context.Context, model string) (Session, error) {
	if !models.IsSupported(model) {
		return nil, fmt.Errorf("%w: %q (supported: %s)",
			models.ErrUnsupported, model, strings.Join(models.IDs(), ", "))
	}

	c.mu.Lock()
	if s, ok := c.sessions[model]; ok {
		c.lastUse = time.Now()
		c.mu.Unlock()
		return s, nil
	}
	c.mu.Unlock()

	v, err, _ := c.group.Do(model, func() (interface{}, error) {
		// A flight that finished between our read and this call may
		// already have stored the session.
		c.mu.Lock()
		if s, ok := c.sessions[model]; ok {
			c.mu.Unlock()
			return s, nil
		}
		c.mu.Unlock()

		c.log.Info("loading model session", zap.String("model", model))
		start := time.Now()
		s, err := c.backend.LoadSession(ctx, model)
		if err != nil {
			// Nothing is stored, so the next request retries.
			return nil, err
		}

		c.mu.Lock()
		c.sessions[model] = s
		c.mu.Unlock()
		c.log.Info("model session ready",
			zap.String("model", model),
			zap.Duration("took", time.Since(start)))
		return s, nil
	})
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.lastUse = time.Now()
	c.mu.Unlock()
	return v.(Session), nil
}

// Clear unloads every cached session and returns the sorted identifiers of
// the models that were unloaded. Close failures are logged, not returned.
func (c *Cache) Clear() []string {
	c.mu.Lock()
	unloaded := make([]string, 0, len(c.sessions))
	for id, s := range c.sessions {
		unloaded = append(unloaded, id)
		if err := s.Close(); err != nil {
			c.log.Warn("closing model session", zap.String("model", id), zap.Error(err))
		}
	}
	c.sessions = make(map[string]Session)
	c.mu.Unlock()

	sort.Strings(unloaded)
	return unloaded
}

// Loaded returns the sorted identifiers of currently cached models.
func (c *Cache) Loaded() []string {
	c.mu.Lock()
	ids := make([]string, 0, len(c.sessions))
	for id := range c.sessions {
		ids = append(ids, id)
	}
	c.mu.Unlock()

	sort.Strings(ids)
	return ids
}

// Status reports the cache contents and auto-unload state.
func (c *Cache) Status() Status {
	c.mu.Lock()
	ids := make([]string, 0, len(c.sessions))
	for id := range c.sessions {
		ids = append(ids, id)
	}
	lastUse := c.lastUse
	c.mu.Unlock()
	sort.Strings(ids)

	st := Status{
		LoadedModels:       ids,
		ModelsCount:        len(ids),
		IdleTimeoutSeconds: c.idleTimeout.Seconds(),
		AutoUnloadEnabled:  c.idleTimeout > 0,
	}
	if !lastUse.IsZero() {
		st.LastUsageUnix = lastUse.Unix()
	}
	if c.idleTimeout > 0 && len(ids) > 0 && !lastUse.IsZero() {
		remaining := c.idleTimeout.Seconds() - time.Since(lastUse).Seconds()
		if remaining < 0 {
			remaining = 0
		}
		st.SecondsUntilUnload = &remaining
	}
	return st
}

// Stop halts the auto-unload sweeper. Cached sessions are left in place.
func (c *Cache) Stop() {
	if c.janitor != nil {
		c.janitor.Stop()
	}
}

func (c *Cache) sweep() {
	c.mu.Lock()
	idle := time.Since(c.lastUse)
	empty := len(c.sessions) == 0
	c.mu.Unlock()

	if empty || idle < c.idleTimeout {
		return
	}
	unloaded := c.Clear()
	c.log.Info("auto-unloaded idle model sessions",
		zap.Strings("models", unloaded),
		zap.Duration("idle", idle))
}
