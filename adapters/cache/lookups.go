package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"task-scheduler/core"
)

const (
	categoriesKey = "tasks:lookups:categories"
	prioritiesKey = "tasks:lookups:priorities"
)

// errStale aborts a cache fill that raced with a write.
var errStale = errors.New("cache generation changed")

func genKey(key string) string {
	return key + ":gen"
}

// Lookups is a core.DB that serves the category and priority lists from
// Redis. Redis failures fall through to the wrapped DB.
//
// Every write bumps a generation counter next to the cached list; a reader
// only stores what it loaded if the counter is still the one it saw before
// going to the DB.
type Lookups struct {
	core.DB

	log *slog.Logger
	rdb *redis.Client
	ttl time.Duration
}

func NewLookups(log *slog.Logger, rdb *redis.Client, db core.DB, ttl time.Duration) *Lookups {
	return &Lookups{DB: db, log: log, rdb: rdb, ttl: ttl}
}

func (l *Lookups) ListCategories(ctx context.Context) ([]core.Category, error) {
	return cached(ctx, l, categoriesKey, l.DB.ListCategories)
}

func (l *Lookups) ListPriorities(ctx context.Context) ([]core.Priority, error) {
	return cached(ctx, l, prioritiesKey, l.DB.ListPriorities)
}

// CreateTask may add a category, so the list is dropped either way.
func (l *Lookups) CreateTask(ctx context.Context, in core.TaskInput) (core.Task, error) {
	t, err := l.DB.CreateTask(ctx, in)
	if err == nil {
		l.invalidate(ctx, categoriesKey)
	}
	return t, err
}

func (l *Lookups) AddCategory(ctx context.Context, name string) (bool, error) {
	created, err := l.DB.AddCategory(ctx, name)
	if err == nil && created {
		l.invalidate(ctx, categoriesKey)
	}
	return created, err
}

func (l *Lookups) DeleteCategory(ctx context.Context, name string) error {
	err := l.DB.DeleteCategory(ctx, name)
	if err == nil {
		l.invalidate(ctx, categoriesKey)
	}
	return err
}

func (l *Lookups) invalidate(ctx context.Context, key string) {
	_, err := l.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Incr(ctx, genKey(key))
		p.Del(ctx, key)
		return nil
	})
	if err != nil {
		l.log.Warn("cache invalidate failed", "key", key, "error", err)
	}
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (l *Lookups) generation(ctx context.Context, c getter, key string) (int64, error) {
	gen, err := c.Get(ctx, genKey(key)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// store writes data under key unless a write bumped the generation since gen
// was read.
func (l *Lookups) store(ctx context.Context, key string, gen int64, data []byte) error {
	return l.rdb.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := l.generation(ctx, tx, key)
		if err != nil {
			return err
		}
		if cur != gen {
			return errStale
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, key, data, l.ttl)
			return nil
		})
		return err
	}, genKey(key))
}

func cached[T any](ctx context.Context, l *Lookups, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	raw, err := l.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var out []T
		if err := json.Unmarshal(raw, &out); err == nil {
			return out, nil
		}
		l.log.Warn("cache entry corrupt", "key", key)
	case !errors.Is(err, redis.Nil):
		l.log.Warn("cache get failed", "key", key, "error", err)
	}

	// read before loading so a concurrent write is noticed at store time
	gen, genErr := l.generation(ctx, l.rdb, key)

	out, err := load(ctx)
	if err != nil {
		return nil, err
	}
	if genErr != nil {
		return out, nil
	}

	data, err := json.Marshal(out)
	if err != nil {
		return out, nil
	}
	switch err := l.store(ctx, key, gen, data); {
	case err == nil:
	case errors.Is(err, errStale), errors.Is(err, redis.TxFailedErr):
		l.log.Debug("cache fill skipped, list changed while loading", "key", key)
	default:
		l.log.Warn("cache set failed", "key", key, "error", err)
	}
	return out, nil
}

// Pinger adapts a redis client to core.Pinger.
type Pinger struct {
	Client *redis.Client
}

func (p Pinger) Ping(ctx context.Context) error {
	return p.Client.Ping(ctx).Err()
}
