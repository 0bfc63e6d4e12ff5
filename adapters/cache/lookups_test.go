package cache

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"task-scheduler/core"
)

// countingDB counts list calls and serves a fixed set of rows.
type countingDB struct {
	core.DB

	categories    []core.Category
	categoryCalls int
	priorityCalls int
	createdTasks  int

	// afterLoad runs once the category rows have been read
	afterLoad func()
}

func (db *countingDB) ListCategories(context.Context) ([]core.Category, error) {
	db.categoryCalls++
	out := append([]core.Category(nil), db.categories...)
	if db.afterLoad != nil {
		db.afterLoad()
	}
	return out, nil
}

func (db *countingDB) ListPriorities(context.Context) ([]core.Priority, error) {
	db.priorityCalls++
	return []core.Priority{{ID: 1, Level: "Low"}, {ID: 2, Level: "High"}}, nil
}

func (db *countingDB) AddCategory(_ context.Context, name string) (bool, error) {
	for _, c := range db.categories {
		if c.Name == name {
			return false, nil
		}
	}
	db.categories = append(db.categories, core.Category{ID: int64(len(db.categories) + 1), Name: name})
	return true, nil
}

func (db *countingDB) DeleteCategory(_ context.Context, name string) error {
	for i, c := range db.categories {
		if c.Name == name {
			db.categories = append(db.categories[:i], db.categories[i+1:]...)
			return nil
		}
	}
	return core.ErrCategoryNotFound
}

func (db *countingDB) CreateTask(_ context.Context, in core.TaskInput) (core.Task, error) {
	db.createdTasks++
	_, _ = db.AddCategory(context.Background(), in.Category)
	return core.Task{ID: int64(db.createdTasks), Name: in.Name}, nil
}

func newTestLookups(t *testing.T) (*miniredis.Miniredis, *countingDB, *Lookups) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	db := &countingDB{categories: []core.Category{{ID: 1, Name: "work"}}}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return mr, db, NewLookups(log, rdb, db, time.Minute)
}

func TestLookups_ServesFromCache(t *testing.T) {
	_, db, l := newTestLookups(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		got, err := l.ListPriorities(ctx)
		if err != nil {
			t.Fatalf("ListPriorities returned error: %v", err)
		}
		if len(got) != 2 || got[1].Level != "High" {
			t.Fatalf("unexpected priorities %v", got)
		}
	}
	if db.priorityCalls != 1 {
		t.Fatalf("expected 1 db call, got %d", db.priorityCalls)
	}
}

func TestLookups_AddCategoryInvalidates(t *testing.T) {
	_, db, l := newTestLookups(t)
	ctx := context.Background()

	if _, err := l.ListCategories(ctx); err != nil {
		t.Fatalf("ListCategories returned error: %v", err)
	}
	if _, err := l.AddCategory(ctx, "home"); err != nil {
		t.Fatalf("AddCategory returned error: %v", err)
	}

	got, err := l.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories returned error: %v", err)
	}
	if len(got) != 2 || got[1].Name != "home" {
		t.Fatalf("expected fresh list with home, got %v", got)
	}
	if db.categoryCalls != 2 {
		t.Fatalf("expected 2 db calls, got %d", db.categoryCalls)
	}
}

func TestLookups_CreateTaskInvalidates(t *testing.T) {
	_, _, l := newTestLookups(t)
	ctx := context.Background()

	if _, err := l.ListCategories(ctx); err != nil {
		t.Fatalf("ListCategories returned error: %v", err)
	}
	if _, err := l.CreateTask(ctx, core.TaskInput{Name: "t", Category: "study"}); err != nil {
		t.Fatalf("CreateTask returned error: %v", err)
	}

	got, err := l.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories returned error: %v", err)
	}
	if len(got) != 2 || got[1].Name != "study" {
		t.Fatalf("expected study to show up, got %v", got)
	}
}

func TestLookups_DeleteCategoryInvalidates(t *testing.T) {
	_, db, l := newTestLookups(t)
	ctx := context.Background()

	if _, err := l.AddCategory(ctx, "home"); err != nil {
		t.Fatalf("AddCategory returned error: %v", err)
	}
	if _, err := l.ListCategories(ctx); err != nil {
		t.Fatalf("ListCategories returned error: %v", err)
	}
	if err := l.DeleteCategory(ctx, "work"); err != nil {
		t.Fatalf("DeleteCategory returned error: %v", err)
	}

	got, err := l.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories returned error: %v", err)
	}
	if len(got) != 1 || got[0].Name != "home" {
		t.Fatalf("expected only home after delete, got %v", got)
	}
	if db.categoryCalls != 2 {
		t.Fatalf("expected 2 db calls, got %d", db.categoryCalls)
	}
}

func TestLookups_FailedDeleteKeepsCache(t *testing.T) {
	_, db, l := newTestLookups(t)
	ctx := context.Background()

	if _, err := l.ListCategories(ctx); err != nil {
		t.Fatalf("ListCategories returned error: %v", err)
	}
	if err := l.DeleteCategory(ctx, "missing"); !errors.Is(err, core.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
	if _, err := l.ListCategories(ctx); err != nil {
		t.Fatalf("ListCategories returned error: %v", err)
	}
	if db.categoryCalls != 1 {
		t.Fatalf("expected list to stay cached, got %d db calls", db.categoryCalls)
	}
}

// A write that lands while a reader is loading from the DB must not be
// hidden by the reader storing what it loaded.
func TestLookups_WriteDuringLoadIsNotLost(t *testing.T) {
	_, db, l := newTestLookups(t)
	ctx := context.Background()

	loaded := make(chan struct{})
	release := make(chan struct{})
	db.afterLoad = func() {
		db.afterLoad = nil
		close(loaded)
		<-release
	}

	type result struct {
		items []core.Category
		err   error
	}
	done := make(chan result, 1)
	go func() {
		items, err := l.ListCategories(ctx)
		done <- result{items, err}
	}()

	<-loaded
	if _, err := l.AddCategory(ctx, "errands"); err != nil {
		t.Fatalf("AddCategory returned error: %v", err)
	}
	close(release)

	first := <-done
	if first.err != nil {
		t.Fatalf("ListCategories returned error: %v", first.err)
	}
	if len(first.items) != 1 {
		t.Fatalf("expected the reader to see its own snapshot, got %v", first.items)
	}

	got, err := l.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories returned error: %v", err)
	}
	if len(got) != 2 || got[1].Name != "errands" {
		t.Fatalf("expected errands after concurrent add, got %v", got)
	}
}

func TestLookups_RedisDownFallsBackToDB(t *testing.T) {
	mr, db, l := newTestLookups(t)
	mr.Close()

	got, err := l.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("expected fallback to db, got %v", err)
	}
	if len(got) != 1 || db.categoryCalls != 1 {
		t.Fatalf("unexpected result %v after %d calls", got, db.categoryCalls)
	}
}

func TestPinger(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	p := Pinger{Client: rdb}
	if err := p.Ping(context.Background()); err != nil {
		t.Fatalf("expected ping to succeed, got %v", err)
	}

	mr.Close()
	if err := p.Ping(context.Background()); err == nil {
		t.Fatalf("expected ping to fail after shutdown")
	}
}
