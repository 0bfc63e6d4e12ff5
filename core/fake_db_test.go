package core_test

import (
	"context"
	"sort"
	"sync"

	"task-scheduler/core"
)

type fakeDB struct {
	mu sync.RWMutex

	nextCategoryID int64
	nextTaskID     int64

	categories map[int64]core.Category
	priorities map[int64]core.Priority
	tasks      map[int64]core.Task
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		nextCategoryID: 1,
		nextTaskID:     1,
		categories:     make(map[int64]core.Category),
		priorities: map[int64]core.Priority{
			1: {ID: 1, Level: "Low"},
			2: {ID: 2, Level: "Medium"},
			3: {ID: 3, Level: "High"},
		},
		tasks: make(map[int64]core.Task),
	}
}

func (db *fakeDB) Ping(context.Context) error {
	return nil
}

func (db *fakeDB) categoryByName(name string) (core.Category, bool) {
	for _, c := range db.categories {
		if c.Name == name {
			return c, true
		}
	}
	return core.Category{}, false
}

func (db *fakeDB) priorityByLevel(level string) (core.Priority, bool) {
	for _, p := range db.priorities {
		if p.Level == level {
			return p, true
		}
	}
	return core.Priority{}, false
}

func (db *fakeDB) ListTasksWithInfo(context.Context) ([]core.TaskInfo, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := make([]core.TaskInfo, 0, len(db.tasks))
	for _, t := range db.tasks {
		out = append(out, core.TaskInfo{
			ID:       t.ID,
			Name:     t.Name,
			Category: db.categories[t.CategoryID].Name,
			DateTime: t.DateTime,
			Priority: db.priorities[t.PriorityID].Level,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (db *fakeDB) GetTask(_ context.Context, id int64) (core.Task, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	t, ok := db.tasks[id]
	if !ok {
		return core.Task{}, core.ErrTaskNotFound
	}
	return t, nil
}

func (db *fakeDB) CreateTask(_ context.Context, in core.TaskInput) (core.Task, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	p, ok := db.priorityByLevel(in.Priority)
	if !ok {
		return core.Task{}, core.ErrPriorityNotFound
	}

	c, ok := db.categoryByName(in.Category)
	if !ok {
		c = core.Category{ID: db.nextCategoryID, Name: in.Category}
		db.nextCategoryID++
		db.categories[c.ID] = c
	}

	t := core.Task{
		ID:         db.nextTaskID,
		Name:       in.Name,
		CategoryID: c.ID,
		PriorityID: p.ID,
		DateTime:   in.DateTime,
	}
	db.nextTaskID++
	db.tasks[t.ID] = t
	return t, nil
}

func (db *fakeDB) UpdateTask(_ context.Context, id int64, in core.TaskInput) (core.Task, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	c, ok := db.categoryByName(in.Category)
	if !ok {
		return core.Task{}, core.ErrCategoryNotFound
	}
	p, ok := db.priorityByLevel(in.Priority)
	if !ok {
		return core.Task{}, core.ErrPriorityNotFound
	}
	if _, ok := db.tasks[id]; !ok {
		return core.Task{}, core.ErrTaskNotFound
	}

	t := core.Task{ID: id, Name: in.Name, CategoryID: c.ID, PriorityID: p.ID, DateTime: in.DateTime}
	db.tasks[id] = t
	return t, nil
}

func (db *fakeDB) DeleteTask(_ context.Context, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.tasks[id]; !ok {
		return core.ErrTaskNotFound
	}
	delete(db.tasks, id)
	return nil
}

func (db *fakeDB) ListCategories(context.Context) ([]core.Category, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := make([]core.Category, 0, len(db.categories))
	for _, c := range db.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (db *fakeDB) AddCategory(_ context.Context, name string) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.categoryByName(name); ok {
		return false, nil
	}
	c := core.Category{ID: db.nextCategoryID, Name: name}
	db.nextCategoryID++
	db.categories[c.ID] = c
	return true, nil
}

func (db *fakeDB) DeleteCategory(_ context.Context, name string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	c, ok := db.categoryByName(name)
	if !ok {
		return core.ErrCategoryNotFound
	}
	for _, t := range db.tasks {
		if t.CategoryID == c.ID {
			return core.ErrCategoryInUse
		}
	}
	delete(db.categories, c.ID)
	return nil
}

func (db *fakeDB) ListPriorities(context.Context) ([]core.Priority, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := make([]core.Priority, 0, len(db.priorities))
	for _, p := range db.priorities {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out, nil
}
