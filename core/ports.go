package core

import "context"

type Pinger interface {
	Ping(ctx context.Context) error
}

// DB is the data access layer.
type DB interface {
	Pinger

	// tasks
	ListTasksWithInfo(ctx context.Context) ([]TaskInfo, error)
	GetTask(ctx context.Context, id int64) (Task, error)
	CreateTask(ctx context.Context, in TaskInput) (Task, error)
	UpdateTask(ctx context.Context, id int64, in TaskInput) (Task, error)
	DeleteTask(ctx context.Context, id int64) error

	// categories
	ListCategories(ctx context.Context) ([]Category, error)
	AddCategory(ctx context.Context, name string) (bool, error)
	DeleteCategory(ctx context.Context, name string) error

	// priorities
	ListPriorities(ctx context.Context) ([]Priority, error)
}

// Tasks is what the web adapter needs from the domain.
type Tasks interface {
	Pinger

	Board(ctx context.Context) (Board, error)
	ListTasks(ctx context.Context) ([]TaskInfo, error)
	GetTask(ctx context.Context, id int64) (Task, error)
	EditForm(ctx context.Context, id int64) (EditForm, error)
	CreateTask(ctx context.Context, in TaskInput) (Task, error)
	UpdateTask(ctx context.Context, id int64, in TaskInput) (Task, error)
	DeleteTask(ctx context.Context, id int64) error

	ListCategories(ctx context.Context) ([]string, error)
	AddCategory(ctx context.Context, name string) (bool, error)
	DeleteCategory(ctx context.Context, name string) error

	ListPriorities(ctx context.Context) ([]string, error)
}
