package core

// Task is a raw row of the tasks table.
type Task struct {
	ID         int64  `db:"id" json:"id"`
	Name       string `db:"name" json:"name"`
	CategoryID int64  `db:"category_id" json:"category_id"`
	PriorityID int64  `db:"priority_id" json:"priority_id"`
	DateTime   string `db:"date_time" json:"date_time"`
}

// TaskInfo is a task joined with its category name and priority level.
type TaskInfo struct {
	ID       int64  `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Category string `db:"category" json:"category"`
	DateTime string `db:"date_time" json:"date_time"`
	Priority string `db:"priority" json:"priority"`
}

type Category struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

type Priority struct {
	ID    int64  `db:"id" json:"id"`
	Level string `db:"level" json:"level"`
}

// TaskInput carries the user-facing fields of a task: category and
// priority are referenced by name, not by id.
type TaskInput struct {
	Name     string
	Category string
	DateTime string
	Priority string
}

// Board is everything the index page shows.
type Board struct {
	Tasks      []TaskInfo
	Categories []string
	Priorities []string
}

// EditForm is a raw task together with the names its ids point at and the
// choices offered when editing it.
type EditForm struct {
	Task       Task
	Category   string
	Priority   string
	Categories []string
	Priorities []string
}
