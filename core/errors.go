package core

import "errors"

// Categories errors
var (
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategoryInvalidArgs = errors.New("category invalid args")
	ErrCategoryInUse       = errors.New("category is used by tasks")
)

// Priorities errors
var (
	ErrPriorityNotFound = errors.New("priority not found")
)

// Tasks errors
var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrTaskInvalidArgs = errors.New("task invalid args")
)
