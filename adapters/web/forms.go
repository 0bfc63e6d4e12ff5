package web

import (
	"fmt"
	"net/http"
	"strconv"

	"task-scheduler/core"
)

// Form field names posted by the task and category forms.
const (
	FieldTaskName       = "task_name"
	FieldCategory       = "category"
	FieldDateTime       = "date_time"
	FieldPriority       = "priority"
	FieldNewCategory    = "new_category"
	FieldDeleteCategory = "delete_category"
)

// FormValue returns a required POST field.
func FormValue(r *http.Request, key string) (string, error) {
	if err := r.ParseForm(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	vals, ok := r.PostForm[key]
	if !ok || len(vals) == 0 {
		return "", fmt.Errorf("%w: missing field %q", ErrBadRequest, key)
	}
	return vals[0], nil
}

func TaskInputFromForm(r *http.Request) (core.TaskInput, error) {
	var (
		in  core.TaskInput
		err error
	)
	if in.Name, err = FormValue(r, FieldTaskName); err != nil {
		return core.TaskInput{}, err
	}
	if in.Category, err = FormValue(r, FieldCategory); err != nil {
		return core.TaskInput{}, err
	}
	if in.DateTime, err = FormValue(r, FieldDateTime); err != nil {
		return core.TaskInput{}, err
	}
	if in.Priority, err = FormValue(r, FieldPriority); err != nil {
		return core.TaskInput{}, err
	}
	return in, nil
}

// PathID parses the {id} wildcard.
func PathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id", ErrBadRequest)
	}
	return id, nil
}
