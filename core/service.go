package core

import (
	"context"
	"errors"
	"log/slog"
	"strings"
)

type Service struct {
	log *slog.Logger
	db  DB
}

func NewService(log *slog.Logger, db DB) *Service {
	return &Service{
		log: log,
		db:  db,
	}
}

func (s *Service) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func normalizeInput(in TaskInput) (TaskInput, error) {
	out := TaskInput{
		Name:     strings.TrimSpace(in.Name),
		Category: strings.TrimSpace(in.Category),
		Priority: strings.TrimSpace(in.Priority),
	}
	if out.Name == "" || out.Category == "" || out.Priority == "" {
		return TaskInput{}, ErrTaskInvalidArgs
	}

	dt, err := ParseDateTime(strings.TrimSpace(in.DateTime))
	if err != nil {
		return TaskInput{}, err
	}
	out.DateTime = dt

	return out, nil
}

// Tasks

func (s *Service) Board(ctx context.Context) (Board, error) {
	tasks, err := s.ListTasks(ctx)
	if err != nil {
		return Board{}, err
	}
	categories, err := s.ListCategories(ctx)
	if err != nil {
		return Board{}, err
	}
	priorities, err := s.ListPriorities(ctx)
	if err != nil {
		return Board{}, err
	}
	return Board{Tasks: tasks, Categories: categories, Priorities: priorities}, nil
}

// ListTasks returns every task joined with its category and priority, with
// the date-time in display form.
func (s *Service) ListTasks(ctx context.Context) ([]TaskInfo, error) {
	items, err := s.db.ListTasksWithInfo(ctx)
	if err != nil {
		return nil, err
	}

	for i := range items {
		shown, err := FormatDateTime(items[i].DateTime)
		if err != nil {
			// rows written before validation existed; show them as stored
			s.log.Warn("unexpected stored date_time", "task_id", items[i].ID, "error", err)
			continue
		}
		items[i].DateTime = shown
	}
	return items, nil
}

func (s *Service) GetTask(ctx context.Context, id int64) (Task, error) {
	if id <= 0 {
		return Task{}, ErrTaskInvalidArgs
	}
	return s.db.GetTask(ctx, id)
}

func (s *Service) EditForm(ctx context.Context, id int64) (EditForm, error) {
	task, err := s.GetTask(ctx, id)
	if err != nil {
		return EditForm{}, err
	}
	categories, err := s.db.ListCategories(ctx)
	if err != nil {
		return EditForm{}, err
	}
	priorities, err := s.db.ListPriorities(ctx)
	if err != nil {
		return EditForm{}, err
	}

	form := EditForm{
		Task:       task,
		Categories: make([]string, 0, len(categories)),
		Priorities: make([]string, 0, len(priorities)),
	}
	for _, c := range categories {
		if c.ID == task.CategoryID {
			form.Category = c.Name
		}
		form.Categories = append(form.Categories, c.Name)
	}
	for _, p := range priorities {
		if p.ID == task.PriorityID {
			form.Priority = p.Level
		}
		form.Priorities = append(form.Priorities, p.Level)
	}
	return form, nil
}

func (s *Service) CreateTask(ctx context.Context, in TaskInput) (Task, error) {
	in, err := normalizeInput(in)
	if err != nil {
		return Task{}, err
	}
	return s.db.CreateTask(ctx, in)
}

// UpdateTask overwrites every field of the task. Unlike CreateTask the
// category has to exist already.
func (s *Service) UpdateTask(ctx context.Context, id int64, in TaskInput) (Task, error) {
	if id <= 0 {
		return Task{}, ErrTaskInvalidArgs
	}
	in, err := normalizeInput(in)
	if err != nil {
		return Task{}, err
	}
	return s.db.UpdateTask(ctx, id, in)
}

// DeleteTask removes the task; deleting an unknown id is not an error.
func (s *Service) DeleteTask(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrTaskInvalidArgs
	}
	if err := s.db.DeleteTask(ctx, id); err != nil && !errors.Is(err, ErrTaskNotFound) {
		return err
	}
	return nil
}

// Categories

func (s *Service) ListCategories(ctx context.Context) ([]string, error) {
	items, err := s.db.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(items))
	for _, c := range items {
		out = append(out, c.Name)
	}
	return out, nil
}

func (s *Service) AddCategory(ctx context.Context, name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, ErrCategoryInvalidArgs
	}
	return s.db.AddCategory(ctx, name)
}

func (s *Service) DeleteCategory(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrCategoryInvalidArgs
	}
	return s.db.DeleteCategory(ctx, name)
}

// Priorities

func (s *Service) ListPriorities(ctx context.Context) ([]string, error) {
	items, err := s.db.ListPriorities(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(items))
	for _, p := range items {
		out = append(out, p.Level)
	}
	return out, nil
}
