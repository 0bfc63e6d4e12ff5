package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"task-scheduler/core"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

type DB struct {
	log    *slog.Logger
	conn   *sqlx.DB
	driver string
	dsn    string
}

func New(log *slog.Logger, driver, address string) (*DB, error) {
	dsn := address
	switch driver {
	case DriverSQLite:
		// Migrate opens a second connection, which would see a different
		// in-memory database
		if isSQLiteMemory(address) {
			return nil, fmt.Errorf("in-memory sqlite address %q is not supported, use a file path", address)
		}
		dsn = sqliteDSN(address)
	case DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported db driver %q", driver)
	}

	conn, err := sqlx.Connect(driver, dsn)
	if err != nil {
		log.Error("connection problem", "driver", driver, "address", address, "error", err)
		return nil, err
	}

	if driver == DriverSQLite {
		// one writer; also keeps pragmas and in-process locking simple
		conn.SetMaxOpenConns(1)
	}

	return &DB{log: log, conn: conn, driver: driver, dsn: dsn}, nil
}

func isSQLiteMemory(address string) bool {
	return address == "" ||
		strings.HasPrefix(address, ":memory:") ||
		strings.HasPrefix(address, "file::memory:") ||
		strings.Contains(address, "mode=memory")
}

func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on&_busy_timeout=10000"
}

func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// withTx runs fn in a transaction that is rolled back unless fn succeeds.
func (db *DB) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	committed = true

	return nil
}

// Tasks

func (db *DB) ListTasksWithInfo(ctx context.Context) ([]core.TaskInfo, error) {
	const q = `
		SELECT t.id, t.name, c.name AS category, t.date_time, p.level AS priority
		FROM tasks t
		JOIN category c ON t.category_id = c.id
		JOIN priority p ON t.priority_id = p.id
		ORDER BY t.id
	`

	out := []core.TaskInfo{}
	if err := db.conn.SelectContext(ctx, &out, q); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return out, nil
}

func (db *DB) GetTask(ctx context.Context, id int64) (core.Task, error) {
	q := db.conn.Rebind(`SELECT id, name, category_id, priority_id, date_time FROM tasks WHERE id = ?`)

	var t core.Task
	if err := db.conn.GetContext(ctx, &t, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Task{}, core.ErrTaskNotFound
		}
		return core.Task{}, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

// CreateTask inserts the task, creating its category first if the name is
// new. The priority must already exist.
func (db *DB) CreateTask(ctx context.Context, in core.TaskInput) (core.Task, error) {
	t := core.Task{Name: in.Name, DateTime: in.DateTime}

	err := db.withTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		if t.CategoryID, err = upsertCategory(ctx, tx, in.Category); err != nil {
			return err
		}
		if t.PriorityID, err = priorityID(ctx, tx, in.Priority); err != nil {
			return err
		}

		q := tx.Rebind(`
			INSERT INTO tasks(name, category_id, date_time, priority_id)
			VALUES (?, ?, ?, ?)
			RETURNING id
		`)
		if err := tx.QueryRowxContext(ctx, q, t.Name, t.CategoryID, t.DateTime, t.PriorityID).Scan(&t.ID); err != nil {
			if isForeignKeyViolation(err) {
				return core.ErrCategoryNotFound
			}
			return fmt.Errorf("insert task: %w", err)
		}
		return nil
	})
	if err != nil {
		return core.Task{}, err
	}

	db.log.Debug("task created", "id", t.ID, "category_id", t.CategoryID)
	return t, nil
}

// UpdateTask overwrites all fields of the task. Category and priority are
// looked up, never created.
func (db *DB) UpdateTask(ctx context.Context, id int64, in core.TaskInput) (core.Task, error) {
	t := core.Task{ID: id, Name: in.Name, DateTime: in.DateTime}

	err := db.withTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		if t.CategoryID, err = categoryID(ctx, tx, in.Category); err != nil {
			return err
		}
		if t.PriorityID, err = priorityID(ctx, tx, in.Priority); err != nil {
			return err
		}

		q := tx.Rebind(`
			UPDATE tasks
			SET name = ?, category_id = ?, date_time = ?, priority_id = ?
			WHERE id = ?
		`)
		res, err := tx.ExecContext(ctx, q, t.Name, t.CategoryID, t.DateTime, t.PriorityID, t.ID)
		if err != nil {
			if isForeignKeyViolation(err) {
				return core.ErrCategoryNotFound
			}
			return fmt.Errorf("update task: %w", err)
		}
		aff, _ := res.RowsAffected()
		if aff == 0 {
			return core.ErrTaskNotFound
		}
		return nil
	})
	if err != nil {
		return core.Task{}, err
	}
	return t, nil
}

func (db *DB) DeleteTask(ctx context.Context, id int64) error {
	q := db.conn.Rebind(`DELETE FROM tasks WHERE id = ?`)

	res, err := db.conn.ExecContext(ctx, q, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return core.ErrTaskNotFound
	}
	return nil
}

// Categories

func (db *DB) ListCategories(ctx context.Context) ([]core.Category, error) {
	const q = `SELECT id, name FROM category ORDER BY id`

	out := []core.Category{}
	if err := db.conn.SelectContext(ctx, &out, q); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return out, nil
}

// AddCategory reports whether a new row was inserted.
func (db *DB) AddCategory(ctx context.Context, name string) (bool, error) {
	q := db.conn.Rebind(`INSERT INTO category(name) VALUES (?) ON CONFLICT (name) DO NOTHING`)

	res, err := db.conn.ExecContext(ctx, q, name)
	if err != nil {
		return false, fmt.Errorf("insert category: %w", err)
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

// DeleteCategory refuses to remove a category that tasks still point at.
func (db *DB) DeleteCategory(ctx context.Context, name string) error {
	return db.withTx(ctx, func(tx *sqlx.Tx) error {
		id, err := categoryID(ctx, tx, name)
		if err != nil {
			return err
		}

		var refs int
		if err := tx.GetContext(ctx, &refs, tx.Rebind(`SELECT COUNT(*) FROM tasks WHERE category_id = ?`), id); err != nil {
			return fmt.Errorf("count category tasks: %w", err)
		}
		if refs > 0 {
			return core.ErrCategoryInUse
		}

		if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM category WHERE id = ?`), id); err != nil {
			if isForeignKeyViolation(err) {
				return core.ErrCategoryInUse
			}
			return fmt.Errorf("delete category: %w", err)
		}
		return nil
	})
}

// Priorities

func (db *DB) ListPriorities(ctx context.Context) ([]core.Priority, error) {
	const q = `SELECT id, level FROM priority ORDER BY id`

	out := []core.Priority{}
	if err := db.conn.SelectContext(ctx, &out, q); err != nil {
		return nil, fmt.Errorf("list priorities: %w", err)
	}
	return out, nil
}

// tx helpers

// upsertCategory returns the id of the named category, inserting it if
// needed. The unique constraint on name makes this safe under concurrency.
func upsertCategory(ctx context.Context, tx *sqlx.Tx, name string) (int64, error) {
	q := tx.Rebind(`INSERT INTO category(name) VALUES (?) ON CONFLICT (name) DO NOTHING`)
	if _, err := tx.ExecContext(ctx, q, name); err != nil {
		return 0, fmt.Errorf("upsert category: %w", err)
	}
	return categoryID(ctx, tx, name)
}

func categoryID(ctx context.Context, tx *sqlx.Tx, name string) (int64, error) {
	var id int64
	if err := tx.GetContext(ctx, &id, tx.Rebind(`SELECT id FROM category WHERE name = ?`), name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, core.ErrCategoryNotFound
		}
		return 0, fmt.Errorf("get category: %w", err)
	}
	return id, nil
}

func priorityID(ctx context.Context, tx *sqlx.Tx, level string) (int64, error) {
	var id int64
	if err := tx.GetContext(ctx, &id, tx.Rebind(`SELECT id FROM priority WHERE level = ?`), level); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, core.ErrPriorityNotFound
		}
		return 0, fmt.Errorf("get priority: %w", err)
	}
	return id, nil
}
