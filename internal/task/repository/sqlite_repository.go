package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/AlibekovAA/task-manager/internal/common/db"
	"github.com/AlibekovAA/task-manager/internal/task/domain"
	userdomain "github.com/AlibekovAA/task-manager/internal/user/domain"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(sqlDB *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: sqlDB}
}

const sqliteTaskColumns = `id, title, description, status, user_id, created_at`

func (r *SQLiteRepository) List(ctx context.Context, filter domain.Filter, userID userdomain.ID) ([]domain.Task, error) {
	start := time.Now()

	conds := []string{"user_id = ?"}
	args := []interface{}{string(userID)}
	if filter.Status != nil {
		conds = append(conds, "status = ?")
		args = append(args, string(*filter.Status))
	}
	if filter.Search != "" {
		pattern := strings.ToLower(db.LikePattern(filter.Search))
		conds = append(conds, `(`+db.SQLiteFoldFunc+`(title) LIKE ? ESCAPE '\' OR `+db.SQLiteFoldFunc+`(description) LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern)
	}

	rows, err := r.db.QueryContext(
		ctx,
		`SELECT `+sqliteTaskColumns+` FROM tasks WHERE `+strings.Join(conds, " AND ")+` ORDER BY rowid ASC`,
		args...,
	)
	if err != nil {
		return nil, db.HandleQueryError(err, nil, db.DriverSQLite, "list tasks", start)
	}
	defer rows.Close()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		t, err := scanSQLiteTask(rows)
		if err != nil {
			return nil, db.HandleQueryError(err, nil, db.DriverSQLite, "scan task", start)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, db.HandleQueryError(err, nil, db.DriverSQLite, "iterate tasks", start)
	}

	db.MeasureQueryDuration(db.DriverSQLite, "list tasks", start)
	return tasks, nil
}

func (r *SQLiteRepository) FindByID(ctx context.Context, id domain.ID, userID userdomain.ID) (domain.Task, error) {
	start := time.Now()
	row := r.db.QueryRowContext(
		ctx,
		`SELECT `+sqliteTaskColumns+` FROM tasks WHERE id = ? AND user_id = ?`,
		string(id),
		string(userID),
	)

	t, err := scanSQLiteTask(row)
	if err := db.HandleQueryError(err, ErrTaskNotFound, db.DriverSQLite, "find task by id", start); err != nil {
		return domain.Task{}, err
	}
	return t, nil
}

func (r *SQLiteRepository) Create(ctx context.Context, task domain.Task) error {
	start := time.Now()
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO tasks (id, title, description, status, user_id, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		string(task.ID),
		task.Title,
		task.Description,
		string(task.Status),
		string(task.UserID),
		createdAtOrNow(task.CreatedAt).UnixNano(),
	)
	return db.HandleExecError(err, db.DriverSQLite, "create task", start)
}

func (r *SQLiteRepository) UpdateStatus(ctx context.Context, id domain.ID, status domain.Status, userID userdomain.ID) error {
	start := time.Now()
	res, err := r.db.ExecContext(
		ctx,
		`UPDATE tasks SET status = ? WHERE id = ? AND user_id = ?`,
		string(status),
		string(id),
		string(userID),
	)
	if err := db.HandleExecError(err, db.DriverSQLite, "update task status", start); err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return db.HandleExecError(err, db.DriverSQLite, "update task status", start)
	}
	if affected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id domain.ID, userID userdomain.ID) (int64, error) {
	start := time.Now()
	res, err := r.db.ExecContext(
		ctx,
		`DELETE FROM tasks WHERE id = ? AND user_id = ?`,
		string(id),
		string(userID),
	)
	if err := db.HandleExecError(err, db.DriverSQLite, "delete task", start); err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, db.HandleExecError(err, db.DriverSQLite, "delete task", start)
	}
	return affected, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSQLiteTask(row rowScanner) (domain.Task, error) {
	var (
		t         domain.Task
		createdAt int64
	)
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.UserID, &createdAt); err != nil {
		return domain.Task{}, err
	}
	t.CreatedAt = time.Unix(0, createdAt).UTC()
	return t, nil
}
