package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/AlibekovAA/task-manager/internal/common/db"
	"github.com/AlibekovAA/task-manager/internal/task/domain"
	userdomain "github.com/AlibekovAA/task-manager/internal/user/domain"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) List(ctx context.Context, filter domain.Filter, userID userdomain.ID) ([]domain.Task, error) {
	start := time.Now()

	conds := []string{"user_id = $1"}
	args := []interface{}{string(userID)}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, db.LikePattern(filter.Search))
		conds = append(conds, fmt.Sprintf(`(title ILIKE $%[1]d ESCAPE '\' OR description ILIKE $%[1]d ESCAPE '\')`, len(args)))
	}

	rows, err := r.pool.Query(
		ctx,
		`SELECT id, title, description, status, user_id, created_at
		 FROM tasks
		 WHERE `+strings.Join(conds, " AND ")+`
		 ORDER BY created_at ASC, id ASC`,
		args...,
	)
	if err != nil {
		return nil, db.HandleQueryError(err, nil, db.DriverPostgres, "list tasks", start)
	}
	defer rows.Close()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.UserID, &t.CreatedAt); err != nil {
			return nil, db.HandleQueryError(err, nil, db.DriverPostgres, "scan task", start)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, db.HandleQueryError(err, nil, db.DriverPostgres, "iterate tasks", start)
	}

	db.MeasureQueryDuration(db.DriverPostgres, "list tasks", start)
	return tasks, nil
}

func (r *PgRepository) FindByID(ctx context.Context, id domain.ID, userID userdomain.ID) (domain.Task, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`SELECT id, title, description, status, user_id, created_at
		 FROM tasks
		 WHERE id = $1 AND user_id = $2`,
		string(id),
		string(userID),
	)

	var t domain.Task
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.UserID, &t.CreatedAt)
	if err := db.HandleQueryError(err, ErrTaskNotFound, db.DriverPostgres, "find task by id", start); err != nil {
		return domain.Task{}, err
	}
	return t, nil
}

func (r *PgRepository) Create(ctx context.Context, task domain.Task) error {
	start := time.Now()
	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO tasks (id, title, description, status, user_id, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		string(task.ID),
		task.Title,
		task.Description,
		string(task.Status),
		string(task.UserID),
		createdAtOrNow(task.CreatedAt),
	)
	return db.HandleExecError(err, db.DriverPostgres, "create task", start)
}

func (r *PgRepository) UpdateStatus(ctx context.Context, id domain.ID, status domain.Status, userID userdomain.ID) error {
	start := time.Now()
	tag, err := r.pool.Exec(
		ctx,
		`UPDATE tasks SET status = $1 WHERE id = $2 AND user_id = $3`,
		string(status),
		string(id),
		string(userID),
	)
	if err := db.HandleExecError(err, db.DriverPostgres, "update task status", start); err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (r *PgRepository) Delete(ctx context.Context, id domain.ID, userID userdomain.ID) (int64, error) {
	start := time.Now()
	tag, err := r.pool.Exec(
		ctx,
		`DELETE FROM tasks WHERE id = $1 AND user_id = $2`,
		string(id),
		string(userID),
	)
	if err := db.HandleExecError(err, db.DriverPostgres, "delete task", start); err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func createdAtOrNow(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t.UTC()
}
