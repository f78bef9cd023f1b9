package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/AlibekovAA/task-manager/internal/common/db"
	"github.com/AlibekovAA/task-manager/internal/user/domain"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Create(ctx context.Context, user domain.User) error {
	start := time.Now()
	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO users (id, username, password_hash, salt, created_at) VALUES ($1, $2, $3, $4, $5)`,
		string(user.ID),
		user.Username,
		user.PasswordHash,
		user.Salt,
		createdAtOrNow(user.CreatedAt),
	)
	if db.IsUniqueViolation(err) {
		db.MeasureQueryDuration(db.DriverPostgres, "create user", start)
		return ErrUsernameAlreadyExists
	}
	return db.HandleExecError(err, db.DriverPostgres, "create user", start)
}

func (r *PgRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`SELECT id, username, password_hash, salt, created_at FROM users WHERE username = $1`,
		username,
	)

	var user domain.User
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Salt, &user.CreatedAt)
	if err := db.HandleQueryError(err, ErrUserNotFound, db.DriverPostgres, "find user by username", start); err != nil {
		return domain.User{}, err
	}

	return user, nil
}

func createdAtOrNow(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t.UTC()
}
