package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/AlibekovAA/task-manager/internal/common/db"
	"github.com/AlibekovAA/task-manager/internal/user/domain"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(sqlDB *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: sqlDB}
}

func (r *SQLiteRepository) Create(ctx context.Context, user domain.User) error {
	start := time.Now()
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO users (id, username, password_hash, salt, created_at) VALUES (?, ?, ?, ?, ?)`,
		string(user.ID),
		user.Username,
		user.PasswordHash,
		user.Salt,
		createdAtOrNow(user.CreatedAt).UnixNano(),
	)
	if db.IsUniqueViolation(err) {
		db.MeasureQueryDuration(db.DriverSQLite, "create user", start)
		return ErrUsernameAlreadyExists
	}
	return db.HandleExecError(err, db.DriverSQLite, "create user", start)
}

func (r *SQLiteRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	start := time.Now()
	row := r.db.QueryRowContext(
		ctx,
		`SELECT id, username, password_hash, salt, created_at FROM users WHERE username = ?`,
		username,
	)

	var (
		user      domain.User
		createdAt int64
	)
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Salt, &createdAt)
	if err := db.HandleQueryError(err, ErrUserNotFound, db.DriverSQLite, "find user by username", start); err != nil {
		return domain.User{}, err
	}
	user.CreatedAt = time.Unix(0, createdAt).UTC()

	return user, nil
}
