package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type pgRepository struct {
	pool *pgxpool.Pool
}

// NewPgRepository returns a Repository backed by PostgreSQL.
func NewPgRepository(pool *pgxpool.Pool) Repository {
	return &pgRepository{pool: pool}
}

const userColumns = `user_id, username, password, user_name, role, phone, status, create_time, update_time`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.UserID, &u.Username, &u.Password, &u.DisplayName,
		&u.Role, &u.Phone, &u.Status, &u.CreateTime, &u.UpdateTime)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *pgRepository) List(ctx context.Context) ([]*User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+userColumns+` FROM sys_user ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *pgRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM sys_user WHERE user_id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return u, nil
}

func (r *pgRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM sys_user WHERE username = $1`, username))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return u, nil
}

func (r *pgRepository) GetByRole(ctx context.Context, role string) ([]*User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+userColumns+` FROM sys_user WHERE role = $1 ORDER BY user_id`, role)
	if err != nil {
		return nil, fmt.Errorf("list users by role: %w", err)
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *pgRepository) Insert(ctx context.Context, u *User) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`INSERT INTO sys_user (username, password, user_name, role, phone, status)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		u.Username, u.Password, u.DisplayName, u.Role, u.Phone, u.Status)
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Update only touches columns whose incoming value is non-empty, so a
// caller can send a partial record without wiping the rest.
func (r *pgRepository) Update(ctx context.Context, u *User) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE sys_user SET
		   username  = COALESCE(NULLIF($2, ''), username),
		   password  = COALESCE(NULLIF($3, ''), password),
		   user_name = COALESCE(NULLIF($4, ''), user_name),
		   role      = COALESCE(NULLIF($5, ''), role),
		   phone     = COALESCE(NULLIF($6, ''), phone),
		   status    = COALESCE($7, status),
		   update_time = now()
		 WHERE user_id = $1`,
		u.UserID, u.Username, u.Password, u.DisplayName, u.Role, u.Phone, u.Status)
	if err != nil {
		return 0, fmt.Errorf("update user %d: %w", u.UserID, err)
	}
	return tag.RowsAffected(), nil
}

func (r *pgRepository) UpdateStatus(ctx context.Context, id int64, status int) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE sys_user SET status = $2, update_time = now() WHERE user_id = $1`,
		id, status)
	if err != nil {
		return 0, fmt.Errorf("update user %d status: %w", id, err)
	}
	return tag.RowsAffected(), nil
}

func (r *pgRepository) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sys_user WHERE user_id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete user %d: %w", id, err)
	}
	return tag.RowsAffected(), nil
}
