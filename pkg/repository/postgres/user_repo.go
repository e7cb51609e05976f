package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/user-management/pkg/user"
)

// UserRepository implements user.UserRepository backed by PostgreSQL (pgx).
// Phones live in a child table with ON DELETE CASCADE, so a phone's lifetime
// is contained within its owner's.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) (*UserRepository, error) {
	repo := &UserRepository{pool: pool}
	if err := repo.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *UserRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			name TEXT,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			last_login TIMESTAMPTZ NOT NULL,
			token TEXT,
			is_active BOOLEAN NOT NULL DEFAULT TRUE
		);
		CREATE TABLE IF NOT EXISTS phones (
			id BIGSERIAL PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			phone_number BIGINT NOT NULL,
			city_code INT NOT NULL,
			country_code TEXT NOT NULL
		);
	`)
	return err
}

// Save upserts the user row and rewrites its phones in a single transaction.
// A unique violation on email comes back as user.ErrUserAlreadyExists.
func (r *UserRepository) Save(ctx context.Context, u user.User) (user.User, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return user.User{}, err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO users (id, name, email, password_hash, created_at, last_login, token, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			password_hash = EXCLUDED.password_hash,
			last_login = EXCLUDED.last_login,
			token = EXCLUDED.token,
			is_active = EXCLUDED.is_active
	`, u.ID, u.Name, u.Email, u.PasswordHash, u.Created, u.LastLogin, u.Token, u.IsActive)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return user.User{}, user.AlreadyExistsError(u.Email)
		}
		return user.User{}, err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM phones WHERE user_id = $1`, u.ID); err != nil {
		return user.User{}, err
	}
	for _, p := range u.Phones {
		_, err := tx.Exec(ctx, `
			INSERT INTO phones (user_id, phone_number, city_code, country_code)
			VALUES ($1, $2, $3, $4)
		`, u.ID, p.Number, p.CityCode, p.CountryCode)
		if err != nil {
			return user.User{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return user.User{}, err
	}
	return u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (user.User, error) {
	return r.findOne(ctx, `
		SELECT id, name, email, password_hash, created_at, last_login, token, is_active
		FROM users WHERE email = $1
	`, email)
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	return r.findOne(ctx, `
		SELECT id, name, email, password_hash, created_at, last_login, token, is_active
		FROM users WHERE id = $1
	`, id)
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (user.User, error) {
	row := r.pool.QueryRow(ctx, query, arg)

	var u user.User
	var name, token *string
	if err := row.Scan(&u.ID, &name, &u.Email, &u.PasswordHash, &u.Created, &u.LastLogin, &token, &u.IsActive); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	if name != nil {
		u.Name = *name
	}
	if token != nil {
		u.Token = *token
	}
	u.Created = u.Created.UTC()
	u.LastLogin = u.LastLogin.UTC()

	phones, err := r.phonesFor(ctx, u.ID)
	if err != nil {
		return user.User{}, err
	}
	u.Phones = phones
	return u, nil
}

func (r *UserRepository) phonesFor(ctx context.Context, userID uuid.UUID) ([]user.Phone, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT phone_number, city_code, country_code
		FROM phones WHERE user_id = $1 ORDER BY id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var phones []user.Phone
	for rows.Next() {
		var p user.Phone
		if err := rows.Scan(&p.Number, &p.CityCode, &p.CountryCode); err != nil {
			return nil, err
		}
		phones = append(phones, p)
	}
	return phones, rows.Err()
}
