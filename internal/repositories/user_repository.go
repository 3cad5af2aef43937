package repositories

import (
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/CsnCaio/SROA-challenge/internal/models"
)

// ErrDuplicateEmail сигнализирует нарушение уникальности users.email (23505).
var ErrDuplicateEmail = errors.New("duplicate email")

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Exists(email string) (bool, error)
	List(limit, offset int) ([]*models.User, error)
	GetCount() (int, error)

	// точечные атомарные апдейты
	UpdateFailLoginAttempts(id string, attempts int) error
	UpdateSessionToken(id string, token string) error
	SetResetToken(id string, token string, expiresAt time.Time) error
	UpdatePassword(id string, passwordHash string) error
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) Create(user *models.User) error {
	const q = `
		INSERT INTO users (
			id, email, name, dob, role, password_hash,
			fail_login_attempts, session_token,
			password_reset_token, password_reset_token_expires,
			created_at, updated_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,0,NULL,NULL,NULL,$7,$8)
	`
	_, err := r.DB.Exec(q,
		user.ID,
		user.Email,
		user.Name,
		user.DOB,
		user.Role,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

const userColumns = `
	id, email, name, COALESCE(dob,''), role, password_hash,
	fail_login_attempts, session_token,
	password_reset_token, password_reset_token_expires,
	created_at, updated_at
`

func scanUser(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	var (
		st  sql.NullString
		prt sql.NullString
		pre sql.NullTime
	)
	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.DOB, &u.Role, &u.PasswordHash,
		&u.FailLoginAttempts, &st,
		&prt, &pre,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if st.Valid {
		s := st.String
		u.SessionToken = &s
	}
	if prt.Valid {
		s := prt.String
		u.PasswordResetToken = &s
	}
	if pre.Valid {
		t := pre.Time
		u.PasswordResetTokenExpires = &t
	}
	return u, nil
}

func (r *userRepository) GetByID(id string) (*models.User, error) {
	return scanUser(r.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	return scanUser(r.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *userRepository) Exists(email string) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	return exists, err
}

func (r *userRepository) List(limit, offset int) ([]*models.User, error) {
	const q = `
		SELECT
			id, email, name, COALESCE(dob,''), role,
			fail_login_attempts, created_at, updated_at
		FROM users
		ORDER BY created_at
		LIMIT $1 OFFSET $2
	`
	rows, err := r.DB.Query(q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*models.User
	for rows.Next() {
		u := &models.User{}
		if err := rows.Scan(
			&u.ID, &u.Email, &u.Name, &u.DOB, &u.Role,
			&u.FailLoginAttempts, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, err
		}
		res = append(res, u)
	}
	return res, rows.Err()
}

func (r *userRepository) GetCount() (int, error) {
	var c int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&c)
	return c, err
}

// ===== точечные апдейты =====

func (r *userRepository) UpdateFailLoginAttempts(id string, attempts int) error {
	_, err := r.DB.Exec(`
		UPDATE users
		SET fail_login_attempts=$1, updated_at=NOW()
		WHERE id=$2
	`, attempts, id)
	return err
}

func (r *userRepository) UpdateSessionToken(id string, token string) error {
	_, err := r.DB.Exec(`
		UPDATE users
		SET session_token=$1, updated_at=NOW()
		WHERE id=$2
	`, token, id)
	return err
}

func (r *userRepository) SetResetToken(id string, token string, expiresAt time.Time) error {
	_, err := r.DB.Exec(`
		UPDATE users
		SET password_reset_token=$1, password_reset_token_expires=$2, updated_at=NOW()
		WHERE id=$3
	`, token, expiresAt, id)
	return err
}

// UpdatePassword заменяет хеш, гасит reset-токен и сбрасывает счётчик —
// единственный выход из блокировки.
func (r *userRepository) UpdatePassword(id string, passwordHash string) error {
	_, err := r.DB.Exec(`
		UPDATE users
		SET password_hash=$1,
		    password_reset_token=NULL,
		    password_reset_token_expires=NULL,
		    fail_login_attempts=0,
		    updated_at=NOW()
		WHERE id=$2
	`, passwordHash, id)
	return err
}
