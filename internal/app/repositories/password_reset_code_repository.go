package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eduflow/eduflow/internal/app/models"
	"github.com/eduflow/eduflow/internal/db"
	"github.com/eduflow/eduflow/internal/pkg/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// passwordResetCodeRepository is the pgx-backed PasswordResetCodeRepository.
// Codes live in their own table so in-flight resets survive restarts.
type passwordResetCodeRepository struct {
	db *pgxpool.Pool
}

// NewPasswordResetCodeRepository creates a new password reset code repository
func NewPasswordResetCodeRepository(db *pgxpool.Pool) PasswordResetCodeRepository {
	return &passwordResetCodeRepository{
		db: db,
	}
}

// Upsert stores a code for an email, overwriting any previous code. Only the
// newest code for an email is ever valid.
func (r *passwordResetCodeRepository) Upsert(ctx context.Context, email, code string, expiresAt time.Time) error {
	query := `
		INSERT INTO password_reset_codes (email, code, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET code = EXCLUDED.code, expires_at = EXCLUDED.expires_at
	`

	_, err := r.db.Exec(ctx, query, email, code, expiresAt)
	if err != nil {
		return fmt.Errorf("error storing password reset code: %w", err)
	}

	return nil
}

// Get retrieves the active code for an email
func (r *passwordResetCodeRepository) Get(ctx context.Context, email string) (*models.PasswordResetCode, error) {
	query := `
		SELECT email, code, expires_at
		FROM password_reset_codes
		WHERE email = $1
	`

	var rec models.PasswordResetCode
	err := r.db.QueryRow(ctx, query, email).Scan(&rec.Email, &rec.Code, &rec.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResetCodeNotFound
		}
		return nil, fmt.Errorf("error retrieving password reset code: %w", err)
	}

	return &rec, nil
}

// Delete removes the code for an email
func (r *passwordResetCodeRepository) Delete(ctx context.Context, email string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM password_reset_codes WHERE email = $1`, email)
	if err != nil {
		return fmt.Errorf("error deleting password reset code: %w", err)
	}

	return nil
}

// ConsumeWithPasswordUpdate sets the user's password hash and deletes the
// reset code in a single transaction, so a partially applied reset can never
// leave a reusable code behind.
func (r *passwordResetCodeRepository) ConsumeWithPasswordUpdate(ctx context.Context, email, passwordHash string) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		cmdTag, err := tx.Exec(ctx, `
			UPDATE users
			SET password = $1, updated_at = NOW()
			WHERE email = $2
		`, passwordHash, email)
		if err != nil {
			return fmt.Errorf("error updating password: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrUserNotFound
		}

		if _, err := tx.Exec(ctx, `DELETE FROM password_reset_codes WHERE email = $1`, email); err != nil {
			return fmt.Errorf("error deleting password reset code: %w", err)
		}

		return nil
	})
}
