package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/birdquest/birdquest/models"
)

// UserRepository interface defines user database operations consumed by the
// discovery workflow and the account endpoints.
type UserRepository interface {
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// ConsumeQuota atomically increments api_consumption by one unless the
	// user is already at the limit. Returns ErrQuotaExceeded without mutation
	// when the quota is spent.
	ConsumeQuota(ctx context.Context, id int, limit int) error
	// AddScore atomically adds points to the user's score and returns the new
	// total.
	AddScore(ctx context.Context, id int, points int) (int, error)
	SetProfileImage(ctx context.Context, id int, imgID int) error
	GetAll(ctx context.Context) ([]models.UserListing, error)
}

// userRepository implements UserRepository interface
type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `user_id, email, name, password, user_type_id, img_id,
	       api_consumption, score, created_at, updated_at`

// GetByID retrieves a user by ID
func (r *userRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE user_id = ?
	`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

// GetByEmail retrieves a user by email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = ?
	`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *userRepository) scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	var imgID sql.NullInt64
	var updatedAt sql.NullTime

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.PasswordHash,
		&user.UserTypeID,
		&imgID,
		&user.APIConsumption,
		&user.Score,
		&user.CreatedAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if imgID.Valid {
		id := int(imgID.Int64)
		user.ImageID = &id
	}
	if updatedAt.Valid {
		user.UpdatedAt = &updatedAt.Time
	}

	return &user, nil
}

// ConsumeQuota performs the check-then-increment as one conditional UPDATE so
// two concurrent requests can never both pass a stale check.
func (r *userRepository) ConsumeQuota(ctx context.Context, id int, limit int) error {
	query := `
		UPDATE users
		SET api_consumption = api_consumption + 1
		WHERE user_id = ? AND api_consumption < ?
	`

	result, err := r.db.ExecContext(ctx, query, id, limit)
	if err != nil {
		return fmt.Errorf("failed to consume quota: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		// Either the user is gone or the limit is reached.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrQuotaExceeded
	}

	return nil
}

// AddScore adds points in place and reads back the new total inside one
// transaction. The in-place UPDATE makes concurrent first-time discoveries of
// different birds serialize at the row instead of losing updates.
func (r *userRepository) AddScore(ctx context.Context, id int, points int) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE users SET score = score + ? WHERE user_id = ?`, points, id)
	if err != nil {
		return 0, fmt.Errorf("failed to update score: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return 0, ErrUserNotFound
	}

	var score int
	err = tx.QueryRowContext(ctx,
		`SELECT score FROM users WHERE user_id = ?`, id).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("failed to read back score: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit score update: %w", err)
	}

	return score, nil
}

// SetProfileImage links an image row to the user's profile
func (r *userRepository) SetProfileImage(ctx context.Context, id int, imgID int) error {
	query := `
		UPDATE users
		SET img_id = ?, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = ?
	`

	result, err := r.db.ExecContext(ctx, query, imgID, id)
	if err != nil {
		return fmt.Errorf("failed to set profile image: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// GetAll retrieves every account joined with its user type, for the admin
// listing screen
func (r *userRepository) GetAll(ctx context.Context) ([]models.UserListing, error) {
	query := `
		SELECT u.user_id, u.email, u.name, ut.user_type, u.created_at
		FROM users u
		INNER JOIN user_types ut ON u.user_type_id = ut.user_type_id
		ORDER BY u.user_id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []models.UserListing
	for rows.Next() {
		var user models.UserListing
		if err := rows.Scan(&user.ID, &user.Email, &user.Name, &user.UserType, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}
