package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/birdquest/birdquest/models"
)

// AuditRepository handles the append-only request log: methods and endpoints
// are deduplicated rows, requests are appended once per gated call.
type AuditRepository interface {
	// GetOrCreateMethod returns the row ID for the HTTP method, inserting it
	// if absent. Idempotent under concurrency.
	GetOrCreateMethod(ctx context.Context, method string) (int, error)
	// GetOrCreateEndpoint returns the row ID for (method, path), inserting it
	// if absent. Idempotent under concurrency.
	GetOrCreateEndpoint(ctx context.Context, methodID int, path string) (int, error)
	LogRequest(ctx context.Context, endpointID, userID int) error
	GetAPIStats(ctx context.Context) ([]models.APIStat, error)
	GetUserConsumption(ctx context.Context) ([]models.UserConsumption, error)
}

// auditRepository implements AuditRepository interface
type auditRepository struct {
	db *sql.DB
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *sql.DB) AuditRepository {
	return &auditRepository{db: db}
}

// GetOrCreateMethod inserts the method if absent, then fetches its ID. The
// UNIQUE constraint makes the insert a no-op when another request won the
// race.
func (r *auditRepository) GetOrCreateMethod(ctx context.Context, method string) (int, error) {
	insert := `
		INSERT INTO methods (method) VALUES (?)
		ON CONFLICT (method) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, insert, method); err != nil {
		return 0, fmt.Errorf("failed to insert method: %w", err)
	}

	var id int
	err := r.db.QueryRowContext(ctx,
		`SELECT method_id FROM methods WHERE method = ?`, method).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to get method: %w", err)
	}

	return id, nil
}

// GetOrCreateEndpoint inserts the (method, path) pair if absent, then fetches
// its ID
func (r *auditRepository) GetOrCreateEndpoint(ctx context.Context, methodID int, path string) (int, error) {
	insert := `
		INSERT INTO endpoints (method_id, endpoint) VALUES (?, ?)
		ON CONFLICT (method_id, endpoint) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, insert, methodID, path); err != nil {
		return 0, fmt.Errorf("failed to insert endpoint: %w", err)
	}

	var id int
	err := r.db.QueryRowContext(ctx,
		`SELECT endpoint_id FROM endpoints WHERE method_id = ? AND endpoint = ?`,
		methodID, path).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to get endpoint: %w", err)
	}

	return id, nil
}

// LogRequest appends one request row for the resolved user
func (r *auditRepository) LogRequest(ctx context.Context, endpointID, userID int) error {
	query := `
		INSERT INTO requests (endpoint_id, user_id)
		VALUES (?, ?)
	`

	_, err := r.db.ExecContext(ctx, query, endpointID, userID)
	if err != nil {
		return fmt.Errorf("failed to log request: %w", err)
	}

	return nil
}

// GetAPIStats aggregates request counts per method and endpoint
func (r *auditRepository) GetAPIStats(ctx context.Context) ([]models.APIStat, error) {
	query := `
		SELECT m.method, e.endpoint, COUNT(req.request_id)
		FROM methods m
		INNER JOIN endpoints e ON m.method_id = e.method_id
		LEFT JOIN requests req ON e.endpoint_id = req.endpoint_id
		GROUP BY m.method_id, m.method, e.endpoint_id, e.endpoint
		ORDER BY COUNT(req.request_id) DESC, m.method, e.endpoint
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query api stats: %w", err)
	}
	defer rows.Close()

	var stats []models.APIStat
	for rows.Next() {
		var stat models.APIStat
		if err := rows.Scan(&stat.Method, &stat.Endpoint, &stat.Requests); err != nil {
			return nil, fmt.Errorf("failed to scan api stat: %w", err)
		}
		stats = append(stats, stat)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating api stats: %w", err)
	}

	return stats, nil
}

// GetUserConsumption aggregates audited request counts per user
func (r *auditRepository) GetUserConsumption(ctx context.Context) ([]models.UserConsumption, error) {
	query := `
		SELECT u.name, u.email, COUNT(req.request_id)
		FROM users u
		LEFT JOIN requests req ON u.user_id = req.user_id
		GROUP BY u.user_id, u.name, u.email
		ORDER BY COUNT(req.request_id) DESC, u.name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query user consumption: %w", err)
	}
	defer rows.Close()

	var consumption []models.UserConsumption
	for rows.Next() {
		var row models.UserConsumption
		if err := rows.Scan(&row.Name, &row.Email, &row.Requests); err != nil {
			return nil, fmt.Errorf("failed to scan user consumption: %w", err)
		}
		consumption = append(consumption, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user consumption: %w", err)
	}

	return consumption, nil
}
