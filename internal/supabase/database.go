package supabase

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"smeta-backend/internal/models"
)

type DatabaseClient struct {
	db *sql.DB
}

func NewDatabaseClient(connectionString string) (*DatabaseClient, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

func (d *DatabaseClient) Close() error {
	return d.db.Close()
}

// --- Company profile ---

func (d *DatabaseClient) GetProfile(userID uuid.UUID) (*models.CompanyProfile, error) {
	var profile models.CompanyProfile
	var logoURL sql.NullString
	err := d.db.QueryRow(`
		SELECT user_id, name, details, logo_url, updated_at
		FROM company_profiles
		WHERE user_id = $1
	`, userID).Scan(&profile.UserID, &profile.Name, &profile.Details, &logoURL, &profile.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	profile.LogoURL = logoURL.String

	return &profile, nil
}

func (d *DatabaseClient) UpsertProfile(userID uuid.UUID, name, details, logoURL string) (*models.CompanyProfile, error) {
	var profile models.CompanyProfile
	var logo sql.NullString
	err := d.db.QueryRow(`
		INSERT INTO company_profiles (user_id, name, details, logo_url)
		VALUES ($1, $2, $3, NULLIF($4, ''))
		ON CONFLICT (user_id) DO UPDATE
		SET name = EXCLUDED.name, details = EXCLUDED.details, logo_url = EXCLUDED.logo_url, updated_at = NOW()
		RETURNING user_id, name, details, logo_url, updated_at
	`, userID, name, details, logoURL).Scan(&profile.UserID, &profile.Name, &profile.Details, &logo, &profile.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert profile: %w", err)
	}
	profile.LogoURL = logo.String

	return &profile, nil
}

// --- Estimates ---

func scanEstimate(row interface{ Scan(...interface{}) error }) (*models.Estimate, error) {
	var e models.Estimate
	var itemsJSON []byte
	err := row.Scan(
		&e.ID, &e.UserID, &e.ProjectID, &e.Number, &e.Date, &e.Status,
		&e.ClientInfo, &itemsJSON, &e.Discount, &e.DiscountType, &e.Tax,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(itemsJSON, &e.Items); err != nil {
		return nil, fmt.Errorf("failed to decode items: %w", err)
	}
	return &e, nil
}

func (d *DatabaseClient) CreateEstimate(e *models.Estimate) (*models.Estimate, error) {
	itemsJSON, err := json.Marshal(e.Items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode items: %w", err)
	}

	created, err := scanEstimate(d.db.QueryRow(`
		INSERT INTO estimates (id, user_id, project_id, number, date, status, client_info, items, discount, discount_type, tax)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, user_id, project_id, number, date, status, client_info, items, discount, discount_type, tax, created_at, updated_at
	`, e.ID, e.UserID, e.ProjectID, e.Number, e.Date, e.Status, e.ClientInfo, itemsJSON, e.Discount, e.DiscountType, e.Tax))
	if err != nil {
		return nil, fmt.Errorf("failed to create estimate: %w", err)
	}

	return created, nil
}

func (d *DatabaseClient) GetEstimate(estimateID, userID uuid.UUID) (*models.Estimate, error) {
	e, err := scanEstimate(d.db.QueryRow(`
		SELECT id, user_id, project_id, number, date, status, client_info, items, discount, discount_type, tax, created_at, updated_at
		FROM estimates
		WHERE id = $1 AND user_id = $2
	`, estimateID, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to get estimate: %w", err)
	}

	return e, nil
}

func (d *DatabaseClient) ListEstimates(userID uuid.UUID) ([]models.Estimate, error) {
	rows, err := d.db.Query(`
		SELECT id, user_id, project_id, number, date, status, client_info, items, discount, discount_type, tax, created_at, updated_at
		FROM estimates
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list estimates: %w", err)
	}
	defer rows.Close()

	var estimates []models.Estimate
	for rows.Next() {
		e, err := scanEstimate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan estimate: %w", err)
		}
		estimates = append(estimates, *e)
	}

	return estimates, rows.Err()
}

// ListEstimateNumbers returns every estimate number the user owns, for the
// next-number generator.
func (d *DatabaseClient) ListEstimateNumbers(userID uuid.UUID) ([]string, error) {
	rows, err := d.db.Query(`
		SELECT number FROM estimates WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list estimate numbers: %w", err)
	}
	defer rows.Close()

	var numbers []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("failed to scan number: %w", err)
		}
		numbers = append(numbers, n)
	}

	return numbers, rows.Err()
}

// UpdateEstimate overwrites the mutable fields of an estimate in place; no
// version history is kept.
func (d *DatabaseClient) UpdateEstimate(e *models.Estimate) (*models.Estimate, error) {
	itemsJSON, err := json.Marshal(e.Items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode items: %w", err)
	}

	updated, err := scanEstimate(d.db.QueryRow(`
		UPDATE estimates
		SET client_info = $1, items = $2, discount = $3, discount_type = $4, tax = $5, status = $6, updated_at = NOW()
		WHERE id = $7 AND user_id = $8
		RETURNING id, user_id, project_id, number, date, status, client_info, items, discount, discount_type, tax, created_at, updated_at
	`, e.ClientInfo, itemsJSON, e.Discount, e.DiscountType, e.Tax, e.Status, e.ID, e.UserID))
	if err != nil {
		return nil, fmt.Errorf("failed to update estimate: %w", err)
	}

	return updated, nil
}

func (d *DatabaseClient) DeleteEstimate(estimateID, userID uuid.UUID) error {
	_, err := d.db.Exec(`
		DELETE FROM estimates
		WHERE id = $1 AND user_id = $2
	`, estimateID, userID)
	return err
}
