package supabase

import (
	"fmt"

	"github.com/google/uuid"
	"smeta-backend/internal/models"
)

// --- Projects ---

func (d *DatabaseClient) CreateProject(p *models.Project) (*models.Project, error) {
	var project models.Project
	err := d.db.QueryRow(`
		INSERT INTO projects (id, user_id, name, address, client_info, status, budget, start_date, end_date, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, user_id, name, address, client_info, status, budget, start_date, end_date, description, created_at, updated_at
	`, p.ID, p.UserID, p.Name, p.Address, p.ClientInfo, p.Status, p.Budget, p.StartDate, p.EndDate, p.Description).Scan(
		&project.ID, &project.UserID, &project.Name, &project.Address, &project.ClientInfo,
		&project.Status, &project.Budget, &project.StartDate, &project.EndDate, &project.Description,
		&project.CreatedAt, &project.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return &project, nil
}

func (d *DatabaseClient) GetProject(projectID, userID uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := d.db.QueryRow(`
		SELECT id, user_id, name, address, client_info, status, budget, start_date, end_date, description, created_at, updated_at
		FROM projects
		WHERE id = $1 AND user_id = $2
	`, projectID, userID).Scan(
		&project.ID, &project.UserID, &project.Name, &project.Address, &project.ClientInfo,
		&project.Status, &project.Budget, &project.StartDate, &project.EndDate, &project.Description,
		&project.CreatedAt, &project.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return &project, nil
}

func (d *DatabaseClient) ListProjects(userID uuid.UUID) ([]models.Project, error) {
	rows, err := d.db.Query(`
		SELECT id, user_id, name, address, client_info, status, budget, start_date, end_date, description, created_at, updated_at
		FROM projects
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var project models.Project
		err := rows.Scan(
			&project.ID, &project.UserID, &project.Name, &project.Address, &project.ClientInfo,
			&project.Status, &project.Budget, &project.StartDate, &project.EndDate, &project.Description,
			&project.CreatedAt, &project.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, project)
	}

	return projects, rows.Err()
}

func (d *DatabaseClient) UpdateProject(p *models.Project) (*models.Project, error) {
	var project models.Project
	err := d.db.QueryRow(`
		UPDATE projects
		SET name = $1, address = $2, client_info = $3, status = $4, budget = $5, start_date = $6, end_date = $7, description = $8, updated_at = NOW()
		WHERE id = $9 AND user_id = $10
		RETURNING id, user_id, name, address, client_info, status, budget, start_date, end_date, description, created_at, updated_at
	`, p.Name, p.Address, p.ClientInfo, p.Status, p.Budget, p.StartDate, p.EndDate, p.Description, p.ID, p.UserID).Scan(
		&project.ID, &project.UserID, &project.Name, &project.Address, &project.ClientInfo,
		&project.Status, &project.Budget, &project.StartDate, &project.EndDate, &project.Description,
		&project.CreatedAt, &project.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return &project, nil
}

func (d *DatabaseClient) DeleteProject(projectID, userID uuid.UUID) error {
	_, err := d.db.Exec(`
		DELETE FROM projects
		WHERE id = $1 AND user_id = $2
	`, projectID, userID)
	return err
}

// --- Work stages ---

func (d *DatabaseClient) CreateStage(s *models.WorkStage) (*models.WorkStage, error) {
	var stage models.WorkStage
	err := d.db.QueryRow(`
		INSERT INTO work_stages (id, project_id, user_id, name, status, amount, start_date, end_date, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, project_id, user_id, name, status, amount, start_date, end_date, position, created_at
	`, s.ID, s.ProjectID, s.UserID, s.Name, s.Status, s.Amount, s.StartDate, s.EndDate, s.Position).Scan(
		&stage.ID, &stage.ProjectID, &stage.UserID, &stage.Name, &stage.Status,
		&stage.Amount, &stage.StartDate, &stage.EndDate, &stage.Position, &stage.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create stage: %w", err)
	}

	return &stage, nil
}

func (d *DatabaseClient) ListStages(projectID, userID uuid.UUID) ([]models.WorkStage, error) {
	rows, err := d.db.Query(`
		SELECT id, project_id, user_id, name, status, amount, start_date, end_date, position, created_at
		FROM work_stages
		WHERE project_id = $1 AND user_id = $2
		ORDER BY position ASC, created_at ASC
	`, projectID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stages: %w", err)
	}
	defer rows.Close()

	var stages []models.WorkStage
	for rows.Next() {
		var stage models.WorkStage
		err := rows.Scan(
			&stage.ID, &stage.ProjectID, &stage.UserID, &stage.Name, &stage.Status,
			&stage.Amount, &stage.StartDate, &stage.EndDate, &stage.Position, &stage.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stage: %w", err)
		}
		stages = append(stages, stage)
	}

	return stages, rows.Err()
}

func (d *DatabaseClient) UpdateStage(s *models.WorkStage) (*models.WorkStage, error) {
	var stage models.WorkStage
	err := d.db.QueryRow(`
		UPDATE work_stages
		SET name = $1, status = $2, amount = $3, start_date = $4, end_date = $5, position = $6
		WHERE id = $7 AND user_id = $8
		RETURNING id, project_id, user_id, name, status, amount, start_date, end_date, position, created_at
	`, s.Name, s.Status, s.Amount, s.StartDate, s.EndDate, s.Position, s.ID, s.UserID).Scan(
		&stage.ID, &stage.ProjectID, &stage.UserID, &stage.Name, &stage.Status,
		&stage.Amount, &stage.StartDate, &stage.EndDate, &stage.Position, &stage.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update stage: %w", err)
	}

	return &stage, nil
}

func (d *DatabaseClient) DeleteStage(stageID, userID uuid.UUID) error {
	_, err := d.db.Exec(`
		DELETE FROM work_stages
		WHERE id = $1 AND user_id = $2
	`, stageID, userID)
	return err
}

// --- Finance entries ---

func (d *DatabaseClient) CreateFinanceEntry(f *models.FinanceEntry) (*models.FinanceEntry, error) {
	var entry models.FinanceEntry
	err := d.db.QueryRow(`
		INSERT INTO finance_entries (id, project_id, user_id, type, amount, category, note, receipt_path, receipt_url, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, project_id, user_id, type, amount, category, note, receipt_path, receipt_url, date, created_at
	`, f.ID, f.ProjectID, f.UserID, f.Type, f.Amount, f.Category, f.Note, f.ReceiptPath, f.ReceiptURL, f.Date).Scan(
		&entry.ID, &entry.ProjectID, &entry.UserID, &entry.Type, &entry.Amount,
		&entry.Category, &entry.Note, &entry.ReceiptPath, &entry.ReceiptURL, &entry.Date, &entry.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create finance entry: %w", err)
	}

	return &entry, nil
}

func (d *DatabaseClient) ListFinanceEntries(projectID, userID uuid.UUID) ([]models.FinanceEntry, error) {
	rows, err := d.db.Query(`
		SELECT id, project_id, user_id, type, amount, category, note, receipt_path, receipt_url, date, created_at
		FROM finance_entries
		WHERE project_id = $1 AND user_id = $2
		ORDER BY date DESC, created_at DESC
	`, projectID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list finance entries: %w", err)
	}
	defer rows.Close()

	var entries []models.FinanceEntry
	for rows.Next() {
		var entry models.FinanceEntry
		err := rows.Scan(
			&entry.ID, &entry.ProjectID, &entry.UserID, &entry.Type, &entry.Amount,
			&entry.Category, &entry.Note, &entry.ReceiptPath, &entry.ReceiptURL, &entry.Date, &entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan finance entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func (d *DatabaseClient) SetFinanceReceipt(entryID, userID uuid.UUID, path, url string) (*models.FinanceEntry, error) {
	var entry models.FinanceEntry
	err := d.db.QueryRow(`
		UPDATE finance_entries
		SET receipt_path = $3, receipt_url = $4
		WHERE id = $1 AND user_id = $2
		RETURNING id, project_id, user_id, type, amount, category, note, receipt_path, receipt_url, date, created_at
	`, entryID, userID, path, url).Scan(
		&entry.ID, &entry.ProjectID, &entry.UserID, &entry.Type, &entry.Amount,
		&entry.Category, &entry.Note, &entry.ReceiptPath, &entry.ReceiptURL, &entry.Date, &entry.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to set finance receipt: %w", err)
	}

	return &entry, nil
}

func (d *DatabaseClient) DeleteFinanceEntry(entryID, userID uuid.UUID) error {
	_, err := d.db.Exec(`
		DELETE FROM finance_entries
		WHERE id = $1 AND user_id = $2
	`, entryID, userID)
	return err
}

// --- Photo reports ---

func (d *DatabaseClient) CreatePhotoReport(p *models.PhotoReport) (*models.PhotoReport, error) {
	var photo models.PhotoReport
	err := d.db.QueryRow(`
		INSERT INTO photo_reports (id, project_id, user_id, caption, storage_path, storage_url, file_size, mime_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, project_id, user_id, caption, storage_path, storage_url, file_size, mime_type, created_at
	`, p.ID, p.ProjectID, p.UserID, p.Caption, p.StoragePath, p.StorageURL, p.FileSize, p.MimeType).Scan(
		&photo.ID, &photo.ProjectID, &photo.UserID, &photo.Caption,
		&photo.StoragePath, &photo.StorageURL, &photo.FileSize, &photo.MimeType, &photo.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create photo report: %w", err)
	}

	return &photo, nil
}

func (d *DatabaseClient) ListPhotoReports(projectID, userID uuid.UUID) ([]models.PhotoReport, error) {
	rows, err := d.db.Query(`
		SELECT id, project_id, user_id, caption, storage_path, storage_url, file_size, mime_type, created_at
		FROM photo_reports
		WHERE project_id = $1 AND user_id = $2
		ORDER BY created_at DESC
	`, projectID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list photo reports: %w", err)
	}
	defer rows.Close()

	var photos []models.PhotoReport
	for rows.Next() {
		var photo models.PhotoReport
		err := rows.Scan(
			&photo.ID, &photo.ProjectID, &photo.UserID, &photo.Caption,
			&photo.StoragePath, &photo.StorageURL, &photo.FileSize, &photo.MimeType, &photo.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan photo report: %w", err)
		}
		photos = append(photos, photo)
	}

	return photos, rows.Err()
}

func (d *DatabaseClient) DeletePhotoReport(photoID, userID uuid.UUID) error {
	_, err := d.db.Exec(`
		DELETE FROM photo_reports
		WHERE id = $1 AND user_id = $2
	`, photoID, userID)
	return err
}
