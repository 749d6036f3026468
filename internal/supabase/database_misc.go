package supabase

import (
	"fmt"

	"github.com/google/uuid"
	"smeta-backend/internal/models"
)

// --- Documents ---

func (d *DatabaseClient) CreateDocument(doc *models.Document) (*models.Document, error) {
	var created models.Document
	err := d.db.QueryRow(`
		INSERT INTO documents (id, user_id, project_id, kind, filename, storage_path, storage_url, file_size)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, user_id, project_id, kind, filename, storage_path, storage_url, file_size, created_at
	`, doc.ID, doc.UserID, doc.ProjectID, doc.Kind, doc.Filename, doc.StoragePath, doc.StorageURL, doc.FileSize).Scan(
		&created.ID, &created.UserID, &created.ProjectID, &created.Kind, &created.Filename,
		&created.StoragePath, &created.StorageURL, &created.FileSize, &created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	return &created, nil
}

func (d *DatabaseClient) ListDocuments(userID uuid.UUID) ([]models.Document, error) {
	rows, err := d.db.Query(`
		SELECT id, user_id, project_id, kind, filename, storage_path, storage_url, file_size, created_at
		FROM documents
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var documents []models.Document
	for rows.Next() {
		var doc models.Document
		err := rows.Scan(
			&doc.ID, &doc.UserID, &doc.ProjectID, &doc.Kind, &doc.Filename,
			&doc.StoragePath, &doc.StorageURL, &doc.FileSize, &doc.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		documents = append(documents, doc)
	}

	return documents, rows.Err()
}

func (d *DatabaseClient) GetDocument(documentID, userID uuid.UUID) (*models.Document, error) {
	var doc models.Document
	err := d.db.QueryRow(`
		SELECT id, user_id, project_id, kind, filename, storage_path, storage_url, file_size, created_at
		FROM documents
		WHERE id = $1 AND user_id = $2
	`, documentID, userID).Scan(
		&doc.ID, &doc.UserID, &doc.ProjectID, &doc.Kind, &doc.Filename,
		&doc.StoragePath, &doc.StorageURL, &doc.FileSize, &doc.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	return &doc, nil
}

func (d *DatabaseClient) DeleteDocument(documentID, userID uuid.UUID) error {
	_, err := d.db.Exec(`
		DELETE FROM documents
		WHERE id = $1 AND user_id = $2
	`, documentID, userID)
	return err
}

// --- Tools ---

func (d *DatabaseClient) CreateTool(t *models.Tool) (*models.Tool, error) {
	var tool models.Tool
	err := d.db.QueryRow(`
		INSERT INTO tools (id, user_id, name, status, location, note)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, name, status, location, note, created_at, updated_at
	`, t.ID, t.UserID, t.Name, t.Status, t.Location, t.Note).Scan(
		&tool.ID, &tool.UserID, &tool.Name, &tool.Status, &tool.Location, &tool.Note,
		&tool.CreatedAt, &tool.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create tool: %w", err)
	}

	return &tool, nil
}

func (d *DatabaseClient) ListTools(userID uuid.UUID) ([]models.Tool, error) {
	rows, err := d.db.Query(`
		SELECT id, user_id, name, status, location, note, created_at, updated_at
		FROM tools
		WHERE user_id = $1
		ORDER BY name ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}
	defer rows.Close()

	var tools []models.Tool
	for rows.Next() {
		var tool models.Tool
		err := rows.Scan(
			&tool.ID, &tool.UserID, &tool.Name, &tool.Status, &tool.Location, &tool.Note,
			&tool.CreatedAt, &tool.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tool: %w", err)
		}
		tools = append(tools, tool)
	}

	return tools, rows.Err()
}

func (d *DatabaseClient) UpdateTool(t *models.Tool) (*models.Tool, error) {
	var tool models.Tool
	err := d.db.QueryRow(`
		UPDATE tools
		SET name = $1, status = $2, location = $3, note = $4, updated_at = NOW()
		WHERE id = $5 AND user_id = $6
		RETURNING id, user_id, name, status, location, note, created_at, updated_at
	`, t.Name, t.Status, t.Location, t.Note, t.ID, t.UserID).Scan(
		&tool.ID, &tool.UserID, &tool.Name, &tool.Status, &tool.Location, &tool.Note,
		&tool.CreatedAt, &tool.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update tool: %w", err)
	}

	return &tool, nil
}

func (d *DatabaseClient) DeleteTool(toolID, userID uuid.UUID) error {
	_, err := d.db.Exec(`
		DELETE FROM tools
		WHERE id = $1 AND user_id = $2
	`, toolID, userID)
	return err
}

// --- Consumables ---

func (d *DatabaseClient) CreateConsumable(c *models.Consumable) (*models.Consumable, error) {
	var consumable models.Consumable
	err := d.db.QueryRow(`
		INSERT INTO consumables (id, user_id, name, quantity, unit, min_quantity)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, name, quantity, unit, min_quantity, created_at, updated_at
	`, c.ID, c.UserID, c.Name, c.Quantity, c.Unit, c.MinQuantity).Scan(
		&consumable.ID, &consumable.UserID, &consumable.Name, &consumable.Quantity,
		&consumable.Unit, &consumable.MinQuantity, &consumable.CreatedAt, &consumable.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumable: %w", err)
	}

	return &consumable, nil
}

func (d *DatabaseClient) ListConsumables(userID uuid.UUID) ([]models.Consumable, error) {
	rows, err := d.db.Query(`
		SELECT id, user_id, name, quantity, unit, min_quantity, created_at, updated_at
		FROM consumables
		WHERE user_id = $1
		ORDER BY name ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list consumables: %w", err)
	}
	defer rows.Close()

	var consumables []models.Consumable
	for rows.Next() {
		var consumable models.Consumable
		err := rows.Scan(
			&consumable.ID, &consumable.UserID, &consumable.Name, &consumable.Quantity,
			&consumable.Unit, &consumable.MinQuantity, &consumable.CreatedAt, &consumable.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan consumable: %w", err)
		}
		consumables = append(consumables, consumable)
	}

	return consumables, rows.Err()
}

func (d *DatabaseClient) UpdateConsumable(c *models.Consumable) (*models.Consumable, error) {
	var consumable models.Consumable
	err := d.db.QueryRow(`
		UPDATE consumables
		SET name = $1, quantity = $2, unit = $3, min_quantity = $4, updated_at = NOW()
		WHERE id = $5 AND user_id = $6
		RETURNING id, user_id, name, quantity, unit, min_quantity, created_at, updated_at
	`, c.Name, c.Quantity, c.Unit, c.MinQuantity, c.ID, c.UserID).Scan(
		&consumable.ID, &consumable.UserID, &consumable.Name, &consumable.Quantity,
		&consumable.Unit, &consumable.MinQuantity, &consumable.CreatedAt, &consumable.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update consumable: %w", err)
	}

	return &consumable, nil
}

func (d *DatabaseClient) DeleteConsumable(consumableID, userID uuid.UUID) error {
	_, err := d.db.Exec(`
		DELETE FROM consumables
		WHERE id = $1 AND user_id = $2
	`, consumableID, userID)
	return err
}

// --- Tasks ---

func (d *DatabaseClient) CreateTask(t *models.Task) (*models.Task, error) {
	var task models.Task
	err := d.db.QueryRow(`
		INSERT INTO tasks (id, user_id, project_id, title, status, due_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, project_id, title, status, due_date, created_at, updated_at
	`, t.ID, t.UserID, t.ProjectID, t.Title, t.Status, t.DueDate).Scan(
		&task.ID, &task.UserID, &task.ProjectID, &task.Title, &task.Status, &task.DueDate,
		&task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return &task, nil
}

func (d *DatabaseClient) ListTasks(userID uuid.UUID) ([]models.Task, error) {
	rows, err := d.db.Query(`
		SELECT id, user_id, project_id, title, status, due_date, created_at, updated_at
		FROM tasks
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var task models.Task
		err := rows.Scan(
			&task.ID, &task.UserID, &task.ProjectID, &task.Title, &task.Status, &task.DueDate,
			&task.CreatedAt, &task.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

func (d *DatabaseClient) UpdateTaskStatus(taskID, userID uuid.UUID, status models.TaskStatus) (*models.Task, error) {
	var task models.Task
	err := d.db.QueryRow(`
		UPDATE tasks
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND user_id = $3
		RETURNING id, user_id, project_id, title, status, due_date, created_at, updated_at
	`, status, taskID, userID).Scan(
		&task.ID, &task.UserID, &task.ProjectID, &task.Title, &task.Status, &task.DueDate,
		&task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return &task, nil
}

func (d *DatabaseClient) DeleteTask(taskID, userID uuid.UUID) error {
	_, err := d.db.Exec(`
		DELETE FROM tasks
		WHERE id = $1 AND user_id = $2
	`, taskID, userID)
	return err
}
