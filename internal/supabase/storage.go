package supabase

import (
	"bytes"
	"fmt"

	"github.com/google/uuid"
	storage "github.com/supabase-community/storage-go"
)

// StorageClient wraps Supabase object storage. Buckets are passed per call:
// photos, documents and receipts live in separate buckets with different
// access policies.
type StorageClient struct {
	client  *storage.Client
	baseURL string
}

func NewStorageClient(supabaseURL, publishableKey string) (*StorageClient, error) {
	// Ensure URL doesn't have trailing slash
	baseURL := supabaseURL
	if len(baseURL) > 0 && baseURL[len(baseURL)-1] == '/' {
		baseURL = baseURL[:len(baseURL)-1]
	}
	client := storage.NewClient(baseURL+"/storage/v1", publishableKey, nil)

	return &StorageClient{
		client:  client,
		baseURL: baseURL,
	}, nil
}

// ObjectPath builds the storage path: users/{user_id}/projects/{project_id}/{filename}.
// Files not tied to a project go under users/{user_id}/{filename}.
func ObjectPath(userID uuid.UUID, projectID uuid.NullUUID, filename string) string {
	if projectID.Valid {
		return fmt.Sprintf("users/%s/projects/%s/%s", userID.String(), projectID.UUID.String(), filename)
	}
	return fmt.Sprintf("users/%s/%s", userID.String(), filename)
}

func (s *StorageClient) UploadFile(bucket, storagePath string, data []byte, contentType string) (string, error) {
	upsert := true
	_, err := s.client.UploadFile(bucket, storagePath, bytes.NewReader(data), storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return s.GetPublicURL(bucket, storagePath), nil
}

func (s *StorageClient) GetPublicURL(bucket, storagePath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, bucket, storagePath)
}

func (s *StorageClient) DeleteFile(bucket, storagePath string) error {
	_, err := s.client.RemoveFile(bucket, []string{storagePath})
	return err
}

func (s *StorageClient) DeleteProjectFiles(bucket string, userID, projectID uuid.UUID) error {
	prefix := fmt.Sprintf("users/%s/projects/%s/", userID.String(), projectID.String())

	files, err := s.client.ListFiles(bucket, prefix, storage.FileSearchOptions{
		Limit: 1000,
	})
	if err != nil {
		return fmt.Errorf("failed to list files: %w", err)
	}

	if len(files) > 0 {
		filePaths := make([]string, len(files))
		for i, file := range files {
			filePaths[i] = file.Name
		}
		_, err = s.client.RemoveFile(bucket, filePaths)
		if err != nil {
			return fmt.Errorf("failed to delete files: %w", err)
		}
	}

	return nil
}

func (s *StorageClient) DownloadFile(bucket, storagePath string) ([]byte, error) {
	data, err := s.client.DownloadFile(bucket, storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}

	return data, nil
}
