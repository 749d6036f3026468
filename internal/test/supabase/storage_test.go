package supabase_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"smeta-backend/internal/supabase"
)

func TestObjectPath_WithProject(t *testing.T) {
	userID := uuid.New()
	projectID := uuid.New()

	path := supabase.ObjectPath(userID, uuid.NullUUID{UUID: projectID, Valid: true}, "wall.jpg")

	assert.Equal(t, "users/"+userID.String()+"/projects/"+projectID.String()+"/wall.jpg", path)
}

func TestObjectPath_WithoutProject(t *testing.T) {
	userID := uuid.New()

	path := supabase.ObjectPath(userID, uuid.NullUUID{}, "logo.png")

	assert.Equal(t, "users/"+userID.String()+"/logo.png", path)
}

func TestStorageClient_GetPublicURL(t *testing.T) {
	client, err := supabase.NewStorageClient("https://example.supabase.co/", "service-role-key")
	require.NoError(t, err)

	url := client.GetPublicURL("photos", "users/u1/p.jpg")

	// trailing slash on the base URL must not double up
	assert.Equal(t, "https://example.supabase.co/storage/v1/object/public/photos/users/u1/p.jpg", url)
}
