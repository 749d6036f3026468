package supabase

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/supabase-community/supabase-go"
)

type RealtimeClient struct {
	client *supabase.Client
}

func NewRealtimeClient(client *supabase.Client) *RealtimeClient {
	return &RealtimeClient{
		client: client,
	}
}

func (r *RealtimeClient) PublishEvent(channel string, event string, payload map[string]interface{}) error {
	// The Supabase Go client has no direct Realtime publish; row updates on
	// subscribed tables trigger Realtime automatically. Kept as an explicit
	// hook for when the REST publish endpoint is needed.
	return nil
}

func (r *RealtimeClient) PublishProjectEvent(projectID uuid.UUID, event string, payload map[string]interface{}) error {
	channel := fmt.Sprintf("project:%s", projectID.String())
	return r.PublishEvent(channel, event, payload)
}

func (r *RealtimeClient) PublishUserEvent(userID uuid.UUID, event string, payload map[string]interface{}) error {
	channel := fmt.Sprintf("user:%s", userID.String())
	return r.PublishEvent(channel, event, payload)
}

// Event payloads
func PhotosUploadedPayload(projectID uuid.UUID, uploaded, embedded int) map[string]interface{} {
	return map[string]interface{}{
		"project_id": projectID.String(),
		"uploaded":   uploaded,
		"embedded":   embedded,
	}
}

func DocumentGeneratedPayload(userID uuid.UUID, kind, filename string) map[string]interface{} {
	return map[string]interface{}{
		"user_id":  userID.String(),
		"kind":     kind,
		"filename": filename,
	}
}

func EstimateStatusPayload(estimateID uuid.UUID, status string) map[string]interface{} {
	return map[string]interface{}{
		"estimate_id": estimateID.String(),
		"status":      status,
	}
}
