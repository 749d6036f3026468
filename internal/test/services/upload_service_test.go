package services_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"smeta-backend/internal/retry"
	"smeta-backend/internal/services"
)

type fakeStorage struct {
	mu       sync.Mutex
	calls    int
	failN    int
	paths    []string
	lastData []byte
	lastType string
}

func (f *fakeStorage) UploadFile(bucket, storagePath string, data []byte, contentType string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.paths = append(f.paths, storagePath)
	f.lastData = data
	f.lastType = contentType
	if f.calls <= f.failN {
		return "", errors.New("storage unavailable")
	}
	return "https://storage.example.com/" + bucket + "/" + storagePath, nil
}

type alertRecorder struct {
	mu     sync.Mutex
	alerts []string
}

func (a *alertRecorder) ShowAlert(ctx context.Context, message string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.alerts = append(a.alerts, message)
	return nil
}

func (a *alertRecorder) ShowConfirm(ctx context.Context, message string) (bool, error) {
	return true, nil
}

func (a *alertRecorder) SendResult(ctx context.Context, payload []byte) error { return nil }

func noSleepPolicy(attempts int) retry.Policy {
	return retry.Policy{MaxAttempts: attempts, Delay: 2 * time.Second, Sleep: func(time.Duration) {}}
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 10, G: 160, B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestUploadWithFallback_Success(t *testing.T) {
	storage := &fakeStorage{}
	svc := services.NewUploadService(storage, noSleepPolicy(3), nil, 10<<20, 5<<20)
	userID := uuid.New()
	projectID := uuid.NullUUID{UUID: uuid.New(), Valid: true}

	result := svc.UploadWithFallback(context.Background(), "photos", userID, projectID, services.UploadFile{
		Filename: "wall.png",
		Category: services.CategoryGeneral,
		Data:     pngBytes(t, 60, 40),
	})

	require.NoError(t, result.Err)
	assert.False(t, result.Embedded)
	assert.Equal(t, 1, storage.calls)
	// compression re-encodes to jpeg, so the stored name changes extension
	wantPath := fmt.Sprintf("users/%s/projects/%s/wall.jpg", userID, projectID.UUID)
	assert.Equal(t, wantPath, result.Path)
	assert.Equal(t, "https://storage.example.com/photos/"+wantPath, result.PublicURL)
	assert.Equal(t, "image/jpeg", storage.lastType)
	assert.Equal(t, int64(len(storage.lastData)), result.Size)
}

func TestUploadWithFallback_RetriesThenSucceeds(t *testing.T) {
	storage := &fakeStorage{failN: 2}
	svc := services.NewUploadService(storage, noSleepPolicy(3), nil, 10<<20, 5<<20)

	result := svc.UploadWithFallback(context.Background(), "photos", uuid.New(), uuid.NullUUID{}, services.UploadFile{
		Filename: "door.png",
		Category: services.CategoryGeneral,
		Data:     pngBytes(t, 30, 30),
	})

	require.NoError(t, result.Err)
	assert.False(t, result.Embedded)
	assert.Equal(t, 3, storage.calls)
}

func TestUploadWithFallback_PersistentFailureDegradesToDataURL(t *testing.T) {
	storage := &fakeStorage{failN: 100}
	svc := services.NewUploadService(storage, noSleepPolicy(3), nil, 10<<20, 5<<20)
	userID := uuid.New()

	result := svc.UploadWithFallback(context.Background(), "photos", userID, uuid.NullUUID{}, services.UploadFile{
		Filename: "crack.png",
		Category: services.CategoryGeneral,
		Data:     pngBytes(t, 30, 30),
	})

	require.NoError(t, result.Err)
	assert.Equal(t, 3, storage.calls)
	assert.True(t, result.Embedded)
	assert.Equal(t, services.EmbeddedPathPrefix+fmt.Sprintf("users/%s/crack.jpg", userID), result.Path)
	assert.True(t, services.IsEmbeddedPath(result.Path))
	assert.True(t, strings.HasPrefix(result.PublicURL, "data:image/jpeg;base64,"))
}

func TestUploadWithFallback_SizeCeilingRejectedBeforeUpload(t *testing.T) {
	storage := &fakeStorage{}
	svc := services.NewUploadService(storage, noSleepPolicy(3), nil, 100, 50)

	result := svc.UploadWithFallback(context.Background(), "photos", uuid.New(), uuid.NullUUID{}, services.UploadFile{
		Filename: "huge.jpg",
		Category: services.CategoryGeneral,
		Data:     make([]byte, 101),
	})

	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "size limit")
	assert.Zero(t, storage.calls)
}

func TestUploadWithFallback_ReceiptsCarryStricterCeiling(t *testing.T) {
	storage := &fakeStorage{}
	svc := services.NewUploadService(storage, noSleepPolicy(3), nil, 100, 50)

	result := svc.UploadWithFallback(context.Background(), "receipts", uuid.New(), uuid.NullUUID{}, services.UploadFile{
		Filename: "check.jpg",
		Category: services.CategoryReceipt,
		Data:     make([]byte, 60),
	})

	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "receipt")
	assert.Zero(t, storage.calls)
}

func TestUploadWithFallback_UndecodableFileUploadedAsIs(t *testing.T) {
	storage := &fakeStorage{}
	svc := services.NewUploadService(storage, noSleepPolicy(3), nil, 10<<20, 5<<20)
	raw := []byte("not a real image")

	result := svc.UploadWithFallback(context.Background(), "photos", uuid.New(), uuid.NullUUID{}, services.UploadFile{
		Filename: "scan.webp",
		Category: services.CategoryGeneral,
		Data:     raw,
	})

	require.NoError(t, result.Err)
	assert.Equal(t, raw, storage.lastData)
	assert.Equal(t, "image/webp", storage.lastType)
	assert.True(t, strings.HasSuffix(result.Path, "/scan.webp"))
}

func TestUploadBatch_KeepsInputOrder(t *testing.T) {
	storage := &fakeStorage{}
	svc := services.NewUploadService(storage, noSleepPolicy(3), nil, 10<<20, 5<<20)

	var files []services.UploadFile
	for i := 0; i < 5; i++ {
		files = append(files, services.UploadFile{
			Filename: fmt.Sprintf("photo-%d.png", i),
			Category: services.CategoryGeneral,
			Data:     pngBytes(t, 20, 20),
		})
	}

	results := svc.UploadBatch(context.Background(), "photos", uuid.New(), uuid.NullUUID{}, files)

	require.Len(t, results, 5)
	for i, r := range results {
		assert.Equal(t, fmt.Sprintf("photo-%d.png", i), r.Filename)
		assert.NoError(t, r.Err)
	}
}

func TestUploadBatch_AggregatesFailuresIntoOneAlert(t *testing.T) {
	storage := &fakeStorage{failN: 1000}
	alerts := &alertRecorder{}
	svc := services.NewUploadService(storage, noSleepPolicy(2), alerts, 10<<20, 5<<20)

	files := []services.UploadFile{
		{Filename: "a.png", Category: services.CategoryGeneral, Data: pngBytes(t, 20, 20)},
		{Filename: "b.png", Category: services.CategoryGeneral, Data: pngBytes(t, 20, 20)},
	}

	results := svc.UploadBatch(context.Background(), "photos", uuid.New(), uuid.NullUUID{}, files)

	for _, r := range results {
		assert.True(t, r.Embedded)
	}
	require.Len(t, alerts.alerts, 1)
	assert.Contains(t, alerts.alerts[0], "a.png")
	assert.Contains(t, alerts.alerts[0], "b.png")
	assert.Contains(t, alerts.alerts[0], "хранилище недоступно")
}
