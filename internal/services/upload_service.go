package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"smeta-backend/internal/host"
	"smeta-backend/internal/imgproc"
	"smeta-backend/internal/retry"
	"smeta-backend/internal/supabase"
)

// EmbeddedPathPrefix marks a result whose bytes never reached object
// storage: PublicURL holds a data URL instead of an HTTP location and
// downstream code must not treat the path as remote.
const EmbeddedPathPrefix = "embedded:"

const (
	CategoryGeneral = "general"
	CategoryReceipt = "receipt"
)

// ObjectStorage is the slice of the storage client the upload pipeline
// needs; tests substitute a fake.
type ObjectStorage interface {
	UploadFile(bucket, storagePath string, data []byte, contentType string) (string, error)
}

type UploadFile struct {
	Filename string
	Category string
	Data     []byte
}

type UploadResult struct {
	Filename  string
	Path      string
	PublicURL string
	Size      int64
	Embedded  bool
	Err       error
}

type UploadService struct {
	storage    ObjectStorage
	policy     retry.Policy
	caps       host.Capabilities
	maxBytes   int64
	maxReceipt int64
}

func NewUploadService(storage ObjectStorage, policy retry.Policy, caps host.Capabilities, maxBytes, maxReceipt int64) *UploadService {
	if caps == nil {
		caps = host.Nop{}
	}
	return &UploadService{
		storage:    storage,
		policy:     policy,
		caps:       caps,
		maxBytes:   maxBytes,
		maxReceipt: maxReceipt,
	}
}

func (s *UploadService) sizeLimit(category string) int64 {
	if category == CategoryReceipt {
		return s.maxReceipt
	}
	return s.maxBytes
}

// UploadWithFallback normalizes one image and pushes it to object storage.
// Compression failures fall back to the original bytes; persistent upload
// failures degrade to an embedded data URL so the user's file is never lost.
// The size ceiling is checked before any network call.
func (s *UploadService) UploadWithFallback(ctx context.Context, bucket string, userID uuid.UUID, projectID uuid.NullUUID, f UploadFile) UploadResult {
	result := UploadResult{Filename: f.Filename}

	limit := s.sizeLimit(f.Category)
	if int64(len(f.Data)) > limit {
		result.Err = fmt.Errorf("file %s exceeds the %s size limit of %d bytes", f.Filename, categoryName(f.Category), limit)
		return result
	}

	data := f.Data
	contentType := contentTypeFor(f.Filename)
	filename := f.Filename

	preset := imgproc.PresetFor(f.Filename, f.Category)
	if compressed, err := imgproc.CompressBytes(bytes.NewReader(f.Data), preset); err == nil {
		data = compressed
		contentType = "image/jpeg"
		filename = jpegName(f.Filename)
	}

	storagePath := supabase.ObjectPath(userID, projectID, filename)
	result.Size = int64(len(data))

	var publicURL string
	err := s.policy.Do(ctx, func() error {
		url, err := s.storage.UploadFile(bucket, storagePath, data, contentType)
		if err != nil {
			return err
		}
		publicURL = url
		return nil
	})
	if err != nil {
		result.Path = EmbeddedPathPrefix + storagePath
		result.PublicURL = imgproc.DataURL(contentType, data)
		result.Embedded = true
		return result
	}

	result.Path = storagePath
	result.PublicURL = publicURL
	return result
}

// UploadBatch processes files concurrently but returns results in input
// order, re-associated by index. Failures are aggregated into a single
// user-facing alert.
func (s *UploadService) UploadBatch(ctx context.Context, bucket string, userID uuid.UUID, projectID uuid.NullUUID, files []UploadFile) []UploadResult {
	results := make([]UploadResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			results[i] = s.UploadWithFallback(gctx, bucket, userID, projectID, f)
			return nil
		})
	}
	g.Wait()

	var problems []string
	for _, r := range results {
		if r.Err != nil {
			problems = append(problems, r.Err.Error())
		} else if r.Embedded {
			problems = append(problems, fmt.Sprintf("файл %s сохранён локально: хранилище недоступно", r.Filename))
		}
	}
	if len(problems) > 0 {
		s.caps.ShowAlert(ctx, strings.Join(problems, "\n"))
	}

	return results
}

// IsEmbeddedPath reports whether a stored path refers to an embedded
// data-URL fallback rather than an object in storage.
func IsEmbeddedPath(path string) bool {
	return strings.HasPrefix(path, EmbeddedPathPrefix)
}

func categoryName(category string) string {
	if category == CategoryReceipt {
		return "receipt"
	}
	return "attachment"
}

func contentTypeFor(filename string) string {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".png"):
		return "image/png"
	case strings.HasSuffix(lower, ".heic"):
		return "image/heic"
	case strings.HasSuffix(lower, ".webp"):
		return "image/webp"
	default:
		return "image/jpeg"
	}
}

func jpegName(filename string) string {
	if i := strings.LastIndex(filename, "."); i > 0 {
		return filename[:i] + ".jpg"
	}
	return filename + ".jpg"
}
