package pdf_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"smeta-backend/internal/models"
	"smeta-backend/internal/pdf"
)

func TestFilename(t *testing.T) {
	date := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	assert.Equal(t, "estimate-2024-007-2024-03-15.pdf", pdf.Filename(pdf.KindEstimate, "2024-007", date))
	assert.Equal(t, "act-2024-007-2024-03-15.pdf", pdf.Filename(pdf.KindAct, "2024-007", date))
	assert.Equal(t, "schedule-2024-007-2024-03-15.pdf", pdf.Filename(pdf.KindSchedule, "2024-007", date))
}

func TestRenderer_MissingFontFailsWholeDocument(t *testing.T) {
	r := pdf.NewRenderer("/nonexistent/fonts/DejaVuSans.ttf")

	_, _, err := r.Estimate(pdf.EstimateDoc{
		Company:  models.CompanyProfile{Name: "ООО Ремонт"},
		Estimate: models.Estimate{Number: "2024-001", Date: time.Now()},
	})
	assert.ErrorIs(t, err, pdf.ErrFontUnavailable)

	_, _, err = r.CompletionAct(pdf.ActDoc{Number: "2024-001", Date: time.Now()})
	assert.ErrorIs(t, err, pdf.ErrFontUnavailable)

	_, _, err = r.WorkSchedule(pdf.ScheduleDoc{Number: "2024-001", Date: time.Now()})
	assert.ErrorIs(t, err, pdf.ErrFontUnavailable)
}

func TestRenderer_CorruptFontFailsWholeDocument(t *testing.T) {
	fontPath := filepath.Join(t.TempDir(), "DejaVuSans.ttf")
	require.NoError(t, os.WriteFile(fontPath, []byte("definitely not a truetype font"), 0o644))

	r := pdf.NewRenderer(fontPath)

	_, _, err := r.Estimate(pdf.EstimateDoc{
		Company:  models.CompanyProfile{Name: "ООО Ремонт"},
		Estimate: models.Estimate{Number: "2024-001", Date: time.Now()},
	})
	assert.ErrorIs(t, err, pdf.ErrFontUnavailable)

	_, _, err = r.CompletionAct(pdf.ActDoc{Number: "2024-001", Date: time.Now()})
	assert.ErrorIs(t, err, pdf.ErrFontUnavailable)
}

// One renderer serves all requests, so parallel generations must share the
// font cache safely (run with -race).
func TestRenderer_ConcurrentGeneration(t *testing.T) {
	fontPath := filepath.Join(t.TempDir(), "DejaVuSans.ttf")
	require.NoError(t, os.WriteFile(fontPath, []byte("definitely not a truetype font"), 0o644))

	r := pdf.NewRenderer(fontPath)

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, errs[i] = r.Estimate(pdf.EstimateDoc{
				Estimate: models.Estimate{Number: "2024-001", Date: time.Now()},
			})
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.ErrorIs(t, err, pdf.ErrFontUnavailable)
	}
}
