// Package pdf generates the printable documents: estimate, completion act
// and work schedule. The renderer only formats values handed to it; totals
// always come from the calc package so screen and paper never disagree.
package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-pdf/fpdf"

	"smeta-backend/internal/imgproc"
	"smeta-backend/internal/models"
	"smeta-backend/internal/money"
)

const (
	KindEstimate = "estimate"
	KindAct      = "act"
	KindSchedule = "schedule"

	fontFamily = "cyrillic"

	pageMarginMM     = 15
	contentWidthMM   = 180
	appendixMaxWMM   = 170
	appendixMaxHMM   = 150
	bottomReserveMM  = 20
	placeholderImage = "изображение не загружено"
)

// ErrFontUnavailable means the Unicode font with Cyrillic glyphs cannot be
// embedded. Without it no text may be drawn, so generation fails as a whole.
var ErrFontUnavailable = errors.New("cyrillic font unavailable")

type Renderer struct {
	fontPath string

	fontOnce sync.Once
	fontData []byte
	fontErr  error
}

func NewRenderer(fontPath string) *Renderer {
	return &Renderer{fontPath: fontPath}
}

// font reads the Cyrillic TTF once. One Renderer serves concurrent requests,
// so the read is guarded and the result (bytes or error) is cached.
func (r *Renderer) font() ([]byte, error) {
	r.fontOnce.Do(func() {
		data, err := os.ReadFile(r.fontPath)
		if err != nil {
			r.fontErr = fmt.Errorf("%w: cannot read font file %s: %v", ErrFontUnavailable, r.fontPath, err)
			return
		}
		r.fontData = data
	})
	return r.fontData, r.fontErr
}

// Filename builds the deterministic download name <kind>-<number>-<date>.pdf.
func Filename(kind, number string, date time.Time) string {
	return fmt.Sprintf("%s-%s-%s.pdf", kind, number, date.Format("2006-01-02"))
}

// newDoc creates a page with the Cyrillic font registered. The font must be
// embedded before the first text draw; a missing font file fails the whole
// document.
func (r *Renderer) newDoc() (*fpdf.Fpdf, error) {
	fontData, err := r.font()
	if err != nil {
		return nil, err
	}

	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddUTF8FontFromBytes(fontFamily, "", fontData)
	// A file with broken glyph metrics leaves the font unregistered without
	// flipping the document error state, so prove it selectable right away.
	doc.SetFont(fontFamily, "", 10)
	if doc.Err() {
		return nil, fmt.Errorf("%w: %v", ErrFontUnavailable, doc.Error())
	}
	doc.SetMargins(pageMarginMM, pageMarginMM, pageMarginMM)
	doc.SetAutoPageBreak(true, bottomReserveMM)
	doc.AddPage()
	if doc.Err() {
		return nil, fmt.Errorf("failed to start document: %v", doc.Error())
	}
	return doc, nil
}

func output(doc *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to emit pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// header lays out the issuer block: company name, free-text details and the
// logo in the top right corner when one is embedded.
func (r *Renderer) header(doc *fpdf.Fpdf, company models.CompanyProfile, logo []byte) {
	if len(logo) > 0 {
		if err := placeImage(doc, "company-logo", logo, 210-pageMarginMM-30, pageMarginMM, 30, 20); err != nil {
			// A broken logo must not kill the document.
			doc.ClearError()
		}
	}

	doc.SetFont(fontFamily, "", 16)
	doc.CellFormat(contentWidthMM-35, 8, company.Name, "", 1, "L", false, 0, "")
	doc.SetFont(fontFamily, "", 9)
	for _, line := range strings.Split(company.Details, "\n") {
		if line == "" {
			continue
		}
		doc.CellFormat(contentWidthMM-35, 4.5, line, "", 1, "L", false, 0, "")
	}
	doc.Ln(6)
}

func (r *Renderer) signatures(doc *fpdf.Fpdf) {
	doc.Ln(14)
	doc.SetFont(fontFamily, "", 10)
	doc.CellFormat(90, 7, "Исполнитель: _______________", "", 0, "L", false, 0, "")
	doc.CellFormat(90, 7, "Заказчик: _______________", "", 1, "L", false, 0, "")
}

// placeImage registers raw image bytes under a unique name and draws them at
// (x, y) scaled to fit the wMax×hMax box preserving aspect ratio.
func placeImage(doc *fpdf.Fpdf, name string, data []byte, x, y, wMax, hMax float64) error {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to decode image: %w", err)
	}

	imageType := strings.ToUpper(format)
	doc.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: imageType}, bytes.NewReader(data))
	if doc.Err() {
		err := doc.Error()
		doc.ClearError()
		return fmt.Errorf("failed to register image: %w", err)
	}

	w, h := fitBox(float64(cfg.Width), float64(cfg.Height), wMax, hMax)
	doc.ImageOptions(name, x, y, w, h, false, fpdf.ImageOptions{ImageType: imageType}, 0, "")
	if doc.Err() {
		err := doc.Error()
		doc.ClearError()
		return fmt.Errorf("failed to draw image: %w", err)
	}
	return nil
}

// fitBox scales (w, h) to fit within (wMax, hMax) preserving aspect ratio.
func fitBox(w, h, wMax, hMax float64) (float64, float64) {
	scale := wMax / w
	if h*scale > hMax {
		scale = hMax / h
	}
	return w * scale, h * scale
}

// appendix paginates one embedded photo per line item that carries one, each
// in its own block with a caption. A photo that fails to decode degrades to
// a placeholder line instead of aborting the document.
func (r *Renderer) appendix(doc *fpdf.Fpdf, items []models.LineItem) {
	var withImages []models.LineItem
	for _, item := range items {
		if item.Image != "" {
			withImages = append(withImages, item)
		}
	}
	if len(withImages) == 0 {
		return
	}

	doc.AddPage()
	doc.SetFont(fontFamily, "", 13)
	doc.CellFormat(contentWidthMM, 8, "Приложение: фотографии", "", 1, "L", false, 0, "")
	doc.Ln(2)

	for i, item := range withImages {
		doc.SetFont(fontFamily, "", 10)

		_, data, err := imgproc.DecodeDataURL(item.Image)
		if err != nil {
			doc.CellFormat(contentWidthMM, 6, fmt.Sprintf("%s — %s", item.Name, placeholderImage), "", 1, "L", false, 0, "")
			doc.Ln(2)
			continue
		}

		cfg, _, derr := image.DecodeConfig(bytes.NewReader(data))
		var hMM float64 = appendixMaxHMM
		if derr == nil {
			_, hMM = fitBox(float64(cfg.Width), float64(cfg.Height), appendixMaxWMM, appendixMaxHMM)
		}

		_, pageH := doc.GetPageSize()
		if doc.GetY()+hMM+8 > pageH-bottomReserveMM {
			doc.AddPage()
			doc.SetFont(fontFamily, "", 10)
		}

		doc.CellFormat(contentWidthMM, 6, item.Name, "", 1, "L", false, 0, "")
		y := doc.GetY()
		if err := placeImage(doc, fmt.Sprintf("appendix-%d-%s", i, item.ID), data, pageMarginMM, y, appendixMaxWMM, appendixMaxHMM); err != nil {
			doc.CellFormat(contentWidthMM, 6, placeholderImage, "", 1, "L", false, 0, "")
		} else {
			doc.SetY(y + hMM)
		}
		doc.Ln(4)
	}
}

// amountCell draws a right-aligned currency cell using the shared formatter.
func amountCell(doc *fpdf.Fpdf, w float64, v float64, border string) {
	doc.CellFormat(w, 6, money.FormatRub(v), border, 0, "R", false, 0, "")
}
