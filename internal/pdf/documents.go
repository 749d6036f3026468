package pdf

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"smeta-backend/internal/calc"
	"smeta-backend/internal/models"
	"smeta-backend/internal/money"
	"smeta-backend/internal/rubles"
)

// EstimateDoc bundles everything the estimate document needs, already
// resolved: the renderer does no storage or network access of its own.
type EstimateDoc struct {
	Company  models.CompanyProfile
	Logo     []byte
	Estimate models.Estimate
	Totals   calc.Totals
}

type ActDoc struct {
	Company    models.CompanyProfile
	Logo       []byte
	Number     string
	Date       time.Time
	ClientInfo string
	Items      []models.LineItem
	Total      float64
}

type ScheduleDoc struct {
	Company     models.CompanyProfile
	Logo        []byte
	ProjectName string
	Number      string
	Date        time.Time
	Stages      []models.WorkStage
}

var stageStatusLabels = map[models.StageStatus]string{
	models.StageStatusPlanned:    "Запланирован",
	models.StageStatusInProgress: "В работе",
	models.StageStatusCompleted:  "Завершён",
}

// Item table geometry. Numeric columns are right-aligned so currency values
// line up; changing a width must keep the sum at contentWidthMM.
var (
	itemColWidths = [6]float64{10, 70, 16, 14, 32, 38}
	itemColAligns = [6]string{"C", "L", "R", "C", "R", "R"}
	itemColTitles = [6]string{"№", "Наименование", "Кол-во", "Ед.", "Цена", "Сумма"}
)

// Estimate renders the itemized quote. Returns the PDF bytes and the
// deterministic filename.
func (r *Renderer) Estimate(d EstimateDoc) ([]byte, string, error) {
	doc, err := r.newDoc()
	if err != nil {
		return nil, "", err
	}

	r.header(doc, d.Company, d.Logo)

	doc.SetFont(fontFamily, "", 14)
	doc.CellFormat(contentWidthMM, 8, fmt.Sprintf("Смета № %s от %s", d.Estimate.Number, d.Estimate.Date.Format("02.01.2006")), "", 1, "L", false, 0, "")
	if d.Estimate.ClientInfo != "" {
		doc.SetFont(fontFamily, "", 10)
		doc.CellFormat(contentWidthMM, 6, "Заказчик: "+d.Estimate.ClientInfo, "", 1, "L", false, 0, "")
	}
	doc.Ln(4)

	r.itemsTable(doc, d.Estimate.Items)
	r.totalsBlock(doc, d.Estimate, d.Totals)
	r.signatures(doc)
	r.appendix(doc, d.Estimate.Items)

	if doc.Err() {
		return nil, "", fmt.Errorf("failed to render estimate: %w", doc.Error())
	}
	data, err := output(doc)
	if err != nil {
		return nil, "", err
	}
	return data, Filename(KindEstimate, d.Estimate.Number, d.Estimate.Date), nil
}

// CompletionAct renders the legal act certifying performed work; the payable
// amount is spelled out in words.
func (r *Renderer) CompletionAct(d ActDoc) ([]byte, string, error) {
	doc, err := r.newDoc()
	if err != nil {
		return nil, "", err
	}

	r.header(doc, d.Company, d.Logo)

	doc.SetFont(fontFamily, "", 14)
	doc.CellFormat(contentWidthMM, 8, fmt.Sprintf("Акт выполненных работ № %s от %s", d.Number, d.Date.Format("02.01.2006")), "", 1, "C", false, 0, "")
	doc.Ln(2)
	doc.SetFont(fontFamily, "", 10)
	if d.ClientInfo != "" {
		doc.CellFormat(contentWidthMM, 6, "Заказчик: "+d.ClientInfo, "", 1, "L", false, 0, "")
	}
	doc.CellFormat(contentWidthMM, 6, "Исполнитель: "+d.Company.Name, "", 1, "L", false, 0, "")
	doc.Ln(4)

	r.itemsTable(doc, d.Items)
	doc.Ln(2)

	doc.SetFont(fontFamily, "", 11)
	doc.CellFormat(contentWidthMM-itemColWidths[5], 7, "Итого к оплате:", "", 0, "R", false, 0, "")
	amountCell(doc, itemColWidths[5], d.Total, "")
	doc.Ln(9)
	doc.SetFont(fontFamily, "", 10)
	doc.MultiCell(contentWidthMM, 6, "Сумма прописью: "+rubles.Amount(d.Total), "", "L", false)
	doc.Ln(2)
	doc.MultiCell(contentWidthMM, 6, "Вышеперечисленные работы выполнены полностью и в срок. Заказчик претензий по объёму, качеству и срокам выполнения работ не имеет.", "", "L", false)

	r.signatures(doc)

	if doc.Err() {
		return nil, "", fmt.Errorf("failed to render act: %w", doc.Error())
	}
	data, err := output(doc)
	if err != nil {
		return nil, "", err
	}
	return data, Filename(KindAct, d.Number, d.Date), nil
}

// WorkSchedule renders the stage plan of a project.
func (r *Renderer) WorkSchedule(d ScheduleDoc) ([]byte, string, error) {
	doc, err := r.newDoc()
	if err != nil {
		return nil, "", err
	}

	r.header(doc, d.Company, d.Logo)

	doc.SetFont(fontFamily, "", 14)
	doc.CellFormat(contentWidthMM, 8, "График работ: "+d.ProjectName, "", 1, "L", false, 0, "")
	doc.Ln(4)

	widths := [5]float64{10, 80, 30, 30, 30}
	aligns := [5]string{"C", "L", "C", "C", "C"}
	titles := [5]string{"№", "Этап", "Начало", "Окончание", "Статус"}

	doc.SetFont(fontFamily, "", 10)
	doc.SetFillColor(235, 235, 235)
	for i := range titles {
		doc.CellFormat(widths[i], 7, titles[i], "1", 0, "C", true, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont(fontFamily, "", 9)
	for i, stage := range d.Stages {
		cells := [5]string{
			fmt.Sprintf("%d", i+1),
			stage.Name,
			formatNullDate(stage.StartDate.Valid, stage.StartDate.Time),
			formatNullDate(stage.EndDate.Valid, stage.EndDate.Time),
			stageStatusLabels[stage.Status],
		}
		for j := range cells {
			doc.CellFormat(widths[j], 6.5, cells[j], "1", 0, aligns[j], false, 0, "")
		}
		doc.Ln(-1)
	}

	r.signatures(doc)

	if doc.Err() {
		return nil, "", fmt.Errorf("failed to render schedule: %w", doc.Error())
	}
	data, err := output(doc)
	if err != nil {
		return nil, "", err
	}
	return data, Filename(KindSchedule, d.Number, d.Date), nil
}

func (r *Renderer) itemsTable(doc *fpdf.Fpdf, items []models.LineItem) {
	doc.SetFont(fontFamily, "", 10)
	doc.SetFillColor(235, 235, 235)
	for i := range itemColTitles {
		doc.CellFormat(itemColWidths[i], 7, itemColTitles[i], "1", 0, "C", true, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont(fontFamily, "", 9)
	for i, item := range items {
		cells := [6]string{
			fmt.Sprintf("%d", i+1),
			item.Name,
			trimFloat(item.Quantity),
			item.Unit,
			money.FormatRub(item.Price),
			money.FormatRub(item.Quantity * item.Price),
		}
		for j := range cells {
			doc.CellFormat(itemColWidths[j], 6.5, cells[j], "1", 0, itemColAligns[j], false, 0, "")
		}
		doc.Ln(-1)
	}
}

// totalsBlock mirrors the calculator output; nothing is recomputed here.
func (r *Renderer) totalsBlock(doc *fpdf.Fpdf, e models.Estimate, t calc.Totals) {
	doc.Ln(3)
	labelW := contentWidthMM - itemColWidths[5]
	valueW := itemColWidths[5]

	row := func(label string, v float64, size float64) {
		doc.SetFont(fontFamily, "", size)
		doc.CellFormat(labelW, 6.5, label, "", 0, "R", false, 0, "")
		amountCell(doc, valueW, v, "")
		doc.Ln(-1)
	}

	row("Материалы:", t.MaterialsTotal, 10)
	row("Работы:", t.WorkTotal, 10)
	row("Подытог:", t.Subtotal, 10)
	if e.Discount > 0 {
		label := "Скидка:"
		if e.DiscountType == models.DiscountPercent {
			label = fmt.Sprintf("Скидка (%s%%):", trimFloat(e.Discount))
		}
		row(label, -t.DiscountAmount, 10)
	}
	if e.Tax > 0 {
		row(fmt.Sprintf("Налог (%s%%):", trimFloat(e.Tax)), t.TaxAmount, 10)
	}
	row("Итого:", t.GrandTotal, 12)
}

func formatNullDate(valid bool, t time.Time) string {
	if !valid {
		return "—"
	}
	return t.Format("02.01.2006")
}

// trimFloat renders a quantity without trailing zeros (2 → "2", 2.5 → "2.5").
func trimFloat(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}
