package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/Thooms-coder/Shibui-Planner/internal/models"
)

// Generator is an interface so report exports are easy to mock in tests.
type Generator interface {
	GenerateWeeklyReport(data WeeklyReportData) (string, error)
}

// ReportGenerator writes balance reports under RootDir.
type ReportGenerator struct {
	RootDir  string
	fontName string
}

// WeeklyReportData is one user's Monday-anchored week.
type WeeklyReportData struct {
	UserName  string
	WeekStart time.Time
	Score     *float64 // nil = no feedback recorded this week
	Rows      []models.HistoryRow
	Filename  string // basename only; generated when empty
}

func NewReportGenerator(rootDir string) *ReportGenerator {
	return &ReportGenerator{
		RootDir:  filepath.Clean(rootDir),
		fontName: "Helvetica",
	}
}

func (g *ReportGenerator) GenerateWeeklyReport(data WeeklyReportData) (string, error) {
	filename := data.Filename
	if filename == "" {
		filename = fmt.Sprintf("weekly_balance_%s.pdf", data.WeekStart.Format("2006-01-02"))
	}
	absPath, err := g.ensureTarget(filename)
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Weekly Balance Report", false)
	pdf.SetAuthor("Shibui Planner", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 18)
	pdf.CellFormat(0, 10, "WEEKLY BALANCE REPORT", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 12)
	sub := fmt.Sprintf("Week of %s — %s",
		data.WeekStart.Format("Jan 2, 2006"),
		data.WeekStart.AddDate(0, 0, 6).Format("Jan 2, 2006"),
	)
	pdf.CellFormat(0, 7, sub, "", 1, "C", false, 0, "")
	g.hr(pdf)
	pdf.Ln(3)

	g.kvLine(pdf, "User", data.UserName)
	score := "NA"
	if data.Score != nil {
		score = fmt.Sprintf("%.2f", *data.Score)
	}
	g.kvLine(pdf, "Balance score", score)
	pdf.Ln(2)
	g.hr(pdf)

	g.sectionTitle(pdf, "Assignments")
	if len(data.Rows) == 0 {
		pdf.MultiCell(0, 6, "No assignments scheduled this week.", "", "L", false)
	}
	for _, row := range data.Rows {
		line := fmt.Sprintf("%s  [%s]  %s — %s  (%s)",
			row.StartTime.Format("Mon 15:04"),
			row.Category,
			row.TaskName,
			row.EndTime.Format("15:04"),
			row.Status,
		)
		if row.MoodBefore != nil && row.MoodAfter != nil {
			line += fmt.Sprintf("  mood %d→%d", *row.MoodBefore, *row.MoodAfter)
		}
		pdf.MultiCell(0, 6, line, "", "L", false)
	}

	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(g.fontName, "", 10)
		pdf.CellFormat(0, 10,
			fmt.Sprintf("Page %d/{nb}", pdf.PageNo()),
			"", 0, "C", false, 0, "",
		)
	})

	if err := pdf.OutputFileAndClose(absPath); err != nil {
		return "", err
	}
	return absPath, nil
}

func (g *ReportGenerator) sectionTitle(pdf *gofpdf.Fpdf, s string) {
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 7, s, "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
}

func (g *ReportGenerator) kvLine(pdf *gofpdf.Fpdf, key, val string) {
	pdf.SetFont(g.fontName, "B", 11)
	pdf.CellFormat(45, 6, key+":", "", 0, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, val, "", 1, "L", false, 0, "")
}

func (g *ReportGenerator) hr(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 1.5
	pdf.SetLineWidth(0.2)
	pdf.Line(20, y, 190, y)
	pdf.SetY(y + 2)
}

func (g *ReportGenerator) ensureTarget(filename string) (string, error) {
	if err := os.MkdirAll(g.RootDir, 0o755); err != nil {
		return "", fmt.Errorf("create files dir: %w", err)
	}
	filename = filepath.Base(filename)
	return filepath.Join(g.RootDir, filename), nil
}
