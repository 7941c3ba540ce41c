package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	scanerrors "github.com/lichi50062/logstats/internal/errors"
	"github.com/lichi50062/logstats/pkg/contracts/domain"
)

const (
	sheetSummary      = "Summary"
	sheetPerFile      = "Per File"
	sheetDistribution = "Distribution"
)

var statColumns = []string{
	"Count", "Min (ms)", "Max (ms)", "Avg (ms)",
	"Median (ms)", "P90 (ms)", "P95 (ms)", "P99 (ms)",
}

// ExcelExporter renders a scan result as an Excel workbook
type ExcelExporter struct {
	logger *slog.Logger
}

// NewExcelExporter creates an exporter
func NewExcelExporter(logger *slog.Logger) *ExcelExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExcelExporter{logger: logger}
}

// DefaultOutputName derives the workbook file name from a timestamp,
// e.g. duration_analysis_20260831_154500.xlsx.
func DefaultOutputName(prefix string, now time.Time) string {
	if prefix == "" {
		prefix = "duration_analysis"
	}
	return fmt.Sprintf("%s_%s.xlsx", prefix, now.Format("20060102_150405"))
}

// Export writes the workbook to path: an overall summary sheet, a per-file
// breakdown sheet, and, when records exist, a chart sheet with all values
// sorted ascending under a line chart.
func (e *ExcelExporter) Export(result *domain.ScanResult, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	styles, err := newStyleSet(f)
	if err != nil {
		return scanerrors.ExportFailed(err)
	}

	if err := e.writeSummary(f, styles, result.Overall); err != nil {
		return scanerrors.ExportFailed(err)
	}
	if err := e.writePerFile(f, styles, result.PerFile); err != nil {
		return scanerrors.ExportFailed(err)
	}
	if result.HasRecords() {
		if err := e.writeDistribution(f, styles, result.Records); err != nil {
			return scanerrors.ExportFailed(err)
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return scanerrors.ExportFailed(err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return scanerrors.ExportFailed(err)
	}

	e.logger.Info("workbook written",
		slog.String("path", path),
		slog.Int("records", len(result.Records)),
		slog.Int("files", len(result.PerFile)))
	return nil
}

// styleSet holds the shared cell styles of the workbook
type styleSet struct {
	header int
	cell   int
	number int
}

func newStyleSet(f *excelize.File) (*styleSet, error) {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D7E4BC"}, Pattern: 1},
		Border:    border,
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})
	if err != nil {
		return nil, err
	}

	cell, err := f.NewStyle(&excelize.Style{Border: border})
	if err != nil {
		return nil, err
	}

	// Built-in format 2 is "0.00".
	number, err := f.NewStyle(&excelize.Style{Border: border, NumFmt: 2})
	if err != nil {
		return nil, err
	}

	return &styleSet{header: header, cell: cell, number: number}, nil
}

func statRow(s domain.Statistics) []interface{} {
	return []interface{}{
		s.Count, s.Min, s.Max, s.Avg, s.Median, s.P90, s.P95, s.P99,
	}
}

func (e *ExcelExporter) writeSummary(f *excelize.File, styles *styleSet, overall domain.Statistics) error {
	// Rename the default sheet rather than adding one.
	if err := f.SetSheetName(f.GetSheetName(0), sheetSummary); err != nil {
		return err
	}

	header := make([]interface{}, len(statColumns))
	for i, col := range statColumns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheetSummary, "A1", &header); err != nil {
		return err
	}
	row := statRow(overall)
	if err := f.SetSheetRow(sheetSummary, "A2", &row); err != nil {
		return err
	}

	if err := f.SetColWidth(sheetSummary, "A", "H", 15); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetSummary, "A1", "H1", styles.header); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetSummary, "A2", "A2", styles.cell); err != nil {
		return err
	}
	return f.SetCellStyle(sheetSummary, "B2", "H2", styles.number)
}

func (e *ExcelExporter) writePerFile(f *excelize.File, styles *styleSet, perFile map[string]domain.Statistics) error {
	if _, err := f.NewSheet(sheetPerFile); err != nil {
		return err
	}

	header := make([]interface{}, 0, len(statColumns)+1)
	header = append(header, "File")
	for _, col := range statColumns {
		header = append(header, col)
	}
	if err := f.SetSheetRow(sheetPerFile, "A1", &header); err != nil {
		return err
	}

	names := make([]string, 0, len(perFile))
	for name := range perFile {
		names = append(names, name)
	}
	sort.Strings(names)

	for i, name := range names {
		row := append([]interface{}{name}, statRow(perFile[name])...)
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetPerFile, cell, &row); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(sheetPerFile, "A", "A", 40); err != nil {
		return err
	}
	if err := f.SetColWidth(sheetPerFile, "B", "I", 15); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetPerFile, "A1", "I1", styles.header); err != nil {
		return err
	}
	if len(names) > 0 {
		last := len(names) + 1
		if err := f.SetCellStyle(sheetPerFile, "A2", fmt.Sprintf("B%d", last), styles.cell); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetPerFile, "C2", fmt.Sprintf("I%d", last), styles.number); err != nil {
			return err
		}
	}
	return nil
}

func (e *ExcelExporter) writeDistribution(f *excelize.File, styles *styleSet, records []domain.Record) error {
	if _, err := f.NewSheet(sheetDistribution); err != nil {
		return err
	}

	values := make([]int64, len(records))
	for i, r := range records {
		values[i] = r.Value
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	header := []interface{}{"Index", "Duration (ms)"}
	if err := f.SetSheetRow(sheetDistribution, "A1", &header); err != nil {
		return err
	}
	for i, v := range values {
		row := []interface{}{i + 1, v}
		if err := f.SetSheetRow(sheetDistribution, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}

	if err := f.SetCellStyle(sheetDistribution, "A1", "B1", styles.header); err != nil {
		return err
	}
	if err := f.SetColWidth(sheetDistribution, "A", "A", 10); err != nil {
		return err
	}
	if err := f.SetColWidth(sheetDistribution, "B", "B", 15); err != nil {
		return err
	}

	last := len(values) + 1
	chart := &excelize.Chart{
		Type: excelize.Line,
		Series: []excelize.ChartSeries{{
			Name:       "Duration",
			Categories: fmt.Sprintf("'%s'!$A$2:$A$%d", sheetDistribution, last),
			Values:     fmt.Sprintf("'%s'!$B$2:$B$%d", sheetDistribution, last),
			Line:       excelize.ChartLine{Width: 1.5},
		}},
		Title:  []excelize.RichTextRun{{Text: "Duration distribution"}},
		XAxis:  excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: "Sample index"}}},
		YAxis:  excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: "Duration (ms)"}}},
		Legend: excelize.ChartLegend{Position: "bottom"},
		Dimension: excelize.ChartDimension{
			Width:  720,
			Height: 460,
		},
	}
	return f.AddChart(sheetDistribution, "D2", chart)
}
