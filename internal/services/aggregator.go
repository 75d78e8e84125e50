package services

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/formflow/forms-service/internal/models"
)

// Fixed leading columns of every aggregated table.
const (
	ColumnFormTitle = "formTitle"
	ColumnTimestamp = "timestamp"
)

// CSVExportFilename is the download name of the aggregated CSV.
const CSVExportFilename = "datos_formularios.csv"

// ExcelExportFilename is the download name of the aggregated workbook.
const ExcelExportFilename = "datos_formularios.xlsx"

// Table is the rectangular view over heterogeneous submission records.
// Columns always start with formTitle and timestamp, followed by every
// question label ever seen, in first-seen order. Every row has a value
// (possibly empty) for every column.
type Table struct {
	Columns []string            `json:"columns"`
	Rows    []map[string]string `json:"rows"`
}

// FormCount is one bar of the per-form chart.
type FormCount struct {
	FormTitle string `json:"formTitle"`
	Count     int    `json:"count"`
}

// AggregatorService turns submission records into the tabular dataset and its
// export serializations.
type AggregatorService interface {
	Aggregate(records []*models.SubmissionRecord) *Table
	CountsByForm(records []*models.SubmissionRecord) []FormCount
	ToCSV(table *Table) string
	ToExcel(table *Table) ([]byte, error)
}

type aggregatorService struct {
	logger *slog.Logger
}

func NewAggregatorService(logger *slog.Logger) AggregatorService {
	return &aggregatorService{logger: logger}
}

// Aggregate discovers the union of question labels across all records and
// builds one row per record. The column set only ever grows as records are
// scanned; cells for columns a record never answered stay empty.
func (a *aggregatorService) Aggregate(records []*models.SubmissionRecord) *Table {
	columns := []string{ColumnFormTitle, ColumnTimestamp}
	seen := map[string]bool{ColumnFormTitle: true, ColumnTimestamp: true}

	rows := make([]map[string]string, 0, len(records))
	for _, record := range records {
		row := map[string]string{
			ColumnFormTitle: record.FormTitle,
			ColumnTimestamp: record.Timestamp.UTC().Format(time.RFC3339),
		}
		for _, answer := range record.Answers {
			if !seen[answer.Question] {
				seen[answer.Question] = true
				columns = append(columns, answer.Question)
			}
			row[answer.Question] = answer.Answer
		}
		rows = append(rows, row)
	}

	a.logger.Debug("Aggregated submissions", "records", len(rows), "columns", len(columns))
	return &Table{Columns: columns, Rows: rows}
}

// CountsByForm counts records per form title, in first-occurrence order.
func (a *aggregatorService) CountsByForm(records []*models.SubmissionRecord) []FormCount {
	index := make(map[string]int)
	counts := make([]FormCount, 0)
	for _, record := range records {
		if i, ok := index[record.FormTitle]; ok {
			counts[i].Count++
			continue
		}
		index[record.FormTitle] = len(counts)
		counts = append(counts, FormCount{FormTitle: record.FormTitle, Count: 1})
	}
	return counts
}

// ToCSV serializes the table: header row of raw column labels, then one line
// per row with every cell wrapped in double quotes. Embedded quotes and
// commas are deliberately not escaped beyond the wrapping; the format is the
// simple contract consumers of datos_formularios.csv already parse, not
// RFC 4180.
func (a *aggregatorService) ToCSV(table *Table) string {
	var b strings.Builder
	b.WriteString(strings.Join(table.Columns, ","))
	b.WriteByte('\n')

	cells := make([]string, len(table.Columns))
	for _, row := range table.Rows {
		for i, column := range table.Columns {
			cells[i] = `"` + row[column] + `"`
		}
		b.WriteString(strings.Join(cells, ","))
		b.WriteByte('\n')
	}
	return b.String()
}

// ToExcel serializes the table as a single-sheet workbook.
func (a *aggregatorService) ToExcel(table *Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	header := make([]interface{}, len(table.Columns))
	for i, column := range table.Columns {
		header[i] = column
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for r, row := range table.Rows {
		cells := make([]interface{}, len(table.Columns))
		for i, column := range table.Columns {
			cells[i] = row[column]
		}
		start, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return nil, fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, start, &cells); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", r+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
