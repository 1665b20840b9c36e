package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"churnboard/domain/core"
	"churnboard/domain/customer"
	"churnboard/internal/dataset"
	"churnboard/ports"

	"github.com/xuri/excelize/v2"
)

var _ ports.TableSource = (*DataReader)(nil)

// DataReader handles reading Excel and CSV files
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	sheet    string
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(cfg ExcelConfig) *DataReader {
	sheet := cfg.Sheet
	if sheet == "" {
		sheet = DefaultSheet
	}
	return &DataReader{filePath: cfg.FilePath, fileType: fileTypeOf(cfg.FilePath), sheet: sheet}
}

func fileTypeOf(path string) string {
	if strings.ToLower(filepath.Ext(path)) == ".csv" {
		return "csv"
	}
	return "xlsx"
}

// Describe names the file being read
func (r *DataReader) Describe() string {
	return r.filePath
}

// Load reads the file and converts it to a customer table
func (r *DataReader) Load(ctx context.Context) (*customer.Table, dataset.LoadReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, dataset.LoadReport{}, err
	}

	data, err := r.ReadData()
	if err != nil {
		return nil, dataset.LoadReport{}, err
	}

	table, report := dataset.FromRows(data.Headers, data.Rows)
	if n := report.Malformed(); n > 0 {
		log.Printf("[DataReader] %d malformed cells in %s: %v", n, r.filePath, report.MalformedCells)
	}
	return table, report, nil
}

// ReadData reads data from Excel or CSV files into structured format
func (r *DataReader) ReadData() (*ExcelData, error) {
	log.Printf("[DataReader] Starting to read %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, core.NewSourceNotFoundError(r.filePath)
	}

	switch r.fileType {
	case "csv":
		return r.readCSVData()
	default:
		return r.readExcelData()
	}
}

// readExcelData reads the configured sheet into structured format
func (r *DataReader) readExcelData() (*ExcelData, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(r.sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", r.sheet, err)
	}
	log.Printf("[DataReader] %s read in %.2fms (%d rows)", r.sheet, float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	return r.processRows(rows), nil
}

// readCSVData reads CSV data into structured format
func (r *DataReader) readCSVData() (*ExcelData, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	readStart := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	log.Printf("[DataReader] CSV file read in %.2fms (%d rows)", float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	return r.processRows(rows), nil
}

// processRows converts raw string rows into ExcelData format. An empty file
// yields no headers; a header-only file yields no rows.
func (r *DataReader) processRows(rows [][]string) *ExcelData {
	if len(rows) == 0 {
		return &ExcelData{Headers: []string{}}
	}

	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = strings.TrimSpace(strings.TrimPrefix(header, "\ufeff"))
	}

	dataRows := make([]dataset.RawRow, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		rowData := make(dataset.RawRow, len(headers))
		for j, cell := range row {
			if j < len(headers) {
				rowData[headers[j]] = strings.TrimSpace(cell)
			}
		}
		dataRows = append(dataRows, rowData)
	}

	log.Printf("[DataReader] %s file processed (%d columns, %d rows)",
		strings.ToUpper(r.fileType), len(headers), len(dataRows))

	return &ExcelData{
		Headers: headers,
		Rows:    dataRows,
	}
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
