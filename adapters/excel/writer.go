package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"churnboard/domain/customer"
	"churnboard/internal/dataset"

	"github.com/xuri/excelize/v2"
)

// WriteRows writes headers and rows to path as CSV or XLSX, chosen by extension.
// onRow, when non-nil, is called once per data row written.
func WriteRows(path string, headers []string, rows []dataset.RawRow, onRow func()) error {
	if fileTypeOf(path) == "csv" {
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create CSV file: %w", err)
		}
		if err := writeCSV(file, headers, rows, onRow); err != nil {
			file.Close()
			return err
		}
		return file.Close()
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := streamRows(f, headers, len(rows), func(i int) []string {
		return rowCells(rows[i], headers)
	}, onRow); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save Excel file: %w", err)
	}
	return nil
}

// WriteTable writes the table as an XLSX workbook with a single sheet.
func WriteTable(w io.Writer, t *customer.Table) error {
	if t == nil {
		return fmt.Errorf("no table to export")
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := streamRows(f, t.Columns, t.Len(), func(i int) []string {
		return dataset.Cells(t.Records[i], t.Columns)
	}, nil); err != nil {
		return err
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write Excel workbook: %w", err)
	}
	return nil
}

func writeCSV(w io.Writer, headers []string, rows []dataset.RawRow, onRow func()) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(headers); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(rowCells(row, headers)); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
		if onRow != nil {
			onRow()
		}
	}
	cw.Flush()
	return cw.Error()
}

func streamRows(f *excelize.File, headers []string, n int, cells func(int) []string, onRow func()) error {
	sw, err := f.NewStreamWriter(DefaultSheet)
	if err != nil {
		return fmt.Errorf("failed to open sheet writer: %w", err)
	}

	if err := sw.SetRow("A1", toValues(headers)); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}
	for i := 0; i < n; i++ {
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(axis, toValues(cells(i))); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
		if onRow != nil {
			onRow()
		}
	}
	return sw.Flush()
}

func rowCells(row dataset.RawRow, headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		out[i] = row[h]
	}
	return out
}

func toValues(cells []string) []interface{} {
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	return values
}
