package services

import (
	"strconv"
	"strings"

	"onboarding/models"

	"github.com/xuri/excelize/v2"
)

// Cell is one (column header, formatted value) pair of an export row.
type Cell struct {
	Header string
	Value  string
}

// Row is one exported record, in column order.
type Row []Cell

// Project maps records onto the category's fixed export columns. Rows carry a
// 1-based SNo in input order; empty sources render their column placeholder
// and multi-file slots render as a comma-joined URL list. Pure, no I/O.
func Project(cat models.Category, records []models.Record) []Row {
	cols := ColumnsFor(cat)
	rows := make([]Row, 0, len(records))
	for i, rec := range records {
		row := make(Row, 0, len(cols)+1)
		row = append(row, Cell{Header: "SNo", Value: strconv.Itoa(i + 1)})
		for _, col := range cols {
			row = append(row, Cell{Header: col.Header, Value: cellValue(col, rec)})
		}
		rows = append(rows, row)
	}
	return rows
}

func cellValue(col Column, rec models.Record) string {
	var v string
	switch {
	case col.Timestamp:
		if !rec.CreatedAt.IsZero() {
			v = rec.CreatedAt.UTC().Format("Mon Jan 02 2006")
		}
	case col.File:
		v = strings.Join(rec.FileURLs(col.Field), ", ")
	default:
		v = rec.FieldValue(col.Field)
	}
	if v == "" {
		return col.Placeholder
	}
	return v
}

// Workbook renders projected rows into a single-sheet xlsx workbook with the
// category's header row, ready to stream as an attachment.
func Workbook(sch models.Schema, rows []Row) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sch.SheetName); err != nil {
		return nil, err
	}

	headers := []interface{}{"SNo"}
	for _, col := range ColumnsFor(sch.Category) {
		headers = append(headers, col.Header)
	}
	if err := f.SetSheetRow(sch.SheetName, "A1", &headers); err != nil {
		return nil, err
	}

	for i, row := range rows {
		values := make([]interface{}, len(row))
		for j, cell := range row {
			values[j] = cell.Value
		}
		ref, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sch.SheetName, ref, &values); err != nil {
			return nil, err
		}
	}
	return f, nil
}
