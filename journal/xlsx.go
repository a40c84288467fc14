package journal

import (
	"fmt"
	"io"

	"github.com/rustyeddy/dialysis/treatment"
	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Treatments"

// WriteXLSX writes entries as a spreadsheet with the same columns as
// WriteCSV. Numeric columns are stored as numbers so they can be charted.
func WriteXLSX(out io.Writer, entries []Entry) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(xlsxSheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("delete default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	for col, h := range csvHeader {
		if err := setCell(f, col+1, 1, h); err != nil {
			return err
		}
	}
	last, err := excelize.CoordinatesToCellName(len(csvHeader), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(xlsxSheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("set header style: %w", err)
	}

	for i, e := range entries {
		if err := writeXLSXRow(f, i+2, e); err != nil {
			return err
		}
	}

	if err := f.SetPanes(xlsxSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func writeXLSXRow(f *excelize.File, row int, e Entry) error {
	r := e.Record
	m := e.Metrics()

	completed := ""
	if !e.Completed.IsZero() {
		completed = e.Completed.UTC().Format("2006-01-02 15:04:05")
	}

	text := []string{
		e.SessionID,
		r.Started().UTC().Format("2006-01-02 15:04:05"),
		completed,
	}
	for col, v := range text {
		if err := setCell(f, col+1, row, v); err != nil {
			return err
		}
	}

	// numeric cells are written from their exact decimal text
	numbers := []string{
		tenths(r.PreWeight),
		tenths(r.DryWeight),
		tenths(r.PostWeight),
		fmt.Sprint(r.TreatmentTime),
		tenths(treatment.DeltaValue(r.DeltaSelection)),
		tenths(m.KGoal),
		tenths(m.ActualRemoval),
		tenths(m.Variance),
		tenths(m.Percentage),
		hundredths(m.UFR),
	}
	for i, v := range numbers {
		cell, err := excelize.CoordinatesToCellName(len(text)+i+1, row)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetCellDefault(xlsxSheet, cell, v); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	return nil
}

func setCell(f *excelize.File, col, row int, v any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	if err := f.SetCellValue(xlsxSheet, cell, v); err != nil {
		return fmt.Errorf("set cell %s: %w", cell, err)
	}
	return nil
}
