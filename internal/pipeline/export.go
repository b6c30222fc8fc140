package pipeline

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/xuri/excelize/v2"

	"rollcall/internal"
	"rollcall/internal/util"
)

func reportHeaders(withStatusCode bool) []string {
	if withStatusCode {
		return []string{"Name", "Status Code", "Status"}
	}
	return []string{"Name", "Status"}
}

func reportRecord(row internal.ResultRow, withStatusCode bool) []string {
	if withStatusCode {
		return []string{row.Name, strconv.Itoa(row.StatusCode), string(row.Status)}
	}
	return []string{row.Name, string(row.Status)}
}

// WriteCSV writes the report without the rank column.
func WriteCSV(w io.Writer, rows []internal.ResultRow, withStatusCode bool) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(reportHeaders(withStatusCode)); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(reportRecord(row, withStatusCode)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteXLSX(w io.Writer, rows []internal.ResultRow, withStatusCode bool) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	for i, h := range reportHeaders(withStatusCode) {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, row := range rows {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}

		set(1, row.Name)
		if withStatusCode {
			set(2, row.StatusCode)
			set(3, string(row.Status))
		} else {
			set(2, string(row.Status))
		}
	}

	_, err := f.WriteTo(w)
	return err
}

// WriteReport replaces path with the report. The file is written next to its
// destination and renamed, so a failed run leaves any previous report intact.
func WriteReport(path string, rows []internal.ResultRow, withStatusCode bool) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	write := WriteCSV
	if util.HasExt(path, ".xlsx") {
		write = WriteXLSX
	}
	if err := write(tmp, rows, withStatusCode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

// RenderTable formats rows for the terminal, rank first.
func RenderTable(rows []internal.ResultRow, withStatusCode bool) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault

	header := table.Row{"#"}
	for _, h := range reportHeaders(withStatusCode) {
		header = append(header, h)
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := table.Row{row.Rank}
		for _, v := range reportRecord(row, withStatusCode) {
			r = append(r, v)
		}
		tw.AppendRow(r)
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
