package pipeline

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"rollcall/internal"
	"rollcall/internal/util"
)

// DecodeUTF16TSV reads a tab-separated UTF-16 export with no header row.
// Little-endian is assumed unless a byte order mark says otherwise.
// Fields are never quoted, so quote characters are kept as written.
func DecodeUTF16TSV(in internal.Input) (internal.Table, error) {
	decoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	table, err := readTabbed(transform.NewReader(bytes.NewReader(in.Content), decoder))
	if err != nil {
		return nil, &internal.DecodeError{Input: in.Name, Encoding: "UTF-16 tab-separated text", Err: err}
	}
	return table, nil
}

func DecodeCSV(in internal.Input) (internal.Table, error) {
	table, err := readDelimited(bytes.NewReader(in.Content), ',')
	if err != nil {
		return nil, &internal.DecodeError{Input: in.Name, Encoding: "comma-separated text", Err: err}
	}
	return table, nil
}

// readTabbed splits each non-blank line on tabs.
func readTabbed(r io.Reader) (internal.Table, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	table := internal.Table{}
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if len(table) == 0 {
			line = util.StripBOM(line)
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		table = append(table, strings.Split(line, "\t"))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return table, nil
}

func readDelimited(r io.Reader, comma rune) (internal.Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) > 0 && len(records[0]) > 0 {
		records[0][0] = util.StripBOM(records[0][0])
	}
	return records, nil
}

// DecodeHTML flattens every table row in the document, in document order.
func DecodeHTML(in internal.Input) (internal.Table, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(in.Content))
	if err != nil {
		return nil, &internal.DecodeError{Input: in.Name, Encoding: "HTML", Err: err}
	}

	table := internal.Table{}
	doc.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := []string{}
		row.ChildrenFiltered("th,td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, util.NormalizeSpaces(strings.ReplaceAll(cell.Text(), "\u00a0", " ")))
		})
		if len(cells) > 0 {
			table = append(table, cells)
		}
	})
	return table, nil
}

// DecodeXLSX reads the first sheet of a workbook.
func DecodeXLSX(in internal.Input) (internal.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(in.Content))
	if err != nil {
		return nil, &internal.DecodeError{Input: in.Name, Encoding: "xlsx workbook", Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return internal.Table{}, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &internal.DecodeError{Input: in.Name, Encoding: "xlsx workbook", Err: err}
	}
	return rows, nil
}
