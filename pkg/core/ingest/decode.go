package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/Raleighawesome/salary-dashboard/pkg/core/schema"
)

// MaxFileSize caps uploads; anything larger is rejected before decoding.
const MaxFileSize = 10 << 20

var supportedExtensions = map[string]bool{
	"csv":  true,
	"xlsx": true,
	"xls":  true,
}

// CheckFile pre-validates name and size before any decoding happens.
func CheckFile(fileName string, size int) error {
	ext := fileExt(fileName)
	if !supportedExtensions[ext] {
		return fmt.Errorf("Unsupported file type: %s. Please use CSV, XLSX, or XLS files.", ext)
	}
	if size > MaxFileSize {
		return fmt.Errorf("File is too large. Maximum supported size is %d MB.", MaxFileSize>>20)
	}
	return nil
}

// DecodeFile turns raw bytes into a sequence of RawRow keyed by
// normalized header. Rows whose every cell is blank are dropped.
func DecodeFile(fileName string, data []byte) ([]schema.RawRow, error) {
	switch fileExt(fileName) {
	case "csv":
		return decodeCSV(data)
	case "xlsx":
		return decodeExcel(data)
	case "xls":
		return decodeXLS(data)
	default:
		return nil, fmt.Errorf("Unsupported file type: %s. Please use CSV, XLSX, or XLS files.", fileExt(fileName))
	}
}

// decodeCSV reads delimited text leniently: BOM and UTF-16 input is
// transcoded, quoting is lax, and short/long rows are padded/truncated
// to the header width.
func decodeCSV(data []byte) ([]schema.RawRow, error) {
	decoded, err := transcodeToUTF8(data)
	if err != nil {
		return nil, fmt.Errorf("could not decode file text: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headerRow, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("file is empty: no header row found")
		}
		return nil, fmt.Errorf("could not read header row: %w", err)
	}
	headers := normalizeHeaders(headerRow)

	var rows []schema.RawRow
	for {
		cells, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Malformed row, skip rather than abort the whole file.
			continue
		}
		if row, ok := zipRow(headers, cells); ok {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// decodeExcel reads the first sheet of a workbook. The bulk GetRows read
// is preferred; if it yields no data rows the streaming row iterator is
// tried before giving up, since some generators emit sheets the bulk
// reader resolves as empty.
func decodeExcel(data []byte) ([]schema.RawRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("could not open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet has no sheets")
	}
	sheet := sheets[0]

	grid, err := f.GetRows(sheet)
	if err != nil || len(grid) < 2 {
		grid, err = streamRows(f, sheet)
		if err != nil {
			return nil, fmt.Errorf("could not read sheet %q: %w", sheet, err)
		}
	}
	if len(grid) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheet)
	}
	return rowsFromGrid(grid), nil
}

// decodeXLS reads a legacy BIFF workbook through the first sheet. Files
// carrying a .xls name but holding zip-based workbook bytes are common
// in the wild; those fall through to the OPC reader.
func decodeXLS(data []byte) ([]schema.RawRow, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data))
	if err != nil {
		return decodeExcel(data)
	}

	sh, err := workbook.GetSheet(0)
	if err != nil {
		return nil, fmt.Errorf("could not read legacy spreadsheet: %w", err)
	}

	var grid [][]string
	for i := 0; i <= sh.GetNumberRows(); i++ {
		r, err := sh.GetRow(i)
		if err != nil {
			continue
		}
		var cells []string
		for _, col := range r.GetCols() {
			cells = append(cells, col.GetString())
		}
		grid = append(grid, cells)
	}
	if len(grid) == 0 {
		return nil, fmt.Errorf("legacy spreadsheet is empty")
	}
	return rowsFromGrid(grid), nil
}

// rowsFromGrid zips data rows against the normalized header row.
func rowsFromGrid(grid [][]string) []schema.RawRow {
	headers := normalizeHeaders(grid[0])
	var rows []schema.RawRow
	for _, cells := range grid[1:] {
		if row, ok := zipRow(headers, cells); ok {
			rows = append(rows, row)
		}
	}
	return rows
}

func streamRows(f *excelize.File, sheet string) ([][]string, error) {
	iter, err := f.Rows(sheet)
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var grid [][]string
	for iter.Next() {
		cells, err := iter.Columns()
		if err != nil {
			return nil, err
		}
		grid = append(grid, cells)
	}
	return grid, iter.Error()
}

// transcodeToUTF8 strips any BOM and converts UTF-16 input to UTF-8.
func transcodeToUTF8(data []byte) ([]byte, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(dec, data)
	return out, err
}

func normalizeHeaders(headerRow []string) []string {
	headers := make([]string, len(headerRow))
	for i, h := range headerRow {
		headers[i] = schema.NormalizeHeader(h)
	}
	return headers
}

// zipRow pairs cells with headers, padding or truncating to the header
// width. Returns false for rows whose every cell is blank.
func zipRow(headers []string, cells []string) (schema.RawRow, bool) {
	row := make(schema.RawRow, len(headers))
	blank := true
	for i, h := range headers {
		if h == "" {
			continue
		}
		var v string
		if i < len(cells) {
			v = strings.TrimSpace(cells[i])
		}
		row[h] = v
		if v != "" {
			blank = false
		}
	}
	if blank {
		return nil, false
	}
	return row, true
}

func fileExt(fileName string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
}
