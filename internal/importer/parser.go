// Package importer reads cylinder master data from spreadsheet exports.
package importer

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/MrJamesThe3rd/gastrack/internal/apperror"
	"github.com/MrJamesThe3rd/gastrack/internal/cylinder"
)

const (
	colSerial = "serial_number"
	colGas    = "gas_type"
	colSize   = "size"
	colStatus = "status"
)

// Header spellings seen in the wild, normalised to the canonical column.
var aliases = map[string]string{
	"serial_number": colSerial,
	"serialnumber":  colSerial,
	"serial":        colSerial,
	"gas_type":      colGas,
	"gastype":       colGas,
	"gas":           colGas,
	"product":       colGas,
	"size":          colSize,
	"capacity":      colSize,
	"status":        colStatus,
}

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse returns one AddParams per data row. The header row must name at
// least gas_type and size; serial_number and status are optional. Comma and
// semicolon separated files are both accepted.
func (p *Parser) Parse(r io.Reader) ([]cylinder.AddParams, error) {
	utf8r, charset, err := toUTF8(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	br := bufio.NewReader(utf8r)

	comma, err := sniffDelimiter(br)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(br)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, apperror.Validation("malformed csv: %v", err)
	}

	if len(rows) == 0 {
		return nil, apperror.Validation("csv is empty")
	}

	cols, err := headerIndex(rows[0])
	if err != nil {
		return nil, err
	}

	var params []cylinder.AddParams

	for i, row := range rows[1:] {
		if blank(row) {
			continue
		}

		add, err := parseRow(cols, row, i+2)
		if err != nil {
			return nil, err
		}

		params = append(params, add)
	}

	if len(params) == 0 {
		return nil, apperror.Validation("csv has no data rows")
	}

	slog.Debug("cylinder csv parsed", "charset", charset, "rows", len(params))

	return params, nil
}

func sniffDelimiter(br *bufio.Reader) (rune, error) {
	line, err := br.Peek(br.Size())
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return 0, fmt.Errorf("peek header: %w", err)
	}

	if i := strings.IndexByte(string(line), '\n'); i >= 0 {
		line = line[:i]
	}

	if strings.Count(string(line), ";") > strings.Count(string(line), ",") {
		return ';', nil
	}

	return ',', nil
}

func headerIndex(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))

	for i, cell := range header {
		name := strings.ToLower(strings.TrimSpace(cell))
		if canonical, ok := aliases[name]; ok {
			cols[canonical] = i
		}
	}

	for _, required := range []string{colGas, colSize} {
		if _, ok := cols[required]; !ok {
			return nil, apperror.Validation("csv header must include %s", required)
		}
	}

	return cols, nil
}

func parseRow(cols map[string]int, row []string, rowNum int) (cylinder.AddParams, error) {
	sizeText := cell(row, cols, colSize)

	size, err := strconv.Atoi(strings.TrimSuffix(strings.ToLower(sizeText), "l"))
	if err != nil {
		return cylinder.AddParams{}, apperror.Validation("row %d: size %q is not a number", rowNum, sizeText)
	}

	return cylinder.AddParams{
		SerialNumber: cell(row, cols, colSerial),
		GasType:      cell(row, cols, colGas),
		Size:         size,
		Status:       cylinder.Status(strings.ToLower(cell(row, cols, colStatus))),
	}, nil
}

func cell(row []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[i])
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}

	return true
}
