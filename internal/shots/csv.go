package shots

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/banshee-data/swing.report/internal/units"
)

// MaxCSVBytes bounds the size of an imported session export.
const MaxCSVBytes = 8 << 20

// ErrEmptyCSV is returned when an export carries no header row.
var ErrEmptyCSV = errors.New("csv export has no header")

var headerUnit = regexp.MustCompile(`^(.*?)\s*[\(\[]([^\)\]]*)[\)\]]\s*$`)

// indexHeaders are normalized header names treated as the shot number.
var indexHeaders = map[string]bool{
	"shot index": true,
	"shot":       true,
	"shot no":    true,
	"coup":       true,
	"n coup":     true,
	"no":         true,
	"":           true,
}

// ReadCSV parses a launch monitor export with one header row. Headers of the
// form "Carry (m)" or "Carry [m]" yield a column labelled Carry with unit m.
// Both comma and semicolon separated files are accepted; with semicolons a
// decimal comma is also accepted.
func ReadCSV(r io.Reader) ([]Column, []Shot, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxCSVBytes+1))
	if err != nil {
		return nil, nil, fmt.Errorf("read csv: %w", err)
	}
	if len(data) > MaxCSVBytes {
		return nil, nil, fmt.Errorf("csv export too large (max %d bytes)", MaxCSVBytes)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = detectDelimiter(data)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, ErrEmptyCSV
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read csv header: %w", err)
	}

	columns, indexCol := headerColumns(header)
	var out []Shot
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read csv line %d: %w", line, err)
		}
		if blankRecord(rec) {
			continue
		}
		shot := Shot{Values: make(map[string]Value, len(columns))}
		col := 0
		for i, cell := range rec {
			if i == indexCol {
				if n, err := strconv.Atoi(strings.TrimSpace(cell)); err == nil && n > 0 {
					shot.Index = n
				}
				continue
			}
			if i >= len(header) {
				break
			}
			shot.Values[columns[col].Key] = parseCell(cell, cr.Comma == ';')
			col++
		}
		out = append(out, shot)
	}
	return columns, out, nil
}

func detectDelimiter(data []byte) rune {
	first := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		first = data[:i]
	}
	if bytes.Count(first, []byte(";")) > bytes.Count(first, []byte(",")) {
		return ';'
	}
	return ','
}

func headerColumns(header []string) ([]Column, int) {
	indexCol := -1
	seen := make(map[string]int)
	var columns []Column
	for i, h := range header {
		label := strings.TrimSpace(h)
		var unit *string
		if m := headerUnit.FindStringSubmatch(label); m != nil {
			label = strings.TrimSpace(m[1])
			if u := strings.TrimSpace(m[2]); u != "" {
				unit = &u
			}
		}
		norm := units.NormalizeToken(label)
		if indexCol < 0 && indexHeaders[norm] {
			indexCol = i
			continue
		}
		key := strings.ReplaceAll(norm, " ", "_")
		if key == "" {
			key = fmt.Sprintf("col_%d", i+1)
		}
		seen[key]++
		if n := seen[key]; n > 1 {
			key = fmt.Sprintf("%s_%d", key, n)
		}
		columns = append(columns, Column{Key: key, Label: label, Unit: unit})
	}
	return columns, indexCol
}

func parseCell(cell string, decimalComma bool) Value {
	s := strings.TrimSpace(cell)
	switch strings.ToLower(s) {
	case "", "-", "--", "n/a", "na", "null":
		return Value{}
	}
	num := s
	if decimalComma && !strings.Contains(num, ".") {
		num = strings.Replace(num, ",", ".", 1)
	}
	if f, err := strconv.ParseFloat(num, 64); err == nil {
		return Num(f)
	}
	return Str(s)
}

func blankRecord(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
