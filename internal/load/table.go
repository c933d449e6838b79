package load

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tealeg/xlsx"
)

// table is a header-indexed set of string records.
type table struct {
	name    string
	columns map[string]int
	records [][]string
}

func readCSV(name string, r io.Reader) (*table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return newTable(name, records)
}

// readXLSX reads the first sheet of a workbook.
func readXLSX(name string, slurp []byte) (*table, error) {
	xl, err := xlsx.OpenBinary(slurp)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if len(xl.Sheets) == 0 {
		return nil, fmt.Errorf("%s: workbook has no sheets", name)
	}
	sheet := xl.Sheets[0]
	records := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		if row == nil {
			continue
		}
		rec := make([]string, len(row.Cells))
		for i, cell := range row.Cells {
			rec[i] = cell.Value
		}
		records = append(records, rec)
	}
	return newTable(name, records)
}

func newTable(name string, records [][]string) (*table, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: no header row", name)
	}
	t := &table{name: name, columns: make(map[string]int)}
	for i, h := range records[0] {
		t.columns[strings.TrimSpace(h)] = i
	}
	for _, rec := range records[1:] {
		if blank(rec) {
			continue
		}
		t.records = append(t.records, rec)
	}
	return t, nil
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// require reports every missing column.
func (t *table) require(columns ...string) []error {
	var errs []error
	for _, c := range columns {
		if _, ok := t.columns[c]; !ok {
			errs = append(errs, fmt.Errorf("%s: missing column %q", t.name, c))
		}
	}
	return errs
}

func (t *table) has(column string) bool {
	_, ok := t.columns[column]
	return ok
}

// row wraps a record so that parse errors accumulate instead of stopping at the first.
type row struct {
	t    *table
	i    int
	rec  []string
	errs *[]error
}

func (t *table) rows(errs *[]error) []row {
	out := make([]row, len(t.records))
	for i, rec := range t.records {
		out[i] = row{t: t, i: i, rec: rec, errs: errs}
	}
	return out
}

func (r row) fail(format string, args ...any) {
	// data rows start on line 2
	*r.errs = append(*r.errs, fmt.Errorf("%s line %d: %s", r.t.name, r.i+2, fmt.Sprintf(format, args...)))
}

func (r row) str(column string) string {
	i, ok := r.t.columns[column]
	if !ok || i >= len(r.rec) {
		return ""
	}
	return strings.TrimSpace(r.rec[i])
}

func (r row) number(column string) float64 {
	s := r.str(column)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		r.fail("column %s: %q is not a number", column, s)
		return 0
	}
	return v
}

// numberOr parses an optional column, returning def when it is empty.
func (r row) numberOr(column string, def float64) float64 {
	if r.str(column) == "" {
		return def
	}
	return r.number(column)
}

func (r row) integer(column string) int {
	s := r.str(column)
	v, err := strconv.Atoi(s)
	if err != nil {
		// spreadsheets like to write integers as floats
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f != float64(int(f)) {
			r.fail("column %s: %q is not an integer", column, s)
			return 0
		}
		return int(f)
	}
	return v
}

func (r row) boolean(column string) bool {
	s := r.str(column)
	if s == "" {
		return false
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		r.fail("column %s: %q is not a boolean", column, s)
		return false
	}
	return v
}
