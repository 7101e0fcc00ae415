// Package batch validates many field values read from CSV.
//
// Input rows are field,value[,context]. The context column carries the
// payment type for amounts and a brand label or card number for CVVs.
// Output rows never include the input value.
package batch

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cleared-dev/payfield/internal/card"
	"github.com/cleared-dev/payfield/internal/engine"
	"github.com/cleared-dev/payfield/internal/verdict"
)

// Header is the CSV header written by Run.
const Header = "line,field,status,kind,message"

// Row statuses.
const (
	StatusValid   = "valid"
	StatusInvalid = "invalid"
	StatusError   = "error"
)

const (
	numResultFields = 5
	colLine         = 0
	colField        = 1
	colStatus       = 2
	colKind         = 3
	colMessage      = 4

	colInField   = 0
	colInValue   = 1
	colInContext = 2
)

// Row is one input record.
type Row struct {
	Line    int
	Field   string
	Value   string
	Context string
}

// Result is the outcome for one Row.
type Result struct {
	Line    int
	Field   string
	Status  string
	Kind    verdict.Kind
	Message string
}

// Summary counts results by status.
type Summary struct {
	Total   int
	Valid   int
	Invalid int
	Errors  int
}

// MarshalResult converts a Result to a CSV row.
func MarshalResult(r Result) []string {
	row := make([]string, numResultFields)
	row[colLine] = strconv.Itoa(r.Line)
	row[colField] = r.Field
	row[colStatus] = r.Status
	row[colKind] = string(r.Kind)
	row[colMessage] = r.Message
	return row
}

// UnmarshalResult converts a CSV row to a Result.
func UnmarshalResult(record []string) (Result, error) {
	if len(record) != numResultFields {
		return Result{}, fmt.Errorf("expected %d fields, got %d", numResultFields, len(record))
	}
	line, err := strconv.Atoi(record[colLine])
	if err != nil {
		return Result{}, fmt.Errorf("parsing line %q: %w", record[colLine], err)
	}
	return Result{
		Line:    line,
		Field:   record[colField],
		Status:  record[colStatus],
		Kind:    verdict.Kind(record[colKind]),
		Message: record[colMessage],
	}, nil
}

// ReadRows parses input CSV. A leading "field,value" header is skipped and
// lines starting with '#' are ignored.
func ReadRows(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.Comment = '#'
	cr.TrimLeadingSpace = true

	var rows []Row
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading batch CSV: %w", err)
		}
		line, _ := cr.FieldPos(0)
		if len(rows) == 0 && isHeader(rec) {
			continue
		}
		if len(rec) < 2 || len(rec) > 3 {
			return nil, fmt.Errorf("line %d: expected 2 or 3 fields, got %d", line, len(rec))
		}
		row := Row{
			Line:  line,
			Field: strings.TrimSpace(rec[colInField]),
			Value: rec[colInValue],
		}
		if len(rec) == 3 {
			row.Context = strings.TrimSpace(rec[colInContext])
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func isHeader(rec []string) bool {
	return len(rec) >= 2 &&
		strings.EqualFold(strings.TrimSpace(rec[colInField]), "field") &&
		strings.EqualFold(strings.TrimSpace(rec[colInValue]), "value")
}

// Check validates one row.
func Check(e *engine.Engine, row Row) Result {
	res := Result{Line: row.Line, Field: row.Field}
	err := e.Check(row.Field, row.Value, contextOptions(row.Field, row.Context))

	var ve *verdict.Error
	switch {
	case err == nil:
		res.Status = StatusValid
	case errors.As(err, &ve):
		res.Status = StatusInvalid
		res.Kind = ve.Kind
		res.Message = ve.Message
	default:
		res.Status = StatusError
		res.Message = err.Error()
	}
	return res
}

func contextOptions(field, ctx string) engine.CheckOptions {
	switch field {
	case "amount":
		return engine.CheckOptions{PaymentType: ctx}
	case "cvv":
		if digits := card.Clean(ctx); digits != "" && strings.Trim(digits, "0123456789") == "" {
			return engine.CheckOptions{CardNumber: digits}
		}
		return engine.CheckOptions{Brand: ctx}
	}
	return engine.CheckOptions{}
}

// Run validates every row read from r and writes results to w.
func Run(r io.Reader, w io.Writer, e *engine.Engine) (Summary, error) {
	rows, err := ReadRows(r)
	if err != nil {
		return Summary{}, err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return Summary{}, fmt.Errorf("writing header: %w", err)
	}

	var sum Summary
	for _, row := range rows {
		res := Check(e, row)
		sum.Total++
		switch res.Status {
		case StatusValid:
			sum.Valid++
		case StatusInvalid:
			sum.Invalid++
		default:
			sum.Errors++
		}
		if err := cw.Write(MarshalResult(res)); err != nil {
			return sum, fmt.Errorf("writing line %d: %w", row.Line, err)
		}
	}

	cw.Flush()
	return sum, cw.Error()
}
