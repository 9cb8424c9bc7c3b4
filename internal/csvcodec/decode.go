package csvcodec

import (
	"strconv"
	"strings"

	"acordiario/internal/practice"
)

// ImportPolicy decides what happens to existing logs on import.
type ImportPolicy int

const (
	// Merge appends the imported rows after the existing logs.
	Merge ImportPolicy = iota
	// Replace discards existing logs in favor of the imported rows.
	Replace
)

func (p ImportPolicy) String() string {
	switch p {
	case Replace:
		return "replace"
	default:
		return "merge"
	}
}

// ParsePolicy accepts "merge" or "replace".
func ParsePolicy(s string) (ImportPolicy, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "merge":
		return Merge, true
	case "replace":
		return Replace, true
	}
	return Merge, false
}

var expectedHeader = []string{"fecha", "categoría", "foco", "duración (min)", "notas"}

// Decode parses and validates CSV text. Any failure rejects the whole file;
// no partial result is returned alongside an error.
func Decode(text string) ([]practice.PracticeLog, error) {
	text = strings.TrimLeft(text, "\ufeff \t\r\n")
	text = strings.TrimRight(text, "\r\n")
	records := splitRecords(text)
	if len(records) < 2 {
		return nil, &ValidationError{Err: ErrEmptyFile}
	}

	header := records[0]
	if len(header.fields) != len(expectedHeader) {
		return nil, lineError(header.line, ErrHeaderMismatch)
	}
	for i, h := range header.fields {
		if strings.ToLower(strings.TrimSpace(h)) != expectedHeader[i] {
			return nil, lineError(header.line, ErrHeaderMismatch)
		}
	}

	logs := make([]practice.PracticeLog, 0, len(records)-1)
	for _, rec := range records[1:] {
		l, err := parseRow(rec)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, nil
}

func parseRow(rec record) (practice.PracticeLog, error) {
	if len(rec.fields) != 5 {
		return practice.PracticeLog{}, lineError(rec.line, ErrColumnCount)
	}
	date, category, focus, rawDuration, notes := rec.fields[0], rec.fields[1], rec.fields[2], rec.fields[3], rec.fields[4]
	if !practice.IsValidDate(date) {
		return practice.PracticeLog{}, lineError(rec.line, ErrDateFormat)
	}
	duration, err := strconv.Atoi(strings.TrimSpace(rawDuration))
	if err != nil || duration < 0 {
		return practice.PracticeLog{}, lineError(rec.line, ErrDuration)
	}
	if category == "" {
		return practice.PracticeLog{}, lineError(rec.line, ErrCategory)
	}
	return practice.PracticeLog{
		Date:     date,
		Duration: duration,
		Category: category,
		Focus:    focus,
		Notes:    notes,
	}, nil
}
