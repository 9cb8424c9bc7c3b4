package csvcodec

import "strings"

type record struct {
	line   int
	fields []string
}

// splitRecords splits text into records on unquoted "\n" or "\r\n". A quote
// toggles quoting anywhere in a field and a doubled quote inside quotes is a
// literal quote. Each record remembers the physical line it starts on.
func splitRecords(text string) []record {
	var (
		records []record
		fields  []string
		field   strings.Builder
		inQuote bool
		line    = 1
		start   = 1
	)
	if text == "" {
		return nil
	}
	endRecord := func() {
		fields = append(fields, field.String())
		field.Reset()
		records = append(records, record{line: start, fields: fields})
		fields = nil
	}

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '"':
			if inQuote && i+1 < len(text) && text[i+1] == '"' {
				field.WriteByte('"')
				i++
				continue
			}
			inQuote = !inQuote
		case c == ',' && !inQuote:
			fields = append(fields, field.String())
			field.Reset()
		case c == '\r' && !inQuote && i+1 < len(text) && text[i+1] == '\n':
			i++
			line++
			endRecord()
			start = line
		case c == '\n' && !inQuote:
			line++
			endRecord()
			start = line
		default:
			if c == '\n' {
				line++
			}
			field.WriteByte(c)
		}
	}
	endRecord()
	return records
}
