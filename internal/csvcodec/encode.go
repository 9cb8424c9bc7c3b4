package csvcodec

import (
	"strconv"
	"strings"

	"acordiario/internal/practice"
)

// Header is the exported column row.
var Header = []string{"Fecha", "Categoría", "Foco", "Duración (min)", "Notas"}

// DefaultFileName is the name suggested for exported files.
const DefaultFileName = "acordiario_progreso.csv"

// Encode renders logs as CSV with the fixed header. Rows are joined by "\n"
// with no trailing newline.
func Encode(logs []practice.PracticeLog) string {
	var b strings.Builder
	writeRow(&b, Header)
	for _, l := range logs {
		b.WriteByte('\n')
		writeRow(&b, []string{l.Date, l.Category, l.Focus, strconv.Itoa(l.Duration), l.Notes})
	}
	return b.String()
}

func writeRow(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(escapeField(f))
	}
}

func escapeField(f string) string {
	if !strings.ContainsAny(f, ",\"\n\r") {
		return f
	}
	return `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
}
