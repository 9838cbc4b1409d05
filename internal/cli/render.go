package cli

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/metakv/internal/models"
)

// Minimum rendered column widths.
const (
	minKeyWidth   = 4
	minValueWidth = 5
)

const helpText = `
Commands:
  set  <key> <value>   Insert or update a key/value pair
  get  <key>           Retrieve value for a key
  del  <key>           Delete a key
  list                 List all key/value pairs
  find <pattern>       Search keys by LIKE pattern (e.g.  app.%)
  help                 Show this help
  exit                 Quit
`

// renderTable prints records as an ASCII box table followed by a row count,
// or a placeholder note when there are no records. Column widths follow the
// longest key and value, counted in runes, with the minimum widths above.
func renderTable(w io.Writer, records []models.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, "  (no records found)")
		return
	}

	keyW := minKeyWidth
	valW := minValueWidth
	for _, r := range records {
		if n := utf8.RuneCountInString(r.Key); n > keyW {
			keyW = n
		}
		if n := utf8.RuneCountInString(r.Value); n > valW {
			valW = n
		}
	}

	sep := fmt.Sprintf("  +%s+%s+", strings.Repeat("-", keyW+2), strings.Repeat("-", valW+2))
	fmt.Fprintln(w, sep)
	fmt.Fprintf(w, "  | %s | %s |\n", pad("KEY", keyW), pad("VALUE", valW))
	fmt.Fprintln(w, sep)
	for _, r := range records {
		fmt.Fprintf(w, "  | %s | %s |\n", pad(r.Key, keyW), pad(r.Value, valW))
	}
	fmt.Fprintln(w, sep)
	fmt.Fprintf(w, "  %d row(s)\n\n", len(records))
}

// pad right-pads s with spaces to width runes. fmt's %-*s pads by bytes,
// which would misalign multibyte keys.
func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
