package export

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// ReportEntry holds the validation problems of one export.
type ReportEntry struct {
	Export   string
	Problems []string
}

// WriteValidationReport writes a plain-text validation report so sheet
// authors can fix their data without reading tool logs.
func WriteValidationReport(path string, entries []ReportEntry) error {
	var b strings.Builder

	b.WriteString("Validation Report\n")
	b.WriteString("Generated: " + time.Now().Format(time.RFC3339) + "\n")
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	total := 0
	for _, entry := range entries {
		fmt.Fprintf(&b, "Export: %s (%d problems)\n", entry.Export, len(entry.Problems))
		for _, p := range entry.Problems {
			b.WriteString("  - " + p + "\n")
		}
		b.WriteString("\n")
		total += len(entry.Problems)
	}
	fmt.Fprintf(&b, "Total: %d problems in %d exports\n", total, len(entries))

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write validation report %s: %w", path, err)
	}
	return nil
}
