package media

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// AppendReport appends a human-readable record of a finished session to the
// given path. result is "SUCCESS", "CANCELLED", or "FAILED: <reason>".
func AppendReport(path string, s *Session, result string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	info, statErr := f.Stat()
	if statErr == nil && info.Size() == 0 {
		header := "# mksdboot report log - one section per provisioning run, newest at the bottom.\n\n"
		if _, err := f.WriteString(header); err != nil {
			return err
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	var b strings.Builder

	fmt.Fprintf(&b, "=== %s %s ===\n", s.ID, now)
	fmt.Fprintf(&b, "device: %s\n", s.Device)
	fmt.Fprintf(&b, "size: %s\n", s.Config.Size)
	fmt.Fprintf(&b, "label: %s\n", s.Config.Label)
	fmt.Fprintf(&b, "commands:\n")
	for _, c := range s.executed {
		fmt.Fprintf(&b, "- %s\n", c)
	}
	fmt.Fprintf(&b, "result: %s\n\n", result)

	_, writeErr := f.WriteString(b.String())
	return writeErr
}
