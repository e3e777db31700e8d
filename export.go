package climaval

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
)

// WriteJSON serializes the report to the writer as indented JSON. Undefined
// metrics serialize as null.
func WriteJSON(w io.Writer, report *Report) error {
	bytes, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("unable to serialize report, %w", err)
	}
	if _, err := w.Write(bytes); err != nil {
		return fmt.Errorf("unable to write report, %w", err)
	}
	return nil
}

// ExportJSON writes the report to the given path.
func ExportJSON(path string, report *Report) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, report)
}
