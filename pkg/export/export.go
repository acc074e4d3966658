package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/limaJavier/timetabling/pkg/model"
)

type Format string

const (
	CSV  Format = "csv"
	JSON Format = "json"
)

// WriteCSV writes one row per assignment in chronological order
func WriteCSV(w io.Writer, assignments []model.ClassAssignment) error {
	records := Records(chronological(assignments))
	if err := gocsv.Marshal(&records, w); err != nil {
		return fmt.Errorf("cannot write CSV timetable: %w", err)
	}
	return nil
}

// WriteJSON writes the assignments as an indented JSON array, keeping their order
func WriteJSON(w io.Writer, assignments []model.ClassAssignment) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(Records(assignments)); err != nil {
		return fmt.Errorf("cannot write JSON timetable: %w", err)
	}
	return nil
}

// ExportFile writes the timetable to path, creating parent directories as needed
func ExportFile(path string, format Format, assignments []model.ClassAssignment) error {
	var write func(io.Writer, []model.ClassAssignment) error
	switch Format(strings.ToLower(string(format))) {
	case CSV:
		write = WriteCSV
	case JSON:
		write = WriteJSON
	default:
		return fmt.Errorf("unsupported export format: %q", format)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create export directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create export file: %w", err)
	}
	defer file.Close()

	if err := write(file, assignments); err != nil {
		return err
	}
	return file.Close()
}
