package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"ETFPulse/internal/model"
)

// File names of the one-month downloads.
const (
	MonthCloseFile  = "etf_month.csv"
	MonthVolumeFile = "etf_volume.csv"
)

// WriteCSV writes t with a Date column followed by one column per symbol.
// Missing cells are left blank.
func WriteCSV(w io.Writer, t *model.Table) error {
	cw := csv.NewWriter(w)
	header := append([]string{"Date"}, t.Symbols...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	row := make([]string, len(header))
	for i, d := range t.Dates {
		row[0] = d.Format("2006-01-02")
		for j, sym := range t.Symbols {
			row[j+1] = formatCell(t.Values[sym], i)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatCell(col []float64, i int) string {
	if i >= len(col) || model.Missing(col[i]) {
		return ""
	}
	return strconv.FormatFloat(col[i], 'f', -1, 64)
}

// EncodeCSV returns the CSV bytes of t.
func EncodeCSV(t *model.Table) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MonthFiles encodes the one-month close and volume downloads, keyed by file name.
func MonthFiles(rep *model.Report) (map[string][]byte, error) {
	closes, err := EncodeCSV(rep.MonthCloses)
	if err != nil {
		return nil, fmt.Errorf("encode closes: %w", err)
	}
	volumes, err := EncodeCSV(rep.MonthVolumes)
	if err != nil {
		return nil, fmt.Errorf("encode volumes: %w", err)
	}
	return map[string][]byte{
		MonthCloseFile:  closes,
		MonthVolumeFile: volumes,
	}, nil
}

// WriteMonthFiles writes the one-month downloads into dir and returns their paths.
func WriteMonthFiles(dir string, rep *model.Report) ([]string, error) {
	files, err := MonthFiles(rep)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}
	var paths []string
	for _, name := range []string{MonthCloseFile, MonthVolumeFile} {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, files[name], 0644); err != nil {
			return nil, fmt.Errorf("write %s: %w", p, err)
		}
		paths = append(paths, p)
	}
	return paths, nil
}
