package export

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ETFPulse/internal/model"
)

func sampleTable() *model.Table {
	t := model.NewTable([]string{"0050.TW", "0056.TW"})
	t.Dates = []time.Time{
		time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC),
	}
	t.Values["0050.TW"] = []float64{190.5, 192}
	t.Values["0056.TW"] = []float64{math.NaN(), 37.25}
	return t
}

func TestWriteCSV(t *testing.T) {
	var sb strings.Builder
	if err := WriteCSV(&sb, sampleTable()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Date,0050.TW,0056.TW\n" +
		"2026-10-15,190.5,\n" +
		"2026-10-16,192,37.25\n"
	if sb.String() != want {
		t.Errorf("unexpected csv:\n%s\nwant:\n%s", sb.String(), want)
	}
}

func TestWriteCSV_EmptyTable(t *testing.T) {
	var sb strings.Builder
	if err := WriteCSV(&sb, model.NewTable(nil)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sb.String() != "Date\n" {
		t.Errorf("expected header only, got %q", sb.String())
	}
}

func TestWriteMonthFiles(t *testing.T) {
	rep := &model.Report{MonthCloses: sampleTable(), MonthVolumes: sampleTable()}
	dir := filepath.Join(t.TempDir(), "out")
	paths, err := WriteMonthFiles(dir, rep)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paths) != 2 || filepath.Base(paths[0]) != MonthCloseFile || filepath.Base(paths[1]) != MonthVolumeFile {
		t.Fatalf("unexpected paths %v", paths)
	}
	data, err := os.ReadFile(paths[0])
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "Date,0050.TW,0056.TW\n") {
		t.Errorf("unexpected content %q", data)
	}
}
