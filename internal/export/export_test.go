package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/plotanim/internal/palette"
	"github.com/san-kum/plotanim/internal/sampler"
)

func frames(t *testing.T, at ...int64) []FrameData {
	t.Helper()
	s := sampler.New(palette.Default(), sampler.DefaultPeriod, sampler.DefaultDensity)
	out := make([]FrameData, 0, len(at))
	for _, ms := range at {
		out = append(out, NewFrameData(ms, s.Sample(ms, 10)))
	}
	return out
}

func TestNewFrameData(t *testing.T) {
	f := frames(t, 7500)[0]
	if f.Function != "sine-2x" || f.Index != 1 {
		t.Errorf("expected sine-2x at index 1, got %s/%d", f.Function, f.Index)
	}
	if f.Style != "line" {
		t.Errorf("expected line style, got %s", f.Style)
	}
	if len(f.Samples) != 30 {
		t.Errorf("expected 30 samples, got %d", len(f.Samples))
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatCSV, frames(t, 0, 5000)); err != nil {
		t.Fatal(err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1+60 {
		t.Fatalf("expected header plus 60 rows, got %d", len(rows))
	}
	if rows[0][0] != "at_ms" || rows[1][1] != "sine" || rows[31][0] != "5000" {
		t.Errorf("unexpected rows: %v %v %v", rows[0], rows[1], rows[31])
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatJSON, frames(t, 0)); err != nil {
		t.Fatal(err)
	}

	var got []FrameData
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Function != "sine" || got[0].Style != "filled" {
		t.Errorf("unexpected decode: %+v", got)
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, "xml", nil)
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "samples.csv")
	if err := WriteFile(path, FormatCSV, frames(t, 0)); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("expected non-empty file")
	}
}
