package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/san-kum/plotanim/internal/sampler"
)

var ErrUnknownFormat = errors.New("export: unknown format")

const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

type FrameData struct {
	At       int64       `json:"at_ms"`
	Index    int         `json:"index"`
	Function string      `json:"function"`
	Style    string      `json:"style"`
	YMin     float64     `json:"y_min"`
	YMax     float64     `json:"y_max"`
	Samples  [][]float64 `json:"samples"`
}

func NewFrameData(at int64, f sampler.Frame) FrameData {
	data := FrameData{
		At:       at,
		Index:    f.Index,
		Function: f.Entry.Name,
		Style:    f.Style.String(),
		YMin:     f.Entry.YRange.Min,
		YMax:     f.Entry.YRange.Max,
		Samples:  make([][]float64, len(f.Samples)),
	}
	for i, s := range f.Samples {
		data.Samples[i] = []float64{s.X, s.Y}
	}
	return data
}

// Write encodes frames to w. CSV gets one row per sample.
func Write(w io.Writer, format string, frames []FrameData) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(frames)
	case FormatCSV:
		return writeCSV(w, frames)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func writeCSV(out io.Writer, frames []FrameData) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"at_ms", "function", "style", "x", "y"}); err != nil {
		return err
	}
	for _, f := range frames {
		at := strconv.FormatInt(f.At, 10)
		for _, s := range f.Samples {
			row := []string{
				at,
				f.Function,
				f.Style,
				strconv.FormatFloat(s[0], 'f', 6, 64),
				strconv.FormatFloat(s[1], 'f', 6, 64),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}

// WriteFile writes to path, or to stdout when path is empty or "-".
func WriteFile(path, format string, frames []FrameData) error {
	if path == "" || path == "-" {
		return Write(os.Stdout, format, frames)
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := Write(file, format, frames); err != nil {
		return err
	}
	return file.Close()
}
