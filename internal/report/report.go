// Package report renders point reports as colored text or JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	tt "github.com/gnolang/tinfer/internal/types"
)

var (
	pointStyle   = color.New(color.FgCyan, color.Bold)
	countStyle   = color.New(color.FgBlue)
	formulaStyle = color.New(color.FgGreen, color.Bold)
	kindStyle    = color.New(color.FgYellow)
	hiddenStyle  = color.New(color.Faint)
)

// Text formats the reports, one block per point:
//
//	f():::EXIT (5 samples)
//	  y = 2 * x + 1  [linear-binary 1.0000]
//	  3 hidden
func Text(reports []tt.PointReport) string {
	var b strings.Builder
	for _, r := range reports {
		b.WriteString(formatHeader(r))
		width := formulaWidth(r.Findings)
		for _, f := range r.Findings {
			b.WriteString(formatFinding(f, width))
		}
		if r.Hidden > 0 {
			b.WriteString(hiddenStyle.Sprintf("  %d hidden\n", r.Hidden))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func formatHeader(r tt.PointReport) string {
	return pointStyle.Sprint(r.Point) + " " + countStyle.Sprintf("(%d samples)", r.Samples) + "\n"
}

func formatFinding(f tt.Finding, width int) string {
	padding := strings.Repeat(" ", width-len(f.Formula))
	return "  " + formulaStyle.Sprint(f.Formula) + padding + "  " +
		kindStyle.Sprintf("[%s %.4f]", f.Kind, f.Justification) + "\n"
}

func formulaWidth(findings []tt.Finding) int {
	w := 0
	for _, f := range findings {
		w = max(w, len(f.Formula))
	}
	return w
}

// WriteJSON writes the reports as one indented JSON array.
func WriteJSON(w io.Writer, reports []tt.PointReport) error {
	if reports == nil {
		reports = []tt.PointReport{}
	}
	d, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal reports: %w", err)
	}
	d = append(d, '\n')
	_, err = w.Write(d)
	return err
}

// WriteJSONFile writes the reports to path, creating or truncating it.
func WriteJSONFile(path string, reports []tt.PointReport) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteJSON(f, reports); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
