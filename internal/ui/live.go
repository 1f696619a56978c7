// Package ui renders streaming panel output to the terminal.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/tathienbao/quant-ta/internal/observer"
	"golang.org/x/term"
)

// ANSI escape codes
const (
	ClearLine   = "\033[2K"
	MoveToStart = "\r"
	MoveUp      = "\033[%dA"
	HideCursor  = "\033[?25l"
	ShowCursor  = "\033[?25h"
	ColorReset  = "\033[0m"
	ColorGreen  = "\033[32m"
	ColorRed    = "\033[31m"
	ColorYellow = "\033[33m"
	ColorCyan   = "\033[36m"
	ColorDim    = "\033[2m"
	ColorBold   = "\033[1m"
)

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// LivePanel redraws the indicator panel in place on every bar. When the
// output is not a terminal it falls back to one plain line per bar.
type LivePanel struct {
	out   io.Writer
	isTTY bool

	width      int
	sparkWidth int

	history map[string][]float64

	// Track lines printed for cleanup
	linesPrinted int
}

// NewLivePanel creates a renderer writing to out.
func NewLivePanel(out io.Writer) *LivePanel {
	p := &LivePanel{
		out:     out,
		width:   80,
		history: make(map[string][]float64),
	}

	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.isTTY = true
		if w, _, err := term.GetSize(int(f.Fd())); err == nil {
			p.width = w
		}
	}

	// Leave room for the column name and value.
	p.sparkWidth = p.width - 44
	if p.sparkWidth < 12 {
		p.sparkWidth = 12
	}
	if p.sparkWidth > 48 {
		p.sparkWidth = 48
	}

	return p
}

// Start hides the cursor for in-place drawing.
func (p *LivePanel) Start() {
	if p.isTTY {
		fmt.Fprint(p.out, HideCursor)
	}
}

// Stop restores the cursor.
func (p *LivePanel) Stop() {
	if p.isTTY {
		fmt.Fprint(p.out, ShowCursor)
		fmt.Fprintln(p.out)
	}
}

// Update records the snapshot and redraws.
func (p *LivePanel) Update(snap observer.Snapshot) {
	p.observe(snap)

	if !p.isTTY {
		fmt.Fprintln(p.out, p.plainLine(snap))
		return
	}

	lines := p.frameLines(snap)

	// Move cursor up to overwrite previous frame
	if p.linesPrinted > 0 {
		fmt.Fprintf(p.out, MoveUp, p.linesPrinted)
	}
	for _, line := range lines {
		fmt.Fprint(p.out, ClearLine)
		fmt.Fprintln(p.out, line)
	}
	p.linesPrinted = len(lines)
}

// observe keeps a bounded tail of ready values per column for sparklines.
func (p *LivePanel) observe(snap observer.Snapshot) {
	for _, v := range snap.Values {
		if !v.Ready {
			continue
		}
		hist := append(p.history[v.Column], v.Value)
		if len(hist) > p.sparkWidth {
			hist = hist[1:]
		}
		p.history[v.Column] = hist
	}
}

// frameLines builds one frame: a header line plus one line per column.
func (p *LivePanel) frameLines(snap observer.Snapshot) []string {
	lines := make([]string, 0, len(snap.Values)+1)

	header := fmt.Sprintf("%s%s%s  bar %d  close %s  %s%s%s",
		ColorBold, snap.Symbol, ColorReset,
		snap.Seq, snap.Close,
		ColorDim, snap.Time.Format(time.RFC3339), ColorReset)
	lines = append(lines, header)

	for _, v := range snap.Values {
		lines = append(lines, p.columnLine(v))
	}

	return lines
}

// columnLine renders one indicator column with its sparkline.
func (p *LivePanel) columnLine(v observer.ColumnValue) string {
	if !v.Ready {
		return fmt.Sprintf("  %-24s %s%12s  warming up%s", v.Column, ColorDim, "-", ColorReset)
	}

	hist := p.history[v.Column]
	color := ColorGreen
	if n := len(hist); n >= 2 && hist[n-1] < hist[n-2] {
		color = ColorRed
	}

	return fmt.Sprintf("  %-24s %s%12.4f%s  %s%s%s",
		v.Column, color, v.Value, ColorReset,
		ColorCyan, sparkline(hist), ColorReset)
}

// plainLine renders one log-friendly line per bar.
func (p *LivePanel) plainLine(snap observer.Snapshot) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "bar %d  %s  close %s",
		snap.Seq, snap.Time.Format("2006-01-02 15:04:05"), snap.Close)

	for _, v := range snap.Values {
		if v.Ready {
			fmt.Fprintf(&sb, "  %s=%.4f", v.Column, v.Value)
		} else {
			fmt.Fprintf(&sb, "  %s=-", v.Column)
		}
	}

	return sb.String()
}

// sparkline renders values as a block-character strip scaled to their range.
func sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}

	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	var sb strings.Builder
	for _, v := range values {
		idx := 0
		if max > min {
			idx = int((v - min) / (max - min) * float64(len(sparkRunes)-1))
		}
		sb.WriteRune(sparkRunes[idx])
	}

	return sb.String()
}
