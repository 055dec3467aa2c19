package present

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"qlab/sim"
)

// Histogram draws one horizontal bar per outcome, in key order, scaled so the
// most frequent outcome spans width cells. A non-positive width uses the default.
func Histogram(counts sim.Counts, width int) string {
	if width <= 0 {
		width = barW
	}
	keys := counts.Keys()
	if len(keys) == 0 {
		return dimStyle.Render("(no counts)")
	}
	_, top := counts.MostFrequent()
	freqs := counts.Frequencies()

	labelW := 0
	for _, k := range keys {
		labelW = max(labelW, lipgloss.Width(k))
	}

	var sb strings.Builder
	for i, k := range keys {
		n := int(float64(counts[k]) / float64(top) * float64(width))
		if counts[k] > 0 {
			n = max(n, 1)
		}
		bar := barStyle.Render(strings.Repeat("█", n)) + strings.Repeat(" ", width-n)
		fmt.Fprintf(&sb, "%s │%s %s %s",
			qubitLabelStyle.Render(padRight(k, labelW)), bar,
			valueStyle.Render(fmt.Sprintf("%6d", counts[k])),
			dimStyle.Render(fmt.Sprintf("%.3f", freqs[k])))
		if i < len(keys)-1 {
			sb.WriteString("\n")
		}
	}
	fmt.Fprintf(&sb, "\n%s %s", strings.Repeat(" ", labelW), dimStyle.Render(fmt.Sprintf("total %d", counts.Total())))
	return sb.String()
}
