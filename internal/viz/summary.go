package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/seismo/internal/slowness"
	"github.com/san-kum/seismo/internal/storage"
)

func formatZones(zones []slowness.DepthRange, withRayParam bool) string {
	if len(zones) == 0 {
		return "none"
	}
	parts := make([]string, len(zones))
	for i, z := range zones {
		if withRayParam {
			parts[i] = fmt.Sprintf("%g-%g km (p=%.3f)", z.TopDepth, z.BotDepth, z.RayParam)
		} else {
			parts[i] = fmt.Sprintf("%g-%g km", z.TopDepth, z.BotDepth)
		}
	}
	return strings.Join(parts, ", ")
}

func waveStats(st slowness.Stats) string {
	style := PStyle
	if st.Wave == slowness.S {
		style = SStyle
	}
	return style.Render(st.Wave.String()) + " " + Subtle.Render(fmt.Sprintf(
		"layers=%d jumps=%d p=[%.3f, %.3f] max dp=%.3f max dz=%.2f km",
		st.Layers, st.Discontinuities, st.MinSlowness, st.MaxSlowness, st.MaxDeltaP, st.MaxThickness))
}

// RenderSummary describes a built model in a bordered panel.
func RenderSummary(name string, m *slowness.Model) string {
	depths := make([]string, 0, len(m.CriticalDepths()))
	for _, cd := range m.CriticalDepths() {
		depths = append(depths, fmt.Sprintf("%g", cd.Depth))
	}

	lines := []string{
		Title.Render(name),
		row("radius", fmt.Sprintf("%g km", m.Radius())),
		row("critical depths", strings.Join(depths, " ")),
		row("P high slowness", formatZones(m.HighSlownessZones(slowness.P), true)),
		row("S high slowness", formatZones(m.HighSlownessZones(slowness.S), true)),
		row("fluid", formatZones(m.FluidZones(), false)),
		waveStats(m.Stats(slowness.P)),
		waveStats(m.Stats(slowness.S)),
	}
	return Panel.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// RenderRuns lists stored runs, one per line.
func RenderRuns(runs []storage.RunMetadata) string {
	if len(runs) == 0 {
		return Subtle.Render("no runs found")
	}
	var sb strings.Builder
	sb.WriteString(HeaderStyle.Render(fmt.Sprintf("%-40s %-14s %-20s %s", "ID", "MODEL", "TIME", "LAYERS")))
	sb.WriteString("\n")
	for _, r := range runs {
		fmt.Fprintf(&sb, "%-40s %-14s %-20s %d\n",
			r.ID, r.Model, r.Timestamp.Format("2006-01-02 15:04:05"), r.NumLayers)
	}
	return sb.String()
}

// RenderLayers lists up to limit layers of each sequence side by side.
// limit <= 0 lists all of them.
func RenderLayers(p, s []slowness.SlownessLayer, limit int) string {
	n := len(p)
	if limit > 0 && limit < n {
		n = limit
	}
	var sb strings.Builder
	sb.WriteString(HeaderStyle.Render(fmt.Sprintf("%5s %10s %10s %12s %12s %12s %12s",
		"#", "TOP", "BOT", "P TOP", "P BOT", "S TOP", "S BOT")))
	sb.WriteString("\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb, "%5d %10.3f %10.3f %12.4f %12.4f %12.4f %12.4f\n",
			i, p[i].TopDepth, p[i].BotDepth, p[i].TopP, p[i].BotP, s[i].TopP, s[i].BotP)
	}
	if n < len(p) {
		sb.WriteString(Subtle.Render(fmt.Sprintf("... %d more", len(p)-n)))
		sb.WriteString("\n")
	}
	return sb.String()
}
