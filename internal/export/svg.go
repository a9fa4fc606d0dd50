package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/seismo/internal/slowness"
)

type point struct{ X, Y float64 }

type bounds struct {
	minX, maxX, minY, maxY float64
}

// profilePoints traces slowness (x) against depth (y) through every layer
// boundary, so discontinuities appear as horizontal steps.
func profilePoints(layers []slowness.SlownessLayer) []point {
	pts := make([]point, 0, 2*len(layers))
	for _, l := range layers {
		pts = append(pts, point{l.TopP, l.TopDepth}, point{l.BotP, l.BotDepth})
	}
	return pts
}

func boundsOf(sets ...[]point) bounds {
	b := bounds{minX: 1e300, maxX: -1e300, minY: 1e300, maxY: -1e300}
	for _, pts := range sets {
		for _, p := range pts {
			b.minX = min(b.minX, p.X)
			b.maxX = max(b.maxX, p.X)
			b.minY = min(b.minY, p.Y)
			b.maxY = max(b.maxY, p.Y)
		}
	}

	rangeX := b.maxX - b.minX
	if rangeX == 0 {
		rangeX = 1
	}
	b.minX -= rangeX * 0.05
	b.maxX += rangeX * 0.05
	if b.maxY == b.minY {
		b.maxY = b.minY + 1
	}
	return b
}

func writePath(sb *strings.Builder, pts []point, b bounds, width, height int, stroke string) {
	fmt.Fprintf(sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, stroke)
	for i, p := range pts {
		x := (p.X - b.minX) / (b.maxX - b.minX) * float64(width)
		// depth increases downwards, matching SVG coordinates
		y := (p.Y - b.minY) / (b.maxY - b.minY) * float64(height)
		if i == 0 {
			fmt.Fprintf(sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(sb, " L%.1f,%.1f", x, y)
		}
	}
	sb.WriteString("\"/>\n")
}

// ProfileSVG draws the P and S slowness profiles of a snapshot against
// depth, with critical depths as dashed horizontal lines.
func ProfileSVG(snap *Snapshot, width, height int) string {
	if snap == nil || len(snap.PLayers) == 0 {
		return ""
	}

	pPts := profilePoints(snap.PLayers)
	sPts := profilePoints(snap.SLayers)
	b := boundsOf(pPts, sPts)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	for _, cd := range snap.CriticalDepths {
		y := (cd.Depth - b.minY) / (b.maxY - b.minY) * float64(height)
		fmt.Fprintf(&sb, `<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="#444444" stroke-dasharray="4,4"/>
`, y, width, y)
	}

	writePath(&sb, pPts, b, width, height, "#00ff00")
	if len(sPts) > 0 {
		writePath(&sb, sPts, b, width, height, "#ff8800")
	}

	sb.WriteString("</svg>")
	return sb.String()
}
