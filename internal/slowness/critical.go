package slowness

import (
	"math"

	"go.uber.org/zap"

	"github.com/san-kum/seismo/internal/velocity"
)

// scanState is the running state of one top-down pass over the velocity
// layers.
type scanState struct {
	inFluid        bool
	belowOuterCore bool
	inHighSlowness [2]bool
	minSoFar       [2]float64
	fluid          DepthRange
	highSlowness   [2]DepthRange
}

// criticalScan is the finder's output: the zones and critical depths plus
// one slowness layer per velocity layer and wave.
type criticalScan struct {
	critical     []CriticalDepth
	highSlowness [2][]DepthRange
	fluid        []DepthRange
	layers       [2][]SlownessLayer
	sAsP         []bool
}

func (s *criticalScan) addCritical(depth float64, velLayer int) bool {
	if n := len(s.critical); n > 0 && depth <= s.critical[n-1].Depth {
		return false
	}
	s.critical = append(s.critical, CriticalDepth{
		Depth:    depth,
		VelLayer: velLayer,
		PLayer:   -1,
		SLayer:   -1,
	})
	return true
}

type criticalPointFinder struct {
	vmod            VelocityModel
	radius          float64
	allowInnerCoreS bool
	tol             float64
	logger          *zap.Logger
}

func (f *criticalPointFinder) differs(a, b float64) bool {
	return math.Abs(a-b) > f.tol
}

// less reports a < b by more than the tolerance.
func (f *criticalPointFinder) less(a, b float64) bool {
	return b-a > f.tol
}

// isExtremum reports a change of slowness direction across the boundary
// between prev and curr.
func isExtremum(prev, curr SlownessLayer) bool {
	return (prev.TopP-prev.BotP)*(prev.BotP-curr.BotP) < 0
}

func (f *criticalPointFinder) find() (*criticalScan, error) {
	n := f.vmod.NumLayers()
	first := f.vmod.LayerAt(0)
	if first.TopSVelocity == 0 {
		return nil, ErrFluidSurface
	}

	// A zero-thickness copy of the surface seeds the scan so the first
	// layer is compared against the surface values.
	surface := first
	surface.BotDepth = surface.TopDepth
	surface.BotPVelocity = surface.TopPVelocity
	surface.BotSVelocity = surface.TopSVelocity
	surface.BotDensity = surface.TopDensity

	var prev [2]SlownessLayer
	for _, w := range Waves {
		l, err := ToSlownessLayer(surface, w, f.radius)
		if err != nil {
			return nil, err
		}
		prev[w] = l
	}

	scan := &criticalScan{}
	scan.addCritical(0, 0)

	st := scanState{minSoFar: [2]float64{prev[P].TopP, prev[S].TopP}}
	prevVel := surface

	for i := 0; i < n; i++ {
		vl := f.vmod.LayerAt(i)
		f.trackFluid(&st, scan, prevVel, vl)

		curr, sAsP, err := f.convert(&st, vl)
		if err != nil {
			return nil, err
		}
		for _, w := range Waves {
			scan.layers[w] = append(scan.layers[w], curr[w])
		}
		scan.sAsP = append(scan.sAsP, sAsP)

		if f.differs(prev[S].BotP, curr[S].TopP) || f.differs(prev[P].BotP, curr[P].TopP) {
			if scan.addCritical(vl.TopDepth, i) {
				f.logger.Debug("discontinuity", zap.Float64("depth", vl.TopDepth), zap.Int("layer", i))
			}
			for _, w := range Waves {
				f.closeHighSlowness(&st, scan, w, curr[w])
			}
			for _, w := range Waves {
				st.minSoFar[w] = math.Min(st.minSoFar[w], curr[w].TopP)
			}
			for _, w := range Waves {
				if !st.inHighSlowness[w] &&
					(f.less(prev[w].BotP, curr[w].TopP) || f.less(curr[w].TopP, curr[w].BotP)) {
					st.inHighSlowness[w] = true
					st.highSlowness[w] = DepthRange{
						TopDepth: vl.TopDepth,
						RayParam: st.minSoFar[w],
					}
					f.logger.Debug("high slowness zone opened",
						zap.Stringer("wave", w),
						zap.Float64("depth", vl.TopDepth),
						zap.Float64("ray_param", st.minSoFar[w]))
				}
			}
		} else if isExtremum(prev[S], curr[S]) || isExtremum(prev[P], curr[P]) {
			scan.addCritical(vl.TopDepth, i)
		}

		for _, w := range Waves {
			if !st.inHighSlowness[w] {
				st.minSoFar[w] = math.Min(st.minSoFar[w], curr[w].BotP)
			}
		}
		prev = curr
		prevVel = vl
	}

	bottom := f.vmod.LayerAt(n - 1).BotDepth
	if st.inFluid {
		st.fluid.BotDepth = bottom
		scan.fluid = append(scan.fluid, st.fluid)
	}
	for _, w := range Waves {
		if st.inHighSlowness[w] {
			st.highSlowness[w].BotDepth = bottom
			scan.highSlowness[w] = append(scan.highSlowness[w], st.highSlowness[w])
		}
	}
	scan.addCritical(bottom, n)
	return scan, nil
}

// trackFluid opens a fluid zone on entering zero S velocity and closes it on
// leaving. Leaving a fluid at or below the inner core boundary marks the
// rest of the scan as inner core.
func (f *criticalPointFinder) trackFluid(st *scanState, scan *criticalScan, prevVel, vl velocity.Layer) {
	if !st.inFluid && vl.TopSVelocity == 0 {
		st.inFluid = true
		st.fluid = DepthRange{TopDepth: vl.TopDepth, RayParam: unsetRayParam}
		return
	}
	if st.inFluid && vl.TopSVelocity != 0 {
		if prevVel.BotDepth >= f.vmod.InnerCoreBoundary() {
			st.belowOuterCore = true
		}
		st.inFluid = false
		st.fluid.BotDepth = prevVel.BotDepth
		scan.fluid = append(scan.fluid, st.fluid)
		f.logger.Debug("fluid zone closed",
			zap.Float64("top", st.fluid.TopDepth),
			zap.Float64("bottom", st.fluid.BotDepth))
	}
}

func (f *criticalPointFinder) convert(st *scanState, vl velocity.Layer) ([2]SlownessLayer, bool, error) {
	var curr [2]SlownessLayer
	p, err := ToSlownessLayer(vl, P, f.radius)
	if err != nil {
		return curr, false, err
	}
	curr[P] = p

	sAsP := st.inFluid || (st.belowOuterCore && !f.allowInnerCoreS)
	if sAsP {
		curr[S] = p
		return curr, true, nil
	}
	s, err := ToSlownessLayer(vl, S, f.radius)
	if err != nil {
		return curr, false, err
	}
	curr[S] = s
	return curr, false, nil
}

func (f *criticalPointFinder) closeHighSlowness(st *scanState, scan *criticalScan, w WaveType, curr SlownessLayer) {
	if !st.inHighSlowness[w] || curr.TopP >= st.minSoFar[w] {
		return
	}
	st.highSlowness[w].BotDepth = curr.TopDepth
	scan.highSlowness[w] = append(scan.highSlowness[w], st.highSlowness[w])
	st.inHighSlowness[w] = false
	f.logger.Debug("high slowness zone closed",
		zap.Stringer("wave", w),
		zap.Float64("depth", curr.TopDepth))
}
