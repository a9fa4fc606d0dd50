package slowness

import (
	"errors"
	"math"
	"testing"

	"go.uber.org/zap"

	"github.com/san-kum/seismo/internal/velocity"
)

func newFinder(vm VelocityModel, allowInnerCoreS bool) *criticalPointFinder {
	return &criticalPointFinder{
		vmod:            vm,
		radius:          vm.SurfaceRadius(),
		allowInnerCoreS: allowInnerCoreS,
		tol:             DefaultParams().SlownessTolerance,
		logger:          zap.NewNop(),
	}
}

func criticalDepths(scan *criticalScan) []float64 {
	out := make([]float64, len(scan.critical))
	for i, cd := range scan.critical {
		out[i] = cd.Depth
	}
	return out
}

func equalDepths(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > 1e-9 {
			return false
		}
	}
	return true
}

func TestFindCriticalPointsTwoLayer(t *testing.T) {
	scan, err := newFinder(velocity.TwoLayer(), true).find()
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}

	if got, want := criticalDepths(scan), []float64{0, 35, 50}; !equalDepths(got, want) {
		t.Errorf("critical depths = %v, want %v", got, want)
	}
	if len(scan.fluid) != 0 {
		t.Errorf("unexpected fluid zones: %v", scan.fluid)
	}
	for _, w := range Waves {
		if len(scan.highSlowness[w]) != 0 {
			t.Errorf("unexpected %s high slowness zones: %v", w, scan.highSlowness[w])
		}
	}
	if n := scan.critical[len(scan.critical)-1].VelLayer; n != 2 {
		t.Errorf("bottom velocity layer index = %d, want 2", n)
	}
}

func TestFindCriticalPointsLowVelocityZone(t *testing.T) {
	scan, err := newFinder(velocity.LowVelocityZone(), true).find()
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}

	if got, want := criticalDepths(scan), []float64{0, 20, 40, 100}; !equalDepths(got, want) {
		t.Errorf("critical depths = %v, want %v", got, want)
	}

	wantP := 6351.0 / 6
	wantS := 6351.0 / 3.5
	for w, want := range map[WaveType]float64{P: wantP, S: wantS} {
		zones := scan.highSlowness[w]
		if len(zones) != 1 {
			t.Fatalf("%s high slowness zones = %v, want one", w, zones)
		}
		z := zones[0]
		if z.TopDepth != 20 || z.BotDepth != 40 {
			t.Errorf("%s zone spans %g-%g, want 20-40", w, z.TopDepth, z.BotDepth)
		}
		if math.Abs(z.RayParam-want) > 1e-9 {
			t.Errorf("%s zone ray param = %g, want %g", w, z.RayParam, want)
		}
	}
}

func TestFindCriticalPointsFluidLayer(t *testing.T) {
	scan, err := newFinder(velocity.FluidLayer(), true).find()
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}

	if got, want := criticalDepths(scan), []float64{0, 100, 200, 300}; !equalDepths(got, want) {
		t.Errorf("critical depths = %v, want %v", got, want)
	}
	if len(scan.fluid) != 1 || scan.fluid[0].TopDepth != 100 || scan.fluid[0].BotDepth != 200 {
		t.Fatalf("fluid zones = %v, want [100, 200]", scan.fluid)
	}
	if scan.fluid[0].RayParam != unsetRayParam {
		t.Errorf("fluid zone ray param = %g", scan.fluid[0].RayParam)
	}

	// S in the fluid layer carries P slowness.
	if !scan.sAsP[1] || scan.sAsP[0] || scan.sAsP[2] {
		t.Errorf("sAsP = %v, want only layer 1", scan.sAsP)
	}
	if scan.layers[S][1] != scan.layers[P][1] {
		t.Errorf("fluid S layer %v differs from P %v", scan.layers[S][1], scan.layers[P][1])
	}

	zones := scan.highSlowness[S]
	if len(zones) != 1 || zones[0].TopDepth != 200 || zones[0].BotDepth != 300 {
		t.Fatalf("S high slowness zones = %v, want [200, 300]", zones)
	}
	if want := 6171.0 / 7; math.Abs(zones[0].RayParam-want) > 1e-9 {
		t.Errorf("S zone ray param = %g, want %g", zones[0].RayParam, want)
	}
	if len(scan.highSlowness[P]) != 0 {
		t.Errorf("unexpected P zones: %v", scan.highSlowness[P])
	}
}

func TestFindCriticalPointsInnerCore(t *testing.T) {
	vm := velocity.SimpleEarth()
	// Exit the outer core below the inner core boundary.
	vm.IOCBDepth = 5000

	scan, err := newFinder(vm, false).find()
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	last := len(scan.sAsP) - 1
	if !scan.sAsP[last] {
		t.Error("inner core S should carry P slowness when inner core S is disabled")
	}
	if scan.layers[S][last] != scan.layers[P][last] {
		t.Error("inner core S layer should equal the P layer")
	}

	scan, err = newFinder(vm, true).find()
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if scan.sAsP[last] {
		t.Error("inner core S should be kept when allowed")
	}
}

func TestFindCriticalPointsGradientExtremum(t *testing.T) {
	vm := &velocity.Model{
		Name:      "extremum",
		Radius:    velocity.EarthRadius,
		IOCBDepth: 5150,
		Layers: []velocity.Layer{
			{TopDepth: 0, BotDepth: 50, TopPVelocity: 6, BotPVelocity: 6, TopSVelocity: 3.5, BotSVelocity: 3.5},
			{TopDepth: 50, BotDepth: 100, TopPVelocity: 6, BotPVelocity: 5, TopSVelocity: 3.5, BotSVelocity: 2.9},
			{TopDepth: 100, BotDepth: 150, TopPVelocity: 5, BotPVelocity: 7, TopSVelocity: 2.9, BotSVelocity: 4},
		},
	}

	scan, err := newFinder(vm, true).find()
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if got, want := criticalDepths(scan), []float64{0, 50, 100, 150}; !equalDepths(got, want) {
		t.Errorf("critical depths = %v, want %v", got, want)
	}
	for _, w := range Waves {
		if len(scan.highSlowness[w]) != 0 {
			t.Errorf("continuous model should have no %s zones, got %v", w, scan.highSlowness[w])
		}
	}
}

func TestFindCriticalPointsFluidSurface(t *testing.T) {
	vm := velocity.TwoLayer()
	vm.Layers[0].TopSVelocity = 0
	vm.Layers[0].BotSVelocity = 0

	if _, err := newFinder(vm, true).find(); !errors.Is(err, ErrFluidSurface) {
		t.Errorf("expected ErrFluidSurface, got %v", err)
	}
}

func TestCoarseSampleInsertsJumps(t *testing.T) {
	scan, err := newFinder(velocity.FluidLayer(), true).find()
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	m := &Model{params: DefaultParams(), radius: velocity.EarthRadius}
	m.coarseSample(scan)

	// Three velocity layers with two jumps in at least one wave.
	for _, w := range Waves {
		if n := len(m.layers[w]); n != 5 {
			t.Fatalf("%s layers = %d, want 5", w, n)
		}
	}
	for _, i := range []int{1, 3} {
		for _, w := range Waves {
			l := m.layers[w][i]
			if !l.IsDiscontinuity() {
				t.Errorf("%s layer %d should be a jump, got %v", w, i, l)
			}
			if l.TopP != m.layers[w][i-1].BotP || l.BotP != m.layers[w][i+1].TopP {
				t.Errorf("%s jump %v does not join its neighbours", w, l)
			}
		}
	}
}
