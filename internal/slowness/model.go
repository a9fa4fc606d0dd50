package slowness

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/san-kum/seismo/internal/velocity"
)

// VelocityModel is the read-only view of a layered velocity model that
// construction depends on. Layers must be sorted and contiguous.
type VelocityModel interface {
	SurfaceRadius() float64
	InnerCoreBoundary() float64
	NumLayers() int
	LayerAt(i int) velocity.Layer
	Validate() error
}

// CriticalDepth is a depth with a discontinuity or slowness extremum, and
// the index of the P and S layers whose top lies there. The deepest entry
// marks the bottom of the model and indexes one past the last layer.
type CriticalDepth struct {
	Depth    float64 `json:"depth" msgpack:"depth"`
	VelLayer int     `json:"vel_layer" msgpack:"vel_layer"`
	PLayer   int     `json:"p_layer" msgpack:"p_layer"`
	SLayer   int     `json:"s_layer" msgpack:"s_layer"`
}

func (c CriticalDepth) LayerNum(w WaveType) int {
	if w == P {
		return c.PLayer
	}
	return c.SLayer
}

// unsetRayParam marks a DepthRange that carries no ray parameter.
const unsetRayParam = -1

// DepthRange is a contiguous fluid or high-slowness zone. RayParam is the
// smallest slowness above a high-slowness zone, or -1 for fluid zones.
type DepthRange struct {
	TopDepth float64 `json:"top_depth" msgpack:"top_depth"`
	BotDepth float64 `json:"bot_depth" msgpack:"bot_depth"`
	RayParam float64 `json:"ray_param" msgpack:"ray_param"`
}

func (r DepthRange) Contains(depth float64) bool {
	return depth >= r.TopDepth && depth <= r.BotDepth
}

// Model is a sampled slowness model. It is fully built and validated by
// New and never changes afterwards.
type Model struct {
	vmod   VelocityModel
	radius float64
	params Params
	logger *zap.Logger

	layers       [2][]SlownessLayer
	critical     []CriticalDepth
	highSlowness [2][]DepthRange
	fluid        []DepthRange

	// sAsP marks velocity layers whose S layers carry P slowness.
	sAsP []bool
}

type Option func(*Model)

// WithLogger routes pipeline diagnostics to l.
func WithLogger(l *zap.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// New samples vmod under params. The velocity model is only read and must
// outlive the returned Model.
func New(vmod VelocityModel, params Params, opts ...Option) (*Model, error) {
	if vmod == nil {
		return nil, fmt.Errorf("%w: nil model", ErrInvalidModel)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	m := &Model{
		vmod:   vmod,
		params: params,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}

	if err := m.createSample(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Model) createSample() error {
	if m.vmod.NumLayers() == 0 {
		return ErrEmptyModel
	}
	if err := m.vmod.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidModel, err)
	}
	if m.vmod.LayerAt(0).TopSVelocity == 0 {
		return ErrFluidSurface
	}
	m.radius = m.vmod.SurfaceRadius()

	m.logger.Debug("create sample",
		zap.Int("velocity_layers", m.vmod.NumLayers()),
		zap.Float64("radius", m.radius))

	finder := &criticalPointFinder{
		vmod:            m.vmod,
		radius:          m.radius,
		allowInnerCoreS: m.params.AllowInnerCoreS,
		tol:             m.params.SlownessTolerance,
		logger:          m.logger,
	}
	scan, err := finder.find()
	if err != nil {
		return err
	}
	m.critical = scan.critical
	m.highSlowness = scan.highSlowness
	m.fluid = scan.fluid
	m.logger.Debug("critical points found",
		zap.Int("critical", len(m.critical)),
		zap.Int("high_slowness_p", len(m.highSlowness[P])),
		zap.Int("high_slowness_s", len(m.highSlowness[S])),
		zap.Int("fluid", len(m.fluid)))

	m.coarseSample(scan)
	m.logger.Debug("coarse sample", zap.Int("layers", len(m.layers[P])))

	if err := m.refine(); err != nil {
		return err
	}
	if err := m.fixCriticalPoints(); err != nil {
		return err
	}
	if err := m.Validate(); err != nil {
		return err
	}

	m.logger.Debug("sample complete",
		zap.Int("p_layers", len(m.layers[P])),
		zap.Int("s_layers", len(m.layers[S])))
	return nil
}

// sampleAt evaluates the model slowness at depth from the velocity model,
// applying the same S-for-P substitution the finder chose for that layer.
func (m *Model) sampleAt(depth float64, w WaveType) (float64, error) {
	n := m.vmod.NumLayers()
	i := sort.Search(n, func(i int) bool {
		return m.vmod.LayerAt(i).BotDepth > depth
	})
	if i == n {
		i = n - 1
	}
	if w == S && m.sAsP[i] {
		w = P
	}
	return slownessAt(m.vmod.LayerAt(i), w, depth, m.radius)
}

func (m *Model) Radius() float64 { return m.radius }

func (m *Model) Params() Params { return m.params }

func (m *Model) VelocityModel() VelocityModel { return m.vmod }

func (m *Model) NumLayers(w WaveType) int { return len(m.layers[w]) }

func (m *Model) Layer(w WaveType, i int) SlownessLayer { return m.layers[w][i] }

func (m *Model) Layers(w WaveType) []SlownessLayer {
	return slices.Clone(m.layers[w])
}

func (m *Model) CriticalDepths() []CriticalDepth {
	return slices.Clone(m.critical)
}

func (m *Model) HighSlownessZones(w WaveType) []DepthRange {
	return slices.Clone(m.highSlowness[w])
}

func (m *Model) FluidZones() []DepthRange {
	return slices.Clone(m.fluid)
}

// DepthInHighSlowness reports whether depth falls inside a high-slowness
// zone for w.
func (m *Model) DepthInHighSlowness(depth float64, w WaveType) bool {
	for _, r := range m.highSlowness[w] {
		if r.Contains(depth) {
			return true
		}
	}
	return false
}

func (m *Model) DepthInFluid(depth float64) bool {
	for _, r := range m.fluid {
		if r.Contains(depth) {
			return true
		}
	}
	return false
}

func (m *Model) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "slowness model: radius=%g P layers=%d S layers=%d\n",
		m.radius, len(m.layers[P]), len(m.layers[S]))
	fmt.Fprintf(&sb, "critical depths:")
	for _, cd := range m.critical {
		fmt.Fprintf(&sb, " %g", cd.Depth)
	}
	sb.WriteString("\n")
	for _, w := range Waves {
		for _, r := range m.highSlowness[w] {
			fmt.Fprintf(&sb, "%s high slowness zone: %g-%g p=%g\n", w, r.TopDepth, r.BotDepth, r.RayParam)
		}
	}
	for _, r := range m.fluid {
		fmt.Fprintf(&sb, "fluid zone: %g-%g\n", r.TopDepth, r.BotDepth)
	}
	return sb.String()
}
