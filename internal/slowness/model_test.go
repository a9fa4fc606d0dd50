package slowness_test

import (
	"errors"

	"github.com/google/go-cmp/cmp"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/san-kum/seismo/internal/slowness"
	"github.com/san-kum/seismo/internal/velocity"
)

// countingModel records how often layers are read.
type countingModel struct {
	*velocity.Model
	reads int
}

func (c *countingModel) LayerAt(i int) velocity.Layer {
	c.reads++
	return c.Model.LayerAt(i)
}

func depthsOf(cds []slowness.CriticalDepth) []float64 {
	out := make([]float64, len(cds))
	for i, cd := range cds {
		out[i] = cd.Depth
	}
	return out
}

func build(vm *velocity.Model) *slowness.Model {
	m, err := slowness.New(vm, slowness.DefaultParams())
	Expect(err).NotTo(HaveOccurred())
	return m
}

var _ = Describe("Model", func() {
	Describe("two-layer model", func() {
		var m *slowness.Model

		BeforeEach(func() {
			m = build(velocity.TwoLayer())
		})

		It("records the surface, the Moho and the bottom", func() {
			Expect(depthsOf(m.CriticalDepths())).To(Equal([]float64{0, 35, 50}))
		})

		It("points critical depths at layer tops", func() {
			cds := m.CriticalDepths()
			for _, w := range slowness.Waves {
				Expect(cds[0].LayerNum(w)).To(Equal(0))
				Expect(m.Layer(w, cds[1].LayerNum(w)).TopDepth).To(Equal(35.0))
				Expect(cds[2].LayerNum(w)).To(Equal(m.NumLayers(w)))
			}
		})

		It("has a single jump layer at the Moho", func() {
			st := m.Stats(slowness.P)
			Expect(st.Discontinuities).To(Equal(1))
			Expect(st.MaxDeltaP).To(BeNumerically("<=", slowness.DefaultParams().MaxDeltaP))
			Expect(st.MinSlowness).To(BeNumerically("~", 6321.0/8, 1e-9))
		})

		It("has no zones", func() {
			Expect(m.FluidZones()).To(BeEmpty())
			Expect(m.HighSlownessZones(slowness.P)).To(BeEmpty())
			Expect(m.HighSlownessZones(slowness.S)).To(BeEmpty())
		})

		It("returns copies of its layers", func() {
			layers := m.Layers(slowness.P)
			layers[0].TopP = -1
			Expect(m.Layer(slowness.P, 0).TopP).To(BeNumerically(">", 0))
		})
	})

	It("places the Moho critical depth in a gradient model", func() {
		m := build(velocity.Moho())
		Expect(depthsOf(m.CriticalDepths())).To(Equal([]float64{0, 35, 200}))
	})

	Describe("fluid layer", func() {
		var m *slowness.Model

		BeforeEach(func() {
			m = build(velocity.FluidLayer())
		})

		It("reports the fluid zone without a ray parameter", func() {
			Expect(m.FluidZones()).To(Equal([]slowness.DepthRange{{TopDepth: 100, BotDepth: 200, RayParam: -1}}))
			Expect(m.DepthInFluid(150)).To(BeTrue())
			Expect(m.DepthInFluid(50)).To(BeFalse())
		})

		It("uses P slowness for S inside the fluid", func() {
			for i := 0; i < m.NumLayers(slowness.P); i++ {
				p, s := m.Layer(slowness.P, i), m.Layer(slowness.S, i)
				if p.TopDepth >= 100 && p.BotDepth <= 200 && !p.IsDiscontinuity() {
					Expect(s).To(Equal(p))
				}
			}
		})

		It("opens an S high slowness zone below the fluid", func() {
			zones := m.HighSlownessZones(slowness.S)
			Expect(zones).To(HaveLen(1))
			Expect(zones[0].TopDepth).To(Equal(200.0))
			Expect(zones[0].BotDepth).To(Equal(300.0))
			Expect(zones[0].RayParam).To(BeNumerically("~", 6171.0/7, 1e-9))
			Expect(m.DepthInHighSlowness(250, slowness.S)).To(BeTrue())
			Expect(m.DepthInHighSlowness(250, slowness.P)).To(BeFalse())
		})
	})

	It("finds the low velocity zone in both waves", func() {
		m := build(velocity.LowVelocityZone())
		Expect(depthsOf(m.CriticalDepths())).To(Equal([]float64{0, 20, 40, 100}))
		for _, w := range slowness.Waves {
			zones := m.HighSlownessZones(w)
			Expect(zones).To(HaveLen(1))
			Expect(zones[0].TopDepth).To(Equal(20.0))
			Expect(zones[0].BotDepth).To(Equal(40.0))
		}
		Expect(m.HighSlownessZones(slowness.P)[0].RayParam).To(BeNumerically("~", 6351.0/6, 1e-9))
	})

	DescribeTable("sampling properties",
		func(name string) {
			vm, err := velocity.GetPreset(name)
			Expect(err).NotTo(HaveOccurred())
			params := slowness.DefaultParams()
			m := build(vm)

			for _, w := range slowness.Waves {
				Expect(m.NumLayers(w)).To(Equal(m.NumLayers(slowness.P)))
				prevBot := 0.0
				for i := 0; i < m.NumLayers(w); i++ {
					l := m.Layer(w, i)
					Expect(l.TopDepth).To(Equal(prevBot))
					Expect(l.TopDepth).To(Equal(m.Layer(slowness.P, i).TopDepth))
					prevBot = l.BotDepth
					if l.IsDiscontinuity() {
						continue
					}
					Expect(l.Thickness()).To(BeNumerically("<=", params.MaxDepthInterval))
					Expect(l.TopP - l.BotP).To(BeNumerically("~", 0, params.MaxDeltaP))
				}
				Expect(prevBot).To(Equal(vm.MaxDepth()))
			}

			cds := m.CriticalDepths()
			Expect(cds[0].Depth).To(Equal(0.0))
			Expect(cds[len(cds)-1].Depth).To(Equal(vm.MaxDepth()))
			for _, cd := range cds[:len(cds)-1] {
				for _, w := range slowness.Waves {
					Expect(m.Layer(w, cd.LayerNum(w)).TopDepth).To(BeNumerically("~", cd.Depth, 1e-9))
				}
			}

			again := build(vm)
			for _, w := range slowness.Waves {
				Expect(cmp.Diff(m.Layers(w), again.Layers(w))).To(BeEmpty())
			}
			Expect(cmp.Diff(cds, again.CriticalDepths())).To(BeEmpty())
		},
		Entry("two-layer", "two-layer"),
		Entry("moho", "moho"),
		Entry("lvz", "lvz"),
		Entry("fluid-layer", "fluid-layer"),
		Entry("simple-earth", "simple-earth"),
	)

	Describe("errors", func() {
		It("rejects inconsistent parameters before reading the model", func() {
			vm := &countingModel{Model: velocity.TwoLayer()}
			params := slowness.DefaultParams()
			params.MinDeltaP = params.MaxDeltaP + 1

			_, err := slowness.New(vm, params)
			Expect(err).To(MatchError(slowness.ErrInvalidParams))
			Expect(vm.reads).To(BeZero())
		})

		It("rejects an empty model", func() {
			vm := velocity.TwoLayer()
			vm.Layers = nil
			_, err := slowness.New(vm, slowness.DefaultParams())
			Expect(err).To(MatchError(slowness.ErrEmptyModel))
		})

		It("rejects a model that fails its own validation", func() {
			vm := velocity.TwoLayer()
			vm.Layers[1].TopDepth = 36
			_, err := slowness.New(vm, slowness.DefaultParams())
			Expect(err).To(MatchError(slowness.ErrInvalidModel))
			Expect(errors.Is(err, velocity.ErrNotContiguous)).To(BeTrue())
		})

		It("rejects a fluid surface", func() {
			vm := velocity.TwoLayer()
			vm.Layers[0].TopSVelocity = 0
			vm.Layers[0].BotSVelocity = 0
			_, err := slowness.New(vm, slowness.DefaultParams())
			Expect(err).To(MatchError(slowness.ErrFluidSurface))
		})

		It("reports refinement that never settles", func() {
			params := slowness.DefaultParams()
			params.MinDeltaP = 0
			params.MaxRangeInterval = 1e-9
			params.MaxRefinementPasses = 3

			_, err := slowness.New(velocity.TwoLayer(), params)
			Expect(err).To(MatchError(slowness.ErrNotConverged))
			var rerr *slowness.RefinementError
			Expect(errors.As(err, &rerr)).To(BeTrue())
			Expect(rerr.Passes).To(Equal(3))
			Expect(rerr.Check).NotTo(BeEmpty())
		})

		It("rejects slowness increasing in both waves without a discontinuity", func() {
			vm := &velocity.Model{
				Name:      "smooth-lvz",
				Radius:    velocity.EarthRadius,
				IOCBDepth: 5150,
				Layers: []velocity.Layer{
					{TopDepth: 0, BotDepth: 50, TopPVelocity: 6, BotPVelocity: 6, TopSVelocity: 3.5, BotSVelocity: 3.5},
					{TopDepth: 50, BotDepth: 100, TopPVelocity: 6, BotPVelocity: 5, TopSVelocity: 3.5, BotSVelocity: 2.9},
					{TopDepth: 100, BotDepth: 150, TopPVelocity: 5, BotPVelocity: 7, TopSVelocity: 2.9, BotSVelocity: 4},
				},
			}
			_, err := slowness.New(vm, slowness.DefaultParams())
			Expect(err).To(MatchError(slowness.ErrValidation))
		})
	})

	It("logs pipeline checkpoints at debug level", func() {
		core, logs := observer.New(zapcore.DebugLevel)
		_, err := slowness.New(velocity.TwoLayer(), slowness.DefaultParams(), slowness.WithLogger(zap.New(core)))
		Expect(err).NotTo(HaveOccurred())
		Expect(logs.FilterMessage("sample complete").Len()).To(Equal(1))
		Expect(logs.FilterMessage("refinement pass").Len()).To(BeNumerically(">=", 1))
	})
})
