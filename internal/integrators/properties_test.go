package integrators_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/pendsim/internal/dynamo"
	"github.com/san-kum/pendsim/internal/integrators"
	"github.com/san-kum/pendsim/internal/metrics"
	"github.com/san-kum/pendsim/internal/physics"
)

var _ = Describe("Euler schemes", func() {
	var (
		p      *physics.Pendulum
		omega0 float64
		dt     float64
	)

	BeforeEach(func() {
		p = physics.NewPendulum()
		omega0 = p.Omega0()
		dt = p.Period() / 100
	})

	energies := func(s integrators.Scheme, n int) []float64 {
		tr, err := s.Integrate(p.Theta0, p.ThetaDot0, omega0, dt, n)
		Expect(err).NotTo(HaveOccurred())
		return p.EnergySeries(tr)
	}

	DescribeTable("returns N+1 samples starting at the initial condition",
		func(s integrators.Scheme, n int) {
			tr, err := s.Integrate(p.Theta0, 0.5, omega0, dt, n)
			Expect(err).NotTo(HaveOccurred())
			Expect(tr.Len()).To(Equal(n + 1))
			Expect(tr.At(0)).To(Equal(dynamo.State{p.Theta0, 0.5}))
		},
		Entry("explicit", integrators.NewExplicitEuler(), 300),
		Entry("implicit", integrators.NewImplicitEuler(), 300),
		Entry("symplectic", integrators.NewSymplecticEuler(), 300),
		Entry("explicit, single step", integrators.NewExplicitEuler(), 1),
		Entry("symplectic, zero steps", integrators.NewSymplecticEuler(), 0),
	)

	Describe("energy", func() {
		It("grows at every explicit step by the factor 1+(ω0·dt)²", func() {
			h := energies(integrators.NewExplicitEuler(), 300)
			growth := 1 + (omega0*dt)*(omega0*dt)
			for k := 1; k < len(h); k++ {
				Expect(h[k]).To(BeNumerically(">", h[k-1]))
				Expect(h[k] / h[k-1]).To(BeNumerically("~", growth, 1e-12))
			}
		})

		It("decays at every implicit step", func() {
			h := energies(integrators.NewImplicitEuler(), 300)
			for k := 1; k < len(h); k++ {
				Expect(h[k]).To(BeNumerically("<", h[k-1]))
			}
		})

		It("stays within ω0·dt of H(0) under the symplectic scheme over 100 periods", func() {
			h := energies(integrators.NewSymplecticEuler(), 10000)
			bound := omega0 * dt
			for _, e := range h {
				Expect(math.Abs(e/h[0] - 1)).To(BeNumerically("<", bound))
			}
		})

		It("orders the per-period mean deviation by scheme", func() {
			dev := func(s integrators.Scheme) []float64 {
				h := energies(s, 300)
				d := make([]float64, len(h))
				for i, e := range h {
					d[i] = math.Abs(e - h[0])
				}
				return metrics.PeriodMeans(d, 100)
			}

			explicit := dev(integrators.NewExplicitEuler())
			implicit := dev(integrators.NewImplicitEuler())
			symplectic := dev(integrators.NewSymplecticEuler())

			Expect(explicit).To(HaveLen(3))
			for i := 1; i < len(explicit); i++ {
				Expect(explicit[i]).To(BeNumerically(">", explicit[i-1]))
				Expect(implicit[i]).To(BeNumerically(">", implicit[i-1]))
			}
			for i := range symplectic {
				Expect(symplectic[i]).To(BeNumerically("<", implicit[i]))
				Expect(symplectic[i]).To(BeNumerically("<", explicit[i]))
			}
		})
	})

	Describe("reference scenario", func() {
		var ref *dynamo.Trajectory

		BeforeEach(func() {
			Expect(dynamo.StepsFor(3*p.Period(), dt)).To(Equal(300))

			var err error
			ref, err = integrators.NewAnalytical().Integrate(p.Theta0, 0, omega0, dt, 300)
			Expect(err).NotTo(HaveOccurred())
		})

		It("has the expected pendulum constants", func() {
			Expect(omega0).To(BeNumerically("~", 9.9045, 1e-4))
			Expect(p.Period()).To(BeNumerically("~", 0.6344, 1e-4))
			Expect(p.InitialEnergy()).To(BeNumerically("~", 0.5*p.Mass*p.Gravity*p.Length*p.Theta0*p.Theta0, 1e-15))
			Expect(p.InitialEnergy()).To(BeNumerically("~", 0.04841, 1e-5))
		})

		It("keeps the symplectic error under 5% and its energy within 1%", func() {
			tr, err := integrators.NewSymplecticEuler().Integrate(p.Theta0, 0, omega0, dt, 300)
			Expect(err).NotTo(HaveOccurred())

			l2, err := metrics.L2Error(tr, ref, p.Theta0, omega0)
			Expect(err).NotTo(HaveOccurred())
			Expect(l2).To(BeNumerically("<", 0.05))

			h := p.EnergySeries(tr)
			Expect(h[len(h)-1] / p.InitialEnergy()).To(BeNumerically("~", 1, 0.01))
		})

		It("amplifies the explicit energy by (1+(ω0·dt)²)^N", func() {
			h := energies(integrators.NewExplicitEuler(), 300)
			want := math.Pow(1+(omega0*dt)*(omega0*dt), 300)
			got := h[300] / h[0]
			Expect(math.Abs(got/want - 1)).To(BeNumerically("<", 1e-9))
			Expect(got).To(BeNumerically("~", 3.261, 1e-3))
		})

		It("orders the L2 errors symplectic < implicit < explicit", func() {
			l2 := func(s integrators.Scheme) float64 {
				tr, err := s.Integrate(p.Theta0, 0, omega0, dt, 300)
				Expect(err).NotTo(HaveOccurred())
				e, err := metrics.L2Error(tr, ref, p.Theta0, omega0)
				Expect(err).NotTo(HaveOccurred())
				return e
			}

			s := l2(integrators.NewSymplecticEuler())
			i := l2(integrators.NewImplicitEuler())
			e := l2(integrators.NewExplicitEuler())
			Expect(s).To(BeNumerically("<", i))
			Expect(i).To(BeNumerically("<", e))
		})
	})

	It("rejects invalid arguments without producing a trajectory", func() {
		for _, s := range []integrators.Scheme{
			integrators.NewExplicitEuler(),
			integrators.NewImplicitEuler(),
			integrators.NewSymplecticEuler(),
		} {
			tr, err := s.Integrate(p.Theta0, 0, omega0, 0, 10)
			Expect(err).To(MatchError(dynamo.ErrInvalidArgument))
			Expect(tr).To(BeNil())

			_, err = s.Integrate(math.NaN(), 0, omega0, dt, 10)
			Expect(err).To(MatchError(dynamo.ErrInvalidArgument))

			_, err = s.Integrate(p.Theta0, 0, omega0, dt, -1)
			Expect(err).To(MatchError(dynamo.ErrInvalidArgument))
		}
	})
})

var _ = Describe("Analytical solution", func() {
	DescribeTable("passes through the initial condition at t=0",
		func(theta0, thetaDot0, omega0 float64) {
			tr, err := integrators.NewAnalytical().Integrate(theta0, thetaDot0, omega0, 0.01, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(tr.ThetaAt(0)).To(BeNumerically("~", theta0, 1e-12))
			Expect(tr.ThetaDotAt(0)).To(BeNumerically("~", thetaDot0, 1e-12))
		},
		Entry("at rest", math.Pi/10, 0.0, 9.904544411531507),
		Entry("moving", -0.2, 0.1, 3.0),
		Entry("on the domain boundary", 0.5, -1.5, 3.0),
		Entry("negative angle, positive velocity", -1.0, 1.0, 1.0),
	)

	It("conserves energy exactly up to rounding", func() {
		p := physics.NewPendulum()
		tr, err := integrators.NewAnalytical().Integrate(p.Theta0, 0, p.Omega0(), p.Period()/100, 1000)
		Expect(err).NotTo(HaveOccurred())
		for _, e := range p.EnergySeries(tr) {
			Expect(e / p.InitialEnergy()).To(BeNumerically("~", 1, 1e-12))
		}
	})

	It("rejects initial conditions outside its domain", func() {
		_, err := integrators.NewAnalytical().Integrate(0, 0.1, 1, 0.01, 10)
		Expect(err).To(MatchError(dynamo.ErrInvalidArgument))

		_, err = integrators.NewAnalytical().Integrate(0.1, 1, 1, 0.01, 10)
		Expect(err).To(MatchError(dynamo.ErrInvalidArgument))

		var argErr *dynamo.ArgumentError
		Expect(err).To(BeAssignableToTypeOf(argErr))
		Expect(err.(*dynamo.ArgumentError).Arg).To(Equal("thetaDot0"))
	})

	It("returns only the initial condition for N=0", func() {
		tr, err := integrators.NewAnalytical().Integrate(0.3, 0, 2, 0.01, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(tr.Len()).To(Equal(1))
		Expect(tr.ThetaAt(0)).To(Equal(0.3))
	})
})
