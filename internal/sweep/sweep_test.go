package sweep

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/emsolve/internal/geometry"
	"github.com/san-kum/emsolve/internal/logging"
	"github.com/san-kum/emsolve/internal/rlgc"
	"github.com/san-kum/emsolve/internal/solver"
)

var _ = Describe("Frequencies", func() {
	It("spaces points linearly", func() {
		f, err := Frequencies(1e9, 3e9, 5, false)
		Expect(err).NotTo(HaveOccurred())
		Expect(f).To(HaveLen(5))
		Expect(f[0]).To(Equal(1e9))
		Expect(f[2]).To(BeNumerically("~", 2e9, 1))
		Expect(f[4]).To(Equal(3e9))
	})

	It("spaces points by decade", func() {
		f, err := Frequencies(1e6, 1e9, 4, true)
		Expect(err).NotTo(HaveOccurred())
		for i, want := range []float64{1e6, 1e7, 1e8, 1e9} {
			Expect(f[i]).To(BeNumerically("~", want, want*1e-9))
		}
	})

	It("returns the start frequency for a single point", func() {
		f, err := Frequencies(2e9, 5e9, 1, true)
		Expect(err).NotTo(HaveOccurred())
		Expect(f).To(Equal([]float64{2e9}))
	})

	DescribeTable("rejects invalid ranges",
		func(start, stop float64, n int) {
			_, err := Frequencies(start, stop, n, false)
			Expect(errors.Is(err, ErrInvalidRange)).To(BeTrue())
		},
		Entry("no points", 1e9, 2e9, 0),
		Entry("zero start", 0.0, 2e9, 3),
		Entry("inverted", 2e9, 1e9, 3),
	)
})

var _ = Describe("Run", func() {
	var (
		ctx context.Context
		g   *geometry.Geometry
		p   solver.Params
	)

	BeforeEach(func() {
		ctx = logging.IntoContext(context.Background(), logging.NewTestLogger(GinkgoWriter))
		var err error
		g, err = geometry.Microstrip(geometry.MicrostripSpec{
			SubstrateWidth:  5e-3,
			SubstrateHeight: 1.6e-3,
			TraceWidth:      3e-3,
			TraceThickness:  35e-6,
			EpsilonR:        4.6,
		})
		Expect(err).NotTo(HaveOccurred())
		p = solver.Params{NX: 30, NY: 60, Frequency: 1e9}
	})

	It("orders points like the input and matches a serial run", func() {
		freqs := []float64{3e9, 1e8, 1e9}
		var calls []int
		points, err := Run(ctx, g, p, freqs, nil, Options{
			Progress: func(done, total int, _ Point) {
				Expect(total).To(Equal(3))
				calls = append(calls, done)
			},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(points).To(HaveLen(3))
		Expect(calls).To(Equal([]int{1, 2, 3}))

		for i, pt := range points {
			Expect(pt.Index).To(Equal(i))
			Expect(pt.Frequency).To(Equal(freqs[i]))

			serial, err := rlgc.Calculate(ctx, g, p, freqs[i], nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(pt.Params).To(Equal(serial))
		}
	})

	It("grows skin-effect resistance with the square root of frequency", func() {
		points, err := Run(ctx, g, p, []float64{1e8, 4e8}, nil, Options{Workers: 1})
		Expect(err).NotTo(HaveOccurred())

		r := Series(points, func(x *rlgc.Parameters) float64 { return x.R })
		Expect(r[1] / r[0]).To(BeNumerically("~", 2, 1e-9))

		c := Series(points, func(x *rlgc.Parameters) float64 { return x.C })
		Expect(c[0]).To(Equal(c[1]))
		Expect(math.IsNaN(points[0].Params.Z0)).To(BeFalse())
	})

	It("reports the failing point", func() {
		_, err := Run(ctx, g, p, []float64{1e9, -1}, nil, Options{})
		Expect(err).To(HaveOccurred())
		Expect(errors.Is(err, rlgc.ErrInvalidFrequency)).To(BeTrue())
	})

	It("stops on a canceled context", func() {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := Run(cctx, g, p, []float64{1e9, 2e9}, nil, Options{})
		Expect(errors.Is(err, context.Canceled)).To(BeTrue())
	})
})
