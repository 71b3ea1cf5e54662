package experiment_test

import (
	"bytes"
	"log/slog"
	"math"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/rootlab/internal/experiment"
	"github.com/san-kum/rootlab/internal/roots"
	"github.com/san-kum/rootlab/internal/trace"
)

var _ = Describe("Experiment", func() {
	var (
		rec *trace.Recorder
		exp *experiment.Experiment
	)

	BeforeEach(func() {
		rec = trace.NewRecorder()
		exp = experiment.New(experiment.DefaultConfig(), experiment.WithObserver(rec))
	})

	Describe("Run", func() {
		It("agrees to 1e-9 for C = 5", func() {
			rep, err := exp.Run(5.0)
			Expect(err).NotTo(HaveOccurred())
			Expect(rep.Bisection.Converged).To(BeTrue())
			Expect(rep.Newton.Converged).To(BeTrue())
			Expect(rep.Difference).To(BeNumerically("<=", 1e-9))
			Expect(rep.Agree(1e-9)).To(BeTrue())
			Expect(rep.Difference).To(Equal(math.Abs(rep.Bisection.Root - rep.Newton.Root)))
		})

		It("returns exactly 1 for C = 0", func() {
			rep, err := exp.Run(0)
			Expect(err).NotTo(HaveOccurred())
			Expect(rep.Bisection.Root).To(Equal(1.0))
			Expect(rep.Newton.Root).To(Equal(1.0))
			Expect(rep.Bisection.Iterations).To(BeNumerically("<=", 1))
			Expect(rep.Newton.Iterations).To(BeNumerically("<=", 1))
			Expect(rep.Difference).To(BeZero())
		})

		It("keeps Newton inside the domain for C = 1000", func() {
			rep, err := exp.Run(1000)
			Expect(err).NotTo(HaveOccurred())
			Expect(rep.Bracket.B).To(Equal(1001.0))
			Expect(rep.Newton.Converged).To(BeTrue())
			for _, it := range rec.Iterations(roots.MethodNewton) {
				Expect(it.Estimate).To(BeNumerically(">=", 1))
			}
		})

		It("records iterations for both methods in order", func() {
			rep, err := exp.Run(5.0)
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.Methods()).To(Equal([]string{roots.MethodBisection, roots.MethodNewton}))
			Expect(rec.Iterations(roots.MethodBisection)).To(HaveLen(rep.Bisection.Iterations))
			Expect(rec.Iterations(roots.MethodNewton)).To(HaveLen(rep.Newton.Iterations))
		})

		It("is deterministic", func() {
			first, err := experiment.New(experiment.DefaultConfig()).Run(42)
			Expect(err).NotTo(HaveOccurred())
			second, err := experiment.New(experiment.DefaultConfig()).Run(42)
			Expect(err).NotTo(HaveOccurred())
			Expect(*second).To(Equal(*first))
		})

		DescribeTable("rejects invalid coefficients",
			func(c float64) {
				rep, err := exp.Run(c)
				Expect(err).To(MatchError(roots.ErrInvalidInput))
				Expect(rep).To(BeNil())
				Expect(rec.Methods()).To(BeEmpty())
			},
			Entry("negative", -1.0),
			Entry("NaN", math.NaN()),
			Entry("infinite", math.Inf(1)),
		)

		It("rejects an unusable solver configuration", func() {
			cfg := experiment.DefaultConfig()
			cfg.Solver.MaxIterations = 0
			_, err := experiment.New(cfg).Run(5)
			Expect(err).To(MatchError(roots.ErrInvalidInput))
		})

		It("reports an unconverged run without failing", func() {
			cfg := experiment.DefaultConfig()
			cfg.Solver.MaxIterations = 3
			rep, err := experiment.New(cfg).Run(888.0)
			Expect(err).NotTo(HaveOccurred())
			Expect(rep.Bisection.Converged).To(BeFalse())
			Expect(rep.Bisection.Err()).To(MatchError(roots.ErrNonConvergence))
		})
	})

	Describe("RunTime", func() {
		It("solves the 100 Hz trap at t = 1", func() {
			rep, err := exp.RunTime(1.0)
			Expect(err).NotTo(HaveOccurred())
			Expect(rep.C).To(BeNumerically("~", 888.577, 1e-3))
			Expect(rep.Time).To(Equal(1.0))
			Expect(rep.FrequencyHz).To(Equal(100.0))
			Expect(rep.Difference).To(BeNumerically("<=", 1e-6))
			Expect(rep.Bisection.Iterations).To(BeNumerically("<", 200))
			Expect(rep.Newton.Iterations).To(BeNumerically("<", 200))
		})

		DescribeTable("rejects non-positive time",
			func(t float64) {
				_, err := exp.RunTime(t)
				Expect(err).To(MatchError(roots.ErrInvalidInput))
				Expect(rec.Methods()).To(BeEmpty())
			},
			Entry("zero", 0.0),
			Entry("negative", -2.5),
		)
	})

	Describe("trace output", func() {
		It("frames each method with a header and a result line", func() {
			var buf bytes.Buffer
			e := experiment.New(experiment.DefaultConfig(), experiment.WithObserver(trace.NewPrinter(&buf)))
			_, err := e.Run(5.0)
			Expect(err).NotTo(HaveOccurred())

			out := buf.String()
			Expect(out).To(ContainSubstring("bisection method:"))
			Expect(out).To(ContainSubstring("initial interval: [1, 6]"))
			Expect(out).To(ContainSubstring("newton method:"))
			Expect(out).To(ContainSubstring("initial guess: λ0 = 3.5"))
			Expect(out).To(ContainSubstring("iteration 1: λ = 3.500000000000"))
		})

		It("feeds every observer the same iterations", func() {
			var buf bytes.Buffer
			e := experiment.New(experiment.DefaultConfig(),
				experiment.WithObserver(rec),
				experiment.WithObserver(trace.NewPrinter(&buf)))
			rep, err := e.Run(5.0)
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.Iterations(roots.MethodNewton)).To(HaveLen(rep.Newton.Iterations))
			Expect(strings.Count(buf.String(), "iteration ")).To(Equal(rep.Bisection.Iterations + rep.Newton.Iterations))
		})
	})

	Describe("logging", func() {
		It("warns when a solver stops early", func() {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
			cfg := experiment.DefaultConfig()
			cfg.Solver.MaxIterations = 2
			_, err := experiment.New(cfg, experiment.WithLogger(logger)).Run(5.0)
			Expect(err).NotTo(HaveOccurred())
			Expect(buf.String()).To(ContainSubstring("solver did not reach tolerance"))
		})
	})
})

var _ = Describe("Registry", func() {
	It("lists both methods", func() {
		r := experiment.NewRegistry()
		Expect(r.ListMethods()).To(Equal([]string{roots.MethodBisection, roots.MethodNewton}))
	})

	It("rejects unknown methods", func() {
		_, err := experiment.NewRegistry().GetMethod("secant")
		Expect(err).To(HaveOccurred())
	})
})
