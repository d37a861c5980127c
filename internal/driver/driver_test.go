package driver

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/plotanim/internal/frame"
	"github.com/san-kum/plotanim/internal/palette"
	"github.com/san-kum/plotanim/internal/plot"
	"github.com/san-kum/plotanim/internal/sampler"
	"github.com/san-kum/plotanim/internal/terminal"
)

type recorder struct {
	samples []plot.Sample
	cfg     plot.Config
	calls   int
}

func (r *recorder) Render(samples []plot.Sample, cfg plot.Config) []string {
	r.samples, r.cfg = samples, cfg
	r.calls++
	return []string{"chart", "row two"}
}

func newComposer(r plot.Renderer) *Composer {
	return &Composer{
		Sampler:   sampler.New(palette.Default(), sampler.DefaultPeriod, sampler.DefaultDensity),
		Renderer:  r,
		Theme:     frame.ThemePlain,
		Caption:   "Press Control+C to exit.",
		Aggregate: plot.Average,
		Margin:    terminal.Dims{Cols: 9, Rows: 5},
	}
}

func fixedClock(ms int64) func() time.Time {
	return func() time.Time { return time.UnixMilli(ms) }
}

func fixedSize(cols, rows int) func() terminal.Dims {
	return func() terminal.Dims { return terminal.Dims{Cols: cols, Rows: rows} }
}

var _ = Describe("Composer", func() {
	It("hands the renderer 3w samples and the margin-reduced size", func() {
		rec := &recorder{}
		screen := newComposer(rec).Compose(0, terminal.Dims{Cols: 80, Rows: 24})

		Expect(screen.Frame.Index).To(Equal(0))
		Expect(rec.samples).To(HaveLen(240))
		Expect(rec.cfg.Width).To(Equal(71))
		Expect(rec.cfg.Height).To(Equal(19))
		Expect(rec.cfg.YRange).To(Equal(plot.Range{Min: -1.5, Max: 1.5}))
		Expect(rec.cfg.Style).To(Equal(plot.Filled))
		Expect(rec.cfg.Aggregate).To(Equal(plot.Average))

		Expect(rec.samples[0].X).To(BeNumerically("==", 0))
		Expect(rec.samples[239].X).To(BeNumerically("<", 2*math.Pi))
		Expect(rec.cfg.XLabel(1.23456)).To(Equal("1.235"))
		Expect(rec.cfg.YLabel(-1.5)).To(Equal("-1.500"))
		Expect(rec.cfg.YLabel(0.5)).To(Equal(" 0.500"))
	})

	It("selects the doubled sine drawn as a line at 7.5s", func() {
		rec := &recorder{}
		screen := newComposer(rec).Compose(7500, terminal.Dims{Cols: 80, Rows: 24})

		Expect(screen.Frame.Entry.Name).To(Equal("sine-2x"))
		Expect(rec.cfg.Style).To(Equal(plot.Line))
	})

	It("pads renderer output to the requested height and boxes it", func() {
		screen := newComposer(&recorder{}).Compose(0, terminal.Dims{Cols: 80, Rows: 24})

		Expect(screen.Clamped).To(BeTrue())
		Expect(screen.Box.Lines).To(HaveLen(19 + 2))
		Expect(screen.Box.Width).To(Equal(2 + len("row two")))
		Expect(screen.Box.Lines[1]).To(Equal("│chart  │"))
		Expect(screen.Caption).To(Equal("Press Control+C to exit."))
	})

	It("keeps sizes positive on tiny terminals", func() {
		rec := &recorder{}
		newComposer(rec).Compose(0, terminal.Dims{Cols: 4, Rows: 2})

		Expect(rec.cfg.Width).To(Equal(1))
		Expect(rec.cfg.Height).To(Equal(1))
	})

	It("centers the caption under wide boxes", func() {
		r := plot.RendererFunc(func([]plot.Sample, plot.Config) []string {
			return []string{strings.Repeat("x", 70)}
		})
		screen := newComposer(r).Compose(0, terminal.Dims{Cols: 80, Rows: 24})

		Expect(screen.Box.Width).To(Equal(72))
		Expect(screen.Caption).To(HavePrefix(strings.Repeat(" ", 24) + "Press"))
	})
})

var _ = Describe("Driver", func() {
	var (
		out *syncBuffer
		rec *recorder
		d   *Driver
	)

	BeforeEach(func() {
		out = &syncBuffer{}
		rec = &recorder{}
		d = New(Options{
			Out:      out,
			Composer: newComposer(rec),
			Size:     fixedSize(80, 24),
			Clock:    fixedClock(0),
			FPS:      30,
		})
	})

	It("ticks at 1/fps", func() {
		Expect(d.Interval()).To(Equal(time.Second / 30))
		Expect(New(Options{Out: out, Composer: newComposer(rec)}).Interval()).To(Equal(time.Second / DefaultFPS))
	})

	Describe("lifecycle", func() {
		It("moves idle -> running -> stopped", func() {
			Expect(d.State()).To(Equal(Idle))
			Expect(d.Start()).To(Succeed())
			Expect(d.State()).To(Equal(Running))
			Expect(out.String()).To(Equal(terminal.HideCursor))

			Expect(d.Stop()).To(BeTrue())
			Expect(d.State()).To(Equal(Stopped))
		})

		It("stops only once", func() {
			Expect(d.Start()).To(Succeed())
			Expect(d.Stop()).To(BeTrue())
			Expect(d.Stop()).To(BeFalse())
			Expect(d.Stop()).To(BeFalse())
		})

		It("refuses to start twice or after stopping", func() {
			Expect(d.Start()).To(Succeed())
			Expect(errors.Is(d.Start(), ErrAlreadyStarted)).To(BeTrue())
			d.Stop()
			Expect(errors.Is(d.Start(), ErrStopped)).To(BeTrue())
		})

		It("cannot start after a stop while idle", func() {
			Expect(d.Stop()).To(BeFalse())
			Expect(errors.Is(d.Start(), ErrStopped)).To(BeTrue())
		})

		It("restores the cursor exactly once", func() {
			d.Restore()
			d.Restore()
			Expect(strings.Count(out.String(), terminal.ShowCursor)).To(Equal(1))
		})
	})

	Describe("Tick", func() {
		It("does nothing unless running", func() {
			drawn, err := d.Tick()
			Expect(err).NotTo(HaveOccurred())
			Expect(drawn).To(BeFalse())
			Expect(rec.calls).To(Equal(0))
		})

		It("clears the screen and writes box and caption", func() {
			Expect(d.Start()).To(Succeed())
			drawn, err := d.Tick()
			Expect(err).NotTo(HaveOccurred())
			Expect(drawn).To(BeTrue())

			s := strings.TrimPrefix(out.String(), terminal.HideCursor)
			Expect(s).To(HavePrefix(terminal.HomeClear + "┌"))
			Expect(s).To(HaveSuffix("Press Control+C to exit.\n"))
			Expect(d.Stats().Frames).To(BeEquivalentTo(1))
			Expect(d.Stats().Clamped).To(BeEquivalentTo(1))
		})

		It("skips a tick while the previous one is drawing", func() {
			entered := make(chan struct{})
			release := make(chan struct{})
			d.composer.Renderer = plot.RendererFunc(func([]plot.Sample, plot.Config) []string {
				close(entered)
				<-release
				return nil
			})
			Expect(d.Start()).To(Succeed())

			first := make(chan bool)
			go func() {
				defer GinkgoRecover()
				drawn, err := d.Tick()
				Expect(err).NotTo(HaveOccurred())
				first <- drawn
			}()

			<-entered
			drawn, err := d.Tick()
			Expect(err).NotTo(HaveOccurred())
			Expect(drawn).To(BeFalse())
			Expect(d.Stats().Skipped).To(BeEquivalentTo(1))

			close(release)
			Eventually(first).Should(Receive(BeTrue()))
			Expect(d.Stats().Frames).To(BeEquivalentTo(1))
		})

		It("reports write failures", func() {
			d = New(Options{Out: &failAfter{n: 1}, Composer: newComposer(rec), Size: fixedSize(80, 24)})
			Expect(d.Start()).To(Succeed())
			_, err := d.Tick()
			Expect(err).To(MatchError(ContainSubstring("draw frame")))
		})
	})

	Describe("Run", func() {
		It("draws until the context is canceled, then restores the cursor", func() {
			ctx, cancel := context.WithCancel(context.Background())
			errc := make(chan error, 1)
			go func() { errc <- d.Run(ctx) }()

			Eventually(func() uint64 { return d.Stats().Frames }, time.Second).Should(BeNumerically(">=", 2))
			cancel()
			Eventually(errc, time.Second).Should(Receive(BeNil()))

			Expect(d.State()).To(Equal(Stopped))
			Expect(out.String()).To(HavePrefix(terminal.HideCursor))
			Expect(out.String()).To(HaveSuffix(terminal.ShowCursor))
		})

		It("returns when stopped directly", func() {
			errc := make(chan error, 1)
			go func() { errc <- d.Run(context.Background()) }()

			Eventually(d.State, time.Second).Should(Equal(Running))
			Expect(d.Stop()).To(BeTrue())
			Eventually(errc, time.Second).Should(Receive(BeNil()))
			Expect(out.String()).To(HaveSuffix(terminal.ShowCursor))
		})

		It("restores the cursor when a frame panics", func() {
			d.composer.Renderer = plot.RendererFunc(func([]plot.Sample, plot.Config) []string {
				panic("renderer exploded")
			})

			Expect(func() { d.Run(context.Background()) }).To(PanicWith("renderer exploded"))
			Expect(out.String()).To(HaveSuffix(terminal.ShowCursor))
		})
	})
})

// failAfter accepts n writes and fails every write after that.
type failAfter struct{ n, writes int }

func (f *failAfter) Write(p []byte) (int, error) {
	f.writes++
	if f.writes > f.n {
		return 0, errors.New("broken pipe")
	}
	return len(p), nil
}
