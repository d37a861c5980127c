package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/san-kum/plotanim/internal/terminal"
)

const DefaultFPS = 30

var (
	ErrAlreadyStarted = errors.New("driver: already started")
	ErrStopped        = errors.New("driver: stopped")
)

type State int32

const (
	Idle State = iota
	Running
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	}
	return fmt.Sprintf("state(%d)", int32(s))
}

type Options struct {
	Out      io.Writer
	Composer *Composer
	// Size is queried on every tick.
	Size  func() terminal.Dims
	Clock func() time.Time
	FPS   int
	Log   *logrus.Entry
}

type Stats struct {
	Frames  uint64
	Skipped uint64
	Clamped uint64
}

// Driver repaints the composed screen on a fixed interval and owns the
// cursor state of its output.
type Driver struct {
	out      io.Writer
	composer *Composer
	size     func() terminal.Dims
	clock    func() time.Time
	interval time.Duration
	log      *logrus.Entry

	mu      sync.Mutex
	state   State
	ticker  *time.Ticker
	done    chan struct{}
	restore sync.Once

	busy    atomic.Bool
	frames  atomic.Uint64
	skipped atomic.Uint64
	clamped atomic.Uint64
}

func New(opts Options) *Driver {
	fps := opts.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	size := opts.Size
	if size == nil {
		size = terminal.SizeFunc(opts.Out, terminal.Fallback)
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	log := opts.Log
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = logrus.NewEntry(l)
	}

	return &Driver{
		out:      opts.Out,
		composer: opts.Composer,
		size:     size,
		clock:    clock,
		interval: time.Second / time.Duration(fps),
		log:      log.WithField("component", "driver"),
		done:     make(chan struct{}),
	}
}

func (d *Driver) Interval() time.Duration { return d.interval }

func (d *Driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

func (d *Driver) Stats() Stats {
	return Stats{
		Frames:  d.frames.Load(),
		Skipped: d.skipped.Load(),
		Clamped: d.clamped.Load(),
	}
}

// Start hides the cursor and arms the ticker.
func (d *Driver) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch d.state {
	case Running:
		return ErrAlreadyStarted
	case Stopped:
		return ErrStopped
	}

	if _, err := io.WriteString(d.out, terminal.HideCursor); err != nil {
		return fmt.Errorf("hide cursor: %w", err)
	}
	d.ticker = time.NewTicker(d.interval)
	d.state = Running
	d.log.WithField("interval", d.interval).Debug("started")
	return nil
}

// Stop clears the ticker. Only the first call on a running driver does
// anything and returns true. A driver stopped before it started can no
// longer be started.
func (d *Driver) Stop() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch d.state {
	case Idle:
		d.state = Stopped
		close(d.done)
		return false
	case Stopped:
		return false
	}

	d.ticker.Stop()
	d.ticker = nil
	d.state = Stopped
	close(d.done)
	d.log.WithFields(logrus.Fields{
		"frames":  d.frames.Load(),
		"skipped": d.skipped.Load(),
	}).Debug("stopped")
	return true
}

// Restore shows the cursor again. It writes at most once per driver.
func (d *Driver) Restore() {
	d.restore.Do(func() {
		if _, err := io.WriteString(d.out, terminal.ShowCursor); err != nil {
			d.log.WithError(err).Warn("restore cursor")
		}
	})
}

// Tick composes and draws one frame. It reports false without drawing when
// the driver is not running or another tick is still in progress; the
// latter is counted as skipped.
func (d *Driver) Tick() (bool, error) {
	if !d.busy.CompareAndSwap(false, true) {
		d.skipped.Add(1)
		return false, nil
	}
	defer d.busy.Store(false)

	if d.State() != Running {
		return false, nil
	}

	screen := d.composer.Compose(d.clock().UnixMilli(), d.size())
	if screen.Clamped {
		d.clamped.Add(1)
		d.log.WithFields(logrus.Fields{
			"function": screen.Frame.Entry.Name,
			"width":    screen.Config.Width,
			"height":   screen.Config.Height,
		}).Debug("renderer output clamped")
	}

	if _, err := io.WriteString(d.out, terminal.HomeClear+screen.String()+"\n"); err != nil {
		return false, fmt.Errorf("draw frame: %w", err)
	}
	d.frames.Add(1)
	return true, nil
}

// Run starts the driver and draws on every tick until ctx is done or Stop is
// called. The cursor is restored on every return path, panics included.
func (d *Driver) Run(ctx context.Context) error {
	defer d.Restore()

	if err := d.Start(); err != nil {
		return err
	}
	defer d.Stop()

	d.mu.Lock()
	ticks := d.ticker.C
	d.mu.Unlock()

	for {
		select {
		case <-ctx.Done():
			d.Stop()
			return nil
		case <-d.done:
			return nil
		case <-ticks:
			if _, err := d.Tick(); err != nil {
				return err
			}
		}
	}
}
