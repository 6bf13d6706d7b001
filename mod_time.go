package dimviz

import (
	"time"
)

type Time struct {
	Time time.Time
	Dt   time.Duration
}

// FrameStats counts ticks and reports the rate once per second when debug
// logging is on.
type FrameStats struct {
	FPS float64

	frames int
	since  time.Duration
}

// Add accounts for one tick lasting dt and reports whether a new rate was
// computed.
func (s *FrameStats) Add(dt time.Duration) bool {
	s.frames++
	s.since += dt
	if s.since < time.Second {
		return false
	}
	s.FPS = float64(s.frames) / s.since.Seconds()
	s.frames = 0
	s.since = 0
	return true
}

type TimeModule struct {
	// Now defaults to time.Now.
	Now func() time.Time
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	now := mod.Now
	if now == nil {
		now = time.Now
	}
	cmd.AddResources(&Time{Time: now()}, &FrameStats{}, &clock{now: now})
	app.UseSystem(
		System(timeSystem).
			InStage(Prelude).
			RunAlways(),
	)
}

type clock struct {
	now func() time.Time
}

func timeSystem(t *Time, c *clock, stats *FrameStats, log Logger) {
	now := c.now()
	t.Dt = now.Sub(t.Time)
	t.Time = now

	if stats.Add(t.Dt) {
		log.Debugf("%.1f fps", stats.FPS)
	}
}
