// Package clock implements the cycle-synchronous scheduler that drives
// the CPU and keeps every peripheral in lockstep through cycle budgets,
// mirroring the teacher's MasterClock but generalized to real-time
// pacing versus turbo mode and a pluggable debugger gate.
package clock

import (
	"time"

	"novavm/internal/debugsvc"
)

// CPU is the subset of the CPU core the scheduler drives.
type CPU interface {
	ClocksForNext() uint8
	ExecuteNext() error
	AssertIRQ(v bool)
}

// Bus is the subset of the bus the scheduler needs per slice.
type Bus interface {
	AdvanceCycles(n uint64)
	PendingIRQ() bool
	Frames() uint64
}

// Gate is the debugger service's pause/step/breakpoint hook, called
// before every instruction. A nil Gate never blocks.
type Gate interface {
	Wait()
}

// Config holds the three runtime knobs spec.md §6 exposes (CPUHz, Turbo,
// TimingLog) plus FrameRate, which the scheduler does not read.
type Config struct {
	CPUHz      uint64
	Turbo      bool
	TimingLog  bool
	FrameRate  uint64
}

const turboChunk = 200_000

// Scheduler runs the real-time-paced or turbo execution loop described in
// spec.md §4.3.
type Scheduler struct {
	cpu    CPU
	bus    Bus
	gate   Gate
	cfg    Config
	logger *debugsvc.Logger

	backlogCap uint64

	lastPace        time.Time
	lastTelemetry   time.Time
	cyclesThisSec   uint64
	framesAtLastLog uint64
	peakBacklogPct  float64
}

// New builds a Scheduler. cyclesPerFrame is only used to size the
// real-time backlog cap (spec.md §4.3: max(cpu_hz/5, 2*cycles_per_frame)).
// logger may be nil; when non-nil and cfg.TimingLog is set, the telemetry
// line is emitted through it at ComponentSystem level; with a nil logger
// no telemetry line is emitted.
func New(cpu CPU, bus Bus, gate Gate, cfg Config, cyclesPerFrame uint64, logger *debugsvc.Logger) *Scheduler {
	cap1 := cfg.CPUHz / 5
	cap2 := 2 * cyclesPerFrame
	backlog := cap1
	if cap2 > backlog {
		backlog = cap2
	}
	return &Scheduler{cpu: cpu, bus: bus, gate: gate, cfg: cfg, logger: logger, backlogCap: backlog}
}

// RunSlice executes exactly one scheduler time-slice: a real-time-paced
// budget grant, or a fixed turbo chunk, looping until the budget is
// exhausted.
func (s *Scheduler) RunSlice(budget uint64) error {
	if s.gate != nil {
		s.gate.Wait()
	}
	for budget > 0 {
		if s.gate != nil {
			s.gate.Wait()
		}
		n := uint64(s.cpu.ClocksForNext())
		if err := s.cpu.ExecuteNext(); err != nil {
			return err
		}
		s.bus.AdvanceCycles(n)
		if s.bus.PendingIRQ() {
			s.cpu.AssertIRQ(true)
		}
		if n > budget {
			budget = 0
		} else {
			budget -= n
		}
		s.cyclesThisSec += n
	}
	return nil
}

// Run drives the scheduler until stop is closed or RunSlice returns an
// error, choosing a budget per wake-up
// according to Turbo/real-time mode, and emitting the optional telemetry
// line once per wall second.
func (s *Scheduler) Run(stop <-chan struct{}) error {
	var backlog uint64
	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()
	s.lastTelemetry = time.Now()
	s.lastPace = s.lastTelemetry
	if s.bus != nil {
		s.framesAtLastLog = s.bus.Frames()
	}

	for {
		select {
		case <-stop:
			return nil
		case now := <-ticker.C:
			var budget uint64
			if s.cfg.Turbo {
				budget = turboChunk
			} else {
				elapsed := now.Sub(s.lastPace)
				s.lastPace = now
				grant := uint64(elapsed.Seconds() * float64(s.cfg.CPUHz))
				backlog += grant
				if backlog > s.backlogCap {
					backlog = s.backlogCap
				}
				if s.backlogCap > 0 {
					pct := float64(backlog) / float64(s.backlogCap) * 100
					if pct > s.peakBacklogPct {
						s.peakBacklogPct = pct
					}
				}
				budget = backlog
				backlog = 0
			}
			if err := s.RunSlice(budget); err != nil {
				return err
			}
			s.maybeEmitTelemetry(now)
		}
	}
}

// maybeEmitTelemetry logs the effective-MHz / frames-per-second / peak
// backlog-percentage line once per wall second at ComponentSystem level
// when TimingLog is enabled, matching SPEC_FULL.md's supplemented
// telemetry feature.
func (s *Scheduler) maybeEmitTelemetry(now time.Time) {
	elapsed := now.Sub(s.lastTelemetry)
	if elapsed < time.Second {
		return
	}
	if s.cfg.TimingLog && s.logger != nil {
		mhz := float64(s.cyclesThisSec) / elapsed.Seconds() / 1_000_000
		var fps float64
		if s.bus != nil {
			frames := s.bus.Frames()
			fps = float64(frames-s.framesAtLastLog) / elapsed.Seconds()
			s.framesAtLastLog = frames
		}
		s.logger.Log(debugsvc.ComponentSystem, debugsvc.LogLevelInfo, "scheduler telemetry", map[string]interface{}{
			"effective_mhz":      mhz,
			"frames_per_sec":     fps,
			"peak_backlog_pct":   s.peakBacklogPct,
			"backlog_cap_cycles": s.backlogCap,
		})
	}
	s.cyclesThisSec = 0
	s.peakBacklogPct = 0
	s.lastTelemetry = now
}
