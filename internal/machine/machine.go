// Package machine wires every NovaVM peripheral, the memory bus, the
// CPU core, the cycle scheduler, and the debugger gate into a single
// runnable system. Nothing outside this package needs to know the
// construction order or the fixed bus dispatch list; callers get a
// Machine and call LoadROM/Boot/Run.
package machine

import (
	"novavm/internal/blitter"
	"novavm/internal/bus"
	"novavm/internal/clock"
	"novavm/internal/cpu"
	"novavm/internal/debugsvc"
	"novavm/internal/dma"
	"novavm/internal/fileio"
	"novavm/internal/hostapi"
	"novavm/internal/memspace"
	"novavm/internal/music"
	"novavm/internal/nic"
	"novavm/internal/sid"
	"novavm/internal/sidfile"
	"novavm/internal/timer"
	"novavm/internal/vgc"
	"novavm/internal/xmc"
)

// Config bundles every construction-time knob spec.md §6 and §9 call
// for: the three CPU clock knobs plus the two sizes a host must pick
// (XRAM size and the save-file directory) that spec.md leaves as
// deployment parameters rather than hardwired constants.
type Config struct {
	CPUHz       uint64
	FrameRateHz uint64
	Turbo       bool
	TimingLog   bool

	XRAMSizeKiB int    // spec.md §3.1: "N KiB (>= 64 KiB, page-aligned)"
	SaveDir     string // root directory fileio's program/graphics saves are rooted under
	Model       cpu.Model
}

// DefaultConfig matches the values spec.md §6 names as defaults.
func DefaultConfig() Config {
	return Config{
		CPUHz:       12_000_000,
		FrameRateHz: 60,
		XRAMSizeKiB: 64,
		SaveDir:     ".",
		Model:       cpu.CMOS65C02,
	}
}

// spaceRegistry implements memspace.Registry over the concrete spaces a
// fully wired Machine exposes to DMA, the blitter, and file I/O.
type spaceRegistry struct {
	spaces map[memspace.ID]memspace.Space
}

func (r spaceRegistry) Space(id memspace.ID) memspace.Space { return r.spaces[id] }

// cpuRegSource adapts *cpu.CPU's Registers() (which returns cpu.Registers)
// to the debugsvc.Debugger's own Registers shape, so the debugger package
// never needs to import internal/cpu.
type cpuRegSource struct{ c *cpu.CPU }

func (s cpuRegSource) Registers() debugsvc.Registers {
	r := s.c.Registers()
	return debugsvc.Registers{A: r.A, X: r.X, Y: r.Y, SP: r.SP, PC: r.PC, P: r.P}
}

// Machine is the fully wired NovaVM system: every peripheral, the bus
// that dispatches across them, the CPU core, the cycle scheduler, and
// the debugger gate interposed before every instruction.
type Machine struct {
	Bus       *bus.Bus
	CPU       *cpu.CPU
	Scheduler *clock.Scheduler
	Debugger  *debugsvc.Debugger
	Logger    *debugsvc.Logger
	Hooks     *hostapi.Hooks

	VGC     *vgc.VGC
	SID1    *sid.SID
	SID2    *sid.SID
	Music   *music.Engine
	XMC     *xmc.XMC
	Timer   *timer.Timer
	NIC     *nic.NIC
	DMA     *dma.DMA
	Blitter *blitter.Blitter
	FIO     *fileio.FileIO

	cyclesPerFrame uint64
}

// New constructs every peripheral, wires the bus's fixed dispatch
// order, seeds the hardware vector table, and builds the scheduler and
// debugger gate on top. The Machine is left un-booted: callers load a
// ROM image with LoadROM, then call Boot before the first RunSlice/Run.
func New(cfg Config) *Machine {
	logger := debugsvc.NewLogger(10_000)
	hooks := hostapi.NewHooks()

	vgcCtrl := vgc.New()
	sid1 := sid.New(0xD400, cfg.CPUHz)
	sid2 := sid.New(0xD420, cfg.CPUHz)
	musicEngine := music.NewEngine(sid1, sid2)
	xmcCtrl := xmc.New(cfg.XRAMSizeKiB)
	timerCtrl := timer.New()
	nicCtrl := nic.New()

	b := bus.New(bus.Config{CPUHz: cfg.CPUHz, FrameRateHz: cfg.FrameRateHz},
		vgcCtrl, sid1, sid2, musicEngine, xmcCtrl, nil, timerCtrl, nicCtrl, nil, nil)

	registry := spaceRegistry{spaces: map[memspace.ID]memspace.Space{
		memspace.CPURAM:    b.RAMSpace(),
		memspace.VGCChar:   vgc.CharSpaceOf(vgcCtrl),
		memspace.VGCColor:  vgc.ColorSpaceOf(vgcCtrl),
		memspace.VGCGfx:    vgc.GfxSpaceOf(vgcCtrl),
		memspace.VGCSprite: vgc.SpriteSpaceOf(vgcCtrl),
		memspace.XRAM:      xmc.XRAMSpaceOf(xmcCtrl),
	}}

	dmaCtrl := dma.New(registry, func(dst memspace.ID) {
		if dst == memspace.XRAM {
			xmcCtrl.RefreshStats()
		}
	})
	blitterCtrl := blitter.New(registry)
	fio := fileio.New(cfg.SaveDir, registry)
	fio.OnProgramSaved = func(name string) {
		hooks.Publish(hostapi.EventProgramSaved, map[string]any{"name": name})
	}

	// DMA, the blitter, and file I/O all depend on the space registry
	// built from the bus's own RAM space, so they're constructed after
	// bus.New and wired in via the setters that keep the bus's fixed
	// dispatch order in sync.
	b.SetDMA(dmaCtrl)
	b.SetBlitter(blitterCtrl)
	b.SetFIO(fio)
	b.OnSoftReset = func() {
		hooks.Publish(hostapi.EventSysReset, nil)
	}

	cpuLog := debugsvc.NewCPULoggerAdapter(logger, debugsvc.CPULogNone)
	cpuCore := cpu.NewCPU(b, cpuLog, cfg.Model)
	dbg := debugsvc.NewDebugger(cpuRegSource{cpuCore})

	cyclesPerFrame := uint64(0)
	if cfg.FrameRateHz > 0 {
		cyclesPerFrame = cfg.CPUHz / cfg.FrameRateHz
	}

	if cfg.TimingLog {
		logger.SetComponentEnabled(debugsvc.ComponentSystem, true)
	}
	sched := clock.New(cpuCore, b, dbg, clock.Config{
		CPUHz:     cfg.CPUHz,
		Turbo:     cfg.Turbo,
		TimingLog: cfg.TimingLog,
		FrameRate: cfg.FrameRateHz,
	}, cyclesPerFrame, logger)

	m := &Machine{
		Bus: b, CPU: cpuCore, Scheduler: sched, Debugger: dbg, Logger: logger, Hooks: hooks,
		VGC: vgcCtrl, SID1: sid1, SID2: sid2, Music: musicEngine, XMC: xmcCtrl,
		Timer: timerCtrl, NIC: nicCtrl, DMA: dmaCtrl, Blitter: blitterCtrl, FIO: fio,
		cyclesPerFrame: cyclesPerFrame,
	}
	return m
}

// LoadROM copies image into the ROM body and reseeds the vector table,
// then notifies any observing host UI via hostapi.
func (m *Machine) LoadROM(image []byte) {
	m.Bus.LoadROM(image)
	m.Bus.SeedVectorTable()
	m.Hooks.Publish(hostapi.EventROMSwapped, map[string]any{"size": len(image)})
}

// Boot starts the CPU from the reset vector (entry == nil) or from an
// explicit entry point, e.g. a SID-file trampoline installed at $03D2.
func (m *Machine) Boot(entry *uint16) {
	m.CPU.Boot(entry)
}

// LoadSIDFile parses a PSID/RSID tune, copies its program body into bus
// memory at its load address, and installs the $03D2 playback trampoline
// (a no-op for RSID tunes, which install their own IRQ vector). It
// returns the entry point the caller should pass to Boot: the trampoline
// base for PSID tunes, or the tune's own init address for RSID tunes.
func (m *Machine) LoadSIDFile(data []byte, song uint8) (uint16, error) {
	f, err := sidfile.Parse(data)
	if err != nil {
		return 0, err
	}
	sidfile.LoadProgram(m.Bus, f.Header, f.Data)
	if f.Header.IsRSID {
		return f.Header.InitAddress, nil
	}
	sidfile.InstallTrampoline(m.Bus, f.Header, song)
	return sidfile.TrampolineBase, nil
}

// Shutdown stops background peripheral workers (NIC readers) and the
// async logger's drain goroutine, matching the graceful-shutdown
// cancellation model in spec.md §5.
func (m *Machine) Shutdown() error {
	err := m.NIC.Shutdown()
	m.Logger.Shutdown()
	return err
}
