// Command novavm drives the NovaVM core headlessly: it loads a ROM
// image, wires the bus/CPU/scheduler via internal/machine, and runs the
// cycle-synchronous scheduler until interrupted. A GUI canvas, a
// network control server, and a compiler/IDE are separate external
// collaborators this binary never imports — it's the core's own
// minimal harness, nothing more.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"novavm/internal/cpu"
	"novavm/internal/debugsvc"
	"novavm/internal/machine"
)

func main() {
	romPath := flag.String("rom", "", "Path to ROM image")
	cpuHz := flag.Uint64("cpu-hz", 12_000_000, "CPU clock rate in cycles/sec")
	turbo := flag.Bool("turbo", false, "Disable real-time pacing and run at full speed")
	timingLog := flag.Bool("timing-log", false, "Emit effective-MHz telemetry once per wall second")
	xramKiB := flag.Int("xram-kib", 64, "Expansion RAM size in KiB")
	saveDir := flag.String("save-dir", ".", "Directory fileio program/graphics saves are rooted under")
	nmos := flag.Bool("nmos", false, "Emulate strict NMOS 6502 semantics instead of 65C02")
	logLevel := flag.String("log-level", "none", "CPU instruction log level: none, errors, branches, instructions, trace")
	flag.Parse()

	if *romPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: novavm -rom <path-to-rom> [flags]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	romData, err := os.ReadFile(*romPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading ROM file: %v\n", err)
		os.Exit(1)
	}

	cfg := machine.DefaultConfig()
	cfg.CPUHz = *cpuHz
	cfg.Turbo = *turbo
	cfg.TimingLog = *timingLog
	cfg.XRAMSizeKiB = *xramKiB
	cfg.SaveDir = *saveDir
	if *nmos {
		cfg.Model = cpu.NMOS6502
	}

	m := machine.New(cfg)
	applyLogLevel(m, *logLevel)

	m.LoadROM(romData)
	m.Boot(nil)

	fmt.Printf("novavm: loaded %d bytes from %s (%s, %.2f MHz%s)\n",
		len(romData), *romPath, modelName(cfg.Model), float64(cfg.CPUHz)/1_000_000, turboSuffix(cfg.Turbo))

	stop := make(chan struct{})
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		close(stop)
	}()

	if err := m.Scheduler.Run(stop); err != nil {
		fmt.Fprintf(os.Stderr, "novavm: scheduler stopped: %v\n", err)
		m.Shutdown()
		os.Exit(1)
	}
	if err := m.Shutdown(); err != nil {
		fmt.Fprintf(os.Stderr, "novavm: shutdown: %v\n", err)
	}
}

func applyLogLevel(m *machine.Machine, level string) {
	var l debugsvc.CPULogLevel
	switch level {
	case "errors":
		l = debugsvc.CPULogErrors
	case "branches":
		l = debugsvc.CPULogBranches
	case "instructions":
		l = debugsvc.CPULogInstructions
	case "trace":
		l = debugsvc.CPULogTrace
	default:
		l = debugsvc.CPULogNone
	}
	if l == debugsvc.CPULogNone {
		return
	}
	m.Logger.SetComponentEnabled(debugsvc.ComponentCPU, true)
	m.Logger.SetMinLevel(debugsvc.LogLevelTrace)
	if adapter, ok := m.CPU.Log.(*debugsvc.CPULoggerAdapter); ok {
		adapter.SetLevel(l)
	}
}

func modelName(m cpu.Model) string {
	if m == cpu.NMOS6502 {
		return "NMOS 6502"
	}
	return "65C02"
}

func turboSuffix(turbo bool) string {
	if turbo {
		return ", turbo"
	}
	return ""
}
