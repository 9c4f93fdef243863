package debugsvc

import "novavm/internal/cpu"

// CPULogLevel is the CPU-specific granularity the teacher's
// CPULoggerAdapter exposed, kept the same shape: coarser levels imply
// everything finer than CPULogNone but never more than the configured
// ceiling.
type CPULogLevel int

const (
	CPULogNone CPULogLevel = iota
	CPULogErrors
	CPULogBranches
	CPULogInstructions
	CPULogTrace
)

// CPULoggerAdapter adapts the shared async Logger to the cpu.Logger
// interface (LogInstruction) so the CPU core never needs to import
// debugsvc directly — it only needs the small interface cpu.go declares.
type CPULoggerAdapter struct {
	logger  *Logger
	level   CPULogLevel
	enabled bool
}

// NewCPULoggerAdapter returns an adapter at the given level. Pass a nil
// logger to build a no-op adapter cheaply (used when TimingLog/tracing
// is off but a non-nil cpu.Logger is still wanted for uniformity).
func NewCPULoggerAdapter(logger *Logger, level CPULogLevel) *CPULoggerAdapter {
	return &CPULoggerAdapter{logger: logger, level: level, enabled: true}
}

func (a *CPULoggerAdapter) SetLevel(level CPULogLevel) { a.level = level }
func (a *CPULoggerAdapter) SetEnabled(enabled bool)    { a.enabled = enabled }

// LogInstruction implements cpu.Logger.
func (a *CPULoggerAdapter) LogInstruction(pc uint16, opcode uint8, mnemonic string, mode cpu.AddrMode, cycles uint8, regs cpu.Registers) {
	if !a.enabled || a.logger == nil || a.level == CPULogNone {
		return
	}
	var level LogLevel
	switch a.level {
	case CPULogErrors:
		return // errors are not logged per-instruction; the scheduler returns them to its caller
	case CPULogBranches:
		if !isBranchMnemonic(mnemonic) {
			return
		}
		level = LogLevelInfo
	case CPULogInstructions:
		level = LogLevelDebug
	case CPULogTrace:
		level = LogLevelTrace
	default:
		return
	}
	a.logger.Log(ComponentCPU, level, mnemonic, map[string]interface{}{
		"pc":      pc,
		"opcode":  opcode,
		"cycles":  cycles,
		"mode":    mode,
		"regs":    regs,
	})
}

func isBranchMnemonic(m string) bool {
	switch m {
	case "JMP", "JSR", "RTS", "RTI", "BRK",
		"BCC", "BCS", "BEQ", "BNE", "BMI", "BPL", "BVC", "BVS", "BRA":
		return true
	}
	return false
}
