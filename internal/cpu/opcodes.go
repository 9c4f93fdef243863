package cpu

// mnemonic identifies the operation an opcode performs, independent of its
// addressing mode.
type mnemonic uint8

const (
	mADC mnemonic = iota
	mAND
	mASL
	mBCC
	mBCS
	mBEQ
	mBIT
	mBMI
	mBNE
	mBPL
	mBRA // 65C02
	mBRK
	mBVC
	mBVS
	mCLC
	mCLD
	mCLI
	mCLV
	mCMP
	mCPX
	mCPY
	mDEC
	mDEX
	mDEY
	mEOR
	mINC
	mINX
	mINY
	mJMP
	mJSR
	mLDA
	mLDX
	mLDY
	mLSR
	mNOP
	mORA
	mPHA
	mPHP
	mPHX // 65C02
	mPHY // 65C02
	mPLA
	mPLP
	mPLX // 65C02
	mPLY // 65C02
	mROL
	mROR
	mRTI
	mRTS
	mSBC
	mSEC
	mSED
	mSEI
	mSTA
	mSTX
	mSTY
	mSTZ // 65C02
	mTAX
	mTAY
	mTRB // 65C02
	mTSB // 65C02
	mTSX
	mTXA
	mTXS
	mTYA
	// undocumented NMOS opcodes, kept for ROMs that rely on them
	mLAX
	mSAX
	mDCP
	mISC
)

// mnemonicNames mirrors the teacher's modenames lookup table, used only
// for logging/tracing.
var mnemonicNames = map[mnemonic]string{
	mADC: "ADC", mAND: "AND", mASL: "ASL", mBCC: "BCC", mBCS: "BCS", mBEQ: "BEQ",
	mBIT: "BIT", mBMI: "BMI", mBNE: "BNE", mBPL: "BPL", mBRA: "BRA", mBRK: "BRK",
	mBVC: "BVC", mBVS: "BVS", mCLC: "CLC", mCLD: "CLD", mCLI: "CLI", mCLV: "CLV",
	mCMP: "CMP", mCPX: "CPX", mCPY: "CPY", mDEC: "DEC", mDEX: "DEX", mDEY: "DEY",
	mEOR: "EOR", mINC: "INC", mINX: "INX", mINY: "INY", mJMP: "JMP", mJSR: "JSR",
	mLDA: "LDA", mLDX: "LDX", mLDY: "LDY", mLSR: "LSR", mNOP: "NOP", mORA: "ORA",
	mPHA: "PHA", mPHP: "PHP", mPHX: "PHX", mPHY: "PHY", mPLA: "PLA", mPLP: "PLP",
	mPLX: "PLX", mPLY: "PLY", mROL: "ROL", mROR: "ROR", mRTI: "RTI", mRTS: "RTS",
	mSBC: "SBC", mSEC: "SEC", mSED: "SED", mSEI: "SEI", mSTA: "STA", mSTX: "STX",
	mSTY: "STY", mSTZ: "STZ", mTAX: "TAX", mTAY: "TAY", mTRB: "TRB", mTSB: "TSB",
	mTSX: "TSX", mTXA: "TXA", mTXS: "TXS", mTYA: "TYA",
	mLAX: "LAX", mSAX: "SAX", mDCP: "DCP", mISC: "ISC",
}

type opcodeInfo struct {
	op             mnemonic
	mnemonic       string
	mode           AddrMode
	bytes          uint8
	cycles         uint8
	pageCrossExtra bool
}

func info(op mnemonic, mode AddrMode, bytes, cycles uint8, pageCrossExtra bool) opcodeInfo {
	return opcodeInfo{op: op, mnemonic: mnemonicNames[op], mode: mode, bytes: bytes, cycles: cycles, pageCrossExtra: pageCrossExtra}
}

// opcodeTable is the full NMOS 6502 official instruction set plus the
// 65C02 additions (BRA/PHX/PHY/PLX/PLY/STZ/TRB/TSB, (zp) addressing,
// and the indirect-JMP page-wrap fix handled in addressing.go) plus a
// handful of the most commonly depended-upon undocumented opcodes
// (LAX/SAX/DCP/ISC). Any opcode not present here decodes as the
// one-byte, two-cycle NOP ($EA), matching "the CPU never throws" (spec.md §4.11).
var opcodeTable = map[uint8]opcodeInfo{
	0x69: info(mADC, Immediate, 2, 2, false), 0x65: info(mADC, ZeroPage, 2, 3, false),
	0x75: info(mADC, ZeroPageX, 2, 4, false), 0x6D: info(mADC, Absolute, 3, 4, false),
	0x7D: info(mADC, AbsoluteX, 3, 4, true), 0x79: info(mADC, AbsoluteY, 3, 4, true),
	0x61: info(mADC, IndirectX, 2, 6, false), 0x71: info(mADC, IndirectY, 2, 5, true),
	0x72: info(mADC, IndirectZP, 2, 5, false),

	0x29: info(mAND, Immediate, 2, 2, false), 0x25: info(mAND, ZeroPage, 2, 3, false),
	0x35: info(mAND, ZeroPageX, 2, 4, false), 0x2D: info(mAND, Absolute, 3, 4, false),
	0x3D: info(mAND, AbsoluteX, 3, 4, true), 0x39: info(mAND, AbsoluteY, 3, 4, true),
	0x21: info(mAND, IndirectX, 2, 6, false), 0x31: info(mAND, IndirectY, 2, 5, true),
	0x32: info(mAND, IndirectZP, 2, 5, false),

	0x0A: info(mASL, Accumulator, 1, 2, false), 0x06: info(mASL, ZeroPage, 2, 5, false),
	0x16: info(mASL, ZeroPageX, 2, 6, false), 0x0E: info(mASL, Absolute, 3, 6, false),
	0x1E: info(mASL, AbsoluteX, 3, 7, false),

	0x90: info(mBCC, Relative, 2, 2, false), 0xB0: info(mBCS, Relative, 2, 2, false),
	0xF0: info(mBEQ, Relative, 2, 2, false), 0x30: info(mBMI, Relative, 2, 2, false),
	0xD0: info(mBNE, Relative, 2, 2, false), 0x10: info(mBPL, Relative, 2, 2, false),
	0x50: info(mBVC, Relative, 2, 2, false), 0x70: info(mBVS, Relative, 2, 2, false),
	0x80: info(mBRA, Relative, 2, 3, false),

	0x24: info(mBIT, ZeroPage, 2, 3, false), 0x2C: info(mBIT, Absolute, 3, 4, false),
	0x34: info(mBIT, ZeroPageX, 2, 4, false), 0x3C: info(mBIT, AbsoluteX, 3, 4, false),
	0x89: info(mBIT, Immediate, 2, 2, false),

	0x00: info(mBRK, Implicit, 1, 7, false),

	0x18: info(mCLC, Implicit, 1, 2, false), 0xD8: info(mCLD, Implicit, 1, 2, false),
	0x58: info(mCLI, Implicit, 1, 2, false), 0xB8: info(mCLV, Implicit, 1, 2, false),

	0xC9: info(mCMP, Immediate, 2, 2, false), 0xC5: info(mCMP, ZeroPage, 2, 3, false),
	0xD5: info(mCMP, ZeroPageX, 2, 4, false), 0xCD: info(mCMP, Absolute, 3, 4, false),
	0xDD: info(mCMP, AbsoluteX, 3, 4, true), 0xD9: info(mCMP, AbsoluteY, 3, 4, true),
	0xC1: info(mCMP, IndirectX, 2, 6, false), 0xD1: info(mCMP, IndirectY, 2, 5, true),
	0xD2: info(mCMP, IndirectZP, 2, 5, false),

	0xE0: info(mCPX, Immediate, 2, 2, false), 0xE4: info(mCPX, ZeroPage, 2, 3, false),
	0xEC: info(mCPX, Absolute, 3, 4, false),
	0xC0: info(mCPY, Immediate, 2, 2, false), 0xC4: info(mCPY, ZeroPage, 2, 3, false),
	0xCC: info(mCPY, Absolute, 3, 4, false),

	0xC6: info(mDEC, ZeroPage, 2, 5, false), 0xD6: info(mDEC, ZeroPageX, 2, 6, false),
	0xCE: info(mDEC, Absolute, 3, 6, false), 0xDE: info(mDEC, AbsoluteX, 3, 7, false),
	0x3A: info(mDEC, Accumulator, 1, 2, false),
	0xCA: info(mDEX, Implicit, 1, 2, false), 0x88: info(mDEY, Implicit, 1, 2, false),

	0x49: info(mEOR, Immediate, 2, 2, false), 0x45: info(mEOR, ZeroPage, 2, 3, false),
	0x55: info(mEOR, ZeroPageX, 2, 4, false), 0x4D: info(mEOR, Absolute, 3, 4, false),
	0x5D: info(mEOR, AbsoluteX, 3, 4, true), 0x59: info(mEOR, AbsoluteY, 3, 4, true),
	0x41: info(mEOR, IndirectX, 2, 6, false), 0x51: info(mEOR, IndirectY, 2, 5, true),
	0x52: info(mEOR, IndirectZP, 2, 5, false),

	0xE6: info(mINC, ZeroPage, 2, 5, false), 0xF6: info(mINC, ZeroPageX, 2, 6, false),
	0xEE: info(mINC, Absolute, 3, 6, false), 0xFE: info(mINC, AbsoluteX, 3, 7, false),
	0x1A: info(mINC, Accumulator, 1, 2, false),
	0xE8: info(mINX, Implicit, 1, 2, false), 0xC8: info(mINY, Implicit, 1, 2, false),

	0x4C: info(mJMP, Absolute, 3, 3, false), 0x6C: info(mJMP, Indirect, 3, 5, false),
	0x7C: info(mJMP, AbsoluteX, 3, 6, false),
	0x20: info(mJSR, Absolute, 3, 6, false),

	0xA9: info(mLDA, Immediate, 2, 2, false), 0xA5: info(mLDA, ZeroPage, 2, 3, false),
	0xB5: info(mLDA, ZeroPageX, 2, 4, false), 0xAD: info(mLDA, Absolute, 3, 4, false),
	0xBD: info(mLDA, AbsoluteX, 3, 4, true), 0xB9: info(mLDA, AbsoluteY, 3, 4, true),
	0xA1: info(mLDA, IndirectX, 2, 6, false), 0xB1: info(mLDA, IndirectY, 2, 5, true),
	0xB2: info(mLDA, IndirectZP, 2, 5, false),

	0xA2: info(mLDX, Immediate, 2, 2, false), 0xA6: info(mLDX, ZeroPage, 2, 3, false),
	0xB6: info(mLDX, ZeroPageY, 2, 4, false), 0xAE: info(mLDX, Absolute, 3, 4, false),
	0xBE: info(mLDX, AbsoluteY, 3, 4, true),

	0xA0: info(mLDY, Immediate, 2, 2, false), 0xA4: info(mLDY, ZeroPage, 2, 3, false),
	0xB4: info(mLDY, ZeroPageX, 2, 4, false), 0xAC: info(mLDY, Absolute, 3, 4, false),
	0xBC: info(mLDY, AbsoluteX, 3, 4, true),

	0x4A: info(mLSR, Accumulator, 1, 2, false), 0x46: info(mLSR, ZeroPage, 2, 5, false),
	0x56: info(mLSR, ZeroPageX, 2, 6, false), 0x4E: info(mLSR, Absolute, 3, 6, false),
	0x5E: info(mLSR, AbsoluteX, 3, 7, false),

	0xEA: info(mNOP, Implicit, 1, 2, false),

	0x09: info(mORA, Immediate, 2, 2, false), 0x05: info(mORA, ZeroPage, 2, 3, false),
	0x15: info(mORA, ZeroPageX, 2, 4, false), 0x0D: info(mORA, Absolute, 3, 4, false),
	0x1D: info(mORA, AbsoluteX, 3, 4, true), 0x19: info(mORA, AbsoluteY, 3, 4, true),
	0x01: info(mORA, IndirectX, 2, 6, false), 0x11: info(mORA, IndirectY, 2, 5, true),
	0x12: info(mORA, IndirectZP, 2, 5, false),

	0x48: info(mPHA, Implicit, 1, 3, false), 0x08: info(mPHP, Implicit, 1, 3, false),
	0xDA: info(mPHX, Implicit, 1, 3, false), 0x5A: info(mPHY, Implicit, 1, 3, false),
	0x68: info(mPLA, Implicit, 1, 4, false), 0x28: info(mPLP, Implicit, 1, 4, false),
	0xFA: info(mPLX, Implicit, 1, 4, false), 0x7A: info(mPLY, Implicit, 1, 4, false),

	0x2A: info(mROL, Accumulator, 1, 2, false), 0x26: info(mROL, ZeroPage, 2, 5, false),
	0x36: info(mROL, ZeroPageX, 2, 6, false), 0x2E: info(mROL, Absolute, 3, 6, false),
	0x3E: info(mROL, AbsoluteX, 3, 7, false),

	0x6A: info(mROR, Accumulator, 1, 2, false), 0x66: info(mROR, ZeroPage, 2, 5, false),
	0x76: info(mROR, ZeroPageX, 2, 6, false), 0x6E: info(mROR, Absolute, 3, 6, false),
	0x7E: info(mROR, AbsoluteX, 3, 7, false),

	0x40: info(mRTI, Implicit, 1, 6, false), 0x60: info(mRTS, Implicit, 1, 6, false),

	0xE9: info(mSBC, Immediate, 2, 2, false), 0xE5: info(mSBC, ZeroPage, 2, 3, false),
	0xF5: info(mSBC, ZeroPageX, 2, 4, false), 0xED: info(mSBC, Absolute, 3, 4, false),
	0xFD: info(mSBC, AbsoluteX, 3, 4, true), 0xF9: info(mSBC, AbsoluteY, 3, 4, true),
	0xE1: info(mSBC, IndirectX, 2, 6, false), 0xF1: info(mSBC, IndirectY, 2, 5, true),
	0xF2: info(mSBC, IndirectZP, 2, 5, false),

	0x38: info(mSEC, Implicit, 1, 2, false), 0xF8: info(mSED, Implicit, 1, 2, false),
	0x78: info(mSEI, Implicit, 1, 2, false),

	0x85: info(mSTA, ZeroPage, 2, 3, false), 0x95: info(mSTA, ZeroPageX, 2, 4, false),
	0x8D: info(mSTA, Absolute, 3, 4, false), 0x9D: info(mSTA, AbsoluteX, 3, 5, false),
	0x99: info(mSTA, AbsoluteY, 3, 5, false), 0x81: info(mSTA, IndirectX, 2, 6, false),
	0x91: info(mSTA, IndirectY, 2, 6, false), 0x92: info(mSTA, IndirectZP, 2, 5, false),

	0x86: info(mSTX, ZeroPage, 2, 3, false), 0x96: info(mSTX, ZeroPageY, 2, 4, false),
	0x8E: info(mSTX, Absolute, 3, 4, false),
	0x84: info(mSTY, ZeroPage, 2, 3, false), 0x94: info(mSTY, ZeroPageX, 2, 4, false),
	0x8C: info(mSTY, Absolute, 3, 4, false),

	0x64: info(mSTZ, ZeroPage, 2, 3, false), 0x74: info(mSTZ, ZeroPageX, 2, 4, false),
	0x9C: info(mSTZ, Absolute, 3, 4, false), 0x9E: info(mSTZ, AbsoluteX, 3, 5, false),

	0x14: info(mTRB, ZeroPage, 2, 5, false), 0x1C: info(mTRB, Absolute, 3, 6, false),
	0x04: info(mTSB, ZeroPage, 2, 5, false), 0x0C: info(mTSB, Absolute, 3, 6, false),

	0xAA: info(mTAX, Implicit, 1, 2, false), 0xA8: info(mTAY, Implicit, 1, 2, false),
	0xBA: info(mTSX, Implicit, 1, 2, false), 0x8A: info(mTXA, Implicit, 1, 2, false),
	0x9A: info(mTXS, Implicit, 1, 2, false), 0x98: info(mTYA, Implicit, 1, 2, false),

	// Undocumented NMOS opcodes some real-world ROMs rely on.
	0xA7: info(mLAX, ZeroPage, 2, 3, false), 0xB7: info(mLAX, ZeroPageY, 2, 4, false),
	0xAF: info(mLAX, Absolute, 3, 4, false), 0xBF: info(mLAX, AbsoluteY, 3, 4, true),
	0xA3: info(mLAX, IndirectX, 2, 6, false), 0xB3: info(mLAX, IndirectY, 2, 5, true),
	0x87: info(mSAX, ZeroPage, 2, 3, false), 0x97: info(mSAX, ZeroPageY, 2, 4, false),
	0x8F: info(mSAX, Absolute, 3, 4, false), 0x83: info(mSAX, IndirectX, 2, 6, false),
	0xC7: info(mDCP, ZeroPage, 2, 5, false), 0xD7: info(mDCP, ZeroPageX, 2, 6, false),
	0xCF: info(mDCP, Absolute, 3, 6, false), 0xDF: info(mDCP, AbsoluteX, 3, 7, false),
	0xDB: info(mDCP, AbsoluteY, 3, 7, false), 0xC3: info(mDCP, IndirectX, 2, 8, false),
	0xD3: info(mDCP, IndirectY, 2, 8, false),
	0xE7: info(mISC, ZeroPage, 2, 5, false), 0xF7: info(mISC, ZeroPageX, 2, 6, false),
	0xEF: info(mISC, Absolute, 3, 6, false), 0xFF: info(mISC, AbsoluteX, 3, 7, false),
	0xFB: info(mISC, AbsoluteY, 3, 7, false), 0xE3: info(mISC, IndirectX, 2, 8, false),
	0xF3: info(mISC, IndirectY, 2, 8, false),
}
