// Package dma implements the linear DMA copy/fill engine mapped at
// $BA60-$BA7F. It consumes a per-cycle byte budget handed to it through
// AdvanceCycles and makes progress one byte at a time, exactly mirroring
// the teacher's cooperative-scheduling style for budgeted peripherals.
package dma

import "novavm/internal/memspace"

const (
	base = 0xBA60
	size = 0x20

	regCmd      = base + 0x00
	regStatus   = base + 0x01
	regErrCode  = base + 0x02
	regSrcSpace = base + 0x03
	regDstSpace = base + 0x04
	regSrcLo    = base + 0x05
	regSrcMid   = base + 0x06
	regSrcHi    = base + 0x07
	regDstLo    = base + 0x08
	regDstMid   = base + 0x09
	regDstHi    = base + 0x0A
	regLenLo    = base + 0x0B
	regLenMid   = base + 0x0C
	regLenHi    = base + 0x0D
	regMode     = base + 0x0E // bit0 fill mode
	regFillVal  = base + 0x0F
	regCountLo  = base + 0x10
	regCountMid = base + 0x11
	regCountHi  = base + 0x12
)

// Status values shared across every command controller.
const (
	StatusIdle  = 0
	StatusBusy  = 1
	StatusOk    = 2
	StatusError = 3
)

// Error codes.
const (
	ErrNone    = 0
	ErrBadCmd  = 1
	ErrBadSpace = 2
	ErrRange   = 3
	ErrWriteProtected = 4
)

const bytesPerCycle = 1

// DMA is the bus-mapped linear copy/fill engine.
type DMA struct {
	spaces memspace.Registry

	status  uint8
	errCode uint8

	srcSpace, dstSpace memspace.ID
	src, dst           uint32
	length             uint32
	fillMode           bool
	fillValue          uint8

	cursor uint32
	count  uint32
	credit uint64

	onComplete func(dst memspace.ID)
}

// New returns a DMA engine reading/writing through spaces. onComplete,
// if non-nil, is called after a successful transfer (e.g. to let XMC
// refresh page-usage stats when the destination was XRAM).
func New(spaces memspace.Registry, onComplete func(dst memspace.ID)) *DMA {
	return &DMA{spaces: spaces, onComplete: onComplete}
}

func (d *DMA) Owns(addr uint16) bool { return addr >= base && addr < base+size }

func (d *DMA) Read(addr uint16) uint8 {
	switch addr {
	case regStatus:
		return d.status
	case regErrCode:
		return d.errCode
	case regCountLo:
		return uint8(d.count)
	case regCountMid:
		return uint8(d.count >> 8)
	case regCountHi:
		return uint8(d.count >> 16)
	}
	return 0
}

func (d *DMA) Write(addr uint16, v uint8) {
	switch addr {
	case regCmd:
		d.start()
	case regSrcSpace:
		d.srcSpace = memspace.ID(v)
	case regDstSpace:
		d.dstSpace = memspace.ID(v)
	case regSrcLo:
		d.src = d.src&0xFFFF00 | uint32(v)
	case regSrcMid:
		d.src = d.src&0xFF00FF | uint32(v)<<8
	case regSrcHi:
		d.src = d.src&0x00FFFF | uint32(v)<<16
	case regDstLo:
		d.dst = d.dst&0xFFFF00 | uint32(v)
	case regDstMid:
		d.dst = d.dst&0xFF00FF | uint32(v)<<8
	case regDstHi:
		d.dst = d.dst&0x00FFFF | uint32(v)<<16
	case regLenLo:
		d.length = d.length&0xFFFF00 | uint32(v)
	case regLenMid:
		d.length = d.length&0xFF00FF | uint32(v)<<8
	case regLenHi:
		d.length = d.length&0x00FFFF | uint32(v)<<16
	case regMode:
		d.fillMode = v&1 != 0
	case regFillVal:
		d.fillValue = v
	}
}

func (d *DMA) fail(code uint8) {
	d.status = StatusError
	d.errCode = code
}

// start validates and begins a transfer. Starting
// while busy is itself a BadCmd failure and does not disturb the
// in-flight transfer's state.
func (d *DMA) start() {
	if d.status == StatusBusy {
		d.fail(ErrBadCmd)
		return
	}
	if d.length == 0 {
		d.fail(ErrBadSpace)
		return
	}
	srcSpace := d.spaces.Space(d.srcSpace)
	dstSpace := d.spaces.Space(d.dstSpace)
	if srcSpace == nil || dstSpace == nil {
		d.fail(ErrBadSpace)
		return
	}
	if !d.fillMode {
		if uint64(d.src)+uint64(d.length) > uint64(srcSpace.Length()) {
			d.fail(ErrRange)
			return
		}
	}
	if uint64(d.dst)+uint64(d.length) > uint64(dstSpace.Length()) {
		d.fail(ErrRange)
		return
	}
	if !dstSpace.CanWriteRange(int(d.dst), int(d.length)) {
		d.fail(ErrWriteProtected)
		return
	}
	d.status = StatusBusy
	d.errCode = ErrNone
	d.cursor = 0
	d.count = 0
	d.credit = 0
}

// AdvanceCycles grants bytesPerCycle*n of byte-transfer credit and
// processes one byte per unit of credit until either the transfer
// completes or the credit is exhausted.
func (d *DMA) AdvanceCycles(n uint64) {
	if d.status != StatusBusy {
		return
	}
	d.credit += n * bytesPerCycle
	src := d.spaces.Space(d.srcSpace)
	dst := d.spaces.Space(d.dstSpace)
	for d.credit > 0 && d.cursor < d.length {
		var v uint8
		if d.fillMode {
			v = d.fillValue
		} else {
			var ok bool
			v, ok = src.TryRead(int(d.src + d.cursor))
			if !ok {
				d.fail(ErrRange)
				return
			}
		}
		if !dst.TryWrite(int(d.dst+d.cursor), v) {
			d.fail(ErrWriteProtected)
			return
		}
		d.cursor++
		d.count++
		d.credit--
	}
	if d.cursor >= d.length {
		d.status = StatusOk
		d.errCode = ErrNone
		if d.onComplete != nil {
			d.onComplete(d.dstSpace)
		}
	}
}
