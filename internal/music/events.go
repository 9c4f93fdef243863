// Package music implements the MML (Music Macro Language) lexer and
// parser and the 6-voice sequencer engine that consumes the resulting
// event stream, ticked once per logical frame by the bus's frame
// accumulator.
package music

// EventKind identifies one parsed MML event.
type EventKind int

const (
	EventNoteOn EventKind = iota
	EventRest
	EventArpStart
	EventSetTempo
	EventSetInstrument
	EventSetOctave
	EventOctaveUp
	EventOctaveDown
	EventSetDefaultLen
	EventSetVibrato
	EventSetPulseWidth
	// EventPwmSweep is produced by the `W` MML letter: `W+`/`W-` start a
	// pulse-width ramp up/down, `W0` (or a bare `W`) stops it.
	EventPwmSweep
	EventPortamento
	EventSetFilterCutoff
	EventFilterMode
	// EventFilterSweep is produced by the `S` MML letter, same +/-/0
	// direction grammar as `W`.
	EventFilterSweep
	EventLoopStart
	EventLoopEnd
)

// Event is one step of the lazily-consumed score. Not every field is
// meaningful for every Kind; see the parser for which fields each kind
// sets.
type Event struct {
	Kind  EventKind
	Ticks int
	Notes []uint8 // MIDI note numbers; single-element for NoteOn

	Count      int // ArpStart note count / LoopStart/End count
	Value      int // generic scalar payload (tempo, instrument id, depth, pw, cutoff...)
	Resonance  int
	Direction  int // PwmSweep/FilterSweep: -1, 0, +1
}

const ticksPerWhole = 384
