package gcode

import (
	"strconv"
	"strings"

	"github.com/printforge/toolpath/coord"
)

type mode int

const (
	modeAbsolute mode = iota
	modeRelative
)

const layerMarker = ";LAYER:"

// Interpreter converts a motion-command stream into absolute, layer-indexed
// tool positions. It owns all of its state; create one per input stream and
// do not share an instance across goroutines.
type Interpreter struct {
	pos         coord.Point
	positioning mode
	extrusion   mode
	layer       int

	res *Result
	err error
}

// NewInterpreter constructs an Interpreter with default state: position at
// origin, absolute positioning and extrusion, layer 0.
func NewInterpreter() *Interpreter {
	return &Interpreter{res: newResult()}
}

// Parse interprets a full command stream with a fresh Interpreter.
func Parse(text string) (*Result, error) {
	it := NewInterpreter()
	if err := it.Interpret(text); err != nil {
		return nil, err
	}
	return it.Result(), nil
}

// Interpret consumes text line by line, in order and in a single pass,
// updating machine state and recording points. The first command failure
// aborts with a *LineError; input with no content fails with ErrEmptyInput.
func (it *Interpreter) Interpret(text string) error {
	if strings.TrimSpace(text) == "" {
		it.err = ErrEmptyInput
		return it.err
	}

	for i, raw := range strings.Split(text, "\n") {
		kind, s := scanLine(raw)
		switch kind {
		case lineBlank:
		case lineAnnotation:
			it.annotation(s)
		case lineCommand:
			if err := it.command(s); err != nil {
				it.err = &LineError{Line: i + 1, Text: raw, Err: err}
				return it.err
			}
		}
	}
	return nil
}

// Position returns the current absolute machine position. Relative deltas
// are always resolved before being stored, whatever the active modes.
func (it *Interpreter) Position() coord.Point {
	return it.pos
}

// Result returns the accumulated result, or nil if Interpret failed.
func (it *Interpreter) Result() *Result {
	if it.err != nil {
		return nil
	}
	return it.res
}

func (it *Interpreter) annotation(line string) {
	if strings.HasPrefix(line, layerMarker) {
		n, err := strconv.Atoi(strings.TrimSpace(strings.SplitN(line, ":", 2)[1]))
		if err != nil {
			// unparsable layer markers reset to layer 0 rather than failing
			n = 0
		}
		it.layer = n
		if _, ok := it.res.Layers[n]; !ok {
			it.res.Layers[n] = []coord.Point{}
		}
		return
	}

	kv := strings.SplitN(strings.TrimLeft(line, ";"), ":", 2)
	if len(kv) == 2 {
		it.res.Metadata[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
	}
	// a bare comment with no colon is ignored
}

func (it *Interpreter) command(cmd string) error {
	switch {
	case cmd == "G90":
		it.positioning = modeAbsolute
	case cmd == "G91":
		it.positioning = modeRelative
	case cmd == "M82":
		it.extrusion = modeAbsolute
	case cmd == "M83":
		it.extrusion = modeRelative
	case strings.HasPrefix(cmd, "G28"):
		// full home: X/Y/Z to origin, E and F untouched, no point emitted;
		// axis words on the line are deliberately not parsed
		it.pos.X, it.pos.Y, it.pos.Z = 0, 0, 0
	case strings.HasPrefix(cmd, "G0"), strings.HasPrefix(cmd, "G1"):
		return it.move(cmd)
	case strings.HasPrefix(cmd, "G92"):
		return it.setPosition(cmd)
	default:
		// unhandled commands are a no-op
	}
	return nil
}

func (it *Interpreter) move(cmd string) error {
	params, err := parseParams(cmd)
	if err != nil {
		return err
	}

	if f, ok := params['F']; ok {
		// feed rate is always absolute
		it.pos.F = f
	}

	next := it.pos
	apply := func(axis byte, cur *float64, m mode) {
		val, ok := params[axis]
		if !ok {
			return
		}
		if m == modeAbsolute {
			*cur = val
		} else {
			*cur += val
		}
	}
	apply('X', &next.X, it.positioning)
	apply('Y', &next.Y, it.positioning)
	apply('Z', &next.Z, it.positioning)
	apply('E', &next.E, it.extrusion)

	if !next.MotionEqual(it.pos) {
		it.res.Layers[it.layer] = append(it.res.Layers[it.layer], next)
	}

	// committed even without an emitted point, so F-only and non-moving
	// commands still update state
	it.pos = next
	return nil
}

// setPosition redefines the coordinate origin (G92) without emitting a
// point and without regard to positioning or extrusion mode.
func (it *Interpreter) setPosition(cmd string) error {
	params, err := parseParams(cmd)
	if err != nil {
		return err
	}

	for axis, val := range params {
		switch axis {
		case 'X':
			it.pos.X = val
		case 'Y':
			it.pos.Y = val
		case 'Z':
			it.pos.Z = val
		case 'E':
			it.pos.E = val
		case 'F':
			it.pos.F = val
		}
	}
	return nil
}
