package lsysdraw

import (
	"errors"
	"math"
)

// Op is the instruction a letter resolves to during interpretation.
type Op uint8

const (
	// OpNone is consumed without effect.
	OpNone Op = iota
	// OpDraw moves forward, emitting a draw command if the pen is down.
	OpDraw
	// OpMove moves forward and never draws, whatever the pen state.
	OpMove
	// OpTurnCCW rotates the heading counter-clockwise by the configured angle.
	OpTurnCCW
	// OpTurnCW rotates the heading clockwise by the configured angle.
	OpTurnCW
	// OpPush saves a copy of the turtle state onto the stack.
	OpPush
	// OpPop replaces the turtle state with the most recently saved one.
	OpPop
	// OpPenUp lifts the pen without moving.
	OpPenUp
	// OpPenDown lowers the pen without moving.
	OpPenDown
	// OpNextColor advances the active color index, wrapping past the palette.
	OpNextColor
)

// Alphabet resolves letters to instructions. Letters without an entry are
// consumed as no-ops: grammars legitimately carry letters that exist only to
// drive rewriting.
type Alphabet map[Letter]Op

// DefaultAlphabet returns the stock symbol table: F/G/H draw forward, the
// lowercase variants move without drawing, + and - turn, [ and ] save and
// restore, U and D control the pen, C advances the palette, X/Y/Z are
// explicit no-actions for rule bookkeeping.
func DefaultAlphabet() Alphabet {
	return Alphabet{
		'F': OpDraw,
		'G': OpDraw,
		'H': OpDraw,
		'f': OpMove,
		'g': OpMove,
		'h': OpMove,
		'+': OpTurnCCW,
		'-': OpTurnCW,
		'[': OpPush,
		']': OpPop,
		'U': OpPenUp,
		'D': OpPenDown,
		'C': OpNextColor,
		'X': OpNone,
		'Y': OpNone,
		'Z': OpNone,
	}
}

// Point is a position in canvas coordinates. The y axis grows downward.
type Point struct {
	X, Y float64
}

// Turtle is the cursor state threaded through an interpretation run.
type Turtle struct {
	X, Y       float64
	Heading    float64 // degrees, 0 pointing +x, counter-clockwise positive
	PenDown    bool
	ColorIndex int
}

func (t Turtle) position() Point {
	return Point{X: t.X, Y: t.Y}
}

// forward advances the turtle along its heading. The y axis points down,
// so a counter-clockwise heading subtracts from y.
func (t *Turtle) forward(step float64) {
	rad := t.Heading * math.Pi / 180
	t.X += step * math.Cos(rad)
	t.Y -= step * math.Sin(rad)
}

// turn rotates the heading, normalizing it into [0, 360).
func (t *Turtle) turn(degrees float64) {
	t.Heading = math.Mod(t.Heading+degrees, 360)
	if t.Heading < 0 {
		t.Heading += 360
	}
}

// TurtleParams configure one interpretation run.
type TurtleParams struct {
	Start    Turtle
	Angle    float64 // degrees per turn instruction
	Step     float64 // distance per forward instruction
	Width    float64 // pen width passed through to the canvas
	Palette  Palette
	Alphabet Alphabet // nil means DefaultAlphabet
	Mode     ColorMode
}

func (params TurtleParams) alphabet() Alphabet {
	if params.Alphabet == nil {
		return DefaultAlphabet()
	}
	return params.Alphabet
}

// Canvas receives draw commands as interpretation produces them. An error
// aborts the run.
type Canvas interface {
	DrawLine(from, to Point, color RGB, width float64) error
}

var (
	// ErrStackUnderflow reports a restore with no saved turtle state,
	// the mark of an unbalanced grammar.
	ErrStackUnderflow = errors.New("lsysdraw: restore with no saved turtle state")

	// ErrEmptyPalette reports an interpretation run with no pen color.
	ErrEmptyPalette = errors.New("lsysdraw: palette must have at least one color")
)

// CountDraws pre-scans a word for the number of draw commands interpreting
// it would emit. Pen state is tracked through pushes and pops; an
// unbalanced restore is tolerated here and left to Interpret to report.
func CountDraws(w Word, params TurtleParams) int {
	alphabet := params.alphabet()

	pen := params.Start.PenDown
	var saved []bool
	var draws int
	for _, l := range w {
		switch alphabet[l] {
		case OpDraw:
			if pen {
				draws++
			}
		case OpPenUp:
			pen = false
		case OpPenDown:
			pen = true
		case OpPush:
			saved = append(saved, pen)
		case OpPop:
			if n := len(saved); n > 0 {
				pen = saved[n-1]
				saved = saved[:n-1]
			}
		}
	}
	return draws
}

// Interpret walks the word symbol by symbol left to right, streaming one
// draw command per pen-down forward move to the canvas, and returns the
// terminal turtle state. Draw commands already emitted are not retracted
// when an error aborts the scan.
func Interpret(w Word, params TurtleParams, canvas Canvas) (Turtle, error) {
	if len(params.Palette) == 0 {
		return params.Start, ErrEmptyPalette
	}
	alphabet := params.alphabet()

	var totalDraws int
	if params.Mode == ColorGradient {
		if totalDraws = CountDraws(w, params); totalDraws == 0 {
			totalDraws = 1
		}
	}

	turtle := params.Start
	var stack []Turtle
	var draws int
	for _, l := range w {
		switch alphabet[l] {
		case OpDraw:
			from := turtle.position()
			turtle.forward(params.Step)
			if !turtle.PenDown {
				continue
			}

			color := params.Palette.At(turtle.ColorIndex)
			if params.Mode == ColorGradient {
				color = params.Palette.Gradient(float64(draws) / float64(totalDraws))
			}
			if err := canvas.DrawLine(from, turtle.position(), color, params.Width); err != nil {
				return turtle, err
			}
			draws++

		case OpMove:
			turtle.forward(params.Step)

		case OpTurnCCW:
			turtle.turn(params.Angle)

		case OpTurnCW:
			turtle.turn(-params.Angle)

		case OpPush:
			stack = append(stack, turtle)

		case OpPop:
			if len(stack) == 0 {
				return turtle, ErrStackUnderflow
			}
			turtle = stack[len(stack)-1]
			stack = stack[:len(stack)-1]

		case OpPenUp:
			turtle.PenDown = false

		case OpPenDown:
			turtle.PenDown = true

		case OpNextColor:
			turtle.ColorIndex = (turtle.ColorIndex + 1) % len(params.Palette)
		}
	}
	return turtle, nil
}
