package lsdf

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/aabizri/lsysdraw"
	"github.com/aabizri/lsysdraw/interchange"
)

// Defaults mirror the original tool's command line surface.
const (
	defaultGenerations = 10
	defaultAngle       = 90.0
	defaultStep        = 5.0
	defaultPenWidth    = 1.0
	defaultSize        = 1024
)

var defaultPenColor = lsysdraw.RGB{R: 0xFF, G: 0xFF, B: 0xFF}

var opNames = map[string]lsysdraw.Op{
	"none":      lsysdraw.OpNone,
	"draw":      lsysdraw.OpDraw,
	"move":      lsysdraw.OpMove,
	"ccw":       lsysdraw.OpTurnCCW,
	"cw":        lsysdraw.OpTurnCW,
	"push":      lsysdraw.OpPush,
	"pop":       lsysdraw.OpPop,
	"penup":     lsysdraw.OpPenUp,
	"pendown":   lsysdraw.OpPenDown,
	"nextcolor": lsysdraw.OpNextColor,
}

// Import validates the raw format and builds the scene it describes.
func (format *Format) Import() (*interchange.Scene, error) {
	width, height := format.Canvas.Width, format.Canvas.Height
	if width == 0 {
		width = defaultSize
	}
	if height == 0 {
		height = defaultSize
	}
	if width < 0 || height < 0 {
		return nil, errors.Errorf("Canvas size %dx%d is invalid", width, height)
	}

	rules, err := lsysdraw.ParseGrammar(format.Rules)
	if err != nil {
		return nil, errors.Wrap(err, "Error while parsing rules")
	}

	alphabet, err := importAlphabet(format.Alphabet)
	if err != nil {
		return nil, err
	}

	variables := expressionVariables(width, height)
	angle, err := evalField("angle", format.Angle, defaultAngle, variables)
	if err != nil {
		return nil, err
	}
	step, err := evalField("step", format.Step, defaultStep, variables)
	if err != nil {
		return nil, err
	}
	penWidth, err := evalField("pen.width", format.Pen.Width, defaultPenWidth, variables)
	if err != nil {
		return nil, err
	}
	startX, err := evalField("start.x", format.Start.X, float64(width)/2, variables)
	if err != nil {
		return nil, err
	}
	startY, err := evalField("start.y", format.Start.Y, float64(height)/2, variables)
	if err != nil {
		return nil, err
	}
	heading, err := evalField("start.heading", format.Start.Heading, 0, variables)
	if err != nil {
		return nil, err
	}

	palette, err := importPalette(format.Pen.Colors)
	if err != nil {
		return nil, err
	}

	background := lsysdraw.RGB{}
	if format.Canvas.Background != "" {
		background, err = parseHexColor(format.Canvas.Background)
		if err != nil {
			return nil, errors.Wrap(err, "Error while parsing canvas background")
		}
	}

	mode, err := importColorMode(format.Pen.Mode)
	if err != nil {
		return nil, err
	}

	generations := uint(defaultGenerations)
	if format.Generations != nil {
		generations = *format.Generations
	}

	return &interchange.Scene{
		Parameters: lsysdraw.Parameters{
			Axiom: lsysdraw.ParseWord(format.Axiom),
			Rules: rules,
		},
		Turtle: lsysdraw.TurtleParams{
			Start: lsysdraw.Turtle{
				X:       startX,
				Y:       startY,
				Heading: heading,
				PenDown: !format.Pen.Up,
			},
			Angle:    angle,
			Step:     step,
			Width:    penWidth,
			Palette:  palette,
			Alphabet: alphabet,
			Mode:     mode,
		},
		Generations: generations,
		Width:       width,
		Height:      height,
		Background:  background,
	}, nil
}

// importAlphabet overlays the scene's per-symbol overrides onto the stock
// table.
func importAlphabet(overrides map[string]string) (lsysdraw.Alphabet, error) {
	alphabet := lsysdraw.DefaultAlphabet()
	for symbol, opName := range overrides {
		runes := []rune(symbol)
		if len(runes) != 1 {
			return nil, errors.Errorf("Alphabet symbol %q must be a single character", symbol)
		}
		op, ok := opNames[opName]
		if !ok {
			return nil, errors.Errorf("Unknown operation %q for symbol %q", opName, symbol)
		}
		alphabet[lsysdraw.Letter(runes[0])] = op
	}
	return alphabet, nil
}

func importPalette(hexColors []string) (lsysdraw.Palette, error) {
	if len(hexColors) == 0 {
		return lsysdraw.Palette{defaultPenColor}, nil
	}

	palette := make(lsysdraw.Palette, len(hexColors))
	for i, hex := range hexColors {
		color, err := parseHexColor(hex)
		if err != nil {
			return nil, errors.Wrapf(err, "Error while parsing pen color %d", i)
		}
		palette[i] = color
	}
	return palette, nil
}

func importColorMode(mode string) (lsysdraw.ColorMode, error) {
	switch mode {
	case "", "indexed":
		return lsysdraw.ColorIndexed, nil
	case "gradient":
		return lsysdraw.ColorGradient, nil
	default:
		return 0, errors.Errorf("Unknown pen mode %q", mode)
	}
}

// parseHexColor decodes an "RRGGBB" string.
func parseHexColor(hex string) (lsysdraw.RGB, error) {
	if len(hex) != 6 {
		return lsysdraw.RGB{}, errors.Errorf("Color string %q must be length 6", hex)
	}
	value, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return lsysdraw.RGB{}, errors.Wrapf(err, "Color string %q is not hexadecimal", hex)
	}
	return lsysdraw.RGB{
		R: uint8(value >> 16),
		G: uint8(value >> 8),
		B: uint8(value),
	}, nil
}
