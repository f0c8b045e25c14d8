package lsdf

import (
	"io"
	"math"
	"os"
	"strings"
	"testing"

	"github.com/aabizri/lsysdraw"
)

func decodeOne(t *testing.T, src string) *Format {
	t.Helper()
	format, err := NewDecoder(strings.NewReader(src)).Decode()
	if err != nil {
		t.Fatalf("Couldn't decode document: %v", err)
	}
	return format
}

func TestImportBarnsley(t *testing.T) {
	f, err := os.Open("testdata/barnsley.lsdf.yml")
	if err != nil {
		t.Fatalf("Couldn't open test data file: %v", err)
	}
	defer f.Close()

	format, err := NewDecoder(f).Decode()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	scene, err := format.Import()
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	if got := scene.Parameters.Axiom.String(); got != "++X" {
		t.Errorf("axiom = %q, want ++X", got)
	}
	if got := scene.Parameters.Rules['F'].String(); got != "FF" {
		t.Errorf("rule for F = %q, want FF", got)
	}
	if scene.Generations != 6 {
		t.Errorf("generations = %d, want 6", scene.Generations)
	}
	if scene.Width != 640 || scene.Height != 480 {
		t.Errorf("canvas = %dx%d, want 640x480", scene.Width, scene.Height)
	}
	if scene.Turtle.Angle != 25 {
		t.Errorf("angle = %v, want 25", scene.Turtle.Angle)
	}

	// start.x and start.y hold expressions over the canvas size.
	if scene.Turtle.Start.X != 320 || scene.Turtle.Start.Y != 480 {
		t.Errorf("start = (%v, %v), want (320, 480)", scene.Turtle.Start.X, scene.Turtle.Start.Y)
	}
	if scene.Turtle.Start.Heading != 90 {
		t.Errorf("heading = %v, want 90", scene.Turtle.Start.Heading)
	}
	if !scene.Turtle.Start.PenDown {
		t.Error("pen starts lifted, want down")
	}

	wantPalette := lsysdraw.Palette{
		{R: 0x2E, G: 0x8B, B: 0x57},
		{R: 0xAD, G: 0xFF, B: 0x2F},
	}
	if len(scene.Turtle.Palette) != len(wantPalette) {
		t.Fatalf("palette has %d entries, want %d", len(scene.Turtle.Palette), len(wantPalette))
	}
	for i := range wantPalette {
		if scene.Turtle.Palette[i] != wantPalette[i] {
			t.Errorf("palette[%d] = %+v, want %+v", i, scene.Turtle.Palette[i], wantPalette[i])
		}
	}
	if scene.Turtle.Mode != lsysdraw.ColorGradient {
		t.Errorf("mode = %v, want gradient", scene.Turtle.Mode)
	}
}

func TestImportDefaults(t *testing.T) {
	scene, err := decodeOne(t, `axiom: "F"`).Import()
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	if scene.Width != 1024 || scene.Height != 1024 {
		t.Errorf("canvas = %dx%d, want 1024x1024", scene.Width, scene.Height)
	}
	if scene.Generations != 10 {
		t.Errorf("generations = %d, want 10", scene.Generations)
	}
	if scene.Turtle.Angle != 90 || scene.Turtle.Step != 5 || scene.Turtle.Width != 1 {
		t.Errorf("pen defaults = (angle %v, step %v, width %v), want (90, 5, 1)",
			scene.Turtle.Angle, scene.Turtle.Step, scene.Turtle.Width)
	}
	if scene.Turtle.Start.X != 512 || scene.Turtle.Start.Y != 512 {
		t.Errorf("start = (%v, %v), want the canvas center", scene.Turtle.Start.X, scene.Turtle.Start.Y)
	}
	if len(scene.Turtle.Palette) != 1 || scene.Turtle.Palette[0] != (lsysdraw.RGB{R: 0xFF, G: 0xFF, B: 0xFF}) {
		t.Errorf("palette = %+v, want a single white entry", scene.Turtle.Palette)
	}
	if scene.Background != (lsysdraw.RGB{}) {
		t.Errorf("background = %+v, want black", scene.Background)
	}
	if scene.Turtle.Mode != lsysdraw.ColorIndexed {
		t.Errorf("mode = %v, want indexed", scene.Turtle.Mode)
	}
}

func TestImportExplicitGenerationZero(t *testing.T) {
	scene, err := decodeOne(t, "axiom: \"F\"\ngenerations: 0").Import()
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if scene.Generations != 0 {
		t.Errorf("generations = %d, want 0 (explicit, not the default)", scene.Generations)
	}
}

func TestImportAlphabetOverride(t *testing.T) {
	scene, err := decodeOne(t, "axiom: \"R\"\nalphabet: {\"R\": \"draw\", \"F\": \"none\"}").Import()
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if scene.Turtle.Alphabet['R'] != lsysdraw.OpDraw {
		t.Error("override for R not applied")
	}
	if scene.Turtle.Alphabet['F'] != lsysdraw.OpNone {
		t.Error("override for F not applied")
	}
	if scene.Turtle.Alphabet['+'] != lsysdraw.OpTurnCCW {
		t.Error("stock table entry for + lost")
	}
}

func TestImportErrors(t *testing.T) {
	for name, src := range map[string]string{
		"bad color":      "axiom: \"F\"\npen: {colors: [\"GGGGGG\"]}",
		"short color":    "axiom: \"F\"\npen: {colors: [\"FFF\"]}",
		"bad op":         "axiom: \"F\"\nalphabet: {\"F\": \"paint\"}",
		"long symbol":    "axiom: \"F\"\nalphabet: {\"FF\": \"draw\"}",
		"bad mode":       "axiom: \"F\"\npen: {mode: \"rainbow\"}",
		"long rule key":  "axiom: \"F\"\nrules: {\"FF\": \"F\"}",
		"bad expression": "axiom: \"F\"\nangle: \"width +\"",
		"negative size":  "axiom: \"F\"\ncanvas: {width: -3}",
	} {
		if _, err := decodeOne(t, src).Import(); err == nil {
			t.Errorf("%s: Import succeeded, want an error", name)
		}
	}
}

func TestDecodeStream(t *testing.T) {
	f, err := os.Open("testdata/stream.lsdf.yml")
	if err != nil {
		t.Fatalf("Couldn't open test data file: %v", err)
	}
	defer f.Close()

	dec := NewDecoder(f)
	var count int
	for {
		format, err := dec.Decode()
		if err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if _, err := format.Import(); err != nil {
			t.Fatalf("Import of document %d: %v", count, err)
		}
		count++
	}
	if count != 2 {
		t.Errorf("decoded %d documents, want 2", count)
	}
}

func TestEvalExpression(t *testing.T) {
	variables := expressionVariables(640, 480)

	for expr, want := range map[string]float64{
		"42":         42,
		"-1.5":       -1.5,
		"width/2":    320,
		"height - 8": 472,
		"360/7":      360.0 / 7,
		"2*pi":       2 * math.Pi,
	} {
		got, err := evalExpression(expr, variables)
		if err != nil {
			t.Errorf("evalExpression(%q): %v", expr, err)
			continue
		}
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("evalExpression(%q) = %v, want %v", expr, got, want)
		}
	}
}
