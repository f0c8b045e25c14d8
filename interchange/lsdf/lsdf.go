// Package lsdf is the reference implementation for the L-System Drawing
// Format, a streamable YAML scene description.
package lsdf

import (
	"io"

	yaml "gopkg.in/yaml.v2"
)

// Format is the raw shape of one LSDF document. Numeric fields are strings
// because they may hold arithmetic expressions, evaluated at import under
// the variables width, height and pi.
type Format struct {
	Axiom       string            `yaml:"axiom"`
	Rules       map[string]string `yaml:"rules"`
	Generations *uint             `yaml:"generations"`
	Angle       string            `yaml:"angle"`
	Step        string            `yaml:"step"`
	Start       Start             `yaml:"start"`
	Alphabet    map[string]string `yaml:"alphabet"`
	Canvas      Canvas            `yaml:"canvas"`
	Pen         Pen               `yaml:"pen"`
}

// Start is the initial cursor placement.
type Start struct {
	X       string `yaml:"x"`
	Y       string `yaml:"y"`
	Heading string `yaml:"heading"`
}

// Canvas describes the target surface. Colors are "RRGGBB" hex strings.
type Canvas struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Background string `yaml:"background"`
}

// Pen describes the drawing pen.
type Pen struct {
	Width  string   `yaml:"width"`
	Colors []string `yaml:"colors"`
	Mode   string   `yaml:"mode"` // "indexed" (default) or "gradient"
	Up     bool     `yaml:"up"`   // start with the pen lifted
}

// Decoder reads LSDF documents off a stream.
type Decoder struct {
	yamlDecoder *yaml.Decoder
}

// NewDecoder returns a decoder for a multi-document LSDF stream.
func NewDecoder(in io.Reader) *Decoder {
	return &Decoder{
		yamlDecoder: yaml.NewDecoder(in),
	}
}

// Decode reads the next document, returning io.EOF past the last one.
func (dec *Decoder) Decode() (*Format, error) {
	format := &Format{}
	err := dec.yamlDecoder.Decode(format)
	return format, err
}
