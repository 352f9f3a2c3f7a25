package main

import (
	"fmt"
	"os"

	"github.com/benoitkugler/okresvg/svgicon"
	"github.com/pelletier/go-toml/v2"
)

// config is the content of the optional TOML file.
// Command line flags take precedence.
type config struct {
	Format string `toml:"format"`
	Out    string `toml:"out"`
	Jobs   int    `toml:"jobs"`
	Strict bool   `toml:"strict"`

	Write  writeConfig  `toml:"write"`
	Raster rasterConfig `toml:"raster"`
}

type writeConfig struct {
	IDPrefix             string `toml:"id_prefix"`
	CoordinatesPrecision uint8  `toml:"coordinates_precision"`
	TransformsPrecision  uint8  `toml:"transforms_precision"`
	SingleQuote          bool   `toml:"single_quote"`
	// Indent is a number of spaces, 0 to disable or -1 for tabs.
	Indent           int `toml:"indent"`
	AttributesIndent int `toml:"attributes_indent"`
}

type rasterConfig struct {
	// Width and Height in pixels, 0 to use the image size
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

func defaultConfig() config {
	def := svgicon.DefaultWriteOptions()
	return config{
		Format: "svg",
		Out:    ".",
		Write: writeConfig{
			IDPrefix:             def.IDPrefix,
			CoordinatesPrecision: def.CoordinatesPrecision,
			TransformsPrecision:  def.TransformsPrecision,
			SingleQuote:          def.UseSingleQuote,
			Indent:               4,
		},
	}
}

// loadConfig reads the file at `path` over the defaults.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func toIndent(n int) svgicon.Indent {
	switch {
	case n < 0:
		return svgicon.IndentTabs
	case n == 0:
		return svgicon.IndentNone
	default:
		return svgicon.IndentSpaces(n)
	}
}

func (wc writeConfig) options() svgicon.WriteOptions {
	return svgicon.WriteOptions{
		IDPrefix:             wc.IDPrefix,
		CoordinatesPrecision: wc.CoordinatesPrecision,
		TransformsPrecision:  wc.TransformsPrecision,
		UseSingleQuote:       wc.SingleQuote,
		Indent:               toIndent(wc.Indent),
		AttributesIndent:     toIndent(wc.AttributesIndent),
	}
}
