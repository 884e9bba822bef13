package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/pflag"

	"github.com/jmylchreest/swatch/internal/colour"
)

var (
	_ pflag.Value = (*modeValue)(nil)
	_ pflag.Value = (*weightingValue)(nil)
	_ pflag.Value = (*formatValue)(nil)
)

// modeValue is a pflag.Value restricted to the extraction modes.
type modeValue colour.Mode

func (m *modeValue) String() string { return string(*m) }

func (m *modeValue) Set(s string) error {
	mode, err := colour.ParseMode(strings.ToLower(s))
	if err != nil {
		return err
	}
	*m = modeValue(mode)
	return nil
}

func (m *modeValue) Type() string { return "mode" }

// weightingValue is a pflag.Value restricted to the quantized weightings.
type weightingValue colour.Weighting

func (w *weightingValue) String() string { return string(*w) }

func (w *weightingValue) Set(s string) error {
	weighting, err := colour.ParseWeighting(strings.ToLower(s))
	if err != nil {
		return err
	}
	*w = weightingValue(weighting)
	return nil
}

func (w *weightingValue) Type() string { return "weighting" }

// outputFormat selects how extract prints a palette.
type outputFormat string

const (
	formatHex   outputFormat = "hex"
	formatRGB   outputFormat = "rgb"
	formatJSON  outputFormat = "json"
	formatTable outputFormat = "table"
	formatIDs   outputFormat = "ids"
)

func validFormats() []outputFormat {
	return []outputFormat{formatHex, formatRGB, formatJSON, formatTable, formatIDs}
}

// formatValue is a pflag.Value restricted to the output formats.
type formatValue outputFormat

func (f *formatValue) String() string { return string(*f) }

func (f *formatValue) Set(s string) error {
	format := outputFormat(strings.ToLower(s))
	if !slices.Contains(validFormats(), format) {
		return fmt.Errorf("unsupported format: %s (supported: %v)", s, validFormats())
	}
	*f = formatValue(format)
	return nil
}

func (f *formatValue) Type() string { return "format" }
