package cli

import (
	"bytes"
	"fmt"
	goimage "image"
	"image/png"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/image"
)

type extractOptions struct {
	root *rootOptions

	colours      int
	mode         modeValue
	weighting    weightingValue
	workers      int
	format       formatValue
	output       string
	preview      bool
	maxDimension int
	rawWidth     int
	cache        bool
	cacheDir     string
	allowPrivate bool
	remap        string

	// envErr is reported when the command runs so a bad environment fails loudly.
	envErr error
}

func newExtractCmd(root *rootOptions) *cobra.Command {
	opts := &extractOptions{
		root:      root,
		mode:      modeValue(colour.ModeAuto),
		weighting: weightingValue(colour.WeightVolume),
		format:    formatValue(formatHex),
	}
	if v := envString(envMode, ""); v != "" {
		if err := opts.mode.Set(v); err != nil {
			opts.envErr = fmt.Errorf("invalid %s: %w", envMode, err)
		}
	}

	cmd := &cobra.Command{
		Use:   "extract <image>",
		Short: "Extract a colour palette from an image",
		Long: `Extract a colour palette from an image.

Images with no more distinct colours than requested are reported exactly, in
the order the colours first appear. Richer images are clustered with median-cut
box splitting. Weights give each colour's share of the image.

The image may be a file, a directory (one image is picked at random), an
HTTP(S) URL, or a raw RGBA dump (.rgba or .rgba.xz).

Supported image formats: JPEG, PNG, GIF, WebP, BMP, TIFF, AVIF

Examples:
  # Extract 5 colours (default) from an image
  swatch extract wallpaper.jpg

  # Extract 8 colours and show them as a table
  swatch extract -c 8 -f table wallpaper.png

  # Always quantize and weight colours by pixel share
  swatch extract --mode quantized --weighting population photo.jpg

  # Write the palette-index image alongside JSON output
  swatch extract -f json --remap indexed.png photo.jpg

  # Extract from a raw RGBA dump 640 pixels wide
  swatch extract --raw-width 640 frame.rgba.xz`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, args[0])
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&opts.colours, "colours", "c", envInt(envColours, colour.DefaultMaxColors), "maximum number of colours to extract (0-256)")
	flags.VarP(&opts.mode, "mode", "m", "extraction mode (auto, exact, quantized, average)")
	flags.Var(&opts.weighting, "weighting", "quantized weight scheme (volume, population)")
	flags.IntVar(&opts.workers, "workers", 1, "goroutines for per-pixel passes (0 = all CPUs)")
	flags.VarP(&opts.format, "format", "f", "output format (hex, rgb, json, table, ids)")
	flags.StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	flags.BoolVar(&opts.preview, "preview", false, "show colour previews (default: on when stdout is a terminal)")
	flags.IntVar(&opts.maxDimension, "max-dimension", 0, "downscale so the longer side is at most this many pixels (0 = off)")
	flags.IntVar(&opts.rawWidth, "raw-width", 0, "row width of a raw RGBA input")
	flags.BoolVar(&opts.cache, "cache", false, "cache downloaded images")
	flags.StringVar(&opts.cacheDir, "cache-dir", envString(envCacheDir, ""), "image cache directory (default: user cache dir)")
	flags.BoolVar(&opts.allowPrivate, "allow-private", false, "allow image URLs on loopback or private networks")
	flags.StringVar(&opts.remap, "remap", "", "write the palette-index image to this PNG file")

	return cmd
}

// source is a decoded input: the pixels plus the dimensions, when known.
type source struct {
	pixels colour.Pixels
	width  int
	height int
}

func (o *extractOptions) run(cmd *cobra.Command, arg string) error {
	if o.envErr != nil {
		return o.envErr
	}

	logger, err := o.root.logger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	config := colour.Config{
		Mode:      colour.Mode(o.mode),
		MaxColors: o.colours,
		Weighting: colour.Weighting(o.weighting),
		Workers:   o.workers,
	}
	extractor, err := colour.NewExtractor(config, logger.Named("colour"))
	if err != nil {
		return err
	}

	path, err := image.ResolveImagePath(arg)
	if err != nil {
		return fmt.Errorf("invalid image path: %w", err)
	}
	logger.Debug("loading image", "path", path)

	src, err := o.load(cmd, path, logger)
	if err != nil {
		return err
	}
	logger.Debug("image loaded", "width", src.width, "height", src.height, "pixels", src.pixels.Len())

	palette := extractor.ExtractPixels(src.pixels)
	logger.Info("palette extracted", "colours", palette.Len(), "mode", palette.Mode)

	if o.remap != "" {
		if err := writeRemap(o.remap, palette, src); err != nil {
			return err
		}
		logger.Debug("wrote palette-index image", "path", o.remap)
	}

	w := cmd.OutOrStdout()
	showPreview := o.preview
	if !cmd.Flags().Changed("preview") {
		showPreview = o.output == "" && isTerminal(w)
	}

	out, err := formatPalette(palette, outputFormat(o.format), showPreview, src.width)
	if err != nil {
		return err
	}

	if o.output != "" {
		if err := os.WriteFile(o.output, []byte(out), 0o644); err != nil { // #nosec G306 - Palette output is not sensitive
			return fmt.Errorf("failed to write output file: %w", err)
		}
		logger.Debug("wrote palette", "path", o.output)
		return nil
	}

	_, err = io.WriteString(w, out)
	return err
}

func (o *extractOptions) load(cmd *cobra.Command, path string, logger hclog.Logger) (source, error) {
	if image.IsRawPath(path) {
		px, err := image.LoadRaw(path, o.rawWidth)
		if err != nil {
			return source{}, fmt.Errorf("failed to load image: %w", err)
		}
		if o.rawWidth == 0 {
			if o.maxDimension > 0 {
				logger.Warn("ignoring --max-dimension for a raw input without --raw-width")
			}
			return source{pixels: px}, nil
		}
		img, err := image.RawImage(px, o.rawWidth)
		if err != nil {
			return source{}, err
		}
		return fromImage(image.Downscale(img, o.maxDimension)), nil
	}

	loader := image.NewSmartLoader(image.SmartLoaderOptions{
		Cache:        o.cache,
		CacheDir:     o.cacheDir,
		AllowPrivate: o.allowPrivate,
	})
	img, err := loader.LoadContext(cmd.Context(), path)
	if err != nil {
		return source{}, fmt.Errorf("failed to load image: %w", err)
	}
	return fromImage(image.Downscale(img, o.maxDimension)), nil
}

func fromImage(img goimage.Image) source {
	b := img.Bounds()
	return source{
		pixels: colour.PixelsFromImage(img),
		width:  b.Dx(),
		height: b.Dy(),
	}
}

func writeRemap(path string, palette *colour.Palette, src source) error {
	if src.width == 0 {
		return fmt.Errorf("--remap needs image dimensions; set --raw-width for raw input")
	}
	img, err := palette.Image(src.width, src.height)
	if err != nil {
		return fmt.Errorf("failed to build palette-index image: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("failed to encode palette-index image: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil { // #nosec G306 - Generated image is not sensitive
		return fmt.Errorf("failed to write palette-index image: %w", err)
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// formatPalette formats the palette according to the specified format. Width is the
// image row width used to lay out the ids grid; zero prints all ids on one line.
func formatPalette(palette *colour.Palette, format outputFormat, showPreview bool, width int) (string, error) {
	switch format {
	case formatHex:
		return formatHexList(palette, showPreview), nil
	case formatRGB:
		return formatRGBList(palette, showPreview), nil
	case formatJSON:
		jsonBytes, err := palette.ToJSON(false)
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(jsonBytes) + "\n", nil
	case formatTable:
		return formatWeightTable(palette, showPreview), nil
	case formatIDs:
		return formatIDGrid(palette, width), nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: %v)", format, validFormats())
	}
}

func formatHexList(palette *colour.Palette, showPreview bool) string {
	var sb strings.Builder
	for i, hex := range palette.ToHex() {
		if showPreview {
			sb.WriteString(colour.FormatColourWithPreview(palette.Colors[i].RGB(), 8))
		} else {
			sb.WriteString(hex)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func formatRGBList(palette *colour.Palette, showPreview bool) string {
	var sb strings.Builder
	for _, rgb := range palette.ToRGBSlice() {
		if showPreview {
			sb.WriteString(colour.ColourPreview(rgb, 8) + "  ")
		}
		sb.WriteString(rgb.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

func formatWeightTable(palette *colour.Palette, showPreview bool) string {
	headers := []string{"#", "Hex", "RGB", "Alpha", "Weight"}
	if showPreview {
		headers = append(headers, "Preview")
	}
	table := NewTable(headers)
	table.SetAlignRight(0)
	table.SetAlignRight(3)
	table.SetAlignRight(4)

	for i, c := range palette.Colors {
		row := []string{
			strconv.Itoa(i),
			c.Hex(),
			c.RGB().String(),
			strconv.Itoa(int(c.A)),
			fmt.Sprintf("%.2f%%", palette.Weights[i]*100),
		}
		if showPreview {
			row = append(row, colour.ColourPreviewWithText(c.RGB(), fmt.Sprintf("%.0f%%", palette.Weights[i]*100), 8))
		}
		table.AddRow(row)
	}
	return table.Render()
}

func formatIDGrid(palette *colour.Palette, width int) string {
	if len(palette.IDs) == 0 {
		return ""
	}
	if width <= 0 {
		width = len(palette.IDs)
	}

	var sb strings.Builder
	for i, id := range palette.IDs {
		if i > 0 {
			if i%width == 0 {
				sb.WriteString("\n")
			} else {
				sb.WriteString(" ")
			}
		}
		sb.WriteString(strconv.Itoa(id))
	}
	sb.WriteString("\n")
	return sb.String()
}
