// Package cli provides the command-line interface for swatch.
package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/version"
)

// Environment variables that seed flag defaults.
const (
	envColours  = "SWATCH_COLOURS"
	envMode     = "SWATCH_MODE"
	envCacheDir = "SWATCH_CACHE_DIR"
)

type rootOptions struct {
	verbose  bool
	quiet    bool
	logLevel string
}

// NewRootCmd builds the swatch command tree. Each call returns an independent tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "swatch",
		Short: "Reduce an image to a small colour palette",
		Long: `Swatch reduces a raster image to a small representative colour palette.

Images with few distinct colours are reported exactly. Anything richer is
clustered with median-cut box splitting. Every pixel is mapped to one palette
entry and each entry carries a relative weight.`,
		Version:      version.Short(),
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (trace, debug, info, warn, error)")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newExtractCmd(opts))

	return rootCmd
}

// logger builds the CLI logger writing to w.
func (o *rootOptions) logger(w io.Writer) (hclog.Logger, error) {
	level := hclog.LevelFromString(o.logLevel)
	if level == hclog.NoLevel {
		return nil, fmt.Errorf("invalid log level: %s", o.logLevel)
	}
	switch {
	case o.quiet:
		level = hclog.Off
	case o.verbose:
		level = hclog.Debug
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   "swatch",
		Output: w,
		Level:  level,
	}), nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}

// envInt returns the integer value of an environment variable, or def when unset or invalid.
func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// envString returns the value of an environment variable, or def when unset or empty.
func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
