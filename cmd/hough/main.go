// Command hough detects straight lines in an image file and writes the Hough
// space and a line overlay as images.
package main

import (
	"encoding/json"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ironsheep/hough-lines-mcp/internal/detection"
	"github.com/ironsheep/hough-lines-mcp/internal/imaging"
	"github.com/ironsheep/hough-lines-mcp/internal/logging"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

type options struct {
	params    detection.Params
	edgeMode  string
	spacePath string
	linesPath string
	lineColor string
	heat      bool
	jsonOut   bool
	logLevel  string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := options{params: detection.DefaultParams()}

	cmd := &cobra.Command{
		Use:     "hough [flags] IMAGE",
		Short:   "Detect straight lines with the Hough transform",
		Version: fmt.Sprintf("%s (built %s, commit %s)", Version, BuildTime, GitCommit),
		Long: `Detect straight lines in IMAGE with the Hough transform.

The accumulator is written as a greyscale image (angle across, distance up)
and the detected lines are drawn over a copy of the input.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := logging.ParseLevel(opts.logLevel)
			if err != nil {
				return err
			}
			logger := logging.NewConsole(stderr, level).With().Str("component", "cli").Logger()
			opts.params.EdgeMode = detection.EdgeMode(opts.edgeMode)
			return run(args[0], opts, stdout, logger)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	p := &opts.params
	flags := cmd.Flags()
	flags.IntVar(&p.ThetaScale, "theta-scale", p.ThetaScale, "angle oversampling: 180*theta-scale angle steps")
	flags.IntVar(&p.RhoScale, "rho-scale", p.RhoScale, "distance oversampling")
	flags.IntVar(&p.Threshold, "threshold", p.Threshold, "minimum votes for a line; 0 makes every cell a line")
	flags.StringVar(&opts.edgeMode, "edge-mode", string(p.EdgeMode), "edge test: intensity, contrast or canny")
	flags.IntVar(&p.EdgeThreshold, "edge-threshold", p.EdgeThreshold, "intensity mode: pixels with average RGB below this vote")
	flags.IntVar(&p.MinContrast, "min-contrast", p.MinContrast, "contrast mode: minimum luminance difference to a neighbour")
	flags.IntVar(&p.CannyLow, "canny-low", p.CannyLow, "canny mode: weak edge gradient threshold")
	flags.IntVar(&p.CannyHigh, "canny-high", p.CannyHigh, "canny mode: strong edge gradient threshold")
	flags.IntVar(&p.PeakRadius, "peak-radius", p.PeakRadius, "non-maximum suppression radius in cells (0 disables)")
	flags.IntVar(&p.MaxLines, "max-lines", p.MaxLines, "keep only the strongest lines (0 keeps all)")
	flags.StringVarP(&opts.spacePath, "space", "s", "hough_space.png", "output path for the Hough space image (empty to skip)")
	flags.StringVarP(&opts.linesPath, "lines", "o", "lines.png", "output path for the line overlay image (empty to skip)")
	flags.StringVar(&opts.lineColor, "line-color", imaging.DefaultLineColor, "hex color of drawn lines")
	flags.BoolVar(&opts.heat, "heat", false, "render the Hough space with a color ramp")
	flags.BoolVar(&opts.jsonOut, "json", false, "print the detection result as JSON instead of a table")
	flags.StringVar(&opts.logLevel, "log-level", os.Getenv(logging.EnvLevel), "debug, info, warn or error")

	return cmd
}

func run(path string, opts options, stdout io.Writer, logger zerolog.Logger) error {
	lineColor, err := imaging.ParseColor(opts.lineColor)
	if err != nil {
		return err
	}

	img, err := imaging.NewImageCache().Load(path)
	if err != nil {
		return err
	}

	result, err := detection.Detect(img, opts.params, logger)
	if err != nil {
		return err
	}
	logger.Info().
		Str("path", path).
		Int("lines", result.Count).
		Int("rejected", result.Rejected).
		Uint32("max_votes", result.Stats.MaxVotes).
		Msg("detection complete")

	if opts.spacePath != "" {
		var space image.Image = imaging.HoughSpace(result.Accumulator)
		if opts.heat {
			space = imaging.HoughSpaceHeat(result.Accumulator)
		}
		if err := imaging.Save(opts.spacePath, space); err != nil {
			return err
		}
		logger.Debug().Str("path", opts.spacePath).Msg("wrote hough space")
	}

	if opts.linesPath != "" {
		if err := imaging.Save(opts.linesPath, imaging.Overlay(img, result.Segments, lineColor)); err != nil {
			return err
		}
		logger.Debug().Str("path", opts.linesPath).Msg("wrote line overlay")
	}

	if opts.jsonOut {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	for _, l := range result.Lines {
		fmt.Fprintf(stdout, "(%d,%d)-(%d,%d)\ttheta=%d\trho=%.2f\tvotes=%d\n",
			l.Start.X, l.Start.Y, l.End.X, l.End.Y, l.ThetaDegrees, l.Rho, l.Votes)
	}
	return nil
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "hough:", err)
		os.Exit(1)
	}
}
