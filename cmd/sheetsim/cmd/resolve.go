package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/go-drift/modalsheet/pkg/sheet"
)

var resolveViewport float64

var resolveCmd = &cobra.Command{
	Use:   "resolve [flags] <snap point>...",
	Short: "Print the pixel layout of a snap point list",
	Long: `Resolve converts snap points to panel heights and offsets for a viewport.

A value ending in "%" is a percentage of the viewport. A bare number in
(0, 1] is a fraction of the viewport; any other number is pixels.

Example:
  sheetsim resolve --viewport 800 30% 0.6 720`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		points, err := parseSnapArgs(args)
		if err != nil {
			return err
		}
		return writeLayout(cmd, points, resolveViewport)
	},
}

func init() {
	resolveCmd.Flags().Float64Var(&resolveViewport, "viewport", 800, "viewport height in pixels")
	RegisterCommand(resolveCmd)
}

func parseSnapArgs(args []string) ([]sheet.SnapPoint, error) {
	points := make([]sheet.SnapPoint, 0, len(args))
	for _, arg := range args {
		if strings.HasSuffix(strings.TrimSpace(arg), "%") {
			p, err := sheet.ParseSnapPoint(arg)
			if err != nil {
				return nil, err
			}
			points = append(points, p)
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid snap point %q", arg)
		}
		points = append(points, sheet.Number(v))
	}
	return points, nil
}

func writeLayout(cmd *cobra.Command, points []sheet.SnapPoint, viewport float64) error {
	if viewport <= 0 {
		return fmt.Errorf("viewport must be positive, got %g", viewport)
	}
	pixels := sheet.ResolveSnapPoints(points, viewport)
	out := cmd.OutOrStdout()
	header := color.New(color.Bold)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, header.Sprint("INDEX")+"\t"+header.Sprint("POINT")+"\t"+header.Sprint("HEIGHT")+"\t"+header.Sprint("OFFSET"))
	for i, p := range points {
		fmt.Fprintf(tw, "%d\t%s\t%g\t%g\n", i, p, pixels[i], sheet.SnapOffset(i, pixels))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if h, ok := sheet.ContainerHeight(0, pixels); ok {
		fmt.Fprintf(out, "container height: %g\n", h)
	}
	for i := 1; i < len(pixels); i++ {
		if pixels[i] < pixels[i-1] {
			color.New(color.FgYellow).Fprintf(out, "warning: snap points are not ascending at index %d\n", i)
			break
		}
	}
	return nil
}
