package main

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"pdf-workbench/internal/domain"
	"pdf-workbench/internal/service"
	"pdf-workbench/pkg/logger"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "pdfworkbench",
		Usage: "Compare PDFs visually and reorder their pages",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "debug, info, warn or error",
				Value:   "warn",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "compare",
				Usage:     "Render two PDFs page by page and write difference overlays",
				ArgsUsage: "LEFT.pdf RIGHT.pdf",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output directory", Value: "compare-out"},
					&cli.IntFlag{Name: "width", Usage: "render width in pixels", Value: domain.DefaultRenderWidth},
					&cli.UintFlag{Name: "threshold", Usage: "per-channel difference threshold", Value: domain.DefaultDiffThreshold},
				},
				Action: compareAction,
			},
			{
				Name:      "reorder",
				Usage:     "Write a copy of a PDF with its pages rearranged",
				ArgsUsage: "IN.pdf OUT.pdf",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "reverse", Usage: "reverse the page order first"},
					&cli.StringSliceFlag{Name: "move", Usage: "FROM:TO[:after] using 1-based positions, applied in order"},
					&cli.BoolFlag{Name: "reset", Usage: "discard all changes and keep the original order"},
				},
				Action: reorderAction,
			},
			{
				Name:      "related",
				Usage:     "List the tools related to a tool",
				ArgsUsage: "TOOL",
				Action:    relatedAction,
			},
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func compareAction(c *cli.Context) error {
	if c.NArg() != 2 {
		return cli.Exit("compare needs exactly two PDF files", 2)
	}
	threshold := c.Uint("threshold")
	if threshold > 255 {
		return cli.Exit("threshold must be between 0 and 255", 2)
	}

	files := make([][]byte, 2)
	for i := range files {
		data, err := os.ReadFile(c.Args().Get(i))
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", c.Args().Get(i), err)
		}
		files[i] = data
	}

	outDir := c.String("out")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	log := logger.NewLogger(c.String("log-level"))
	engine := service.NewComparisonService(
		service.NewFitzRasterizer(log),
		log,
		c.Int("width"),
		uint8(threshold),
		domain.DefaultDiffAlpha,
	)

	return engine.CompareFiles(c.Context, files, func(page domain.ComparisonPage) error {
		n := page.PageIndex + 1
		for _, side := range pageSides(page) {
			if err := writePNG(filepath.Join(outDir, fmt.Sprintf("page-%03d-%s.png", n, side.name)), side.img); err != nil {
				return err
			}
		}
		if !page.HasDiff() {
			fmt.Fprintf(c.App.Writer, "page %d: %s\n", n, page.Note)
			return nil
		}
		if err := writePNG(filepath.Join(outDir, fmt.Sprintf("page-%03d-overlay.png", n)), page.Overlay); err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "page %d: %d differing pixels\n", n, page.Mask.Count())
		return nil
	})
}

type pageSide struct {
	name string
	img  image.Image
}

// pageSides lists the rendered sides of a row, left before right
func pageSides(page domain.ComparisonPage) []pageSide {
	sides := make([]pageSide, 0, 2)
	if page.Left != nil {
		sides = append(sides, pageSide{name: "left", img: page.Left})
	}
	if page.Right != nil {
		sides = append(sides, pageSide{name: "right", img: page.Right})
	}
	return sides
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}

func reorderAction(c *cli.Context) error {
	if c.NArg() != 2 {
		return cli.Exit("reorder needs an input and an output path", 2)
	}
	in, out := c.Args().Get(0), c.Args().Get(1)

	source, err := os.ReadFile(in)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", in, err)
	}

	assembler := service.NewPDFCPUAssembler(logger.NewLogger(c.String("log-level")))
	pageCount, err := assembler.PageCount(c.Context, source)
	if err != nil {
		return err
	}

	order := domain.NewPageOrder()
	order.Initialize(pageCount)
	if c.Bool("reverse") {
		order.Reverse()
	}
	for _, move := range c.StringSlice("move") {
		from, to, after, err := parseMove(move)
		if err != nil {
			return cli.Exit(err.Error(), 2)
		}
		if !order.MoveEntry(from, to, after) {
			fmt.Fprintf(c.App.ErrWriter, "ignoring move %s: positions must differ and lie in 1..%d\n", move, pageCount)
		}
	}
	if c.Bool("reset") {
		order.Reset()
	}

	final, err := domain.OrderForBuild(order.FinalOrder(), pageCount)
	if err != nil {
		fmt.Fprintf(c.App.ErrWriter, "invalid order, keeping original: %v\n", err)
	}
	data, err := assembler.Build(c.Context, source, final)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	positions := make([]string, len(final))
	for i, idx := range final {
		positions[i] = strconv.Itoa(idx + 1)
	}
	fmt.Fprintf(c.App.Writer, "wrote %s with page order %s\n", out, strings.Join(positions, ","))
	return nil
}

// parseMove parses FROM:TO[:after|:before] with 1-based positions
func parseMove(spec string) (source, target int, after bool, err error) {
	parts := strings.Split(spec, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, 0, false, fmt.Errorf("invalid move %q, want FROM:TO[:after]", spec)
	}
	from, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false, fmt.Errorf("invalid move %q: %w", spec, err)
	}
	to, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false, fmt.Errorf("invalid move %q: %w", spec, err)
	}
	if len(parts) == 3 {
		switch parts[2] {
		case "after":
			after = true
		case "before":
		default:
			return 0, 0, false, fmt.Errorf("invalid move %q: placement must be before or after", spec)
		}
	}
	return from - 1, to - 1, after, nil
}

func relatedAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("related needs a tool name, one of: "+strings.Join(domain.ToolSlugs(), ", "), 2)
	}
	tools, err := domain.RelatedTools(c.Args().First())
	if err != nil {
		return cli.Exit(fmt.Sprintf("%v: %s", err, c.Args().First()), 1)
	}
	for _, t := range tools {
		fmt.Fprintf(c.App.Writer, "%-24s %s\n  %s\n", t.Name, t.URL, t.Description)
	}
	return nil
}
