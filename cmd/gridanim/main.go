// gridanim composes a grid of still or animated images into one image, or
// splits one image into a grid.
//
// Usage:
//
//	gridanim <command> [flags]
//
// Commands:
//
//	compose   Combine images row by row into output.png / output.gif
//	split     Cut one image into rows x columns pieces
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/setanarut/gridanim"
	"github.com/setanarut/gridanim/utils"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	pathStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	switch os.Args[1] {
	case "compose":
		cmdCompose(cfg, os.Args[2:])
	case "split":
		cmdSplit(cfg, os.Args[2:])
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`gridanim: compose and split still or animated images

Usage:
  gridanim <command> [flags]

Commands:
  compose    Combine images: -row a.png,b.gif -row c.png
  split      Cut an image:   -in a.gif -rows 2 -cols 3

Environment (also read from .env):
  GRIDANIM_BACKGROUND  GRIDANIM_WORKERS  GRIDANIM_PALETTE
  GRIDANIM_COLORS      GRIDANIM_OUTDIR`)
}

// rowList collects repeated -row flags, each a comma separated list of paths.
type rowList [][]string

func (r *rowList) String() string {
	rows := make([]string, len(*r))
	for i, row := range *r {
		rows[i] = strings.Join(row, ",")
	}
	return strings.Join(rows, " ")
}

func (r *rowList) Set(v string) error {
	var row []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			row = append(row, p)
		}
	}
	if len(row) == 0 {
		return errors.New("row needs at least one image")
	}
	*r = append(*r, row)
	return nil
}

func cmdCompose(cfg config, args []string) {
	fs := flag.NewFlagSet("compose", flag.ExitOnError)
	var rows rowList
	fs.Var(&rows, "row", "Comma separated images of one row (repeat per row)")
	out := fs.String("out", "output", "Output path without extension")
	bg := fs.String("bg", cfg.Background.Hex(), "Background color")
	workers := fs.Int("workers", cfg.Workers, "Frames rendered in parallel (0 picks from frame count)")
	encOpt := encodeFlags(fs, cfg)
	verbose := fs.Bool("v", false, "Print per-frame progress")
	fs.Parse(args)

	if len(rows) == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one -row is required")
		fs.Usage()
		os.Exit(1)
	}
	for _, row := range rows {
		for _, p := range row {
			mustExist(p)
		}
	}
	background, err := colorful.Hex(*bg)
	if err != nil {
		log.Fatalf("Invalid background %q: %v", *bg, err)
	}

	opt := gridanim.DefaultOptions()
	opt.Background = background
	opt.Workers = *workers
	opt.Verbose = *verbose

	fmt.Println("Composing…")
	codec := utils.NewFileCodec(encOpt())
	name, err := gridanim.ComposeFiles(codec, codec, rows, *out, opt)
	if err != nil {
		log.Fatalf("Compose failed: %v", err)
	}
	fmt.Println(titleStyle.Render("Saved to:"), pathStyle.Render(name))
}

func cmdSplit(cfg config, args []string) {
	fs := flag.NewFlagSet("split", flag.ExitOnError)
	in := fs.String("in", "", "Image to split (required)")
	rows := fs.Int("rows", 1, "Number of rows")
	cols := fs.Int("cols", 1, "Number of columns")
	outDir := fs.String("out", cfg.OutDir, "Output directory")
	encOpt := encodeFlags(fs, cfg)
	fs.Parse(args)

	if *in == "" {
		fmt.Fprintln(os.Stderr, "Error: -in is required")
		fs.Usage()
		os.Exit(1)
	}
	mustExist(*in)
	if *rows < 1 || *cols < 1 {
		log.Fatalf("Rows and columns must be at least 1 (got %d x %d)", *rows, *cols)
	}

	fmt.Println("Splitting…")
	codec := utils.NewFileCodec(encOpt())
	saved, err := gridanim.SplitFile(codec, codec, *in, *rows, *cols, *outDir)
	if err != nil {
		log.Fatalf("Split failed: %v", err)
	}
	fmt.Println(titleStyle.Render("Saved to:"))
	for _, p := range saved {
		fmt.Println("  " + pathStyle.Render(p))
	}
}

// encodeFlags registers the GIF encoding flags on fs and returns a function
// resolving them after parsing.
func encodeFlags(fs *flag.FlagSet, cfg config) func() utils.EncodeOptions {
	method := fs.String("palette", cfg.Palette.String(), "GIF palette: dominantcolor, kmeans or plan9")
	colors := fs.Int("colors", cfg.Colors, "GIF palette size (2-256)")
	return func() utils.EncodeOptions {
		m, err := utils.ParsePaletteMethod(*method)
		if err != nil {
			log.Fatalf("Invalid -palette: %v", err)
		}
		return utils.EncodeOptions{PaletteMethod: m, Colors: *colors}
	}
}

func mustExist(path string) {
	if _, err := os.Stat(path); err != nil {
		log.Fatalf("File not found: %s", path)
	}
}
