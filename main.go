//go:build cgo

package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nvr-ai/go-raw/images"
	"github.com/nvr-ai/go-raw/raw"
	"github.com/nvr-ai/go-raw/util"
)

const (
	// DefaultOutputDir is where converted images are written.
	DefaultOutputDir = "."
)

// InputType represents the type of input being processed.
type InputType int

const (
	InputFile InputType = iota
	InputDirectory
)

// Config holds the parsed command line configuration.
type Config struct {
	Type      InputType
	Input     string
	OutputDir string
	Thumbnail bool
	Invert    bool
	MaxEdge   int
}

func main() {
	var (
		input     = flag.String("input", "", "RAW file or directory of RAW files to decode")
		outputDir = flag.String("output", DefaultOutputDir, "Directory to write converted images to")
		thumbnail = flag.Bool("thumbnail", false, "Extract the embedded JPEG preview instead of decoding")
		invert    = flag.Bool("invert", false, "Invert pixel values of the decoded image")
		maxEdge   = flag.Int("max-edge", 0, "Downscale so the longest edge is at most this many pixels (0 = original size)")
		version   = flag.Bool("version", false, "Print the linked LibRaw version and exit")
	)
	flag.Parse()

	if *version {
		fmt.Println(raw.Version())
		return
	}
	if *input == "" {
		flag.Usage()
		os.Exit(2)
	}

	info, err := os.Stat(*input)
	if err != nil {
		log.Fatalf("cannot access input %s: %v", *input, err)
	}

	config := Config{
		Type:      InputFile,
		Input:     *input,
		OutputDir: *outputDir,
		Thumbnail: *thumbnail,
		Invert:    *invert,
		MaxEdge:   *maxEdge,
	}
	if info.IsDir() {
		config.Type = InputDirectory
	}

	if err := os.MkdirAll(config.OutputDir, 0o755); err != nil {
		log.Fatalf("cannot create output directory %s: %v", config.OutputDir, err)
	}

	paths, err := collectInputs(config)
	if err != nil {
		log.Fatalf("cannot collect inputs: %v", err)
	}
	if len(paths) == 0 {
		log.Fatalf("no RAW files found in %s", config.Input)
	}

	loader := raw.NewLoader(raw.LibRaw{})

	start := time.Now()
	converted := 0
	for _, path := range paths {
		fileStart := time.Now()
		out, err := processFile(loader, path, config)
		if err != nil {
			log.Printf("skipping %s: %v", path, err)
			continue
		}
		converted++
		fmt.Printf("%s -> %s (%.2fs)\n", path, out, time.Since(fileStart).Seconds())
	}

	fmt.Printf("converted %d/%d files in %.2fs\n", converted, len(paths), time.Since(start).Seconds())
	if converted == 0 {
		os.Exit(1)
	}
}

// collectInputs resolves the configured input into a list of RAW file paths.
func collectInputs(config Config) ([]string, error) {
	if config.Type == InputFile {
		return []string{config.Input}, nil
	}

	files, err := util.LoadDirectoryRawFiles(config.Input)
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(files))
	for _, f := range files {
		paths = append(paths, f.Path)
	}
	return paths, nil
}

// processFile converts one RAW file and returns the output path.
func processFile(loader *raw.Loader, path string, config Config) (string, error) {
	if config.Thumbnail {
		return extractThumbnail(path, config)
	}

	result, err := loader.Load(path)
	if err != nil {
		return "", err
	}

	fmt.Printf("%s: %dx%d %s %s ISO%.0f EV%.1f\n",
		filepath.Base(path), result.Width, result.Height,
		result.Meta.Make, result.Meta.Model, result.Meta.ISOSpeed, result.Meta.ExposureValue())

	if config.Invert {
		images.Invert(result.Pixels)
	}

	img := result.RGBA()
	out := outputPath(path, config.OutputDir, ".png")

	f, err := os.Create(out)
	if err != nil {
		return "", err
	}
	defer f.Close()

	encoded := images.Thumbnail(img, config.MaxEdge)
	if err := png.Encode(f, encoded); err != nil {
		return "", err
	}
	return out, nil
}

// extractThumbnail pulls the embedded JPEG preview out of a RAW file without
// running the full decode pipeline.
func extractThumbnail(path string, config Config) (string, error) {
	manager := raw.NewManager(raw.LibRaw{})
	defer manager.Close()

	id, err := manager.Load(path)
	if err != nil {
		return "", err
	}
	defer manager.Release(id)

	meta, err := manager.Metadata(id)
	if err != nil {
		return "", err
	}
	fmt.Printf("%s: %s %s, thumbnail\n", filepath.Base(path), meta.Make, meta.Model)

	data, err := manager.Thumbnail(id)
	if err != nil {
		return "", err
	}

	out := outputPath(path, config.OutputDir, ".thumb.jpg")
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return "", err
	}
	return out, nil
}

// outputPath maps an input RAW path into the output directory with a new
// extension.
func outputPath(input, dir, ext string) string {
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, base+ext)
}
