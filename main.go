package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/imageio"
	"github.com/df07/go-raycaster/pkg/renderer"
	"github.com/df07/go-raycaster/pkg/scene"
)

// options holds the parsed command line
type options struct {
	scene    string
	scenes   string
	out      string
	export   string
	quantize string
	shading  string
	width    int
	height   int
	fov      float64
	verbose  bool
	help     bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (*options, *flag.FlagSet, error) {
	opts := &options{}
	fs := flag.NewFlagSet("raycaster", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.scene, "scene", "single-sphere", "Built-in scene name, file:<name>, or path to a .toml scene file")
	fs.StringVar(&opts.scenes, "scenes", "scenes", "Directory searched for file:<name> scenes")
	fs.StringVar(&opts.out, "out", "trace.tga", "Output image path; format from extension (.tga, .png, .bmp)")
	fs.StringVar(&opts.export, "export", "", "Write the scene as TOML to this path instead of rendering")
	fs.StringVar(&opts.quantize, "quantize", "clamp", "Out-of-range color policy: 'clamp' or 'wrap'")
	fs.StringVar(&opts.shading, "shading", "facing", "Shading mode: 'facing' or 'lambert'")
	fs.IntVar(&opts.width, "width", 0, "Override image width")
	fs.IntVar(&opts.height, "height", 0, "Override image height")
	fs.Float64Var(&opts.fov, "fov", 0, "Override vertical field of view in degrees")
	fs.BoolVar(&opts.verbose, "v", false, "Enable debug logging")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return opts, fs, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, fs, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	if opts.help {
		printHelp(stdout, fs)
		return nil
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	core.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))
	defer core.SetLogger(nil)

	config := renderer.DefaultConfig()
	if config.Quantize, err = core.ParseQuantizeMode(opts.quantize); err != nil {
		return err
	}
	if config.Shading, err = renderer.ParseShadingMode(opts.shading); err != nil {
		return err
	}

	selected, err := loadScene(opts.scene, opts.scenes)
	if err != nil {
		return err
	}
	if opts.width > 0 {
		selected.CameraConfig.Width = opts.width
	}
	if opts.height > 0 {
		selected.CameraConfig.Height = opts.height
	}
	if opts.fov > 0 {
		selected.CameraConfig.VFov = float32(opts.fov)
	}

	if opts.export != "" {
		return exportScene(opts.export, selected)
	}

	if _, err := imageio.FormatFromPath(opts.out); err != nil {
		return err
	}

	rt, err := selected.NewRaytracer(config)
	if err != nil {
		return err
	}

	counts := selected.GetPrimitiveCount()
	core.Logger().Info("rendering",
		"scene", opts.scene,
		"width", selected.CameraConfig.Width,
		"height", selected.CameraConfig.Height,
		"spheres", counts[geometry.KindSphere],
		"triangles", counts[geometry.KindTriangle],
		"lights", len(selected.Lights),
		"shading", config.Shading,
		"quantize", config.Quantize)

	img, stats := rt.Render()

	if err := imageio.SaveFile(opts.out, img); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Render completed in %v (%d rays, %.1f%% coverage)\n",
		stats.Elapsed, stats.RaysCast, 100*stats.Coverage())
	fmt.Fprintf(stdout, "Render saved as %s\n", opts.out)
	return nil
}

// loadScene accepts a .toml path, a built-in name or a file:<name> ID
func loadScene(name, scenesDir string) (*scene.Scene, error) {
	var result *scene.LoadResult
	var err error
	if strings.HasSuffix(name, ".toml") {
		result, err = scene.LoadFile(name)
	} else {
		result, err = scene.Resolve(name, scenesDir)
	}
	if errors.Is(err, scene.ErrUnknownScene) {
		return nil, fmt.Errorf("%w (available: %s, file:<name>, or a .toml path)", err, strings.Join(scene.BuiltinNames(), ", "))
	}
	if err != nil {
		return nil, err
	}

	for _, skipped := range result.Skipped {
		core.Logger().Warn("scene record skipped", "record", skipped.Error())
	}
	return result.Scene, nil
}

func exportScene(path string, s *scene.Scene) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create scene file: %w", err)
	}
	if err := scene.Write(file, s); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close scene file: %w", err)
	}
	core.Logger().Info("scene exported", "path", path)
	return nil
}

func printHelp(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Ray Caster")
	fmt.Fprintln(w, "Usage: raycaster [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	for _, name := range scene.BuiltinNames() {
		fmt.Fprintf(w, "  %s\n", name)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Scene files in the -scenes directory are selected with file:<name>;")
	fmt.Fprintln(w, "a path ending in .toml loads that file directly.")
}
