// Command francegen converts GeoTIFF elevation tiles, optionally overlaid
// with OpenStreetMap vector data and WMTS raster imagery, into a Minecraft
// Java Edition Anvil world.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"strconv"
	"strings"
	"time"

	"github.com/defvs/francegen/internal/config"
	"github.com/defvs/francegen/internal/netfetch"
	"github.com/defvs/francegen/internal/pipeline"
	"github.com/defvs/francegen/internal/raster"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "locate":
		err = runLocate(os.Args[2:])
	case "bounds":
		err = runBounds(os.Args[2:])
	case "info":
		err = runInfo(os.Args[2:])
	case "-h", "--help", "help":
		usage()
		os.Exit(0)
	default:
		err = runBuild(os.Args[1:])
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, errorString(err))
		os.Exit(pipeline.ExitCode(err))
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage:
  francegen [--threads N] [--meta-only] [--config FILE] [--cache-dir PATH] [--bounds minx,minz,maxx,maxz] <tif-folder> <output-world>
  francegen locate <world-dir> <real-x> <real-z> [<real-height>]
  francegen bounds <tif-folder>
  francegen info <world-dir>
`)
}

// errorString renders err per spec §7: a single "ERROR[<kind>]: <message>"
// line for *pipeline.Error, or a generic one-liner otherwise.
func errorString(err error) string {
	if pe, ok := err.(*pipeline.Error); ok {
		return pe.Error()
	}
	return fmt.Sprintf("ERROR[IoError]: %v", err)
}

func runBuild(args []string) error {
	fs := flag.NewFlagSet("francegen", flag.ContinueOnError)
	var (
		threads    int
		metaOnly   bool
		configPath string
		cacheDir   string
		boundsStr  string
		cpuProfile string
		memProfile string
	)
	fs.IntVar(&threads, "threads", runtime.NumCPU(), "Number of parallel chunk-build workers")
	fs.BoolVar(&metaOnly, "meta-only", false, "Compute the mosaic and metadata, skip chunk/region generation")
	fs.StringVar(&configPath, "config", "", "Style profile JSON (default built-in profile)")
	fs.StringVar(&cacheDir, "cache-dir", "", "Directory to cache fetched Overpass/WMTS data (default: francegen-cache under the OS temp dir, kept between runs)")
	fs.StringVar(&boundsStr, "bounds", "", "Crop to minx,minz,maxx,maxz (world block coordinates)")
	fs.StringVar(&cpuProfile, "cpuprofile", "", "Write CPU profile to file")
	fs.StringVar(&memProfile, "memprofile", "", "Write memory profile to file")
	fs.Usage = usage
	if err := fs.Parse(args); err != nil {
		return &pipeline.Error{Kind: pipeline.ConfigError, Msg: err.Error(), Err: err}
	}

	rest := fs.Args()
	if len(rest) != 2 {
		usage()
		return &pipeline.Error{Kind: pipeline.ConfigError, Msg: "expected <tif-folder> <output-world>"}
	}
	tifFolder, outputWorld := rest[0], rest[1]

	if cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		if err != nil {
			return pipeline.Wrap(pipeline.IoError, "create cpu profile", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return pipeline.Wrap(pipeline.IoError, "start cpu profile", err)
		}
		defer pprof.StopCPUProfile()
	}
	if memProfile != "" {
		defer func() {
			f, err := os.Create(memProfile)
			if err != nil {
				log.Printf("create memory profile: %v", err)
				return
			}
			defer f.Close()
			runtime.GC()
			if err := pprof.WriteHeapProfile(f); err != nil {
				log.Printf("write memory profile: %v", err)
			}
		}()
	}

	profile := config.Default()
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return pipeline.Wrap(pipeline.ConfigError, "read config", err)
		}
		profile, err = config.Load(data)
		if err != nil {
			return &pipeline.Error{Kind: pipeline.ConfigError, Msg: err.Error(), Err: err}
		}
	}

	var bounds *raster.Bounds
	if boundsStr != "" {
		b, err := parseBounds(boundsStr)
		if err != nil {
			return &pipeline.Error{Kind: pipeline.ConfigError, Msg: err.Error(), Err: err}
		}
		bounds = &b
	}

	fetcher, capabilities := buildFetchers(profile, cacheDir)

	start := time.Now()
	doc, err := pipeline.Run(context.Background(), pipeline.RunConfig{
		TifFolder:    tifFolder,
		OutputWorld:  outputWorld,
		Threads:      threads,
		MetaOnly:     metaOnly,
		Profile:      profile,
		Bounds:       bounds,
		Fetcher:      fetcher,
		Capabilities: capabilities,
		Progress:     true,
	})
	if err != nil {
		return err
	}

	fmt.Printf("francegen %s (commit %s)\n", version, commit)
	fmt.Printf("  %-14s [%d,%d]-[%d,%d]\n", "Bounds:", doc.MinX, doc.MinZ, doc.MaxX, doc.MaxZ)
	fmt.Printf("  %-14s %.1f - %.1f m\n", "Elevation:", doc.MinHeight, doc.MaxHeight)
	if metaOnly {
		fmt.Printf("  %-14s %s (meta only)\n", "Output:", meta(outputWorld))
	} else {
		fmt.Printf("  %-14s %s\n", "Output:", outputWorld)
	}
	fmt.Printf("Done in %v\n", time.Since(start).Round(time.Millisecond))
	return nil
}

func meta(worldDir string) string {
	return filepath.Join(worldDir, "francegen_meta.json")
}

func buildFetchers(profile config.StyleProfile, cacheDir string) (netfetch.Fetcher, netfetch.CapabilitiesResolver) {
	if len(profile.Overlays.OSMLayers) == 0 && len(profile.Overlays.WMTSLayers) == 0 {
		return nil, nil
	}

	var fetcher netfetch.Fetcher = netfetch.NewHTTPFetcher(60 * time.Second)
	fetcher = netfetch.WithRetry(fetcher, netfetch.DefaultRetryConfig())

	dir := cacheDir
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "francegen-cache")
	}
	if len(profile.Overlays.OSMLayers) > 0 {
		fetcher = netfetch.WithCache(fetcher, dir, netfetch.OverpassCacheDir)
	}
	if len(profile.Overlays.WMTSLayers) > 0 {
		fetcher = netfetch.WithCache(fetcher, dir, netfetch.TilesCacheDir)
	}

	return fetcher, netfetch.NewCapabilitiesResolver(fetcher)
}

func parseBounds(s string) (raster.Bounds, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return raster.Bounds{}, fmt.Errorf("--bounds expects minx,minz,maxx,maxz, got %q", s)
	}
	vals := make([]int, 4)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return raster.Bounds{}, fmt.Errorf("--bounds: invalid integer %q", p)
		}
		vals[i] = v
	}
	return raster.Bounds{MinX: vals[0], MinZ: vals[1], MaxX: vals[2], MaxZ: vals[3]}, nil
}

func runLocate(args []string) error {
	if len(args) < 3 || len(args) > 4 {
		usage()
		return &pipeline.Error{Kind: pipeline.ConfigError, Msg: "expected <world-dir> <real-x> <real-z> [<real-height>]"}
	}
	worldDir := args[0]
	realX, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return &pipeline.Error{Kind: pipeline.ConfigError, Msg: fmt.Sprintf("invalid real-x %q", args[1])}
	}
	realZ, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return &pipeline.Error{Kind: pipeline.ConfigError, Msg: fmt.Sprintf("invalid real-z %q", args[2])}
	}
	var height *float64
	if len(args) == 4 {
		h, err := strconv.ParseFloat(args[3], 64)
		if err != nil {
			return &pipeline.Error{Kind: pipeline.ConfigError, Msg: fmt.Sprintf("invalid real-height %q", args[3])}
		}
		height = &h
	}

	res, err := pipeline.Locate(worldDir, realX, realZ, height)
	if err != nil {
		return err
	}

	if res.Y != nil {
		fmt.Printf("x=%d z=%d cx=%d cz=%d y=%d\n", res.X, res.Z, res.CX, res.CZ, *res.Y)
	} else {
		fmt.Printf("x=%d z=%d cx=%d cz=%d\n", res.X, res.Z, res.CX, res.CZ)
	}
	return nil
}

func runBounds(args []string) error {
	if len(args) != 1 {
		usage()
		return &pipeline.Error{Kind: pipeline.ConfigError, Msg: "expected <tif-folder>"}
	}
	b, err := pipeline.Bounds(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("bounds: [%d,%d] - [%d,%d]\n", b.MinX, b.MinZ, b.MaxX, b.MaxZ)
	fmt.Printf("--bounds %d,%d,%d,%d\n", b.MinX, b.MinZ, b.MaxX, b.MaxZ)
	return nil
}

func runInfo(args []string) error {
	if len(args) != 1 {
		usage()
		return &pipeline.Error{Kind: pipeline.ConfigError, Msg: "expected <world-dir>"}
	}
	doc, err := pipeline.Info(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("origin:     (%.3f, %.3f)\n", doc.OriginModelX, doc.OriginModelZ)
	fmt.Printf("bounds:     [%d,%d] - [%d,%d]\n", doc.MinX, doc.MinZ, doc.MaxX, doc.MaxZ)
	fmt.Printf("elevation:  %.1f - %.1f m\n", doc.MinHeight, doc.MaxHeight)
	return nil
}
