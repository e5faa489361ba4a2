package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/esimov/motograph"
	"github.com/esimov/motograph/halfedge"
	"github.com/esimov/motograph/utils"
	"gonum.org/v1/gonum/spatial/r3"
)

const HelpBanner = `
┌┬┐┌─┐┌┬┐┌─┐┌─┐┬─┐┌─┐┌─┐┬ ┬
││││ │ │ │ ││ ┬├┬┘├─┤├─┘├─┤
┴ ┴└─┘ ┴ └─┘└─┘┴└─┴ ┴┴  ┴ ┴

Quad mesh patch decomposition by motorcycle graph.
    Version: %s

`

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

// Version indicates the current build version.
var Version string

var (
	// Flags
	source      = flag.String("in", pipeName, "Source mesh (OBJ file, directory or URL)")
	destination = flag.String("out", pipeName, "Destination of the labeled OBJ")
	preview     = flag.String("preview", "", "Preview image path (png, jpg or bmp)")
	newWidth    = flag.Int("width", 1024, "Preview width")
	newHeight   = flag.Int("height", 1024, "Preview height")
	edges       = flag.Bool("edges", true, "Draw the motorcycle graph edges")
	nodes       = flag.Bool("nodes", true, "Draw the motorcycle graph nodes")
	labels      = flag.Bool("labels", false, "Draw the patch ids")
	workers     = flag.Int("conc", runtime.NumCPU(), "Number of files to process concurrently")
	configFile  = flag.String("config", "", "TOML configuration file")
	maxRounds   = flag.Int("rounds", 0, "Propagation round limit (0 means unlimited)")
	logLevel    = flag.String("log", "", "Log level (debug, info, warn, error)")
	demo        = flag.String("demo", "", "Decompose a generated mesh: "+strings.Join(demoNames(), ", "))
)

// demos lists the generated meshes available through the -demo flag.
var demos = map[string]func() (*halfedge.Mesh, error){
	"grid": func() (*halfedge.Mesh, error) { return halfedge.Grid(8, 8), nil },
	"cube": func() (*halfedge.Mesh, error) { return halfedge.Cube(), nil },
	"box":  func() (*halfedge.Mesh, error) { return halfedge.Box(3), nil },
	"subcube": func() (*halfedge.Mesh, error) {
		return halfedge.Subdivide(halfedge.Cube()), nil
	},
	"triangle": func() (*halfedge.Mesh, error) {
		tri, err := halfedge.FromPolygons([]r3.Vec{{}, {X: 1}, {X: 0.5, Y: 0.866}}, [][]int{{0, 1, 2}})
		if err != nil {
			return nil, err
		}
		return halfedge.Subdivide(halfedge.Subdivide(tri)), nil
	},
}

func demoNames() []string {
	names := make([]string, 0, len(demos))
	for name := range demos {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, HelpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg := motograph.DefaultConfig()
	if *configFile != "" {
		var err error
		if cfg, err = motograph.LoadConfig(*configFile); err != nil {
			log.Fatalf("%s %s",
				utils.DecorateText("Unable to load the configuration:", utils.ErrorMessage),
				utils.DecorateText(err.Error(), utils.DefaultMessage),
			)
		}
	}
	// Flags set on the command line take precedence over the configuration file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cfg.Render.Width = *newWidth
		case "height":
			cfg.Render.Height = *newHeight
		case "edges":
			cfg.Render.Edges = *edges
		case "nodes":
			cfg.Render.Nodes = *nodes
		case "labels":
			cfg.Render.Labels = *labels
		case "conc":
			cfg.Run.Workers = *workers
		case "rounds":
			cfg.Run.MaxRounds = *maxRounds
		case "log":
			cfg.Log.Level = *logLevel
		}
	})
	if cfg.Run.Workers == 0 {
		cfg.Run.Workers = *workers
	}

	logger, closer, err := cfg.Log.NewLogger(os.Stderr)
	if err != nil {
		log.Fatal(utils.DecorateText(err.Error(), utils.ErrorMessage))
	}
	defer closer.Close()
	motograph.SetLogger(logger)

	proc := cfg.Processor()
	proc.Preview = *preview

	spinnerText := fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ MOTOGRAPH", utils.StatusMessage),
		utils.DecorateText("⇢ tracing motorcycles...", utils.DefaultMessage))
	proc.Spinner = utils.NewSpinner(spinnerText, time.Millisecond*80, true)

	if *demo != "" {
		if err := runDemo(proc, *demo, *destination); err != nil {
			closer.Close()
			log.Fatalf("%s %s",
				utils.DecorateText("Error decomposing the demo mesh:", utils.ErrorMessage),
				utils.DecorateText(err.Error(), utils.DefaultMessage),
			)
		}
		return
	}

	op := &motograph.Ops{
		Src:      *source,
		Dst:      *destination,
		PipeName: pipeName,
		Workers:  cfg.Run.Workers,
	}
	if err := proc.Execute(op); err != nil {
		closer.Close()
		log.Fatalf("%s%s",
			utils.DecorateText(err.Error(), utils.ErrorMessage),
			utils.DefaultColor,
		)
	}
}

// runDemo decomposes one of the generated meshes and writes it to dst.
func runDemo(proc *motograph.Processor, name, dst string) error {
	gen, ok := demos[name]
	if !ok {
		return fmt.Errorf("unknown demo mesh %q, choose one of: %s", name, strings.Join(demoNames(), ", "))
	}
	mesh, err := gen()
	if err != nil {
		return err
	}

	out := os.Stdout
	if dst != pipeName {
		if out, err = os.Create(dst); err != nil {
			return fmt.Errorf("unable to create the destination file: %w", err)
		}
		defer out.Close()
	}

	now := time.Now()
	proc.Spinner.Start()
	err = proc.ProcessMesh(mesh, out)
	proc.Spinner.Stop()
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "\nExecution time: %s\n",
		utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
	return nil
}
