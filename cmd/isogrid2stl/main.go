// Command isogrid2stl extracts an isosurface and saves it as an STL file.
//
// Input is either a JSON-encoded voxel grid read from stdin (a 3D array
// with z on the outer dimension, then y, then x, forming a perfect cube)
// or, with -script, a field-definition Lisp script that is evaluated and
// sampled onto a grid.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/unixpickle/essentials"

	"github.com/chazu/isomesh/pkg/config"
	"github.com/chazu/isomesh/pkg/engine"
	"github.com/chazu/isomesh/pkg/export"
	"github.com/chazu/isomesh/pkg/grid"
	"github.com/chazu/isomesh/pkg/isosurface"
)

func main() {
	var configPath string
	var scriptPath string
	var isovalue float64
	var outputPath string
	flag.StringVar(&configPath, "config", "", "TOML config file")
	flag.StringVar(&scriptPath, "script", "", "field script to evaluate instead of reading a voxel grid from stdin")
	flag.Float64Var(&isovalue, "isovalue", 0, "extraction threshold")
	flag.StringVar(&outputPath, "output", "", "output STL file (overrides config)")
	flag.Parse()

	// Zero is a meaningful threshold for signed-distance fields, so an
	// explicit -isovalue 0 must still override; check presence, not value.
	isovalueSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "isovalue" {
			isovalueSet = true
		}
	})

	cfg := config.Default()
	if configPath != "" {
		var err error
		cfg, err = config.Load(configPath)
		essentials.Must(err)
	}
	if isovalueSet {
		cfg.Isovalue = isovalue
	}
	if outputPath != "" {
		cfg.Output = outputPath
	}

	g, err := loadGrid(scriptPath, isovalueSet, &cfg)
	essentials.Must(err)

	var exec isosurface.Executor = isosurface.Parallel{Workers: cfg.Workers}
	if cfg.Serial {
		exec = isosurface.Serial{}
	}

	ex, err := isosurface.New(g,
		isosurface.WithIsovalue(float32(cfg.Isovalue)),
		isosurface.WithExecutor(exec))
	essentials.Must(err)

	mesh, err := ex.ExtractMesh()
	essentials.Must(err)

	if mesh.IsEmpty() {
		log.Printf("no surface crosses the grid at isovalue %g", cfg.Isovalue)
		return
	}
	log.Printf("extracted %d triangles", mesh.TriangleCount())
	essentials.Must(export.SaveSTL(mesh, cfg.Output))
}

// loadGrid produces the input grid, either by evaluating a field script or
// by reading a voxel JSON grid from stdin. isovalueSet reports whether the
// -isovalue flag was given on the command line.
func loadGrid(scriptPath string, isovalueSet bool, cfg *config.Config) (grid.ScalarGrid, error) {
	if scriptPath == "" {
		return grid.ReadVoxelJSON(os.Stdin)
	}

	source, err := os.ReadFile(scriptPath)
	if err != nil {
		return nil, err
	}
	scene, evalErrs, err := engine.NewEngine().Evaluate(string(source))
	if err != nil {
		return nil, err
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			log.Printf("script error: %s", e.Error())
		}
		return nil, fmt.Errorf("script %s failed to evaluate", scriptPath)
	}
	if scene.Field == nil {
		return nil, fmt.Errorf("script %s defines no surface", scriptPath)
	}

	// The script's settings win unless the flag already overrode them.
	if !isovalueSet {
		cfg.Isovalue = scene.Isovalue
	}
	res := scene.Resolution
	if cfg.Resolution > res {
		res = cfg.Resolution
	}
	return grid.SampleField(scene.Field, res)
}
