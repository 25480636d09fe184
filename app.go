package main

import (
	"context"
	"log"
	"sync"

	"github.com/chazu/isomesh/pkg/engine"
	"github.com/chazu/isomesh/pkg/grid"
	"github.com/chazu/isomesh/pkg/isosurface"
)

// meshColor is the default surface color sent to the frontend.
const meshColor = "#4A90D9"

// App is the Wails backend. It exposes methods to the frontend via bindings.
type App struct {
	ctx    context.Context
	engine *engine.Engine

	// Last evaluated scene state, kept so isovalue changes re-run only the
	// extraction pipeline, not script evaluation or field sampling. The
	// mutex serializes whole extractions, not just the pointer swap: the
	// extractor's buffers must never see two concurrent Extract calls.
	mu        sync.Mutex
	extractor *isosurface.Extractor
}

// MeshData is the JSON-serializable mesh format sent to the frontend.
// Vertices are xyz triples; the homogeneous w component is dropped at this
// boundary since the viewer does not use it.
type MeshData struct {
	Vertices  []float32 `json:"vertices"`
	Normals   []float32 `json:"normals"`
	Indices   []uint32  `json:"indices"`
	Triangles int       `json:"triangles"`
	Color     string    `json:"color"`
}

// EvalErrorData is a JSON-serializable eval error for the frontend.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the full result returned to the frontend.
type EvalResult struct {
	Mesh     *MeshData       `json:"mesh"`
	Isovalue float64         `json:"isovalue"`
	Errors   []EvalErrorData `json:"errors"`
}

// NewApp creates a new App.
func NewApp() *App {
	return &App{
		engine: engine.NewEngine(),
	}
}

// startup is called by Wails on app startup. The context is saved so we can
// call Wails runtime methods later if needed.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

// Evaluate takes Lisp source, samples the resulting field, extracts the
// isosurface, and returns mesh data + errors. This is the primary binding
// called by the frontend editor.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{Errors: []EvalErrorData{}}

	scene, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		log.Printf("Evaluate fatal error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}
	if scene.Field == nil {
		result.Errors = append(result.Errors, EvalErrorData{
			Message: "script defines no surface; call (surface ...)",
		})
		return result
	}

	g, err := grid.SampleField(scene.Field, scene.Resolution)
	if err != nil {
		log.Printf("SampleField error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: "sampling failed: " + err.Error()})
		return result
	}

	ex, err := isosurface.New(g, isosurface.WithIsovalue(float32(scene.Isovalue)))
	if err != nil {
		result.Errors = append(result.Errors, EvalErrorData{Message: "extraction setup failed: " + err.Error()})
		return result
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.extractor = ex

	return a.extract(ex, scene.Isovalue)
}

// UpdateIsovalue re-extracts the last evaluated scene at a new threshold.
// Only the classify/compact/generate pipeline reruns; the sampled grid is
// reused. The frontend fires this on every slider input event, so calls
// overlap; the lock makes them run one at a time.
func (a *App) UpdateIsovalue(isovalue float64) EvalResult {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.extractor == nil {
		return EvalResult{Errors: []EvalErrorData{{Message: "no scene evaluated yet"}}}
	}
	a.extractor.SetIsovalue(float32(isovalue))
	return a.extract(a.extractor, isovalue)
}

// extract runs the pipeline and converts the mesh to the frontend format.
func (a *App) extract(ex *isosurface.Extractor, isovalue float64) EvalResult {
	result := EvalResult{Isovalue: isovalue, Errors: []EvalErrorData{}}

	mesh, err := ex.ExtractMesh()
	if err != nil {
		log.Printf("Extract error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: "extraction failed: " + err.Error()})
		return result
	}

	result.Mesh = toMeshData(mesh)
	return result
}

// toMeshData flattens an extracted mesh into the frontend wire format.
func toMeshData(m *isosurface.Mesh) *MeshData {
	n := m.VertexCount()
	md := &MeshData{
		Vertices:  make([]float32, 0, n*3),
		Normals:   m.Normals,
		Indices:   make([]uint32, 0, n),
		Triangles: m.TriangleCount(),
		Color:     meshColor,
	}
	for v := 0; v < n; v++ {
		p := m.Position(v)
		md.Vertices = append(md.Vertices, p[0], p[1], p[2])
		md.Indices = append(md.Indices, uint32(v))
	}
	return md
}
