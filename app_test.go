package main

import (
	"os"
	"sync"
	"testing"
)

// TestE2EHollowSphereExample exercises the full pipeline: Lisp source →
// engine → field sampling → extraction → mesh data. This is the same path
// that the Wails Evaluate binding takes, but without the Wails runtime.
func TestE2EHollowSphereExample(t *testing.T) {
	app := NewApp()

	source, err := os.ReadFile("examples/hollow_sphere.isomesh")
	if err != nil {
		t.Fatalf("failed to read hollow_sphere.isomesh: %v", err)
	}

	result := app.Evaluate(string(source))

	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			t.Errorf("eval error (line %d): %s", e.Line, e.Message)
		}
		t.FailNow()
	}

	if result.Mesh == nil {
		t.Fatal("expected a mesh")
	}
	if result.Mesh.Triangles == 0 {
		t.Error("mesh has no triangles")
	}
	if len(result.Mesh.Vertices) != result.Mesh.Triangles*9 {
		t.Errorf("vertex floats %d inconsistent with %d triangles",
			len(result.Mesh.Vertices), result.Mesh.Triangles)
	}
	if len(result.Mesh.Normals) != result.Mesh.Triangles*9 {
		t.Errorf("normal floats %d inconsistent with %d triangles",
			len(result.Mesh.Normals), result.Mesh.Triangles)
	}
	if len(result.Mesh.Indices) != result.Mesh.Triangles*3 {
		t.Errorf("indices %d inconsistent with %d triangles",
			len(result.Mesh.Indices), result.Mesh.Triangles)
	}
	if result.Mesh.Color == "" {
		t.Error("no color assigned")
	}
}

// TestE2EEmptySource ensures the pipeline reports a missing surface rather
// than producing geometry.
func TestE2EEmptySource(t *testing.T) {
	app := NewApp()
	result := app.Evaluate("")

	if len(result.Errors) == 0 {
		t.Fatal("expected an error for source with no surface")
	}
	if result.Mesh != nil {
		t.Error("expected no mesh for empty source")
	}
}

// TestE2ESyntaxError ensures script errors come back structured, not fatal.
func TestE2ESyntaxError(t *testing.T) {
	app := NewApp()
	result := app.Evaluate("(surface (sphere 1)")

	if len(result.Errors) == 0 {
		t.Fatal("expected errors for unbalanced parens")
	}
	if result.Mesh != nil {
		t.Error("expected no mesh on syntax error")
	}
}

// TestUpdateIsovalueBeforeEvaluate covers the slider being moved before any
// script has been run.
func TestUpdateIsovalueBeforeEvaluate(t *testing.T) {
	app := NewApp()
	result := app.UpdateIsovalue(0.5)

	if len(result.Errors) == 0 {
		t.Fatal("expected an error when no scene is loaded")
	}
}

// TestUpdateIsovalueReextracts verifies that moving the threshold reruns
// only extraction and changes the mesh.
func TestUpdateIsovalueReextracts(t *testing.T) {
	app := NewApp()

	first := app.Evaluate("(resolution 32)\n(surface (sphere 5))")
	if len(first.Errors) > 0 {
		t.Fatalf("eval errors: %v", first.Errors)
	}
	if first.Mesh == nil {
		t.Fatal("expected a mesh")
	}

	// Pulling the shell inward (negative distance) shrinks the surface.
	second := app.UpdateIsovalue(-2.0)
	if len(second.Errors) > 0 {
		t.Fatalf("update errors: %v", second.Errors)
	}
	if second.Mesh == nil {
		t.Fatal("expected a mesh after isovalue update")
	}
	if second.Mesh.Triangles == 0 {
		t.Fatal("inner shell produced no triangles")
	}
	if second.Mesh.Triangles >= first.Mesh.Triangles {
		t.Errorf("inner shell triangles %d not fewer than outer %d",
			second.Mesh.Triangles, first.Mesh.Triangles)
	}
}

// TestConcurrentIsovalueUpdates models the slider firing input events faster
// than extractions complete: overlapping UpdateIsovalue calls must serialize
// on the shared extractor rather than race on its buffers. Run with -race.
func TestConcurrentIsovalueUpdates(t *testing.T) {
	app := NewApp()

	first := app.Evaluate("(resolution 24)\n(surface (sphere 5))")
	if len(first.Errors) > 0 {
		t.Fatalf("eval errors: %v", first.Errors)
	}

	const updates = 8
	results := make([]EvalResult, updates)

	var wg sync.WaitGroup
	for i := 0; i < updates; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = app.UpdateIsovalue(-float64(i) * 0.3)
		}(i)
	}
	wg.Wait()

	for i, r := range results {
		if len(r.Errors) > 0 {
			t.Errorf("update %d: errors: %v", i, r.Errors)
			continue
		}
		if r.Mesh == nil {
			t.Errorf("update %d: no mesh", i)
			continue
		}
		if len(r.Mesh.Vertices) != r.Mesh.Triangles*9 {
			t.Errorf("update %d: vertex floats %d inconsistent with %d triangles",
				i, len(r.Mesh.Vertices), r.Mesh.Triangles)
		}
	}
}
