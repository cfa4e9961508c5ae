// Package meshio exports the generated meshes and the composed still life to
// glTF binary and STL files.
package meshio

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/soypat/stilllife"
	"github.com/soypat/stilllife/glrender"
	"github.com/soypat/stilllife/scene"
)

// ExportConfig configures [Export]. At least one output must be set.
type ExportConfig struct {
	// GLBOutput receives the still life as a glTF binary scene with one node per object.
	GLBOutput io.Writer
	// STLOutput receives the still life triangles in world space.
	STLOutput io.Writer
	Silent    bool
}

// Export generates the meshes of the still life and writes them to the configured outputs.
func Export(groups []scene.Group, cfg ExportConfig) error {
	if cfg.GLBOutput == nil && cfg.STLOutput == nil {
		return errors.New("Export requires output parameter in config")
	}
	logf := func(args ...any) {
		if !cfg.Silent {
			log.Println(args...)
		}
	}
	watch := stopwatch()
	bld := stilllife.Builder{NoDimensionPanic: true}
	set := bld.NewSet()
	err := bld.Err()
	if err != nil {
		return err
	}
	logf("generated meshes in", watch())

	if cfg.GLBOutput != nil {
		watch = stopwatch()
		doc := NewDocument()
		err = AddStillLife(doc, set, groups)
		if err != nil {
			return err
		}
		err = WriteGLB(cfg.GLBOutput, doc)
		if err != nil {
			return fmt.Errorf("writing glTF: %w", err)
		}
		logf("wrote", outputName(cfg.GLBOutput, "glTF"), "with", len(doc.Meshes), "meshes and", len(doc.Nodes), "nodes in", watch())
	}

	if cfg.STLOutput != nil {
		watch = stopwatch()
		renderer, err := glrender.NewSceneRenderer(set, groups)
		if err != nil {
			return err
		}
		triangles, err := glrender.RenderAll(renderer, nil)
		if err != nil {
			return fmt.Errorf("rendering triangles: %w", err)
		}
		_, err = glrender.WriteBinarySTL(cfg.STLOutput, triangles)
		if err != nil {
			return fmt.Errorf("writing STL: %w", err)
		}
		logf("wrote", outputName(cfg.STLOutput, "STL"), "with", len(triangles), "triangles in", watch())
	}
	return nil
}

func outputName(w io.Writer, fallback string) string {
	if fp, ok := w.(*os.File); ok {
		return fp.Name()
	}
	return fallback
}

func stopwatch() func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		return time.Since(start)
	}
}
