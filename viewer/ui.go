//go:build !tinygo && cgo

package viewer

import (
	"fmt"
	"log"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/stilllife"
	"github.com/soypat/stilllife/glbuild"
	"github.com/soypat/stilllife/glrender"
	"github.com/soypat/stilllife/scene"
)

var movementKeys = [...]struct {
	key glfw.Key
	dir scene.Direction
}{
	{glfw.KeyW, scene.Forward},
	{glfw.KeyS, scene.Backward},
	{glfw.KeyA, scene.Left},
	{glfw.KeyD, scene.Right},
	{glfw.KeyQ, scene.Up},
	{glfw.KeyE, scene.Down},
}

// Run opens a window and renders the still life until the window is closed or
// the context is done. It must be called from the main OS thread.
func Run(cfg Config) error {
	err := cfg.Validate()
	if err != nil {
		return err
	}
	logf := func(args ...any) {
		if !cfg.Silent {
			log.Println(args...)
		}
	}
	window, term, err := startGLFW(cfg.Width, cfg.Height, cfg.Title)
	if err != nil {
		return err
	}
	defer term()
	logf("OpenGL version", gl.GoStr(gl.GetString(gl.VERSION)))

	bld := stilllife.Builder{NoDimensionPanic: true}
	set := bld.NewSet()
	err = bld.Err()
	if err != nil {
		return err
	}
	programmer, err := glbuild.NewProgrammer(cfg.PhongConfig())
	if err != nil {
		return err
	}
	dev, err := glrender.NewDevice(programmer, set, cfg.TextureDir)
	if err != nil {
		return err
	}
	defer dev.Delete()

	cam := scene.NewCamera(mgl32.Vec3(cfg.Camera))
	var tracker scene.MouseTracker
	width, height := window.GetFramebufferSize()
	dev.Viewport(width, height)
	window.SetFramebufferSizeCallback(func(w *glfw.Window, fbWidth, fbHeight int) {
		width, height = fbWidth, fbHeight
		dev.Viewport(width, height)
	})
	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		cam.ProcessMouseMovement(tracker.Offset(xpos, ypos))
	})
	window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		cam.ProcessMouseScroll(float32(yoff))
	})
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		b := MouseButton(-1)
		switch button {
		case glfw.MouseButtonLeft:
			b = MouseLeft
		case glfw.MouseButtonMiddle:
			b = MouseMiddle
		case glfw.MouseButtonRight:
			b = MouseRight
		}
		logf(buttonMessage(b, action == glfw.Press))
	})
	window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)

	groups := scene.StillLife()
	lighting := scene.DefaultLighting()
	ctx := cfg.Context
	previousTime := glfw.GetTime()
	for !window.ShouldClose() {
		if ctx != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}
		currentTime := glfw.GetTime()
		dt := float32(currentTime - previousTime)
		previousTime = currentTime

		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
		}
		for _, mk := range movementKeys {
			if window.GetKey(mk.key) == glfw.Press {
				cam.ProcessKeyboard(mk.dir, dt)
			}
		}
		ortho := window.GetKey(glfw.KeyP) == glfw.Press

		frame := scene.NewFrame(cam, width, height, ortho)
		err = scene.Render(dev, frame, lighting, groups)
		if err != nil {
			return err
		}
		err = dev.Err()
		if err != nil {
			return fmt.Errorf("rendering frame: %w", err)
		}
		window.SwapBuffers()
		glfw.PollEvents()
	}
	return nil
}

func startGLFW(width, height int, title string) (window *glfw.Window, term func(), err error) {
	if err := glfw.Init(); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	// Create GLFW window
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	if runtime.GOOS == "darwin" {
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	}

	window, err = glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, nil, fmt.Errorf("failed to create GLFW window: %w", err)
	}
	window.MakeContextCurrent()

	// Initialize OpenGL
	if err := gl.Init(); err != nil {
		glfw.Terminate()
		return nil, nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	return window, glfw.Terminate, nil
}
