// Package main is the entry point for the OBJ model viewer.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/OpenEngineDK/extensions-mesh-OBJResource/internal/config"
	"github.com/OpenEngineDK/extensions-mesh-OBJResource/internal/engine/camera"
	"github.com/OpenEngineDK/extensions-mesh-OBJResource/internal/engine/resource"
	"github.com/OpenEngineDK/extensions-mesh-OBJResource/internal/engine/scene"
	"github.com/OpenEngineDK/extensions-mesh-OBJResource/internal/engine/window"
	"github.com/OpenEngineDK/extensions-mesh-OBJResource/internal/logger"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: objviewer [options] <model.obj>")
		os.Exit(1)
	}
	modelPath := flag.Arg(0)

	if err := run(cfg, modelPath); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, modelPath string) error {
	win, err := window.New(window.Config{
		Title:      "objviewer - " + filepath.Base(modelPath),
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return err
	}
	defer win.Close()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("OpenGL init failed: %w", err)
	}
	logger.Info("OpenGL initialized", zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))))

	renderer, err := scene.NewRenderer()
	if err != nil {
		return err
	}
	defer renderer.Destroy()

	builder := scene.Builder{}
	res := resource.New(modelPath, resource.Options{
		Textures: builder,
		Nodes:    builder,
		Logger:   logger.Log,
	})
	if err := res.Load(); err != nil {
		return err
	}
	defer res.Unload()

	node, ok := res.SceneNode().(*scene.GeometryNode)
	if !ok {
		return fmt.Errorf("unexpected scene node type for %s", modelPath)
	}

	cam := camera.NewOrbit()
	cam.FOV = cfg.Viewer.FOV
	cam.Frame(node.Bounds())

	logger.Info("model loaded",
		zap.String("file", modelPath),
		zap.Int("vertices", len(res.Mesh().Vertices)),
		zap.Int("faces", len(res.Mesh().Indices)/3),
		zap.Int("materials", len(res.Materials())),
		zap.Int("warnings", len(res.Warnings())),
	)

	gl.Enable(gl.DEPTH_TEST)
	bg := cfg.Viewer.Background

	dragging := false
	running := true
	for running {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				running = false
			case *sdl.KeyboardEvent:
				if e.Type == sdl.KEYDOWN && e.Keysym.Scancode == sdl.SCANCODE_ESCAPE {
					running = false
				}
			case *sdl.MouseButtonEvent:
				if e.Button == sdl.BUTTON_LEFT {
					dragging = e.Type == sdl.MOUSEBUTTONDOWN
				}
			case *sdl.MouseMotionEvent:
				if dragging {
					cam.Drag(float32(e.XRel), float32(e.YRel))
				}
			case *sdl.MouseWheelEvent:
				cam.Zoom(float32(e.Y))
			}
		}

		width, height := win.GetSize()
		gl.Viewport(0, 0, int32(width), int32(height))
		gl.ClearColor(bg[0], bg[1], bg[2], 1)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

		aspect := float32(width) / float32(height)
		viewProj := cam.Projection(aspect).Mul4(cam.View())
		lightDir := cam.Target.Sub(cam.Position()).Normalize()
		renderer.Render(node, viewProj, mgl32.Ident4(), lightDir, cam.Position())

		win.SwapBuffers()
	}

	return nil
}
