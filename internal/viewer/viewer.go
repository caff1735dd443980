// Package viewer wires the window, input, model and renderer into the main loop.
package viewer

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/sceneview/internal/config"
	"github.com/Faultbox/sceneview/internal/engine/camera"
	"github.com/Faultbox/sceneview/internal/engine/gpu"
	"github.com/Faultbox/sceneview/internal/engine/input"
	"github.com/Faultbox/sceneview/internal/engine/model"
	"github.com/Faultbox/sceneview/internal/engine/renderer"
	"github.com/Faultbox/sceneview/internal/engine/window"
	"github.com/Faultbox/sceneview/internal/logger"
)

// Title is the base window title.
const Title = "SceneView"

// titleInterval is how often the FPS readout in the title is refreshed.
const titleInterval = 500 * time.Millisecond

// ErrNoModel is returned when no model path is configured and the file
// dialog was cancelled.
var ErrNoModel = errors.New("no model selected")

func log() *zap.Logger { return logger.Named("viewer") }

// App is the running viewer.
type App struct {
	cfg      *config.Config
	running  bool
	window   *window.Window
	input    *input.Input
	state    *input.State
	model    *model.Model
	renderer *renderer.Renderer
}

// New opens the window, loads the model and initializes the renderer.
func New(cfg *config.Config) (*App, error) {
	path, err := modelPath(cfg)
	if err != nil {
		return nil, err
	}

	rcfg, err := renderer.ConfigFrom(cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		cfg:   cfg,
		input: input.New(),
		state: input.NewState(),
	}

	// Window first: the model upload needs a GL context.
	app.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		Samples:    cfg.Graphics.Samples,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	dev, err := gpu.NewGL()
	if err != nil {
		app.Close()
		return nil, err
	}

	app.model, err = model.Load(path, dev, model.ImportOptions{
		FlipUVs:        cfg.Import.FlipUVs,
		Triangulate:    cfg.Import.Triangulate,
		BakeTransforms: cfg.Import.BakeTransforms,
	})
	if err != nil {
		app.Close()
		return nil, err
	}

	cam := camera.NewFly(mgl32.Vec3(cfg.Camera.Position), cfg.Camera.Yaw, cfg.Camera.Pitch)
	cam.Speed = cfg.Camera.MoveSpeed
	cam.Sensitivity = cfg.Camera.Sensitivity

	app.renderer = renderer.New(rcfg, app.model, cam)
	if err := app.renderer.Initialize(); err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to initialize renderer: %w", err)
	}
	app.resize()

	log().Info("viewer initialized", zap.String("model", path), zap.Stringer("mode", rcfg.Mode))
	return app, nil
}

// modelPath returns the configured model, asking with a file dialog when
// none is set.
func modelPath(cfg *config.Config) (string, error) {
	if cfg.Viewer.ModelPath != "" {
		return cfg.Viewer.ModelPath, nil
	}
	path, err := dialog.File().
		Filter("glTF models", "gltf", "glb").
		Filter("All Files", "*").
		Title("Open Model").
		Load()
	if err != nil {
		if errors.Is(err, dialog.ErrCancelled) {
			return "", ErrNoModel
		}
		return "", fmt.Errorf("file dialog: %w", err)
	}
	cfg.Viewer.ModelPath = path
	return path, nil
}

// Run drives the frame loop until the window closes or Escape is pressed.
func (a *App) Run() error {
	a.running = true
	lastTitle := time.Now()

	log().Info("starting render loop")

	for a.running {
		if a.input.Update() {
			a.running = false
			break
		}
		for _, e := range a.input.Events() {
			a.handle(e)
		}
		if !a.running {
			break
		}

		a.renderer.RenderFrame(a.state)
		a.window.SwapBuffers()

		if a.cfg.Viewer.ShowFPS && time.Since(lastTitle) >= titleInterval {
			a.window.SetTitle(renderer.FPSTitle(Title, a.renderer.FPS().Smoothed()))
			lastTitle = time.Now()
		}
	}

	log().Info("render loop stopped", zap.Uint64("frames", a.renderer.FPS().Frames()))
	return nil
}

func (a *App) handle(e input.Event) {
	a.state.Apply(e)
	switch e.Type {
	case input.EventWindowResize:
		a.resize()
	case input.EventKeyDown:
		action := ActionFor(e.Key)
		if e.Repeat && !action.Repeats() {
			return
		}
		if !Apply(action, a.renderer) {
			a.running = false
		}
	}
}

func (a *App) resize() {
	dw, dh := a.window.DrawableSize()
	ww, wh := a.window.GetSize()
	a.renderer.Resize(dw, dh, ww, wh)
}

// Close releases the renderer, the model and the window, in that order.
func (a *App) Close() {
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.model != nil {
		a.model.Destroy()
	}
	if a.window != nil {
		a.window.Close()
	}
}
