// Package renderer drives the per-frame passes of the viewer: the lit main
// pass, the ID-buffer pick pass and the SSAO depth pre-pass.
package renderer

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/sceneview/internal/engine/camera"
	"github.com/Faultbox/sceneview/internal/engine/debug"
	"github.com/Faultbox/sceneview/internal/engine/framebuffer"
	"github.com/Faultbox/sceneview/internal/engine/input"
	"github.com/Faultbox/sceneview/internal/engine/model"
	"github.com/Faultbox/sceneview/internal/engine/renderer/shaders"
	"github.com/Faultbox/sceneview/internal/engine/shader"
	"github.com/Faultbox/sceneview/internal/logger"
)

func log() *zap.Logger { return logger.Named("renderer") }

// depthUnit is the texture unit of the SSAO depth map, above any mesh texture.
const depthUnit = 8

// clearGray is the background of the main pass.
const clearGray = 185.0 / 255.0

// Scene is what the renderer draws and picks from. *model.Model implements it.
type Scene interface {
	Draw(u shader.Uniforms, model, view, projection mgl32.Mat4)
	ClickOnMesh(i int) bool
	SetLightMode(mode model.LightMode)
	MeshBounds() []model.Bounds
}

// Renderer owns the GPU programs and targets and renders one frame per call.
type Renderer struct {
	config Config
	scene  Scene
	cam    *camera.Fly
	light  mgl32.Vec3

	diffuse *shader.Program
	click   *shader.Program
	depth   *shader.Program

	pickTarget  *framebuffer.Framebuffer
	depthTarget *framebuffer.DepthTarget

	rng    *rand.Rand
	kernel []mgl32.Vec3
	ao     AOMode

	animTime time.Duration

	picks       []input.Click
	screenshot  bool
	screenshots *debug.ScreenshotCapture

	// Window size in points; clicks arrive in points, the viewport is in pixels.
	windowW, windowH int

	fps       FPSCounter
	now       func() time.Time
	lastFrame time.Time
}

// New creates a renderer for scene seen through cam. It makes no GL calls;
// Initialize must run on the GL thread before the first frame.
func New(cfg Config, scene Scene, cam *camera.Fly) *Renderer {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if cfg.AnimationDuration <= 0 {
		cfg.AnimationDuration = 3 * time.Second
	}
	if cfg.Aspect <= 0 {
		cfg.Aspect = 4.0 / 3.0
	}
	r := &Renderer{
		config:      cfg,
		scene:       scene,
		cam:         cam,
		light:       cfg.Light,
		rng:         rand.New(rand.NewSource(seed)),
		ao:          cfg.AO,
		screenshots: debug.NewScreenshotCapture(cfg.ScreenshotDir, "sceneview"),
		windowW:     cfg.Width,
		windowH:     cfg.Height,
		now:         time.Now,
	}
	r.config.KernelSize = clampKernel(cfg.KernelSize)
	r.kernel = NewKernel(r.config.KernelSize, r.rng)
	return r
}

// Initialize compiles every program and creates the offscreen targets.
// GL must already be loaded (see gpu.NewGL). Any failure is returned
// before the first frame.
func (r *Renderer) Initialize() error {
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	if r.config.Samples > 0 {
		gl.Enable(gl.MULTISAMPLE)
	}

	if err := r.createResources(); err != nil {
		r.Close()
		return err
	}
	gl.Viewport(0, 0, int32(r.config.Width), int32(r.config.Height))
	r.lastFrame = r.now()
	log().Info("renderer initialized",
		zap.Stringer("mode", r.config.Mode),
		zap.Int("kernel", len(r.kernel)),
		zap.Stringer("ao", r.ao),
	)
	return nil
}

func (r *Renderer) createResources() error {
	var err error
	if r.diffuse, err = shader.NewProgram("diffuse", shaders.DiffuseVertexShader, shaders.DiffuseFragmentShader); err != nil {
		return err
	}
	if r.config.Mode >= ModePick {
		if r.click, err = shader.NewProgram("click", shaders.ClickVertexShader, shaders.ClickFragmentShader); err != nil {
			return err
		}
		if r.pickTarget, err = framebuffer.New(1, 1); err != nil {
			return fmt.Errorf("pick target: %w", err)
		}
	}
	if r.config.Mode >= ModeSSAO {
		if r.depth, err = shader.NewProgram("depth", shaders.DepthVertexShader, shaders.DepthFragmentShader); err != nil {
			return err
		}
		if r.depthTarget, err = framebuffer.NewDepthTarget(int32(r.config.Width), int32(r.config.Height)); err != nil {
			return fmt.Errorf("depth target: %w", err)
		}
	}
	return nil
}

// Close releases GPU resources. The scene is owned by the caller.
func (r *Renderer) Close() {
	log().Info("closing renderer")
	for _, p := range []*shader.Program{r.diffuse, r.click, r.depth} {
		if p != nil {
			p.Destroy()
		}
	}
	if r.pickTarget != nil {
		r.pickTarget.Destroy()
	}
	if r.depthTarget != nil {
		r.depthTarget.Destroy()
	}
}

// Resize sets the viewport to the drawable size in pixels. windowW/H is the
// window size in points, used to scale cursor positions.
func (r *Renderer) Resize(width, height, windowW, windowH int) {
	r.config.Width = max(width, 1)
	r.config.Height = max(height, 1)
	r.windowW, r.windowH = windowW, windowH
	gl.Viewport(0, 0, int32(r.config.Width), int32(r.config.Height))
	if r.depthTarget != nil {
		r.depthTarget.Resize(int32(r.config.Width), int32(r.config.Height))
	}
	log().Debug("renderer resized",
		zap.Int("width", r.config.Width),
		zap.Int("height", r.config.Height),
	)
}

// Camera returns the camera driven by RenderFrame.
func (r *Renderer) Camera() *camera.Fly { return r.cam }

// FPS returns the frame counter.
func (r *Renderer) FPS() *FPSCounter { return &r.fps }

// RenderFrame applies input, runs the passes of the configured mode and
// updates the frame counter.
func (r *Renderer) RenderFrame(in *input.State) {
	now := r.now()
	elapsed := now.Sub(r.lastFrame)
	r.lastFrame = now

	r.applyInput(in, elapsed)
	view, proj := r.matrices()

	clicks := in.TakeClicks()
	if r.config.Mode >= ModePick {
		r.picks = append(r.picks, clicks...)
		for _, c := range r.picks {
			r.pick(c, view, proj)
		}
		r.picks = r.picks[:0]
	}

	if r.config.Mode >= ModeSSAO {
		r.depthPass(view, proj)
	}
	r.mainPass(view, proj)

	if r.screenshot {
		r.screenshot = false
		r.captureScreenshot()
	}

	r.fps.Tick(elapsed)
}

func (r *Renderer) applyInput(in *input.State, elapsed time.Duration) {
	r.cam.Move(in.MoveState(), elapsed)
	if dx, dy := in.TakeDrag(); dx != 0 || dy != 0 {
		r.cam.Drag(dx, dy)
	}
}

func (r *Renderer) matrices() (view, proj mgl32.Mat4) {
	view = r.cam.View()
	proj = mgl32.Perspective(mgl32.DegToRad(r.config.FOV), r.config.Aspect, r.config.Near, r.config.Far)
	return view, proj
}

// setSharedUniforms writes the uniforms every pass reads.
func (r *Renderer) setSharedUniforms(u shader.Uniforms) {
	u.SetVec3("lightPos", r.light)
	u.SetVec3("viewPos", r.cam.Position)
	u.SetBool("blinn", true)
	u.SetFloat("time", r.normalizedTime())
}

// setAOUniforms writes the SSAO inputs of the main pass.
func (r *Renderer) setAOUniforms(u shader.Uniforms, view, proj mgl32.Mat4) {
	enabled := r.config.Mode >= ModeSSAO
	u.SetBool("useAO", enabled && r.ao == AOBlend)
	u.SetBool("useOnlyAO", enabled && r.ao == AOOnly)
	if !enabled {
		return
	}
	u.SetVec2("screenSize", mgl32.Vec2{float32(r.config.Width), float32(r.config.Height)})
	u.SetFloat("gAspectRatio", r.config.Aspect)
	u.SetFloat("gTanHalfFOV", float32(math.Tan(float64(mgl32.DegToRad(r.config.FOV/2)))))
	u.SetFloat("gSampleRad", r.config.SampleRadius)
	u.SetMat4("gProj", proj)
	u.SetMat4("gView", view)
	u.SetInt("gKernelSize", int32(len(r.kernel)))
	u.SetVec3Array("gKernel", r.kernel)
	u.SetInt("gDepthMap", depthUnit)
}

func (r *Renderer) depthPass(view, proj mgl32.Mat4) {
	r.depthTarget.Bind()
	b := r.depth.Bind()
	r.setSharedUniforms(b)
	r.scene.Draw(b, mgl32.Ident4(), view, proj)
	b.Release()
	r.depthTarget.Unbind()
}

func (r *Renderer) mainPass(view, proj mgl32.Mat4) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.ClearColor(clearGray, clearGray, clearGray, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	b := r.diffuse.Bind()
	defer b.Release()

	r.setSharedUniforms(b)
	r.setAOUniforms(b, view, proj)
	if r.depthTarget != nil {
		r.depthTarget.BindTexture(depthUnit)
	}
	r.scene.Draw(b, mgl32.Ident4(), view, proj)
	if r.depthTarget != nil {
		gl.ActiveTexture(gl.TEXTURE0 + depthUnit)
		gl.BindTexture(gl.TEXTURE_2D, 0)
		gl.ActiveTexture(gl.TEXTURE0)
	}
}

func (r *Renderer) captureScreenshot() {
	pixels := debug.ReadFramebuffer(r.config.Width, r.config.Height)
	path, err := r.screenshots.CaptureFromPixels(pixels, r.config.Width, r.config.Height)
	if err != nil {
		log().Error("screenshot failed", zap.Error(err))
		return
	}
	log().Info("screenshot saved", zap.String("path", path))
}
