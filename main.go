/*
Reference host for the forward pipeline: opens a window, loads the
pipeline settings and post-process materials, and records one frame graph
per loop iteration for an execution engine to consume.
*/
package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spaghettifunk/aurora/engine/assets"
	"github.com/spaghettifunk/aurora/engine/config"
	"github.com/spaghettifunk/aurora/engine/core"
	"github.com/spaghettifunk/aurora/engine/hud"
	"github.com/spaghettifunk/aurora/engine/math"
	"github.com/spaghettifunk/aurora/engine/platform"
	"github.com/spaghettifunk/aurora/engine/renderer/graph"
	"github.com/spaghettifunk/aurora/engine/renderer/pipeline"
	"github.com/spaghettifunk/aurora/engine/scene"
)

const (
	settingsPath = "assets/pipeline.toml"
	materialsDir = "assets/materials"
	profilerFont = "assets/fonts/profiler.fnt"
)

func main() {
	settings, err := config.Load(settingsPath)
	if err != nil {
		core.LogWarn("falling back to default pipeline settings: %s", err.Error())
		settings = config.Default()
	}
	core.SetLogLevel(settings.LogLevel)
	core.MetricsInitialize()

	p, err := platform.New()
	if err != nil {
		core.LogFatal("platform: %s", err.Error())
	}
	if err := p.Startup("Aurora", 100, 100, 1280, 720); err != nil {
		os.Exit(1)
	}
	defer p.Shutdown()

	materials, err := assets.NewMaterialManager()
	if err != nil {
		core.LogFatal("material manager: %s", err.Error())
	}
	if err := materials.Initialize(materialsDir); err != nil {
		core.LogWarn("materials unavailable, frames will be skipped: %s", err.Error())
	}
	defer materials.Shutdown()

	g := graph.New()
	pipe, err := pipeline.NewForwardPipeline(g, p.Caps, settings, materials)
	if err != nil {
		core.LogFatal("pipeline: %s", err.Error())
	}

	if overlay, err := hud.New(profilerFont); err != nil {
		core.LogWarn("profiler overlay disabled: %s", err.Error())
	} else {
		pipe.SetProfilerOverlay(overlay)
	}

	width, height := p.FramebufferSize()
	window := scene.NewRenderWindow(width, height)
	defer window.Destroy()

	sc := &scene.RenderScene{
		MainLight: &scene.DirectionalLight{
			LightCommon:    scene.LightCommon{ShadowEnabled: true},
			Direction:      math.Vec3{X: -0.3, Y: -1, Z: -0.2}.Normalized(),
			CSMLevel:       settings.Shadow.CSMLevel,
			FixedArea:      settings.Shadow.FixedArea,
			ShadowDistance: 100,
		},
	}
	camera := &scene.Camera{
		Name:       "main",
		Usage:      scene.CAMERA_USAGE_GAME,
		ClearFlags: scene.CLEAR_FLAG_COLOR | scene.CLEAR_FLAG_DEPTH,
		ClearColor: math.NewVec4(0.05, 0.05, 0.08, 1),
		ClearDepth: 1.0,
		Exposure:   1.0,
		Window:     window,
		Scene:      sc,
	}
	cameras := []*scene.Camera{camera}

	core.EventRegister(core.EVENT_CODE_RESIZED, func(ctx core.EventContext) {
		if e, ok := ctx.Data.(*core.WindowResizeEvent); ok && e.Width > 0 && e.Height > 0 {
			pipe.WindowResize(camera, e.Width, e.Height)
		}
	})
	core.EventRegister(core.EVENT_CODE_SETTINGS_CHANGED, func(ctx core.EventContext) {
		if s, ok := ctx.Data.(*config.PipelineSettings); ok {
			core.SetLogLevel(s.LogLevel)
			pipe.ApplySettings(s)
			pipe.WindowResize(camera, window.Width, window.Height)
		}
	})

	quit := false
	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, func(core.EventContext) {
		quit = true
	})

	if stop, err := config.Watch(settingsPath); err != nil {
		core.LogWarn("settings hot reload disabled: %s", err.Error())
	} else {
		defer stop()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	go func() {
		<-sigCh
		core.EventFire(core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT})
	}()

	pipe.WindowResize(camera, width, height)

	last := time.Now()
	for !quit && !p.ShouldClose() {
		p.PumpMessages()

		now := time.Now()
		core.MetricsUpdate(now.Sub(last).Seconds())
		last = now

		g.Reset()
		pipe.Setup(cameras)
		if err := g.Validate(); err != nil {
			core.LogError("frame graph invalid: %s", err.Error())
			continue
		}

		// The execution engine consumes g.Passes here; without one attached
		// this host only exercises planning.
	}
	core.LogInfo("shutting down")
}
