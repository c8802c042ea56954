package platform

import (
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/aurora/engine/core"
	"github.com/spaghettifunk/aurora/engine/renderer/metadata"
)

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

// DetectCaps probes the running platform. Without a live device the values
// are conservative desktop defaults; a real host overwrites them from its
// device queries after instance creation.
func DetectCaps() metadata.DeviceCaps {
	mobile := runtime.GOOS == "android" || runtime.GOOS == "ios"
	caps := metadata.DeviceCaps{
		Mobile:               mobile,
		SupportsFloatOutput:  !mobile,
		SupportsFloatTexture: true,
		SupportsDepthSample:  !mobile,
		ShadowFormat:         vk.FormatD32Sfloat,
		ScreenSpaceSignY:     1.0,
	}
	if mobile {
		caps.ShadowFormat = vk.FormatD16Unorm
	}
	return caps
}

type Platform struct {
	Window *glfw.Window
	Caps   metadata.DeviceCaps
}

func New() (*Platform, error) {
	return &Platform{
		Caps: DetectCaps(),
	}, nil
}

func (p *Platform) Startup(applicationName string, x, y, width, height uint32) error {
	if err := glfw.Init(); err != nil {
		core.LogFatal("failed to initialize glfw: %s", err)
		return err
	}

	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI) // Required for Vulkan.

	window, err := glfw.CreateWindow(int(width), int(height), applicationName, nil, nil)
	if err != nil {
		core.LogFatal("failed to create window: %s", err)
		return err
	}
	p.Window = window

	p.Window.SetFramebufferSizeCallback(framebufferSizeCallback)
	p.Window.SetPos(int(x), int(y))
	p.Window.Show()

	return nil
}

func (p *Platform) Shutdown() error {
	glfw.Terminate()
	return nil
}

func (p *Platform) PumpMessages() {
	glfw.PollEvents()
}

func (p *Platform) ShouldClose() bool {
	return p.Window != nil && p.Window.ShouldClose()
}

// FramebufferSize returns the native drawable size in pixels.
func (p *Platform) FramebufferSize() (uint32, uint32) {
	if p.Window == nil {
		return 0, 0
	}
	w, h := p.Window.GetFramebufferSize()
	return uint32(w), uint32(h)
}

func framebufferSizeCallback(w *glfw.Window, width, height int) {
	core.EventFire(core.EventContext{
		Type: core.EVENT_CODE_RESIZED,
		Data: &core.WindowResizeEvent{
			Width:  uint32(width),
			Height: uint32(height),
		},
	})
}
