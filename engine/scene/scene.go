package scene

import (
	"github.com/spaghettifunk/aurora/engine/core"
)

/**
 * @brief The per-frame light snapshot of a scene. The planner holds only
 * transient references into Lights for the duration of one frame.
 */
type RenderScene struct {
	/** @brief All additive lights, in scene iteration order. */
	Lights []Light
	/** @brief The single main directional light, or nil. */
	MainLight *DirectionalLight
}

/**
 * @brief A window a camera renders into. The ID scopes every resource name
 * the planner declares for this window (Radiance<id>, ShadowMap<id>, ...).
 */
type RenderWindow struct {
	ID     uint32
	Width  uint32
	Height uint32
}

func NewRenderWindow(width, height uint32) *RenderWindow {
	w := &RenderWindow{
		Width:  width,
		Height: height,
	}
	w.ID = core.AcquireID(w)
	return w
}

func (w *RenderWindow) Destroy() {
	if err := core.ReleaseID(w.ID); err != nil {
		core.LogWarn("render window destroy: %s", err.Error())
	}
}
