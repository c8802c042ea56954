package scene

import (
	"github.com/spaghettifunk/aurora/engine/config"
	"github.com/spaghettifunk/aurora/engine/math"
)

type ClearFlag uint8

const (
	CLEAR_FLAG_NONE    ClearFlag = 0x0
	CLEAR_FLAG_COLOR   ClearFlag = 0x1
	CLEAR_FLAG_DEPTH   ClearFlag = 0x2
	CLEAR_FLAG_STENCIL ClearFlag = 0x4
)

type CameraUsage uint8

const (
	CAMERA_USAGE_GAME CameraUsage = iota
	CAMERA_USAGE_GAME_VIEW
	CAMERA_USAGE_SCENE_VIEW
	CAMERA_USAGE_EDITOR
	CAMERA_USAGE_PREVIEW
)

// IsMainGameView reports whether the usage renders the actual game.
func (u CameraUsage) IsMainGameView() bool {
	return u == CAMERA_USAGE_GAME || u == CAMERA_USAGE_GAME_VIEW
}

// IsEditorView reports whether the usage is one of the editor-hosted views.
func (u CameraUsage) IsEditorView() bool {
	return u == CAMERA_USAGE_SCENE_VIEW || u == CAMERA_USAGE_EDITOR || u == CAMERA_USAGE_PREVIEW
}

/**
 * @brief A renderable camera. The planner consumes it read-only; the host
 * engine owns position, frustum and clear state.
 */
type Camera struct {
	Name     string
	Position math.Vec3
	Usage    CameraUsage

	ClearFlags   ClearFlag
	ClearColor   math.Vec4
	ClearDepth   float32
	ClearStencil uint32

	/** @brief World-space view frustum, rebuilt by the host when the camera moves. */
	Frustum math.Frustum

	Exposure float32

	/** @brief Per-camera settings override; nil means use the pipeline defaults. */
	Settings *config.PipelineSettings

	Window *RenderWindow
	Scene  *RenderScene
}
