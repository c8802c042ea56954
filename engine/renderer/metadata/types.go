package metadata

import (
	vk "github.com/goki/vulkan"
)

/** @brief Load semantics for a pass attachment. */
type LoadOp uint8

const (
	LOAD_OP_CLEAR LoadOp = iota
	LOAD_OP_LOAD
	LOAD_OP_DISCARD
)

/** @brief Store semantics for a pass attachment. */
type StoreOp uint8

const (
	STORE_OP_STORE StoreOp = iota
	STORE_OP_DISCARD
)

/**
 * @brief Hints the downstream queue sorter: NONE leaves submission order
 * untouched, OPAQUE sorts front-to-back, BLEND back-to-front.
 */
type QueueHint uint8

const (
	QUEUE_HINT_NONE QueueHint = iota
	QUEUE_HINT_OPAQUE
	QUEUE_HINT_BLEND
)

/** @brief Selects which scene geometry a queue draws. */
type SceneFlags uint32

const (
	SCENE_FLAG_OPAQUE        SceneFlags = 0x1
	SCENE_FLAG_MASK          SceneFlags = 0x2
	SCENE_FLAG_BLEND         SceneFlags = 0x4
	SCENE_FLAG_SHADOW_CASTER SceneFlags = 0x8
	SCENE_FLAG_UI            SceneFlags = 0x10
	SCENE_FLAG_PROFILER      SceneFlags = 0x20
)

type ResourceType uint8

const (
	RESOURCE_TYPE_COLOR_TARGET ResourceType = iota
	RESOURCE_TYPE_DEPTH_STENCIL_TARGET
	RESOURCE_TYPE_SHADOW_MAP
)

/**
 * @brief A named GPU resource declaration. The planner declares these once
 * per resize; passes refer to them by name only. Allocation, aliasing and
 * lifetime belong to the external execution engine.
 */
type ResourceDesc struct {
	Name   string
	Type   ResourceType
	Width  uint32
	Height uint32
	Format vk.Format
	/** @brief True for the swapchain-backed window target. */
	Present bool
}

// Default formats used by the resource planner. The shadow depth format is
// device dependent and comes from the capability snapshot instead.
const (
	FORMAT_LDR_COLOR     = vk.FormatR8g8b8a8Unorm
	FORMAT_HDR_COLOR     = vk.FormatR16g16b16a16Sfloat
	FORMAT_DEPTH_STENCIL = vk.FormatD24UnormS8Uint
)

type Viewport struct {
	Left   uint32
	Top    uint32
	Width  uint32
	Height uint32
}
