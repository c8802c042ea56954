package metadata

import (
	vk "github.com/goki/vulkan"
)

/**
 * @brief A once-per-activation snapshot of device and platform facts the
 * pipeline branches on. Produced by the platform layer (or a host's device
 * queries); read-only for everyone downstream.
 */
type DeviceCaps struct {
	/** @brief Mobile platforms take the shared-pass lighting path. */
	Mobile bool
	/** @brief The device can render into float color attachments. */
	SupportsFloatOutput bool
	/** @brief The device can sample float textures. */
	SupportsFloatTexture bool
	/** @brief The device can sample the depth attachment in a later pass. */
	SupportsDepthSample bool
	/** @brief Preferred depth format for shadow maps. */
	ShadowFormat vk.Format
	/** @brief +1 when screen-space y grows downward, -1 when it grows upward. */
	ScreenSpaceSignY float32
}
