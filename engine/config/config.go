package config

import (
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/aurora/engine/core"
)

type ShadowSettings struct {
	Enabled bool `toml:"enabled"`
	/** @brief Edge length of the square shadow map, pixels. */
	ShadowMapSize uint32 `toml:"shadow_map_size"`
	/** @brief Cap on shadow-casting spot lights; extras are dropped. */
	MaxSpotShadowMaps uint32 `toml:"max_spot_shadow_maps"`
	/** @brief Cascade count for the main light, 1 or 4. */
	CSMLevel uint32 `toml:"csm_level"`
	/** @brief Fixed-area shadows always render a single cascade viewport. */
	FixedArea bool `toml:"fixed_area"`
}

type BloomSettings struct {
	Enabled bool `toml:"enabled"`
	/** @brief Dual-filter downsample/upsample step count. */
	Iterations uint32  `toml:"iterations"`
	Threshold  float32 `toml:"threshold"`
	Intensity  float32 `toml:"intensity"`
}

type DepthOfFieldSettings struct {
	Enabled       bool    `toml:"enabled"`
	FocusDistance float32 `toml:"focus_distance"`
	FocusRange    float32 `toml:"focus_range"`
	BokehRadius   float32 `toml:"bokeh_radius"`
}

type FXAASettings struct {
	Enabled bool `toml:"enabled"`
}

/**
 * @brief Settings that steer pass composition. One instance acts as the
 * pipeline default; cameras may carry their own override instance.
 */
type PipelineSettings struct {
	LogLevel string `toml:"log_level"`

	/** @brief Request HDR rendering. Honored only when the device supports float output. */
	HDR bool `toml:"hdr"`

	EnablePostProcess bool `toml:"enable_post_process"`

	EnableShadingScale bool    `toml:"enable_shading_scale"`
	ShadingScale       float32 `toml:"shading_scale"`

	Profiler bool `toml:"profiler"`

	Shadow       ShadowSettings       `toml:"shadow"`
	Bloom        BloomSettings        `toml:"bloom"`
	DepthOfField DepthOfFieldSettings `toml:"depth_of_field"`
	FXAA         FXAASettings         `toml:"fxaa"`
}

func Default() *PipelineSettings {
	return &PipelineSettings{
		LogLevel:           "info",
		HDR:                true,
		EnablePostProcess:  true,
		EnableShadingScale: false,
		ShadingScale:       1.0,
		Profiler:           false,
		Shadow: ShadowSettings{
			Enabled:           true,
			ShadowMapSize:     1024,
			MaxSpotShadowMaps: 1,
			CSMLevel:          4,
			FixedArea:         false,
		},
		Bloom: BloomSettings{
			Enabled:    true,
			Iterations: 3,
			Threshold:  0.8,
			Intensity:  1.0,
		},
		DepthOfField: DepthOfFieldSettings{
			Enabled:       false,
			FocusDistance: 10.0,
			FocusRange:    5.0,
			BokehRadius:   2.0,
		},
		FXAA: FXAASettings{Enabled: false},
	}
}

// Load decodes a settings file on top of the defaults, so a partial file
// only overrides what it names.
func Load(path string) (*PipelineSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pipeline settings '%s': %w", path, err)
	}
	settings := Default()
	if err := toml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to decode pipeline settings '%s': %w", path, err)
	}
	if settings.ShadingScale <= 0 {
		core.LogWarn("shading_scale must be > 0, falling back to 1.0")
		settings.ShadingScale = 1.0
	}
	return settings, nil
}

// Watch re-decodes the file whenever it is written and fires
// EVENT_CODE_SETTINGS_CHANGED with the fresh settings. The returned stop
// function closes the watcher.
func Watch(path string) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		for {
			select {
			case e, ok := <-watcher.Events:
				if !ok {
					return
				}
				if e.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				settings, err := Load(path)
				if err != nil {
					core.LogError("settings reload failed: %s", err.Error())
					continue
				}
				core.LogInfo("pipeline settings reloaded from %s", path)
				core.EventFire(core.EventContext{
					Type: core.EVENT_CODE_SETTINGS_CHANGED,
					Data: settings,
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				core.LogError(err.Error())
			case <-done:
				watcher.Close()
				return
			}
		}
	}()

	return func() { close(done) }, nil
}
