package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/aurora/engine/core"
	"github.com/spaghettifunk/aurora/engine/renderer/metadata"
)

// Materials the pass composer needs before it can build any post-process
// pass. Until all of them are registered, Setup skips the frame.
var requiredMaterials = []string{"tonemap", "dof", "bloom", "fxaa"}

type materialConfig struct {
	Name       string                 `toml:"name"`
	PassCount  int                    `toml:"pass_count"`
	Properties map[string]interface{} `toml:"properties"`
}

/**
 * @brief Loads and hot-reloads the shared post-process materials. Loading is
 * asynchronous with respect to the frame loop: the pipeline polls Ready()
 * and composes nothing until the required set is present.
 */
type MaterialManager struct {
	mutex     sync.RWMutex
	materials map[string]*metadata.Material

	fsnotify *fsnotify.Watcher
	done     chan struct{}
	isClosed bool
}

func NewMaterialManager() (*MaterialManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &MaterialManager{
		materials: make(map[string]*metadata.Material),
		fsnotify:  fsWatch,
		done:      make(chan struct{}),
	}, nil
}

// Initialize scans the directory for .mat files, registers them, and starts
// watching for edits.
func (mm *MaterialManager) Initialize(materialsDir string) error {
	entries, err := os.ReadDir(materialsDir)
	if err != nil {
		return fmt.Errorf("failed to scan materials dir '%s': %w", materialsDir, err)
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".mat" {
			continue
		}
		if err := mm.loadFile(filepath.Join(materialsDir, e.Name())); err != nil {
			core.LogError(err.Error())
		}
	}

	if err := mm.fsnotify.Add(materialsDir); err != nil {
		return err
	}
	go mm.start()
	return nil
}

func (mm *MaterialManager) Shutdown() {
	if mm.isClosed {
		return
	}
	mm.isClosed = true
	close(mm.done)
}

// Ready reports whether every material required by the post-process chain
// has been registered.
func (mm *MaterialManager) Ready() bool {
	mm.mutex.RLock()
	defer mm.mutex.RUnlock()
	for _, name := range requiredMaterials {
		if _, ok := mm.materials[name]; !ok {
			return false
		}
	}
	return true
}

func (mm *MaterialManager) Get(name string) *metadata.Material {
	mm.mutex.RLock()
	defer mm.mutex.RUnlock()
	return mm.materials[name]
}

// Register inserts a material directly, bypassing the filesystem. Used by
// hosts that build materials in code.
func (mm *MaterialManager) Register(m *metadata.Material) {
	mm.mutex.Lock()
	defer mm.mutex.Unlock()
	mm.materials[m.Name] = m
}

func (mm *MaterialManager) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read material '%s': %w", path, err)
	}
	var cfg materialConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("failed to decode material '%s': %w", path, err)
	}
	if cfg.Name == "" {
		return fmt.Errorf("material '%s' has no name", path)
	}
	if cfg.PassCount < 1 {
		cfg.PassCount = 1
	}

	material := metadata.NewMaterial(uuid.New().String(), cfg.Name, cfg.PassCount)
	for key, value := range cfg.Properties {
		material.SetProperty(key, value)
	}

	mm.mutex.Lock()
	mm.materials[cfg.Name] = material
	mm.mutex.Unlock()

	core.LogDebug("material '%s' loaded from %s", cfg.Name, path)
	return nil
}

func (mm *MaterialManager) start() {
	for {
		select {
		case e, ok := <-mm.fsnotify.Events:
			if !ok {
				return
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if filepath.Ext(e.Name) != ".mat" {
				continue
			}
			if err := mm.loadFile(e.Name); err != nil {
				core.LogError(err.Error())
			}
		case err, ok := <-mm.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError(err.Error())
		case <-mm.done:
			mm.fsnotify.Close()
			return
		}
	}
}
