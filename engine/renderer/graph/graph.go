package graph

import (
	"fmt"

	"github.com/spaghettifunk/aurora/engine/math"
	"github.com/spaghettifunk/aurora/engine/renderer/metadata"
	"github.com/spaghettifunk/aurora/engine/scene"
)

/**
 * @brief The declarative frame graph. The planner records passes into it in
 * submission order; the external execution engine compiles the records into
 * GPU commands, barriers and resource lifetimes. Resource declarations
 * survive Reset (they change only on resize), pass records do not.
 */
type Graph struct {
	resources map[string]metadata.ResourceDesc
	/** @brief Recorded passes for the current frame, in submission order. */
	Passes []*PassDesc
}

type AttachmentDesc struct {
	Name         string
	LoadOp       metadata.LoadOp
	StoreOp      metadata.StoreOp
	ClearColor   math.Vec4
	ClearDepth   float32
	ClearStencil uint32
}

type TextureBinding struct {
	Name string
	Slot uint32
}

type PassDesc struct {
	Name   string
	Layout string
	Width  uint32
	Height uint32
	/** @brief True when the pass renders into the presentable window target. */
	Present bool

	ColorTargets []AttachmentDesc
	DepthStencil *AttachmentDesc
	Inputs       []TextureBinding
	Params       map[string]math.Vec4
	Viewport     *metadata.Viewport
	Queues       []*QueueDesc
}

type SceneDesc struct {
	Camera *scene.Camera
	Flags  metadata.SceneFlags
	Light  scene.Light
}

type QuadDesc struct {
	Material *metadata.Material
	/** @brief Technique pass index within the material's effect. */
	Technique int
	/** @brief Camera quads inherit the camera projection instead of covering the target. */
	CameraQuad bool
}

type LightFrustumDesc struct {
	Light        scene.Light
	CascadeLevel uint32
}

type QueueDesc struct {
	Name string
	Hint metadata.QueueHint

	Scenes       []SceneDesc
	Quads        []QuadDesc
	LightFrustum *LightFrustumDesc
	Viewport     *metadata.Viewport
}

func New() *Graph {
	return &Graph{
		resources: make(map[string]metadata.ResourceDesc),
	}
}

// Reset drops the recorded passes, keeping resource declarations. Called by
// the host at the start of every frame's graph-construction phase.
func (g *Graph) Reset() {
	g.Passes = g.Passes[:0]
}

// DeclareResource registers (or re-registers, after a resize) backing
// storage for a named resource. Declaring a resource no pass ends up using
// in a given frame is valid.
func (g *Graph) DeclareResource(desc metadata.ResourceDesc) {
	g.resources[desc.Name] = desc
}

func (g *Graph) Resource(name string) (metadata.ResourceDesc, bool) {
	desc, ok := g.resources[name]
	return desc, ok
}

// AddRenderPass opens an off-screen pass. Width and height fix its viewport
// space.
func (g *Graph) AddRenderPass(name string, width, height uint32, layout string) *PassBuilder {
	return g.addPass(name, width, height, layout, false)
}

// AddRenderWindow opens a pass whose color target is the presentable window
// surface.
func (g *Graph) AddRenderWindow(name string, width, height uint32, layout string) *PassBuilder {
	return g.addPass(name, width, height, layout, true)
}

func (g *Graph) addPass(name string, width, height uint32, layout string, present bool) *PassBuilder {
	pass := &PassDesc{
		Name:    name,
		Layout:  layout,
		Width:   width,
		Height:  height,
		Present: present,
	}
	g.Passes = append(g.Passes, pass)
	return &PassBuilder{graph: g, pass: pass}
}

/**
 * @brief Validate asserts the producer-before-consumer invariant: every
 * texture a pass reads must have been declared by the resource planner or
 * written as an attachment by a strictly earlier pass this frame.
 */
func (g *Graph) Validate() error {
	written := make(map[string]bool, len(g.resources))
	for name := range g.resources {
		written[name] = true
	}
	for i, pass := range g.Passes {
		for _, in := range pass.Inputs {
			if !written[in.Name] {
				return fmt.Errorf("pass %d '%s' reads '%s' before any declaration or producer", i, pass.Name, in.Name)
			}
		}
		for _, rt := range pass.ColorTargets {
			written[rt.Name] = true
		}
		if pass.DepthStencil != nil {
			written[pass.DepthStencil.Name] = true
		}
	}
	return nil
}

/** @brief Builds one pass record. All methods return the builder for chaining. */
type PassBuilder struct {
	graph *Graph
	pass  *PassDesc
}

func (pb *PassBuilder) Desc() *PassDesc { return pb.pass }

func (pb *PassBuilder) AddRenderTarget(name string, load metadata.LoadOp, store metadata.StoreOp, clearColor math.Vec4) *PassBuilder {
	pb.pass.ColorTargets = append(pb.pass.ColorTargets, AttachmentDesc{
		Name:       name,
		LoadOp:     load,
		StoreOp:    store,
		ClearColor: clearColor,
	})
	return pb
}

func (pb *PassBuilder) AddDepthStencil(name string, load metadata.LoadOp, store metadata.StoreOp, clearDepth float32, clearStencil uint32) *PassBuilder {
	pb.pass.DepthStencil = &AttachmentDesc{
		Name:         name,
		LoadOp:       load,
		StoreOp:      store,
		ClearDepth:   clearDepth,
		ClearStencil: clearStencil,
	}
	return pb
}

// AddTexture binds a previously produced resource as a shader input. Binding
// the same slot twice keeps only the last binding, matching how the shared
// mobile spot-shadow slot behaves.
func (pb *PassBuilder) AddTexture(name string, slot uint32) *PassBuilder {
	for i := range pb.pass.Inputs {
		if pb.pass.Inputs[i].Slot == slot {
			pb.pass.Inputs[i].Name = name
			return pb
		}
	}
	pb.pass.Inputs = append(pb.pass.Inputs, TextureBinding{Name: name, Slot: slot})
	return pb
}

func (pb *PassBuilder) SetViewport(vp metadata.Viewport) *PassBuilder {
	v := vp
	pb.pass.Viewport = &v
	return pb
}

// SetVec4 injects a pass-scoped shader parameter by conventional key.
func (pb *PassBuilder) SetVec4(key string, value math.Vec4) *PassBuilder {
	if pb.pass.Params == nil {
		pb.pass.Params = make(map[string]math.Vec4)
	}
	pb.pass.Params[key] = value
	return pb
}

// AddQueue opens a draw queue on this pass. The hint governs downstream
// sorting; the optional name identifies the queue's shader phase.
func (pb *PassBuilder) AddQueue(hint metadata.QueueHint, name string) *QueueBuilder {
	q := &QueueDesc{Name: name, Hint: hint}
	pb.pass.Queues = append(pb.pass.Queues, q)
	return &QueueBuilder{queue: q}
}

type QueueBuilder struct {
	queue *QueueDesc
}

func (qb *QueueBuilder) Desc() *QueueDesc { return qb.queue }

// AddScene enqueues scene geometry selected by flags, lit by the given light
// (nil for unlit/shadow-caster queues).
func (qb *QueueBuilder) AddScene(camera *scene.Camera, flags metadata.SceneFlags, light scene.Light) *QueueBuilder {
	qb.queue.Scenes = append(qb.queue.Scenes, SceneDesc{Camera: camera, Flags: flags, Light: light})
	return qb
}

func (qb *QueueBuilder) AddFullscreenQuad(material *metadata.Material, technique int) *QueueBuilder {
	qb.queue.Quads = append(qb.queue.Quads, QuadDesc{Material: material, Technique: technique})
	return qb
}

func (qb *QueueBuilder) AddCameraQuad(material *metadata.Material, technique int) *QueueBuilder {
	qb.queue.Quads = append(qb.queue.Quads, QuadDesc{Material: material, Technique: technique, CameraQuad: true})
	return qb
}

// UseLightFrustum culls and projects this queue against the light's frustum
// instead of the camera's; cascadeLevel selects the CSM slice.
func (qb *QueueBuilder) UseLightFrustum(light scene.Light, cascadeLevel uint32) *QueueBuilder {
	qb.queue.LightFrustum = &LightFrustumDesc{Light: light, CascadeLevel: cascadeLevel}
	return qb
}

func (qb *QueueBuilder) SetViewport(vp metadata.Viewport) *QueueBuilder {
	v := vp
	qb.queue.Viewport = &v
	return qb
}
