package core

import "sync"

type SystemEventCode int

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT SystemEventCode = 0x01

	// Resized/resolution changed from the OS.
	// Data is a *WindowResizeEvent.
	EVENT_CODE_RESIZED SystemEventCode = 0x02

	// Pipeline settings file was edited and re-decoded.
	// Data is the new settings object.
	EVENT_CODE_SETTINGS_CHANGED SystemEventCode = 0x03

	// The default render targets must be recreated (e.g. swapchain rebuild).
	EVENT_CODE_DEFAULT_RENDERTARGET_REFRESH_REQUIRED SystemEventCode = 0x04

	MAX_EVENT_CODE SystemEventCode = 0xFF
)

type WindowResizeEvent struct {
	Width  uint32
	Height uint32
}

type EventContext struct {
	Type SystemEventCode
	Data interface{}
}

type FnOnEvent func(context EventContext)

type eventSystemState struct {
	registered map[SystemEventCode][]FnOnEvent
}

var onceEvent sync.Once
var eventState *eventSystemState

func getEventState() *eventSystemState {
	onceEvent.Do(func() {
		eventState = &eventSystemState{
			registered: make(map[SystemEventCode][]FnOnEvent),
		}
	})
	return eventState
}

// EventRegister adds a listener for the given code. Listeners are invoked
// synchronously, in registration order, on the goroutine that fires.
func EventRegister(code SystemEventCode, onEvent FnOnEvent) {
	s := getEventState()
	s.registered[code] = append(s.registered[code], onEvent)
}

func EventFire(context EventContext) {
	s := getEventState()
	for _, cb := range s.registered[context.Type] {
		cb(context)
	}
}

func EventShutdown() {
	s := getEventState()
	for code := range s.registered {
		delete(s.registered, code)
	}
}
