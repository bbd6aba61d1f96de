package service

import "context"

// ─────────────────────────────────────────────────────────────
// EventEmitter — decouples engine packages from wailsRuntime
// ─────────────────────────────────────────────────────────────

// EventEmitter is an interface for pushing events to the frontend.
// The App struct implements it by delegating to wailsRuntime.EventsEmit.
// The gesture machines, the file watcher and the persistence adapter
// receive this interface instead of a Wails context, which keeps them
// testable with a mock emitter.
type EventEmitter interface {
	Emit(ctx context.Context, event string, data any)
}

// MockEmitter is a test-friendly EventEmitter that records all calls.
type MockEmitter struct {
	Events []EmittedEvent
}

// EmittedEvent holds a single recorded emission for test assertions.
type EmittedEvent struct {
	Event string
	Data  any
}

func (m *MockEmitter) Emit(_ context.Context, event string, data any) {
	m.Events = append(m.Events, EmittedEvent{Event: event, Data: data})
}

// Last returns the most recent emission with the given event name.
func (m *MockEmitter) Last(event string) (EmittedEvent, bool) {
	for i := len(m.Events) - 1; i >= 0; i-- {
		if m.Events[i].Event == event {
			return m.Events[i], true
		}
	}
	return EmittedEvent{}, false
}
