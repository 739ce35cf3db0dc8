// Package observer implements the observer pattern for parser execution:
// react to actions applied, parses finished, and warnings raised during
// CreatePassage without coupling to pkg/pstate or pkg/passage.
//
// # Basic usage
//
//	mgr := observer.NewManager()
//	mgr.Register(observer.NewConsoleObserver())
//	mgr.Notify(ctx, observer.Event{Type: observer.EventActionApplied, PassageID: p.ID})
//
// Manager.Notify fans an event out to every registered observer in its own
// goroutine; a panicking observer is recovered and does not affect the
// others or the parse itself.
//
// # Built-in observers
//
// NoOpObserver discards everything. ConsoleObserver renders each event
// through a Logger (NewDefaultLogger by default, or any caller-supplied
// implementation). pkg/telemetry bridges observer events into OpenTelemetry
// with its own TelemetryObserver, which implements Observer directly, so
// pkg/observer does not depend on it.
package observer
