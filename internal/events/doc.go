// Package events provides types and interfaces for category lifecycle events.
//
// Services emit an event after every successful mutation without knowing which
// handlers will process it. Handlers run synchronously, in registration order,
// on the emitting goroutine.
//
// The primary components are:
// - CategoryEvent: Records that a category was created, updated or deleted
// - EventHandler: Interface for components that can handle events
// - EventEmitter: Interface for components that can emit events
// - AsyncEventEmitter: Worker-pool EventEmitter that drains its queue on Stop
package events
