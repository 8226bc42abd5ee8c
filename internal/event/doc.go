// Package event carries scheduler status to observers inside one process.
//
// A [Bus] dispatches events synchronously to handlers registered per event
// type or for all types. A [Queue] sits in front of a Bus and makes publishing
// non-blocking: events are appended to an unbounded FIFO and delivered by a
// single goroutine, so a slow observer never stalls the click loop.
//
// Event types follow the "autotap.action" naming convention:
//   - autotap.started
//   - autotap.stopped
//   - autotap.count_updated
//   - autotap.points_changed
//
// Basic usage:
//
//	bus := event.NewBus(logger)
//	queue := event.NewQueue(bus)
//	defer queue.Close()
//
//	bus.Subscribe(event.TypeCountUpdated, func(e event.Event) {
//	    fmt.Println(e.(event.CountUpdatedEvent).Count)
//	})
//	queue.Publish(event.NewStartedEvent(1, 3))
package event
