package engine

// ListenerID identifies a subscription so it can be removed later.
// Zero is never issued.
type ListenerID uint32

type listener[T any] struct {
	id ListenerID
	fn func(T)
}

// EventWithArg delivers one value to every subscriber in subscription order.
type EventWithArg[T any] struct {
	listeners []listener[T]
	nextID    ListenerID
}

// AddListener subscribes callback. A nil callback is ignored and gets ID 0.
func (e *EventWithArg[T]) AddListener(callback func(T)) ListenerID {
	if callback == nil {
		return 0
	}
	e.nextID++
	e.listeners = append(e.listeners, listener[T]{id: e.nextID, fn: callback})
	return e.nextID
}

// RemoveListener drops the subscription with the given ID and reports whether it existed.
func (e *EventWithArg[T]) RemoveListener(id ListenerID) bool {
	for i, l := range e.listeners {
		if l.id == id {
			e.listeners = append(e.listeners[:i:i], e.listeners[i+1:]...)
			return true
		}
	}
	return false
}

func (e *EventWithArg[T]) RemoveAllListeners() {
	e.listeners = nil
}

// Invoke calls the listeners registered when it started. Listeners added or
// removed by a callback take effect on the next Invoke.
func (e *EventWithArg[T]) Invoke(arg T) {
	for _, l := range e.listeners {
		l.fn(arg)
	}
}

func (e *EventWithArg[T]) GetListenerCount() int {
	return len(e.listeners)
}

// Event is an EventWithArg without a payload.
type Event struct {
	inner EventWithArg[struct{}]
}

func (e *Event) AddListener(callback func()) ListenerID {
	if callback == nil {
		return 0
	}
	return e.inner.AddListener(func(struct{}) { callback() })
}

func (e *Event) RemoveListener(id ListenerID) bool { return e.inner.RemoveListener(id) }

func (e *Event) RemoveAllListeners() { e.inner.RemoveAllListeners() }

func (e *Event) Invoke() { e.inner.Invoke(struct{}{}) }

func (e *Event) GetListenerCount() int { return e.inner.GetListenerCount() }
