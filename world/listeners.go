package world

// ListenerID identifies a registered tick listener.
type ListenerID uint64

// Listener is called once at the end of every tick.
type Listener func(w *World)

type listenerEntry struct {
	id ListenerID
	fn Listener
}

// listeners keeps registration order; notification follows it.
type listeners struct {
	next    ListenerID
	entries []listenerEntry
}

func (l *listeners) add(fn Listener) ListenerID {
	l.next++
	l.entries = append(l.entries, listenerEntry{id: l.next, fn: fn})
	return l.next
}

func (l *listeners) remove(id ListenerID) bool {
	for i, e := range l.entries {
		if e.id == id {
			l.entries = append(l.entries[:i:i], l.entries[i+1:]...)
			return true
		}
	}
	return false
}

// notify calls every listener registered when notification starts, so
// listeners may add or remove listeners, themselves included.
func (l *listeners) notify(w *World) {
	for _, e := range l.entries {
		e.fn(w)
	}
}

// AddListener registers fn to run after every tick.
func (w *World) AddListener(fn Listener) ListenerID {
	return w.listeners.add(fn)
}

// RemoveListener unregisters a listener. It reports false for unknown IDs.
func (w *World) RemoveListener(id ListenerID) bool {
	return w.listeners.remove(id)
}
