package input

import "log/slog"

// Hook consumes a raw event. Returning true marks the event as handled and
// stops it from reaching hooks registered later for the same kind.
type Hook func(Event) bool

// HookID identifies a registered hook for removal.
type HookID uint64

type hookEntry struct {
	id HookID
	fn Hook
}

// Source fans raw events out to hooks. It is not safe for concurrent use;
// producers on other goroutines post through a Queue.
type Source struct {
	hooks  map[Kind][]hookEntry
	nextID HookID
	log    *slog.Logger
}

// NewSource creates an empty event source. A nil logger discards output.
func NewSource(log *slog.Logger) *Source {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Source{
		hooks: make(map[Kind][]hookEntry),
		log:   log,
	}
}

// AddHook registers fn for events of the given kind.
func (s *Source) AddHook(kind Kind, fn Hook) HookID {
	s.nextID++
	id := s.nextID
	s.hooks[kind] = append(s.hooks[kind], hookEntry{id: id, fn: fn})
	s.log.Debug("input hook added", "kind", kind, "id", id)
	return id
}

// RemoveHook unregisters a hook. It reports whether the hook was present.
func (s *Source) RemoveHook(id HookID) bool {
	for kind, entries := range s.hooks {
		for i, e := range entries {
			if e.id != id {
				continue
			}
			s.hooks[kind] = append(entries[:i:i], entries[i+1:]...)
			if len(s.hooks[kind]) == 0 {
				delete(s.hooks, kind)
			}
			s.log.Debug("input hook removed", "kind", kind, "id", id)
			return true
		}
	}
	return false
}

// HookCount returns the number of hooks registered for kind.
func (s *Source) HookCount(kind Kind) int {
	return len(s.hooks[kind])
}

// Emit delivers ev to the hooks registered for its kind, in registration
// order, until one of them handles it. It reports whether the event was
// handled.
func (s *Source) Emit(ev Event) bool {
	for _, e := range s.hooks[ev.Kind] {
		if e.fn(ev) {
			return true
		}
	}
	return false
}
