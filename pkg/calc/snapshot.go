package calc

import "strings"

// Snapshot is an immutable, display-ready view of an Engine.
type Snapshot struct {
	// The formatted current operand, or the error label in the error state.
	Current string
	// The formatted previous operand followed by the pending operator,
	// "Error" in the error state, or "".
	Previous string
	// Whether the memory register holds a nonzero value.
	MemoryIndicator bool
	// The error label, or "".
	Error string
}

// Snapshot returns the display-ready view of the engine.
func (e *Engine) Snapshot() Snapshot {
	st := &e.state
	if st.Err != ErrNone {
		return Snapshot{
			Current:         st.Err.String(),
			Previous:        "Error",
			MemoryIndicator: memorySet(st.Memory),
			Error:           st.Err.String(),
		}
	}
	var prev []string
	if st.Op != OpNone {
		prev = append(prev, e.locale.Format(st.Previous), st.Op.String())
	}
	if st.OpLabel != "" {
		prev = append(prev, st.OpLabel)
	}
	return Snapshot{
		Current:         e.locale.Format(st.Current),
		Previous:        strings.Join(prev, " "),
		MemoryIndicator: memorySet(st.Memory),
	}
}

// Observe registers a function to be called with a fresh Snapshot after every
// operation on the engine. It returns a function that unregisters it.
func (e *Engine) Observe(f func(Snapshot)) (stop func()) {
	if e.observers == nil {
		e.observers = make(map[int]func(Snapshot))
	}
	id := e.nextID
	e.nextID++
	e.observers[id] = f
	return func() { delete(e.observers, id) }
}

func (e *Engine) notify() {
	if len(e.observers) == 0 {
		return
	}
	snap := e.Snapshot()
	for id := 0; id < e.nextID; id++ {
		if f, ok := e.observers[id]; ok {
			f(snap)
		}
	}
}
