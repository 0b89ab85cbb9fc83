// Package state implements the bit-flagged state machine shared by every
// container: a set of flags with add/remove/has/snapshot operations and an
// observer registry, where nested transitions triggered from inside an
// observer are queued rather than re-entering the lock.
package state

import "sync"

// Flag is a single bit in a container's state set.
type Flag uint32

const (
	Visible Flag = 1 << iota
	Hidden
	Focused
	Maximized
	Destroyed
	Error
	RenderError
	RenderRequested
	UpdateRequested
	FocusRequested
	ShowRequested
	HideRequested
	MaximizeRequested
	RestoreRequested
	DestroyRequested
	EventStreamReady
)

// Observer is called with the flag that was just added or removed. It runs
// outside the machine's lock, but still within the machine's transition:
// any Add/Remove it issues on the same Machine is queued and drained before
// the outermost call returns.
type Observer func(Flag)

// Machine is a bit-set of Flag values with request/grant transition
// observers. The zero value is ready to use.
type Machine struct {
	mu        sync.Mutex
	bits      Flag
	onAdded   []Observer
	onRemoved []Observer
	pending   []func()
	active    bool
}

// New returns a Machine with no flags set.
func New() *Machine { return &Machine{} }

// OnAdded registers an observer fired whenever a flag transitions from unset
// to set.
func (m *Machine) OnAdded(fn Observer) {
	m.mu.Lock()
	m.onAdded = append(m.onAdded, fn)
	m.mu.Unlock()
}

// OnRemoved registers an observer fired whenever a flag transitions from set
// to unset.
func (m *Machine) OnRemoved(fn Observer) {
	m.mu.Lock()
	m.onRemoved = append(m.onRemoved, fn)
	m.mu.Unlock()
}

// Add sets flag, firing onAdded observers if it was not already set.
func (m *Machine) Add(flag Flag) {
	m.run(func() {
		m.mu.Lock()
		if m.bits&flag != 0 {
			m.mu.Unlock()
			return
		}
		m.bits |= flag
		m.mu.Unlock()
		m.fireAdded(flag)
	})
}

// Remove clears flag, firing onRemoved observers if it was set.
func (m *Machine) Remove(flag Flag) {
	m.run(func() {
		m.mu.Lock()
		if m.bits&flag == 0 {
			m.mu.Unlock()
			return
		}
		m.bits &^= flag
		m.mu.Unlock()
		m.fireRemoved(flag)
	})
}

// Has reports whether flag is currently set.
func (m *Machine) Has(flag Flag) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bits&flag != 0
}

// HasAll reports whether every flag in flags is set.
func (m *Machine) HasAll(flags Flag) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bits&flags == flags
}

// HasNone reports whether none of the flags in flags is set.
func (m *Machine) HasNone(flags Flag) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bits&flags == 0
}

// Snapshot atomically reads the full flag set.
func (m *Machine) Snapshot() Flag {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bits
}

// run executes op as the outermost transition if none is already running on
// this machine, otherwise it queues op to run after the current transition
// (and any transitions it queues in turn) finish. This is what lets an
// observer safely call Add/Remove on the same Machine without deadlocking
// or re-entering fire() while already inside it.
func (m *Machine) run(op func()) {
	m.mu.Lock()
	if m.active {
		m.pending = append(m.pending, op)
		m.mu.Unlock()
		return
	}
	m.active = true
	m.mu.Unlock()

	op()

	for {
		m.mu.Lock()
		if len(m.pending) == 0 {
			m.active = false
			m.mu.Unlock()
			return
		}
		next := m.pending[0]
		m.pending = m.pending[1:]
		m.mu.Unlock()
		next()
	}
}

func (m *Machine) fireAdded(flag Flag) {
	m.mu.Lock()
	snapshot := append([]Observer(nil), m.onAdded...)
	m.mu.Unlock()
	for _, obs := range snapshot {
		obs(flag)
	}
}

func (m *Machine) fireRemoved(flag Flag) {
	m.mu.Lock()
	snapshot := append([]Observer(nil), m.onRemoved...)
	m.mu.Unlock()
	for _, obs := range snapshot {
		obs(flag)
	}
}
