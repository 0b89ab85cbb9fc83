package state

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddSetsFlagAndFiresObserver(t *testing.T) {
	m := New()
	var got Flag
	m.OnAdded(func(f Flag) { got = f })

	m.Add(Visible)

	require.True(t, m.Has(Visible))
	require.Equal(t, Visible, got)
}

func TestAddIsIdempotent(t *testing.T) {
	m := New()
	fired := 0
	m.OnAdded(func(Flag) { fired++ })

	m.Add(Visible)
	m.Add(Visible)

	require.Equal(t, 1, fired)
}

func TestRemoveClearsFlagAndFiresObserver(t *testing.T) {
	m := New()
	m.Add(Focused)
	removed := false
	m.OnRemoved(func(f Flag) {
		if f == Focused {
			removed = true
		}
	})

	m.Remove(Focused)

	require.False(t, m.Has(Focused))
	require.True(t, removed)
}

func TestHasAllAndHasNone(t *testing.T) {
	m := New()
	m.Add(Visible)

	require.True(t, m.HasAll(Visible))
	require.False(t, m.HasAll(Visible|Focused))
	require.True(t, m.HasNone(Hidden | Destroyed))
}

func TestNestedTransitionIsQueuedNotReentrant(t *testing.T) {
	m := New()
	var order []string

	m.OnAdded(func(f Flag) {
		if f == ShowRequested {
			order = append(order, "show-observer-start")
			// A handler reacting to SHOW_REQUESTED clearing itself and
			// requesting FOCUS must not re-enter Add/Remove synchronously.
			m.Remove(ShowRequested)
			m.Add(FocusRequested)
			order = append(order, "show-observer-end")
		}
		if f == FocusRequested {
			order = append(order, "focus-observer")
		}
	})

	m.Add(ShowRequested)

	require.Equal(t, []string{"show-observer-start", "show-observer-end", "focus-observer"}, order)
	require.False(t, m.Has(ShowRequested))
	require.True(t, m.Has(FocusRequested))
}

func TestSnapshotReflectsAllSetFlags(t *testing.T) {
	m := New()
	m.Add(Visible)
	m.Add(Focused)

	require.Equal(t, Visible|Focused, m.Snapshot())
}
