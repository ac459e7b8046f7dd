package state

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestManagerStateLifecycle(t *testing.T) {
	m := NewManager()

	require.Equal(t, StateNone, m.GetState(100))

	m.SetState(100, StateEventDate)
	require.Equal(t, StateEventDate, m.GetState(100))

	m.SetData(100, "date", "2025-11-24")
	value, ok := m.GetData(100, "date")
	require.True(t, ok)
	require.Equal(t, "2025-11-24", value)

	// Чужой пользователь не видит состояния
	require.Equal(t, StateNone, m.GetState(200))
	_, ok = m.GetData(200, "date")
	require.False(t, ok)

	m.ClearState(100)
	require.Equal(t, StateNone, m.GetState(100))
	_, ok = m.GetData(100, "date")
	require.False(t, ok)
}

func TestManagerSetStateNoneRemovesEntry(t *testing.T) {
	m := NewManager()

	m.SetState(1, StateEventTime)
	m.SetData(1, "start", 600)

	m.SetState(1, StateNone)
	_, ok := m.GetData(1, "start")
	require.False(t, ok)
}

func TestManagerSetDataWithoutState(t *testing.T) {
	m := NewManager()

	m.SetData(5, "key", "value")
	require.Equal(t, StateNone, m.GetState(5))

	value, ok := m.GetData(5, "key")
	require.True(t, ok)
	require.Equal(t, "value", value)
}
