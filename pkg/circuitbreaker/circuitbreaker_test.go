package circuitbreaker

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpensAfterMaxFailures(t *testing.T) {
	cb := New(Settings{Name: "sheets", MaxFailures: 3, Cooldown: time.Minute})

	boom := fmt.Errorf("api unavailable")
	for i := 0; i < 3; i++ {
		err := cb.Execute(func() error { return boom })
		require.ErrorIs(t, err, boom)
	}

	err := cb.Execute(func() error { return nil })
	assert.ErrorIs(t, err, ErrOpen, "calls are rejected without running fn")
}

func TestRecoversAfterCooldown(t *testing.T) {
	cb := New(Settings{Name: "sheets", MaxFailures: 1, Cooldown: 10 * time.Millisecond})

	_ = cb.Execute(func() error { return fmt.Errorf("boom") })
	require.ErrorIs(t, cb.Execute(func() error { return nil }), ErrOpen)

	time.Sleep(20 * time.Millisecond)

	called := false
	err := cb.Execute(func() error { called = true; return nil })
	require.NoError(t, err)
	assert.True(t, called, "half-open probe runs the call")

	// Closed again; failures reset.
	require.NoError(t, cb.Execute(func() error { return nil }))
}

func TestHalfOpenFailureReopens(t *testing.T) {
	cb := New(Settings{Name: "sheets", MaxFailures: 1, Cooldown: 10 * time.Millisecond})

	_ = cb.Execute(func() error { return fmt.Errorf("boom") })
	time.Sleep(20 * time.Millisecond)

	_ = cb.Execute(func() error { return fmt.Errorf("still down") })
	assert.ErrorIs(t, cb.Execute(func() error { return nil }), ErrOpen)
}

func TestSuccessResetsFailureCount(t *testing.T) {
	cb := New(Settings{Name: "sheets", MaxFailures: 2, Cooldown: time.Minute})

	_ = cb.Execute(func() error { return fmt.Errorf("boom") })
	require.NoError(t, cb.Execute(func() error { return nil }))
	_ = cb.Execute(func() error { return fmt.Errorf("boom") })

	// One failure since the last success; still closed.
	assert.NoError(t, cb.Execute(func() error { return nil }))
}
