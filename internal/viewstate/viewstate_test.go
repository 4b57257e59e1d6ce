package viewstate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestState_ZeroValueIsLoading(t *testing.T) {
	var s State[int]
	assert.Equal(t, PhaseLoading, s.Phase())
	assert.True(t, s.IsLoading())
	_, ok := s.Payload()
	assert.False(t, ok)
	assert.Empty(t, s.Message())
}

func TestState_PayloadOnlyWhenReady(t *testing.T) {
	_, ok := Failed[string]("boom").Payload()
	assert.False(t, ok)

	v, ok := Ready("hello").Payload()
	require.True(t, ok)
	assert.Equal(t, "hello", v)
	assert.Empty(t, Ready("hello").Message())
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "Loading", PhaseLoading.String())
	assert.Equal(t, "Ready", PhaseReady.String())
	assert.Equal(t, "Error", PhaseError.String())
	assert.Equal(t, "Unknown", Phase(42).String())
}

func TestFetcher_SuccessTransition(t *testing.T) {
	f := NewFetcher[int]("stats", "Failed to load", nil)
	assert.True(t, f.State().IsLoading())

	gen := f.Begin()
	assert.True(t, f.InFlight())
	assert.True(t, f.Resolve(gen, 7, nil))

	v, ok := f.State().Payload()
	require.True(t, ok)
	assert.Equal(t, 7, v)
	assert.False(t, f.InFlight())
}

func TestFetcher_ErrorTransitionLogsCause(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	f := NewFetcher[int]("stats", "Failed to load dashboard statistics", zap.New(core))

	gen := f.Begin()
	assert.True(t, f.Resolve(gen, 0, errors.New("connection refused")))

	s := f.State()
	assert.Equal(t, PhaseError, s.Phase())
	assert.Equal(t, "Failed to load dashboard statistics", s.Message())
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "connection refused", logs.All()[0].ContextMap()["error"])
}

func TestFetcher_ResolvesExactlyOnce(t *testing.T) {
	f := NewFetcher[int]("stats", "failed", nil)
	gen := f.Begin()
	require.True(t, f.Resolve(gen, 0, errors.New("x")))

	// A duplicate delivery must not flip the error into Ready.
	assert.False(t, f.Resolve(gen, 5, nil))
	assert.Equal(t, PhaseError, f.State().Phase())
}

func TestFetcher_DropsStaleGeneration(t *testing.T) {
	f := NewFetcher[string]("announcements", "failed", nil)
	first := f.Begin()
	second := f.Begin()

	assert.False(t, f.Resolve(first, "old", nil))
	assert.True(t, f.State().IsLoading())

	assert.True(t, f.Resolve(second, "new", nil))
	v, _ := f.State().Payload()
	assert.Equal(t, "new", v)
}

func TestFetcher_BeginResetsToLoading(t *testing.T) {
	f := NewFetcher[string]("announcements", "failed", nil)
	gen := f.Begin()
	f.Resolve(gen, "data", nil)

	f.Begin()
	assert.True(t, f.State().IsLoading())
	_, ok := f.State().Payload()
	assert.False(t, ok)
}

func TestFetcher_FailWithServerMessage(t *testing.T) {
	f := NewFetcher[int]("profile", "Failed to fetch user", nil)
	gen := f.Begin()
	assert.True(t, f.Fail(gen, "User not found", errors.New("404")))
	assert.Equal(t, "User not found", f.State().Message())

	gen = f.Begin()
	assert.True(t, f.Fail(gen, "", nil))
	assert.Equal(t, "Failed to fetch user", f.State().Message())
	assert.False(t, f.Fail(gen, "again", nil))
}

func TestFetcher_AbandonDropsResponse(t *testing.T) {
	f := NewFetcher[string]("profile", "failed", nil)
	gen := f.Begin()
	f.Abandon()

	assert.False(t, f.InFlight())
	assert.False(t, f.Resolve(gen, "late", nil))
	assert.True(t, f.State().IsLoading())
}
