//go:build !integration

package cache

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_GetSet(t *testing.T) {
	s := NewStore[string](nil)

	_, ok := s.Get("missing")
	assert.False(t, ok, "empty store should miss")

	s.Set("fp1", "value1")
	got, ok := s.Get("fp1")
	require.True(t, ok)
	assert.Equal(t, "value1", got)
	assert.Equal(t, 1, s.Len())
}

func TestStore_IdempotentOverwrite(t *testing.T) {
	s := NewStore[string](nil)
	s.Set("fp", "v")
	s.Set("fp", "v")

	assert.Equal(t, 1, s.Len(), "rewriting a fingerprint must not grow the store")
	got, _ := s.Get("fp")
	assert.Equal(t, "v", got)
}

func TestStore_ShapeCheckTreatsInvalidAsMiss(t *testing.T) {
	s := NewStore[string](func(v string) bool { return v != "" })
	s.Set("fp", "")

	_, ok := s.Get("fp")
	assert.False(t, ok, "an entry failing the shape check should read as a miss")
}

func TestStore_Reset(t *testing.T) {
	s := NewStore[int](nil)
	s.Set("a", 1)
	s.Set("b", 2)
	s.Reset()

	assert.Equal(t, 0, s.Len())
	_, ok := s.Get("a")
	assert.False(t, ok)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := NewStore[int](nil)

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Same fingerprint from every goroutine: writes must be safe
			// and the store must never corrupt.
			s.Set("shared", i)
			s.Get("shared")
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, s.Len())
}

func TestFingerprint_Deterministic(t *testing.T) {
	components := map[string]any{
		"tools":   []string{"spectral", "yamllint"},
		"ruleset": "/etc/ruleset.yaml",
	}

	fp1 := Fingerprint("a: 1\n", components)
	fp2 := Fingerprint("a: 1\n", components)
	assert.Equal(t, fp1, fp2)
	assert.Len(t, fp1, 64, "fingerprint should be hex SHA-256")
}

func TestFingerprint_SensitiveToInputs(t *testing.T) {
	base := map[string]any{"tools": []string{"spectral"}, "ruleset": ""}

	fp := Fingerprint("a: 1\n", base)

	assert.NotEqual(t, fp, Fingerprint("a: 2\n", base),
		"content change must change the fingerprint")
	assert.NotEqual(t, fp, Fingerprint("a: 1\n", map[string]any{"tools": []string{"spectral"}, "ruleset": "custom.yaml"}),
		"configuration change must change the fingerprint")
	assert.NotEqual(t, fp, Fingerprint("a: 1\n", map[string]any{"tools": []string{"yamllint"}, "ruleset": ""}),
		"tool identity change must change the fingerprint")
}
