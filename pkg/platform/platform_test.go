package platform

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultSystemsIsExhaustiveAndDuplicateFree(t *testing.T) {
	systems := DefaultSystems()
	require.Len(t, systems, 4)

	seen := make(map[System]struct{})
	for _, s := range systems {
		_, dup := seen[s]
		require.False(t, dup, "duplicate system %s", s)
		seen[s] = struct{}{}
		require.True(t, s.IsValid())
	}

	require.Contains(t, systems, SystemX8664Linux)
	require.Contains(t, systems, SystemAarch64Linux)
	require.Contains(t, systems, SystemX8664Darwin)
	require.Contains(t, systems, SystemAarch64Darwin)
}

func TestDefaultSystemsReturnsACopy(t *testing.T) {
	first := DefaultSystems()
	first[0] = System("mutated")

	second := DefaultSystems()
	require.Equal(t, SystemX8664Linux, second[0])
}

func TestIsValidRejectsUnknownSystems(t *testing.T) {
	require.False(t, System("riscv64-linux").IsValid())
	require.False(t, System("").IsValid())
	require.False(t, System("x86_64").IsValid())
}

func TestSystemHalves(t *testing.T) {
	tests := []struct {
		system System
		arch   string
		os     string
	}{
		{SystemX8664Linux, "x86_64", "linux"},
		{SystemAarch64Darwin, "aarch64", "darwin"},
		{System("bogus"), "", ""},
	}

	for _, tt := range tests {
		require.Equal(t, tt.arch, tt.system.Arch())
		require.Equal(t, tt.os, tt.system.OS())
	}
}

func TestDetectReturnsAMemberOfTheDefaultSet(t *testing.T) {
	system, err := Detect()
	if err != nil {
		t.Skipf("host platform not supported: %v", err)
	}
	require.True(t, system.IsValid())
}
