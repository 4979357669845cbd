package main

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildVersion(t *testing.T) {
	v := buildVersion()

	assert.Contains(t, v, Version)
	assert.Contains(t, v, "commit "+GitCommit)
	assert.Contains(t, v, "built "+BuildDate)
	// GoVersion is unset outside release builds, so the runtime wins.
	assert.Contains(t, v, runtime.Version())
}
