package version_test

import (
	"runtime"
	"testing"

	"github.com/NeuralTrust/GateFilters/pkg/version"
	"github.com/stretchr/testify/assert"
)

func TestGetInfo(t *testing.T) {
	info := version.GetInfo()
	assert.Equal(t, version.AppName, info.AppName)
	assert.Equal(t, version.Version, info.Version)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)

	fields := info.Fields()
	assert.Equal(t, info.Version, fields["version"])
	assert.Equal(t, info.AppName, fields["app"])
}

func TestVia(t *testing.T) {
	assert.Equal(t, "1.1 "+version.AppName+"/"+version.Version, version.Via())
}
