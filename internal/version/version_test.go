package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultBuildInfo(t *testing.T) {
	// Without ldflags the dev defaults apply
	assert.Equal(t, "dev", Version)
	assert.Equal(t, "dev", Commit)
	assert.Equal(t, "unknown", BuildTime)
}
