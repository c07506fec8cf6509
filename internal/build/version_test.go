package build

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Not parallel: mutates the package-level Version.
func TestMetadataVersion(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })

	Version = "dev"
	assert.True(t, IsDevBuild())
	assert.Equal(t, "0.0.0-dev", MetadataVersion())

	Version = "1.4.0"
	assert.False(t, IsDevBuild())
	assert.Equal(t, "1.4.0", MetadataVersion())
}
