package version_test

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xiaoshuangLi/react-docgen-props-schema/version"
)

func TestString(t *testing.T) {
	t.Parallel()

	s := version.String()
	assert.Contains(t, s, runtime.Version())
	assert.Contains(t, s, runtime.GOOS+"/"+runtime.GOARCH)
	assert.Contains(t, s, "revision "+version.Revision)

	if version.Version == "" {
		assert.Contains(t, s, "devel")
	}
}
