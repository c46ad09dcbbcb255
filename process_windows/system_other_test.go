//go:build !windows

package process_windows

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"goproc/process"
)

func TestUnsupportedPlatform(t *testing.T) {
	p, ok := OpenByID(process.ProcessID(os.Getpid()))
	assert.False(t, ok)
	assert.Nil(t, p)

	matches, err := FindByName("")
	assert.ErrorIs(t, err, process.ErrUnsupported)
	assert.Empty(t, matches)

	first, ok := FindFirstByName("")
	assert.False(t, ok)
	assert.Nil(t, first)
}
