package profiling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStart(t *testing.T) {
	p, err := Start("", t.TempDir())
	require.NoError(t, err)
	p.Stop()

	_, err = Start("gpu", t.TempDir())
	assert.ErrorContains(t, err, `unknown profile mode "gpu"`)

	dir := t.TempDir()
	p, err = Start("mem", dir)
	require.NoError(t, err)
	p.Stop()
	assert.FileExists(t, dir+"/mem.pprof")
}
