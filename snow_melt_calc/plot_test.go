package snow_melt_calc

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavePlots(t *testing.T) {
	r := new_test_recorder()
	dir := t.TempDir()

	paths, err := SavePlots(r, dir)
	require.NoError(t, err)
	require.Len(t, paths, 3)

	for _, p := range paths {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
}
