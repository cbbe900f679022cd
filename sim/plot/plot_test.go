package plot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveHitRate_WritesImage(t *testing.T) {
	samples := []float64{0, 50, 100.0 / 3.0, 25, 40}
	path := filepath.Join(t.TempDir(), "hitrate.png")

	require.NoError(t, SaveHitRate(samples, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0), "plot file should not be empty")
}

func TestSaveHitRate_SingleSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "single.png")
	assert.NoError(t, SaveHitRate([]float64{100}, path))
}

func TestSaveHitRate_EmptySeries(t *testing.T) {
	err := SaveHitRate(nil, filepath.Join(t.TempDir(), "never.png"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no hit-rate samples")
}

func TestSaveHitRate_UnknownExtension(t *testing.T) {
	err := SaveHitRate([]float64{50}, filepath.Join(t.TempDir(), "chart.bogus"))
	assert.Error(t, err)
}
