package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pipeline.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadPipelineConfig_PartialOverride(t *testing.T) {
	cfg, err := LoadPipelineConfig(writeConfig(t, `{"grid_size": 60, "min_occupancy": 6}`))
	require.NoError(t, err)

	require.Equal(t, 60, cfg.GetGridSize())
	require.Equal(t, 6, cfg.GetMinOccupancy())

	// Everything else keeps defaults.
	xmin, xmax := cfg.GetXRange()
	require.Equal(t, -0.07, xmin)
	require.Equal(t, 0.02, xmax)
	require.Equal(t, 21, cfg.GetBlurKernel())
	require.Equal(t, 2, cfg.GetLABChannel())

	top, bottom, left, right := cfg.GetBorders()
	require.Equal(t, []int{5, 0, 0, 30}, []int{top, bottom, left, right})
}

func TestLoadPipelineConfig_Defaults(t *testing.T) {
	cfg := EmptyPipelineConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, 120, cfg.GetGridSize())
	require.Equal(t, -1, cfg.GetMinOccupancy(), "unset means all views")
	require.Equal(t, 0, cfg.GetWorkers())
}

func TestLoadPipelineConfig_Invalid(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"grid size one", `{"grid_size": 1}`},
		{"negative occupancy", `{"min_occupancy": -1}`},
		{"even blur kernel", `{"blur_kernel": 20}`},
		{"bad lab channel", `{"lab_channel": 3}`},
		{"negative border", `{"border_top": -5}`},
		{"empty x range", `{"x_min": 1, "x_max": 1}`},
		{"inverted z range", `{"z_min": 2, "z_max": -2}`},
		{"not json", `nope`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadPipelineConfig(writeConfig(t, tc.content))
			require.Error(t, err)
		})
	}
}

func TestLoadPipelineConfig_RequiresJSONExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))
	_, err := LoadPipelineConfig(path)
	require.Error(t, err)
}
