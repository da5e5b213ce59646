package main

import (
	"bytes"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunConfigShow_NoSettingsPrintsDefaultCutoffs(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	var buf bytes.Buffer
	require.NoError(t, runConfigShow(&buf))
	out := buf.String()

	assert.Contains(t, out, "# No configuration set")
	assert.Contains(t, out, "cutoffs:")
	assert.Contains(t, out, "fdr: 0.25")
	assert.Contains(t, out, "nes: 1")
	assert.Contains(t, out, "pvalue: 0.05")
}

func TestRunConfigShow_MarshalsSettings(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("cutoffs.fdr", 0.1)

	var buf bytes.Buffer
	require.NoError(t, runConfigShow(&buf))

	assert.Contains(t, buf.String(), "fdr: 0.1")
	assert.NotContains(t, buf.String(), "# No configuration set")
}
