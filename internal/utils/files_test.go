package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/corrlens-cli/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeWriteFile_CreatesParentDir(t *testing.T) {
	p := filepath.Join(t.TempDir(), "out", "nested", "report.json")
	require.NoError(t, utils.SafeWriteFile(p, []byte("{}")))
	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(b))
	_, err = os.Stat(p + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestPrettyJSON(t *testing.T) {
	b, err := utils.PrettyJSON(map[string]any{"r": nil})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"r\": null\n}", string(b))
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	assert.Equal(t, filepath.Join(home, "data.csv"), utils.ExpandHome("~/data.csv"))
	assert.Equal(t, "rel/data.csv", utils.ExpandHome("rel/data.csv"))
}
