package analysis

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/corrlens-cli/internal/config"
	"github.com/KaramelBytes/corrlens-cli/internal/correlate"
	"github.com/KaramelBytes/corrlens-cli/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "fitness.csv")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

const fitness = "신장,체중,체지방율,메모\n170,65,18,ok\n165,72,25,tired\n180,80,22,ok\n160,78,30,late\n"

func TestRun_DefaultTargetFromPreferred(t *testing.T) {
	req := NewRequest(writeCSV(t, fitness), &config.Global{PreferredTargets: []string{"체지방율"}, TopK: 2, UnitNormalize: true})
	rep, err := Run(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "체지방율", rep.Result.Target)
	assert.Len(t, rep.Result.TopK, 2)
	assert.Len(t, rep.Scatter, 2)
}

func TestRun_FirstNumericWhenNoPreferredMatch(t *testing.T) {
	rep, err := Run(context.Background(), NewRequest(writeCSV(t, fitness), nil))
	require.NoError(t, err)
	assert.Equal(t, "신장", rep.Result.Target)
}

func TestRun_RecoverableConditions(t *testing.T) {
	req := NewRequest(writeCSV(t, fitness), nil)
	req.Target = "메모"
	_, err := Run(context.Background(), req)
	require.Error(t, err)
	assert.True(t, correlate.Recoverable(err))

	_, err = Run(context.Background(), NewRequest(writeCSV(t, "name\nkim\nlee\n"), nil))
	assert.ErrorIs(t, err, correlate.ErrNoNumericColumns)
}

func TestRun_LoadFailureAndCancel(t *testing.T) {
	_, err := Run(context.Background(), NewRequest(filepath.Join(t.TempDir(), "missing.csv"), nil))
	var le *dataset.LoadError
	require.True(t, errors.As(err, &le))
	assert.False(t, correlate.Recoverable(err))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Run(ctx, NewRequest(writeCSV(t, fitness), nil))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestColumns_Profiles(t *testing.T) {
	ds, profiles, err := Columns(context.Background(), writeCSV(t, fitness), dataset.DefaultLoadOptions(), 0)
	require.NoError(t, err)
	assert.Equal(t, 4, ds.Rows)
	require.Len(t, profiles, 4)
	assert.Equal(t, dataset.KindNumeric, profiles[0].Kind)
	assert.Equal(t, dataset.KindCategorical, profiles[3].Kind)
	assert.InDelta(t, 160.0, profiles[0].Min, 1e-9)
}
