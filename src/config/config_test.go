package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"SalaryAnalysis/src/processor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	cfg, dcfg, err := LoadConfig("testdata", "config.json", "dataconfig.json")
	require.NoError(t, err)

	assert.Equal(t, "../data", cfg.DataDir)
	assert.Equal(t, filepath.Join("../data", "salary.csv"), cfg.WagePath())
	assert.Equal(t, filepath.Join("../data", "inflation.csv"), cfg.InflationPath())
	assert.Equal(t, processor.DefaultPeriod, cfg.AnalysisPeriod())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Watch.Enabled)
	assert.Equal(t, 2*time.Second, time.Duration(cfg.Watch.Debounce))
	assert.Equal(t, "@every 1h", cfg.Schedule)

	cols := dcfg.Columns()
	assert.Equal(t, "Год", cols.Year)
	assert.Equal(t, "Всего", cols.Inflation)
	assert.Equal(t, "Образование", cols.Sectors[processor.Education])
	assert.Len(t, cols.Sectors, 4)

	// second call returns the cached instance
	again, _, err := LoadConfig("does-not-exist", "x.json", "y.json")
	require.NoError(t, err)
	assert.Same(t, cfg, again)
}

func TestLoadConfigs_Defaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dataconfig.json"), []byte(`{}`), 0644))

	cfg, dcfg, err := loadConfigs(dir, "config.json", "dataconfig.json")
	require.NoError(t, err)

	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, processor.DefaultPeriod, cfg.AnalysisPeriod())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 500*time.Millisecond, time.Duration(cfg.Watch.Debounce))
	assert.Equal(t, ',', cfg.ReadOptions(dcfg).Delimiter)
	assert.Equal(t, "Год", dcfg.YearColumn)
	assert.Len(t, dcfg.Sectors, 4)
}

func TestLoadConfigs_EnvOverride(t *testing.T) {
	t.Setenv("SALARY_DATA_DIR", "/srv/rosstat")
	t.Setenv("SALARY_WATCH", "false")
	t.Setenv("SALARY_ENCODING", "windows-1251")

	cfg, _, err := loadConfigs("testdata", "config.json", "dataconfig.json")
	require.NoError(t, err)
	assert.Equal(t, "/srv/rosstat", cfg.DataDir)
	assert.False(t, cfg.Watch.Enabled)
	assert.Equal(t, "windows-1251", cfg.Encoding)
}

func TestLoadConfigs_Errors(t *testing.T) {
	_, _, err := loadConfigs("testdata/bad", "config.json", "dataconfig.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse DataConfig")

	_, _, err = loadConfigs("testdata", "missing.json", "dataconfig.json")
	assert.ErrorIs(t, err, os.ErrNotExist)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{"period":{"from":2023,"to":2000}}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dataconfig.json"), []byte(`{"sectors":{"fishing":"Рыболовство"}}`), 0644))
	_, _, err = loadConfigs(dir, "config.json", "dataconfig.json")
	assert.ErrorContains(t, err, "period")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{}`), 0644))
	_, _, err = loadConfigs(dir, "config.json", "dataconfig.json")
	assert.ErrorContains(t, err, "fishing")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "dataconfig.json"), []byte(`{"sectors":{"education":"Образование"}}`), 0644))
	_, _, err = loadConfigs(dir, "config.json", "dataconfig.json")
	assert.ErrorIs(t, err, processor.ErrMissingSector)
	assert.ErrorContains(t, err, "construction")
}

func TestDuration_JSON(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalJSON([]byte(`"1m30s"`)))
	assert.Equal(t, 90*time.Second, time.Duration(d))

	out, err := d.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"1m30s"`, string(out))

	assert.Error(t, d.UnmarshalJSON([]byte(`"soon"`)))
}
