package pyenv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tycore-project/tycore/internal/diag"
)

func TestParseConfigSkipsLinesWithoutEquals(t *testing.T) {
	contents := "# a comment with no equals sign\nhome = /usr/bin\n"
	cfg, err := ParseConfig("pyvenv.cfg", contents)
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin", cfg.BaseExecutableHome)
}

func TestParseConfigEmptyValueIsError(t *testing.T) {
	_, err := ParseConfig("pyvenv.cfg", "home = /usr/bin\nversion =\n")
	require.Error(t, err)
	pe, ok := err.(*diag.PyvenvCfgParseError)
	require.True(t, ok)
	assert.Equal(t, diag.ParseErrEmptyKey, pe.Kind)
}

func TestParseConfigEmptyKeyIsError(t *testing.T) {
	_, err := ParseConfig("pyvenv.cfg", "home = /usr/bin\n = value\n")
	require.Error(t, err)
	pe, ok := err.(*diag.PyvenvCfgParseError)
	require.True(t, ok)
	assert.Equal(t, diag.ParseErrEmptyKey, pe.Kind)
}

func TestParseConfigMissingHomeIsError(t *testing.T) {
	_, err := ParseConfig("pyvenv.cfg", "version = 3.12\n")
	require.Error(t, err)
	pe, ok := err.(*diag.PyvenvCfgParseError)
	require.True(t, ok)
	assert.Equal(t, diag.ParseErrNoHomeKey, pe.Kind)
}

func TestParseConfigRelativeHomeIsError(t *testing.T) {
	_, err := ParseConfig("pyvenv.cfg", "home = relative/path\n")
	require.Error(t, err)
	pe, ok := err.(*diag.PyvenvCfgParseError)
	require.True(t, ok)
	assert.Equal(t, diag.ParseErrInvalidHomeValue, pe.Kind)
}

func TestParseConfigParsesKnownKeys(t *testing.T) {
	contents := "home = /usr/bin\n" +
		"include-system-site-packages = true\n" +
		"version_info = 3.12.1\n" +
		"implementation = CPython\n" +
		"uv = 0.4.0\n" +
		"extends-environment = /opt/base-venv\n"
	cfg, err := ParseConfig("pyvenv.cfg", contents)
	require.NoError(t, err)
	assert.True(t, cfg.IncludeSystemSitePackages)
	assert.Equal(t, "3.12.1", cfg.Version)
	assert.Equal(t, "cpython", cfg.Implementation)
	assert.True(t, cfg.CreatedWithUV)
	assert.Equal(t, "/opt/base-venv", cfg.ParentEnvironment)
}

func TestReadConfigMissingFileReturnsNoPyvenvCfgError(t *testing.T) {
	fs := newFakeFileSystem()
	_, err := ReadConfig(fs, "/venv", diag.OriginCLIFlag)
	require.Error(t, err)
	_, ok := err.(*diag.NoPyvenvCfgFileError)
	assert.True(t, ok)
}

func TestReadConfigParsesFoundFile(t *testing.T) {
	fs := newFakeFileSystem()
	fs.addFile("/venv/pyvenv.cfg", "home = /usr/bin\n")
	cfg, err := ReadConfig(fs, "/venv", diag.OriginCLIFlag)
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin", cfg.BaseExecutableHome)
}
