package main

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghettovoice/uribuilder/internal/errorutil"
	"github.com/ghettovoice/uribuilder/internal/log"
	"github.com/ghettovoice/uribuilder/uri"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "uritool.yml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func TestReadConfig(t *testing.T) {
	t.Parallel()

	cfg, err := readConfig("")
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)

	path := writeConfig(t, `
query_param_mode: comma_separated
encode_slash: false
strict_host: true
log:
  format: json
  level: debug
`)
	cfg, err = readConfig(path)
	require.NoError(t, err)
	assert.Equal(t, config{
		QueryParamMode: uri.CommaSeparated,
		Encode:         true,
		EncodeSlash:    false,
		StrictHost:     true,
		Log:            logConfig{Format: log.FormatJSON, Level: "debug"},
	}, cfg)
}

func TestReadConfig_Errors(t *testing.T) {
	t.Parallel()

	_, err := readConfig(filepath.Join(t.TempDir(), "missing.yml"))
	require.ErrorIs(t, err, fs.ErrNotExist)

	_, err = readConfig(writeConfig(t, "query_param_mode: sideways\n"))
	require.ErrorIs(t, err, errorutil.ErrInvalidArgument)

	_, err = readConfig(writeConfig(t, "encode: [\n"))
	require.ErrorIs(t, err, errorutil.ErrInvalidArgument)
}

func TestRoot_ConfigFile(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "query_param_mode: comma_separated\n")
	out, _, err := execute(t, "--config", path, "build", "/s", "-q", "k=1", "-q", "k=2")
	require.NoError(t, err)
	assert.Equal(t, "/s?k=1,2\n", out)

	out, _, err = execute(t, "--config", path, "--query-param-mode", "array-pairs", "build", "/s", "-q", "k=1", "-q", "k=2")
	require.NoError(t, err)
	assert.Equal(t, "/s?k[]=1&k[]=2\n", out)
}

func TestRoot_Logging(t *testing.T) {
	t.Parallel()

	out, errOut, err := execute(t, "--log-format", "json", "--log-level", "debug", "build", "/u/{id}", "7")
	require.NoError(t, err)
	assert.Equal(t, "/u/7\n", out)
	assert.Contains(t, errOut, `"msg":"URI built"`)
	assert.Contains(t, errOut, `"uri":"/u/7"`)
	assert.Contains(t, errOut, `"msg":"config loaded"`)
	assert.Contains(t, errOut, `QueryParamMode:multi_pairs`)

	_, errOut, err = execute(t, "build", "/u/{id}", "7")
	require.NoError(t, err)
	assert.Empty(t, errOut)

	_, _, err = execute(t, "--log-format", "xml", "build", "/u")
	require.ErrorIs(t, err, errorutil.ErrInvalidArgument)

	_, _, err = execute(t, "--log-level", "loud", "build", "/u")
	require.ErrorIs(t, err, errorutil.ErrInvalidArgument)
}
