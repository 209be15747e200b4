package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func TestRun(t *testing.T) {
	in := writeFile(t, "in.html", "<div><b>one<p>two</div><font>x</font>")
	config := writeFile(t, "config.yaml", "prune_tags: [font]\n")

	var out bytes.Buffer
	require.NoError(t, run(options{configPath: config, inPath: in}, &out))
	assert.Equal(t, "<div><b>one<p>two</p></b></div>\n", out.String())

	out.Reset()
	require.NoError(t, run(options{inPath: in, find: "b", dump: true}, &out))
	assert.Equal(t, "| <b>\n|   \"one\"\n|   <p>\n|     \"two\"\n", out.String())
}

func TestRunErrors(t *testing.T) {
	var out bytes.Buffer
	err := run(options{inPath: filepath.Join(t.TempDir(), "missing.html")}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open input")

	bad := writeFile(t, "bad.yaml", "cdata_policy: xml\n")
	err = run(options{configPath: bad}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}
