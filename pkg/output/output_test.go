package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrinter_PlainWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	p.Success("service %s started", "taxi-tracker")
	p.Warn("nginx config invalid")
	p.Info("copying %d files", 9)
	p.Error("apt-get failed")

	assert.Equal(t,
		"[OK] service taxi-tracker started\n"+
			"[WARN] nginx config invalid\n"+
			"[INFO] copying 9 files\n"+
			"[FAIL] apt-get failed\n",
		buf.String())
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestTable_Render(t *testing.T) {
	var buf bytes.Buffer
	err := NewTableTo(&buf).
		WithHeaders("RUN", "OUTCOME").
		AddRow("a1b2", "success").
		AddRow("c3d4").
		Render()
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "RUN"))
	assert.Contains(t, lines[1], "---")
	assert.Contains(t, lines[2], "success")
	assert.True(t, strings.HasPrefix(lines[3], "c3d4"))
}

func TestKeyValue(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, KeyValue(&buf, [][2]string{{"Direct", "http://10.0.0.5:5000"}, {"Proxy", "http://10.0.0.5/"}}))
	assert.Contains(t, buf.String(), "Direct:")
	assert.Contains(t, buf.String(), "http://10.0.0.5/")
	assert.NotContains(t, buf.String(), "---")
}
