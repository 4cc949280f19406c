package ledger

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

func TestExportPlain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projections.csv")
	require.NoError(t, AppendCSV(path, []string{"run_id"}, map[string]string{"run_id": "A"}))

	var buf bytes.Buffer
	require.NoError(t, Export(path, &buf, false))
	assert.Equal(t, "run_id\nA\n", buf.String())
}

func TestExportCompressed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projections.csv")
	require.NoError(t, AppendCSV(path, []string{"run_id"}, map[string]string{"run_id": "A"}))

	var buf bytes.Buffer
	require.NoError(t, Export(path, &buf, true))

	r, err := xz.NewReader(&buf)
	require.NoError(t, err)
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "run_id\nA\n", string(data))
}

func TestExportMissingLedger(t *testing.T) {
	var buf bytes.Buffer
	err := Export(filepath.Join(t.TempDir(), "missing.csv"), &buf, false)
	assert.Error(t, err)
}
