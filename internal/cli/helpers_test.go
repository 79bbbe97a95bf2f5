package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/nipunchauhan/vendorsum/internal/csvtable"
	testhelpers "github.com/nipunchauhan/vendorsum/internal/testing"
)

// resetFlags restores every package-level flag struct to its zero value.
func resetFlags(t *testing.T) {
	t.Helper()
	globalFlags.verbose = false
	globalFlags.configPath = ""
	globalFlags.logDir = ""
	ingestFlags = ingestFlagValues{}
	summaryFlags = summaryFlagValues{}
	tablesFlags = tablesFlagValues{}
	t.Cleanup(func() {
		globalFlags.verbose = false
		globalFlags.configPath = ""
		globalFlags.logDir = ""
		ingestFlags = ingestFlagValues{}
		summaryFlags = summaryFlagValues{}
		tablesFlags = tablesFlagValues{}
	})
}

// clearStoreEnv unsets the variables that steer store resolution.
func clearStoreEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"VENDORSUM_BACKEND", "VENDORSUM_SQLITE_PATH", "VENDORSUM_CONNECTION_STRING", "DATABASE_URL",
		"PGHOST", "PGPORT", "PGUSER", "PGPASSWORD", "PGDATABASE", "PGSSLMODE",
		"AWS_REGION", "AZURE_TENANT_ID", "AZURE_CLIENT_ID", "AZURE_CLIENT_SECRET",
	} {
		t.Setenv(name, "")
	}
}

// captureOutput redirects the stdout and stderr of cmd into buffers.
func captureOutput(t *testing.T, cmd *cobra.Command) (stdout, stderr *bytes.Buffer) {
	t.Helper()
	stdout, stderr = &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	t.Cleanup(func() {
		cmd.SetOut(nil)
		cmd.SetErr(nil)
	})
	return stdout, stderr
}

// workspace is a temp directory with raw inventory CSVs under data/.
type workspace struct {
	root    string
	dataDir string
	dbPath  string
	logDir  string
	output  string
}

func newWorkspace(t *testing.T) *workspace {
	t.Helper()
	root := t.TempDir()
	ws := &workspace{
		root:    root,
		dataDir: filepath.Join(root, "data"),
		dbPath:  filepath.Join(root, "inventory.db"),
		logDir:  filepath.Join(root, "logs"),
		output:  filepath.Join(root, "out", "summary.csv"),
	}
	require.NoError(t, os.MkdirAll(ws.dataDir, 0755))
	for name, tbl := range testhelpers.InventoryTables(t) {
		f, err := os.Create(filepath.Join(ws.dataDir, name+".csv"))
		require.NoError(t, err)
		require.NoError(t, csvtable.Write(f, tbl))
		require.NoError(t, f.Close())
	}
	return ws
}

// use points the global and store flags of every command at ws.
func (ws *workspace) use() {
	globalFlags.logDir = ws.logDir
	ingestFlags.store.sqlitePath = ws.dbPath
	summaryFlags.store.sqlitePath = ws.dbPath
	summaryFlags.output = ws.output
	tablesFlags.store.sqlitePath = ws.dbPath
}

func (ws *workspace) readLog(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(ws.logDir, name))
	require.NoError(t, err)
	return string(data)
}
