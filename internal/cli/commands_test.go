package cli

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nipunchauhan/vendorsum/pkg/vendorsum"
)

var (
	ingestTiming  = regexp.MustCompile(`Ingest finished\. Total execution time: \d+\.\d{2} minutes\.`)
	summaryTiming = regexp.MustCompile(`Summary finished\. Total execution time: \d+\.\d{2} minutes\.`)
)

func TestIngestThenSummary(t *testing.T) {
	resetFlags(t)
	clearStoreEnv(t)
	ws := newWorkspace(t)
	ws.use()

	_, ingestErr := captureOutput(t, ingestCmd)
	require.NoError(t, runIngest(ingestCmd, []string{ws.dataDir}))

	assert.Regexp(t, ingestTiming, ingestErr.String())
	assert.Contains(t, ingestErr.String(), "Ingesting Purchases.csv in db")
	assert.NotContains(t, ingestErr.String(), "run_id", "run_id belongs in the log file only")

	ingestLog := ws.readLog(t, vendorsum.IngestLogFile)
	for _, name := range []string{"Purchases.csv", "Sales.csv", "purchase_prices.csv", "vendor_invoice.csv"} {
		assert.Contains(t, ingestLog, "Ingesting "+name+" in db")
	}
	assert.Contains(t, ingestLog, "run_id")
	assert.Regexp(t, ingestTiming, ingestLog)

	_, summaryErr := captureOutput(t, summaryCmd)
	require.NoError(t, runSummary(summaryCmd, nil))
	assert.Regexp(t, summaryTiming, summaryErr.String())

	raw, err := os.ReadFile(ws.output)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	require.Len(t, lines, 5, "header plus four vendor/brand rows")
	assert.True(t, strings.HasPrefix(lines[0], "VendorNumber,VendorName,Brand,Description,"), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "1,ACME SPIRITS,101,Gin 750ml,"), lines[1])

	summaryLog := ws.readLog(t, vendorsum.SummaryLogFile)
	assert.Contains(t, summaryLog, "Summary table created with 4 rows.")
	assert.Contains(t, summaryLog, "Data cleaning complete.")
}

func TestLogFilesAppendAcrossRuns(t *testing.T) {
	resetFlags(t)
	clearStoreEnv(t)
	ws := newWorkspace(t)
	ws.use()
	captureOutput(t, ingestCmd)

	require.NoError(t, runIngest(ingestCmd, []string{ws.dataDir}))
	require.NoError(t, runIngest(ingestCmd, []string{ws.dataDir}))

	log := ws.readLog(t, vendorsum.IngestLogFile)
	assert.Len(t, ingestTiming.FindAllString(log, -1), 2)
}

func TestSummary_MissingTables(t *testing.T) {
	resetFlags(t)
	clearStoreEnv(t)
	ws := newWorkspace(t)
	ws.use()

	_, stderr := captureOutput(t, summaryCmd)
	err := runSummary(summaryCmd, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, vendorsum.ErrMissingTable), "got %v", err)
	assert.Equal(t, vendorsum.ExitMissingTable, vendorsum.ExitCodeForError(err))

	assert.Regexp(t, summaryTiming, stderr.String(), "timing is reported on failure too")
	assert.Contains(t, ws.readLog(t, vendorsum.SummaryLogFile), "An error occurred:")
	_, statErr := os.Stat(ws.output)
	assert.True(t, os.IsNotExist(statErr), "no CSV is written when the inputs are missing")
}

func TestIngest_MissingDataDir(t *testing.T) {
	resetFlags(t)
	clearStoreEnv(t)
	ws := newWorkspace(t)
	ws.use()
	captureOutput(t, ingestCmd)

	err := runIngest(ingestCmd, []string{filepath.Join(ws.root, "nope")})
	require.Error(t, err)
	_, statErr := os.Stat(ws.dbPath)
	assert.True(t, os.IsNotExist(statErr), "the store is not created for a missing directory")
}

func TestIngest_SQLiteWithHostIsConfigError(t *testing.T) {
	resetFlags(t)
	clearStoreEnv(t)
	ws := newWorkspace(t)
	ws.use()
	captureOutput(t, ingestCmd)

	ingestFlags.store.backend = string(vendorsum.BackendSQLite)
	ingestFlags.store.host = "db.example.com"

	err := runIngest(ingestCmd, []string{ws.dataDir})
	require.Error(t, err)
	assert.Equal(t, vendorsum.ExitConfigError, vendorsum.ExitCodeForError(err))
	assert.Contains(t, ws.readLog(t, vendorsum.IngestLogFile), "An error occurred:")
}

func TestIngest_ArgsValidation(t *testing.T) {
	err := ingestCmd.Args(ingestCmd, []string{"a", "b"})
	require.Error(t, err)
	assert.Equal(t, vendorsum.ExitUsageError, vendorsum.ExitCodeForError(err))

	assert.NoError(t, ingestCmd.Args(ingestCmd, nil))
	assert.NoError(t, ingestCmd.Args(ingestCmd, []string{"./data"}))
}

func TestSummary_RejectsArgs(t *testing.T) {
	err := summaryCmd.Args(summaryCmd, []string{"extra"})
	require.Error(t, err)
	assert.Equal(t, vendorsum.ExitUsageError, vendorsum.ExitCodeForError(err))
}

func TestTables_JSON(t *testing.T) {
	resetFlags(t)
	clearStoreEnv(t)
	ws := newWorkspace(t)
	ws.use()
	captureOutput(t, ingestCmd)
	require.NoError(t, runIngest(ingestCmd, []string{ws.dataDir}))

	stdout, _ := captureOutput(t, tablesCmd)
	tablesFlags.json = true
	require.NoError(t, runTables(tablesCmd, nil))

	var got []tableInfo
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
	want := []tableInfo{
		{Name: vendorsum.TablePurchases, Rows: 6},
		{Name: vendorsum.TableSales, Rows: 4},
		{Name: vendorsum.TablePurchasePrices, Rows: 5},
		{Name: vendorsum.TableVendorInvoice, Rows: 3},
	}
	byName := cmpopts.SortSlices(func(a, b tableInfo) bool { return a.Name < b.Name })
	if diff := cmp.Diff(want, got, byName); diff != "" {
		t.Errorf("tables mismatch (-want +got):\n%s", diff)
	}
}

func TestTables_Text(t *testing.T) {
	resetFlags(t)
	clearStoreEnv(t)
	ws := newWorkspace(t)
	ws.use()

	stdout, _ := captureOutput(t, tablesCmd)
	require.NoError(t, runTables(tablesCmd, nil))
	assert.Equal(t, "No tables in sqlite("+ws.dbPath+")\n", stdout.String())
	assert.NoFileExists(t, ws.dbPath, "listing tables must not create the database")

	captureOutput(t, ingestCmd)
	require.NoError(t, runIngest(ingestCmd, []string{ws.dataDir}))

	stdout, _ = captureOutput(t, tablesCmd)
	require.NoError(t, runTables(tablesCmd, nil))
	assert.True(t, strings.HasPrefix(stdout.String(), "TABLE"), stdout.String())
	assert.Contains(t, stdout.String(), "vendor_invoice")
}

func TestTables_JSONOnMissingDatabase(t *testing.T) {
	resetFlags(t)
	clearStoreEnv(t)
	ws := newWorkspace(t)
	ws.use()
	tablesFlags.json = true

	stdout, _ := captureOutput(t, tablesCmd)
	require.NoError(t, runTables(tablesCmd, nil))
	assert.Equal(t, "[]\n", stdout.String())
	assert.NoFileExists(t, ws.dbPath)
}

func TestProjectConfigPrecedence(t *testing.T) {
	resetFlags(t)
	clearStoreEnv(t)
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "vendorsum.yaml")
	content := `store:
  backend: sqlite
  sqlite_path: from-yaml.db
paths:
  data_dir: raw
  output_csv: yaml.csv
summary_table: yaml_summary
timeout: 2m
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0644))

	projectCfg, err := loadProjectConfig(cfgPath)
	require.NoError(t, err)

	t.Run("yaml fills unset flags", func(t *testing.T) {
		resetFlags(t)
		cfg, err := buildSummaryConfig(summaryCmd, projectCfg)
		require.NoError(t, err)
		assert.Equal(t, "from-yaml.db", cfg.Store.SQLitePath)
		assert.Equal(t, "yaml.csv", cfg.OutputPath)
		assert.Equal(t, "yaml_summary", cfg.SummaryTable)
		assert.Equal(t, "2m0s", cfg.Timeout.String())

		icfg, err := buildIngestConfig(ingestCmd, nil, projectCfg)
		require.NoError(t, err)
		assert.Equal(t, "raw", icfg.DataDir)
	})

	t.Run("flags win over yaml", func(t *testing.T) {
		resetFlags(t)
		summaryFlags.store.sqlitePath = "flag.db"
		summaryFlags.output = "flag.csv"
		summaryFlags.table = "flag_summary"
		cfg, err := buildSummaryConfig(summaryCmd, projectCfg)
		require.NoError(t, err)
		assert.Equal(t, "flag.db", cfg.Store.SQLitePath)
		assert.Equal(t, "flag.csv", cfg.OutputPath)
		assert.Equal(t, "flag_summary", cfg.SummaryTable)

		icfg, err := buildIngestConfig(ingestCmd, []string{"argdir"}, projectCfg)
		require.NoError(t, err)
		assert.Equal(t, "argdir", icfg.DataDir)
	})

	t.Run("defaults without yaml", func(t *testing.T) {
		resetFlags(t)
		cfg, err := buildSummaryConfig(summaryCmd, nil)
		require.NoError(t, err)
		assert.Equal(t, vendorsum.BackendSQLite, cfg.Store.Backend)
		assert.Equal(t, vendorsum.DefaultSQLitePath, cfg.Store.SQLitePath)
		assert.Equal(t, vendorsum.DefaultOutputCSV, cfg.OutputPath)
		assert.Equal(t, vendorsum.TableVendorSalesSummary, cfg.SummaryTable)

		icfg, err := buildIngestConfig(ingestCmd, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, vendorsum.DefaultDataDir, icfg.DataDir)
	})
}

func TestLoadProjectConfig_Errors(t *testing.T) {
	_, err := loadProjectConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, vendorsum.ExitConfigError, vendorsum.ExitCodeForError(err))

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("{{nope"), 0644))
	_, err = loadProjectConfig(bad)
	require.Error(t, err)
	assert.Equal(t, vendorsum.ExitConfigError, vendorsum.ExitCodeForError(err))
}

func TestTimingMessage(t *testing.T) {
	assert.Equal(t, "Summary finished. Total execution time: 1.50 minutes.", timingMessage("Summary", 90_000_000_000))
}
