package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nipunchauhan/vendorsum/internal/logging"
	"github.com/nipunchauhan/vendorsum/internal/store"
	"github.com/nipunchauhan/vendorsum/pkg/vendorsum"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List store tables with their row counts",
	Long: `Tables lists the user tables of the store with their row counts.

No log file is written.

Examples:
  # Show what ingest loaded into ./inventory.db
  vendorsum tables

  # Machine-readable output
  vendorsum tables --json`,
	Args: cobra.NoArgs,
	RunE: runTables,
}

type tablesFlagValues struct {
	store storeFlagValues
	json  bool
}

var tablesFlags tablesFlagValues

func init() {
	rootCmd.AddCommand(tablesCmd)

	addStoreFlags(tablesCmd, &tablesFlags.store)
	tablesCmd.Flags().BoolVar(&tablesFlags.json, "json", false, "Output the table list as JSON")
}

type tableInfo struct {
	Name string `json:"name"`
	Rows int64  `json:"rows"`
}

func runTables(cmd *cobra.Command, args []string) error {
	projectCfg, err := loadProjectConfig(globalFlags.configPath)
	if err != nil {
		return err
	}
	storeCfg, err := resolveStoreFromFlags(&tablesFlags.store, projectCfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	infos, err := listTables(ctx, storeCfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if tablesFlags.json {
		jsonBytes, err := json.MarshalIndent(infos, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(out, string(jsonBytes))
		return nil
	}

	if len(infos) == 0 {
		fmt.Fprintf(out, "No tables in %s\n", storeCfg.String())
		return nil
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TABLE\tROWS")
	for _, info := range infos {
		fmt.Fprintf(tw, "%s\t%d\n", info.Name, info.Rows)
	}
	return tw.Flush()
}

// listTables returns the tables of the store with their row counts. A SQLite
// file that does not exist yet has no tables and is not created.
func listTables(ctx context.Context, cfg *vendorsum.StoreConfig) ([]tableInfo, error) {
	infos := []tableInfo{}
	if cfg.Backend == vendorsum.BackendSQLite {
		if _, err := os.Stat(cfg.SQLitePath); errors.Is(err, fs.ErrNotExist) {
			return infos, nil
		}
	}

	s, err := store.Open(ctx, cfg, logging.NewNullLogger())
	if err != nil {
		return nil, err
	}
	defer s.Close()

	names, err := s.Tables(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	for _, name := range names {
		n, err := store.RowCount(ctx, s, name)
		if err != nil {
			return nil, fmt.Errorf("failed to count rows of %s: %w", name, err)
		}
		infos = append(infos, tableInfo{Name: name, Rows: n})
	}
	return infos, nil
}
