// treeseq command line tool
// Inspects and serves tree sequence files
package main

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/coalescent/treeseq/internal/logger"
	"github.com/coalescent/treeseq/internal/metrics"
	"github.com/coalescent/treeseq/internal/server"
	"github.com/coalescent/treeseq/pkg/store"
	"github.com/coalescent/treeseq/pkg/tables"
)

var (
	logLevel string
	pretty   bool
)

func main() {
	root := &cobra.Command{
		Use:          "treeseq",
		Short:        "Inspect and serve tree sequence files",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&pretty, "pretty", false, "pretty-print logs for development")

	root.AddCommand(infoCmd(), metadataCmd(), serveCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Summarize a tree sequence file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tc, info, err := store.Load(args[0])
			if err != nil {
				return err
			}

			fmt.Printf("file:            %s\n", args[0])
			fmt.Printf("uuid:            %s\n", info.UUID)
			fmt.Printf("format version:  %d\n", info.Version)
			fmt.Printf("sequence length: %g\n", tc.SequenceLength)
			fmt.Println("tables:")

			counts := tc.RowCounts()
			names := make([]string, 0, len(counts))
			for name := range counts {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Printf("  %-12s %d rows\n", name, counts[name])
			}
			return nil
		},
	}
}

func metadataCmd() *cobra.Command {
	var (
		tableName string
		row       int32
	)
	cmd := &cobra.Command{
		Use:   "metadata <file>",
		Short: "Dump row metadata from one table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := tables.ParseTableKind(tableName)
			if err != nil {
				return err
			}
			if !kind.HasMetadata() {
				return fmt.Errorf("%s table has no metadata column", kind)
			}

			tc, _, err := store.Load(args[0])
			if err != nil {
				return err
			}
			tbl := tc.Table(kind)

			if schema := tbl.MetadataSchema(); schema != "" {
				fmt.Printf("schema: %s\n", schema)
			}

			if cmd.Flags().Changed("row") {
				raw, ok := tbl.MetadataBytes(tables.RowID(row))
				if !ok {
					return tables.ErrRowNotFound
				}
				printRow(tables.RowID(row), raw)
				return nil
			}

			tbl.ScanMetadata(func(id tables.RowID, raw []byte) bool {
				printRow(id, raw)
				return true
			})
			return nil
		},
	}
	cmd.Flags().StringVar(&tableName, "table", "mutation", "table to read (node, edge, site, mutation, individual, population, migration)")
	cmd.Flags().Int32Var(&row, "row", 0, "dump a single row id instead of the whole table")
	return cmd
}

// printRow shows metadata as text when it is valid JSON, hex otherwise.
func printRow(id tables.RowID, raw []byte) {
	switch {
	case len(raw) == 0:
		fmt.Printf("%6d  <no metadata>\n", id)
	case json.Valid(raw):
		fmt.Printf("%6d  %s\n", id, raw)
	default:
		fmt.Printf("%6d  0x%s\n", id, hex.EncodeToString(raw))
	}
}

func serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve <file>",
		Short: "Serve a tree sequence file over HTTP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger.InitGlobalLogger(logger.Config{Level: logLevel, Pretty: pretty})
			log := logger.GetGlobalLogger()
			log.LogServerStart(addr, args[0])

			srv, err := server.New(server.Config{
				Path:    args[0],
				Addr:    addr,
				Log:     log,
				Metrics: metrics.NewMetrics(),
			})
			if err != nil {
				return err
			}

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			go func() {
				<-sigChan
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				srv.Shutdown(ctx)
			}()

			return srv.Start()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}
