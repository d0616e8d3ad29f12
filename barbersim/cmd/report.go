package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sarchlab/barbersim/datarecording"
	"github.com/sarchlab/barbersim/tracking"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize a recorded run.",
	Long: "`report --db [file]` reads the visit journal a previous run " +
		"recorded and prints run metadata, outcome counts, and the longest " +
		"waits.",
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringP("db", "f", "",
		"recorded database file; defaults to $BARBERSIM_DB")
	reportCmd.Flags().IntP("limit", "n", 10,
		"number of longest waits to list")
}

func runReport(cmd *cobra.Command, _ []string) error {
	dbPath, err := stringFlagOrEnv(cmd, "db", "BARBERSIM_DB")
	if err != nil {
		return err
	}

	if dbPath == "" {
		return errors.New("no database given; use --db or set BARBERSIM_DB")
	}
	dbPath = strings.TrimSuffix(dbPath, ".sqlite3")

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}

	reader := datarecording.NewReader(dbPath)
	defer reader.Close()

	if err := printRunInfo(reader); err != nil {
		return err
	}

	return printVisits(reader, limit)
}

func printRunInfo(reader datarecording.DataReader) error {
	reader.MapTable(
		datarecording.RunInfoTableName, datarecording.RunInfoEntry{})

	rows, _, err := reader.Query(context.Background(),
		datarecording.RunInfoTableName, datarecording.QueryParams{})
	if err != nil {
		return err
	}

	fmt.Println("Run:")
	for _, row := range rows {
		entry := row.(*datarecording.RunInfoEntry)
		fmt.Printf("  %-18s %s\n", entry.Property+":", entry.Value)
	}
	fmt.Println()

	return nil
}

func printVisits(reader datarecording.DataReader, limit int) error {
	reader.MapTable(tracking.VisitTableName, tracking.VisitEntry{})

	ctx := context.Background()

	served, totalServed, err := reader.Query(ctx, tracking.VisitTableName,
		datarecording.QueryParams{
			Where:   "Outcome = ?",
			Args:    []any{"Served"},
			OrderBy: "WaitTime DESC",
		})
	if err != nil {
		return err
	}

	_, totalRejected, err := reader.Query(ctx, tracking.VisitTableName,
		datarecording.QueryParams{
			Where: "Outcome = ?",
			Args:  []any{"Rejected"},
			Limit: 1,
		})
	if err != nil {
		return err
	}

	fmt.Printf("Visits: %d served, %d rejected\n", totalServed, totalRejected)

	if totalServed == 0 {
		return nil
	}

	var waitSum float64
	for _, row := range served {
		waitSum += row.(*tracking.VisitEntry).WaitTime
	}
	fmt.Printf("Average wait: %.2f s\n\n", waitSum/float64(totalServed))

	if limit < 0 || limit > len(served) {
		limit = len(served)
	}

	fmt.Println("Longest waits:")
	fmt.Printf("  %-6s %-20s %-8s %-10s %s\n",
		"ID", "Name", "Barber", "Wait", "Departed")
	for _, row := range served[:limit] {
		v := row.(*tracking.VisitEntry)
		fmt.Printf("  %-6d %-20s %-8d %-10.2f %.2f\n",
			v.CustomerID, v.Name, v.BarberID, v.WaitTime, v.DepartureTime)
	}

	return nil
}
