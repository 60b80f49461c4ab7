package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/KaramelBytes/corrlens-cli/internal/analysis"
	"github.com/KaramelBytes/corrlens-cli/internal/dataset"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var colLoader loaderFlags

var columnsCmd = &cobra.Command{
	Use:   "columns <file>",
	Short: "List the columns of a dataset with their inferred kind and summary statistics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ensureConfig()
		req, err := buildRequest(cmd, args[0], &colLoader)
		if err != nil {
			return err
		}
		ds, profiles, err := analysis.Columns(context.Background(), req.Path, req.Load, req.OutlierThreshold)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: %d rows, %d columns\n", ds.Name, ds.Rows, len(profiles))
		t := tablewriter.NewWriter(out)
		t.SetHeader([]string{"#", "Column", "Unit", "Kind", "Non-null", "Missing", "Min", "Max", "Mean", "Detail"})
		t.SetAutoFormatHeaders(false)
		t.SetAutoWrapText(false)
		for i, p := range profiles {
			row := []string{strconv.Itoa(i + 1), p.Name, p.Unit, p.Kind.String(), strconv.Itoa(p.NonNull), strconv.Itoa(p.Missing), "", "", "", ""}
			switch p.Kind {
			case dataset.KindNumeric:
				if p.NonNull > 0 {
					row[6], row[7], row[8] = fmt.Sprintf("%.4g", p.Min), fmt.Sprintf("%.4g", p.Max), fmt.Sprintf("%.4g", p.Mean)
				}
				if p.Constant() {
					row[9] = "constant"
				} else if p.OutliersCount > 0 {
					row[9] = fmt.Sprintf("%d outliers (|z|>%.1f)", p.OutliersCount, p.OutlierThreshold)
				}
			case dataset.KindCategorical:
				var tops []string
				for _, kv := range p.TopValues {
					tops = append(tops, fmt.Sprintf("%s(%d)", kv.Value, kv.Count))
				}
				row[9] = strings.Join(tops, ", ")
			}
			t.Append(row)
		}
		t.Render()
		for _, w := range ds.Warnings {
			fmt.Fprintf(cmd.ErrOrStderr(), "⚠ %s\n", w)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(columnsCmd)
	colLoader.register(columnsCmd)
}
