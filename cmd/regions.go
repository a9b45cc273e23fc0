package main

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dave0/windtower/internal/metro"
)

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "List configured region codes and known metro areas",
	RunE: func(cmd *cobra.Command, args []string) error {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

		fmt.Fprintln(tw, "REGION\tNAME")
		codes := make([]string, 0, len(cfg.Source.Regions))
		for code := range cfg.Source.Regions {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		for _, code := range codes {
			fmt.Fprintf(tw, "%s\t%s\n", code, cfg.Source.Regions[code])
		}
		if err := tw.Flush(); err != nil {
			return err
		}

		metros, err := metro.Load()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout())
		fmt.Fprintln(cmd.OutOrStdout(), "Known metro areas:")
		for _, m := range metros.Metros() {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", m)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(regionsCmd)
}
