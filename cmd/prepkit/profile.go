package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wdm0006/prepkit/pkg/profile"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Print the quality report of a dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := settings(cmd.Flags())
		if err != nil {
			return err
		}
		in := Endpoint{
			Path:      v.GetString("input"),
			NoHeader:  v.GetBool("no-header"),
			Delimiter: v.GetString("delimiter"),
		}
		if in.Path == "" {
			return errors.New("no input: use --input")
		}
		ds, err := readDataset(in)
		if err != nil {
			return fmt.Errorf("read %s: %w", in.Path, err)
		}
		r := profile.Report(ds)
		if v.GetBool("json") {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(r)
		}
		return profile.RenderText(cmd.OutOrStdout(), r)
	},
}

func init() {
	f := profileCmd.Flags()
	f.String("input", "", "input dataset (csv, json, jsonl, parquet; .gz allowed)")
	f.String("delimiter", "", "CSV delimiter (sniffed when empty)")
	f.Bool("no-header", false, "CSV input has no header row")
	f.Bool("json", false, "print the report as JSON")
	rootCmd.AddCommand(profileCmd)
}
