package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"fip_qc/internal/models"
)

var errChecksFailed = errors.New("qc: one or more checks failed")

func newQCCommand(ctx *commandContext) *cobra.Command {
	var (
		store     bool
		asJSON    bool
		artifacts string
	)

	cmd := &cobra.Command{
		Use:   "qc <session>",
		Short: "Run every QC suite over each epoch of a session",
		Long: "Runs the metadata, signal and dataset suites over every epoch and prints a verdict table.\n" +
			"Exits non-zero when any check fails or errors.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if artifacts != "" {
				cfg.QC.ArtifactDir = artifacts
			}
			svc, closeFn, err := ctx.services(store)
			if err != nil {
				return err
			}
			defer func() { _ = closeFn() }()

			runs, err := svc.QC.RunSession(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if asJSON {
				if err := writeJSON(cmd, runs); err != nil {
					return err
				}
			} else {
				printRuns(cmd, runs)
			}
			for _, r := range runs {
				if !r.OK() {
					return errChecksFailed
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&store, "store", false, "Persist runs to the configured database")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print runs as JSON")
	cmd.Flags().StringVar(&artifacts, "artifacts", "", "Directory for diagnostic figures (overrides qc.artifact_dir)")
	return cmd
}

func printRuns(cmd *cobra.Command, runs []models.QCRun) {
	out := cmd.OutOrStdout()
	headers := []string{"Suite", "Check", "Target", "Status", "Value", "Message"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft}
	for _, run := range runs {
		rows := make([][]string, 0, len(run.Results))
		for _, res := range run.Results {
			value := ""
			if res.Value != nil {
				value = strconv.FormatFloat(*res.Value, 'g', 6, 64)
			}
			rows = append(rows, []string{res.Suite, res.Check, res.Target, res.Status, value, res.Message})
		}
		fmt.Fprintf(out, "Epoch %s (run %s)\n", run.Epoch, run.ID)
		fmt.Fprintln(out, renderTable(headers, rows, aligns))
		fmt.Fprintf(out, "passed=%d failed=%d skipped=%d errored=%d\n\n",
			run.Passed, run.Failed, run.Skipped, run.Errored)
	}
}
