package main

import (
	"github.com/spf13/cobra"
)

func newAcquisitionCommand(ctx *commandContext) *cobra.Command {
	var (
		store    bool
		noWrite  bool
		annotate bool
	)

	cmd := &cobra.Command{
		Use:   "acquisition <session>",
		Short: "Map a session's epochs to an acquisition record",
		Long: "Discovers the FIP epochs of a session, aggregates their timing into an acquisition\n" +
			"record and prints it. acquisition_fip.json is written next to the session unless --no-write.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if noWrite {
				cfg.Acquisition.WriteJSON = false
			}
			if annotate {
				cfg.Acquisition.AnnotateSession = true
			}
			svc, closeFn, err := ctx.services(store)
			if err != nil {
				return err
			}
			defer func() { _ = closeFn() }()

			rec, err := svc.Acquisition.MapSession(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd, rec)
		},
	}

	cmd.Flags().BoolVar(&store, "store", false, "Persist the record to the configured database")
	cmd.Flags().BoolVar(&noWrite, "no-write", false, "Do not write acquisition_fip.json")
	cmd.Flags().BoolVar(&annotate, "annotate", false, "Write session start/end times into each epoch's session_input.json")
	return cmd
}
