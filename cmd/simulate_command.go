package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"fip_qc/internal/service"
)

func newSimulateCommand(ctx *commandContext) *cobra.Command {
	p := service.DefaultSimParams()
	var (
		start        string
		uncalibrated bool
	)

	cmd := &cobra.Command{
		Use:   "simulate <dir>",
		Short: "Write a synthetic FIP session under dir",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if start != "" {
				t, err := time.Parse(time.RFC3339, start)
				if err != nil {
					return fmt.Errorf("invalid --start: %w", err)
				}
				p.Start = t
			}
			p.Calibrated = !uncalibrated
			svc, closeFn, err := ctx.services(false)
			if err != nil {
				return err
			}
			defer func() { _ = closeFn() }()

			path, err := svc.Simulator.Generate(args[0], p)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&p.Epochs, "epochs", p.Epochs, "Number of epochs")
	flags.IntVar(&p.Frames, "frames", p.Frames, "Frames per epoch")
	flags.Float64Var(&p.FPS, "fps", p.FPS, "Camera frame rate")
	flags.IntVar(&p.Fibers, "fibers", p.Fibers, "Fiber columns per stream")
	flags.Float64Var(&p.Background, "background", p.Background, "Background level")
	flags.StringVar(&p.Subject, "subject", p.Subject, "Subject id")
	flags.StringVar(&start, "start", "", "First epoch start time (RFC3339)")
	flags.BoolVar(&uncalibrated, "uncalibrated", false, "Omit the blue light-source calibration")
	flags.IntVar(&p.DropFrameAt, "drop-frame-at", 0, "Green row whose frame counter skips a frame")
	flags.IntVar(&p.StepAt, "step-at", 0, "Red Fiber_0 row that jumps above the sudden-change limit")
	flags.IntVar(&p.NaNAt, "nan-at", 0, "Iso Fiber_0 row left empty")
	return cmd
}
