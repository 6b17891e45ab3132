package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	_ "fip_qc/docs"
)

// @title                       FIP QC API
// @version                     1.0
// @description                 Fiber photometry acquisition mapping and quality-control reports.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
