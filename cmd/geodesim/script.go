package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/san-kum/geodesim/internal/automation"
	"github.com/spf13/cobra"
)

func runScript(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	if sc.Batch == 0 {
		sc.Batch = cfg.Batch
	}
	if sc.Input == "" && sc.Preset == "" {
		sc.Input, err = cfg.ResolveInput("")
		if err != nil {
			return err
		}
	}

	ctx, stop := interruptible(cmd)
	defer stop()

	if sc.Name != "" {
		fmt.Printf("scenario: %s\n", sc.Name)
	}
	if sc.Description != "" {
		fmt.Printf("%s\n", sc.Description)
	}
	fmt.Println()

	runner := automation.Runner{Options: engineOptions(cfg), Logger: logger}
	results, runErr := runner.Run(ctx, sc)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tACTION\tSTATUS\tPLAYING\tERROR")
	for _, r := range results {
		errText := ""
		if r.Frame.Err != nil {
			errText = r.Frame.Err.Error()
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%v\t%s\n", r.Index, r.Action, r.Frame.Status, r.Frame.Playing, errText)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return runErr
}
