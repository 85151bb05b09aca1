package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/san-kum/geodesim/internal/automation"
	"github.com/san-kum/geodesim/internal/blueprint"
	"github.com/san-kum/geodesim/internal/engine"
	"github.com/spf13/cobra"
)

func interruptible(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt)
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, text, source, err := loadInput(cmd, args)
	if err != nil {
		return err
	}
	bps, err := blueprint.Parse(text)
	if err != nil {
		return err
	}
	ctx, stop := interruptible(cmd)
	defer stop()

	fmt.Printf("solving %s (%d blueprints, %d minutes)\n\n", source, len(bps), cfg.Solve.Minutes)
	start := time.Now()
	geodes, err := blueprint.MaxGeodesAll(ctx, bps, cfg.Solve.Minutes)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BLUEPRINT\tGEODES\tQUALITY")
	sum := 0
	for i, bp := range bps {
		q := bp.ID * geodes[i]
		sum += q
		fmt.Fprintf(w, "%d\t%d\t%d\n", bp.ID, geodes[i], q)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nquality sum (%d min): %d\n", cfg.Solve.Minutes, sum)
	logger.Info("quality sum", "source", source, "minutes", cfg.Solve.Minutes, "sum", sum, "elapsed", time.Since(start))

	if skipTop {
		return nil
	}
	start = time.Now()
	product, err := blueprint.TopProduct(ctx, bps, cfg.Solve.TopN, cfg.Solve.TopMinutes)
	if err != nil {
		return err
	}
	fmt.Printf("top %d product (%d min): %d\n", min(cfg.Solve.TopN, len(bps)), cfg.Solve.TopMinutes, product)
	logger.Info("top product", "source", source, "minutes", cfg.Solve.TopMinutes, "product", product, "elapsed", time.Since(start))
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	_, text, source, err := loadInput(cmd, args)
	if err != nil {
		return err
	}
	if sweepTo < sweepFrom {
		return fmt.Errorf("--to %d is before --from %d", sweepTo, sweepFrom)
	}
	bps, err := blueprint.Parse(text)
	if err != nil {
		return err
	}
	ctx, stop := interruptible(cmd)
	defer stop()

	fmt.Printf("sweeping %s over minutes %d..%d\n\n", source, sweepFrom, sweepTo)
	results, err := automation.RunSweep(ctx, text, sweepFrom, sweepTo)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	header := []string{"MINUTES"}
	for _, bp := range bps {
		header = append(header, fmt.Sprintf("#%d", bp.ID))
	}
	header = append(header, "QUALITY")
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, r := range results {
		fmt.Fprintf(w, "%d", r.Minutes)
		for _, g := range r.Geodes {
			fmt.Fprintf(w, "\t%d", g)
		}
		fmt.Fprintf(w, "\t%d\n", r.QualitySum)
	}
	return w.Flush()
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, text, source, err := loadInput(cmd, args)
	if err != nil {
		return err
	}
	sim, err := engine.New(text, engineOptions(cfg))
	if err != nil {
		return err
	}

	fmt.Printf("benchmarking %s\n\n", source)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MINUTE\tSTATES\tTIME\tSTATES/SEC")

	total := time.Duration(0)
	for !sim.Done() {
		start := time.Now()
		sim, _ = sim.Advance()
		elapsed := time.Since(start)
		total += elapsed

		states := 0
		for _, l := range sim.Lanes() {
			states += l.FrontierSize()
		}
		fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\n", sim.Steps(), states, elapsed.Round(time.Microsecond), float64(states)/elapsed.Seconds())
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\ntotal: %v\n", total.Round(time.Millisecond))
	return nil
}
