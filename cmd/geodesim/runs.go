package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/geodesim/internal/engine"
	"github.com/san-kum/geodesim/internal/storage"
	"github.com/spf13/cobra"
)

func runRecord(cmd *cobra.Command, args []string) error {
	cfg, text, source, err := loadInput(cmd, args)
	if err != nil {
		return err
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	sim, err := engine.New(text, engineOptions(cfg))
	if err != nil {
		return err
	}
	n := recordSteps
	if n <= 0 {
		n = sim.Horizon()
	}

	fmt.Printf("running %s for %d minutes...\n", source, min(n, sim.Horizon()))
	start := time.Now()
	for i := 0; i < n && !sim.Done(); i++ {
		sim, _ = sim.Advance()
	}
	elapsed := time.Since(start)

	runID, err := st.Save(source, sim, elapsed)
	if err != nil {
		return err
	}
	logger.Info("run recorded", "id", runID, "source", source, "steps", sim.Steps())

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("status: %s\n", engine.Status(sim))
	fmt.Println("\nblueprints:")
	for _, l := range sim.Lanes() {
		fmt.Printf("  #%d: %d geodes via %s\n", l.Blueprint.ID, l.Geodes(), l.BestPath)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSOURCE\tTIME\tSTEPS\tBLUEPRINTS\tQUALITY")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d/%d\t%d\t%d\n",
			run.ID,
			run.Source,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Horizon,
			len(run.Blueprints),
			run.QualitySum,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	steps, err := st.LoadSteps(runID)
	if err != nil {
		return err
	}

	if len(steps.Minutes) < 2 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("source: %s\n", meta.Source)
	fmt.Printf("minutes: %d\n\n", len(steps.Minutes)-1)

	for i, sizes := range steps.Sizes {
		data := make([]float64, len(sizes))
		for j, n := range sizes {
			data[j] = float64(n)
		}
		caption := "frontier size"
		if i < len(meta.Blueprints) {
			caption = fmt.Sprintf("blueprint %d frontier size (%d geodes)", meta.Blueprints[i].ID, meta.Blueprints[i].Geodes)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
}

func exportCSV(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).CopySteps(os.Stdout, args[0])
}
