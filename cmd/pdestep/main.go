package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/cpmech/gosl/la"
	"github.com/spf13/cobra"

	"github.com/mkvern/pdestep/internal/config"
	"github.com/mkvern/pdestep/internal/heat"
	"github.com/mkvern/pdestep/internal/storage"
	"github.com/mkvern/pdestep/internal/transient"
	"github.com/mkvern/pdestep/internal/tui"
	"github.com/mkvern/pdestep/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	scheme     string
	dt         float64
	endTime    float64
	cells      int
	length     float64
	kappa      float64
	porosity   float64
	bcLeft     float64
	bcRight    float64
	initValue  float64
	verbose    bool
	noStore    bool
	probeCell  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pdestep",
		Short: "time-stepping solver for transient diffusion problems",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".pdestep", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "step the built-in diffusion problem",
		RunE:  runProblem,
	}
	addProblemFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&probeCell, "cell", -1, "cell to plot over time (default: midpoint)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "step with a live terminal view",
		RunE:  runLive,
	}
	addProblemFlags(liveCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("%-10s %s, dt=%g, T=%g, %d cells\n", name, p.Scheme, p.Dt, p.EndTime, p.Cells)
			}
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, liveCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addProblemFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVar(&scheme, "scheme", "implicit", "time scheme (implicit|bdf2|explicit|crank-nicolson)")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "time step")
	cmd.Flags().Float64Var(&endTime, "time", config.DefaultEndTime, "end time")
	cmd.Flags().IntVar(&cells, "cells", config.DefaultCells, "number of cells")
	cmd.Flags().Float64Var(&length, "length", config.DefaultLength, "domain length")
	cmd.Flags().Float64Var(&kappa, "conductivity", config.DefaultConductivity, "conductivity")
	cmd.Flags().Float64Var(&porosity, "porosity", config.DefaultPorosity, "porosity")
	cmd.Flags().Float64Var(&bcLeft, "bc-left", 1.0, "left boundary value")
	cmd.Flags().Float64Var(&bcRight, "bc-right", 0.0, "right boundary value")
	cmd.Flags().Float64Var(&initValue, "init", 0.0, "initial value")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "print per-step progress")
	cmd.Flags().BoolVar(&noStore, "no-store", false, "do not record or save the history")
}

func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	case preset != "":
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	default:
		cfg = config.DefaultConfig()
	}

	// Explicit flags override whatever the file or preset chose.
	if cmd.Flags().Changed("scheme") {
		cfg.Scheme = scheme
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.EndTime = endTime
	}
	if cmd.Flags().Changed("cells") {
		cfg.Cells = cells
	}
	if cmd.Flags().Changed("length") {
		cfg.Length = length
	}
	if cmd.Flags().Changed("conductivity") {
		cfg.Conductivity = kappa
	}
	if cmd.Flags().Changed("porosity") {
		cfg.Porosity = porosity
	}
	if cmd.Flags().Changed("bc-left") {
		cfg.BCLeft = bcLeft
	}
	if cmd.Flags().Changed("bc-right") {
		cfg.BCRight = bcRight
	}
	if cmd.Flags().Changed("init") {
		cfg.InitialValue = initValue
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = verbose
	}
	if noStore {
		cfg.StoreResults = false
	}
	return cfg, cfg.Validate()
}

func buildProblem(cfg *config.Config) *heat.Problem {
	g := heat.NewGrid(cfg.Cells, cfg.Length)
	p := heat.NewProblem(g, cfg.Conductivity, cfg.Porosity, cfg.Dt, cfg.EndTime)
	p.SetInitial(cfg.InitialValue)
	p.SetBoundary(heat.Constant(cfg.BCLeft), heat.Constant(cfg.BCRight))
	return p
}

func runProblem(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	s, err := transient.New(cfg.Scheme, buildProblem(cfg), transient.Options{
		StoreResults: cfg.StoreResults,
		Verbose:      cfg.Verbose,
	})
	if err != nil {
		return err
	}
	res, err := s.Solve()
	if err != nil {
		return err
	}

	runID := "(not stored)"
	if cfg.StoreResults {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err = st.Save(cfg.Scheme, cfg.Dt, cfg.EndTime, res)
		if err != nil {
			return err
		}
	}

	fmt.Println(viz.Summary(runID, cfg.Scheme, cfg.Dt, cfg.EndTime, cfg.Cells, len(res.States)))
	fmt.Println()
	fmt.Println(viz.Series(s.State(), 10, "final profile"))
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no stored runs")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCHEME\tDT\tEND\tDOFS\tRECORDS")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%g\t%g\t%d\t%d\n", r.ID, r.Scheme, r.Dt, r.EndTime, r.DOFs, r.Records)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, res, err := storage.New(dataDir).Load(args[0])
	if err != nil {
		return err
	}
	if len(res.States) == 0 {
		return fmt.Errorf("run %s has no recorded history", args[0])
	}

	cell := probeCell
	if cell < 0 {
		cell = meta.DOFs / 2
	}
	if cell >= meta.DOFs {
		return fmt.Errorf("cell %d out of range (%d dofs)", cell, meta.DOFs)
	}

	series := make([]float64, len(res.States))
	for k, st := range res.States {
		series[k] = st[cell]
	}
	fmt.Println(viz.Series(series, 15, fmt.Sprintf("cell %d over time (%s)", cell, meta.Scheme)))
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ch := make(chan tui.Snapshot, 64)
	s, err := transient.New(cfg.Scheme, buildProblem(cfg), transient.Options{
		StoreResults: cfg.StoreResults,
		Observer: func(t float64, state la.Vector) {
			snap := tui.Snapshot{T: t, State: make([]float64, len(state))}
			copy(snap.State, state)
			ch <- snap
		},
	})
	if err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		defer close(ch)
		_, err := s.Solve()
		done <- err
	}()

	if err := tui.Run(cfg.Scheme, cfg.EndTime, ch); err != nil {
		return err
	}
	select {
	case err := <-done:
		return err
	default:
		// user quit before the run finished
		return nil
	}
}
