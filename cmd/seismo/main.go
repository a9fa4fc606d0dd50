package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/seismo/internal/config"
	"github.com/san-kum/seismo/internal/export"
	"github.com/san-kum/seismo/internal/logging"
	"github.com/san-kum/seismo/internal/slowness"
	"github.com/san-kum/seismo/internal/storage"
	"github.com/san-kum/seismo/internal/velocity"
	"github.com/san-kum/seismo/internal/viz"
)

var (
	dataDir    string
	debug      bool
	configFile string
	preset     string
	workers    int
	noSave     bool
	limit      int
	wave       string
	svgPath    string
	format     string
	outPath    string

	logger = zap.NewNop()
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "seismo",
		Short: "sample seismic velocity models into slowness layers",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.Must(debug)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".seismo", "data directory")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "debug logging")

	buildCmd := &cobra.Command{
		Use:   "build [model]",
		Short: "build a slowness model from a built-in name or YAML file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  buildModel,
	}
	addSamplingFlags(buildCmd)
	buildCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the result")

	batchCmd := &cobra.Command{
		Use:   "batch [models...]",
		Short: "build several models in parallel",
		Args:  cobra.MinimumNArgs(1),
		RunE:  batchBuild,
	}
	addSamplingFlags(batchCmd)
	batchCmd.Flags().IntVar(&workers, "workers", 0, "parallel builds (0 = GOMAXPROCS)")
	batchCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the results")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	layersCmd := &cobra.Command{
		Use:   "layers [run_id]",
		Short: "print the layers of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  showLayers,
	}
	layersCmd.Flags().IntVar(&limit, "limit", 0, "maximum layers to print (0 = all)")

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot slowness against depth",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&wave, "wave", "both", "wave type: P, S or both")
	plotCmd.Flags().StringVar(&svgPath, "svg", "", "also write an SVG profile to this path")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored run as JSON or msgpack",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&format, "format", "json", "json or msgpack")
	exportCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "list built-in velocity models",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range velocity.ListPresets() {
				fmt.Printf("  %s\n", name)
			}
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list sampling presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				s := config.Presets[name]
				fmt.Printf("  %-8s dp=[%g, %g] dz=%g km range=%g deg interp=%g s\n",
					name, s.MinDeltaP, s.MaxDeltaP, s.MaxDepthInterval, s.MaxRangeIntervalDeg, s.MaxInterpError)
			}
		},
	}

	rootCmd.AddCommand(buildCmd, batchCmd, listCmd, layersCmd, plotCmd, exportCmd, modelsCmd, presetsCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func addSamplingFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "sampling preset (default, fine, coarse)")
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
		if !cmd.Flags().Changed("data") && cfg.DataDir != "" {
			dataDir = cfg.DataDir
		}
		if !cmd.Flags().Changed("debug") && cfg.Debug {
			debug = true
			logger = logging.Must(debug)
		}
	}
	if preset != "" {
		s, ok := config.Presets[preset]
		if !ok {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg.Sampling = s
	}
	return cfg, nil
}

// loadVelocityModel resolves a YAML path or a built-in model name.
func loadVelocityModel(name string) (*velocity.Model, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == ".yaml" || ext == ".yml" {
		return velocity.Load(name)
	}
	return velocity.GetPreset(name)
}

func modelName(vm *velocity.Model, arg string) string {
	if vm.Name != "" {
		return vm.Name
	}
	return strings.TrimSuffix(filepath.Base(arg), filepath.Ext(arg))
}

func buildModel(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	params, err := cfg.Params()
	if err != nil {
		return err
	}

	arg := cfg.Model
	if len(args) > 0 {
		arg = args[0]
	}
	vm, err := loadVelocityModel(arg)
	if err != nil {
		return err
	}
	name := modelName(vm, arg)

	logger.Debug("building slowness model", zap.String("model", name))
	m, err := slowness.New(vm, params, slowness.WithLogger(logger.With(zap.String("model", name))))
	if err != nil {
		return fmt.Errorf("build %s: %w", name, err)
	}

	fmt.Println(viz.RenderSummary(name, m))
	if noSave {
		return nil
	}
	return saveModels([]string{name}, []*slowness.Model{m})
}

func batchBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	params, err := cfg.Params()
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("workers") {
		workers = cfg.Workers
	}

	vms := make([]slowness.VelocityModel, 0, len(args))
	names := make([]string, 0, len(args))
	for _, arg := range args {
		vm, err := loadVelocityModel(arg)
		if err != nil {
			return err
		}
		vms = append(vms, vm)
		names = append(names, modelName(vm, arg))
	}

	models, err := slowness.BuildAll(cmd.Context(), vms, params, workers, slowness.WithLogger(logger))
	if err != nil {
		return err
	}
	for i, m := range models {
		fmt.Println(viz.RenderSummary(names[i], m))
	}
	if noSave {
		return nil
	}
	return saveModels(names, models)
}

func saveModels(names []string, models []*slowness.Model) error {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	for i, m := range models {
		runID, err := st.Save(names[i], m)
		if err != nil {
			return err
		}
		logger.Debug("saved run", zap.String("run", runID), zap.String("dir", dataDir))
		fmt.Printf("saved: %s\n", runID)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	fmt.Print(viz.RenderRuns(runs))
	return nil
}

func showLayers(cmd *cobra.Command, args []string) error {
	p, s, err := storage.New(dataDir).LoadLayers(args[0])
	if err != nil {
		return err
	}
	fmt.Print(viz.RenderLayers(p, s, limit))
	return nil
}

func loadSnapshot(runID string) (*export.Snapshot, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, err
	}
	p, s, err := st.LoadLayers(runID)
	if err != nil {
		return nil, err
	}
	return &export.Snapshot{
		Model:          meta.Model,
		Radius:         meta.Radius,
		Params:         meta.Params,
		PLayers:        p,
		SLayers:        s,
		CriticalDepths: meta.CriticalDepths,
		HighSlownessP:  meta.HighSlownessP,
		HighSlownessS:  meta.HighSlownessS,
		FluidZones:     meta.FluidZones,
	}, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	snap, err := loadSnapshot(args[0])
	if err != nil {
		return err
	}
	if len(snap.PLayers) == 0 {
		return fmt.Errorf("no layers to plot")
	}

	waves := slowness.Waves[:]
	if wave != "both" {
		w, ok := slowness.ParseWave(wave)
		if !ok {
			return fmt.Errorf("unknown wave type: %s", wave)
		}
		waves = []slowness.WaveType{w}
	}

	fmt.Printf("run: %s\n", args[0])
	fmt.Printf("model: %s\n", snap.Model)
	fmt.Printf("layers: %d\n\n", len(snap.PLayers))
	for _, w := range waves {
		fmt.Println(viz.PlotProfile(snap.Layers(w), w, 80, 12))
		fmt.Println()
	}

	if svgPath != "" {
		if err := os.WriteFile(svgPath, []byte(export.ProfileSVG(snap, 800, 600)), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgPath)
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	snap, err := loadSnapshot(args[0])
	if err != nil {
		return err
	}

	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	switch format {
	case "json":
		return export.WriteJSON(out, snap)
	case "msgpack":
		return export.WriteMsgpack(out, snap)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
