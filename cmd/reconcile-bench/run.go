package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ersantana/rangesync-testbench/internal/experiments"
	"github.com/ersantana/rangesync-testbench/internal/liveview"
	"github.com/ersantana/rangesync-testbench/internal/simtime"
	"github.com/ersantana/rangesync-testbench/internal/telemetry"
	"github.com/ersantana/rangesync-testbench/internal/traceio"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Args:  cobra.NoArgs,
	Short: "Run the reference reconciliation experiments",
	Long:  `Runs the four reference experiments (timestamped_3_4, timestamped_dyn_4, uniform_3_4, uniform_2_2), each on its own goroutine, and writes a wide-row CSV trace per experiment.`,
	RunE:  runHarness,
}

func init() {
	runCmd.Flags().String("seed", "", "32-byte hex PRNG seed (default: 32 zero bytes)")
	runCmd.Flags().String("out-dir", "out", "directory to write experiment CSVs into")
	runCmd.Flags().StringSlice("only", nil, "comma-separated experiment names to run (default: all four)")
	runCmd.Flags().String("live", "", "address (e.g. :8080) to serve a websocket trace tap on; empty disables it")
	runCmd.Flags().String("log-format", "text", "log output format: text or json")
	runCmd.Flags().String("log-level", "info", "log level: debug, info, warn, or error")
}

type runOutcome struct {
	spec experiments.Spec
	rows int
	err  error
}

func runHarness(cmd *cobra.Command, _ []string) error {
	seedHex, _ := cmd.Flags().GetString("seed")
	outDir, _ := cmd.Flags().GetString("out-dir")
	only, _ := cmd.Flags().GetStringSlice("only")
	live, _ := cmd.Flags().GetString("live")
	logFormat, _ := cmd.Flags().GetString("log-format")
	logLevel, _ := cmd.Flags().GetString("log-level")
	startedAt := time.Now()

	seed, err := parseSeed(seedHex)
	if err != nil {
		return err
	}

	logger := telemetry.New(telemetry.Config{
		Level:  telemetry.Level(logLevel),
		Format: telemetry.Format(logFormat),
		Output: os.Stdout,
	})
	runID := uuid.New().String()
	logger = logger.With("run_id", runID)

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("reconcile-bench: creating out dir %s: %w", outDir, err)
	}

	specs := experiments.DefaultSpecs()
	if len(only) > 0 {
		specs = filterSpecs(specs, only)
		if len(specs) == 0 {
			return fmt.Errorf("reconcile-bench: --only matched no experiments: %v", only)
		}
	}

	hub, stopLiveview := startLiveview(live, logger)
	defer stopLiveview()

	results := runExperiments(specs, seed, outDir, hub, logger)

	var failed []error
	for _, res := range results {
		if res.err != nil {
			failed = append(failed, res.err)
			logger.Error("experiment failed", res.err)
		}
	}

	if err := writeRunMeta(outDir, runID, seedHex, startedAt); err != nil {
		logger.Warn("failed to write run metadata: " + err.Error())
	}

	if len(failed) > 0 {
		return fmt.Errorf("reconcile-bench: %d experiment(s) failed", len(failed))
	}
	return nil
}

func runExperiments(specs []experiments.Spec, seed [32]byte, outDir string, hub *liveview.Hub, logger *telemetry.Logger) []runOutcome {
	resultsCh := make(chan runOutcome, len(specs))
	var wg sync.WaitGroup

	for _, spec := range specs {
		wg.Add(1)
		go func(spec experiments.Spec) {
			defer wg.Done()
			resultsCh <- runOne(spec, seed, outDir, hub, logger)
		}(spec)
	}

	go func() {
		wg.Wait()
		close(resultsCh)
	}()

	results := make([]runOutcome, 0, len(specs))
	for res := range resultsCh {
		results = append(results, res)
	}
	return results
}

func runOne(spec experiments.Spec, seed [32]byte, outDir string, hub *liveview.Hub, logger *telemetry.Logger) runOutcome {
	start := time.Now()
	logger.RunStart(spec.Name)

	rng := simtime.NewChaCha8RNG(seed)
	trace, itemSize, monoidSize, err := spec.Run(rng)
	if err != nil {
		return runOutcome{spec: spec, err: fmt.Errorf("experiment %s: %w", spec.Name, err)}
	}

	if hub != nil {
		for _, rec := range trace {
			hub.BroadcastRecord(rec)
		}
	}

	outPath := filepath.Join(outDir, spec.OutFile)
	f, err := os.Create(outPath)
	if err != nil {
		return runOutcome{spec: spec, err: fmt.Errorf("experiment %s: creating %s: %w", spec.Name, outPath, err)}
	}
	defer f.Close()

	if err := traceio.WriteCSV(f, trace, itemSize, monoidSize); err != nil {
		return runOutcome{spec: spec, err: fmt.Errorf("experiment %s: writing %s: %w", spec.Name, outPath, err)}
	}

	logger.RunDone(spec.Name, len(trace), time.Since(start))
	return runOutcome{spec: spec, rows: len(trace)}
}

func startLiveview(addr string, logger *telemetry.Logger) (*liveview.Hub, func()) {
	if addr == "" {
		return nil, func() {}
	}

	hub := liveview.NewHub()
	stop := make(chan struct{})
	go hub.Run(stop)

	mux := http.NewServeMux()
	mux.Handle("/live", liveview.NewHandler(hub))
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("liveview server stopped", err)
		}
	}()
	logger.Info(fmt.Sprintf("liveview broadcasting on ws://%s/live", addr))

	return hub, func() {
		close(stop)
		srv.Close()
	}
}

func filterSpecs(specs []experiments.Spec, only []string) []experiments.Spec {
	wanted := make(map[string]bool, len(only))
	for _, name := range only {
		wanted[name] = true
	}
	filtered := make([]experiments.Spec, 0, len(specs))
	for _, s := range specs {
		if wanted[s.Name] {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

func parseSeed(seedHex string) ([32]byte, error) {
	var seed [32]byte
	if seedHex == "" {
		return seed, nil
	}
	decoded, err := hex.DecodeString(seedHex)
	if err != nil {
		return seed, fmt.Errorf("reconcile-bench: --seed must be hex: %w", err)
	}
	if len(decoded) != 32 {
		return seed, fmt.Errorf("reconcile-bench: --seed must decode to 32 bytes, got %d", len(decoded))
	}
	copy(seed[:], decoded)
	return seed, nil
}

type runMeta struct {
	RunID     string `json:"run_id"`
	Seed      string `json:"seed"`
	StartedAt string `json:"started_at"`
}

func writeRunMeta(outDir, runID, seedHex string, startedAt time.Time) error {
	if seedHex == "" {
		seedHex = hex.EncodeToString(make([]byte, 32))
	}
	meta := runMeta{RunID: runID, Seed: seedHex, StartedAt: startedAt.UTC().Format(time.RFC3339)}
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outDir, "meta.json"), data, 0o644)
}
