package main

import (
	"encoding/csv"
	"fmt"
	"math/rand/v2"
	"net/http"
	"os"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"radmem/internal/faultinject"
)

func newStressCmd() *cobra.Command {
	var (
		trials      int
		seed        uint64
		csvPath     string
		metricsAddr string
		name        string
	)

	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Run a fault-injection campaign across all container variants",
		Long: `stress corrupts one replica per trial with a single-bit flip and
reports, per variant, how often voting masked the fault and how often an
explicit repair was needed. Results go to the log; --csv additionally
writes the report as CSV to the given path ("-" for stdout).`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()

			if trials <= 0 {
				trials = cfg.Stress.Trials
			}
			if seed == 0 {
				seed = cfg.Stress.Seed
			}
			if seed == 0 {
				seed = rand.Uint64()
			}

			if metricsAddr != "" {
				reg := prometheus.NewRegistry()
				go func() {
					mux := http.NewServeMux()
					mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
					if err := http.ListenAndServe(metricsAddr, mux); err != nil {
						logger.Warn("metrics endpoint failed", zap.Error(err))
					}
				}()
			}

			report := faultinject.Campaign{
				Name:   name,
				Trials: trials,
				Seed:   seed,
				Logger: logger,
			}.Run()

			for _, vr := range report.Variants {
				if vr.Result.StillWrong > 0 {
					logger.Warn("variant left wrong values after repair",
						zap.String("variant", vr.Variant),
						zap.Int("still_wrong", vr.Result.StillWrong),
					)
				}
			}

			if csvPath != "" {
				if err := writeReportCSV(csvPath, report); err != nil {
					return fmt.Errorf("write csv: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&trials, "trials", 0, "Trials per variant (default from config)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Injector seed, 0 for nondeterministic")
	cmd.Flags().StringVar(&csvPath, "csv", "", `CSV output path, "-" for stdout`)
	cmd.Flags().StringVar(&metricsAddr, "metrics", "", "Serve prometheus metrics on this address during the run")
	cmd.Flags().StringVar(&name, "name", "stress", "Campaign name recorded in the report")
	return cmd
}

// writeReportCSV renders a campaign report as CSV. Report export is the
// CLI's responsibility; the core owns no file format.
func writeReportCSV(path string, report faultinject.Report) error {
	out := os.Stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	w := csv.NewWriter(out)
	defer w.Flush()

	header := []string{
		"campaign_id", "campaign", "seed", "variant", "trials",
		"self_corrected", "undetected_wrong", "repaired_by_call", "still_wrong",
		"self_correction_rate", "post_repair_correctness",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, vr := range report.Variants {
		r := vr.Result
		row := []string{
			report.ID.String(),
			report.Name,
			strconv.FormatUint(report.Seed, 10),
			vr.Variant,
			strconv.Itoa(r.Trials),
			strconv.Itoa(r.SelfCorrected),
			strconv.Itoa(r.UndetectedWrong),
			strconv.Itoa(r.RepairedByCall),
			strconv.Itoa(r.StillWrong),
			strconv.FormatFloat(r.SelfCorrectionRate(), 'f', 4, 64),
			strconv.FormatFloat(r.PostRepairCorrectness(), 'f', 4, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}
