package main

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"radmem/internal/faultinject"
	"radmem/internal/memview"
	"radmem/internal/redundancy"
	"radmem/internal/scrubber"
)

func newScrubCmd() *cobra.Command {
	var (
		regions  int
		duration time.Duration
	)

	cmd := &cobra.Command{
		Use:   "scrub",
		Short: "Demonstrate background scrubbing of silently corrupted cells",
		Long: `scrub registers a set of triple-vote cells, corrupts one replica in
each, then starts the scrubber and waits. No foreground code ever reads
the cells; every repair observed is the background sweep doing its job.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()

			if regions <= 0 {
				regions = 16
			}
			if duration <= 0 {
				duration = 3 * cfg.Scrubber.Interval
			}

			reg := prometheus.NewRegistry()
			scr := scrubber.New(cfg.Scrubber, logger, reg)

			injector := faultinject.New()
			cells := make([]*redundancy.TripleVote[uint64], regions)
			for i := range cells {
				cells[i] = redundancy.NewTripleVote(uint64(i) * 0x0101010101010101)
				scr.RegisterCell(cells[i], memview.SizeOf[redundancy.TripleVote[uint64]]())
				idx := injector.ReplicaIndex(3)
				cells[i].CorruptReplica(idx, injector.FlipBitValue(cells[i].Replicas()[idx]))
			}

			corrupted := 0
			for _, c := range cells {
				if c.HasErrors() {
					corrupted++
				}
			}
			logger.Info("cells corrupted, starting scrubber",
				zap.Int("cells", regions),
				zap.Int("corrupted", corrupted),
			)

			scr.Start()
			time.Sleep(duration)
			scr.Stop()

			remaining := 0
			for _, c := range cells {
				if c.HasErrors() {
					remaining++
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(),
				"cells=%d corrupted=%d repaired=%d remaining=%d interval=%v waited=%v\n",
				regions, corrupted, corrupted-remaining, remaining, cfg.Scrubber.Interval, duration)
			return nil
		},
	}

	cmd.Flags().IntVar(&regions, "regions", 16, "Number of cells to register")
	cmd.Flags().DurationVar(&duration, "duration", 0, "How long to let the scrubber run (default 3 intervals)")
	return cmd
}
