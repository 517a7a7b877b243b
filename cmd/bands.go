package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vjt/quectel-5g-tools/at"
)

var bandsFlags = struct {
	apply *bool
}{}

var bandsCmd = &cobra.Command{
	Use:   "bands",
	Short: "Show the modem band preference, or apply the configured one.",
	Run:   bands,
}

func init() {
	bandsFlags.apply = bandsCmd.Flags().Bool("apply", false, "Apply the band lists from the config file")
	rootCmd.AddCommand(bandsCmd)
}

func bands(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m, err := openModem(ctx, cfg)
	if err != nil {
		log.Fatalf("open modem: %v", err)
	}
	defer m.Close()

	if *bandsFlags.apply {
		if len(cfg.Bands.LTE) > 0 {
			if err := m.SetLTEBands(ctx, cfg.Bands.LTE); err != nil {
				log.Fatalf("set lte bands: %v", err)
			}
			log.Printf("lte bands set to %v", cfg.Bands.LTE)
		}
		if len(cfg.Bands.NR) > 0 {
			if err := m.SetNRBands(ctx, cfg.Bands.NR); err != nil {
				log.Fatalf("set nr bands: %v", err)
			}
			log.Printf("nr bands set to %v", cfg.Bands.NR)
		}
	}

	prefs, err := m.BandConfig(ctx)
	if err != nil {
		log.Fatalf("band config: %v", err)
	}

	fmt.Printf("Mode:      %s\n", prefs[at.PrefModePreference])
	fmt.Printf("LTE bands: %s\n", prefs[at.PrefLTEBands])
	fmt.Printf("NSA bands: %s\n", prefs[at.PrefNSABands])
	fmt.Printf("SA bands:  %s\n", prefs[at.PrefSABands])
}
