package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vjt/quectel-5g-tools/config"
	"github.com/vjt/quectel-5g-tools/quectel"
	"github.com/vjt/quectel-5g-tools/radio"
)

var rootFlags = struct {
	configPath *string
	device     *string
}{}

var rootCmd = &cobra.Command{
	Use:   "quectel-5g-tools",
	Short: "Monitor signal and cell topology of a Quectel 4G/5G modem.",
	Run:   root,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootFlags.configPath = rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the YAML config file")
	rootFlags.device = rootCmd.PersistentFlags().StringP("device", "d", "", "Serial device of the AT command port (overrides config)")
}

// loadConfig loads the file/env configuration and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*rootFlags.configPath)
	if err != nil {
		return nil, err
	}
	if *rootFlags.device != "" {
		cfg.Modem.Device = *rootFlags.device
	}
	return cfg, nil
}

// openModem dials the configured serial device, auto-detecting the AT
// command port when none is configured.
func openModem(ctx context.Context, cfg *config.Config) (*quectel.Modem, error) {
	device := cfg.Modem.Device
	if device == "" {
		detected, err := quectel.AutoDetect(ctx, "")
		if err != nil {
			return nil, err
		}
		log.Printf("detected modem on %s", detected)
		device = detected
	}

	return quectel.New(ctx, quectel.Config{
		Dialer: quectel.SerialDialer{
			Device:   device,
			BaudRate: cfg.Modem.BaudRate,
		},
		ATTimeout: cfg.Modem.Timeout.Std(),
	})
}

func root(cmd *cobra.Command, args []string) {
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

	ticker := time.NewTicker(cfg.Monitor.RefreshInterval.Std())
	defer ticker.Stop()

	for {
		snapshot, err := m.Poll(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("poll: %v", err)
		} else {
			render(snapshot, cfg.Monitor.BeepsEnabled)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func render(s *quectel.Snapshot, beeps bool) {
	fmt.Printf("--- %s\n", time.Now().Format(time.TimeOnly))

	if cell := s.LTE; cell != nil {
		rsrp, rsrq := cell.RSRP, cell.RSRQ
		sinr := cell.SINR
		fmt.Printf("LTE  B%-3d %s PCI:%-4d eNB:%d/%d %s\n",
			cell.Band, radio.FormatFrequency(cell.EARFCN, false),
			cell.PCI, cell.ENodeBID(), cell.SectorID(),
			radio.FormatLTEBandwidth(cell.DLBandwidth, false))
		fmt.Printf("     RSRP:%d (%s) RSRQ:%d (%s) SINR:%.1f (%s) RSSI:%d\n",
			rsrp, radio.ClassifyRSRP(&rsrp),
			rsrq, radio.ClassifyRSRQ(&rsrq),
			sinr, radio.ClassifySINR(&sinr, false),
			cell.RSSI)
	}

	if cell := s.NR; cell != nil {
		rsrp, rsrq := cell.RSRP, cell.RSRQ
		sinr := cell.SINR
		fmt.Printf("NR   n%-3d %s PCI:%-4d %s\n",
			cell.Band, radio.FormatFrequency(cell.ARFCN, true),
			cell.PCI, radio.FormatNRBandwidth(cell.Bandwidth))
		fmt.Printf("     RSRP:%d (%s) RSRQ:%d (%s) SINR:%.1f (%s)\n",
			rsrp, radio.ClassifyRSRP(&rsrp),
			rsrq, radio.ClassifyRSRQ(&rsrq),
			sinr, radio.ClassifySINR(&sinr, true))
		if beeps {
			ring(radio.BeepCount(&sinr))
		}
	}

	for _, c := range s.Carriers {
		state := "-"
		if c.State != nil {
			state = *c.State
		}
		bandwidth := radio.FormatLTEBandwidth(c.BandwidthRaw, true)
		if c.Is5G() {
			bandwidth = radio.FormatNRBandwidth(c.BandwidthRaw)
		}
		fmt.Printf(" -> %s %-12s PCI:%-4d %s %s %s\n",
			c.Type, c.BandName, c.PCI, bandwidth,
			radio.FormatFrequency(c.Channel, c.Is5G()), state)
	}

	for _, n := range s.Neighbours {
		fmt.Printf(" ~~ %s %s EARFCN:%d PCI:%d RSRP:%d RSRQ:%d\n",
			n.Locality, n.Technology, n.EARFCN, n.PCI, n.RSRP, n.RSRQ)
	}
}

// ring writes terminal bells, one per count.
func ring(count int) {
	if count > 0 {
		fmt.Print(strings.Repeat("\a", count))
	}
}
