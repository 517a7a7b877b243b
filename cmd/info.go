package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print modem identity and registered operator.",
	Run:   info,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func info(cmd *cobra.Command, args []string) {
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

	device, err := m.DeviceInfo(ctx)
	if err != nil {
		log.Fatalf("device info: %v", err)
	}
	if device == nil {
		fmt.Println("Device:       no identification reported")
	} else {
		fmt.Printf("Manufacturer: %s\n", device.Manufacturer)
		fmt.Printf("Model:        %s\n", device.Model)
		fmt.Printf("Revision:     %s\n", device.Revision)
	}

	network, err := m.NetworkInfo(ctx)
	if err != nil {
		log.Fatalf("network info: %v", err)
	}
	if network == nil {
		fmt.Println("Operator:     not registered")
		return
	}
	fmt.Printf("Operator:     %s (%s)\n", network.FullName, network.MCCMNC())
}
