package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubetwist/internal/recorder"
	"github.com/SeamusWaldron/cubetwist/internal/smartcube"
)

var scanTimeout time.Duration

var smartcubeCmd = &cobra.Command{
	Use:   "smartcube",
	Short: "Manage GoCube smart cubes",
}

var smartcubeScanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for GoCube devices",
	Long: `Scan for nearby GoCube smart cubes over Bluetooth.

Play with a found cube using:
  cubetwist play --smartcube <address>`,
	RunE: runSmartcubeScan,
}

func init() {
	rootCmd.AddCommand(smartcubeCmd)
	smartcubeCmd.AddCommand(smartcubeScanCmd)
	smartcubeScanCmd.Flags().DurationVar(&scanTimeout, "timeout", 5*time.Second, "Scan duration")
}

func runSmartcubeScan(cmd *cobra.Command, args []string) error {
	client, err := smartcube.NewClient(smartcube.NewHandler(3, nil))
	if err != nil {
		return err
	}

	fmt.Printf("Scanning for GoCube devices (%s)...\n", scanTimeout)
	devices, err := client.Scan(context.Background(), scanTimeout)
	if err != nil {
		return err
	}

	if len(devices) == 0 {
		fmt.Println("No GoCube devices found")
		fmt.Println()
		fmt.Println("Tips:")
		fmt.Println("  - Ensure your GoCube is powered on")
		fmt.Println("  - Turn a face to wake it up")
		fmt.Println("  - Check that Bluetooth is enabled")
		return nil
	}

	last := ""
	if stateFile, err := recorder.NewDefaultStateFile(); err == nil {
		last = stateFile.LastDeviceID()
	}

	fmt.Printf("Found %d device(s):\n", len(devices))
	for _, d := range devices {
		mark := ""
		if d.Address == last {
			mark = "  (last used)"
		}
		fmt.Printf("  - %s (address: %s, RSSI: %d)%s\n", d.Name, d.Address, d.RSSI, mark)
	}
	return nil
}
