package cmd

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

var (
	waitURL      string
	waitTimeout  time.Duration
	waitInterval time.Duration
)

// waitreadyCmd waits until places-server reports healthy status
var waitreadyCmd = &cobra.Command{
	Use:   "waitready",
	Short: "Wait until places-server /health answers 200",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := &http.Client{Timeout: waitInterval}
		deadline := time.Now().Add(waitTimeout)
		for time.Now().Before(deadline) {
			req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, waitURL, nil)
			if err != nil {
				return fmt.Errorf("invalid --url: %w", err)
			}
			resp, err := client.Do(req)
			if err == nil && resp.StatusCode == http.StatusOK {
				_ = resp.Body.Close()
				return nil
			}
			if resp != nil {
				_ = resp.Body.Close()
			}
			time.Sleep(waitInterval)
		}
		return fmt.Errorf("timed out waiting for %s", waitURL)
	},
}

func init() {
	waitreadyCmd.Flags().StringVar(&waitURL, "url", "http://127.0.0.1:8080/health", "readiness probe URL")
	waitreadyCmd.Flags().DurationVar(&waitTimeout, "timeout", 2*time.Minute, "how long to wait")
	waitreadyCmd.Flags().DurationVar(&waitInterval, "interval", 2*time.Second, "delay between probes")
	rootCmd.AddCommand(waitreadyCmd)
}
