package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check whether the backend is up",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()

		health, err := newManager().CheckHealth(ctx)
		if err != nil {
			return fmt.Errorf("backend %s: %w", cfg.Origin, err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "status:      %s\n", health.Status)
		fmt.Fprintf(out, "gemini:      %t\n", health.GeminiAPIConfigured)
		fmt.Fprintf(out, "translation: %s\n", health.Services.Translation)
		fmt.Fprintf(out, "ai analysis: %s\n", health.Services.AIAnalysis)
		if !health.Healthy() {
			return fmt.Errorf("backend %s reports %q", cfg.Origin, health.Status)
		}
		return nil
	},
}
