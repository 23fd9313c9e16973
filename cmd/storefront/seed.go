// cmd/storefront/seed.go
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"storefront/internal/platform/di"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write the sample catalog to the remote store",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()

		c, err := di.NewContainer(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer c.Close()

		items, err := c.Products.InitializeProducts(ctx)
		if err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
		logger.Info("catalog seeded", zap.Int("products", len(items)))
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d products\n", len(items))
		return nil
	},
}
