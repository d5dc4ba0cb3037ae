package main

import (
	"context"
	"fmt"
	"time"

	"campusvenue/cron"
	"campusvenue/database"
	bookingRepo "campusvenue/database/repository/booking"
	"campusvenue/services/booking"
	"campusvenue/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newSweepCommand() *cobra.Command {
	var (
		cutoffText string
		queue      bool
	)
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Mark bookings that ended by the cutoff as Finished",
		RunE: func(cmd *cobra.Command, args []string) error {
			cutoff := time.Now()
			if cutoffText != "" {
				parsed, err := time.Parse(time.RFC3339, cutoffText)
				if err != nil {
					return fmt.Errorf("invalid --cutoff %q: %w", cutoffText, err)
				}
				cutoff = parsed
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()

			if queue {
				id, err := cron.EnqueueSweep(ctx, cutoff)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "queued sweep %s\n", id)
				return nil
			}
			return runSweep(ctx, cmd, cutoff)
		},
	}
	cmd.Flags().StringVar(&cutoffText, "cutoff", "", "RFC3339 instant; bookings ending at or before it are finished (default now)")
	cmd.Flags().BoolVar(&queue, "queue", false, "enqueue the sweep for the running worker instead of applying it directly")
	return cmd
}

func runSweep(ctx context.Context, cmd *cobra.Command, cutoff time.Time) error {
	logger := utils.GetLogger()
	defer logger.Sync()

	database.InitDB()
	defer func() {
		if err := database.Disconnect(context.Background()); err != nil {
			logger.Warn("sweep: mongo disconnect failed", zap.Error(err))
		}
	}()

	svc := &booking.DefaultBookingService{
		Bookings: bookingRepo.NewMongoBookingRepo(),
		Logger:   logger.Named("booking"),
	}
	n, err := svc.FinishBookingsEndedBy(ctx, cutoff)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "finished %d bookings ended by %s\n", n, cutoff.Format(time.RFC3339))
	return nil
}
