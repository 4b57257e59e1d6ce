package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"communityboard/internal/model"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// statsCmd prints the population statistics once.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the community population statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

// announcementsCmd prints the announcement list once.
var announcementsCmd = &cobra.Command{
	Use:   "announcements",
	Short: "Print published announcements in server order",
	Args:  cobra.NoArgs,
	RunE:  runAnnouncements,
}

// snapshotCmd fetches stats and announcements concurrently.
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Print statistics and announcements in one report",
	Long: `Fetches the statistics and the announcement list concurrently and
prints both. Fails if either request fails.`,
	Args: cobra.NoArgs,
	RunE: runSnapshot,
}

// commandContext is cancelled by SIGINT/SIGTERM or after timeout.
func commandContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	return ctx, func() {
		cancel()
		stop()
	}
}

func runStats(cmd *cobra.Command, args []string) error {
	client, timeout, err := newClient()
	if err != nil {
		return err
	}
	ctx, cancel := commandContext(timeout)
	defer cancel()

	stats, err := client.GetAdminStats(ctx)
	if err != nil {
		return fmt.Errorf("failed to load dashboard statistics: %w", err)
	}
	printStats(cmd.OutOrStdout(), stats)
	return nil
}

func runAnnouncements(cmd *cobra.Command, args []string) error {
	client, timeout, err := newClient()
	if err != nil {
		return err
	}
	ctx, cancel := commandContext(timeout)
	defer cancel()

	list, err := client.GetAnnouncements(ctx)
	if err != nil {
		return fmt.Errorf("failed to load announcements: %w", err)
	}
	printAnnouncements(cmd.OutOrStdout(), list)
	return nil
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	client, timeout, err := newClient()
	if err != nil {
		return err
	}
	ctx, cancel := commandContext(timeout)
	defer cancel()

	var (
		stats model.AdminStats
		list  []model.Announcement
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = client.GetAdminStats(gctx)
		if err != nil {
			return fmt.Errorf("failed to load dashboard statistics: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		list, err = client.GetAnnouncements(gctx)
		if err != nil {
			return fmt.Errorf("failed to load announcements: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printStats(out, stats)
	fmt.Fprintln(out)
	printAnnouncements(out, list)
	return nil
}

func printStats(w io.Writer, s model.AdminStats) {
	fmt.Fprintln(w, "Community Dashboard")
	for _, slice := range s.Slices() {
		fmt.Fprintf(w, "  %-10s %6d  (%d%%)\n", slice.Name, slice.Value, slice.Percent)
	}
	fmt.Fprintf(w, "Total Community Members: %d\n", s.Total)
	if !s.Timestamp.IsZero() {
		fmt.Fprintf(w, "Last updated: %s\n", s.Timestamp.Local().Format(time.DateTime))
	}
}

func printAnnouncements(w io.Writer, list []model.Announcement) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No announcements available.")
		return
	}
	fmt.Fprintf(w, "Announcements (%d)\n", len(list))
	for _, a := range list {
		fmt.Fprintf(w, "\n%s\n", a.Title)
		if !a.CreatedAt.IsZero() {
			fmt.Fprintf(w, "Posted on: %s\n", a.CreatedAt.Local().Format(time.DateTime))
		}
		for _, line := range strings.Split(strings.TrimSpace(a.Content), "\n") {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}
}
