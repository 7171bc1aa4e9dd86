package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"

	"github.com/gridlock-labs/lattice/internal/client"
	"github.com/gridlock-labs/lattice/internal/events"
	"github.com/gridlock-labs/lattice/internal/model"
)

var watchCmd = &cobra.Command{
	Use:     "watch",
	Short:   "Watch the workspace for item changes",
	GroupID: "analysis",
	RunE: func(cmd *cobra.Command, args []string) error {
		ws := requireWorkspace()
		interval, _ := cmd.Flags().GetDuration("interval")
		once, _ := cmd.Flags().GetBool("once")

		req := &client.ListItemsRequest{WorkspaceID: ws}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		seen := make(map[string]time.Time)

		// Initial query.
		if err := queryAndPrint(ctx, req, seen); err != nil {
			return err
		}
		if once {
			return nil
		}

		// Event-driven when NATS is reachable, otherwise polling.
		if natsURL := os.Getenv("LATTICE_NATS_URL"); natsURL != "" {
			return watchNATS(ctx, natsURL, req, seen)
		}
		return watchPoll(ctx, interval, req, seen)
	},
}

// watchNATS subscribes to NATS events and re-queries on changes with debounce.
func watchNATS(ctx context.Context, natsURL string, req *client.ListItemsRequest, seen map[string]time.Time) error {
	// reconnectCh receives a signal when the NATS client reconnects after
	// a disconnect, so we can immediately re-query for missed events.
	reconnectCh := make(chan struct{}, 1)

	sub, err := events.NewNATSSubscriber(natsURL,
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Printf("nats: disconnected: %v", err)
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			log.Printf("nats: reconnected")
			select {
			case reconnectCh <- struct{}{}:
			default:
			}
		}),
	)
	if err != nil {
		return fmt.Errorf("connecting to NATS: %w", err)
	}
	defer sub.Close()

	ch, cancel, err := sub.Subscribe("lattice.>")
	if err != nil {
		return fmt.Errorf("subscribing to events: %w", err)
	}
	defer cancel()

	debounce := time.NewTimer(0)
	debounce.Stop()
	// Drain the timer channel in case it fired between NewTimer and Stop.
	select {
	case <-debounce.C:
	default:
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			if ws := eventWorkspace(msg); ws != "" && ws != req.WorkspaceID {
				continue
			}
			debounce.Reset(200 * time.Millisecond)
		case <-reconnectCh:
			debounce.Reset(0) // immediate re-query
		case <-debounce.C:
			if err := queryAndPrint(ctx, req, seen); err != nil {
				return err
			}
		}
	}
}

// watchPoll polls for changes at the given interval.
func watchPoll(ctx context.Context, interval time.Duration, req *client.ListItemsRequest, seen map[string]time.Time) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(interval):
		}
		if err := queryAndPrint(ctx, req, seen); err != nil {
			return err
		}
	}
}

// queryAndPrint calls ListItems, diffs against the seen map, and prints any changes.
func queryAndPrint(ctx context.Context, req *client.ListItemsRequest, seen map[string]time.Time) error {
	resp, err := latticeClient.ListItems(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	changed := diffItems(resp.Items, seen)
	if len(changed) > 0 {
		if jsonOutput {
			printJSON(changed)
		} else {
			printItemListTable(changed, resp.Total)
		}
	}
	return nil
}

// eventWorkspace returns the workspace a bus message belongs to. Undecodable
// payloads and events without a workspace (link removals) return "" and are
// treated as relevant.
func eventWorkspace(msg events.Message) string {
	ev, err := msg.Decode()
	if err != nil {
		return ""
	}
	return events.WorkspaceOf(ev)
}

// diffItems compares items against the seen map and returns those that are new
// or have a different updated_at timestamp. It updates seen in place.
func diffItems(items []*model.WorkItem, seen map[string]time.Time) []*model.WorkItem {
	var changed []*model.WorkItem
	for _, it := range items {
		prev, ok := seen[it.ID]
		if !ok || !it.UpdatedAt.Equal(prev) {
			changed = append(changed, it)
		}
		seen[it.ID] = it.UpdatedAt
	}
	return changed
}

func init() {
	watchCmd.Flags().Duration("interval", 5*time.Second, "polling interval")
	watchCmd.Flags().Bool("once", false, "exit after first query")
}
