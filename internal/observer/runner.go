package observer

import (
	"context"
	"fmt"
)

// Runner drives a panel from a candle feed.
type Runner struct {
	feed  CandleFeed
	panel *Panel
}

// NewRunner creates a runner over the given feed and panel.
func NewRunner(feed CandleFeed, panel *Panel) *Runner {
	return &Runner{feed: feed, panel: panel}
}

// Run subscribes to the feed and returns a channel of snapshots, one
// per candle. The channel closes when the feed is exhausted or the
// context is cancelled.
func (r *Runner) Run(ctx context.Context, symbol string) (<-chan Snapshot, error) {
	candles, err := r.feed.Subscribe(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("subscribe to %s feed: %w", r.feed.Name(), err)
	}

	snapshots := make(chan Snapshot, feedBuffer)
	go func() {
		defer close(snapshots)
		for {
			select {
			case <-ctx.Done():
				return
			case c, ok := <-candles:
				if !ok {
					return
				}
				snap := r.panel.OnCandle(c)
				select {
				case snapshots <- snap:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return snapshots, nil
}

// Close shuts down the feed.
func (r *Runner) Close() error {
	return r.feed.Close()
}

// Reset restarts the panel state.
func (r *Runner) Reset() {
	r.panel.Reset()
}
