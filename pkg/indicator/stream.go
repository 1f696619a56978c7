package indicator

import "context"

// streamBuffer sizes the output channel so a slow consumer does not stall
// the producer immediately.
const streamBuffer = 100

// Stream connects an indicator to a channel pipeline: every value received
// on in advances the indicator, and the output lands on the returned
// channel. The output channel closes when in closes or ctx is canceled.
//
// The spawned goroutine is the sole owner of the indicator until the
// output channel closes; callers must not touch it while the stream runs.
func Stream[In, Out any](ctx context.Context, ind Indicator[In, Out], in <-chan In) <-chan Out {
	out := make(chan Out, streamBuffer)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case v, ok := <-in:
				if !ok {
					return
				}
				select {
				case <-ctx.Done():
					return
				case out <- ind.Next(v):
				}
			}
		}
	}()
	return out
}
