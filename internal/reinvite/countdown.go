package reinvite

import (
	"context"
	"time"

	"github.com/cheggaaa/pb/v3"
)

// countdown blocks for the given number of seconds, advancing a progress
// bar once per second. A cancelled context aborts the wait immediately —
// the caller must not proceed to the reinvite after that.
func (r *Runner) countdown(ctx context.Context, seconds int) error {
	bar := pb.New(seconds)
	bar.SetWriter(r.Out)
	bar.Start()
	defer bar.Finish()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for i := 0; i < seconds; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			bar.Increment()
		}
	}
	return nil
}
