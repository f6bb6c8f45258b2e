package fetching

import (
	"context"
	"fmt"
	"log/slog"

	"lrcsolid/src/infra/watcher"
)

// Watch runs the pipeline once over root, then keeps processing new audio
// files as they appear in the directory until the context is cancelled.
func (s *Service) Watch(ctx context.Context, root string) error {
	summary, err := s.Run(ctx, root)
	if err != nil {
		return err
	}
	slog.Info("Initial pass complete, watching for new files", "path", root, "summary", summary.String())

	events := make(chan watcher.FileEvent, 64)
	w, err := watcher.NewWatcher(events)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.Start(ctx, root); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer w.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event := <-events:
			outcome := s.processFile(ctx, event.Path)
			s.logOutcome(outcome)
		}
	}
}
