package infra

import (
	"context"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
)

// WatchFile polls path every interval and closes the returned channel once
// its modification time changes or the file disappears. It stops silently
// when ctx is done.
func WatchFile(ctx context.Context, path string, interval time.Duration) (<-chan struct{}, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	originalTime := stat.ModTime()
	log.WithField("path", path).Debugln("watching file")

	changed := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				stat, err := os.Stat(path)
				if err != nil || !originalTime.Equal(stat.ModTime()) {
					close(changed)
					return
				}
			}
		}
	}()
	return changed, nil
}

// WatchExecutable watches the running binary, so a deploy that replaces it
// can be noticed and the process restarted by its supervisor.
func WatchExecutable(ctx context.Context, interval time.Duration) (<-chan struct{}, error) {
	exeFilename, err := os.Executable()
	if err != nil {
		return nil, err
	}
	return WatchFile(ctx, exeFilename, interval)
}
