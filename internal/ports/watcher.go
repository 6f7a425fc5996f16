package ports

import "context"

// WatcherPort calls onChange for every write to one of paths until ctx is
// done.
type WatcherPort interface {
	Watch(ctx context.Context, paths []string, onChange func(path string)) error
}
