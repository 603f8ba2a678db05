package cache

import "context"

// LocalLookupInvalidator is used when Redis is not configured. Publishing is a
// no-op and Subscribe just waits for cancellation.
type LocalLookupInvalidator struct {
	done chan struct{}
}

// NewLocalLookupInvalidator creates a new LocalLookupInvalidator
func NewLocalLookupInvalidator() *LocalLookupInvalidator {
	return &LocalLookupInvalidator{done: make(chan struct{})}
}

func (l *LocalLookupInvalidator) Publish(context.Context, string) error {
	return nil
}

func (l *LocalLookupInvalidator) Subscribe(ctx context.Context, _ func(scope string)) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		return nil
	}
}

func (l *LocalLookupInvalidator) Close() error {
	select {
	case <-l.done:
	default:
		close(l.done)
	}
	return nil
}

var _ LookupInvalidator = (*LocalLookupInvalidator)(nil)
