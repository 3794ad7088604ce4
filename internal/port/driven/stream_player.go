package driven

import "context"

// StreamHandle represents an acquired stream resource.
type StreamHandle interface {
	// Close releases the resource. It is safe to call more than once.
	Close()
}

// StreamPlayer defines the interface for acquiring playable streams.
// This is a driven port that will be implemented by concrete adapters
// (e.g., an HLS client, an embed resolver).
type StreamPlayer interface {
	// Open begins acquiring the stream at url. Acquisition is asynchronous:
	// exactly one of onReady or onError is invoked once the outcome is known,
	// unless the handle is closed first, in which case neither may fire.
	// The returned handle must be closed to release resources, on every
	// outcome including errors.
	Open(ctx context.Context, url string, onReady func(), onError func(error)) (StreamHandle, error)
}
