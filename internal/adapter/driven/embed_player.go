package driven

import (
	"context"
	"sync/atomic"

	"github.com/DavideLaterza81/ItalianTV/internal/port/driven"
)

// EmbedStreamPlayer implements the StreamPlayer port for streams played
// through an external embed (YouTube, generic web pages). There is nothing to
// acquire server-side, so the stream is reported ready immediately.
type EmbedStreamPlayer struct{}

// NewEmbedStreamPlayer creates a new embed stream player.
func NewEmbedStreamPlayer() *EmbedStreamPlayer {
	return &EmbedStreamPlayer{}
}

type embedHandle struct {
	closed atomic.Bool
}

func (h *embedHandle) Close() {
	h.closed.Swap(true)
}

// Open reports the stream ready without touching the network. onError never
// fires.
func (p *EmbedStreamPlayer) Open(ctx context.Context, url string, onReady func(), onError func(error)) (driven.StreamHandle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	handle := &embedHandle{}
	onReady()
	return handle, nil
}
