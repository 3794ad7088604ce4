package driven

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/bluenviron/gohlslib/v2"

	"github.com/DavideLaterza81/ItalianTV/internal/port/driven"
)

// HLSStreamPlayer implements the StreamPlayer port for HLS streams using
// gohlslib. A stream counts as ready once the client has parsed the playlist
// and discovered its tracks.
type HLSStreamPlayer struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHLSStreamPlayer creates a new gohlslib-backed stream player. A nil
// httpClient falls back to http.DefaultClient.
func NewHLSStreamPlayer(httpClient *http.Client, logger *slog.Logger) *HLSStreamPlayer {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &HLSStreamPlayer{httpClient: httpClient, logger: logger}
}

type hlsHandle struct {
	client *gohlslib.Client
	closed atomic.Bool
}

// Close stops the client. Safe to call more than once.
func (h *hlsHandle) Close() {
	if h.closed.Swap(true) {
		return
	}
	h.client.Close()
}

// Open starts an HLS client for url. onReady fires once tracks are
// discovered; onError fires if the client dies before or after that. Neither
// fires after the handle is closed.
func (p *HLSStreamPlayer) Open(ctx context.Context, url string, onReady func(), onError func(error)) (driven.StreamHandle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	handle := &hlsHandle{}
	client := &gohlslib.Client{
		URI:        url,
		HTTPClient: p.httpClient,
		OnTracks: func(tracks []*gohlslib.Track) error {
			p.logger.Debug("hls tracks discovered", "url", url, "count", len(tracks))
			if !handle.closed.Load() {
				onReady()
			}
			return nil
		},
	}
	handle.client = client

	if err := client.Start(); err != nil {
		return nil, err
	}

	go func() {
		err := client.Wait2()
		if err != nil && !errors.Is(err, gohlslib.ErrClientEOS) && !errors.Is(err, context.Canceled) {
			if !handle.closed.Load() {
				onError(err)
			}
		}
	}()

	return handle, nil
}
