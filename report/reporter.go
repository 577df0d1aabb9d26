// Package report provides reporting collaborator implementations that
// receive the per frame annotation records, an in memory channel reporter
// for pipeline integrations and a JSON line writer for dataset export
package report

import (
	"sync"
	"sync/atomic"

	"github.com/visiondatakit/go-skelannot/annotate/result"
)

// Frame bundles one frame's annotation records with its frame number
type Frame struct {
	Frame   int64           `json:"frame"`
	Records []result.Record `json:"records"`
}

// ChannelReporter buffers published frames on a channel for asynchronous
// consumption.  Publishing never blocks the annotation pass, frames are
// dropped when the consumer cannot keep up
type ChannelReporter struct {
	frames  chan Frame
	dropped int64

	mu  sync.Mutex
	reg result.Registration
}

// NewChannelReporter creates a channel reporter holding up to buffer
// frames
func NewChannelReporter(buffer int) *ChannelReporter {
	return &ChannelReporter{
		frames: make(chan Frame, buffer),
	}
}

// Register stores the template schema payload for later retrieval by the
// consumer
func (r *ChannelReporter) Register(reg result.Registration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.reg = reg
}

// Registration returns the stored template schema payload
func (r *ChannelReporter) Registration() result.Registration {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.reg
}

// Publish queues the frame without blocking.  When the buffer is full the
// frame is dropped and counted
func (r *ChannelReporter) Publish(frame int64, records []result.Record) {

	select {
	case r.frames <- Frame{Frame: frame, Records: records}:
	default:
		atomic.AddInt64(&r.dropped, 1)
	}
}

// Frames returns the channel consumers read published frames from
func (r *ChannelReporter) Frames() <-chan Frame {
	return r.frames
}

// Dropped returns the number of frames dropped due to a full buffer
func (r *ChannelReporter) Dropped() int64 {
	return atomic.LoadInt64(&r.dropped)
}

// Close closes the frame channel.  Publish must not be called after Close
func (r *ChannelReporter) Close() {
	close(r.frames)
}
