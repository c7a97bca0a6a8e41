package media

import (
	"fmt"
	"sync"

	"github.com/asticode/go-astiav"
)

func init() {
	// Suppress FFmpeg log messages
	astiav.SetLogLevel(astiav.LogLevelQuiet)
}

// demuxer opens a media file and reads packets from its first video
// stream. Packets from other streams are discarded.
type demuxer struct {
	formatCtx   *astiav.FormatContext
	videoStream *astiav.Stream
	videoIdx    int
	timeBase    astiav.Rational

	mu     sync.Mutex
	closed bool
}

func newDemuxer(path string) (*demuxer, error) {
	d := &demuxer{videoIdx: -1}

	d.formatCtx = astiav.AllocFormatContext()
	if d.formatCtx == nil {
		return nil, fmt.Errorf("failed to allocate format context")
	}

	if err := d.formatCtx.OpenInput(path, nil, nil); err != nil {
		d.formatCtx.Free()
		return nil, fmt.Errorf("failed to open input: %w", err)
	}

	if err := d.formatCtx.FindStreamInfo(nil); err != nil {
		d.close()
		return nil, fmt.Errorf("failed to find stream info: %w", err)
	}

	for _, stream := range d.formatCtx.Streams() {
		if stream.CodecParameters().MediaType() == astiav.MediaTypeVideo {
			d.videoIdx = stream.Index()
			d.videoStream = stream
			d.timeBase = stream.TimeBase()
			break
		}
	}

	if d.videoIdx == -1 {
		d.close()
		return nil, fmt.Errorf("no video stream found")
	}

	return d, nil
}

// readPacket returns the next video packet. Non-video packets are freed
// and skipped. Returns astiav.ErrEof at end of stream.
func (d *demuxer) readPacket() (*astiav.Packet, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil, fmt.Errorf("demuxer closed")
	}

	for {
		pkt := astiav.AllocPacket()
		if pkt == nil {
			return nil, fmt.Errorf("failed to allocate packet")
		}

		if err := d.formatCtx.ReadFrame(pkt); err != nil {
			pkt.Free()
			return nil, err
		}

		if pkt.StreamIndex() == d.videoIdx {
			return pkt, nil
		}
		pkt.Free()
	}
}

func (d *demuxer) close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}
	d.closed = true

	if d.formatCtx != nil {
		d.formatCtx.CloseInput()
		d.formatCtx.Free()
		d.formatCtx = nil
	}
}
