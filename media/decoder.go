package media

import (
	"fmt"

	"github.com/asticode/go-astiav"
)

// decoder decodes video packets and converts frames to RGB24 at the
// source resolution.
type decoder struct {
	codecCtx *astiav.CodecContext
	swsCtx   *astiav.SoftwareScaleContext
	frame    *astiav.Frame
	rgbFrame *astiav.Frame

	width    int
	height   int
	timeBase astiav.Rational

	closed bool
}

func newDecoder(codecParams *astiav.CodecParameters, timeBase astiav.Rational) (*decoder, error) {
	dec := &decoder{
		timeBase: timeBase,
		width:    codecParams.Width(),
		height:   codecParams.Height(),
	}

	if dec.width <= 0 || dec.height <= 0 {
		return nil, fmt.Errorf("unable to determine video dimensions")
	}

	codec := astiav.FindDecoder(codecParams.CodecID())
	if codec == nil {
		return nil, fmt.Errorf("video codec not found: %s", codecParams.CodecID())
	}

	dec.codecCtx = astiav.AllocCodecContext(codec)
	if dec.codecCtx == nil {
		return nil, fmt.Errorf("failed to allocate video codec context")
	}

	if err := codecParams.ToCodecContext(dec.codecCtx); err != nil {
		dec.close()
		return nil, fmt.Errorf("failed to copy video codec params: %w", err)
	}

	if err := dec.codecCtx.Open(codec, nil); err != nil {
		dec.close()
		return nil, fmt.Errorf("failed to open video codec: %w", err)
	}

	dec.frame = astiav.AllocFrame()
	dec.rgbFrame = astiav.AllocFrame()

	return dec, nil
}

func (dec *decoder) initSwsContext() error {
	var err error
	dec.swsCtx, err = astiav.CreateSoftwareScaleContext(
		dec.width, dec.height, dec.codecCtx.PixelFormat(),
		dec.width, dec.height, astiav.PixelFormatRgb24,
		astiav.NewSoftwareScaleContextFlags(astiav.SoftwareScaleContextFlagBilinear),
	)
	if err != nil {
		return fmt.Errorf("failed to create sws context: %w", err)
	}

	dec.rgbFrame.SetWidth(dec.width)
	dec.rgbFrame.SetHeight(dec.height)
	dec.rgbFrame.SetPixelFormat(astiav.PixelFormatRgb24)

	if err := dec.rgbFrame.AllocBuffer(1); err != nil {
		return fmt.Errorf("failed to allocate RGB frame buffer: %w", err)
	}

	return nil
}

// decodePacket decodes one packet and returns its frame as an RGB
// raster, or nil when the decoder needs more input.
func (dec *decoder) decodePacket(pkt *astiav.Packet) (*Image, error) {
	if dec.closed {
		return nil, fmt.Errorf("decoder closed")
	}

	if err := dec.codecCtx.SendPacket(pkt); err != nil {
		return nil, fmt.Errorf("failed to send video packet: %w", err)
	}

	if err := dec.codecCtx.ReceiveFrame(dec.frame); err != nil {
		if err == astiav.ErrEof || err == astiav.ErrEagain {
			return nil, nil // No frame available yet
		}
		return nil, fmt.Errorf("failed to receive video frame: %w", err)
	}

	pts := float64(dec.frame.Pts()) * float64(dec.timeBase.Num()) / float64(dec.timeBase.Den())

	if dec.swsCtx == nil {
		if err := dec.initSwsContext(); err != nil {
			dec.frame.Unref()
			return nil, err
		}
	}

	if err := dec.swsCtx.ScaleFrame(dec.frame, dec.rgbFrame); err != nil {
		dec.frame.Unref()
		return nil, fmt.Errorf("failed to convert frame: %w", err)
	}

	data := dec.rgbFrame.Data()
	rgbBytes, err := data.Bytes(1)
	if err != nil {
		dec.frame.Unref()
		return nil, fmt.Errorf("failed to get RGB bytes: %w", err)
	}

	// Copy the data since the frame buffer is reused.
	rgb := make([]byte, len(rgbBytes))
	copy(rgb, rgbBytes)

	dec.frame.Unref()

	return &Image{
		RGB:    rgb,
		Width:  dec.width,
		Height: dec.height,
		PTS:    pts,
	}, nil
}

func (dec *decoder) close() {
	if dec.closed {
		return
	}
	dec.closed = true

	if dec.frame != nil {
		dec.frame.Free()
		dec.frame = nil
	}
	if dec.rgbFrame != nil {
		dec.rgbFrame.Free()
		dec.rgbFrame = nil
	}
	if dec.swsCtx != nil {
		dec.swsCtx.Free()
		dec.swsCtx = nil
	}
	if dec.codecCtx != nil {
		dec.codecCtx.Free()
		dec.codecCtx = nil
	}
}
