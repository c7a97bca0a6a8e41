package media

import (
	"errors"
	"fmt"
	"time"

	"github.com/asticode/go-astiav"
)

// Image is one decoded raster frame in packed RGB24 layout.
type Image struct {
	RGB    []byte  // 3 bytes per pixel, row-major
	Width  int     // width in pixels
	Height int     // height in pixels
	PTS    float64 // presentation timestamp in seconds
}

// DecodeError reports a failure to produce valid geometry or frame data
// from a source file.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("media: decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Extract decodes the first video stream of sourcePath and returns its
// frames as RGB rasters, resampled to targetFPS and bounded by
// duration (zero means the whole file). Truncated trailing data is
// dropped by the decoder, never padded. All failures surface as
// *DecodeError; there is no partial result on error.
func Extract(sourcePath string, duration time.Duration, targetFPS int) ([]*Image, error) {
	if targetFPS <= 0 {
		return nil, &DecodeError{Path: sourcePath, Err: fmt.Errorf("invalid target fps %d", targetFPS)}
	}

	d, err := newDemuxer(sourcePath)
	if err != nil {
		return nil, &DecodeError{Path: sourcePath, Err: err}
	}
	defer d.close()

	dec, err := newDecoder(d.videoStream.CodecParameters(), d.timeBase)
	if err != nil {
		return nil, &DecodeError{Path: sourcePath, Err: err}
	}
	defer dec.close()

	pick := newSampler(targetFPS)
	limit := duration.Seconds()

	var frames []*Image
	for {
		pkt, err := d.readPacket()
		if err != nil {
			if errors.Is(err, astiav.ErrEof) {
				break
			}
			return nil, &DecodeError{Path: sourcePath, Err: err}
		}

		img, err := dec.decodePacket(pkt)
		pkt.Free()
		if err != nil {
			return nil, &DecodeError{Path: sourcePath, Err: err}
		}
		if img == nil {
			continue
		}

		if limit > 0 && img.PTS >= limit {
			break
		}
		if pick.keep(img.PTS) {
			frames = append(frames, img)
		}
	}

	return frames, nil
}

// sampler resamples a decoded stream to a fixed frame rate: a frame is
// kept when its PTS reaches the next 1/fps sample point. Frames are
// only dropped, never duplicated.
type sampler struct {
	step float64
	next float64
}

func newSampler(fps int) *sampler {
	return &sampler{step: 1.0 / float64(fps)}
}

func (s *sampler) keep(pts float64) bool {
	if pts+1e-9 < s.next {
		return false
	}
	s.next += s.step
	for s.next <= pts {
		s.next += s.step
	}
	return true
}
