package player

// FrameStore is an ordered, immutable collection of converted frames.
// It is built once at load time and only read during playback.
type FrameStore struct {
	frames []Frame
}

// NewFrameStore creates a store from already-converted frames. It
// returns ErrNoFrames if the sequence is empty.
func NewFrameStore(frames []Frame) (*FrameStore, error) {
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}
	return &FrameStore{frames: frames}, nil
}

// Len returns the number of frames.
func (s *FrameStore) Len() int {
	return len(s.frames)
}

// Frame returns the frame at index i. The index must be in range; the
// pacing controller guarantees this via modulo arithmetic.
func (s *FrameStore) Frame(i int) Frame {
	return s.frames[i]
}

// Rows returns the row count of the first frame. All frames in one
// session share it.
func (s *FrameStore) Rows() int {
	return len(s.frames[0])
}
