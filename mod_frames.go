package dimviz

// FrameHandle identifies one requested frame. Zero means none.
type FrameHandle uint64

// FrameLoop is the host's frame scheduler. A tick runs only when a frame was
// requested, so a loop that stops requesting stops animating.
type FrameLoop struct {
	last    FrameHandle
	pending FrameHandle
}

// RequestFrame schedules the next tick. Requesting again before the tick
// runs replaces the earlier request.
func (f *FrameLoop) RequestFrame() FrameHandle {
	f.last++
	f.pending = f.last
	return f.pending
}

// CancelFrame drops h if it is still pending.
func (f *FrameLoop) CancelFrame(h FrameHandle) {
	if h != 0 && f.pending == h {
		f.pending = 0
	}
}

func (f *FrameLoop) Pending() FrameHandle {
	return f.pending
}

// Due consumes the pending request, reporting whether there was one.
func (f *FrameLoop) Due() bool {
	if f.pending == 0 {
		return false
	}
	f.pending = 0
	return true
}
