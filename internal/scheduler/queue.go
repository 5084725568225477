package scheduler

// FrameFunc is invoked once per display refresh.
type FrameFunc func()

// FrameID identifies a pending registration. Zero is never issued.
type FrameID uint64

// Host is the display's refresh-callback registration. A registered callback
// fires once; continuing requires registering again.
type Host interface {
	RequestFrame(fn FrameFunc) FrameID
	CancelFrame(id FrameID)
}

type entry struct {
	id FrameID
	fn FrameFunc
}

// Queue is the host-side bookkeeping for frame callbacks. Hosts embed it and
// call Dispatch once per refresh.
type Queue struct {
	nextID  FrameID
	pending []entry
	running []entry
}

func (q *Queue) RequestFrame(fn FrameFunc) FrameID {
	q.nextID++
	q.pending = append(q.pending, entry{id: q.nextID, fn: fn})
	return q.nextID
}

func (q *Queue) CancelFrame(id FrameID) {
	for i, e := range q.pending {
		if e.id == id {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
	// cancelled by an earlier callback of the batch being dispatched
	for i := range q.running {
		if q.running[i].id == id {
			q.running[i].fn = nil
			return
		}
	}
}

// Pending reports how many callbacks wait for the next dispatch.
func (q *Queue) Pending() int {
	return len(q.pending)
}

// Dispatch runs every callback registered before the call, once each.
// Callbacks registered while dispatching wait for the next Dispatch.
// Returns the number of callbacks run.
func (q *Queue) Dispatch() int {
	q.running, q.pending = q.pending, nil

	ran := 0
	for i := range q.running {
		fn := q.running[i].fn
		if fn == nil {
			continue
		}
		q.running[i].fn = nil
		fn()
		ran++
	}

	q.running = nil
	return ran
}
