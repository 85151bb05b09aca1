package player

// Driver holds a Session for front ends built on callbacks, such as a
// browser page. Schedule must arrange for Frame(token) to be called later,
// once; Show receives every new frame. Either may be nil.
type Driver struct {
	Session  Session
	Schedule func(PlayToken)
	Show     func(Frame)
}

func (d *Driver) show() {
	if d.Show != nil {
		d.Show(d.Session.Render())
	}
}

func (d *Driver) Reset() {
	d.Session = d.Session.Reset()
	d.show()
}

// Step advances once. It never starts a second frame chain.
func (d *Driver) Step() {
	d.Session, _ = d.Session.Step()
	d.show()
}

func (d *Driver) StepBatch() {
	d.Session = d.Session.StepBatch()
	d.show()
}

func (d *Driver) TogglePlay() {
	s, token, ok := d.Session.TogglePlay()
	d.Session = s
	d.show()
	if ok && d.Schedule != nil {
		d.Schedule(token)
	}
}

// Frame runs a scheduled frame and schedules the next one while the chain
// is current.
func (d *Driver) Frame(token PlayToken) {
	s, next, ok := d.Session.Frame(token)
	d.Session = s
	d.show()
	if ok && d.Schedule != nil {
		d.Schedule(next)
	}
}

func (d *Driver) BeginLoad() LoadTicket {
	s, ticket := d.Session.BeginLoad()
	d.Session = s
	return ticket
}

// CompleteLoad applies a finished read and reports whether it was current.
func (d *Driver) CompleteLoad(ticket LoadTicket, text string, err error) bool {
	s, applied := d.Session.CompleteLoad(ticket, text, err)
	if !applied {
		return false
	}
	d.Session = s
	d.show()
	return true
}

// Stop ends any play chain so frames already scheduled do nothing.
func (d *Driver) Stop() {
	if d.Session.Playing() {
		d.Session, _, _ = d.Session.TogglePlay()
		d.show()
	}
}
