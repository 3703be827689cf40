package mux

// Op is one recorded operation on the Fake selector.
type Op struct {
	// Select is true for a Select, false for a Deselect.
	Select bool
	// Addr is the selected address; zero for Deselect.
	Addr Address
}

// Fake is a test double recording the select/deselect sequence.
type Fake struct {
	// Ops contains every Select and Deselect in order.
	Ops []Op

	// Selected holds the currently powered address, or nil when idle.
	Selected *Address

	// SelectError, if set, will be returned by Select.
	SelectError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFake creates a Fake selector.
func NewFake() *Fake {
	return &Fake{}
}

// Select records the selection and marks addr powered.
func (f *Fake) Select(addr Address) error {
	if f.SelectError != nil {
		return f.SelectError
	}
	f.Ops = append(f.Ops, Op{Select: true, Addr: addr})
	a := addr
	f.Selected = &a
	return nil
}

// Deselect records the deselection and marks the rail idle.
func (f *Fake) Deselect() error {
	f.Ops = append(f.Ops, Op{})
	f.Selected = nil
	return nil
}

// Close marks the selector as closed.
func (f *Fake) Close() error {
	f.Selected = nil
	f.Closed = true
	return nil
}

// Selections returns just the selected addresses, in order.
func (f *Fake) Selections() []Address {
	var out []Address
	for _, op := range f.Ops {
		if op.Select {
			out = append(out, op.Addr)
		}
	}
	return out
}

var _ Selector = (*Fake)(nil)
