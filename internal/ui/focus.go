package ui

// FocusManager tracks and rotates focus across the controls of a modal.
type FocusManager struct {
	Current string   // ID of the focused control
	Order   []string // Tab order for focus rotation
}

// NewFocusManager focuses the first of order.
func NewFocusManager(order ...string) *FocusManager {
	f := &FocusManager{Order: order}
	if len(order) > 0 {
		f.Current = order[0]
	}
	return f
}

// Next advances focus to the next control in order and returns it.
func (f *FocusManager) Next() string { return f.rotate(1) }

// Prev moves focus to the previous control in order and returns it.
func (f *FocusManager) Prev() string { return f.rotate(-1) }

func (f *FocusManager) rotate(step int) string {
	n := len(f.Order)
	if n == 0 {
		return ""
	}
	idx := 0
	for i, id := range f.Order {
		if id == f.Current {
			idx = i
			break
		}
	}
	f.Current = f.Order[((idx+step)%n+n)%n]
	return f.Current
}

// SetFocus focuses id. Returns false if id is not in Order.
func (f *FocusManager) SetFocus(id string) bool {
	for _, o := range f.Order {
		if o == id {
			f.Current = id
			return true
		}
	}
	return false
}

// Is reports whether id has focus.
func (f *FocusManager) Is(id string) bool { return f.Current == id }
