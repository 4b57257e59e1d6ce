package ui

// FocusManager tracks and rotates focus across the fields of a form.
type FocusManager struct {
	Current  string   // name of the focused field; "" when nothing is focused
	Order    []string // tab order
	OnChange func(from, to string)
}

// Next moves focus to the following field, wrapping at the end.
// With nothing focused it lands on the first field.
func (f *FocusManager) Next() string {
	if len(f.Order) == 0 {
		return ""
	}
	f.move(f.Order[(f.index()+1)%len(f.Order)])
	return f.Current
}

// Prev moves focus to the preceding field, wrapping at the start.
func (f *FocusManager) Prev() string {
	if len(f.Order) == 0 {
		return ""
	}
	i := f.index() - 1
	if i < 0 {
		i = len(f.Order) - 1
	}
	f.move(f.Order[i])
	return f.Current
}

// SetFocus focuses the named field. Returns false if it is not in Order.
func (f *FocusManager) SetFocus(id string) bool {
	for _, o := range f.Order {
		if o == id {
			f.move(id)
			return true
		}
	}
	return false
}

// Blur clears focus.
func (f *FocusManager) Blur() {
	f.move("")
}

// Focused reports whether any field has focus.
func (f *FocusManager) Focused() bool {
	return f.Current != ""
}

func (f *FocusManager) index() int {
	for i, id := range f.Order {
		if id == f.Current {
			return i
		}
	}
	return -1
}

func (f *FocusManager) move(to string) {
	from := f.Current
	f.Current = to
	if f.OnChange != nil && from != to {
		f.OnChange(from, to)
	}
}
