package viewmodel

// NavState models the mobile navigation overlay. The overlay starts closed on
// every page load, the hamburger button toggles it, and dismissing an
// already-closed overlay stays closed. The desktop sidebar is not part of this
// state: its visibility is a pure CSS breakpoint concern.
type NavState struct {
	open bool
}

// ClosedNav returns the initial navigation state.
func ClosedNav() NavState {
	return NavState{}
}

// Open reports whether the overlay is visible.
func (n NavState) Open() bool {
	return n.open
}

// Toggle flips the overlay between open and closed.
func (n NavState) Toggle() NavState {
	return NavState{open: !n.open}
}

// Close dismisses the overlay. Closing a closed overlay is a no-op.
func (n NavState) Close() NavState {
	return NavState{}
}
