package trycatch

// Marker saves the resume target of one protected extent. It is owned by the
// extent that entered it and is invalid once that extent exits.
type Marker struct {
	depth int
}

// jump is the panic value carrying control to the extent owning target.
type jump struct {
	target *Marker
}

// Enter installs m as the innermost protected extent and returns the marker
// it replaces. Every Enter must be paired with exactly one Restore.
func (rt *Runtime) Enter(m *Marker) *Marker {
	prev := rt.top
	m.depth = 1
	if prev != nil {
		m.depth = prev.depth + 1
	}
	rt.top = m
	return prev
}

// Restore reinstalls prev, discarding the marker of the extent being exited.
func (rt *Runtime) Restore(prev *Marker) {
	rt.top = prev
}

// Depth returns the number of active protected extents.
func (rt *Runtime) Depth() int {
	if rt.top == nil {
		return 0
	}
	return rt.top.depth
}

// protect runs body as the protected section of the extent owning m. It
// reports whether control came back through a throw. Panics that are not
// addressed to m restore the scope stack to prev and keep unwinding.
func (rt *Runtime) protect(m, prev *Marker, body func()) (thrown bool) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if j, ok := r.(*jump); ok && j.target == m {
			thrown = true
			return
		}
		rt.Restore(prev)
		panic(r)
	}()
	body()
	return false
}
