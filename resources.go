package vkquad

// releaseStack records how to destroy each object in creation order and
// destroys them in reverse.
type releaseStack struct {
	names []string
	fns   []func()
}

func (r *releaseStack) push(name string, fn func()) {
	r.names = append(r.names, name)
	r.fns = append(r.fns, fn)
}

func (r *releaseStack) len() int {
	return len(r.fns)
}

// unwind runs every release function, newest first, and returns the names in
// the order they ran. The stack is empty afterwards.
func (r *releaseStack) unwind() []string {
	order := make([]string, 0, len(r.fns))
	for i := len(r.fns) - 1; i >= 0; i-- {
		r.fns[i]()
		order = append(order, r.names[i])
	}
	r.names = nil
	r.fns = nil
	return order
}
