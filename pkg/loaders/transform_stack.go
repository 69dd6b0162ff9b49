package loaders

import "github.com/df07/go-whitted-raytracer/pkg/core"

// TransformStack is the modelling transform state of a scene description.
// The bottom entry is the identity and is never popped.
type TransformStack struct {
	stack []core.Matrix4
}

// NewTransformStack creates a stack holding only the identity
func NewTransformStack() *TransformStack {
	return &TransformStack{stack: []core.Matrix4{core.Identity()}}
}

// Top returns the current transform
func (ts *TransformStack) Top() core.Matrix4 {
	return ts.stack[len(ts.stack)-1]
}

// Push duplicates the current transform
func (ts *TransformStack) Push() {
	ts.stack = append(ts.stack, ts.Top())
}

// Pop discards the current transform. It reports false, and leaves the
// stack alone, when only the base identity is left.
func (ts *TransformStack) Pop() bool {
	if len(ts.stack) == 1 {
		return false
	}
	ts.stack = ts.stack[:len(ts.stack)-1]
	return true
}

// RightMultiply replaces the current transform T with T·m, so m applies to
// object coordinates before everything already on the stack.
func (ts *TransformStack) RightMultiply(m core.Matrix4) {
	ts.stack[len(ts.stack)-1] = ts.Top().Mul(m)
}

// Depth returns the number of entries, including the base
func (ts *TransformStack) Depth() int {
	return len(ts.stack)
}
