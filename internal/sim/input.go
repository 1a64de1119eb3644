package sim

// Key identifies a steering key the player can hold.
type Key int

const (
	KeyLeft Key = iota
	KeyRight
)

// steering tracks the currently-held directional keys and reduces them
// to a single override scalar.
type steering struct {
	left  bool
	right bool
}

func (st *steering) keyDown(k Key) {
	switch k {
	case KeyLeft:
		st.left = true
	case KeyRight:
		st.right = true
	}
}

func (st *steering) keyUp(k Key) {
	switch k {
	case KeyLeft:
		st.left = false
	case KeyRight:
		st.right = false
	}
}

// override returns -1 while only left is held, +1 while only right is
// held, and 0 otherwise (neither or both). A non-zero override
// supersedes the autonomous heading drift for that step.
func (st *steering) override() float64 {
	switch {
	case st.left && !st.right:
		return -1
	case st.right && !st.left:
		return 1
	default:
		return 0
	}
}
