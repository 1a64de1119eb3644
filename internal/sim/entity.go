package sim

// Vec is a 2D point or velocity in field coordinates (y grows downward).
type Vec struct {
	X float64
	Y float64
}

// Ship is the single steerable agent. Alive transitions to false on the
// first collision and never back.
type Ship struct {
	Pos     Vec
	Heading float64 // radians
	Radius  float64
	Alive   bool
}

// Obstacle drifts across the field with a constant velocity. Obstacles
// enter at a field edge aimed generally inward and are removed once
// they drift past the cull margin; they never collide with each other.
type Obstacle struct {
	Pos    Vec
	Vel    Vec
	Radius float64
}

// Snapshot is an immutable copy of the visible session state, taken for
// rendering and inspection. Producing or reading a snapshot consumes no
// randomness and feeds nothing back into the simulation.
type Snapshot struct {
	Ship      Ship
	Obstacles []Obstacle
	Width     float64
	Height    float64
	Elapsed   float64
	Score     int // floor of Elapsed; final once GameOver
	Seed      uint32
	GameOver  bool
}
