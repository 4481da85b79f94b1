package replay

// NoStep marks a cell without a recorded stone. Step numbers start at 1.
const NoStep = 0

// StepMap records, per cell, the step at which the stone currently on that
// cell first appeared.
type StepMap struct {
	size  int
	cells [][]int
}

// NewStepMap creates an empty step map for a size x size board.
func NewStepMap(size int) *StepMap {
	m := &StepMap{size: size}
	m.cells = make([][]int, size)
	for i := range m.cells {
		m.cells[i] = make([]int, size)
	}
	return m
}

// Size returns the board size the map was created for.
func (m *StepMap) Size() int {
	return m.size
}

// Get returns the recorded step at row, col, or NoStep.
func (m *StepMap) Get(row, col int) int {
	return m.cells[row][col]
}

// Has reports whether a step is recorded at row, col.
func (m *StepMap) Has(row, col int) bool {
	return m.cells[row][col] != NoStep
}

// Set records step at row, col.
func (m *StepMap) Set(row, col, step int) {
	m.cells[row][col] = step
}

// Clear removes the record at row, col.
func (m *StepMap) Clear(row, col int) {
	m.cells[row][col] = NoStep
}

// Reset clears every cell.
func (m *StepMap) Reset() {
	for i := range m.cells {
		for j := range m.cells[i] {
			m.cells[i][j] = NoStep
		}
	}
}

// Empty reports whether no cell holds a step.
func (m *StepMap) Empty() bool {
	for i := range m.cells {
		for j := range m.cells[i] {
			if m.cells[i][j] != NoStep {
				return false
			}
		}
	}
	return true
}

// Snapshot returns a copy of the map as a nested slice.
func (m *StepMap) Snapshot() [][]int {
	out := make([][]int, m.size)
	for i := range m.cells {
		out[i] = make([]int, m.size)
		copy(out[i], m.cells[i])
	}
	return out
}
