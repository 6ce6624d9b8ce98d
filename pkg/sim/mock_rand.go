package sim

// MockRand is a scripted Rand for tests. Each call consumes the next value
// from its queue; an exhausted queue returns zero.
type MockRand struct {
	Floats []float64
	Ints   []int

	FloatCalls int
	IntnCalls  []int
}

func NewMockRand() *MockRand {
	return &MockRand{}
}

// PushFloat queues values returned by Float64.
func (m *MockRand) PushFloat(v ...float64) *MockRand {
	m.Floats = append(m.Floats, v...)
	return m
}

// PushInt queues values returned by Intn. Values are reduced modulo n.
func (m *MockRand) PushInt(v ...int) *MockRand {
	m.Ints = append(m.Ints, v...)
	return m
}

func (m *MockRand) Float64() float64 {
	m.FloatCalls++
	if len(m.Floats) == 0 {
		return 0
	}
	v := m.Floats[0]
	m.Floats = m.Floats[1:]
	return v
}

func (m *MockRand) Intn(n int) int {
	m.IntnCalls = append(m.IntnCalls, n)
	if len(m.Ints) == 0 || n <= 0 {
		return 0
	}
	v := m.Ints[0]
	m.Ints = m.Ints[1:]
	return v % n
}
