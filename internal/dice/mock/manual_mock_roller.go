package mockdice

import (
	"fmt"
	"sync"
)

// ManualMockRoller implements dice.Roller for testing with predetermined results.
// Float and int rolls are scripted independently and consumed in order.
type ManualMockRoller struct {
	mu         sync.Mutex
	floats     []float64
	ints       []int
	floatIndex int
	intIndex   int
}

// NewManualMockRoller creates a new mock roller
func NewManualMockRoller() *ManualMockRoller {
	return &ManualMockRoller{}
}

// SetFloats sets the Float64 results
func (m *ManualMockRoller) SetFloats(floats ...float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.floats = floats
	m.floatIndex = 0
}

// SetInts sets the Intn results
func (m *ManualMockRoller) SetInts(ints ...int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ints = ints
	m.intIndex = 0
}

// Calls reports how many rolls of each kind were consumed
func (m *ManualMockRoller) Calls() (floats, ints int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.floatIndex, m.intIndex
}

// Intn returns the next scripted int. A missing or out of range script is a
// test bug, so it panics with the position.
func (m *ManualMockRoller) Intn(n int) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.intIndex >= len(m.ints) {
		panic(fmt.Sprintf("no more predetermined int rolls available (used %d of %d)", m.intIndex, len(m.ints)))
	}
	v := m.ints[m.intIndex]
	m.intIndex++
	if v < 0 || v >= n {
		panic(fmt.Sprintf("invalid roll %d for Intn(%d)", v, n))
	}
	return v
}

// Float64 returns the next scripted float
func (m *ManualMockRoller) Float64() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.floatIndex >= len(m.floats) {
		panic(fmt.Sprintf("no more predetermined float rolls available (used %d of %d)", m.floatIndex, len(m.floats)))
	}
	v := m.floats[m.floatIndex]
	m.floatIndex++
	return v
}
