package agents

import "math/rand"

// Picker chooses an index in [0, n)
type Picker interface {
	Pick(n int) int
}

// RandomPicker draws from the process-wide source, which is safe for concurrent use
type RandomPicker struct{}

func (RandomPicker) Pick(n int) int {
	return rand.Intn(n)
}

func pick[T any](p Picker, items []T) T {
	return items[p.Pick(len(items))]
}
