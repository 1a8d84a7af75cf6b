package dice

//go:generate mockgen -destination=mock/mock_roller.go -package=mockdice -source=roller.go

// Roller is the random source behind every trait, rarity and prompt draw.
// This allows us to inject scripted rolls for testing
type Roller interface {
	// Intn returns a uniform value in [0, n). n must be positive.
	Intn(n int) int

	// Float64 returns a uniform value in [0, 1).
	Float64() float64
}
