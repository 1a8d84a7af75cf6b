package generation

// Test-only aliases for unexported constants used by the external test package.
const (
	MaxImageBytes = maxImageBytes
	SeedRange     = seedRange
)
