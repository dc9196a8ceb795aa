package ports

// ProfileSource resolves an exercise name to the landmark identifiers that
// are diagnostic for judging its form. Lookup is case-insensitive; a nil
// result means the exercise is unknown and no landmark filter applies.
// Implementations are immutable after construction.
type ProfileSource interface {
	Landmarks(exercise string) []string
}
