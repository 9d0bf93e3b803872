package input

import (
	"castmatch/internal/domain/entities"
)

// MatchUseCase is the engine's boundary: one synchronous, in-memory matching
// run. initial may carry pre-locked acceptances; nil starts empty.
type MatchUseCase interface {
	Run(initial *entities.Assignment) (*entities.MatchResult, error)
}
