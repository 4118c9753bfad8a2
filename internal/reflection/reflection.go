package reflection

import (
	"context"
	"errors"

	"github.com/tridiary/tridiary/internal/models"
)

// ErrDisabled is returned by generators that are compiled out of the build.
var ErrDisabled = errors.New("reflection generation is disabled")

// Generator produces a short free-text reflection on a day's diary content
// and goal progress. Failures are silent at the call site: callers leave
// AIReflection unset and move on.
type Generator interface {
	Generate(ctx context.Context, entry models.DiaryEntry, goals []models.Goal) (string, error)
}

// Disabled is the offline generator. It performs no network call and never
// produces text.
type Disabled struct{}

func (Disabled) Generate(ctx context.Context, entry models.DiaryEntry, goals []models.Goal) (string, error) {
	return "", ErrDisabled
}
