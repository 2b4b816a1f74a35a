package mock

import (
	"context"

	"github.com/fwojciec/kitchensage"
)

var _ kitchensage.Asker = (*Asker)(nil)

// Asker is a mock implementation of kitchensage.Asker.
type Asker struct {
	AskFn func(ctx context.Context, planID, question string) (string, error)
}

func (a *Asker) Ask(ctx context.Context, planID, question string) (string, error) {
	return a.AskFn(ctx, planID, question)
}
