package services

import (
	"context"

	"github.com/CrokNoks/account-sub000/internal/core/domain"
)

// ClassifierSvc is the advisory category oracle. It is consumed, never
// implemented, by this core: a nil prediction (or any error) must leave ledger
// and period operations fully correct.
type ClassifierSvc interface {
	Predict(ctx context.Context, features domain.ClassifierFeatures) (*domain.CategoryPrediction, error)
}

// ClassificationDispatcher hands transaction features to the out-of-band
// classification pipeline. Implementations must be fire-and-forget: they are
// called off the authoritative write path and their failures are only logged.
type ClassificationDispatcher interface {
	DispatchClassification(ctx context.Context, features domain.ClassifierFeatures) error
}
