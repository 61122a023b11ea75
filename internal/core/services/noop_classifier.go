package services

import (
	"context"

	"github.com/CrokNoks/account-sub000/internal/core/domain"
	portssvc "github.com/CrokNoks/account-sub000/internal/core/ports/services"
)

// noopClassifier is the classifier used when no oracle is deployed. It never
// predicts anything, which callers must treat as "no suggestion".
type noopClassifier struct{}

// NewNoopClassifier creates a classifier that always abstains.
func NewNoopClassifier() portssvc.ClassifierSvc {
	return &noopClassifier{}
}

var _ portssvc.ClassifierSvc = (*noopClassifier)(nil)

func (noopClassifier) Predict(ctx context.Context, features domain.ClassifierFeatures) (*domain.CategoryPrediction, error) {
	return nil, nil
}
