package domain

import (
	"context"

	"sarcasm/internal/core/artifact"
)

// ServicePort is consumed by handlers, the CLI and other modules
type ServicePort interface {
	Predict(ctx context.Context, text string) (Prediction, error)
	Features(ctx context.Context, text string) (FeatureReport, error)
	Profile() Profile
}

// ModelPort exposes the loaded artifacts for meta endpoints
type ModelPort interface {
	Model() artifact.Description
	Ready(ctx context.Context) error
}
