package output

import (
	"context"

	"github.com/crimson-sun/airq/internal/model"
)

// Output defines the interface for prediction result destinations.
type Output interface {
	Write(ctx context.Context, r model.Result) error
	Close() error
}
