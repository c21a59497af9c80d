package extractor

import "github.com/untoldecay/modelscore/internal/types"

// Extractor is the interface for diagram extraction strategies
type Extractor interface {
	Extract(document string) (*types.Model, error)
	Name() string
}
