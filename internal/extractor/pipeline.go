package extractor

import (
	"context"
	"fmt"
	"time"

	"github.com/untoldecay/modelscore/internal/debug"
	"github.com/untoldecay/modelscore/internal/types"
)

type Pipeline struct {
	extractor Extractor
}

// NewPipeline returns a pipeline around ext, defaulting to the PlantUML
// extractor when ext is nil.
func NewPipeline(ext Extractor) *Pipeline {
	if ext == nil {
		ext = NewPlantUMLExtractor()
	}
	return &Pipeline{extractor: ext}
}

// ExtractionResult contains the extracted model and metadata
type ExtractionResult struct {
	Source    string
	Model     *types.Model
	Duration  time.Duration
	Extractor string
}

// Run extracts the model of one document. source is only used for
// diagnostics.
func (p *Pipeline) Run(ctx context.Context, source, document string) (*ExtractionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	model, err := p.extractor.Extract(document)
	if err != nil {
		return nil, fmt.Errorf("%s extraction of %s failed: %w", p.extractor.Name(), source, err)
	}

	res := &ExtractionResult{
		Source:    source,
		Model:     model,
		Duration:  time.Since(start),
		Extractor: p.extractor.Name(),
	}
	stats := model.Stats()
	debug.Logf("extracted %s in %s: %d classes, %d relationships, %d attributes",
		source, res.Duration, stats.Classes, stats.Relationships, stats.Attributes)
	return res, nil
}
