package extractor

import (
	"github.com/untoldecay/modelscore/internal/normalize"
	"github.com/untoldecay/modelscore/internal/types"
)

// PlantUMLExtractor reads PlantUML class diagrams.
type PlantUMLExtractor struct{}

func NewPlantUMLExtractor() *PlantUMLExtractor {
	return &PlantUMLExtractor{}
}

func (p *PlantUMLExtractor) Name() string {
	return "plantuml"
}

// Extract never fails; malformed text contributes nothing.
func (p *PlantUMLExtractor) Extract(document string) (*types.Model, error) {
	return Extract(document), nil
}

// Extract parses a PlantUML class diagram into its canonical model.
func Extract(document string) *types.Model {
	return Build(Scan(document))
}

// Build folds an event stream into a canonical model. Every name is reduced
// to its simple name and normalized; elements with an empty key are
// dropped.
func Build(events []Event) *types.Model {
	m := types.NewModel()
	for _, ev := range events {
		switch ev := ev.(type) {
		case EntityDeclared:
			if key := normalize.Key(ev.Name); key != "" {
				m.Entities.Add(key)
			}

		case RelationshipFound:
			source, target := Orient(ev)
			src, dst := normalize.Key(source), normalize.Key(target)
			if src == "" || dst == "" {
				continue
			}
			m.Relationships.Add(types.Relationship{
				Source: src,
				Kind:   normalize.Identifier(string(ev.Arrow.Kind)),
				Target: dst,
			})

		case AttributeLine:
			raw, ok := AttributeName(ev.Line)
			if !ok {
				continue
			}
			owner, name := normalize.Key(ev.Owner), normalize.Identifier(raw)
			if owner != "" && name != "" {
				m.Attributes.Add(types.Attribute{Entity: owner, Name: name})
			}
		}
	}
	return m
}
