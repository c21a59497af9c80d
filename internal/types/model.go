// Package types defines the canonical model shared by extraction, comparison
// and reporting.
package types

import "fmt"

// RelationKind names a semantic relationship kind. The values are already
// canonical keys (lowercase ASCII words).
type RelationKind string

const (
	Inheritance RelationKind = "inheritance"
	Realization RelationKind = "realization"
	Composition RelationKind = "composition"
	Aggregation RelationKind = "aggregation"
	Association RelationKind = "association"
	Dependency  RelationKind = "dependency"
)

// Relationship is a directed, typed edge between two entity keys. Source and
// Target are always the semantic endpoints, never the textual left/right
// order of a reversed arrow.
type Relationship struct {
	Source string
	Kind   string
	Target string
}

func (r Relationship) String() string {
	return fmt.Sprintf("%s -%s-> %s", r.Source, r.Kind, r.Target)
}

// Attribute is an attribute key owned by an entity key.
type Attribute struct {
	Entity string
	Name   string
}

func (a Attribute) String() string {
	return a.Entity + "." + a.Name
}

// ElementKind tags the values of the overall union.
type ElementKind string

const (
	KindEntity       ElementKind = "entity"
	KindRelationship ElementKind = "relationship"
	KindAttribute    ElementKind = "attribute"
)

// Element is one model element tagged with its kind, so that values of
// different kinds never compare equal even when their text matches.
type Element struct {
	Kind ElementKind
	A    string
	B    string
	C    string
}

// Model is the canonical (entities, relationships, attributes) triple
// extracted from a single document. It is not modified after extraction.
type Model struct {
	Entities      Set[string]
	Relationships Set[Relationship]
	Attributes    Set[Attribute]
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{
		Entities:      NewSet[string](),
		Relationships: NewSet[Relationship](),
		Attributes:    NewSet[Attribute](),
	}
}

// Elements returns the tagged union of all three element sets.
func (m *Model) Elements() Set[Element] {
	out := make(Set[Element], m.Entities.Len()+m.Relationships.Len()+m.Attributes.Len())
	for e := range m.Entities {
		out.Add(Element{Kind: KindEntity, A: e})
	}
	for r := range m.Relationships {
		out.Add(Element{Kind: KindRelationship, A: r.Source, B: r.Kind, C: r.Target})
	}
	for a := range m.Attributes {
		out.Add(Element{Kind: KindAttribute, A: a.Entity, B: a.Name})
	}
	return out
}

// Stats counts the elements of each kind.
type Stats struct {
	Classes       int `json:"classes" yaml:"classes"`
	Relationships int `json:"relationships" yaml:"relationships"`
	Attributes    int `json:"attributes" yaml:"attributes"`
}

// Stats returns the element counts of m.
func (m *Model) Stats() Stats {
	return Stats{
		Classes:       m.Entities.Len(),
		Relationships: m.Relationships.Len(),
		Attributes:    m.Attributes.Len(),
	}
}
