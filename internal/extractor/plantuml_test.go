package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/untoldecay/modelscore/internal/types"
)

func rel(source string, kind types.RelationKind, target string) types.Relationship {
	return types.Relationship{Source: source, Kind: string(kind), Target: target}
}

func attr(entity, name string) types.Attribute {
	return types.Attribute{Entity: entity, Name: name}
}

func TestExtractEntities(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want []string
	}{
		{name: "empty document", doc: "", want: []string{}},
		{name: "bare class", doc: "class Order", want: []string{"order"}},
		{name: "all keywords", doc: "class A\nabstract class B\ninterface C\nenum D", want: []string{"a", "b", "c", "d"}},
		{name: "keywords are case-insensitive", doc: "CLASS Foo\nInterface Bar", want: []string{"foo", "bar"}},
		{name: "qualified name keeps simple name", doc: "class com.foo.Order\nclass Order", want: []string{"order"}},
		{name: "quoted name", doc: `class "Order Item"`, want: []string{"orderitem"}},
		{name: "quoted qualified name", doc: `class "billing.Invoice"`, want: []string{"invoice"}},
		{name: "alias does not replace declared name", doc: `class "Customer Account" as CA`, want: []string{"customeraccount"}},
		{name: "stereotype and generics", doc: "class Repository<T> <<interface>> {\n}", want: []string{"repository"}},
		{name: "snake and camel collapse", doc: "class order_item\nclass OrderItem", want: []string{"orderitem"}},
		{name: "keyword inside a word is not a declaration", doc: "subclass Foo", want: []string{}},
		{name: "keyword used as endpoint", doc: "Class --> Student", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.doc)
			assert.ElementsMatch(t, tt.want, got.Entities.Values())
		})
	}
}

func TestExtractRelationshipsArrowLexicon(t *testing.T) {
	tests := []struct {
		doc  string
		want types.Relationship
	}{
		{doc: "Child --|> Parent", want: rel("child", types.Inheritance, "parent")},
		{doc: "Parent <|-- Child", want: rel("child", types.Inheritance, "parent")},
		{doc: "Impl ..|> Api", want: rel("impl", types.Realization, "api")},
		{doc: "Api <|.. Impl", want: rel("impl", types.Realization, "api")},
		{doc: "Whole *-- Part", want: rel("part", types.Composition, "whole")},
		{doc: "Part --* Whole", want: rel("part", types.Composition, "whole")},
		{doc: "Whole o-- Part", want: rel("part", types.Aggregation, "whole")},
		{doc: "Part --o Whole", want: rel("part", types.Aggregation, "whole")},
		{doc: "A --> B", want: rel("a", types.Association, "b")},
		{doc: "B <-- A", want: rel("a", types.Association, "b")},
		{doc: "A -- B", want: rel("a", types.Association, "b")},
		{doc: "A ..> B", want: rel("a", types.Dependency, "b")},
		{doc: "B <.. A", want: rel("a", types.Dependency, "b")},
	}

	for _, tt := range tests {
		t.Run(tt.doc, func(t *testing.T) {
			got := Extract(tt.doc)
			assert.ElementsMatch(t, []types.Relationship{tt.want}, got.Relationships.Values())
		})
	}
}

func TestExtractRelationships(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want []types.Relationship
	}{
		{
			name: "reverse spelling stores the same triple",
			doc:  "A <|-- B\nB --|> A",
			want: []types.Relationship{rel("b", types.Inheritance, "a")},
		},
		{
			name: "cardinalities and label",
			doc:  `Order "1" *-- "many" LineItem : contains >`,
			want: []types.Relationship{rel("lineitem", types.Composition, "order")},
		},
		{
			name: "quoted endpoints",
			doc:  `"Order Item" --> "Product"`,
			want: []types.Relationship{rel("orderitem", types.Association, "product")},
		},
		{
			name: "qualified endpoints",
			doc:  "com.shop.Cart --> com.shop.catalog.Product",
			want: []types.Relationship{rel("cart", types.Association, "product")},
		},
		{
			name: "no spaces around arrow",
			doc:  "A..>B\nC--|>D",
			want: []types.Relationship{rel("a", types.Dependency, "b"), rel("c", types.Inheritance, "d")},
		},
		{
			name: "plain line before a name starting with o",
			doc:  "Customer -- order",
			want: []types.Relationship{rel("customer", types.Association, "order")},
		},
		{
			name: "plain line glued to a name starting with o",
			doc:  "Customer --order",
			want: []types.Relationship{rel("customer", types.Association, "order")},
		},
		{
			name: "duplicates collapse",
			doc:  "A --> B\nA --> B\nA-->B",
			want: []types.Relationship{rel("a", types.Association, "b")},
		},
		{
			name: "direction is part of identity",
			doc:  "A --> B\nB --> A",
			want: []types.Relationship{rel("a", types.Association, "b"), rel("b", types.Association, "a")},
		},
		{
			name: "label text is ignored",
			doc:  "A --> B : see C --|> D",
			want: []types.Relationship{rel("a", types.Association, "b")},
		},
		{
			name: "chain yields one fact per arrow",
			doc:  "A --> B --|> C",
			want: []types.Relationship{rel("a", types.Association, "b"), rel("b", types.Inheritance, "c")},
		},
		{
			name: "missing endpoints are ignored",
			doc:  "A -->\n--> B\n -- ",
			want: []types.Relationship{},
		},
		{
			name: "undecorated longer arrows do not match",
			doc:  "A <--> B\nA --- B",
			want: []types.Relationship{},
		},
		{
			name: "relationship does not span lines",
			doc:  "A -->\nB",
			want: []types.Relationship{},
		},
		{
			name: "arrows inside a class body are not relationships",
			doc:  "class A {\n  b --> c\n}",
			want: []types.Relationship{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.doc)
			assert.ElementsMatch(t, tt.want, got.Relationships.Values())
		})
	}
}

func TestExtractAttributes(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want []types.Attribute
	}{
		{
			name: "typed attribute, method and bare modifier",
			doc: `class User {
  + getName(): string
  - name: string
  static
}`,
			want: []types.Attribute{attr("user", "name")},
		},
		{
			name: "visibility glyphs and defaults",
			doc: `class Account {
  + id : int
  # balance : decimal = 0
  ~ owner
  -_created_at: Date
  count = 3
}`,
			want: []types.Attribute{
				attr("account", "id"), attr("account", "balance"), attr("account", "owner"),
				attr("account", "createdat"), attr("account", "count"),
			},
		},
		{
			name: "stereotypes, annotations and separators",
			doc: `class Order {
  {abstract}
  @Id
  --
  ==
  ..
  __
  {static} total : int
  {field} {static} code : string
}`,
			want: []types.Attribute{attr("order", "total"), attr("order", "code")},
		},
		{
			name: "java style declarations are not attributes",
			doc:  "class Foo {\n  String name\n  int count = 0\n}",
			want: []types.Attribute{},
		},
		{
			name: "alias owns the attributes",
			doc:  "class \"Customer Account\" as CA {\n  - balance : decimal\n}",
			want: []types.Attribute{attr("ca", "balance")},
		},
		{
			name: "qualified owner reduced to simple name",
			doc:  "class com.shop.Cart {\n  items : List<Item>\n}",
			want: []types.Attribute{attr("cart", "items")},
		},
		{
			name: "interface and abstract class bodies",
			doc:  "interface Shape {\n  sides : int\n  + area() : double\n}\nabstract class Base {\n  # id\n}",
			want: []types.Attribute{attr("shape", "sides"), attr("base", "id")},
		},
		{
			name: "enum constants are not attributes",
			doc:  "enum Color {\n  RED\n  GREEN\n}",
			want: []types.Attribute{},
		},
		{
			name: "single line body",
			doc:  "class Point { x : int }",
			want: []types.Attribute{attr("point", "x")},
		},
		{
			name: "brace on the line after the header",
			doc:  "class A\n{\n  name : String\n}",
			want: []types.Attribute{attr("a", "name")},
		},
		{
			name: "brace after blank lines and an alias",
			doc:  "class \"Line Item\" as LI\n\n  {\n  qty : int\n}\nclass Other",
			want: []types.Attribute{attr("li", "qty")},
		},
		{
			name: "declaration without a body leaves the next line alone",
			doc:  "class A\nclass B {\n  id : int\n}",
			want: []types.Attribute{attr("b", "id")},
		},
		{
			name: "reserved modifiers in any case",
			doc:  "class M {\n  Static\n  FINAL\n  readonly : bool\n}",
			want: []types.Attribute{},
		},
		{
			name: "unclosed body yields no attributes",
			doc:  "class Broken {\n  x : int\n",
			want: []types.Attribute{},
		},
		{
			name: "inline comment inside body",
			doc:  "class P {\n  name : string ' the display name\n  ' hidden : int\n}",
			want: []types.Attribute{attr("p", "name")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.doc)
			assert.ElementsMatch(t, tt.want, got.Attributes.Values())
		})
	}
}

func TestExtractComments(t *testing.T) {
	doc := `@startuml
' class Hidden
/' class AlsoHidden
   A --> B '/
/* class CStyle */
class Visible ' trailing comment with class Nope
class "It's Quoted"
Visible --> Other ' Visible --> Ghost
@enduml`

	got := Extract(doc)
	assert.ElementsMatch(t, []string{"visible", "itsquoted"}, got.Entities.Values())
	assert.ElementsMatch(t, []types.Relationship{rel("visible", types.Association, "other")}, got.Relationships.Values())
}

func TestExtractFullDiagram(t *testing.T) {
	doc := `@startuml
package shop {
  abstract class Product {
    - sku : string
    - price : decimal
    + {abstract} total() : decimal
  }
  class Book
  class "Line Item" as LI {
    quantity : int
  }
  interface Priced
}

Book --|> Product
Product ..|> Priced
Order "1" *-- "1..*" LI : contains
LI --> Product
Order ..> PaymentService
@enduml`

	got := Extract(doc)
	assert.ElementsMatch(t, []string{"product", "book", "lineitem", "priced"}, got.Entities.Values())
	assert.ElementsMatch(t, []types.Relationship{
		rel("book", types.Inheritance, "product"),
		rel("product", types.Realization, "priced"),
		rel("li", types.Composition, "order"),
		rel("li", types.Association, "product"),
		rel("order", types.Dependency, "paymentservice"),
	}, got.Relationships.Values())
	assert.ElementsMatch(t, []types.Attribute{
		attr("product", "sku"), attr("product", "price"), attr("li", "quantity"),
	}, got.Attributes.Values())
}

func TestPlantUMLExtractor(t *testing.T) {
	ext := NewPlantUMLExtractor()
	assert.Equal(t, "plantuml", ext.Name())

	m, err := ext.Extract("class A\nA --> B")
	assert.NoError(t, err)
	assert.Equal(t, types.Stats{Classes: 1, Relationships: 1}, m.Stats())
}
