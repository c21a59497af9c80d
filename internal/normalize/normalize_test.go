package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentifier(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "empty", raw: "", want: ""},
		{name: "whitespace only", raw: " \t\n ", want: ""},
		{name: "lowercases", raw: "OrderItem", want: "orderitem"},
		{name: "snake case", raw: "Order_Item", want: "orderitem"},
		{name: "spaces", raw: "Order Item", want: "orderitem"},
		{name: "surrounding whitespace", raw: "  Order  ", want: "order"},
		{name: "quotes and punctuation", raw: `"Order-Item!"`, want: "orderitem"},
		{name: "generic brackets", raw: "List<Item>", want: "listitem"},
		{name: "digits kept", raw: "Version2", want: "version2"},
		{name: "unicode letters kept", raw: "Größe", want: "größe"},
		{name: "only punctuation", raw: "--==", want: ""},
		{name: "only underscores", raw: "__", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Identifier(tt.raw))
		})
	}
}

func TestIdentifierEquivalence(t *testing.T) {
	want := Identifier("orderitem")
	for _, raw := range []string{"Order_Item", "Order Item", "ORDER ITEM", "order_item ", "Order-Item"} {
		assert.Equal(t, want, Identifier(raw), "raw %q", raw)
	}
}

func TestIdentifierIdempotent(t *testing.T) {
	inputs := []string{"", "  ", "Order_Item", `"Quoted Name"`, "com.foo.Bar", "x__Y z", "Größe-1", "A<B>"}
	for _, raw := range inputs {
		once := Identifier(raw)
		assert.Equal(t, once, Identifier(once), "raw %q", raw)
	}
}

func TestSimpleName(t *testing.T) {
	assert.Equal(t, "Order", SimpleName("com.foo.Order"))
	assert.Equal(t, "Order", SimpleName("Order"))
	assert.Equal(t, "", SimpleName("trailing."))
	assert.Equal(t, Key("Order"), Key("com.foo.Order"))
}
