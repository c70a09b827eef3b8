package idmap

import (
	"log/slog"

	"github.com/KirkDiggler/ironsworn-content/internal/entities/dataforged"
	"github.com/KirkDiggler/ironsworn-content/internal/pkg/idgen"
)

// Build walks every document and assigns an identifier to each node
// carrying a $id. Documents are numbered from 1 in set order and nodes in
// depth-first pre-order within their document.
func Build(docs *dataforged.Set) *IDMap {
	m := New()
	for i, doc := range docs.Documents() {
		seq := idgen.NewSequence(i + 1)
		walk(doc.Root, func(node *dataforged.Object) {
			if key, ok := idOf(node); ok {
				m.Set(key, seq.Generate())
			}
		})
		slog.Debug("Assigned content identifiers",
			"document", doc.Name,
			"count", seq.Count())
	}
	return m
}

// walk visits objects in pre-order using an explicit stack so nesting depth
// is not bounded by the call stack. A root array is expanded without being
// visited itself. Object children are taken in document order; integer-like
// keys are not moved ahead of the others.
func walk(root any, visit func(*dataforged.Object)) {
	var stack []any
	if items, ok := dataforged.AsArray(root); ok {
		stack = pushReversed(stack, items)
	} else {
		stack = append(stack, root)
	}

	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch t := node.(type) {
		case *dataforged.Object:
			if t == nil {
				continue
			}
			visit(t)
			stack = pushReversed(stack, t.Values())
		case []any:
			stack = pushReversed(stack, t)
		}
	}
}

func pushReversed(stack []any, items []any) []any {
	for i := len(items) - 1; i >= 0; i-- {
		stack = append(stack, items[i])
	}
	return stack
}

// idOf returns the node's $id when it is a non-empty string
func idOf(node *dataforged.Object) (string, bool) {
	return dataforged.StringField(node, dataforged.FieldID)
}
