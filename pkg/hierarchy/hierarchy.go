// Package hierarchy derives structural views from the flat field list:
// sibling groupings, the section tree, ancestor paths and descendant sets.
// Nothing here is stored; every view is recomputed from the list passed in.
//
// All walks track visited ids, so a section nested under its own descendant
// (which the builder does not prevent) terminates instead of looping.
package hierarchy

import (
	"sort"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Node is a field together with its ordered children.
type Node struct {
	Field    model.Field
	Children []Node
}

// SortByOrder returns a copy of fields sorted by ascending Order. Fields with
// equal order keep their list position.
func SortByOrder(fields []model.Field) []model.Field {
	sorted := append([]model.Field(nil), fields...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})
	return sorted
}

// GroupByParent buckets fields by ParentID, each bucket sorted by Order.
// Root fields are keyed by the empty string.
func GroupByParent(fields []model.Field) map[string][]model.Field {
	groups := make(map[string][]model.Field)
	for _, field := range SortByOrder(fields) {
		groups[field.ParentID] = append(groups[field.ParentID], field)
	}
	return groups
}

// Roots returns the top-level fields in display order.
func Roots(fields []model.Field) []model.Field {
	return Children(fields, "")
}

// Children returns the direct children of parentID in display order. An
// empty parentID selects root fields.
func Children(fields []model.Field, parentID string) []model.Field {
	var out []model.Field
	for _, field := range SortByOrder(fields) {
		if field.ParentID == parentID {
			out = append(out, field)
		}
	}
	return out
}

// Tree builds the nested view rooted at the top-level fields. Fields whose
// parent is missing are not reachable from the root and are left out.
func Tree(fields []model.Field) []Node {
	groups := GroupByParent(fields)
	visited := make(map[string]struct{}, len(fields))

	var build func(parentID string) []Node
	build = func(parentID string) []Node {
		children := groups[parentID]
		if len(children) == 0 {
			return nil
		}
		nodes := make([]Node, 0, len(children))
		for _, child := range children {
			if _, seen := visited[child.ID]; seen {
				continue
			}
			visited[child.ID] = struct{}{}
			nodes = append(nodes, Node{Field: child, Children: build(child.ID)})
		}
		return nodes
	}
	return build("")
}

// Walk visits the tree depth-first in display order. Returning false from
// visit skips the children of that field.
func Walk(fields []model.Field, visit func(field model.Field, depth int) bool) {
	var walk func(nodes []Node, depth int)
	walk = func(nodes []Node, depth int) {
		for _, node := range nodes {
			if visit(node.Field, depth) {
				walk(node.Children, depth+1)
			}
		}
	}
	walk(Tree(fields), 0)
}

// Find returns the field with id and its index in fields.
func Find(fields []model.Field, id string) (model.Field, int, bool) {
	for idx, field := range fields {
		if field.ID == id {
			return field, idx, true
		}
	}
	return model.Field{}, -1, false
}

// LabelsByID maps every field id to its label.
func LabelsByID(fields []model.Field) map[string]string {
	labels := make(map[string]string, len(fields))
	for _, field := range fields {
		labels[field.ID] = field.Label
	}
	return labels
}

// ParentPath returns the ids of the ancestors of id, outermost first. The
// walk stops at the first missing parent.
func ParentPath(fields []model.Field, id string) []string {
	byID := make(map[string]model.Field, len(fields))
	for _, field := range fields {
		byID[field.ID] = field
	}

	current, ok := byID[id]
	if !ok {
		return nil
	}
	visited := map[string]struct{}{id: {}}
	var path []string
	for current.ParentID != "" {
		parent, ok := byID[current.ParentID]
		if !ok {
			break
		}
		if _, seen := visited[parent.ID]; seen {
			break
		}
		visited[parent.ID] = struct{}{}
		path = append(path, parent.ID)
		current = parent
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Subtree returns id followed by the ids of all of its transitive
// descendants, breadth first. id is always included, even when no field
// carries it, so callers can purge stale entries keyed by it.
func Subtree(fields []model.Field, id string) []string {
	children := make(map[string][]string)
	for _, field := range fields {
		if field.ParentID != "" {
			children[field.ParentID] = append(children[field.ParentID], field.ID)
		}
	}

	out := []string{id}
	seen := map[string]struct{}{id: {}}
	queue := []string{id}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, child := range children[current] {
			if _, ok := seen[child]; ok {
				continue
			}
			seen[child] = struct{}{}
			out = append(out, child)
			queue = append(queue, child)
		}
	}
	return out
}

// IsAncestor reports whether ancestorID appears on the parent path of id.
func IsAncestor(fields []model.Field, ancestorID, id string) bool {
	for _, candidate := range ParentPath(fields, id) {
		if candidate == ancestorID {
			return true
		}
	}
	return false
}
