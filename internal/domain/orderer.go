package domain

import (
	"cmp"
	"slices"
	"strings"
)

// CompareMethods orders methods by priority, then by name using byte-wise comparison.
func CompareMethods(a, b *MethodDescriptor) int {
	return cmp.Or(
		cmp.Compare(a.Priority, b.Priority),
		strings.Compare(a.Name, b.Name),
	)
}

// SortMethods sorts one method collection into execution order.
func SortMethods(methods []*MethodDescriptor) {
	slices.SortStableFunc(methods, CompareMethods)
}
