// Package tags builds the tag sets attached to every provisioned resource.
//
// Resources are found again on re-apply, status and destroy through the stack tag, so
// every resource created by netstack carries KeyStack and KeyManagedBy next to its Name.
package tags

import (
	"maps"
	"sort"
)

const (
	// KeyName is the tag the AWS console shows as the resource name.
	KeyName = "Name"

	// KeyStack identifies which stack a resource belongs to
	KeyStack = "vidizone:stack"

	// KeyManagedBy identifies the management tool
	KeyManagedBy = "vidizone:managed-by"

	// KeyTier records the trust tier of subnets, groups and instances
	KeyTier = "vidizone:tier"

	ManagedByNetstack = "netstack"
)

// Builder provides a fluent interface for building resource tags.
type Builder struct {
	tags map[string]string
}

// New creates a builder with the stack and managed-by tags pre-set.
func New(stack string) *Builder {
	return &Builder{
		tags: map[string]string{
			KeyStack:     stack,
			KeyManagedBy: ManagedByNetstack,
		},
	}
}

func (b *Builder) WithName(name string) *Builder {
	b.tags[KeyName] = name
	return b
}

func (b *Builder) WithTier(tier string) *Builder {
	if tier != "" {
		b.tags[KeyTier] = tier
	}
	return b
}

// Merge copies user-declared tags. Reserved keys set by the builder win.
func (b *Builder) Merge(extra map[string]string) *Builder {
	for k, v := range extra {
		if _, reserved := b.tags[k]; reserved {
			continue
		}
		b.tags[k] = v
	}
	return b
}

// Build returns a copy of the tags.
func (b *Builder) Build() map[string]string {
	return maps.Clone(b.tags)
}

// Keys returns the tag keys in sorted order, for stable API requests.
func Keys(t map[string]string) []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
