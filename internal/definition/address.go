package definition

import (
	"fmt"

	"github.com/vk/apiconfig/internal/nodeid"
)

// Address returns the path of names from the root down to d. A segment is
// indexed only when a sibling shares its name.
func (d *Definition) Address() *nodeid.Address {
	var path []nodeid.PathSegment
	for cur := d; cur != nil; cur = cur.Parent() {
		seg := nodeid.NewPathSegment(cur.name)
		if p := cur.Parent(); p != nil {
			if index, shared := siblingIndex(p.Children(), cur); shared {
				seg = nodeid.NewPathSegmentWithIndex(cur.name, index)
			}
		}
		path = append(path, seg)
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return &nodeid.Address{Path: path}
}

// siblingIndex returns d's position among same-named siblings and whether
// the name is shared at all.
func siblingIndex(siblings []*Definition, d *Definition) (int, bool) {
	index, count := -1, 0
	for _, s := range siblings {
		if s.name != d.name {
			continue
		}
		if s.handle == d.handle {
			index = count
		}
		count++
	}
	return index, count > 1
}

// Lookup resolves addr against roots. An unindexed segment selects the
// first definition with that name.
func Lookup(roots []*Definition, addr *nodeid.Address) (*Definition, error) {
	if addr.Len() == 0 {
		return nil, fmt.Errorf("empty address: %w", ErrAddressNotFound)
	}

	candidates := roots
	var found *Definition
	for i, seg := range addr.Path {
		found = pick(candidates, seg)
		if found == nil {
			return nil, fmt.Errorf("%q: no definition at segment %d: %w", addr, i, ErrAddressNotFound)
		}
		candidates = found.Children()
	}
	return found, nil
}

func pick(candidates []*Definition, seg nodeid.PathSegment) *Definition {
	index := 0
	if seg.HasIndex() {
		index = seg.Index
	}
	for _, c := range candidates {
		if c.name != seg.Name {
			continue
		}
		if index == 0 {
			return c
		}
		index--
	}
	return nil
}
