package nodeid

// PathSegment is one name in an address, optionally indexed, e.g. `port[1]`.
type PathSegment struct {
	Name  string
	Index int // -1 when no index is present.
}

// NewPathSegment creates a segment without an index.
func NewPathSegment(name string) PathSegment {
	return PathSegment{Name: name, Index: -1}
}

// NewPathSegmentWithIndex creates a segment selecting the index-th sibling
// called name.
func NewPathSegmentWithIndex(name string, index int) PathSegment {
	return PathSegment{Name: name, Index: index}
}

// HasIndex reports whether the segment carries an explicit index.
func (ps PathSegment) HasIndex() bool {
	return ps.Index != -1
}

// Address locates a definition in a tree, root segment first.
type Address struct {
	Path []PathSegment
}

// Len returns the number of segments.
func (a *Address) Len() int {
	if a == nil {
		return 0
	}
	return len(a.Path)
}

// Child returns a new address extended by seg. The receiver is not modified.
func (a *Address) Child(seg PathSegment) *Address {
	path := make([]PathSegment, 0, a.Len()+1)
	if a != nil {
		path = append(path, a.Path...)
	}
	return &Address{Path: append(path, seg)}
}
