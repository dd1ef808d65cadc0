package node

// Parents is the ordered pair of parent hashes attached to a node.
// Either slot may be the null hash, meaning that parent is absent.
// A null P1 with a non-null P2 never occurs in well-formed repositories
// but is representable; the pair is stored exactly as given.
type Parents struct {
	P1 Hash
	P2 Hash
}

// NewParents builds a Parents pair, mapping empty strings to the null hash.
func NewParents(p1, p2 Hash) Parents {
	if p1 == "" {
		p1 = NullHash()
	}
	if p2 == "" {
		p2 = NullHash()
	}
	return Parents{P1: p1, P2: p2}
}

// NoParents returns the pair with both parents absent.
func NoParents() Parents {
	return Parents{P1: NullHash(), P2: NullHash()}
}

// IsRoot returns true if both parents are absent.
func (p Parents) IsRoot() bool {
	return p.P1.IsNull() && p.P2.IsNull()
}

// IsMerge returns true if both parents are present.
func (p Parents) IsMerge() bool {
	return !p.P1.IsNull() && !p.P2.IsNull()
}

// Count returns the number of present parents.
func (p Parents) Count() int {
	n := 0
	if !p.P1.IsNull() {
		n++
	}
	if !p.P2.IsNull() {
		n++
	}
	return n
}
