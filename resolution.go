package avro

// SchemaResolution classifies whether data written under a writer schema can
// be read using a reader schema.
type SchemaResolution int

const (
	// ResolveNoMatch means the reader cannot read the writer's data.
	ResolveNoMatch SchemaResolution = iota
	// ResolveMatch is an exact match.
	ResolveMatch
	// ResolvePromotableToLong through ResolvePromotableToDouble are matches
	// via a defined numeric widening of the writer's value.
	ResolvePromotableToLong
	ResolvePromotableToFloat
	ResolvePromotableToDouble
)

func (r SchemaResolution) String() string {
	switch r {
	case ResolveMatch:
		return "match"
	case ResolvePromotableToLong:
		return "promotable-to-long"
	case ResolvePromotableToFloat:
		return "promotable-to-float"
	case ResolvePromotableToDouble:
		return "promotable-to-double"
	default:
		return "no-match"
	}
}

// IsMatch reports whether the reader can read the writer's data at all.
func (r SchemaResolution) IsMatch() bool { return r != ResolveNoMatch }

// resolvePair identifies one writer/reader node pair on the resolution path.
// Record resolution marks its pair while its fields are being classified;
// re-entering the same pair is a back-edge of a recursive schema, not fresh
// work, so recursive schemas terminate.
type resolvePair struct {
	writer Node
	reader Node
}

// betterResolution prefers an exact match over any promotion, and any
// promotion over no match.
func betterResolution(a, b SchemaResolution) SchemaResolution {
	rank := func(r SchemaResolution) int {
		switch r {
		case ResolveMatch:
			return 2
		case ResolveNoMatch:
			return 0
		default:
			return 1
		}
	}
	if rank(a) >= rank(b) {
		return a
	}
	return b
}

// furtherResolution handles the reader shapes every writer kind must see
// through: a symbolic reader is followed to its definition, and a union
// reader resolves when at least one branch resolves (best branch wins).
func furtherResolution(writer, reader Node, seen map[resolvePair]struct{}) SchemaResolution {
	switch reader.Type() {
	case TypeSymbolic:
		target, err := ResolveSymbol(reader)
		if err != nil {
			return ResolveNoMatch
		}
		return writer.resolveIn(target, seen)
	case TypeUnion:
		best := ResolveNoMatch
		for i := 0; i < reader.Leaves(); i++ {
			branch, err := reader.LeafAt(i)
			if err != nil {
				return ResolveNoMatch
			}
			best = betterResolution(best, writer.resolveIn(branch, seen))
		}
		return best
	}
	return ResolveNoMatch
}

// Resolve for primitives: self-match is exact; the promotion table is
// int→long/float/double, long→float/double, float→double.
func (n *PrimitiveNode) Resolve(reader Node) SchemaResolution {
	return n.resolveIn(reader, make(map[resolvePair]struct{}))
}

func (n *PrimitiveNode) resolveIn(reader Node, seen map[resolvePair]struct{}) SchemaResolution {
	if n.typ == reader.Type() {
		return ResolveMatch
	}
	switch n.typ {
	case TypeInt:
		switch reader.Type() {
		case TypeLong:
			return ResolvePromotableToLong
		case TypeFloat:
			return ResolvePromotableToFloat
		case TypeDouble:
			return ResolvePromotableToDouble
		}
	case TypeLong:
		switch reader.Type() {
		case TypeFloat:
			return ResolvePromotableToFloat
		case TypeDouble:
			return ResolvePromotableToDouble
		}
	case TypeFloat:
		if reader.Type() == TypeDouble {
			return ResolvePromotableToDouble
		}
	}
	return furtherResolution(n, reader, seen)
}

// Resolve for a symbolic writer follows the link and resolves the referenced
// definition; an unresolved link never matches.
func (n *SymbolicNode) Resolve(reader Node) SchemaResolution {
	return n.resolveIn(reader, make(map[resolvePair]struct{}))
}

func (n *SymbolicNode) resolveIn(reader Node, seen map[resolvePair]struct{}) SchemaResolution {
	target, err := n.Target()
	if err != nil {
		return ResolveNoMatch
	}
	return target.resolveIn(reader, seen)
}

// Resolve for records requires equal full names and every reader field to
// resolve by name against a writer field. Promotions inside fields stay at
// the leaves; the record as a whole classifies as a match.
func (n *RecordNode) Resolve(reader Node) SchemaResolution {
	return n.resolveIn(reader, make(map[resolvePair]struct{}))
}

func (n *RecordNode) resolveIn(reader Node, seen map[resolvePair]struct{}) SchemaResolution {
	if reader.Type() != TypeRecord {
		return furtherResolution(n, reader, seen)
	}
	if FullName(n) != FullName(reader) {
		return ResolveNoMatch
	}
	pair := resolvePair{writer: n, reader: reader}
	if _, inProgress := seen[pair]; inProgress {
		return ResolveMatch
	}
	seen[pair] = struct{}{}
	defer delete(seen, pair)
	for i := 0; i < reader.Names(); i++ {
		fieldName, err := reader.NameAt(i)
		if err != nil {
			return ResolveNoMatch
		}
		wi, ok := n.NameIndexOf(fieldName)
		if !ok {
			return ResolveNoMatch
		}
		writerField, err := n.LeafAt(wi)
		if err != nil {
			return ResolveNoMatch
		}
		readerField, err := reader.LeafAt(i)
		if err != nil {
			return ResolveNoMatch
		}
		if !writerField.resolveIn(readerField, seen).IsMatch() {
			return ResolveNoMatch
		}
	}
	return ResolveMatch
}

// Resolve for enums matches on equal full name only.
func (n *EnumNode) Resolve(reader Node) SchemaResolution {
	return n.resolveIn(reader, make(map[resolvePair]struct{}))
}

func (n *EnumNode) resolveIn(reader Node, seen map[resolvePair]struct{}) SchemaResolution {
	if reader.Type() != TypeEnum {
		return furtherResolution(n, reader, seen)
	}
	if FullName(n) == FullName(reader) {
		return ResolveMatch
	}
	return ResolveNoMatch
}

// Resolve for arrays recurses into the item types and propagates the item
// classification.
func (n *ArrayNode) Resolve(reader Node) SchemaResolution {
	return n.resolveIn(reader, make(map[resolvePair]struct{}))
}

func (n *ArrayNode) resolveIn(reader Node, seen map[resolvePair]struct{}) SchemaResolution {
	if reader.Type() != TypeArray {
		return furtherResolution(n, reader, seen)
	}
	writerItems, err := n.LeafAt(0)
	if err != nil {
		return ResolveNoMatch
	}
	readerItems, err := reader.LeafAt(0)
	if err != nil {
		return ResolveNoMatch
	}
	return writerItems.resolveIn(readerItems, seen)
}

// Resolve for maps recurses into the value types (leaf 1; leaf 0 is the
// implicit string key on both sides).
func (n *MapNode) Resolve(reader Node) SchemaResolution {
	return n.resolveIn(reader, make(map[resolvePair]struct{}))
}

func (n *MapNode) resolveIn(reader Node, seen map[resolvePair]struct{}) SchemaResolution {
	if reader.Type() != TypeMap {
		return furtherResolution(n, reader, seen)
	}
	writerValues, err := n.LeafAt(1)
	if err != nil {
		return ResolveNoMatch
	}
	readerValues, err := reader.LeafAt(1)
	if err != nil {
		return ResolveNoMatch
	}
	return writerValues.resolveIn(readerValues, seen)
}

// Resolve for a union writer picks the best classification over its
// branches; the union resolves when at least one branch resolves.
func (n *UnionNode) Resolve(reader Node) SchemaResolution {
	return n.resolveIn(reader, make(map[resolvePair]struct{}))
}

func (n *UnionNode) resolveIn(reader Node, seen map[resolvePair]struct{}) SchemaResolution {
	best := ResolveNoMatch
	for i := 0; i < n.Leaves(); i++ {
		branch, err := n.LeafAt(i)
		if err != nil {
			return ResolveNoMatch
		}
		best = betterResolution(best, branch.resolveIn(reader, seen))
	}
	return best
}

// Resolve for fixeds matches on equal full name and equal size.
func (n *FixedNode) Resolve(reader Node) SchemaResolution {
	return n.resolveIn(reader, make(map[resolvePair]struct{}))
}

func (n *FixedNode) resolveIn(reader Node, seen map[resolvePair]struct{}) SchemaResolution {
	if reader.Type() != TypeFixed {
		return furtherResolution(n, reader, seen)
	}
	if FullName(n) != FullName(reader) {
		return ResolveNoMatch
	}
	ws, err := n.FixedSize()
	if err != nil {
		return ResolveNoMatch
	}
	rs, err := reader.FixedSize()
	if err != nil || ws != rs {
		return ResolveNoMatch
	}
	return ResolveMatch
}
