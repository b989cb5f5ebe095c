package avro

// The eight concrete node kinds. Constructors reject structural errors that
// can be caught eagerly (duplicate member names, negative sizes); everything
// else is deferred to IsValid, which the builder applies as a gate before
// attaching a finished node to its parent.

// PrimitiveNode is a leaf carrying nothing but its type tag.
type PrimitiveNode struct {
	noName
	noNamespace
	noLeaves
	noLeafNames
	noSize
	typ Type
}

// NewPrimitiveNode builds a primitive node; t must be a primitive kind.
func NewPrimitiveNode(t Type) (*PrimitiveNode, error) {
	if !t.IsPrimitive() {
		return nil, errorf(CodeUnknownType, "%s is not a primitive type", t)
	}
	return &PrimitiveNode{typ: t}, nil
}

// newPrimitive is the internal infallible variant for known-good tags.
func newPrimitive(t Type) *PrimitiveNode { return &PrimitiveNode{typ: t} }

func (n *PrimitiveNode) Type() Type    { return n.typ }
func (n *PrimitiveNode) IsValid() bool { return true }

// SymbolicNode stands in for a named type referenced before (or without
// re-stating) its full definition. Its name is the referenced full name; the
// target is a non-owning link populated during schema validation. Because
// every back-edge in the logical graph is symbolic, recursive schemas never
// form an ownership cycle.
type SymbolicNode struct {
	withName
	noNamespace
	noLeaves
	noLeafNames
	noSize
	target Node // non-owning; nil until backpatched
}

// NewSymbolicNode builds a placeholder for the given full name.
func NewSymbolicNode(fullName string) *SymbolicNode {
	n := &SymbolicNode{}
	n.setName(fullName)
	return n
}

func (n *SymbolicNode) Type() Type    { return TypeSymbolic }
func (n *SymbolicNode) IsValid() bool { return n.name.size() == 1 }

// IsSet reports whether the referenced definition has been linked.
func (n *SymbolicNode) IsSet() bool { return n.target != nil }

// Target follows the non-owning link to the referenced definition.
func (n *SymbolicNode) Target() (Node, error) {
	if n.target == nil {
		return nil, errorf(CodeUnresolvedSymbol, "%s", n.name.get())
	}
	return n.target, nil
}

// SetTarget links the referenced definition. The link is never an owning
// edge.
func (n *SymbolicNode) SetTarget(target Node) { n.target = target }

// RecordNode is a named type with ordered, uniquely named fields.
type RecordNode struct {
	withName
	withNamespace
	leafList
	nameList
	noSize
}

// NewRecordNode builds a record from parallel field and field-name lists.
// A duplicate field name is a hard failure.
func NewRecordNode(name, namespace string, fields []Node, fieldNames []string) (*RecordNode, error) {
	n := &RecordNode{}
	n.setName(name)
	n.namespace.add(namespace)
	for _, f := range fields {
		n.addLeaf(f)
	}
	for _, fn := range fieldNames {
		if !n.addName(fn) {
			return nil, errorf(CodeDuplicateName, "field %q", fn)
		}
	}
	return n, nil
}

func (n *RecordNode) Type() Type { return TypeRecord }
func (n *RecordNode) IsValid() bool {
	return n.name.size() == 1 && n.leaves.size() == n.names.size()
}

// EnumNode is a named type with uniquely named symbols and no children.
type EnumNode struct {
	withName
	withNamespace
	noLeaves
	nameList
	noSize
}

// NewEnumNode builds an enum; a duplicate symbol is a hard failure.
func NewEnumNode(name, namespace string, symbols []string) (*EnumNode, error) {
	n := &EnumNode{}
	n.setName(name)
	n.namespace.add(namespace)
	for _, s := range symbols {
		if !n.addName(s) {
			return nil, errorf(CodeDuplicateName, "symbol %q", s)
		}
	}
	return n, nil
}

func (n *EnumNode) Type() Type    { return TypeEnum }
func (n *EnumNode) IsValid() bool { return n.name.size() == 1 && n.names.size() > 0 }

// ArrayNode holds exactly one child: the item type.
type ArrayNode struct {
	noName
	noNamespace
	leafList
	noLeafNames
	noSize
}

func NewArrayNode(items Node) *ArrayNode {
	n := &ArrayNode{}
	n.addLeaf(items)
	return n
}

func (n *ArrayNode) Type() Type    { return TypeArray }
func (n *ArrayNode) IsValid() bool { return n.leaves.size() == 1 }

// MapNode holds exactly two children. The string key type is inserted
// automatically and always ordered before the value type.
type MapNode struct {
	noName
	noNamespace
	leafList
	noLeafNames
	noSize
}

func NewMapNode(values Node) *MapNode {
	n := &MapNode{}
	n.addLeaf(newPrimitive(TypeString))
	n.addLeaf(values)
	return n
}

func (n *MapNode) Type() Type    { return TypeMap }
func (n *MapNode) IsValid() bool { return n.leaves.size() == 2 }

// UnionNode holds one or more branches distinguished by discriminant: the
// primitive type name for primitives and unnamed compounds, the full name
// for named and symbolic branches.
type UnionNode struct {
	noName
	noNamespace
	leafList
	noLeafNames
	noSize
}

func NewUnionNode(branches []Node) *UnionNode {
	n := &UnionNode{}
	for _, b := range branches {
		n.addLeaf(b)
	}
	return n
}

func (n *UnionNode) Type() Type { return TypeUnion }

func (n *UnionNode) IsValid() bool {
	if n.leaves.size() < 1 {
		return false
	}
	seen := make(map[string]struct{}, n.leaves.size())
	for i := 0; i < n.leaves.size(); i++ {
		b := n.leaves.at(i)
		if b.Type() == TypeUnion {
			return false
		}
		d := unionDiscriminant(b)
		if _, dup := seen[d]; dup {
			return false
		}
		seen[d] = struct{}{}
	}
	return true
}

func unionDiscriminant(n Node) string {
	if n.HasName() {
		return FullName(n)
	}
	return n.Type().String()
}

// FixedNode is a named type with a fixed byte length.
type FixedNode struct {
	withName
	withNamespace
	noLeaves
	noLeafNames
	withSize
}

// NewFixedNode builds a fixed node; size must be non-negative.
func NewFixedNode(name, namespace string, size int) (*FixedNode, error) {
	if size < 0 {
		return nil, errorf(CodeInvalidSize, "%d", size)
	}
	n := &FixedNode{}
	n.setName(name)
	n.namespace.add(namespace)
	n.size.add(size)
	return n, nil
}

func (n *FixedNode) Type() Type    { return TypeFixed }
func (n *FixedNode) IsValid() bool { return n.name.size() == 1 && n.size.size() == 1 }
