package avro

// Node is the contract shared by every schema tree entity. A node is built
// once, mutated only while the tree is under construction, and treated as
// immutable after validation; a finished node may be shared read-only by any
// number of parents (the same named type referenced from several fields).
//
// Accessors for attributes a kind does not carry fail with a no_attribute
// Error rather than returning a zero value.
type Node interface {
	// Type returns the kind tag, fixed at construction.
	Type() Type

	HasName() bool
	Name() (string, error)
	HasNamespace() bool
	Namespace() (string, error)

	// Leaves returns the child count for kinds that own children.
	Leaves() int
	LeafAt(index int) (Node, error)

	// Names returns the named-member count (record field names or enum
	// symbols).
	Names() int
	NameAt(index int) (string, error)
	// NameIndexOf reports the declaration index of a field or symbol name.
	NameIndexOf(name string) (int, bool)

	FixedSize() (int, error)

	// IsValid evaluates the kind-specific structural invariants. It gates a
	// node's acceptance into its parent.
	IsValid() bool

	// Resolve classifies whether data written under this node (the writer
	// schema) can be read using the reader schema.
	Resolve(reader Node) SchemaResolution
	// resolveIn is Resolve with the set of in-progress writer/reader pairs
	// threaded through, so resolution of recursive schemas terminates.
	resolveIn(reader Node, seen map[resolvePair]struct{}) SchemaResolution

	// SetLeafToSymbolic backpatches a resolved forward reference: the child
	// at index must already denote target's full name, and is swapped for a
	// symbolic node holding a non-owning link to target.
	SetLeafToSymbolic(index int, target Node) error
}

// FullName returns namespace + "." + name when the node carries a non-empty
// namespace, the bare name for named nodes without one, and "" for unnamed
// kinds.
func FullName(n Node) string {
	if !n.HasName() {
		return ""
	}
	name, _ := n.Name()
	if n.HasNamespace() {
		if ns, _ := n.Namespace(); ns != "" {
			return ns + "." + name
		}
	}
	return name
}

// ResolveSymbol follows a symbolic node's non-owning link to the referenced
// definition. Calling it on any other kind is a misuse.
func ResolveSymbol(n Node) (Node, error) {
	sym, ok := n.(*SymbolicNode)
	if !ok {
		return nil, newError(CodeInvalidSchema, "only symbolic nodes may be resolved")
	}
	return sym.Target()
}

// Attribute embeddables. Each concrete kind composes exactly the attributes
// it carries; the no* variants supply the misuse errors for the rest.

type noName struct{}

func (noName) HasName() bool         { return false }
func (noName) Name() (string, error) { return "", newError(CodeNoAttribute, "name") }

type withName struct {
	name singleAttribute[string]
}

func (a *withName) HasName() bool         { return true }
func (a *withName) Name() (string, error) { return a.name.get(), nil }
func (a *withName) setName(s string) bool { return a.name.add(s) }

type noNamespace struct{}

func (noNamespace) HasNamespace() bool         { return false }
func (noNamespace) Namespace() (string, error) { return "", newError(CodeNoAttribute, "namespace") }

type withNamespace struct {
	namespace singleAttribute[string]
}

func (a *withNamespace) HasNamespace() bool         { return true }
func (a *withNamespace) Namespace() (string, error) { return a.namespace.get(), nil }

type noLeaves struct{}

func (noLeaves) Leaves() int { return 0 }
func (noLeaves) LeafAt(int) (Node, error) {
	return nil, newError(CodeNoAttribute, "leaves")
}
func (noLeaves) SetLeafToSymbolic(int, Node) error {
	return newError(CodeNoAttribute, "cannot change leaf node for nonexistent leaf")
}

type leafList struct {
	leaves multiAttribute[Node]
}

func (l *leafList) Leaves() int { return l.leaves.size() }

func (l *leafList) LeafAt(index int) (Node, error) {
	if index < 0 || index >= l.leaves.size() {
		return nil, errorf(CodeIndexOutOfRange, "leaf %d of %d", index, l.leaves.size())
	}
	return l.leaves.at(index), nil
}

func (l *leafList) addLeaf(n Node) { l.leaves.add(n) }

func (l *leafList) SetLeafToSymbolic(index int, target Node) error {
	if index < 0 || index >= l.leaves.size() {
		return errorf(CodeIndexOutOfRange, "leaf %d of %d", index, l.leaves.size())
	}
	full := FullName(target)
	existing := l.leaves.at(index)
	existingName, err := existing.Name()
	if err != nil {
		return newError(CodeNameMismatch, "existing leaf carries no name")
	}
	if existingName != full {
		return errorf(CodeNameMismatch, "leaf %q vs target %q", existingName, full)
	}
	sym := NewSymbolicNode(full)
	sym.SetTarget(target)
	l.leaves.setAt(index, sym)
	return nil
}

type noLeafNames struct{}

func (noLeafNames) Names() int { return 0 }
func (noLeafNames) NameAt(int) (string, error) {
	return "", newError(CodeNoAttribute, "leaf names")
}
func (noLeafNames) NameIndexOf(string) (int, bool) { return 0, false }

type nameList struct {
	names multiAttribute[string]
	index NameIndex
}

func (l *nameList) Names() int { return l.names.size() }

func (l *nameList) NameAt(index int) (string, error) {
	if index < 0 || index >= l.names.size() {
		return "", errorf(CodeIndexOutOfRange, "name %d of %d", index, l.names.size())
	}
	return l.names.at(index), nil
}

func (l *nameList) NameIndexOf(name string) (int, bool) { return l.index.Lookup(name) }

// addName appends name in declaration order; false means a duplicate within
// this scope.
func (l *nameList) addName(name string) bool {
	if !l.index.Add(name, l.names.size()) {
		return false
	}
	l.names.add(name)
	return true
}

type noSize struct{}

func (noSize) FixedSize() (int, error) { return 0, newError(CodeNoAttribute, "fixed size") }

type withSize struct {
	size singleAttribute[int]
}

func (a *withSize) FixedSize() (int, error) { return a.size.get(), nil }
