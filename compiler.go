package avro

import (
	"strconv"
	"strings"
)

// childSlot marks which child slot category subsequent child frames belong
// to, so a finished child is appended to the correct place in its parent.
type childSlot int

const (
	slotNone childSlot = iota
	slotFields
	slotItems
	slotValues
	slotBranches
)

// frame is an in-progress, not-yet-finalized node under construction. It
// accumulates attributes independent of kind; FinishType converts it into a
// concrete Node via the constructor for its kind.
type frame struct {
	typ        Type
	name       singleAttribute[string]
	namespace  singleAttribute[string]
	size       singleAttribute[int]
	symbols    multiAttribute[string]
	fieldNames multiAttribute[string]
	children   multiAttribute[Node]
	slot       childSlot
	// pushedNamespace pairs this frame with an entry on the context's
	// namespace stack; FinishType pops exactly when it is set.
	pushedNamespace bool
	// scope rejects duplicate symbols/field names at the moment they are
	// appended rather than at FinishType.
	scope NameIndex
}

// CompilerContext is the stack machine that receives build events from an
// external parser and assembles the schema tree. A namespace stack is kept
// in lock-step with named-compound frames: SetNamespace pushes, FinishType
// of the owning frame pops.
//
// Construction is strictly single-threaded; each event is processed to
// completion before the next.
type CompilerContext struct {
	stack      []*frame
	namespaces []string
	root       Node
}

func NewCompilerContext() *CompilerContext { return &CompilerContext{} }

func (c *CompilerContext) current() (*frame, error) {
	if len(c.stack) == 0 {
		return nil, newError(CodeParseError, "no type definition in progress")
	}
	return c.stack[len(c.stack)-1], nil
}

// StartType pushes a fresh, kindless frame.
func (c *CompilerContext) StartType() {
	c.stack = append(c.stack, &frame{typ: typeInvalid})
}

// AddType sets the current frame's kind tag.
func (c *CompilerContext) AddType(t Type) error {
	f, err := c.current()
	if err != nil {
		return err
	}
	f.typ = t
	return nil
}

// SetName records the current frame's simple name.
func (c *CompilerContext) SetName(text string) error {
	f, err := c.current()
	if err != nil {
		return err
	}
	if !f.name.add(text) {
		return errorf(CodeInvalidSchema, "name already set, got %q", text)
	}
	return nil
}

// SetNamespace records the current frame's namespace and pushes it onto the
// namespace stack; it is popped when the enclosing named compound finishes.
// An empty namespace is a no-op.
func (c *CompilerContext) SetNamespace(text string) error {
	if text == "" {
		return nil
	}
	f, err := c.current()
	if err != nil {
		return err
	}
	if !f.namespace.add(text) {
		return errorf(CodeInvalidSchema, "namespace already set, got %q", text)
	}
	f.pushedNamespace = true
	c.namespaces = append(c.namespaces, text)
	return nil
}

// AddNamedTypeReference turns the current frame into a symbolic placeholder
// for the given type name. A bare name is qualified with the innermost
// namespace in scope; a dotted name is taken as already fully qualified.
func (c *CompilerContext) AddNamedTypeReference(text string) error {
	f, err := c.current()
	if err != nil {
		return err
	}
	if !strings.Contains(text, ".") && len(c.namespaces) > 0 {
		text = c.namespaces[len(c.namespaces)-1] + "." + text
	}
	f.typ = TypeSymbolic
	if !f.name.add(text) {
		return errorf(CodeInvalidSchema, "name already set, got %q", text)
	}
	return nil
}

// SetFixedSize parses text as the non-negative byte length of a fixed type.
func (c *CompilerContext) SetFixedSize(text string) error {
	f, err := c.current()
	if err != nil {
		return err
	}
	size, convErr := strconv.Atoi(text)
	if convErr != nil || size < 0 {
		return errorf(CodeInvalidSize, "%q", text)
	}
	if !f.size.add(size) {
		return errorf(CodeInvalidSize, "size already set, got %q", text)
	}
	return nil
}

// AddSymbol appends an enum symbol. A duplicate within the frame is a hard
// failure.
func (c *CompilerContext) AddSymbol(text string) error {
	f, err := c.current()
	if err != nil {
		return err
	}
	if !f.scope.Add(text, f.symbols.size()) {
		return errorf(CodeDuplicateName, "symbol %q", text)
	}
	f.symbols.add(text)
	return nil
}

// AddFieldName records the name of the record field being defined. A
// duplicate within the frame is a hard failure.
func (c *CompilerContext) AddFieldName(text string) error {
	f, err := c.current()
	if err != nil {
		return err
	}
	if !f.scope.Add(text, f.fieldNames.size()) {
		return errorf(CodeDuplicateName, "field %q", text)
	}
	f.fieldNames.add(text)
	return nil
}

// MarkFields routes subsequent child frames into the record field slot.
func (c *CompilerContext) MarkFields() error { return c.mark(slotFields) }

// MarkArrayItems routes the next child frame into the array item slot.
func (c *CompilerContext) MarkArrayItems() error { return c.mark(slotItems) }

// MarkMapValues routes the next child frame into the map value slot.
func (c *CompilerContext) MarkMapValues() error { return c.mark(slotValues) }

// MarkUnionBranches routes subsequent child frames into the union branch
// slot.
func (c *CompilerContext) MarkUnionBranches() error { return c.mark(slotBranches) }

func (c *CompilerContext) mark(s childSlot) error {
	f, err := c.current()
	if err != nil {
		return err
	}
	f.slot = s
	return nil
}

// FinishType pops the current frame, converts it into a validated Node, and
// attaches it to the parent frame's child slot, or stores it as the tree
// root when the stack empties. Named compound frames that pushed a
// namespace pop it here.
func (c *CompilerContext) FinishType() error {
	f, err := c.current()
	if err != nil {
		return err
	}
	c.stack = c.stack[:len(c.stack)-1]

	// A named definition without its own namespace attribute lives in the
	// innermost namespace in scope, same as a bare reference.
	if f.typ.IsNamed() && f.namespace.size() == 0 && len(c.namespaces) > 0 {
		f.namespace.add(c.namespaces[len(c.namespaces)-1])
	}

	node, err := nodeFromFrame(f)
	if err != nil {
		return err
	}
	if !node.IsValid() {
		return errorf(CodeInvalidSchema, "%s", node.Type())
	}
	if f.pushedNamespace {
		if len(c.namespaces) == 0 {
			return newError(CodeParseError, "unbalanced namespace stack")
		}
		c.namespaces = c.namespaces[:len(c.namespaces)-1]
	}

	if len(c.stack) == 0 {
		c.root = node
		return nil
	}
	parent := c.stack[len(c.stack)-1]
	if parent.slot == slotNone {
		return newError(CodeParseError, "child type outside a fields/items/values/types context")
	}
	parent.children.add(node)
	return nil
}

// Root returns the finished tree root once every frame has been popped.
func (c *CompilerContext) Root() (Node, error) {
	if len(c.stack) != 0 {
		return nil, errorf(CodeParseError, "%d type definitions still open", len(c.stack))
	}
	if c.root == nil {
		return nil, newError(CodeParseError, "no schema was built")
	}
	return c.root, nil
}

// NamespaceDepth exposes the namespace stack depth; push/pop pairing is a
// builder invariant.
func (c *CompilerContext) NamespaceDepth() int { return len(c.namespaces) }

func nodeFromFrame(f *frame) (Node, error) {
	switch {
	case f.typ.IsPrimitive():
		return NewPrimitiveNode(f.typ)
	case f.typ == TypeSymbolic:
		if f.name.size() != 1 {
			return nil, newError(CodeInvalidSchema, "symbolic reference without a name")
		}
		return NewSymbolicNode(f.name.get()), nil
	case f.typ == TypeRecord:
		if f.name.size() != 1 {
			return nil, newError(CodeInvalidSchema, "record without a name")
		}
		return NewRecordNode(f.name.get(), f.namespace.get(), f.children.items, f.fieldNames.items)
	case f.typ == TypeEnum:
		if f.name.size() != 1 {
			return nil, newError(CodeInvalidSchema, "enum without a name")
		}
		return NewEnumNode(f.name.get(), f.namespace.get(), f.symbols.items)
	case f.typ == TypeArray:
		if f.children.size() != 1 {
			return nil, errorf(CodeInvalidSchema, "array with %d item types", f.children.size())
		}
		return NewArrayNode(f.children.at(0)), nil
	case f.typ == TypeMap:
		if f.children.size() != 1 {
			return nil, errorf(CodeInvalidSchema, "map with %d value types", f.children.size())
		}
		return NewMapNode(f.children.at(0)), nil
	case f.typ == TypeUnion:
		return NewUnionNode(f.children.items), nil
	case f.typ == TypeFixed:
		if f.name.size() != 1 {
			return nil, newError(CodeInvalidSchema, "fixed without a name")
		}
		if f.size.size() != 1 {
			return nil, newError(CodeInvalidSize, "fixed without a size")
		}
		return NewFixedNode(f.name.get(), f.namespace.get(), f.size.get())
	default:
		return nil, newError(CodeInvalidSchema, "type was never set")
	}
}
