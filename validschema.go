package avro

// ValidSchema wraps a finished, validated node tree. During construction it
// registers every named type by full name, rejects duplicate definitions,
// and backpatches symbolic forward references with non-owning links. After
// that the tree is read-only and safe to share across goroutines.
type ValidSchema struct {
	root Node
}

// NewValidSchema validates the tree rooted at root and resolves its named
// type references. The tree must not be used on failure.
func NewValidSchema(root Node) (*ValidSchema, error) {
	if root == nil {
		return nil, newError(CodeInvalidSchema, "nil schema root")
	}
	if root.Type() == TypeSymbolic {
		sym := root.(*SymbolicNode)
		if !sym.IsSet() {
			name, _ := sym.Name()
			return nil, errorf(CodeUnresolvedSymbol, "%s", name)
		}
	}
	symbols := make(map[string]Node)
	if err := validateNode(root, symbols); err != nil {
		return nil, err
	}
	return &ValidSchema{root: root}, nil
}

// Root returns the validated tree root.
func (s *ValidSchema) Root() Node { return s.root }

// Resolve classifies this schema as the writer against reader.
func (s *ValidSchema) Resolve(reader *ValidSchema) SchemaResolution {
	return s.root.Resolve(reader.root)
}

// validateNode walks the tree in declaration order. Named types are
// registered before their children are visited, so self- and
// back-references resolve; a reference to a name never defined fails.
func validateNode(n Node, symbols map[string]Node) error {
	if !n.IsValid() {
		return errorf(CodeInvalidSchema, "%s", n.Type())
	}
	if n.Type().IsNamed() {
		full := FullName(n)
		if prev, seen := symbols[full]; seen {
			if prev == n {
				// Already registered and walked; the same definition may be
				// shared by several parents.
				return nil
			}
			return errorf(CodeDuplicateName, "type %q", full)
		}
		symbols[full] = n
	}
	for i := 0; i < n.Leaves(); i++ {
		leaf, err := n.LeafAt(i)
		if err != nil {
			return err
		}
		if leaf.Type() == TypeSymbolic {
			sym := leaf.(*SymbolicNode)
			if sym.IsSet() {
				continue
			}
			name, err := sym.Name()
			if err != nil {
				return err
			}
			target, ok := symbols[name]
			if !ok {
				return errorf(CodeUnresolvedSymbol, "%s", name)
			}
			if err := n.SetLeafToSymbolic(i, target); err != nil {
				return err
			}
			continue
		}
		if err := validateNode(leaf, symbols); err != nil {
			return err
		}
	}
	return nil
}
