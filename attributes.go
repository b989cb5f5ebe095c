package avro

// Attribute slots make a node kind's optional fields checkable at the point
// of use: a kind either carries a slot or it does not, and a slot holds
// exactly zero-or-one or zero-or-many values.

// singleAttribute holds at most one value of T.
type singleAttribute[T any] struct {
	value T
	set   bool
}

// add stores v. It reports false when the slot was already occupied.
func (a *singleAttribute[T]) add(v T) bool {
	if a.set {
		return false
	}
	a.value = v
	a.set = true
	return true
}

func (a *singleAttribute[T]) get() T { return a.value }
func (a *singleAttribute[T]) size() int {
	if a.set {
		return 1
	}
	return 0
}

// multiAttribute holds any number of values of T in append order.
type multiAttribute[T any] struct {
	items []T
}

func (a *multiAttribute[T]) add(v T)          { a.items = append(a.items, v) }
func (a *multiAttribute[T]) size() int        { return len(a.items) }
func (a *multiAttribute[T]) at(i int) T       { return a.items[i] }
func (a *multiAttribute[T]) setAt(i int, v T) { a.items[i] = v }

// NameIndex maps a name to its declaration-order index within one naming
// scope (a record's fields or an enum's symbols).
type NameIndex struct {
	byName map[string]int
}

// Add records name at the given positional index. It reports false without
// inserting when the name already exists in this scope; callers must treat
// that as a duplicate-name failure, not a silent overwrite.
func (x *NameIndex) Add(name string, index int) bool {
	if x.byName == nil {
		x.byName = make(map[string]int)
	}
	if _, dup := x.byName[name]; dup {
		return false
	}
	x.byName[name] = index
	return true
}

// Lookup returns the stored index for name, if present.
func (x *NameIndex) Lookup(name string) (int, bool) {
	i, ok := x.byName[name]
	return i, ok
}

// Len returns the number of names in the scope.
func (x *NameIndex) Len() int { return len(x.byName) }
