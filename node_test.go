package avro_test

import (
	"testing"

	avro "github.com/spindlelabs/avro"
)

func mustPrimitive(t *testing.T, typ avro.Type) avro.Node {
	t.Helper()
	n, err := avro.NewPrimitiveNode(typ)
	if err != nil {
		t.Fatalf("NewPrimitiveNode(%v): %v", typ, err)
	}
	return n
}

func TestPrimitiveNode_Basic(t *testing.T) {
	n := mustPrimitive(t, avro.TypeInt)
	if n.Type() != avro.TypeInt {
		t.Fatalf("expected int, got %v", n.Type())
	}
	if !n.IsValid() {
		t.Fatalf("primitive must validate")
	}
	if n.HasName() {
		t.Fatalf("primitive must not carry a name")
	}
	if _, err := n.Name(); err == nil {
		t.Fatalf("expected misuse error for Name on primitive")
	} else if e, ok := avro.AsError(err); !ok || e.Code != avro.CodeNoAttribute {
		t.Fatalf("expected no_attribute, got %v", err)
	}
	if _, err := n.FixedSize(); err == nil {
		t.Fatalf("expected misuse error for FixedSize on primitive")
	}
	if _, err := n.LeafAt(0); err == nil {
		t.Fatalf("expected misuse error for LeafAt on primitive")
	}
}

func TestNewPrimitiveNode_RejectsCompound(t *testing.T) {
	if _, err := avro.NewPrimitiveNode(avro.TypeRecord); err == nil {
		t.Fatalf("expected error for non-primitive kind")
	}
}

func TestRecordNode_PersonScenario(t *testing.T) {
	fields := []avro.Node{mustPrimitive(t, avro.TypeString), mustPrimitive(t, avro.TypeInt)}
	rec, err := avro.NewRecordNode("Person", "", fields, []string{"name", "age"})
	if err != nil {
		t.Fatalf("NewRecordNode: %v", err)
	}
	if rec.Type() != avro.TypeRecord || !rec.IsValid() {
		t.Fatalf("expected a valid record, got %v valid=%v", rec.Type(), rec.IsValid())
	}
	if rec.Leaves() != 2 || rec.Names() != 2 {
		t.Fatalf("expected 2 fields and 2 names, got %d/%d", rec.Leaves(), rec.Names())
	}
	for i, want := range []string{"name", "age"} {
		got, err := rec.NameAt(i)
		if err != nil || got != want {
			t.Fatalf("NameAt(%d) = %q, %v; want %q", i, got, err, want)
		}
	}
	if idx, ok := rec.NameIndexOf("age"); !ok || idx != 1 {
		t.Fatalf("NameIndexOf(age) = %d, %v", idx, ok)
	}
	if _, ok := rec.NameIndexOf("missing"); ok {
		t.Fatalf("unexpected hit for missing field")
	}
	if _, err := rec.NameAt(2); err == nil {
		t.Fatalf("expected index_out_of_range")
	} else if e, _ := avro.AsError(err); e.Code != avro.CodeIndexOutOfRange {
		t.Fatalf("expected index_out_of_range, got %v", err)
	}
}

func TestRecordNode_DuplicateFieldName(t *testing.T) {
	fields := []avro.Node{mustPrimitive(t, avro.TypeString), mustPrimitive(t, avro.TypeInt)}
	_, err := avro.NewRecordNode("P", "", fields, []string{"a", "a"})
	if err == nil {
		t.Fatalf("expected duplicate-name failure")
	}
	if e, ok := avro.AsError(err); !ok || e.Code != avro.CodeDuplicateName {
		t.Fatalf("expected duplicate_name, got %v", err)
	}
}

func TestRecordNode_FieldCountMismatchInvalid(t *testing.T) {
	rec, err := avro.NewRecordNode("P", "", []avro.Node{mustPrimitive(t, avro.TypeString)}, nil)
	if err != nil {
		t.Fatalf("NewRecordNode: %v", err)
	}
	if rec.IsValid() {
		t.Fatalf("field count must equal field-name count")
	}
}

func TestEnumNode_SuitScenario(t *testing.T) {
	e, err := avro.NewEnumNode("Suit", "", []string{"CLUBS", "DIAMONDS", "HEARTS", "SPADES"})
	if err != nil {
		t.Fatalf("NewEnumNode: %v", err)
	}
	if !e.IsValid() || e.Names() != 4 {
		t.Fatalf("expected 4 symbols, got %d valid=%v", e.Names(), e.IsValid())
	}
	if _, err := avro.NewEnumNode("Suit", "", []string{"CLUBS", "CLUBS"}); err == nil {
		t.Fatalf("duplicate symbol must fail")
	}
	empty, err := avro.NewEnumNode("Empty", "", nil)
	if err != nil {
		t.Fatalf("NewEnumNode: %v", err)
	}
	if empty.IsValid() {
		t.Fatalf("enum without symbols must not validate")
	}
}

func TestMapNode_KeyOrderedFirst(t *testing.T) {
	m := avro.NewMapNode(mustPrimitive(t, avro.TypeLong))
	if !m.IsValid() || m.Leaves() != 2 {
		t.Fatalf("expected 2 leaves, got %d", m.Leaves())
	}
	key, err := m.LeafAt(0)
	if err != nil || key.Type() != avro.TypeString {
		t.Fatalf("child 0 must be the string key, got %v, %v", key, err)
	}
	val, err := m.LeafAt(1)
	if err != nil || val.Type() != avro.TypeLong {
		t.Fatalf("child 1 must be the value type, got %v, %v", val, err)
	}
}

func TestArrayNode(t *testing.T) {
	a := avro.NewArrayNode(mustPrimitive(t, avro.TypeString))
	if !a.IsValid() || a.Leaves() != 1 {
		t.Fatalf("expected a valid single-leaf array")
	}
}

func TestUnionNode_Discriminants(t *testing.T) {
	ok := avro.NewUnionNode([]avro.Node{
		mustPrimitive(t, avro.TypeNull),
		mustPrimitive(t, avro.TypeString),
		mustPrimitive(t, avro.TypeInt),
	})
	if !ok.IsValid() {
		t.Fatalf("[null,string,int] must validate")
	}

	dup := avro.NewUnionNode([]avro.Node{
		mustPrimitive(t, avro.TypeString),
		mustPrimitive(t, avro.TypeString),
	})
	if dup.IsValid() {
		t.Fatalf("[string,string] must not validate")
	}

	nested := avro.NewUnionNode([]avro.Node{
		mustPrimitive(t, avro.TypeNull),
		avro.NewUnionNode([]avro.Node{mustPrimitive(t, avro.TypeInt)}),
	})
	if nested.IsValid() {
		t.Fatalf("a union directly containing a union must not validate")
	}

	if avro.NewUnionNode(nil).IsValid() {
		t.Fatalf("an empty union must not validate")
	}

	// Two named branches of the same kind are fine as long as the full
	// names differ.
	a, _ := avro.NewEnumNode("A", "org.x", []string{"X"})
	b, _ := avro.NewEnumNode("A", "org.y", []string{"X"})
	named := avro.NewUnionNode([]avro.Node{a, b})
	if !named.IsValid() {
		t.Fatalf("distinct full names must validate")
	}
}

func TestFixedNode(t *testing.T) {
	f, err := avro.NewFixedNode("MD5", "org.apache", 16)
	if err != nil {
		t.Fatalf("NewFixedNode: %v", err)
	}
	if !f.IsValid() {
		t.Fatalf("fixed must validate")
	}
	size, err := f.FixedSize()
	if err != nil || size != 16 {
		t.Fatalf("FixedSize = %d, %v", size, err)
	}
	if avro.FullName(f) != "org.apache.MD5" {
		t.Fatalf("FullName = %q", avro.FullName(f))
	}
	if _, err := avro.NewFixedNode("Bad", "", -1); err == nil {
		t.Fatalf("negative size must fail")
	} else if e, _ := avro.AsError(err); e.Code != avro.CodeInvalidSize {
		t.Fatalf("expected invalid_size, got %v", err)
	}
}

func TestSymbolicNode_TargetLifecycle(t *testing.T) {
	sym := avro.NewSymbolicNode("org.x.Thing")
	if !sym.IsValid() {
		t.Fatalf("symbolic with a name must validate")
	}
	if sym.IsSet() {
		t.Fatalf("fresh symbolic must be unset")
	}
	if _, err := sym.Target(); err == nil {
		t.Fatalf("expected could-not-follow-symbol failure")
	} else if e, _ := avro.AsError(err); e.Code != avro.CodeUnresolvedSymbol {
		t.Fatalf("expected unresolved_symbol, got %v", err)
	}

	target, _ := avro.NewEnumNode("Thing", "org.x", []string{"A"})
	sym.SetTarget(target)
	got, err := sym.Target()
	if err != nil || got != avro.Node(target) {
		t.Fatalf("Target = %v, %v; want the exact node", got, err)
	}

	if _, err := avro.ResolveSymbol(mustPrimitive(t, avro.TypeInt)); err == nil {
		t.Fatalf("ResolveSymbol on a non-symbolic node must fail")
	}
	if got, err := avro.ResolveSymbol(sym); err != nil || got != avro.Node(target) {
		t.Fatalf("ResolveSymbol = %v, %v", got, err)
	}
}

func TestSetLeafToSymbolic(t *testing.T) {
	target, _ := avro.NewRecordNode("Thing", "org.x", nil, nil)
	holder, err := avro.NewRecordNode("Holder", "", []avro.Node{avro.NewSymbolicNode("org.x.Thing")}, []string{"thing"})
	if err != nil {
		t.Fatalf("NewRecordNode: %v", err)
	}

	if err := holder.SetLeafToSymbolic(3, target); err == nil {
		t.Fatalf("expected index_out_of_range")
	}

	wrong, _ := avro.NewRecordNode("Other", "org.x", nil, nil)
	if err := holder.SetLeafToSymbolic(0, wrong); err == nil {
		t.Fatalf("expected name mismatch")
	} else if e, _ := avro.AsError(err); e.Code != avro.CodeNameMismatch {
		t.Fatalf("expected name_mismatch, got %v", err)
	}

	if err := holder.SetLeafToSymbolic(0, target); err != nil {
		t.Fatalf("SetLeafToSymbolic: %v", err)
	}
	leaf, err := holder.LeafAt(0)
	if err != nil || leaf.Type() != avro.TypeSymbolic {
		t.Fatalf("leaf must now be symbolic, got %v, %v", leaf, err)
	}
	resolved, err := avro.ResolveSymbol(leaf)
	if err != nil || resolved != avro.Node(target) {
		t.Fatalf("backpatched leaf must follow to target, got %v, %v", resolved, err)
	}

	prim := mustPrimitive(t, avro.TypeInt)
	if err := prim.SetLeafToSymbolic(0, target); err == nil {
		t.Fatalf("kinds without leaves must reject SetLeafToSymbolic")
	}
}

func TestNameIndex(t *testing.T) {
	var idx avro.NameIndex
	if !idx.Add("a", 0) || !idx.Add("b", 1) {
		t.Fatalf("fresh names must insert")
	}
	if idx.Add("a", 2) {
		t.Fatalf("duplicate must not insert")
	}
	if i, ok := idx.Lookup("b"); !ok || i != 1 {
		t.Fatalf("Lookup(b) = %d, %v", i, ok)
	}
	if _, ok := idx.Lookup("c"); ok {
		t.Fatalf("unexpected hit")
	}
	if idx.Len() != 2 {
		t.Fatalf("Len = %d", idx.Len())
	}
}

func TestFullName(t *testing.T) {
	rec, _ := avro.NewRecordNode("Person", "org.example", nil, nil)
	if avro.FullName(rec) != "org.example.Person" {
		t.Fatalf("FullName = %q", avro.FullName(rec))
	}
	bare, _ := avro.NewRecordNode("Person", "", nil, nil)
	if avro.FullName(bare) != "Person" {
		t.Fatalf("FullName = %q", avro.FullName(bare))
	}
	if avro.FullName(mustPrimitive(t, avro.TypeInt)) != "" {
		t.Fatalf("unnamed kinds have no full name")
	}
}
