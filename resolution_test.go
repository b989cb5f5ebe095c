package avro_test

import (
	"testing"

	avro "github.com/spindlelabs/avro"
)

func TestResolve_PrimitiveTable(t *testing.T) {
	prims := []avro.Type{
		avro.TypeNull, avro.TypeBool, avro.TypeInt, avro.TypeLong,
		avro.TypeFloat, avro.TypeDouble, avro.TypeBytes, avro.TypeString,
	}
	promotions := map[[2]avro.Type]avro.SchemaResolution{
		{avro.TypeInt, avro.TypeLong}:     avro.ResolvePromotableToLong,
		{avro.TypeInt, avro.TypeFloat}:    avro.ResolvePromotableToFloat,
		{avro.TypeInt, avro.TypeDouble}:   avro.ResolvePromotableToDouble,
		{avro.TypeLong, avro.TypeFloat}:   avro.ResolvePromotableToFloat,
		{avro.TypeLong, avro.TypeDouble}:  avro.ResolvePromotableToDouble,
		{avro.TypeFloat, avro.TypeDouble}: avro.ResolvePromotableToDouble,
	}
	for _, w := range prims {
		for _, r := range prims {
			writer := mustPrimitive(t, w)
			reader := mustPrimitive(t, r)
			want := avro.ResolveNoMatch
			if w == r {
				want = avro.ResolveMatch
			} else if p, ok := promotions[[2]avro.Type{w, r}]; ok {
				want = p
			}
			if got := writer.Resolve(reader); got != want {
				t.Fatalf("%v->%v = %v, want %v", w, r, got, want)
			}
		}
	}
}

func TestResolve_ReaderUnion(t *testing.T) {
	writer := mustPrimitive(t, avro.TypeInt)
	reader := avro.NewUnionNode([]avro.Node{
		mustPrimitive(t, avro.TypeNull),
		mustPrimitive(t, avro.TypeLong),
	})
	if got := writer.Resolve(reader); got != avro.ResolvePromotableToLong {
		t.Fatalf("int->[null,long] = %v", got)
	}

	// An exact branch beats a promotable one.
	reader = avro.NewUnionNode([]avro.Node{
		mustPrimitive(t, avro.TypeLong),
		mustPrimitive(t, avro.TypeInt),
	})
	if got := writer.Resolve(reader); got != avro.ResolveMatch {
		t.Fatalf("int->[long,int] = %v", got)
	}

	reader = avro.NewUnionNode([]avro.Node{mustPrimitive(t, avro.TypeString)})
	if got := writer.Resolve(reader); got != avro.ResolveNoMatch {
		t.Fatalf("int->[string] = %v", got)
	}
}

func TestResolve_WriterUnion(t *testing.T) {
	writer := avro.NewUnionNode([]avro.Node{
		mustPrimitive(t, avro.TypeNull),
		mustPrimitive(t, avro.TypeInt),
	})
	if got := writer.Resolve(mustPrimitive(t, avro.TypeLong)); got != avro.ResolvePromotableToLong {
		t.Fatalf("[null,int]->long = %v", got)
	}
	if got := writer.Resolve(mustPrimitive(t, avro.TypeBool)); got != avro.ResolveNoMatch {
		t.Fatalf("[null,int]->bool = %v", got)
	}
}

func TestResolve_ArrayAndMapPropagate(t *testing.T) {
	wa := avro.NewArrayNode(mustPrimitive(t, avro.TypeInt))
	ra := avro.NewArrayNode(mustPrimitive(t, avro.TypeLong))
	if got := wa.Resolve(ra); got != avro.ResolvePromotableToLong {
		t.Fatalf("array<int>->array<long> = %v", got)
	}
	if got := wa.Resolve(mustPrimitive(t, avro.TypeInt)); got != avro.ResolveNoMatch {
		t.Fatalf("array->int = %v", got)
	}

	wm := avro.NewMapNode(mustPrimitive(t, avro.TypeFloat))
	rm := avro.NewMapNode(mustPrimitive(t, avro.TypeDouble))
	if got := wm.Resolve(rm); got != avro.ResolvePromotableToDouble {
		t.Fatalf("map<float>->map<double> = %v", got)
	}
}

func TestResolve_Records(t *testing.T) {
	writer, _ := avro.NewRecordNode("Person", "org.x",
		[]avro.Node{mustPrimitive(t, avro.TypeString), mustPrimitive(t, avro.TypeInt)},
		[]string{"name", "age"})

	// Reader with a field subset, matched by name.
	reader, _ := avro.NewRecordNode("Person", "org.x",
		[]avro.Node{mustPrimitive(t, avro.TypeLong)}, []string{"age"})
	if got := writer.Resolve(reader); got != avro.ResolveMatch {
		t.Fatalf("field-subset reader = %v", got)
	}

	// Different full name never matches.
	renamed, _ := avro.NewRecordNode("Person", "org.y",
		[]avro.Node{mustPrimitive(t, avro.TypeLong)}, []string{"age"})
	if got := writer.Resolve(renamed); got != avro.ResolveNoMatch {
		t.Fatalf("renamed reader = %v", got)
	}

	// A reader field the writer lacks cannot be filled in.
	extra, _ := avro.NewRecordNode("Person", "org.x",
		[]avro.Node{mustPrimitive(t, avro.TypeString)}, []string{"email"})
	if got := writer.Resolve(extra); got != avro.ResolveNoMatch {
		t.Fatalf("extra-field reader = %v", got)
	}

	// A field whose types conflict fails the record.
	conflict, _ := avro.NewRecordNode("Person", "org.x",
		[]avro.Node{mustPrimitive(t, avro.TypeBool)}, []string{"age"})
	if got := writer.Resolve(conflict); got != avro.ResolveNoMatch {
		t.Fatalf("conflicting-field reader = %v", got)
	}
}

func TestResolve_EnumsAndFixeds(t *testing.T) {
	we, _ := avro.NewEnumNode("Suit", "org.x", []string{"A"})
	re, _ := avro.NewEnumNode("Suit", "org.x", []string{"A", "B"})
	if got := we.Resolve(re); got != avro.ResolveMatch {
		t.Fatalf("same-name enums = %v", got)
	}
	other, _ := avro.NewEnumNode("Rank", "org.x", []string{"A"})
	if got := we.Resolve(other); got != avro.ResolveNoMatch {
		t.Fatalf("renamed enum = %v", got)
	}

	wf, _ := avro.NewFixedNode("MD5", "", 16)
	rf, _ := avro.NewFixedNode("MD5", "", 16)
	if got := wf.Resolve(rf); got != avro.ResolveMatch {
		t.Fatalf("same fixeds = %v", got)
	}
	short, _ := avro.NewFixedNode("MD5", "", 8)
	if got := wf.Resolve(short); got != avro.ResolveNoMatch {
		t.Fatalf("size-mismatched fixeds = %v", got)
	}
}

func TestResolve_ThroughSymbolic(t *testing.T) {
	target, _ := avro.NewEnumNode("Suit", "", []string{"A"})

	// Writer symbolic follows its link before resolving.
	wsym := avro.NewSymbolicNode("Suit")
	wsym.SetTarget(target)
	reader, _ := avro.NewEnumNode("Suit", "", []string{"A"})
	if got := wsym.Resolve(reader); got != avro.ResolveMatch {
		t.Fatalf("symbolic writer = %v", got)
	}

	// Reader symbolic is followed by the writer side.
	rsym := avro.NewSymbolicNode("Suit")
	rsym.SetTarget(reader)
	if got := target.Resolve(rsym); got != avro.ResolveMatch {
		t.Fatalf("symbolic reader = %v", got)
	}

	// An unresolved link never matches.
	if got := avro.NewSymbolicNode("Suit").Resolve(reader); got != avro.ResolveNoMatch {
		t.Fatalf("unset symbolic writer = %v", got)
	}
}

func TestResolve_RecursiveSchema(t *testing.T) {
	const longList = `{
	  "type": "record",
	  "name": "LongList",
	  "fields": [
	    {"name": "value", "type": "long"},
	    {"name": "next", "type": ["null", "LongList"]}
	  ]
	}`
	writer, err := avro.CompileString(longList)
	if err != nil {
		t.Fatalf("CompileString: %v", err)
	}
	reader, err := avro.CompileString(longList)
	if err != nil {
		t.Fatalf("CompileString: %v", err)
	}
	if got := writer.Resolve(reader); got != avro.ResolveMatch {
		t.Fatalf("identical recursive schemas = %v", got)
	}

	// A widened field keeps the recursive pair resolvable.
	widened, err := avro.CompileString(`{
	  "type": "record",
	  "name": "LongList",
	  "fields": [
	    {"name": "value", "type": "double"},
	    {"name": "next", "type": ["null", "LongList"]}
	  ]
	}`)
	if err != nil {
		t.Fatalf("CompileString: %v", err)
	}
	if got := writer.Resolve(widened); got != avro.ResolveMatch {
		t.Fatalf("recursive schema with widened field = %v", got)
	}

	// Recursion does not bypass the full-name gate.
	renamed, err := avro.CompileString(`{
	  "type": "record",
	  "name": "LongChain",
	  "fields": [
	    {"name": "value", "type": "long"},
	    {"name": "next", "type": ["null", "LongChain"]}
	  ]
	}`)
	if err != nil {
		t.Fatalf("CompileString: %v", err)
	}
	if got := writer.Resolve(renamed); got != avro.ResolveNoMatch {
		t.Fatalf("renamed recursive schema = %v", got)
	}
}

func TestSchemaResolution_Strings(t *testing.T) {
	cases := map[avro.SchemaResolution]string{
		avro.ResolveNoMatch:            "no-match",
		avro.ResolveMatch:              "match",
		avro.ResolvePromotableToLong:   "promotable-to-long",
		avro.ResolvePromotableToFloat:  "promotable-to-float",
		avro.ResolvePromotableToDouble: "promotable-to-double",
	}
	for r, want := range cases {
		if r.String() != want {
			t.Fatalf("String(%d) = %q", r, r.String())
		}
	}
	if avro.ResolveNoMatch.IsMatch() || !avro.ResolvePromotableToLong.IsMatch() {
		t.Fatalf("IsMatch misclassified")
	}
}
