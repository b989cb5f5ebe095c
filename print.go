package avro

import (
	"io"
	"strconv"
	"strings"

	j "github.com/goccy/go-json"
)

// Canonical rendering of a validated tree back to JSON schema text. Keys are
// emitted in a deterministic order, named types are printed in full at their
// definition and by name at every symbolic reference, so recursive schemas
// terminate.

// ToJSON writes the schema as compact JSON text.
func (s *ValidSchema) ToJSON(w io.Writer) error {
	var sb strings.Builder
	if err := writeNode(&sb, s.root); err != nil {
		return err
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// MarshalJSON renders the schema as JSON schema text.
func (s *ValidSchema) MarshalJSON() ([]byte, error) {
	var sb strings.Builder
	if err := writeNode(&sb, s.root); err != nil {
		return nil, err
	}
	return []byte(sb.String()), nil
}

// String renders the schema as JSON schema text; it returns "" only for a
// tree that escaped validation.
func (s *ValidSchema) String() string {
	var sb strings.Builder
	if err := writeNode(&sb, s.root); err != nil {
		return ""
	}
	return sb.String()
}

func quote(s string) string {
	b, err := j.Marshal(s)
	if err != nil {
		return `""`
	}
	return string(b)
}

func writeNode(sb *strings.Builder, n Node) error {
	switch n.Type() {
	case TypeRecord:
		return writeRecord(sb, n)
	case TypeEnum:
		return writeEnum(sb, n)
	case TypeArray:
		return writeArray(sb, n)
	case TypeMap:
		return writeMap(sb, n)
	case TypeUnion:
		return writeUnion(sb, n)
	case TypeFixed:
		return writeFixed(sb, n)
	case TypeSymbolic:
		name, err := n.Name()
		if err != nil {
			return err
		}
		sb.WriteString(quote(name))
		return nil
	default:
		sb.WriteString(quote(n.Type().String()))
		return nil
	}
}

func writeNamePrefix(sb *strings.Builder, n Node, kind string) error {
	name, err := n.Name()
	if err != nil {
		return err
	}
	sb.WriteString(`{"type":` + quote(kind) + `,"name":` + quote(name))
	if n.HasNamespace() {
		if ns, _ := n.Namespace(); ns != "" {
			sb.WriteString(`,"namespace":` + quote(ns))
		}
	}
	return nil
}

func writeRecord(sb *strings.Builder, n Node) error {
	if err := writeNamePrefix(sb, n, "record"); err != nil {
		return err
	}
	sb.WriteString(`,"fields":[`)
	for i := 0; i < n.Leaves(); i++ {
		if i > 0 {
			sb.WriteByte(',')
		}
		fieldName, err := n.NameAt(i)
		if err != nil {
			return err
		}
		field, err := n.LeafAt(i)
		if err != nil {
			return err
		}
		sb.WriteString(`{"name":` + quote(fieldName) + `,"type":`)
		if err := writeNode(sb, field); err != nil {
			return err
		}
		sb.WriteByte('}')
	}
	sb.WriteString("]}")
	return nil
}

func writeEnum(sb *strings.Builder, n Node) error {
	if err := writeNamePrefix(sb, n, "enum"); err != nil {
		return err
	}
	sb.WriteString(`,"symbols":[`)
	for i := 0; i < n.Names(); i++ {
		if i > 0 {
			sb.WriteByte(',')
		}
		symbol, err := n.NameAt(i)
		if err != nil {
			return err
		}
		sb.WriteString(quote(symbol))
	}
	sb.WriteString("]}")
	return nil
}

func writeArray(sb *strings.Builder, n Node) error {
	items, err := n.LeafAt(0)
	if err != nil {
		return err
	}
	sb.WriteString(`{"type":"array","items":`)
	if err := writeNode(sb, items); err != nil {
		return err
	}
	sb.WriteByte('}')
	return nil
}

func writeMap(sb *strings.Builder, n Node) error {
	values, err := n.LeafAt(1)
	if err != nil {
		return err
	}
	sb.WriteString(`{"type":"map","values":`)
	if err := writeNode(sb, values); err != nil {
		return err
	}
	sb.WriteByte('}')
	return nil
}

func writeUnion(sb *strings.Builder, n Node) error {
	sb.WriteByte('[')
	for i := 0; i < n.Leaves(); i++ {
		if i > 0 {
			sb.WriteByte(',')
		}
		branch, err := n.LeafAt(i)
		if err != nil {
			return err
		}
		if err := writeNode(sb, branch); err != nil {
			return err
		}
	}
	sb.WriteByte(']')
	return nil
}

func writeFixed(sb *strings.Builder, n Node) error {
	if err := writeNamePrefix(sb, n, "fixed"); err != nil {
		return err
	}
	size, err := n.FixedSize()
	if err != nil {
		return err
	}
	sb.WriteString(`,"size":` + strconv.Itoa(size) + "}")
	return nil
}
