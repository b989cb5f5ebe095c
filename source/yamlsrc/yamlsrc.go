package yamlsrc

import (
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	eng "github.com/spindlelabs/avro/internal/engine"
)

// YAML schema-document driver. A document is decoded into a yaml.Node tree
// and replayed as the same token stream the JSON drivers produce, so the
// schema front end never knows which syntax the document was written in.

type yamlSource struct {
	toks []eng.Token
	pos  int
	err  error
}

// NewBytes parses a YAML document and returns an engine.TokenSource over it.
// Decoding errors surface from the first NextToken call.
func NewBytes(b []byte) eng.TokenSource {
	s := &yamlSource{}
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		s.err = err
		return s
	}
	root := &doc
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return s
		}
		root = doc.Content[0]
	}
	s.emit(root)
	return s
}

// NewReader reads all of r and parses it as one YAML document.
func NewReader(r io.Reader) eng.TokenSource {
	b, err := io.ReadAll(r)
	if err != nil {
		return &yamlSource{err: err}
	}
	return NewBytes(b)
}

func (s *yamlSource) NextToken() (eng.Token, error) {
	if s.err != nil {
		return eng.Token{}, s.err
	}
	if s.pos >= len(s.toks) {
		return eng.Token{}, io.EOF
	}
	t := s.toks[s.pos]
	s.pos++
	return t, nil
}

func (s *yamlSource) Location() int64 { return -1 }

func (s *yamlSource) add(t eng.Token) { s.toks = append(s.toks, t) }

func (s *yamlSource) emit(n *yaml.Node) {
	switch n.Kind {
	case yaml.MappingNode:
		s.add(eng.Token{Kind: eng.KindBeginObject, Offset: -1})
		for i := 0; i+1 < len(n.Content); i += 2 {
			s.add(eng.Token{Kind: eng.KindKey, String: n.Content[i].Value, Offset: -1})
			s.emit(n.Content[i+1])
		}
		s.add(eng.Token{Kind: eng.KindEndObject, Offset: -1})
	case yaml.SequenceNode:
		s.add(eng.Token{Kind: eng.KindBeginArray, Offset: -1})
		for _, c := range n.Content {
			s.emit(c)
		}
		s.add(eng.Token{Kind: eng.KindEndArray, Offset: -1})
	case yaml.AliasNode:
		if n.Alias != nil {
			s.emit(n.Alias)
		}
	case yaml.ScalarNode:
		switch n.Tag {
		case "!!int", "!!float":
			s.add(eng.Token{Kind: eng.KindNumber, Number: n.Value, Offset: -1})
		case "!!bool":
			b, _ := strconv.ParseBool(n.Value)
			s.add(eng.Token{Kind: eng.KindBool, Bool: b, Offset: -1})
		case "!!null":
			s.add(eng.Token{Kind: eng.KindNull, Offset: -1})
		default:
			s.add(eng.Token{Kind: eng.KindString, String: n.Value, Offset: -1})
		}
	}
}
