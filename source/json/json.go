package json

import (
	"bytes"
	"encoding/json"
	"io"

	eng "github.com/spindlelabs/avro/internal/engine"
)

// Alternative schema-document driver backed by encoding/json. The default
// driver lives in source/gojson.

type jsonSource struct {
	dec   *json.Decoder
	stack []container
}

// container tracks whether the enclosing JSON value is an object and, if
// so, whether the next string token is a key.
type container struct {
	object       bool
	expectingKey bool
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON.
func NewReader(r io.Reader) eng.TokenSource {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &jsonSource{dec: dec}
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *jsonSource) Location() int64 { return s.dec.InputOffset() }

func (s *jsonSource) NextToken() (eng.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		if err == io.EOF {
			return eng.Token{}, io.EOF
		}
		return eng.Token{}, err
	}
	off := s.dec.InputOffset()

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			s.push(true)
			return eng.Token{Kind: eng.KindBeginObject, Offset: off}, nil
		case '[':
			s.push(false)
			return eng.Token{Kind: eng.KindBeginArray, Offset: off}, nil
		case '}':
			s.pop()
			return eng.Token{Kind: eng.KindEndObject, Offset: off}, nil
		default: // ']'
			s.pop()
			return eng.Token{Kind: eng.KindEndArray, Offset: off}, nil
		}
	case string:
		if s.expectingKey() {
			s.markValuePending()
			return eng.Token{Kind: eng.KindKey, String: v, Offset: off}, nil
		}
		s.noteValue()
		return eng.Token{Kind: eng.KindString, String: v, Offset: off}, nil
	case bool:
		s.noteValue()
		return eng.Token{Kind: eng.KindBool, Bool: v, Offset: off}, nil
	case json.Number:
		s.noteValue()
		return eng.Token{Kind: eng.KindNumber, Number: string(v), Offset: off}, nil
	default: // nil
		s.noteValue()
		return eng.Token{Kind: eng.KindNull, Offset: off}, nil
	}
}

func (s *jsonSource) push(object bool) {
	s.stack = append(s.stack, container{object: object, expectingKey: object})
}

func (s *jsonSource) pop() {
	if n := len(s.stack); n > 0 {
		s.stack = s.stack[:n-1]
	}
	// The popped container was itself a value of its parent.
	s.noteValue()
}

func (s *jsonSource) expectingKey() bool {
	if n := len(s.stack); n > 0 {
		return s.stack[n-1].object && s.stack[n-1].expectingKey
	}
	return false
}

func (s *jsonSource) markValuePending() {
	s.stack[len(s.stack)-1].expectingKey = false
}

func (s *jsonSource) noteValue() {
	if n := len(s.stack); n > 0 && s.stack[n-1].object {
		s.stack[n-1].expectingKey = true
	}
}
