package gojson

import (
	"bytes"
	"io"

	j "github.com/goccy/go-json"

	eng "github.com/spindlelabs/avro/internal/engine"
)

// Default schema-document driver, backed by goccy/go-json.

type gojsonSource struct {
	dec   *j.Decoder
	stack []container
}

type container struct {
	object       bool
	expectingKey bool
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON.
func NewReader(r io.Reader) eng.TokenSource {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	return &gojsonSource{dec: dec}
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

// Location is unknown for this driver; goccy exposes no input offset.
func (s *gojsonSource) Location() int64 { return -1 }

func (s *gojsonSource) NextToken() (eng.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		if err == io.EOF {
			return eng.Token{}, io.EOF
		}
		return eng.Token{}, err
	}

	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			s.push(true)
			return eng.Token{Kind: eng.KindBeginObject, Offset: -1}, nil
		case '[':
			s.push(false)
			return eng.Token{Kind: eng.KindBeginArray, Offset: -1}, nil
		case '}':
			s.pop()
			return eng.Token{Kind: eng.KindEndObject, Offset: -1}, nil
		default: // ']'
			s.pop()
			return eng.Token{Kind: eng.KindEndArray, Offset: -1}, nil
		}
	case string:
		if s.expectingKey() {
			s.markValuePending()
			return eng.Token{Kind: eng.KindKey, String: v, Offset: -1}, nil
		}
		s.noteValue()
		return eng.Token{Kind: eng.KindString, String: v, Offset: -1}, nil
	case bool:
		s.noteValue()
		return eng.Token{Kind: eng.KindBool, Bool: v, Offset: -1}, nil
	case j.Number:
		s.noteValue()
		return eng.Token{Kind: eng.KindNumber, Number: string(v), Offset: -1}, nil
	default: // nil
		s.noteValue()
		return eng.Token{Kind: eng.KindNull, Offset: -1}, nil
	}
}

func (s *gojsonSource) push(object bool) {
	s.stack = append(s.stack, container{object: object, expectingKey: object})
}

func (s *gojsonSource) pop() {
	if n := len(s.stack); n > 0 {
		s.stack = s.stack[:n-1]
	}
	s.noteValue()
}

func (s *gojsonSource) expectingKey() bool {
	if n := len(s.stack); n > 0 {
		return s.stack[n-1].object && s.stack[n-1].expectingKey
	}
	return false
}

func (s *gojsonSource) markValuePending() {
	s.stack[len(s.stack)-1].expectingKey = false
}

func (s *gojsonSource) noteValue() {
	if n := len(s.stack); n > 0 && s.stack[n-1].object {
		s.stack[n-1].expectingKey = true
	}
}
