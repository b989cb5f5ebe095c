package engine

// Package engine defines the token stream shared by the schema front end
// and the concrete input drivers. Drivers implement TokenSource; the root
// package adapts it into the public Source.

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

// Token represents a streaming token with approximate input offset.
type Token struct {
	Kind   Kind
	String string
	Number string // kept as text; the schema layer parses it
	Bool   bool
	Offset int64
}

// TokenSource is the minimal interface a schema-document driver provides.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64 // byte offset; -1 if unknown
}
