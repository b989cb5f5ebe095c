package avro

import (
	"errors"
	"io"

	eng "github.com/spindlelabs/avro/internal/engine"
)

// The schema-text front end. It drives a CompilerContext with build events
// derived from the token stream of a schema document, so the builder itself
// never sees JSON or YAML.

// CompileOpt controls schema-document compilation.
type CompileOpt struct {
	// AllowDuplicateKeys disables the rejection of repeated keys within one
	// object of the schema document.
	AllowDuplicateKeys bool
	// MaxDepth bounds document nesting; 0 disables the check.
	MaxDepth int
}

// CompileFrom builds a validated schema from a token Source.
func CompileFrom(src Source, opts ...CompileOpt) (*ValidSchema, error) {
	var opt CompileOpt
	if len(opts) > 0 {
		opt = opts[0]
	}
	src = enforceSource(src, eng.EnforceOptions{
		RejectDuplicateKeys: !opt.AllowDuplicateKeys,
		MaxDepth:            opt.MaxDepth,
	})
	p := &schemaParser{src: src, ctx: NewCompilerContext()}
	root, err := p.parse()
	if err != nil {
		return nil, err
	}
	return NewValidSchema(root)
}

// CompileBytes builds a validated schema from JSON schema text.
func CompileBytes(b []byte, opts ...CompileOpt) (*ValidSchema, error) {
	return CompileFrom(JSONBytes(b), opts...)
}

// CompileString builds a validated schema from JSON schema text.
func CompileString(s string, opts ...CompileOpt) (*ValidSchema, error) {
	return CompileBytes([]byte(s), opts...)
}

// CompileReader builds a validated schema from a JSON stream.
func CompileReader(r io.Reader, opts ...CompileOpt) (*ValidSchema, error) {
	return CompileFrom(JSONReader(r), opts...)
}

// CompileYAMLBytes builds a validated schema from a YAML schema document.
func CompileYAMLBytes(b []byte, opts ...CompileOpt) (*ValidSchema, error) {
	return CompileFrom(YAMLBytes(b), opts...)
}

// complexTypes maps schema-text keywords for compound kinds.
var complexTypes = map[string]Type{
	"record": TypeRecord,
	"enum":   TypeEnum,
	"array":  TypeArray,
	"map":    TypeMap,
	"fixed":  TypeFixed,
}

type schemaParser struct {
	src Source
	ctx *CompilerContext
}

func (p *schemaParser) parse() (Node, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	if err := p.parseType(tok); err != nil {
		return nil, err
	}
	return p.ctx.Root()
}

// next translates driver errors into the schema error surface: EOF inside a
// document and enforcement findings are both construction failures.
func (p *schemaParser) next() (Token, error) {
	tok, err := p.src.NextToken()
	if err == nil {
		return tok, nil
	}
	if errors.Is(err, io.EOF) {
		return Token{}, newError(CodeParseError, "unexpected end of schema document")
	}
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return Token{}, newError(ie.Code, ie.Message)
	}
	return Token{}, newError(CodeParseError, err.Error())
}

// parseType consumes one complete type starting at tok: a bare name, a
// union ([...]) or an attributed object ({...}).
func (p *schemaParser) parseType(tok Token) error {
	switch tok.Kind {
	case TokenString:
		return p.parseTypeName(tok.String)
	case TokenBeginArray:
		return p.parseUnion()
	case TokenBeginObject:
		return p.parseObject()
	default:
		return newError(CodeParseError, "expected a type name, object or union")
	}
}

// parseTypeName handles the bare-string form: a primitive name or a
// reference to a previously defined named type.
func (p *schemaParser) parseTypeName(name string) error {
	p.ctx.StartType()
	if t, ok := PrimitiveTypeByName(name); ok {
		if err := p.ctx.AddType(t); err != nil {
			return err
		}
	} else if _, compound := complexTypes[name]; compound {
		return errorf(CodeParseError, "%q requires an attributed object form", name)
	} else if err := p.ctx.AddNamedTypeReference(name); err != nil {
		return err
	}
	return p.ctx.FinishType()
}

func (p *schemaParser) parseUnion() error {
	p.ctx.StartType()
	if err := p.ctx.AddType(TypeUnion); err != nil {
		return err
	}
	if err := p.ctx.MarkUnionBranches(); err != nil {
		return err
	}
	for {
		tok, err := p.next()
		if err != nil {
			return err
		}
		if tok.Kind == TokenEndArray {
			break
		}
		if err := p.parseType(tok); err != nil {
			return err
		}
	}
	return p.ctx.FinishType()
}

func (p *schemaParser) parseObject() error {
	p.ctx.StartType()
	for {
		tok, err := p.next()
		if err != nil {
			return err
		}
		if tok.Kind == TokenEndObject {
			break
		}
		if tok.Kind != TokenKey {
			return newError(CodeParseError, "expected an attribute key")
		}
		if err := p.parseAttribute(tok.String); err != nil {
			return err
		}
	}
	return p.ctx.FinishType()
}

func (p *schemaParser) parseAttribute(key string) error {
	switch key {
	case "type":
		tok, err := p.next()
		if err != nil {
			return err
		}
		if tok.Kind != TokenString {
			return newError(CodeParseError, `the "type" attribute must be a string`)
		}
		name := tok.String
		if t, ok := complexTypes[name]; ok {
			return p.ctx.AddType(t)
		}
		if t, ok := PrimitiveTypeByName(name); ok {
			return p.ctx.AddType(t)
		}
		return p.ctx.AddNamedTypeReference(name)
	case "name":
		tok, err := p.next()
		if err != nil {
			return err
		}
		if tok.Kind != TokenString {
			return newError(CodeParseError, `the "name" attribute must be a string`)
		}
		return p.ctx.SetName(tok.String)
	case "namespace":
		tok, err := p.next()
		if err != nil {
			return err
		}
		if tok.Kind != TokenString {
			return newError(CodeParseError, `the "namespace" attribute must be a string`)
		}
		return p.ctx.SetNamespace(tok.String)
	case "size":
		tok, err := p.next()
		if err != nil {
			return err
		}
		if tok.Kind != TokenNumber {
			return errorf(CodeInvalidSize, "non-numeric size literal")
		}
		return p.ctx.SetFixedSize(tok.Number)
	case "symbols":
		return p.parseSymbols()
	case "fields":
		return p.parseFields()
	case "items":
		if err := p.ctx.MarkArrayItems(); err != nil {
			return err
		}
		tok, err := p.next()
		if err != nil {
			return err
		}
		return p.parseType(tok)
	case "values":
		if err := p.ctx.MarkMapValues(); err != nil {
			return err
		}
		tok, err := p.next()
		if err != nil {
			return err
		}
		return p.parseType(tok)
	default:
		// doc, default, aliases, order and any custom attribute.
		return p.skipValue()
	}
}

func (p *schemaParser) parseSymbols() error {
	tok, err := p.next()
	if err != nil {
		return err
	}
	if tok.Kind != TokenBeginArray {
		return newError(CodeParseError, `the "symbols" attribute must be an array`)
	}
	for {
		tok, err := p.next()
		if err != nil {
			return err
		}
		if tok.Kind == TokenEndArray {
			return nil
		}
		if tok.Kind != TokenString {
			return newError(CodeParseError, "enum symbols must be strings")
		}
		if err := p.ctx.AddSymbol(tok.String); err != nil {
			return err
		}
	}
}

func (p *schemaParser) parseFields() error {
	if err := p.ctx.MarkFields(); err != nil {
		return err
	}
	tok, err := p.next()
	if err != nil {
		return err
	}
	if tok.Kind != TokenBeginArray {
		return newError(CodeParseError, `the "fields" attribute must be an array`)
	}
	for {
		tok, err := p.next()
		if err != nil {
			return err
		}
		if tok.Kind == TokenEndArray {
			return nil
		}
		if tok.Kind != TokenBeginObject {
			return newError(CodeParseError, "record fields must be objects")
		}
		if err := p.parseField(); err != nil {
			return err
		}
	}
}

// parseField consumes one field object. Field name and field type may come
// in either order; names and child nodes are appended once per field, so
// declaration order stays aligned.
func (p *schemaParser) parseField() error {
	for {
		tok, err := p.next()
		if err != nil {
			return err
		}
		if tok.Kind == TokenEndObject {
			return nil
		}
		if tok.Kind != TokenKey {
			return newError(CodeParseError, "expected a field attribute key")
		}
		switch tok.String {
		case "name":
			nameTok, err := p.next()
			if err != nil {
				return err
			}
			if nameTok.Kind != TokenString {
				return newError(CodeParseError, "field names must be strings")
			}
			if err := p.ctx.AddFieldName(nameTok.String); err != nil {
				return err
			}
		case "type":
			typeTok, err := p.next()
			if err != nil {
				return err
			}
			if err := p.parseType(typeTok); err != nil {
				return err
			}
		default:
			if err := p.skipValue(); err != nil {
				return err
			}
		}
	}
}

// skipValue consumes and discards the next complete value.
func (p *schemaParser) skipValue() error {
	tok, err := p.next()
	if err != nil {
		return err
	}
	switch tok.Kind {
	case TokenBeginObject, TokenBeginArray:
		depth := 1
		for depth > 0 {
			tok, err := p.next()
			if err != nil {
				return err
			}
			switch tok.Kind {
			case TokenBeginObject, TokenBeginArray:
				depth++
			case TokenEndObject, TokenEndArray:
				depth--
			}
		}
	}
	return nil
}
