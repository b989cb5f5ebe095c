package engine

// Enforcement wrapper for TokenSource. Schema documents are small and
// hand-written, so duplicate keys almost always mean a mistake; the wrapper
// surfaces them (and runaway nesting) as errors while streaming.

// EnforceOptions controls runtime enforcement behavior.
type EnforceOptions struct {
	// RejectDuplicateKeys makes a repeated key within one object an error.
	RejectDuplicateKeys bool
	// MaxDepth bounds container nesting; 0 disables the check.
	MaxDepth int
}

// SimpleIssue is a lightweight enforcement finding.
type SimpleIssue struct {
	Code    string
	Message string
}

// IssueError is a lightweight error carrying a SimpleIssue.
type IssueError struct{ SimpleIssue }

func (e IssueError) Error() string { return e.Message }

// WrapWithEnforcement returns a TokenSource that enforces the duplicate key
// policy and the maximum nesting depth.
func WrapWithEnforcement(inner TokenSource, opt EnforceOptions) TokenSource {
	return &enforcingTokenSource{inner: inner, opt: opt}
}

type enforceFrame struct {
	object bool
	keys   map[string]struct{}
}

type enforcingTokenSource struct {
	inner TokenSource
	opt   EnforceOptions
	stack []enforceFrame
}

func (e *enforcingTokenSource) Location() int64 { return e.inner.Location() }

func (e *enforcingTokenSource) NextToken() (Token, error) {
	tok, err := e.inner.NextToken()
	if err != nil {
		return tok, err
	}
	switch tok.Kind {
	case KindBeginObject, KindBeginArray:
		e.stack = append(e.stack, enforceFrame{object: tok.Kind == KindBeginObject})
		if e.opt.MaxDepth > 0 && len(e.stack) > e.opt.MaxDepth {
			return Token{}, IssueError{SimpleIssue{
				Code:    "parse_error",
				Message: "maximum nesting depth exceeded",
			}}
		}
	case KindEndObject, KindEndArray:
		if n := len(e.stack); n > 0 {
			e.stack = e.stack[:n-1]
		}
	case KindKey:
		if !e.opt.RejectDuplicateKeys {
			break
		}
		if n := len(e.stack); n > 0 && e.stack[n-1].object {
			top := &e.stack[n-1]
			if top.keys == nil {
				top.keys = make(map[string]struct{})
			}
			if _, dup := top.keys[tok.String]; dup {
				return Token{}, IssueError{SimpleIssue{
					Code:    "duplicate_key",
					Message: "duplicate key: " + tok.String,
				}}
			}
			top.keys[tok.String] = struct{}{}
		}
	}
	return tok, nil
}
