package filter

import (
	"github.com/justcmsco/justcms-go/justcms"
)

// Filter defines the basic interface for page filters
type Filter interface {
	// Evaluate checks if a page matches the filter criteria
	Evaluate(page justcms.PageSummary) bool
}

// CompiledFilter represents a pre-compiled filter ready for evaluation
type CompiledFilter interface {
	Filter

	// Expression returns the original filter expression
	Expression() string
}

// Compiler compiles filter expressions into executable filters
type Compiler interface {
	// Compile parses and compiles a filter expression
	Compile(expression string) (CompiledFilter, error)
}
