package filter

import (
	"strings"

	"github.com/justcmsco/justcms-go/justcms"
)

// ParseAndCreateFilter parses a filter expression and returns a filter
// function. An empty expression matches every page.
func ParseAndCreateFilter(expression string) (func(justcms.PageSummary) bool, error) {
	if strings.TrimSpace(expression) == "" {
		return func(justcms.PageSummary) bool { return true }, nil
	}

	compiled, err := NewExprCompiler().Compile(expression)
	if err != nil {
		return nil, err
	}

	return compiled.Evaluate, nil
}

// Apply evaluates a filter against a page list, preserving order
func Apply(pages []justcms.PageSummary, match func(justcms.PageSummary) bool) []justcms.PageSummary {
	var matched []justcms.PageSummary
	for _, page := range pages {
		if match(page) {
			matched = append(matched, page)
		}
	}
	return matched
}
