package filter

import (
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/justcmsco/justcms-go/justcms"
)

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
}

// exprCompiler implements Compiler for expr-based filters
type exprCompiler struct {
	helperFuncs map[string]any
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler() Compiler {
	return &exprCompiler{
		helperFuncs: createHelperFunctions(),
	}
}

// Compile compiles an expression into an executable filter
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	// Compile with static environment for validation
	program, err := expr.Compile(expression,
		expr.Env(c.helperFuncs),
		expr.AllowUndefinedVariables(), // Allow page properties
		expr.AsBool(),                  // Ensure boolean result
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	return &exprFilter{
		expression: expression,
		program:    program,
	}, nil
}

// Evaluate evaluates the filter against a page
func (f *exprFilter) Evaluate(page justcms.PageSummary) bool {
	env := createRuntimeEnvironment(page)

	result, err := expr.Run(f.program, env)
	if err != nil {
		// Skip pages whose evaluation errors rather than failing the listing
		return false
	}

	// Result is guaranteed to be bool due to AsBool() option during compilation
	return result.(bool)
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

// createHelperFunctions creates the static helper functions used during compilation
func createHelperFunctions() map[string]any {
	funcs := make(map[string]any, 16)
	addHelperFunctions(funcs)
	return funcs
}

// addHelperFunctions adds all helper functions to the provided map
func addHelperFunctions(env map[string]any) {
	// Date helpers
	env["daysSince"] = func(t time.Time) int {
		return int(time.Since(t).Hours() / 24)
	}
	env["daysAgo"] = func(days int) time.Time {
		return time.Now().AddDate(0, 0, -days)
	}
	env["monthsAgo"] = func(months int) time.Time {
		return time.Now().AddDate(0, -months, 0)
	}
	env["parseDate"] = func(dateStr string) time.Time {
		t, _ := time.Parse("2006-01-02", dateStr)
		return t
	}
	// String helpers
	env["contains"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["startsWith"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper
	// Current time
	env["now"] = time.Now
}

// createRuntimeEnvironment creates the runtime environment for filter evaluation
func createRuntimeEnvironment(page justcms.PageSummary) map[string]any {
	env := make(map[string]any, 24)

	addHelperFunctions(env)

	// Page data
	env["Page"] = page

	// Page-specific helpers
	env["hasCategory"] = createHasCategoryFunc(page.Categories)
	env["createdAfter"] = func(t time.Time) bool { return page.CreatedAt.After(t) }
	env["createdBefore"] = func(t time.Time) bool { return page.CreatedAt.Before(t) }
	env["updatedAfter"] = func(t time.Time) bool { return page.UpdatedAt.After(t) }
	env["hasCoverImage"] = func() bool { return page.CoverImage != nil }

	// Direct page properties for convenience
	env["Title"] = page.Title
	env["Subtitle"] = page.Subtitle
	env["Slug"] = page.Slug
	env["Categories"] = categorySlugs(page.Categories)
	env["Created"] = page.CreatedAt
	env["Updated"] = page.UpdatedAt

	return env
}

// createHasCategoryFunc builds a case-insensitive category matcher for
// filter expressions. Note this is looser than PageDetail.HasCategory,
// which matches slugs exactly; filters favor convenience.
func createHasCategoryFunc(categories []justcms.Category) func(string) bool {
	lowerSlugs := make([]string, len(categories))
	for i, cat := range categories {
		lowerSlugs[i] = strings.ToLower(cat.Slug)
	}
	return func(slug string) bool {
		target := strings.ToLower(slug)
		for _, s := range lowerSlugs {
			if s == target {
				return true
			}
		}
		return false
	}
}

func categorySlugs(categories []justcms.Category) []string {
	slugs := make([]string, len(categories))
	for i, cat := range categories {
		slugs[i] = cat.Slug
	}
	return slugs
}
