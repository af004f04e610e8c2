package lang

import (
	"github.com/astrolabe-dev/astrolabe/internal/types"
)

// Table maps one language's grammar node kinds to semantic categories. Kinds
// absent from both maps classify as CategoryOther. Overloaded kinds (a
// binary_expression may be arithmetic or a short-circuit) are resolved by the
// node's operator token instead.
type Table struct {
	Kinds      map[string]types.SemanticCategory
	Overloaded map[string]map[string]types.SemanticCategory
}

// Classify resolves a raw node kind (plus operator token for overloaded
// kinds) to a semantic category. Total over all inputs; unknown kinds are
// CategoryOther.
func (t *Table) Classify(kind, operator string) types.SemanticCategory {
	if ops, ok := t.Overloaded[kind]; ok {
		if c, ok := ops[operator]; ok {
			return c
		}
		return types.CategoryOther
	}
	if c, ok := t.Kinds[kind]; ok {
		return c
	}
	return types.CategoryOther
}

// TableFor returns the classifier table for a language, or false for
// parse-only languages. Adding an analyzable language means adding one table
// here; the traversal logic never changes.
func TableFor(l Language) (*Table, bool) {
	t, ok := tables[l]
	return t, ok
}

// Classify resolves a kind for a language in one call. Parse-only languages
// classify everything as CategoryOther.
func Classify(l Language, kind, operator string) types.SemanticCategory {
	t, ok := tables[l]
	if !ok {
		return types.CategoryOther
	}
	return t.Classify(kind, operator)
}

var shortCircuit = map[string]types.SemanticCategory{
	"&&": types.CategoryBooleanCombinator,
	"||": types.CategoryBooleanCombinator,
}

var shortCircuitJS = map[string]types.SemanticCategory{
	"&&": types.CategoryBooleanCombinator,
	"||": types.CategoryBooleanCombinator,
	"??": types.CategoryBooleanCombinator,
}

var tables = map[Language]*Table{
	Go: {
		Kinds: map[string]types.SemanticCategory{
			"if_statement":       types.CategoryBranch,
			"expression_case":    types.CategoryBranch,
			"type_case":          types.CategoryBranch,
			"communication_case": types.CategoryBranch,

			"for_statement": types.CategoryLoop,

			"function_declaration": types.CategoryFunctionBoundary,
			"method_declaration":   types.CategoryFunctionBoundary,
			"func_literal":         types.CategoryFunctionBoundary,

			"comment": types.CategoryComment,

			"expression_statement":  types.CategoryStatement,
			"return_statement":      types.CategoryStatement,
			"short_var_declaration": types.CategoryStatement,
			"assignment_statement":  types.CategoryStatement,
			"go_statement":          types.CategoryStatement,
			"defer_statement":       types.CategoryStatement,
			"break_statement":       types.CategoryStatement,
			"continue_statement":    types.CategoryStatement,
			"var_declaration":       types.CategoryStatement,
			"const_declaration":     types.CategoryStatement,
		},
		Overloaded: map[string]map[string]types.SemanticCategory{
			"binary_expression": shortCircuit,
		},
	},

	JavaScript: {
		Kinds: map[string]types.SemanticCategory{
			"if_statement":       types.CategoryBranch,
			"switch_case":        types.CategoryBranch,
			"ternary_expression": types.CategoryBranch,

			"for_statement":    types.CategoryLoop,
			"for_in_statement": types.CategoryLoop,
			"while_statement":  types.CategoryLoop,
			"do_statement":     types.CategoryLoop,

			"catch_clause": types.CategoryExceptionHandler,

			"function_declaration":           types.CategoryFunctionBoundary,
			"function_expression":            types.CategoryFunctionBoundary,
			"arrow_function":                 types.CategoryFunctionBoundary,
			"method_definition":              types.CategoryFunctionBoundary,
			"generator_function_declaration": types.CategoryFunctionBoundary,
			"generator_function":             types.CategoryFunctionBoundary,

			"comment": types.CategoryComment,

			"expression_statement": types.CategoryStatement,
			"return_statement":     types.CategoryStatement,
			"lexical_declaration":  types.CategoryStatement,
			"variable_declaration": types.CategoryStatement,
			"throw_statement":      types.CategoryStatement,
			"break_statement":      types.CategoryStatement,
			"continue_statement":   types.CategoryStatement,
		},
		Overloaded: map[string]map[string]types.SemanticCategory{
			"binary_expression": shortCircuitJS,
		},
	},

	Rust: {
		Kinds: map[string]types.SemanticCategory{
			"if_expression": types.CategoryBranch,
			"match_arm":     types.CategoryBranch,

			"for_expression":   types.CategoryLoop,
			"while_expression": types.CategoryLoop,
			"loop_expression":  types.CategoryLoop,

			// expr? unwinds to the caller on Err, a hidden branch
			"try_expression": types.CategoryExceptionHandler,

			"function_item":      types.CategoryFunctionBoundary,
			"closure_expression": types.CategoryFunctionBoundary,

			"line_comment":  types.CategoryComment,
			"block_comment": types.CategoryComment,

			"expression_statement": types.CategoryStatement,
			"let_declaration":      types.CategoryStatement,
		},
		Overloaded: map[string]map[string]types.SemanticCategory{
			"binary_expression": shortCircuit,
		},
	},
}
