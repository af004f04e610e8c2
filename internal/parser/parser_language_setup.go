package parser

import (
	tree_sitter_zig "github.com/tree-sitter-grammars/tree-sitter-zig/bindings/go"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_csharp "github.com/tree-sitter/tree-sitter-c-sharp/bindings/go"
	tree_sitter_cpp "github.com/tree-sitter/tree-sitter-cpp/bindings/go"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_php "github.com/tree-sitter/tree-sitter-php/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/astrolabe-dev/astrolabe/internal/lang"
)

// grammarFor returns the tree-sitter grammar for a language. C and C headers
// share the C++ grammar; it parses both.
func grammarFor(l lang.Language) *tree_sitter.Language {
	switch l {
	case lang.Go:
		return tree_sitter.NewLanguage(tree_sitter_go.Language())
	case lang.JavaScript:
		return tree_sitter.NewLanguage(tree_sitter_javascript.Language())
	case lang.TypeScript:
		return tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript())
	case lang.Rust:
		return tree_sitter.NewLanguage(tree_sitter_rust.Language())
	case lang.Python:
		return tree_sitter.NewLanguage(tree_sitter_python.Language())
	case lang.Java:
		return tree_sitter.NewLanguage(tree_sitter_java.Language())
	case lang.C, lang.Cpp:
		return tree_sitter.NewLanguage(tree_sitter_cpp.Language())
	case lang.CSharp:
		return tree_sitter.NewLanguage(tree_sitter_csharp.Language())
	case lang.PHP:
		return tree_sitter.NewLanguage(tree_sitter_php.LanguagePHP())
	case lang.Zig:
		return tree_sitter.NewLanguage(tree_sitter_zig.Language())
	default:
		return nil
	}
}
