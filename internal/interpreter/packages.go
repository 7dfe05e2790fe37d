package interpreter

import (
	"os"
	"strings"

	"github.com/lorylang/lory/internal/ast"
	"github.com/lorylang/lory/internal/config"
	"github.com/lorylang/lory/internal/lexer"
	"github.com/lorylang/lory/internal/parser"
	"github.com/lorylang/lory/internal/utils"
)

func importName(expr ast.Expression) (string, bool) {
	switch e := expr.(type) {
	case *ast.Identifier:
		return e.Name, true
	case *ast.StringLiteral:
		return e.Value, true
	}
	return "", false
}

// evalImport runs a registered package's body, or loads and runs a script
// file when the name is a path. Functions declared while a package body
// runs register under the package-qualified name. Importing again re-runs
// the body.
func (i *Interpreter) evalImport(s *ast.ImportStatement) Object {
	name, ok := importName(s.Name)
	if !ok {
		return newErrorAt(s.Token, TypeError, "import expects a package name or path")
	}

	if pkg, ok := i.packages[name]; ok {
		i.packageStack = append(i.packageStack, name)
		result := i.evalStatements(pkg.Body)
		i.packageStack = i.packageStack[:len(i.packageStack)-1]
		if isAbrupt(result) {
			return result
		}
		return NULL
	}

	return i.importFile(s, name)
}

func (i *Interpreter) importFile(s *ast.ImportStatement, path string) Object {
	path = utils.ResolveImportPath(i.baseDir, path)
	if !config.HasSourceExt(path) {
		path += config.SourceFileExt
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return newErrorAt(s.Token, FileSystemError, "cannot import %q: %v", path, err)
	}

	l := lexer.New(string(src))
	p := parser.New(l)
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		return newErrorAt(s.Token, SyntaxError, "in %q: %s", path, strings.Join(errs, "; "))
	}

	result := i.evalStatements(program.Statements)
	if isAbrupt(result) {
		return result
	}
	return NULL
}

// evalExport imports a package and records it as re-exported by this unit.
func (i *Interpreter) evalExport(s *ast.ExportStatement) Object {
	name, ok := importName(s.Name)
	if !ok {
		return newErrorAt(s.Token, TypeError, "export expects a package name")
	}
	if _, registered := i.packages[name]; !registered {
		return newErrorAt(s.Token, UndefinedNameError, "package %q is not defined", name)
	}
	result := i.evalImport(&ast.ImportStatement{Token: s.Token, Name: s.Name})
	if isAbrupt(result) {
		return result
	}
	return NULL
}
