package generator

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/routinerocket/recstore"
	"github.com/routinerocket/recstore/gen"
)

// PackageMeta is the parsed model package.
type PackageMeta struct {
	Name    string
	Schemas []SchemaMeta
}

// SchemaMeta describes one schema constructor, e.g. func UserSchema().
type SchemaMeta struct {
	Name   string // constructor name without the Schema suffix
	Fields []FieldMeta
}

// FieldMeta describes one column of a schema.
type FieldMeta struct {
	Name       string // exported Go name, e.g. UserID
	Column     string // column name, e.g. userId
	ColumnType recstore.Type
}

// columnTypes maps the recstore type constants to their values.
var columnTypes = map[string]recstore.Type{
	"TypeText":     recstore.TypeText,
	"TypeInteger":  recstore.TypeInteger,
	"TypeFloat":    recstore.TypeFloat,
	"TypeBoolean":  recstore.TypeBoolean,
	"TypeDateTime": recstore.TypeDateTime,
	"TypeDateOnly": recstore.TypeDateOnly,
}

// ParseSchemas finds the schema constructors of the package in dir: every
// function named <Name>Schema whose body calls NewSchema. Each argument of
// NewSchema is either a Column literal or a call to a package function
// returning one. Generated and test files are skipped.
func ParseSchemas(dir string, outFile string) (*PackageMeta, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	fset := token.NewFileSet()
	var files []*ast.File
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") ||
			name == outFile || name == gen.ConfigFileName {
			continue
		}
		f, err := parser.ParseFile(fset, filepath.Join(dir, name), nil, parser.ParseComments)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no Go files in %s", dir)
	}
	pkg := &PackageMeta{Name: files[0].Name.Name}

	// First pass: helpers such as func idColumn() recstore.Column.
	helpers := make(map[string]*ast.CompositeLit)
	for _, f := range files {
		for _, decl := range f.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok || fn.Body == nil || fn.Type.Results == nil || len(fn.Type.Results.List) != 1 {
				continue
			}
			if !isColumnType(fn.Type.Results.List[0].Type) || len(fn.Body.List) != 1 {
				continue
			}
			ret, ok := fn.Body.List[0].(*ast.ReturnStmt)
			if !ok || len(ret.Results) != 1 {
				continue
			}
			if lit, ok := ret.Results[0].(*ast.CompositeLit); ok {
				helpers[fn.Name.Name] = lit
			}
		}
	}

	for _, f := range files {
		for _, decl := range f.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok || fn.Recv != nil || fn.Body == nil {
				continue
			}
			name, ok := strings.CutSuffix(fn.Name.Name, "Schema")
			if !ok || name == "" {
				continue
			}

			call := findNewSchema(fn.Body)
			if call == nil {
				continue
			}

			schema := SchemaMeta{Name: name}
			for _, arg := range call.Args {
				lit, err := columnLiteral(arg, helpers)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", fset.Position(arg.Pos()), err)
				}
				field, err := parseColumn(lit)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", fset.Position(arg.Pos()), err)
				}
				schema.Fields = append(schema.Fields, field)
			}
			pkg.Schemas = append(pkg.Schemas, schema)
		}
	}
	return pkg, nil
}

func isColumnType(expr ast.Expr) bool {
	name := typeName(expr)
	return name == "Column" || strings.HasSuffix(name, ".Column")
}

func findNewSchema(body *ast.BlockStmt) *ast.CallExpr {
	var found *ast.CallExpr
	ast.Inspect(body, func(n ast.Node) bool {
		if found != nil {
			return false
		}
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}
		if name := typeName(call.Fun); name == "NewSchema" || strings.HasSuffix(name, ".NewSchema") {
			found = call
			return false
		}
		return true
	})
	return found
}

func columnLiteral(arg ast.Expr, helpers map[string]*ast.CompositeLit) (*ast.CompositeLit, error) {
	switch a := arg.(type) {
	case *ast.CompositeLit:
		if isColumnType(a.Type) {
			return a, nil
		}
	case *ast.CallExpr:
		if ident, ok := a.Fun.(*ast.Ident); ok && len(a.Args) == 0 {
			if lit, ok := helpers[ident.Name]; ok {
				return lit, nil
			}
		}
	}
	return nil, fmt.Errorf("unsupported column expression %T", arg)
}

func parseColumn(lit *ast.CompositeLit) (FieldMeta, error) {
	var meta FieldMeta
	for _, elt := range lit.Elts {
		kv, ok := elt.(*ast.KeyValueExpr)
		if !ok {
			return FieldMeta{}, fmt.Errorf("column literal must use keyed fields")
		}
		key, ok := kv.Key.(*ast.Ident)
		if !ok {
			continue
		}
		switch key.Name {
		case "Name":
			s, ok := stringLit(kv.Value)
			if !ok {
				return FieldMeta{}, fmt.Errorf("column name must be a string literal")
			}
			meta.Column = s
		case "Type":
			name := typeName(kv.Value)
			if i := strings.LastIndexByte(name, '.'); i >= 0 {
				name = name[i+1:]
			}
			t, ok := columnTypes[name]
			if !ok {
				return FieldMeta{}, fmt.Errorf("unknown column type %q", name)
			}
			meta.ColumnType = t
		}
	}
	if meta.Column == "" {
		return FieldMeta{}, fmt.Errorf("column without a name")
	}
	if meta.ColumnType == "" {
		meta.ColumnType = recstore.TypeText
	}
	meta.Name = GoName(meta.Column)
	return meta, nil
}

// commonInitialisms are written in upper case in Go names.
var commonInitialisms = map[string]bool{
	"API": true, "BMI": true, "BP": true, "HTTP": true, "ID": true,
	"IP": true, "JSON": true, "OTP": true, "URL": true, "UUID": true,
}

// GoName converts a column name to an exported Go identifier:
// userId -> UserID, bp_systolic -> BPSystolic, otpExpires -> OTPExpires.
func GoName(column string) string {
	var b strings.Builder
	for _, word := range splitWords(column) {
		upper := strings.ToUpper(word)
		if commonInitialisms[upper] {
			b.WriteString(upper)
			continue
		}
		r := []rune(word)
		r[0] = unicode.ToUpper(r[0])
		b.WriteString(string(r))
	}
	return b.String()
}

// splitWords splits snake_case, kebab-case and camelCase names.
func splitWords(s string) []string {
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '-' || r == ' ':
			flush()
			continue
		case unicode.IsUpper(r) && i > 0 && len(cur) > 0 && !unicode.IsUpper(cur[len(cur)-1]):
			flush()
		}
		cur = append(cur, r)
	}
	flush()
	return words
}
