package generator

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/routinerocket/recstore/gen"
)

// ParseConfig reads the gen.Config literal from config.go in dir. A
// directory without config.go yields the defaults.
func ParseConfig(dir string) (*gen.Config, error) {
	cfg := &gen.Config{
		OutFile:      gen.DefaultOutFile,
		FieldTypeMap: make(map[string]string),
	}

	configFile := filepath.Join(dir, gen.ConfigFileName)
	src, err := os.ReadFile(configFile)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, configFile, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", configFile, err)
	}

	// Look for var _ = gen.Config{...}
	for _, decl := range file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.VAR {
			continue
		}
		for _, spec := range genDecl.Specs {
			valueSpec, ok := spec.(*ast.ValueSpec)
			if !ok || len(valueSpec.Values) == 0 {
				continue
			}
			compLit, ok := valueSpec.Values[0].(*ast.CompositeLit)
			if !ok || typeName(compLit.Type) != "gen.Config" {
				continue
			}

			for _, elt := range compLit.Elts {
				kv, ok := elt.(*ast.KeyValueExpr)
				if !ok {
					continue
				}
				key, ok := kv.Key.(*ast.Ident)
				if !ok {
					continue
				}
				switch key.Name {
				case "OutFile":
					if s, ok := stringLit(kv.Value); ok && s != "" {
						cfg.OutFile = s
					}
				case "IncludeSchemas":
					cfg.IncludeSchemas = parseStringSlice(kv.Value)
				case "ExcludeSchemas":
					cfg.ExcludeSchemas = parseStringSlice(kv.Value)
				case "FieldTypeMap":
					cfg.FieldTypeMap = parseStringMap(kv.Value)
				}
			}
			return cfg, nil
		}
	}
	return cfg, nil
}

// typeName renders Ident and pkg.Ident type expressions.
func typeName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.SelectorExpr:
		if x, ok := t.X.(*ast.Ident); ok {
			return x.Name + "." + t.Sel.Name
		}
	}
	return ""
}

func stringLit(expr ast.Expr) (string, bool) {
	lit, ok := expr.(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return "", false
	}
	s, err := strconv.Unquote(lit.Value)
	return s, err == nil
}

// parseStringSlice extracts string values from []string{...}
func parseStringSlice(expr ast.Expr) []string {
	var result []string
	compLit, ok := expr.(*ast.CompositeLit)
	if !ok {
		return result
	}
	for _, elt := range compLit.Elts {
		if s, ok := stringLit(elt); ok {
			result = append(result, s)
		}
	}
	return result
}

// parseStringMap extracts map[string]string from map literals
func parseStringMap(expr ast.Expr) map[string]string {
	result := make(map[string]string)
	compLit, ok := expr.(*ast.CompositeLit)
	if !ok {
		return result
	}
	for _, elt := range compLit.Elts {
		kv, ok := elt.(*ast.KeyValueExpr)
		if !ok {
			continue
		}
		key, kok := stringLit(kv.Key)
		val, vok := stringLit(kv.Value)
		if kok && vok && key != "" && val != "" {
			result[key] = val
		}
	}
	return result
}
