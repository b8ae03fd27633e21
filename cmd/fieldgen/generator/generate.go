package generator

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"text/template"

	"golang.org/x/tools/imports"

	"github.com/routinerocket/recstore"
	"github.com/routinerocket/recstore/gen"
)

// fieldPackage is the import path of the typed field references.
const fieldPackage = "github.com/routinerocket/recstore/field"

// defaultFieldTypes maps column types to typed field references.
var defaultFieldTypes = map[recstore.Type]string{
	recstore.TypeText:     "field.String",
	recstore.TypeInteger:  "field.Number[int64]",
	recstore.TypeFloat:    "field.Number[float64]",
	recstore.TypeBoolean:  "field.Bool",
	recstore.TypeDateTime: "field.Time",
	recstore.TypeDateOnly: "field.Time",
}

var fileTemplate = template.Must(template.New("fields").Parse(`// Code generated by fieldgen. DO NOT EDIT.

package {{.Package}}

import "{{.Import}}"
{{range .Schemas}}
// {{.Name}} fields.
var {{.Name}} = struct {
{{- range .Fields}}
	{{.Name}} {{.Type}}
{{- end}}
}{
{{- range .Fields}}
	{{.Name}}: {{.Type}}{}.WithColumn({{printf "%q" .Column}}),
{{- end}}
}
{{end}}`))

type templateField struct {
	Name, Type, Column string
}

type templateSchema struct {
	Name   string
	Fields []templateField
}

// Render produces the formatted source of the field declarations of pkg.
func Render(pkg *PackageMeta, cfg *gen.Config) ([]byte, error) {
	data := struct {
		Package string
		Import  string
		Schemas []templateSchema
	}{Package: pkg.Name, Import: fieldPackage}

	for _, s := range filterSchemas(pkg.Schemas, cfg) {
		ts := templateSchema{Name: s.Name}
		for _, f := range s.Fields {
			typ, ok := cfg.FieldTypeMap[string(f.ColumnType)]
			if !ok {
				typ = defaultFieldTypes[f.ColumnType]
			}
			ts.Fields = append(ts.Fields, templateField{Name: f.Name, Type: typ, Column: f.Column})
		}
		data.Schemas = append(data.Schemas, ts)
	}

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", pkg.Name, err)
	}
	out, err := imports.Process(cfg.OutFile, buf.Bytes(), nil)
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", cfg.OutFile, err)
	}
	return out, nil
}

// filterSchemas applies Include/Exclude filters from config
func filterSchemas(schemas []SchemaMeta, cfg *gen.Config) []SchemaMeta {
	if len(cfg.IncludeSchemas) == 0 && len(cfg.ExcludeSchemas) == 0 {
		return schemas
	}
	var result []SchemaMeta
	for _, s := range schemas {
		if slices.Contains(cfg.ExcludeSchemas, s.Name) {
			continue
		}
		if len(cfg.IncludeSchemas) > 0 && !slices.Contains(cfg.IncludeSchemas, s.Name) {
			continue
		}
		result = append(result, s)
	}
	return result
}

// GenerateDir parses the model package in dir and writes its field
// declarations to the configured output file. It returns the written path.
func GenerateDir(dir string) (string, error) {
	cfg, err := ParseConfig(dir)
	if err != nil {
		return "", err
	}
	pkg, err := ParseSchemas(dir, cfg.OutFile)
	if err != nil {
		return "", err
	}
	src, err := Render(pkg, cfg)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, cfg.OutFile)
	if err := os.WriteFile(path, src, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
