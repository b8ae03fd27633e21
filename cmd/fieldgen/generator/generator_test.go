package generator_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/routinerocket/recstore"
	"github.com/routinerocket/recstore/cmd/fieldgen/generator"
	"github.com/routinerocket/recstore/gen"
)

const sampleSchemas = `package sample

import "github.com/routinerocket/recstore"

func key() recstore.Column {
	return recstore.Column{Name: "id", Type: recstore.TypeInteger, PrimaryKey: true}
}

// ReadingSchema describes a meter reading.
func ReadingSchema() *recstore.Schema {
	return recstore.NewSchema(
		key(),
		recstore.Column{Name: "meter_url", Type: recstore.TypeText, NotNull: true},
		recstore.Column{Name: "takenAt", Type: recstore.TypeDateTime, Default: recstore.Now},
		recstore.Column{Name: "ok", Type: recstore.TypeBoolean},
	)
}

func NoteSchema() *recstore.Schema {
	return recstore.NewSchema(recstore.Column{Name: "body"})
}

// helperSchema is not a constructor because it never calls NewSchema.
func helperSchema() {}
`

func writeSample(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return dir
}

func TestParseConfig_NoConfigFile(t *testing.T) {
	cfg, err := generator.ParseConfig(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OutFile != gen.DefaultOutFile {
		t.Errorf("expected OutFile %q, got %q", gen.DefaultOutFile, cfg.OutFile)
	}
}

func TestParseConfig_WithOptions(t *testing.T) {
	dir := writeSample(t, map[string]string{
		"config.go": `package sample

import "github.com/routinerocket/recstore/gen"

var _ = gen.Config{
	OutFile:        "columns_gen.go",
	IncludeSchemas: []string{"Reading", "Note"},
	ExcludeSchemas: []string{"Note"},
	FieldTypeMap:   map[string]string{"DATE": "field.String"},
}
`,
	})

	cfg, err := generator.ParseConfig(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OutFile != "columns_gen.go" {
		t.Errorf("expected OutFile 'columns_gen.go', got '%s'", cfg.OutFile)
	}
	if len(cfg.IncludeSchemas) != 2 || cfg.IncludeSchemas[0] != "Reading" {
		t.Errorf("unexpected IncludeSchemas: %v", cfg.IncludeSchemas)
	}
	if len(cfg.ExcludeSchemas) != 1 || cfg.ExcludeSchemas[0] != "Note" {
		t.Errorf("unexpected ExcludeSchemas: %v", cfg.ExcludeSchemas)
	}
	if cfg.FieldTypeMap["DATE"] != "field.String" {
		t.Errorf("unexpected FieldTypeMap: %v", cfg.FieldTypeMap)
	}
}

func TestParseSchemas(t *testing.T) {
	dir := writeSample(t, map[string]string{
		"schema.go":      sampleSchemas,
		"schema_test.go": "package sample\n\nfunc BrokenSchema() { recstore.NewSchema(nope) }\n",
	})

	pkg, err := generator.ParseSchemas(dir, gen.DefaultOutFile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pkg.Name != "sample" {
		t.Errorf("expected package sample, got %s", pkg.Name)
	}
	if len(pkg.Schemas) != 2 {
		t.Fatalf("expected 2 schemas, got %d", len(pkg.Schemas))
	}

	reading := pkg.Schemas[0]
	if reading.Name != "Reading" {
		t.Errorf("expected Reading, got %s", reading.Name)
	}
	want := []generator.FieldMeta{
		{Name: "ID", Column: "id", ColumnType: recstore.TypeInteger},
		{Name: "MeterURL", Column: "meter_url", ColumnType: recstore.TypeText},
		{Name: "TakenAt", Column: "takenAt", ColumnType: recstore.TypeDateTime},
		{Name: "Ok", Column: "ok", ColumnType: recstore.TypeBoolean},
	}
	if len(reading.Fields) != len(want) {
		t.Fatalf("expected %d fields, got %d", len(want), len(reading.Fields))
	}
	for i, f := range reading.Fields {
		if f != want[i] {
			t.Errorf("field %d: expected %+v, got %+v", i, want[i], f)
		}
	}

	note := pkg.Schemas[1]
	if len(note.Fields) != 1 || note.Fields[0].ColumnType != recstore.TypeText {
		t.Errorf("untyped column should default to TEXT: %+v", note.Fields)
	}
}

func TestParseSchemas_UnsupportedColumn(t *testing.T) {
	dir := writeSample(t, map[string]string{
		"schema.go": `package sample

import "github.com/routinerocket/recstore"

var cols = []recstore.Column{}

func BadSchema() *recstore.Schema {
	return recstore.NewSchema(cols[0])
}
`,
	})

	_, err := generator.ParseSchemas(dir, gen.DefaultOutFile)
	if err == nil || !strings.Contains(err.Error(), "unsupported column expression") {
		t.Fatalf("expected unsupported column error, got %v", err)
	}
}

func TestGoName(t *testing.T) {
	tests := map[string]string{
		"id":                  "ID",
		"userId":              "UserID",
		"otpExpires":          "OTPExpires",
		"mood_score":          "MoodScore",
		"bp_systolic":         "BPSystolic",
		"bmi":                 "BMI",
		"focusTimePreference": "FocusTimePreference",
		"profile-picture":     "ProfilePicture",
	}
	for column, want := range tests {
		if got := generator.GoName(column); got != want {
			t.Errorf("GoName(%q) = %q, want %q", column, got, want)
		}
	}
}

func TestRender(t *testing.T) {
	dir := writeSample(t, map[string]string{"schema.go": sampleSchemas})
	pkg, err := generator.ParseSchemas(dir, gen.DefaultOutFile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg := &gen.Config{
		OutFile:        gen.DefaultOutFile,
		ExcludeSchemas: []string{"Note"},
		FieldTypeMap:   map[string]string{"DATE": "field.String"},
	}
	src, err := generator.Render(pkg, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := string(src)

	for _, want := range []string{
		"// Code generated by fieldgen. DO NOT EDIT.",
		"package sample",
		`import "github.com/routinerocket/recstore/field"`,
		"var Reading = struct {",
		`MeterURL: field.String{}.WithColumn("meter_url"),`,
		`TakenAt:  field.String{}.WithColumn("takenAt"),`,
		`Ok:       field.Bool{}.WithColumn("ok"),`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("generated source missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "var Note") {
		t.Errorf("excluded schema was generated:\n%s", out)
	}
}

func TestGenerateDir(t *testing.T) {
	dir := writeSample(t, map[string]string{"schema.go": sampleSchemas})

	path, err := generator.GenerateDir(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != filepath.Join(dir, gen.DefaultOutFile) {
		t.Errorf("unexpected path %s", path)
	}

	// A second run must ignore its own output.
	if _, err := generator.GenerateDir(dir); err != nil {
		t.Fatalf("regeneration failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read generated file: %v", err)
	}
	if !strings.Contains(string(data), "var Note = struct {") {
		t.Errorf("unexpected output:\n%s", data)
	}
}

// The checked-in model fields must match what the generator produces.
func TestModelFieldsUpToDate(t *testing.T) {
	dir := filepath.Join("..", "..", "..", "models")
	cfg, err := generator.ParseConfig(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pkg, err := generator.ParseSchemas(dir, cfg.OutFile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want, err := generator.Render(pkg, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := os.ReadFile(filepath.Join(dir, cfg.OutFile))
	if err != nil {
		t.Fatalf("failed to read %s: %v", cfg.OutFile, err)
	}
	if string(got) != string(want) {
		t.Errorf("%s is stale, run go generate ./models", cfg.OutFile)
	}
}
