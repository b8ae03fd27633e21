// Package gen holds the declarative configuration of the fieldgen code
// generator. Place a config.go in the model directory:
//
//	//go:generate go run github.com/routinerocket/recstore/cmd/fieldgen
//	var _ = gen.Config{OutFile: "fields.go"}
package gen

// Config defines the code generation configuration.
type Config struct {
	// OutFile is the generated file, relative to the model directory.
	// Default: "fields.go"
	OutFile string

	// IncludeSchemas lists the schema constructors to generate, by name
	// without the Schema suffix: []string{"User", "Habit"}.
	// If empty, every schema constructor is generated.
	IncludeSchemas []string

	// ExcludeSchemas lists schema constructors to skip.
	ExcludeSchemas []string

	// FieldTypeMap maps column types to field types.
	// Example: map[string]string{"DATEONLY": "field.String"}
	FieldTypeMap map[string]string
}

// ConfigFileName is the convention filename for configuration.
const ConfigFileName = "config.go"

// DefaultOutFile is the generated file name when Config.OutFile is empty.
const DefaultOutFile = "fields.go"
