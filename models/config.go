package models

import "github.com/routinerocket/recstore/gen"

//go:generate go run github.com/routinerocket/recstore/cmd/fieldgen

var _ = gen.Config{
	OutFile: "fields.go",
}
