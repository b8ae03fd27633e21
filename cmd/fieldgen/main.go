// Command fieldgen generates typed field references for the schema
// constructors of a model package.
//
//	//go:generate go run github.com/routinerocket/recstore/cmd/fieldgen
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/routinerocket/recstore/cmd/fieldgen/generator"
)

func main() {
	dir := flag.String("i", ".", "directory containing the schema constructors")
	flag.Parse()

	path, err := generator.GenerateDir(*dir)
	if err != nil {
		log.Fatalf("failed to generate fields: %v", err)
	}
	fmt.Printf("Generated %s\n", path)
}
