package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	avro "github.com/spindlelabs/avro"
	"github.com/spindlelabs/avro/i18n"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "check":
		checkCmd(os.Args[2:])
	case "print":
		printCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "avsc - Avro schema tool\n\nUsage:\n  avsc check [-lang en|ja] file.avsc...\n  avsc print [-lang en|ja] file.avsc\n\nFiles ending in .yaml or .yml are parsed as YAML schema documents.")
}

func checkCmd(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	lang := fs.String("lang", "en", "error message language")
	_ = fs.Parse(args)
	if fs.NArg() == 0 {
		fs.Usage()
		os.Exit(2)
	}
	i18n.SetLanguage(*lang)
	failed := false
	for _, path := range fs.Args() {
		if _, err := compileFile(path); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			failed = true
			continue
		}
		fmt.Printf("%s: ok\n", path)
	}
	if failed {
		os.Exit(1)
	}
}

func printCmd(args []string) {
	fs := flag.NewFlagSet("print", flag.ExitOnError)
	lang := fs.String("lang", "en", "error message language")
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}
	i18n.SetLanguage(*lang)
	schema, err := compileFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", fs.Arg(0), err)
		os.Exit(1)
	}
	fmt.Println(schema.String())
}

func compileFile(path string) (*avro.ValidSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return avro.CompileYAMLBytes(data)
	default:
		return avro.CompileBytes(data)
	}
}
