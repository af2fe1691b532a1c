package main

import (
	"fmt"
	"os"

	"github.com/agiangrant/tactile/cmd/tactile/commands"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "replay":
		err = commands.Replay(args)
	case "watch":
		err = commands.Watch(args)
	case "measure":
		err = commands.Measure(args)
	case "init":
		err = commands.Init(args)
	case "version", "-v", "--version":
		fmt.Printf("tactile version %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`tactile - retained widget toolkit CLI

Usage: tactile <command> [options]

Commands:
  replay     Play a YAML input script against the demo form
  watch      Replay a script every time it changes
  measure    Print the layout of a string inside a bounding box
  init       Create tactile.toml and a demo script
  version    Print version information
  help       Show this help message

Examples:
  tactile init                              Create tactile.toml and demo.yaml
  tactile replay demo.yaml                  Replay the demo script
  tactile watch -debounce 200ms demo.yaml   Replay on every save
  tactile measure -align top-left Hello     Measure "Hello" in a 200x40 box`)
}
