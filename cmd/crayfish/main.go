// cmd/crayfish/main.go
package main

import (
	"fmt"
	"log"
	"os"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"crayfish/internal/driver"
	"crayfish/internal/examples"
	"crayfish/internal/host"
	"crayfish/internal/obshooks"
)

const version = "0.1.0"

// commandAliases mirrors the teacher CLI's short-form dispatch table —
// grounded on cmd/sentra/main.go's commandAliases map.
var commandAliases = map[string]string{
	"r": "run",
	"d": "debug",
	"l": "list",
	"v": "version",
}

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		showUsage()
		return
	}

	cmd := args[0]
	if alias, ok := commandAliases[cmd]; ok {
		cmd = alias
	}

	switch cmd {
	case "--help", "-h", "help":
		showUsage()
	case "--version", "-v", "version":
		showVersion()
	case "list":
		listPrograms()
	case "run":
		if err := runCommand(args[1:]); err != nil {
			log.Fatalf("crayfish: %v", err)
		}
	case "debug":
		if err := debugCommand(args[1:]); err != nil {
			log.Fatalf("crayfish: %v", err)
		}
	default:
		fmt.Fprintf(os.Stderr, "crayfish: unknown command %q\n\n", cmd)
		showUsage()
		os.Exit(1)
	}
}

func showUsage() {
	fmt.Println(`crayfish — a stack-based bytecode VM for hand-built demonstration programs

Usage:
  crayfish run <program>
  crayfish debug <program>
  crayfish list
  crayfish version

Commands:
  run (r)     run a catalog program to completion
  debug (d)   step a catalog program interactively in a terminal UI
  list (l)    list the catalog of runnable programs
  version (v) print the crayfish version`)
}

func showVersion() {
	fmt.Printf("crayfish %s\n", version)
}

func listPrograms() {
	names := make([]string, 0, len(examples.Catalog))
	for n := range examples.Catalog {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		p := examples.Catalog[n]
		fmt.Printf("  %-16s %s\n", p.Name, p.Description)
	}
}

func runCommand(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: crayfish run <program>")
	}
	p, ok := examples.Catalog[args[0]]
	if !ok {
		return fmt.Errorf("unknown program %q (see crayfish list)", args[0])
	}

	if err := obshooks.Configure(true); err != nil {
		return fmt.Errorf("configuring logger: %w", err)
	}
	logger := obshooks.Logger()

	stdioHost := host.NewStdioHost(os.Stdout, os.Stdin)
	d := driver.New(p.Build(), stdioHost)
	d.Core.Refs = host.NewRefs()

	if err := d.Run(p.Entry); err != nil {
		return err
	}

	depth := d.Core.Stack.Len()
	logger.Sugar().Infof("%s finished, %s left on the operand stack", p.Name, humanize.Comma(int64(depth)))

	if depth > 0 {
		v, err := d.Core.Stack.Pop()
		if err == nil {
			fmt.Printf("result: %v\n", v)
		}
	}
	return nil
}

func debugCommand(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: crayfish debug <program>")
	}
	p, ok := examples.Catalog[args[0]]
	if !ok {
		return fmt.Errorf("unknown program %q (see crayfish list)", args[0])
	}

	m := newDebugModel(p)
	prog := tea.NewProgram(m)
	_, err := prog.Run()
	return err
}
