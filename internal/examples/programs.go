// Package examples holds hand-built demonstration module.Module trees
// for cmd/crayfish to run and debug. There is no surface-language
// parser or persistent bytecode format in scope (spec.md's Out of
// scope section names both as external collaborators), so the CLI has
// nothing to load arbitrary programs from — instead it ships a small
// catalog of Go-constructed programs, the same way internal/driver's
// tests build theirs.
package examples

import (
	"crayfish/internal/bytecode"
	"crayfish/internal/module"
	"crayfish/internal/numtower"
	"crayfish/internal/value"
)

// Program is one named, runnable demonstration module.
type Program struct {
	Name        string
	Description string
	Entry       string
	Build       func() *module.Module
}

// Catalog lists every demonstration program cmd/crayfish can run or
// debug, keyed by the name passed on the command line.
var Catalog = map[string]Program{
	"fib-iterative": {
		Name:        "fib-iterative",
		Description: "F(20) via the dp_fib loop from original_source/src/main.rs",
		Entry:       "main",
		Build:       buildFibIterative,
	},
	"fib-recursive": {
		Name:        "fib-recursive",
		Description: "fib(10) via naive recursion through FunctionCall(Name)",
		Entry:       "main",
		Build:       buildFibRecursive,
	},
	"greet": {
		Name:        "greet",
		Description: "reads a name from the host and writes a greeting back",
		Entry:       "main",
		Build:       buildGreet,
	},
}

func instr(op bytecode.OpCode, imm any) bytecode.Instruction {
	return bytecode.Instruction{Op: op, Imm: imm}
}

func i32(n int32) bytecode.Instruction {
	return instr(bytecode.IntegerNew, bytecode.IntegerImm{Value: numtower.NewI32(n)})
}

func name(n string) bytecode.NameImm { return bytecode.NameImm{Name: n} }

// buildFibIterative grounds its loop body on original_source/src/main.rs's
// dp_fib(): two running locals advanced behind a Compare+Return(Equal)
// loop guard, targeting F(20).
func buildFibIterative() *module.Module {
	const target = int32(20)
	code := []bytecode.Instruction{
		i32(0), instr(bytecode.Store, name("a")),
		i32(1), instr(bytecode.Store, name("b")),
		i32(1), instr(bytecode.Store, name("i")),

		instr(bytecode.Lookup, name("i")),
		i32(target),
		instr(bytecode.Compare, bytecode.CompareImm{Kind: bytecode.CompareEqual}),
		instr(bytecode.Pop, nil),
		instr(bytecode.Pop, nil),
		instr(bytecode.Lookup, name("b")),
		instr(bytecode.Return, bytecode.ReturnImm{Condition: bytecode.Equal}),
		instr(bytecode.Pop, nil),

		instr(bytecode.Lookup, name("a")),
		instr(bytecode.Lookup, name("b")),
		instr(bytecode.IntegerAdd, nil),
		instr(bytecode.Store, name("tmp")),
		instr(bytecode.Lookup, name("b")),
		instr(bytecode.Store, name("a")),
		instr(bytecode.Lookup, name("tmp")),
		instr(bytecode.Store, name("b")),
		instr(bytecode.Lookup, name("i")),
		i32(1),
		instr(bytecode.IntegerAdd, nil),
		instr(bytecode.Store, name("i")),

		instr(bytecode.Goto, bytecode.GotoImm{Target: bytecode.Relative(-20), Condition: bytecode.Always}),
	}
	b := module.NewBuilder("root")
	b.Function("main", value.NewFunction("main", nil, code))
	return b.Build()
}

// buildFibRecursive grounds fib(n) = fib(n-1) + fib(n-2) on spec.md §8's
// recursive scenario, calling itself entirely through FunctionCall(Name)
// so name resolution round-trips through the driver on every call.
func buildFibRecursive() *module.Module {
	fibPath := bytecode.ParseFunctionPath("fib")
	fib := value.NewFunction("fib", []string{"n"}, []bytecode.Instruction{
		instr(bytecode.Lookup, name("n")),
		i32(1),
		instr(bytecode.Compare, bytecode.CompareImm{Kind: bytecode.CompareLessThanOrEqual}),
		instr(bytecode.Pop, nil),
		instr(bytecode.Return, bytecode.ReturnImm{Condition: bytecode.LessThanOrEqual}),

		instr(bytecode.Pop, nil),

		instr(bytecode.Lookup, name("n")),
		i32(1),
		instr(bytecode.IntegerSub, nil),
		instr(bytecode.FunctionCall, bytecode.CallImm{Source: bytecode.ByName(fibPath), Condition: bytecode.Always}),

		instr(bytecode.Lookup, name("n")),
		i32(2),
		instr(bytecode.IntegerSub, nil),
		instr(bytecode.FunctionCall, bytecode.CallImm{Source: bytecode.ByName(fibPath), Condition: bytecode.Always}),

		instr(bytecode.IntegerAdd, nil),
		instr(bytecode.Return, bytecode.ReturnImm{Condition: bytecode.Always}),
	})
	main := value.NewFunction("main", nil, []bytecode.Instruction{
		i32(10),
		instr(bytecode.FunctionCall, bytecode.CallImm{Source: bytecode.ByName(fibPath), Condition: bytecode.Always}),
	})
	b := module.NewBuilder("root")
	b.Function("fib", fib)
	b.Function("main", main)
	return b.Build()
}

// buildGreet exercises the Write/Read host side-channel spec.md §9
// specifies as the only I/O contract the core exposes — it asks the
// host for a name, then writes a greeting built with StringConcat.
func buildGreet() *module.Module {
	code := []bytecode.Instruction{
		instr(bytecode.StringNew, bytecode.StringImm{Value: "what's your name? "}),
		instr(bytecode.Write, nil),
		instr(bytecode.StringNew, bytecode.StringImm{Value: "hello, "}),
		instr(bytecode.Read, nil),
		instr(bytecode.StringConcat, nil), // left="hello, ", right=name
		instr(bytecode.StringNew, bytecode.StringImm{Value: "!\n"}),
		instr(bytecode.StringConcat, nil), // left="hello, <name>", right="!\n"
		instr(bytecode.Write, nil),
	}
	b := module.NewBuilder("root")
	b.Function("main", value.NewFunction("main", nil, code))
	return b.Build()
}
