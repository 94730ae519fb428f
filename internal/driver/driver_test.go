package driver

import (
	"testing"

	"crayfish/internal/bytecode"
	"crayfish/internal/module"
	"crayfish/internal/numtower"
	"crayfish/internal/value"
)

func instr(op bytecode.OpCode, imm any) bytecode.Instruction {
	return bytecode.Instruction{Op: op, Imm: imm}
}

func i32(n int32) bytecode.Instruction {
	return instr(bytecode.IntegerNew, bytecode.IntegerImm{Value: numtower.NewI32(n)})
}

func name(n string) bytecode.NameImm { return bytecode.NameImm{Name: n} }

// iterativeFib builds a "main" function computing F(target) the same way
// original_source/src/main.rs's hand-built dp_fib() does: two running
// locals advanced in a Compare+Goto(relative) loop, grounded on spec.md
// §8's iterative Fibonacci scenario.
func iterativeFib(target int32) *value.Function {
	code := []bytecode.Instruction{
		i32(0), instr(bytecode.Store, name("a")), // 0,1: a = 0
		i32(1), instr(bytecode.Store, name("b")), // 2,3: b = 1
		i32(1), instr(bytecode.Store, name("i")), // 4,5: i = 1

		// loop header at pc = 6
		instr(bytecode.Lookup, name("i")), // 6
		i32(target),                       // 7
		instr(bytecode.Compare, bytecode.CompareImm{Kind: bytecode.CompareEqual}), // 8: stack [i, target]
		instr(bytecode.Pop, nil),           // 9: drop target
		instr(bytecode.Pop, nil),           // 10: drop i
		instr(bytecode.Lookup, name("b")),  // 11: speculative result
		instr(bytecode.Return, bytecode.ReturnImm{Condition: bytecode.Equal}), // 12
		instr(bytecode.Pop, nil), // 13: not done — discard speculative b

		instr(bytecode.Lookup, name("a")), // 14
		instr(bytecode.Lookup, name("b")), // 15
		instr(bytecode.IntegerAdd, nil),   // 16: tmp = a + b
		instr(bytecode.Store, name("tmp")),// 17
		instr(bytecode.Lookup, name("b")), // 18
		instr(bytecode.Store, name("a")),  // 19: a = b
		instr(bytecode.Lookup, name("tmp")),// 20
		instr(bytecode.Store, name("b")),  // 21: b = tmp
		instr(bytecode.Lookup, name("i")), // 22
		i32(1),                            // 23
		instr(bytecode.IntegerAdd, nil),   // 24
		instr(bytecode.Store, name("i")),  // 25: i = i + 1

		instr(bytecode.Goto, bytecode.GotoImm{Target: bytecode.Relative(-20), Condition: bytecode.Always}), // 26
	}
	return value.NewFunction("main", nil, code)
}

func TestDriverIterativeFibonacci(t *testing.T) {
	b := module.NewBuilder("root")
	b.Function("main", iterativeFib(20))
	d := New(b.Build(), nil)

	if err := d.Run("main"); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	got, err := d.Core.Stack.Pop()
	if err != nil {
		t.Fatalf("expected a result on the stack: %v", err)
	}
	if d.Core.Stack.Len() != 0 {
		t.Fatalf("stack not balanced at end of run: depth=%d", d.Core.Stack.Len())
	}
	i, ok := got.(numtower.Integer)
	if !ok || i.I32() != 6765 {
		t.Fatalf("got %v, want F(20)=6765", got)
	}
}

// recursiveFib grounds spec.md §8's recursive Fibonacci scenario on the
// naive fib(n) = fib(n-1) + fib(n-2) recursion, exercised entirely through
// FunctionCall(Name) so module resolution round-trips through the driver.
func recursiveFib() *value.Function {
	fibPath := bytecode.ParseFunctionPath("fib")
	code := []bytecode.Instruction{
		instr(bytecode.Lookup, name("n")), // 0
		i32(1),                            // 1
		instr(bytecode.Compare, bytecode.CompareImm{Kind: bytecode.CompareLessThanOrEqual}), // 2: stack [n, 1]
		instr(bytecode.Pop, nil),          // 3: drop the 1
		instr(bytecode.Return, bytecode.ReturnImm{Condition: bytecode.LessThanOrEqual}), // 4: base case, n already on stack

		instr(bytecode.Pop, nil), // 5: recursive case — discard n

		instr(bytecode.Lookup, name("n")), // 6
		i32(1),                            // 7
		instr(bytecode.IntegerSub, nil),   // 8: n - 1
		instr(bytecode.FunctionCall, bytecode.CallImm{Source: bytecode.ByName(fibPath), Condition: bytecode.Always}), // 9

		instr(bytecode.Lookup, name("n")), // 10
		i32(2),                            // 11
		instr(bytecode.IntegerSub, nil),   // 12: n - 2
		instr(bytecode.FunctionCall, bytecode.CallImm{Source: bytecode.ByName(fibPath), Condition: bytecode.Always}), // 13

		instr(bytecode.IntegerAdd, nil), // 14: fib(n-1) + fib(n-2)
		instr(bytecode.Return, bytecode.ReturnImm{Condition: bytecode.Always}), // 15
	}
	return value.NewFunction("fib", []string{"n"}, code)
}

func TestDriverRecursiveFibonacci(t *testing.T) {
	b := module.NewBuilder("root")
	b.Function("fib", recursiveFib())
	b.Function("main", value.NewFunction("main", nil, []bytecode.Instruction{
		i32(10),
		instr(bytecode.FunctionCall, bytecode.CallImm{
			Source: bytecode.ByName(bytecode.ParseFunctionPath("fib")), Condition: bytecode.Always,
		}),
	}))
	d := New(b.Build(), nil)

	if err := d.Run("main"); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	got, err := d.Core.Stack.Pop()
	if err != nil {
		t.Fatalf("expected a result on the stack: %v", err)
	}
	if d.Core.Stack.Len() != 0 {
		t.Fatalf("stack not balanced: depth=%d", d.Core.Stack.Len())
	}
	i, ok := got.(numtower.Integer)
	if !ok || i.I32() != 55 {
		t.Fatalf("got %v, want fib(10)=55", got)
	}
}

func TestDriverHaltUnwindsAllFrames(t *testing.T) {
	b := module.NewBuilder("root")
	b.Function("inner", value.NewFunction("inner", nil, []bytecode.Instruction{
		{Op: bytecode.Halt},
	}))
	b.Function("main", value.NewFunction("main", nil, []bytecode.Instruction{
		instr(bytecode.FunctionCall, bytecode.CallImm{
			Source: bytecode.ByName(bytecode.ParseFunctionPath("inner")), Condition: bytecode.Always,
		}),
		i32(999), // never reached — Halt unwinds straight past this
	}))
	d := New(b.Build(), nil)

	if err := d.Run("main"); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if d.Core.Stack.Len() != 0 {
		t.Fatalf("expected empty stack after Halt unwound every frame, got depth=%d", d.Core.Stack.Len())
	}
}

// TestDriverFlagsArePerFrame proves a callee's Compare does not clobber
// the caller's flags: the caller sets flags Eq, calls into a callee whose
// own Compare sets Lt, and expects to observe Eq again on return.
func TestDriverFlagsArePerFrame(t *testing.T) {
	callee := value.NewFunction("callee", nil, []bytecode.Instruction{
		i32(1), i32(2),
		instr(bytecode.Compare, bytecode.CompareImm{Kind: bytecode.CompareLessThan}), // flags <- Lt
		instr(bytecode.Pop, nil),
		instr(bytecode.Pop, nil),
		i32(42),
		instr(bytecode.Return, bytecode.ReturnImm{Condition: bytecode.Always}),
	})
	main := value.NewFunction("main", nil, []bytecode.Instruction{
		i32(5), i32(5),
		instr(bytecode.Compare, bytecode.CompareImm{Kind: bytecode.CompareEqual}), // flags <- Eq
		instr(bytecode.Pop, nil),
		instr(bytecode.Pop, nil),
		instr(bytecode.FunctionCall, bytecode.CallImm{
			Source: bytecode.ByName(bytecode.ParseFunctionPath("callee")), Condition: bytecode.Always,
		}),
		instr(bytecode.Pop, nil), // discard callee's return value
		i32(111),
		instr(bytecode.Return, bytecode.ReturnImm{Condition: bytecode.Equal}), // only fires if Eq survived the call
		instr(bytecode.Pop, nil),
		i32(222),
		instr(bytecode.Return, bytecode.ReturnImm{Condition: bytecode.Always}),
	})
	b := module.NewBuilder("root")
	b.Function("callee", callee)
	b.Function("main", main)
	d := New(b.Build(), nil)

	if err := d.Run("main"); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	got, err := d.Core.Stack.Pop()
	if err != nil {
		t.Fatalf("expected a result on the stack: %v", err)
	}
	i, ok := got.(numtower.Integer)
	if !ok || i.I32() != 111 {
		t.Fatalf("got %v, want 111 (caller's Eq flag must survive the call)", got)
	}
}

func TestDriverFunctionNotFoundFaults(t *testing.T) {
	b := module.NewBuilder("root")
	b.Function("main", value.NewFunction("main", nil, []bytecode.Instruction{
		instr(bytecode.FunctionCall, bytecode.CallImm{
			Source: bytecode.ByName(bytecode.ParseFunctionPath("missing")), Condition: bytecode.Always,
		}),
	}))
	d := New(b.Build(), nil)

	if err := d.Run("main"); err == nil {
		t.Fatal("expected FunctionNotFound fault")
	}
}

func TestDriverDivisionByZeroFaults(t *testing.T) {
	b := module.NewBuilder("root")
	b.Function("main", value.NewFunction("main", nil, []bytecode.Instruction{
		i32(10), i32(0), instr(bytecode.IntegerDiv, nil),
	}))
	d := New(b.Build(), nil)

	if err := d.Run("main"); err == nil {
		t.Fatal("expected division-by-zero fault")
	}
}

func TestDriverStackOverflowOnUnboundedRecursion(t *testing.T) {
	b := module.NewBuilder("root")
	loopPath := bytecode.ParseFunctionPath("loop")
	b.Function("loop", value.NewFunction("loop", nil, []bytecode.Instruction{
		instr(bytecode.FunctionCall, bytecode.CallImm{Source: bytecode.ByName(loopPath), Condition: bytecode.Always}),
	}))
	d := New(b.Build(), nil)
	d.MaxDepth = 64

	if err := d.Run("loop"); err == nil {
		t.Fatal("expected stack overflow fault on unbounded recursion")
	}
}
