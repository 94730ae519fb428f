// Package module implements the function/sub-module tree a Driver
// resolves FunctionCall(Name, ...) and GetStringRef against, grounded on
// original_source/src/program/module.rs and program/mod.rs, with the
// teacher's internal/module.ModuleLoader "look up or build, cache" shape
// adapted to drop file/parser loading (no surface-language front end
// here).
package module

import (
	"fmt"
	"sync"

	"crayfish/internal/bytecode"
	"crayfish/internal/value"
)

// Module is a function table plus a tree of named sub-modules and a
// string table, mirroring original_source's Module{module_name,
// functions, string_table, sub_modules}.
type Module struct {
	Name        string
	mu          sync.RWMutex
	functions   map[string]*value.Function
	subModules  map[string]*Module
	stringTable map[string]string
}

func New(name string) *Module {
	return &Module{
		Name:        name,
		functions:   make(map[string]*value.Function),
		subModules:  make(map[string]*Module),
		stringTable: make(map[string]string),
	}
}

func (m *Module) AddFunction(name string, fn *value.Function) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.functions[name] = fn
}

func (m *Module) AddSubModule(name string, sub *Module) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subModules[name] = sub
}

func (m *Module) AddString(name, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stringTable[name] = value
}

// GetFunction walks path's module segments and looks up its final
// segment in the resolved sub-module's function table, per
// original_source's Module::get_function.
func (m *Module) GetFunction(path bytecode.FunctionPath) (*value.Function, error) {
	target, err := m.walk(path.ModulePath())
	if err != nil {
		return nil, err
	}
	target.mu.RLock()
	defer target.mu.RUnlock()
	fn, ok := target.functions[path.Name()]
	if !ok {
		return nil, fmt.Errorf("function %q not found in module %q", path.Name(), target.Name)
	}
	return fn, nil
}

// GetString resolves a StringTablePath the same way GetFunction resolves
// a FunctionPath.
func (m *Module) GetString(path bytecode.StringTablePath) (string, error) {
	target, err := m.walkString(path.ModulePath())
	if err != nil {
		return "", err
	}
	target.mu.RLock()
	defer target.mu.RUnlock()
	s, ok := target.stringTable[path.Name()]
	if !ok {
		return "", fmt.Errorf("string %q not found in module %q", path.Name(), target.Name)
	}
	return s, nil
}

func (m *Module) walk(segments []string) (*Module, error) {
	current := m
	for _, seg := range segments {
		current.mu.RLock()
		next, ok := current.subModules[seg]
		current.mu.RUnlock()
		if !ok {
			return nil, fmt.Errorf("sub-module %q not found under %q", seg, current.Name)
		}
		current = next
	}
	return current, nil
}

func (m *Module) walkString(segments []string) (*Module, error) {
	return m.walk(segments)
}
