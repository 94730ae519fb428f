package module

import (
	"crayfish/internal/bytecode"
	"crayfish/internal/value"
)

// Builder assembles a Module tree programmatically — the same "look up
// or build, cache" shape as the teacher's internal/module.ModuleLoader,
// minus the file-system/parser loading that loader used for the
// surface-language front end (out of scope here).
type Builder struct {
	root  *Module
	cache map[string]*Module
}

func NewBuilder(rootName string) *Builder {
	root := New(rootName)
	return &Builder{root: root, cache: map[string]*Module{"": root}}
}

// SubModule returns the sub-module at the given "::"-separated path, building
// any missing segments along the way and caching the result.
func (b *Builder) SubModule(path string) *Module {
	if path == "" {
		return b.root
	}
	if cached, ok := b.cache[path]; ok {
		return cached
	}
	segments := splitBuilderPath(path)
	current := b.root
	built := ""
	for _, seg := range segments {
		if built == "" {
			built = seg
		} else {
			built = built + "::" + seg
		}
		if cached, ok := b.cache[built]; ok {
			current = cached
			continue
		}
		sub := New(seg)
		current.AddSubModule(seg, sub)
		b.cache[built] = sub
		current = sub
	}
	return current
}

func (b *Builder) Function(path string, fn *value.Function) {
	submodPath, name := splitLast(path)
	b.SubModule(submodPath).AddFunction(name, fn)
}

func (b *Builder) Build() *Module { return b.root }

func splitBuilderPath(path string) []string {
	return bytecode.ParseFunctionPath(path).Segments
}

func splitLast(path string) (modulePath, name string) {
	p := bytecode.ParseFunctionPath(path)
	modSegs := p.ModulePath()
	if len(modSegs) == 0 {
		return "", p.Name()
	}
	joined := ""
	for i, s := range modSegs {
		if i > 0 {
			joined += "::"
		}
		joined += s
	}
	return joined, p.Name()
}
