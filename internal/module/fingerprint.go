package module

import (
	"fmt"
	"sort"

	"golang.org/x/crypto/blake2b"
)

// Fingerprint produces a stable content hash of the module's function
// names and code lengths, sub-modules included. Only its own test calls
// it; the CLI and the Inspector do not. Grounded on the teacher's habit
// of stamping builds (BuildDate/GitCommit in cmd/sentra/main.go).
func (m *Module) Fingerprint() (string, error) {
	h, err := blake2b.New256(nil)
	if err != nil {
		return "", err
	}
	m.mu.RLock()
	names := make([]string, 0, len(m.functions))
	for name := range m.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fn := m.functions[name]
		fmt.Fprintf(h, "%s:%d;", name, len(fn.Code))
	}
	subNames := make([]string, 0, len(m.subModules))
	for name := range m.subModules {
		subNames = append(subNames, name)
	}
	sort.Strings(subNames)
	m.mu.RUnlock()
	for _, name := range subNames {
		sub := m.subModules[name]
		subHash, err := sub.Fingerprint()
		if err != nil {
			return "", err
		}
		fmt.Fprintf(h, "%s{%s};", name, subHash)
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
