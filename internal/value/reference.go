package value

import "fmt"

// Reference is an opaque host-table handle. The VM never dereferences it
// directly; ReferenceGet/ReferenceSet delegate to whatever reference
// table the embedding host installs.
type Reference uint64

func (r Reference) String() string { return fmt.Sprintf("&%#x", uint64(r)) }
