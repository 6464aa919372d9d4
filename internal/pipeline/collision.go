package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"
)

// StemResolver assigns each input file a unique artifact stem. Two inputs
// with the same base name but different extensions (a.png and a.jpg) would
// otherwise write identical artifact names; later claims get a "__dupN"
// suffix. Resolution happens at submission time in sorted discovery order,
// so stems are deterministic across runs of the same input set.
//
// Not goroutine-safe; only the submitting goroutine uses it.
type StemResolver struct {
	owners map[string]string // stem → source path that owns it
}

// NewStemResolver creates a ready-to-use resolver.
func NewStemResolver() *StemResolver {
	return &StemResolver{owners: make(map[string]string)}
}

// Resolve returns the artifact stem for source, handling collisions.
// Re-resolving the same source returns the same stem.
func (r *StemResolver) Resolve(source string) string {
	base := filepath.Base(source)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	owner, exists := r.owners[stem]
	if !exists || owner == source {
		r.owners[stem] = source
		return stem
	}

	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s__dup%d", stem, n)
		cOwner, cExists := r.owners[candidate]
		if !cExists || cOwner == source {
			r.owners[candidate] = source
			return candidate
		}
	}
}
