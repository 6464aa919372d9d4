package pipeline

import (
	"testing"
)

func TestStemResolver(t *testing.T) {
	tests := []struct {
		name    string
		sources []string
		want    []string
	}{
		{
			"no collisions",
			[]string{"/in/a.png", "/in/b.png"},
			[]string{"a", "b"},
		},
		{
			"same base name different extension",
			[]string{"/in/a.jpg", "/in/a.png"},
			[]string{"a", "a__dup1"},
		},
		{
			"same base name different directory",
			[]string{"/in/one/a.png", "/in/two/a.png", "/in/three/a.png"},
			[]string{"a", "a__dup1", "a__dup2"},
		},
		{
			"collision with an existing dup stem",
			[]string{"/in/a__dup1.png", "/in/a.jpg", "/in/a.png"},
			[]string{"a__dup1", "a", "a__dup2"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewStemResolver()
			for i, src := range tt.sources {
				got := r.Resolve(src)
				if got != tt.want[i] {
					t.Errorf("Resolve(%q) = %q, want %q", src, got, tt.want[i])
				}
			}
		})
	}
}

func TestStemResolver_Idempotent(t *testing.T) {
	r := NewStemResolver()
	first := r.Resolve("/in/a.png")
	second := r.Resolve("/in/a.png")
	if first != second {
		t.Errorf("re-resolving the same source changed the stem: %q then %q", first, second)
	}
}
