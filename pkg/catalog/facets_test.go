package catalog

import (
	"reflect"
	"testing"
)

func TestOptionsSorted(t *testing.T) {
	counts := map[string]int{
		"windows": 10,
		"android": 4,
		"macOS":   2,
		"ios":     7,
	}

	got := Options(counts)
	want := []string{"all", "android", "ios", "macOS", "windows"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Options = %v, want %v", got, want)
	}
}

func TestOptionsEmptyTable(t *testing.T) {
	for _, counts := range []map[string]int{nil, {}} {
		got := Options(counts)
		if len(got) != 1 || got[0] != AllFacets {
			t.Errorf("Options(%v) = %v, want just the sentinel", counts, got)
		}
	}
}

func TestFacetOptionsMissingDimension(t *testing.T) {
	c, err := New(&Document{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got := c.FacetOptions(FacetRuntimes)
	if len(got) != 1 || got[0] != AllFacets {
		t.Errorf("FacetOptions = %v, want just the sentinel", got)
	}
}
