package internal

import (
	"fmt"
	"iter"
	"testing"

	"github.com/eak1mov/go-twmap/df/spec"
	"github.com/eak1mov/go-twmap/twmap"
)

// TestdataCases yields every fixture encoded in every supported datafile version.
func TestdataCases(t *testing.T) iter.Seq2[string, []byte] {
	return func(yield func(string, []byte) bool) {
		t.Helper()

		for _, fixture := range []struct {
			Name string
			Map  func() *twmap.Map
		}{
			{Name: "sample", Map: SampleMap},
			{Name: "minimal", Map: MinimalMap},
		} {
			for _, version := range []int32{spec.Version3, spec.Version4} {
				mapData, err := twmap.Encode(fixture.Map(), twmap.WithVersion(version))
				if err != nil {
					t.Fatalf("Encode(%v) failed: %v", fixture.Name, err)
				}
				if !yield(fmt.Sprintf("%v.v%d.map", fixture.Name, version), mapData) {
					return
				}
			}
		}
	}
}
