package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-stationreg/pkg/render"
)

func TestMergeHiddenFields(t *testing.T) {
	got := render.MergeHiddenFields(
		map[string]string{"step": "1", " ": "dropped"},
		render.CSRFToken("_csrf", "token-1"),
		render.Hidden("step", 2),
		render.Hidden("", "ignored"),
	)
	want := map[string]string{"step": "2", "_csrf": "token-1"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("hidden fields mismatch (-want +got):\n%s", diff)
	}
}

func TestSortedHiddenFields(t *testing.T) {
	got := render.SortedHiddenFields(map[string]string{"session": "abc", "_csrf": "t"})
	want := []render.HiddenField{{Name: "_csrf", Value: "t"}, {Name: "session", Value: "abc"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("sorted mismatch (-want +got):\n%s", diff)
	}
	if render.SortedHiddenFields(nil) != nil {
		t.Fatalf("expected nil for empty input")
	}
}
