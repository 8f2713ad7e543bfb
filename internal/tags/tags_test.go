package tags_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"lifeplanner/internal/tags"
)

func Test_Normalize_CleansAndDeduplicates(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "nil input",
			in:   nil,
			want: nil,
		},
		{
			name: "strips hash prefix and whitespace",
			in:   []string{" #lifeplanner ", "weekly"},
			want: []string{"lifeplanner", "weekly"},
		},
		{
			name: "case-insensitive dedupe keeps first occurrence",
			in:   []string{"Plan", "plan", "PLAN", "other"},
			want: []string{"Plan", "other"},
		},
		{
			name: "drops empties and bare hashes",
			in:   []string{"", "  ", "#", "real"},
			want: []string{"real"},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := tags.Normalize(tc.in)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Normalize mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func Test_Prepend_EmitsFrontmatterBlock(t *testing.T) {
	t.Parallel()

	body := []string{"# Inbox", "", "- [ ] buy milk"}

	got := tags.Prepend(body, []string{"lifeplanner", "#inbox"})

	want := []string{
		"---",
		"tags:",
		"  - lifeplanner",
		"  - inbox",
		"---",
		"",
		"# Inbox",
		"",
		"- [ ] buy milk",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Prepend mismatch (-want +got):\n%s", diff)
	}
}

func Test_Prepend_ReturnsLinesUnchanged_When_NoTags(t *testing.T) {
	t.Parallel()

	body := []string{"# Inbox", ""}

	got := tags.Prepend(body, []string{" ", "#"})
	if diff := cmp.Diff(body, got); diff != "" {
		t.Errorf("Prepend should be a no-op (-want +got):\n%s", diff)
	}
}
