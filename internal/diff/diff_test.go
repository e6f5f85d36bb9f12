package diff

import (
	"strings"
	"testing"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name        string
		oldContent  string
		newContent  string
		wantDeleted []string
		wantAdded   []string
		wantChanged bool
	}{
		{
			name:        "identical content",
			oldContent:  "same line\n",
			newContent:  "same line\n",
			wantChanged: false,
		},
		{
			name:        "line replaced",
			oldContent:  "old wording\n",
			newContent:  "new wording\n",
			wantDeleted: []string{"- old"},
			wantAdded:   []string{"+ new"},
			wantChanged: true,
		},
		{
			name:        "line added",
			oldContent:  "first\n",
			newContent:  "first\nsecond\n",
			wantAdded:   []string{"+ second"},
			wantChanged: true,
		},
		{
			name:        "line removed",
			oldContent:  "first\nsecond\n",
			newContent:  "first\n",
			wantDeleted: []string{"- second"},
			wantChanged: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Compute(tt.oldContent, tt.newContent, "shown", "accepted")

			if r.Old != "shown" || r.New != "accepted" {
				t.Errorf("labels = (%q, %q), want (shown, accepted)", r.Old, r.New)
			}
			if r.Changed() != tt.wantChanged {
				t.Errorf("Changed() = %v, want %v\ndiff:\n%s", r.Changed(), tt.wantChanged, r.Diff)
			}
			for _, want := range tt.wantDeleted {
				if !strings.Contains(r.Diff, want) {
					t.Errorf("diff missing %q:\n%s", want, r.Diff)
				}
			}
			for _, want := range tt.wantAdded {
				if !strings.Contains(r.Diff, want) {
					t.Errorf("diff missing %q:\n%s", want, r.Diff)
				}
			}
		})
	}
}

func TestCompute_CollapsesLongEqualRuns(t *testing.T) {
	var lines []string
	for i := 0; i < 20; i++ {
		lines = append(lines, "unchanged")
	}
	common := strings.Join(lines, "\n") + "\n"

	r := Compute(common+"old tail\n", common+"new tail\n", "a", "b")

	if !strings.Contains(r.Diff, "  ...\n") {
		t.Errorf("expected collapsed context marker in diff:\n%s", r.Diff)
	}
	if got := strings.Count(r.Diff, "unchanged"); got > 2*3 {
		t.Errorf("expected at most 6 context lines, got %d:\n%s", got, r.Diff)
	}
}

func TestFormat(t *testing.T) {
	r := Result{Old: "shown", New: "accepted", Diff: "- gone\n+ here\n"}

	plain := r.Format(false)
	if !strings.HasPrefix(plain, "--- shown\n+++ accepted\n") {
		t.Errorf("missing header:\n%s", plain)
	}
	if strings.Contains(plain, "\033[") {
		t.Errorf("plain output must not contain ANSI codes:\n%q", plain)
	}

	coloured := r.Format(true)
	if !strings.Contains(coloured, "\033[31m- gone\033[0m") {
		t.Errorf("deletion not coloured red:\n%q", coloured)
	}
	if !strings.Contains(coloured, "\033[32m+ here\033[0m") {
		t.Errorf("insertion not coloured green:\n%q", coloured)
	}
}
