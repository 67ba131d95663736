package libdiff

import (
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"
)

func TestLines(t *testing.T) {
	got := Lines("a\nb\nc\n", "a\nc\nd\n")
	want := []Line{
		{Op: ' ', Text: "a\n"},
		{Op: '-', Text: "b\n"},
		{Op: ' ', Text: "c\n"},
		{Op: '+', Text: "d\n"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestUnified(t *testing.T) {
	before := "one {\n    two=three\n}\nfour=five\n"
	after := "four=five\n"
	want := "--- x.conf\n+++ x.conf\n" +
		"@@ -1,4 +1,1 @@\n" +
		"-one {\n" +
		"-    two=three\n" +
		"-}\n" +
		" four=five\n"
	if got := Unified("x.conf", []byte(before), []byte(after), DefaultContext); got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
	if got := Unified("x.conf", []byte(before), []byte(before), DefaultContext); got != "" {
		t.Errorf("equal inputs gave %q", got)
	}
}

func TestUnifiedHunks(t *testing.T) {
	var b, a []string
	for i := 0; i < 20; i++ {
		b = append(b, string(rune('a'+i))+"\n")
	}
	a = append(a, b...)
	a[1] = "X\n"
	a[18] = "Y\n"
	got := Unified("f", []byte(strings.Join(b, "")), []byte(strings.Join(a, "")), 1)
	if n := strings.Count(got, "@@ -"); n != 2 {
		t.Fatalf("expected 2 hunks in\n%s", got)
	}
	if !strings.Contains(got, "@@ -1,3 +1,3 @@\n") || !strings.Contains(got, "@@ -18,3 +18,3 @@\n") {
		t.Errorf("unexpected hunks\n%s", got)
	}
}

func TestUnifiedNoNewline(t *testing.T) {
	got := Unified("f", []byte("a = 1"), []byte("a = 2"), DefaultContext)
	want := "--- f\n+++ f\n@@ -1,1 +1,1 @@\n-a = 1\n\\ No newline at end of file\n+a = 2\n\\ No newline at end of file\n"
	if got != want {
		t.Errorf("got %q", got)
	}
}

func TestUnifiedEmptyBefore(t *testing.T) {
	got := Unified("f", nil, []byte("top: \"level\"\n"), DefaultContext)
	want := "--- f\n+++ f\n@@ -0,0 +1,1 @@\n+top: \"level\"\n"
	if got != want {
		t.Errorf("got %q", got)
	}
}

func TestColorize(t *testing.T) {
	saved := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = saved }()
	d := Unified("f", []byte("a\n"), []byte("b\n"), DefaultContext)
	got := Colorize(d)
	if !strings.Contains(got, "\x1b[31m-a") || !strings.Contains(got, "\x1b[32m+b") {
		t.Errorf("got %q", got)
	}
	color.NoColor = true
	if got := Colorize(d); got != d {
		t.Errorf("uncolored output differs: %q", got)
	}
}
