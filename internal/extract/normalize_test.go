package extract

import "testing"

func TestNormalizeCollapsesBlankLines(t *testing.T) {
	in := "line one\n\n\n\nline two"
	want := "line one\n\nline two"
	if got := Normalize(in); got != want {
		t.Fatalf("Normalize = %q, want %q", got, want)
	}
}

func TestNormalizeCarriageReturns(t *testing.T) {
	in := "a\r\nb\rc"
	want := "a\nb\nc"
	if got := Normalize(in); got != want {
		t.Fatalf("Normalize = %q, want %q", got, want)
	}
}

func TestNormalizeCollapsesSpaces(t *testing.T) {
	in := "  wide    gaps   here  "
	want := "wide gaps here"
	if got := Normalize(in); got != want {
		t.Fatalf("Normalize = %q, want %q", got, want)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain text",
		"a\n\n\n\n\n\n\nb",
		"a\n \n \n \n b",
		"  x\r\n\r\n\r\n\r\ny  ",
		"one.  two.\n\n\nthree.",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Fatalf("Normalize not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestNormalizeEmpty(t *testing.T) {
	if got := Normalize("   \n\t  "); got != "" {
		t.Fatalf("Normalize(whitespace) = %q, want empty", got)
	}
}
