package format

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"testing"
)

func reader(s string) *bufio.Reader { return bufio.NewReader(strings.NewReader(s)) }

func TestReadLine(t *testing.T) {
	r := reader("first\nsecond\r\nthird")

	want := []string{"first\n", "second\r\n", "third"}
	for i, w := range want {
		got, err := ReadLine(r, NameMaxLen)
		if err != nil {
			t.Fatalf("line %d: %v", i, err)
		}
		if string(got) != w {
			t.Fatalf("line %d: got %q want %q", i, got, w)
		}
	}
	if _, err := ReadLine(r, NameMaxLen); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF after last line, got %v", err)
	}
}

func TestReadLineSplitsLongLines(t *testing.T) {
	// size 5 reads at most 4 bytes per call, like fgets(buf, 5, f).
	r := reader("abcdefg\nz\n")

	for _, w := range []string{"abcd", "efg\n", "z\n"} {
		got, err := ReadLine(r, 5)
		if err != nil {
			t.Fatalf("ReadLine: %v", err)
		}
		if string(got) != w {
			t.Fatalf("got %q want %q", got, w)
		}
	}
}

func TestReadLineExactBoundary(t *testing.T) {
	// A line of exactly size-1 bytes (newline included) is returned whole.
	r := reader("abc\nrest")
	got, err := ReadLine(r, 5)
	if err != nil || string(got) != "abc\n" {
		t.Fatalf("got %q, %v want \"abc\\n\"", got, err)
	}
}

func TestReadLineEmpty(t *testing.T) {
	if _, err := ReadLine(reader(""), NameMaxLen); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF for empty input, got %v", err)
	}
	if _, err := ReadLine(reader("x"), 1); err == nil {
		t.Fatal("expected error for size 1")
	}
}

func TestParseNameLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    string
		wantErr error
	}{
		{"newline", HeadNameStr + "|Foo Bar\n", "Foo Bar", nil},
		{"crlf", HeadNameStr + "|NSRL 2.80\r\n", "NSRL 2.80", nil},
		{"no terminator", HeadNameStr + "|Unterminated", "Unterminated", nil},
		{"empty name", HeadNameStr + "|\n", "", nil},
		{"pipe in name", HeadNameStr + "|a|b\n", "a|b", nil},
		{"binary noise", HeadNameStr + "|\xff\xfe\x01\n", "\xff\xfe\x01", nil},
		{"missing marker", "deadbeef|Foo\n", "", ErrNoNameMarker},
		{"type line instead", HeadTypeStr + "|md5sum\n", "", ErrNoNameMarker},
		{"missing delimiter", HeadNameStr + "Foo Bar\n", "", ErrNoDelimiter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseNameLine([]byte(tt.line))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if string(got) != tt.want {
				t.Fatalf("name = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseTypeLine(t *testing.T) {
	got, err := ParseTypeLine(TypeLine(DBTypeNSRLMD5Str))
	if err != nil || got != DBTypeNSRLMD5Str {
		t.Fatalf("ParseTypeLine = %q, %v", got, err)
	}
	if _, err := ParseTypeLine(NameLine("x")); !errors.Is(err, ErrNoTypeLine) {
		t.Fatalf("expected ErrNoTypeLine, got %v", err)
	}
}

func TestHeaderLinesRoundTrip(t *testing.T) {
	r := bufio.NewReader(strings.NewReader(string(TypeLine(DBTypeMD5SumStr)) + string(NameLine("Known Good"))))

	first, err := ReadLine(r, NameMaxLen)
	if err != nil {
		t.Fatal(err)
	}
	second, err := ReadLine(r, NameMaxLen)
	if err != nil {
		t.Fatal(err)
	}
	if typ, _ := ParseTypeLine(first); typ != DBTypeMD5SumStr {
		t.Fatalf("type = %q", typ)
	}
	if name, _ := ParseNameLine(second); string(name) != "Known Good" {
		t.Fatalf("name = %q", name)
	}
}
