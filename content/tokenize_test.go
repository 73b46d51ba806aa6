package content

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []segment
	}{
		{name: "empty input", raw: "", want: nil},
		{name: "blank input", raw: "  \n\t\n", want: nil},
		{name: "no tags", raw: "just some text\nand more", want: nil},
		{
			name: "text before first tag is discarded",
			raw:  "preamble\nHEADING\nTitle",
			want: []segment{{tagHeading, "Title"}},
		},
		{
			name: "case insensitive tags with spaces",
			raw:  "  heading  \nTitle\n Body\nText",
			want: []segment{{tagHeading, "Title"}, {tagBody, "Text"}},
		},
		{
			name: "bullet alias",
			raw:  "BULLET\none\ntwo",
			want: []segment{{tagBullets, "one\ntwo"}},
		},
		{
			name: "lines trimmed and buffer trimmed",
			raw:  "BODY\n\n  first  \n\n second\n\n",
			want: []segment{{tagBody, "first\n\nsecond"}},
		},
		{
			name: "repeated tag without content",
			raw:  "QUOTE\nQUOTE\nWe won!",
			want: []segment{{tagQuote, "We won!"}},
		},
		{
			name: "same tag twice gives two segments",
			raw:  "BODY\none\nBODY\ntwo",
			want: []segment{{tagBody, "one"}, {tagBody, "two"}},
		},
		{
			name: "tag text inside line is not a tag",
			raw:  "BODY\nHEADING of the race",
			want: []segment{{tagBody, "HEADING of the race"}},
		},
		{
			name: "windows line endings",
			raw:  "HEADING\r\nBig News\r\nNAME\r\nTrainer\r\n",
			want: []segment{{tagHeading, "Big News"}, {tagName, "Trainer"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenize(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("tokenize() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestTokenize_PreservesOrder(t *testing.T) {
	raw := "NAME\nn\nMEDIA\nm\nHEADING\nh\nQUOTE\nq\nSUBHEADING\ns\nBULLETS\nb\nBODY\nx"
	want := []tag{tagName, tagMedia, tagHeading, tagQuote, tagSubheading, tagBullets, tagBody}

	got := tokenize(raw)
	if len(got) != len(want) {
		t.Fatalf("tokenize() returned %d segments, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].tag != want[i] {
			t.Errorf("segment[%d].tag = %s, want %s", i, got[i].tag, want[i])
		}
	}
}

func TestScanner_SegmentsAreIndependent(t *testing.T) {
	var (
		s    scanner
		segs []segment
	)
	for _, line := range []string{"BODY", "one", "two", "QUOTE", "three", "BODY", "four"} {
		var seg *segment
		if s, seg = s.step(line); seg != nil {
			segs = append(segs, *seg)
		}
	}
	if seg := s.flush(); seg != nil {
		segs = append(segs, *seg)
	}

	want := []segment{{tagBody, "one\ntwo"}, {tagQuote, "three"}, {tagBody, "four"}}
	if !reflect.DeepEqual(segs, want) {
		t.Errorf("segments = %#v, want %#v", segs, want)
	}
}

func TestTokenize_LongSegment(t *testing.T) {
	const lines = 200000

	start := time.Now()
	got := tokenize("BODY\n" + strings.Repeat("some line of text\n", lines))
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("tokenize of %d lines took %v, want under 1s", lines, elapsed)
	}

	if len(got) != 1 {
		t.Fatalf("tokenize returned %d segments, want 1", len(got))
	}
	if n := strings.Count(got[0].text, "\n") + 1; n != lines {
		t.Errorf("segment has %d lines, want %d", n, lines)
	}
}
