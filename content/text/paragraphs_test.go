package text

import (
	"reflect"
	"testing"
)

func TestToParagraphs(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "empty", in: "", want: nil},
		{name: "only blank lines", in: "\n  \n\n", want: nil},
		{name: "single line", in: "Hello", want: []string{"Hello"}},
		{name: "lines joined", in: "Line one\nLine two", want: []string{"Line one Line two"}},
		{
			name: "blank line boundaries",
			in:   "  first  \n second\n\n\n\nthird\n",
			want: []string{"first second", "third"},
		},
		{name: "windows endings", in: "a\r\nb\r\n\r\nc", want: []string{"a b", "c"}},
		{name: "escaped", in: "Tom & <Jerry>", want: []string{"Tom &amp; &lt;Jerry&gt;"}},
		{
			name: "emphasis",
			in:   "A **big** win and *easy* one",
			want: []string{"A <strong>big</strong> win and <em>easy</em> one"},
		},
		{name: "unbalanced marker", in: "5 * 3", want: []string{"5 * 3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToParagraphs(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ToParagraphs(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestToListItems(t *testing.T) {
	got := ToListItems("- first\n\n* *second*\n• third\nfourth\n-\n")
	want := []string{"first", "<em>second</em>", "third", "fourth", "-"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ToListItems() = %q, want %q", got, want)
	}
}

func TestEmphasize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"**bold**", "<strong>bold</strong>"},
		{"*it*", "<em>it</em>"},
		{"**a** and **b**", "<strong>a</strong> and <strong>b</strong>"},
		{"**a*b**", "<strong>a*b</strong>"},
	}
	for _, tt := range tests {
		if got := Emphasize(tt.in); got != tt.want {
			t.Errorf("Emphasize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
