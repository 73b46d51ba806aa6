package debug

import "testing"

func TestTreeWriter_Line(t *testing.T) {
	tests := []struct {
		name   string
		depth  int
		format string
		args   []any
		want   string
	}{
		{name: "no depth", depth: 0, format: "test", want: "test\n"},
		{name: "single indent", depth: 1, format: "indented", want: "  indented\n"},
		{name: "double indent", depth: 2, format: "double indent", want: "    double indent\n"},
		{name: "with args", depth: 1, format: "value: %d", args: []any{42}, want: "  value: 42\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.Line(tt.depth, tt.format, tt.args...)
			if got := tw.String(); got != tt.want {
				t.Errorf("Line() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriter_TextBlock(t *testing.T) {
	tests := []struct {
		name  string
		depth int
		label string
		value string
		want  string
	}{
		{name: "empty value skipped", label: "field", value: "", want: ""},
		{name: "simple", label: "text", value: "hello world", want: "text: \"hello world\"\n"},
		{name: "nested", depth: 2, label: "nested", value: "data", want: "    nested: \"data\"\n"},
		{name: "multiline", label: "multiline", value: "line1\nline2", want: "multiline: \"line1\\nline2\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.TextBlock(tt.depth, tt.label, tt.value)
			if got := tw.String(); got != tt.want {
				t.Errorf("TextBlock() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriter_Flag(t *testing.T) {
	tw := NewTreeWriter()
	tw.Flag(1, "portrait", true)
	tw.Flag(1, "hidden", false)
	if got, want := tw.String(), "  portrait\n"; got != want {
		t.Errorf("Flag() = %q, want %q", got, want)
	}
}

func TestTreeWriter_MultipleOperations(t *testing.T) {
	tw := NewTreeWriter()
	tw.Line(0, "Root")
	tw.Line(1, "Child 1")
	tw.TextBlock(2, "field", "value")
	tw.Line(1, "Child 2")

	want := "Root\n  Child 1\n    field: \"value\"\n  Child 2\n"
	if got := tw.String(); got != want {
		t.Errorf("Multiple operations:\ngot:\n%s\nwant:\n%s", got, want)
	}
}
