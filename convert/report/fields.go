package report

import (
	"errors"
	"strings"

	"evostudio/content"
)

// ErrValidation is wrapped by every *ValidationError.
var ErrValidation = errors.New("validation failed")

// FieldError describes single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned before anything is rendered when input is not
// acceptable.
type ValidationError struct {
	Problems []FieldError
}

func (e *ValidationError) add(field, msg string) {
	e.Problems = append(e.Problems, FieldError{Field: field, Message: msg})
}

func (e *ValidationError) failed() bool {
	return len(e.Problems) > 0
}

// Fields returns names of all invalid fields.
func (e *ValidationError) Fields() []string {
	names := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		names = append(names, p.Field)
	}
	return names
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		msgs = append(msgs, p.Message)
	}
	return ErrValidation.Error() + ": " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Fields is fixed field form of report input. MediaPortrait is only
// meaningful when Media is set, decoders should preset it to true which is
// the default orientation.
type Fields struct {
	Heading       string         `json:"heading" yaml:"heading"`
	Subheading    string         `json:"subheading" yaml:"subheading"`
	Body          string         `json:"body" yaml:"body"`
	Category      string         `json:"category" yaml:"category"`
	QuoteText     string         `json:"quote_text" yaml:"quote_text"`
	QuoteName     string         `json:"quote_name" yaml:"quote_name"`
	Media         string         `json:"media" yaml:"media"`
	MediaPortrait bool           `json:"media_portrait" yaml:"media_portrait"`
	Bonus         []BonusElement `json:"bonus,omitempty" yaml:"bonus,omitempty"`
	Links         []Link         `json:"links,omitempty" yaml:"links,omitempty"`
}

// NewFields returns Fields with defaults set.
func NewFields() Fields {
	return Fields{MediaPortrait: true}
}

// Validate checks required fields and bonus section.
func (f *Fields) Validate() error {
	verr := &ValidationError{}
	for _, req := range []struct{ name, value string }{
		{"heading", f.Heading},
		{"quote_text", f.QuoteText},
		{"quote_name", f.QuoteName},
	} {
		if strings.TrimSpace(req.value) == "" {
			verr.add(req.name, req.name+" is required")
		}
	}
	if _, err := normalizeBonus(f.Bonus); err != nil {
		var berr *ValidationError
		if errors.As(err, &berr) {
			verr.Problems = append(verr.Problems, berr.Problems...)
		}
	}
	if verr.failed() {
		return verr
	}
	return nil
}

// Blocks converts fields into block sequence: heading, optional subheading,
// optional body and sidebar.
func (f *Fields) Blocks() content.Blocks {
	blocks := content.Blocks{content.NewHeading(strings.TrimSpace(f.Heading))}
	if s := strings.TrimSpace(f.Subheading); s != "" {
		blocks = append(blocks, content.NewSubheading(s))
	}
	if strings.TrimSpace(f.Body) != "" {
		blocks = append(blocks, content.NewBody(f.Body))
	}
	box := content.NewGreyBox(strings.TrimSpace(f.Media), f.QuoteText, f.QuoteName)
	box.GreyBox.MediaPortrait = f.MediaPortrait
	return append(blocks, box)
}
