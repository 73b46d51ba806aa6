package content

import (
	"fmt"

	"github.com/google/uuid"
)

// Kind distinguishes the different kinds of content blocks.
type Kind string

const (
	KindHeading    Kind = "heading"
	KindSubheading Kind = "subheading"
	KindBody       Kind = "body"
	KindBullets    Kind = "bullets"
	KindGreyBox    Kind = "grey_box"
)

// IsValid reports whether kind is one of the known block kinds.
func (k Kind) IsValid() bool {
	switch k {
	case KindHeading, KindSubheading, KindBody, KindBullets, KindGreyBox:
		return true
	}
	return false
}

// GreyBox is the composite sidebar module: optional media reference, optional
// quotation and optional attribution.
type GreyBox struct {
	Media         string
	Quote         string
	Name          string
	MediaPortrait bool
}

// IsEmpty reports whether there is nothing to render.
func (g *GreyBox) IsEmpty() bool {
	return g == nil || (g.Media == "" && g.Quote == "" && g.Name == "")
}

// Block is a single unit of the editable document, keeping the original
// ordering. Text is used by heading, subheading, body and bullets blocks,
// GreyBox only by grey_box blocks.
type Block struct {
	ID      string
	Kind    Kind
	Text    string
	GreyBox *GreyBox
}

// NewBlockID generates stable block identifier. It is assigned once at block
// creation and never derived from content.
func NewBlockID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func newTextBlock(kind Kind, text string) Block {
	return Block{ID: NewBlockID(), Kind: kind, Text: text}
}

func NewHeading(text string) Block    { return newTextBlock(KindHeading, text) }
func NewSubheading(text string) Block { return newTextBlock(KindSubheading, text) }
func NewBody(text string) Block       { return newTextBlock(KindBody, text) }
func NewBullets(text string) Block    { return newTextBlock(KindBullets, text) }

// NewGreyBox creates sidebar block. Portrait media orientation is the default
// for freshly created boxes.
func NewGreyBox(media, quote, name string) Block {
	return Block{
		ID:      NewBlockID(),
		Kind:    KindGreyBox,
		GreyBox: &GreyBox{Media: media, Quote: quote, Name: name, MediaPortrait: true},
	}
}

// Validate checks that block payload matches its kind.
func (b *Block) Validate() error {
	if !b.Kind.IsValid() {
		return fmt.Errorf("block %q: unknown kind %q", b.ID, b.Kind)
	}
	if b.Kind == KindGreyBox && b.GreyBox == nil {
		return fmt.Errorf("block %q: grey box without payload", b.ID)
	}
	return nil
}
