package content

import (
	"encoding/json"
	"fmt"
)

// wireBlock is editor round-trip representation of a block.
type wireBlock struct {
	ID            string `json:"id"`
	Type          Kind   `json:"type"`
	Text          string `json:"text,omitempty"`
	Bullets       string `json:"bullets,omitempty"`
	Media         string `json:"media,omitempty"`
	Quote         string `json:"quote,omitempty"`
	Name          string `json:"name,omitempty"`
	MediaPortrait *bool  `json:"media_portrait,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (b Block) MarshalJSON() ([]byte, error) {
	w := wireBlock{ID: b.ID, Type: b.Kind}
	switch b.Kind {
	case KindHeading, KindSubheading, KindBody, KindBullets:
		w.Text = b.Text
	case KindGreyBox:
		gb := b.GreyBox
		if gb == nil {
			gb = &GreyBox{}
		}
		portrait := gb.MediaPortrait
		w.Media, w.Quote, w.Name, w.MediaPortrait = gb.Media, gb.Quote, gb.Name, &portrait
	default:
		return nil, fmt.Errorf("block %q: unknown kind %q", b.ID, b.Kind)
	}
	return json.Marshal(w)
}

// UnmarshalJSON implements json.Unmarshaler. Block without id gets a fresh
// one, grey box without media_portrait defaults to portrait.
func (b *Block) UnmarshalJSON(data []byte) error {
	var w wireBlock
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if !w.Type.IsValid() {
		return fmt.Errorf("unknown block type %q", w.Type)
	}

	nb := Block{ID: w.ID, Kind: w.Type}
	if nb.ID == "" {
		nb.ID = NewBlockID()
	}
	switch w.Type {
	case KindBullets:
		nb.Text = w.Text
		if nb.Text == "" {
			nb.Text = w.Bullets
		}
	case KindGreyBox:
		nb.GreyBox = &GreyBox{Media: w.Media, Quote: w.Quote, Name: w.Name, MediaPortrait: true}
		if w.MediaPortrait != nil {
			nb.GreyBox.MediaPortrait = *w.MediaPortrait
		}
	default:
		nb.Text = w.Text
	}
	*b = nb
	return nil
}
