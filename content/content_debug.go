package content

import "evostudio/utils/debug"

// String returns a readable tree of the block sequence.
// It exists solely for manual inspection and debug reports.
func (bs Blocks) String() string {
	tw := debug.NewTreeWriter()
	tw.Line(0, "Blocks: %d", len(bs))
	for i := range bs {
		b := &bs[i]
		tw.Line(1, "[%d] %s id=%s", i, b.Kind, b.ID)
		if b.Kind != KindGreyBox {
			tw.TextBlock(2, "text", b.Text)
			continue
		}
		if b.GreyBox == nil {
			tw.Line(2, "<nil grey box>")
			continue
		}
		tw.TextBlock(2, "media", b.GreyBox.Media)
		tw.TextBlock(2, "quote", b.GreyBox.Quote)
		tw.TextBlock(2, "name", b.GreyBox.Name)
		tw.Flag(2, "portrait", b.GreyBox.Media != "" && b.GreyBox.MediaPortrait)
	}
	return tw.String()
}
