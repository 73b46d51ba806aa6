package content

// group turns segments into blocks. Heading, subheading, body and bullets
// segments become standalone blocks. Every run of consecutive sidebar segments
// (media, quote, name) is collected into grey boxes: repeated quote or name
// overwrites previous value while repeated media closes current box and starts
// a new one, so a box never holds more than a single media reference.
func group(segments []segment) Blocks {
	var blocks Blocks
	for i := 0; i < len(segments); {
		seg := segments[i]
		switch seg.tag {
		case tagHeading:
			blocks = append(blocks, NewHeading(seg.text))
		case tagSubheading:
			blocks = append(blocks, NewSubheading(seg.text))
		case tagBody:
			blocks = append(blocks, NewBody(seg.text))
		case tagBullets:
			blocks = append(blocks, NewBullets(seg.text))
		default:
			var boxes Blocks
			boxes, i = groupSidebar(segments, i)
			blocks = append(blocks, boxes...)
			continue
		}
		i++
	}
	return blocks
}

// groupSidebar consumes run of sidebar segments starting at pos and returns
// resulting grey boxes and position of the first segment after the run.
func groupSidebar(segments []segment, pos int) (Blocks, int) {
	var (
		boxes Blocks
		box   = NewGreyBox("", "", "")
	)
	for ; pos < len(segments) && segments[pos].tag.sidebar(); pos++ {
		seg := segments[pos]
		switch seg.tag {
		case tagMedia:
			if box.GreyBox.Media != "" {
				boxes = append(boxes, box)
				box = NewGreyBox("", "", "")
			}
			box.GreyBox.Media = seg.text
		case tagQuote:
			box.GreyBox.Quote = seg.text
		case tagName:
			box.GreyBox.Name = seg.text
		}
	}
	return append(boxes, box), pos
}

// Parse converts raw tagged text into ordered sequence of blocks. It never
// fails: input without recognized tags produces empty sequence.
func Parse(raw string) Blocks {
	return group(tokenize(raw))
}
