package content

import "fmt"

// Blocks is ordered editable document. Order is significant and is the
// rendering order. Editing methods are not safe for concurrent use.
type Blocks []Block

// Index returns position of the block with given id or -1.
func (bs Blocks) Index(id string) int {
	for i := range bs {
		if bs[i].ID == id {
			return i
		}
	}
	return -1
}

// Heading returns text of the first heading block, if any.
func (bs Blocks) Heading() string {
	for i := range bs {
		if bs[i].Kind == KindHeading {
			return bs[i].Text
		}
	}
	return ""
}

// Insert places block at position pos, pos is clamped to valid range.
func (bs Blocks) Insert(pos int, b Block) Blocks {
	pos = max(0, min(pos, len(bs)))
	out := make(Blocks, 0, len(bs)+1)
	out = append(out, bs[:pos]...)
	out = append(out, b)
	return append(out, bs[pos:]...)
}

// Remove deletes block with given id.
func (bs Blocks) Remove(id string) (Blocks, error) {
	i := bs.Index(id)
	if i < 0 {
		return bs, fmt.Errorf("block %q not found", id)
	}
	out := make(Blocks, 0, len(bs)-1)
	out = append(out, bs[:i]...)
	return append(out, bs[i+1:]...), nil
}

// Move shifts block with given id by delta positions (negative is up),
// result is clamped to sequence bounds. Identity of all blocks is preserved.
func (bs Blocks) Move(id string, delta int) (Blocks, error) {
	i := bs.Index(id)
	if i < 0 {
		return bs, fmt.Errorf("block %q not found", id)
	}
	j := max(0, min(i+delta, len(bs)-1))
	out := make(Blocks, len(bs))
	copy(out, bs)
	b := out[i]
	if j > i {
		copy(out[i:j], out[i+1:j+1])
	} else {
		copy(out[j+1:i+1], out[j:i])
	}
	out[j] = b
	return out, nil
}
