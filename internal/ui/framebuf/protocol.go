// Package framebuf draws decoded video frames in the terminal.
//
// A Protocol turns an image into terminal output. Kitty and Sixel send real
// pixels through escape sequences that are positioned after the text layout
// is drawn; HalfBlock packs two pixel rows into each cell with truecolor
// upper-half blocks and works in any modern terminal.
package framebuf

import "image"

// Protocol abstracts how an image reaches the terminal.
type Protocol interface {
	// Name is the configuration name of the protocol.
	Name() string

	// Prepare encodes the image under id and returns any one-time
	// terminal command. Kitty transmits to terminal memory; Sixel and
	// HalfBlock encode and cache internally and return "".
	Prepare(img image.Image, id uint32) (string, error)

	// Place returns the escape sequence that displays image id at the
	// 1-based (row, col) over width x height cells.
	Place(id uint32, row, col, width, height int) string

	// Delete forgets image id and returns the escape sequence removing it.
	Delete(id uint32) string

	// Placeholder returns the text occupying the image area in the layout:
	// blank space for escape-based protocols, the block art for HalfBlock.
	Placeholder(id uint32, width, height int) string

	// TargetPixelSize returns the pixel box an image must fit to cover the
	// given number of cells.
	TargetPixelSize(widthCells, heightCells int) (pixelWidth, pixelHeight int)
}

// BlankPlaceholder returns width x height cells of spaces.
func BlankPlaceholder(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	return padBlock(nil, width, height)
}
