package framebuf

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"strings"
)

// Kitty graphics protocol escape sequences
const (
	escStart = "\x1b_G"
	escEnd   = "\x1b\\"

	// chunkSize is the maximum payload of one escape sequence.
	chunkSize = 4096
)

// frames are re-encoded many times per second
var pngEncoder = png.Encoder{CompressionLevel: png.BestSpeed}

// KittyProtocol implements Protocol with the Kitty graphics protocol.
type KittyProtocol struct{}

func (KittyProtocol) Name() string { return ProtocolKitty }

func (KittyProtocol) Prepare(img image.Image, id uint32) (string, error) {
	return TransmitImage(img, id)
}

func (KittyProtocol) Place(id uint32, row, col, width, height int) string {
	return PlaceImage(id, row, col, width, height)
}

func (KittyProtocol) Delete(id uint32) string {
	return DeleteImage(id)
}

func (KittyProtocol) Placeholder(_ uint32, width, height int) string {
	return BlankPlaceholder(width, height)
}

func (KittyProtocol) TargetPixelSize(widthCells, heightCells int) (pixelWidth, pixelHeight int) {
	cellW, cellH := getCellSize()
	return widthCells * cellW, heightCells * cellH
}

// TransmitImage returns the escape sequences that store img in terminal
// memory under id without displaying it (a=t).
func TransmitImage(img image.Image, id uint32) (string, error) {
	var buf bytes.Buffer
	if err := pngEncoder.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}
	return TransmitPNG(buf.Bytes(), id), nil
}

// TransmitPNG chunks base64 PNG data into transmission sequences.
// f=100 is PNG, q=2 silences responses, m=1 marks that more chunks follow.
func TransmitPNG(pngData []byte, id uint32) string {
	encoded := base64.StdEncoding.EncodeToString(pngData)

	var sb strings.Builder
	for i := 0; i < len(encoded); i += chunkSize {
		end := min(i+chunkSize, len(encoded))
		more := 0
		if end < len(encoded) {
			more = 1
		}

		sb.WriteString(escStart)
		if i == 0 {
			fmt.Fprintf(&sb, "a=t,f=100,i=%d,q=2,m=%d;", id, more)
		} else {
			fmt.Fprintf(&sb, "m=%d;", more)
		}
		sb.WriteString(encoded[i:end])
		sb.WriteString(escEnd)
	}
	return sb.String()
}

// PlaceImage returns the escape sequence displaying a transmitted image at
// the 1-based (row, col) over width x height cells. The fixed placement ID
// makes each placement replace the previous one. The cursor is saved and
// restored around it and C=1 keeps it from moving.
func PlaceImage(id uint32, row, col, width, height int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\x1b[s\x1b[%d;%dH", row, col)
	fmt.Fprintf(&sb, "%sa=p,i=%d,p=1,c=%d,r=%d,C=1,q=2;%s", escStart, id, width, height, escEnd)
	sb.WriteString("\x1b[u")
	return sb.String()
}

// DeleteImage returns the escape sequence freeing image id and its placements.
func DeleteImage(id uint32) string {
	return fmt.Sprintf("%sa=d,d=I,i=%d,q=2;%s", escStart, id, escEnd)
}
