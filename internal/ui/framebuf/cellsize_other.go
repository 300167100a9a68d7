//go:build !unix

package framebuf

func getCellSize() (cellW, cellH int) {
	return defaultCellWidth, defaultCellHeight
}
