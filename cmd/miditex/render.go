package main

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/leandrodaf/miditex/sdk/texture"
	"github.com/logrusorgru/aurora"
)

const ramp = " .:-=+*#%@"

// shade maps an 8-bit intensity onto the 24 step grayscale ramp of 256-colour terminals.
func shade(v byte) uint8 {
	return 232 + uint8(int(v)*23/255)
}

// renderNotes draws one cell per pair of notes, using the louder of the two.
func renderNotes(au aurora.Aurora, img *image.Gray) string {
	var sb strings.Builder
	w := img.Rect.Dx()
	for x := 0; x < w; x += 2 {
		v := img.GrayAt(x, 0).Y
		if x+1 < w {
			if v2 := img.GrayAt(x+1, 0).Y; v2 > v {
				v = v2
			}
		}
		c := string(ramp[int(v)*(len(ramp)-1)/255])
		sb.WriteString(au.BgIndex(shade(v), c).String())
	}
	return sb.String()
}

func writeSnapshot(path string, tex *texture.Texture) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, tex.Snapshot()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// writeSnapshots stores grid.png and notes.png in dir.
func writeSnapshots(dir string, grid, notes *texture.Texture) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := writeSnapshot(filepath.Join(dir, "grid.png"), grid); err != nil {
		return err
	}
	return writeSnapshot(filepath.Join(dir, "notes.png"), notes)
}
