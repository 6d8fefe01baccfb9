package terrain

import (
	"encoding/base64"
	"fmt"
)

const maxRun = 255

// Encode run-length encodes the grid row-major as (value, count) byte pairs,
// each run at most 255 cells, and returns the result as standard base64.
func (t *Terrain) Encode() string {
	total := t.width * t.height
	out := make([]byte, 0, 64)
	for i := 0; i < total; {
		val := t.at(i%t.width, i/t.width)
		count := 1
		for i+count < total && count < maxRun && t.at((i+count)%t.width, (i+count)/t.width) == val {
			count++
		}
		var b byte
		if val {
			b = 1
		}
		out = append(out, b, byte(count))
		i += count
	}
	return base64.StdEncoding.EncodeToString(out)
}

// Decode rebuilds a terrain from the output of Encode. Runs past the end of
// the grid are truncated; a short stream leaves the remaining cells as air.
func Decode(encoded string, width, height, water int) (*Terrain, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("terrain: decode base64: %w", err)
	}
	if len(raw)%2 != 0 {
		return nil, fmt.Errorf("terrain: odd run-length stream (%d bytes)", len(raw))
	}
	t := New(width, height, water)
	total := width * height
	pos := 0
	for j := 0; j < len(raw) && pos < total; j += 2 {
		solid := raw[j] == 1
		for k := 0; k < int(raw[j+1]) && pos < total; k++ {
			if solid {
				t.set(pos%width, pos/width, true)
			}
			pos++
		}
	}
	return t, nil
}
