package lattice

import (
	"encoding/json"
	"fmt"
	"path"
	"slices"
	"strconv"
	"strings"
)

// Atlas holds the named frame rectangles of one or more sprite sheet pages,
// as exported by TexturePacker.
type Atlas struct {
	// Pages lists the sheet pages in order.
	Pages   []AtlasPage
	regions map[string]atlasRegion
}

// AtlasPage describes one sheet image.
type AtlasPage struct {
	Image string
	Size  Size
}

type atlasRegion struct {
	page    int
	rect    Rect
	rotated bool
}

// Region returns the rectangle and page of the named frame.
func (a *Atlas) Region(name string) (r Rect, page int, ok bool) {
	reg, ok := a.regions[name]
	return reg.rect, reg.page, ok
}

// Len returns the number of regions.
func (a *Atlas) Len() int { return len(a.regions) }

// LoadAtlas parses TexturePacker JSON data. Supports both the hash format
// (single "frames" object with "meta") and the array format ("textures"
// array with per-page frame lists).
func LoadAtlas(jsonData []byte) (*Atlas, error) {
	// Probe top-level keys to detect format.
	var probe struct {
		Frames   json.RawMessage `json:"frames"`
		Textures json.RawMessage `json:"textures"`
		Meta     struct {
			Image string   `json:"image"`
			Size  jsonSize `json:"size"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(jsonData, &probe); err != nil {
		return nil, fmt.Errorf("lattice: parse atlas JSON: %w", err)
	}

	atlas := &Atlas{regions: make(map[string]atlasRegion)}

	switch {
	case probe.Textures != nil:
		if err := parseArrayFormat(probe.Textures, atlas); err != nil {
			return nil, err
		}
	case probe.Frames != nil:
		atlas.Pages = []AtlasPage{{
			Image: probe.Meta.Image,
			Size:  Size{probe.Meta.Size.W, probe.Meta.Size.H},
		}}
		if err := parseHashFrames(probe.Frames, 0, atlas); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("lattice: atlas JSON has neither \"frames\" nor \"textures\" key")
	}
	return atlas, nil
}

// --- JSON structure types ---

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonSize struct {
	W int `json:"w"`
	H int `json:"h"`
}

type jsonFrame struct {
	Frame   jsonRect `json:"frame"`
	Rotated bool     `json:"rotated"`
}

type jsonTexturePage struct {
	Image  string               `json:"image"`
	Size   jsonSize             `json:"size"`
	Frames map[string]jsonFrame `json:"frames"`
}

// parseHashFrames parses the hash format: {"name": {frame...}, ...}
func parseHashFrames(raw json.RawMessage, page int, atlas *Atlas) error {
	var frames map[string]jsonFrame
	if err := json.Unmarshal(raw, &frames); err != nil {
		return fmt.Errorf("lattice: parse atlas frames: %w", err)
	}
	for name, f := range frames {
		atlas.regions[name] = frameToRegion(f, page)
	}
	return nil
}

// parseArrayFormat parses the array format: [{"image":"...", "frames":{...}}, ...]
func parseArrayFormat(raw json.RawMessage, atlas *Atlas) error {
	var textures []jsonTexturePage
	if err := json.Unmarshal(raw, &textures); err != nil {
		return fmt.Errorf("lattice: parse atlas textures array: %w", err)
	}
	for i, tex := range textures {
		atlas.Pages = append(atlas.Pages, AtlasPage{Image: tex.Image, Size: Size{tex.Size.W, tex.Size.H}})
		for name, f := range tex.Frames {
			atlas.regions[name] = frameToRegion(f, i)
		}
	}
	return nil
}

func frameToRegion(f jsonFrame, page int) atlasRegion {
	return atlasRegion{
		page:    page,
		rect:    Rect{f.Frame.X, f.Frame.Y, f.Frame.W, f.Frame.H},
		rotated: f.Rotated,
	}
}

// Strip builds the frame strip made of the regions named prefix followed by
// a frame number ("walk_0.png", "walk_1.png", ...). Frames must share one
// size and page and sit where StripOffset expects them: left to right,
// wrapping onto following rows at the page's right edge.
func (a *Atlas) Strip(prefix string) (FrameStrip, Size, int, error) {
	type numbered struct {
		n   int
		reg atlasRegion
	}
	var frames []numbered
	for name, reg := range a.regions {
		rest, ok := strings.CutPrefix(name, prefix)
		if !ok {
			continue
		}
		rest = strings.TrimSuffix(rest, path.Ext(rest))
		n, err := strconv.Atoi(rest)
		if err != nil {
			continue
		}
		frames = append(frames, numbered{n, reg})
	}
	if len(frames) == 0 {
		return FrameStrip{}, Size{}, 0, fmt.Errorf("lattice: atlas has no frames named %q", prefix)
	}
	slices.SortFunc(frames, func(x, y numbered) int { return x.n - y.n })

	first := frames[0].reg
	size := first.rect.Size()
	page := first.page
	strip := FrameStrip{Count: len(frames), X: first.rect.X, Y: first.rect.Y}
	sheetWidth := 0
	if page < len(a.Pages) {
		sheetWidth = a.Pages[page].Size.Width
	}
	for i, f := range frames {
		if f.reg.page != page || f.reg.rect.Size() != size || f.reg.rotated {
			return FrameStrip{}, Size{}, 0, fmt.Errorf("lattice: frame %d of %q does not match the strip", f.n, prefix)
		}
		if want := StripOffset(strip, i, size, sheetWidth); f.reg.rect.Point() != want {
			return FrameStrip{}, Size{}, 0, fmt.Errorf("lattice: frame %d of %q at %s, want %s", f.n, prefix, f.reg.rect.Point(), want)
		}
	}
	return strip, size, page, nil
}
