package raster

import (
	"bytes"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	pkgerrors "github.com/pkg/errors"

	"github.com/matzehuels/pixmesh/pkg/mesh"
)

// netpbmFile is the token-level shape of a plain netpbm file. Header fields
// and samples are all integers; which of them is the maximum value depends
// on the magic number, so interpretation happens after parsing.
type netpbmFile struct {
	Magic  string   `parser:"@Magic"`
	Values []string `parser:"@Int*"`
}

var netpbmLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Magic", Pattern: `P[12]`},
	{Name: "Int", Pattern: `\d+`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var netpbmParser = participle.MustBuild[netpbmFile](
	participle.Lexer(netpbmLexer),
	participle.Elide("Comment", "Whitespace"),
)

func isNetpbm(data []byte) bool {
	return bytes.HasPrefix(data, []byte("P1")) || bytes.HasPrefix(data, []byte("P2"))
}

// decodeNetpbm decodes a plain PBM (P1) or PGM (P2) image. PBM ink (1)
// becomes white foreground; PGM samples are scaled to 0..255 gray.
func decodeNetpbm(data []byte) (*Raster, error) {
	file, err := netpbmParser.ParseBytes("", data)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "parse netpbm")
	}

	header := 2
	if file.Magic == "P2" {
		header = 3
	}
	if len(file.Values) < header {
		return nil, pkgerrors.Errorf("%s header needs %d values, got %d", file.Magic, header, len(file.Values))
	}
	nums := make([]int, header)
	for i := range nums {
		n, err := strconv.Atoi(file.Values[i])
		if err != nil {
			return nil, pkgerrors.Wrapf(err, "header value %d", i)
		}
		nums[i] = n
	}
	width, height := nums[0], nums[1]

	var samples []int
	switch file.Magic {
	case "P1":
		// Plain PBM allows bits without separators.
		for _, tok := range file.Values[header:] {
			for _, c := range tok {
				if c != '0' && c != '1' {
					return nil, pkgerrors.Errorf("invalid bit %q", c)
				}
				samples = append(samples, int(c-'0')*255)
			}
		}
	case "P2":
		maxVal := nums[2]
		if maxVal <= 0 || maxVal > 65535 {
			return nil, pkgerrors.Errorf("invalid maximum value %d", maxVal)
		}
		for _, tok := range file.Values[header:] {
			v, err := strconv.Atoi(tok)
			if err != nil || v > maxVal {
				return nil, pkgerrors.Errorf("invalid sample %q", tok)
			}
			samples = append(samples, v*255/maxVal)
		}
	}

	if len(samples) != width*height {
		return nil, pkgerrors.Errorf("%dx%d image has %d samples", width, height, len(samples))
	}
	pix := make([]byte, 0, len(samples)*mesh.BytesPerPixel)
	for _, s := range samples {
		b := byte(s)
		pix = append(pix, b, b, b, 255)
	}
	return New(width, height, pix)
}
