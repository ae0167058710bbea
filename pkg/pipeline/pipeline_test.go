package pipeline

import (
	"slices"
	"testing"

	errs "github.com/matzehuels/pixmesh/pkg/errors"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"nmesh", false},
		{"neutral", false},
		{"stl", false},
		{"json", false},
		{"dot", false},
		{"svg", false},
		{"png", true},
		{"NMESH", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errs.Is(err, errs.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s, want %s", tt.format, errs.GetCode(err), errs.ErrCodeInvalidFormat)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"nmesh", "stl"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"nmesh", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"nmesh", []string{"nmesh"}},
		{"nmesh, STL ,json", []string{"nmesh", "stl", "json"}},
		{"svg,,svg", []string{"svg"}},
		{"", nil},
	}
	for _, tt := range tests {
		if got := ParseFormats(tt.in); !slices.Equal(got, tt.want) {
			t.Errorf("ParseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Empty options should pass: %v", err)
	}

	if opts.MaxDist == nil || *opts.MaxDist != DefaultMaxDist {
		t.Errorf("MaxDist should be %g, got %v", DefaultMaxDist, opts.MaxDist)
	}
	if opts.Thickness != DefaultThickness {
		t.Errorf("Thickness should be %d, got %d", DefaultThickness, opts.Thickness)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != DefaultFormat {
		t.Errorf("Formats should be [%s], got %v", DefaultFormat, opts.Formats)
	}
	if opts.Logger == nil {
		t.Error("Logger should be set")
	}
}

func TestOptionsValidateForMesh(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"negative thickness", Options{Thickness: -1}},
		{"huge thickness", Options{Thickness: errs.MaxThickness + 1}},
		{"negative max dist", Options{MaxDist: Float64(-2)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForMesh()
			if err == nil {
				t.Fatal("expected error")
			}
			if !errs.IsInvalid(err) {
				t.Errorf("error should be an INVALID_* code, got %s", errs.GetCode(err))
			}
		})
	}

	opts := Options{Thickness: 3, MaxDist: Float64(2.5)}
	if err := opts.ValidateForMesh(); err != nil {
		t.Errorf("Valid mesh options should pass: %v", err)
	}
	if opts.SmoothRadius() != 2.5 {
		t.Errorf("explicit MaxDist should be kept, got %g", opts.SmoothRadius())
	}
}

func TestOptionsExplicitZeroMaxDist(t *testing.T) {
	opts := Options{MaxDist: Float64(0)}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("zero radius should be valid: %v", err)
	}
	if opts.SmoothRadius() != 0 {
		t.Errorf("SmoothRadius() = %g, want 0", opts.SmoothRadius())
	}
	if k := opts.MeshKeyOpts(); k.MaxDist != 0 || !k.Smooth {
		t.Errorf("key MaxDist/Smooth = %g/%v, want 0/true", k.MaxDist, k.Smooth)
	}
	if (&Options{}).SmoothRadius() != DefaultMaxDist {
		t.Errorf("unset radius should be %g", DefaultMaxDist)
	}
}

func TestOptionsCloneCopiesMaxDist(t *testing.T) {
	opts := Options{MaxDist: Float64(2)}
	c := opts.Clone()
	*c.MaxDist = 4
	if *opts.MaxDist != 2 {
		t.Errorf("clone shares MaxDist: original is now %g", *opts.MaxDist)
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Thickness: 2}

	// First call
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}

	originalMaxDist := opts.SmoothRadius()
	originalFormats := slices.Clone(opts.Formats)

	// Second call should be idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}

	if opts.SmoothRadius() != originalMaxDist {
		t.Error("MaxDist changed on second call")
	}
	if !slices.Equal(opts.Formats, originalFormats) {
		t.Error("Formats changed on second call")
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatPyfem {
		t.Errorf("Formats should be [nmesh], got %v", opts.Formats)
	}
}

func TestMeshKeyOpts(t *testing.T) {
	opts := Options{AnyChannel: true, NoSmooth: true, MaxDist: Float64(3), Thickness: 2}
	k := opts.MeshKeyOpts()

	if k.ChannelRule != "any" {
		t.Errorf("ChannelRule = %q, want any", k.ChannelRule)
	}
	if !k.Reduce || k.Smooth {
		t.Errorf("Reduce/Smooth = %v/%v, want true/false", k.Reduce, k.Smooth)
	}
	if k.MaxDist != 3 || k.Thickness != 2 {
		t.Errorf("MaxDist/Thickness = %g/%d, want 3/2", k.MaxDist, k.Thickness)
	}

	if (&Options{}).MeshKeyOpts().ChannelRule != "first" {
		t.Error("default channel rule should be first")
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{SkipVolumes: true, Detailed: true}
	k := opts.ArtifactKeyOpts(FormatSVG)
	if k.Format != FormatSVG || k.Volumes || !k.Detail {
		t.Errorf("ArtifactKeyOpts = %+v", k)
	}
}

func TestContentTypes(t *testing.T) {
	for _, f := range ValidFormats {
		if ContentTypes[f] == "" {
			t.Errorf("format %s has no content type", f)
		}
	}
}

func TestOptionsCloneRevalidates(t *testing.T) {
	opts := Options{Formats: []string{FormatSTL}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}

	c := opts.Clone()
	c.Formats[0] = FormatJSON
	if opts.Formats[0] != FormatSTL {
		t.Error("Clone should not share Formats")
	}

	c.Thickness = -1
	if err := c.ValidateAndSetDefaults(); err == nil {
		t.Error("a cloned options value should be validated again")
	}
}
