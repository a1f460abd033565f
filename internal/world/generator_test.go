package world

import (
	"testing"

	"github.com/oriumgames/crossmc/internal/registry"
)

func TestFlatGeneratorLayersBottomToTop(t *testing.T) {
	reg := registry.New()
	gen := NewFlatGenerator(reg)
	col := gen.Generate(0, 0, 4096)

	sec := col.Sections[0]
	if sec == nil {
		t.Fatal("expected bottom section to be populated")
	}
	if got := sec.Get(0, 0, 0); got != registry.BlockBedrock {
		t.Fatalf("layer 0 = %d, want bedrock (%d)", got, registry.BlockBedrock)
	}
	if got := sec.Get(0, 1, 0); got != registry.BlockDirt {
		t.Fatalf("layer 1 = %d, want dirt (%d)", got, registry.BlockDirt)
	}
	if got := sec.Get(0, 4, 0); got != registry.BlockGrassBlock {
		t.Fatalf("layer 4 = %d, want grass (%d)", got, registry.BlockGrassBlock)
	}
	if got := sec.Get(0, 5, 0); got != registry.BlockAir {
		t.Fatalf("layer 5 = %d, want air", got)
	}
}

func TestFlatGeneratorPrimaryBitmapOnlyBottomSection(t *testing.T) {
	reg := registry.New()
	gen := NewFlatGenerator(reg)
	col := gen.Generate(1, -1, 4096)
	if col.PrimaryBitmap() != 1 {
		t.Fatalf("bitmap = %016b, want only bit 0 set", col.PrimaryBitmap())
	}
}
