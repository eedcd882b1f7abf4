package anvil

import (
	"testing"

	"github.com/defvs/francegen/internal/style"
)

func TestBuildPaletteFirstSeenOrder(t *testing.T) {
	blocks := []style.BlockID{"minecraft:stone", "minecraft:dirt", "minecraft:stone"}
	states, indices := buildPalette(blocks)
	if len(states) != 2 {
		t.Fatalf("expected 2 palette entries, got %d", len(states))
	}
	if states[0].Name != "minecraft:stone" || states[1].Name != "minecraft:dirt" {
		t.Fatalf("unexpected palette order: %+v", states)
	}
	if indices[0] != 0 || indices[1] != 1 || indices[2] != 0 {
		t.Fatalf("unexpected indices: %v", indices)
	}
}

func TestBuildPaletteAirMovedToFront(t *testing.T) {
	blocks := []style.BlockID{"minecraft:stone", "minecraft:dirt", style.AirBlock, "minecraft:stone"}
	states, indices := buildPalette(blocks)
	if states[0].Name != style.AirBlock {
		t.Fatalf("expected air at palette[0], got %+v", states[0])
	}
	// stone was originally index 0, air was originally index 2 - confirm the
	// swap was applied consistently to every occurrence, not just the first.
	airIdx := 0
	stoneIdx := -1
	for i, s := range states {
		if s.Name == "minecraft:stone" {
			stoneIdx = i
		}
	}
	if indices[0] != stoneIdx {
		t.Errorf("first block (stone) index = %d, want %d", indices[0], stoneIdx)
	}
	if indices[2] != airIdx {
		t.Errorf("air block index = %d, want %d", indices[2], airIdx)
	}
	if indices[3] != stoneIdx {
		t.Errorf("second stone index = %d, want %d", indices[3], stoneIdx)
	}
}

func TestBuildPaletteAirAlreadyFirst(t *testing.T) {
	blocks := []style.BlockID{style.AirBlock, "minecraft:stone"}
	states, indices := buildPalette(blocks)
	if states[0].Name != style.AirBlock {
		t.Fatalf("expected air at palette[0]")
	}
	if indices[0] != 0 || indices[1] != 1 {
		t.Fatalf("unexpected indices: %v", indices)
	}
}

func TestBuildPaletteSingleBlock(t *testing.T) {
	blocks := []style.BlockID{"minecraft:stone", "minecraft:stone", "minecraft:stone"}
	states, indices := buildPalette(blocks)
	if len(states) != 1 {
		t.Fatalf("expected 1 palette entry, got %d", len(states))
	}
	for _, idx := range indices {
		if idx != 0 {
			t.Fatalf("expected all indices 0, got %v", indices)
		}
	}
}

func TestBuildPaletteNoAir(t *testing.T) {
	blocks := []style.BlockID{"minecraft:stone", "minecraft:dirt", "minecraft:grass_block"}
	states, _ := buildPalette(blocks)
	if states[0].Name != "minecraft:stone" {
		t.Fatalf("expected first-seen order preserved when no air present, got %+v", states)
	}
}
