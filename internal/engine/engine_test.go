package engine

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/vk/taglib/internal/bootstrap"
	"github.com/vk/taglib/internal/bundle"
	"github.com/vk/taglib/internal/model"
	"github.com/vk/taglib/internal/parser"
	"github.com/vk/taglib/internal/tagkey"
	"github.com/vk/taglib/internal/tagstore"
	"github.com/vk/taglib/internal/testutil"
)

func k(raw string) tagkey.Key { return tagkey.MustParse(raw) }

func keys(raw ...string) []tagkey.Key {
	out := make([]tagkey.Key, len(raw))
	for i, r := range raw {
		out[i] = k(r)
	}
	return out
}

func memory(name string, files map[string]string) bundle.Bundle {
	return bundle.Memory(name, testutil.MemoryFiles(files))
}

func woolSeed() bootstrap.Seed {
	seed := make(bootstrap.Seed)
	seed.Add(model.Item, k("minecraft:wool"), k("minecraft:white_wool"), k("minecraft:red_wool"))
	return seed
}

func TestRun_WoolScenario(t *testing.T) {
	ctx, _ := testutil.LogContext(t)
	bundles := []bundle.Bundle{
		memory("x.jar", map[string]string{
			"data/modpack/tags/item/colored_wool.json": `{"values": ["#minecraft:wool", "modpack:pink_wool"]}`,
		}),
	}

	reg, report := New(Options{}).Run(ctx, woolSeed(), bundles)

	items := reg.For(model.Item)
	members, ok := items.Members(k("modpack:colored_wool"))
	require.True(t, ok)
	assert.Equal(t, keys("minecraft:red_wool", "minecraft:white_wool", "modpack:pink_wool"), members)
	assert.Equal(t, keys("minecraft:wool", "modpack:colored_wool"), items.TagsOf(k("minecraft:white_wool")))
	require.NoError(t, reg.CheckConsistency())

	assert.Equal(t, 1, report.Bundles)
	assert.Equal(t, 2, report.Seeded)
	assert.Equal(t, 1, report.Files)
	assert.Equal(t, 1, report.Bindings)
	assert.Equal(t, 1, report.Edges)
	assert.Equal(t, 2, report.AddedCount())
	assert.Empty(t, report.Warnings)
}

func TestRun_OresUnion(t *testing.T) {
	a := memory("a.jar", map[string]string{
		"data/modpack/tags/block/ores.json": `{"values": ["modpack:tin_ore", "modpack:copper_ore"]}`,
	})
	b := memory("b.jar", map[string]string{
		"data/modpack/tags/block/ores.json": `{"replace": true, "values": ["modpack:lead_ore"]}`,
	})
	want := keys("modpack:copper_ore", "modpack:lead_ore", "modpack:tin_ore")

	for _, order := range [][]bundle.Bundle{{a, b}, {b, a}} {
		reg, report := New(Options{}).Run(context.Background(), nil, order)
		got, ok := reg.For(model.Block).Members(k("modpack:ores"))
		require.True(t, ok)
		assert.Equal(t, want, got)
		assert.Equal(t, 1, report.Replacing)
	}
}

func TestRun_TransitiveAcrossBundles(t *testing.T) {
	bundles := []bundle.Bundle{
		memory("a.jar", map[string]string{
			"data/a/tags/item/top.json": `{"values": ["#b:middle"]}`,
		}),
		memory("b.jar", map[string]string{
			"data/b/tags/item/middle.json": `{"values": ["#c:bottom", "b:m"]}`,
		}),
		memory("c.jar", map[string]string{
			"data/c/tags/item/bottom.json": `{"values": ["c:leaf"]}`,
		}),
	}

	reg, _ := New(Options{Workers: 2}).Run(context.Background(), nil, bundles)
	items := reg.For(model.Item)

	got, _ := items.Members(k("a:top"))
	assert.Equal(t, keys("b:m", "c:leaf"), got)
	got, _ = items.Members(k("b:middle"))
	assert.Equal(t, keys("b:m", "c:leaf"), got)
	assert.Equal(t, keys("a:top", "b:middle", "c:bottom"), items.TagsOf(k("c:leaf")))
	require.NoError(t, reg.CheckConsistency())
}

func TestRun_Cycle(t *testing.T) {
	bundles := []bundle.Bundle{
		memory("cycle.jar", map[string]string{
			"data/c/tags/entity_type/a.json": `{"values": ["#c:b", "c:zombie"]}`,
			"data/c/tags/entity_type/b.json": `{"values": ["#c:a", "c:skeleton"]}`,
		}),
	}

	reg, report := New(Options{}).Run(context.Background(), nil, bundles)
	entities := reg.For(model.EntityType)

	both := keys("c:skeleton", "c:zombie")
	got, _ := entities.Members(k("c:a"))
	assert.Equal(t, both, got)
	got, _ = entities.Members(k("c:b"))
	assert.Equal(t, both, got)

	require.Len(t, report.Cycles[model.EntityType], 1)
	assert.Equal(t, 1, report.CycleCount())
	require.NoError(t, reg.CheckConsistency())
}

func TestRun_MalformedIsolation(t *testing.T) {
	ctx, logs := testutil.LogContext(t)
	bundles := []bundle.Bundle{
		memory("mixed.jar", map[string]string{
			"data/m/tags/item/broken.json": `{"values": [`,
			"data/m/tags/item/good.json":   `{"values": ["m:one", "Bad Key", "#m:other"]}`,
			"data/m/tags/item/other.json":  `{"values": ["m:two"]}`,
		}),
		memory("fine.jar", map[string]string{
			"data/f/tags/block/fine.json": `{"values": ["f:x"]}`,
		}),
	}

	reg, report := New(Options{}).Run(ctx, nil, bundles)

	got, _ := reg.For(model.Item).Members(k("m:good"))
	assert.Equal(t, keys("m:one", "m:two"), got)
	assert.True(t, reg.For(model.Block).Has(k("f:x"), k("f:fine")))

	require.Len(t, report.Warnings, 2)
	assert.True(t, errors.Is(report.Warnings[0], parser.ErrMalformedDefinition))
	assert.True(t, errors.Is(report.Warnings[1], parser.ErrMalformedKey))
	assert.Contains(t, logs.String(), "Skipped tag data.")
	assert.Contains(t, logs.String(), "broken.json")
}

func TestRun_UnreadableBundle(t *testing.T) {
	missing := bundle.Zip(filepath.Join(t.TempDir(), "gone.jar"))
	good := memory("good.jar", map[string]string{
		"data/g/tags/item/t.json": `{"values": ["g:m"]}`,
	})

	reg, report := New(Options{}).Run(context.Background(), nil, []bundle.Bundle{missing, good})

	assert.True(t, reg.For(model.Item).Has(k("g:m"), k("g:t")))
	require.Len(t, report.Warnings, 1)
	assert.ErrorIs(t, report.Warnings[0], parser.ErrUnreadable)
}

func TestRun_ZipBundles(t *testing.T) {
	root := t.TempDir()
	testutil.WriteZip(t, filepath.Join(root, "mods", "a.jar"), map[string]string{
		"data/a/tags/items/logs.json": `{"values": [{"id": "a:oak", "required": false}, "#b:more"]}`,
	})
	testutil.WriteFiles(t, filepath.Join(root, "packs", "b"), map[string]string{
		"data/b/tags/item/more.json": `{"values": ["b:birch"]}`,
	})

	ctx := context.Background()
	bundles, err := bundle.Discover(ctx, root)
	require.NoError(t, err)
	require.Len(t, bundles, 2)

	reg, report := New(Options{}).Run(ctx, nil, bundles)
	got, _ := reg.For(model.Item).Members(k("a:logs"))
	assert.Equal(t, keys("a:oak", "b:birch"), got)
	assert.Empty(t, report.Warnings)
}

func TestNew_Defaults(t *testing.T) {
	a := New(Options{Workers: -1})
	assert.Equal(t, DefaultWorkers, a.workers)
	assert.NotNil(t, a.tracer)
}

// Every permutation of the same bundles yields the same stores.
func TestRun_Confluence(t *testing.T) {
	bundles := []bundle.Bundle{
		memory("a", map[string]string{
			"data/p/tags/item/all.json":   `{"values": ["#p:ores", "#p:gems"]}`,
			"data/p/tags/item/ores.json":  `{"values": ["p:iron"]}`,
			"data/p/tags/block/loop.json": `{"values": ["#p:loop2", "p:stone"]}`,
		}),
		memory("b", map[string]string{
			"data/p/tags/item/ores.json":   `{"values": ["p:gold", "#p:deep"]}`,
			"data/p/tags/block/loop2.json": `{"values": ["#p:loop"]}`,
		}),
		memory("c", map[string]string{
			"data/p/tags/item/gems.json": `{"values": ["p:ruby", "#p:all"]}`,
			"data/p/tags/item/deep.json": `{"values": ["p:deep_iron"]}`,
		}),
		memory("d", map[string]string{
			"data/p/tags/item/empty.json":   `{"values": []}`,
			"data/p/tags/entity_type/x.json": `{"values": ["#p:missing"]}`,
		}),
	}

	snapshot := func(reg *tagstore.Registry) map[model.TagType][2]map[tagkey.Key][]tagkey.Key {
		out := make(map[model.TagType][2]map[tagkey.Key][]tagkey.Key)
		for _, t := range model.TagTypes {
			s := reg.For(t)
			out[t] = [2]map[tagkey.Key][]tagkey.Key{s.Snapshot(), s.ReverseSnapshot()}
		}
		return out
	}

	baseline, _ := New(Options{Workers: 1}).Run(context.Background(), woolSeed(), bundles)
	want := snapshot(baseline)
	require.NoError(t, baseline.CheckConsistency())

	rapid.Check(t, func(rt *rapid.T) {
		perm := rapid.Permutation(bundles).Draw(rt, "order")
		workers := rapid.IntRange(1, 4).Draw(rt, "workers")

		reg, _ := New(Options{Workers: workers}).Run(context.Background(), woolSeed(), perm)
		if diff := cmp.Diff(want, snapshot(reg)); diff != "" {
			rt.Fatalf("stores depend on bundle order (-want +got):\n%s", diff)
		}
	})
}
