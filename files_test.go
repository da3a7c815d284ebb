package gridanim

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// memCodec serves decoded timelines from a map and records what is encoded.
type memCodec struct {
	sources map[string]Timeline
	written map[string]Timeline
	order   []string
}

func newMemCodec(sources map[string]Timeline) *memCodec {
	return &memCodec{sources: sources, written: map[string]Timeline{}}
}

func (m *memCodec) Decode(path string) (Timeline, error) {
	tl, ok := m.sources[path]
	if !ok {
		return Timeline{}, errors.New("no such file")
	}
	return tl, nil
}

func (m *memCodec) Encode(t Timeline, path string) error {
	m.written[path] = t
	m.order = append(m.order, path)
	return nil
}

func TestExt(t *testing.T) {
	require.Equal(t, ".png", Ext(Static(solid(1, 1, red))))
	require.Equal(t, ".gif", Ext(animation(1, 1, []int{10}, red)))
}

func TestSplitName(t *testing.T) {
	require.Equal(t, "cat_1", SplitName("/tmp/pics/cat.gif", 1))
	require.Equal(t, "cat.v2_12", SplitName("cat.v2.png", 12))
	require.Equal(t, "noext_3", SplitName("noext", 3))
}

func TestComposeFiles(t *testing.T) {
	codec := newMemCodec(map[string]Timeline{
		"a.png": Static(solid(2, 2, red)),
		"b.gif": animation(2, 2, []int{10, 20}, red, blue),
	})

	name, err := ComposeFiles(codec, codec, [][]string{{"a.png", "b.gif"}}, "out/output", DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, "out/output.gif", name)

	out := codec.written[name]
	require.True(t, out.Animated)
	require.Equal(t, []int{10, 20}, delays(out))

	name, err = ComposeFiles(codec, codec, [][]string{{"a.png"}, {"a.png"}}, "still", DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, "still.png", name)
}

func TestComposeFilesSizesWorkersFromFrames(t *testing.T) {
	long := make([]int, 40)
	for i := range long {
		long[i] = 5
	}
	codec := newMemCodec(map[string]Timeline{
		"a.gif": animation(3, 3, long, red, blue, green),
		"b.png": Static(solid(2, 5, red)),
	})
	rows := [][]string{{"a.gif", "b.png"}}

	auto := DefaultOptions()
	auto.Workers = 0
	name, err := ComposeFiles(codec, codec, rows, "auto", auto)
	require.NoError(t, err)

	name2, err := ComposeFiles(codec, codec, rows, "seq", DefaultOptions())
	require.NoError(t, err)

	got, want := codec.written[name], codec.written[name2]
	require.Equal(t, 40, got.Len())
	require.Equal(t, delays(want), delays(got))
	for i := range want.Frames {
		require.Equal(t, want.Frames[i].Image.Pix, got.Frames[i].Image.Pix)
	}
}

func TestComposeFilesDecodeError(t *testing.T) {
	codec := newMemCodec(map[string]Timeline{})
	_, err := ComposeFiles(codec, codec, [][]string{{"missing.png"}}, "out", DefaultOptions())
	require.ErrorContains(t, err, "missing.png")
	require.Empty(t, codec.written)
}

func TestSplitFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Output")
	codec := newMemCodec(map[string]Timeline{
		"pics/sheet.gif": animation(4, 4, []int{30, 40}, red, blue),
	})

	saved, err := SplitFile(codec, codec, "pics/sheet.gif", 2, 2, dir)
	require.NoError(t, err)
	require.DirExists(t, dir)
	require.Equal(t, []string{
		filepath.Join(dir, "sheet_1.gif"),
		filepath.Join(dir, "sheet_2.gif"),
		filepath.Join(dir, "sheet_3.gif"),
		filepath.Join(dir, "sheet_4.gif"),
	}, saved)
	require.Equal(t, saved, codec.order)
	for _, p := range saved {
		require.Equal(t, []int{30, 40}, delays(codec.written[p]))
	}
}

func TestSplitFileStill(t *testing.T) {
	dir := t.TempDir()
	codec := newMemCodec(map[string]Timeline{"img.png": Static(solid(3, 3, red))})

	saved, err := SplitFile(codec, codec, "img.png", 1, 3, dir)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "img_3.png"), saved[2])
	require.False(t, codec.written[saved[0]].Animated)
}
