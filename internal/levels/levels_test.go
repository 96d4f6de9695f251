package levels

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-sokoban/internal/sokoban"
)

func file(rows ...string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(strings.Join(rows, "\n") + "\n")}
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"02.xsb":         file("#####", "#@$.#", "#####"),
		"01.xsb":         file("######", "#@ $.#", "######"),
		"pack/03.XSB":    file("####", "#+*#", "####"),
		"readme.txt":     file("not a level"),
		"broken.xsb":     file("#####", "# $.#", "#####"),
		"huge.xsb":       file(strings.Repeat("#", 25), "#@"+strings.Repeat(" ", 22)+"#", strings.Repeat("#", 25)),
		"windows.xsb":    {Data: []byte("#####\r\n#@$.#\r\n#####\r\n")},
		"pack/empty.xsb": {Data: nil},
	}
}

func TestLoaderLoadAll(t *testing.T) {
	loader := NewLoader(testFS())

	lvls, err := loader.LoadAll()
	require.NoError(t, err)

	ids := make([]string, len(lvls))
	for i, l := range lvls {
		ids[i] = l.ID
	}
	assert.Equal(t, []string{"01", "02", "03", "windows"}, ids)

	first := lvls[0]
	assert.Equal(t, "01.xsb", first.Name)
	assert.Equal(t, "01.xsb", first.Path)
	assert.Equal(t, 6, first.Width)
	assert.Equal(t, 3, first.Height)
	assert.Equal(t, []string{"######", "#@ $.#", "######"}, first.Rows)

	assert.Equal(t, "pack/03.XSB", lvls[2].Path)
	assert.Equal(t, []string{"#####", "#@$.#", "#####"}, lvls[3].Rows)
}

func TestLoaderManyLevelsParallel(t *testing.T) {
	fsys := fstest.MapFS{}
	for i := 0; i < 50; i++ {
		fsys[fmt.Sprintf("%03d.xsb", i)] = file("#####", "#@$.#", "#####")
	}

	lvls, err := NewLoader(fsys).LoadAll()
	require.NoError(t, err)
	require.Len(t, lvls, 50)
	for i, l := range lvls {
		assert.Equal(t, fmt.Sprintf("%03d", i), l.ID)
	}
}

func TestLoaderLoadFileErrors(t *testing.T) {
	loader := NewLoader(testFS())

	_, err := loader.LoadFile("broken.xsb")
	assert.ErrorIs(t, err, sokoban.ErrMalformedLevel)

	_, err = loader.LoadFile("pack/empty.xsb")
	assert.ErrorIs(t, err, sokoban.ErrMalformedLevel)

	_, err = loader.LoadFile("huge.xsb")
	assert.ErrorIs(t, err, ErrTooLarge)

	_, err = loader.LoadFile("missing.xsb")
	assert.Error(t, err)
}

func TestLoaderNoSizeLimit(t *testing.T) {
	loader := NewLoader(testFS())
	loader.MaxWidth, loader.MaxHeight = 0, 0

	lvl, err := loader.LoadFile("huge.xsb")
	require.NoError(t, err)
	assert.Equal(t, 25, lvl.Width)
}

func TestLoaderLongRows(t *testing.T) {
	wide := strings.Repeat("#", 70002)
	fsys := fstest.MapFS{
		"long.xsb": file(wide, "#@$."+strings.Repeat(" ", 69997)+"#", wide),
	}

	loader := NewLoader(fsys)
	_, err := loader.LoadFile("long.xsb")
	assert.ErrorIs(t, err, ErrTooLarge)

	loader.MaxWidth, loader.MaxHeight = 0, 0
	lvl, err := loader.LoadFile("long.xsb")
	require.NoError(t, err)
	assert.Equal(t, 70002, lvl.Width)
	assert.Equal(t, 3, lvl.Height)
}

func TestLoaderLoadByID(t *testing.T) {
	loader := NewLoader(testFS())

	lvl, err := loader.LoadByID("02")
	require.NoError(t, err)
	assert.Equal(t, "02.xsb", lvl.Name)

	state, err := lvl.NewState()
	require.NoError(t, err)
	assert.Equal(t, sokoban.P(1, 1), state.Player())

	_, err = loader.LoadByID("nope")
	assert.Error(t, err)
}

func levelsN(n int) []Level {
	lvls := make([]Level, n)
	for i := range lvls {
		lvls[i] = Level{ID: fmt.Sprintf("%02d", i)}
	}
	return lvls
}

func selectedID(t *testing.T, p *Pager) string {
	t.Helper()
	lvl, ok := p.Selected()
	require.True(t, ok)
	return lvl.ID
}

func TestPagerPaging(t *testing.T) {
	p := NewPager(levelsN(14), 6)

	assert.Equal(t, 3, p.PageCount())
	assert.Equal(t, 14, p.Len())
	assert.Len(t, p.Page(), 6)

	// Up at the very top stays put.
	p.Move(-1)
	assert.Equal(t, "00", selectedID(t, p))

	for i := 0; i < 6; i++ {
		p.Move(1)
	}
	assert.Equal(t, 1, p.PageIndex())
	assert.Equal(t, 0, p.Cursor())
	assert.Equal(t, "06", selectedID(t, p))

	// Flip back to the last entry of the previous page.
	p.Move(-1)
	assert.Equal(t, 0, p.PageIndex())
	assert.Equal(t, 5, p.Cursor())

	// Walk to the end; the short last page clamps.
	for i := 0; i < 20; i++ {
		p.Move(1)
	}
	assert.Equal(t, 2, p.PageIndex())
	assert.Equal(t, "13", selectedID(t, p))
	assert.Len(t, p.Page(), 2)
}

func TestPagerExactMultipleHasNoEmptyPage(t *testing.T) {
	p := NewPager(levelsN(12), 6)
	assert.Equal(t, 2, p.PageCount())

	for i := 0; i < 20; i++ {
		p.Move(1)
	}
	assert.Equal(t, "11", selectedID(t, p))
}

func TestPagerEmpty(t *testing.T) {
	p := NewPager(nil, 0)

	assert.Equal(t, 1, p.PageCount())
	p.Move(1)
	p.Move(-1)
	_, ok := p.Selected()
	assert.False(t, ok)
}

func TestPagerSelectID(t *testing.T) {
	p := NewPager(levelsN(14), 6)

	require.True(t, p.SelectID("09"))
	assert.Equal(t, 1, p.PageIndex())
	assert.Equal(t, 3, p.Cursor())
	assert.False(t, p.SelectID("99"))
}

func TestThumbnail(t *testing.T) {
	lvl := Level{
		Rows:   []string{"####", "#+*$", "#. "},
		Width:  4,
		Height: 3,
	}

	thumb := Thumbnail(lvl, 8, 5)
	require.Len(t, thumb, 5)
	require.Len(t, thumb[0], 8)

	// Centered: left = 2, top = 1.
	assert.Equal(t, ThumbEmpty, thumb[0][2])
	assert.Equal(t, ThumbWall, thumb[1][2])
	assert.Equal(t, ThumbPlayerOnTarget, thumb[2][3])
	assert.Equal(t, ThumbCrateOnTarget, thumb[2][4])
	assert.Equal(t, ThumbCrate, thumb[2][5])
	assert.Equal(t, ThumbTarget, thumb[3][3])
	assert.Equal(t, ThumbEmpty, thumb[3][4])
	assert.Equal(t, ThumbEmpty, thumb[3][5])
}

func TestThumbnailClipsOversized(t *testing.T) {
	lvl := Level{Rows: []string{"#####", "#@  #", "#####"}, Width: 5, Height: 3}

	thumb := Thumbnail(lvl, 3, 1)
	require.Len(t, thumb, 1)
	// left = -1, top = -1: row 1 of the level, columns 1..3.
	assert.Equal(t, []ThumbCell{ThumbPlayer, ThumbEmpty, ThumbEmpty}, thumb[0])
}

func TestWatcherReportsLevelFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))
	target := filepath.Join(dir, "05.xsb")
	require.NoError(t, os.WriteFile(target, []byte("#####\n#@$.#\n#####\n"), 0o600))

	select {
	case name := <-w.Events:
		assert.Equal(t, target, name)
	case <-time.After(5 * time.Second):
		t.Fatal("no event for level file")
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())

	_, err = NewWatcher(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestLibraryMergesSources(t *testing.T) {
	user := fstest.MapFS{
		"01.xsb":   file("####", "#@.#", "#$ #", "####"),
		"mine.xsb": file("#####", "#@$.#", "#####"),
	}

	lib, err := NewLibrary(nil,
		Source{Pack: "local", Loader: NewLoader(user)},
		Source{Pack: "builtin", Loader: NewLoader(testFS())},
	)
	require.NoError(t, err)

	lvls := lib.Levels()
	ids := make([]string, len(lvls))
	for i, l := range lvls {
		ids[i] = l.ID
	}
	assert.Equal(t, []string{"01", "mine", "02", "03", "windows"}, ids)

	// The earlier source wins for duplicate IDs.
	lvl, ok := lib.Get("01")
	require.True(t, ok)
	assert.Equal(t, "local", lvl.Pack)
	assert.Equal(t, 4, lvl.Height)

	lvl, ok = lib.Get("02")
	require.True(t, ok)
	assert.Equal(t, "builtin", lvl.Pack)

	_, ok = lib.Get("nope")
	assert.False(t, ok)
}

func TestLibraryReloadSignalsChange(t *testing.T) {
	fsys := fstest.MapFS{"01.xsb": file("#####", "#@$.#", "#####")}
	lib, err := NewLibrary(nil, Source{Pack: "p", Loader: NewLoader(fsys)})
	require.NoError(t, err)

	changed := lib.Changed()
	select {
	case <-changed:
		t.Fatal("changed before reload")
	default:
	}

	fsys["02.xsb"] = file("#####", "#@$.#", "#####")
	require.NoError(t, lib.Reload())

	select {
	case <-changed:
	default:
		t.Fatal("reload did not signal change")
	}
	assert.Len(t, lib.Levels(), 2)
	assert.NotEqual(t, changed, lib.Changed())
}

func TestLibraryWatchReloads(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "01.xsb"), []byte("#####\n#@$.#\n#####\n"), 0o600))

	lib, err := NewLibrary(nil, Source{Pack: "local", Loader: NewLoader(os.DirFS(dir)), Dir: dir})
	require.NoError(t, err)
	require.Len(t, lib.Levels(), 1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- lib.Watch(ctx) }()

	changed := lib.Changed()
	// Give the watcher a moment to register the directory.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "02.xsb"), []byte("#####\n#@$.#\n#####\n"), 0o600))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("library was not reloaded")
	}
	assert.Eventually(t, func() bool { return len(lib.Levels()) == 2 }, 5*time.Second, 20*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}
