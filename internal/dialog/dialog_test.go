package dialog

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/uniwin/internal/native"
)

func TestFilter_String(t *testing.T) {
	filters := []Filter{
		{Title: "Images", Extensions: []string{"png", "jpg"}},
		{Title: "Text", Extensions: []string{"txt"}},
	}
	assert.Equal(t, "Images\tpng\tjpg", filters[0].String())
	assert.Equal(t, "Images\tpng\tjpg\nText\ttxt", JoinFilters(filters))
	assert.Empty(t, JoinFilters(nil))
}

func TestParseFilters(t *testing.T) {
	filters, err := ParseFilters([]string{"Images: .png; jpg ;", "All:*"})
	require.NoError(t, err)
	assert.Equal(t, []Filter{
		{Title: "Images", Extensions: []string{"png", "jpg"}},
		{Title: "All", Extensions: []string{"*"}},
	}, filters)

	for _, bad := range []string{"png;jpg", ":png", "Images:", "Images: ; "} {
		_, err := ParseFilters([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestFlag(t *testing.T) {
	f := FileMustExist.With(AllowMultipleSelection, true)
	assert.True(t, f.Has(AllowMultipleSelection))
	assert.Equal(t, Flag(5), f)
	assert.Equal(t, "file-must-exist|multiple", f.String())

	f = f.With(FileMustExist, false)
	assert.Equal(t, AllowMultipleSelection, f)
	assert.Equal(t, "none", Flag(0).String())
}

func TestParseResult(t *testing.T) {
	buf := make([]byte, 64)
	copy(buf, "/tmp/a.txt\n\n /tmp/b.txt \n")
	assert.Equal(t, []string{"/tmp/a.txt", "/tmp/b.txt"}, ParseResult(buf))
	assert.Empty(t, ParseResult(make([]byte, 8)))
}

func fakePanel(t *testing.T, result string, ok bool, seen *Settings) func(unsafe.Pointer, *byte, int32) bool {
	return func(settings unsafe.Pointer, buf *byte, size int32) bool {
		ps := (*panelSettings)(settings)
		assert.Equal(t, int32(unsafe.Sizeof(panelSettings{})), ps.structSize)
		assert.Equal(t, int32(ResultBufferSize), size)

		title, err := native.WideString(ps.title)
		require.NoError(t, err)
		filter, err := native.WideString(ps.filter)
		require.NoError(t, err)
		dir, err := native.WideString(ps.initialDirectory)
		require.NoError(t, err)
		seen.Title = title
		seen.InitialDirectory = dir
		seen.Flags = Flag(ps.flags)
		seen.Filters = []Filter{{Title: filter}}

		copy(unsafe.Slice(buf, size), result)
		return ok
	}
}

func TestOpen(t *testing.T) {
	var seen Settings
	table := &native.Table{OpenFilePanel: fakePanel(t, "/a\n/b\n", true, &seen)}

	paths, err := Open(table, Settings{
		Title:            "Pick",
		Filters:          []Filter{{Title: "Text", Extensions: []string{"txt"}}},
		InitialDirectory: "/home",
		Flags:            AllowMultipleSelection,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"/a", "/b"}, paths)
	assert.Equal(t, "Pick", seen.Title)
	assert.Equal(t, "/home", seen.InitialDirectory)
	assert.Equal(t, "Text\ttxt", seen.Filters[0].Title)
	assert.Equal(t, AllowMultipleSelection, seen.Flags)
}

func TestSave(t *testing.T) {
	var seen Settings
	table := &native.Table{SaveFilePanel: fakePanel(t, "/out.txt", true, &seen)}
	path, err := Save(table, Settings{Title: "Save", Flags: OverwritePrompt})
	require.NoError(t, err)
	assert.Equal(t, "/out.txt", path)
	assert.Equal(t, OverwritePrompt, seen.Flags)
}

func TestPanelErrors(t *testing.T) {
	_, err := Open(&native.Table{}, Settings{})
	assert.ErrorIs(t, err, ErrUnavailable)
	_, err = Save(nil, Settings{})
	assert.ErrorIs(t, err, ErrUnavailable)

	var seen Settings
	_, err = Open(&native.Table{OpenFilePanel: fakePanel(t, "", false, &seen)}, Settings{})
	assert.ErrorIs(t, err, ErrCancelled)

	_, err = Open(&native.Table{OpenFilePanel: fakePanel(t, "  \n", true, &seen)}, Settings{})
	assert.ErrorIs(t, err, ErrCancelled)
}
