// Package dialog opens the native file panels.
package dialog

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"unsafe"

	"github.com/bnema/uniwin/internal/logger"
	"github.com/bnema/uniwin/internal/native"
)

var (
	// ErrUnavailable is returned when the library has no file panel.
	ErrUnavailable = errors.New("file panel not available")
	// ErrCancelled is returned when the user closed the panel without a
	// selection.
	ErrCancelled = errors.New("file panel cancelled")
)

// ResultBufferSize is the size of the UTF-8 buffer the native panel writes
// into.
const ResultBufferSize = 4096

// Flag is a bit set of panel options.
type Flag int32

const (
	FileMustExist          Flag = 1
	FolderMustExist        Flag = 2
	AllowMultipleSelection Flag = 4
	CanCreateDirectories   Flag = 16
	OverwritePrompt        Flag = 256
	CreatePrompt           Flag = 512
	ShowHiddenFiles        Flag = 4096
	RetrieveLink           Flag = 8192
)

var flagNames = []struct {
	flag Flag
	name string
}{
	{FileMustExist, "file-must-exist"},
	{FolderMustExist, "folder-must-exist"},
	{AllowMultipleSelection, "multiple"},
	{CanCreateDirectories, "create-directories"},
	{OverwritePrompt, "overwrite-prompt"},
	{CreatePrompt, "create-prompt"},
	{ShowHiddenFiles, "show-hidden"},
	{RetrieveLink, "retrieve-link"},
}

func (f Flag) Has(flag Flag) bool {
	return f&flag != 0
}

// With returns f with flag set or cleared.
func (f Flag) With(flag Flag, on bool) Flag {
	if on {
		return f | flag
	}
	return f &^ flag
}

func (f Flag) String() string {
	if f == 0 {
		return "none"
	}
	var names []string
	for _, fn := range flagNames {
		if f.Has(fn.flag) {
			names = append(names, fn.name)
		}
	}
	return strings.Join(names, "|")
}

// Filter is one entry of the file-type drop-down.
type Filter struct {
	Title      string
	Extensions []string
}

// String renders the filter as the native side expects: the title and each
// extension separated by tabs.
func (f Filter) String() string {
	return strings.Join(append([]string{f.Title}, f.Extensions...), "\t")
}

// JoinFilters renders filters one per line.
func JoinFilters(filters []Filter) string {
	lines := make([]string, len(filters))
	for i, f := range filters {
		lines[i] = f.String()
	}
	return strings.Join(lines, "\n")
}

// ParseFilters reads filters written as "Title:ext1;ext2". Leading dots and
// blanks around extensions are dropped.
func ParseFilters(specs []string) ([]Filter, error) {
	filters := make([]Filter, 0, len(specs))
	for _, spec := range specs {
		title, exts, ok := strings.Cut(spec, ":")
		title = strings.TrimSpace(title)
		if !ok || title == "" {
			return nil, fmt.Errorf("invalid filter %q: want Title:ext1;ext2", spec)
		}
		f := Filter{Title: title}
		for _, ext := range strings.Split(exts, ";") {
			ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
			if ext != "" {
				f.Extensions = append(f.Extensions, ext)
			}
		}
		if len(f.Extensions) == 0 {
			return nil, fmt.Errorf("invalid filter %q: no extensions", spec)
		}
		filters = append(filters, f)
	}
	return filters, nil
}

// Settings describes a panel.
type Settings struct {
	Title            string
	Filters          []Filter
	InitialDirectory string
	InitialFile      string
	DefaultExtension string
	Flags            Flag
}

// panelSettings mirrors the native settings struct.
type panelSettings struct {
	structSize       int32
	flags            int32
	title            *native.Wchar
	filter           *native.Wchar
	initialFile      *native.Wchar
	initialDirectory *native.Wchar
	defaultExtension *native.Wchar
}

type panelFunc func(settings unsafe.Pointer, buf *byte, size int32) bool

// Open shows the open panel and returns the selected paths.
func Open(table *native.Table, s Settings) ([]string, error) {
	if table == nil || table.OpenFilePanel == nil {
		return nil, fmt.Errorf("open: %w", ErrUnavailable)
	}
	return run(table.OpenFilePanel, s)
}

// Save shows the save panel and returns the chosen path.
func Save(table *native.Table, s Settings) (string, error) {
	if table == nil || table.SaveFilePanel == nil {
		return "", fmt.Errorf("save: %w", ErrUnavailable)
	}
	paths, err := run(table.SaveFilePanel, s)
	if err != nil {
		return "", err
	}
	return paths[0], nil
}

func run(panel panelFunc, s Settings) ([]string, error) {
	var pinner runtime.Pinner
	defer pinner.Unpin()

	ps := panelSettings{
		structSize: int32(unsafe.Sizeof(panelSettings{})),
		flags:      int32(s.Flags),
	}
	fields := []struct {
		dst **native.Wchar
		src string
	}{
		{&ps.title, s.Title},
		{&ps.filter, JoinFilters(s.Filters)},
		{&ps.initialFile, s.InitialFile},
		{&ps.initialDirectory, s.InitialDirectory},
		{&ps.defaultExtension, s.DefaultExtension},
	}
	for _, f := range fields {
		units, err := native.EncodeWide(f.src)
		if err != nil {
			return nil, fmt.Errorf("panel settings: %w", err)
		}
		pinner.Pin(&units[0])
		*f.dst = &units[0]
	}
	pinner.Pin(&ps)

	buf := make([]byte, ResultBufferSize)
	logger.Debug("Opening file panel", "title", s.Title, "flags", s.Flags)
	if !panel(unsafe.Pointer(&ps), &buf[0], int32(len(buf))) {
		return nil, ErrCancelled
	}

	paths := ParseResult(buf)
	if len(paths) == 0 {
		return nil, ErrCancelled
	}
	return paths, nil
}

// ParseResult reads the NUL-terminated UTF-8 result buffer and splits it
// into paths, one per line.
func ParseResult(buf []byte) []string {
	if i := strings.IndexByte(string(buf), 0); i >= 0 {
		buf = buf[:i]
	}
	var paths []string
	for _, line := range strings.Split(string(buf), "\n") {
		if p := strings.TrimSpace(line); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}
