//go:build windows

package native

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// dllLibrary is a library opened with LoadLibrary.
type dllLibrary struct {
	dll *windows.DLL
}

func openLibrary(path string) (Library, error) {
	dll, err := windows.LoadDLL(path)
	if err != nil {
		return nil, fmt.Errorf("LoadLibrary %s: %w", path, err)
	}
	return &dllLibrary{dll: dll}, nil
}

func (l *dllLibrary) Lookup(name string) (uintptr, error) {
	proc, err := l.dll.FindProc(name)
	if err != nil {
		return 0, err
	}
	return proc.Addr(), nil
}

func (l *dllLibrary) Close() error {
	if l.dll == nil {
		return nil
	}
	err := l.dll.Release()
	l.dll = nil
	return err
}
