package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/uniwin/internal/dialog"
	"github.com/bnema/uniwin/internal/logger"
)

var (
	panelTitle     string
	panelFilters   []string
	panelDir       string
	panelFile      string
	panelExt       string
	panelMultiple  bool
	panelMustExist bool
	panelOverwrite bool
	panelHidden    bool
)

var openFileCmd = &cobra.Command{
	Use:   "open-file",
	Short: "Show the native open-file panel",
	Long: `Show the native open-file panel and print each chosen path on its own line.
Filters take the form "Title:ext1;ext2".`,
	RunE: runOpenFile,
}

var saveFileCmd = &cobra.Command{
	Use:   "save-file",
	Short: "Show the native save-file panel",
	RunE:  runSaveFile,
}

func init() {
	for _, c := range []*cobra.Command{openFileCmd, saveFileCmd} {
		flags := c.Flags()
		flags.StringVar(&panelTitle, "title", "", "Panel title")
		flags.StringArrayVar(&panelFilters, "filter", nil, `File type filter, e.g. "Images:png;jpg" (repeatable)`)
		flags.StringVar(&panelDir, "dir", "", "Initial directory")
		flags.StringVar(&panelFile, "file", "", "Initial file name")
		flags.StringVar(&panelExt, "ext", "", "Default extension")
		flags.BoolVar(&panelHidden, "show-hidden", false, "Show hidden files")
		rootCmd.AddCommand(c)
	}
	openFileCmd.Flags().BoolVar(&panelMultiple, "multiple", false, "Allow selecting several files")
	openFileCmd.Flags().BoolVar(&panelMustExist, "must-exist", false, "Only accept existing files")
	saveFileCmd.Flags().BoolVar(&panelOverwrite, "overwrite-prompt", false, "Confirm before overwriting")
}

func panelSettings() (dialog.Settings, error) {
	filters, err := dialog.ParseFilters(panelFilters)
	if err != nil {
		return dialog.Settings{}, err
	}

	var flags dialog.Flag
	flags = flags.With(dialog.AllowMultipleSelection, panelMultiple)
	flags = flags.With(dialog.FileMustExist, panelMustExist)
	flags = flags.With(dialog.OverwritePrompt, panelOverwrite)
	flags = flags.With(dialog.ShowHiddenFiles, panelHidden)

	return dialog.Settings{
		Title:            panelTitle,
		Filters:          filters,
		InitialDirectory: panelDir,
		InitialFile:      panelFile,
		DefaultExtension: panelExt,
		Flags:            flags,
	}, nil
}

func runOpenFile(cmd *cobra.Command, args []string) error {
	settings, err := panelSettings()
	if err != nil {
		return err
	}

	b, err := loadLibrary()
	if err != nil {
		return err
	}
	defer unloadLibrary(b)

	paths, err := dialog.Open(b.Table(), settings)
	if errors.Is(err, dialog.ErrCancelled) {
		logger.Info("Open panel cancelled")
		return nil
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, p := range paths {
		fmt.Fprintln(out, p)
	}
	return nil
}

func runSaveFile(cmd *cobra.Command, args []string) error {
	settings, err := panelSettings()
	if err != nil {
		return err
	}

	b, err := loadLibrary()
	if err != nil {
		return err
	}
	defer unloadLibrary(b)

	path, err := dialog.Save(b.Table(), settings)
	if errors.Is(err, dialog.ErrCancelled) {
		logger.Info("Save panel cancelled")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
