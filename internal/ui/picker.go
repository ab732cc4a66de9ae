package ui

import (
	"errors"

	"github.com/charmbracelet/huh"
)

// SelectFiles runs a standalone multi-select prompt outside the full-screen
// app. The cmd layer uses it for one-shot staging from the terminal.
func SelectFiles(title string, files []string) ([]string, error) {
	if len(files) == 0 {
		return nil, errors.New("nothing to select")
	}

	options := make([]huh.Option[string], 0, len(files))
	for _, file := range files {
		options = append(options, huh.NewOption(file, file))
	}

	var selected []string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title(title).
				Options(options...).
				Value(&selected),
		),
	).WithTheme(huh.ThemeCatppuccin())

	if err := form.Run(); err != nil {
		return nil, err
	}
	return selected, nil
}
