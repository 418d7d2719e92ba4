package app

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/codingsince1985/checksum"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// File describes a regular file left in a temporary directory.
type File struct {
	Path string `yaml:"path"`
	Size int64  `yaml:"size"`
	Sha  string `yaml:"sha256"`
}

// Inventory lists the regular files found below Root.
type Inventory struct {
	Root  string `yaml:"root"`
	Files []File `yaml:"files"`
}

// BuildInventory collects the regular files below root with their checksums.
// Symbolic links and directories are skipped.
func (a *App) BuildInventory(root string) (Inventory, error) {
	inventory := Inventory{Root: root, Files: []File{}}

	matches, err := a.globber.Glob(filepath.Join(root, "**", "*"))
	if err != nil {
		if !os.IsNotExist(err) {
			return Inventory{}, err
		}
		matches = nil
	}

	prefix := root + string(filepath.Separator)

	for _, match := range matches {
		info, err := lstat(a.fs, match)
		if err != nil {
			return Inventory{}, err
		}
		if !info.Mode().IsRegular() {
			continue
		}

		sha256sum, err := checksum.SHA256sum(match)
		if err != nil {
			return Inventory{}, err
		}

		inventory.Files = append(inventory.Files, File{
			Path: strings.TrimPrefix(match, prefix),
			Size: info.Size(),
			Sha:  sha256sum,
		})
	}

	sort.Slice(inventory.Files, func(i, j int) bool {
		return inventory.Files[i].Path < inventory.Files[j].Path
	})

	return inventory, nil
}

// printInventory writes the inventory of root to the output as YAML.
func (a *App) printInventory(root string) error {
	inventory, err := a.BuildInventory(root)
	if err != nil {
		return err
	}

	a.logger.Infof("===> Found %d file(s) in [%s]", len(inventory.Files), cyan(root))

	encoder := yaml.NewEncoder(a.out)
	encoder.SetIndent(2)
	if err := encoder.Encode(inventory); err != nil {
		return err
	}

	return encoder.Close()
}

func lstat(fsys afero.Fs, path string) (os.FileInfo, error) {
	if l, ok := fsys.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(path)
		return info, err
	}
	return fsys.Stat(path)
}
