package app

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/shini4i/tempdirectory/internal/tempdir"
	"golang.org/x/sync/errgroup"
)

const pruneWorkers = 4

// Prune finds directories under the temp base that were created by a
// tempdir handle and are older than MaxAge, then removes them. With DryRun
// the directories are only reported. The stale paths are returned sorted.
func (a *App) Prune() ([]string, error) {
	stale, err := a.findStale()
	if err != nil {
		return nil, err
	}

	if len(stale) == 0 {
		a.logger.Infof("No stale directories found in [%s]", cyan(a.cfg.TempBase))
		return nil, nil
	}

	if a.cfg.DryRun {
		a.logger.Infof("The following %d directories would be removed:", len(stale))
		for _, path := range stale {
			a.logger.Infof("▶ %s", yellow(path))
		}
		return stale, nil
	}

	var (
		mu   sync.Mutex
		errs []error
		g    errgroup.Group
	)
	g.SetLimit(pruneWorkers)

	for _, path := range stale {
		path := path
		g.Go(func() error {
			a.logger.Infof("===> Removing stale directory [%s]", cyan(path))
			if err := tempdir.RemoveRecursiveFs(a.fs, path); err != nil {
				a.logger.Errorf("▶ %s", red(err))
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	return stale, errors.Join(errs...)
}

func (a *App) findStale() ([]string, error) {
	matches, err := a.globber.Glob(filepath.Join(a.cfg.TempBase, "*-*-*"))
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		matches = nil
	}

	now := a.clock.Now()

	var stale []string
	for _, match := range matches {
		subdir, ok := tempdir.ParseSubdir(filepath.Base(match))
		if !ok {
			continue
		}

		info, err := lstat(a.fs, match)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		if !info.IsDir() {
			continue
		}

		if now.Sub(subdir.Timestamp) < a.cfg.MaxAge {
			a.logger.Debugf("Skipping [%s], created %s ago", match, now.Sub(subdir.Timestamp))
			continue
		}

		stale = append(stale, match)
	}

	sort.Strings(stale)

	return stale, nil
}
