package export

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
	"go.uber.org/zap"
)

// Select walks targetDir depth-first and returns the ordered candidate file
// list for the run. Excluded directories are pruned by bare name before
// descent, focus directories restrict which subtrees are visited, and
// per-directory failures are recorded without stopping the walk. The walk is
// lexical, so output order is stable across runs.
func Select(targetDir string, cfg Config, logger *zap.Logger) ([]string, []ErrorEntry) {
	var files []string
	var errs []ErrorEntry

	excludeDirs := make(map[string]bool, len(cfg.ExcludeDirs))
	for _, d := range cfg.ExcludeDirs {
		excludeDirs[d] = true
	}
	excludeFiles := make(map[string]bool, len(cfg.ExcludeFiles))
	for _, f := range cfg.ExcludeFiles {
		excludeFiles[f] = true
	}

	var matcher *ignore.GitIgnore
	if cfg.RespectGitignore {
		gitIgnorePath := filepath.Join(targetDir, ".gitignore")
		if _, err := os.Stat(gitIgnorePath); err == nil {
			m, err := ignore.CompileIgnoreFile(gitIgnorePath)
			if err != nil {
				logger.Warn("Failed to compile .gitignore", zap.String("path", gitIgnorePath), zap.Error(err))
				errs = append(errs, ErrorEntry{Path: gitIgnorePath, Reason: fmt.Sprintf("Failed to parse .gitignore (%v)", err)})
			} else {
				matcher = m
			}
		}
	}

	walkErr := filepath.WalkDir(targetDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("Error accessing path during selection", zap.String("path", path), zap.Error(err))
			errs = append(errs, ErrorEntry{Path: path, Reason: fmt.Sprintf("Failed to access (%v)", err)})
			return nil
		}
		if path == targetDir {
			return nil
		}

		rel, relErr := filepath.Rel(targetDir, path)
		if relErr != nil {
			errs = append(errs, ErrorEntry{Path: path, Reason: fmt.Sprintf("Failed to resolve relative path (%v)", relErr)})
			return nil
		}
		relSlash := filepath.ToSlash(rel)

		if d.IsDir() {
			if excludeDirs[d.Name()] {
				logger.Debug("Pruning excluded directory", zap.String("dir", relSlash))
				return fs.SkipDir
			}
			if matcher != nil && matcher.MatchesPath(relSlash) {
				logger.Debug("Pruning gitignored directory", zap.String("dir", relSlash))
				return fs.SkipDir
			}
			if len(cfg.FocusDirs) > 0 && !focusAllows(relSlash, cfg.FocusDirs) {
				logger.Debug("Pruning out-of-focus directory", zap.String("dir", relSlash))
				return fs.SkipDir
			}
			return nil
		}

		if matcher != nil && matcher.MatchesPath(relSlash) {
			return nil
		}
		name := strings.ToLower(d.Name())
		if !matchesExtensions(name, cfg.Extensions) {
			return nil
		}
		if excludeFiles[relSlash] {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if walkErr != nil {
		// WalkDir callbacks above never return an error, so this only fires
		// when the root itself cannot be statted.
		errs = append(errs, ErrorEntry{Path: targetDir, Reason: fmt.Sprintf("Failed to walk directory (%v)", walkErr)})
	}

	logger.Debug("Selection complete",
		zap.Int("candidates", len(files)),
		zap.Int("selectionErrors", len(errs)))
	return files, errs
}

// matchesExtensions reports whether the lowercased file name ends with one of
// the configured extensions while not being a minified variant (.min<ext>)
// of any of them.
func matchesExtensions(lowerName string, extensions []string) bool {
	matched := false
	for _, ext := range extensions {
		if strings.HasSuffix(lowerName, ".min"+ext) {
			return false
		}
		if strings.HasSuffix(lowerName, ext) {
			matched = true
		}
	}
	return matched
}

// focusAllows reports whether a directory (slash-normalized, relative to the
// target dir) may be visited under the focus rule: it must equal a focus
// entry, live under one, or be an ancestor of one so focus subtrees remain
// reachable.
func focusAllows(rel string, focusDirs []string) bool {
	for _, fd := range focusDirs {
		if fd == rel || strings.HasPrefix(rel, fd+"/") || strings.HasPrefix(fd, rel+"/") {
			return true
		}
	}
	return false
}
