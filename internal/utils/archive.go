package utils

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

/**
 * Extract a zip archive into a directory
 * @param {string} zipPath - Path of the zip file
 * @param {string} destDir - Directory to extract into (created if missing)
 * @returns {error} Returns error on read, traversal or write failure
 * @description
 * - Entries escaping destDir are rejected
 * - File modes are preserved for regular files
 */
func ExtractZip(zipPath, destDir string) error {
	reader, err := zip.OpenReader(zipPath)
	if err != nil {
		return fmt.Errorf("ExtractZip('%s'): %v", zipPath, err)
	}
	defer reader.Close()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("ExtractZip: MkdirAll('%s') error: %v", destDir, err)
	}

	for _, f := range reader.File {
		target := filepath.Join(destDir, filepath.FromSlash(f.Name))
		if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
			return fmt.Errorf("ExtractZip: illegal path '%s' in archive", f.Name)
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return err
		}
		src, err := f.Open()
		if err != nil {
			return fmt.Errorf("ExtractZip: open entry '%s' error: %v", f.Name, err)
		}
		dst, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, f.Mode())
		if err != nil {
			src.Close()
			return fmt.Errorf("ExtractZip: create('%s') error: %v", target, err)
		}
		_, err = io.Copy(dst, src)
		src.Close()
		dst.Close()
		if err != nil {
			return fmt.Errorf("ExtractZip: copy to '%s' error: %v", target, err)
		}
	}
	return nil
}

/**
 * Locate the single top-level directory of an extracted zipball
 * @param {string} dir - Extraction directory
 * @returns {string} Path of the top directory, or dir itself when the
 *                   archive has no single wrapping directory
 * @description
 * - Store zipballs wrap the repository in "<repo>/" or "<repo>-<ref>/"
 */
func ArchiveRoot(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	if len(entries) == 1 && entries[0].IsDir() {
		return filepath.Join(dir, entries[0].Name()), nil
	}
	return dir, nil
}

/**
 * Find a directory by relative path anywhere under root
 * @param {string} root - Directory to search
 * @param {string} rel - Relative path to look for (e.g. "custom_components/zing_dimmer")
 * @returns {string} Absolute path of the first match, "" when not found
 */
func FindDir(root, rel string) string {
	var found string
	filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil || found != "" {
			return filepath.SkipDir
		}
		if info.IsDir() && strings.HasSuffix(filepath.ToSlash(path), "/"+filepath.ToSlash(rel)) {
			found = path
			return filepath.SkipDir
		}
		return nil
	})
	if found == "" {
		direct := filepath.Join(root, filepath.FromSlash(rel))
		if info, err := os.Stat(direct); err == nil && info.IsDir() {
			return direct
		}
	}
	return found
}

/**
 * Copy a directory tree, replacing the destination
 * @param {string} src - Source directory
 * @param {string} dst - Destination directory (removed first)
 * @returns {error} Returns error on filesystem failure
 */
func CopyTree(src, dst string) error {
	if err := os.RemoveAll(dst); err != nil {
		return fmt.Errorf("CopyTree: RemoveAll('%s') error: %v", dst, err)
	}
	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if info.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		return copyFile(path, target, info.Mode())
	})
}

/**
 * Copy selected files from a directory into a destination directory
 * @param {[]string} files - Absolute paths of the files to copy
 * @param {string} dst - Destination directory (replaced)
 */
func CopyFiles(files []string, dst string) error {
	if err := os.RemoveAll(dst); err != nil {
		return fmt.Errorf("CopyFiles: RemoveAll('%s') error: %v", dst, err)
	}
	if err := os.MkdirAll(dst, 0755); err != nil {
		return err
	}
	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil {
			return err
		}
		if err := copyFile(f, filepath.Join(dst, filepath.Base(f)), info.Mode()); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.Copy(out, in)
	return err
}

/**
 * Collect files under dir matching an extension, non-recursively
 */
func ListFilesByExt(dir, ext string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(strings.ToLower(e.Name()), ext) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return files
}
