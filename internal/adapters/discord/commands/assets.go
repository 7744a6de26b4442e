package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const lennyFace = "( ͡° ͜ʖ ͡°)"

// Assets are the static files shipped in the data directory.
type Assets struct {
	Lewd    []string
	Kanna   []string
	Karen   []string
	Ayaya   string
	Chensaw string
}

// LoadAssets reads the data directory. Missing files leave the matching
// field empty.
func LoadAssets(dir string) (*Assets, error) {
	lewd, err := readLines(filepath.Join(dir, "lewd.txt"))
	if err != nil {
		return nil, err
	}

	kanna, err := listImages(filepath.Join(dir, "kanna"))
	if err != nil {
		return nil, err
	}
	karen, err := listImages(filepath.Join(dir, "karen"))
	if err != nil {
		return nil, err
	}

	return &Assets{
		Lewd:    append(lewd, lennyFace),
		Kanna:   kanna,
		Karen:   karen,
		Ayaya:   existing(filepath.Join(dir, "ayaya.png")),
		Chensaw: existing(filepath.Join(dir, "chensaw.gif")),
	}, nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return lines, nil
}

func listImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

func existing(path string) string {
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
