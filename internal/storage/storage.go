package storage

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Tiliavir/dietwatch/internal/model"
)

// BaseDir returns the root of the diet cache (~/.dietwatch/diets).
func BaseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".dietwatch", "diets"), nil
}

// userFilePath returns the path of the cache file for userID. The ID is
// escaped so it can never leave base.
func userFilePath(base, userID string) string {
	name := url.PathEscape(userID)
	if name == "" || strings.Trim(name, ".") == "" {
		name = "_" + name
	}
	return filepath.Join(base, name+".json")
}

// LoadUser loads the cached diets of userID. Returns an empty UserFile if none is cached.
func LoadUser(base, userID string) (model.UserFile, error) {
	path := userFilePath(base, userID)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return model.UserFile{UserID: userID, Diets: []model.Diet{}}, nil
	}
	if err != nil {
		return model.UserFile{}, fmt.Errorf("storage error reading %s: %w", path, err)
	}

	var uf model.UserFile
	if err := json.Unmarshal(data, &uf); err != nil {
		// Back up corrupt file and abort.
		backupPath := path + ".corrupt"
		_ = os.Rename(path, backupPath)
		return model.UserFile{}, fmt.Errorf("corrupt JSON in %s (backed up to %s): %w", path, backupPath, err)
	}
	if uf.Diets == nil {
		uf.Diets = []model.Diet{}
	}
	return uf, nil
}

// SaveUser atomically writes the cache file of uf.UserID.
func SaveUser(base string, uf model.UserFile) error {
	path := userFilePath(base, uf.UserID)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("storage error creating directories: %w", err)
	}

	data, err := json.MarshalIndent(uf, "", "  ")
	if err != nil {
		return fmt.Errorf("storage error marshalling JSON: %w", err)
	}

	// Atomic write: write to temp file then rename.
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("storage error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error renaming temp file: %w", err)
	}
	return nil
}

// UpsertDiet replaces or appends d in its user's cache file.
func UpsertDiet(base string, d model.Diet) error {
	uf, err := LoadUser(base, d.UserID)
	if err != nil {
		return err
	}
	for i, e := range uf.Diets {
		if e.ID == d.ID {
			uf.Diets[i] = d
			return SaveUser(base, uf)
		}
	}
	uf.Diets = append(uf.Diets, d)
	return SaveUser(base, uf)
}

// RemoveDiet deletes dietID from userID's cache file. It reports whether the
// diet was cached.
func RemoveDiet(base, userID, dietID string) (bool, error) {
	uf, err := LoadUser(base, userID)
	if err != nil {
		return false, err
	}
	for i, e := range uf.Diets {
		if e.ID == dietID {
			uf.Diets = append(uf.Diets[:i], uf.Diets[i+1:]...)
			return true, SaveUser(base, uf)
		}
	}
	return false, nil
}

// listUserFiles returns the cache files under base in name order.
func listUserFiles(base string) ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(base, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("storage error listing %s: %w", base, err)
	}
	sort.Strings(paths)
	return paths, nil
}

func readUserFile(path string) (model.UserFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.UserFile{}, fmt.Errorf("storage error reading %s: %w", path, err)
	}
	var uf model.UserFile
	if err := json.Unmarshal(data, &uf); err != nil {
		return model.UserFile{}, fmt.Errorf("corrupt JSON in %s: %w", path, err)
	}
	return uf, nil
}

// LoadAll returns every cached diet of every user, ordered by user file name
// and then by stored order.
func LoadAll(base string) ([]model.Diet, error) {
	paths, err := listUserFiles(base)
	if err != nil {
		return nil, err
	}
	diets := []model.Diet{}
	for _, p := range paths {
		uf, err := readUserFile(p)
		if err != nil {
			return nil, err
		}
		diets = append(diets, uf.Diets...)
	}
	return diets, nil
}

// FindDiet searches all cache files for dietID. It returns nil if the diet is
// not cached.
func FindDiet(base, dietID string) (*model.Diet, error) {
	paths, err := listUserFiles(base)
	if err != nil {
		return nil, err
	}
	for _, p := range paths {
		uf, err := readUserFile(p)
		if err != nil {
			return nil, err
		}
		for i := range uf.Diets {
			if uf.Diets[i].ID == dietID {
				return &uf.Diets[i], nil
			}
		}
	}
	return nil, nil
}
