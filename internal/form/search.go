package form

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Search handles docx discovery operations
type Search struct {
	maxFileSize int64
	validator   *Validator
}

// NewSearch creates a new docx search handler with the specified constraints
func NewSearch(maxFileSize int64) *Search {
	return &Search{
		maxFileSize: maxFileSize,
		validator:   NewValidator(maxFileSize),
	}
}

// isPathWithinDirectory checks if a path is within the specified directory
func (s *Search) isPathWithinDirectory(path, directory string) (bool, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false, fmt.Errorf("failed to resolve path: %w", err)
	}

	absDir, err := filepath.Abs(directory)
	if err != nil {
		return false, fmt.Errorf("failed to resolve directory: %w", err)
	}

	// Evaluate any symlinks to get the real path
	realPath, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return false, fmt.Errorf("failed to evaluate symlinks: %w", err)
		}
		realPath = absPath
	}

	realDir, err := filepath.EvalSymlinks(absDir)
	if err != nil {
		return false, fmt.Errorf("failed to evaluate directory symlinks: %w", err)
	}

	realPath = filepath.Clean(realPath)
	realDir = filepath.Clean(realDir)

	if !strings.HasSuffix(realDir, string(filepath.Separator)) {
		realDir += string(filepath.Separator)
	}

	return strings.HasPrefix(realPath, realDir) || realPath == strings.TrimSuffix(realDir, string(filepath.Separator)), nil
}

// SearchDirectory searches for docx files in the specified directory
func (s *Search) SearchDirectory(req DocxSearchDirectoryRequest) (*DocxSearchDirectoryResult, error) {
	if req.Directory == "" {
		return nil, fmt.Errorf("directory cannot be empty")
	}

	if _, err := os.Stat(req.Directory); os.IsNotExist(err) {
		return nil, fmt.Errorf("directory does not exist: %s", req.Directory)
	}

	var docxFiles []FileInfo
	query := strings.ToLower(strings.TrimSpace(req.Query))

	absDirectory, err := filepath.Abs(req.Directory)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory path: %w", err)
	}

	err = filepath.Walk(absDirectory, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			// Continue walking even if we encounter an error with a specific file
			return nil //nolint:nilerr // Intentionally continue on file errors
		}

		// Security check: ensure path is within the searched directory
		withinDir, err := s.isPathWithinDirectory(path, absDirectory)
		if err != nil || !withinDir {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.IsDir() {
			return nil
		}

		if !s.isDocxFile(info.Name()) {
			return nil
		}

		// Quick validation without opening the file
		if err := s.validator.ValidateFileInfo(path, info); err != nil {
			return nil //nolint:nilerr // Intentionally continue on validation errors
		}

		if query != "" && !s.matchesQuery(info.Name(), query) {
			return nil
		}

		docxFiles = append(docxFiles, FileInfo{
			Path:         path,
			Name:         info.Name(),
			Size:         info.Size(),
			ModifiedTime: info.ModTime().Format("2006-01-02 15:04:05"),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking directory: %w", err)
	}

	return &DocxSearchDirectoryResult{
		Files:       docxFiles,
		TotalCount:  len(docxFiles),
		Directory:   absDirectory,
		SearchQuery: req.Query,
	}, nil
}

// FindDocxInDirectoryLimited finds docx files in a directory with a limit
// on the number of results
func (s *Search) FindDocxInDirectoryLimited(directory string, limit int) ([]FileInfo, error) {
	if directory == "" {
		return nil, fmt.Errorf("directory cannot be empty")
	}

	if _, err := os.Stat(directory); os.IsNotExist(err) {
		return nil, fmt.Errorf("directory does not exist: %s", directory)
	}

	var docxFiles []FileInfo

	absDirectory, err := filepath.Abs(directory)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory path: %w", err)
	}

	err = filepath.WalkDir(absDirectory, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // Intentionally continue on file errors
		}

		withinDir, err := s.isPathWithinDirectory(path, absDirectory)
		if err != nil || !withinDir {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			// Skip hidden directories to improve performance
			if strings.HasPrefix(d.Name(), ".") && path != absDirectory {
				return filepath.SkipDir
			}
			return nil
		}

		if limit > 0 && len(docxFiles) >= limit {
			return filepath.SkipAll
		}

		if !s.isDocxFile(d.Name()) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil //nolint:nilerr // Intentionally continue on file errors
		}

		if err := s.validator.ValidateFileInfo(path, info); err != nil {
			return nil //nolint:nilerr // Intentionally continue on validation errors
		}

		docxFiles = append(docxFiles, FileInfo{
			Path:         path,
			Name:         info.Name(),
			Size:         info.Size(),
			ModifiedTime: info.ModTime().Format("2006-01-02 15:04:05"),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking directory: %w", err)
	}

	return docxFiles, nil
}

// CountDocxInDirectory counts the number of valid docx files in a directory
func (s *Search) CountDocxInDirectory(directory string) (int, error) {
	result, err := s.SearchDirectory(DocxSearchDirectoryRequest{Directory: directory})
	if err != nil {
		return 0, err
	}
	return result.TotalCount, nil
}

// isDocxFile checks if a file looks like a real docx document by name
func (s *Search) isDocxFile(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".docx") &&
		!strings.HasPrefix(filename, lockFilePrefix)
}

// matchesQuery performs fuzzy matching on the filename
func (s *Search) matchesQuery(filename, query string) bool {
	if query == "" {
		return true
	}

	fileName := strings.ToLower(filename)
	if strings.Contains(fileName, query) {
		return true
	}

	nameWithoutExt := strings.TrimSuffix(fileName, ".docx")
	if strings.Contains(nameWithoutExt, query) {
		return true
	}

	// Word-based matching: every query word must appear in some filename word
	words := splitIntoWords(nameWithoutExt)
	for _, queryWord := range splitIntoWords(query) {
		found := false
		for _, word := range words {
			if strings.Contains(word, queryWord) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

// splitIntoWords splits a string into words using common separators
func splitIntoWords(text string) []string {
	separators := []string{" ", "_", "-", ".", "(", ")", "[", "]"}

	words := []string{text}
	for _, sep := range separators {
		var newWords []string
		for _, word := range words {
			for _, part := range strings.Split(word, sep) {
				if part != "" {
					newWords = append(newWords, strings.ToLower(part))
				}
			}
		}
		words = newWords
	}

	return words
}
