package form

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/smartfill/smartfill/internal/docx"
)

// lockFilePrefix marks the temporary owner files Word leaves next to an
// open document. They carry the .docx extension but are not documents.
const lockFilePrefix = "~$"

// Validator checks whether files are usable docx form documents
type Validator struct {
	maxFileSize int64
}

// NewValidator creates a new docx validator with the specified size limit
func NewValidator(maxFileSize int64) *Validator {
	return &Validator{maxFileSize: maxFileSize}
}

// ValidateFile performs full validation on a docx file, including opening
// the container and parsing its document body
func (v *Validator) ValidateFile(req DocxValidateFileRequest) (*DocxValidateFileResult, error) {
	if req.Path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	result := &DocxValidateFileResult{Path: req.Path}

	info, err := os.Stat(req.Path)
	if err != nil {
		result.Message = fmt.Sprintf("cannot access file: %v", err)
		return result, nil
	}

	if err := v.ValidateFileInfo(req.Path, info); err != nil {
		result.Message = err.Error()
		return result, nil
	}

	doc, err := docx.Open(req.Path)
	if err != nil {
		result.Message = fmt.Sprintf("not a readable docx document: %v", err)
		return result, nil
	}

	result.Valid = true
	result.Message = fmt.Sprintf("valid docx document with %d table(s)", len(doc.Tables()))
	return result, nil
}

// ValidateFileInfo performs quick validation using file metadata only,
// without opening the file
func (v *Validator) ValidateFileInfo(path string, info os.FileInfo) error {
	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file")
	}

	name := info.Name()
	if !strings.EqualFold(filepath.Ext(name), ".docx") {
		return fmt.Errorf("not a docx file: %s", name)
	}
	if strings.HasPrefix(name, lockFilePrefix) {
		return fmt.Errorf("temporary office lock file: %s", name)
	}

	if info.Size() == 0 {
		return fmt.Errorf("file is empty")
	}
	if v.maxFileSize > 0 && info.Size() > v.maxFileSize {
		return fmt.Errorf("file size %d exceeds limit %d", info.Size(), v.maxFileSize)
	}

	return nil
}

// IsValidDocx performs a quick validation check on a file
func (v *Validator) IsValidDocx(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return v.ValidateFileInfo(path, info) == nil
}
