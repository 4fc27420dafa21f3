package hcl

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/leowmjw/go-radial-chronology/pkg/temporal"
)

// MergeHCLFiles combines multiple HCL files into a single HCL file body.
// This mimics how Terraform loads multiple .tf files in a directory, so a
// long manuscript can keep each act's scenes in its own file.
func MergeHCLFiles(filePaths []string) (*hcl.File, error) {
	parser := hclparse.NewParser()
	var mergedContent bytes.Buffer

	for _, path := range filePaths {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", path, err)
		}

		mergedContent.Write(content)
		mergedContent.WriteString("\n")
	}

	filename := "merged.hcl"
	file, diags := parser.ParseHCL(mergedContent.Bytes(), filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse merged HCL content: %s", diags.Error())
	}

	return file, nil
}

// ParseHCLDirectory parses all .hcl files in a directory and returns a
// merged layout request.
func ParseHCLDirectory(dirPath string) (*temporal.LayoutRequest, error) {
	hclFiles, err := FindHCLFiles(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory %s: %w", dirPath, err)
	}

	if len(hclFiles) == 0 {
		return nil, fmt.Errorf("no HCL files found in directory %s", dirPath)
	}

	mergedFile, err := MergeHCLFiles(hclFiles)
	if err != nil {
		return nil, err
	}

	return parseTimelineFromFile(mergedFile)
}

// FindHCLFiles finds all HCL files under a directory.
func FindHCLFiles(dirPath string) ([]string, error) {
	var files []string

	err := filepath.Walk(dirPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.HasSuffix(info.Name(), ".hcl") {
			files = append(files, path)
		}
		return nil
	})

	return files, err
}
