package inspector

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/viant/conformer/inspector/python"
	"github.com/viant/conformer/model"
)

// Inspector provides an interface for building structural source models
type Inspector interface {
	// InspectSource parses source code from a byte slice and extracts class information
	InspectSource(src []byte) (*model.SourceFile, error)

	// InspectFile parses a source file and extracts class information
	InspectFile(filename string) (*model.SourceFile, error)
}

// Factory creates appropriate inspectors based on language
type Factory struct{}

// NewFactory creates a new inspector factory
func NewFactory() *Factory {
	return &Factory{}
}

// GetInspector returns an appropriate inspector based on file extension
func (f *Factory) GetInspector(filename string) (Inspector, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".py":
		return python.NewInspector(), nil
	default:
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}
}

// InspectFile is a convenience method that gets the appropriate inspector and inspects the file
func (f *Factory) InspectFile(filename string) (*model.SourceFile, error) {
	inspector, err := f.GetInspector(filename)
	if err != nil {
		return nil, err
	}
	return inspector.InspectFile(filename)
}

// InspectSource is a convenience method that inspects in-memory source,
// using filename to select the language and to name the resulting model
func (f *Factory) InspectSource(filename string, src []byte) (*model.SourceFile, error) {
	inspector, err := f.GetInspector(filename)
	if err != nil {
		return nil, err
	}
	aFile, err := inspector.InspectSource(src)
	if err != nil {
		return nil, err
	}
	aFile.Name = filepath.Base(filename)
	aFile.Path = filename
	return aFile, nil
}
