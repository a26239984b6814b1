package repository

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
)

// Detector identifies project root folders and provides project-related information
type Detector struct {
	// Common project root marker files/directories
	markers []string
}

// New creates a new project detector instance
func New() *Detector {
	return &Detector{
		markers: []string{
			"pyproject.toml",   // Python projects
			"setup.py",         // Python projects (legacy packaging)
			"setup.cfg",        // Python projects (legacy packaging)
			"requirements.txt", // Python projects
			".git",             // Generic VCS marker
		},
	}
}

// DetectProject identifies the project root for the given file path and returns project info
func (d *Detector) DetectProject(filePath string) (*Project, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, err
	}

	// If the path is a directory, start from there; otherwise from its parent
	startDir := absPath
	fileInfo, err := os.Stat(absPath)
	if err != nil {
		return nil, err
	}
	if !fileInfo.IsDir() {
		startDir = filepath.Dir(absPath)
	}

	rootPath, marker := d.findProjectRoot(startDir)

	info := &Project{
		Type:     "unknown",
		RootPath: absPath,
	}
	if rootPath != "" {
		info.RootPath = rootPath
		info.Type = determineProjectType(marker)
	}

	relPath, err := filepath.Rel(info.RootPath, absPath)
	if err != nil {
		relPath = filepath.Base(absPath)
	}
	info.RelativePath = filepath.ToSlash(relPath)

	if rootPath != "" {
		info.Name = d.extractProjectName(rootPath, info.Type)
	}
	return info, nil
}

// findProjectRoot searches up from the current directory for project markers
func (d *Detector) findProjectRoot(startDir string) (string, string) {
	dir := startDir
	for {
		for _, marker := range d.markers {
			markerPath := filepath.Join(dir, marker)
			if _, err := os.Stat(markerPath); err == nil {
				return dir, marker
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			// We've reached the filesystem root with no match
			break
		}
		dir = parent
	}
	return "", ""
}

// extractProjectName attempts to extract a project name from configuration files
func (d *Detector) extractProjectName(rootPath string, projectType string) string {
	switch projectType {
	case "python":
		if name := extractPyProjectName(filepath.Join(rootPath, "pyproject.toml")); name != "" {
			return name
		}
		return extractSetupName(rootPath)
	case "git":
		return extractGitProjectName(rootPath)
	default:
		return filepath.Base(rootPath)
	}
}

// pyProject maps the subset of pyproject.toml carrying the project name,
// in either PEP 621 or poetry layout.
type pyProject struct {
	Project struct {
		Name string `toml:"name"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Name string `toml:"name"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

func extractPyProjectName(pyprojectPath string) string {
	var parsed pyProject
	if _, err := toml.DecodeFile(pyprojectPath, &parsed); err != nil {
		return ""
	}
	if parsed.Project.Name != "" {
		return parsed.Project.Name
	}
	return parsed.Tool.Poetry.Name
}

func extractSetupName(rootPath string) string {
	setupPath := filepath.Join(rootPath, "setup.py")
	if data, err := os.ReadFile(setupPath); err == nil {
		nameRegex := regexp.MustCompile(`name\s*=\s*["']([^"']+)["']`)
		if matches := nameRegex.FindSubmatch(data); len(matches) >= 2 {
			return string(matches[1])
		}
	}
	// Fall back to directory name
	return filepath.Base(rootPath)
}

func extractGitProjectName(gitRoot string) string {
	if origin := extractGitOrigin(gitRoot); origin != "" {
		origin = strings.TrimSuffix(origin, ".git")
		parts := strings.Split(origin, "/")
		if len(parts) > 0 {
			return parts[len(parts)-1]
		}
	}
	return filepath.Base(gitRoot)
}

// extractGitOrigin extracts the origin URL from git config
func extractGitOrigin(gitRoot string) string {
	configPath := filepath.Join(gitRoot, ".git", "config")
	file, err := os.Open(configPath)
	if err != nil {
		return ""
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	foundRemote := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.Contains(line, "[remote \"origin\"]") {
			foundRemote = true
			continue
		}
		if foundRemote && strings.HasPrefix(line, "url = ") {
			return strings.TrimPrefix(line, "url = ")
		}
	}
	return ""
}

// determineProjectType identifies the type of project based on the marker file
func determineProjectType(marker string) string {
	switch marker {
	case "pyproject.toml", "setup.py", "setup.cfg", "requirements.txt":
		return "python"
	case ".git":
		return "git" // Generic project with version control
	default:
		return "unknown"
	}
}
