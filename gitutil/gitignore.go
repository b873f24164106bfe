package gitutil

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/AlecAivazis/survey/v2"
)

// askChoice prompts for one of the options. Tests replace it.
var askChoice = func(message string, options []string) (string, error) {
	var choice string
	prompt := &survey.Select{
		Message: message,
		Options: options,
	}
	if err := survey.AskOne(prompt, &choice); err != nil {
		return "", err
	}
	return choice, nil
}

// IsIgnored checks if a path is covered by .gitignore
func IsIgnored(path string) bool {
	return exec.Command("git", "check-ignore", "-q", path).Run() == nil
}

// IsGitRepo checks if the current directory is inside a git repository
func IsGitRepo() bool {
	return exec.Command("git", "rev-parse", "--git-dir").Run() == nil
}

// EnsureGitignored asks whether an output path that git would track should be
// added to the repository .gitignore, either as a file or as its directory.
// Outside a git repository it does nothing.
func EnsureGitignored(out io.Writer, outputPath string) error {
	if !IsGitRepo() || IsIgnored(outputPath) {
		return nil
	}

	root, err := gitRoot()
	if err != nil {
		return fmt.Errorf("failed to find git root: %w", err)
	}

	// .gitignore entries are relative to the repository root, not the working directory
	relPath, err := relativeTo(root, outputPath)
	if err != nil {
		return err
	}
	relDir := path.Dir(relPath)

	addFile := fmt.Sprintf("Add file (%s)", relPath)
	addDir := fmt.Sprintf("Add directory (%s/)", relDir)
	options := []string{addFile, addDir, "Skip"}
	// Ignoring the root directory would ignore the whole repository
	if relDir == "." {
		options = []string{addFile, "Skip"}
	}

	choice, err := askChoice(
		fmt.Sprintf("Output %q is not in .gitignore. Add to .gitignore?", outputPath),
		options,
	)
	if err != nil {
		return fmt.Errorf("gitignore prompt failed: %w", err)
	}

	var entry string
	switch choice {
	case addFile:
		entry = relPath
	case addDir:
		entry = relDir + "/"
	default:
		return nil
	}

	added, err := AppendEntry(filepath.Join(root, ".gitignore"), entry)
	if err != nil {
		return err
	}
	if added {
		fmt.Fprintf(out, "Added %q to .gitignore\n", entry)
	}
	return nil
}

// AppendEntry adds entry as a new line of the .gitignore at path, creating the
// file when needed. It returns false when the entry is already listed.
func AppendEntry(path, entry string) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to read .gitignore: %w", err)
	}

	lines := strings.Split(string(content), "\n")
	if slices.ContainsFunc(lines, func(line string) bool {
		return strings.TrimSpace(line) == entry
	}) {
		return false, nil
	}

	var buf bytes.Buffer
	if len(content) > 0 && content[len(content)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteString(entry)
	buf.WriteByte('\n')

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return false, fmt.Errorf("failed to open .gitignore: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(buf.Bytes()); err != nil {
		return false, fmt.Errorf("failed to write to .gitignore: %w", err)
	}
	return true, nil
}

// relativeTo returns target as a slash separated path relative to root.
// Symlinks are resolved on both sides since git reports the resolved root.
func relativeTo(root, target string) (string, error) {
	abs, err := filepath.Abs(target)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", target, err)
	}
	if resolved, err := filepath.EvalSymlinks(filepath.Dir(abs)); err == nil {
		abs = filepath.Join(resolved, filepath.Base(abs))
	}
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}

	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside the git repository %s", target, root)
	}
	return filepath.ToSlash(rel), nil
}

func gitRoot() (string, error) {
	output, err := exec.Command("git", "rev-parse", "--show-toplevel").Output()
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(output), "\r\n"), nil
}
