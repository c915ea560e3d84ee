// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-markup/internal/fileutil"
)

// DetectContainer reports whether the process runs in a container and
// which signal gave it away. Replaced in tests.
var DetectContainer = func() (bool, string) {
	if fileutil.FileExists("/.dockerenv") {
		return true, "/.dockerenv"
	}
	// Podman, systemd-nspawn
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// CIVariables are set by common CI providers.
var CIVariables = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}

// InCI reports whether any CI provider variable is set.
func InCI() bool {
	for _, name := range CIVariables {
		if os.Getenv(name) != "" {
			return true
		}
	}
	return false
}

// SandboxLikelyBlocked reports whether Chrome probably cannot start with its
// sandbox: inside CI or a container, with ROD_NO_SANDBOX unset.
func SandboxLikelyBlocked() bool {
	inContainer, _ := DetectContainer()
	return (InCI() || inContainer) && os.Getenv("ROD_NO_SANDBOX") != "1"
}

// ForBrowserConnect returns hints for browser launch errors during PDF output.
func ForBrowserConnect() string {
	var hints []string
	if SandboxLikelyBlocked() {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}
	return formatHints(hints)
}

// ForTimeout returns a hint about increasing the PDF timeout.
func ForTimeout() string {
	return format("for large documents, raise --timeout or pdf.timeout")
}

// ForConfigNotFound suggests --config and, when one was searched, the user
// config file location.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	marker := "go-markup" + string(filepath.Separator)
	for _, p := range searchedPaths {
		if strings.Contains(p, marker) {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForAssetNotFound lists the built-in names of the missing asset kind.
func ForAssetNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", ") + "; or pass a file path")
}

// ForInvalidTemplate reminds the user of the required template markers.
func ForInvalidTemplate() string {
	return format("a page template needs exactly one {{TITLE}} and one {{BODY}}")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
