package icon

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const desktopEntrySection = "[Desktop Entry]"

// FallbackThemes are searched after any configured themes
var FallbackThemes = []string{"hicolor", "breeze", "Adwaita", "gnome", "oxygen", "Papirus"}

var (
	// Largest first
	iconSizes = []string{
		"scalable", "512x512", "256x256", "128x128", "96x96",
		"64x64", "48x48", "32x32", "24x24", "16x16",
	}
	iconContexts   = []string{"apps", "applications", "mimetypes", "places", "devices"}
	iconExtensions = []string{".svg", ".png", ".xpm"}

	// Searched below every data dir, in order. A trailing partial name
	// ("org.kde.") is a file name prefix.
	desktopPrefixes = []string{"applications/", "applications/kde/", "applications/org.kde."}
)

// Finder locates desktop entries and icon files on disk
type Finder struct {
	// DataDirs are XDG data directories; desktop files live below applications/
	DataDirs []string
	// IconDirs are icon roots such as /usr/share/icons. A root ending in
	// "pixmaps" is also searched directly.
	IconDirs []string
	// Themes are searched in order
	Themes []string
}

// NewFinder builds a Finder from the environment. extraThemes are searched
// before the fallback themes.
func NewFinder(extraThemes []string) Finder {
	return Finder{
		DataDirs: DataDirs(),
		IconDirs: DefaultIconDirs(),
		Themes:   dedupe(append(append([]string{}, extraThemes...), FallbackThemes...)),
	}
}

// DataDirs returns $HOME/.local/share followed by $XDG_DATA_DIRS
// (default /usr/local/share:/usr/share), without duplicates.
func DataDirs() []string {
	var dirs []string
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".local", "share"))
	}

	xdg := os.Getenv("XDG_DATA_DIRS")
	if xdg == "" {
		xdg = "/usr/local/share:/usr/share"
	}
	for _, dir := range strings.Split(xdg, ":") {
		if dir != "" {
			dirs = append(dirs, dir)
		}
	}
	return dedupe(dirs)
}

// DefaultIconDirs returns the user icon directories that exist followed by
// the system icon directories.
func DefaultIconDirs() []string {
	var dirs []string
	if home, err := os.UserHomeDir(); err == nil {
		for _, dir := range []string{
			filepath.Join(home, ".local", "share", "icons"),
			filepath.Join(home, ".icons"),
		} {
			if isDir(dir) {
				dirs = append(dirs, dir)
			}
		}
	}
	return append(dirs, "/usr/share/icons", "/usr/local/share/icons", "/usr/share/pixmaps")
}

// Find resolves an application id to an icon path. Without a desktop file
// the id itself is looked up as an icon name. Returns "" if nothing matches.
func (f Finder) Find(appID string) string {
	desktopFile := f.FindDesktopFile(appID)
	if desktopFile == "" {
		return f.FindIconInTheme(appID)
	}

	value, err := ParseIconFromDesktopFile(desktopFile)
	if err != nil || value == "" {
		return ""
	}
	return f.ResolveIconPath(value, filepath.Dir(desktopFile))
}

// FindDesktopFile returns the first desktop file for appID that declares an
// icon, or "" if none does.
func (f Finder) FindDesktopFile(appID string) string {
	if appID == "" {
		return ""
	}
	lower := strings.ToLower(appID)

	var candidates []string
	for _, dataDir := range f.DataDirs {
		for _, prefix := range desktopPrefixes {
			subdir, namePrefix := splitPrefix(prefix)
			dir := filepath.Join(dataDir, subdir)
			if !isDir(dir) {
				continue
			}

			for _, name := range []string{appID, lower} {
				path := filepath.Join(dir, namePrefix+name+".desktop")
				if isFile(path) {
					candidates = append(candidates, path)
				}
			}
			candidates = append(candidates, matchDesktopFiles(dir, namePrefix, lower)...)
		}
	}

	seen := make(map[string]bool)
	for _, candidate := range candidates {
		if seen[candidate] {
			continue
		}
		seen[candidate] = true
		if value, err := ParseIconFromDesktopFile(candidate); err == nil && value != "" {
			return candidate
		}
	}
	return ""
}

// matchDesktopFiles lists files in dir named <namePrefix>*<substr>*.desktop,
// sorted by name
func matchDesktopFiles(dir, namePrefix, substr string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var matches []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, namePrefix) || !strings.HasSuffix(name, ".desktop") {
			continue
		}
		stem := strings.TrimSuffix(strings.TrimPrefix(name, namePrefix), ".desktop")
		if strings.Contains(stem, substr) {
			matches = append(matches, filepath.Join(dir, name))
		}
	}
	sort.Strings(matches)
	return matches
}

// ParseIconFromDesktopFile returns the Icon= value of the [Desktop Entry]
// section, or "" if it has none.
func ParseIconFromDesktopFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open desktop file: %w", err)
	}
	defer file.Close()

	inEntry := false
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if line == desktopEntrySection {
			inEntry = true
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			if inEntry {
				break
			}
			continue
		}

		if inEntry && strings.HasPrefix(line, "Icon=") {
			return strings.TrimSpace(line[len("Icon="):]), nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to read desktop file: %w", err)
	}
	return "", nil
}

// ResolveIconPath turns an Icon= value into a file path. Absolute values
// must exist, values containing a slash are relative to desktopDir, anything
// else is an icon name looked up in the themes.
func (f Finder) ResolveIconPath(value, desktopDir string) string {
	switch {
	case value == "":
		return ""
	case filepath.IsAbs(value):
		if isFile(value) {
			return value
		}
		return ""
	case strings.Contains(value, "/"):
		path := filepath.Join(desktopDir, value)
		if !isFile(path) {
			return ""
		}
		if resolved, err := filepath.EvalSymlinks(path); err == nil {
			return resolved
		}
		return path
	default:
		return f.FindIconInTheme(value)
	}
}

// FindIconInTheme searches <iconDir>/<theme>/<size>/<context>/<name><ext>
// across every combination, then pixmaps directories directly.
func (f Finder) FindIconInTheme(name string) string {
	if name == "" {
		return ""
	}
	variants := nameVariants(name)

	for _, iconDir := range f.IconDirs {
		for _, theme := range f.Themes {
			for _, size := range iconSizes {
				for _, context := range iconContexts {
					base := filepath.Join(iconDir, theme, size, context)
					if path := findWithExtensions(base, variants); path != "" {
						return path
					}
				}
			}
		}

		if filepath.Base(iconDir) == "pixmaps" {
			if path := findWithExtensions(iconDir, variants); path != "" {
				return path
			}
		}
	}
	return ""
}

func findWithExtensions(dir string, variants []string) string {
	if !isDir(dir) {
		return ""
	}
	for _, variant := range variants {
		for _, ext := range iconExtensions {
			path := filepath.Join(dir, variant+ext)
			if isFile(path) {
				return path
			}
		}
	}
	return ""
}

// nameVariants returns name, its lowercase form and name with a lowercase
// first letter
func nameVariants(name string) []string {
	return dedupe([]string{
		name,
		strings.ToLower(name),
		strings.ToLower(name[:1]) + name[1:],
	})
}

func splitPrefix(prefix string) (dir, namePrefix string) {
	i := strings.LastIndex(prefix, "/")
	return prefix[:i], prefix[i+1:]
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := items[:0:0]
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Overrides consults a fixed appID -> icon table before falling back to Finder.
// Override values are resolved like Icon= values.
type Overrides struct {
	Icons  map[string]string
	Finder Finder
}

// Find implements Resolver
func (o Overrides) Find(appID string) string {
	if value, ok := o.Icons[appID]; ok {
		return o.Finder.ResolveIconPath(value, "")
	}
	return o.Finder.Find(appID)
}
