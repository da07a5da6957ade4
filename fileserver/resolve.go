package fileserver

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Resolved is the outcome of mapping a virtual request path onto the shared
// root: a canonical absolute filesystem path plus its stat classification.
type Resolved struct {
	// FSPath is the canonical absolute path with native separators.
	// Symlinks, "." and ".." are fully resolved.
	FSPath string

	// VirtualPath is the cleaned slash-separated request path relative to
	// the root. Empty means the root itself.
	VirtualPath string

	Info os.FileInfo

	// root is the canonical shared root this path was resolved against,
	// kept so the lister can apply the same containment rule to symlinked
	// children.
	root string
}

// IsDir reports whether the resolved path is a directory.
func (r Resolved) IsDir() bool { return r.Info.IsDir() }

// CleanVirtualPath takes a client path like "", ".", "/a/b", "a//b/../c" and
// returns a slash-based, no-leading-slash relative path ("" means root).
// Backslashes are treated as separators so Windows-style probes cannot smuggle
// segments past the cleaner.
//
// Leading slashes are root-relative, so they are stripped rather than
// rejected. ".." segments that survive cleaning are deliberately kept: the
// caller must reject them, never clamp them back into the root.
func CleanVirtualPath(p string) string {
	p = strings.TrimSpace(p)
	p = strings.ReplaceAll(p, "\\", "/")
	p = strings.TrimLeft(p, "/")
	if p == "" {
		return ""
	}
	p = path.Clean(p)
	if p == "." {
		return ""
	}
	return p
}

// Resolve maps an untrusted virtual path onto root and canonicalizes the
// result. root must itself be absolute and canonical (see config.Finalize).
//
// This is the sole security boundary of the server: any input that would
// land outside root — including via a symlink whose target escapes it —
// comes back as a Forbidden error, never silently clamped. Missing paths are
// NotFound; everything else that blocks the stat is Unreadable.
func Resolve(root, virtualPath string) (Resolved, error) {
	if strings.ContainsRune(virtualPath, 0) {
		return Resolved{}, Errorf(KindForbidden, "NUL byte in request path")
	}

	rel := CleanVirtualPath(virtualPath)

	// Cleaning resolves ".." that stays inside the path, so a non-local
	// remainder means the path tries to climb out of the root
	// (see https://github.com/golang/go/issues/56336#issuecomment-1416214885).
	if rel != "" && !filepath.IsLocal(rel) {
		return Resolved{}, Errorf(KindForbidden, "unsafe path %q", virtualPath)
	}

	joined := filepath.Join(root, filepath.FromSlash(rel))

	canonical, err := filepath.EvalSymlinks(joined)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Resolved{}, Error(KindNotFound, err)
		}
		return Resolved{}, Error(KindUnreadable, err)
	}

	if !within(root, canonical) {
		return Resolved{}, Errorf(KindForbidden, "%q resolves outside the shared folder", virtualPath)
	}

	info, err := os.Stat(canonical)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Resolved{}, Error(KindNotFound, err)
		}
		return Resolved{}, Error(KindUnreadable, err)
	}

	return Resolved{FSPath: canonical, VirtualPath: rel, Info: info, root: root}, nil
}

// within reports whether p equals root or is a descendant of it. The check
// is on the segment boundary: "/shared2" must not pass for root "/shared".
func within(root, p string) bool {
	if p == root {
		return true
	}
	// A root that already ends in a separator (sharing "/" itself, or a
	// Windows drive root like `C:\`) must not grow a second one.
	if strings.HasSuffix(root, string(filepath.Separator)) {
		return strings.HasPrefix(p, root)
	}
	return strings.HasPrefix(p, root+string(filepath.Separator))
}
