package fileserver

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Entry describes one immediate child of a shared directory. Path is the
// entry's own virtual path, always slash-separated regardless of host OS.
type Entry struct {
	Name         string `json:"name"`
	Path         string `json:"path"`
	IsDir        bool   `json:"is_dir"`
	Size         int64  `json:"size"`
	LastModified int64  `json:"last_modified"`

	modTime time.Time
}

// HumanSize returns the size as a human-readable string, like "12 MB".
// Directories report an empty string.
func (e Entry) HumanSize() string {
	if e.IsDir {
		return ""
	}
	return humanize.Bytes(uint64(e.Size))
}

// HumanModTime returns the modification time as a relative string,
// like "3 days ago".
func (e Entry) HumanModTime() string {
	return humanize.Time(e.modTime)
}

// Listing is the enumeration of a directory's immediate children, built
// fresh per request. Directories sort before files; each group is ordered
// case-insensitively by name.
type Listing struct {
	// VirtualPath of the listed directory; "" is the share root.
	VirtualPath string

	Entries []Entry

	// ParentPath points at the listed directory's parent. Meaningful only
	// when HasParent is set, i.e. when VirtualPath is non-empty.
	ParentPath string
	HasParent  bool

	NumDirs  int
	NumFiles int
}

// List enumerates the immediate children of a resolved directory. Children
// whose metadata cannot be read (vanished mid-listing, special files,
// dangling symlinks) are skipped: a partial listing beats a failed one.
// Symlinks to targets inside the share are listed with the target's
// metadata; symlinks pointing outside it are omitted entirely.
func List(dir Resolved) (*Listing, error) {
	if !dir.IsDir() {
		return nil, Errorf(KindNotFound, "%q is not a directory", dir.VirtualPath)
	}

	children, err := os.ReadDir(dir.FSPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, Error(KindNotFound, err)
		}
		return nil, Error(KindUnreadable, err)
	}

	listing := &Listing{
		VirtualPath: dir.VirtualPath,
		Entries:     make([]Entry, 0, len(children)),
	}
	if dir.VirtualPath != "" {
		listing.HasParent = true
		listing.ParentPath = parentPath(dir.VirtualPath)
	}

	for _, child := range children {
		full := filepath.Join(dir.FSPath, child.Name())

		// DirEntry.Info has lstat semantics, which would classify a
		// symlink by the link itself. Entries must describe what a
		// download of them would serve, so follow the link, but only
		// when its target stays inside the share; anything else would
		// list an entry that access then forbids.
		if child.Type()&fs.ModeSymlink != 0 {
			target, err := filepath.EvalSymlinks(full)
			if err != nil || !within(dir.root, target) {
				continue
			}
		}

		info, err := os.Stat(full)
		if err != nil {
			continue
		}
		entry := Entry{
			Name:         child.Name(),
			Path:         joinVirtual(dir.VirtualPath, child.Name()),
			IsDir:        info.IsDir(),
			LastModified: info.ModTime().Unix(),
			modTime:      info.ModTime(),
		}
		if entry.IsDir {
			listing.NumDirs++
		} else {
			entry.Size = info.Size()
			listing.NumFiles++
		}
		listing.Entries = append(listing.Entries, entry)
	}

	sort.SliceStable(listing.Entries, func(i, j int) bool {
		a, b := listing.Entries[i], listing.Entries[j]
		if a.IsDir != b.IsDir {
			return a.IsDir
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})

	return listing, nil
}

func joinVirtual(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "/" + name
}

func parentPath(virtual string) string {
	p := path.Dir(virtual)
	if p == "." || p == "/" {
		return ""
	}
	return p
}
