package fileserver

import (
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
)

// ServeDownload streams a resolved file as an attachment. The content type
// comes from the file extension with a generic binary fallback, and the
// Content-Disposition header carries both a quoted filename and the RFC 5987
// encoded form so non-ASCII names survive every client.
//
// The file is re-opened here, so a path that vanished (or turned into a
// directory) between resolve and serve maps to a transient error rather
// than a panic or a directory dump.
func ServeDownload(w http.ResponseWriter, r *http.Request, file Resolved) error {
	f, err := os.Open(file.FSPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Error(KindTransient, err)
		}
		return Error(KindUnreadable, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Error(KindTransient, err)
	}
	if info.IsDir() {
		return Errorf(KindTransient, "%q became a directory", file.VirtualPath)
	}

	name := info.Name()
	ctype := mime.TypeByExtension(filepath.Ext(name))
	if ctype == "" {
		ctype = "application/octet-stream"
	}
	w.Header().Set("Content-Type", ctype)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q; filename*=UTF-8''%s", name, url.PathEscape(name)))

	// ServeContent streams from the open handle; a client disconnect simply
	// aborts the copy for this request.
	http.ServeContent(w, r, name, info.ModTime(), f)
	return nil
}
