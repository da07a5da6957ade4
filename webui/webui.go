// Package webui carries the embedded browser-facing documents: the connect
// page shown at "/" and the file-browser app at "/files".
package webui

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"

	qrcode "github.com/skip2/go-qrcode"

	"quickdrop/templates"
)

//go:embed connect.html
var connectHTML string

//go:embed files.html
var filesHTML []byte

// UI holds the parsed share pages. Parsing happens once at startup so a
// broken asset is a fatal configuration error before the server binds.
type UI struct {
	connect *template.Template
}

// New parses the embedded pages.
func New() (*UI, error) {
	tpl, err := templates.New("connect").Parse(connectHTML)
	if err != nil {
		return nil, fmt.Errorf("parsing connect page: %w", err)
	}
	return &UI{connect: tpl}, nil
}

// ConnectData feeds the connect page template.
type ConnectData struct {
	RootName string
	URL      string // share URL as reachable from other devices on the LAN
}

// RenderConnect writes the connect page for the given share.
func (u *UI) RenderConnect(w io.Writer, data ConnectData) error {
	return u.connect.Execute(w, data)
}

// FilesPage returns the file-browser document, served verbatim.
func (u *UI) FilesPage() []byte { return filesHTML }

// QRPNG renders url as a 256px QR code PNG for the connect page.
func QRPNG(url string) ([]byte, error) {
	return qrcode.Encode(url, qrcode.Medium, 256)
}
