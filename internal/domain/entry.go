package domain

import "path/filepath"

// FileEntry is a document found under the source root.
type FileEntry struct {
	Path         string // absolute path of the file
	RelDir       string // directory of the file relative to the source root
	Organization string
}

// NewFileEntry builds an entry and derives its organization.
func NewFileEntry(path, relDir string) FileEntry {
	return FileEntry{
		Path:         path,
		RelDir:       relDir,
		Organization: ExtractOrganization(relDir, filepath.Base(path)),
	}
}

// Name is the file's base name.
func (e FileEntry) Name() string {
	return filepath.Base(e.Path)
}

// DateToken is the date segment of the entry's directory, if any.
func (e FileEntry) DateToken() string {
	return ExtractDateToken(e.RelDir)
}

// MoveRequest asks a Mover to relocate one file into a destination folder.
type MoveRequest struct {
	Source       string
	Folder       string
	Organization string
	DateToken    string
}

// RequestFor builds the move request for an entry routed to folder.
func (e FileEntry) RequestFor(folder string) MoveRequest {
	return MoveRequest{
		Source:       e.Path,
		Folder:       folder,
		Organization: e.Organization,
		DateToken:    e.DateToken(),
	}
}
