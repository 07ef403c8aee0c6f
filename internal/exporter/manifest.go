package exporter

// Manifest records where each deliverable ended up for one export run. An
// empty path means that format was not produced; per-format failure is not an
// export failure. Immutable once ExportAll returns.
type Manifest struct {
	VideoPath string // WebM, with audio when HasAudio is true
	GIFPath   string // silent raster loop
	WebPPath  string // silent animated still
	HasAudio  bool
	Reason    string // diagnostic, set when the export aborted entirely
}

// Empty reports whether no deliverable was produced at all, which only
// happens when the silent-video encode failed.
func (m Manifest) Empty() bool {
	return m.VideoPath == "" && m.GIFPath == "" && m.WebPPath == ""
}
