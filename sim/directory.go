package sim

import "sort"

// FileEntry is the directory record of one file: its name, its size in data
// blocks and where the allocator placed it.
type FileEntry struct {
	Name   string
	Size   int
	Layout Layout
}

// Directory maps file names to their entries. Owned by a single Simulator.
type Directory struct {
	entries map[string]FileEntry
}

// NewDirectory returns an empty directory.
func NewDirectory() *Directory {
	return &Directory{entries: make(map[string]FileEntry)}
}

// Lookup returns the entry for name and whether it exists.
func (d *Directory) Lookup(name string) (FileEntry, bool) {
	e, ok := d.entries[name]
	if !ok {
		return FileEntry{}, false
	}
	e.Layout = e.Layout.clone()
	return e, true
}

// Contains reports whether name is present.
func (d *Directory) Contains(name string) bool {
	_, ok := d.entries[name]
	return ok
}

func (d *Directory) put(e FileEntry) {
	d.entries[e.Name] = e
}

func (d *Directory) remove(name string) {
	delete(d.entries, name)
}

// Len returns the number of files.
func (d *Directory) Len() int {
	return len(d.entries)
}

// Entries returns all entries sorted by name.
func (d *Directory) Entries() []FileEntry {
	out := make([]FileEntry, 0, len(d.entries))
	for _, e := range d.entries {
		e.Layout = e.Layout.clone()
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
