package entity

type Kind int

const (
	KindFile Kind = iota
	KindFolder
)

// Entry is a single immediate child of a storage folder.
type Entry struct {
	ID   string // Opaque identifier understood by the lister (Drive file id or a path)
	Name string
	Kind Kind
}

func (e Entry) IsFolder() bool {
	return e.Kind == KindFolder
}

// NameDescriptor is what a folder or file name says about its position among siblings.
type NameDescriptor struct {
	Ordinal           int // Zero means the name carries no ordinal
	HasValidSeparator bool
}

func (d NameDescriptor) HasOrdinal() bool {
	return d.Ordinal > 0
}
