package nodeid

// Kind is the entity family an address belongs to.
type Kind string

const (
	KindArtifact Kind = "artifact"
	KindFolder   Kind = "folder"
)

// Address identifies one blueprint entity.
type Address struct {
	Kind Kind
	Name string
}

// Artifact returns the address of the named artifact.
func Artifact(name string) Address {
	return Address{Kind: KindArtifact, Name: name}
}

// Folder returns the address of the named folder.
func Folder(name string) Address {
	return Address{Kind: KindFolder, Name: name}
}
