package persist

import (
	"github.com/magiconair/properties"
)

// ParseProperties reads Java .properties content. ${...} references are
// kept verbatim: they belong to the build tool, not to this reader.
func ParseProperties(data []byte) (map[string]string, error) {
	loader := &properties.Loader{
		Encoding:         properties.UTF8,
		DisableExpansion: true,
	}
	p, err := loader.LoadBytes(data)
	if err != nil {
		return nil, err
	}
	return p.Map(), nil
}
