package persist

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/artifactsmith/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, data, 0o644))
	return p
}

var libNames = []string{"project", "description", "target", "src_dir"}

func TestRead_Missing(t *testing.T) {
	res := NewReader().Read(context.Background(), filepath.Join(t.TempDir(), "build.xml"), libNames)
	assert.Equal(t, StatusMissing, res.Status)
	assert.NoError(t, res.Err)
	assert.Nil(t, res.Values)
}

func TestRead_Formats(t *testing.T) {
	testCases := []struct {
		name    string
		file    string
		content string
		want    map[string]string
	}{
		{
			name: "ant xml",
			file: "build.xml",
			content: `<?xml version="1.0" encoding="UTF-8"?>
<project name="demo" default="build">
  <property name="project" value="demo"/>
  <property name="description" value="Demo library"/>
  <property name="src_dir" location="../src"/>
  <property name="obsolete" value="gone"/>
</project>`,
			want: map[string]string{"project": "demo", "description": "Demo library", "src_dir": "../src"},
		},
		{
			name: "pom properties",
			file: "pom.xml",
			content: `<project>
  <properties>
    <project> demo </project>
    <target>dist</target>
  </properties>
</project>`,
			want: map[string]string{"project": "demo", "target": "dist"},
		},
		{
			name:    "properties keeps references verbatim",
			file:    "lib.properties",
			content: "# generated\nproject=demo\ntarget=${build.dir}/out\nunknown=1\n",
			want:    map[string]string{"project": "demo", "target": "${build.dir}/out"},
		},
		{
			name:    "hcl",
			file:    "lib.hcl",
			content: "project = \"demo\"\ndescription = \"Demo library\"\ntarget = 3\n",
			want:    map[string]string{"project": "demo", "description": "Demo library", "target": "3"},
		},
		{
			name:    "yaml",
			file:    "lib.yaml",
			content: "project: demo\ntarget: build\nnested:\n  a: b\n",
			want:    map[string]string{"project": "demo", "target": "build"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := writeFile(t, tc.file, []byte(tc.content))
			res := NewReader().Read(context.Background(), p, libNames)
			require.Equal(t, StatusRead, res.Status, "err: %v", res.Err)
			assert.Equal(t, tc.want, res.Values)
		})
	}
}

func TestRead_Latin1XML(t *testing.T) {
	doc := `<?xml version="1.0" encoding="ISO-8859-1"?>
<project><property name="description" value="Bibliothèque"/></project>`
	encoded, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(doc))
	require.NoError(t, err)

	p := writeFile(t, "build.xml", encoded)
	res := NewReader().Read(context.Background(), p, libNames)
	require.Equal(t, StatusRead, res.Status, "err: %v", res.Err)
	assert.Equal(t, "Bibliothèque", res.Values["description"])
}

func TestRead_Unreadable(t *testing.T) {
	testCases := []struct {
		name    string
		file    string
		content string
	}{
		{name: "truncated xml", file: "build.xml", content: `<project><property name="a" value="b"/>`},
		{name: "mismatched tags", file: "build.xml", content: `<project></target>`},
		{name: "no root", file: "build.xml", content: `<?xml version="1.0"?>`},
		{name: "unknown charset", file: "build.xml", content: `<?xml version="1.0" encoding="EBCDIC"?><project/>`},
		{name: "empty", file: "build.xml", content: "   \n"},
		{name: "hcl with block", file: "lib.hcl", content: "block {\n}\n"},
		{name: "hcl with reference", file: "lib.hcl", content: "project = var.name\n"},
		{name: "yaml list", file: "lib.yaml", content: "- a\n- b\n"},
		{name: "unknown extension", file: "lib.txt", content: "project=demo"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := writeFile(t, tc.file, []byte(tc.content))
			res := NewReader().Read(context.Background(), p, libNames)
			assert.Equal(t, StatusUnreadable, res.Status)
			assert.ErrorIs(t, res.Err, errs.ErrPersistedUnreadable)
			assert.Nil(t, res.Values)
		})
	}
}

func TestRead_PanickingParserIsContained(t *testing.T) {
	r := NewReader()
	r.Register(".boom", func([]byte) (map[string]string, error) { panic("bad parser") })
	p := writeFile(t, "x.boom", []byte("content"))

	res := r.Read(context.Background(), p, libNames)
	assert.Equal(t, StatusUnreadable, res.Status)
	assert.ErrorContains(t, res.Err, "parser panicked")
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "missing", StatusMissing.String())
	assert.Equal(t, "read", StatusRead.String())
	assert.Equal(t, "unreadable", StatusUnreadable.String())
}
