package configure

const buildTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<project name="{{ xml (.Param "project") }}" default="{{ xml (.Param "target") }}" basedir="{{ .Param "ANT_BASEDIR" }}">
{{- range .Includes }}
  <property file="{{ .Path }}"/>
{{- end }}
{{- range .Emitted }}
  <property name="{{ .Name }}" value="{{ xml .Resolved }}"/>
{{- end }}
</project>
`

const libraryBlueprint = `
folder "lib" {
  path = "lib"
}
folder "conf" {
  path = "conf"
}

kind "library_build" {
  description = "ANT build file for a library"
  template    = "templates/build.xml.tmpl"

  param "project" {
    default = workspace.project_name
  }
  param "description" {}
  param "target" {
    default = "build"
  }
  param "ANT_BASEDIR" {
    default = "."
    path    = true
    emit    = false
  }
}

kind "prefs" {
  body = "{{ range .Emitted }}{{ .Name }}={{ .Resolved }}\n{{ end }}"

  param "src_dir" {
    default = "${workspace.project_dir}/src"
    path    = true
  }
  param "encoding" {
    default = upper(workspace.encoding)
  }
}

artifact "lib_build" {
  kind     = "library_build"
  folder   = "lib"
  file     = "build.xml"
  includes = ["prefs"]
}

artifact "prefs" {
  kind   = "prefs"
  folder = "conf"
  file   = "build.properties"
}
`

func libraryFiles() map[string]string {
	return map[string]string{
		"blueprint/main.hcl":                 libraryBlueprint,
		"blueprint/templates/build.xml.tmpl": buildTemplate,
		"workspace.yaml":                     "project_name: demo\nencoding: utf-8\n",
	}
}
