// Package hcl_adapter loads blueprint files written in HCL and translates
// them into the format-agnostic config.Model.
//
// A blueprint declares three block types:
//
//	kind "library_build" {
//	  template = "templates/library_build.xml.tmpl"
//	  param "project" { default = workspace.project_name }
//	  param "src_dir" {
//	    default = "${workspace.project_dir}/src"
//	    path    = true
//	  }
//	}
//
//	folder "lib" {
//	  path = "lib"
//	}
//
//	artifact "lib_build" {
//	  kind     = "library_build"
//	  folder   = "lib"
//	  file     = "build.xml"
//	  includes = ["prefs"]
//	}
//
// Parameter defaults stay unevaluated hcl.Expression values; the provider
// evaluates them against workspace state on every configure pass.
package hcl_adapter
