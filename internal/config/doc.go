// Package config defines the format-agnostic blueprint model: artifact kinds
// with their parameter schemas, the folder layout, and the artifact slots
// wired together by includes. It also defines the Loader interface.
//
// The `config.Model` is the single source of truth for the `folder`,
// `provider` and `generator` packages. Concrete loaders, such as the HCL
// one, live in separate packages.
package config
