/*
Package nodeid provides the canonical identifiers used for blueprint
entities, in the form `<kind>.<name>`, e.g. `artifact.lib_build` or
`folder.feature_root`.

Centralising formatting and parsing here keeps graph keys, log attributes
and report rows consistent.
*/
package nodeid
