// Package cli wires the artifactsmith commands (configure, plan, watch) onto
// cobra and maps failures to process exit codes. Flags become an app.Config;
// everything past that is the app package's business.
package cli
