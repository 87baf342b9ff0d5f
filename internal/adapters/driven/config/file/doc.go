// Package file stores bdlens settings as TOML, by default in
// ~/.bdlens/config.toml.
package file
