// Package config loads the organization configuration that drives one site stamping run.
//
// A configuration is an arbitrary JSON (or YAML) document; no schema is enforced.
// Downstream templates expect paths like site.name, site.description and site.url,
// but that is a soft contract the loader does not check.
package config
