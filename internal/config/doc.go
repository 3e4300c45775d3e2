// Package config persists the importer's settings: the shared OAuth client
// configuration, vault and template locations, the email storage layout,
// and the account collection with per-account serialized tokens.
package config
