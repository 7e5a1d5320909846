// Package rexscli holds the shared command-line configuration for the
// REXS model tools: database directory selection, strict/relaxed mode,
// custom extension mappings (from repeated -m flags or a YAML mapping
// file), and recursive model-file discovery.
//
// Flag names are customizable through [Flags], values are plain fields
// of [Config], and RegisterFlags/RegisterCompletions wire everything onto
// a cobra command.
package rexscli
