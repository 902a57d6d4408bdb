// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the configuration shared by the CLI and the export
// pipeline.
package types

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// MaxIndent bounds the indentation width of exported documents.
const MaxIndent = 8

// FetchConfig holds settings for reading documents over HTTP.
type FetchConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// MaxRetries is the number of retries on HTTP 429 and 5xx (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// HistoryConfig controls the export ledger.
type HistoryConfig struct {
	// Enabled records each completed export in the ledger.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Path is the SQLite database file.
	Path string `json:"path" yaml:"path"`
}

// ExportConfig holds the settings for one folder export.
type ExportConfig struct {
	// Source is the library document: a file path or an http(s) URL.
	Source string `json:"source" yaml:"source"`

	// FolderID is the folder to export. It has no default.
	FolderID string `json:"folder_id" yaml:"folder_id"`

	// Subdirectories includes the folder's descendants and their content
	// (default true).
	Subdirectories bool `json:"subdirectories" yaml:"subdirectories"`

	// OutputDir is where the exported document is written (default ".").
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Indent is the indentation width of the output; 0 keeps the source
	// whitespace.
	Indent int `json:"indent" yaml:"indent"`

	Fetch   FetchConfig   `json:"fetch" yaml:"fetch"`
	History HistoryConfig `json:"history" yaml:"history"`
}

// Validate checks that the configuration can drive an export.
func (c ExportConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Source, validation.Required),
		validation.Field(&c.FolderID, validation.Required),
		validation.Field(&c.OutputDir, validation.Required),
		validation.Field(&c.Indent, validation.Min(0), validation.Max(MaxIndent)),
		validation.Field(&c.Fetch),
		validation.Field(&c.History),
	)
}

// Validate checks the fetch settings.
func (c FetchConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Timeout, validation.Min(time.Duration(0))),
		validation.Field(&c.MaxRetries, validation.Min(0), validation.Max(10)),
	)
}

// Validate requires a database path when history is enabled.
func (c HistoryConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Path, validation.When(c.Enabled, validation.Required)),
	)
}
