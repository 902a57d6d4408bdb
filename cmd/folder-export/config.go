// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/folder-export/internal/storage"
	"github.com/pdiddy/folder-export/pkg/types"
)

const (
	defaultTimeout     = 60 * time.Second
	defaultUserAgent   = "folder-export/0.1"
	defaultHistoryPath = ".folder-export/history.db"
)

// envKeyReplacer maps nested keys such as history.path to
// FOLDER_EXPORT_HISTORY_PATH.
var envKeyReplacer = strings.NewReplacer(".", "_")

func init() {
	viper.SetDefault("history.enabled", true)
	viper.SetDefault("history.path", defaultHistoryPath)
	viper.SetDefault("fetch.timeout", defaultTimeout)
	viper.SetDefault("fetch.max_retries", 3)
	viper.SetDefault("fetch.user_agent", defaultUserAgent)
}

// bindFlag ties a command flag to a viper key so config files and
// FOLDER_EXPORT_* variables can supply it.
func bindFlag(cmd *cobra.Command, key, flag string) {
	if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
		panic(err)
	}
}

// exportConfig resolves the export settings from flags, environment and
// config file, in that order of precedence.
func exportConfig(cmd *cobra.Command) types.ExportConfig {
	source, _ := cmd.Flags().GetString("file")
	folderID, _ := cmd.Flags().GetString("folder")
	noHistory, _ := cmd.Flags().GetBool("no-history")

	return types.ExportConfig{
		Source:         source,
		FolderID:       folderID,
		Subdirectories: viper.GetBool("subdirectories"),
		OutputDir:      viper.GetString("output_dir"),
		Indent:         viper.GetInt("indent"),
		Fetch:          fetchConfig(),
		History: types.HistoryConfig{
			Enabled: viper.GetBool("history.enabled") && !noHistory,
			Path:    viper.GetString("history.path"),
		},
	}
}

func fetchConfig() types.FetchConfig {
	timeout := viper.GetDuration("fetch.timeout")
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return types.FetchConfig{
		Timeout:    timeout,
		MaxRetries: viper.GetInt("fetch.max_retries"),
		UserAgent:  viper.GetString("fetch.user_agent"),
	}
}

// userAgentTransport sets the User-Agent header on every request.
type userAgentTransport struct {
	agent string
	base  http.RoundTripper
}

func (t userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", t.agent)
	return t.base.RoundTrip(req)
}

// newSource returns a document source reading local paths from the host
// filesystem and URLs over HTTP.
func newSource(cfg types.FetchConfig) storage.Source {
	return storage.Source{
		FS: osfs.New("/"),
		Client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: userAgentTransport{agent: cfg.UserAgent, base: http.DefaultTransport},
		},
		MaxRetries: cfg.MaxRetries,
	}
}
