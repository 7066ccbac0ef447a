package types

import (
	"github.com/killallgit/scriptify/internal/database"
	"github.com/killallgit/scriptify/internal/services/workspace"
	"github.com/killallgit/scriptify/pkg/download"
)

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	DB             *database.DB
	Workspace      *workspace.Workspace
	Downloader     *download.Downloader
	BackendName    string
	MaxUploadBytes int64
	Version        string
}
