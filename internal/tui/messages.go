package tui

import (
	"github.com/lowpixelmildorbit/ai-database-tsukuba/internal/catalog"
)

type catalogLoadedMsg struct {
	catalog *catalog.Catalog
}

type openErrMsg struct {
	err error
}
