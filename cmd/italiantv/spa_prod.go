//go:build !dev

package main

import (
	"io/fs"
	"log"
	"net/http"

	"github.com/DavideLaterza81/ItalianTV/internal/adapter/driver"
	"github.com/DavideLaterza81/ItalianTV/ui"
)

func newSPAHandler() http.Handler {
	distFS, err := fs.Sub(ui.DistFS, "dist")
	if err != nil {
		log.Fatalf("failed to create sub filesystem for web player: %v", err)
	}
	return driver.NewSPAHandler(distFS)
}
