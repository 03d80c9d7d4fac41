package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/vidhyutcables/player-card/internal/api"
	"github.com/vidhyutcables/player-card/internal/assets"
	"github.com/vidhyutcables/player-card/internal/card"
	"github.com/vidhyutcables/player-card/internal/scout"
	"github.com/vidhyutcables/player-card/internal/util"
)

func main() {
	assetDir := os.Getenv("ASSET_DIR")
	if assetDir == "" {
		assetDir = "assets"
	}
	if err := util.EnsureDir(assetDir); err != nil {
		log.Fatal(err)
	}

	resolver := assets.NewResolver()
	if err := resolver.LoadOverridesDir(assetDir); err != nil {
		log.Println("Warning: failed to load local overrides:", err)
	}

	compositor, err := card.New(resolver, card.DefaultLayout(), nil)
	if err != nil {
		log.Fatal(err)
	}

	s := &api.Server{
		Compositor: compositor,
		Scout:      scout.New(os.Getenv("SCOUT_URL")),
	}

	r := gin.Default()
	api.RegisterRoutes(r, s)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("starting server on http://localhost:" + port)
	if err := r.Run(":" + port); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
