// Package main is the entry point for the proposal-service application.
//
// @title           Proposal Service API
// @version         1.0.0
// @description     API for computing quantitative material quotes for roofing proposals.
//
//	The service resolves a roof's dimensions against a material system's
//	composition and prices each line against the product catalog.
//
// @termsOfService  http://swagger.io/terms/
//
// @contact.name   API Support
// @contact.email  engenharia@construsol.com.br
// @contact.url    https://github.com/construsol/proposal-service
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @tag.name        Quotes
// @tag.description Quote computation and audit history
//
// @tag.name        Compositions
// @tag.description Composition and line item management
//
// @tag.name        Catalog
// @tag.description Product catalog lookups
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	_ "github.com/construsol/proposal-service/docs" // swagger docs

	"github.com/construsol/proposal-service/config"
	"github.com/construsol/proposal-service/internal/app"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()

	router, cleanup := app.InitializeApp(cfg)
	defer cleanup()

	server := app.NewServer(router, cfg.Server.Port)

	if err := server.Run(); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
