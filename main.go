package main

import (
	"os"

	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/vietanh2810/event-registration-api/cmd/app"
)

//go:generate swag init --parseInternal -g main.go -o docs

// Injected via ldflags at build time.
var version = "dev"

// @title           Event Registration API
// @version         1.0
// @description     Registrations for solo participants and teams, with an admin dashboard.
// @termsOfService  http://swagger.io/terms/
// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io
//
// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html
//
// @BasePath  /api/v1
//
// @securityDefinitions.apikey AdminSession
// @in header
// @name Cookie
// @description Session cookie set by POST /admin/session
//
// @externalDocs.description  OpenAPI
// @externalDocs.url          https://swagger.io/resources/open-api/
func main() {
	app.SetVersion(version)
	if err := app.Execute(); err != nil {
		os.Exit(1)
	}
}
