// @title           Courses REST API
// @version         1.0
// @description     REST API for users and courses with Basic authentication,
// @description     S3 pre-signed image uploads and diagnostic endpoints.

// @contact.name   Ivan Chernomyrdin
// @contact.url    https://github.com/IvanChernomyrdin

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:5000
// @BasePath  /
// @schemes http

// @securityDefinitions.basic BasicAuth
//
// Package main содержит точку входа сервера courses API.
//
// Вся инициализация (конфиг, база, роутер, graceful shutdown) живёт в internal/server/cli,
// здесь только передаются версия и дата сборки.
package main

import "github.com/IvanChernomyrdin/go-courses-api/internal/server/cli"

// заполняются через -ldflags "-X main.buildVersion=... -X main.buildDate=..."
var (
	buildVersion = "N/A"
	buildDate    = "N/A"
)

func main() {
	cli.Execute(buildVersion, buildDate)
}
