// Command migrate aplica o revierte el esquema de la base de datos.
//
//	go run ./cmd/migrate up|down|version
package main

import (
	"fmt"
	"os"

	"github.com/jhoicas/ironhub-api/internal/infrastructure/postgres"
	"github.com/jhoicas/ironhub-api/pkg/config"
	"github.com/jhoicas/ironhub-api/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "uso: migrate up|down|version")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	m, err := postgres.NewMigrator(cfg.DB.ConnectionString(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar migraciones")
	}
	defer m.Close()

	switch os.Args[1] {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "version":
		var (
			v     uint
			dirty bool
		)
		v, dirty, err = m.Version()
		if err == nil {
			fmt.Printf("version=%d dirty=%t\n", v, dirty)
		}
	default:
		fmt.Fprintf(os.Stderr, "comando desconocido %q (up|down|version)\n", os.Args[1])
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("migración fallida")
	}
}
