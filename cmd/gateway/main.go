package main

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/srhoton/srnext-bff/internal/config"
	"github.com/srhoton/srnext-bff/internal/gateway"
	"github.com/srhoton/srnext-bff/internal/utils"
)

func main() {
	utils.InitLogger(config.AppName)
	cfg := config.Load()

	gw := gateway.New(cfg)

	router := mux.NewRouter()
	gw.Routes(router)

	co := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	})

	utils.Logger.Infof("Starting %s on port: %s", config.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("Failed to start server:", err)
	}
}
