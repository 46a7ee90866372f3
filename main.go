package main

import (
	"log"
	"net/http"
	"os"

	database "github.com/dineflow/Restaurant_POS_Backend/config"
	middleware "github.com/dineflow/Restaurant_POS_Backend/middlewares"
	routes "github.com/dineflow/Restaurant_POS_Backend/routes"
	"github.com/dineflow/Restaurant_POS_Backend/socket"

	"github.com/gorilla/mux"
)

func main() {
	// Load environment variables
	database.LoadEnv()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	database.EnsureIndexes(database.Client)

	hub := socket.NewHub()

	router := mux.NewRouter()

	// Realtime fabric: staff clients join a role room for their branch
	router.HandleFunc("/ws", hub.ServeWS)

	// Public Routes (No Authentication)
	routes.AuthPublicRoutes(router)
	routes.TablePublicRoutes(router, hub)
	routes.MenuPublicRoutes(router)
	routes.PromotionPublicRoutes(router)

	// Apply Authentication Middleware to Protected Routes
	securedRoutes := router.PathPrefix("/").Subrouter()
	securedRoutes.Use(middleware.Authentication)
	routes.AuthProtectedRoutes(securedRoutes)
	routes.OrderProtectedRoutes(securedRoutes, hub)
	routes.KitchenProtectedRoutes(securedRoutes, hub)
	routes.TableProtectedRoutes(securedRoutes)
	routes.MenuProtectedRoutes(securedRoutes, hub)
	routes.PromotionProtectedRoutes(securedRoutes)
	routes.BranchProtectedRoutes(securedRoutes)
	routes.UserProtectedRoutes(securedRoutes)
	routes.StatsProtectedRoutes(securedRoutes)

	log.Printf("Server running on port %s", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatal(err)
	}
}
