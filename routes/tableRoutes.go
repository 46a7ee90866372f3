package routes

import (
	"net/http"

	controllers "github.com/dineflow/Restaurant_POS_Backend/controllers"
	middleware "github.com/dineflow/Restaurant_POS_Backend/middlewares"
	"github.com/dineflow/Restaurant_POS_Backend/models"
	"github.com/dineflow/Restaurant_POS_Backend/socket"

	"github.com/gorilla/mux"
)

// TablePublicRoutes are reachable without a token: diners hit them by
// scanning the QR code printed on the table.
func TablePublicRoutes(router *mux.Router, hub *socket.Hub) {
	router.HandleFunc("/tables/qr/{qr_code}/menu", controllers.GetMenuByQR).Methods(http.MethodGet)
	router.HandleFunc("/tables/qr/{qr_code}/orders", controllers.CreateOrderFromQR(hub)).Methods(http.MethodPost)
}

func TableProtectedRoutes(router *mux.Router) {
	router.HandleFunc("/tables",
		middleware.RequireRoles(controllers.GetTables, allStaff...)).Methods(http.MethodGet)
	router.HandleFunc("/tables/{table_id}",
		middleware.RequireRoles(controllers.GetTable, allStaff...)).Methods(http.MethodGet)
	router.HandleFunc("/tables",
		middleware.RequireRoles(controllers.CreateTable, models.RoleAdmin, models.RoleSuperadmin)).Methods(http.MethodPost)
	router.HandleFunc("/tables/{table_id}",
		middleware.RequireRoles(controllers.UpdateTable, models.RoleAdmin, models.RoleSuperadmin)).Methods(http.MethodPut)
	router.HandleFunc("/tables/{table_id}",
		middleware.RequireRoles(controllers.DeleteTable, models.RoleAdmin, models.RoleSuperadmin)).Methods(http.MethodDelete)
	router.HandleFunc("/tables/{table_id}/regenerate-qr",
		middleware.RequireRoles(controllers.RegenerateQR, models.RoleAdmin, models.RoleSuperadmin)).Methods(http.MethodPost)
}
