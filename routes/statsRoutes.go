package routes

import (
	"net/http"

	controllers "github.com/dineflow/Restaurant_POS_Backend/controllers"
	middleware "github.com/dineflow/Restaurant_POS_Backend/middlewares"
	"github.com/dineflow/Restaurant_POS_Backend/models"

	"github.com/gorilla/mux"
)

func StatsProtectedRoutes(router *mux.Router) {
	router.HandleFunc("/stats/dashboard",
		middleware.RequireRoles(controllers.GetDashboard, models.RoleCashier, models.RoleAdmin, models.RoleSuperadmin)).Methods(http.MethodGet)
	router.HandleFunc("/stats/revenue",
		middleware.RequireRoles(controllers.GetRevenue, models.RoleAdmin, models.RoleSuperadmin)).Methods(http.MethodGet)
	router.HandleFunc("/stats/top-items",
		middleware.RequireRoles(controllers.GetTopItems, models.RoleAdmin, models.RoleSuperadmin)).Methods(http.MethodGet)
	router.HandleFunc("/stats/orders-by-hour",
		middleware.RequireRoles(controllers.GetOrdersByHour, models.RoleAdmin, models.RoleSuperadmin)).Methods(http.MethodGet)
	router.HandleFunc("/stats/branches",
		middleware.RequireRoles(controllers.CompareBranches, models.RoleSuperadmin)).Methods(http.MethodGet)
	router.HandleFunc("/stats/occupancy-mismatches",
		middleware.RequireRoles(controllers.GetOccupancyMismatches, models.RoleAdmin, models.RoleSuperadmin)).Methods(http.MethodGet)
}
