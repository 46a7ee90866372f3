package routes

import (
	"net/http"

	controllers "github.com/dineflow/Restaurant_POS_Backend/controllers"
	middleware "github.com/dineflow/Restaurant_POS_Backend/middlewares"
	"github.com/dineflow/Restaurant_POS_Backend/models"
	"github.com/dineflow/Restaurant_POS_Backend/socket"

	"github.com/gorilla/mux"
)

func KitchenProtectedRoutes(router *mux.Router, hub *socket.Hub) {
	router.HandleFunc("/kitchen/queue",
		middleware.RequireRoles(controllers.GetKitchenQueue, allStaff...)).Methods(http.MethodGet)
	router.HandleFunc("/kitchen/orders",
		middleware.RequireRoles(controllers.GetActiveOrders, allStaff...)).Methods(http.MethodGet)
	router.HandleFunc("/kitchen/out-of-stock",
		middleware.RequireRoles(controllers.MarkOutOfStock(hub), models.RoleCook, models.RoleAdmin, models.RoleSuperadmin)).Methods(http.MethodPost)
}
