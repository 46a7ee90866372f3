package routes

import (
	"net/http"

	controllers "github.com/dineflow/Restaurant_POS_Backend/controllers"
	middleware "github.com/dineflow/Restaurant_POS_Backend/middlewares"
	"github.com/dineflow/Restaurant_POS_Backend/models"
	"github.com/dineflow/Restaurant_POS_Backend/socket"

	"github.com/gorilla/mux"
)

func MenuPublicRoutes(router *mux.Router) {
	router.HandleFunc("/menu-items", controllers.GetMenuItems).Methods(http.MethodGet)
	router.HandleFunc("/menu-items/{menu_item_id}", controllers.GetMenuItem).Methods(http.MethodGet)
	router.HandleFunc("/categories", controllers.GetCategories).Methods(http.MethodGet)
	router.HandleFunc("/categories/{category_id}", controllers.GetCategory).Methods(http.MethodGet)
}

func MenuProtectedRoutes(router *mux.Router, hub *socket.Hub) {
	router.HandleFunc("/menu-items",
		middleware.RequireRoles(controllers.CreateMenuItem, models.RoleAdmin, models.RoleSuperadmin)).Methods(http.MethodPost)
	router.HandleFunc("/menu-items/{menu_item_id}",
		middleware.RequireRoles(controllers.UpdateMenuItem, models.RoleAdmin, models.RoleSuperadmin)).Methods(http.MethodPut)
	router.HandleFunc("/menu-items/{menu_item_id}",
		middleware.RequireRoles(controllers.DeleteMenuItem, models.RoleAdmin, models.RoleSuperadmin)).Methods(http.MethodDelete)
	router.HandleFunc("/menu-items/{menu_item_id}/availability",
		middleware.RequireRoles(controllers.ToggleMenuItemAvailability(hub), models.RoleCook, models.RoleAdmin, models.RoleSuperadmin)).Methods(http.MethodPatch)

	router.HandleFunc("/categories",
		middleware.RequireRoles(controllers.CreateCategory, models.RoleAdmin, models.RoleSuperadmin)).Methods(http.MethodPost)
	router.HandleFunc("/categories/{category_id}",
		middleware.RequireRoles(controllers.UpdateCategory, models.RoleAdmin, models.RoleSuperadmin)).Methods(http.MethodPut)
	router.HandleFunc("/categories/{category_id}",
		middleware.RequireRoles(controllers.DeleteCategory, models.RoleAdmin, models.RoleSuperadmin)).Methods(http.MethodDelete)
}
