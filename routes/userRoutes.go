package routes

import (
	"net/http"

	controllers "github.com/dineflow/Restaurant_POS_Backend/controllers"
	middleware "github.com/dineflow/Restaurant_POS_Backend/middlewares"
	"github.com/dineflow/Restaurant_POS_Backend/models"

	"github.com/gorilla/mux"
)

func AuthPublicRoutes(router *mux.Router) {
	router.HandleFunc("/auth/login", controllers.Login).Methods(http.MethodPost)
	router.HandleFunc("/auth/refresh", controllers.RefreshToken).Methods(http.MethodPost)
}

func AuthProtectedRoutes(router *mux.Router) {
	router.HandleFunc("/auth/me", controllers.GetMe).Methods(http.MethodGet)
	router.HandleFunc("/auth/logout", controllers.Logout).Methods(http.MethodPost)
}

func UserProtectedRoutes(router *mux.Router) {
	router.HandleFunc("/users",
		middleware.RequireRoles(controllers.GetUsers, models.RoleAdmin, models.RoleSuperadmin)).Methods(http.MethodGet)
	router.HandleFunc("/users/{user_id}",
		middleware.RequireRoles(controllers.GetUser, models.RoleAdmin, models.RoleSuperadmin)).Methods(http.MethodGet)
	router.HandleFunc("/users",
		middleware.RequireRoles(controllers.CreateUser, models.RoleAdmin, models.RoleSuperadmin)).Methods(http.MethodPost)
	router.HandleFunc("/users/{user_id}",
		middleware.RequireRoles(controllers.UpdateUser, models.RoleAdmin, models.RoleSuperadmin)).Methods(http.MethodPut)
}
