package routes

import (
	"net/http"

	controllers "github.com/dineflow/Restaurant_POS_Backend/controllers"
	middleware "github.com/dineflow/Restaurant_POS_Backend/middlewares"
	"github.com/dineflow/Restaurant_POS_Backend/models"

	"github.com/gorilla/mux"
)

func BranchProtectedRoutes(router *mux.Router) {
	router.HandleFunc("/branches",
		middleware.RequireRoles(controllers.GetBranches, allStaff...)).Methods(http.MethodGet)
	router.HandleFunc("/branches/{branch_id}",
		middleware.RequireRoles(controllers.GetBranch, allStaff...)).Methods(http.MethodGet)
	router.HandleFunc("/branches",
		middleware.RequireRoles(controllers.CreateBranch, models.RoleSuperadmin)).Methods(http.MethodPost)
	router.HandleFunc("/branches/{branch_id}",
		middleware.RequireRoles(controllers.UpdateBranch, models.RoleSuperadmin)).Methods(http.MethodPut)
	router.HandleFunc("/branches/{branch_id}",
		middleware.RequireRoles(controllers.DeleteBranch, models.RoleSuperadmin)).Methods(http.MethodDelete)
}
