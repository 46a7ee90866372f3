package routes

import (
	"net/http"

	controllers "github.com/dineflow/Restaurant_POS_Backend/controllers"
	middleware "github.com/dineflow/Restaurant_POS_Backend/middlewares"
	"github.com/dineflow/Restaurant_POS_Backend/models"

	"github.com/gorilla/mux"
)

func PromotionPublicRoutes(router *mux.Router) {
	router.HandleFunc("/promotions/validate", controllers.ValidatePromotionCode).Methods(http.MethodPost)
}

func PromotionProtectedRoutes(router *mux.Router) {
	router.HandleFunc("/promotions",
		middleware.RequireRoles(controllers.GetPromotions, models.RoleAdmin, models.RoleSuperadmin)).Methods(http.MethodGet)
	router.HandleFunc("/promotions/{promotion_id}",
		middleware.RequireRoles(controllers.GetPromotion, models.RoleAdmin, models.RoleSuperadmin)).Methods(http.MethodGet)
	router.HandleFunc("/promotions",
		middleware.RequireRoles(controllers.CreatePromotion, models.RoleAdmin, models.RoleSuperadmin)).Methods(http.MethodPost)
	router.HandleFunc("/promotions/{promotion_id}",
		middleware.RequireRoles(controllers.UpdatePromotion, models.RoleAdmin, models.RoleSuperadmin)).Methods(http.MethodPut)
	router.HandleFunc("/promotions/{promotion_id}",
		middleware.RequireRoles(controllers.DeletePromotion, models.RoleAdmin, models.RoleSuperadmin)).Methods(http.MethodDelete)
}
