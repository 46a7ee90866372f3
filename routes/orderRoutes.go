package routes

import (
	"net/http"

	controllers "github.com/dineflow/Restaurant_POS_Backend/controllers"
	middleware "github.com/dineflow/Restaurant_POS_Backend/middlewares"
	"github.com/dineflow/Restaurant_POS_Backend/models"
	"github.com/dineflow/Restaurant_POS_Backend/socket"

	"github.com/gorilla/mux"
)

var allStaff = []string{models.RoleCook, models.RoleWaiter, models.RoleCashier, models.RoleAdmin, models.RoleSuperadmin}

func OrderProtectedRoutes(router *mux.Router, hub *socket.Hub) {
	router.HandleFunc("/orders",
		middleware.RequireRoles(controllers.GetOrders, allStaff...)).Methods(http.MethodGet)
	router.HandleFunc("/orders",
		middleware.RequireRoles(controllers.CreateOrder(hub), models.RoleWaiter, models.RoleCashier, models.RoleAdmin, models.RoleSuperadmin)).Methods(http.MethodPost)
	router.HandleFunc("/orders/{order_id}",
		middleware.RequireRoles(controllers.GetOrderById, allStaff...)).Methods(http.MethodGet)
	router.HandleFunc("/orders/{order_id}/items",
		middleware.RequireRoles(controllers.AddOrderItems(hub), models.RoleWaiter, models.RoleAdmin, models.RoleSuperadmin)).Methods(http.MethodPost)
	router.HandleFunc("/orders/{order_id}/status",
		middleware.RequireRoles(controllers.UpdateOrderStatus(hub), models.RoleCook, models.RoleWaiter, models.RoleAdmin, models.RoleSuperadmin)).Methods(http.MethodPatch)
	router.HandleFunc("/orders/{order_id}/items/{item_id}/status",
		middleware.RequireRoles(controllers.UpdateOrderItemStatus(hub), models.RoleCook, models.RoleWaiter, models.RoleAdmin, models.RoleSuperadmin)).Methods(http.MethodPatch)
	router.HandleFunc("/orders/{order_id}/items/{item_id}/priority",
		middleware.RequireRoles(controllers.UpdateOrderItemPriority(hub), models.RoleCook, models.RoleAdmin, models.RoleSuperadmin)).Methods(http.MethodPatch)
	router.HandleFunc("/orders/{order_id}/items/{item_id}/note",
		middleware.RequireRoles(controllers.UpdateOrderItemNote(hub), models.RoleCook, models.RoleWaiter, models.RoleAdmin, models.RoleSuperadmin)).Methods(http.MethodPatch)
	router.HandleFunc("/orders/{order_id}/items/{item_id}/cancel",
		middleware.RequireRoles(controllers.CancelOrderItem(hub), models.RoleWaiter, models.RoleAdmin, models.RoleSuperadmin)).Methods(http.MethodPatch)
	router.HandleFunc("/orders/{order_id}/promotion",
		middleware.RequireRoles(controllers.ApplyPromotion, models.RoleWaiter, models.RoleCashier, models.RoleAdmin, models.RoleSuperadmin)).Methods(http.MethodPost)
	router.HandleFunc("/orders/{order_id}/payment",
		middleware.RequireRoles(controllers.CompletePayment(hub), models.RoleCashier, models.RoleAdmin, models.RoleSuperadmin)).Methods(http.MethodPatch)
	router.HandleFunc("/orders/{order_id}/cancel",
		middleware.RequireRoles(controllers.CancelOrder(hub), models.RoleAdmin, models.RoleSuperadmin)).Methods(http.MethodPatch)
}
