package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	helper "github.com/dineflow/Restaurant_POS_Backend/helper"
	middleware "github.com/dineflow/Restaurant_POS_Backend/middlewares"
	"github.com/dineflow/Restaurant_POS_Backend/models"
	"github.com/dineflow/Restaurant_POS_Backend/socket"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// resolveBranch picks the branch to operate on: explicit query param for the
// all-branch role, otherwise the caller's own branch.
func resolveBranch(r *http.Request) string {
	_, _, _, role, userBranch := middleware.GetUserFromContext(r)
	requested := r.URL.Query().Get("branchId")
	if role == models.RoleSuperadmin && requested != "" {
		return requested
	}
	return userBranch
}

// tableNumbersFor loads the table numbers referenced by a set of orders so
// the kitchen views can show which table each ticket belongs to.
func tableNumbersFor(ctx context.Context, orders []models.Order) (map[string]string, error) {
	ids := make([]string, 0, len(orders))
	seen := make(map[string]bool, len(orders))
	for _, order := range orders {
		if !seen[order.Table_id] {
			seen[order.Table_id] = true
			ids = append(ids, order.Table_id)
		}
	}

	numbers := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return numbers, nil
	}

	cursor, err := tableCollection.Find(ctx, bson.M{"table_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tables []models.Table
	if err := cursor.All(ctx, &tables); err != nil {
		return nil, err
	}
	for _, table := range tables {
		numbers[table.Table_id] = table.Table_number
	}
	return numbers, nil
}

// Priority-sorted flat queue of items waiting for preparation
func GetKitchenQueue(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	branchId := resolveBranch(r)
	if branchId == "" {
		helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, "Branch ID required")
		return
	}

	cursor, err := orderCollection.Find(ctx, bson.M{
		"branch_id":    branchId,
		"status":       models.OrderStatusActive,
		"items.status": bson.M{"$in": []string{models.ItemStatusPending, models.ItemStatusCooking}},
	}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error retrieving orders")
		return
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error decoding order data")
		return
	}

	tableNumbers, err := tableNumbersFor(ctx, orders)
	if err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error retrieving tables")
		return
	}

	queue := models.BuildKitchenQueue(orders, tableNumbers)

	helper.RespondSuccess(w, http.StatusOK, "Kitchen queue retrieved", queue)
}

// Active orders grouped per ticket, including ready items that still need
// kitchen visibility until served
func GetActiveOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	branchId := resolveBranch(r)
	if branchId == "" {
		helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, "Branch ID required")
		return
	}

	cursor, err := orderCollection.Find(ctx, bson.M{
		"branch_id": branchId,
		"status":    models.OrderStatusActive,
	}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error retrieving orders")
		return
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error decoding order data")
		return
	}

	tableNumbers, err := tableNumbersFor(ctx, orders)
	if err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error retrieving tables")
		return
	}

	kitchenOrders := models.BuildKitchenOrders(orders, tableNumbers)

	helper.RespondSuccess(w, http.StatusOK, "Active kitchen orders retrieved", kitchenOrders)
}

// Kitchen flags a menu item as sold out for the rest of the service
func MarkOutOfStock(hub *socket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var request struct {
			Menu_item_id string `json:"menu_item_id" validate:"required"`
			Reason       string `json:"reason"`
		}
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.Menu_item_id == "" {
			helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, "Menu item ID is required")
			return
		}

		var menuItem models.MenuItem
		err := menuItemCollection.FindOne(ctx, bson.M{"menu_item_id": request.Menu_item_id}).Decode(&menuItem)
		if errors.Is(err, mongo.ErrNoDocuments) {
			helper.RespondError(w, http.StatusNotFound, helper.ErrNotFound, "Menu item not found")
			return
		} else if err != nil {
			helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error retrieving menu item")
			return
		}

		_, err = menuItemCollection.UpdateOne(ctx,
			bson.M{"menu_item_id": request.Menu_item_id},
			bson.M{"$set": bson.M{"is_available": false, "updated_at": time.Now()}},
		)
		if err != nil {
			helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Failed to update menu item")
			return
		}

		_, _, _, _, branchId := middleware.GetUserFromContext(r)
		if branchId != "" {
			hub.EmitToBranch(branchId, "menu:out-of-stock", map[string]interface{}{
				"menuItemId": menuItem.Menu_item_id,
				"name":       *menuItem.Name,
				"reason":     request.Reason,
			})
		}

		helper.RespondSuccess(w, http.StatusOK, "Item marked out of stock", nil)
	}
}
