package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	database "github.com/dineflow/Restaurant_POS_Backend/config"
	helper "github.com/dineflow/Restaurant_POS_Backend/helper"
	"github.com/dineflow/Restaurant_POS_Backend/models"
	"github.com/dineflow/Restaurant_POS_Backend/socket"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var menuItemCollection *mongo.Collection = database.OpenCollection(database.Client, "menu_item")

// Get all menu items with optional filters
func GetMenuItems(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	conditions := bson.A{}

	if branchId := r.URL.Query().Get("branchId"); branchId != "" {
		// Branch-specific items plus the shared catalog
		conditions = append(conditions, bson.M{"$or": bson.A{
			bson.M{"branch_id": branchId},
			bson.M{"branch_id": nil},
		}})
	}
	if categoryId := r.URL.Query().Get("categoryId"); categoryId != "" {
		conditions = append(conditions, bson.M{"category_id": categoryId})
	}
	if isAvailable := r.URL.Query().Get("isAvailable"); isAvailable != "" {
		conditions = append(conditions, bson.M{"is_available": isAvailable == "true"})
	}
	if search := r.URL.Query().Get("search"); search != "" {
		conditions = append(conditions, bson.M{"name": bson.M{"$regex": search, "$options": "i"}})
	}

	filter := bson.M{}
	if len(conditions) > 0 {
		filter["$and"] = conditions
	}

	cursor, err := menuItemCollection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "sort_order", Value: 1}}))
	if err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error occurred while listing menu items")
		return
	}
	defer cursor.Close(ctx)

	var menuItems []models.MenuItem
	if err := cursor.All(ctx, &menuItems); err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error decoding menu item data")
		return
	}

	helper.RespondSuccess(w, http.StatusOK, "Menu items retrieved successfully", menuItems)
}

func GetMenuItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	menuItemId := mux.Vars(r)["menu_item_id"]

	var menuItem models.MenuItem
	err := menuItemCollection.FindOne(ctx, bson.M{"menu_item_id": menuItemId}).Decode(&menuItem)
	if err != nil {
		helper.RespondError(w, http.StatusNotFound, helper.ErrNotFound, "Menu item not found")
		return
	}

	helper.RespondSuccess(w, http.StatusOK, "Menu item retrieved successfully", menuItem)
}

func CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	var menuItem models.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&menuItem); err != nil {
		helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(menuItem); err != nil {
		helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, err.Error())
		return
	}

	// The category must exist
	count, err := categoryCollection.CountDocuments(ctx, bson.M{"category_id": *menuItem.Category_id})
	if err != nil || count == 0 {
		helper.RespondError(w, http.StatusNotFound, helper.ErrNotFound, "Category not found")
		return
	}

	menuItem.ID = primitive.NewObjectID()
	menuItem.Menu_item_id = menuItem.ID.Hex()
	menuItem.Slug = helper.Slugify(*menuItem.Name)
	if menuItem.Is_available == nil {
		available := true
		menuItem.Is_available = &available
	}
	if menuItem.Preparation_time == 0 {
		menuItem.Preparation_time = 15
	}
	menuItem.Created_at = time.Now()
	menuItem.Updated_at = time.Now()

	if _, err := menuItemCollection.InsertOne(ctx, menuItem); err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Menu item was not created")
		return
	}

	helper.RespondSuccess(w, http.StatusCreated, "Menu item created successfully", menuItem)
}

func UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	menuItemId := mux.Vars(r)["menu_item_id"]

	var request models.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, "Invalid request payload")
		return
	}

	updateObj := bson.D{}
	if request.Name != nil {
		updateObj = append(updateObj, bson.E{Key: "name", Value: *request.Name})
		updateObj = append(updateObj, bson.E{Key: "slug", Value: helper.Slugify(*request.Name)})
	}
	if request.Description != "" {
		updateObj = append(updateObj, bson.E{Key: "description", Value: request.Description})
	}
	if request.Price != nil {
		updateObj = append(updateObj, bson.E{Key: "price", Value: *request.Price})
	}
	if request.Image != nil {
		updateObj = append(updateObj, bson.E{Key: "image", Value: *request.Image})
	}
	if request.Category_id != nil {
		count, err := categoryCollection.CountDocuments(ctx, bson.M{"category_id": *request.Category_id})
		if err != nil || count == 0 {
			helper.RespondError(w, http.StatusNotFound, helper.ErrNotFound, "Category not found")
			return
		}
		updateObj = append(updateObj, bson.E{Key: "category_id", Value: *request.Category_id})
	}
	if request.Preparation_time > 0 {
		updateObj = append(updateObj, bson.E{Key: "preparation_time", Value: request.Preparation_time})
	}
	if request.Sort_order != 0 {
		updateObj = append(updateObj, bson.E{Key: "sort_order", Value: request.Sort_order})
	}
	if len(updateObj) == 0 {
		helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, "No fields to update")
		return
	}
	updateObj = append(updateObj, bson.E{Key: "updated_at", Value: time.Now()})

	result, err := menuItemCollection.UpdateOne(ctx, bson.M{"menu_item_id": menuItemId}, bson.D{{Key: "$set", Value: updateObj}})
	if err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Menu item update failed")
		return
	}
	if result.MatchedCount == 0 {
		helper.RespondError(w, http.StatusNotFound, helper.ErrNotFound, "Menu item not found")
		return
	}

	var updatedItem models.MenuItem
	if err := menuItemCollection.FindOne(ctx, bson.M{"menu_item_id": menuItemId}).Decode(&updatedItem); err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error retrieving updated menu item")
		return
	}

	helper.RespondSuccess(w, http.StatusOK, "Menu item updated successfully", updatedItem)
}

func DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	menuItemId := mux.Vars(r)["menu_item_id"]

	result, err := menuItemCollection.DeleteOne(ctx, bson.M{"menu_item_id": menuItemId})
	if err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Menu item deletion failed")
		return
	}
	if result.DeletedCount == 0 {
		helper.RespondError(w, http.StatusNotFound, helper.ErrNotFound, "Menu item not found")
		return
	}

	helper.RespondSuccess(w, http.StatusOK, "Menu item deleted successfully", nil)
}

// Toggle availability; placed orders keep their snapshots either way
func ToggleMenuItemAvailability(hub *socket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		menuItemId := mux.Vars(r)["menu_item_id"]

		var request struct {
			Is_available *bool `json:"is_available" validate:"required"`
		}
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.Is_available == nil {
			helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, "is_available is required")
			return
		}

		result, err := menuItemCollection.UpdateOne(ctx,
			bson.M{"menu_item_id": menuItemId},
			bson.M{"$set": bson.M{"is_available": *request.Is_available, "updated_at": time.Now()}},
		)
		if err != nil {
			helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Failed to update availability")
			return
		}
		if result.MatchedCount == 0 {
			helper.RespondError(w, http.StatusNotFound, helper.ErrNotFound, "Menu item not found")
			return
		}

		var menuItem models.MenuItem
		err = menuItemCollection.FindOne(ctx, bson.M{"menu_item_id": menuItemId}).Decode(&menuItem)
		if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error retrieving updated menu item")
			return
		}

		if menuItem.Branch_id != nil {
			hub.EmitToBranch(*menuItem.Branch_id, "menu:availability", map[string]interface{}{
				"menuItemId":  menuItem.Menu_item_id,
				"name":        *menuItem.Name,
				"isAvailable": *request.Is_available,
			})
		}

		message := "Menu item marked as unavailable"
		if *request.Is_available {
			message = "Menu item is now available"
		}
		helper.RespondSuccess(w, http.StatusOK, message, menuItem)
	}
}
