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

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var tableCollection *mongo.Collection = database.OpenCollection(database.Client, "table")

func GetTables(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	filter := bson.M{}
	if branchId := r.URL.Query().Get("branchId"); branchId != "" {
		filter["branch_id"] = branchId
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}

	cursor, err := tableCollection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "table_number", Value: 1}}))
	if err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error occurred while listing tables")
		return
	}
	defer cursor.Close(ctx)

	var tables []models.Table
	if err := cursor.All(ctx, &tables); err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error decoding table data")
		return
	}

	helper.RespondSuccess(w, http.StatusOK, "Tables retrieved successfully", tables)
}

func GetTable(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	tableId := mux.Vars(r)["table_id"]

	var table models.Table
	err := tableCollection.FindOne(ctx, bson.M{"table_id": tableId}).Decode(&table)
	if err != nil {
		helper.RespondError(w, http.StatusNotFound, helper.ErrNotFound, "Table not found")
		return
	}

	helper.RespondSuccess(w, http.StatusOK, "Table retrieved successfully", table)
}

func CreateTable(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	var table models.Table
	if err := json.NewDecoder(r.Body).Decode(&table); err != nil {
		helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(table); err != nil {
		helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, err.Error())
		return
	}

	// The branch must exist before hanging tables off it
	count, err := branchCollection.CountDocuments(ctx, bson.M{"branch_id": table.Branch_id})
	if err != nil || count == 0 {
		helper.RespondError(w, http.StatusNotFound, helper.ErrNotFound, "Branch not found")
		return
	}

	table.ID = primitive.NewObjectID()
	table.Table_id = table.ID.Hex()
	table.Qr_code = helper.GenerateQRCode()
	if table.Status == "" {
		table.Status = models.TableStatusAvailable
	}
	if table.Capacity == 0 {
		table.Capacity = 4
	}
	table.Current_order_id = nil
	table.Created_at = time.Now()
	table.Updated_at = time.Now()

	if _, err := tableCollection.InsertOne(ctx, table); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			helper.RespondError(w, http.StatusConflict, helper.ErrConflict, "Table number already exists in this branch")
			return
		}
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Table was not created")
		return
	}

	helper.RespondSuccess(w, http.StatusCreated, "Table created successfully", table)
}

func UpdateTable(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	tableId := mux.Vars(r)["table_id"]

	var request struct {
		Table_number string `json:"table_number"`
		Capacity     int    `json:"capacity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, "Invalid request payload")
		return
	}

	updateObj := bson.D{}
	if request.Table_number != "" {
		updateObj = append(updateObj, bson.E{Key: "table_number", Value: request.Table_number})
	}
	if request.Capacity > 0 {
		updateObj = append(updateObj, bson.E{Key: "capacity", Value: request.Capacity})
	}
	if len(updateObj) == 0 {
		helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, "No fields to update")
		return
	}
	updateObj = append(updateObj, bson.E{Key: "updated_at", Value: time.Now()})

	result, err := tableCollection.UpdateOne(ctx, bson.M{"table_id": tableId}, bson.D{{Key: "$set", Value: updateObj}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			helper.RespondError(w, http.StatusConflict, helper.ErrConflict, "Table number already exists in this branch")
			return
		}
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Failed to update table")
		return
	}
	if result.MatchedCount == 0 {
		helper.RespondError(w, http.StatusNotFound, helper.ErrNotFound, "Table not found")
		return
	}

	var updatedTable models.Table
	if err := tableCollection.FindOne(ctx, bson.M{"table_id": tableId}).Decode(&updatedTable); err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error fetching updated table")
		return
	}

	helper.RespondSuccess(w, http.StatusOK, "Table updated successfully", updatedTable)
}

func DeleteTable(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	tableId := mux.Vars(r)["table_id"]

	var table models.Table
	err := tableCollection.FindOne(ctx, bson.M{"table_id": tableId}).Decode(&table)
	if err != nil {
		helper.RespondError(w, http.StatusNotFound, helper.ErrNotFound, "Table not found")
		return
	}

	if table.Occupied() {
		helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, "Cannot delete a table with an active order")
		return
	}

	if _, err := tableCollection.DeleteOne(ctx, bson.M{"table_id": tableId}); err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Table deletion failed")
		return
	}

	helper.RespondSuccess(w, http.StatusOK, "Table deleted successfully", nil)
}

// RegenerateQR rotates the table's QR token, invalidating printed codes
func RegenerateQR(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	tableId := mux.Vars(r)["table_id"]

	result, err := tableCollection.UpdateOne(ctx,
		bson.M{"table_id": tableId},
		bson.M{"$set": bson.M{"qr_code": helper.GenerateQRCode(), "updated_at": time.Now()}},
	)
	if err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Failed to regenerate QR code")
		return
	}
	if result.MatchedCount == 0 {
		helper.RespondError(w, http.StatusNotFound, helper.ErrNotFound, "Table not found")
		return
	}

	var table models.Table
	if err := tableCollection.FindOne(ctx, bson.M{"table_id": tableId}).Decode(&table); err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error fetching updated table")
		return
	}

	helper.RespondSuccess(w, http.StatusOK, "QR code regenerated", table)
}

// Public menu lookup by QR token: table context, branch info and the
// available menu grouped by category
func GetMenuByQR(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	qrCode := mux.Vars(r)["qr_code"]

	var table models.Table
	err := tableCollection.FindOne(ctx, bson.M{"qr_code": qrCode}).Decode(&table)
	if err != nil {
		helper.RespondError(w, http.StatusNotFound, helper.ErrNotFound, "Invalid QR code")
		return
	}

	var branch models.Branch
	if err := branchCollection.FindOne(ctx, bson.M{"branch_id": table.Branch_id}).Decode(&branch); err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error retrieving branch")
		return
	}

	branchScope := bson.M{"$or": bson.A{
		bson.M{"branch_id": table.Branch_id},
		bson.M{"branch_id": nil},
	}}

	categoryCursor, err := categoryCollection.Find(ctx,
		bson.M{"$and": bson.A{branchScope, bson.M{"is_active": true}}},
		options.Find().SetSort(bson.D{{Key: "sort_order", Value: 1}}),
	)
	if err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error retrieving categories")
		return
	}
	defer categoryCursor.Close(ctx)

	var categories []models.Category
	if err := categoryCursor.All(ctx, &categories); err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error decoding categories")
		return
	}

	itemCursor, err := menuItemCollection.Find(ctx,
		bson.M{"$and": bson.A{branchScope, bson.M{"is_available": true}}},
		options.Find().SetSort(bson.D{{Key: "sort_order", Value: 1}}),
	)
	if err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error retrieving menu items")
		return
	}
	defer itemCursor.Close(ctx)

	var menuItems []models.MenuItem
	if err := itemCursor.All(ctx, &menuItems); err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error decoding menu items")
		return
	}

	// Group available items under their category
	menu := make([]map[string]interface{}, 0, len(categories))
	for _, category := range categories {
		items := []models.MenuItem{}
		for _, item := range menuItems {
			if item.Category_id != nil && *item.Category_id == category.Category_id {
				items = append(items, item)
			}
		}
		menu = append(menu, map[string]interface{}{
			"category": category,
			"items":    items,
		})
	}

	helper.RespondSuccess(w, http.StatusOK, "Menu retrieved", map[string]interface{}{
		"table": map[string]interface{}{
			"table_id":         table.Table_id,
			"table_number":     table.Table_number,
			"capacity":         table.Capacity,
			"status":           table.Status,
			"current_order_id": table.Current_order_id,
		},
		"branch": branch,
		"menu":   menu,
	})
}
