package controller

import (
	"context"
	"encoding/json"
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

var categoryCollection *mongo.Collection = database.OpenCollection(database.Client, "category")

func GetCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	filter := bson.M{}
	if branchId := r.URL.Query().Get("branchId"); branchId != "" {
		filter["$or"] = bson.A{
			bson.M{"branch_id": branchId},
			bson.M{"branch_id": nil},
		}
	}

	cursor, err := categoryCollection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "sort_order", Value: 1}}))
	if err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error occurred while listing categories")
		return
	}
	defer cursor.Close(ctx)

	var categories []models.Category
	if err := cursor.All(ctx, &categories); err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error decoding category data")
		return
	}

	helper.RespondSuccess(w, http.StatusOK, "Categories retrieved successfully", categories)
}

func GetCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	categoryId := mux.Vars(r)["category_id"]

	var category models.Category
	err := categoryCollection.FindOne(ctx, bson.M{"category_id": categoryId}).Decode(&category)
	if err != nil {
		helper.RespondError(w, http.StatusNotFound, helper.ErrNotFound, "Category not found")
		return
	}

	helper.RespondSuccess(w, http.StatusOK, "Category retrieved successfully", category)
}

func CreateCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	var category models.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(category); err != nil {
		helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, err.Error())
		return
	}

	category.ID = primitive.NewObjectID()
	category.Category_id = category.ID.Hex()
	category.Slug = helper.Slugify(category.Name)
	if category.Is_active == nil {
		active := true
		category.Is_active = &active
	}
	category.Created_at = time.Now()
	category.Updated_at = time.Now()

	if _, err := categoryCollection.InsertOne(ctx, category); err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Category was not created")
		return
	}

	helper.RespondSuccess(w, http.StatusCreated, "Category created successfully", category)
}

func UpdateCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	categoryId := mux.Vars(r)["category_id"]

	var request models.Category
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, "Invalid request payload")
		return
	}

	updateObj := bson.D{}
	if request.Name != "" {
		updateObj = append(updateObj, bson.E{Key: "name", Value: request.Name})
		updateObj = append(updateObj, bson.E{Key: "slug", Value: helper.Slugify(request.Name)})
	}
	if request.Image != nil {
		updateObj = append(updateObj, bson.E{Key: "image", Value: *request.Image})
	}
	if request.Sort_order != 0 {
		updateObj = append(updateObj, bson.E{Key: "sort_order", Value: request.Sort_order})
	}
	if request.Is_active != nil {
		updateObj = append(updateObj, bson.E{Key: "is_active", Value: *request.Is_active})
	}
	if len(updateObj) == 0 {
		helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, "No fields to update")
		return
	}
	updateObj = append(updateObj, bson.E{Key: "updated_at", Value: time.Now()})

	result, err := categoryCollection.UpdateOne(ctx, bson.M{"category_id": categoryId}, bson.D{{Key: "$set", Value: updateObj}})
	if err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Category update failed")
		return
	}
	if result.MatchedCount == 0 {
		helper.RespondError(w, http.StatusNotFound, helper.ErrNotFound, "Category not found")
		return
	}

	var updatedCategory models.Category
	if err := categoryCollection.FindOne(ctx, bson.M{"category_id": categoryId}).Decode(&updatedCategory); err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error retrieving updated category")
		return
	}

	helper.RespondSuccess(w, http.StatusOK, "Category updated successfully", updatedCategory)
}

func DeleteCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	categoryId := mux.Vars(r)["category_id"]

	// Refuse to orphan menu items
	count, err := menuItemCollection.CountDocuments(ctx, bson.M{"category_id": categoryId})
	if err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error checking category usage")
		return
	}
	if count > 0 {
		helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, "Category still has menu items")
		return
	}

	result, err := categoryCollection.DeleteOne(ctx, bson.M{"category_id": categoryId})
	if err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Category deletion failed")
		return
	}
	if result.DeletedCount == 0 {
		helper.RespondError(w, http.StatusNotFound, helper.ErrNotFound, "Category not found")
		return
	}

	helper.RespondSuccess(w, http.StatusOK, "Category deleted successfully", nil)
}
