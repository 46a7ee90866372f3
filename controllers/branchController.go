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
)

var branchCollection *mongo.Collection = database.OpenCollection(database.Client, "branch")

func GetBranches(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	cursor, err := branchCollection.Find(ctx, bson.M{})
	if err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error occurred while listing branches")
		return
	}
	defer cursor.Close(ctx)

	var branches []models.Branch
	if err := cursor.All(ctx, &branches); err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error decoding branch data")
		return
	}

	helper.RespondSuccess(w, http.StatusOK, "Branches retrieved successfully", branches)
}

func GetBranch(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	branchId := mux.Vars(r)["branch_id"]

	var branch models.Branch
	err := branchCollection.FindOne(ctx, bson.M{"branch_id": branchId}).Decode(&branch)
	if err != nil {
		helper.RespondError(w, http.StatusNotFound, helper.ErrNotFound, "Branch not found")
		return
	}

	helper.RespondSuccess(w, http.StatusOK, "Branch retrieved successfully", branch)
}

func CreateBranch(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	var branch models.Branch
	if err := json.NewDecoder(r.Body).Decode(&branch); err != nil {
		helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(branch); err != nil {
		helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, err.Error())
		return
	}

	branch.ID = primitive.NewObjectID()
	branch.Branch_id = branch.ID.Hex()
	if branch.Open_time == "" {
		branch.Open_time = "08:00"
	}
	if branch.Close_time == "" {
		branch.Close_time = "22:00"
	}
	if branch.Is_active == nil {
		active := true
		branch.Is_active = &active
	}
	branch.Created_at = time.Now()
	branch.Updated_at = time.Now()

	if _, err := branchCollection.InsertOne(ctx, branch); err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Branch was not created")
		return
	}

	helper.RespondSuccess(w, http.StatusCreated, "Branch created successfully", branch)
}

func UpdateBranch(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	branchId := mux.Vars(r)["branch_id"]

	var request models.Branch
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, "Invalid request payload")
		return
	}

	updateObj := bson.D{}
	if request.Name != "" {
		updateObj = append(updateObj, bson.E{Key: "name", Value: request.Name})
	}
	if request.Address != "" {
		updateObj = append(updateObj, bson.E{Key: "address", Value: request.Address})
	}
	if request.Phone != "" {
		updateObj = append(updateObj, bson.E{Key: "phone", Value: request.Phone})
	}
	if request.Open_time != "" {
		updateObj = append(updateObj, bson.E{Key: "open_time", Value: request.Open_time})
	}
	if request.Close_time != "" {
		updateObj = append(updateObj, bson.E{Key: "close_time", Value: request.Close_time})
	}
	if request.Is_active != nil {
		updateObj = append(updateObj, bson.E{Key: "is_active", Value: *request.Is_active})
	}
	if len(updateObj) == 0 {
		helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, "No fields to update")
		return
	}
	updateObj = append(updateObj, bson.E{Key: "updated_at", Value: time.Now()})

	result, err := branchCollection.UpdateOne(ctx, bson.M{"branch_id": branchId}, bson.D{{Key: "$set", Value: updateObj}})
	if err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Branch update failed")
		return
	}
	if result.MatchedCount == 0 {
		helper.RespondError(w, http.StatusNotFound, helper.ErrNotFound, "Branch not found")
		return
	}

	var updatedBranch models.Branch
	if err := branchCollection.FindOne(ctx, bson.M{"branch_id": branchId}).Decode(&updatedBranch); err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error retrieving updated branch")
		return
	}

	helper.RespondSuccess(w, http.StatusOK, "Branch updated successfully", updatedBranch)
}

func DeleteBranch(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	branchId := mux.Vars(r)["branch_id"]

	// A branch with tables still configured cannot be removed
	count, err := tableCollection.CountDocuments(ctx, bson.M{"branch_id": branchId})
	if err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error checking branch usage")
		return
	}
	if count > 0 {
		helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, "Branch still has tables")
		return
	}

	result, err := branchCollection.DeleteOne(ctx, bson.M{"branch_id": branchId})
	if err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Branch deletion failed")
		return
	}
	if result.DeletedCount == 0 {
		helper.RespondError(w, http.StatusNotFound, helper.ErrNotFound, "Branch not found")
		return
	}

	helper.RespondSuccess(w, http.StatusOK, "Branch deleted successfully", nil)
}
