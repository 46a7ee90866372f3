package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
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

var promotionCollection *mongo.Collection = database.OpenCollection(database.Client, "promotion")

func GetPromotions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	filter := bson.M{}
	if branchId := r.URL.Query().Get("branchId"); branchId != "" {
		// Branch promotions plus the ones valid everywhere
		filter["$or"] = bson.A{
			bson.M{"branch_id": branchId},
			bson.M{"branch_id": nil},
		}
	}
	if isActive := r.URL.Query().Get("isActive"); isActive != "" {
		filter["is_active"] = isActive == "true"
	}

	cursor, err := promotionCollection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error occurred while listing promotions")
		return
	}
	defer cursor.Close(ctx)

	var promotions []models.Promotion
	if err := cursor.All(ctx, &promotions); err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error decoding promotion data")
		return
	}

	helper.RespondSuccess(w, http.StatusOK, "Promotions retrieved successfully", promotions)
}

func GetPromotion(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	promotionId := mux.Vars(r)["promotion_id"]

	var promotion models.Promotion
	err := promotionCollection.FindOne(ctx, bson.M{"promotion_id": promotionId}).Decode(&promotion)
	if err != nil {
		helper.RespondError(w, http.StatusNotFound, helper.ErrNotFound, "Promotion not found")
		return
	}

	helper.RespondSuccess(w, http.StatusOK, "Promotion retrieved successfully", promotion)
}

func CreatePromotion(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	var promotion models.Promotion
	if err := json.NewDecoder(r.Body).Decode(&promotion); err != nil {
		helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(promotion); err != nil {
		helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, err.Error())
		return
	}
	if !promotion.End_date.After(promotion.Start_date) {
		helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, "End date must be after start date")
		return
	}

	promotion.ID = primitive.NewObjectID()
	promotion.Promotion_id = promotion.ID.Hex()
	promotion.Code = strings.ToUpper(strings.TrimSpace(promotion.Code))
	promotion.Used_count = 0
	if promotion.Is_active == nil {
		active := true
		promotion.Is_active = &active
	}
	promotion.Created_at = time.Now()
	promotion.Updated_at = time.Now()

	if _, err := promotionCollection.InsertOne(ctx, promotion); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			helper.RespondError(w, http.StatusConflict, helper.ErrConflict, "Promotion code already exists")
			return
		}
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Promotion was not created")
		return
	}

	helper.RespondSuccess(w, http.StatusCreated, "Promotion created successfully", promotion)
}

// Update promotion terms. The code itself is immutable once issued.
func UpdatePromotion(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	promotionId := mux.Vars(r)["promotion_id"]

	var request models.Promotion
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, "Invalid request payload")
		return
	}

	updateObj := bson.D{}
	if request.Name != "" {
		updateObj = append(updateObj, bson.E{Key: "name", Value: request.Name})
	}
	if request.Value > 0 {
		updateObj = append(updateObj, bson.E{Key: "value", Value: request.Value})
	}
	if request.Min_order_value > 0 {
		updateObj = append(updateObj, bson.E{Key: "min_order_value", Value: request.Min_order_value})
	}
	if request.Max_discount != nil {
		updateObj = append(updateObj, bson.E{Key: "max_discount", Value: *request.Max_discount})
	}
	if !request.Start_date.IsZero() {
		updateObj = append(updateObj, bson.E{Key: "start_date", Value: request.Start_date})
	}
	if !request.End_date.IsZero() {
		updateObj = append(updateObj, bson.E{Key: "end_date", Value: request.End_date})
	}
	if request.Usage_limit != nil {
		updateObj = append(updateObj, bson.E{Key: "usage_limit", Value: *request.Usage_limit})
	}
	if request.Is_active != nil {
		updateObj = append(updateObj, bson.E{Key: "is_active", Value: *request.Is_active})
	}
	if len(updateObj) == 0 {
		helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, "No fields to update")
		return
	}
	updateObj = append(updateObj, bson.E{Key: "updated_at", Value: time.Now()})

	result, err := promotionCollection.UpdateOne(ctx, bson.M{"promotion_id": promotionId}, bson.D{{Key: "$set", Value: updateObj}})
	if err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Promotion update failed")
		return
	}
	if result.MatchedCount == 0 {
		helper.RespondError(w, http.StatusNotFound, helper.ErrNotFound, "Promotion not found")
		return
	}

	var updatedPromotion models.Promotion
	if err := promotionCollection.FindOne(ctx, bson.M{"promotion_id": promotionId}).Decode(&updatedPromotion); err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error retrieving updated promotion")
		return
	}

	helper.RespondSuccess(w, http.StatusOK, "Promotion updated successfully", updatedPromotion)
}

func DeletePromotion(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	promotionId := mux.Vars(r)["promotion_id"]

	result, err := promotionCollection.DeleteOne(ctx, bson.M{"promotion_id": promotionId})
	if err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Promotion deletion failed")
		return
	}
	if result.DeletedCount == 0 {
		helper.RespondError(w, http.StatusNotFound, helper.ErrNotFound, "Promotion not found")
		return
	}

	helper.RespondSuccess(w, http.StatusOK, "Promotion deleted successfully", nil)
}

// Public dry-run validation: checks a code against a subtotal and branch
// without touching any order
func ValidatePromotionCode(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	var request struct {
		Code      string `json:"code" validate:"required"`
		Subtotal  int64  `json:"subtotal"`
		Branch_id string `json:"branch_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.Code == "" {
		helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, "Promotion code is required")
		return
	}

	var promotion models.Promotion
	err := promotionCollection.FindOne(ctx, bson.M{"code": strings.ToUpper(request.Code)}).Decode(&promotion)
	if errors.Is(err, mongo.ErrNoDocuments) {
		helper.RespondError(w, http.StatusNotFound, helper.ErrNotFound, "Promotion code not found")
		return
	} else if err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error retrieving promotion")
		return
	}

	if valid, reason := promotion.IsValid(request.Subtotal, request.Branch_id); !valid {
		helper.RespondError(w, http.StatusBadRequest, helper.ErrPromotionInvalid, reason)
		return
	}

	helper.RespondSuccess(w, http.StatusOK, "Promotion is valid", map[string]interface{}{
		"promotion": map[string]interface{}{
			"promotion_id": promotion.Promotion_id,
			"name":         promotion.Name,
			"code":         promotion.Code,
			"type":         promotion.Type,
			"value":        promotion.Value,
		},
		"discount": promotion.CalculateDiscount(request.Subtotal),
	})
}
