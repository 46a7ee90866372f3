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
	middleware "github.com/dineflow/Restaurant_POS_Backend/middlewares"
	"github.com/dineflow/Restaurant_POS_Backend/models"

	"github.com/go-playground/validator"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

var userCollection *mongo.Collection = database.OpenCollection(database.Client, "user")
var validate *validator.Validate = validator.New()

func HashPassword(password string) string {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		return ""
	}
	return string(bytes)
}

func VerifyPassword(userPassword string, providedPassword string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(userPassword), []byte(providedPassword))
	return err == nil
}

func Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	var request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.Email == "" || request.Password == "" {
		helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, "Email and password are required")
		return
	}

	var user models.User
	err := userCollection.FindOne(ctx, bson.M{"email": strings.ToLower(request.Email)}).Decode(&user)
	if err != nil {
		helper.RespondError(w, http.StatusUnauthorized, helper.ErrUnauthorized, "Invalid email or password")
		return
	}

	if user.Password == nil || !VerifyPassword(*user.Password, request.Password) {
		helper.RespondError(w, http.StatusUnauthorized, helper.ErrUnauthorized, "Invalid email or password")
		return
	}

	if user.Is_active != nil && !*user.Is_active {
		helper.RespondError(w, http.StatusForbidden, helper.ErrForbidden, "Account is deactivated")
		return
	}

	branchId := ""
	if user.Branch_id != nil {
		branchId = *user.Branch_id
	}

	token, refreshToken, err := helper.GenerateAllTokens(user.User_id, *user.Email, *user.Name, user.Role, branchId)
	if err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error generating tokens")
		return
	}
	helper.UpdateAllTokens(token, refreshToken, user.User_id)

	user.Password = nil
	user.Token = &token
	user.Refresh_token = &refreshToken

	helper.RespondSuccess(w, http.StatusOK, "Login successful", user)
}

func RefreshToken(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	var request struct {
		Refresh_token string `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.Refresh_token == "" {
		helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, "Refresh token is required")
		return
	}

	claims, msg := helper.ValidateToken(request.Refresh_token)
	if msg != "" {
		helper.RespondError(w, http.StatusUnauthorized, helper.ErrUnauthorized, msg)
		return
	}

	// Refuse a refresh token the user has since rotated away from
	var user models.User
	err := userCollection.FindOne(ctx, bson.M{"user_id": claims.Uid}).Decode(&user)
	if err != nil || user.Refresh_token == nil || *user.Refresh_token != request.Refresh_token {
		helper.RespondError(w, http.StatusUnauthorized, helper.ErrUnauthorized, "Refresh token is no longer valid")
		return
	}

	branchId := ""
	if user.Branch_id != nil {
		branchId = *user.Branch_id
	}

	token, refreshToken, err := helper.GenerateAllTokens(user.User_id, *user.Email, *user.Name, user.Role, branchId)
	if err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error generating tokens")
		return
	}
	helper.UpdateAllTokens(token, refreshToken, user.User_id)

	helper.RespondSuccess(w, http.StatusOK, "Token refreshed successfully", map[string]string{
		"token":         token,
		"refresh_token": refreshToken,
	})
}

func GetMe(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	uid, _, _, _, _ := middleware.GetUserFromContext(r)

	var user models.User
	err := userCollection.FindOne(ctx, bson.M{"user_id": uid}).Decode(&user)
	if err != nil {
		helper.RespondError(w, http.StatusNotFound, helper.ErrNotFound, "User not found")
		return
	}

	user.Password = nil
	user.Token = nil
	user.Refresh_token = nil

	helper.RespondSuccess(w, http.StatusOK, "Profile retrieved successfully", user)
}

func Logout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	uid, _, _, _, _ := middleware.GetUserFromContext(r)

	_, err := userCollection.UpdateOne(ctx, bson.M{"user_id": uid}, bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "token", Value: nil},
			{Key: "refresh_token", Value: nil},
			{Key: "updated_at", Value: time.Now()},
		}},
	})
	if err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Logout failed")
		return
	}

	helper.RespondSuccess(w, http.StatusOK, "Logged out successfully", nil)
}

func CreateUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(user); err != nil {
		helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, err.Error())
		return
	}

	// Only superadmins work without a home branch
	if user.Role != models.RoleSuperadmin && user.Branch_id == nil {
		helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, "Branch is required for this role")
		return
	}
	if user.Branch_id != nil {
		count, err := branchCollection.CountDocuments(ctx, bson.M{"branch_id": *user.Branch_id})
		if err != nil || count == 0 {
			helper.RespondError(w, http.StatusNotFound, helper.ErrNotFound, "Branch not found")
			return
		}
	}

	// Branch admins can only create staff for their own branch
	_, _, _, callerRole, callerBranch := middleware.GetUserFromContext(r)
	if callerRole != models.RoleSuperadmin {
		if user.Role == models.RoleSuperadmin || user.Branch_id == nil || *user.Branch_id != callerBranch {
			helper.RespondError(w, http.StatusForbidden, helper.ErrForbidden, "Cannot create users outside your own branch")
			return
		}
	}

	email := strings.ToLower(*user.Email)
	user.Email = &email

	password := HashPassword(*user.Password)
	user.Password = &password

	user.ID = primitive.NewObjectID()
	user.User_id = user.ID.Hex()
	if user.Is_active == nil {
		active := true
		user.Is_active = &active
	}
	user.Created_at = time.Now()
	user.Updated_at = time.Now()

	if _, err := userCollection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			helper.RespondError(w, http.StatusConflict, helper.ErrConflict, "Email already registered")
			return
		}
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "User was not created")
		return
	}

	user.Password = nil
	helper.RespondSuccess(w, http.StatusCreated, "User created successfully", user)
}

func GetUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	filter := bson.M{}
	if role := r.URL.Query().Get("role"); role != "" {
		filter["role"] = role
	}

	// Non-superadmins only see their own branch roster
	_, _, _, callerRole, callerBranch := middleware.GetUserFromContext(r)
	if callerRole == models.RoleSuperadmin {
		if branchId := r.URL.Query().Get("branchId"); branchId != "" {
			filter["branch_id"] = branchId
		}
	} else {
		filter["branch_id"] = callerBranch
	}

	projection := bson.D{
		{Key: "password", Value: 0},
		{Key: "token", Value: 0},
		{Key: "refresh_token", Value: 0},
	}
	cursor, err := userCollection.Find(ctx, filter,
		options.Find().SetProjection(projection).SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error occurred while listing users")
		return
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error decoding user data")
		return
	}

	helper.RespondSuccess(w, http.StatusOK, "Users retrieved successfully", users)
}

func GetUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	userId := mux.Vars(r)["user_id"]

	var user models.User
	err := userCollection.FindOne(ctx, bson.M{"user_id": userId}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		helper.RespondError(w, http.StatusNotFound, helper.ErrNotFound, "User not found")
		return
	} else if err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error retrieving user")
		return
	}

	_, _, _, callerRole, callerBranch := middleware.GetUserFromContext(r)
	if callerRole != models.RoleSuperadmin && (user.Branch_id == nil || *user.Branch_id != callerBranch) {
		helper.RespondError(w, http.StatusForbidden, helper.ErrForbidden, "Cannot view users outside your own branch")
		return
	}

	user.Password = nil
	user.Token = nil
	user.Refresh_token = nil

	helper.RespondSuccess(w, http.StatusOK, "User retrieved successfully", user)
}

func UpdateUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	userId := mux.Vars(r)["user_id"]

	var request models.User
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, "Invalid request payload")
		return
	}

	updateObj := bson.D{}
	if request.Name != nil {
		updateObj = append(updateObj, bson.E{Key: "name", Value: *request.Name})
	}
	if request.Phone != "" {
		updateObj = append(updateObj, bson.E{Key: "phone", Value: request.Phone})
	}
	if request.Role != "" {
		if !models.IsValidRole(request.Role) {
			helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, "Invalid role")
			return
		}
		updateObj = append(updateObj, bson.E{Key: "role", Value: request.Role})
	}
	if request.Branch_id != nil {
		count, err := branchCollection.CountDocuments(ctx, bson.M{"branch_id": *request.Branch_id})
		if err != nil || count == 0 {
			helper.RespondError(w, http.StatusNotFound, helper.ErrNotFound, "Branch not found")
			return
		}
		updateObj = append(updateObj, bson.E{Key: "branch_id", Value: *request.Branch_id})
	}
	if request.Is_active != nil {
		updateObj = append(updateObj, bson.E{Key: "is_active", Value: *request.Is_active})
	}
	if request.Password != nil {
		password := HashPassword(*request.Password)
		updateObj = append(updateObj, bson.E{Key: "password", Value: password})
	}
	if len(updateObj) == 0 {
		helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, "No fields to update")
		return
	}
	updateObj = append(updateObj, bson.E{Key: "updated_at", Value: time.Now()})

	result, err := userCollection.UpdateOne(ctx, bson.M{"user_id": userId}, bson.D{{Key: "$set", Value: updateObj}})
	if err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "User update failed")
		return
	}
	if result.MatchedCount == 0 {
		helper.RespondError(w, http.StatusNotFound, helper.ErrNotFound, "User not found")
		return
	}

	var updatedUser models.User
	if err := userCollection.FindOne(ctx, bson.M{"user_id": userId}).Decode(&updatedUser); err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error retrieving updated user")
		return
	}
	updatedUser.Password = nil
	updatedUser.Token = nil
	updatedUser.Refresh_token = nil

	helper.RespondSuccess(w, http.StatusOK, "User updated successfully", updatedUser)
}
