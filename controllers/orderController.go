package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	database "github.com/dineflow/Restaurant_POS_Backend/config"
	helper "github.com/dineflow/Restaurant_POS_Backend/helper"
	middleware "github.com/dineflow/Restaurant_POS_Backend/middlewares"
	"github.com/dineflow/Restaurant_POS_Backend/models"
	"github.com/dineflow/Restaurant_POS_Backend/socket"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var orderCollection *mongo.Collection = database.OpenCollection(database.Client, "order")

var errOrderConflict = errors.New("order was modified concurrently")
var errTableOccupied = errors.New("table already has an active order")

// orderFilter enumerates the optional list filters instead of passing an
// open-ended dictionary to the storage layer.
type orderFilter struct {
	BranchID string
	Status   string
	TableID  string
}

func (f orderFilter) toBson() bson.M {
	filter := bson.M{}
	if f.BranchID != "" {
		filter["branch_id"] = f.BranchID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.TableID != "" {
		filter["table_id"] = f.TableID
	}
	return filter
}

type orderItemRequest struct {
	Menu_item_id string `json:"menu_item_id" validate:"required"`
	Quantity     int    `json:"quantity" validate:"required,gte=1"`
	Note         string `json:"note"`
}

type createOrderRequest struct {
	Table_id string             `json:"table_id" validate:"required"`
	Items    []orderItemRequest `json:"items" validate:"required,min=1,dive"`
	Note     string             `json:"note"`
}

type addItemsRequest struct {
	Items []orderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// buildOrderItems resolves the requested menu items and snapshots their
// name and price onto new order items. Missing or unavailable catalog
// entries abort the whole request.
func buildOrderItems(ctx context.Context, requested []orderItemRequest) ([]models.OrderItem, string) {
	ids := make([]string, 0, len(requested))
	for _, item := range requested {
		ids = append(ids, item.Menu_item_id)
	}

	cursor, err := menuItemCollection.Find(ctx, bson.M{"menu_item_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, "Error retrieving menu items"
	}
	defer cursor.Close(ctx)

	var menuItems []models.MenuItem
	if err := cursor.All(ctx, &menuItems); err != nil {
		return nil, "Error decoding menu items"
	}

	byID := make(map[string]models.MenuItem, len(menuItems))
	for _, menuItem := range menuItems {
		byID[menuItem.Menu_item_id] = menuItem
	}

	var unavailable []string
	now := time.Now()
	orderItems := make([]models.OrderItem, 0, len(requested))

	for _, request := range requested {
		menuItem, found := byID[request.Menu_item_id]
		if !found {
			return nil, "Some menu items not found"
		}
		if !menuItem.Available() {
			unavailable = append(unavailable, *menuItem.Name)
			continue
		}
		orderItems = append(orderItems, models.OrderItem{
			Item_id:      primitive.NewObjectID().Hex(),
			Menu_item_id: menuItem.Menu_item_id,
			Name:         *menuItem.Name,
			Price:        *menuItem.Price,
			Quantity:     request.Quantity,
			Note:         request.Note,
			Status:       models.ItemStatusPending,
			Priority:     models.ItemPriorityDefault,
			Created_at:   now,
		})
	}

	if len(unavailable) > 0 {
		return nil, "Items not available: " + strings.Join(unavailable, ", ")
	}

	return orderItems, ""
}

// nextOrderNumber counts the branch's orders since local midnight and
// formats the next ticket number. The count-then-insert window is narrow;
// the unique index on order_number turns a same-day race into a conflict
// the client retries.
func nextOrderNumber(ctx context.Context, branchID string) (string, error) {
	count, err := orderCollection.CountDocuments(ctx, bson.M{
		"branch_id":  branchID,
		"created_at": bson.M{"$gte": helper.StartOfDay(time.Now())},
	})
	if err != nil {
		return "", err
	}
	return helper.GenerateOrderNumber(int(count) + 1), nil
}

// replaceOrder persists the whole aggregate guarded by the version stamp
// read at load time. A lost race returns errOrderConflict instead of
// silently overwriting the other writer's change.
func replaceOrder(ctx context.Context, order *models.Order) error {
	previousVersion := order.Version
	order.Version++
	order.Updated_at = time.Now()

	result, err := orderCollection.ReplaceOne(ctx,
		bson.M{"order_id": order.Order_id, "version": previousVersion},
		order,
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return errOrderConflict
	}
	return nil
}

func occupyTable(ctx context.Context, table *models.Table, orderID string) error {
	if !table.Occupy(orderID) {
		return errTableOccupied
	}
	_, err := tableCollection.UpdateOne(ctx,
		bson.M{"table_id": table.Table_id},
		bson.M{"$set": bson.M{
			"status":           table.Status,
			"current_order_id": table.Current_order_id,
			"updated_at":       time.Now(),
		}},
	)
	return err
}

func freeTable(ctx context.Context, tableID string) error {
	var released models.Table
	released.Release()
	_, err := tableCollection.UpdateOne(ctx,
		bson.M{"table_id": tableID},
		bson.M{"$set": bson.M{
			"status":           released.Status,
			"current_order_id": released.Current_order_id,
			"updated_at":       time.Now(),
		}},
	)
	return err
}

// insertNewOrder runs the shared tail of both creation entry points:
// number the ticket, compute totals, insert, occupy the table, then notify
// the kitchen. The table update happens before the kitchen sees the order.
func insertNewOrder(ctx context.Context, w http.ResponseWriter, hub *socket.Hub, table models.Table, items []models.OrderItem, note string) {
	orderNumber, err := nextOrderNumber(ctx, table.Branch_id)
	if err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error generating order number")
		return
	}

	now := time.Now()
	order := models.Order{
		ID:             primitive.NewObjectID(),
		Order_number:   orderNumber,
		Branch_id:      table.Branch_id,
		Table_id:       table.Table_id,
		Items:          items,
		Status:         models.OrderStatusActive,
		Payment_status: models.PaymentStatusUnpaid,
		Payment_method: "cash",
		Note:           note,
		Version:        1,
		Created_at:     now,
		Updated_at:     now,
	}
	order.Order_id = order.ID.Hex()
	order.CalculateTotals()

	if _, err := orderCollection.InsertOne(ctx, order); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			helper.RespondError(w, http.StatusConflict, helper.ErrConflict, "Order number already taken, please retry")
			return
		}
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Order creation failed")
		return
	}

	if err := occupyTable(ctx, &table, order.Order_id); err != nil {
		// Order saved but table not flagged: detectable via the occupancy
		// reconciliation view, surfaced here instead of swallowed.
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Order created but table update failed")
		return
	}

	hub.EmitToKitchen(table.Branch_id, "order:new", map[string]interface{}{
		"order": order,
		"table": map[string]interface{}{"tableNumber": table.Table_number},
	})

	helper.RespondSuccess(w, http.StatusCreated, "Order created successfully", order)
}

// Get all orders with optional filters and pagination
func GetOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	recordPerPage, err := strconv.Atoi(r.URL.Query().Get("recordPerPage"))
	if err != nil || recordPerPage < 1 {
		recordPerPage = 20
	}

	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	startIndex := (page - 1) * recordPerPage

	filter := orderFilter{
		BranchID: r.URL.Query().Get("branchId"),
		Status:   r.URL.Query().Get("status"),
		TableID:  r.URL.Query().Get("tableId"),
	}

	// Only the all-branch role may look across branches.
	_, _, _, role, userBranch := middleware.GetUserFromContext(r)
	if role != models.RoleSuperadmin {
		filter.BranchID = userBranch
	}

	matchStage := bson.D{{Key: "$match", Value: filter.toBson()}}
	sortStage := bson.D{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}}
	skipStage := bson.D{{Key: "$skip", Value: startIndex}}
	limitStage := bson.D{{Key: "$limit", Value: int64(recordPerPage)}}

	cursor, err := orderCollection.Aggregate(ctx, mongo.Pipeline{matchStage, sortStage, skipStage, limitStage})
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

	totalOrders, err := orderCollection.CountDocuments(ctx, filter.toBson())
	if err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error retrieving total order count")
		return
	}

	helper.RespondSuccess(w, http.StatusOK, "Orders retrieved successfully", map[string]interface{}{
		"orders": orders,
		"pagination": map[string]interface{}{
			"current_page":     page,
			"records_per_page": recordPerPage,
			"total_orders":     totalOrders,
			"total_pages":      (totalOrders + int64(recordPerPage) - 1) / int64(recordPerPage),
		},
	})
}

func GetOrderById(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	orderId := mux.Vars(r)["order_id"]

	var order models.Order
	err := orderCollection.FindOne(ctx, bson.M{"order_id": orderId}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		helper.RespondError(w, http.StatusNotFound, helper.ErrNotFound, "Order not found")
		return
	} else if err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error retrieving order")
		return
	}

	helper.RespondSuccess(w, http.StatusOK, "Order retrieved successfully", order)
}

// Staff order creation: the order is placed against the acting user's branch.
func CreateOrder(hub *socket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var request createOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, "Invalid request body")
			return
		}
		if err := validate.Struct(request); err != nil {
			helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, err.Error())
			return
		}

		_, _, _, _, branchId := middleware.GetUserFromContext(r)
		if branchId == "" {
			helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, "User does not belong to any branch")
			return
		}

		var table models.Table
		err := tableCollection.FindOne(ctx, bson.M{"table_id": request.Table_id, "branch_id": branchId}).Decode(&table)
		if err != nil {
			helper.RespondError(w, http.StatusNotFound, helper.ErrNotFound, "Table not found in this branch")
			return
		}

		if table.Occupied() {
			helper.RespondError(w, http.StatusBadRequest, helper.ErrTableOccupied, "Table already has an active order. Please add items to existing order.")
			return
		}

		items, errMsg := buildOrderItems(ctx, request.Items)
		if errMsg != "" {
			helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, errMsg)
			return
		}

		insertNewOrder(ctx, w, hub, table, items, request.Note)
	}
}

// Public order creation through a table's QR token.
func CreateOrderFromQR(hub *socket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		qrCode := mux.Vars(r)["qr_code"]

		var request struct {
			Items []orderItemRequest `json:"items" validate:"required,min=1,dive"`
			Note  string             `json:"note"`
		}
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, "Invalid request body")
			return
		}
		if err := validate.Struct(request); err != nil {
			helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, err.Error())
			return
		}

		var table models.Table
		err := tableCollection.FindOne(ctx, bson.M{"qr_code": qrCode}).Decode(&table)
		if err != nil {
			helper.RespondError(w, http.StatusNotFound, helper.ErrNotFound, "Invalid QR code")
			return
		}

		if table.Occupied() {
			helper.RespondError(w, http.StatusBadRequest, helper.ErrTableOccupied, "Table already has an active order. Please add items to existing order.")
			return
		}

		items, errMsg := buildOrderItems(ctx, request.Items)
		if errMsg != "" {
			helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, errMsg)
			return
		}

		insertNewOrder(ctx, w, hub, table, items, request.Note)
	}
}

// Append items to an active order
func AddOrderItems(hub *socket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		orderId := mux.Vars(r)["order_id"]

		var request addItemsRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, "Invalid request body")
			return
		}
		if err := validate.Struct(request); err != nil {
			helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, err.Error())
			return
		}

		var order models.Order
		err := orderCollection.FindOne(ctx, bson.M{"order_id": orderId}).Decode(&order)
		if errors.Is(err, mongo.ErrNoDocuments) {
			helper.RespondError(w, http.StatusNotFound, helper.ErrNotFound, "Order not found")
			return
		} else if err != nil {
			helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error retrieving order")
			return
		}

		if !order.IsActive() {
			helper.RespondError(w, http.StatusBadRequest, helper.ErrOrderNotActive, "Cannot add items to completed/cancelled order")
			return
		}

		newItems, errMsg := buildOrderItems(ctx, request.Items)
		if errMsg != "" {
			helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, errMsg)
			return
		}

		order.Items = append(order.Items, newItems...)
		order.CalculateTotals()

		if err := saveOrder(ctx, w, &order); err != nil {
			return
		}

		tableNumber := lookupTableNumber(ctx, order.Table_id)
		hub.EmitToKitchen(order.Branch_id, "order:items-added", map[string]interface{}{
			"orderId":     order.Order_id,
			"orderNumber": order.Order_number,
			"newItems":    newItems,
			"tableNumber": tableNumber,
		})

		helper.RespondSuccess(w, http.StatusOK, "Items added to order", order)
	}
}

// saveOrder wraps replaceOrder with the standard error responses. Returns a
// non-nil error when a response has already been written.
func saveOrder(ctx context.Context, w http.ResponseWriter, order *models.Order) error {
	err := replaceOrder(ctx, order)
	if errors.Is(err, errOrderConflict) {
		helper.RespondError(w, http.StatusConflict, helper.ErrConflict, "Order was modified by another request, please retry")
		return err
	}
	if err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Order update failed")
		return err
	}
	return nil
}

func lookupTableNumber(ctx context.Context, tableID string) string {
	var table models.Table
	if err := tableCollection.FindOne(ctx, bson.M{"table_id": tableID}).Decode(&table); err != nil {
		return ""
	}
	return table.Table_number
}

// Move the whole ticket between lifecycle states
func UpdateOrderStatus(hub *socket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		orderId := mux.Vars(r)["order_id"]

		var request struct {
			Status string `json:"status" validate:"required"`
		}
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, "Invalid request body")
			return
		}

		if request.Status != models.OrderStatusCompleted && request.Status != models.OrderStatusCancelled {
			helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, "Invalid order status")
			return
		}

		var order models.Order
		err := orderCollection.FindOne(ctx, bson.M{"order_id": orderId}).Decode(&order)
		if errors.Is(err, mongo.ErrNoDocuments) {
			helper.RespondError(w, http.StatusNotFound, helper.ErrNotFound, "Order not found")
			return
		} else if err != nil {
			helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error retrieving order")
			return
		}

		if !order.IsActive() {
			helper.RespondError(w, http.StatusBadRequest, helper.ErrOrderNotActive, "Order is already "+order.Status)
			return
		}

		order.Status = request.Status

		if err := saveOrder(ctx, w, &order); err != nil {
			return
		}

		// Leaving the active state releases the table either way.
		if err := freeTable(ctx, order.Table_id); err != nil {
			helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Order updated but table release failed")
			return
		}

		hub.EmitToBranch(order.Branch_id, "order:updated", map[string]interface{}{
			"orderId":   order.Order_id,
			"status":    order.Status,
			"updatedAt": order.Updated_at,
		})

		helper.RespondSuccess(w, http.StatusOK, "Order status updated", order)
	}
}

// Kitchen moves an item through its preparation lifecycle
func UpdateOrderItemStatus(hub *socket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		params := mux.Vars(r)
		orderId := params["order_id"]
		itemId := params["item_id"]

		var request struct {
			Status string `json:"status" validate:"required"`
		}
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, "Invalid request body")
			return
		}

		if !models.IsValidItemStatus(request.Status) {
			helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, "Invalid item status")
			return
		}

		var order models.Order
		err := orderCollection.FindOne(ctx, bson.M{"order_id": orderId}).Decode(&order)
		if errors.Is(err, mongo.ErrNoDocuments) {
			helper.RespondError(w, http.StatusNotFound, helper.ErrNotFound, "Order not found")
			return
		} else if err != nil {
			helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error retrieving order")
			return
		}

		if !order.IsActive() {
			helper.RespondError(w, http.StatusBadRequest, helper.ErrOrderNotActive, "Cannot update items on a "+order.Status+" order")
			return
		}

		item := order.FindItem(itemId)
		if item == nil {
			helper.RespondError(w, http.StatusNotFound, helper.ErrNotFound, "Item not found in order")
			return
		}

		if models.IsTerminalItemStatus(item.Status) {
			helper.RespondError(w, http.StatusBadRequest, helper.ErrInvalidTransition,
				fmt.Sprintf("Item is already %s", item.Status))
			return
		}

		item.Status = request.Status
		// A status change into cancelled affects money; recompute regardless.
		order.CalculateTotals()

		if err := saveOrder(ctx, w, &order); err != nil {
			return
		}

		eventData := map[string]interface{}{
			"orderId":     order.Order_id,
			"orderNumber": order.Order_number,
			"itemId":      itemId,
			"itemName":    item.Name,
			"status":      item.Status,
		}

		if item.Status == models.ItemStatusReady {
			hub.EmitToWaiters(order.Branch_id, "item:ready", eventData)
		}

		hub.EmitToKitchen(order.Branch_id, "order.item_updated", eventData)
		hub.EmitToWaiters(order.Branch_id, "order.item_updated", eventData)

		helper.RespondSuccess(w, http.StatusOK, "Item status updated to "+item.Status, order)
	}
}

// Kitchen re-ranks an item in the preparation queue
func UpdateOrderItemPriority(hub *socket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		params := mux.Vars(r)
		orderId := params["order_id"]
		itemId := params["item_id"]

		var request struct {
			Priority int `json:"priority" validate:"required,gte=1,lte=10"`
		}
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, "Invalid request body")
			return
		}
		if request.Priority < models.ItemPriorityMin || request.Priority > models.ItemPriorityMax {
			helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, "Priority must be between 1 and 10")
			return
		}

		var order models.Order
		err := orderCollection.FindOne(ctx, bson.M{"order_id": orderId}).Decode(&order)
		if errors.Is(err, mongo.ErrNoDocuments) {
			helper.RespondError(w, http.StatusNotFound, helper.ErrNotFound, "Order not found")
			return
		} else if err != nil {
			helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error retrieving order")
			return
		}

		if !order.IsActive() {
			helper.RespondError(w, http.StatusBadRequest, helper.ErrOrderNotActive, "Cannot update items on a "+order.Status+" order")
			return
		}

		item := order.FindItem(itemId)
		if item == nil {
			helper.RespondError(w, http.StatusNotFound, helper.ErrNotFound, "Item not found in order")
			return
		}

		item.Priority = request.Priority

		if err := saveOrder(ctx, w, &order); err != nil {
			return
		}

		hub.EmitToKitchen(order.Branch_id, "item:priority-changed", map[string]interface{}{
			"orderId":  order.Order_id,
			"itemId":   itemId,
			"priority": item.Priority,
		})

		helper.RespondSuccess(w, http.StatusOK, "Item priority updated", order)
	}
}

// Edit the free-text note on one item
func UpdateOrderItemNote(hub *socket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		params := mux.Vars(r)
		orderId := params["order_id"]
		itemId := params["item_id"]

		var request struct {
			Note string `json:"note"`
		}
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, "Invalid request body")
			return
		}

		var order models.Order
		err := orderCollection.FindOne(ctx, bson.M{"order_id": orderId}).Decode(&order)
		if errors.Is(err, mongo.ErrNoDocuments) {
			helper.RespondError(w, http.StatusNotFound, helper.ErrNotFound, "Order not found")
			return
		} else if err != nil {
			helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error retrieving order")
			return
		}

		if !order.IsActive() {
			helper.RespondError(w, http.StatusBadRequest, helper.ErrOrderNotActive, "Cannot update items on a "+order.Status+" order")
			return
		}

		item := order.FindItem(itemId)
		if item == nil {
			helper.RespondError(w, http.StatusNotFound, helper.ErrNotFound, "Item not found in order")
			return
		}

		item.Note = request.Note

		if err := saveOrder(ctx, w, &order); err != nil {
			return
		}

		hub.EmitToKitchen(order.Branch_id, "item:note-changed", map[string]interface{}{
			"orderId": order.Order_id,
			"itemId":  itemId,
			"note":    item.Note,
		})

		helper.RespondSuccess(w, http.StatusOK, "Item note updated", order)
	}
}

// Cancel one item; served items are final and cannot be cancelled
func CancelOrderItem(hub *socket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		params := mux.Vars(r)
		orderId := params["order_id"]
		itemId := params["item_id"]

		var request struct {
			Reason string `json:"reason"`
		}
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, "Invalid request body")
			return
		}

		var order models.Order
		err := orderCollection.FindOne(ctx, bson.M{"order_id": orderId}).Decode(&order)
		if errors.Is(err, mongo.ErrNoDocuments) {
			helper.RespondError(w, http.StatusNotFound, helper.ErrNotFound, "Order not found")
			return
		} else if err != nil {
			helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error retrieving order")
			return
		}

		if !order.IsActive() {
			helper.RespondError(w, http.StatusBadRequest, helper.ErrOrderNotActive, "Cannot cancel items on a "+order.Status+" order")
			return
		}

		item := order.FindItem(itemId)
		if item == nil {
			helper.RespondError(w, http.StatusNotFound, helper.ErrNotFound, "Item not found in order")
			return
		}

		if item.Status == models.ItemStatusServed {
			helper.RespondError(w, http.StatusBadRequest, helper.ErrInvalidTransition, "Cannot cancel served item")
			return
		}
		if item.Status == models.ItemStatusCancelled {
			helper.RespondError(w, http.StatusBadRequest, helper.ErrInvalidTransition, "Item is already cancelled")
			return
		}

		item.Status = models.ItemStatusCancelled
		if request.Reason != "" {
			item.Note = "[Cancelled: " + request.Reason + "] " + item.Note
		}
		order.CalculateTotals()

		if err := saveOrder(ctx, w, &order); err != nil {
			return
		}

		hub.EmitToBranch(order.Branch_id, "item:cancelled", map[string]interface{}{
			"orderId":     order.Order_id,
			"orderNumber": order.Order_number,
			"itemId":      itemId,
			"itemName":    item.Name,
			"reason":      request.Reason,
		})

		helper.RespondSuccess(w, http.StatusOK, "Item cancelled", order)
	}
}

// Apply a promotion code to an active order. One promotion per order;
// usage quota is consumed at payment, not here.
func ApplyPromotion(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	orderId := mux.Vars(r)["order_id"]

	var request struct {
		Code string `json:"code" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.Code == "" {
		helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, "Promotion code is required")
		return
	}

	var order models.Order
	err := orderCollection.FindOne(ctx, bson.M{"order_id": orderId}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		helper.RespondError(w, http.StatusNotFound, helper.ErrNotFound, "Order not found")
		return
	} else if err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error retrieving order")
		return
	}

	if !order.IsActive() {
		helper.RespondError(w, http.StatusBadRequest, helper.ErrOrderNotActive, "Cannot apply promotion to a "+order.Status+" order")
		return
	}

	if order.Promotion_id != nil {
		helper.RespondError(w, http.StatusConflict, helper.ErrConflict, "Promotion already applied")
		return
	}

	var promotion models.Promotion
	err = promotionCollection.FindOne(ctx, bson.M{"code": strings.ToUpper(request.Code)}).Decode(&promotion)
	if errors.Is(err, mongo.ErrNoDocuments) {
		helper.RespondError(w, http.StatusNotFound, helper.ErrNotFound, "Promotion code not found")
		return
	} else if err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error retrieving promotion")
		return
	}

	if applied, reason := order.ApplyPromotion(&promotion); !applied {
		helper.RespondError(w, http.StatusBadRequest, helper.ErrPromotionInvalid, reason)
		return
	}

	if err := saveOrder(ctx, w, &order); err != nil {
		return
	}

	helper.RespondSuccess(w, http.StatusOK, "Promotion applied", order)
}

// Cashier settles the bill: unpaid -> paid, ticket completed, table freed,
// promotion usage consumed.
func CompletePayment(hub *socket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		orderId := mux.Vars(r)["order_id"]

		var order models.Order
		err := orderCollection.FindOne(ctx, bson.M{"order_id": orderId}).Decode(&order)
		if errors.Is(err, mongo.ErrNoDocuments) {
			helper.RespondError(w, http.StatusNotFound, helper.ErrNotFound, "Order not found")
			return
		} else if err != nil {
			helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error retrieving order")
			return
		}

		if order.Payment_status == models.PaymentStatusPaid {
			helper.RespondError(w, http.StatusBadRequest, helper.ErrInvalidTransition, "Order already paid")
			return
		}
		if !order.IsActive() {
			helper.RespondError(w, http.StatusBadRequest, helper.ErrOrderNotActive, "Cannot pay a "+order.Status+" order")
			return
		}

		now := time.Now()
		order.Payment_status = models.PaymentStatusPaid
		order.Payment_method = "cash"
		order.Status = models.OrderStatusCompleted
		order.Completed_at = &now

		if err := saveOrder(ctx, w, &order); err != nil {
			return
		}

		// Usage reflects completed revenue: the quota is consumed only now.
		if order.Promotion_id != nil {
			_, err := promotionCollection.UpdateOne(ctx,
				bson.M{"promotion_id": *order.Promotion_id},
				bson.M{"$inc": bson.M{"used_count": 1}},
			)
			if err != nil {
				helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Payment recorded but promotion update failed")
				return
			}
		}

		if err := freeTable(ctx, order.Table_id); err != nil {
			helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Payment recorded but table release failed")
			return
		}

		hub.EmitToBranch(order.Branch_id, "order:completed", map[string]interface{}{
			"orderId":     order.Order_id,
			"orderNumber": order.Order_number,
			"total":       order.Total,
		})

		helper.RespondSuccess(w, http.StatusOK, "Payment completed", order)
	}
}

// Cancel the whole ticket and release the table
func CancelOrder(hub *socket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		orderId := mux.Vars(r)["order_id"]

		var request struct {
			Reason string `json:"reason"`
		}
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, "Invalid request body")
			return
		}

		var order models.Order
		err := orderCollection.FindOne(ctx, bson.M{"order_id": orderId}).Decode(&order)
		if errors.Is(err, mongo.ErrNoDocuments) {
			helper.RespondError(w, http.StatusNotFound, helper.ErrNotFound, "Order not found")
			return
		} else if err != nil {
			helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error retrieving order")
			return
		}

		if !order.IsActive() {
			helper.RespondError(w, http.StatusBadRequest, helper.ErrOrderNotActive, "Cannot cancel a "+order.Status+" order")
			return
		}

		order.Status = models.OrderStatusCancelled
		order.Cancel_reason = request.Reason

		if err := saveOrder(ctx, w, &order); err != nil {
			return
		}

		if err := freeTable(ctx, order.Table_id); err != nil {
			helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Order cancelled but table release failed")
			return
		}

		hub.EmitToBranch(order.Branch_id, "order:cancelled", map[string]interface{}{
			"orderId":     order.Order_id,
			"orderNumber": order.Order_number,
			"reason":      request.Reason,
		})

		helper.RespondSuccess(w, http.StatusOK, "Order cancelled", order)
	}
}
