package controller

import (
	"context"
	"net/http"
	"strconv"
	"time"

	helper "github.com/dineflow/Restaurant_POS_Backend/helper"
	"github.com/dineflow/Restaurant_POS_Backend/models"

	"go.mongodb.org/mongo-driver/bson"
)

// GetDashboard summarizes today's activity for a branch: orders by status,
// revenue and discounts from completed payments, and live table occupancy.
func GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	branchId := resolveBranch(r)

	startOfDay := helper.StartOfDay(time.Now())

	matchStage := bson.D{{Key: "$match", Value: bson.D{
		{Key: "branch_id", Value: branchId},
		{Key: "created_at", Value: bson.D{{Key: "$gte", Value: startOfDay}}},
	}}}
	groupStage := bson.D{{Key: "$group", Value: bson.D{
		{Key: "_id", Value: "$status"},
		{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		{Key: "revenue", Value: bson.D{{Key: "$sum", Value: "$total"}}},
		{Key: "discount", Value: bson.D{{Key: "$sum", Value: "$discount"}}},
	}}}

	cursor, err := orderCollection.Aggregate(ctx, []bson.D{matchStage, groupStage})
	if err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error computing dashboard stats")
		return
	}
	defer cursor.Close(ctx)

	var groups []struct {
		Status   string `bson:"_id"`
		Count    int64  `bson:"count"`
		Revenue  int64  `bson:"revenue"`
		Discount int64  `bson:"discount"`
	}
	if err := cursor.All(ctx, &groups); err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error decoding dashboard stats")
		return
	}

	var totalOrders, activeOrders, completedOrders, cancelledOrders int64
	var revenue, discountGiven int64
	for _, g := range groups {
		totalOrders += g.Count
		switch g.Status {
		case models.OrderStatusActive:
			activeOrders = g.Count
		case models.OrderStatusCompleted:
			completedOrders = g.Count
			// Only settled orders count toward revenue
			revenue = g.Revenue
			discountGiven = g.Discount
		case models.OrderStatusCancelled:
			cancelledOrders = g.Count
		}
	}

	totalTables, err := tableCollection.CountDocuments(ctx, bson.M{"branch_id": branchId})
	if err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error counting tables")
		return
	}
	occupiedTables, err := tableCollection.CountDocuments(ctx, bson.M{
		"branch_id": branchId,
		"status":    models.TableStatusOccupied,
	})
	if err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error counting tables")
		return
	}

	helper.RespondSuccess(w, http.StatusOK, "Dashboard stats retrieved successfully", map[string]interface{}{
		"date":             startOfDay.Format("2006-01-02"),
		"total_orders":     totalOrders,
		"active_orders":    activeOrders,
		"completed_orders": completedOrders,
		"cancelled_orders": cancelledOrders,
		"revenue":          revenue,
		"discount_given":   discountGiven,
		"total_tables":     totalTables,
		"occupied_tables":  occupiedTables,
	})
}

// parseStatsRange reads the optional from/to query params (YYYY-MM-DD). The
// "to" day is included in the range. Reports false after writing the error
// response itself.
func parseStatsRange(w http.ResponseWriter, r *http.Request, defaultDays int) (time.Time, time.Time, bool) {
	from := helper.StartOfDay(time.Now().AddDate(0, 0, -(defaultDays - 1)))
	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, "Invalid from date, expected YYYY-MM-DD")
			return time.Time{}, time.Time{}, false
		}
		from = parsed
	}
	to := time.Now()
	if raw := r.URL.Query().Get("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, "Invalid to date, expected YYYY-MM-DD")
			return time.Time{}, time.Time{}, false
		}
		to = parsed.AddDate(0, 0, 1)
	}
	return from, to, true
}

// GetRevenue groups completed orders per calendar day over a date range
// (default: last 7 days).
func GetRevenue(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	branchId := resolveBranch(r)

	from, to, ok := parseStatsRange(w, r, 7)
	if !ok {
		return
	}

	matchStage := bson.D{{Key: "$match", Value: bson.D{
		{Key: "branch_id", Value: branchId},
		{Key: "status", Value: models.OrderStatusCompleted},
		{Key: "completed_at", Value: bson.D{
			{Key: "$gte", Value: from},
			{Key: "$lt", Value: to},
		}},
	}}}
	groupStage := bson.D{{Key: "$group", Value: bson.D{
		{Key: "_id", Value: bson.D{
			{Key: "$dateToString", Value: bson.D{
				{Key: "format", Value: "%Y-%m-%d"},
				{Key: "date", Value: "$completed_at"},
			}},
		}},
		{Key: "orders", Value: bson.D{{Key: "$sum", Value: 1}}},
		{Key: "revenue", Value: bson.D{{Key: "$sum", Value: "$total"}}},
		{Key: "discount", Value: bson.D{{Key: "$sum", Value: "$discount"}}},
	}}}
	sortStage := bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}}

	cursor, err := orderCollection.Aggregate(ctx, []bson.D{matchStage, groupStage, sortStage})
	if err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error computing revenue stats")
		return
	}
	defer cursor.Close(ctx)

	var days []struct {
		Date     string `bson:"_id" json:"date"`
		Orders   int64  `bson:"orders" json:"orders"`
		Revenue  int64  `bson:"revenue" json:"revenue"`
		Discount int64  `bson:"discount" json:"discount"`
	}
	if err := cursor.All(ctx, &days); err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error decoding revenue stats")
		return
	}

	helper.RespondSuccess(w, http.StatusOK, "Revenue stats retrieved successfully", days)
}

// GetOccupancyMismatches surfaces active orders whose table no longer points
// back at them. Crashes between the order write and the table write can leave
// the two out of sync; this view lets an admin spot and fix those seats.
func GetOccupancyMismatches(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	branchId := resolveBranch(r)

	cursor, err := orderCollection.Find(ctx, bson.M{
		"branch_id": branchId,
		"status":    models.OrderStatusActive,
	})
	if err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error occurred while listing orders")
		return
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error decoding order data")
		return
	}

	mismatches := []map[string]interface{}{}
	for _, order := range orders {
		var table models.Table
		err := tableCollection.FindOne(ctx, bson.M{"table_id": order.Table_id}).Decode(&table)
		if err != nil {
			mismatches = append(mismatches, map[string]interface{}{
				"order_id":     order.Order_id,
				"order_number": order.Order_number,
				"table_id":     order.Table_id,
				"problem":      "table missing",
			})
			continue
		}
		if table.Current_order_id == nil || *table.Current_order_id != order.Order_id {
			mismatches = append(mismatches, map[string]interface{}{
				"order_id":     order.Order_id,
				"order_number": order.Order_number,
				"table_id":     order.Table_id,
				"table_number": table.Table_number,
				"table_status": table.Status,
				"problem":      "table does not reference order",
			})
		}
	}

	helper.RespondSuccess(w, http.StatusOK, "Occupancy check completed", mismatches)
}

// GetTopItems ranks menu items by quantity sold in completed orders over a
// date range (default: last 30 days). Cancelled item lines are excluded.
func GetTopItems(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	branchId := resolveBranch(r)

	from, to, ok := parseStatsRange(w, r, 30)
	if !ok {
		return
	}

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 {
		limit = 10
	}

	matchStage := bson.D{{Key: "$match", Value: bson.D{
		{Key: "branch_id", Value: branchId},
		{Key: "status", Value: models.OrderStatusCompleted},
		{Key: "completed_at", Value: bson.D{
			{Key: "$gte", Value: from},
			{Key: "$lt", Value: to},
		}},
	}}}
	unwindStage := bson.D{{Key: "$unwind", Value: "$items"}}
	itemMatchStage := bson.D{{Key: "$match", Value: bson.D{
		{Key: "items.status", Value: bson.D{{Key: "$ne", Value: models.ItemStatusCancelled}}},
	}}}
	groupStage := bson.D{{Key: "$group", Value: bson.D{
		{Key: "_id", Value: "$items.menu_item_id"},
		{Key: "name", Value: bson.D{{Key: "$first", Value: "$items.name"}}},
		{Key: "quantity", Value: bson.D{{Key: "$sum", Value: "$items.quantity"}}},
		{Key: "revenue", Value: bson.D{{Key: "$sum", Value: bson.D{
			{Key: "$multiply", Value: bson.A{"$items.price", "$items.quantity"}},
		}}}},
	}}}
	sortStage := bson.D{{Key: "$sort", Value: bson.D{{Key: "quantity", Value: -1}}}}
	limitStage := bson.D{{Key: "$limit", Value: int64(limit)}}

	cursor, err := orderCollection.Aggregate(ctx, []bson.D{matchStage, unwindStage, itemMatchStage, groupStage, sortStage, limitStage})
	if err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error computing top items")
		return
	}
	defer cursor.Close(ctx)

	var items []struct {
		MenuItemID string `bson:"_id" json:"menu_item_id"`
		Name       string `bson:"name" json:"name"`
		Quantity   int64  `bson:"quantity" json:"quantity"`
		Revenue    int64  `bson:"revenue" json:"revenue"`
	}
	if err := cursor.All(ctx, &items); err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error decoding top items")
		return
	}

	helper.RespondSuccess(w, http.StatusOK, "Top items retrieved successfully", items)
}

// GetOrdersByHour buckets one day's orders by creation hour. Every hour 0-23
// appears in the response, zero-filled, so charts need no gap handling.
func GetOrdersByHour(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	branchId := resolveBranch(r)

	day := helper.StartOfDay(time.Now())
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			helper.RespondError(w, http.StatusBadRequest, helper.ErrBadRequest, "Invalid date, expected YYYY-MM-DD")
			return
		}
		day = parsed
	}
	nextDay := day.AddDate(0, 0, 1)

	matchStage := bson.D{{Key: "$match", Value: bson.D{
		{Key: "branch_id", Value: branchId},
		{Key: "created_at", Value: bson.D{
			{Key: "$gte", Value: day},
			{Key: "$lt", Value: nextDay},
		}},
	}}}
	groupStage := bson.D{{Key: "$group", Value: bson.D{
		{Key: "_id", Value: bson.D{{Key: "$hour", Value: "$created_at"}}},
		{Key: "orders", Value: bson.D{{Key: "$sum", Value: 1}}},
		{Key: "revenue", Value: bson.D{{Key: "$sum", Value: "$total"}}},
	}}}
	sortStage := bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}}

	cursor, err := orderCollection.Aggregate(ctx, []bson.D{matchStage, groupStage, sortStage})
	if err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error computing hourly stats")
		return
	}
	defer cursor.Close(ctx)

	var buckets []struct {
		Hour    int   `bson:"_id"`
		Orders  int64 `bson:"orders"`
		Revenue int64 `bson:"revenue"`
	}
	if err := cursor.All(ctx, &buckets); err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error decoding hourly stats")
		return
	}

	type hourRow struct {
		Hour    int   `json:"hour"`
		Orders  int64 `json:"orders"`
		Revenue int64 `json:"revenue"`
	}
	hours := make([]hourRow, 24)
	for i := range hours {
		hours[i].Hour = i
	}
	for _, b := range buckets {
		if b.Hour >= 0 && b.Hour < 24 {
			hours[b.Hour].Orders = b.Orders
			hours[b.Hour].Revenue = b.Revenue
		}
	}

	helper.RespondSuccess(w, http.StatusOK, "Orders by hour retrieved successfully", hours)
}

// CompareBranches ranks all branches by completed revenue over a date range
// (default: last 30 days). All-branch view, so the route gates it to the
// superadmin role.
func CompareBranches(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	from, to, ok := parseStatsRange(w, r, 30)
	if !ok {
		return
	}

	matchStage := bson.D{{Key: "$match", Value: bson.D{
		{Key: "status", Value: models.OrderStatusCompleted},
		{Key: "completed_at", Value: bson.D{
			{Key: "$gte", Value: from},
			{Key: "$lt", Value: to},
		}},
	}}}
	groupStage := bson.D{{Key: "$group", Value: bson.D{
		{Key: "_id", Value: "$branch_id"},
		{Key: "orders", Value: bson.D{{Key: "$sum", Value: 1}}},
		{Key: "revenue", Value: bson.D{{Key: "$sum", Value: "$total"}}},
		{Key: "discount", Value: bson.D{{Key: "$sum", Value: "$discount"}}},
	}}}
	lookupStage := bson.D{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: "branch"},
		{Key: "localField", Value: "_id"},
		{Key: "foreignField", Value: "branch_id"},
		{Key: "as", Value: "branch"},
	}}}
	unwindStage := bson.D{{Key: "$unwind", Value: "$branch"}}
	projectStage := bson.D{{Key: "$project", Value: bson.D{
		{Key: "branch_id", Value: "$_id"},
		{Key: "branch_name", Value: "$branch.name"},
		{Key: "orders", Value: 1},
		{Key: "revenue", Value: 1},
		{Key: "discount", Value: 1},
	}}}
	sortStage := bson.D{{Key: "$sort", Value: bson.D{{Key: "revenue", Value: -1}}}}

	cursor, err := orderCollection.Aggregate(ctx, []bson.D{matchStage, groupStage, lookupStage, unwindStage, projectStage, sortStage})
	if err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error comparing branches")
		return
	}
	defer cursor.Close(ctx)

	var branches []struct {
		BranchID   string `bson:"branch_id" json:"branch_id"`
		BranchName string `bson:"branch_name" json:"branch_name"`
		Orders     int64  `bson:"orders" json:"orders"`
		Revenue    int64  `bson:"revenue" json:"revenue"`
		Discount   int64  `bson:"discount" json:"discount"`
	}
	if err := cursor.All(ctx, &branches); err != nil {
		helper.RespondError(w, http.StatusInternalServerError, helper.ErrInternal, "Error decoding branch comparison")
		return
	}

	helper.RespondSuccess(w, http.StatusOK, "Branch comparison retrieved successfully", branches)
}
