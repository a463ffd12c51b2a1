// Package api defines the request and response messages of the tripsplit.v1
// Connect services. Messages are plain structs encoded as JSON; optional fields
// are pointers so partial updates can tell "unset" from a zero value.
package api

// Trip is the wire form of a trip.
type Trip struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Destination       string  `json:"destination"`
	DepartureLocation string  `json:"departure_location,omitempty"`
	StartDate         int64   `json:"start_date,omitempty"`
	EndDate           int64   `json:"end_date,omitempty"`
	Currency          string  `json:"currency"`
	ChildFactor       float64 `json:"child_factor"`
	RoundingRule      int     `json:"rounding_rule"`
	InviteCode        string  `json:"invite_code"`
	CreatedAt         int64   `json:"created_at"`
	UpdatedAt         int64   `json:"updated_at"`
}

type CreateTripRequest struct {
	Name              string   `json:"name"`
	Destination       string   `json:"destination"`
	DepartureLocation string   `json:"departure_location,omitempty"`
	StartDate         int64    `json:"start_date,omitempty"`
	EndDate           int64    `json:"end_date,omitempty"`
	Currency          string   `json:"currency,omitempty"`
	ChildFactor       *float64 `json:"child_factor,omitempty"`
	RoundingRule      *int     `json:"rounding_rule,omitempty"`
}

type CreateTripResponse struct {
	Trip *Trip `json:"trip"`
}

type GetTripRequest struct {
	TripID string `json:"trip_id"`
}

type GetTripResponse struct {
	Trip *Trip `json:"trip"`
}

type GetTripByInviteCodeRequest struct {
	InviteCode string `json:"invite_code"`
}

type GetTripByInviteCodeResponse struct {
	Trip *Trip `json:"trip"`
}

type ListTripsRequest struct {
	Offset int `json:"offset,omitempty"`
	Limit  int `json:"limit,omitempty"`
}

type ListTripsResponse struct {
	Trips []*Trip `json:"trips"`
}

type UpdateTripRequest struct {
	TripID            string   `json:"trip_id"`
	Name              *string  `json:"name,omitempty"`
	Destination       *string  `json:"destination,omitempty"`
	DepartureLocation *string  `json:"departure_location,omitempty"`
	StartDate         *int64   `json:"start_date,omitempty"`
	EndDate           *int64   `json:"end_date,omitempty"`
	Currency          *string  `json:"currency,omitempty"`
	ChildFactor       *float64 `json:"child_factor,omitempty"`
	RoundingRule      *int     `json:"rounding_rule,omitempty"`
}

type UpdateTripResponse struct {
	Trip *Trip `json:"trip"`
}

type DeleteTripRequest struct {
	TripID string `json:"trip_id"`
}

type DeleteTripResponse struct{}

// Member is the wire form of a trip member.
type Member struct {
	ID        string  `json:"id"`
	TripID    string  `json:"trip_id"`
	Name      string  `json:"name"`
	Factor    float64 `json:"factor"`
	IsChild   bool    `json:"is_child"`
	CreatedAt int64   `json:"created_at"`
}

type CreateMemberRequest struct {
	TripID string `json:"trip_id"`
	Name   string `json:"name"`
	// Factor overrides the default weight (1.0, or the trip's child factor).
	Factor  *float64 `json:"factor,omitempty"`
	IsChild bool     `json:"is_child,omitempty"`
}

type CreateMemberResponse struct {
	Member *Member `json:"member"`
}

type GetMemberRequest struct {
	MemberID string `json:"member_id"`
}

type GetMemberResponse struct {
	Member *Member `json:"member"`
}

type ListMembersRequest struct {
	TripID string `json:"trip_id"`
}

type ListMembersResponse struct {
	Members []*Member `json:"members"`
}

type UpdateMemberRequest struct {
	MemberID string   `json:"member_id"`
	Name     *string  `json:"name,omitempty"`
	Factor   *float64 `json:"factor,omitempty"`
	IsChild  *bool    `json:"is_child,omitempty"`
}

type UpdateMemberResponse struct {
	Member *Member `json:"member"`
}

type DeleteMemberRequest struct {
	MemberID string `json:"member_id"`
}

type DeleteMemberResponse struct{}

// Activity is the wire form of an itinerary entry.
type Activity struct {
	ID          string   `json:"id"`
	TripID      string   `json:"trip_id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Location    string   `json:"location,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	StartTime   int64    `json:"start_time,omitempty"`
	EndTime     int64    `json:"end_time,omitempty"`
	CreatedAt   int64    `json:"created_at"`
	UpdatedAt   int64    `json:"updated_at"`
}

type CreateActivityRequest struct {
	TripID      string   `json:"trip_id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Location    string   `json:"location,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	StartTime   int64    `json:"start_time,omitempty"`
	EndTime     int64    `json:"end_time,omitempty"`
}

type CreateActivityResponse struct {
	Activity *Activity `json:"activity"`
}

type GetActivityRequest struct {
	ActivityID string `json:"activity_id"`
}

type GetActivityResponse struct {
	Activity *Activity `json:"activity"`
}

type ListActivitiesRequest struct {
	TripID string `json:"trip_id"`
	// Date keeps only activities starting on this day (YYYY-MM-DD, UTC).
	Date string `json:"date,omitempty"`
}

type ListActivitiesResponse struct {
	Activities []*Activity `json:"activities"`
}

type UpdateActivityRequest struct {
	ActivityID  string   `json:"activity_id"`
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Location    *string  `json:"location,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	StartTime   *int64   `json:"start_time,omitempty"`
	EndTime     *int64   `json:"end_time,omitempty"`
}

type UpdateActivityResponse struct {
	Activity *Activity `json:"activity"`
}

type DeleteActivityRequest struct {
	ActivityID string `json:"activity_id"`
}

type DeleteActivityResponse struct{}

// Expense is the wire form of an expense.
type Expense struct {
	ID           string  `json:"id"`
	TripID       string  `json:"trip_id"`
	ActivityID   string  `json:"activity_id,omitempty"`
	PaidBy       string  `json:"paid_by"`
	Description  string  `json:"description"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
	ExchangeRate float64 `json:"exchange_rate"`
	Category     string  `json:"category"`
	IsShared     bool    `json:"is_shared"`
	ExpenseDate  int64   `json:"expense_date"`
	CreatedAt    int64   `json:"created_at"`
	UpdatedAt    int64   `json:"updated_at"`
}

type CreateExpenseRequest struct {
	TripID      string  `json:"trip_id"`
	PaidBy      string  `json:"paid_by"`
	ActivityID  string  `json:"activity_id,omitempty"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	// Currency defaults to the trip's base currency.
	Currency     string   `json:"currency,omitempty"`
	ExchangeRate *float64 `json:"exchange_rate,omitempty"`
	Category     string   `json:"category,omitempty"`
	IsShared     *bool    `json:"is_shared,omitempty"`
	ExpenseDate  int64    `json:"expense_date,omitempty"`
}

type CreateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type GetExpenseRequest struct {
	ExpenseID string `json:"expense_id"`
}

type GetExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type ListExpensesRequest struct {
	TripID   string `json:"trip_id"`
	Category string `json:"category,omitempty"`
	PaidBy   string `json:"paid_by,omitempty"`
	// Date keeps only expenses made on this day (YYYY-MM-DD, UTC).
	Date     string `json:"date,omitempty"`
	IsShared *bool  `json:"is_shared,omitempty"`
	Offset   int    `json:"offset,omitempty"`
	Limit    int    `json:"limit,omitempty"`
}

type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

type UpdateExpenseRequest struct {
	ExpenseID string  `json:"expense_id"`
	PaidBy    *string `json:"paid_by,omitempty"`
	// ActivityID set to "" untags the expense.
	ActivityID   *string  `json:"activity_id,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Amount       *float64 `json:"amount,omitempty"`
	Currency     *string  `json:"currency,omitempty"`
	ExchangeRate *float64 `json:"exchange_rate,omitempty"`
	Category     *string  `json:"category,omitempty"`
	IsShared     *bool    `json:"is_shared,omitempty"`
	ExpenseDate  *int64   `json:"expense_date,omitempty"`
}

type UpdateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type DeleteExpenseRequest struct {
	ExpenseID string `json:"expense_id"`
}

type DeleteExpenseResponse struct{}

type GetTripStatisticsRequest struct {
	TripID string `json:"trip_id"`
}

type ExpenseByCategory struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

type ExpenseByDay struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

type ExpenseByMember struct {
	MemberID   string  `json:"member_id"`
	MemberName string  `json:"member_name"`
	Amount     float64 `json:"amount"`
}

type GetTripStatisticsResponse struct {
	TripID             string               `json:"trip_id"`
	Currency           string               `json:"currency"`
	TotalShared        float64              `json:"total_shared"`
	ExpensesByCategory []*ExpenseByCategory `json:"expenses_by_category"`
	ExpensesByDay      []*ExpenseByDay      `json:"expenses_by_day"`
	ExpensesByMember   []*ExpenseByMember   `json:"expenses_by_member"`
}

// MemberBalance is one member's position in a settlement report.
// Positive Balance = should receive money, negative = should pay.
type MemberBalance struct {
	MemberID   string  `json:"member_id"`
	MemberName string  `json:"member_name"`
	TotalPaid  float64 `json:"total_paid"`
	TotalOwed  float64 `json:"total_owed"`
	Balance    float64 `json:"balance"`
}

type SettlementTransaction struct {
	FromMemberID   string  `json:"from_member_id"`
	FromMemberName string  `json:"from_member_name"`
	ToMemberID     string  `json:"to_member_id"`
	ToMemberName   string  `json:"to_member_name"`
	Amount         float64 `json:"amount"`
}

type SettlementReport struct {
	TripID                 string                   `json:"trip_id"`
	TripName               string                   `json:"trip_name"`
	Currency               string                   `json:"currency"`
	TotalExpenses          float64                  `json:"total_expenses"`
	TotalSharedExpenses    float64                  `json:"total_shared_expenses"`
	MemberBalances         []*MemberBalance         `json:"member_balances"`
	SettlementTransactions []*SettlementTransaction `json:"settlement_transactions"`
}

type GetSettlementReportRequest struct {
	TripID string `json:"trip_id"`
}

type GetSettlementReportResponse struct {
	Report *SettlementReport `json:"report"`
}
