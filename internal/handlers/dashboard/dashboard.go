package dashboard

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-tracker/internal/auth"
	"github.com/carson-networks/finance-tracker/internal/handlers/apierror"
	"github.com/carson-networks/finance-tracker/internal/handlers/transaction"
	"github.com/carson-networks/finance-tracker/internal/logging"
	"github.com/carson-networks/finance-tracker/internal/service"
)

type Stats struct {
	TotalBalance  float64 `json:"total_balance" doc:"This month's income minus expenses"`
	TotalIncome   float64 `json:"total_income"`
	TotalExpenses float64 `json:"total_expenses"`
	SavingsRate   float64 `json:"savings_rate" doc:"Balance as a percentage of income, 0 without income"`
	BalanceChange float64 `json:"balance_change" doc:"Percent change against last month"`
	IncomeChange  float64 `json:"income_change" doc:"Percent change against last month"`
	ExpenseChange float64 `json:"expense_change" doc:"Percent change against last month"`
}

type BreakdownItem struct {
	Name  string  `json:"name" doc:"Category name"`
	Value float64 `json:"value" doc:"Sum of this month's expenses in the category"`
}

type GetDashboardResponseBody struct {
	Stats              Stats                     `json:"stats"`
	ExpenseBreakdown   []BreakdownItem           `json:"expense_breakdown"`
	RecentTransactions []transaction.Transaction `json:"recent_transactions" doc:"Ten most recent transactions, newest first"`
}

type GetDashboardOutput struct {
	Body GetDashboardResponseBody
}

type dashboardGetter interface {
	GetDashboard(ctx context.Context, userID uuid.UUID, now time.Time) (*service.Dashboard, error)
}

// GetDashboardHandler handles GET /dashboard.
type GetDashboardHandler struct {
	DashboardService dashboardGetter
	now              func() time.Time
}

func NewGetDashboardHandler(svc dashboardGetter) *GetDashboardHandler {
	return &GetDashboardHandler{
		DashboardService: svc,
		now:              time.Now,
	}
}

func (h *GetDashboardHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-dashboard",
		Method:      http.MethodGet,
		Path:        "/dashboard",
		Summary:     "Get dashboard",
		Description: "Returns this month's statistics, the expense breakdown and recent transactions.",
		Tags:        []string{"Dashboard"},
		Security:    []map[string][]string{{auth.SecuritySchemeName: {}}},
	}, h.handle)
}

func (h *GetDashboardHandler) handle(ctx context.Context, _ *struct{}) (*GetDashboardOutput, error) {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("missing authorization token")
	}

	logData := logging.GetLogData(ctx)
	logData.AddData("userID", userID.String())

	endTimer := logData.AddTiming("dashboardMs")
	dash, err := h.DashboardService.GetDashboard(ctx, userID, h.now().UTC())
	endTimer()
	if err != nil {
		return nil, apierror.FromService(ctx, err, "failed to load dashboard")
	}

	body := GetDashboardResponseBody{
		Stats: Stats{
			TotalBalance:  dash.Stats.TotalBalance.InexactFloat64(),
			TotalIncome:   dash.Stats.TotalIncome.InexactFloat64(),
			TotalExpenses: dash.Stats.TotalExpenses.InexactFloat64(),
			SavingsRate:   dash.Stats.SavingsRate,
			BalanceChange: dash.Stats.BalanceChange,
			IncomeChange:  dash.Stats.IncomeChange,
			ExpenseChange: dash.Stats.ExpenseChange,
		},
		ExpenseBreakdown:   make([]BreakdownItem, 0, len(dash.ExpenseBreakdown)),
		RecentTransactions: make([]transaction.Transaction, 0, len(dash.RecentTransactions)),
	}
	for _, item := range dash.ExpenseBreakdown {
		body.ExpenseBreakdown = append(body.ExpenseBreakdown, BreakdownItem{Name: item.Name, Value: item.Value.InexactFloat64()})
	}
	for _, tx := range dash.RecentTransactions {
		body.RecentTransactions = append(body.RecentTransactions, transaction.NewTransaction(tx))
	}
	logData.AddData("transactionCount", len(body.RecentTransactions))

	return &GetDashboardOutput{Body: body}, nil
}
