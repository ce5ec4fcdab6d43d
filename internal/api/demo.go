package api

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/optifi/internal/chart"
	"github.com/Veraticus/optifi/internal/model"
	"github.com/Veraticus/optifi/internal/service"
)

// DemoBackend serves generated data in-process so the dashboard can run offline.
type DemoBackend struct {
	now          time.Time
	transactions []model.Transaction
	latency      time.Duration
}

var _ service.Backend = (*DemoBackend)(nil)

type demoMerchant struct {
	name     string
	category string
	minAmt   float64
	maxAmt   float64
}

var demoMerchants = []demoMerchant{
	{"Whole Foods Market", "Groceries", 20, 200},
	{"Shell Oil", "Transportation", 30, 80},
	{"Netflix.com", "Entertainment", 15.99, 15.99},
	{"Amazon.com", "Shopping", 10, 500},
	{"Starbucks", "Coffee", 3, 12},
	{"Target", "Shopping", 15, 300},
	{"Uber", "Transportation", 8, 45},
	{"Spotify", "Entertainment", 9.99, 9.99},
	{"CVS Pharmacy", "Healthcare", 10, 150},
	{"Chipotle", "Dining Out", 8, 25},
	{"Planet Fitness", "Fitness", 10, 10},
	{"Trader Joe's", "Groceries", 25, 150},
}

// NewDemoBackend generates count transactions from seed. latency delays every call.
func NewDemoBackend(count int, seed int64, latency time.Duration) *DemoBackend {
	now := time.Now()
	return &DemoBackend{
		now:          now,
		latency:      latency,
		transactions: generateDemoTransactions(count, rand.New(rand.NewSource(seed)), now), //nolint:gosec
	}
}

func generateDemoTransactions(count int, rng *rand.Rand, now time.Time) []model.Transaction {
	transactions := make([]model.Transaction, 0, count)
	for i := 0; i < count; i++ {
		date := now.AddDate(0, 0, -(i / 3)).Format("2006-01-02")

		// One paycheck every two weeks of history.
		if i%42 == 0 {
			transactions = append(transactions, model.Transaction{
				ID:          model.ID(fmt.Sprintf("%d", i+1)),
				Description: "ACME Corp Payroll",
				Category:    "Income",
				Type:        model.TypeDeposit,
				Date:        date,
				Amount:      decimal.NewFromInt(2400),
			})
			continue
		}

		merchant := demoMerchants[rng.Intn(len(demoMerchants))]
		amount := merchant.minAmt + rng.Float64()*(merchant.maxAmt-merchant.minAmt)

		transactions = append(transactions, model.Transaction{
			ID:          model.ID(fmt.Sprintf("%d", i+1)),
			Description: merchant.name,
			Category:    merchant.category,
			Type:        model.TypeWithdrawal,
			Date:        date,
			Amount:      decimal.NewFromFloat(amount).Round(2),
		})
	}
	return transactions
}

func (d *DemoBackend) wait(ctx context.Context) error {
	if d.latency <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d.latency):
		return nil
	}
}

// Stats computes the dashboard statistics from the generated transactions.
func (d *DemoBackend) Stats(ctx context.Context) (model.Stats, error) {
	if err := d.wait(ctx); err != nil {
		return model.Stats{}, err
	}

	var income, spent decimal.Decimal
	for _, t := range d.transactions {
		if t.IsWithdrawal() {
			spent = spent.Add(t.Amount)
		} else {
			income = income.Add(t.Amount)
		}
	}

	days := decimal.NewFromInt(int64(max(1, len(d.transactions)/3)))
	saved := income.Sub(spent)
	var rate float64
	if income.IsPositive() {
		rate = saved.Div(income).Mul(decimal.NewFromInt(100)).Round(1).InexactFloat64()
	}
	avgDaily := spent.Div(days)

	return model.Stats{
		Saved:             saved.Round(2).InexactFloat64(),
		TotalSpent:        spent.Round(2).InexactFloat64(),
		AvgDaily:          avgDaily.Round(2).InexactFloat64(),
		AvgMonthly:        avgDaily.Mul(decimal.NewFromInt(30)).Round(2).InexactFloat64(),
		SavingsRate:       rate,
		MoMChange:         -4.2,
		TotalMonthlyFixed: 35.98,
		BurnRate:          96.5,
	}, nil
}

// AnalyzeAnomalies flags withdrawals well above their category average.
func (d *DemoBackend) AnalyzeAnomalies(ctx context.Context) (service.AnomalyResponse, error) {
	if err := d.wait(ctx); err != nil {
		return service.AnomalyResponse{}, err
	}

	sums := make(map[string]decimal.Decimal)
	counts := make(map[string]int64)
	for _, t := range d.transactions {
		if t.IsWithdrawal() {
			sums[t.Category] = sums[t.Category].Add(t.Amount)
			counts[t.Category]++
		}
	}

	anomalies := []model.Anomaly{}
	for _, t := range d.transactions {
		if !t.IsWithdrawal() {
			continue
		}
		avg := sums[t.Category].Div(decimal.NewFromInt(counts[t.Category]))
		if t.Amount.LessThanOrEqual(avg.Mul(decimal.NewFromInt(2))) {
			continue
		}
		ratio := t.Amount.Div(avg).Round(1)
		anomalies = append(anomalies, model.Anomaly{
			ID:          t.ID,
			Description: t.Description,
			Category:    t.Category,
			Date:        t.Date,
			Amount:      t.Amount,
			Severity:    "medium",
			FlagReasons: []string{fmt.Sprintf("amount %sx category average", ratio)},
		})
	}

	return service.AnomalyResponse{Anomalies: anomalies, Present: true}, nil
}

// Transactions returns a copy of the generated transactions.
func (d *DemoBackend) Transactions(ctx context.Context) ([]model.Transaction, error) {
	if err := d.wait(ctx); err != nil {
		return nil, err
	}
	out := make([]model.Transaction, len(d.transactions))
	copy(out, d.transactions)
	return out, nil
}

var chartWords = []string{"chart", "graph", "plot", "visualize", "visual"}

// Chat answers with a canned reply and attaches a chart when the message asks for one.
func (d *DemoBackend) Chat(ctx context.Context, req service.ChatRequest) (service.ChatResponse, error) {
	if err := d.wait(ctx); err != nil {
		return service.ChatResponse{}, err
	}

	resp := service.ChatResponse{
		Reply: fmt.Sprintf("You have %d transactions on record. Coffee and dining are the easiest places to trim.", len(d.transactions)),
	}
	lower := strings.ToLower(req.Message)
	for _, word := range chartWords {
		if strings.Contains(lower, word) {
			spec := d.monthlySpend()
			resp.Visualization = &spec
			break
		}
	}
	return resp, nil
}

// Forecast compares the goal with the average savings pace.
func (d *DemoBackend) Forecast(ctx context.Context, req model.GoalForecastRequest) (service.ForecastResponse, error) {
	if err := d.wait(ctx); err != nil {
		return service.ForecastResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return service.ForecastResponse{Error: "Missing goal data"}, nil
	}

	months := req.Date.Sub(d.now).Hours() / 24 / 30
	if months < 1 {
		months = 1
	}
	monthly := req.Amount.Div(decimal.NewFromFloat(months)).Round(2)
	status := model.ForecastOnTrack
	if monthly.GreaterThan(decimal.NewFromInt(800)) {
		status = model.ForecastAtRisk
	}

	return service.ForecastResponse{
		Message: fmt.Sprintf("To reach %s you need to save about $%s a month.", req.Name, monthly.StringFixed(2)),
		Status:  status,
	}, nil
}

// Subscriptions lists merchants with fixed recurring amounts.
func (d *DemoBackend) Subscriptions(ctx context.Context) (service.SubscriptionsResponse, error) {
	if err := d.wait(ctx); err != nil {
		return service.SubscriptionsResponse{}, err
	}

	subs := []model.Subscription{}
	for _, m := range demoMerchants {
		if m.minAmt != m.maxAmt {
			continue
		}
		subs = append(subs, model.Subscription{
			Name:      m.name,
			Amount:    decimal.NewFromFloat(m.minAmt),
			Type:      model.SubscriptionTypeConfirmed,
			Note:      "Charged the same amount every month.",
			Frequency: "monthly",
		})
	}
	return service.SubscriptionsResponse{Subscriptions: subs}, nil
}

// Visualize returns spending by day for prompts mentioning days and by category otherwise.
func (d *DemoBackend) Visualize(ctx context.Context, prompt string) (service.VisualizeResponse, error) {
	if err := d.wait(ctx); err != nil {
		return service.VisualizeResponse{}, err
	}

	lower := strings.ToLower(prompt)
	var spec model.ChartSpec
	switch {
	case strings.TrimSpace(lower) == "":
		return service.VisualizeResponse{Error: "Please describe the chart you want."}, nil
	case strings.Contains(lower, "day") || strings.Contains(lower, "daily"):
		spec = d.dailySpend(7)
	case strings.Contains(lower, "month") || strings.Contains(lower, "trend"):
		spec = d.monthlySpend()
	default:
		spec = chart.DefaultSpec(d.transactions)
	}
	return service.VisualizeResponse{Visualization: &spec}, nil
}

func (d *DemoBackend) dailySpend(days int) model.ChartSpec {
	totals := make(map[string]decimal.Decimal)
	for _, t := range d.transactions {
		if t.IsWithdrawal() {
			totals[t.Date] = totals[t.Date].Add(t.Amount)
		}
	}

	data := make([]model.Row, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := d.now.AddDate(0, 0, -i).Format("2006-01-02")
		data = append(data, model.Row{"date": day, "amount": totals[day].Round(2).InexactFloat64()})
	}

	return model.ChartSpec{
		ChartType: model.ChartBar,
		Title:     "Daily Spending",
		Summary:   fmt.Sprintf("Spending over the last %d days.", days),
		DataKey:   "amount",
		XAxisKey:  "date",
		Data:      data,
	}
}

func (d *DemoBackend) monthlySpend() model.ChartSpec {
	var order []string
	totals := make(map[string]decimal.Decimal)
	for _, t := range d.transactions {
		if !t.IsWithdrawal() || len(t.Date) < 7 {
			continue
		}
		month := t.Date[:7] + "-01"
		if _, ok := totals[month]; !ok {
			order = append(order, month)
		}
		totals[month] = totals[month].Add(t.Amount)
	}

	var sum decimal.Decimal
	for _, v := range totals {
		sum = sum.Add(v)
	}

	data := make([]model.Row, 0, len(order))
	for i := len(order) - 1; i >= 0; i-- {
		month := order[i]
		row := model.Row{"month": month, "amount": totals[month].Round(2).InexactFloat64()}
		if len(order) > 1 && totals[month].GreaterThan(sum.Div(decimal.NewFromInt(int64(len(order)))).Mul(decimal.NewFromFloat(1.5))) {
			row["is_anomaly"] = true
		}
		data = append(data, row)
	}

	return model.ChartSpec{
		ChartType: model.ChartLine,
		Title:     "Monthly Spending",
		Summary:   "Spending per month. Unusual months are highlighted.",
		DataKey:   "amount",
		XAxisKey:  "month",
		Data:      data,
	}
}
