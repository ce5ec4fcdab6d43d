package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Veraticus/optifi/internal/cli"
	"github.com/Veraticus/optifi/internal/common"
	"github.com/Veraticus/optifi/internal/model"
)

const goalDateLayout = "2006-01-02"

func forecastCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "forecast",
		Short:   "Check whether a savings goal is reachable",
		Example: `  optifi forecast --name "New car" --amount 5000 --date 2027-06-01`,
		RunE:    runForecast,
	}

	cmd.Flags().String("name", "", "goal name")
	cmd.Flags().String("amount", "", "target amount in dollars")
	cmd.Flags().String("date", "", "target date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func parseGoal(name, amount, date string) (model.GoalForecastRequest, error) {
	amt, err := decimal.NewFromString(amount)
	if err != nil {
		return model.GoalForecastRequest{}, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	when, err := time.Parse(goalDateLayout, date)
	if err != nil {
		return model.GoalForecastRequest{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", date, err)
	}
	return model.GoalForecastRequest{Name: name, Amount: amt, Date: when}, nil
}

func runForecast(cmd *cobra.Command, _ []string) error {
	name, _ := cmd.Flags().GetString("name")
	amount, _ := cmd.Flags().GetString("amount")
	date, _ := cmd.Flags().GetString("date")

	req, err := parseGoal(name, amount, date)
	if err != nil {
		return err
	}

	d, err := newDashboard(appCfg)
	if err != nil {
		return err
	}

	handler := cli.NewInterruptHandler(cmd.ErrOrStderr())
	ctx := handler.HandleInterrupts(cmd.Context(), "Forecast")

	err = d.ForecastGoal(ctx, req)
	if handler.WasInterrupted() {
		return nil
	}
	if errors.Is(err, common.ErrInvalidGoal) {
		return err
	}
	// Other failures show the connection fallback in the forecast slot.
	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatTitle(req.Name))
	fmt.Fprintln(cmd.OutOrStdout(), cli.RenderForecast(d.State().Snapshot().Forecast.Data))
	return nil
}
