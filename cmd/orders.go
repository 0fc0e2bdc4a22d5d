package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"procure.GO/config"
	orderService "procure.GO/service/order"
)

var ordersRecomputeCmd = &cobra.Command{
	Use:   "orders:recompute <po_number>",
	Short: "Recompute and store the total of one purchase order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := config.NewDB()
		if err != nil {
			return fmt.Errorf("database connection failed: %w", err)
		}
		svc := orderService.NewService(db)
		ctx := context.Background()
		view, err := svc.Get(ctx, args[0])
		if err != nil {
			return err
		}
		total, err := svc.RecomputeTotal(ctx, view.Order.ID)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderReport(view.Order.Number(), []reportRow{
			{"Lines", fmt.Sprint(len(view.Lines))},
			{"Stored total", view.Order.TotalPrice.StringFixed(2)},
			{"New total", okStyle.Render(total.StringFixed(2))},
		}))
		return nil
	},
}

var ordersReconcileCmd = &cobra.Command{
	Use:   "orders:reconcile",
	Short: "Recompute every order total and report the ones that drifted",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := config.NewDB()
		if err != nil {
			return fmt.Errorf("database connection failed: %w", err)
		}
		res, err := orderService.NewService(db).Reconcile(context.Background())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, d := range res.Drifted {
			fmt.Fprintln(out, warnLine("%s: %s -> %s", d.PONumber, d.Stored.StringFixed(2), d.Actual.StringFixed(2)))
		}
		fmt.Fprintln(out, renderReport("Reconcile Report", []reportRow{
			{"Checked", fmt.Sprint(res.Checked)},
			{"Corrected", fmt.Sprint(len(res.Drifted))},
		}))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ordersRecomputeCmd, ordersReconcileCmd)
}
