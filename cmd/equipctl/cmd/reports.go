package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newOrdersCmd(client clientFunc, timeout timeoutFunc) *cobra.Command {
	var onlyNeeded bool
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Print the order report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout())
			defer cancel()

			if !onlyNeeded {
				report, err := client().Orders(ctx)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), report)
				return nil
			}

			lines, err := client().OrderLines(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Order list:")
			for _, l := range lines {
				if l.OrderQuantity > 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "%d, %s: %d\n", l.ID, l.Name, l.OrderQuantity)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&onlyNeeded, "needed", false, "list only equipment that needs reordering")
	return cmd
}

func newDataCmd(client clientFunc, timeout timeoutFunc) *cobra.Command {
	var xlsxPath string
	cmd := &cobra.Command{
		Use:   "data",
		Short: "Print the data report, or save it as a workbook",
		Long: `Print every record. With --xlsx FILE the report is saved as an
Excel workbook instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout())
			defer cancel()

			if xlsxPath == "" {
				report, err := client().Data(ctx)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), report)
				return nil
			}

			f, err := os.Create(xlsxPath)
			if err != nil {
				return fmt.Errorf("creating %s: %w", xlsxPath, err)
			}
			if err := client().DataWorkbook(ctx, f); err != nil {
				_ = f.Close()
				_ = os.Remove(xlsxPath)
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("writing %s: %w", xlsxPath, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "saved", xlsxPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "save the report as an .xlsx workbook at this path")
	return cmd
}

