package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/ghuser/equipstore/pkg/equipclient"
)

type clientFunc func() *equipclient.Client

type timeoutFunc func() time.Duration

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("invalid id %q: must be a non-negative integer", s)
	}
	return id, nil
}

func newRegisterCmd(client clientFunc, timeout timeoutFunc) *cobra.Command {
	var (
		supplier   string
		amount     int
		lowerBound int
	)
	cmd := &cobra.Command{
		Use:   "register NAME",
		Short: "Register new equipment",
		Long: `Register new equipment under the next free id.

Names are unique ignoring case. Negative quantities are stored as 0.

Examples:
  equipctl register Hammer --supplier "Hencock & Huffler" --amount 10 --lower-bound 30`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout())
			defer cancel()

			e, err := client().Register(ctx, equipclient.RegisterInput{
				Name:       args[0],
				Supplier:   supplier,
				Amount:     amount,
				LowerBound: lowerBound,
			})
			if equipclient.IsConflict(err) {
				fmt.Fprintf(cmd.OutOrStdout(), "not registered: %q already exists\n", args[0])
				return err
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "registered:", formatEquipment(e))
			return nil
		},
	}
	cmd.Flags().StringVar(&supplier, "supplier", "", "supplier name")
	cmd.Flags().IntVar(&amount, "amount", 0, "stored amount")
	cmd.Flags().IntVar(&lowerBound, "lower-bound", 0, "reorder threshold")
	return cmd
}

func newGetCmd(client clientFunc, timeout timeoutFunc) *cobra.Command {
	var byName bool
	cmd := &cobra.Command{
		Use:   "get ID | get --name NAME",
		Short: "Show one equipment record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout())
			defer cancel()

			var (
				e   *equipclient.Equipment
				err error
			)
			if byName {
				e, err = client().GetByName(ctx, args[0])
			} else {
				id, perr := parseID(args[0])
				if perr != nil {
					return perr
				}
				e, err = client().Get(ctx, id)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatEquipment(e))
			return nil
		},
	}
	cmd.Flags().BoolVar(&byName, "name", false, "look up by name instead of id")
	return cmd
}

func newUpdateCmd(client clientFunc, timeout timeoutFunc) *cobra.Command {
	var (
		supplier   string
		lowerBound int
	)
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change supplier and/or lower bound",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var in equipclient.UpdateInput
			if cmd.Flags().Changed("supplier") {
				in.Supplier = &supplier
			}
			if cmd.Flags().Changed("lower-bound") {
				in.LowerBound = &lowerBound
			}
			if in.Supplier == nil && in.LowerBound == nil {
				return errors.New("nothing to update: pass --supplier and/or --lower-bound")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout())
			defer cancel()

			e, err := client().Update(ctx, id, in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "updated:", formatEquipment(e))
			return nil
		},
	}
	cmd.Flags().StringVar(&supplier, "supplier", "", "new supplier")
	cmd.Flags().IntVar(&lowerBound, "lower-bound", 0, "new reorder threshold")
	return cmd
}

func newAlterCmd(client clientFunc, timeout timeoutFunc) *cobra.Command {
	var (
		byName bool
		diff   int
	)
	cmd := &cobra.Command{
		Use:   "alter ID --diff N | alter --name NAME --diff N",
		Short: "Deposit or withdraw stock",
		Long: `Add N to the stored amount; a negative N withdraws.

Prints OK, NOT_FOUND or NOT_ENOUGH_STORED. The command fails unless the
result is OK.

Examples:
  equipctl alter 0 --diff 5
  equipctl alter --name hammer --diff -3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("diff") {
				return errors.New("--diff is required")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout())
			defer cancel()

			var (
				res equipclient.SupplyResult
				err error
			)
			if byName {
				res, err = client().AlterSupplyByName(ctx, args[0], diff)
			} else {
				id, perr := parseID(args[0])
				if perr != nil {
					return perr
				}
				res, err = client().AlterSupply(ctx, id, diff)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d)\n", res.Result, res.Status)
			if !res.OK() {
				return fmt.Errorf("supply not altered: %s", res.Result)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&byName, "name", false, "look up by name instead of id")
	cmd.Flags().IntVarP(&diff, "diff", "d", 0, "amount to add (negative to withdraw)")
	return cmd
}
