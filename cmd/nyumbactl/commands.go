package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	database "nyumbasmart_backend/internals/databases"
	billService "nyumbasmart_backend/internals/features/finance/bills/service"
	notifService "nyumbasmart_backend/internals/features/notifications/service"
	landlordService "nyumbasmart_backend/internals/features/property/landlords/service"
	"nyumbasmart_backend/internals/seeds"
)

func migrateCmd(cli *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update every table",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := cli.openDB()
			if err != nil {
				return err
			}
			defer database.Close(db)

			if err := database.AutoMigrate(db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
			return nil
		},
	}
}

func seedCmd(cli *cliApp) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the demo portfolio",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := cli.openDB()
			if err != nil {
				return err
			}
			defer database.Close(db)
			return seeds.RunAllSeeds(db, cli.log, dir)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "internals/seeds", "seed data directory")
	return cmd
}

func billsCmd(cli *cliApp) *cobra.Command {
	bills := &cobra.Command{
		Use:   "bills",
		Short: "Billing jobs",
	}

	var landlord, period, tenant string
	generate := &cobra.Command{
		Use:   "generate",
		Short: "Generate or update a landlord's bills for a month",
		Long: "Generate creates the month's bill for every active tenant of the landlord " +
			"and leaves existing bills' utilities untouched. Safe to run repeatedly.",
		RunE: func(cmd *cobra.Command, args []string) error {
			caller, err := uuid.Parse(strings.TrimSpace(landlord))
			if err != nil {
				return fmt.Errorf("--landlord: %w", err)
			}
			in := billService.GenerateInput{BillingMonth: period}
			if tenant != "" {
				id, err := uuid.Parse(strings.TrimSpace(tenant))
				if err != nil {
					return fmt.Errorf("--tenant: %w", err)
				}
				in.TenantID = &id
			}

			db, err := cli.openDB()
			if err != nil {
				return err
			}
			defer database.Close(db)

			notifier := notifService.NewNotifier(notifService.NewSender(cli.cfg.SMS, cli.log), db, cli.log, cli.cfg.SMS.Timeout)
			defer notifier.Wait()

			svc := billService.NewBillService(db, cli.log, notifier, cli.cfg.Billing.DueDay, cli.cfg.Billing.Location())
			res, err := svc.GenerateOrUpdateBills(cmd.Context(), caller, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d created, %d updated, %d skipped\n",
				res.Period, res.Created, res.Updated, res.Skipped)
			for _, s := range res.Skips {
				fmt.Fprintf(cmd.OutOrStdout(), "  skipped %s: %s\n", s.TenantID, s.Reason)
			}
			return nil
		},
	}
	generate.Flags().StringVar(&landlord, "landlord", "", "landlord (apartment owner) id")
	generate.Flags().StringVar(&period, "period", "", `billing month, e.g. "2026-10" or "October 2026" (default current month)`)
	generate.Flags().StringVar(&tenant, "tenant", "", "only this tenant")
	_ = generate.MarkFlagRequired("landlord")

	bills.AddCommand(generate)
	return bills
}

func landlordsCmd(cli *cliApp) *cobra.Command {
	landlords := &cobra.Command{
		Use:   "landlords",
		Short: "Landlord maintenance",
	}

	var landlord string
	reconcile := &cobra.Command{
		Use:   "reconcile",
		Short: "Rewrite cached landlord ids from the unit ownership chain",
		RunE: func(cmd *cobra.Command, args []string) error {
			var only *uuid.UUID
			if landlord != "" {
				id, err := uuid.Parse(strings.TrimSpace(landlord))
				if err != nil {
					return fmt.Errorf("--landlord: %w", err)
				}
				only = &id
			}

			db, err := cli.openDB()
			if err != nil {
				return err
			}
			defer database.Close(db)

			res, err := landlordService.ReconcileLandlordIDs(cmd.Context(), db, cli.log, only)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "reconciled %d rows (tenants %d, bills %d, payments %d)\n",
				res.Total(), res.Tenants, res.Bills, res.Payments)
			return nil
		},
	}
	reconcile.Flags().StringVar(&landlord, "landlord", "", "limit to one landlord id")

	landlords.AddCommand(reconcile)
	return landlords
}
