package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/bnema/teller/internal/adapters/render/balance"
	"github.com/bnema/teller/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newAccountCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage accounts",
	}

	cmd.AddCommand(
		newAccountCreateCmd(app),
		newAccountListCmd(app),
		newAccountBalanceCmd(app),
	)

	return cmd
}

func newAccountCreateCmd(app *app) *cobra.Command {
	var accountID string
	var name string
	var primary string
	var savings string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register an account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			primaryBalance, err := parseBalanceFlag("balance", primary)
			if err != nil {
				return err
			}
			savingsBalance, err := parseBalanceFlag("savings", savings)
			if err != nil {
				return err
			}

			accounts, err := app.openAccounts(cmd.Context())
			if err != nil {
				return err
			}
			defer app.closeAll(accounts)

			resolvedAccountID, err := resolveAccountID(cmd.Context(), accounts, accountID)
			if err != nil {
				return err
			}

			account := domain.Account{
				ID:             resolvedAccountID,
				DisplayName:    name,
				Balance:        primaryBalance,
				SavingsBalance: savingsBalance,
			}
			if err := accounts.Create(cmd.Context(), account); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", account.ID, account.DisplayName)
			return err
		},
	}

	cmd.Flags().StringVar(&accountID, "id", "0", "Account ID (0 or empty auto-assigns next: 1,2,...)")
	cmd.Flags().StringVar(&name, "name", "", "Display name, used to resolve transfer recipients")
	cmd.Flags().StringVar(&primary, "balance", "0", "Opening current account balance")
	cmd.Flags().StringVar(&savings, "savings", "0", "Opening savings balance")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newAccountListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			accounts, err := app.openAccounts(cmd.Context())
			if err != nil {
				return err
			}
			defer app.closeAll(accounts)

			list, err := accounts.List(cmd.Context())
			if err != nil {
				return err
			}

			for _, account := range list {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", account.ID, account.DisplayName)
			}

			return nil
		},
	}
}

type accountView struct {
	ID             domain.AccountID `json:"id"`
	DisplayName    string           `json:"display_name"`
	Balance        string           `json:"balance"`
	SavingsBalance string           `json:"savings_balance"`
}

func newAccountBalanceCmd(app *app) *cobra.Command {
	var accountID string
	var lowBalance string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Show account balances",
		RunE: func(cmd *cobra.Command, _ []string) error {
			low, err := parseBalanceFlag("low", lowBalance)
			if err != nil {
				return err
			}

			accounts, err := app.openAccounts(cmd.Context())
			if err != nil {
				return err
			}
			defer app.closeAll(accounts)

			var list []domain.Account
			if accountID == "" {
				list, err = accounts.List(cmd.Context())
			} else {
				var account domain.Account
				account, err = accounts.Get(cmd.Context(), domain.AccountID(accountID))
				list = []domain.Account{account}
			}
			if err != nil {
				return err
			}

			if asJSON {
				views := make([]accountView, 0, len(list))
				for _, account := range list {
					views = append(views, accountView{
						ID:             account.ID,
						DisplayName:    account.DisplayName,
						Balance:        account.Balance.StringFixed(2),
						SavingsBalance: account.SavingsBalance.StringFixed(2),
					})
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(views)
			}

			rendered, err := app.balanceRenderer(list, balance.RenderOptions{LowBalance: low})
			if err != nil {
				return fmt.Errorf("render balances: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "Account ID (empty shows all accounts)")
	cmd.Flags().StringVar(&lowBalance, "low", "0", "Flag accounts whose current balance is below this amount")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")

	return cmd
}

func parseBalanceFlag(flag string, raw string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("--%s must be a decimal amount: %w", flag, err)
	}
	if value.IsNegative() {
		return decimal.Zero, fmt.Errorf("--%s must not be negative", flag)
	}
	return value, nil
}
