// Command budget is an operator CLI over the budget tracker database.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"budgettracker/internal/config"
	"budgettracker/internal/database"
	apperrors "budgettracker/internal/errors"
	"budgettracker/internal/logger"
	"budgettracker/internal/models"
	"budgettracker/internal/money"
	"budgettracker/internal/pagination"
	"budgettracker/internal/server"
	"budgettracker/internal/services"
)

const usage = `usage: budget <command> [args]

commands:
  accounts                                   list accounts
  add-account <name> <balance>               create an account, or set an existing one's balance
  delete-account <name>                      delete an account without transactions
  categories                                 list categories and limits
  set-category <name> <limit>                create a category, or set an existing one's limit
  delete-category <name>                     delete a category without transactions
  performance                                spending for the current financial month
  overview [YYYY-MM]                         per-category summary of a financial month
  log [YYYY-MM]                              transactions of a financial month
  analyze <category> [YYYY-MM]               one category's spending and transactions
  recent [N]                                 latest N transactions (default 10)
  record <account> <category> <amount> [description...]
                                             record spending (negative amount for a refund)
  delete-tx <id>                             delete a transaction and restore the balance
  start-day [N]                              show or set the financial month start day`

// listLimit caps list commands that have no paging of their own.
const listLimit = 100

// cliSource stands in for the client IP in audit entries.
const cliSource = "cli"

func main() {
	logger.Init(envOr("ENV", "production"), envOr("LOG_LEVEL", "warn"))
	defer logger.Sync()

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	dbManager, err := database.NewManager(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer dbManager.Close()

	if err := dbManager.RunMigrations(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cli := &cli{svc: server.NewServices(dbManager.DB(), cfg.DefaultStartDay), out: os.Stdout, now: time.Now}
	if err := cli.run(os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type cli struct {
	svc *server.Services
	out io.Writer
	now func() time.Time
}

var errUsage = errors.New(usage)

func (c *cli) run(cmd string, args []string) error {
	switch cmd {
	case "accounts":
		return c.accounts()
	case "add-account":
		if len(args) != 2 {
			return errUsage
		}
		return c.addAccount(args[0], args[1])
	case "delete-account":
		if len(args) != 1 {
			return errUsage
		}
		return c.deleteAccount(args[0])
	case "categories":
		return c.categories()
	case "set-category":
		if len(args) != 2 {
			return errUsage
		}
		return c.setCategory(args[0], args[1])
	case "delete-category":
		if len(args) != 1 {
			return errUsage
		}
		return c.deleteCategory(args[0])
	case "performance":
		return c.performance()
	case "overview":
		return c.overview(optional(args, 0))
	case "log":
		return c.log(optional(args, 0))
	case "analyze":
		if len(args) < 1 {
			return errUsage
		}
		return c.analyze(args[0], optional(args, 1))
	case "recent":
		n := 10
		if len(args) > 0 {
			v, err := strconv.Atoi(args[0])
			if err != nil || v < 1 || v > listLimit {
				return fmt.Errorf("recent: N must be between 1 and %d", listLimit)
			}
			n = v
		}
		return c.recent(n)
	case "record":
		if len(args) < 3 {
			return errUsage
		}
		return c.record(args[0], args[1], args[2], strings.Join(args[3:], " "))
	case "delete-tx":
		if len(args) != 1 {
			return errUsage
		}
		return c.deleteTx(args[0])
	case "start-day":
		if len(args) == 0 {
			return c.showStartDay()
		}
		day, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("start-day: %q is not a number", args[0])
		}
		return c.setStartDay(day)
	case "help", "-h", "--help":
		fmt.Fprintln(c.out, usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q\n\n%s", cmd, usage)
	}
}

func (c *cli) accounts() error {
	page, err := c.svc.Accounts.GetAccounts(pagination.PageRequest{PageSize: listLimit})
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, renderAccounts(page.Data))
	return nil
}

// addAccount creates the account or, when the name exists, overwrites its
// balance.
func (c *cli) addAccount(name, balanceStr string) error {
	balance, err := money.Parse(balanceStr)
	if err != nil {
		return fmt.Errorf("add-account: %q is not an amount", balanceStr)
	}

	existing, err := c.svc.Accounts.GetAccountByName(name)
	switch {
	case errors.Is(err, apperrors.ErrAccountNotFound):
		account, err := c.svc.Accounts.CreateAccount(name, "", balance)
		if err != nil {
			return err
		}
		c.svc.Audit.Log(services.AuditActionCreate, "account", account.ID, cliSource,
			map[string]interface{}{"name": account.Name, "balance": account.Balance})
		fmt.Fprintf(c.out, "Created account %s with balance %s\n", account.Name, money.Format(account.Balance))
		return nil
	case err != nil:
		return err
	}

	account, err := c.svc.Accounts.UpdateAccount(existing.ID, services.AccountUpdateFields{Balance: &balance})
	if err != nil {
		return err
	}
	c.svc.Audit.Log(services.AuditActionUpdate, "account", account.ID, cliSource,
		map[string]interface{}{"balance": account.Balance})
	fmt.Fprintf(c.out, "Set %s balance to %s\n", account.Name, money.Format(account.Balance))
	return nil
}

func (c *cli) deleteAccount(name string) error {
	account, err := c.svc.Accounts.GetAccountByName(name)
	if err != nil {
		return err
	}
	if err := c.svc.Accounts.DeleteAccount(account.ID); err != nil {
		return err
	}
	c.svc.Audit.Log(services.AuditActionDelete, "account", account.ID, cliSource, nil)
	fmt.Fprintf(c.out, "Deleted account %s\n", account.Name)
	return nil
}

// setCategory creates the category or, when the name exists, overwrites its
// monthly limit.
func (c *cli) setCategory(name, limitStr string) error {
	limit, err := money.Parse(limitStr)
	if err != nil {
		return fmt.Errorf("set-category: %q is not an amount", limitStr)
	}

	existing, err := c.svc.Categories.GetCategoryByName(name)
	switch {
	case errors.Is(err, apperrors.ErrCategoryNotFound):
		category, err := c.svc.Categories.CreateCategory(name, limit, "", "")
		if err != nil {
			return err
		}
		c.svc.Audit.Log(services.AuditActionCreate, "category", category.ID, cliSource,
			map[string]interface{}{"name": category.Name, "monthly_limit": category.MonthlyLimit})
		fmt.Fprintf(c.out, "Created category %s with monthly limit %s\n", category.Name, money.Format(category.MonthlyLimit))
		return nil
	case err != nil:
		return err
	}

	category, err := c.svc.Categories.UpdateCategory(existing.ID, services.CategoryUpdateFields{MonthlyLimit: &limit})
	if err != nil {
		return err
	}
	c.svc.Audit.Log(services.AuditActionUpdate, "category", category.ID, cliSource,
		map[string]interface{}{"monthly_limit": category.MonthlyLimit})
	fmt.Fprintf(c.out, "Set %s monthly limit to %s\n", category.Name, money.Format(category.MonthlyLimit))
	return nil
}

func (c *cli) deleteCategory(name string) error {
	category, err := c.svc.Categories.GetCategoryByName(name)
	if err != nil {
		return err
	}
	if err := c.svc.Categories.DeleteCategory(category.ID); err != nil {
		return err
	}
	c.svc.Audit.Log(services.AuditActionDelete, "category", category.ID, cliSource, nil)
	fmt.Fprintf(c.out, "Deleted category %s\n", category.Name)
	return nil
}

func (c *cli) categories() error {
	page, err := c.svc.Categories.GetCategories(pagination.PageRequest{PageSize: listLimit})
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, renderCategories(page.Data))
	return nil
}

func (c *cli) performance() error {
	report, err := c.svc.Performance.GetPerformance(c.now())
	if err != nil {
		return err
	}
	fmt.Fprint(c.out, renderReport(report))
	return nil
}

func (c *cli) overview(tag string) error {
	summary, err := c.svc.Performance.GetMonthlyOverview(c.now(), tag)
	if err != nil {
		return err
	}
	fmt.Fprint(c.out, renderSummary(summary))
	return nil
}

func (c *cli) log(tag string) error {
	if tag == "" {
		p, err := c.svc.Performance.GetFinancialPeriod(c.now())
		if err != nil {
			return err
		}
		tag = p.Tag
	}
	page, err := c.svc.Transactions.GetTransactions(
		pagination.PageRequest{PageSize: listLimit},
		services.TransactionFilter{FinancialMonth: &tag},
	)
	if err != nil {
		return err
	}
	title := "Transactions in " + tag
	if page.TotalItems > int64(len(page.Data)) {
		title += fmt.Sprintf(" (latest %d of %d)", len(page.Data), page.TotalItems)
	}
	fmt.Fprint(c.out, renderTransactions(title, page.Data))
	return nil
}

func (c *cli) analyze(categoryName, tag string) error {
	category, err := c.svc.Categories.GetCategoryByName(categoryName)
	if err != nil {
		return err
	}
	analysis, err := c.svc.Performance.GetCategoryAnalysis(c.now(), category.ID, tag)
	if err != nil {
		return err
	}
	fmt.Fprint(c.out, renderAnalysis(analysis))
	return nil
}

func (c *cli) recent(n int) error {
	page, err := c.svc.Transactions.GetTransactions(pagination.PageRequest{PageSize: n}, services.TransactionFilter{})
	if err != nil {
		return err
	}
	fmt.Fprint(c.out, renderTransactions(fmt.Sprintf("Latest %d transaction(s)", len(page.Data)), page.Data))
	return nil
}

func (c *cli) record(accountName, categoryName, amountStr, description string) error {
	amount, err := money.Parse(amountStr)
	if err != nil {
		return fmt.Errorf("record: %q is not an amount", amountStr)
	}
	account, err := c.svc.Accounts.GetAccountByName(accountName)
	if err != nil {
		return err
	}
	category, err := c.svc.Categories.GetCategoryByName(categoryName)
	if err != nil {
		return err
	}

	tx, err := c.svc.Transactions.RecordTransaction(account.ID, category.ID, amount, description, c.now())
	if err != nil {
		return err
	}
	c.svc.Audit.Log(services.AuditActionCreate, "transaction", tx.ID, cliSource, map[string]interface{}{
		"amount": tx.Amount, "financial_month": tx.FinancialMonth,
	})

	fmt.Fprintf(c.out, "Recorded %s against %s from %s in %s (%s)\n",
		money.Format(tx.Amount), category.Name, account.Name, tx.FinancialMonth, tx.ID)
	return nil
}

func (c *cli) deleteTx(id string) error {
	if err := c.svc.Transactions.DeleteTransaction(id); err != nil {
		return err
	}
	c.svc.Audit.Log(services.AuditActionDelete, "transaction", id, cliSource, nil)
	fmt.Fprintf(c.out, "Deleted transaction %s\n", id)
	return nil
}

func (c *cli) showStartDay() error {
	day, err := c.svc.Settings.GetFinancialMonthStartDay()
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Financial month starts on day %d\n", day)
	return nil
}

func (c *cli) setStartDay(day int) error {
	if err := c.svc.Settings.SetFinancialMonthStartDay(day); err != nil {
		return err
	}
	c.svc.Audit.Log(services.AuditActionUpdate, "setting", "", cliSource,
		map[string]interface{}{models.SettingFinancialMonthStartDay: day})
	fmt.Fprintf(c.out, "Financial month now starts on day %d\n", day)
	return nil
}

func optional(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
