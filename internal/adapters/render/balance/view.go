package balance

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bnema/teller/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

const barWidth = 24

type RenderOptions struct {
	// LowBalance flags accounts whose current balance is below it. Zero disables the flag.
	LowBalance decimal.Decimal
}

var ErrUnexpectedRenderModel = errors.New("unexpected final balance sheet model")

// accountMsg feeds one account into the sheet; sheetCompleteMsg follows the last.
type accountMsg domain.Account

type sheetCompleteMsg struct{}

// sheet is a bubbletea model that folds accounts in one message at a time,
// keeping running totals, and only produces a view once every account has
// been folded in.
type sheet struct {
	pending  []domain.Account
	sections []string
	total    decimal.Decimal
	low      int
	opts     RenderOptions
	styles   styles
	complete bool
}

func newSheet(accounts []domain.Account, opts RenderOptions) sheet {
	return sheet{
		pending: accounts,
		total:   decimal.Zero,
		opts:    opts,
		styles:  newStyles(),
	}
}

func (m sheet) Init() tea.Cmd {
	return m.next()
}

func (m sheet) next() tea.Cmd {
	if len(m.pending) == 0 {
		return func() tea.Msg { return sheetCompleteMsg{} }
	}
	account := m.pending[0]
	return func() tea.Msg { return accountMsg(account) }
}

func (m sheet) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case accountMsg:
		account := domain.Account(msg)
		low := m.opts.LowBalance.IsPositive() && account.Balance.LessThan(m.opts.LowBalance)
		if low {
			m.low++
		}
		m.total = m.total.Add(account.Balance).Add(account.SavingsBalance)
		m.sections = append(m.sections, m.styles.section.Render(renderAccount(account, low, m.styles)))
		m.pending = m.pending[1:]
		return m, m.next()
	case sheetCompleteMsg:
		m.complete = true
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m sheet) View() string {
	if !m.complete {
		return ""
	}

	summary := fmt.Sprintf("accounts: %d  total: %s", len(m.sections), domain.FormatMoney(m.total))
	if m.low > 0 {
		summary += fmt.Sprintf("  low: %d", m.low)
	}
	lines := []string{
		m.styles.title.Render("Teller Balances"),
		m.styles.header.Render(summary),
	}
	if len(m.sections) == 0 {
		lines = append(lines, m.styles.empty.Render("No accounts registered."))
	}
	lines = append(lines, m.sections...)
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// Render lays out account balances as a static block of text.
func Render(accounts []domain.Account, opts RenderOptions) (string, error) {
	program := tea.NewProgram(
		newSheet(accounts, opts),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	final, err := program.Run()
	if err != nil {
		return "", err
	}
	rendered, ok := final.(sheet)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}
	return rendered.View(), nil
}

func renderAccount(account domain.Account, low bool, s styles) string {
	title := s.account.Render(fmt.Sprintf("%s (%s)", account.DisplayName, account.ID))
	if low {
		title += " " + s.warning.Render("[low]")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		ledgerLine(domain.LedgerPrimary, account.Balance, s),
		ledgerLine(domain.LedgerSavings, account.SavingsBalance, s),
		renderSplitBar(account.Balance, account.SavingsBalance, barWidth, s),
	)
}

func ledgerLine(ledger domain.Ledger, amount decimal.Decimal, s styles) string {
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.ledgerKey.Render(fmt.Sprintf("%-17s", ledger.Label()+":")),
		s.amount.Render(domain.FormatMoney(amount)),
	)
}

// renderSplitBar shows the primary share of the account as '=' and the
// savings share as '-'.
func renderSplitBar(primary, savings decimal.Decimal, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := 0
	total := primary.Add(savings)
	if total.IsPositive() {
		filled = int(primary.Div(total).Mul(decimal.NewFromInt(int64(width))).Round(0).IntPart())
	}
	filled = min(max(filled, 0), width)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barPrimary.Render(strings.Repeat("=", filled)),
		s.barSavings.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}
