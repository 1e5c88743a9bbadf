package balance

import (
	"strings"
	"testing"

	"github.com/bnema/teller/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderAccounts(t *testing.T) {
	output, err := Render([]domain.Account{
		{ID: "acc-alice", DisplayName: "Alice", Balance: decimal.NewFromInt(60), SavingsBalance: decimal.NewFromInt(60)},
		{ID: "acc-bob", DisplayName: "Bob", Balance: decimal.RequireFromString("4.5")},
	}, RenderOptions{LowBalance: decimal.NewFromInt(5)})

	require.NoError(t, err)
	assert.Contains(t, output, "accounts: 2  total: $124.50  low: 1")
	assert.Contains(t, output, "Alice (acc-alice)")
	assert.Contains(t, output, "current account:")
	assert.Contains(t, output, "$60.00")
	assert.Contains(t, output, "Bob (acc-bob) [low]")
	assert.NotContains(t, output, "Alice (acc-alice) [low]")
}

func TestRenderEmpty(t *testing.T) {
	output, err := Render(nil, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "No accounts registered.")
}

func TestSheetFoldsAccountsBeforeRendering(t *testing.T) {
	t.Parallel()

	var m tea.Model = newSheet([]domain.Account{
		{ID: "acc-alice", DisplayName: "Alice", Balance: decimal.RequireFromString("0.10")},
		{ID: "acc-bob", DisplayName: "Bob", SavingsBalance: decimal.RequireFromString("0.20")},
	}, RenderOptions{})

	cmd := m.Init()
	for steps := 0; cmd != nil; steps++ {
		require.Less(t, steps, 10)
		msg := cmd()
		if _, ok := msg.(tea.QuitMsg); ok {
			break
		}
		assert.Empty(t, m.View())
		m, cmd = m.Update(msg)
	}

	view := m.View()
	assert.Contains(t, view, "accounts: 2  total: $0.30")
	assert.NotContains(t, view, "low:")
	assert.Less(t, strings.Index(view, "Alice"), strings.Index(view, "Bob"))
}

func TestRenderSplitBar(t *testing.T) {
	t.Parallel()

	s := newStyles()
	tests := []struct {
		name        string
		primary     int64
		savings     int64
		wantPrimary int
	}{
		{name: "all primary", primary: 10, wantPrimary: 24},
		{name: "even split", primary: 50, savings: 50, wantPrimary: 12},
		{name: "all savings", savings: 10, wantPrimary: 0},
		{name: "empty account", wantPrimary: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			bar := renderSplitBar(decimal.NewFromInt(tt.primary), decimal.NewFromInt(tt.savings), 24, s)
			assert.Equal(t, tt.wantPrimary, strings.Count(bar, "="))
			assert.Equal(t, 24-tt.wantPrimary, strings.Count(bar, "-"))
		})
	}
}
