package application

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jmanzanog/finrecords/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTransactionLines(t *testing.T) {
	t.Run("skips blank lines", func(t *testing.T) {
		input := `{"portfolioId":"p1","type":"DEPOSIT","amount":"10.5","date":"2025-01-01T00:00:00Z"}

{"portfolioId":"p1","type":"WITHDRAWAL","amount":3,"date":"2025-01-02T00:00:00Z"}
`
		lines, err := ParseTransactionLines("tx.jsonl", strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, lines, 2)
		assert.Equal(t, 1, lines[0].Line)
		assert.Equal(t, 3, lines[1].Line)
		assert.Equal(t, "10.5", lines[0].Request.Amount.String())
	})

	t.Run("malformed line rejects file", func(t *testing.T) {
		input := "{\"portfolioId\":\"p1\"}\nnot json\n"
		_, err := ParseTransactionLines("tx.jsonl", strings.NewReader(input))

		var fileErr *domain.InvalidFileError
		require.ErrorAs(t, err, &fileErr)
		assert.Equal(t, 2, fileErr.Line)
		assert.Equal(t, "tx.jsonl", fileErr.Name)
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := ParseTransactionLines("empty.jsonl", strings.NewReader("\n\n"))
		var fileErr *domain.InvalidFileError
		require.ErrorAs(t, err, &fileErr)
		assert.Contains(t, fileErr.Error(), "no transactions")
	})
}

func TestTransactionService_Import(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	user := f.seedUser(t)
	portfolio := f.seedPortfolio(t, user.ID)

	svc := NewTransactionService(f.transactions, f.portfolios)
	svc.now = func() time.Time { return fixedNow }

	date := fixedNow
	lines := []ImportLine{
		{Line: 1, Request: CreateTransactionRequest{PortfolioID: portfolio.ID, Type: "DEPOSIT", Amount: ptr(domain.MustDecimal("1")), Date: &date}},
		{Line: 2, Request: CreateTransactionRequest{PortfolioID: "P404", Type: "DEPOSIT", Amount: ptr(domain.MustDecimal("2")), Date: &date}},
		{Line: 3, Request: CreateTransactionRequest{PortfolioID: portfolio.ID, Type: "FEE", Amount: ptr(domain.MustDecimal("3")), Date: &date}},
		{Line: 4, Request: CreateTransactionRequest{PortfolioID: portfolio.ID}},
	}

	result := svc.Import(ctx, lines)

	require.Len(t, result.Successful, 2)
	require.Len(t, result.Failed, 2)
	assert.Equal(t, 1, result.Successful[0].Line)
	assert.Equal(t, 3, result.Successful[1].Line)
	assert.Equal(t, 2, result.Failed[0].Line)
	assert.Contains(t, result.Failed[0].Error, "P404")
	assert.Equal(t, 4, result.Failed[1].Line)
	assert.Equal(t, 2, total(t, f.transactions.Store))

	empty := svc.Import(ctx, nil)
	assert.Empty(t, empty.Successful)
	assert.Empty(t, empty.Failed)
}
