package normalisers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
)

type stubNormaliser struct {
	format domain.Format
	out    string
}

func (s *stubNormaliser) Format() domain.Format { return s.format }

func (s *stubNormaliser) Normalise(_ context.Context, _ *domain.Document) (string, error) {
	return s.out, nil
}

func TestRegistry_Dispatch(t *testing.T) {
	r := NewRegistry(
		&stubNormaliser{format: domain.FormatPlainText, out: "text"},
		&stubNormaliser{format: domain.FormatDelimitedTable, out: "table"},
	)

	out, err := r.Normalise(context.Background(), &domain.Document{Format: domain.FormatDelimitedTable})
	require.NoError(t, err)
	assert.Equal(t, "table", out)
}

func TestRegistry_RegisterReplaces(t *testing.T) {
	r := NewRegistry(&stubNormaliser{format: domain.FormatPlainText, out: "old"})
	r.Register(&stubNormaliser{format: domain.FormatPlainText, out: "new"})

	out, err := r.Normalise(context.Background(), &domain.Document{Format: domain.FormatPlainText})
	require.NoError(t, err)
	assert.Equal(t, "new", out)
	assert.Len(t, r.Formats(), 1)
}

func TestRegistry_UnsupportedFormat(t *testing.T) {
	r := NewRegistry()

	_, err := r.Normalise(context.Background(), &domain.Document{Name: "scan.pdf", Format: "pdf"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnsupportedFormat))
}

func TestRegistry_NilDocument(t *testing.T) {
	_, err := NewRegistry().Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDefaultRegistry_CoversAllFormats(t *testing.T) {
	r := NewDefaultRegistry()

	assert.ElementsMatch(t, []domain.Format{
		domain.FormatPlainText,
		domain.FormatDelimitedTable,
		domain.FormatSpreadsheet,
		domain.FormatWordProcessor,
		domain.FormatStructuredRecord,
	}, r.Formats())
}

func TestDefaultRegistry_EndToEnd(t *testing.T) {
	r := NewDefaultRegistry()
	ctx := context.Background()

	text, err := r.Normalise(ctx, &domain.Document{
		Name:    "vault.txt",
		Format:  domain.FormatPlainText,
		Content: []byte("The secret code for the vault is 998877."),
	})
	require.NoError(t, err)
	assert.Equal(t, "The secret code for the vault is 998877.", text)

	text, err = r.Normalise(ctx, &domain.Document{
		Name:    "products.csv",
		Format:  domain.FormatDelimitedTable,
		Content: []byte("product,price\nSuperWidget,99.99\n"),
	})
	require.NoError(t, err)
	assert.Equal(t, "product: SuperWidget, price: 99.99", text)

	text, err = r.Normalise(ctx, &domain.Document{
		Format: domain.FormatStructuredRecord,
		Record: map[string]any{"product": "SuperWidget", "price": 99.99},
	})
	require.NoError(t, err)
	assert.Contains(t, text, "product: SuperWidget")
	assert.Contains(t, text, "price: 99.99")
}
