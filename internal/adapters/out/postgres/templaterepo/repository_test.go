package templaterepo_test

import (
	"context"
	"testing"

	"orderflow/internal/adapters/out/postgres/sqlitetest"
	"orderflow/internal/adapters/out/postgres/templaterepo"
	"orderflow/internal/core/domain/model/confirmation"
	"orderflow/internal/core/domain/model/contract"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/payment"
	"orderflow/internal/core/domain/model/template"
	"orderflow/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTemplate(t *testing.T, name string) *template.Template {
	t.Helper()
	tmpl, err := template.NewTemplate(kernel.NewUUID(), template.Terms{
		Name:                name,
		ProviderID:          kernel.NewUUID(),
		StartingPrice:       kernel.MustMoney("250.50"),
		PaymentMethod:       payment.Installment3_1,
		ContractDescription: "Illustration work",
		Clauses:             []contract.ClauseTerms{{Name: "Revisions", Content: "Two rounds"}},
		Blocks: []confirmation.BlockTerms{
			{Name: "Style", Kind: confirmation.KindText},
			{Name: "Formats", Kind: confirmation.KindList, Items: []confirmation.ItemTerms{
				{Name: "SVG", UnitPrice: kernel.MustMoney("20"), Quantity: 1},
			}},
		},
		Deliverables: []string{"Sketch", "Final art"},
	})
	require.NoError(t, err)
	return tmpl
}

func TestGormTemplateRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("should round trip every term", func(t *testing.T) {
		repo := templaterepo.NewGormTemplateRepository(sqlitetest.Open(t))
		tmpl := newTemplate(t, "Illustration")
		require.NoError(t, repo.Save(ctx, tmpl))

		got, err := repo.Get(ctx, tmpl.ID())
		require.NoError(t, err)
		assert.Equal(t, "Illustration", got.Name())
		assert.Equal(t, "Illustration", got.ContractName())
		assert.True(t, got.ProviderID().IsEqual(tmpl.ProviderID()))
		assert.True(t, got.StartingPrice().Equal(kernel.MustMoney("250.50")))
		assert.Equal(t, payment.Installment3_1, got.PaymentMethod())
		assert.Equal(t, tmpl.Clauses(), got.Clauses())
		require.Len(t, got.Blocks(), 2)
		assert.Equal(t, confirmation.KindList, got.Blocks()[1].Kind)
		assert.True(t, got.Blocks()[1].Items[0].UnitPrice.Equal(kernel.MustMoney("20")))
		assert.Equal(t, []string{"Sketch", "Final art"}, got.Deliverables())
	})

	t.Run("should replace a template saved twice", func(t *testing.T) {
		repo := templaterepo.NewGormTemplateRepository(sqlitetest.Open(t))
		tmpl := newTemplate(t, "Illustration")
		require.NoError(t, repo.Save(ctx, tmpl))

		renamed, err := template.NewTemplate(tmpl.ID(), template.Terms{
			Name:          "Illustration v2",
			ProviderID:    tmpl.ProviderID(),
			StartingPrice: kernel.MustMoney("300"),
			PaymentMethod: payment.FullPayment,
		})
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, renamed))

		got, err := repo.Get(ctx, tmpl.ID())
		require.NoError(t, err)
		assert.Equal(t, "Illustration v2", got.Name())
		assert.Equal(t, payment.FullPayment, got.PaymentMethod())
		assert.Empty(t, got.Blocks())
	})

	t.Run("should report a missing template", func(t *testing.T) {
		repo := templaterepo.NewGormTemplateRepository(sqlitetest.Open(t))
		_, err := repo.Get(ctx, kernel.NewUUID())
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestTemplateDTO_Terms(t *testing.T) {
	t.Run("should reject an unknown payment method", func(t *testing.T) {
		dto := templaterepo.TemplateDTO{Name: "x", ProviderID: uuid.New(), PaymentMethod: "WEEKLY"}
		_, err := dto.Terms()
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject an unknown block kind", func(t *testing.T) {
		dto := templaterepo.TemplateDTO{
			Name:          "x",
			ProviderID:    uuid.New(),
			PaymentMethod: "FullPayment",
			Blocks:        []templaterepo.BlockDTO{{Name: "b", Kind: "slider"}},
		}
		_, err := dto.Terms()
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
