package projector

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/felixmixwr/gestao-sync/internal/finsync/domain"
	plannerdomain "github.com/felixmixwr/gestao-sync/internal/planner/domain"
	plannerrepo "github.com/felixmixwr/gestao-sync/internal/planner/repository"
	"github.com/felixmixwr/gestao-sync/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupProjector(t *testing.T) (*Projector, *gorm.DB, *snowflake.Node) {
	t.Helper()

	dbConn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, dbConn.AutoMigrate(&plannerdomain.Category{}, &plannerdomain.Event{}))

	node, err := snowflake.NewNode(3)
	require.NoError(t, err)

	p := New(Params{
		DB:      dbConn,
		Log:     zap.NewNop(),
		Planner: plannerrepo.Provide(),
		GenID:   node,
	})
	return p, dbConn, node
}

func createIntent(key string) domain.ArtifactIntent {
	return domain.ArtifactIntent{
		Op:           domain.OpCreate,
		Kind:         domain.KindPayment,
		NaturalKey:   key,
		StartDate:    time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC),
		CategoryName: "Pagamentos",
	}
}

func TestCreateResolvesCategoryAlias(t *testing.T) {
	p, dbConn, node := setupProjector(t)
	ctx := context.Background()

	// The installation named the category "Pagos" instead of "Pagamentos".
	pagos := plannerdomain.Category{ID: node.Generate(), Name: "Pagos"}
	require.NoError(t, dbConn.Create(&pagos).Error)

	artifact, err := p.Create(ctx, createIntent("⚡ Pagamento: R$ 10,00"))
	require.NoError(t, err)
	require.NotNil(t, artifact.CategoryID)
	assert.Equal(t, pagos.ID, *artifact.CategoryID)
}

func TestCreateFallsBackToUncategorized(t *testing.T) {
	p, _, _ := setupProjector(t)
	ctx := context.Background()

	// No categories seeded at all. The write must still land.
	artifact, err := p.Create(ctx, createIntent("⚡ Pagamento: R$ 20,00"))
	require.NoError(t, err)
	assert.Nil(t, artifact.CategoryID)
}

func TestCreateRejectsRemoveIntent(t *testing.T) {
	p, _, _ := setupProjector(t)

	_, err := p.Create(context.Background(), domain.ArtifactIntent{
		Op:         domain.OpRemove,
		NaturalKey: "💰 Vencimento NF: NF-1",
	})
	assert.ErrorIs(t, err, domain.ErrIntentNotCreate)
}

func TestRemoveDeletesEveryMatch(t *testing.T) {
	p, dbConn, _ := setupProjector(t)
	ctx := context.Background()

	for range 2 {
		_, err := p.Create(ctx, createIntent("✅ Pagamento NF: NF-9"))
		require.NoError(t, err)
	}

	removed, err := p.Remove(ctx, "✅ Pagamento NF: NF-9")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	var n int64
	require.NoError(t, dbConn.Model(&plannerdomain.Event{}).Count(&n).Error)
	assert.Zero(t, n)

	// Removing an absent key is a no-op, not an error.
	removed, err = p.Remove(ctx, "✅ Pagamento NF: NF-9")
	require.NoError(t, err)
	assert.Zero(t, removed)
}
