package listener

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/felixmixwr/gestao-sync/internal/config"
	"github.com/felixmixwr/gestao-sync/internal/finsync/lifecycle"
	"github.com/felixmixwr/gestao-sync/internal/finsync/oracle"
	"github.com/felixmixwr/gestao-sync/internal/finsync/projector"
	plannerdomain "github.com/felixmixwr/gestao-sync/internal/planner/domain"
	plannerrepo "github.com/felixmixwr/gestao-sync/internal/planner/repository"
	recorddomain "github.com/felixmixwr/gestao-sync/internal/record/domain"
	"github.com/felixmixwr/gestao-sync/internal/record/feed"
	recordrepo "github.com/felixmixwr/gestao-sync/internal/record/repository"
	"github.com/felixmixwr/gestao-sync/pkg/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	listener *Listener
	hub      *feed.Hub
	db       *gorm.DB
	node     *snowflake.Node
}

func setupListener(t *testing.T) *fixture {
	t.Helper()

	dbConn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, dbConn.AutoMigrate(
		&recorddomain.ReceivablePayment{},
		&plannerdomain.Category{},
		&plannerdomain.Event{},
	))

	node, err := snowflake.NewNode(2)
	require.NoError(t, err)
	require.NoError(t, dbConn.Create(&plannerdomain.Category{ID: node.Generate(), Name: "Pagamentos"}).Error)

	log := zap.NewNop()
	holder := config.NewStaticSyncHolder(config.DefaultSyncConfig())
	planRepo := plannerrepo.Provide()
	hub := feed.NewHub()

	l := New(Params{
		DB:         dbConn,
		Log:        log,
		Feed:       hub,
		RecordRepo: recordrepo.Provide(),
		Mapper:     lifecycle.NewMapper(holder),
		Oracle:     oracle.New(oracle.Params{DB: dbConn, Log: log, Planner: planRepo}),
		Projector:  projector.New(projector.Params{DB: dbConn, Log: log, Planner: planRepo, GenID: node}),
	})
	return &fixture{listener: l, hub: hub, db: dbConn, node: node}
}

func (f *fixture) seedPayment(t *testing.T, status string, method string, amount float64) *recorddomain.ReceivablePayment {
	t.Helper()
	paidAt := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	p := &recorddomain.ReceivablePayment{
		ID:         f.node.Generate(),
		Amount:     decimal.NewFromFloat(amount),
		Method:     method,
		Status:     status,
		ClientName: "Construtora Alfa",
	}
	if status == recorddomain.PaymentStatusPaid {
		p.PaidAt = &paidAt
	}
	require.NoError(t, f.db.Create(p).Error)
	return p
}

func (f *fixture) countEvents(t *testing.T, title string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&plannerdomain.Event{}).Where("title = ?", title).Count(&n).Error)
	return n
}

func TestOnPaymentConfirmedProjectsOnce(t *testing.T) {
	f := setupListener(t)
	ctx := context.Background()

	p := f.seedPayment(t, recorddomain.PaymentStatusPaid, "pix", 320.5)
	change := feed.PaymentChange{PaymentID: p.ID, Status: p.Status, ChangedAt: *p.PaidAt}

	f.listener.OnPaymentConfirmed(ctx, change)
	assert.EqualValues(t, 1, f.countEvents(t, "⚡ Pagamento: R$ 320,50"))

	var event plannerdomain.Event
	require.NoError(t, f.db.Where("title = ?", "⚡ Pagamento: R$ 320,50").First(&event).Error)
	assert.Contains(t, event.Description, "Cliente: Construtora Alfa")
	require.NotNil(t, event.CategoryID)

	// Redelivery of the same change is absorbed by the existence check.
	f.listener.OnPaymentConfirmed(ctx, change)
	assert.EqualValues(t, 1, f.countEvents(t, "⚡ Pagamento: R$ 320,50"))
}

func TestOnPaymentConfirmedIgnoresPending(t *testing.T) {
	f := setupListener(t)
	ctx := context.Background()

	p := f.seedPayment(t, recorddomain.PaymentStatusPending, "pix", 100)
	f.listener.OnPaymentConfirmed(ctx, feed.PaymentChange{
		PaymentID: p.ID,
		Status:    p.Status,
		ChangedAt: time.Now(),
	})

	var n int64
	require.NoError(t, f.db.Model(&plannerdomain.Event{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestOnPaymentConfirmedRefetchesRecord(t *testing.T) {
	f := setupListener(t)
	ctx := context.Background()

	// The change claims paid but the store says pending; the refetch wins.
	p := f.seedPayment(t, recorddomain.PaymentStatusPending, "cartao", 250)
	f.listener.OnPaymentConfirmed(ctx, feed.PaymentChange{
		PaymentID: p.ID,
		Status:    recorddomain.PaymentStatusPaid,
		ChangedAt: time.Now(),
	})

	var n int64
	require.NoError(t, f.db.Model(&plannerdomain.Event{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestRunConsumesBacklogAndLiveEvents(t *testing.T) {
	f := setupListener(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	backlogged := f.seedPayment(t, recorddomain.PaymentStatusPaid, "boleto", 900)
	f.hub.Publish(feed.PaymentChange{PaymentID: backlogged.ID, Status: backlogged.Status, ChangedAt: *backlogged.PaidAt})

	done := make(chan struct{})
	go func() {
		defer close(done)
		f.listener.Run(ctx)
	}()

	require.Eventually(t, func() bool {
		return f.countEvents(t, "🧾 Pagamento: R$ 900,00") == 1
	}, 2*time.Second, 10*time.Millisecond)

	live := f.seedPayment(t, recorddomain.PaymentStatusPaid, "dinheiro", 45)
	f.hub.Publish(feed.PaymentChange{PaymentID: live.ID, Status: live.Status, ChangedAt: *live.PaidAt})

	require.Eventually(t, func() bool {
		return f.countEvents(t, "💵 Pagamento: R$ 45,00") == 1
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("listener did not stop on context cancel")
	}
}
