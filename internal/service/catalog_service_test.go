package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/Freeeeeet/court_booking/internal/model"
	"github.com/Freeeeeet/court_booking/internal/repository/memory"
	"github.com/Freeeeeet/court_booking/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCatalog_Courts(t *testing.T) {
	ctx := context.Background()
	catalog := service.NewCatalogService(memory.NewStore(), zap.NewNop())

	b, err := catalog.AddCourt(ctx, " Cancha B ", "padel", decimal.NewFromInt(9000))
	require.NoError(t, err)
	assert.Equal(t, "Cancha B", b.Name)
	_, err = catalog.AddCourt(ctx, "Cancha A", "futbol", decimal.NewFromInt(12000))
	require.NoError(t, err)

	all, err := catalog.ListCourts(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Cancha A", all[0].Name)

	padel, err := catalog.ListCourts(ctx, "PADEL")
	require.NoError(t, err)
	require.Len(t, padel, 1)
	assert.Equal(t, b.ID, padel[0].ID)

	b.HourlyPrice = decimal.NewFromInt(9500)
	require.NoError(t, catalog.UpdateCourt(ctx, b))
	got, err := catalog.GetCourt(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(9500).Equal(got.HourlyPrice))

	require.NoError(t, catalog.DeleteCourt(ctx, b.ID))
	_, err = catalog.GetCourt(ctx, b.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestCatalog_InvalidCourt(t *testing.T) {
	catalog := service.NewCatalogService(memory.NewStore(), zap.NewNop())

	_, err := catalog.AddCourt(context.Background(), "", "futbol", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, service.ErrInvalidCatalogEntry)
	_, err = catalog.AddCourt(context.Background(), "Cancha", "futbol", decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, service.ErrInvalidCatalogEntry)
}

func TestCatalog_DeleteReferencedRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	catalog := service.NewCatalogService(f.store, zap.NewNop())

	_, err := f.svc.Register(ctx, f.simple(datetime(2024, 1, 1, 19, 0), 60))
	require.NoError(t, err)

	err = catalog.DeleteCourt(ctx, f.court.ID)
	assert.ErrorIs(t, err, model.ErrCourtInUse)
	assert.ErrorIs(t, err, model.ErrInUse)

	err = catalog.DeleteClient(ctx, f.client.ID)
	assert.ErrorIs(t, err, model.ErrClientInUse)

	err = catalog.DeleteClient(ctx, 999)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestCatalog_Clients(t *testing.T) {
	ctx := context.Background()
	catalog := service.NewCatalogService(memory.NewStore(), zap.NewNop())

	c, err := catalog.AddClient(ctx, "Lucia", "1144440000")
	require.NoError(t, err)

	c.Phone = "1133330000"
	require.NoError(t, catalog.UpdateClient(ctx, c))

	clients, err := catalog.ListClients(ctx)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "1133330000", clients[0].Phone)

	_, err = catalog.AddClient(ctx, "  ", "")
	assert.ErrorIs(t, err, service.ErrInvalidCatalogEntry)
}

func TestSchedule_SetGetClose(t *testing.T) {
	ctx := context.Background()
	schedules := service.NewScheduleService(memory.NewStore(), zap.NewNop())

	_, err := schedules.Get(ctx, time.Tuesday)
	assert.ErrorIs(t, err, model.ErrNotFound)

	ws := &model.WorkSchedule{Weekday: time.Tuesday, OpensAt: 9 * time.Hour, ClosesAt: 21 * time.Hour}
	require.NoError(t, schedules.Set(ctx, ws))

	got, err := schedules.Get(ctx, time.Tuesday)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSlotMinutes, got.SlotMinutes)

	all, err := schedules.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, schedules.Close(ctx, time.Tuesday))
	assert.ErrorIs(t, schedules.Close(ctx, time.Tuesday), model.ErrNotFound)
}

func TestSchedule_Invalid(t *testing.T) {
	schedules := service.NewScheduleService(memory.NewStore(), zap.NewNop())

	err := schedules.Set(context.Background(), &model.WorkSchedule{Weekday: time.Monday, OpensAt: 9 * time.Hour, ClosesAt: 9 * time.Hour})
	assert.ErrorIs(t, err, service.ErrInvalidSchedule)

	err = schedules.Set(context.Background(), &model.WorkSchedule{Weekday: 9, OpensAt: 9 * time.Hour, ClosesAt: 10 * time.Hour})
	assert.ErrorIs(t, err, service.ErrInvalidSchedule)
}
