package services

import (
	"context"
	"testing"
	"time"

	"vehicle-catalog-api/catalog/cascade"
	"vehicle-catalog-api/catalog/provider"
	"vehicle-catalog-api/models"
	"vehicle-catalog-api/types"
	"vehicle-catalog-api/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// staticCatalog BMW(1): X5(10: G05 100, F15 101), 3 Series(11: G20 102); Audi(2): Q7(20: 4M 200)
func staticCatalog() *provider.StaticProvider {
	bmw := &models.Brand{ID: 1, Name: "BMW", Slug: "bmw"}
	audi := &models.Brand{ID: 2, Name: "Audi", Slug: "audi"}
	x5 := &models.Model{ID: 10, Name: "X5", BrandID: 1, Brand: bmw}
	series3 := &models.Model{ID: 11, Name: "3 Series", BrandID: 1, Brand: bmw}
	q7 := &models.Model{ID: 20, Name: "Q7", BrandID: 2, Brand: audi}
	hud := &models.EquipmentItem{ID: 7, Name: "Head-up display"}
	pano := &models.EquipmentItem{ID: 8, Name: "Panoramic roof"}

	return &provider.StaticProvider{Data: provider.Snapshot{
		Brands: []models.Brand{*audi, *bmw},
		Models: []models.Model{*x5, *series3, *q7},
		Generations: []models.Generation{
			{ID: 100, Name: "G05", ModelID: 10, Model: x5},
			{ID: 101, Name: "F15", ModelID: 10, Model: x5},
			{ID: 102, Name: "G20", ModelID: 11, Model: series3},
			{ID: 200, Name: "4M", ModelID: 20, Model: q7},
		},
		Equipment: []models.EquipmentAssignment{
			{ID: 1, BrandID: 1, ItemID: 7, Brand: bmw, Item: hud},
			{ID: 2, BrandID: 2, ItemID: 8, Brand: audi, Item: pano},
		},
	}}
}

func labels(options []types.Option) []string {
	out := make([]string, 0, len(options))
	for _, o := range options {
		out = append(out, o.Label)
	}
	return out
}

func TestSelectorService_OptionsWithoutParents(t *testing.T) {
	selector := NewSelectorService(staticCatalog())

	options, err := selector.Options(context.Background(), types.SelectionState{})
	require.NoError(t, err)

	assert.Equal(t, []string{"Audi", "BMW"}, labels(options.Brands))
	assert.Equal(t, []string{"BMW - X5", "BMW - 3 Series", "Audi - Q7"}, labels(options.Models))
	assert.Equal(t, []string{"BMW - X5 - G05", "BMW - X5 - F15", "BMW - 3 Series - G20", "Audi - Q7 - 4M"}, labels(options.Generations))
	assert.Equal(t, []string{"BMW - Head-up display", "Audi - Panoramic roof"}, labels(options.Equipment))
}

func TestSelectorService_OptionsFilteredByParent(t *testing.T) {
	selector := NewSelectorService(staticCatalog())

	options, err := selector.Options(context.Background(), types.SelectionState{
		BrandID: cascade.IDRef(1),
		ModelID: cascade.IDRef(10),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"X5", "3 Series"}, labels(options.Models))
	assert.Equal(t, []string{"G05", "F15"}, labels(options.Generations))
	require.Len(t, options.Equipment, 1)
	assert.Equal(t, types.Option{ID: 7, Label: "Head-up display"}, options.Equipment[0])
}

func TestSelectorService_UnknownParentYieldsEmptyLists(t *testing.T) {
	selector := NewSelectorService(staticCatalog())

	options, err := selector.Options(context.Background(), types.SelectionState{BrandID: cascade.IDRef(99)})
	require.NoError(t, err)

	assert.NotNil(t, options.Models)
	assert.Empty(t, options.Models)
	assert.Empty(t, options.Equipment)
}

func TestSelectorService_ReconcileKeepsValidSelection(t *testing.T) {
	selector := NewSelectorService(staticCatalog())
	state := types.SelectionState{
		BrandID:      cascade.IDRef(1),
		ModelID:      cascade.IDRef(10),
		GenerationID: cascade.IDRef(101),
		EquipmentID:  cascade.IDRef(7),
	}

	result, err := selector.Reconcile(context.Background(), state)
	require.NoError(t, err)

	assert.Empty(t, result.Cleared)
	assert.Equal(t, state, result.Selection)
}

func TestSelectorService_ReconcileBrandChange(t *testing.T) {
	selector := NewSelectorService(staticCatalog())

	// 品牌从 BMW 换成 Audi：车型和配置失效被清除；代系只看车型，车型已为空，保持不动
	result, err := selector.Reconcile(context.Background(), types.SelectionState{
		BrandID:      cascade.IDRef(2),
		ModelID:      cascade.IDRef(10),
		GenerationID: cascade.IDRef(100),
		EquipmentID:  cascade.IDRef(7),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{types.FieldModel, types.FieldEquipment}, result.Cleared)
	assert.Nil(t, result.Selection.ModelID)
	assert.Nil(t, result.Selection.EquipmentID)
	assert.Equal(t, cascade.IDRef(100), result.Selection.GenerationID)
	assert.Equal(t, []string{"Q7"}, labels(result.Options.Models))
}

func TestSelectorService_ReconcileModelChange(t *testing.T) {
	selector := NewSelectorService(staticCatalog())

	result, err := selector.Reconcile(context.Background(), types.SelectionState{
		BrandID:      cascade.IDRef(1),
		ModelID:      cascade.IDRef(11),
		GenerationID: cascade.IDRef(100),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{types.FieldGeneration}, result.Cleared)
	assert.Nil(t, result.Selection.GenerationID)
	assert.Equal(t, cascade.IDRef(11), result.Selection.ModelID)
}

func TestSelectorService_ReconcileWithoutBrandKeepsChildren(t *testing.T) {
	selector := NewSelectorService(staticCatalog())
	state := types.SelectionState{ModelID: cascade.IDRef(20), EquipmentID: cascade.IDRef(7)}

	result, err := selector.Reconcile(context.Background(), state)
	require.NoError(t, err)

	assert.Empty(t, result.Cleared)
	assert.Equal(t, state, result.Selection)
}

func newSessionService(maxSessions int32) (*SessionService, *provider.StaticProvider) {
	catalog := staticCatalog()
	sessions := utils.NewSessionManager(maxSessions)
	return NewSessionService(NewSelectorService(catalog), sessions, utils.NewWebSocketManager()), catalog
}

func TestSessionService_Lifecycle(t *testing.T) {
	service, _ := newSessionService(4)
	ctx := context.Background()

	view, err := service.Create(ctx, types.SelectionState{BrandID: cascade.IDRef(1)})
	require.NoError(t, err)
	assert.NotEmpty(t, view.ID)
	assert.Equal(t, 1, view.Version)
	assert.Equal(t, []string{"X5", "3 Series"}, labels(view.Options.Models))

	view, err = service.Update(ctx, view.ID, map[string]*int{
		types.FieldModel:      cascade.IDRef(10),
		types.FieldGeneration: cascade.IDRef(100),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, view.Version)
	assert.Empty(t, view.Cleared)

	// 切换品牌清除车型
	view, err = service.Update(ctx, view.ID, map[string]*int{types.FieldBrand: cascade.IDRef(2)})
	require.NoError(t, err)
	assert.Equal(t, []string{types.FieldModel}, view.Cleared)
	assert.Nil(t, view.Selection.ModelID)

	got, err := service.Get(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, view.Selection, got.Selection)

	require.NoError(t, service.Delete(view.ID))
	assert.False(t, service.Exists(view.ID))
	assert.ErrorIs(t, service.Delete(view.ID), utils.ErrSessionNotFound)
}

func TestSessionService_UpdateRejectsUnknownField(t *testing.T) {
	service, _ := newSessionService(4)
	ctx := context.Background()

	view, err := service.Create(ctx, types.SelectionState{})
	require.NoError(t, err)

	_, err = service.Update(ctx, view.ID, map[string]*int{"colour_id": cascade.IDRef(1)})
	assert.ErrorIs(t, err, types.ErrUnknownField)

	got, err := service.Get(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Version)
}

func TestSessionService_Limits(t *testing.T) {
	service, _ := newSessionService(1)
	ctx := context.Background()

	_, err := service.Create(ctx, types.SelectionState{})
	require.NoError(t, err)
	_, err = service.Create(ctx, types.SelectionState{})
	assert.ErrorIs(t, err, utils.ErrTooManySessions)

	_, err = service.Update(ctx, "missing", nil)
	assert.ErrorIs(t, err, utils.ErrSessionNotFound)
	_, err = service.Get(ctx, "missing")
	assert.ErrorIs(t, err, utils.ErrSessionNotFound)
}

func TestSessionService_Cleanup(t *testing.T) {
	service, _ := newSessionService(4)

	view, err := service.Create(context.Background(), types.SelectionState{})
	require.NoError(t, err)

	assert.Zero(t, service.Cleanup(time.Hour))
	assert.Equal(t, 1, service.Cleanup(-time.Second))
	assert.False(t, service.Exists(view.ID))
}

func TestSessionService_RunCleanupStopsWithContext(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	service, _ := newSessionService(4)
	view, err := service.Create(context.Background(), types.SelectionState{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		service.RunCleanup(ctx, 5*time.Millisecond, -time.Second)
		close(done)
	}()

	assert.Eventually(t, func() bool { return !service.Exists(view.ID) }, 2*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("cleanup loop did not stop")
	}
}

func TestSessionService_GetClearsSelectionRemovedFromCatalog(t *testing.T) {
	service, catalog := newSessionService(4)
	ctx := context.Background()

	view, err := service.Create(ctx, types.SelectionState{
		BrandID:      cascade.IDRef(1),
		ModelID:      cascade.IDRef(11),
		GenerationID: cascade.IDRef(102),
	})
	require.NoError(t, err)
	require.Empty(t, view.Cleared)

	// 车型 3 Series 从目录中删除
	var remaining []models.Model
	for _, m := range catalog.Data.Models {
		if m.ID != 11 {
			remaining = append(remaining, m)
		}
	}
	catalog.Data.Models = remaining

	got, err := service.Get(ctx, view.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Selection.ModelID)
	assert.Equal(t, []string{types.FieldModel}, got.Cleared)
	assert.Equal(t, 2, got.Version)
	assert.Equal(t, []string{"X5"}, labels(got.Options.Models))

	// 清除已保存，再次读取不再变化
	again, err := service.Get(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, again.Version)
	assert.Nil(t, again.Selection.ModelID)
}

func TestSessionService_GetKeepsValidSelection(t *testing.T) {
	service, _ := newSessionService(4)
	ctx := context.Background()
	initial := types.SelectionState{BrandID: cascade.IDRef(1), ModelID: cascade.IDRef(10)}

	view, err := service.Create(ctx, initial)
	require.NoError(t, err)

	got, err := service.Get(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, initial, got.Selection)
	assert.Equal(t, 1, got.Version)
	assert.Equal(t, []string{"G05", "F15"}, labels(got.Options.Generations))
}
