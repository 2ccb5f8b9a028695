package services

import (
	"context"
	"fmt"

	"vehicle-catalog-api/catalog/cascade"
	"vehicle-catalog-api/catalog/label"
	"vehicle-catalog-api/catalog/provider"
	"vehicle-catalog-api/catalog/selection"
	"vehicle-catalog-api/models"
	"vehicle-catalog-api/types"
)

// SelectorService 级联选择：可选项、显示文本和选择校验
type SelectorService struct {
	provider provider.Provider
}

// NewSelectorService 创建级联选择服务
func NewSelectorService(p provider.Provider) *SelectorService {
	return &SelectorService{provider: p}
}

// Options 按当前选择计算各级可选项
func (s *SelectorService) Options(ctx context.Context, state types.SelectionState) (*types.OptionSet, error) {
	snapshot, err := provider.Load(ctx, s.provider)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	options := buildOptions(snapshot, state)
	return &options, nil
}

// Reconcile 校验选择：父级变化后清除失效的子级选择，并返回新的可选项
func (s *SelectorService) Reconcile(ctx context.Context, state types.SelectionState) (*types.ReconcileResult, error) {
	snapshot, err := provider.Load(ctx, s.provider)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	next, cleared := reconcile(snapshot, state)
	return &types.ReconcileResult{
		Selection: next,
		Cleared:   cleared,
		Options:   buildOptions(snapshot, next),
	}, nil
}

// cascadeForm 品牌→车型→代系，品牌→配置
type cascadeForm struct {
	brand      *selection.Value
	model      *selection.Level[models.Model]
	generation *selection.Level[models.Generation]
	equipment  *selection.Level[models.EquipmentAssignment]
	form       *selection.Form
}

func newCascadeForm(snapshot *provider.Snapshot, state types.SelectionState) *cascadeForm {
	f := &cascadeForm{brand: selection.NewValue(state.BrandID)}
	f.model = selection.NewLevel(types.FieldModel, snapshot.Models, f.brand.Get)
	f.generation = selection.NewLevel(types.FieldGeneration, snapshot.Generations, f.model.Selected)
	f.equipment = selection.NewLevel(types.FieldEquipment, snapshot.Equipment, f.brand.Get)

	f.model.Restore(state.ModelID)
	f.generation.Restore(state.GenerationID)
	f.equipment.Restore(state.EquipmentID)

	f.form = selection.NewForm(f.model, f.generation, f.equipment)
	return f
}

func (f *cascadeForm) state() types.SelectionState {
	return types.SelectionState{
		BrandID:      f.brand.Get(),
		ModelID:      f.model.Selected(),
		GenerationID: f.generation.Selected(),
		EquipmentID:  f.equipment.Selected(),
	}
}

func reconcile(snapshot *provider.Snapshot, state types.SelectionState) (types.SelectionState, []string) {
	f := newCascadeForm(snapshot, state)
	cleared := f.form.Evaluate()
	return f.state(), cleared
}

func buildOptions(snapshot *provider.Snapshot, state types.SelectionState) types.OptionSet {
	brandSelected := state.BrandID != nil
	modelSelected := state.ModelID != nil

	options := types.OptionSet{
		Brands:      make([]types.Option, 0, len(snapshot.Brands)),
		Models:      make([]types.Option, 0),
		Generations: make([]types.Option, 0),
		Equipment:   make([]types.Option, 0),
	}

	for _, b := range snapshot.Brands {
		options.Brands = append(options.Brands, types.Option{ID: b.ID, Label: label.BrandLabel(b)})
	}
	for _, m := range cascade.FilterChildren(snapshot.Models, state.BrandID) {
		options.Models = append(options.Models, types.Option{ID: m.ID, Label: label.ModelLabel(m, brandSelected)})
	}
	for _, g := range cascade.FilterChildren(snapshot.Generations, state.ModelID) {
		options.Generations = append(options.Generations, types.Option{ID: g.ID, Label: label.GenerationLabel(g, modelSelected)})
	}
	for _, a := range cascade.FilterChildren(snapshot.Equipment, state.BrandID) {
		options.Equipment = append(options.Equipment, types.Option{ID: a.ItemID, Label: label.EquipmentLabel(a, brandSelected)})
	}
	return options
}
