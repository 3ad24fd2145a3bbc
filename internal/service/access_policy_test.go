package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"workboard/internal/model"
)

func uintPtr(v uint) *uint { return &v }

func testOrders() []model.OrderDetail {
	return []model.OrderDetail{
		{Order: model.Order{ID: 1, StageID: 1, WorkmanID: uintPtr(1)}, WorkmanName: "Bob"},
		{Order: model.Order{ID: 2, StageID: 2, WorkmanID: uintPtr(1)}, WorkmanName: "Bob"},
		{Order: model.Order{ID: 3, StageID: 2, WorkmanID: uintPtr(2)}, WorkmanName: "Alice"},
		{Order: model.Order{ID: 4, StageID: 3}, WorkmanName: ""},
		{Order: model.Order{ID: 5, StageID: 4, WorkmanID: uintPtr(1)}, WorkmanName: "Bob"},
	}
}

func TestAccessPolicy_VisibleOrders(t *testing.T) {
	policy := NewAccessPolicy()
	orders := testOrders()

	tests := []struct {
		name          string
		role          model.Role
		userName      string
		visibleStages []uint
		expectedIDs   []uint
	}{
		{
			name:        "admin sees everything",
			role:        model.RoleAdmin,
			expectedIDs: []uint{1, 2, 3, 4, 5},
		},
		{
			name:          "client filters by stage only, regardless of assignee",
			role:          model.RoleClient,
			visibleStages: []uint{2, 3},
			expectedIDs:   []uint{2, 3, 4},
		},
		{
			name:          "client with empty set sees nothing",
			role:          model.RoleClient,
			visibleStages: nil,
			expectedIDs:   []uint{},
		},
		{
			name:        "user without stage permissions sees own work across all stages",
			role:        model.RoleUser,
			userName:    "Bob",
			expectedIDs: []uint{1, 2, 5},
		},
		{
			name:          "user with stage permissions sees own work narrowed by stage",
			role:          model.RoleUser,
			userName:      "Bob",
			visibleStages: []uint{4},
			expectedIDs:   []uint{5},
		},
		{
			name:          "user never sees unassigned or others' orders",
			role:          model.RoleUser,
			userName:      "Alice",
			visibleStages: []uint{2, 3},
			expectedIDs:   []uint{3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			visible := policy.VisibleOrders(tt.role, tt.userName, tt.visibleStages, orders)

			ids := make([]uint, 0, len(visible))
			for _, o := range visible {
				ids = append(ids, o.ID)
			}
			assert.Equal(t, tt.expectedIDs, ids)
			assert.LessOrEqual(t, len(visible), len(orders))
		})
	}
}

func TestAccessPolicy_VisibleOrders_AdminEqualsAll(t *testing.T) {
	policy := NewAccessPolicy()
	orders := testOrders()

	visible := policy.VisibleOrders(model.RoleAdmin, "whoever", []uint{1}, orders)
	assert.Equal(t, orders, visible)
}

func TestAccessPolicy_VisibleStages(t *testing.T) {
	policy := NewAccessPolicy()
	stages := []model.Stage{
		{ID: 1, Title: "Received", Position: 0},
		{ID: 2, Title: "Design", Position: 1},
		{ID: 3, Title: "Assembly", Position: 2},
		{ID: 4, Title: "Completed", Position: 3},
	}
	orders := []model.OrderDetail{
		{Order: model.Order{ID: 1, StageID: 1}},
		{Order: model.Order{ID: 2, StageID: 3}},
	}

	tests := []struct {
		name          string
		role          model.Role
		visibleStages []uint
		expectedIDs   []uint
	}{
		{
			name:        "admin sees all stages",
			role:        model.RoleAdmin,
			expectedIDs: []uint{1, 2, 3, 4},
		},
		{
			name:          "client sees permitted stages",
			role:          model.RoleClient,
			visibleStages: []uint{2, 3},
			expectedIDs:   []uint{2, 3},
		},
		{
			name:        "client with empty set sees nothing",
			role:        model.RoleClient,
			expectedIDs: []uint{},
		},
		{
			name:          "user with permissions sees permitted stages",
			role:          model.RoleUser,
			visibleStages: []uint{1, 4},
			expectedIDs:   []uint{1, 4},
		},
		{
			name:        "user without permissions falls back to occupied stages",
			role:        model.RoleUser,
			expectedIDs: []uint{1, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			visible := policy.VisibleStages(tt.role, tt.visibleStages, stages, orders)

			ids := make([]uint, 0, len(visible))
			for _, s := range visible {
				ids = append(ids, s.ID)
			}
			assert.Equal(t, tt.expectedIDs, ids)
		})
	}
}
