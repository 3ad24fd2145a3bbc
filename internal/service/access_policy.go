package service

import "workboard/internal/model"

// AccessPolicy computes the subset of stages and orders a user is allowed to
// see. All visibility decisions go through here; handlers never re-derive
// them per endpoint.
//
// The rules are asymmetric on purpose: clients are workshop customers who
// track a wing of the pipeline and filter by stage only, while user accounts
// are workmen who only ever see their own assigned work, further narrowed by
// stage visibility when configured.
type AccessPolicy struct{}

// NewAccessPolicy creates a new access policy.
func NewAccessPolicy() *AccessPolicy {
	return &AccessPolicy{}
}

// VisibleOrders filters orders for a user.
//   - admin: everything.
//   - client: orders whose stage is in the visible set; an empty set yields
//     no orders.
//   - user: orders assigned to a workman with the user's name, AND within the
//     visible set when that set is non-empty.
func (p *AccessPolicy) VisibleOrders(role model.Role, name string, visibleStageIDs []uint, orders []model.OrderDetail) []model.OrderDetail {
	if role == model.RoleAdmin {
		return orders
	}

	visible := toIDSet(visibleStageIDs)
	filtered := make([]model.OrderDetail, 0, len(orders))
	for _, o := range orders {
		switch role {
		case model.RoleClient:
			if visible[o.StageID] {
				filtered = append(filtered, o)
			}
		case model.RoleUser:
			if o.WorkmanName != name {
				continue
			}
			if len(visible) > 0 && !visible[o.StageID] {
				continue
			}
			filtered = append(filtered, o)
		}
	}
	return filtered
}

// VisibleStages filters stages for a user.
//   - admin: everything.
//   - client: stages in the visible set.
//   - user with a visible set: stages in the set.
//   - user without one: stages that currently hold at least one order, so a
//     workman with no configured permissions still sees active columns.
func (p *AccessPolicy) VisibleStages(role model.Role, visibleStageIDs []uint, stages []model.Stage, orders []model.OrderDetail) []model.Stage {
	if role == model.RoleAdmin {
		return stages
	}

	if len(visibleStageIDs) > 0 {
		visible := toIDSet(visibleStageIDs)
		filtered := make([]model.Stage, 0, len(stages))
		for _, s := range stages {
			if visible[s.ID] {
				filtered = append(filtered, s)
			}
		}
		return filtered
	}

	if role == model.RoleClient {
		// A client without visible stages cannot exist by invariant; return
		// nothing rather than everything if one does.
		return []model.Stage{}
	}

	occupied := make(map[uint]bool, len(orders))
	for _, o := range orders {
		occupied[o.StageID] = true
	}
	filtered := make([]model.Stage, 0, len(stages))
	for _, s := range stages {
		if occupied[s.ID] {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

func toIDSet(ids []uint) map[uint]bool {
	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
