package engine_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/cadencehq/cadence/pkg/domain/model"
	"github.com/cadencehq/cadence/pkg/domain/model/config"
	"github.com/cadencehq/cadence/pkg/domain/types"
	"github.com/cadencehq/cadence/pkg/engine"
)

func leadMap(leads ...*model.Lead) map[string]*model.Lead {
	m := make(map[string]*model.Lead, len(leads))
	for _, lead := range leads {
		m[lead.ID] = lead
	}
	return m
}

func TestAssignLanes(t *testing.T) {
	policy := config.DefaultPlanningPolicy()

	t.Run("partitions every open action into exactly one lane", func(t *testing.T) {
		recentTouch := testNow.Add(-2 * 24 * time.Hour)
		lead := &model.Lead{ID: "l1", UserID: "u1", Name: "Sam", LastInteractionAt: &recentTouch}

		actions := []*model.Action{}
		for _, spec := range []struct {
			id        string
			typ       types.ActionType
			state     types.ActionState
			dueInDays int
			leadID    string
		}{
			{"a1", types.ActionTypeFollowUp, types.ActionStateNew, 0, ""},
			{"a2", types.ActionTypeOutreach, types.ActionStateNew, 2, "l1"},
			{"a3", types.ActionTypeNurture, types.ActionStateNew, 5, ""},
			{"a4", types.ActionTypeContent, types.ActionStateSent, 1, ""},
			{"a5", types.ActionTypeFollowUp, types.ActionStateDone, 0, ""},
		} {
			action := testAction(spec.typ, spec.state, spec.dueInDays)
			action.ID = spec.id
			action.LeadID = spec.leadID
			actions = append(actions, action)
		}

		assignments := engine.AssignLanes(actions, leadMap(lead), policy, testNow)

		// DONE is excluded, everything else appears exactly once
		if len(assignments) != 4 {
			t.Fatalf("got %d assignments, want 4", len(assignments))
		}
		if _, ok := assignments["a5"]; ok {
			t.Error("closed action should not be assigned a lane")
		}
		for id, assignment := range assignments {
			if !assignment.Lane.IsValid() {
				t.Errorf("action %s has invalid lane %q", id, assignment.Lane)
			}
		}

		if assignments["a1"].Lane != types.LanePriority {
			t.Errorf("follow-up due today should ride priority, got %s", assignments["a1"].Lane)
		}
		if assignments["a2"].Lane != types.LaneInMotion {
			t.Errorf("live conversation should ride in_motion, got %s", assignments["a2"].Lane)
		}
		if assignments["a3"].Lane != types.LaneOnDeck {
			t.Errorf("future nurture should ride on_deck, got %s", assignments["a3"].Lane)
		}
	})

	t.Run("overdue medium actions still ride priority", func(t *testing.T) {
		action := testAction(types.ActionTypeFollowUp, types.ActionStateNew, -5)
		action.ID = "a-overdue"

		assignments := engine.AssignLanes([]*model.Action{action}, nil, policy, testNow)
		if assignments["a-overdue"].Lane != types.LanePriority {
			t.Errorf("overdue action should ride priority, got %s", assignments["a-overdue"].Lane)
		}
	})

	t.Run("stale conversation does not ride in_motion", func(t *testing.T) {
		oldTouch := testNow.Add(-30 * 24 * time.Hour)
		lead := &model.Lead{ID: "l1", UserID: "u1", LastInteractionAt: &oldTouch}

		action := testAction(types.ActionTypeOutreach, types.ActionStateNew, 3)
		action.ID = "a-stale"
		action.LeadID = "l1"

		assignments := engine.AssignLanes([]*model.Action{action}, leadMap(lead), policy, testNow)
		if assignments["a-stale"].Lane != types.LaneOnDeck {
			t.Errorf("stale conversation should ride on_deck, got %s", assignments["a-stale"].Lane)
		}
	})

	t.Run("promised actions carry a relative promise label", func(t *testing.T) {
		promised := testAction(types.ActionTypeFollowUp, types.ActionStateNew, 0)
		promised.ID = "a-promised"
		overdueAt := testNow.Add(-24 * time.Hour)
		promised.PromisedDueAt = &overdueAt

		plain := testAction(types.ActionTypeNurture, types.ActionStateNew, 5)
		plain.ID = "a-plain"

		assignments := engine.AssignLanes([]*model.Action{promised, plain}, nil, policy, testNow)
		if got := assignments["a-promised"].Promise; got != "overdue by 1 day" {
			t.Errorf("promise label = %q, want %q", got, "overdue by 1 day")
		}
		if got := assignments["a-plain"].Promise; got != "" {
			t.Errorf("unpromised action got promise label %q", got)
		}
	})
}

func TestSortByScore(t *testing.T) {
	policy := config.DefaultPlanningPolicy()

	build := func() ([]string, map[string]*model.Action, map[string]model.LaneAssignment) {
		actions := []*model.Action{}
		for _, spec := range []struct {
			id        string
			typ       types.ActionType
			dueInDays int
			estimate  int
		}{
			{"b1", types.ActionTypeNurture, 5, 0},
			{"b2", types.ActionTypeFollowUp, 0, 0},
			{"b3", types.ActionTypeOutreach, 3, 10},
			{"b4", types.ActionTypeOutreach, 3, 45},
			{"b5", types.ActionTypeFollowUp, -2, 0},
		} {
			action := testAction(spec.typ, types.ActionStateNew, spec.dueInDays)
			action.ID = spec.id
			action.EstimatedMinutes = spec.estimate
			actions = append(actions, action)
		}

		assignments := engine.AssignLanes(actions, nil, policy, testNow)
		byID := make(map[string]*model.Action)
		ids := make([]string, 0, len(actions))
		for _, action := range actions {
			byID[action.ID] = action
			ids = append(ids, action.ID)
		}
		return ids, byID, assignments
	}

	t.Run("ordering is stable across repeated sorts", func(t *testing.T) {
		ids, byID, assignments := build()
		engine.SortByScore(ids, byID, assignments)
		first := append([]string{}, ids...)
		engine.SortByScore(ids, byID, assignments)
		if !reflect.DeepEqual(first, ids) {
			t.Errorf("sorting twice diverged: %v vs %v", first, ids)
		}
	})

	t.Run("priority first, overdue second, shorter third", func(t *testing.T) {
		ids, byID, assignments := build()
		engine.SortByScore(ids, byID, assignments)

		// b5 overdue high beats b2 due-today high; both beat mediums;
		// among equal mediums the shorter estimate (b3) wins; low is last.
		want := []string{"b5", "b2", "b3", "b4", "b1"}
		if !reflect.DeepEqual(ids, want) {
			t.Errorf("order = %v, want %v", ids, want)
		}
	})

	t.Run("full ties break by due date then id", func(t *testing.T) {
		early := testAction(types.ActionTypeOutreach, types.ActionStateNew, 1)
		early.ID = "z-early"
		late := testAction(types.ActionTypeOutreach, types.ActionStateNew, 2)
		late.ID = "a-late"
		twin := testAction(types.ActionTypeOutreach, types.ActionStateNew, 2)
		twin.ID = "b-twin"

		actions := []*model.Action{late, twin, early}
		assignments := engine.AssignLanes(actions, nil, policy, testNow)
		byID := map[string]*model.Action{"z-early": early, "a-late": late, "b-twin": twin}

		ids := []string{"b-twin", "z-early", "a-late"}
		engine.SortByScore(ids, byID, assignments)
		want := []string{"z-early", "a-late", "b-twin"}
		if !reflect.DeepEqual(ids, want) {
			t.Errorf("order = %v, want %v", ids, want)
		}
	})
}

func TestBestAction(t *testing.T) {
	policy := config.DefaultPlanningPolicy()

	t.Run("picks across priority and in_motion", func(t *testing.T) {
		recentTouch := testNow.Add(-24 * time.Hour)
		lead := &model.Lead{ID: "l1", UserID: "u1", LastInteractionAt: &recentTouch}

		urgent := testAction(types.ActionTypeFollowUp, types.ActionStateNew, -1)
		urgent.ID = "c1"
		live := testAction(types.ActionTypeOutreach, types.ActionStateNew, 3)
		live.ID = "c2"
		live.LeadID = "l1"
		parked := testAction(types.ActionTypeNurture, types.ActionStateNew, 6)
		parked.ID = "c3"

		actions := []*model.Action{urgent, live, parked}
		assignments := engine.AssignLanes(actions, leadMap(lead), policy, testNow)

		if got := engine.BestAction(actions, assignments); got != "c1" {
			t.Errorf("BestAction = %s, want c1", got)
		}
	})

	t.Run("on_deck only yields nothing", func(t *testing.T) {
		parked := testAction(types.ActionTypeNurture, types.ActionStateNew, 6)
		parked.ID = "c3"

		actions := []*model.Action{parked}
		assignments := engine.AssignLanes(actions, nil, policy, testNow)

		if got := engine.BestAction(actions, assignments); got != "" {
			t.Errorf("BestAction = %q, want empty", got)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if got := engine.BestAction(nil, nil); got != "" {
			t.Errorf("BestAction = %q, want empty", got)
		}
	})
}
