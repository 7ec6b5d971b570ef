package ecs

import "testing"

func TestEventManagerDispatchesNamedEvents(t *testing.T) {
	em := NewEventManager()
	var got []string
	id := em.Subscribe("recalc", func(e Event) {
		ne := e.(NamedEvent)
		got = append(got, ne.Args.GetString("attrName", "All"))
	})

	em.Fire("recalc", EventArgs{"attrName": "count"})
	em.Fire("recalc", nil)
	em.Fire("other", EventArgs{"attrName": "ignored"})

	if len(got) != 2 || got[0] != "count" || got[1] != "All" {
		t.Errorf("Expected [count All], got %v", got)
	}

	em.Unsubscribe("recalc", id)
	em.Fire("recalc", nil)
	if len(got) != 2 {
		t.Errorf("Expected no dispatch after unsubscribe, got %v", got)
	}
	if em.HandlerCount("recalc") != 0 {
		t.Error("Expected handler list to be removed")
	}
}

func TestEventArgsGetInt(t *testing.T) {
	args := EventArgs{"index": "3", "bad": "x"}
	if args.GetInt("index", -1) != 3 {
		t.Error("Expected 3")
	}
	if args.GetInt("bad", -1) != -1 || args.GetInt("missing", -1) != -1 {
		t.Error("Expected default for malformed and missing values")
	}
}

func TestWorldCloneIsIndependent(t *testing.T) {
	w := NewWorld()
	e := w.CreateEntity()
	w.TagEntity(e.ID, "actor")
	w.AddComponent(e.ID, 0, "goblin")

	c := w.Clone()
	w.AddComponent(e.ID, 0, "orc")
	w.TagEntity(w.CreateEntity().ID, "actor")

	if c.Len() != 1 || len(c.GetEntitiesWithTag("actor")) != 1 {
		t.Fatalf("Expected clone to keep the entity")
	}
	if comp, ok := c.GetComponent(e.ID, 0); !ok || comp.(string) != "goblin" {
		t.Errorf("Expected cloned component, got %v", comp)
	}

	next := c.CreateEntity()
	if next.ID == e.ID {
		t.Error("Expected clone to continue the ID sequence")
	}
}

func TestEntitiesAreOrderedByID(t *testing.T) {
	w := NewWorld()
	for i := 0; i < 10; i++ {
		w.TagEntity(w.CreateEntity().ID, "item")
	}
	entities := w.GetEntitiesWithTag("item")
	for i := 1; i < len(entities); i++ {
		if entities[i-1].ID >= entities[i].ID {
			t.Fatalf("Entities not ordered: %d before %d", entities[i-1].ID, entities[i].ID)
		}
	}
}
