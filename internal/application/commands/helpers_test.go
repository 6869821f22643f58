package commands

import (
	"scriptorium/internal/adapters/memory"
	"scriptorium/internal/application/content"
	"scriptorium/internal/application/progress"
	"scriptorium/internal/application/state"
)

type testEnv struct {
	storage *memory.Store
	stores  *state.Stores
	library *content.Library
	plans   *progress.PlanController
	tracker *progress.TrackerController
}

func newTestEnv() *testEnv {
	fetcher := memory.NewFetcher(map[string]string{
		"/data/books/gen.json":             `{"book":"gen","name":"Genesis","chapters":[{"chapter":1,"verses":[{"verse":1,"text":"In the beginning"},{"verse":2,"text":"And the earth"},{"verse":3,"text":"Let there be light"}]}]}`,
		"/data/commentary/gen.json":        `{"book":"gen","chapters":[{"chapter":1,"intro":"Creation","verses":[{"verse":1,"text":"note"}]}]}`,
		"/data/plan-content/thematic.json": `{"id":"thematic","days":[{"day":5,"bible":[{"book":"gen","chapter":5}],"egw":[{"label":"Cap. 2"}]}]}`,
		"/data/plans.json":                 `[{"id":"thematic","title":"Annual Thematic","type":"topical","days":365}]`,
	})
	storage := memory.NewStore()
	stores := state.Open(storage, nil, nil)
	return &testEnv{
		storage: storage,
		stores:  stores,
		library: content.NewLibrary(content.NewCache(fetcher, memory.NewCacheTier())),
		plans:   progress.NewPlanController(stores.PlanProgress),
		tracker: progress.NewTrackerController(stores.Tracker),
	}
}
