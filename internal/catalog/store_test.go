package catalog

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := OpenStore(ctx)
	require.NoError(t, err)
	defer store.Close()

	want := Default()
	require.NoError(t, store.Seed(ctx, want))

	got, err := store.Load(ctx)
	require.NoError(t, err)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("catalog mismatch after seed/load (-want +got):\n%s", diff)
	}
}

func TestStoreSeedReplaces(t *testing.T) {
	ctx := context.Background()
	store, err := OpenStore(ctx)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Seed(ctx, Default()))

	small := &Catalog{
		Projects:      []Project{{ID: 7, Title: "Solo", Difficulty: "Beginner", Skills: []string{}, Tags: []string{"x"}}},
		LearningPaths: []LearningPath{},
		Plans:         []Plan{},
		Features:      []Feature{},
	}
	require.NoError(t, store.Seed(ctx, small))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got.Projects, 1)
	require.Equal(t, "Solo", got.Projects[0].Title)
	require.Empty(t, got.LearningPaths)
	require.Empty(t, got.Plans)
	require.Empty(t, got.Features)
}

func TestStoreKeepsCatalogOrder(t *testing.T) {
	ctx := context.Background()
	store, err := OpenStore(ctx)
	require.NoError(t, err)
	defer store.Close()

	want := &Catalog{
		Projects: []Project{
			{ID: 9, Title: "Buck Converter", Skills: []string{"power"}, Tags: []string{"smps"}},
			{ID: 2, Title: "LED Blinker", Skills: []string{"basics"}, Tags: []string{"led"}},
			{ID: 5, Title: "USB Hub", Skills: []string{"usb"}, Tags: []string{"usb"}},
		},
		LearningPaths: []LearningPath{
			{ID: 3, Title: "Power", ProjectIDs: []int{9}, Milestones: []string{}, Skills: []string{}},
			{ID: 1, Title: "Basics", ProjectIDs: []int{2, 5}, Milestones: []string{}, Skills: []string{}},
		},
		Plans:    []Plan{},
		Features: []Feature{},
	}
	require.NoError(t, store.Seed(ctx, want))

	got, err := store.Load(ctx)
	require.NoError(t, err)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("catalog order not preserved (-want +got):\n%s", diff)
	}
}
