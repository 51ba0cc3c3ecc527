package translatable_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	translatable "github.com/mewebstudio/go-translatable"
)

func newTranslationService(repo *fakeTranslationRepo) *translatable.TranslationService[testTranslation, string] {
	return translatable.NewTranslationService[testTranslation, string](repo, translationSnapshotTx{repo: repo})
}

func TestTranslationService_Save(t *testing.T) {
	t.Parallel()

	t.Run("round-trips through owner and locale lookup", func(t *testing.T) {
		t.Parallel()

		repo := newFakeTranslationRepo()
		svc := newTranslationService(repo)
		ctx := context.Background()

		in := testTranslation{id: "t1", ownerID: "o1", locale: "en", name: "hello"}
		saved, err := svc.Save(ctx, in)
		require.NoError(t, err)
		require.Equal(t, in, saved)

		got, err := svc.FindByOwnerIDAndLocale(ctx, "o1", "en")
		require.NoError(t, err)
		require.Equal(t, in, got)
	})

	t.Run("propagates backend failure", func(t *testing.T) {
		t.Parallel()

		repo := newFakeTranslationRepo()
		repo.failSave = errBackend
		svc := newTranslationService(repo)

		_, err := svc.Save(context.Background(), testTranslation{id: "t1", ownerID: "o1", locale: "en"})
		require.ErrorIs(t, err, errBackend)
		require.Empty(t, repo.rows)
	})
}

func TestTranslationService_Exists(t *testing.T) {
	t.Parallel()

	repo := newFakeTranslationRepo(
		testTranslation{id: "t1", ownerID: "o1", locale: "en"},
		testTranslation{id: "t2", ownerID: "o1", locale: "tr"},
		testTranslation{id: "t3", ownerID: "o2", locale: "en"},
	)
	svc := newTranslationService(repo)
	ctx := context.Background()

	t.Run("by locale", func(t *testing.T) {
		exists, err := svc.ExistsByLocale(ctx, "tr")
		require.NoError(t, err)
		require.True(t, exists)

		exists, err = svc.ExistsByLocale(ctx, "fr")
		require.NoError(t, err)
		require.False(t, exists)
	})

	t.Run("by owner id filters on owner, not locale", func(t *testing.T) {
		exists, err := svc.ExistsByOwnerID(ctx, "o2")
		require.NoError(t, err)
		require.True(t, exists)

		// "en" is a locale value, never an owner id: an owner-id filter
		// must not match it.
		exists, err = svc.ExistsByOwnerID(ctx, "en")
		require.NoError(t, err)
		require.False(t, exists)
	})

	t.Run("by owner id and locale", func(t *testing.T) {
		exists, err := svc.ExistsByOwnerIDAndLocale(ctx, "o2", "en")
		require.NoError(t, err)
		require.True(t, exists)

		exists, err = svc.ExistsByOwnerIDAndLocale(ctx, "o2", "tr")
		require.NoError(t, err)
		require.False(t, exists)
	})
}

func TestTranslationService_FindByOwnerID(t *testing.T) {
	t.Parallel()

	repo := newFakeTranslationRepo(
		testTranslation{id: "t1", ownerID: "o1", locale: "tr"},
		testTranslation{id: "t2", ownerID: "o1", locale: "en"},
		testTranslation{id: "t3", ownerID: "o2", locale: "en"},
	)
	svc := newTranslationService(repo)

	got, err := svc.FindByOwnerID(context.Background(), "o1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "en", got[0].Locale())
	require.Equal(t, "tr", got[1].Locale())
}

func TestTranslationService_FindPageByOwnerID(t *testing.T) {
	t.Parallel()

	rows := []testTranslation{
		{id: "t1", ownerID: "o1", locale: "de"},
		{id: "t2", ownerID: "o1", locale: "en"},
		{id: "t3", ownerID: "o1", locale: "es"},
		{id: "t4", ownerID: "o1", locale: "fr"},
		{id: "t5", ownerID: "o1", locale: "tr"},
	}
	repo := newFakeTranslationRepo(rows...)
	svc := newTranslationService(repo)
	ctx := context.Background()

	t.Run("page of 2 out of 5", func(t *testing.T) {
		page, err := svc.FindPageByOwnerID(ctx, "o1", translatable.PageRequest{Page: 0, Size: 2})
		require.NoError(t, err)
		require.Len(t, page.Items, 2)
		require.EqualValues(t, 5, page.TotalCount)
		require.Equal(t, 3, page.TotalPages())
		require.True(t, page.HasNext())
	})

	t.Run("stable across repeated calls", func(t *testing.T) {
		first, err := svc.FindPageByOwnerID(ctx, "o1", translatable.PageRequest{Page: 1, Size: 2})
		require.NoError(t, err)
		second, err := svc.FindPageByOwnerID(ctx, "o1", translatable.PageRequest{Page: 1, Size: 2})
		require.NoError(t, err)
		require.Equal(t, first, second)
	})

	t.Run("rejects invalid request", func(t *testing.T) {
		_, err := svc.FindPageByOwnerID(ctx, "o1", translatable.PageRequest{Page: 0, Size: 0})
		require.ErrorIs(t, err, translatable.ErrInvalidPage)
	})
}

func TestTranslationService_FindByOwnerIDAndLocale(t *testing.T) {
	t.Parallel()

	repo := newFakeTranslationRepo(
		testTranslation{id: "t1", ownerID: "o1", locale: "en"},
	)
	svc := newTranslationService(repo)
	ctx := context.Background()

	t.Run("returns the matching translation", func(t *testing.T) {
		got, err := svc.FindByOwnerIDAndLocale(ctx, "o1", "en")
		require.NoError(t, err)
		require.Equal(t, "t1", got.ID())
	})

	t.Run("absent locale returns ErrNotFound", func(t *testing.T) {
		_, err := svc.FindByOwnerIDAndLocale(ctx, "o1", "fr")
		require.ErrorIs(t, err, translatable.ErrNotFound)
	})
}

func TestTranslationService_FindByNameAndLocale(t *testing.T) {
	t.Parallel()

	repo := newFakeTranslationRepo(
		testTranslation{id: "t1", ownerID: "o1", locale: "en", name: "hello"},
		testTranslation{id: "t2", ownerID: "o2", locale: "en", name: "hello"},
		testTranslation{id: "t3", ownerID: "o3", locale: "tr", name: "merhaba"},
	)

	t.Run("returns matches from a name-capable repository", func(t *testing.T) {
		t.Parallel()

		svc := newTranslationService(repo)
		got, err := svc.FindByNameAndLocale(context.Background(), "hello", "en")
		require.NoError(t, err)
		require.Len(t, got, 2)
	})

	t.Run("fails for a repository without name lookups", func(t *testing.T) {
		t.Parallel()

		svc := translatable.NewTranslationService[testTranslation, string](
			unnamedRepo{repo}, translatable.NopTransactor{})
		_, err := svc.FindByNameAndLocale(context.Background(), "hello", "en")
		require.ErrorIs(t, err, translatable.ErrNameLookupUnsupported)
	})
}

func TestTranslationService_DeleteByOwnerIDAndLocale(t *testing.T) {
	t.Parallel()

	t.Run("deletes the matching translation", func(t *testing.T) {
		t.Parallel()

		repo := newFakeTranslationRepo(
			testTranslation{id: "t1", ownerID: "o1", locale: "en"},
			testTranslation{id: "t2", ownerID: "o1", locale: "tr"},
		)
		svc := newTranslationService(repo)

		n, err := svc.DeleteByOwnerIDAndLocale(context.Background(), "o1", "tr")
		require.NoError(t, err)
		require.EqualValues(t, 1, n)
		require.Len(t, repo.rows, 1)
		require.Contains(t, repo.rows, "t1")
	})

	t.Run("missing translation fails with ErrNotFound and mutates nothing", func(t *testing.T) {
		t.Parallel()

		repo := newFakeTranslationRepo(
			testTranslation{id: "t1", ownerID: "o1", locale: "en"},
		)
		svc := newTranslationService(repo)

		_, err := svc.DeleteByOwnerIDAndLocale(context.Background(), "o1", "xx")
		require.ErrorIs(t, err, translatable.ErrNotFound)
		require.Len(t, repo.rows, 1)
	})

	t.Run("downstream failure rolls the transaction back", func(t *testing.T) {
		t.Parallel()

		repo := newFakeTranslationRepo(
			testTranslation{id: "t1", ownerID: "o1", locale: "en"},
		)
		repo.failDelete = errBackend
		svc := newTranslationService(repo)

		_, err := svc.DeleteByOwnerIDAndLocale(context.Background(), "o1", "en")
		require.ErrorIs(t, err, errBackend)
		require.Len(t, repo.rows, 1)
	})
}

func TestTranslationService_DeleteByLocale(t *testing.T) {
	t.Parallel()

	t.Run("deletes every translation with the locale", func(t *testing.T) {
		t.Parallel()

		repo := newFakeTranslationRepo(
			testTranslation{id: "t1", ownerID: "o1", locale: "tr"},
			testTranslation{id: "t2", ownerID: "o2", locale: "tr"},
			testTranslation{id: "t3", ownerID: "o2", locale: "en"},
		)
		svc := newTranslationService(repo)

		n, err := svc.DeleteByLocale(context.Background(), "tr")
		require.NoError(t, err)
		require.EqualValues(t, 2, n)
		require.Len(t, repo.rows, 1)
		require.Contains(t, repo.rows, "t3")
	})

	t.Run("unknown locale fails with ErrNoLocale and mutates nothing", func(t *testing.T) {
		t.Parallel()

		repo := newFakeTranslationRepo(
			testTranslation{id: "t1", ownerID: "o1", locale: "en"},
		)
		svc := newTranslationService(repo)

		_, err := svc.DeleteByLocale(context.Background(), "xx")
		require.ErrorIs(t, err, translatable.ErrNoLocale)
		require.Len(t, repo.rows, 1)
	})
}
