package translatable_test

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sort"

	translatable "github.com/mewebstudio/go-translatable"
)

// testTranslation is a minimal translation record for service tests.
type testTranslation struct {
	id      string
	ownerID string
	locale  string
	name    string
}

func (t testTranslation) ID() string      { return t.id }
func (t testTranslation) OwnerID() string { return t.ownerID }
func (t testTranslation) Locale() string  { return t.locale }

// fakeTranslationRepo is an in-memory TranslationRepository keyed by row id.
// Error fields inject downstream failures for rollback tests.
type fakeTranslationRepo struct {
	rows map[string]testTranslation

	failSave   error
	failDelete error
}

func newFakeTranslationRepo(rows ...testTranslation) *fakeTranslationRepo {
	r := &fakeTranslationRepo{rows: make(map[string]testTranslation)}
	for _, row := range rows {
		r.rows[row.id] = row
	}
	return r
}

func (r *fakeTranslationRepo) sortedByOwner(ownerID string) []testTranslation {
	var out []testTranslation
	for _, row := range r.rows {
		if row.ownerID == ownerID {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].locale != out[j].locale {
			return out[i].locale < out[j].locale
		}
		return out[i].id < out[j].id
	})
	return out
}

func (r *fakeTranslationRepo) Save(_ context.Context, tr testTranslation) (testTranslation, error) {
	if r.failSave != nil {
		return testTranslation{}, r.failSave
	}
	r.rows[tr.id] = tr
	return tr, nil
}

func (r *fakeTranslationRepo) FindByID(_ context.Context, id string) (testTranslation, error) {
	row, ok := r.rows[id]
	if !ok {
		return testTranslation{}, translatable.ErrNotFound
	}
	return row, nil
}

func (r *fakeTranslationRepo) DeleteByID(_ context.Context, id string) error {
	delete(r.rows, id)
	return nil
}

func (r *fakeTranslationRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.rows)), nil
}

func (r *fakeTranslationRepo) ExistsByLocale(_ context.Context, locale string) (bool, error) {
	for _, row := range r.rows {
		if row.locale == locale {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeTranslationRepo) ExistsByOwnerID(_ context.Context, ownerID string) (bool, error) {
	for _, row := range r.rows {
		if row.ownerID == ownerID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeTranslationRepo) ExistsByOwnerIDAndLocale(_ context.Context, ownerID, locale string) (bool, error) {
	for _, row := range r.rows {
		if row.ownerID == ownerID && row.locale == locale {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeTranslationRepo) FindByOwnerID(_ context.Context, ownerID string) ([]testTranslation, error) {
	return r.sortedByOwner(ownerID), nil
}

func (r *fakeTranslationRepo) FindPageByOwnerID(_ context.Context, ownerID string, page translatable.PageRequest) (translatable.Page[testTranslation], error) {
	if err := page.Validate(); err != nil {
		return translatable.Page[testTranslation]{}, err
	}
	all := r.sortedByOwner(ownerID)
	total := int64(len(all))
	lo := min(page.Offset(), len(all))
	hi := min(lo+page.Size, len(all))
	return translatable.Page[testTranslation]{
		Items:      all[lo:hi],
		TotalCount: total,
		Page:       page.Page,
		Size:       page.Size,
	}, nil
}

func (r *fakeTranslationRepo) FindByOwnerIDAndLocale(_ context.Context, ownerID, locale string) (testTranslation, error) {
	var match *testTranslation
	for _, row := range r.rows {
		if row.ownerID != ownerID || row.locale != locale {
			continue
		}
		if match == nil || row.id < match.id {
			row := row
			match = &row
		}
	}
	if match == nil {
		return testTranslation{}, fmt.Errorf("%w: owner %q locale %q", translatable.ErrNotFound, ownerID, locale)
	}
	return *match, nil
}

func (r *fakeTranslationRepo) DeleteByLocale(_ context.Context, locale string) (int64, error) {
	if r.failDelete != nil {
		return 0, r.failDelete
	}
	var n int64
	for id, row := range r.rows {
		if row.locale == locale {
			delete(r.rows, id)
			n++
		}
	}
	return n, nil
}

func (r *fakeTranslationRepo) DeleteByOwnerIDAndLocale(_ context.Context, ownerID, locale string) (int64, error) {
	if r.failDelete != nil {
		return 0, r.failDelete
	}
	var n int64
	for id, row := range r.rows {
		if row.ownerID == ownerID && row.locale == locale {
			delete(r.rows, id)
			n++
		}
	}
	return n, nil
}

func (r *fakeTranslationRepo) FindByNameAndLocale(_ context.Context, name, locale string) ([]testTranslation, error) {
	var out []testTranslation
	for _, row := range r.rows {
		if row.name == name && row.locale == locale {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out, nil
}

// unnamedRepo hides the name-lookup capability of the embedded repository.
type unnamedRepo struct {
	translatable.TranslationRepository[testTranslation, string]
}

// testOwner is a minimal translatable entity for service tests.
type testOwner struct {
	id           string
	translations []testTranslation
}

func (o testOwner) ID() string                      { return o.id }
func (o testOwner) Translations() []testTranslation { return o.translations }

func (o testOwner) hasLocale(locale string) bool {
	for _, tr := range o.translations {
		if tr.locale == locale {
			return true
		}
	}
	return false
}

// fakeTranslatableRepo is an in-memory TranslatableRepository. Owners hold
// their translations, so deleting an owner drops its translations with it,
// mirroring a cascading foreign key.
type fakeTranslatableRepo struct {
	rows map[string]testOwner

	failDelete error
}

func newFakeTranslatableRepo(rows ...testOwner) *fakeTranslatableRepo {
	r := &fakeTranslatableRepo{rows: make(map[string]testOwner)}
	for _, row := range rows {
		r.rows[row.id] = row
	}
	return r
}

func (r *fakeTranslatableRepo) sortedOwners() []testOwner {
	out := make([]testOwner, 0, len(r.rows))
	for _, row := range r.rows {
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

func (r *fakeTranslatableRepo) Save(_ context.Context, o testOwner) (testOwner, error) {
	r.rows[o.id] = o
	return o, nil
}

func (r *fakeTranslatableRepo) FindByID(_ context.Context, id string) (testOwner, error) {
	row, ok := r.rows[id]
	if !ok {
		return testOwner{}, translatable.ErrNotFound
	}
	return row, nil
}

func (r *fakeTranslatableRepo) DeleteByID(_ context.Context, id string) error {
	delete(r.rows, id)
	return nil
}

func (r *fakeTranslatableRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.rows)), nil
}

func (r *fakeTranslatableRepo) ExistsByIDAndLocale(_ context.Context, id, locale string) (bool, error) {
	row, ok := r.rows[id]
	return ok && row.hasLocale(locale), nil
}

func (r *fakeTranslatableRepo) FindByIDAndLocale(_ context.Context, id, locale string) (testOwner, error) {
	row, ok := r.rows[id]
	if !ok || !row.hasLocale(locale) {
		return testOwner{}, fmt.Errorf("%w: id %q locale %q", translatable.ErrNotFound, id, locale)
	}
	return row, nil
}

func (r *fakeTranslatableRepo) FindAllByLocale(_ context.Context, locale string) ([]testOwner, error) {
	var out []testOwner
	for _, row := range r.sortedOwners() {
		if row.hasLocale(locale) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *fakeTranslatableRepo) FindPageByLocale(ctx context.Context, locale string, page translatable.PageRequest) (translatable.Page[testOwner], error) {
	if err := page.Validate(); err != nil {
		return translatable.Page[testOwner]{}, err
	}
	all, _ := r.FindAllByLocale(ctx, locale)
	total := int64(len(all))
	lo := min(page.Offset(), len(all))
	hi := min(lo+page.Size, len(all))
	return translatable.Page[testOwner]{
		Items:      all[lo:hi],
		TotalCount: total,
		Page:       page.Page,
		Size:       page.Size,
	}, nil
}

func (r *fakeTranslatableRepo) FindTranslationsByID(_ context.Context, id string) ([]testTranslation, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	out := append([]testTranslation(nil), row.translations...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].locale != out[j].locale {
			return out[i].locale < out[j].locale
		}
		return out[i].id < out[j].id
	})
	return out, nil
}

func (r *fakeTranslatableRepo) FindPageOfTranslationsByID(ctx context.Context, id string, page translatable.PageRequest) (translatable.Page[testTranslation], error) {
	if err := page.Validate(); err != nil {
		return translatable.Page[testTranslation]{}, err
	}
	all, _ := r.FindTranslationsByID(ctx, id)
	total := int64(len(all))
	lo := min(page.Offset(), len(all))
	hi := min(lo+page.Size, len(all))
	return translatable.Page[testTranslation]{
		Items:      all[lo:hi],
		TotalCount: total,
		Page:       page.Page,
		Size:       page.Size,
	}, nil
}

func (r *fakeTranslatableRepo) DeleteByLocale(_ context.Context, locale string) (int64, error) {
	if r.failDelete != nil {
		return 0, r.failDelete
	}
	var n int64
	for id, row := range r.rows {
		if row.hasLocale(locale) {
			delete(r.rows, id)
			n++
		}
	}
	return n, nil
}

func (r *fakeTranslatableRepo) DeleteByIDAndLocale(_ context.Context, id, locale string) (int64, error) {
	if r.failDelete != nil {
		return 0, r.failDelete
	}
	row, ok := r.rows[id]
	if !ok || !row.hasLocale(locale) {
		return 0, nil
	}
	delete(r.rows, id)
	return 1, nil
}

// translationSnapshotTx implements Transactor over a fakeTranslationRepo by
// snapshotting its rows and restoring them when the function fails. It
// mirrors a database rollback closely enough to pin the services'
// guard-then-mutate atomicity.
type translationSnapshotTx struct {
	repo *fakeTranslationRepo
}

func (t translationSnapshotTx) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	backup := maps.Clone(t.repo.rows)
	if err := fn(ctx); err != nil {
		t.repo.rows = backup
		return err
	}
	return nil
}

type translatableSnapshotTx struct {
	repo *fakeTranslatableRepo
}

func (t translatableSnapshotTx) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	backup := maps.Clone(t.repo.rows)
	if err := fn(ctx); err != nil {
		t.repo.rows = backup
		return err
	}
	return nil
}

var errBackend = errors.New("backend failure")
