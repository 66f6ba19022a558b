package apptype

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Duonganhdu2002/government-sub000/internal/domain"
	"github.com/Duonganhdu2002/government-sub000/internal/testsupport"
)

type fakeRef struct {
	types  map[int64]domain.ApplicationType
	nextID int64

	listCalls int
	byIDCalls int
}

func newFakeRef() *fakeRef {
	return &fakeRef{types: make(map[int64]domain.ApplicationType), nextID: 1}
}

func (f *fakeRef) ApplicationTypesList(context.Context) ([]domain.ApplicationType, error) {
	f.listCalls++
	var out []domain.ApplicationType
	for _, t := range f.types {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeRef) ApplicationTypeByID(_ context.Context, id int64) (domain.ApplicationType, error) {
	f.byIDCalls++
	t, ok := f.types[id]
	if !ok {
		return domain.ApplicationType{}, domain.ErrNotFound
	}
	return t, nil
}

func (f *fakeRef) CreateApplicationType(_ context.Context, t domain.ApplicationType) (domain.ApplicationType, error) {
	t.ID = f.nextID
	f.nextID++
	f.types[t.ID] = t
	return t, nil
}

func (f *fakeRef) UpdateApplicationType(_ context.Context, t domain.ApplicationType) (domain.ApplicationType, error) {
	if _, ok := f.types[t.ID]; !ok {
		return domain.ApplicationType{}, domain.ErrNotFound
	}
	f.types[t.ID] = t
	return t, nil
}

func (f *fakeRef) DeleteApplicationType(_ context.Context, id int64) error {
	if _, ok := f.types[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.types, id)
	return nil
}

// ReferenceRepo: спец-типы в этих тестах не используются.
func (f *fakeRef) SpecialTypesList(context.Context) ([]domain.SpecialApplicationType, error) {
	return nil, nil
}
func (f *fakeRef) SpecialTypeByID(context.Context, int64) (domain.SpecialApplicationType, error) {
	return domain.SpecialApplicationType{}, domain.ErrNotFound
}
func (f *fakeRef) SpecialTypesByApplicationType(context.Context, int64) ([]domain.SpecialApplicationType, error) {
	return nil, nil
}
func (f *fakeRef) CreateSpecialType(_ context.Context, t domain.SpecialApplicationType) (domain.SpecialApplicationType, error) {
	return t, nil
}
func (f *fakeRef) UpdateSpecialType(_ context.Context, t domain.SpecialApplicationType) (domain.SpecialApplicationType, error) {
	return t, nil
}
func (f *fakeRef) DeleteSpecialType(context.Context, int64) error { return nil }

func newHandler(ref *fakeRef, cache *testsupport.FakeCache) *Handler {
	return &Handler{Log: log.New(io.Discard, "", 0), Ref: ref, Cache: cache, TTL: 60}
}

func seedType(f *fakeRef, name string, days int) domain.ApplicationType {
	t, _ := f.CreateApplicationType(context.Background(), domain.ApplicationType{
		Name: name, ProcessingTimeLimit: days,
	})
	return t
}

func TestListSecondReadSkipsStore(t *testing.T) {
	ref, cache := newFakeRef(), testsupport.NewFakeCache()
	seedType(ref, "Passport", 10)
	h := newHandler(ref, cache)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/application-types", nil)
		rec := httptest.NewRecorder()
		h.List(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	// второе чтение обслужено кэшем
	assert.Equal(t, 1, ref.listCalls)
	assert.True(t, cache.Has(domain.CacheKeyApplicationTypes()))
}

func TestGetOneNotFoundNotCached(t *testing.T) {
	ref, cache := newFakeRef(), testsupport.NewFakeCache()
	h := newHandler(ref, cache)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/application-types/5", nil)
	req.SetPathValue("id", "5")
	rec := httptest.NewRecorder()
	h.GetOne(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, cache.Sets)

	// появление записи сразу видно следующему чтению
	seedType(ref, "Passport", 10)
	seedType(ref, "Visa", 20)
	seedType(ref, "License", 30)
	seedType(ref, "Permit", 15)
	seedType(ref, "Certificate", 5)

	req2 := httptest.NewRequest(http.MethodGet, "/api/v1/application-types/5", nil)
	req2.SetPathValue("id", "5")
	rec2 := httptest.NewRecorder()
	h.GetOne(rec2, req2)
	assert.Equal(t, http.StatusOK, rec2.Code)
}

func TestCreateInvalidatesListCache(t *testing.T) {
	ref, cache := newFakeRef(), testsupport.NewFakeCache()
	seedType(ref, "Passport", 10)
	h := newHandler(ref, cache)

	// прогреваем кэш списка
	req := httptest.NewRequest(http.MethodGet, "/api/v1/application-types", nil)
	h.List(httptest.NewRecorder(), req)
	require.True(t, cache.Has(domain.CacheKeyApplicationTypes()))

	// создание инвалидирует агрегат
	body := strings.NewReader(`{"name":"Visa","description":"","processing_time_limit":20}`)
	creq := httptest.NewRequest(http.MethodPost, "/api/v1/application-types", body)
	crec := httptest.NewRecorder()
	h.Create(crec, creq)
	require.Equal(t, http.StatusOK, crec.Code)
	assert.False(t, cache.Has(domain.CacheKeyApplicationTypes()))

	// следующее чтение снова идёт в хранилище и видит обе записи
	lrec := httptest.NewRecorder()
	h.List(lrec, httptest.NewRequest(http.MethodGet, "/api/v1/application-types", nil))
	require.Equal(t, http.StatusOK, lrec.Code)

	var env struct {
		Data []domain.ApplicationType `json:"data"`
	}
	require.NoError(t, json.Unmarshal(lrec.Body.Bytes(), &env))
	assert.Len(t, env.Data, 2)
	assert.Equal(t, 2, ref.listCalls)
}

func TestUpdateInvalidatesByIDKey(t *testing.T) {
	ref, cache := newFakeRef(), testsupport.NewFakeCache()
	created := seedType(ref, "Passport", 10)
	h := newHandler(ref, cache)

	// прогреваем by-id
	greq := httptest.NewRequest(http.MethodGet, "/api/v1/application-types/1", nil)
	greq.SetPathValue("id", "1")
	h.GetOne(httptest.NewRecorder(), greq)
	require.True(t, cache.Has(domain.CacheKeyApplicationType(created.ID)))

	body := strings.NewReader(`{"name":"Passport","description":"renewal","processing_time_limit":14}`)
	ureq := httptest.NewRequest(http.MethodPut, "/api/v1/application-types/1", body)
	ureq.SetPathValue("id", "1")
	urec := httptest.NewRecorder()
	h.Update(urec, ureq)

	require.Equal(t, http.StatusOK, urec.Code)
	assert.False(t, cache.Has(domain.CacheKeyApplicationType(created.ID)))
}

func TestDeleteUnknownTypeIs404(t *testing.T) {
	ref, cache := newFakeRef(), testsupport.NewFakeCache()
	h := newHandler(ref, cache)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/application-types/9", nil)
	req.SetPathValue("id", "9")
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, cache.Dels)
}

func TestCreateRejectsEmptyName(t *testing.T) {
	ref, cache := newFakeRef(), testsupport.NewFakeCache()
	h := newHandler(ref, cache)

	body := strings.NewReader(`{"name":"","processing_time_limit":20}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/application-types", body)
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, ref.types)
}
