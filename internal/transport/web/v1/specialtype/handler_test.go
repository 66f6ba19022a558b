package specialtype

import (
	"context"
	"encoding/json"
	"fmt"
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
	special map[int64]domain.SpecialApplicationType
	nextID  int64

	byParentCalls int
}

func newFakeRef() *fakeRef {
	return &fakeRef{special: make(map[int64]domain.SpecialApplicationType), nextID: 1}
}

func (f *fakeRef) SpecialTypesList(context.Context) ([]domain.SpecialApplicationType, error) {
	var out []domain.SpecialApplicationType
	for _, t := range f.special {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeRef) SpecialTypeByID(_ context.Context, id int64) (domain.SpecialApplicationType, error) {
	t, ok := f.special[id]
	if !ok {
		return domain.SpecialApplicationType{}, domain.ErrNotFound
	}
	return t, nil
}

func (f *fakeRef) SpecialTypesByApplicationType(_ context.Context, typeID int64) ([]domain.SpecialApplicationType, error) {
	f.byParentCalls++
	var out []domain.SpecialApplicationType
	for _, t := range f.special {
		if t.ApplicationTypeID == typeID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeRef) CreateSpecialType(_ context.Context, t domain.SpecialApplicationType) (domain.SpecialApplicationType, error) {
	t.ID = f.nextID
	f.nextID++
	f.special[t.ID] = t
	return t, nil
}

func (f *fakeRef) UpdateSpecialType(_ context.Context, t domain.SpecialApplicationType) (domain.SpecialApplicationType, error) {
	if _, ok := f.special[t.ID]; !ok {
		return domain.SpecialApplicationType{}, domain.ErrNotFound
	}
	f.special[t.ID] = t
	return t, nil
}

func (f *fakeRef) DeleteSpecialType(_ context.Context, id int64) error {
	if _, ok := f.special[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.special, id)
	return nil
}

// Типы заявлений этим тестам не нужны.
func (f *fakeRef) ApplicationTypesList(context.Context) ([]domain.ApplicationType, error) {
	return nil, nil
}
func (f *fakeRef) ApplicationTypeByID(context.Context, int64) (domain.ApplicationType, error) {
	return domain.ApplicationType{}, domain.ErrNotFound
}
func (f *fakeRef) CreateApplicationType(_ context.Context, t domain.ApplicationType) (domain.ApplicationType, error) {
	return t, nil
}
func (f *fakeRef) UpdateApplicationType(_ context.Context, t domain.ApplicationType) (domain.ApplicationType, error) {
	return t, nil
}
func (f *fakeRef) DeleteApplicationType(context.Context, int64) error { return nil }

func newHandler(ref *fakeRef, cache *testsupport.FakeCache) *Handler {
	return &Handler{Log: log.New(io.Discard, "", 0), Ref: ref, Cache: cache, TTL: 60}
}

func listByParent(h *Handler, parentID int64) *httptest.ResponseRecorder {
	url := fmt.Sprintf("/api/v1/special-types?applicationTypeId=%d", parentID)
	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, url, nil))
	return rec
}

func TestListByParentUsesDedicatedKey(t *testing.T) {
	ref, cache := newFakeRef(), testsupport.NewFakeCache()
	ref.CreateSpecialType(context.Background(), domain.SpecialApplicationType{
		ApplicationTypeID: 3, Name: "Expedited",
	})
	h := newHandler(ref, cache)

	require.Equal(t, http.StatusOK, listByParent(h, 3).Code)
	assert.True(t, cache.Has(domain.CacheKeySpecialTypesByApplicationType(3)))
	assert.False(t, cache.Has(domain.CacheKeySpecialTypes()))

	// повтор — из кэша
	require.Equal(t, http.StatusOK, listByParent(h, 3).Code)
	assert.Equal(t, 1, ref.byParentCalls)
}

// Создание и удаление под одним родителем: каждая запись сбрасывает
// by-parent ключ, чтение после неё всегда видит актуальный состав.
func TestCreateThenDeleteRefreshesParentIndex(t *testing.T) {
	ref, cache := newFakeRef(), testsupport.NewFakeCache()
	h := newHandler(ref, cache)

	// создаём — появляется в by-parent выборке
	body := strings.NewReader(`{"application_type_id":3,"name":"Expedited","processing_time_limit":2}`)
	crec := httptest.NewRecorder()
	h.Create(crec, httptest.NewRequest(http.MethodPost, "/api/v1/special-types", body))
	require.Equal(t, http.StatusOK, crec.Code)

	lrec := listByParent(h, 3)
	require.Equal(t, http.StatusOK, lrec.Code)
	var env struct {
		Data []domain.SpecialApplicationType `json:"data"`
	}
	require.NoError(t, json.Unmarshal(lrec.Body.Bytes(), &env))
	require.Len(t, env.Data, 1)
	createdID := env.Data[0].ID

	// удаляем — by-parent ключ снова сброшен
	dreq := httptest.NewRequest(http.MethodDelete, "/api/v1/special-types/1", nil)
	dreq.SetPathValue("id", fmt.Sprint(createdID))
	drec := httptest.NewRecorder()
	h.Delete(drec, dreq)
	require.Equal(t, http.StatusOK, drec.Code)
	assert.False(t, cache.Has(domain.CacheKeySpecialTypesByApplicationType(3)))

	// итоговое чтение — пустой массив, и он не закэширован
	frec := listByParent(h, 3)
	require.Equal(t, http.StatusOK, frec.Code)
	var fin struct {
		Data []domain.SpecialApplicationType `json:"data"`
	}
	require.NoError(t, json.Unmarshal(frec.Body.Bytes(), &fin))
	assert.Empty(t, fin.Data)
	assert.False(t, cache.Has(domain.CacheKeySpecialTypesByApplicationType(3)))
}

// Перенос спец-типа под другой родительский тип обязан сбросить
// by-parent индексы обоих родителей: и нового, и прежнего.
func TestUpdateMovingParentDropsOldIndex(t *testing.T) {
	ref, cache := newFakeRef(), testsupport.NewFakeCache()
	created, err := ref.CreateSpecialType(context.Background(), domain.SpecialApplicationType{
		ApplicationTypeID: 3, Name: "Expedited", ProcessingTimeLimit: 2,
	})
	require.NoError(t, err)
	h := newHandler(ref, cache)

	// прогреваем индекс старого родителя
	require.Equal(t, http.StatusOK, listByParent(h, 3).Code)
	require.True(t, cache.Has(domain.CacheKeySpecialTypesByApplicationType(3)))

	// переносим запись под родителя 5
	body := strings.NewReader(`{"application_type_id":5,"name":"Expedited","processing_time_limit":2}`)
	ureq := httptest.NewRequest(http.MethodPut, "/api/v1/special-types/1", body)
	ureq.SetPathValue("id", fmt.Sprint(created.ID))
	urec := httptest.NewRecorder()
	h.Update(urec, ureq)
	require.Equal(t, http.StatusOK, urec.Code)

	assert.Contains(t, cache.Dels, domain.CacheKeySpecialTypesByApplicationType(3), "индекс прежнего родителя сброшен")
	assert.Contains(t, cache.Dels, domain.CacheKeySpecialTypesByApplicationType(5))

	// чтение старого родителя не должно отдать перенесённую запись из кэша
	lrec := listByParent(h, 3)
	require.Equal(t, http.StatusOK, lrec.Code)
	var env struct {
		Data []domain.SpecialApplicationType `json:"data"`
	}
	require.NoError(t, json.Unmarshal(lrec.Body.Bytes(), &env))
	assert.Empty(t, env.Data)

	nrec := listByParent(h, 5)
	require.Equal(t, http.StatusOK, nrec.Code)
	var moved struct {
		Data []domain.SpecialApplicationType `json:"data"`
	}
	require.NoError(t, json.Unmarshal(nrec.Body.Bytes(), &moved))
	require.Len(t, moved.Data, 1)
	assert.Equal(t, int64(5), moved.Data[0].ApplicationTypeID)
}

// Обновление без смены родителя не трогает чужие by-parent индексы.
func TestUpdateSameParentLeavesOtherIndexesAlone(t *testing.T) {
	ref, cache := newFakeRef(), testsupport.NewFakeCache()
	created, err := ref.CreateSpecialType(context.Background(), domain.SpecialApplicationType{
		ApplicationTypeID: 3, Name: "Expedited", ProcessingTimeLimit: 2,
	})
	require.NoError(t, err)
	h := newHandler(ref, cache)

	body := strings.NewReader(`{"application_type_id":3,"name":"Expedited+","processing_time_limit":4}`)
	ureq := httptest.NewRequest(http.MethodPut, "/api/v1/special-types/1", body)
	ureq.SetPathValue("id", fmt.Sprint(created.ID))
	urec := httptest.NewRecorder()
	h.Update(urec, ureq)
	require.Equal(t, http.StatusOK, urec.Code)

	assert.ElementsMatch(t, domain.SpecialTypeKeySet(created.ID, 3), cache.Dels)
}

func TestCreateRequiresParentType(t *testing.T) {
	ref, cache := newFakeRef(), testsupport.NewFakeCache()
	h := newHandler(ref, cache)

	body := strings.NewReader(`{"name":"Expedited"}`)
	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/api/v1/special-types", body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, ref.special)
}

func TestListBadParentParamRejected(t *testing.T) {
	ref, cache := newFakeRef(), testsupport.NewFakeCache()
	h := newHandler(ref, cache)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/special-types?applicationTypeId=abc", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
