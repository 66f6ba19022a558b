package cacheaside

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Duonganhdu2002/government-sub000/internal/domain"
	"github.com/Duonganhdu2002/government-sub000/internal/testsupport"
)

var discard = log.New(io.Discard, "", 0)

type row struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// countingLoader считает обращения к «хранилищу».
func countingLoader(vals []row, found bool, err error) (Loader[[]row], *int) {
	calls := 0
	return func(context.Context) ([]row, bool, error) {
		calls++
		return vals, found, err
	}, &calls
}

func TestGetOrLoadHitSkipsStore(t *testing.T) {
	ctx := context.Background()
	cache := testsupport.NewFakeCache()
	load, calls := countingLoader([]row{{ID: 1, Name: "a"}}, true, nil)

	first, ok, err := GetOrLoad(ctx, cache, discard, "rows:all", 60, load)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 1, *calls)
	require.Len(t, cache.Sets, 1, "ровно один Set на промах")

	// повторное чтение в пределах TTL — из кэша, без похода в хранилище
	second, ok, err := GetOrLoad(ctx, cache, discard, "rows:all", 60, load)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, first, second)
	require.Equal(t, 1, *calls, "на хите loader не вызывается")
	require.Len(t, cache.Sets, 1, "на хите нет записей в кэш")
}

func TestGetOrLoadDoesNotCacheNotFound(t *testing.T) {
	ctx := context.Background()
	cache := testsupport.NewFakeCache()
	key := "rows:id:99"

	// читаем несуществующую запись
	missLoad, missCalls := countingLoader(nil, false, nil)
	_, ok, err := GetOrLoad(ctx, cache, discard, key, 60, missLoad)
	require.NoError(t, err)
	require.False(t, ok)
	require.False(t, cache.Has(key), "отрицательный результат не кэшируется")

	// «создали» запись — следующее чтение обязано её увидеть
	hitLoad, hitCalls := countingLoader([]row{{ID: 99, Name: "fresh"}}, true, nil)
	got, ok, err := GetOrLoad(ctx, cache, discard, key, 60, hitLoad)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, int64(99), got[0].ID)
	require.Equal(t, 1, *missCalls)
	require.Equal(t, 1, *hitCalls)
}

func TestGetOrLoadCacheDownFallsThrough(t *testing.T) {
	ctx := context.Background()
	cache := testsupport.NewFakeCache()
	cache.FailGet = true
	cache.FailSet = true
	load, calls := countingLoader([]row{{ID: 1}}, true, nil)

	got, ok, err := GetOrLoad(ctx, cache, discard, "rows:all", 60, load)
	require.NoError(t, err, "недоступный кэш не валит запрос")
	require.True(t, ok)
	require.Len(t, got, 1)
	require.Equal(t, 1, *calls)

	// кэш так и не заработал — каждый раз идём в хранилище
	_, _, err = GetOrLoad(ctx, cache, discard, "rows:all", 60, load)
	require.NoError(t, err)
	require.Equal(t, 2, *calls)
}

func TestGetOrLoadStoreErrorPropagates(t *testing.T) {
	ctx := context.Background()
	cache := testsupport.NewFakeCache()
	storeErr := errors.New("pg down")
	load, _ := countingLoader(nil, false, storeErr)

	_, ok, err := GetOrLoad(ctx, cache, discard, "rows:all", 60, load)
	require.ErrorIs(t, err, storeErr, "хранилище авторитетно — его ошибка наружу")
	require.False(t, ok)
	require.False(t, cache.Has("rows:all"))
}

func TestGetOrLoadIgnoresCorruptEntry(t *testing.T) {
	ctx := context.Background()
	cache := testsupport.NewFakeCache()
	cache.Data["rows:all"] = []byte("{not json")
	load, calls := countingLoader([]row{{ID: 5}}, true, nil)

	got, ok, err := GetOrLoad(ctx, cache, discard, "rows:all", 60, load)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, int64(5), got[0].ID)
	require.Equal(t, 1, *calls, "битая запись — перечитали из хранилища")
}

func TestInvalidateDeletesKeySet(t *testing.T) {
	ctx := context.Background()
	cache := testsupport.NewFakeCache()
	inv := Invalidator{Cache: cache, Log: discard}

	keys := domain.SpecialTypeKeySet(11, 3)
	for _, k := range keys {
		cache.Data[k] = []byte(`[]`)
	}

	inv.Invalidate(ctx, keys...)
	for _, k := range keys {
		require.False(t, cache.Has(k), k)
	}

	// удаление отсутствующих ключей — no-op
	inv.Invalidate(ctx, "no:such:key")
	require.Contains(t, cache.Dels, "no:such:key")

	// пустой набор — кэш не трогаем
	before := len(cache.Dels)
	inv.Invalidate(ctx)
	require.Equal(t, before, len(cache.Dels))
}

func TestInvalidateCacheDownIsNonFatal(t *testing.T) {
	cache := testsupport.NewFakeCache()
	cache.FailDel = true
	inv := Invalidator{Cache: cache, Log: discard}

	// не должно паниковать и не возвращает ошибку вовсе
	inv.Invalidate(context.Background(), domain.CacheKeyApplications())
}

// Сценарий: создание и немедленное удаление спец-типа — последующее чтение
// списка по родителю не должно отдать удалённую строку из кэша.
func TestCreateThenDeleteInvalidatesParentIndex(t *testing.T) {
	ctx := context.Background()
	cache := testsupport.NewFakeCache()
	inv := Invalidator{Cache: cache, Log: discard}
	key := domain.CacheKeySpecialTypesByApplicationType(3)

	store := []row{{ID: 11, Name: "temp"}}
	load := func(context.Context) ([]row, bool, error) {
		return append([]row(nil), store...), len(store) > 0, nil
	}

	got, ok, err := GetOrLoad(ctx, cache, discard, key, 60, load)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 1)
	require.True(t, cache.Has(key))

	// удаление строки + инвалидация набора ключей после коммита
	store = nil
	inv.Invalidate(ctx, domain.SpecialTypeKeySet(11, 3)...)
	require.False(t, cache.Has(key))

	_, ok, err = GetOrLoad(ctx, cache, discard, key, 60, load)
	require.NoError(t, err)
	require.False(t, ok, "удалённая строка не пережила инвалидацию")
}
