// Пакет cacheaside — read-through чтение и инвалидация поверх domain.Cache.
// Кэш здесь — оптимизация, а не зависимость: любая ошибка кэша
// деградирует до прямого похода в хранилище (чтение) или no-op (инвалидация).
package cacheaside

import (
	"context"
	"encoding/json"
	"log"

	"github.com/Duonganhdu2002/government-sub000/internal/domain"
)

// Loader достаёт данные из авторитетного хранилища.
// found=false — «ничего нет» (пустая выборка/нет строки): такое НЕ кэшируется,
// иначе свежесозданная запись будет замаскирована отрицательным кэшем до TTL.
type Loader[T any] func(ctx context.Context) (val T, found bool, err error)

// GetOrLoad — cache-aside: get → на промахе loader → set с TTL.
// На хите хранилище не трогаем; на промахе ровно один Set.
func GetOrLoad[T any](ctx context.Context, c domain.Cache, logger *log.Logger, key string, ttlSeconds int, load Loader[T]) (T, bool, error) {
	var zero T
	if ttlSeconds <= 0 {
		ttlSeconds = domain.DefaultCacheTTL
	}

	b, err := c.Get(ctx, key)
	if err != nil {
		// кэш недоступен — работаем как на промахе
		logger.Printf("lvl=warn op=cache.get key=%q err=%q (fallthrough to store)", key, err)
	} else if b != nil {
		var out T
		if uerr := json.Unmarshal(b, &out); uerr == nil {
			return out, true, nil
		} else {
			// битая запись — игнорируем, перечитаем из хранилища
			logger.Printf("lvl=warn op=cache.decode key=%q err=%q", key, uerr)
		}
	}

	val, found, err := load(ctx)
	if err != nil {
		return zero, false, err
	}
	if !found {
		return zero, false, nil
	}

	if buf, merr := json.Marshal(val); merr == nil {
		if serr := c.Set(ctx, key, buf, ttlSeconds); serr != nil {
			logger.Printf("lvl=warn op=cache.set key=%q err=%q", key, serr)
		}
	}
	return val, true, nil
}

// Invalidator удаляет наборы ключей после успешного коммита записи.
// Вызывается строго после коммита: инвалидация по ещё не закоммиченной
// записи могла бы откатиться вместе с ней.
type Invalidator struct {
	Cache domain.Cache
	Log   *log.Logger
}

// Invalidate — best-effort: отсутствующий ключ — no-op, недоступный кэш —
// warning в лог; протухшая запись сама умрёт по TTL.
func (i Invalidator) Invalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := i.Cache.Del(ctx, keys...); err != nil {
		i.Log.Printf("lvl=warn op=cache.invalidate keys=%v err=%q (stale until TTL)", keys, err)
	}
}
