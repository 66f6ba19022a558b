// Пакет password — хэширование паролей граждан и сотрудников (argon2id).
package password

import (
	"errors"

	"github.com/alexedwards/argon2id"
)

// Профиль argon2id для портала: 64MB памяти, 2 прохода.
// Держит brute-force на украденном дампе citizens/staff дорогим,
// но не тормозит логин на типовом инстансе.
var portalParams = &argon2id.Params{
	Memory:      64 * 1024,
	Iterations:  2,
	Parallelism: 2,
	SaltLength:  16,
	KeyLength:   32,
}

type Hasher struct {
	params *argon2id.Params
}

func NewDefault() *Hasher {
	return &Hasher{params: portalParams}
}

func New(p *argon2id.Params) *Hasher { return &Hasher{params: p} }

// Hash возвращает закодированную строку формата $argon2id$v=19$m=...
// — её и храним в колонке passwordhash.
func (h *Hasher) Hash(plain string) (string, error) {
	if h == nil || h.params == nil {
		return "", errors.New("argon2id params not set")
	}
	return argon2id.CreateHash(plain, h.params)
}

// Verify сравнивает пароль с сохранённым хэшем; параметры берутся
// из самой закодированной строки, так что старые хэши остаются валидны
// после смены профиля.
func (h *Hasher) Verify(plain, encodedHash string) (bool, error) {
	return argon2id.ComparePasswordAndHash(plain, encodedHash)
}
