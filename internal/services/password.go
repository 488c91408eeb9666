package services

import (
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost - стоимость bcrypt по умолчанию.
const DefaultBcryptCost = bcrypt.DefaultCost

// dummyPassword хешируется один раз для сравнений при входе с неизвестным email.
const dummyPassword = "cinecatalog-dummy-password"

// Hasher хеширует и проверяет пароли.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
	// VerifyDummy тратит на проверку столько же времени, сколько Verify для реального хеша.
	VerifyDummy(password string)
}

var _ Hasher = (*PasswordHasher)(nil)

// PasswordHasher хеширует пароли с помощью bcrypt.
// Хеш самоописываемый (соль и стоимость внутри), поэтому стоимость можно
// повысить позже, не ломая уже сохраненные хеши.
type PasswordHasher struct {
	cost int

	dummyOnce sync.Once
	dummyHash []byte
}

// NewPasswordHasher создает хешер с указанной стоимостью.
// Некорректная стоимость заменяется на bcrypt.DefaultCost (10).
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash возвращает bcrypt-хеш пароля со случайной солью.
func (h *PasswordHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify сравнивает пароль с хешем. Любое несовпадение или битый хеш дает false.
func (h *PasswordHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// VerifyDummy сравнивает пароль с фиктивным хешем той же стоимости.
// Фиктивный хеш создается при первом вызове.
func (h *PasswordHasher) VerifyDummy(password string) {
	h.dummyOnce.Do(func() {
		h.dummyHash, _ = bcrypt.GenerateFromPassword([]byte(dummyPassword), h.cost)
	})
	_ = bcrypt.CompareHashAndPassword(h.dummyHash, []byte(password))
}
