package impl

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/json"

	"leadapi/internal/domain"

	"golang.org/x/crypto/argon2"
)

type Argon2Params struct {
	// Stored alongside the hash so verification uses the original cost.
	Time    uint32 `json:"t"` // iterations
	Memory  uint32 `json:"m"` // KiB
	Threads uint8  `json:"p"` // parallelism
	KeyLen  uint32 `json:"k"` // bytes
	SaltLen uint32 `json:"s"` // bytes
}

type PasswordServiceImpl struct {
	currentVer int
	cur        Argon2Params
	algoName   string
}

func NewPasswordServiceArgon2id() *PasswordServiceImpl {
	return &PasswordServiceImpl{
		currentVer: 1,
		algoName:   "argon2id",
		cur: Argon2Params{
			Time:    3,
			Memory:  64 * 1024, // 64 MiB
			Threads: 1,
			KeyLen:  32,
			SaltLen: 16,
		},
	}
}

func (p *PasswordServiceImpl) Hash(password string) (*domain.PasswordCredential, error) {
	if password == "" {
		return nil, ErrEmptyPassword
	}
	salt := make([]byte, p.cur.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	hash := argon2.IDKey([]byte(password), salt, p.cur.Time, p.cur.Memory, p.cur.Threads, p.cur.KeyLen)
	paramsJSON, err := json.Marshal(p.cur)
	if err != nil {
		return nil, err
	}
	return &domain.PasswordCredential{
		Algo:        p.algoName,
		Hash:        hash,
		Salt:        salt,
		ParamsJSON:  paramsJSON,
		PasswordVer: p.currentVer,
	}, nil
}

func (p *PasswordServiceImpl) Verify(password string, cred *domain.PasswordCredential) bool {
	if cred == nil || cred.Algo != p.algoName {
		return false
	}
	var stored Argon2Params
	if err := json.Unmarshal(cred.ParamsJSON, &stored); err != nil {
		return false
	}
	calculated := argon2.IDKey([]byte(password), cred.Salt, stored.Time, stored.Memory, stored.Threads, stored.KeyLen)
	return subtle.ConstantTimeCompare(calculated, cred.Hash) == 1
}
