package vault

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"os"

	"github.com/devspace-tui/devspace/internal/store"
	"golang.org/x/crypto/nacl/secretbox"
)

// Cipher names accepted by NewCipher.
const (
	CipherXOR       = "xor"
	CipherSecretbox = "secretbox"
)

const keySuffix = "dev-space-key-2024"

// ErrCorrupt is returned when a sealed password cannot be opened.
var ErrCorrupt = errors.New("vault: sealed password is corrupt")

// Cipher seals passwords for storage.
type Cipher interface {
	Seal(plain string) (string, error)
	Open(sealed string) (string, error)
}

// XOR repeats the master key over the password bytes and base64-encodes the
// result. It is obfuscation only: anyone holding the store holds the key.
// For ASCII passwords the output matches what the web dashboard stored.
type XOR struct {
	key []byte
}

// NewXOR returns an XOR cipher keyed by key.
func NewXOR(key string) *XOR {
	return &XOR{key: []byte(key)}
}

func (x *XOR) apply(b []byte) []byte {
	out := make([]byte, len(b))
	for i := range b {
		out[i] = b[i] ^ x.key[i%len(x.key)]
	}
	return out
}

// Seal implements Cipher.
func (x *XOR) Seal(plain string) (string, error) {
	if len(x.key) == 0 {
		return "", errors.New("vault: empty master key")
	}
	return base64.StdEncoding.EncodeToString(x.apply([]byte(plain))), nil
}

// Open implements Cipher.
func (x *XOR) Open(sealed string) (string, error) {
	if len(x.key) == 0 {
		return "", errors.New("vault: empty master key")
	}
	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return string(x.apply(raw)), nil
}

// Secretbox seals with NaCl secretbox (XSalsa20-Poly1305) under a key
// derived from the master key. Each seal uses a fresh random nonce, stored
// in front of the box.
type Secretbox struct {
	key [32]byte
}

// NewSecretbox derives a secretbox key from the master key.
func NewSecretbox(master string) *Secretbox {
	return &Secretbox{key: sha256.Sum256([]byte(master))}
}

// Seal implements Cipher.
func (s *Secretbox) Seal(plain string) (string, error) {
	var nonce [24]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", fmt.Errorf("vault: nonce: %w", err)
	}
	box := secretbox.Seal(nonce[:], []byte(plain), &nonce, &s.key)
	return base64.StdEncoding.EncodeToString(box), nil
}

// Open implements Cipher.
func (s *Secretbox) Open(sealed string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if len(raw) < 24+secretbox.Overhead {
		return "", ErrCorrupt
	}
	var nonce [24]byte
	copy(nonce[:], raw[:24])
	plain, ok := secretbox.Open(nil, raw[24:], &nonce, &s.key)
	if !ok {
		return "", ErrCorrupt
	}
	return string(plain), nil
}

// DefaultMasterKey is the key the web dashboard derived for a host.
func DefaultMasterKey(hostname string) string {
	return base64.StdEncoding.EncodeToString([]byte(hostname + keySuffix))
}

// randomMasterKey returns 32 random bytes, base64-encoded.
func randomMasterKey() (string, error) {
	var b [32]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b[:]), nil
}

// MasterKey returns the stored master key, creating one on first use. The
// xor cipher keeps the web dashboard's host-derived default so existing
// exports stay readable; secretbox starts from a random key.
func MasterKey(ctx context.Context, s store.Store, cipher string) (string, error) {
	key, err := s.Get(ctx, store.KeyPasswordMasterKey)
	if err == nil && key != "" {
		return key, nil
	}
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return "", fmt.Errorf("vault: read master key: %w", err)
	}

	if cipher == CipherSecretbox {
		key, err = randomMasterKey()
		if err != nil {
			return "", fmt.Errorf("vault: generate master key: %w", err)
		}
	} else {
		host, _ := os.Hostname()
		key = DefaultMasterKey(host)
	}
	if err := s.Set(ctx, store.KeyPasswordMasterKey, key); err != nil {
		return "", fmt.Errorf("vault: store master key: %w", err)
	}
	return key, nil
}

// NewCipher returns the named cipher keyed by master.
func NewCipher(name, master string) (Cipher, error) {
	switch name {
	case CipherXOR, "":
		return NewXOR(master), nil
	case CipherSecretbox:
		return NewSecretbox(master), nil
	default:
		return nil, fmt.Errorf("vault: unknown cipher %q", name)
	}
}
