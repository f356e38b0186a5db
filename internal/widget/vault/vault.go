// Package vault is the password manager widget.
package vault

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

// ErrMissingField is returned when site, username or password is blank.
var ErrMissingField = errors.New("please fill in all fields")

// Password is a decrypted entry.
type Password struct {
	ID        string
	Site      string
	Username  string
	Password  string
	CreatedAt int64
}

// Record is how a Password is stored: the password itself only sealed.
type Record struct {
	ID                string `json:"id"`
	Site              string `json:"site"`
	Username          string `json:"username"`
	EncryptedPassword string `json:"encryptedPassword"`
	CreatedAt         int64  `json:"createdAt"`
}

// Vault holds decrypted entries.
type Vault struct {
	Entries []Password
	cipher  Cipher
	now     func() time.Time
	newID   func() string
}

// NewVault wraps entries sealed with cipher.
func NewVault(entries []Password, cipher Cipher, now func() time.Time, newID func() string) *Vault {
	return &Vault{Entries: entries, cipher: cipher, now: now, newID: newID}
}

func clean(site, username, password string) (string, string, error) {
	site, username = strings.TrimSpace(site), strings.TrimSpace(username)
	if site == "" || username == "" || strings.TrimSpace(password) == "" {
		return "", "", ErrMissingField
	}
	return site, username, nil
}

// Add stores a new entry. Site and username are trimmed; the password is
// kept as typed.
func (v *Vault) Add(site, username, password string) (Password, error) {
	site, username, err := clean(site, username, password)
	if err != nil {
		return Password{}, err
	}
	p := Password{ID: v.newID(), Site: site, Username: username, Password: password, CreatedAt: v.now().UnixMilli()}
	v.Entries = append(v.Entries, p)
	return p, nil
}

// Edit replaces the fields of entry id.
func (v *Vault) Edit(id, site, username, password string) error {
	site, username, err := clean(site, username, password)
	if err != nil {
		return err
	}
	i := slices.IndexFunc(v.Entries, func(p Password) bool { return p.ID == id })
	if i < 0 {
		return fmt.Errorf("vault: no entry %q", id)
	}
	v.Entries[i].Site, v.Entries[i].Username, v.Entries[i].Password = site, username, password
	return nil
}

// Delete removes entry id.
func (v *Vault) Delete(id string) bool {
	before := len(v.Entries)
	v.Entries = slices.DeleteFunc(v.Entries, func(p Password) bool { return p.ID == id })
	return len(v.Entries) != before
}

// Find returns entry id.
func (v *Vault) Find(id string) (Password, bool) {
	i := slices.IndexFunc(v.Entries, func(p Password) bool { return p.ID == id })
	if i < 0 {
		return Password{}, false
	}
	return v.Entries[i], true
}

// Search returns the entries whose site or username contains query,
// ignoring case, newest first.
func (v *Vault) Search(query string) []Password {
	q := strings.ToLower(query)
	var out []Password
	for _, p := range v.Entries {
		if strings.Contains(strings.ToLower(p.Site), q) || strings.Contains(strings.ToLower(p.Username), q) {
			out = append(out, p)
		}
	}
	slices.SortStableFunc(out, func(a, b Password) int { return cmp.Compare(b.CreatedAt, a.CreatedAt) })
	return out
}

// Seal encrypts every entry for storage.
func (v *Vault) Seal() ([]Record, error) {
	recs := make([]Record, 0, len(v.Entries))
	for _, p := range v.Entries {
		sealed, err := v.cipher.Seal(p.Password)
		if err != nil {
			return nil, fmt.Errorf("seal %s: %w", p.Site, err)
		}
		recs = append(recs, Record{ID: p.ID, Site: p.Site, Username: p.Username, EncryptedPassword: sealed, CreatedAt: p.CreatedAt})
	}
	return recs, nil
}

// Unseal decrypts records. Entries that fail to open keep an empty password
// and are counted in the returned error.
func Unseal(recs []Record, cipher Cipher) ([]Password, error) {
	out := make([]Password, 0, len(recs))
	failed := 0
	for _, r := range recs {
		plain, err := cipher.Open(r.EncryptedPassword)
		if err != nil {
			failed++
		}
		out = append(out, Password{ID: r.ID, Site: r.Site, Username: r.Username, Password: plain, CreatedAt: r.CreatedAt})
	}
	if failed > 0 {
		return out, fmt.Errorf("%w: %d of %d entries", ErrCorrupt, failed, len(recs))
	}
	return out, nil
}
