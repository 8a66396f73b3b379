package store

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/billlayne/mailcomposer/form"
)

// AllContacts is the list every single-recipient compose is recorded in.
const AllContacts = "All Contacts"

type Recipient struct {
	Email        string `json:"email"`
	FirstName    string `json:"firstName"`
	PolicyHolder string `json:"policyHolder"`
}

type RecipientList struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	SavedAt    int64       `json:"savedAt"`
	Recipients []Recipient `json:"recipients"`
}

// add appends recipients whose email is not already on the list and
// returns how many were added.
func (l *RecipientList) add(rs ...Recipient) int {
	seen := make(map[string]bool, len(l.Recipients))
	for _, r := range l.Recipients {
		seen[r.Email] = true
	}
	n := 0
	for _, r := range rs {
		if seen[r.Email] {
			continue
		}
		seen[r.Email] = true
		l.Recipients = append(l.Recipients, r)
		n++
	}
	return n
}

// ParseRecipients reads "email, firstName, policyHolder" lines. Lines
// without a valid email are skipped and policyHolder defaults to firstName.
func ParseRecipients(r io.Reader) ([]Recipient, error) {
	var out []Recipient
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		parts := strings.Split(sc.Text(), ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if !form.ValidEmail(parts[0]) {
			continue
		}
		rec := Recipient{Email: parts[0]}
		if len(parts) > 1 {
			rec.FirstName = parts[1]
		}
		rec.PolicyHolder = rec.FirstName
		if len(parts) > 2 && parts[2] != "" {
			rec.PolicyHolder = parts[2]
		}
		out = append(out, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("store: read recipients: %w", err)
	}
	return out, nil
}

func (s *Store) Lists(ctx context.Context) ([]RecipientList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lists(ctx)
}

func (s *Store) lists(ctx context.Context) ([]RecipientList, error) {
	var ls []RecipientList
	if _, err := s.readCollection(ctx, ListsKey, &ls); err != nil {
		return nil, err
	}
	return ls, nil
}

// List finds a list by id, or by name when no id matches.
func (s *Store) List(ctx context.Context, idOrName string) (RecipientList, error) {
	ls, err := s.Lists(ctx)
	if err != nil {
		return RecipientList{}, err
	}
	for _, l := range ls {
		if l.ID == idOrName {
			return l, nil
		}
	}
	for _, l := range ls {
		if strings.EqualFold(l.Name, idOrName) {
			return l, nil
		}
	}
	return RecipientList{}, fmt.Errorf("list %q: %w", idOrName, ErrNotFound)
}

// CreateList adds an empty list.
func (s *Store) CreateList(ctx context.Context, name string) (RecipientList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return RecipientList{}, fmt.Errorf("list name: %w", form.ErrMissingField)
	}
	l := RecipientList{ID: "list-" + uuid.NewString(), Name: name, SavedAt: s.stamp(), Recipients: []Recipient{}}

	s.mu.Lock()
	defer s.mu.Unlock()
	ls, err := s.lists(ctx)
	if err != nil {
		return RecipientList{}, err
	}
	if err := s.writeCollection(ctx, ListsKey, append(ls, l)); err != nil {
		return RecipientList{}, err
	}
	return l, nil
}

func (s *Store) DeleteList(ctx context.Context, id string) error {
	return s.updateList(ctx, id, nil)
}

// AddRecipients adds rs to the list with id, skipping emails already on
// it. It returns the number added.
func (s *Store) AddRecipients(ctx context.Context, id string, rs []Recipient) (int, error) {
	added := 0
	err := s.updateList(ctx, id, func(l *RecipientList) {
		added = l.add(rs...)
	})
	return added, err
}

// RemoveRecipient drops email from the list with id.
func (s *Store) RemoveRecipient(ctx context.Context, id, email string) error {
	return s.updateList(ctx, id, func(l *RecipientList) {
		kept := l.Recipients[:0]
		for _, r := range l.Recipients {
			if r.Email != email {
				kept = append(kept, r)
			}
		}
		l.Recipients = kept
	})
}

// updateList applies fn to the list with id and saves. A nil fn deletes
// the list.
func (s *Store) updateList(ctx context.Context, id string, fn func(*RecipientList)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ls, err := s.lists(ctx)
	if err != nil {
		return err
	}
	idx := -1
	for i := range ls {
		if ls[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("list %q: %w", id, ErrNotFound)
	}
	if fn == nil {
		ls = append(ls[:idx], ls[idx+1:]...)
	} else {
		fn(&ls[idx])
	}
	return s.writeCollection(ctx, ListsKey, ls)
}

// RecordContact upserts r into the "All Contacts" list, creating the list
// when needed. Entries with an invalid email are ignored.
func (s *Store) RecordContact(ctx context.Context, r Recipient) error {
	if !form.ValidEmail(r.Email) {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	ls, err := s.lists(ctx)
	if err != nil {
		return err
	}
	idx := -1
	for i := range ls {
		if ls[i].Name == AllContacts {
			idx = i
			break
		}
	}
	if idx < 0 {
		ls = append(ls, RecipientList{ID: "list-all-contacts-" + uuid.NewString(), Name: AllContacts, SavedAt: s.stamp()})
		idx = len(ls) - 1
	}
	list := &ls[idx]
	replaced := false
	for i := range list.Recipients {
		if list.Recipients[i].Email == r.Email {
			list.Recipients[i] = r
			replaced = true
			break
		}
	}
	if !replaced {
		list.Recipients = append(list.Recipients, r)
	}
	if err := s.writeCollection(ctx, ListsKey, ls); err != nil {
		return err
	}
	s.log.Debug("contact recorded", zap.String("email", r.Email), zap.Bool("updated", replaced))
	return nil
}

// ContactFromForm is the All Contacts entry for a composed form.
func ContactFromForm(d form.Data) Recipient {
	holder := d.PolicyHolder
	if holder == "" {
		holder = d.RecipientName
	}
	return Recipient{Email: d.RecipientEmail, FirstName: d.RecipientName, PolicyHolder: holder}
}

func (s *Store) ExportLists(ctx context.Context, w io.Writer) (int, error) {
	ls, err := s.Lists(ctx)
	if err != nil {
		return 0, err
	}
	if ls == nil {
		ls = []RecipientList{}
	}
	return len(ls), exportJSON(w, ls)
}

// ImportLists merges the lists in r, skipping ids that already exist.
func (s *Store) ImportLists(ctx context.Context, r io.Reader) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("store: read import: %w", err)
	}
	if err := checkImport(data); err != nil {
		return 0, err
	}
	var incoming []RecipientList
	if err := json.Unmarshal(data, &incoming); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	ls, err := s.lists(ctx)
	if err != nil {
		return 0, err
	}
	seen := make(map[string]bool, len(ls))
	for _, l := range ls {
		seen[l.ID] = true
	}
	added := 0
	for _, l := range incoming {
		if seen[l.ID] {
			continue
		}
		seen[l.ID] = true
		ls = append(ls, l)
		added++
	}
	if added == 0 {
		return 0, nil
	}
	if err := s.writeCollection(ctx, ListsKey, ls); err != nil {
		return 0, err
	}
	s.log.Info("lists imported", zap.Int("added", added))
	return added, nil
}
