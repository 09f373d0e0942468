package cylinder_test

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/MrJamesThe3rd/gastrack/internal/cylinder"
	"github.com/MrJamesThe3rd/gastrack/internal/ledger"
)

// memStore is an in-memory Repository. A unit of work holds mu from Begin
// until Commit or Rollback, so units of work are fully serialized and see
// each other's effects only after commit.
type memStore struct {
	mu        sync.Mutex
	cylinders map[string]cylinder.Cylinder
	archived  map[string]cylinder.DeletedCylinder
	companies map[int64]bool
	entries   []*ledger.Entry
}

func newMemStore(companies ...int64) *memStore {
	s := &memStore{
		cylinders: map[string]cylinder.Cylinder{},
		archived:  map[string]cylinder.DeletedCylinder{},
		companies: map[int64]bool{},
	}

	for _, id := range companies {
		s.companies[id] = true
	}

	return s
}

func (s *memStore) put(serial string, status cylinder.Status, companyID *int64) {
	s.cylinders[serial] = cylinder.Cylinder{SerialNumber: serial, GasType: "oxygen", Size: 50, Status: status, CompanyID: companyID}
}

func (s *memStore) Begin(context.Context) (cylinder.UnitOfWork, error) {
	s.mu.Lock()

	return &memUnit{
		s:         s,
		cylinders: maps.Clone(s.cylinders),
		archived:  maps.Clone(s.archived),
	}, nil
}

func (s *memStore) GetCylinder(_ context.Context, serial string) (*cylinder.Cylinder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.cylinders[serial]
	if !ok {
		return nil, cylinder.ErrNotFound
	}

	return &c, nil
}

func (s *memStore) ListCylinders(context.Context, cylinder.ListFilter) ([]*cylinder.Cylinder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*cylinder.Cylinder

	for _, serial := range slices.Sorted(maps.Keys(s.cylinders)) {
		c := s.cylinders[serial]
		out = append(out, &c)
	}

	return out, nil
}

func (s *memStore) ListArchived(context.Context) ([]*cylinder.DeletedCylinder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*cylinder.DeletedCylinder

	for _, d := range s.archived {
		out = append(out, &d)
	}

	return out, nil
}

type memUnit struct {
	s         *memStore
	cylinders map[string]cylinder.Cylinder
	archived  map[string]cylinder.DeletedCylinder
	entries   []*ledger.Entry
	done      bool
}

func (u *memUnit) LockCylinders(_ context.Context, serials []string) ([]*cylinder.Cylinder, error) {
	var out []*cylinder.Cylinder

	for _, serial := range serials {
		if c, ok := u.cylinders[serial]; ok {
			out = append(out, &c)
		}
	}

	return out, nil
}

func (u *memUnit) CompanyActive(_ context.Context, id int64) (bool, error) {
	return u.s.companies[id], nil
}

func (u *memUnit) UpdateStatus(_ context.Context, serials []string, from, to cylinder.Status, companyID *int64) (int64, error) {
	var n int64

	for _, serial := range serials {
		c, ok := u.cylinders[serial]
		if !ok || c.Status != from {
			continue
		}

		c.Status = to
		c.CompanyID = companyID
		u.cylinders[serial] = c
		n++
	}

	return n, nil
}

func (u *memUnit) AppendLedger(_ context.Context, entries []*ledger.Entry) error {
	u.entries = append(u.entries, entries...)

	return nil
}

func (u *memUnit) LockSerialSequence(context.Context) error { return nil }

func (u *memUnit) MaxSerial(context.Context) (int64, bool, error) {
	var (
		highest int64
		found   bool
	)

	keys := slices.Concat(slices.Collect(maps.Keys(u.cylinders)), slices.Collect(maps.Keys(u.archived)))
	for _, serial := range keys {
		if n, ok := cylinder.SerialNumber(serial); ok && (!found || n > highest) {
			highest, found = n, true
		}
	}

	return highest, found, nil
}

func (u *memUnit) ExistingSerials(_ context.Context, serials []string) ([]string, error) {
	var out []string

	for _, serial := range serials {
		_, active := u.cylinders[serial]
		_, archived := u.archived[serial]

		if active || archived {
			out = append(out, serial)
		}
	}

	return out, nil
}

func (u *memUnit) InsertCylinders(_ context.Context, cs []*cylinder.Cylinder) error {
	for _, c := range cs {
		if _, ok := u.cylinders[c.SerialNumber]; ok {
			return cylinder.ErrDuplicateSerial
		}

		u.cylinders[c.SerialNumber] = *c
	}

	return nil
}

func (u *memUnit) LockArchived(_ context.Context, serial string) (*cylinder.DeletedCylinder, error) {
	d, ok := u.archived[serial]
	if !ok {
		return nil, cylinder.ErrNotFound
	}

	return &d, nil
}

func (u *memUnit) InsertArchived(_ context.Context, d *cylinder.DeletedCylinder) error {
	u.archived[d.SerialNumber] = *d

	return nil
}

func (u *memUnit) DeleteCylinder(_ context.Context, serial string) (int64, error) {
	if _, ok := u.cylinders[serial]; !ok {
		return 0, nil
	}

	delete(u.cylinders, serial)

	return 1, nil
}

func (u *memUnit) DeleteArchived(_ context.Context, serial string) (int64, error) {
	if _, ok := u.archived[serial]; !ok {
		return 0, nil
	}

	delete(u.archived, serial)

	return 1, nil
}

func (u *memUnit) Commit() error {
	u.s.cylinders = u.cylinders
	u.s.archived = u.archived
	u.s.entries = append(u.s.entries, u.entries...)
	u.done = true
	u.s.mu.Unlock()

	return nil
}

func (u *memUnit) Rollback() error {
	if !u.done {
		u.done = true
		u.s.mu.Unlock()
	}

	return nil
}
