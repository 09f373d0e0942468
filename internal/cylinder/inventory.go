package cylinder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/gastrack/internal/apperror"
)

const MaxBatch = 500

type AddParams struct {
	// SerialNumber is generated when empty.
	SerialNumber string
	GasType      string
	Size         int
	// Status defaults to available. Cylinders cannot be created dispatched.
	Status Status
}

type BatchParams struct {
	Quantity int
	GasType  string
	Size     int
	Status   Status
}

func (s *Service) Add(ctx context.Context, p AddParams) (*Cylinder, error) {
	added, err := s.AddMany(ctx, []AddParams{p})
	if err != nil {
		return nil, err
	}

	return added[0], nil
}

func (s *Service) AddBatch(ctx context.Context, p BatchParams) ([]*Cylinder, error) {
	if p.Quantity < 1 || p.Quantity > MaxBatch {
		return nil, apperror.Validation("quantity must be between 1 and %d", MaxBatch)
	}

	params := make([]AddParams, p.Quantity)
	for i := range params {
		params[i] = AddParams{GasType: p.GasType, Size: p.Size, Status: p.Status}
	}

	return s.AddMany(ctx, params)
}

// AddMany inserts all cylinders or none. Missing serials are generated in
// order after the highest serial ever issued, archived ones included.
func (s *Service) AddMany(ctx context.Context, params []AddParams) ([]*Cylinder, error) {
	if len(params) == 0 {
		return nil, apperror.Validation("at least one cylinder is required")
	}

	if len(params) > MaxBatch {
		return nil, apperror.Validation("at most %d cylinders can be added at once", MaxBatch)
	}

	cylinders := make([]*Cylinder, len(params))

	var explicit []string

	for i, p := range params {
		c, err := newCylinder(i, p)
		if err != nil {
			return nil, err
		}

		if c.SerialNumber != "" {
			explicit = append(explicit, c.SerialNumber)
		}

		cylinders[i] = c
	}

	if dup := duplicates(explicit); len(dup) > 0 {
		return nil, apperror.ValidationIDs(dup, "serial numbers repeated: %s", strings.Join(dup, ", "))
	}

	err := s.run(ctx, "add", func(ctx context.Context, uow UnitOfWork) (int, error) {
		if err := uow.LockSerialSequence(ctx); err != nil {
			return 0, fmt.Errorf("locking serial sequence: %w", err)
		}

		if len(explicit) > 0 {
			existing, err := uow.ExistingSerials(ctx, explicit)
			if err != nil {
				return 0, fmt.Errorf("checking serials: %w", err)
			}

			if len(existing) > 0 {
				return 0, apperror.ValidationIDs(existing, "%s already exist in inventory or archive", strings.Join(existing, ", "))
			}
		}

		if len(explicit) < len(cylinders) {
			highest, found, err := uow.MaxSerial(ctx)
			if err != nil {
				return 0, fmt.Errorf("reading max serial: %w", err)
			}

			for _, serial := range explicit {
				if n, ok := SerialNumber(serial); ok && (!found || n > highest) {
					highest, found = n, true
				}
			}

			for _, c := range cylinders {
				if c.SerialNumber != "" {
					continue
				}

				c.SerialNumber = NextSerial(highest, found)
				highest, _ = SerialNumber(c.SerialNumber)
				found = true
			}
		}

		if err := uow.InsertCylinders(ctx, cylinders); err != nil {
			if errors.Is(err, ErrDuplicateSerial) {
				return 0, apperror.Validation("a serial number in this batch already exists")
			}

			return 0, fmt.Errorf("inserting cylinders: %w", err)
		}

		return len(cylinders), nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("cylinders added", "count", len(cylinders))

	return cylinders, nil
}

func newCylinder(pos int, p AddParams) (*Cylinder, error) {
	gas := strings.ToLower(strings.TrimSpace(p.GasType))
	if gas == "" {
		return nil, apperror.Validation("cylinder %d: gasType is required", pos+1)
	}

	if !ValidSize(p.Size) {
		return nil, apperror.Validation("cylinder %d: size %d is not one of %v", pos+1, p.Size, AllowedSizes)
	}

	status := p.Status
	if status == "" {
		status = StatusAvailable
	}

	if !status.Valid() {
		return nil, apperror.Validation("cylinder %d: unknown status %q", pos+1, status)
	}

	if status == StatusDispatched {
		return nil, apperror.Validation("cylinder %d: cannot be created as dispatched", pos+1)
	}

	serial := strings.ToUpper(strings.TrimSpace(p.SerialNumber))
	if serial != "" && !ValidSerial(serial) {
		return nil, apperror.ValidationIDs([]string{serial}, "serial number %s must have the form CYL<number>", serial)
	}

	return &Cylinder{SerialNumber: serial, GasType: gas, Size: p.Size, Status: status}, nil
}

// NextSerial previews the serial the next generated cylinder would get.
func (s *Service) NextSerial(ctx context.Context) (string, error) {
	var next string

	err := s.run(ctx, "next_serial", func(ctx context.Context, uow UnitOfWork) (int, error) {
		highest, found, err := uow.MaxSerial(ctx)
		if err != nil {
			return 0, fmt.Errorf("reading max serial: %w", err)
		}

		next = NextSerial(highest, found)

		return 0, nil
	})
	if err != nil {
		return "", err
	}

	return next, nil
}

// Archive moves a cylinder out of the active inventory, recording its last
// status and who removed it. Dispatched cylinders must be received first.
func (s *Service) Archive(ctx context.Context, actor uuid.UUID, serial string) (*DeletedCylinder, error) {
	serial = strings.TrimSpace(serial)

	var archived *DeletedCylinder

	err := s.run(ctx, "archive", func(ctx context.Context, uow UnitOfWork) (int, error) {
		locked, err := uow.LockCylinders(ctx, []string{serial})
		if err != nil {
			return 0, fmt.Errorf("locking cylinder: %w", err)
		}

		if len(locked) == 0 {
			return 0, apperror.NotFound([]string{serial}, "%s not found in inventory", serial)
		}

		c := locked[0]
		if c.Status == StatusDispatched {
			return 0, apperror.StateConflict(
				[]apperror.Conflict{{ID: c.SerialNumber, Status: string(c.Status)}},
				"must be received before it can be deleted",
			)
		}

		d := &DeletedCylinder{
			SerialNumber: c.SerialNumber,
			GasType:      c.GasType,
			Size:         c.Size,
			Status:       c.Status,
			DeletedBy:    actor,
		}

		if err := uow.InsertArchived(ctx, d); err != nil {
			return 0, fmt.Errorf("archiving cylinder: %w", err)
		}

		n, err := uow.DeleteCylinder(ctx, serial)
		if err != nil {
			return 0, fmt.Errorf("removing cylinder: %w", err)
		}

		if n != 1 {
			return 0, fmt.Errorf("removing cylinder %s: %d rows affected", serial, n)
		}

		archived = d

		return 1, nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("cylinder archived", "actor", actor, "serial", serial, "status", archived.Status)

	return archived, nil
}

// Restore moves an archived cylinder back into the active inventory with its
// serial number and last known status.
func (s *Service) Restore(ctx context.Context, serial string) (*Cylinder, error) {
	serial = strings.TrimSpace(serial)

	var restored *Cylinder

	err := s.run(ctx, "restore", func(ctx context.Context, uow UnitOfWork) (int, error) {
		d, err := uow.LockArchived(ctx, serial)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return 0, apperror.NotFound([]string{serial}, "cylinder %s not found in archive", serial)
			}

			return 0, fmt.Errorf("locking archived cylinder: %w", err)
		}

		if d.Status == StatusDispatched {
			return 0, apperror.StateConflict(
				[]apperror.Conflict{{ID: d.SerialNumber, Status: string(d.Status)}},
				"was archived without a company and cannot be restored",
			)
		}

		c := &Cylinder{SerialNumber: d.SerialNumber, GasType: d.GasType, Size: d.Size, Status: d.Status}

		if err := uow.InsertCylinders(ctx, []*Cylinder{c}); err != nil {
			if errors.Is(err, ErrDuplicateSerial) {
				return 0, apperror.ValidationIDs([]string{serial}, "%s is already in the active inventory", serial)
			}

			return 0, fmt.Errorf("restoring cylinder: %w", err)
		}

		n, err := uow.DeleteArchived(ctx, serial)
		if err != nil {
			return 0, fmt.Errorf("removing archive entry: %w", err)
		}

		if n != 1 {
			return 0, fmt.Errorf("removing archive entry %s: %d rows affected", serial, n)
		}

		restored = c

		return 1, nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("cylinder restored", "serial", serial, "status", restored.Status)

	return restored, nil
}
