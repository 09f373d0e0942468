package cylinder

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/gastrack/internal/apperror"
	"github.com/MrJamesThe3rd/gastrack/internal/ledger"
)

type DispatchParams struct {
	SerialNumbers []string
	CompanyID     int64
	// Product, when set, must match the gas type of every cylinder.
	Product string
	// Quantity, when set, must equal the number of serial numbers.
	Quantity int
}

type DispatchResult struct {
	Dispatched []string
	Entries    []*ledger.Entry
}

// Dispatch assigns available cylinders to an active company.
func (s *Service) Dispatch(ctx context.Context, actor uuid.UUID, p DispatchParams) (*DispatchResult, error) {
	serials, err := normalizeSerials("serialNumbers", p.SerialNumbers, true)
	if err != nil {
		return nil, err
	}

	if p.CompanyID <= 0 {
		return nil, apperror.Validation("companyId is required")
	}

	if p.Quantity != 0 && p.Quantity != len(serials) {
		return nil, apperror.Validation("quantity %d does not match %d serial numbers", p.Quantity, len(serials))
	}

	product := strings.ToLower(strings.TrimSpace(p.Product))
	companyID := p.CompanyID

	var result DispatchResult

	err = s.run(ctx, "dispatch", func(ctx context.Context, uow UnitOfWork) (int, error) {
		active, err := uow.CompanyActive(ctx, companyID)
		if err != nil {
			return 0, fmt.Errorf("checking company: %w", err)
		}

		if !active {
			id := strconv.FormatInt(companyID, 10)
			return 0, apperror.InvalidReference(id, "company %s does not exist or is archived", id)
		}

		cylinders, err := lockAll(ctx, uow, serials)
		if err != nil {
			return 0, err
		}

		if product != "" {
			if wrong := mismatchedGas(cylinders, product); len(wrong) > 0 {
				return 0, apperror.ValidationIDs(wrong, "%s do not contain %s", strings.Join(wrong, ", "), product)
			}
		}

		if err := requireStatus(cylinders, StatusAvailable, "are not available for dispatch"); err != nil {
			return 0, err
		}

		if err := transition(ctx, uow, serials, StatusAvailable, StatusDispatched, &companyID); err != nil {
			return 0, err
		}

		entries := make([]*ledger.Entry, len(cylinders))
		for i, c := range cylinders {
			entries[i] = &ledger.Entry{
				UserID:     actor,
				CylinderID: c.SerialNumber,
				Action:     ledger.ActionDispatch,
				CompanyID:  &companyID,
			}
		}

		if err := uow.AppendLedger(ctx, entries); err != nil {
			return 0, err
		}

		result = DispatchResult{Dispatched: serials, Entries: entries}

		return len(serials), nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("cylinders dispatched", "actor", actor, "company_id", companyID, "count", len(serials))

	return &result, nil
}

type ReceiveParams struct {
	EmptySerialNumbers  []string
	FilledSerialNumbers []string
	// CompanyID, when set, must be the company every cylinder is
	// dispatched to.
	CompanyID *int64
}

type ReceiveResult struct {
	Empty   []string
	Filled  []string
	Entries []*ledger.Entry
}

// Receive returns dispatched cylinders to the inventory. Empty cylinders
// become empty, filled ones become available; both halves commit together.
func (s *Service) Receive(ctx context.Context, actor uuid.UUID, p ReceiveParams) (*ReceiveResult, error) {
	empty, err := normalizeSerials("emptySerialNumbers", p.EmptySerialNumbers, false)
	if err != nil {
		return nil, err
	}

	filled, err := normalizeSerials("filledSerialNumbers", p.FilledSerialNumbers, false)
	if err != nil {
		return nil, err
	}

	if len(empty) == 0 && len(filled) == 0 {
		return nil, apperror.Validation("emptySerialNumbers or filledSerialNumbers must not be empty")
	}

	all := append(append([]string{}, empty...), filled...)
	if dup := duplicates(all); len(dup) > 0 {
		return nil, apperror.ValidationIDs(dup, "%s listed as both empty and filled", strings.Join(dup, ", "))
	}

	if p.CompanyID != nil && *p.CompanyID <= 0 {
		return nil, apperror.Validation("companyId must be positive")
	}

	var result ReceiveResult

	err = s.run(ctx, "receive", func(ctx context.Context, uow UnitOfWork) (int, error) {
		cylinders, err := lockAll(ctx, uow, all)
		if err != nil {
			return 0, err
		}

		if err := requireStatus(cylinders, StatusDispatched, "are not dispatched and cannot be received"); err != nil {
			return 0, err
		}

		if p.CompanyID != nil {
			if err := requireCompany(cylinders, *p.CompanyID); err != nil {
				return 0, err
			}
		}

		if len(empty) > 0 {
			if err := transition(ctx, uow, empty, StatusDispatched, StatusEmpty, nil); err != nil {
				return 0, err
			}
		}

		if len(filled) > 0 {
			if err := transition(ctx, uow, filled, StatusDispatched, StatusAvailable, nil); err != nil {
				return 0, err
			}
		}

		entries := make([]*ledger.Entry, len(cylinders))
		for i, c := range cylinders {
			action := ledger.ActionReceiveFilled
			if i < len(empty) {
				action = ledger.ActionReceiveEmpty
			}

			entries[i] = &ledger.Entry{
				UserID:     actor,
				CylinderID: c.SerialNumber,
				Action:     action,
				CompanyID:  c.CompanyID,
			}
		}

		if err := uow.AppendLedger(ctx, entries); err != nil {
			return 0, err
		}

		result = ReceiveResult{Empty: empty, Filled: filled, Entries: entries}

		return len(all), nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("cylinders received", "actor", actor, "empty", len(empty), "filled", len(filled))

	return &result, nil
}

// StartRefill sends empty cylinders to refilling.
func (s *Service) StartRefill(ctx context.Context, actor uuid.UUID, serialNumbers []string) ([]*ledger.Entry, error) {
	serials, err := normalizeSerials("cylinderIds", serialNumbers, true)
	if err != nil {
		return nil, err
	}

	var entries []*ledger.Entry

	err = s.run(ctx, "refill", func(ctx context.Context, uow UnitOfWork) (int, error) {
		cylinders, err := lockAll(ctx, uow, serials)
		if err != nil {
			return 0, err
		}

		if err := requireStatus(cylinders, StatusEmpty, "are not empty and cannot be refilled"); err != nil {
			return 0, err
		}

		if err := transition(ctx, uow, serials, StatusEmpty, StatusRefilling, nil); err != nil {
			return 0, err
		}

		entries = make([]*ledger.Entry, len(serials))
		for i, serial := range serials {
			entries[i] = &ledger.Entry{UserID: actor, CylinderID: serial, Action: ledger.ActionRefill}
		}

		if err := uow.AppendLedger(ctx, entries); err != nil {
			return 0, err
		}

		return len(serials), nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("refill started", "actor", actor, "count", len(serials))

	return entries, nil
}

// CompleteRefill makes refilled cylinders available again. It records no
// ledger entry.
func (s *Service) CompleteRefill(ctx context.Context, actor uuid.UUID, serialNumbers []string) error {
	serials, err := normalizeSerials("cylinderIds", serialNumbers, true)
	if err != nil {
		return err
	}

	err = s.run(ctx, "complete_refill", func(ctx context.Context, uow UnitOfWork) (int, error) {
		cylinders, err := lockAll(ctx, uow, serials)
		if err != nil {
			return 0, err
		}

		if err := requireStatus(cylinders, StatusRefilling, "are not in refilling status"); err != nil {
			return 0, err
		}

		if err := transition(ctx, uow, serials, StatusRefilling, StatusAvailable, nil); err != nil {
			return 0, err
		}

		return len(serials), nil
	})
	if err != nil {
		return err
	}

	slog.Info("refill completed", "actor", actor, "count", len(serials))

	return nil
}

// normalizeSerials trims the input and rejects blanks and repeats. When
// required is set an empty list is an error.
func normalizeSerials(field string, in []string, required bool) ([]string, error) {
	if len(in) == 0 {
		if required {
			return nil, apperror.Validation("%s must be a non-empty array", field)
		}

		return nil, nil
	}

	out := make([]string, len(in))

	for i, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, apperror.Validation("%s contains a blank serial number at position %d", field, i)
		}

		out[i] = s
	}

	if dup := duplicates(out); len(dup) > 0 {
		return nil, apperror.ValidationIDs(dup, "%s repeats %s", field, strings.Join(dup, ", "))
	}

	return out, nil
}

func duplicates(serials []string) []string {
	seen := make(map[string]bool, len(serials))

	var dup []string

	for _, s := range serials {
		if seen[s] {
			dup = append(dup, s)
			continue
		}

		seen[s] = true
	}

	return dup
}

// lockAll locks every serial of a batch and returns the cylinders in input
// order, or a not-found error listing which serials are missing and which
// were found.
func lockAll(ctx context.Context, uow UnitOfWork, serials []string) ([]*Cylinder, error) {
	locked, err := uow.LockCylinders(ctx, serials)
	if err != nil {
		return nil, fmt.Errorf("locking cylinders: %w", err)
	}

	byID := make(map[string]*Cylinder, len(locked))
	for _, c := range locked {
		byID[c.SerialNumber] = c
	}

	ordered := make([]*Cylinder, 0, len(serials))

	var found, missing []string

	for _, serial := range serials {
		c, ok := byID[serial]
		if !ok {
			missing = append(missing, serial)
			continue
		}

		found = append(found, serial)
		ordered = append(ordered, c)
	}

	if len(missing) > 0 {
		return nil, apperror.NotFoundInBatch(found, missing, "%s not found in inventory", strings.Join(missing, ", "))
	}

	return ordered, nil
}

func requireStatus(cylinders []*Cylinder, want Status, suffix string) error {
	var conflicts []apperror.Conflict

	for _, c := range cylinders {
		if c.Status != want {
			conflicts = append(conflicts, apperror.Conflict{ID: c.SerialNumber, Status: string(c.Status)})
		}
	}

	if len(conflicts) > 0 {
		return apperror.StateConflict(conflicts, suffix)
	}

	return nil
}

func requireCompany(cylinders []*Cylinder, companyID int64) error {
	var conflicts []apperror.Conflict

	for _, c := range cylinders {
		if c.CompanyID == nil || *c.CompanyID != companyID {
			holder := "unassigned"
			if c.CompanyID != nil {
				holder = "dispatched to company " + strconv.FormatInt(*c.CompanyID, 10)
			}

			conflicts = append(conflicts, apperror.Conflict{ID: c.SerialNumber, Status: holder})
		}
	}

	if len(conflicts) > 0 {
		return apperror.StateConflict(conflicts, fmt.Sprintf("are not dispatched to company %d", companyID))
	}

	return nil
}

func mismatchedGas(cylinders []*Cylinder, gas string) []string {
	var wrong []string

	for _, c := range cylinders {
		if !strings.EqualFold(c.GasType, gas) {
			wrong = append(wrong, c.SerialNumber)
		}
	}

	return wrong
}

// transition applies a guarded status change. Fewer changed rows than
// requested means another writer got there first; the unit of work is
// abandoned rather than partially applied.
func transition(ctx context.Context, uow UnitOfWork, serials []string, from, to Status, companyID *int64) error {
	n, err := uow.UpdateStatus(ctx, serials, from, to, companyID)
	if err != nil {
		return fmt.Errorf("updating status %s -> %s: %w", from, to, err)
	}

	if n != int64(len(serials)) {
		return &apperror.Error{
			Kind:      apperror.KindStateConflict,
			Message:   fmt.Sprintf("concurrent update: %d of %d cylinders moved from %s to %s", n, len(serials), from, to),
			IDs:       serials,
			Retryable: true,
		}
	}

	return nil
}
