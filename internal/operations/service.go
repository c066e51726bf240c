// Package operations orchestrates the three stock mutations: receive,
// consume and transfer. Each follows the same template: validate shape,
// resolve referenced entities, check availability, append atomically, audit.
package operations

import (
	"context"
	"errors"
	"fmt"

	"commissary/internal/ledger"
	"commissary/internal/stock"
	"commissary/pkg/apperrors"
	"commissary/pkg/models"

	"github.com/shopspring/decimal"
)

const movementEntityType = "Movement"

type ItemResolver interface {
	GetItem(id int) (*models.Item, error)
}

type LocationResolver interface {
	GetLocation(id int) (*models.Location, error)
}

type Auditor interface {
	Log(entityType string, entityID int, action string, changes any, userID *int)
}

type Service struct {
	ledger    ledger.Store
	stock     *stock.Projector
	items     ItemResolver
	locations LocationResolver
	locks     *ledger.KeyMutex
	audit     Auditor
}

func NewService(store ledger.Store, projector *stock.Projector, items ItemResolver, locations LocationResolver, locks *ledger.KeyMutex, audit Auditor) *Service {
	return &Service{
		ledger:    store,
		stock:     projector,
		items:     items,
		locations: locations,
		locks:     locks,
		audit:     audit,
	}
}

type ReceiveRequest struct {
	ItemID          int             `json:"item_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	LocationID      int             `json:"location_id"`
	ReferenceNumber string          `json:"reference_number"`
	Notes           string          `json:"notes"`
	UserID          *int            `json:"user_id"`
}

type ConsumeRequest struct {
	ItemID          int             `json:"item_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	LocationID      int             `json:"location_id"`
	ReasonCode      string          `json:"reason_code"`
	ReferenceNumber string          `json:"reference_number"`
	UserID          *int            `json:"user_id"`
}

type TransferRequest struct {
	ItemID          int             `json:"item_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	FromLocationID  int             `json:"from_location_id"`
	ToLocationID    int             `json:"to_location_id"`
	TransferReason  string          `json:"transfer_reason"`
	ReferenceNumber string          `json:"reference_number"`
	UserID          *int            `json:"user_id"`
}

// Receive books inbound stock. Inbound only increases stock, so no
// availability check and no pair lock is needed.
func (s *Service) Receive(ctx context.Context, req ReceiveRequest) (*models.Movement, error) {
	if err := validateShape(req.ItemID, req.Quantity, req.LocationID); err != nil {
		return nil, err
	}
	if err := s.resolveActiveItem(req.ItemID); err != nil {
		return nil, err
	}
	if _, err := s.locations.GetLocation(req.LocationID); err != nil {
		return nil, err
	}

	movement := &models.Movement{
		ItemID:          req.ItemID,
		ToLocationID:    &req.LocationID,
		Quantity:        req.Quantity,
		Type:            models.MovementReceipt,
		UserID:          req.UserID,
		ReferenceNumber: req.ReferenceNumber,
		Notes:           req.Notes,
	}

	committed, err := s.ledger.Append(ctx, movement)
	if err != nil {
		return nil, fmt.Errorf("append receipt: %w", err)
	}

	s.audit.Log(movementEntityType, committed.ID, string(committed.Type), req, req.UserID)
	return committed, nil
}

// Consume books outbound stock. The availability check and the append are a
// single unit under the (item, location) pair lock, so two concurrent
// consumptions cannot each observe sufficient stock and jointly drive the
// balance negative.
func (s *Service) Consume(ctx context.Context, req ConsumeRequest) (*models.Movement, error) {
	if err := validateShape(req.ItemID, req.Quantity, req.LocationID); err != nil {
		return nil, err
	}
	if err := s.resolveActiveItem(req.ItemID); err != nil {
		return nil, err
	}
	if _, err := s.locations.GetLocation(req.LocationID); err != nil {
		return nil, err
	}

	s.locks.Lock(req.ItemID, req.LocationID)
	defer s.locks.Unlock(req.ItemID, req.LocationID)

	available, err := s.stock.Available(ctx, req.ItemID, req.LocationID)
	if err != nil {
		return nil, err
	}
	if available.LessThan(req.Quantity) {
		return nil, &apperrors.InsufficientStockError{Available: available, Requested: req.Quantity}
	}

	movement := &models.Movement{
		ItemID:          req.ItemID,
		FromLocationID:  &req.LocationID,
		Quantity:        req.Quantity,
		Type:            models.MovementConsumption,
		UserID:          req.UserID,
		ReferenceNumber: req.ReferenceNumber,
		Notes:           req.ReasonCode,
	}

	committed, err := s.ledger.Append(ctx, movement)
	if err != nil {
		return nil, fmt.Errorf("append consumption: %w", err)
	}

	s.audit.Log(movementEntityType, committed.ID, string(committed.Type), req, req.UserID)
	return committed, nil
}

// Transfer moves stock between two locations as one ledger row carrying
// both the debit and the credit; a reader sees both sides or neither. Only
// the debit side needs serializing.
func (s *Service) Transfer(ctx context.Context, req TransferRequest) (*models.Movement, error) {
	if req.ItemID == 0 || req.Quantity.IsZero() || req.FromLocationID == 0 || req.ToLocationID == 0 {
		return nil, apperrors.NewValidation("Missing required fields")
	}
	if !req.Quantity.IsPositive() {
		return nil, apperrors.NewValidation("Quantity must be positive")
	}
	if req.FromLocationID == req.ToLocationID {
		return nil, apperrors.NewValidation("Source and destination must be different")
	}
	if err := s.resolveActiveItem(req.ItemID); err != nil {
		return nil, err
	}
	if _, err := s.locations.GetLocation(req.FromLocationID); err != nil {
		return nil, resolveAs(err, "Source location")
	}
	if _, err := s.locations.GetLocation(req.ToLocationID); err != nil {
		return nil, resolveAs(err, "Destination location")
	}

	s.locks.Lock(req.ItemID, req.FromLocationID)
	defer s.locks.Unlock(req.ItemID, req.FromLocationID)

	available, err := s.stock.Available(ctx, req.ItemID, req.FromLocationID)
	if err != nil {
		return nil, err
	}
	if available.LessThan(req.Quantity) {
		return nil, &apperrors.InsufficientStockError{Available: available, Requested: req.Quantity, AtSource: true}
	}

	movement := &models.Movement{
		ItemID:          req.ItemID,
		FromLocationID:  &req.FromLocationID,
		ToLocationID:    &req.ToLocationID,
		Quantity:        req.Quantity,
		Type:            models.MovementTransfer,
		UserID:          req.UserID,
		ReferenceNumber: req.ReferenceNumber,
		Notes:           req.TransferReason,
	}

	committed, err := s.ledger.Append(ctx, movement)
	if err != nil {
		return nil, fmt.Errorf("append transfer: %w", err)
	}

	s.audit.Log(movementEntityType, committed.ID, string(committed.Type), req, req.UserID)
	return committed, nil
}

func validateShape(itemID int, quantity decimal.Decimal, locationID int) error {
	if itemID == 0 || quantity.IsZero() || locationID == 0 {
		return apperrors.NewValidation("Missing required fields")
	}
	if !quantity.IsPositive() {
		return apperrors.NewValidation("Quantity must be positive")
	}
	return nil
}

func (s *Service) resolveActiveItem(itemID int) error {
	item, err := s.items.GetItem(itemID)
	if err != nil {
		return err
	}
	if !item.IsActive() {
		return apperrors.NewValidation("Item is not active")
	}
	return nil
}

// resolveAs rewrites a generic location not-found into the side-specific
// message callers expect, leaving other failures untouched.
func resolveAs(err error, resource string) error {
	var notFound *apperrors.NotFoundError
	if errors.As(err, &notFound) {
		return apperrors.NewNotFound(resource)
	}
	return err
}
