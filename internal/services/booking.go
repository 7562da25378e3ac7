package services

import (
	"errors"

	"fluidbook/pkg/models"

	"github.com/google/uuid"
)

var (
	// ErrInvalidSelection is returned when no requested service id resolves
	ErrInvalidSelection = errors.New("invalid service selection")
	// ErrSlotConflict is returned when the requested slot is already taken
	ErrSlotConflict = errors.New("time slot no longer available")
)

// BookingStore is the booking persistence the service needs
type BookingStore interface {
	CountActiveAtSlot(date, timeSlot string) (int64, error)
	Create(booking *models.Booking) error
	GetByID(id uuid.UUID) (*models.Booking, error)
	Update(booking *models.Booking) error
	Delete(id uuid.UUID) error
}

// ServiceResolver resolves service ids against the catalog
type ServiceResolver interface {
	GetByIDs(ids []uuid.UUID) ([]models.Service, error)
}

// BookingService implements the booking creation guard and admin mutations
type BookingService struct {
	bookings BookingStore
	catalog  ServiceResolver
}

// NewBookingService creates a new booking service
func NewBookingService(bookings BookingStore, catalog ServiceResolver) *BookingService {
	return &BookingService{bookings: bookings, catalog: catalog}
}

// Create validates a booking request and persists it.
//
// Totals are computed from the resolved services only; a request whose ids
// resolve to nothing fails with ErrInvalidSelection before any total exists.
// The slot is re-checked at write time with the same exact-match semantics as
// the availability read: nothing locks the slot between the client reading
// availability and submitting, so two concurrent submissions race and the
// loser of this check gets ErrSlotConflict.
func (s *BookingService) Create(req models.CreateBookingRequest) (*models.Booking, error) {
	ids := make([]uuid.UUID, 0, len(req.ServiceIDs))
	for _, raw := range req.ServiceIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}

	var resolved []models.Service
	if len(ids) > 0 {
		var err error
		resolved, err = s.catalog.GetByIDs(ids)
		if err != nil {
			return nil, err
		}
	}
	if len(resolved) == 0 {
		return nil, ErrInvalidSelection
	}

	totalDuration := 0
	totalPrice := 0.0
	for _, svc := range resolved {
		totalDuration += svc.DurationMinutes
		if svc.Price != nil {
			totalPrice += *svc.Price
		}
	}

	taken, err := s.bookings.CountActiveAtSlot(req.BookingDate, req.BookingTime)
	if err != nil {
		return nil, err
	}
	if taken > 0 {
		return nil, ErrSlotConflict
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "cash"
	}

	// Persist ids in the order the customer picked them. The catalog lookup
	// uses an IN query whose row order is unspecified, so it cannot be the
	// source of ordering.
	known := make(map[uuid.UUID]bool, len(resolved))
	for _, svc := range resolved {
		known[svc.ID] = true
	}
	serviceIDs := make(models.UUIDSlice, 0, len(ids))
	for _, id := range ids {
		if known[id] {
			serviceIDs = append(serviceIDs, id)
		}
	}

	booking := &models.Booking{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		ServiceIDs:    serviceIDs,
		BookingDate:   req.BookingDate,
		BookingTime:   req.BookingTime,
		TotalDuration: totalDuration,
		TotalPrice:    totalPrice,
		PaymentMethod: paymentMethod,
		PaymentStatus: models.PaymentStatusPending,
		Status:        models.BookingStatusConfirmed,
		Notes:         req.Notes,
	}

	if err := s.bookings.Create(booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// UpdateStatus applies an admin status/payment patch
func (s *BookingService) UpdateStatus(id uuid.UUID, req models.UpdateBookingRequest) (*models.Booking, error) {
	booking, err := s.bookings.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		booking.Status = *req.Status
	}
	if req.PaymentStatus != nil {
		booking.PaymentStatus = *req.PaymentStatus
	}

	if err := s.bookings.Update(booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// Delete removes a booking
func (s *BookingService) Delete(id uuid.UUID) error {
	return s.bookings.Delete(id)
}
